package bot

import "testing"

func TestParseTON(test *testing.T) {
	test.Parallel()
	cases := []struct {
		name     string
		raw      string
		expected int64
	}{
		{name: "whole", raw: "3", expected: 3_000_000_000},
		{name: "fraction", raw: "1.5", expected: 1_500_000_000},
		{name: "milli", raw: "0.250", expected: 250_000_000},
		{name: "full_precision", raw: "0.000000001", expected: 1},
		{name: "leading_dot", raw: ".5", expected: 500_000_000},
		{name: "padded", raw: "  2.000  ", expected: 2_000_000_000},
	}
	for _, testCase := range cases {
		testCase := testCase
		test.Run(testCase.name, func(test *testing.T) {
			test.Parallel()
			got, err := ParseTON(testCase.raw)
			if err != nil {
				test.Fatalf("parse %q: %v", testCase.raw, err)
			}
			if got != testCase.expected {
				test.Fatalf("expected %d, got %d", testCase.expected, got)
			}
		})
	}
}

func TestParseTONRejectsMalformed(test *testing.T) {
	test.Parallel()
	for _, raw := range []string{"", "abc", "-1", "+2", "1.2.3", "1.0000000001", "1,5", "1.-5"} {
		if _, err := ParseTON(raw); err == nil {
			test.Fatalf("expected error for %q", raw)
		}
	}
}

func TestParseQty(test *testing.T) {
	test.Parallel()
	if qty, err := parseQty("7"); err != nil || qty != 7 {
		test.Fatalf("expected 7, got %d (%v)", qty, err)
	}
	for _, raw := range []string{"0", "-2", "x", "1.5"} {
		if _, err := parseQty(raw); err == nil {
			test.Fatalf("expected error for %q", raw)
		}
	}
}
