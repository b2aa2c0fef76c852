package economy_test

import (
	"errors"
	"testing"
	"time"

	"github.com/rayomarblezh-dev/mundo-mitico-sub000/pkg/economy"
)

func TestAmountTONRendering(test *testing.T) {
	test.Parallel()
	cases := []struct {
		name     string
		raw      int64
		expected string
	}{
		{name: "zero", raw: 0, expected: "0.000"},
		{name: "whole", raw: 5_000_000_000, expected: "5.000"},
		{name: "fraction", raw: 1_250_000_000, expected: "1.250"},
		{name: "sub_milli_truncated", raw: 1_000_999, expected: "0.001"},
		{name: "large", raw: 123_456_000_000, expected: "123.456"},
	}
	for _, testCase := range cases {
		testCase := testCase
		test.Run(testCase.name, func(test *testing.T) {
			test.Parallel()
			if got := economy.Amount(testCase.raw).TON(); got != testCase.expected {
				test.Fatalf("expected %q, got %q", testCase.expected, got)
			}
		})
	}
}

func TestNewPositiveAmountRejectsNonPositive(test *testing.T) {
	test.Parallel()
	if _, err := economy.NewPositiveAmount(0); !errors.Is(err, economy.ErrInvalidAmount) {
		test.Fatalf("expected ErrInvalidAmount for zero, got %v", err)
	}
	if _, err := economy.NewPositiveAmount(-5); !errors.Is(err, economy.ErrInvalidAmount) {
		test.Fatalf("expected ErrInvalidAmount for negative, got %v", err)
	}
	amount, err := economy.NewPositiveAmount(42)
	if err != nil {
		test.Fatalf("positive amount: %v", err)
	}
	if amount.ToAmount() != 42 {
		test.Fatalf("expected 42, got %d", amount.ToAmount())
	}
}

func TestIdentifierValidation(test *testing.T) {
	test.Parallel()
	if _, err := economy.NewUserID("  "); !errors.Is(err, economy.ErrInvalidUserID) {
		test.Fatalf("expected ErrInvalidUserID, got %v", err)
	}
	if _, err := economy.NewAdminID(""); !errors.Is(err, economy.ErrInvalidAdminID) {
		test.Fatalf("expected ErrInvalidAdminID, got %v", err)
	}
	if _, err := economy.NewEntryID("\t"); !errors.Is(err, economy.ErrInvalidEntryID) {
		test.Fatalf("expected ErrInvalidEntryID, got %v", err)
	}
	userID, err := economy.NewUserID("  1234  ")
	if err != nil {
		test.Fatalf("user id: %v", err)
	}
	if userID.String() != "1234" {
		test.Fatalf("expected trimmed id, got %q", userID.String())
	}
}

func TestEntryStatusLifecycle(test *testing.T) {
	test.Parallel()
	if economy.StatusPending.Terminal() {
		test.Fatalf("pending must not be terminal")
	}
	for _, status := range []economy.EntryStatus{economy.StatusCompleted, economy.StatusRejected, economy.StatusCancelled} {
		if !status.Terminal() {
			test.Fatalf("%s must be terminal", status)
		}
	}
	if _, err := economy.ParseEntryStatus("expired"); !errors.Is(err, economy.ErrInvalidEntryStatus) {
		test.Fatalf("expected ErrInvalidEntryStatus, got %v", err)
	}
	if _, err := economy.ParseEntryKind("transfer"); !errors.Is(err, economy.ErrInvalidEntryKind) {
		test.Fatalf("expected ErrInvalidEntryKind, got %v", err)
	}
}

func TestDayBucketUsesUTC(test *testing.T) {
	test.Parallel()
	loc := time.FixedZone("UTC-5", -5*3600)
	// 23:30 local on the 28th is already the 29th in UTC.
	at := time.Date(2026, time.August, 28, 23, 30, 0, 0, loc)
	if got := economy.DayBucket(at); got != "2026-08-29" {
		test.Fatalf("expected 2026-08-29, got %s", got)
	}
}
