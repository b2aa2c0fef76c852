package bot

import (
	"errors"
	"strconv"
	"strings"
)

const nanotonsPerTon = int64(1_000_000_000)

var errMalformedAmount = errors.New("malformed amount")

// ParseTON converts a user-typed decimal TON amount ("1.5", "0.250") to
// nanotons without going through floating point.
func ParseTON(raw string) (int64, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" || strings.HasPrefix(trimmed, "-") || strings.HasPrefix(trimmed, "+") {
		return 0, errMalformedAmount
	}
	wholePart, fracPart, _ := strings.Cut(trimmed, ".")
	if wholePart == "" {
		wholePart = "0"
	}
	whole, err := strconv.ParseInt(wholePart, 10, 64)
	if err != nil {
		return 0, errMalformedAmount
	}
	if len(fracPart) > 9 {
		return 0, errMalformedAmount
	}
	frac := int64(0)
	if fracPart != "" {
		frac, err = strconv.ParseInt(fracPart, 10, 64)
		if err != nil || frac < 0 {
			return 0, errMalformedAmount
		}
		for digits := len(fracPart); digits < 9; digits++ {
			frac *= 10
		}
	}
	if whole > (1<<62)/nanotonsPerTon {
		return 0, errMalformedAmount
	}
	return whole*nanotonsPerTon + frac, nil
}

func parseQty(raw string) (int64, error) {
	qty, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
	if err != nil || qty <= 0 {
		return 0, errMalformedAmount
	}
	return qty, nil
}
