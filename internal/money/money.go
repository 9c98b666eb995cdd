package money

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Records store and transmit currency as integer minor units (cents).
// Humans type and read major units ("123.45"). These two functions are the
// only place the conversion happens.

var (
	ErrEmpty     = errors.New("money: empty amount")
	ErrMalformed = errors.New("money: malformed amount")
	ErrPrecision = errors.New("money: more than two decimal places")
)

// ParseMajor converts a user-facing decimal amount into minor units.
// "123.45" -> 12345, "7" -> 700, "0.5" -> 50.
func ParseMajor(s string) (int64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, ErrEmpty
	}

	neg := false
	if strings.HasPrefix(s, "-") {
		neg = true
		s = s[1:]
	}

	intPart := s
	fracPart := ""
	if i := strings.IndexByte(s, '.'); i >= 0 {
		intPart = s[:i]
		fracPart = s[i+1:]
	}

	if intPart == "" && fracPart == "" {
		return 0, ErrMalformed
	}
	// Only digits past the single optional leading sign; ParseInt alone
	// would let an embedded sign ("--1", "1.-5") through.
	if !isDigits(intPart) || !isDigits(fracPart) {
		return 0, ErrMalformed
	}
	if len(fracPart) > 2 {
		return 0, ErrPrecision
	}

	if intPart == "" {
		intPart = "0"
	}
	for len(fracPart) < 2 {
		fracPart += "0"
	}

	major, err := strconv.ParseInt(intPart, 10, 64)
	if err != nil {
		return 0, ErrMalformed
	}
	frac, err := strconv.ParseInt(fracPart, 10, 64)
	if err != nil {
		return 0, ErrMalformed
	}

	cents := major*100 + frac
	if neg {
		cents = -cents
	}
	return cents, nil
}

func isDigits(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

// FormatMinor renders minor units as a user-facing decimal string with
// exactly two decimal places. 12345 -> "123.45".
func FormatMinor(cents int64) string {
	sign := ""
	if cents < 0 {
		sign = "-"
		cents = -cents
	}
	return fmt.Sprintf("%s%d.%02d", sign, cents/100, cents%100)
}
