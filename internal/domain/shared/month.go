package shared

import (
	"strconv"
	"strings"
	"time"
)

// ParseMonth accepts a month number (1-12) or an English month name,
// full or three-letter abbreviation, case-insensitive.
func ParseMonth(value string) (time.Month, error) {
	value = strings.TrimSpace(value)
	if n, err := strconv.Atoi(value); err == nil {
		if n < 1 || n > 12 {
			return 0, NewValidationError("month", "must be between 1 and 12")
		}
		return time.Month(n), nil
	}

	lower := strings.ToLower(value)
	for m := time.January; m <= time.December; m++ {
		name := strings.ToLower(m.String())
		if lower == name || (len(lower) == 3 && strings.HasPrefix(name, lower)) {
			return m, nil
		}
	}
	return 0, NewValidationError("month", "unrecognised month "+strconv.Quote(value))
}

// MonthSet is a small set of months used by calendar rules
type MonthSet []time.Month

// Contains reports whether m is in the set
func (s MonthSet) Contains(m time.Month) bool {
	for _, candidate := range s {
		if candidate == m {
			return true
		}
	}
	return false
}
