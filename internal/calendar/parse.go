package calendar

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// ParseDate parses the dd.mm.yyyy form used by the appointment dialog.
// The text must have exactly three dot-separated integer fields, a two
// digit day and month, a four digit year, and name a real calendar day.
func ParseDate(s string) (Date, error) {
	parts := strings.Split(s, ".")
	if len(parts) != 3 {
		return Date{}, fmt.Errorf("%w: %q: want dd.mm.yyyy", ErrInvalidDate, s)
	}

	var fields [3]int
	for i, p := range parts {
		n, err := strconv.Atoi(p)
		if err != nil {
			return Date{}, fmt.Errorf("%w: %q: %q is not a number", ErrInvalidDate, s, p)
		}
		fields[i] = n
	}

	if !digits(parts[0], 2) || !digits(parts[1], 2) {
		return Date{}, fmt.Errorf("%w: %q: day and month need two digits", ErrInvalidDate, s)
	}
	if !digits(parts[2], 4) {
		return Date{}, fmt.Errorf("%w: %q: year needs four digits", ErrInvalidDate, s)
	}

	return New(fields[2], time.Month(fields[1]), fields[0])
}

// ValidDate reports whether ParseDate would accept s.
func ValidDate(s string) bool {
	_, err := ParseDate(s)
	return err == nil
}

func digits(s string, n int) bool {
	if len(s) != n {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}
