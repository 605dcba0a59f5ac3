package domain

import (
	"fmt"
	"regexp"
	"unicode/utf8"

	"github.com/shopspring/decimal"
)

// ConstraintError reports a primitive that failed a domain invariant.
// Field is the name of the input field the value came from.
type ConstraintError struct {
	Field string
	Msg   string
}

func (e *ConstraintError) Error() string { return e.Field + ": " + e.Msg }

func violation(field, format string, args ...any) error {
	return &ConstraintError{Field: field, Msg: fmt.Sprintf(format, args...)}
}

func createString(field, s string, maxLen int) (string, error) {
	if s == "" {
		return "", violation(field, "must not be null or empty")
	}
	if utf8.RuneCountInString(s) > maxLen {
		return "", violation(field, "must not be more than %d chars", maxLen)
	}
	return s, nil
}

// createStringOption treats empty input as absent (ok=false, no error).
func createStringOption(field, s string, maxLen int) (v string, ok bool, err error) {
	if s == "" {
		return "", false, nil
	}
	if utf8.RuneCountInString(s) > maxLen {
		return "", false, violation(field, "must not be more than %d chars", maxLen)
	}
	return s, true, nil
}

func createInt(field string, v, min, max int) (int, error) {
	if v < min {
		return 0, violation(field, "must not be less than %d", min)
	}
	if v > max {
		return 0, violation(field, "must not be greater than %d", max)
	}
	return v, nil
}

func createDecimal(field string, v, min, max decimal.Decimal) (decimal.Decimal, error) {
	if v.LessThan(min) {
		return decimal.Zero, violation(field, "must not be less than %s", min)
	}
	if v.GreaterThan(max) {
		return decimal.Zero, violation(field, "must not be greater than %s", max)
	}
	return v, nil
}

func createLike(field, s string, re *regexp.Regexp) (string, error) {
	if s == "" {
		return "", violation(field, "must not be null or empty")
	}
	if !re.MatchString(s) {
		return "", violation(field, "'%s' must match the pattern '%s'", s, re)
	}
	return s, nil
}
