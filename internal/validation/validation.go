package validation

import "strings"

// Violations maps field names to short machine-readable violation codes.
type Violations map[string]string

func (v Violations) Empty() bool { return len(v) == 0 }

// Basic validators
func Required(field, value string, v Violations) {
	if strings.TrimSpace(value) == "" {
		v[field] = "required"
	}
}

func MinInt(field string, val, minVal int, v Violations) {
	if val < minVal {
		v[field] = "below_minimum"
	}
}

// Digits checks that value is exactly n digits (separators already stripped).
func Digits(field, value string, n int, v Violations) {
	if len(value) != n {
		v[field] = "bad_length"
		return
	}
	for _, r := range value {
		if r < '0' || r > '9' {
			v[field] = "digits_only"
			return
		}
	}
}
