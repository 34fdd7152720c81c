// Package parse provides the numeric coercion rules used when importing
// doctor records from free-text source columns. Every function is total:
// unparseable input yields the zero value with ok=false so callers can tell
// "missing" apart from a true zero.
package parse

import (
	"strconv"
	"strings"
	"unicode"
)

// Int parses s as a non-negative integer. Leading/trailing whitespace and
// thousands separators are tolerated. Returns (0, false) when s carries no
// usable number.
func Int(s string) (int, bool) {
	s = strings.TrimSpace(s)
	s = strings.ReplaceAll(s, ",", "")
	if s == "" {
		return 0, false
	}
	v, err := strconv.Atoi(s)
	if err != nil || v < 0 {
		return 0, false
	}
	return v, true
}

// LeadingInt extracts the first run of digits anywhere in s, e.g.
// "Year 12" -> 12, "15 Years" -> 15. Returns (0, false) when s contains
// no digits.
func LeadingInt(s string) (int, bool) {
	start := -1
	for i, r := range s {
		if unicode.IsDigit(r) {
			start = i
			break
		}
	}
	if start < 0 {
		return 0, false
	}
	end := start
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	v, err := strconv.Atoi(s[start:end])
	if err != nil {
		return 0, false
	}
	return v, true
}
