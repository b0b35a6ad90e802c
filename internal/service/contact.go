package service

import (
	"strings"
	"unicode"
)

// CountryCode replaces the leading trunk "0" of local numbers.
const CountryCode = "595"

// NormalizeContact strips whitespace, hyphens, parentheses and plus signs and
// rewrites a leading "0" to CountryCode. Applying it twice is a no-op.
func NormalizeContact(s string) string {
	cleaned := strings.Map(func(r rune) rune {
		switch {
		case unicode.IsSpace(r), r == '-', r == '(', r == ')', r == '+':
			return -1
		}
		return r
	}, s)

	if strings.HasPrefix(cleaned, "0") {
		cleaned = CountryCode + cleaned[1:]
	}
	return cleaned
}
