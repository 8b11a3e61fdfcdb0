package validators

import (
	"strings"
	"unicode"
)

// NormalizePhone coerces caller-supplied phone numbers to E.164. Numbers
// without a country code are assumed US/Canada (the source market), so a
// plus-less input must be exactly 10 digits (or 11 with the leading 1) —
// guessing a country for anything else would mint a wrong but
// valid-looking number. Returns "" when the input cannot plausibly be a
// phone number.
func NormalizePhone(raw string) string {
	hasPlus := strings.HasPrefix(strings.TrimSpace(raw), "+")

	var digits strings.Builder
	for _, r := range raw {
		if unicode.IsDigit(r) {
			digits.WriteRune(r)
		}
	}

	d := digits.String()
	switch {
	case len(d) < 7 || len(d) > 15:
		return ""
	case hasPlus:
		return "+" + d
	case len(d) == 10:
		return "+1" + d
	case len(d) == 11 && strings.HasPrefix(d, "1"):
		return "+" + d
	default:
		return ""
	}
}
