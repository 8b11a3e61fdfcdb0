package schedule

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"
)

// ErrMalformedTimestamp rejects strings that match neither an
// offset-qualified nor a bare YYYY-MM-DDTHH:MM:SS pattern.
var ErrMalformedTimestamp = errors.New("malformed timestamp")

var fractionRe = regexp.MustCompile(`\.\d+`)

// Offset-qualified layouts tried in order. RFC3339 covers both "Z" and
// "±HH:MM"; the second form covers compact "±HHMM" offsets.
var offsetLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05Z0700",
}

const naiveLayout = "2006-01-02T15:04:05"

// ParseTimestamp normalizes a heterogeneous incoming date-time string to an
// absolute instant.
//
// Strings carrying an explicit offset (or Zulu marker) parse literally.
// Naive strings are wall-clock time in loc, so the UTC offset is resolved
// for the *target* date — across a daylight-saving boundary the offset on
// the appointment's date is what matters, not today's. Sub-second precision
// is dropped before matching.
func ParseTimestamp(raw string, loc *time.Location) (time.Time, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return time.Time{}, fmt.Errorf("%w: empty string", ErrMalformedTimestamp)
	}

	s = fractionRe.ReplaceAllString(s, "")

	for _, layout := range offsetLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}

	if t, err := time.ParseInLocation(naiveLayout, s, loc); err == nil {
		return t, nil
	}

	return time.Time{}, fmt.Errorf("%w: %q", ErrMalformedTimestamp, raw)
}
