package schedule

import (
	"errors"
	"testing"
	"time"
)

func pacific(t *testing.T) *time.Location {
	t.Helper()
	loc, err := time.LoadLocation("America/Los_Angeles")
	if err != nil {
		t.Fatalf("load location: %v", err)
	}
	return loc
}

func TestParseTimestamp_OffsetFormsAgree(t *testing.T) {
	loc := pacific(t)

	// The same instant expressed three ways.
	inputs := []string{
		"2025-03-10T16:00:00Z",
		"2025-03-10T09:00:00-07:00",
		"2025-03-10T09:00:00.000-07:00",
	}

	want := time.Date(2025, 3, 10, 16, 0, 0, 0, time.UTC)

	for _, in := range inputs {
		got, err := ParseTimestamp(in, loc)
		if err != nil {
			t.Fatalf("ParseTimestamp(%q): %v", in, err)
		}
		if !got.Equal(want) {
			t.Fatalf("ParseTimestamp(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestParseTimestamp_NaiveUsesTargetDateOffset(t *testing.T) {
	loc := pacific(t)

	tests := []struct {
		name    string
		in      string
		wantUTC time.Time
	}{
		{
			// March 10 2025 is after the spring-forward: PDT, UTC-7.
			name:    "daylight time",
			in:      "2025-03-10T09:00:00",
			wantUTC: time.Date(2025, 3, 10, 16, 0, 0, 0, time.UTC),
		},
		{
			// January is standard time: PST, UTC-8.
			name:    "standard time",
			in:      "2025-01-15T09:00:00",
			wantUTC: time.Date(2025, 1, 15, 17, 0, 0, 0, time.UTC),
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := ParseTimestamp(tc.in, loc)
			if err != nil {
				t.Fatalf("ParseTimestamp(%q): %v", tc.in, err)
			}
			if !got.Equal(tc.wantUTC) {
				t.Fatalf("ParseTimestamp(%q) = %v, want %v", tc.in, got.UTC(), tc.wantUTC)
			}
		})
	}
}

func TestParseTimestamp_StripsFractionalSeconds(t *testing.T) {
	loc := pacific(t)

	got, err := ParseTimestamp("2025-06-01T10:30:00.123456", loc)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Nanosecond() != 0 {
		t.Fatalf("expected sub-second precision dropped, got %v", got)
	}
	want := time.Date(2025, 6, 1, 10, 30, 0, 0, loc)
	if !got.Equal(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
}

func TestParseTimestamp_Malformed(t *testing.T) {
	loc := pacific(t)

	for _, in := range []string{"", "next tuesday", "2025-03-10", "10:30", "2025/03/10 09:00"} {
		_, err := ParseTimestamp(in, loc)
		if !errors.Is(err, ErrMalformedTimestamp) {
			t.Fatalf("ParseTimestamp(%q): expected ErrMalformedTimestamp, got %v", in, err)
		}
	}
}
