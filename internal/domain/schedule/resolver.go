package schedule

import (
	"errors"
	"strings"
	"time"

	"github.com/BruksfildServices01/booking-bridge/internal/calendar"
)

// ErrNoMatch means no calendar event mentioned the query name.
var ErrNoMatch = errors.New("no matching calendar event")

// Default search window callers use when fetching events for resolution:
// wide enough to catch "forgot the exact date" and stale rebooking requests.
const (
	ResolveWindowBack    = 30 * 24 * time.Hour
	ResolveWindowForward = 60 * 24 * time.Hour
)

// ResolveEvent finds the single event the caller means when no event id was
// supplied. The match is a deliberately loose heuristic: case-insensitive
// substring containment of the query name in the event summary or
// description. Disambiguation:
//
//   - exactly one match: that one, regardless of targetDate
//   - several matches + targetDate: the one whose start is closest in
//     absolute time to targetDate (ties keep list order)
//   - several matches, no targetDate: the soonest future match (start >=
//     now); if none are in the future, the most recent past match
func ResolveEvent(
	events []calendar.Event,
	query string,
	targetDate *time.Time,
	now time.Time,
) (*calendar.Event, error) {

	needle := strings.ToLower(strings.TrimSpace(query))
	if needle == "" {
		return nil, ErrNoMatch
	}

	var matches []calendar.Event
	for _, ev := range events {
		haystack := strings.ToLower(ev.Summary + " " + ev.Description)
		if strings.Contains(haystack, needle) {
			matches = append(matches, ev)
		}
	}

	switch len(matches) {
	case 0:
		return nil, ErrNoMatch
	case 1:
		return &matches[0], nil
	}

	if targetDate != nil {
		best := 0
		bestDist := absDuration(matches[0].Start.Sub(*targetDate))
		for i := 1; i < len(matches); i++ {
			if d := absDuration(matches[i].Start.Sub(*targetDate)); d < bestDist {
				best, bestDist = i, d
			}
		}
		return &matches[best], nil
	}

	// Soonest upcoming, else most recent past.
	var future, past *calendar.Event
	for i := range matches {
		ev := &matches[i]
		if !ev.Start.Before(now) {
			if future == nil || ev.Start.Before(future.Start) {
				future = ev
			}
			continue
		}
		if past == nil || ev.Start.After(past.Start) {
			past = ev
		}
	}
	if future != nil {
		return future, nil
	}
	return past, nil
}

func absDuration(d time.Duration) time.Duration {
	if d < 0 {
		return -d
	}
	return d
}
