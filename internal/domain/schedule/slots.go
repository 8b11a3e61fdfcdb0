package schedule

import "time"

// FindSlots walks forward from searchStart and collects up to count free
// intervals of slotDuration, stopping once the cursor passes horizon.
//
// A candidate [cursor, cursor+slotDuration) is checked against every busy
// interval independently, so the busy list does not need to be sorted or
// de-overlapped. Accepting a candidate advances the cursor to its end;
// rejecting one advances by a single slot duration.
//
// Each call is independent and idempotent for the same busy snapshot.
func FindSlots(
	busy []Interval,
	searchStart time.Time,
	slotDuration time.Duration,
	count int,
	horizon time.Time,
) []Interval {

	slots := make([]Interval, 0, count)
	if count <= 0 || slotDuration <= 0 {
		return slots
	}

	for cursor := searchStart; len(slots) < count && cursor.Before(horizon); {
		candidate := Interval{Start: cursor, End: cursor.Add(slotDuration)}

		conflict := false
		for _, b := range busy {
			if candidate.Overlaps(b) {
				conflict = true
				break
			}
		}

		if conflict {
			cursor = cursor.Add(slotDuration)
			continue
		}

		slots = append(slots, candidate)
		cursor = candidate.End
	}

	return slots
}
