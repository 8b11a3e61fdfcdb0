package calendar

import "time"

// Event mirrors the remote calendar's view of a booking. The calendar is a
// second source of truth: events can be edited out-of-band, so nothing here
// assumes exclusive ownership of the lifecycle.
type Event struct {
	ID          string    `json:"id"`
	Summary     string    `json:"summary"`
	Description string    `json:"description"`
	Start       time.Time `json:"start"`
	End         time.Time `json:"end"`
	HTMLLink    string    `json:"html_link,omitempty"`
	Status      string    `json:"status,omitempty"`
}

// EventDraft is the payload for inserting a new event.
type EventDraft struct {
	Summary     string
	Description string
	Start       time.Time
	End         time.Time
}

// EventPatch updates only the fields that are set; nil time pointers and
// empty strings leave the remote value untouched.
type EventPatch struct {
	Summary string
	Start   *time.Time
	End     *time.Time
}

func (e Event) Duration() time.Duration {
	return e.End.Sub(e.Start)
}
