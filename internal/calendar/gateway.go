package calendar

import (
	"context"
	"errors"
	"time"
)

// ErrEventNotFound is returned by GetEvent/UpdateEvent/DeleteEvent when the
// remote side reports the event id is gone.
var ErrEventNotFound = errors.New("calendar: event not found")

// Gateway is the full calendar capability for one barber's calendar,
// already bound to a credential.
type Gateway interface {
	ListEvents(ctx context.Context, calendarID string, timeMin, timeMax time.Time) ([]Event, error)
	GetEvent(ctx context.Context, calendarID, eventID string) (*Event, error)
	InsertEvent(ctx context.Context, calendarID string, draft EventDraft) (*Event, error)
	UpdateEvent(ctx context.Context, calendarID, eventID string, patch EventPatch) (*Event, error)
	DeleteEvent(ctx context.Context, calendarID, eventID string) error
}

// Provider yields a Gateway given a stored refresh credential. Token
// acquisition and refresh live behind this seam.
type Provider interface {
	ForCredential(refreshToken string) Gateway
}
