package conversation

import (
	"context"
	"time"

	"github.com/BruksfildServices01/booking-bridge/internal/models"
)

// Repository persists sessions and their ordered, immutable messages.
type Repository interface {
	GetOrCreateSession(
		ctx context.Context,
		clientPhone string,
	) (*models.ConversationSession, error)

	AppendMessage(
		ctx context.Context,
		sessionID uint,
		role string,
		content string,
	) (*models.ConversationMessage, error)

	TouchSession(
		ctx context.Context,
		sessionID uint,
		at time.Time,
	) error

	// LatestMessageAt reports the newest caller message instant, matching
	// what the LastSeen cache tracks; zero time when there is none.
	LatestMessageAt(
		ctx context.Context,
		clientPhone string,
	) (time.Time, error)

	ListMessages(
		ctx context.Context,
		clientPhone string,
	) ([]models.ConversationMessage, error)

	ListUnprocessedCallerMessages(
		ctx context.Context,
		clientPhone string,
	) ([]models.ConversationMessage, error)

	MarkProcessed(
		ctx context.Context,
		messageIDs []uint,
	) error

	ClearSession(
		ctx context.Context,
		clientPhone string,
	) error
}

// LastSeen tracks the newest inbound message instant per session, kept in a
// fast store so debounce polling avoids a table scan.
type LastSeen interface {
	Touch(ctx context.Context, clientPhone string, at time.Time) error

	// Last returns the zero time when nothing is recorded.
	Last(ctx context.Context, clientPhone string) (time.Time, error)
}
