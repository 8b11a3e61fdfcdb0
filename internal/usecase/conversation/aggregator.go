package conversation

import (
	"context"
	"strings"
	"time"

	"github.com/rs/zerolog"

	domain "github.com/BruksfildServices01/booking-bridge/internal/domain/conversation"
	"github.com/BruksfildServices01/booking-bridge/internal/httperr"
	"github.com/BruksfildServices01/booking-bridge/internal/models"
)

// Aggregator batches rapid-fire inbound messages into one logical utterance.
// It is strictly poll-based: callers repeat ProcessBatch until the debounce
// window has elapsed with no newer message; no request thread ever sleeps.
type Aggregator struct {
	repo     domain.Repository
	lastSeen domain.LastSeen
	logger   zerolog.Logger
	window   time.Duration
	now      func() time.Time
}

func NewAggregator(
	repo domain.Repository,
	lastSeen domain.LastSeen,
	logger zerolog.Logger,
	window time.Duration,
) *Aggregator {
	return &Aggregator{
		repo:     repo,
		lastSeen: lastSeen,
		logger:   logger.With().Str("usecase", "conversation_aggregator").Logger(),
		window:   window,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

// StoreMessage appends an immutable message to the client's session and
// records its instant for debounce polling.
func (a *Aggregator) StoreMessage(
	ctx context.Context,
	clientPhone string,
	role string,
	content string,
) (*models.ConversationMessage, error) {

	if content == "" {
		return nil, httperr.ErrBusinessf(httperr.CodeValidation, "content is required")
	}
	if role == "" {
		role = models.RoleCaller
	}
	if role != models.RoleCaller && role != models.RoleSystem {
		return nil, httperr.ErrBusinessf(httperr.CodeValidation, "role must be caller or system")
	}

	session, err := a.repo.GetOrCreateSession(ctx, clientPhone)
	if err != nil {
		return nil, err
	}

	msg, err := a.repo.AppendMessage(ctx, session.ID, role, content)
	if err != nil {
		return nil, err
	}

	if err := a.repo.TouchSession(ctx, session.ID, msg.CreatedAt); err != nil {
		a.logger.Warn().Err(err).Str("client_phone", clientPhone).Msg("session touch failed")
	}

	if role == models.RoleCaller {
		if err := a.lastSeen.Touch(ctx, clientPhone, msg.CreatedAt); err != nil {
			// The session row still carries the timestamp; polling just
			// gets slower for this client.
			a.logger.Warn().Err(err).Str("client_phone", clientPhone).Msg("last-seen cache write failed")
		}
	}

	return msg, nil
}

type BatchResult struct {
	Complete  bool   `json:"complete"`
	Utterance string `json:"utterance,omitempty"`
	Messages  int    `json:"messages,omitempty"`
}

// ProcessBatch reports whether the client's current burst is final. A burst
// is final when no message arrived within the debounce window; the caller is
// expected to poll. On a final burst every unprocessed caller message is
// concatenated in order and marked processed.
func (a *Aggregator) ProcessBatch(
	ctx context.Context,
	clientPhone string,
	window time.Duration,
) (*BatchResult, error) {

	if window <= 0 {
		window = a.window
	}

	last, err := a.lastSeen.Last(ctx, clientPhone)
	if err != nil {
		a.logger.Warn().Err(err).Str("client_phone", clientPhone).Msg("last-seen cache read failed")
		last = time.Time{}
	}
	if last.IsZero() {
		// Cache miss: fall back to the persisted message log.
		last, err = a.repo.LatestMessageAt(ctx, clientPhone)
		if err != nil {
			return nil, err
		}
	}

	if last.IsZero() {
		return &BatchResult{Complete: false}, nil
	}

	if a.now().Sub(last) < window {
		return &BatchResult{Complete: false}, nil
	}

	msgs, err := a.repo.ListUnprocessedCallerMessages(ctx, clientPhone)
	if err != nil {
		return nil, err
	}
	if len(msgs) == 0 {
		return &BatchResult{Complete: false}, nil
	}

	parts := make([]string, 0, len(msgs))
	ids := make([]uint, 0, len(msgs))
	for _, m := range msgs {
		parts = append(parts, strings.TrimSpace(m.Content))
		ids = append(ids, m.ID)
	}

	if err := a.repo.MarkProcessed(ctx, ids); err != nil {
		return nil, err
	}

	return &BatchResult{
		Complete:  true,
		Utterance: strings.Join(parts, " "),
		Messages:  len(msgs),
	}, nil
}

func (a *Aggregator) History(
	ctx context.Context,
	clientPhone string,
) ([]models.ConversationMessage, error) {
	return a.repo.ListMessages(ctx, clientPhone)
}

func (a *Aggregator) Clear(
	ctx context.Context,
	clientPhone string,
) error {
	return a.repo.ClearSession(ctx, clientPhone)
}
