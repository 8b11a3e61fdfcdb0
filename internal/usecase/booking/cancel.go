package booking

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"

	"github.com/BruksfildServices01/booking-bridge/internal/audit"
	"github.com/BruksfildServices01/booking-bridge/internal/calendar"
	domain "github.com/BruksfildServices01/booking-bridge/internal/domain/booking"
)

type CancelInput struct {
	ClientPhone string
	ClientName  string

	EventID          string
	OldStartDateTime string

	BarberID *uint
}

type CancelResult struct {
	EventID string `json:"eventId"`

	// AlreadyGone marks an event the calendar had already dropped; the
	// cancel still succeeds so retried webhooks stay idempotent.
	AlreadyGone bool `json:"alreadyGone,omitempty"`

	CalendarSynced bool `json:"calendarSynced"`
}

type CancelAppointment struct {
	repo     domain.Repository
	provider calendar.Provider
	audit    audit.Sink
	logger   zerolog.Logger
	loc      *time.Location
	now      func() time.Time
}

func NewCancelAppointment(
	repo domain.Repository,
	provider calendar.Provider,
	auditor audit.Sink,
	logger zerolog.Logger,
	loc *time.Location,
) *CancelAppointment {
	return &CancelAppointment{
		repo:     repo,
		provider: provider,
		audit:    auditor,
		logger:   logger.With().Str("usecase", "cancel_appointment").Logger(),
		loc:      loc,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

func (uc *CancelAppointment) Execute(
	ctx context.Context,
	in CancelInput,
) (*CancelResult, error) {

	barber, err := resolveBarber(ctx, uc.repo, in.BarberID, in.ClientPhone)
	if err != nil {
		return nil, err
	}
	if err := requireCredential(barber); err != nil {
		return nil, err
	}

	gw := uc.provider.ForCredential(barber.RefreshToken)

	eventID := in.EventID
	if eventID == "" {
		var hint *time.Time
		if in.OldStartDateTime != "" {
			t, err := parseTimestamp(in.OldStartDateTime, uc.loc)
			if err != nil {
				return nil, err
			}
			hint = &t
		}

		event, err := resolveTargetEvent(ctx, gw, barber.CalendarID, in.ClientName, in.ClientPhone, hint, uc.now())
		if err != nil {
			return nil, err
		}
		eventID = event.ID
	}

	alreadyGone := false
	if err := gw.DeleteEvent(ctx, barber.CalendarID, eventID); err != nil {
		if !errors.Is(err, calendar.ErrEventNotFound) {
			return nil, classifyGatewayErr(err)
		}
		// Already deleted remotely: a retried cancel is not a failure.
		alreadyGone = true
	}

	synced := true
	if err := uc.repo.DeleteAppointmentByEventID(ctx, eventID); err != nil {
		uc.logger.Warn().Err(err).
			Str("event_id", eventID).
			Msg("remote event deleted but local row removal failed")
		synced = false
	}

	if err := uc.repo.UpdateClientBooking(
		ctx,
		in.ClientPhone,
		BookingStatusCancelled,
		"",
		time.Now().UTC(),
	); err != nil {
		uc.logger.Warn().Err(err).
			Str("client_phone", in.ClientPhone).
			Msg("booking snapshot update failed")
	}

	uc.audit.Dispatch(audit.Event{
		BarberID: &barber.ID,
		Action:   "appointment_cancelled",
		Entity:   "appointment",
		EntityID: eventID,
		Metadata: map[string]any{
			"client_phone": in.ClientPhone,
			"already_gone": alreadyGone,
			"synced":       synced,
		},
	})

	return &CancelResult{
		EventID:        eventID,
		AlreadyGone:    alreadyGone,
		CalendarSynced: synced,
	}, nil
}
