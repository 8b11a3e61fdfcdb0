package booking

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/BruksfildServices01/booking-bridge/internal/audit"
	"github.com/BruksfildServices01/booking-bridge/internal/calendar"
	domain "github.com/BruksfildServices01/booking-bridge/internal/domain/booking"
	"github.com/BruksfildServices01/booking-bridge/internal/httperr"
)

type RescheduleInput struct {
	ClientPhone string
	ClientName  string

	// EventID, when present, pins the exact remote event. Otherwise the
	// event is resolved from the client name/phone, with OldStartDateTime
	// as a date-proximity hint.
	EventID          string
	OldStartDateTime string

	NewStartDateTime string
	DurationMinutes  int
	Service          string

	BarberID *uint
}

type RescheduleAppointment struct {
	repo     domain.Repository
	provider calendar.Provider
	audit    audit.Sink
	logger   zerolog.Logger
	loc      *time.Location
	now      func() time.Time
}

func NewRescheduleAppointment(
	repo domain.Repository,
	provider calendar.Provider,
	auditor audit.Sink,
	logger zerolog.Logger,
	loc *time.Location,
) *RescheduleAppointment {
	return &RescheduleAppointment{
		repo:     repo,
		provider: provider,
		audit:    auditor,
		logger:   logger.With().Str("usecase", "reschedule_appointment").Logger(),
		loc:      loc,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

func (uc *RescheduleAppointment) Execute(
	ctx context.Context,
	in RescheduleInput,
) (*Result, error) {

	if in.NewStartDateTime == "" {
		return nil, httperr.ErrBusinessf(httperr.CodeValidation, "newStartDateTime is required")
	}

	newStart, err := parseTimestamp(in.NewStartDateTime, uc.loc)
	if err != nil {
		return nil, err
	}

	var oldStartHint *time.Time
	if in.OldStartDateTime != "" {
		t, err := parseTimestamp(in.OldStartDateTime, uc.loc)
		if err != nil {
			return nil, err
		}
		oldStartHint = &t
	}

	barber, err := resolveBarber(ctx, uc.repo, in.BarberID, in.ClientPhone)
	if err != nil {
		return nil, err
	}
	if err := requireCredential(barber); err != nil {
		return nil, err
	}

	gw := uc.provider.ForCredential(barber.RefreshToken)

	event, err := uc.locateEvent(ctx, gw, barber.CalendarID, in, oldStartHint)
	if err != nil {
		return nil, err
	}
	oldStart := event.Start

	// Preserve the original duration unless the caller supplied one. A
	// 45-minute appointment moved to 14:00 stays 45 minutes.
	duration := time.Duration(in.DurationMinutes) * time.Minute
	if duration <= 0 {
		duration = event.Duration()
	}
	if duration <= 0 {
		duration = DefaultDurationMinutes * time.Minute
	}
	newEnd := newStart.Add(duration)

	patch := calendar.EventPatch{Start: &newStart, End: &newEnd}
	if in.Service != "" {
		patch.Summary = eventSummary(in.Service, in.ClientName, in.ClientPhone)
	}

	updated, err := gw.UpdateEvent(ctx, barber.CalendarID, event.ID, patch)
	if err != nil {
		return nil, classifyGatewayErr(err)
	}

	synced := uc.reconcileReschedule(ctx, in, updated.ID, oldStart, oldStartHint, newStart, newEnd)

	uc.audit.Dispatch(audit.Event{
		BarberID: &barber.ID,
		Action:   "appointment_rescheduled",
		Entity:   "appointment",
		EntityID: updated.ID,
		Metadata: map[string]any{
			"client_phone": in.ClientPhone,
			"old_start":    oldStart,
			"new_start":    newStart,
			"synced":       synced,
		},
	})

	return &Result{
		EventID:        updated.ID,
		Start:          newStart,
		End:            newEnd,
		HTMLLink:       updated.HTMLLink,
		CalendarSynced: synced,
	}, nil
}

func (uc *RescheduleAppointment) locateEvent(
	ctx context.Context,
	gw calendar.Gateway,
	calendarID string,
	in RescheduleInput,
	oldStartHint *time.Time,
) (*calendar.Event, error) {

	if in.EventID != "" {
		event, err := gw.GetEvent(ctx, calendarID, in.EventID)
		if err != nil {
			return nil, classifyGatewayErr(err)
		}
		return event, nil
	}

	return resolveTargetEvent(ctx, gw, calendarID, in.ClientName, in.ClientPhone, oldStartHint, uc.now())
}

// reconcileReschedule updates the local row for the moved event. The stored
// event id can be stale after a prior partial failure, so a zero-row update
// falls back to the client's appointment closest to the old start time.
func (uc *RescheduleAppointment) reconcileReschedule(
	ctx context.Context,
	in RescheduleInput,
	eventID string,
	oldStart time.Time,
	oldStartHint *time.Time,
	newStart, newEnd time.Time,
) bool {

	rows, err := uc.repo.UpdateAppointmentByEventID(ctx, eventID, newStart, newEnd, in.Service)
	if err != nil {
		uc.logger.Warn().Err(err).
			Str("event_id", eventID).
			Msg("remote event moved but local update failed")
		return false
	}

	if rows == 0 {
		anchor := oldStart
		if anchor.IsZero() && oldStartHint != nil {
			anchor = *oldStartHint
		}

		ap, err := uc.repo.FindAppointmentNear(ctx, in.ClientPhone, anchor, rescheduleFallbackWin)
		if err != nil || ap == nil {
			uc.logger.Warn().Err(err).
				Str("event_id", eventID).
				Str("client_phone", in.ClientPhone).
				Time("old_start", anchor).
				Msg("no local appointment matched the rescheduled event")
			return false
		}

		ap.StartTime = newStart
		ap.EndTime = newEnd
		ap.CalendarEventID = eventID
		if in.Service != "" {
			ap.Service = in.Service
		}
		if err := uc.repo.UpdateAppointment(ctx, ap); err != nil {
			uc.logger.Warn().Err(err).
				Str("event_id", eventID).
				Msg("fallback local update failed")
			return false
		}
	}

	if err := uc.repo.UpdateClientBooking(
		ctx,
		in.ClientPhone,
		BookingStatusBooked,
		bookingDetail(in.Service, newStart, newEnd, eventID),
		time.Now().UTC(),
	); err != nil {
		uc.logger.Warn().Err(err).
			Str("client_phone", in.ClientPhone).
			Msg("booking snapshot update failed")
	}

	return true
}
