package booking

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/BruksfildServices01/booking-bridge/internal/audit"
	"github.com/BruksfildServices01/booking-bridge/internal/calendar"
	domain "github.com/BruksfildServices01/booking-bridge/internal/domain/booking"
	"github.com/BruksfildServices01/booking-bridge/internal/httperr"
	"github.com/BruksfildServices01/booking-bridge/internal/models"
)

// ======================================================
// INPUT / OUTPUT
// ======================================================

type CreateInput struct {
	ClientPhone string
	ClientName  string
	ClientEmail string

	Service         string
	StartDateTime   string
	DurationMinutes int
	Notes           string

	BarberID *uint
}

type Result struct {
	EventID  string    `json:"eventId"`
	Start    time.Time `json:"start"`
	End      time.Time `json:"end"`
	HTMLLink string    `json:"htmlLink,omitempty"`

	// CalendarSynced is false when the remote calendar mutation succeeded
	// but the local record store could not be reconciled. The calendar is
	// what the user sees, so the operation still counts as a success.
	CalendarSynced bool `json:"calendarSynced"`
}

// ======================================================
// USE CASE
// ======================================================

type CreateAppointment struct {
	repo     domain.Repository
	provider calendar.Provider
	audit    audit.Sink
	logger   zerolog.Logger
	loc      *time.Location
}

func NewCreateAppointment(
	repo domain.Repository,
	provider calendar.Provider,
	auditor audit.Sink,
	logger zerolog.Logger,
	loc *time.Location,
) *CreateAppointment {
	return &CreateAppointment{
		repo:     repo,
		provider: provider,
		audit:    auditor,
		logger:   logger.With().Str("usecase", "create_appointment").Logger(),
		loc:      loc,
	}
}

func (uc *CreateAppointment) Execute(
	ctx context.Context,
	in CreateInput,
) (*Result, error) {

	if in.StartDateTime == "" {
		return nil, httperr.ErrBusinessf(httperr.CodeValidation, "startDateTime is required")
	}

	start, err := parseTimestamp(in.StartDateTime, uc.loc)
	if err != nil {
		return nil, err
	}

	duration := time.Duration(in.DurationMinutes) * time.Minute
	if duration <= 0 {
		duration = DefaultDurationMinutes * time.Minute
	}
	end := start.Add(duration)

	barber, err := resolveBarber(ctx, uc.repo, in.BarberID, in.ClientPhone)
	if err != nil {
		return nil, err
	}
	if err := requireCredential(barber); err != nil {
		return nil, err
	}

	gw := uc.provider.ForCredential(barber.RefreshToken)

	event, err := gw.InsertEvent(ctx, barber.CalendarID, calendar.EventDraft{
		Summary:     eventSummary(in.Service, in.ClientName, in.ClientPhone),
		Description: eventDescription(in.ClientName, in.ClientPhone, in.Notes),
		Start:       start,
		End:         end,
	})
	if err != nil {
		return nil, classifyGatewayErr(err)
	}

	// The remote event exists now; everything below is best-effort
	// reconciliation of the local store.
	synced := uc.reconcileCreate(ctx, in, barber, event, start, end)

	uc.audit.Dispatch(audit.Event{
		BarberID: &barber.ID,
		Action:   "appointment_created",
		Entity:   "appointment",
		EntityID: event.ID,
		Metadata: map[string]any{
			"client_phone": in.ClientPhone,
			"start":        start,
			"end":          end,
			"synced":       synced,
		},
	})

	return &Result{
		EventID:        event.ID,
		Start:          start,
		End:            end,
		HTMLLink:       event.HTMLLink,
		CalendarSynced: synced,
	}, nil
}

func (uc *CreateAppointment) reconcileCreate(
	ctx context.Context,
	in CreateInput,
	barber *models.Barber,
	event *calendar.Event,
	start, end time.Time,
) bool {

	client, err := uc.repo.GetOrCreateClient(ctx, in.ClientPhone, in.ClientName, in.ClientEmail)
	if err != nil {
		uc.logger.Warn().Err(err).
			Str("client_phone", in.ClientPhone).
			Str("event_id", event.ID).
			Msg("remote event created but client record failed")
		return false
	}

	if client.PreferredBarberID == nil {
		client.PreferredBarberID = &barber.ID
		if err := uc.repo.SaveClient(ctx, client); err != nil {
			uc.logger.Warn().Err(err).
				Str("client_phone", in.ClientPhone).
				Msg("could not persist preferred barber")
		}
	}

	ap := &models.Appointment{
		ClientPhone:     in.ClientPhone,
		BarberID:        barber.ID,
		Service:         in.Service,
		StartTime:       start,
		EndTime:         end,
		CalendarEventID: event.ID,
		Notes:           in.Notes,
	}

	if err := uc.repo.CreateAppointment(ctx, ap); err != nil {
		uc.logger.Warn().Err(err).
			Str("event_id", event.ID).
			Msg("remote event created but local appointment row failed")
		return false
	}

	if err := uc.repo.UpdateClientBooking(
		ctx,
		in.ClientPhone,
		BookingStatusBooked,
		bookingDetail(in.Service, start, end, event.ID),
		time.Now().UTC(),
	); err != nil {
		uc.logger.Warn().Err(err).
			Str("client_phone", in.ClientPhone).
			Msg("booking snapshot update failed")
	}

	return true
}

func eventDescription(clientName, clientPhone, notes string) string {
	desc := "client: " + clientName + " " + clientPhone
	if notes != "" {
		desc += "\nnotes: " + notes
	}
	return desc
}
