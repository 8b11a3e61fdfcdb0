package booking

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/BruksfildServices01/booking-bridge/internal/calendar"
	domain "github.com/BruksfildServices01/booking-bridge/internal/domain/booking"
	"github.com/BruksfildServices01/booking-bridge/internal/domain/schedule"
	"github.com/BruksfildServices01/booking-bridge/internal/httperr"
	"github.com/BruksfildServices01/booking-bridge/internal/models"
)

const (
	DefaultDurationMinutes = 30
	rescheduleFallbackWin  = 24 * time.Hour
)

// Booking-state snapshot values written to the client row.
const (
	BookingStatusBooked    = "booked"
	BookingStatusCancelled = "cancelled"
)

// resolveBarber finds the barber an operation targets: an explicit id wins,
// otherwise the client's stored preference.
func resolveBarber(
	ctx context.Context,
	repo domain.Repository,
	barberID *uint,
	clientPhone string,
) (*models.Barber, error) {

	if barberID != nil {
		barber, err := repo.GetBarberByID(ctx, *barberID)
		if err != nil {
			return nil, httperr.ErrBusinessf(httperr.CodeNotFound, "barber not found")
		}
		return barber, nil
	}

	client, err := repo.GetClientByPhone(ctx, clientPhone)
	if err != nil || client.PreferredBarberID == nil {
		return nil, httperr.ErrBusinessf(httperr.CodeValidation, "no barber specified and client has no preferred barber")
	}

	barber, err := repo.GetBarberByID(ctx, *client.PreferredBarberID)
	if err != nil {
		return nil, httperr.ErrBusinessf(httperr.CodeNotFound, "preferred barber not found")
	}
	return barber, nil
}

func requireCredential(barber *models.Barber) error {
	if barber.RefreshToken == "" {
		return httperr.ErrBusinessf(httperr.CodeValidation, "barber has not connected a calendar")
	}
	return nil
}

// resolveTargetEvent locates the calendar event a caller means when no
// explicit event id was supplied, matching by client name first and phone
// second via the loose substring heuristic.
func resolveTargetEvent(
	ctx context.Context,
	gw calendar.Gateway,
	calendarID string,
	clientName string,
	clientPhone string,
	targetDate *time.Time,
	now time.Time,
) (*calendar.Event, error) {

	events, err := gw.ListEvents(ctx,
		calendarID,
		now.Add(-schedule.ResolveWindowBack),
		now.Add(schedule.ResolveWindowForward),
	)
	if err != nil {
		return nil, classifyGatewayErr(err)
	}

	for _, query := range []string{clientName, clientPhone} {
		if strings.TrimSpace(query) == "" {
			continue
		}
		ev, err := schedule.ResolveEvent(events, query, targetDate, now)
		if err == nil {
			return ev, nil
		}
		if !errors.Is(err, schedule.ErrNoMatch) {
			return nil, err
		}
	}

	return nil, httperr.ErrBusinessf(httperr.CodeNotFound, "no calendar event matches the client")
}

// classifyGatewayErr maps calendar failures onto the error taxonomy:
// missing event is the caller's problem, everything else is retryable.
func classifyGatewayErr(err error) error {
	if errors.Is(err, calendar.ErrEventNotFound) {
		return httperr.ErrBusinessf(httperr.CodeNotFound, "calendar event not found")
	}
	return httperr.ErrBusinessf(httperr.CodeUpstream, err.Error())
}

func parseTimestamp(raw string, loc *time.Location) (time.Time, error) {
	t, err := schedule.ParseTimestamp(raw, loc)
	if err != nil {
		return time.Time{}, httperr.ErrBusinessf(httperr.CodeMalformedTimestamp, err.Error())
	}
	return t, nil
}

func eventSummary(service, clientName, clientPhone string) string {
	who := clientName
	if who == "" {
		who = clientPhone
	}
	if service == "" {
		return who
	}
	return fmt.Sprintf("%s - %s", service, who)
}

func bookingDetail(service string, start, end time.Time, eventID string) string {
	b, _ := json.Marshal(map[string]any{
		"service":  service,
		"start":    start,
		"end":      end,
		"event_id": eventID,
	})
	return string(b)
}
