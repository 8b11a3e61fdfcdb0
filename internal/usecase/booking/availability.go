package booking

import (
	"context"
	"time"

	"github.com/BruksfildServices01/booking-bridge/internal/calendar"
	domain "github.com/BruksfildServices01/booking-bridge/internal/domain/booking"
	"github.com/BruksfildServices01/booking-bridge/internal/domain/schedule"
	"github.com/BruksfildServices01/booking-bridge/internal/httperr"
	"github.com/BruksfildServices01/booking-bridge/internal/models"
)

type AvailabilityInput struct {
	BarberID    *uint
	BarberPhone string

	StartDateTime string
	EndDateTime   string
}

type AvailabilityResult struct {
	IsAvailable       bool             `json:"isAvailable"`
	ConflictingEvents []calendar.Event `json:"conflictingEvents"`
}

type CheckAvailability struct {
	repo     domain.Repository
	provider calendar.Provider
	loc      *time.Location
}

func NewCheckAvailability(
	repo domain.Repository,
	provider calendar.Provider,
	loc *time.Location,
) *CheckAvailability {
	return &CheckAvailability{
		repo:     repo,
		provider: provider,
		loc:      loc,
	}
}

func (uc *CheckAvailability) Execute(
	ctx context.Context,
	in AvailabilityInput,
) (*AvailabilityResult, error) {

	if in.StartDateTime == "" || in.EndDateTime == "" {
		return nil, httperr.ErrBusinessf(httperr.CodeValidation, "startDateTime and endDateTime are required")
	}

	start, err := parseTimestamp(in.StartDateTime, uc.loc)
	if err != nil {
		return nil, err
	}
	end, err := parseTimestamp(in.EndDateTime, uc.loc)
	if err != nil {
		return nil, err
	}
	if !end.After(start) {
		return nil, httperr.ErrBusinessf(httperr.CodeValidation, "endDateTime must be after startDateTime")
	}

	barber, err := uc.findBarber(ctx, in)
	if err != nil {
		return nil, err
	}
	if err := requireCredential(barber); err != nil {
		return nil, err
	}

	gw := uc.provider.ForCredential(barber.RefreshToken)

	events, err := gw.ListEvents(ctx, barber.CalendarID, start, end)
	if err != nil {
		return nil, classifyGatewayErr(err)
	}

	requested := schedule.Interval{Start: start, End: end}
	conflicts := make([]calendar.Event, 0)
	for _, ev := range events {
		if requested.Overlaps(schedule.Interval{Start: ev.Start, End: ev.End}) {
			conflicts = append(conflicts, ev)
		}
	}

	return &AvailabilityResult{
		IsAvailable:       len(conflicts) == 0,
		ConflictingEvents: conflicts,
	}, nil
}

func (uc *CheckAvailability) findBarber(
	ctx context.Context,
	in AvailabilityInput,
) (*models.Barber, error) {

	switch {
	case in.BarberID != nil:
		barber, err := uc.repo.GetBarberByID(ctx, *in.BarberID)
		if err != nil {
			return nil, httperr.ErrBusinessf(httperr.CodeNotFound, "barber not found")
		}
		return barber, nil
	case in.BarberPhone != "":
		barber, err := uc.repo.GetBarberByPhone(ctx, in.BarberPhone)
		if err != nil {
			return nil, httperr.ErrBusinessf(httperr.CodeNotFound, "barber not found")
		}
		return barber, nil
	default:
		return nil, httperr.ErrBusinessf(httperr.CodeValidation, "barberId or barberPhoneNumber is required")
	}
}
