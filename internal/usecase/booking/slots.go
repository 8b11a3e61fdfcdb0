package booking

import (
	"context"
	"time"

	"github.com/BruksfildServices01/booking-bridge/internal/calendar"
	domain "github.com/BruksfildServices01/booking-bridge/internal/domain/booking"
	"github.com/BruksfildServices01/booking-bridge/internal/domain/schedule"
	"github.com/BruksfildServices01/booking-bridge/internal/httperr"
)

const (
	DefaultSlotCount    = 3
	DefaultSlotHorizon  = 7 * 24 * time.Hour
	maxRequestableSlots = 20
)

type FindSlotsInput struct {
	BarberID uint

	CurrentTimestamp    string
	NumSlots            int
	SlotDurationMinutes int
}

type FindSlotsResult struct {
	Slots []schedule.Interval `json:"slots"`
}

type FindAvailableSlots struct {
	repo     domain.Repository
	provider calendar.Provider
	loc      *time.Location
}

func NewFindAvailableSlots(
	repo domain.Repository,
	provider calendar.Provider,
	loc *time.Location,
) *FindAvailableSlots {
	return &FindAvailableSlots{
		repo:     repo,
		provider: provider,
		loc:      loc,
	}
}

func (uc *FindAvailableSlots) Execute(
	ctx context.Context,
	in FindSlotsInput,
) (*FindSlotsResult, error) {

	if in.CurrentTimestamp == "" {
		return nil, httperr.ErrBusinessf(httperr.CodeValidation, "currentTimestamp is required")
	}

	searchStart, err := parseTimestamp(in.CurrentTimestamp, uc.loc)
	if err != nil {
		return nil, err
	}

	count := in.NumSlots
	if count <= 0 {
		count = DefaultSlotCount
	}
	if count > maxRequestableSlots {
		count = maxRequestableSlots
	}

	slotDuration := time.Duration(in.SlotDurationMinutes) * time.Minute
	if slotDuration <= 0 {
		slotDuration = DefaultDurationMinutes * time.Minute
	}

	barber, err := uc.repo.GetBarberByID(ctx, in.BarberID)
	if err != nil {
		return nil, httperr.ErrBusinessf(httperr.CodeNotFound, "barber not found")
	}
	if err := requireCredential(barber); err != nil {
		return nil, err
	}

	horizon := searchStart.Add(DefaultSlotHorizon)

	gw := uc.provider.ForCredential(barber.RefreshToken)
	events, err := gw.ListEvents(ctx, barber.CalendarID, searchStart, horizon)
	if err != nil {
		return nil, classifyGatewayErr(err)
	}

	busy := make([]schedule.Interval, 0, len(events))
	for _, ev := range events {
		busy = append(busy, schedule.Interval{Start: ev.Start, End: ev.End})
	}

	return &FindSlotsResult{
		Slots: schedule.FindSlots(busy, searchStart, slotDuration, count, horizon),
	}, nil
}
