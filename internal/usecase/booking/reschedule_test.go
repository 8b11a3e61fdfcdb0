package booking

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/booking-bridge/internal/calendar"
	"github.com/BruksfildServices01/booking-bridge/internal/httperr"
	"github.com/BruksfildServices01/booking-bridge/internal/models"
)

func newRescheduleUC(repo *stubRepo, gw *stubGateway, loc *time.Location, now time.Time) *RescheduleAppointment {
	uc := NewRescheduleAppointment(repo, stubProvider{gw}, nopSink{}, zerolog.Nop(), loc)
	uc.now = func() time.Time { return now }
	return uc
}

func TestReschedule_PreservesOriginalDuration(t *testing.T) {
	loc := pacific(t)
	repo := newStubRepo()
	repo.barbers[1] = seededBarber()
	repo.updateByEventN = 1

	// Existing 45-minute appointment [09:00, 09:45).
	gw := newStubGateway()
	gw.getResult["evt-1"] = &calendar.Event{
		ID:    "evt-1",
		Start: time.Date(2025, 6, 2, 9, 0, 0, 0, time.UTC),
		End:   time.Date(2025, 6, 2, 9, 45, 0, 0, time.UTC),
	}

	uc := newRescheduleUC(repo, gw, loc, time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC))

	res, err := uc.Execute(context.Background(), RescheduleInput{
		ClientPhone:      "+15552223333",
		EventID:          "evt-1",
		NewStartDateTime: "2025-06-03T14:00:00Z",
		BarberID:         uintPtr(1),
	})
	require.NoError(t, err)

	assert.Equal(t, 45*time.Minute, res.End.Sub(res.Start), "duration must carry over")

	patch := gw.patched["evt-1"]
	require.NotNil(t, patch.Start)
	require.NotNil(t, patch.End)
	assert.Equal(t, 45*time.Minute, patch.End.Sub(*patch.Start))
	assert.Empty(t, patch.Summary, "summary untouched unless a new service is supplied")
}

func TestReschedule_ExplicitDurationWins(t *testing.T) {
	repo := newStubRepo()
	repo.barbers[1] = seededBarber()
	repo.updateByEventN = 1

	gw := newStubGateway()
	gw.getResult["evt-1"] = &calendar.Event{
		ID:    "evt-1",
		Start: time.Date(2025, 6, 2, 9, 0, 0, 0, time.UTC),
		End:   time.Date(2025, 6, 2, 9, 45, 0, 0, time.UTC),
	}

	uc := newRescheduleUC(repo, gw, pacific(t), time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC))

	res, err := uc.Execute(context.Background(), RescheduleInput{
		ClientPhone:      "+15552223333",
		EventID:          "evt-1",
		NewStartDateTime: "2025-06-03T14:00:00Z",
		DurationMinutes:  60,
		BarberID:         uintPtr(1),
	})
	require.NoError(t, err)
	assert.Equal(t, time.Hour, res.End.Sub(res.Start))
}

func TestReschedule_ExplicitIDNotFound(t *testing.T) {
	repo := newStubRepo()
	repo.barbers[1] = seededBarber()
	gw := newStubGateway() // empty getResult -> ErrEventNotFound

	uc := newRescheduleUC(repo, gw, pacific(t), time.Now().UTC())

	_, err := uc.Execute(context.Background(), RescheduleInput{
		ClientPhone:      "+15552223333",
		EventID:          "missing",
		NewStartDateTime: "2025-06-03T14:00:00Z",
		BarberID:         uintPtr(1),
	})
	assert.Equal(t, httperr.CodeNotFound, httperr.BusinessCode(err))
}

func TestReschedule_ResolvesByNameWithOldStartHint(t *testing.T) {
	now := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	repo := newStubRepo()
	repo.barbers[1] = seededBarber()
	repo.updateByEventN = 1

	// Two events mention Jane; the hint points at the second.
	gw := newStubGateway()
	gw.listResult = []calendar.Event{
		{
			ID:      "evt-far",
			Summary: "Haircut - Jane",
			Start:   time.Date(2025, 6, 3, 10, 0, 0, 0, time.UTC),
			End:     time.Date(2025, 6, 3, 10, 30, 0, 0, time.UTC),
		},
		{
			ID:      "evt-near",
			Summary: "Haircut - Jane",
			Start:   time.Date(2025, 6, 10, 10, 0, 0, 0, time.UTC),
			End:     time.Date(2025, 6, 10, 10, 30, 0, 0, time.UTC),
		},
	}

	uc := newRescheduleUC(repo, gw, pacific(t), now)

	_, err := uc.Execute(context.Background(), RescheduleInput{
		ClientPhone:      "+15552223333",
		ClientName:       "Jane",
		OldStartDateTime: "2025-06-10T09:00:00Z",
		NewStartDateTime: "2025-06-12T14:00:00Z",
		BarberID:         uintPtr(1),
	})
	require.NoError(t, err)

	_, hitNear := gw.patched["evt-near"]
	assert.True(t, hitNear, "should reschedule the event closest to the old start")
}

func TestReschedule_StaleEventIDFallsBackToNearSearch(t *testing.T) {
	repo := newStubRepo()
	repo.barbers[1] = seededBarber()
	repo.updateByEventN = 0 // stored event id matched nothing

	oldStart := time.Date(2025, 6, 2, 9, 0, 0, 0, time.UTC)
	stale := &models.Appointment{
		ID:              7,
		ClientPhone:     "+15552223333",
		CalendarEventID: "evt-stale",
		StartTime:       oldStart,
		EndTime:         oldStart.Add(30 * time.Minute),
	}
	repo.nearResult = stale

	gw := newStubGateway()
	gw.getResult["evt-1"] = &calendar.Event{
		ID:    "evt-1",
		Start: oldStart,
		End:   oldStart.Add(30 * time.Minute),
	}

	uc := newRescheduleUC(repo, gw, pacific(t), time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC))

	res, err := uc.Execute(context.Background(), RescheduleInput{
		ClientPhone:      "+15552223333",
		EventID:          "evt-1",
		NewStartDateTime: "2025-06-03T14:00:00Z",
		BarberID:         uintPtr(1),
	})
	require.NoError(t, err)
	assert.True(t, res.CalendarSynced)

	require.Len(t, repo.updated, 1)
	healed := repo.updated[0]
	assert.Equal(t, "evt-1", healed.CalendarEventID, "fallback repairs the stale join key")
	assert.True(t, healed.StartTime.Equal(time.Date(2025, 6, 3, 14, 0, 0, 0, time.UTC)))
}

func TestReschedule_NoLocalRowAnywhereFlagsDivergence(t *testing.T) {
	repo := newStubRepo()
	repo.barbers[1] = seededBarber()
	repo.updateByEventN = 0
	repo.nearResult = nil

	gw := newStubGateway()
	gw.getResult["evt-1"] = &calendar.Event{
		ID:    "evt-1",
		Start: time.Date(2025, 6, 2, 9, 0, 0, 0, time.UTC),
		End:   time.Date(2025, 6, 2, 9, 30, 0, 0, time.UTC),
	}

	uc := newRescheduleUC(repo, gw, pacific(t), time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC))

	res, err := uc.Execute(context.Background(), RescheduleInput{
		ClientPhone:      "+15552223333",
		EventID:          "evt-1",
		NewStartDateTime: "2025-06-03T14:00:00Z",
		BarberID:         uintPtr(1),
	})
	require.NoError(t, err, "remote move still succeeded")
	assert.False(t, res.CalendarSynced)
}

func TestReschedule_UpstreamUpdateFailure(t *testing.T) {
	repo := newStubRepo()
	repo.barbers[1] = seededBarber()

	gw := newStubGateway()
	gw.getResult["evt-1"] = &calendar.Event{
		ID:    "evt-1",
		Start: time.Date(2025, 6, 2, 9, 0, 0, 0, time.UTC),
		End:   time.Date(2025, 6, 2, 9, 30, 0, 0, time.UTC),
	}
	gw.updateErr = errors.New("quota exceeded")

	uc := newRescheduleUC(repo, gw, pacific(t), time.Now().UTC())

	_, err := uc.Execute(context.Background(), RescheduleInput{
		ClientPhone:      "+15552223333",
		EventID:          "evt-1",
		NewStartDateTime: "2025-06-03T14:00:00Z",
		BarberID:         uintPtr(1),
	})
	assert.Equal(t, httperr.CodeUpstream, httperr.BusinessCode(err))
}
