package booking

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/booking-bridge/internal/httperr"
)

func pacific(t *testing.T) *time.Location {
	t.Helper()
	loc, err := time.LoadLocation("America/Los_Angeles")
	require.NoError(t, err)
	return loc
}

func newCreateUC(repo *stubRepo, gw *stubGateway, loc *time.Location) *CreateAppointment {
	return NewCreateAppointment(repo, stubProvider{gw}, nopSink{}, zerolog.Nop(), loc)
}

func TestCreate_NaivePacificTimestamp(t *testing.T) {
	loc := pacific(t)
	repo := newStubRepo()
	repo.barbers[1] = seededBarber()
	gw := newStubGateway()

	uc := newCreateUC(repo, gw, loc)

	res, err := uc.Execute(context.Background(), CreateInput{
		ClientPhone:     "+15552223333",
		ClientName:      "Jane",
		Service:         "Haircut",
		StartDateTime:   "2025-03-10T09:00:00", // PDT in effect: UTC-7
		DurationMinutes: 30,
		BarberID:        uintPtr(1),
	})
	require.NoError(t, err)

	wantStart := time.Date(2025, 3, 10, 16, 0, 0, 0, time.UTC)
	assert.True(t, res.Start.Equal(wantStart), "start = %v, want %v", res.Start, wantStart)
	assert.True(t, res.End.Equal(wantStart.Add(30*time.Minute)))
	assert.Equal(t, "evt-new", res.EventID)
	assert.True(t, res.CalendarSynced)

	// Remote draft carries the same instant.
	require.Len(t, gw.inserted, 1)
	assert.True(t, gw.inserted[0].Start.Equal(wantStart))

	// Local row references the new remote event.
	require.Len(t, repo.created, 1)
	assert.Equal(t, "evt-new", repo.created[0].CalendarEventID)
	assert.True(t, repo.created[0].StartTime.Equal(wantStart))
	assert.Equal(t, uint(1), repo.created[0].BarberID)
}

func TestCreate_DefaultDurationIs30Minutes(t *testing.T) {
	repo := newStubRepo()
	repo.barbers[1] = seededBarber()
	gw := newStubGateway()

	uc := newCreateUC(repo, gw, pacific(t))

	res, err := uc.Execute(context.Background(), CreateInput{
		ClientPhone:   "+15552223333",
		StartDateTime: "2025-06-01T10:00:00Z",
		BarberID:      uintPtr(1),
	})
	require.NoError(t, err)
	assert.Equal(t, 30*time.Minute, res.End.Sub(res.Start))
}

func TestCreate_UsesClientPreferredBarber(t *testing.T) {
	repo := newStubRepo()
	barber := seededBarber()
	repo.barbers[1] = barber
	repo.clients["+15552223333"] = clientWithPreference("+15552223333", 1)
	gw := newStubGateway()

	uc := newCreateUC(repo, gw, pacific(t))

	_, err := uc.Execute(context.Background(), CreateInput{
		ClientPhone:   "+15552223333",
		StartDateTime: "2025-06-01T10:00:00Z",
	})
	require.NoError(t, err)
	require.Len(t, gw.inserted, 1)
}

func TestCreate_NoBarberResolvable(t *testing.T) {
	repo := newStubRepo()
	gw := newStubGateway()

	uc := newCreateUC(repo, gw, pacific(t))

	_, err := uc.Execute(context.Background(), CreateInput{
		ClientPhone:   "+15552223333",
		StartDateTime: "2025-06-01T10:00:00Z",
	})
	assert.Equal(t, httperr.CodeValidation, httperr.BusinessCode(err))
	assert.Empty(t, gw.inserted, "no remote mutation before validation passes")
}

func TestCreate_BarberWithoutCredential(t *testing.T) {
	repo := newStubRepo()
	barber := seededBarber()
	barber.RefreshToken = ""
	repo.barbers[1] = barber
	gw := newStubGateway()

	uc := newCreateUC(repo, gw, pacific(t))

	_, err := uc.Execute(context.Background(), CreateInput{
		ClientPhone:   "+15552223333",
		StartDateTime: "2025-06-01T10:00:00Z",
		BarberID:      uintPtr(1),
	})
	assert.Equal(t, httperr.CodeValidation, httperr.BusinessCode(err))
}

func TestCreate_MalformedTimestamp(t *testing.T) {
	repo := newStubRepo()
	repo.barbers[1] = seededBarber()

	uc := newCreateUC(repo, newStubGateway(), pacific(t))

	_, err := uc.Execute(context.Background(), CreateInput{
		ClientPhone:   "+15552223333",
		StartDateTime: "tomorrow at nine",
		BarberID:      uintPtr(1),
	})
	assert.Equal(t, httperr.CodeMalformedTimestamp, httperr.BusinessCode(err))
}

func TestCreate_LocalPersistenceFailureStillSucceeds(t *testing.T) {
	repo := newStubRepo()
	repo.barbers[1] = seededBarber()
	repo.createErr = errors.New("db down")
	gw := newStubGateway()

	uc := newCreateUC(repo, gw, pacific(t))

	res, err := uc.Execute(context.Background(), CreateInput{
		ClientPhone:   "+15552223333",
		StartDateTime: "2025-06-01T10:00:00Z",
		BarberID:      uintPtr(1),
	})
	require.NoError(t, err, "remote calendar is the user-visible effect")
	assert.Equal(t, "evt-new", res.EventID)
	assert.False(t, res.CalendarSynced, "divergence must be flagged")
}

func TestCreate_UpstreamFailure(t *testing.T) {
	repo := newStubRepo()
	repo.barbers[1] = seededBarber()
	gw := newStubGateway()
	gw.insertErr = errors.New("503 backend unavailable")

	uc := newCreateUC(repo, gw, pacific(t))

	_, err := uc.Execute(context.Background(), CreateInput{
		ClientPhone:   "+15552223333",
		StartDateTime: "2025-06-01T10:00:00Z",
		BarberID:      uintPtr(1),
	})
	assert.Equal(t, httperr.CodeUpstream, httperr.BusinessCode(err))
	assert.Empty(t, repo.created, "no local row without a remote event")
}
