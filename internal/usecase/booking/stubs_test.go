package booking

import (
	"context"
	"errors"
	"time"

	"github.com/BruksfildServices01/booking-bridge/internal/audit"
	"github.com/BruksfildServices01/booking-bridge/internal/calendar"
	"github.com/BruksfildServices01/booking-bridge/internal/models"
)

// ---------------------------------------------------------------------------
// Stubs
// ---------------------------------------------------------------------------

var errStubNotFound = errors.New("record not found")

type updateByEventCall struct {
	eventID    string
	start, end time.Time
	service    string
}

type stubRepo struct {
	barbers map[uint]*models.Barber
	clients map[string]*models.Client

	created []*models.Appointment
	updated []*models.Appointment

	createErr        error
	clientErr        error
	updateByEventErr error
	updateByEventN   int64
	updateByEventLog []updateByEventCall
	nearResult       *models.Appointment
	deletedEventIDs  []string
	deleteErr        error
	bookingStatuses  []string
}

func newStubRepo() *stubRepo {
	return &stubRepo{
		barbers: map[uint]*models.Barber{},
		clients: map[string]*models.Client{},
	}
}

func (r *stubRepo) GetBarberByID(_ context.Context, id uint) (*models.Barber, error) {
	if b, ok := r.barbers[id]; ok {
		return b, nil
	}
	return nil, errStubNotFound
}

func (r *stubRepo) GetBarberByPhone(_ context.Context, phone string) (*models.Barber, error) {
	for _, b := range r.barbers {
		if b.Phone == phone {
			return b, nil
		}
	}
	return nil, errStubNotFound
}

func (r *stubRepo) SaveBarber(_ context.Context, b *models.Barber) error {
	r.barbers[b.ID] = b
	return nil
}

func (r *stubRepo) GetClientByPhone(_ context.Context, phone string) (*models.Client, error) {
	if c, ok := r.clients[phone]; ok {
		return c, nil
	}
	return nil, errStubNotFound
}

func (r *stubRepo) GetOrCreateClient(_ context.Context, phone, name, email string) (*models.Client, error) {
	if r.clientErr != nil {
		return nil, r.clientErr
	}
	if c, ok := r.clients[phone]; ok {
		return c, nil
	}
	c := &models.Client{ID: uint(len(r.clients) + 1), Phone: phone, Name: name, Email: email}
	r.clients[phone] = c
	return c, nil
}

func (r *stubRepo) SaveClient(_ context.Context, c *models.Client) error {
	r.clients[c.Phone] = c
	return nil
}

func (r *stubRepo) UpdateClientBooking(_ context.Context, _, status, _ string, _ time.Time) error {
	r.bookingStatuses = append(r.bookingStatuses, status)
	return nil
}

func (r *stubRepo) CreateAppointment(_ context.Context, ap *models.Appointment) error {
	if r.createErr != nil {
		return r.createErr
	}
	r.created = append(r.created, ap)
	return nil
}

func (r *stubRepo) UpdateAppointmentByEventID(_ context.Context, eventID string, start, end time.Time, service string) (int64, error) {
	r.updateByEventLog = append(r.updateByEventLog, updateByEventCall{eventID, start, end, service})
	return r.updateByEventN, r.updateByEventErr
}

func (r *stubRepo) FindAppointmentNear(_ context.Context, _ string, _ time.Time, _ time.Duration) (*models.Appointment, error) {
	return r.nearResult, nil
}

func (r *stubRepo) UpdateAppointment(_ context.Context, ap *models.Appointment) error {
	r.updated = append(r.updated, ap)
	return nil
}

func (r *stubRepo) DeleteAppointmentByEventID(_ context.Context, eventID string) error {
	if r.deleteErr != nil {
		return r.deleteErr
	}
	r.deletedEventIDs = append(r.deletedEventIDs, eventID)
	return nil
}

func (r *stubRepo) ListAppointmentsForPeriod(_ context.Context, _ uint, _, _ time.Time) ([]models.Appointment, error) {
	return nil, nil
}

type stubGateway struct {
	listResult []calendar.Event
	listErr    error

	getResult map[string]*calendar.Event
	getErr    error

	insertErr error
	inserted  []calendar.EventDraft

	updateErr error
	patched   map[string]calendar.EventPatch

	deleteErr  error
	deletedIDs []string
}

func newStubGateway() *stubGateway {
	return &stubGateway{
		getResult: map[string]*calendar.Event{},
		patched:   map[string]calendar.EventPatch{},
	}
}

func (g *stubGateway) ListEvents(_ context.Context, _ string, _, _ time.Time) ([]calendar.Event, error) {
	return g.listResult, g.listErr
}

func (g *stubGateway) GetEvent(_ context.Context, _, eventID string) (*calendar.Event, error) {
	if g.getErr != nil {
		return nil, g.getErr
	}
	if ev, ok := g.getResult[eventID]; ok {
		return ev, nil
	}
	return nil, calendar.ErrEventNotFound
}

func (g *stubGateway) InsertEvent(_ context.Context, _ string, draft calendar.EventDraft) (*calendar.Event, error) {
	if g.insertErr != nil {
		return nil, g.insertErr
	}
	g.inserted = append(g.inserted, draft)
	return &calendar.Event{
		ID:          "evt-new",
		Summary:     draft.Summary,
		Description: draft.Description,
		Start:       draft.Start,
		End:         draft.End,
		HTMLLink:    "https://calendar.example/evt-new",
	}, nil
}

func (g *stubGateway) UpdateEvent(_ context.Context, _, eventID string, patch calendar.EventPatch) (*calendar.Event, error) {
	if g.updateErr != nil {
		return nil, g.updateErr
	}
	g.patched[eventID] = patch
	ev := calendar.Event{ID: eventID}
	if patch.Start != nil {
		ev.Start = *patch.Start
	}
	if patch.End != nil {
		ev.End = *patch.End
	}
	return &ev, nil
}

func (g *stubGateway) DeleteEvent(_ context.Context, _, eventID string) error {
	if g.deleteErr != nil {
		return g.deleteErr
	}
	g.deletedIDs = append(g.deletedIDs, eventID)
	return nil
}

type stubProvider struct {
	gw calendar.Gateway
}

func (p stubProvider) ForCredential(string) calendar.Gateway { return p.gw }

type nopSink struct{}

func (nopSink) Dispatch(audit.Event) {}

// ---------------------------------------------------------------------------
// Shared fixtures
// ---------------------------------------------------------------------------

func seededBarber() *models.Barber {
	return &models.Barber{
		ID:           1,
		Phone:        "+15550001111",
		Name:         "Sam",
		RefreshToken: "refresh-token",
		CalendarID:   "primary",
	}
}

func clientWithPreference(phone string, barberID uint) *models.Client {
	id := barberID
	return &models.Client{
		ID:                1,
		Phone:             phone,
		PreferredBarberID: &id,
	}
}

func uintPtr(v uint) *uint { return &v }
