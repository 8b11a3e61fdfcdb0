package booking

import (
	"context"
	"time"

	"github.com/BruksfildServices01/booking-bridge/internal/models"
)

// Repository is the record-store contract the orchestrator depends on.
// Implementations live in internal/infra/repository.
type Repository interface {
	// -------- Barber --------
	GetBarberByID(
		ctx context.Context,
		id uint,
	) (*models.Barber, error)

	GetBarberByPhone(
		ctx context.Context,
		phone string,
	) (*models.Barber, error)

	SaveBarber(
		ctx context.Context,
		barber *models.Barber,
	) error

	// -------- Client --------
	GetClientByPhone(
		ctx context.Context,
		phone string,
	) (*models.Client, error)

	GetOrCreateClient(
		ctx context.Context,
		phone string,
		name string,
		email string,
	) (*models.Client, error)

	SaveClient(
		ctx context.Context,
		client *models.Client,
	) error

	UpdateClientBooking(
		ctx context.Context,
		phone string,
		status string,
		detail string,
		at time.Time,
	) error

	// -------- Appointment --------
	CreateAppointment(
		ctx context.Context,
		ap *models.Appointment,
	) error

	// UpdateAppointmentByEventID returns the number of rows touched so the
	// caller can fall back when the stored event id is stale.
	UpdateAppointmentByEventID(
		ctx context.Context,
		eventID string,
		start time.Time,
		end time.Time,
		service string,
	) (int64, error)

	// FindAppointmentNear returns the client's appointment whose start is
	// closest to `around`, looking ±window, or nil when none qualifies.
	FindAppointmentNear(
		ctx context.Context,
		clientPhone string,
		around time.Time,
		window time.Duration,
	) (*models.Appointment, error)

	UpdateAppointment(
		ctx context.Context,
		ap *models.Appointment,
	) error

	DeleteAppointmentByEventID(
		ctx context.Context,
		eventID string,
	) error

	ListAppointmentsForPeriod(
		ctx context.Context,
		barberID uint,
		start time.Time,
		end time.Time,
	) ([]models.Appointment, error)
}
