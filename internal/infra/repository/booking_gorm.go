package repository

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	domain "github.com/BruksfildServices01/booking-bridge/internal/domain/booking"
	"github.com/BruksfildServices01/booking-bridge/internal/models"
)

type BookingGormRepository struct {
	db *gorm.DB
}

func NewBookingGormRepository(db *gorm.DB) *BookingGormRepository {
	return &BookingGormRepository{db: db}
}

// --------------------------------------------------
// Barber
// --------------------------------------------------

func (r *BookingGormRepository) GetBarberByID(
	ctx context.Context,
	id uint,
) (*models.Barber, error) {

	var barber models.Barber
	if err := r.db.WithContext(ctx).First(&barber, id).Error; err != nil {
		return nil, err
	}
	return &barber, nil
}

func (r *BookingGormRepository) GetBarberByPhone(
	ctx context.Context,
	phone string,
) (*models.Barber, error) {

	var barber models.Barber
	if err := r.db.WithContext(ctx).
		Where("phone = ?", phone).
		First(&barber).Error; err != nil {
		return nil, err
	}
	return &barber, nil
}

func (r *BookingGormRepository) SaveBarber(
	ctx context.Context,
	barber *models.Barber,
) error {
	return r.db.WithContext(ctx).Save(barber).Error
}

// --------------------------------------------------
// Client
// --------------------------------------------------

func (r *BookingGormRepository) GetClientByPhone(
	ctx context.Context,
	phone string,
) (*models.Client, error) {

	var client models.Client
	if err := r.db.WithContext(ctx).
		Where("phone = ?", phone).
		First(&client).Error; err != nil {
		return nil, err
	}
	return &client, nil
}

func (r *BookingGormRepository) GetOrCreateClient(
	ctx context.Context,
	phone string,
	name string,
	email string,
) (*models.Client, error) {

	var client models.Client
	err := r.db.WithContext(ctx).
		Where("phone = ?", phone).
		First(&client).Error

	if err == nil {
		// Fill in identity details we learned later.
		changed := false
		if client.Name == "" && name != "" {
			client.Name = name
			changed = true
		}
		if client.Email == "" && email != "" {
			client.Email = email
			changed = true
		}
		if changed {
			if err := r.db.WithContext(ctx).Save(&client).Error; err != nil {
				return nil, err
			}
		}
		return &client, nil
	}

	client = models.Client{
		Phone: phone,
		Name:  name,
		Email: email,
	}

	if err := r.db.WithContext(ctx).Create(&client).Error; err != nil {
		return nil, err
	}

	return &client, nil
}

func (r *BookingGormRepository) SaveClient(
	ctx context.Context,
	client *models.Client,
) error {
	return r.db.WithContext(ctx).Save(client).Error
}

func (r *BookingGormRepository) UpdateClientBooking(
	ctx context.Context,
	phone string,
	status string,
	detail string,
	at time.Time,
) error {

	return r.db.WithContext(ctx).
		Model(&models.Client{}).
		Where("phone = ?", phone).
		Updates(map[string]any{
			"booking_status":     status,
			"booking_detail":     detail,
			"booking_updated_at": at,
		}).Error
}

// --------------------------------------------------
// Appointment
// --------------------------------------------------

func (r *BookingGormRepository) CreateAppointment(
	ctx context.Context,
	ap *models.Appointment,
) error {
	return r.db.WithContext(ctx).Create(ap).Error
}

func (r *BookingGormRepository) UpdateAppointmentByEventID(
	ctx context.Context,
	eventID string,
	start time.Time,
	end time.Time,
	service string,
) (int64, error) {

	updates := map[string]any{
		"start_time": start,
		"end_time":   end,
	}
	if service != "" {
		updates["service"] = service
	}

	res := r.db.WithContext(ctx).
		Model(&models.Appointment{}).
		Where("calendar_event_id = ?", eventID).
		Updates(updates)

	return res.RowsAffected, res.Error
}

func (r *BookingGormRepository) FindAppointmentNear(
	ctx context.Context,
	clientPhone string,
	around time.Time,
	window time.Duration,
) (*models.Appointment, error) {

	var apps []models.Appointment
	if err := r.db.WithContext(ctx).
		Where(
			"client_phone = ? AND start_time >= ? AND start_time <= ?",
			clientPhone,
			around.Add(-window),
			around.Add(window),
		).
		Order("start_time ASC").
		Find(&apps).Error; err != nil {
		return nil, err
	}

	if len(apps) == 0 {
		return nil, nil
	}

	best := &apps[0]
	bestDist := absDuration(apps[0].StartTime.Sub(around))
	for i := 1; i < len(apps); i++ {
		if d := absDuration(apps[i].StartTime.Sub(around)); d < bestDist {
			best, bestDist = &apps[i], d
		}
	}
	return best, nil
}

func (r *BookingGormRepository) UpdateAppointment(
	ctx context.Context,
	ap *models.Appointment,
) error {
	return r.db.WithContext(ctx).Save(ap).Error
}

func (r *BookingGormRepository) DeleteAppointmentByEventID(
	ctx context.Context,
	eventID string,
) error {

	res := r.db.WithContext(ctx).
		Where("calendar_event_id = ?", eventID).
		Delete(&models.Appointment{})

	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *BookingGormRepository) ListAppointmentsForPeriod(
	ctx context.Context,
	barberID uint,
	start time.Time,
	end time.Time,
) ([]models.Appointment, error) {

	var apps []models.Appointment
	if err := r.db.WithContext(ctx).
		Where(
			"barber_id = ? AND start_time >= ? AND start_time < ?",
			barberID,
			start,
			end,
		).
		Order("start_time ASC").
		Find(&apps).Error; err != nil {
		return nil, err
	}

	return apps, nil
}

func absDuration(d time.Duration) time.Duration {
	if d < 0 {
		return -d
	}
	return d
}

// IsNotFound reports whether err is the store's record-missing error.
func IsNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}

// Compile-time check
var _ domain.Repository = (*BookingGormRepository)(nil)
