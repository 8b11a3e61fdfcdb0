package models

import "time"

// Cliente identified by phone number, no login.
type Client struct {
	ID uint `gorm:"primaryKey" json:"id"`

	// E.164-normalized; identity key, at most one client per phone.
	Phone string `gorm:"size:20;uniqueIndex;not null" json:"phone"`

	Name  string `gorm:"size:100" json:"name"`
	Email string `gorm:"size:100" json:"email"`

	PreferredBarberID *uint   `json:"preferred_barber_id"`
	PreferredBarber   *Barber `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"preferred_barber,omitempty"`

	// Booking-state snapshot for the conversational front-end.
	BookingStatus    string     `gorm:"size:30" json:"booking_status"`
	BookingDetail    string     `gorm:"type:text" json:"booking_detail"`
	BookingUpdatedAt *time.Time `json:"booking_updated_at"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
