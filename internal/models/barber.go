package models

import "time"

type Barber struct {
	ID uint `gorm:"primaryKey" json:"id"`

	// E.164-normalized; identity key, at most one barber per phone.
	Phone string `gorm:"size:20;uniqueIndex;not null" json:"phone"`

	Name  string `gorm:"size:100;not null" json:"name"`
	Email string `gorm:"size:100" json:"email"`

	PasswordHash string `gorm:"size:255" json:"-"`

	// Opaque OAuth refresh credential; empty until the barber connects
	// a calendar.
	RefreshToken string `gorm:"size:512" json:"-"`

	CalendarID string `gorm:"size:255;default:'primary'" json:"calendar_id"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
