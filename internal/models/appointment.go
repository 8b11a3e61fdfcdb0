package models

import "time"

type Appointment struct {
	ID uint `gorm:"primaryKey" json:"id"`

	ClientPhone string `gorm:"size:20;index" json:"client_phone"`

	BarberID uint   `json:"barber_id"`
	Barber   Barber `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"barber"`

	Service string `gorm:"size:100" json:"service"`

	StartTime time.Time `json:"start_time"`
	EndTime   time.Time `json:"end_time"`

	// Join key back to the remote calendar event. May be stale after a
	// partial failure; the reschedule fallback compensates.
	CalendarEventID string `gorm:"size:255;uniqueIndex" json:"calendar_event_id"`

	Notes string `gorm:"size:255" json:"notes"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
