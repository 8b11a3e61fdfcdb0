package dto

import "time"

type AppointmentListDTO struct {
	ID              uint      `json:"id"`
	StartTime       time.Time `json:"start_time"`
	EndTime         time.Time `json:"end_time"`
	Service         string    `json:"service"`
	ClientPhone     string    `json:"client_phone"`
	CalendarEventID string    `json:"calendar_event_id"`
	Notes           string    `json:"notes,omitempty"`
}
