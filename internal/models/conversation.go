package models

import "time"

// One session per client phone.
type ConversationSession struct {
	ID uint `gorm:"primaryKey" json:"id"`

	ClientPhone  string    `gorm:"size:20;uniqueIndex;not null" json:"client_phone"`
	LastActiveAt time.Time `json:"last_active_at"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

const (
	RoleCaller = "caller"
	RoleSystem = "system"
)

// Messages are immutable once written; Processed is the only field
// annotated after the fact.
type ConversationMessage struct {
	ID uint `gorm:"primaryKey" json:"id"`

	SessionID uint                `gorm:"index" json:"session_id"`
	Session   ConversationSession `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`

	Role    string `gorm:"size:10;default:'caller'" json:"role"`
	Content string `gorm:"type:text" json:"content"`

	Processed bool `gorm:"default:false" json:"processed"`

	CreatedAt time.Time `json:"created_at"`
}
