package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Common notification type tags. The column is free-form text so clients can
// introduce their own tags without a schema change.
const (
	NotificationAppointmentCreated       = "appointment_created"
	NotificationAppointmentStatusChanged = "appointment_status_changed"
)

type Notification struct {
	ID      string `json:"id" gorm:"primaryKey;size:36"`
	UserID  string `json:"user_id" gorm:"not null;size:36;index"`
	Type    string `json:"type" gorm:"not null;size:50"`
	Message string `json:"message" gorm:"not null;type:text"`

	// Optional structured payload (appointment id, status, ...).
	Data datatypes.JSON `json:"data,omitempty"`

	IsRead    bool      `json:"is_read" gorm:"not null;default:false;index"`
	CreatedAt time.Time `json:"created_at"`

	User User `json:"-" gorm:"foreignKey:UserID"`
}

func (Notification) TableName() string {
	return "notifications"
}

func (n *Notification) BeforeCreate(tx *gorm.DB) error {
	if n.ID == "" {
		n.ID = uuid.New().String()
	}
	return nil
}

type UnreadCountResponse struct {
	Count int64 `json:"count"`
}
