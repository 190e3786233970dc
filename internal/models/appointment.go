package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type AppointmentStatus string

const (
	StatusScheduled AppointmentStatus = "scheduled"
	StatusPending   AppointmentStatus = "pending"
	StatusCancelled AppointmentStatus = "cancelled"
	StatusCompleted AppointmentStatus = "completed"
)

// ValidAppointmentStatus reports whether s is in the allowed status set.
func ValidAppointmentStatus(s AppointmentStatus) bool {
	switch s {
	case StatusScheduled, StatusPending, StatusCancelled, StatusCompleted:
		return true
	}
	return false
}

type Appointment struct {
	ID        string            `json:"id" gorm:"primaryKey;size:36"`
	PatientID string            `json:"patient_id" gorm:"not null;size:36;index"`
	DoctorID  string            `json:"doctor_id" gorm:"not null;size:36;index"`
	Date      time.Time         `json:"date" gorm:"not null;index"`
	Reason    string            `json:"reason" gorm:"not null;type:text"`
	Status    AppointmentStatus `json:"status" gorm:"not null;size:20;default:scheduled"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Relations
	Patient User `json:"-" gorm:"foreignKey:PatientID"`
	Doctor  User `json:"-" gorm:"foreignKey:DoctorID"`
}

func (Appointment) TableName() string {
	return "appointments"
}

func (a *Appointment) BeforeCreate(tx *gorm.DB) error {
	if a.ID == "" {
		a.ID = uuid.New().String()
	}
	return nil
}

// AppointmentResponse carries an appointment plus the display fields of the
// counterpart party. Doctors get patient fields, patients get doctor fields;
// the handler never exposes both sides at once.
type AppointmentResponse struct {
	ID        string            `json:"id"`
	PatientID string            `json:"patient_id"`
	DoctorID  string            `json:"doctor_id"`
	Date      time.Time         `json:"date"`
	Reason    string            `json:"reason"`
	Status    AppointmentStatus `json:"status"`
	CreatedAt time.Time         `json:"created_at"`
	UpdatedAt time.Time         `json:"updated_at"`

	PatientFirstName *string `json:"patient_first_name,omitempty"`
	PatientLastName  *string `json:"patient_last_name,omitempty"`
	PatientEmail     *string `json:"patient_email,omitempty"`

	DoctorFirstName *string `json:"doctor_first_name,omitempty"`
	DoctorLastName  *string `json:"doctor_last_name,omitempty"`
	Specialization  *string `json:"specialization,omitempty"`
}
