package validator

import (
	"time"

	"gorm.io/datatypes"

	"github.com/careslot/appointment-service/internal/models"
)

// RegisterRequest carries a new account. Specialization is mandatory for the
// doctor role and ignored for everyone else.
type RegisterRequest struct {
	Email          string          `json:"email" validate:"required,email"`
	Password       string          `json:"password" validate:"required,min=6"`
	FirstName      string          `json:"firstName" validate:"required,max=100"`
	LastName       string          `json:"lastName" validate:"required,max=100"`
	Role           models.UserRole `json:"role" validate:"required,oneof=patient doctor admin"`
	Specialization *string         `json:"specialization" validate:"omitempty,max=200"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type UpdateProfileRequest struct {
	Email          string  `json:"email" validate:"required,email"`
	FirstName      string  `json:"firstName" validate:"required,max=100"`
	LastName       string  `json:"lastName" validate:"required,max=100"`
	Specialization *string `json:"specialization" validate:"omitempty,max=200"`
}

type CreateAppointmentRequest struct {
	DoctorID string                   `json:"doctor_id" validate:"required"`
	Date     time.Time                `json:"date" validate:"required"`
	Reason   string                   `json:"reason" validate:"required,max=2000"`
	Status   models.AppointmentStatus `json:"status" validate:"omitempty,oneof=scheduled pending cancelled completed"`
}

type UpdateAppointmentStatusRequest struct {
	Status models.AppointmentStatus `json:"status" validate:"required,oneof=scheduled pending cancelled completed"`
}

type CreateNotificationRequest struct {
	Type    string         `json:"type" validate:"required,max=50"`
	Message string         `json:"message" validate:"required,max=2000"`
	Data    datatypes.JSON `json:"data" validate:"omitempty"`
}
