package services

import (
	"context"

	"github.com/careslot/appointment-service/internal/models"
	"github.com/careslot/appointment-service/internal/validator"
)

// ===== REQUEST/RESPONSE DTOs =====

// Use validator request types so tags and business rules live in one place.
type RegisterRequest = validator.RegisterRequest
type LoginRequest = validator.LoginRequest
type UpdateProfileRequest = validator.UpdateProfileRequest
type CreateAppointmentRequest = validator.CreateAppointmentRequest
type UpdateAppointmentStatusRequest = validator.UpdateAppointmentStatusRequest
type CreateNotificationRequest = validator.CreateNotificationRequest

type LoginResponse struct {
	Token string               `json:"token"`
	User  *models.UserResponse `json:"user"`
}

// ===== SERVICE INTERFACES =====

// AuthService is the session issuer: registration, login, own-profile access.
type AuthService interface {
	Register(ctx context.Context, req *RegisterRequest) (*models.UserResponse, error)
	Login(ctx context.Context, req *LoginRequest) (*LoginResponse, error)
	Profile(ctx context.Context, userID string) (*models.UserResponse, error)
	UpdateProfile(ctx context.Context, userID string, req *UpdateProfileRequest) (*models.UserResponse, error)
}

// AppointmentService owns the appointment lifecycle under role-scoped access.
type AppointmentService interface {
	Create(ctx context.Context, identity Identity, req *CreateAppointmentRequest) (*models.AppointmentResponse, error)
	List(ctx context.Context, identity Identity) ([]*models.AppointmentResponse, error)
	GetByID(ctx context.Context, identity Identity, id string) (*models.AppointmentResponse, error)
	UpdateStatus(ctx context.Context, identity Identity, id string, status models.AppointmentStatus) (*models.AppointmentResponse, error)
	Cancel(ctx context.Context, identity Identity, id string) (*models.AppointmentResponse, error)
}

// DoctorService exposes the doctor directory.
type DoctorService interface {
	List(ctx context.Context) ([]*models.UserResponse, error)
}

// NotificationService is the per-user notification ledger.
type NotificationService interface {
	List(ctx context.Context, identity Identity, unreadOnly bool) ([]*models.Notification, error)
	Create(ctx context.Context, identity Identity, req *CreateNotificationRequest) (*models.Notification, error)
	MarkRead(ctx context.Context, identity Identity, id string) error
	MarkAllRead(ctx context.Context, identity Identity) error
	Delete(ctx context.Context, identity Identity, id string) error
	UnreadCount(ctx context.Context, identity Identity) (int64, error)
}

// ServiceManager wires and owns all services.
type ServiceManager interface {
	Auth() AuthService
	Appointment() AppointmentService
	Doctor() DoctorService
	Notification() NotificationService

	Initialize(ctx context.Context) error
	Shutdown(ctx context.Context) error
}
