package services

import (
	"errors"

	"github.com/careslot/appointment-service/internal/validator"
)

// Service-level sentinel errors. Handlers map these to HTTP statuses in one
// place per handler.
var (
	ErrUserNotFound         = errors.New("user not found")
	ErrAppointmentNotFound  = errors.New("appointment not found")
	ErrNotificationNotFound = errors.New("notification not found")

	// ErrEmailTaken maps to 409.
	ErrEmailTaken = errors.New("email already registered")

	// ErrInvalidCredentials is deliberately identical for unknown email and
	// wrong password, so login never confirms whether an account exists.
	ErrInvalidCredentials = errors.New("invalid credentials")

	ErrInvalidStatusTransition = errors.New("invalid appointment status transition")
)

// ValidationErrors is re-exported so handlers can errors.As against the
// service package alone.
type ValidationErrors = validator.ValidationErrors
