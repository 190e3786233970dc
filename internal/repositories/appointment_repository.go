package repositories

import (
	"context"

	"github.com/careslot/appointment-service/internal/models"
)

// AppointmentRepository persists appointment rows. Every read and mutation is
// narrowed by a Scope: a row outside the caller's scope behaves exactly like a
// row that does not exist.
type AppointmentRepository interface {
	Create(ctx context.Context, appointment *models.Appointment) error

	// GetByID returns the row matching id within scope, with both user
	// relations loaded for display fields.
	GetByID(ctx context.Context, scope Scope, id string) (*models.Appointment, error)

	// List returns all rows within scope, date descending.
	List(ctx context.Context, scope Scope) ([]*models.Appointment, error)

	// Update persists status and refreshes updated_at.
	Update(ctx context.Context, appointment *models.Appointment) error
}
