package repositories

import (
	"context"

	"github.com/careslot/appointment-service/internal/models"
)

// UserRepository is the credential store plus the doctor directory.
type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id string) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	Update(ctx context.Context, user *models.User) error

	// Validation and checks
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	HasRole(ctx context.Context, id string, role models.UserRole) (bool, error)

	// Doctor directory, ordered by last name then first name.
	ListDoctors(ctx context.Context) ([]*models.User, error)
}
