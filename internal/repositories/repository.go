package repositories

import "context"

// Repository aggregates all per-domain repositories behind one handle.
type Repository interface {
	User() UserRepository
	Appointment() AppointmentRepository
	Notification() NotificationRepository

	// Transaction support
	WithTransaction(ctx context.Context, fn func(Repository) error) error

	// Health check
	Ping(ctx context.Context) error

	// Close connections
	Close() error
}
