package repositories

import (
	"context"

	"github.com/careslot/appointment-service/internal/models"
)

// NotificationRepository is an append-only per-user ledger; rows only ever
// change by read-flag flips or owner deletion.
type NotificationRepository interface {
	Create(ctx context.Context, notification *models.Notification) error
	ListByUser(ctx context.Context, userID string, filters NotificationFilters) ([]*models.Notification, error)

	// MarkRead and Delete return the number of affected rows so callers can
	// distinguish "not yours" from success.
	MarkRead(ctx context.Context, userID, id string) (int64, error)
	MarkAllRead(ctx context.Context, userID string) error
	Delete(ctx context.Context, userID, id string) (int64, error)

	CountUnread(ctx context.Context, userID string) (int64, error)
}
