package postgres

import (
	"context"

	"gorm.io/gorm"

	"github.com/careslot/appointment-service/internal/cache"
	"github.com/careslot/appointment-service/internal/models"
	"github.com/careslot/appointment-service/internal/repositories"
)

type notificationPostgreSQL struct {
	db    *gorm.DB
	cache *cache.CacheHelper
}

func NewNotificationPostgreSQL(db *gorm.DB, cacheHelper *cache.CacheHelper) repositories.NotificationRepository {
	return &notificationPostgreSQL{db: db, cache: cacheHelper}
}

func (r *notificationPostgreSQL) Create(ctx context.Context, notification *models.Notification) error {
	if err := r.db.WithContext(ctx).Create(notification).Error; err != nil {
		return err
	}
	r.invalidateUnread(ctx, notification.UserID)
	return nil
}

func (r *notificationPostgreSQL) ListByUser(ctx context.Context, userID string, filters repositories.NotificationFilters) ([]*models.Notification, error) {
	limit := filters.Limit
	if limit <= 0 || limit > repositories.DefaultNotificationPageSize {
		limit = repositories.DefaultNotificationPageSize
	}

	query := r.db.WithContext(ctx).Where("user_id = ?", userID)
	if filters.UnreadOnly {
		query = query.Where("is_read = ?", false)
	}

	var notifications []*models.Notification
	err := query.Order("created_at DESC").Limit(limit).Find(&notifications).Error
	return notifications, err
}

func (r *notificationPostgreSQL) MarkRead(ctx context.Context, userID, id string) (int64, error) {
	result := r.db.WithContext(ctx).
		Model(&models.Notification{}).
		Where("id = ? AND user_id = ?", id, userID).
		Update("is_read", true)
	if result.Error != nil {
		return 0, result.Error
	}
	if result.RowsAffected > 0 {
		r.invalidateUnread(ctx, userID)
	}
	return result.RowsAffected, nil
}

func (r *notificationPostgreSQL) MarkAllRead(ctx context.Context, userID string) error {
	err := r.db.WithContext(ctx).
		Model(&models.Notification{}).
		Where("user_id = ? AND is_read = ?", userID, false).
		Update("is_read", true).Error
	if err != nil {
		return err
	}
	r.invalidateUnread(ctx, userID)
	return nil
}

func (r *notificationPostgreSQL) Delete(ctx context.Context, userID, id string) (int64, error) {
	result := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		Delete(&models.Notification{})
	if result.Error != nil {
		return 0, result.Error
	}
	if result.RowsAffected > 0 {
		r.invalidateUnread(ctx, userID)
	}
	return result.RowsAffected, nil
}

func (r *notificationPostgreSQL) CountUnread(ctx context.Context, userID string) (int64, error) {
	var cached int64
	if err := r.cache.Get(ctx, cache.UnreadCountCacheConfig, userID, &cached); err == nil {
		return cached, nil
	}

	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Notification{}).
		Where("user_id = ? AND is_read = ?", userID, false).
		Count(&count).Error
	if err != nil {
		return 0, err
	}

	_ = r.cache.Set(ctx, cache.UnreadCountCacheConfig, userID, count)
	return count, nil
}

func (r *notificationPostgreSQL) invalidateUnread(ctx context.Context, userID string) {
	_ = r.cache.Delete(ctx, cache.UnreadCountCacheConfig, userID)
}
