package services

import (
	"context"
	"fmt"

	"github.com/careslot/appointment-service/internal/models"
	"github.com/careslot/appointment-service/internal/repositories"
	"github.com/careslot/appointment-service/internal/utils"
	"github.com/careslot/appointment-service/internal/validator"
)

type notificationService struct {
	repo      repositories.Repository
	logger    utils.Logger
	validator *validator.Validator
}

func NewNotificationService(repo repositories.Repository, logger utils.Logger, validator *validator.Validator) NotificationService {
	return &notificationService{
		repo:      repo,
		logger:    logger,
		validator: validator,
	}
}

func (s *notificationService) List(ctx context.Context, identity Identity, unreadOnly bool) ([]*models.Notification, error) {
	notifications, err := s.repo.Notification().ListByUser(ctx, identity.UserID, repositories.NotificationFilters{
		UnreadOnly: unreadOnly,
		Limit:      repositories.DefaultNotificationPageSize,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list notifications: %w", err)
	}
	return notifications, nil
}

func (s *notificationService) Create(ctx context.Context, identity Identity, req *CreateNotificationRequest) (*models.Notification, error) {
	if errs := s.validator.Validate(req); len(errs) > 0 {
		return nil, errs
	}

	notification := &models.Notification{
		UserID:  identity.UserID,
		Type:    req.Type,
		Message: req.Message,
		Data:    req.Data,
	}
	if err := s.repo.Notification().Create(ctx, notification); err != nil {
		return nil, fmt.Errorf("failed to create notification: %w", err)
	}
	return notification, nil
}

func (s *notificationService) MarkRead(ctx context.Context, identity Identity, id string) error {
	affected, err := s.repo.Notification().MarkRead(ctx, identity.UserID, id)
	if err != nil {
		return fmt.Errorf("failed to mark notification read: %w", err)
	}
	if affected == 0 {
		return ErrNotificationNotFound
	}
	return nil
}

func (s *notificationService) MarkAllRead(ctx context.Context, identity Identity) error {
	if err := s.repo.Notification().MarkAllRead(ctx, identity.UserID); err != nil {
		return fmt.Errorf("failed to mark notifications read: %w", err)
	}
	return nil
}

func (s *notificationService) Delete(ctx context.Context, identity Identity, id string) error {
	affected, err := s.repo.Notification().Delete(ctx, identity.UserID, id)
	if err != nil {
		return fmt.Errorf("failed to delete notification: %w", err)
	}
	if affected == 0 {
		return ErrNotificationNotFound
	}
	return nil
}

func (s *notificationService) UnreadCount(ctx context.Context, identity Identity) (int64, error) {
	count, err := s.repo.Notification().CountUnread(ctx, identity.UserID)
	if err != nil {
		return 0, fmt.Errorf("failed to count unread notifications: %w", err)
	}
	return count, nil
}
