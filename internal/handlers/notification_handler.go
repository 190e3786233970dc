package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/careslot/appointment-service/internal/models"
	"github.com/careslot/appointment-service/internal/services"
	"github.com/careslot/appointment-service/internal/utils"
)

type NotificationHandler struct {
	BaseHandler
	service services.NotificationService
}

func NewNotificationHandler(service services.NotificationService, logger utils.Logger) *NotificationHandler {
	return &NotificationHandler{
		BaseHandler: NewBaseHandler(logger),
		service:     service,
	}
}

// ListNotifications lists the caller's notifications, newest first
// @Summary List own notifications
// @Tags notifications
// @Produce json
// @Param unread_only query bool false "Only unread notifications"
// @Success 200 {array} models.Notification
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Router /notifications [get]
func (h *NotificationHandler) ListNotifications(c *gin.Context) {
	identity, ok := h.identityFromContext(c)
	if !ok {
		return
	}

	unreadOnly := c.Query("unread_only") == "true"

	response, err := h.service.List(c.Request.Context(), identity, unreadOnly)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, response)
}

// CreateNotification stores a notification for the caller
// @Summary Create a notification
// @Tags notifications
// @Accept json
// @Produce json
// @Param request body services.CreateNotificationRequest true "Notification request"
// @Success 201 {object} models.Notification
// @Failure 400 {object} ErrorResponse "Validation failed"
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Router /notifications [post]
func (h *NotificationHandler) CreateNotification(c *gin.Context) {
	identity, ok := h.identityFromContext(c)
	if !ok {
		return
	}

	var req services.CreateNotificationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid request payload",
			Details: err.Error(),
		})
		return
	}

	response, err := h.service.Create(c.Request.Context(), identity, &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, response)
}

// MarkNotificationRead marks one of the caller's notifications as read
// @Summary Mark a notification read
// @Tags notifications
// @Produce json
// @Param id path string true "Notification ID"
// @Success 200 {object} SuccessResponse
// @Failure 404 {object} ErrorResponse "Not found"
// @Router /notifications/{id}/read [patch]
func (h *NotificationHandler) MarkNotificationRead(c *gin.Context) {
	identity, ok := h.identityFromContext(c)
	if !ok {
		return
	}

	if err := h.service.MarkRead(c.Request.Context(), identity, c.Param("id")); err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, SuccessResponse{
		Message: "Notification marked as read",
	})
}

// MarkAllNotificationsRead marks every unread notification of the caller as read
// @Summary Mark all notifications read
// @Tags notifications
// @Produce json
// @Success 200 {object} SuccessResponse
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Router /notifications/read-all [patch]
func (h *NotificationHandler) MarkAllNotificationsRead(c *gin.Context) {
	identity, ok := h.identityFromContext(c)
	if !ok {
		return
	}

	if err := h.service.MarkAllRead(c.Request.Context(), identity); err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, SuccessResponse{
		Message: "All notifications marked as read",
	})
}

// DeleteNotification removes one of the caller's notifications
// @Summary Delete a notification
// @Tags notifications
// @Produce json
// @Param id path string true "Notification ID"
// @Success 200 {object} SuccessResponse
// @Failure 404 {object} ErrorResponse "Not found"
// @Router /notifications/{id} [delete]
func (h *NotificationHandler) DeleteNotification(c *gin.Context) {
	identity, ok := h.identityFromContext(c)
	if !ok {
		return
	}

	if err := h.service.Delete(c.Request.Context(), identity, c.Param("id")); err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, SuccessResponse{
		Message: "Notification deleted",
	})
}

// GetUnreadCount returns the caller's unread notification count
// @Summary Get unread notification count
// @Tags notifications
// @Produce json
// @Success 200 {object} models.UnreadCountResponse
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Router /notifications/unread-count [get]
func (h *NotificationHandler) GetUnreadCount(c *gin.Context) {
	identity, ok := h.identityFromContext(c)
	if !ok {
		return
	}

	count, err := h.service.UnreadCount(c.Request.Context(), identity)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, models.UnreadCountResponse{Count: count})
}

func (h *NotificationHandler) handleServiceError(c *gin.Context, err error) {
	var validationErrors services.ValidationErrors
	if errors.As(err, &validationErrors) {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Validation failed",
			Details: validationErrors,
		})
		return
	}

	switch {
	case errors.Is(err, services.ErrNotificationNotFound):
		c.JSON(http.StatusNotFound, ErrorResponse{
			Message: "Notification not found",
		})
	default:
		utils.FromContext(c, h.logger).Error("notification handler error", "error", err)
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Message: "Internal server error",
		})
	}
}
