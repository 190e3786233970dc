package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/careslot/appointment-service/internal/services"
	"github.com/careslot/appointment-service/internal/utils"
)

type AppointmentHandler struct {
	BaseHandler
	service services.AppointmentService
}

func NewAppointmentHandler(service services.AppointmentService, logger utils.Logger) *AppointmentHandler {
	return &AppointmentHandler{
		BaseHandler: NewBaseHandler(logger),
		service:     service,
	}
}

// CreateAppointment books a new appointment for the authenticated patient
// @Summary Book an appointment
// @Tags appointments
// @Accept json
// @Produce json
// @Param request body services.CreateAppointmentRequest true "Appointment request"
// @Success 201 {object} models.AppointmentResponse
// @Failure 400 {object} ErrorResponse "Validation failed"
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Router /appointments [post]
func (h *AppointmentHandler) CreateAppointment(c *gin.Context) {
	identity, ok := h.identityFromContext(c)
	if !ok {
		return
	}

	var req services.CreateAppointmentRequest
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

// ListAppointments lists the caller's appointments, newest first
// @Summary List own appointments
// @Tags appointments
// @Produce json
// @Success 200 {array} models.AppointmentResponse
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Router /appointments [get]
func (h *AppointmentHandler) ListAppointments(c *gin.Context) {
	identity, ok := h.identityFromContext(c)
	if !ok {
		return
	}

	response, err := h.service.List(c.Request.Context(), identity)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, response)
}

// GetAppointment retrieves one of the caller's appointments
// @Summary Get an appointment by ID
// @Tags appointments
// @Produce json
// @Param id path string true "Appointment ID"
// @Success 200 {object} models.AppointmentResponse
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Failure 404 {object} ErrorResponse "Not found"
// @Router /appointments/{id} [get]
func (h *AppointmentHandler) GetAppointment(c *gin.Context) {
	identity, ok := h.identityFromContext(c)
	if !ok {
		return
	}

	response, err := h.service.GetByID(c.Request.Context(), identity, c.Param("id"))
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, response)
}

// UpdateAppointmentStatus moves an appointment through its lifecycle
// @Summary Update appointment status
// @Tags appointments
// @Accept json
// @Produce json
// @Param id path string true "Appointment ID"
// @Param request body services.UpdateAppointmentStatusRequest true "Status update"
// @Success 200 {object} models.AppointmentResponse
// @Failure 400 {object} ErrorResponse "Validation failed"
// @Failure 404 {object} ErrorResponse "Not found"
// @Failure 409 {object} ErrorResponse "Invalid status transition"
// @Router /appointments/{id} [patch]
func (h *AppointmentHandler) UpdateAppointmentStatus(c *gin.Context) {
	identity, ok := h.identityFromContext(c)
	if !ok {
		return
	}

	var req services.UpdateAppointmentStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid request payload",
			Details: err.Error(),
		})
		return
	}

	response, err := h.service.UpdateStatus(c.Request.Context(), identity, c.Param("id"), req.Status)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, response)
}

// CancelAppointment cancels an appointment
// @Summary Cancel an appointment
// @Tags appointments
// @Produce json
// @Param id path string true "Appointment ID"
// @Success 200 {object} SuccessResponse
// @Failure 404 {object} ErrorResponse "Not found"
// @Failure 409 {object} ErrorResponse "Invalid status transition"
// @Router /appointments/{id} [delete]
func (h *AppointmentHandler) CancelAppointment(c *gin.Context) {
	identity, ok := h.identityFromContext(c)
	if !ok {
		return
	}

	if _, err := h.service.Cancel(c.Request.Context(), identity, c.Param("id")); err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, SuccessResponse{
		Message: "Appointment cancelled successfully",
	})
}

func (h *AppointmentHandler) handleServiceError(c *gin.Context, err error) {
	var validationErrors services.ValidationErrors
	if errors.As(err, &validationErrors) {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Validation failed",
			Details: validationErrors,
		})
		return
	}

	switch {
	case errors.Is(err, services.ErrAppointmentNotFound):
		c.JSON(http.StatusNotFound, ErrorResponse{
			Message: "Appointment not found",
		})
	case errors.Is(err, services.ErrInvalidStatusTransition):
		c.JSON(http.StatusConflict, ErrorResponse{
			Message: "Invalid appointment status transition",
		})
	default:
		utils.FromContext(c, h.logger).Error("appointment handler error", "error", err)
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Message: "Internal server error",
		})
	}
}
