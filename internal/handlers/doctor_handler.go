package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/careslot/appointment-service/internal/services"
	"github.com/careslot/appointment-service/internal/utils"
)

type DoctorHandler struct {
	BaseHandler
	service services.DoctorService
}

func NewDoctorHandler(service services.DoctorService, logger utils.Logger) *DoctorHandler {
	return &DoctorHandler{
		BaseHandler: NewBaseHandler(logger),
		service:     service,
	}
}

// ListDoctors lists all registered doctors
// @Summary List doctors
// @Tags doctors
// @Produce json
// @Success 200 {array} models.UserResponse
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Router /doctors [get]
func (h *DoctorHandler) ListDoctors(c *gin.Context) {
	response, err := h.service.List(c.Request.Context())
	if err != nil {
		utils.FromContext(c, h.logger).Error("doctor handler error", "error", err)
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Message: "Internal server error",
		})
		return
	}

	c.JSON(http.StatusOK, response)
}
