package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/careslot/appointment-service/internal/models"
	"github.com/careslot/appointment-service/internal/services"
	"github.com/careslot/appointment-service/internal/utils"
)

type BaseHandler struct {
	logger utils.Logger
}

func NewBaseHandler(logger utils.Logger) BaseHandler {
	return BaseHandler{logger: logger}
}

// ===== RESPONSE ENVELOPES =====

type ErrorResponse struct {
	Message string      `json:"message"`
	Details interface{} `json:"details,omitempty"`
}

type SuccessResponse struct {
	Message string `json:"message"`
}

// identityFromContext rebuilds the caller identity placed in the Gin context
// by the auth middleware. A missing identity means the middleware was not
// applied to this route; respond 401 rather than panic.
func (h *BaseHandler) identityFromContext(c *gin.Context) (services.Identity, bool) {
	userID, exists := c.Get("user_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, ErrorResponse{
			Message: "User not authenticated",
		})
		return services.Identity{}, false
	}

	email, _ := c.Get("user_email")
	role, _ := c.Get("user_role")

	identity := services.Identity{
		UserID: userID.(string),
	}
	if s, ok := email.(string); ok {
		identity.Email = s
	}
	if r, ok := role.(models.UserRole); ok {
		identity.Role = r
	}
	return identity, true
}
