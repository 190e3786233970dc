package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/careslot/appointment-service/internal/services"
	"github.com/careslot/appointment-service/internal/utils"
)

type HandlerManager struct {
	authHandler         *AuthHandler
	appointmentHandler  *AppointmentHandler
	doctorHandler       *DoctorHandler
	notificationHandler *NotificationHandler
	authMiddleware      *JWTAuthMiddleware
}

func NewHandlerManager(
	serviceManager services.ServiceManager,
	logger utils.Logger,
	jwtSecret string,
) *HandlerManager {
	return &HandlerManager{
		authHandler:         NewAuthHandler(serviceManager.Auth(), logger),
		appointmentHandler:  NewAppointmentHandler(serviceManager.Appointment(), logger),
		doctorHandler:       NewDoctorHandler(serviceManager.Doctor(), logger),
		notificationHandler: NewNotificationHandler(serviceManager.Notification(), logger),
		authMiddleware:      NewJWTAuthMiddleware(jwtSecret),
	}
}

// SetupRoutes sets up all API routes
func (hm *HandlerManager) SetupRoutes(router *gin.Engine) {
	api := router.Group("/api")
	{
		// Auth routes; register and login are the only unauthenticated ones
		auth := api.Group("/auth")
		{
			auth.POST("/register", hm.authHandler.Register)
			auth.POST("/login", hm.authHandler.Login)

			auth.GET("/profile", hm.authMiddleware.AuthMiddleware(), hm.authHandler.GetProfile)
			auth.PATCH("/profile", hm.authMiddleware.AuthMiddleware(), hm.authHandler.UpdateProfile)
		}

		// Appointment routes
		appointments := api.Group("/appointments")
		appointments.Use(hm.authMiddleware.AuthMiddleware())
		{
			appointments.POST("", hm.appointmentHandler.CreateAppointment)
			appointments.GET("", hm.appointmentHandler.ListAppointments)
			appointments.GET("/:id", hm.appointmentHandler.GetAppointment)
			appointments.PATCH("/:id", hm.appointmentHandler.UpdateAppointmentStatus)
			appointments.DELETE("/:id", hm.appointmentHandler.CancelAppointment)
		}

		// Doctor directory
		doctors := api.Group("/doctors")
		doctors.Use(hm.authMiddleware.AuthMiddleware())
		{
			doctors.GET("", hm.doctorHandler.ListDoctors)
		}

		// Notification routes
		notifications := api.Group("/notifications")
		notifications.Use(hm.authMiddleware.AuthMiddleware())
		{
			notifications.GET("", hm.notificationHandler.ListNotifications)
			notifications.POST("", hm.notificationHandler.CreateNotification)
			notifications.GET("/unread-count", hm.notificationHandler.GetUnreadCount)
			notifications.PATCH("/read-all", hm.notificationHandler.MarkAllNotificationsRead)
			notifications.PATCH("/:id/read", hm.notificationHandler.MarkNotificationRead)
			notifications.DELETE("/:id", hm.notificationHandler.DeleteNotification)
		}
	}

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":    "healthy",
			"service":   "appointment-service",
			"timestamp": time.Now().UTC().Format(time.RFC3339),
		})
	})
}
