package services

import (
	"context"
	"time"

	"github.com/careslot/appointment-service/internal/events"
	"github.com/careslot/appointment-service/internal/repositories"
	"github.com/careslot/appointment-service/internal/utils"
	"github.com/careslot/appointment-service/internal/validator"
)

// ServiceConfig carries everything the services need beyond the repository.
type ServiceConfig struct {
	JWTSecret string
	JWTTTL    time.Duration
}

type serviceManager struct {
	auth         AuthService
	appointment  AppointmentService
	doctor       DoctorService
	notification NotificationService

	bus      *events.Bus
	consumer *NotificationEventConsumer
	logger   utils.Logger
}

func NewServiceManager(repo repositories.Repository, bus *events.Bus, logger utils.Logger, cfg ServiceConfig) ServiceManager {
	v := validator.New()

	return &serviceManager{
		auth:         NewAuthService(repo, logger, v, cfg.JWTSecret, cfg.JWTTTL),
		appointment:  NewAppointmentService(repo, logger, v, bus),
		doctor:       NewDoctorService(repo, logger),
		notification: NewNotificationService(repo, logger, v),
		bus:          bus,
		consumer:     NewNotificationEventConsumer(repo, bus, logger),
		logger:       logger,
	}
}

func (m *serviceManager) Auth() AuthService                 { return m.auth }
func (m *serviceManager) Appointment() AppointmentService   { return m.appointment }
func (m *serviceManager) Doctor() DoctorService             { return m.doctor }
func (m *serviceManager) Notification() NotificationService { return m.notification }

// Initialize starts the background event consumer.
func (m *serviceManager) Initialize(ctx context.Context) error {
	return m.consumer.Start(ctx)
}

// Shutdown stops the consumer, then closes the bus so no events are lost.
func (m *serviceManager) Shutdown(ctx context.Context) error {
	m.consumer.Stop()
	if err := m.bus.Close(); err != nil {
		m.logger.Error("failed to close event bus", "error", err)
		return err
	}
	m.logger.Info("services shut down")
	return nil
}
