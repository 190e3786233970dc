package services

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/careslot/appointment-service/internal/events"
	"github.com/careslot/appointment-service/internal/models"
	"github.com/careslot/appointment-service/internal/repositories"
	"github.com/careslot/appointment-service/internal/utils"
)

// NotificationEventConsumer turns appointment events into notification ledger
// rows for the party that did not act.
type NotificationEventConsumer struct {
	repo   repositories.Repository
	bus    *events.Bus
	logger utils.Logger

	cancel context.CancelFunc
	done   chan struct{}
	once   sync.Once
}

func NewNotificationEventConsumer(repo repositories.Repository, bus *events.Bus, logger utils.Logger) *NotificationEventConsumer {
	return &NotificationEventConsumer{
		repo:   repo,
		bus:    bus,
		logger: logger,
	}
}

// Start subscribes to the appointments topic and processes events until Stop
// is called or the parent context is cancelled.
func (c *NotificationEventConsumer) Start(ctx context.Context) error {
	ctx, c.cancel = context.WithCancel(ctx)

	messages, err := c.bus.Subscribe(ctx)
	if err != nil {
		c.cancel()
		return fmt.Errorf("failed to subscribe to appointment events: %w", err)
	}

	c.done = make(chan struct{})
	go func() {
		defer close(c.done)
		for msg := range messages {
			c.handle(msg.Context(), msg.Payload)
			msg.Ack()
		}
	}()

	c.logger.Info("notification event consumer started")
	return nil
}

// Stop cancels the subscription and waits for in-flight events to finish.
func (c *NotificationEventConsumer) Stop() {
	c.once.Do(func() {
		if c.cancel != nil {
			c.cancel()
		}
		if c.done != nil {
			<-c.done
		}
	})
}

func (c *NotificationEventConsumer) handle(ctx context.Context, payload []byte) {
	var event events.AppointmentEvent
	if err := json.Unmarshal(payload, &event); err != nil {
		c.logger.Error("failed to decode appointment event", "error", err)
		return
	}

	notification, err := buildNotification(&event)
	if err != nil {
		c.logger.Error("failed to build notification", "error", err, "type", event.Type)
		return
	}

	if err := c.repo.Notification().Create(ctx, notification); err != nil {
		c.logger.Error("failed to store notification",
			"user_id", notification.UserID,
			"appointment_id", event.AppointmentID,
			"error", err,
		)
		return
	}

	c.logger.Debug("notification stored",
		"user_id", notification.UserID,
		"type", notification.Type,
	)
}

func buildNotification(event *events.AppointmentEvent) (*models.Notification, error) {
	date := event.Date.Format("Jan 2, 2006 at 15:04")

	var notificationType, message string
	switch event.Type {
	case events.AppointmentCreated:
		notificationType = models.NotificationAppointmentCreated
		message = fmt.Sprintf("%s booked an appointment for %s", event.ActorName, date)
	case events.AppointmentStatusChanged:
		notificationType = models.NotificationAppointmentStatusChanged
		message = fmt.Sprintf("%s marked the appointment on %s as %s", event.ActorName, date, event.Status)
	default:
		return nil, fmt.Errorf("unknown event type %q", event.Type)
	}

	data, err := json.Marshal(map[string]any{
		"appointment_id": event.AppointmentID,
		"status":         event.Status,
		"date":           event.Date,
		"actor_id":       event.ActorID,
	})
	if err != nil {
		return nil, err
	}

	return &models.Notification{
		UserID:  event.Recipient(),
		Type:    notificationType,
		Message: message,
		Data:    data,
	}, nil
}
