package events

import (
	"context"
	"time"

	"github.com/careslot/appointment-service/internal/models"
)

// TopicAppointments carries every appointment lifecycle event.
const TopicAppointments = "appointments"

type EventType string

const (
	AppointmentCreated       EventType = "appointment.created"
	AppointmentStatusChanged EventType = "appointment.status_changed"
)

// AppointmentEvent is the payload published on every lifecycle change. It
// carries enough display data for consumers to compose a notification without
// a storage round trip.
type AppointmentEvent struct {
	Type          EventType                `json:"type"`
	AppointmentID string                   `json:"appointment_id"`
	PatientID     string                   `json:"patient_id"`
	DoctorID      string                   `json:"doctor_id"`
	ActorID       string                   `json:"actor_id"`
	ActorName     string                   `json:"actor_name"`
	Status        models.AppointmentStatus `json:"status"`
	Date          time.Time                `json:"date"`
	OccurredAt    time.Time                `json:"occurred_at"`
}

// Recipient returns the user who should be notified: always the party that
// did not perform the action.
func (e *AppointmentEvent) Recipient() string {
	if e.ActorID == e.PatientID {
		return e.DoctorID
	}
	return e.PatientID
}

// Publisher emits appointment events onto the bus.
type Publisher interface {
	PublishAppointmentEvent(ctx context.Context, event *AppointmentEvent) error
	Close() error
}
