package events

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/careslot/appointment-service/internal/models"
)

func TestBusRoundTrip(t *testing.T) {
	ctx := context.Background()
	bus := NewBus(slog.New(slog.NewTextHandler(io.Discard, nil)))
	t.Cleanup(func() { bus.Close() })

	messages, err := bus.Subscribe(ctx)
	if err != nil {
		t.Fatalf("Failed to subscribe: %v", err)
	}

	sent := &AppointmentEvent{
		Type:          AppointmentCreated,
		AppointmentID: "appt-1",
		PatientID:     "patient-1",
		DoctorID:      "doctor-1",
		ActorID:       "patient-1",
		ActorName:     "Alice Nguyen",
		Status:        models.StatusScheduled,
		Date:          time.Now().Add(24 * time.Hour),
	}
	if err := bus.PublishAppointmentEvent(ctx, sent); err != nil {
		t.Fatalf("Failed to publish: %v", err)
	}

	select {
	case msg := <-messages:
		var got AppointmentEvent
		if err := json.Unmarshal(msg.Payload, &got); err != nil {
			t.Fatalf("Failed to decode payload: %v", err)
		}
		msg.Ack()

		if got.AppointmentID != "appt-1" {
			t.Errorf("Expected appt-1, got %s", got.AppointmentID)
		}
		if got.Type != AppointmentCreated {
			t.Errorf("Expected %s, got %s", AppointmentCreated, got.Type)
		}
		if got.OccurredAt.IsZero() {
			t.Error("Expected OccurredAt to be stamped on publish")
		}
	case <-time.After(3 * time.Second):
		t.Fatal("Timed out waiting for message")
	}
}

func TestAppointmentEventRecipient(t *testing.T) {
	event := &AppointmentEvent{PatientID: "patient-1", DoctorID: "doctor-1"}

	event.ActorID = "patient-1"
	if got := event.Recipient(); got != "doctor-1" {
		t.Errorf("Patient action should notify the doctor, got %s", got)
	}

	event.ActorID = "doctor-1"
	if got := event.Recipient(); got != "patient-1" {
		t.Errorf("Doctor action should notify the patient, got %s", got)
	}
}
