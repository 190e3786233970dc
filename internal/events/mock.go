package events

import (
	"context"
	"sync"
)

// MockEventPublisher records published events for assertions in tests.
type MockEventPublisher struct {
	mu     sync.Mutex
	events []*AppointmentEvent
}

func NewMockEventPublisher() *MockEventPublisher {
	return &MockEventPublisher{}
}

func (m *MockEventPublisher) PublishAppointmentEvent(ctx context.Context, event *AppointmentEvent) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.events = append(m.events, event)
	return nil
}

func (m *MockEventPublisher) Close() error {
	return nil
}

func (m *MockEventPublisher) GetPublishedEvents() []*AppointmentEvent {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]*AppointmentEvent, len(m.events))
	copy(out, m.events)
	return out
}
