package events

import (
	"time"

	"github.com/google/uuid"
)

// Event is the interface that all domain events implement.
type Event interface {
	// EventID returns the unique identifier for this event instance.
	EventID() uuid.UUID

	// EventType returns the type name of the event (e.g. "SellerConnected").
	EventType() string

	// OccurredAt returns when the event occurred.
	OccurredAt() time.Time

	// AggregateID returns the ID of the aggregate that produced this event.
	// Gateway identifiers are opaque strings, so this is not a UUID.
	AggregateID() string

	// AggregateType returns the type of aggregate (e.g. "Seller", "Payment").
	AggregateType() string
}

// BaseEvent provides a base implementation of the Event interface.
// Embed it in concrete events.
type BaseEvent struct {
	ID            uuid.UUID `json:"id"`
	Type          string    `json:"type"`
	Timestamp     time.Time `json:"timestamp"`
	AggregateKey  string    `json:"aggregate_id"`
	AggregateName string    `json:"aggregate_type"`
}

func (e BaseEvent) EventID() uuid.UUID { return e.ID }
func (e BaseEvent) EventType() string { return e.Type }
func (e BaseEvent) OccurredAt() time.Time { return e.Timestamp }
func (e BaseEvent) AggregateID() string { return e.AggregateKey }
func (e BaseEvent) AggregateType() string { return e.AggregateName }

// NewBaseEvent creates a new BaseEvent with the given parameters.
func NewBaseEvent(eventType, aggregateID, aggregateType string) BaseEvent {
	return BaseEvent{
		ID:            uuid.New(),
		Type:          eventType,
		Timestamp:     time.Now(),
		AggregateKey:  aggregateID,
		AggregateName: aggregateType,
	}
}
