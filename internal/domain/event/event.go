package event

import (
	"time"

	"github.com/google/uuid"
)

// DomainEvent is the interface all domain events must implement.
type DomainEvent interface {
	EventID() uuid.UUID
	EventType() string
	AggregateID() uuid.UUID
	AggregateType() string
	OccurredAt() time.Time
}

// BaseEvent provides a default implementation of DomainEvent. Fields are
// exported with JSON tags so events serialise with their full envelope.
type BaseEvent struct {
	ID             uuid.UUID `json:"event_id"`
	Type           string    `json:"event_type"`
	AggregateIDV   uuid.UUID `json:"aggregate_id"`
	AggregateTypeV string    `json:"aggregate_type"`
	Timestamp      time.Time `json:"occurred_at"`
}

// NewBaseEvent creates a new BaseEvent with a generated UUID and the given
// occurrence time.
func NewBaseEvent(eventType string, aggregateID uuid.UUID, aggregateType string, occurredAt time.Time) BaseEvent {
	return BaseEvent{
		ID:             uuid.New(),
		Type:           eventType,
		AggregateIDV:   aggregateID,
		AggregateTypeV: aggregateType,
		Timestamp:      occurredAt,
	}
}

func (e BaseEvent) EventID() uuid.UUID     { return e.ID }
func (e BaseEvent) EventType() string      { return e.Type }
func (e BaseEvent) AggregateID() uuid.UUID { return e.AggregateIDV }
func (e BaseEvent) AggregateType() string  { return e.AggregateTypeV }
func (e BaseEvent) OccurredAt() time.Time  { return e.Timestamp }
