package model

import (
	"time"

	"github.com/google/uuid"
)

// EventType is the closed vocabulary of lifecycle transitions.
type EventType string

const (
	EventNotificationCreated   EventType = "notification.created"
	EventNotificationSent      EventType = "notification.sent"
	EventNotificationDelivered EventType = "notification.delivered"
	EventNotificationFailed    EventType = "notification.failed"
	EventBatchJobStarted       EventType = "batch_job.started"
	EventBatchJobCompleted     EventType = "batch_job.completed"
	EventBatchJobFailed        EventType = "batch_job.failed"
)

// Event is an append-only record of a single state transition.
//
// Events are immutable once persisted; the only mutation is the processed
// checkpoint used by downstream projections.
type Event struct {
	ID            uuid.UUID      `json:"id"`
	EventType     EventType      `json:"event_type"`
	AggregateID   uuid.UUID      `json:"aggregate_id"`   // id of the entity this event is about
	AggregateType string         `json:"aggregate_type"` // e.g. "notification", "batch_job"
	Payload       map[string]any `json:"payload"`        // snapshot of relevant fields at transition time
	Metadata      map[string]any `json:"metadata,omitempty"`
	Processed     bool           `json:"processed"`
	ProcessedAt   *time.Time     `json:"processed_at,omitempty"`
	CreatedAt     time.Time      `json:"created_at"`
}
