package stream

import (
	"time"

	"github.com/google/uuid"
)

// Logical topics carried by the broker. Each topic is a durable queue bound
// to the exchange by a routing key of the same name; a queue is FIFO, so all
// messages published with the same key are observed in publish order.
const (
	ExchangeName = "notify-exchange"

	TopicNotifications = "notifications"
	TopicEvents        = "events"
	TopicBatchJobs     = "batch-jobs"
	TopicDeadLetter    = "dead-letter-queue"
)

// NotificationMessage is the notification payload carried on the
// notifications topic. Only ID and Message are mandatory for consumers; the
// remaining fields are advisory. ID is the join key back to the store record.
type NotificationMessage struct {
	ID        uuid.UUID      `json:"id"`
	Message   string         `json:"message"`
	Type      string         `json:"type"`
	UserID    *uuid.UUID     `json:"user_id,omitempty"`
	Metadata  map[string]any `json:"metadata,omitempty"`
	Status    string         `json:"status,omitempty"`
	Timestamp time.Time      `json:"timestamp,omitempty"`
	Source    string         `json:"source,omitempty"`
}

// EventMessage is the event copy forwarded to the events topic for
// downstream projections. The store row remains authoritative.
type EventMessage struct {
	ID            uuid.UUID      `json:"id"`
	EventType     string         `json:"event_type"`
	AggregateID   uuid.UUID      `json:"aggregate_id"`
	AggregateType string         `json:"aggregate_type"`
	Payload       map[string]any `json:"payload"`
	Metadata      map[string]any `json:"metadata,omitempty"`
	CreatedAt     time.Time      `json:"created_at"`
	Timestamp     time.Time      `json:"timestamp,omitempty"`
	Source        string         `json:"source,omitempty"`
}

// JobMessage is the work item pushed onto the batch-jobs topic. Attempt
// starts at 1 and is incremented on every redelivery.
type JobMessage struct {
	BatchJobID uuid.UUID      `json:"batch_job_id"`
	Type       string         `json:"type"`
	Parameters map[string]any `json:"parameters,omitempty"`
	Attempt    int            `json:"attempt"`
	Timestamp  time.Time      `json:"timestamp,omitempty"`
	Source     string         `json:"source,omitempty"`
}

// DeadLetterMessage wraps a message that could not be processed, for
// operator inspection and manual replay. Message holds the raw serialized
// original, unchanged.
type DeadLetterMessage struct {
	OriginalTopic string    `json:"original_topic"`
	Message       string    `json:"message"`
	Error         string    `json:"error"`
	Timestamp     time.Time `json:"timestamp"`
	Source        string    `json:"source,omitempty"`
}
