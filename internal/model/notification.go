package model

import (
	"time"

	"github.com/google/uuid"
)

// NotificationType classifies a notification by severity.
type NotificationType string

const (
	TypeInfo    NotificationType = "info"
	TypeSuccess NotificationType = "success"
	TypeWarning NotificationType = "warning"
	TypeError   NotificationType = "error"
)

// NotificationStatus is the lifecycle state of a notification.
//
// pending -> sent -> delivered is the success path; pending/sent -> failed
// after retry exhaustion. delivered and failed are terminal.
type NotificationStatus string

const (
	StatusPending   NotificationStatus = "pending"
	StatusSent      NotificationStatus = "sent"
	StatusDelivered NotificationStatus = "delivered"
	StatusFailed    NotificationStatus = "failed"
)

// IsTerminal reports whether the status can never change again.
func (s NotificationStatus) IsTerminal() bool {
	return s == StatusDelivered || s == StatusFailed
}

// MaxMessageLength bounds the notification message text.
const MaxMessageLength = 500

// Notification represents a notification entity in the system.
type Notification struct {
	ID           uuid.UUID          `json:"id"`                      // unique identifier for the notification
	Message      string             `json:"message"`                 // content of the notification
	Type         NotificationType   `json:"type"`                    // severity, e.g. "info", "warning"
	Status       NotificationStatus `json:"status"`                  // current lifecycle state
	UserID       *uuid.UUID         `json:"user_id,omitempty"`       // optional owner reference
	Metadata     map[string]any     `json:"metadata,omitempty"`      // opaque key/value bag
	RetryCount   int                `json:"retry_count"`             // delivery attempts so far, never decreases
	ErrorMessage string             `json:"error_message,omitempty"` // last failure cause, set when status=failed
	SentAt       *time.Time         `json:"sent_at,omitempty"`       // set once on transition to sent
	DeliveredAt  *time.Time         `json:"delivered_at,omitempty"`  // set once on transition to delivered
	CreatedAt    time.Time          `json:"created_at"`
	UpdatedAt    time.Time          `json:"updated_at"`
}

// Channel returns the delivery channel requested in metadata, or fallback
// when none is set.
func (n Notification) Channel(fallback string) string {
	if ch, ok := n.Metadata["channel"].(string); ok && ch != "" {
		return ch
	}
	return fallback
}

// Recipient returns the delivery address from metadata, falling back to the
// owner id when none is set.
func (n Notification) Recipient() string {
	if to, ok := n.Metadata["recipient"].(string); ok && to != "" {
		return to
	}
	if n.UserID != nil {
		return n.UserID.String()
	}
	return ""
}

// NotificationStats holds per-status counts for a set of notifications.
type NotificationStats struct {
	Total     int `json:"total"`
	Pending   int `json:"pending"`
	Sent      int `json:"sent"`
	Delivered int `json:"delivered"`
	Failed    int `json:"failed"`
}
