// Package consumer drives the notification delivery state machine: it
// consumes stream messages, attempts delivery, applies counted backoff and
// dead-letters exhausted notifications.
package consumer

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/wb-go/wbf/zlog"

	"github.com/aliskhannn/notify-pipeline/internal/metrics"
	"github.com/aliskhannn/notify-pipeline/internal/model"
	notifrepo "github.com/aliskhannn/notify-pipeline/internal/repository/notification"
	"github.com/aliskhannn/notify-pipeline/internal/stream"
)

//go:generate mockgen -source=handler.go -destination=../mocks/consumer/mock.go -package=mocks

// Transport delivers a notification to its external carrier (SMTP, Telegram,
// push, ...). Delivery is at-least-once; transports must tolerate replays.
type Transport interface {
	Send(ctx context.Context, to, subject, body string) error
}

type notificationService interface {
	GetByID(ctx context.Context, id uuid.UUID) (model.Notification, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status model.NotificationStatus, errorMessage string) error
	IncrementRetryCount(ctx context.Context, id uuid.UUID, max int) (int, error)
	ListPending(ctx context.Context, limit int) ([]model.Notification, error)
}

type streamPublisher interface {
	PublishRaw(topic string, body []byte) error
	PublishDeadLetter(originalTopic string, original []byte, cause error) error
}

// Config tunes the retry engine.
type Config struct {
	MaxAttempts    int           // delivery attempts before dead-lettering
	BackoffBase    time.Duration // republish delay = base * retryCount
	ConfirmDelay   time.Duration // delay before the sent -> delivered confirmation
	DefaultChannel string        // transport used when metadata names none
}

// Handler processes notification messages from the stream and from the
// periodic sweep. Both paths converge on the same attempt-and-transition
// logic; the store's conditional status update keeps racing attempts
// idempotent.
type Handler struct {
	service    notificationService
	stream     streamPublisher
	transports map[string]Transport
	cfg        Config

	wg sync.WaitGroup // tracks scheduled confirmations and republishes
}

// NewHandler creates a new retry-engine handler.
func NewHandler(service notificationService, stream streamPublisher, transports map[string]Transport, cfg Config) *Handler {
	return &Handler{
		service:    service,
		stream:     stream,
		transports: transports,
		cfg:        cfg,
	}
}

// HandleMessage is the stream subscription entry point. An unmarshalable
// message is reported back to the stream layer, which forwards it to the
// dead-letter topic.
func (h *Handler) HandleMessage(ctx context.Context, raw []byte) error {
	var msg stream.NotificationMessage
	if err := json.Unmarshal(raw, &msg); err != nil {
		return fmt.Errorf("unmarshal notification message: %w", err)
	}

	n, err := h.service.GetByID(ctx, msg.ID)
	if err != nil {
		if errors.Is(err, notifrepo.ErrNotificationNotFound) {
			zlog.Logger.Warn().Str("id", msg.ID.String()).Msg("notification not found, skipping message")
			return nil
		}

		return fmt.Errorf("get notification %s: %w", msg.ID, err)
	}

	h.attempt(ctx, n, raw)

	return nil
}

// ProcessNotification drives one notification through the attempt logic
// outside a stream delivery. The sweep uses this for pending notifications
// whose stream publish was lost.
func (h *Handler) ProcessNotification(ctx context.Context, n model.Notification) {
	msg := stream.NotificationMessage{
		ID:       n.ID,
		Message:  n.Message,
		Type:     string(n.Type),
		UserID:   n.UserID,
		Metadata: n.Metadata,
		Status:   string(n.Status),
	}

	raw, err := json.Marshal(msg)
	if err != nil {
		zlog.Logger.Error().Err(err).Str("id", n.ID.String()).Msg("failed to marshal notification message")
		return
	}

	h.attempt(ctx, n, raw)
}

// attempt performs one delivery attempt and the resulting state transition.
// raw is the serialized message re-published unchanged on retry and carried
// unchanged into the dead-letter payload.
func (h *Handler) attempt(ctx context.Context, n model.Notification, raw []byte) {
	if n.Status.IsTerminal() {
		zlog.Logger.Debug().
			Str("id", n.ID.String()).
			Str("status", string(n.Status)).
			Msg("notification already terminal, skipping")
		return
	}

	if err := h.deliver(ctx, n); err != nil {
		h.handleFailure(ctx, n, raw, err)
		return
	}

	if err := h.service.UpdateStatus(ctx, n.ID, model.StatusSent, ""); err != nil {
		if errors.Is(err, notifrepo.ErrNotificationFinal) {
			// A racing attempt finished first. Nothing left to do.
			return
		}

		zlog.Logger.Error().Err(err).Str("id", n.ID.String()).Msg("failed to set status=sent")
		return
	}

	zlog.Logger.Info().Str("id", n.ID.String()).Msg("notification sent")

	h.scheduleConfirmation(ctx, n.ID)
}

// deliver routes the notification to its transport.
func (h *Handler) deliver(ctx context.Context, n model.Notification) error {
	channel := n.Channel(h.cfg.DefaultChannel)

	transport, ok := h.transports[channel]
	if !ok {
		return fmt.Errorf("unknown channel %s", channel)
	}

	if err := transport.Send(ctx, n.Recipient(), subject(n.Type), n.Message); err != nil {
		return fmt.Errorf("send via %s: %w", channel, err)
	}

	return nil
}

// subject derives the carrier-facing subject line from the severity.
func subject(typ model.NotificationType) string {
	switch typ {
	case model.TypeSuccess:
		return "Success notification"
	case model.TypeWarning:
		return "Warning notification"
	case model.TypeError:
		return "Error notification"
	default:
		return "Notification"
	}
}

// handleFailure increments the attempt counter and either schedules a
// delayed republish or exhausts the notification: terminal failed status
// plus a single dead-letter publish of the unchanged original message.
func (h *Handler) handleFailure(ctx context.Context, n model.Notification, raw []byte, cause error) {
	count, err := h.service.IncrementRetryCount(ctx, n.ID, h.cfg.MaxAttempts)
	if err != nil {
		zlog.Logger.Error().Err(err).Str("id", n.ID.String()).Msg("failed to increment retry count")
		return
	}

	if count < h.cfg.MaxAttempts {
		zlog.Logger.Warn().Err(cause).
			Str("id", n.ID.String()).
			Int("retry_count", count).
			Msg("delivery failed, scheduling retry")

		h.scheduleRepublish(ctx, n.ID, raw, time.Duration(count)*h.cfg.BackoffBase)
		return
	}

	err = h.service.UpdateStatus(ctx, n.ID, model.StatusFailed, cause.Error())
	if err != nil {
		if errors.Is(err, notifrepo.ErrNotificationFinal) {
			// A racing attempt already exhausted this notification and owns
			// the dead-letter publish.
			return
		}

		zlog.Logger.Error().Err(err).Str("id", n.ID.String()).Msg("failed to set status=failed")
		return
	}

	zlog.Logger.Error().Err(cause).
		Str("id", n.ID.String()).
		Int("retry_count", count).
		Msg("notification failed after max retries, dead-lettering")

	metrics.NotificationsDeadLettered.Inc()

	if err := h.stream.PublishDeadLetter(stream.TopicNotifications, raw, cause); err != nil {
		zlog.Logger.Error().Err(err).Str("id", n.ID.String()).Msg("failed to publish to dead letter queue")
	}
}

// scheduleConfirmation models the asynchronous carrier acknowledgment: after
// a short fixed delay the notification is confirmed delivered. The timer is
// cancelled on shutdown; an unconfirmed notification stays sent.
func (h *Handler) scheduleConfirmation(ctx context.Context, id uuid.UUID) {
	h.wg.Add(1)

	go func() {
		defer h.wg.Done()

		timer := time.NewTimer(h.cfg.ConfirmDelay)
		defer timer.Stop()

		select {
		case <-ctx.Done():
			return
		case <-timer.C:
		}

		if err := h.service.UpdateStatus(ctx, id, model.StatusDelivered, ""); err != nil {
			// A terminal race loser is silent; anything else is an error.
			if !errors.Is(err, notifrepo.ErrNotificationFinal) {
				zlog.Logger.Error().Err(err).Str("id", id.String()).Msg("failed to set status=delivered")
			}
			return
		}

		zlog.Logger.Info().Str("id", id.String()).Msg("notification delivered")
	}()
}

// scheduleRepublish re-publishes the unchanged message to the notifications
// topic after the backoff delay, giving the consumer group another delivery
// attempt. If the process stops before the timer fires, the notification is
// still pending and the sweep recovers it.
func (h *Handler) scheduleRepublish(ctx context.Context, id uuid.UUID, raw []byte, delay time.Duration) {
	h.wg.Add(1)

	go func() {
		defer h.wg.Done()

		timer := time.NewTimer(delay)
		defer timer.Stop()

		select {
		case <-ctx.Done():
			return
		case <-timer.C:
		}

		if err := h.stream.PublishRaw(stream.TopicNotifications, raw); err != nil {
			zlog.Logger.Error().Err(err).Str("id", id.String()).Msg("failed to republish notification for retry")
			return
		}

		zlog.Logger.Info().Str("id", id.String()).Msg("notification re-queued for retry")
	}()
}

// Wait blocks until all scheduled confirmations and republishes have
// finished or been cancelled. Called during shutdown after the subscription
// stops accepting new work.
func (h *Handler) Wait() {
	h.wg.Wait()
}
