package notification

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/wb-go/wbf/zlog"

	"github.com/aliskhannn/notify-pipeline/internal/cache"
	"github.com/aliskhannn/notify-pipeline/internal/metrics"
	"github.com/aliskhannn/notify-pipeline/internal/model"
	notifrepo "github.com/aliskhannn/notify-pipeline/internal/repository/notification"
	"github.com/aliskhannn/notify-pipeline/internal/stream"
)

var (
	// ErrEmptyMessage rejects a create request with no message text.
	ErrEmptyMessage = errors.New("message must not be empty")

	// ErrMessageTooLong rejects a message above the length bound.
	ErrMessageTooLong = fmt.Errorf("message exceeds %d characters", model.MaxMessageLength)

	// ErrStreamUnavailable marks a create whose store write committed but
	// whose stream publish failed. The record persists and the periodic
	// sweep recovers it; callers decide whether to surface the degradation.
	ErrStreamUnavailable = errors.New("stream publish failed, notification will be recovered by sweep")
)

//go:generate mockgen -source=service.go -destination=../../mocks/service/notification/mock.go -package=mocks

type notificationRepository interface {
	Create(ctx context.Context, n model.Notification) (model.Notification, error)
	GetByID(ctx context.Context, id uuid.UUID) (model.Notification, error)
	List(ctx context.Context, limit, offset int, userID *uuid.UUID) ([]model.Notification, int, error)
	ListPending(ctx context.Context, limit int) ([]model.Notification, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status model.NotificationStatus, errorMessage string) error
	IncrementRetryCount(ctx context.Context, id uuid.UUID, max int) (int, error)
	Stats(ctx context.Context, userID *uuid.UUID) (model.NotificationStats, error)
	DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error)
}

type eventLogger interface {
	Append(ctx context.Context, eventType model.EventType, aggregateID uuid.UUID, aggregateType string, payload map[string]any, metadata map[string]any) (model.Event, error)
}

type streamPublisher interface {
	Publish(topic string, message any, key string) error
}

type cacheStore interface {
	GetJSON(ctx context.Context, key string, dest any) (bool, error)
	SetJSON(ctx context.Context, key string, value any, ttl time.Duration) error
	Delete(ctx context.Context, keys ...string) error
	InvalidateLists(ctx context.Context) error
}

// ListResult is the cached shape of one list query.
type ListResult struct {
	Items []model.Notification `json:"items"`
	Total int                  `json:"total"`
}

// Service owns notification creation and reads, and is the only path by
// which a notification's status changes.
type Service struct {
	repo   notificationRepository
	events eventLogger
	stream streamPublisher
	cache  cacheStore
}

// NewService creates a new notification service.
func NewService(repo notificationRepository, events eventLogger, stream streamPublisher, cache cacheStore) *Service {
	return &Service{repo: repo, events: events, stream: stream, cache: cache}
}

// Create validates and persists a pending notification, appends the created
// event, publishes the payload to the notifications topic keyed by the new
// id, and invalidates cached list queries.
//
// A store failure is returned with nothing persisted. A stream publish
// failure after the store write is returned as ErrStreamUnavailable together
// with the persisted notification: the record stays pending and the sweep
// re-drives it.
func (s *Service) Create(
	ctx context.Context,
	message string,
	typ model.NotificationType,
	userID *uuid.UUID,
	metadata map[string]any,
) (model.Notification, error) {
	if message == "" {
		return model.Notification{}, ErrEmptyMessage
	}
	if len(message) > model.MaxMessageLength {
		return model.Notification{}, ErrMessageTooLong
	}
	if typ == "" {
		typ = model.TypeInfo
	}

	n, err := s.repo.Create(ctx, model.Notification{
		Message:  message,
		Type:     typ,
		Status:   model.StatusPending,
		UserID:   userID,
		Metadata: metadata,
	})
	if err != nil {
		return model.Notification{}, fmt.Errorf("create notification: %w", err)
	}

	if _, err := s.events.Append(ctx, model.EventNotificationCreated, n.ID, "notification", map[string]any{
		"message": n.Message,
		"type":    string(n.Type),
		"user_id": userIDString(n.UserID),
	}, map[string]any{"source": "api"}); err != nil {
		zlog.Logger.Error().Err(err).Str("id", n.ID.String()).Msg("failed to append created event")
	}

	if err := s.cache.InvalidateLists(ctx); err != nil {
		zlog.Logger.Error().Err(err).Msg("failed to invalidate list cache")
	}

	metrics.NotificationsSent.WithLabelValues(string(n.Type)).Inc()

	msg := stream.NotificationMessage{
		ID:       n.ID,
		Message:  n.Message,
		Type:     string(n.Type),
		UserID:   n.UserID,
		Metadata: n.Metadata,
		Status:   string(n.Status),
	}

	if err := s.stream.Publish(stream.TopicNotifications, msg, n.ID.String()); err != nil {
		zlog.Logger.Error().Err(err).Str("id", n.ID.String()).Msg("failed to publish notification")
		return n, fmt.Errorf("%w: %s", ErrStreamUnavailable, err)
	}

	return n, nil
}

// List serves notifications for one query shape from the cache, falling
// back to the store and repopulating the cache on a miss.
func (s *Service) List(ctx context.Context, limit, offset int, userID *uuid.UUID) (ListResult, error) {
	key := cache.ListKey(userID, limit, offset)

	var cached ListResult
	hit, err := s.cache.GetJSON(ctx, key, &cached)
	if err != nil {
		zlog.Logger.Error().Err(err).Str("key", key).Msg("failed to read list cache")
	}
	if hit {
		return cached, nil
	}

	items, total, err := s.repo.List(ctx, limit, offset, userID)
	if err != nil {
		return ListResult{}, fmt.Errorf("list notifications: %w", err)
	}

	result := ListResult{Items: items, Total: total}

	if err := s.cache.SetJSON(ctx, key, result, cache.ListTTL); err != nil {
		zlog.Logger.Error().Err(err).Str("key", key).Msg("failed to cache list result")
	}

	return result, nil
}

// GetByID retrieves one notification, memoized under the point-lookup key.
func (s *Service) GetByID(ctx context.Context, id uuid.UUID) (model.Notification, error) {
	key := cache.NotificationKey(id)

	var cached model.Notification
	hit, err := s.cache.GetJSON(ctx, key, &cached)
	if err != nil {
		zlog.Logger.Error().Err(err).Str("key", key).Msg("failed to read notification cache")
	}
	if hit {
		return cached, nil
	}

	n, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return model.Notification{}, err
	}

	if err := s.cache.SetJSON(ctx, key, n, cache.NotificationTTL); err != nil {
		zlog.Logger.Error().Err(err).Str("key", key).Msg("failed to cache notification")
	}

	return n, nil
}

// UpdateStatus transitions a notification through the state machine and
// appends the corresponding lifecycle event. It is the only status mutation
// path. A transition against an already-terminal notification returns
// ErrNotificationFinal from the repository and appends nothing.
func (s *Service) UpdateStatus(ctx context.Context, id uuid.UUID, status model.NotificationStatus, errorMessage string) error {
	if err := s.repo.UpdateStatus(ctx, id, status, errorMessage); err != nil {
		return fmt.Errorf("update notification status: %w", err)
	}

	var eventType model.EventType
	switch status {
	case model.StatusSent:
		eventType = model.EventNotificationSent
	case model.StatusDelivered:
		eventType = model.EventNotificationDelivered
	case model.StatusFailed:
		eventType = model.EventNotificationFailed
	default:
		return nil
	}

	payload := map[string]any{"status": string(status)}
	if errorMessage != "" {
		payload["error"] = errorMessage
	}

	if _, err := s.events.Append(ctx, eventType, id, "notification", payload, nil); err != nil {
		zlog.Logger.Error().Err(err).Str("id", id.String()).Msg("failed to append status event")
	}

	if err := s.cache.Delete(ctx, cache.NotificationKey(id)); err != nil {
		zlog.Logger.Error().Err(err).Str("id", id.String()).Msg("failed to invalidate notification cache")
	}

	return nil
}

// IncrementRetryCount bumps the delivery attempt counter, capped at max, and
// returns the new value.
func (s *Service) IncrementRetryCount(ctx context.Context, id uuid.UUID, max int) (int, error) {
	count, err := s.repo.IncrementRetryCount(ctx, id, max)
	if err != nil {
		return 0, fmt.Errorf("increment retry count: %w", err)
	}

	if err := s.cache.Delete(ctx, cache.NotificationKey(id)); err != nil {
		zlog.Logger.Error().Err(err).Str("id", id.String()).Msg("failed to invalidate notification cache")
	}

	return count, nil
}

// ListPending returns up to limit notifications still pending, oldest first.
func (s *Service) ListPending(ctx context.Context, limit int) ([]model.Notification, error) {
	notifications, err := s.repo.ListPending(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("list pending notifications: %w", err)
	}

	return notifications, nil
}

// Stats returns per-status counts, optionally scoped to one owner.
func (s *Service) Stats(ctx context.Context, userID *uuid.UUID) (model.NotificationStats, error) {
	stats, err := s.repo.Stats(ctx, userID)
	if err != nil {
		return model.NotificationStats{}, fmt.Errorf("get notification stats: %w", err)
	}

	return stats, nil
}

// DeleteOlderThan applies the retention policy to terminal notifications.
func (s *Service) DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	deleted, err := s.repo.DeleteOlderThan(ctx, cutoff)
	if err != nil {
		return 0, fmt.Errorf("delete old notifications: %w", err)
	}

	if err := s.cache.InvalidateLists(ctx); err != nil {
		zlog.Logger.Error().Err(err).Msg("failed to invalidate list cache")
	}

	return deleted, nil
}

// IsFinal reports whether err marks an update racing a terminal status.
func IsFinal(err error) bool {
	return errors.Is(err, notifrepo.ErrNotificationFinal)
}

func userIDString(id *uuid.UUID) string {
	if id == nil {
		return ""
	}
	return id.String()
}
