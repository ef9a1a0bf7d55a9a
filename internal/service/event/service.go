package event

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/wb-go/wbf/zlog"

	"github.com/aliskhannn/notify-pipeline/internal/model"
	eventrepo "github.com/aliskhannn/notify-pipeline/internal/repository/event"
	"github.com/aliskhannn/notify-pipeline/internal/stream"
)

//go:generate mockgen -source=service.go -destination=../../mocks/service/event/mock.go -package=mocks

type eventRepository interface {
	Create(ctx context.Context, e model.Event) (model.Event, error)
	ForAggregate(ctx context.Context, aggregateID uuid.UUID, aggregateType string) ([]model.Event, error)
	Stream(ctx context.Context, f eventrepo.Filter) ([]model.Event, error)
	Unprocessed(ctx context.Context, limit int) ([]model.Event, error)
	MarkProcessed(ctx context.Context, id uuid.UUID) error
	DeleteProcessedBefore(ctx context.Context, cutoff time.Time) (int64, error)
}

type streamPublisher interface {
	Publish(topic string, message any, key string) error
}

// Service appends immutable lifecycle events and forwards copies to the
// events topic for downstream projections.
type Service struct {
	repo   eventRepository
	stream streamPublisher
}

// NewService creates a new event service.
func NewService(repo eventRepository, stream streamPublisher) *Service {
	return &Service{repo: repo, stream: stream}
}

// Append persists an event and then publishes it to the events topic keyed
// by aggregate id. The store row is authoritative: a publish failure is
// logged but does not roll back the persisted event.
func (s *Service) Append(
	ctx context.Context,
	eventType model.EventType,
	aggregateID uuid.UUID,
	aggregateType string,
	payload map[string]any,
	metadata map[string]any,
) (model.Event, error) {
	e, err := s.repo.Create(ctx, model.Event{
		EventType:     eventType,
		AggregateID:   aggregateID,
		AggregateType: aggregateType,
		Payload:       payload,
		Metadata:      metadata,
	})
	if err != nil {
		return model.Event{}, fmt.Errorf("append event: %w", err)
	}

	msg := stream.EventMessage{
		ID:            e.ID,
		EventType:     string(e.EventType),
		AggregateID:   e.AggregateID,
		AggregateType: e.AggregateType,
		Payload:       e.Payload,
		Metadata:      e.Metadata,
		CreatedAt:     e.CreatedAt,
	}

	if err := s.stream.Publish(stream.TopicEvents, msg, e.AggregateID.String()); err != nil {
		zlog.Logger.Error().Err(err).
			Str("event_id", e.ID.String()).
			Str("event_type", string(e.EventType)).
			Msg("failed to publish event to stream")
	}

	return e, nil
}

// ForAggregate returns all events describing one aggregate in creation
// order.
func (s *Service) ForAggregate(ctx context.Context, aggregateID uuid.UUID, aggregateType string) ([]model.Event, error) {
	events, err := s.repo.ForAggregate(ctx, aggregateID, aggregateType)
	if err != nil {
		return nil, fmt.Errorf("get events for aggregate: %w", err)
	}

	return events, nil
}

// StreamSince returns events in the given window, optionally filtered by
// type, ordered by creation time ascending. Used for replay and audit.
func (s *Service) StreamSince(ctx context.Context, from, to *time.Time, types []model.EventType) ([]model.Event, error) {
	events, err := s.repo.Stream(ctx, eventrepo.Filter{From: from, To: to, EventTypes: types})
	if err != nil {
		return nil, fmt.Errorf("stream events: %w", err)
	}

	return events, nil
}

// Unprocessed returns events not yet consumed by downstream projections.
func (s *Service) Unprocessed(ctx context.Context, limit int) ([]model.Event, error) {
	events, err := s.repo.Unprocessed(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("get unprocessed events: %w", err)
	}

	return events, nil
}

// MarkProcessed checkpoints one event as consumed.
func (s *Service) MarkProcessed(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.MarkProcessed(ctx, id); err != nil {
		return fmt.Errorf("mark event processed: %w", err)
	}

	return nil
}

// DeleteProcessedBefore applies the retention policy to processed events.
func (s *Service) DeleteProcessedBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	deleted, err := s.repo.DeleteProcessedBefore(ctx, cutoff)
	if err != nil {
		return 0, fmt.Errorf("delete processed events: %w", err)
	}

	return deleted, nil
}
