package event

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	mocks "github.com/aliskhannn/notify-pipeline/internal/mocks/service/event"
	"github.com/aliskhannn/notify-pipeline/internal/model"
	eventrepo "github.com/aliskhannn/notify-pipeline/internal/repository/event"
	"github.com/aliskhannn/notify-pipeline/internal/stream"
)

type serviceMocks struct {
	repo   *mocks.MockeventRepository
	stream *mocks.MockstreamPublisher
}

func setupService(t *testing.T) (*Service, serviceMocks) {
	ctrl := gomock.NewController(t)

	m := serviceMocks{
		repo:   mocks.NewMockeventRepository(ctrl),
		stream: mocks.NewMockstreamPublisher(ctrl),
	}

	return NewService(m.repo, m.stream), m
}

func TestAppend_PersistsAndPublishes(t *testing.T) {
	svc, m := setupService(t)
	ctx := context.Background()

	aggregateID := uuid.New()
	eventID := uuid.New()

	m.repo.EXPECT().
		Create(ctx, gomock.Any()).
		DoAndReturn(func(_ context.Context, e model.Event) (model.Event, error) {
			assert.Equal(t, model.EventNotificationSent, e.EventType)
			assert.Equal(t, aggregateID, e.AggregateID)
			e.ID = eventID
			e.CreatedAt = time.Now()
			return e, nil
		})

	m.stream.EXPECT().
		Publish(stream.TopicEvents, gomock.Any(), aggregateID.String()).
		Return(nil)

	e, err := svc.Append(ctx, model.EventNotificationSent, aggregateID, "notification",
		map[string]any{"status": "sent"}, nil)
	assert.NoError(t, err)
	assert.Equal(t, eventID, e.ID)
}

func TestAppend_PublishFailureKeepsEvent(t *testing.T) {
	svc, m := setupService(t)
	ctx := context.Background()

	aggregateID := uuid.New()

	m.repo.EXPECT().
		Create(ctx, gomock.Any()).
		DoAndReturn(func(_ context.Context, e model.Event) (model.Event, error) {
			e.ID = uuid.New()
			return e, nil
		})

	// The store row is authoritative; a lost publish is logged, not returned.
	m.stream.EXPECT().
		Publish(stream.TopicEvents, gomock.Any(), aggregateID.String()).
		Return(errors.New("broker down"))

	_, err := svc.Append(ctx, model.EventBatchJobCompleted, aggregateID, "batch_job", nil, nil)
	assert.NoError(t, err)
}

func TestAppend_StoreFailure(t *testing.T) {
	svc, m := setupService(t)

	m.repo.EXPECT().
		Create(gomock.Any(), gomock.Any()).
		Return(model.Event{}, errors.New("db down"))

	_, err := svc.Append(context.Background(), model.EventNotificationCreated, uuid.New(), "notification", nil, nil)
	assert.Error(t, err)
}

func TestStreamSince_PassesFilter(t *testing.T) {
	svc, m := setupService(t)
	ctx := context.Background()

	from := time.Now().Add(-time.Hour)
	types := []model.EventType{model.EventNotificationFailed}

	m.repo.EXPECT().
		Stream(ctx, eventrepo.Filter{From: &from, EventTypes: types}).
		Return([]model.Event{{EventType: model.EventNotificationFailed}}, nil)

	events, err := svc.StreamSince(ctx, &from, nil, types)
	assert.NoError(t, err)
	assert.Len(t, events, 1)
}

func TestForAggregate(t *testing.T) {
	svc, m := setupService(t)
	ctx := context.Background()

	id := uuid.New()

	m.repo.EXPECT().
		ForAggregate(ctx, id, "notification").
		Return([]model.Event{
			{EventType: model.EventNotificationCreated, AggregateID: id},
			{EventType: model.EventNotificationSent, AggregateID: id},
		}, nil)

	events, err := svc.ForAggregate(ctx, id, "notification")
	assert.NoError(t, err)
	assert.Len(t, events, 2)
}

func TestMarkProcessed(t *testing.T) {
	svc, m := setupService(t)

	id := uuid.New()

	m.repo.EXPECT().MarkProcessed(gomock.Any(), id).Return(nil)

	assert.NoError(t, svc.MarkProcessed(context.Background(), id))
}
