package notification

import (
	"context"
	"errors"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/aliskhannn/notify-pipeline/internal/cache"
	mocks "github.com/aliskhannn/notify-pipeline/internal/mocks/service/notification"
	"github.com/aliskhannn/notify-pipeline/internal/model"
	notifrepo "github.com/aliskhannn/notify-pipeline/internal/repository/notification"
	"github.com/aliskhannn/notify-pipeline/internal/stream"
)

type serviceMocks struct {
	repo   *mocks.MocknotificationRepository
	events *mocks.MockeventLogger
	stream *mocks.MockstreamPublisher
	cache  *mocks.MockcacheStore
}

func setupService(t *testing.T) (*Service, serviceMocks) {
	ctrl := gomock.NewController(t)

	m := serviceMocks{
		repo:   mocks.NewMocknotificationRepository(ctrl),
		events: mocks.NewMockeventLogger(ctrl),
		stream: mocks.NewMockstreamPublisher(ctrl),
		cache:  mocks.NewMockcacheStore(ctrl),
	}

	return NewService(m.repo, m.events, m.stream, m.cache), m
}

func TestService_Create_Success(t *testing.T) {
	svc, m := setupService(t)
	ctx := context.Background()

	id := uuid.New()

	m.repo.EXPECT().
		Create(ctx, gomock.Any()).
		DoAndReturn(func(_ context.Context, n model.Notification) (model.Notification, error) {
			assert.Equal(t, model.StatusPending, n.Status)
			n.ID = id
			return n, nil
		})

	m.events.EXPECT().
		Append(ctx, model.EventNotificationCreated, id, "notification", gomock.Any(), gomock.Any()).
		Return(model.Event{}, nil)

	m.cache.EXPECT().InvalidateLists(ctx).Return(nil)

	m.stream.EXPECT().
		Publish(stream.TopicNotifications, gomock.Any(), id.String()).
		Return(nil)

	n, err := svc.Create(ctx, "hello", model.TypeInfo, nil, nil)
	assert.NoError(t, err)
	assert.Equal(t, id, n.ID)
}

func TestService_Create_EmptyMessage(t *testing.T) {
	svc, _ := setupService(t)

	_, err := svc.Create(context.Background(), "", model.TypeInfo, nil, nil)
	assert.ErrorIs(t, err, ErrEmptyMessage)
}

func TestService_Create_MessageTooLong(t *testing.T) {
	svc, _ := setupService(t)

	long := make([]byte, model.MaxMessageLength+1)
	for i := range long {
		long[i] = 'a'
	}

	_, err := svc.Create(context.Background(), string(long), model.TypeInfo, nil, nil)
	assert.ErrorIs(t, err, ErrMessageTooLong)
}

func TestService_Create_StreamUnavailable(t *testing.T) {
	svc, m := setupService(t)
	ctx := context.Background()

	id := uuid.New()

	m.repo.EXPECT().
		Create(ctx, gomock.Any()).
		DoAndReturn(func(_ context.Context, n model.Notification) (model.Notification, error) {
			n.ID = id
			return n, nil
		})
	m.events.EXPECT().
		Append(ctx, model.EventNotificationCreated, id, "notification", gomock.Any(), gomock.Any()).
		Return(model.Event{}, nil)
	m.cache.EXPECT().InvalidateLists(ctx).Return(nil)
	m.stream.EXPECT().
		Publish(stream.TopicNotifications, gomock.Any(), id.String()).
		Return(errors.New("broker down"))

	n, err := svc.Create(ctx, "hello", model.TypeInfo, nil, nil)
	assert.ErrorIs(t, err, ErrStreamUnavailable)
	// The record persisted; the sweep recovers delivery.
	assert.Equal(t, id, n.ID)
}

func TestService_List_CacheHit(t *testing.T) {
	svc, m := setupService(t)
	ctx := context.Background()

	key := cache.ListKey(nil, 50, 0)

	m.cache.EXPECT().
		GetJSON(ctx, key, gomock.Any()).
		DoAndReturn(func(_ context.Context, _ string, dest any) (bool, error) {
			result := dest.(*ListResult)
			result.Items = []model.Notification{{Message: "cached"}}
			result.Total = 1
			return true, nil
		})

	result, err := svc.List(ctx, 50, 0, nil)
	assert.NoError(t, err)
	assert.Equal(t, 1, result.Total)
	assert.Equal(t, "cached", result.Items[0].Message)
}

func TestService_List_CacheMiss(t *testing.T) {
	svc, m := setupService(t)
	ctx := context.Background()

	key := cache.ListKey(nil, 50, 0)
	items := []model.Notification{{Message: "from store"}}

	m.cache.EXPECT().GetJSON(ctx, key, gomock.Any()).Return(false, nil)
	m.repo.EXPECT().List(ctx, 50, 0, nil).Return(items, 1, nil)
	m.cache.EXPECT().SetJSON(ctx, key, ListResult{Items: items, Total: 1}, cache.ListTTL).Return(nil)

	result, err := svc.List(ctx, 50, 0, nil)
	assert.NoError(t, err)
	assert.Equal(t, 1, result.Total)
	assert.Equal(t, "from store", result.Items[0].Message)
}

func TestService_UpdateStatus_AppendsEvent(t *testing.T) {
	svc, m := setupService(t)
	ctx := context.Background()

	id := uuid.New()

	m.repo.EXPECT().UpdateStatus(ctx, id, model.StatusSent, "").Return(nil)
	m.events.EXPECT().
		Append(ctx, model.EventNotificationSent, id, "notification", gomock.Any(), gomock.Nil()).
		Return(model.Event{}, nil)
	m.cache.EXPECT().Delete(ctx, cache.NotificationKey(id)).Return(nil)

	err := svc.UpdateStatus(ctx, id, model.StatusSent, "")
	assert.NoError(t, err)
}

func TestService_UpdateStatus_Failed_CarriesError(t *testing.T) {
	svc, m := setupService(t)
	ctx := context.Background()

	id := uuid.New()

	m.repo.EXPECT().UpdateStatus(ctx, id, model.StatusFailed, "smtp timeout").Return(nil)
	m.events.EXPECT().
		Append(ctx, model.EventNotificationFailed, id, "notification", gomock.Any(), gomock.Nil()).
		DoAndReturn(func(_ context.Context, _ model.EventType, _ uuid.UUID, _ string, payload, _ map[string]any) (model.Event, error) {
			assert.Equal(t, "smtp timeout", payload["error"])
			return model.Event{}, nil
		})
	m.cache.EXPECT().Delete(ctx, cache.NotificationKey(id)).Return(nil)

	err := svc.UpdateStatus(ctx, id, model.StatusFailed, "smtp timeout")
	assert.NoError(t, err)
}

func TestService_UpdateStatus_Terminal(t *testing.T) {
	svc, m := setupService(t)
	ctx := context.Background()

	id := uuid.New()

	m.repo.EXPECT().
		UpdateStatus(ctx, id, model.StatusSent, "").
		Return(notifrepo.ErrNotificationFinal)

	err := svc.UpdateStatus(ctx, id, model.StatusSent, "")
	assert.True(t, IsFinal(err))
}

func TestService_GetByID_CacheMiss(t *testing.T) {
	svc, m := setupService(t)
	ctx := context.Background()

	id := uuid.New()
	key := cache.NotificationKey(id)
	stored := model.Notification{ID: id, Message: "hi", Status: model.StatusSent}

	m.cache.EXPECT().GetJSON(ctx, key, gomock.Any()).Return(false, nil)
	m.repo.EXPECT().GetByID(ctx, id).Return(stored, nil)
	m.cache.EXPECT().SetJSON(ctx, key, stored, cache.NotificationTTL).Return(nil)

	n, err := svc.GetByID(ctx, id)
	assert.NoError(t, err)
	assert.Equal(t, stored, n)
}
