package event

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	mocks "github.com/aliskhannn/notify-pipeline/internal/mocks/api/handlers/event"
	"github.com/aliskhannn/notify-pipeline/internal/model"
)

func setupHandler(t *testing.T) (*Handler, *mocks.MockeventService) {
	ctrl := gomock.NewController(t)
	mockService := mocks.NewMockeventService(ctrl)
	return NewHandler(mockService), mockService
}

func TestHandler_List_NoFilters(t *testing.T) {
	handler, mockService := setupHandler(t)

	req := httptest.NewRequest(http.MethodGet, "/api/events", nil)
	w := httptest.NewRecorder()

	c, _ := gin.CreateTestContext(w)
	c.Request = req

	mockService.EXPECT().
		StreamSince(gomock.Any(), gomock.Nil(), gomock.Nil(), gomock.Nil()).
		Return([]model.Event{{EventType: model.EventNotificationCreated}}, nil)

	handler.List(c)

	assert.Equal(t, http.StatusOK, w.Result().StatusCode)
}

func TestHandler_List_WindowAndTypes(t *testing.T) {
	handler, mockService := setupHandler(t)

	from := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	req := httptest.NewRequest(http.MethodGet,
		"/api/events?from=2026-08-01T00:00:00Z&type=notification.sent&type=notification.failed", nil)
	w := httptest.NewRecorder()

	c, _ := gin.CreateTestContext(w)
	c.Request = req

	mockService.EXPECT().
		StreamSince(gomock.Any(), &from, gomock.Nil(),
			[]model.EventType{model.EventNotificationSent, model.EventNotificationFailed}).
		Return(nil, nil)

	handler.List(c)

	assert.Equal(t, http.StatusOK, w.Result().StatusCode)
}

func TestHandler_List_BadFrom(t *testing.T) {
	handler, _ := setupHandler(t)

	req := httptest.NewRequest(http.MethodGet, "/api/events?from=yesterday", nil)
	w := httptest.NewRecorder()

	c, _ := gin.CreateTestContext(w)
	c.Request = req

	handler.List(c)

	assert.Equal(t, http.StatusBadRequest, w.Result().StatusCode)
}

func TestHandler_ForAggregate(t *testing.T) {
	handler, mockService := setupHandler(t)
	id := uuid.New()

	req := httptest.NewRequest(http.MethodGet, "/api/notifications/"+id.String()+"/events", nil)
	w := httptest.NewRecorder()

	c, _ := gin.CreateTestContext(w)
	c.Request = req
	c.Params = gin.Params{{Key: "id", Value: id.String()}}

	mockService.EXPECT().
		ForAggregate(gomock.Any(), id, "notification").
		Return([]model.Event{{AggregateID: id, EventType: model.EventNotificationCreated}}, nil)

	handler.ForAggregate(c)

	assert.Equal(t, http.StatusOK, w.Result().StatusCode)
}

func TestHandler_ForAggregate_BadID(t *testing.T) {
	handler, _ := setupHandler(t)

	req := httptest.NewRequest(http.MethodGet, "/api/notifications/nope/events", nil)
	w := httptest.NewRecorder()

	c, _ := gin.CreateTestContext(w)
	c.Request = req
	c.Params = gin.Params{{Key: "id", Value: "nope"}}

	handler.ForAggregate(c)

	assert.Equal(t, http.StatusBadRequest, w.Result().StatusCode)
}
