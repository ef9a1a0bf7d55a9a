package job

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/aliskhannn/notify-pipeline/internal/batch"
	mocks "github.com/aliskhannn/notify-pipeline/internal/mocks/api/handlers/job"
	"github.com/aliskhannn/notify-pipeline/internal/model"
	jobrepo "github.com/aliskhannn/notify-pipeline/internal/repository/batchjob"
)

func setupHandler(t *testing.T) (*Handler, *mocks.MockjobEngine) {
	ctrl := gomock.NewController(t)
	mockEngine := mocks.NewMockjobEngine(ctrl)
	handler := NewHandler(mockEngine, validator.New())
	return handler, mockEngine
}

func TestHandler_Enqueue_Success(t *testing.T) {
	handler, mockEngine := setupHandler(t)

	reqBody := EnqueueRequest{
		Type:       "data_cleanup",
		Parameters: map[string]any{"retention_days": float64(7)},
	}

	bodyBytes, _ := json.Marshal(reqBody)
	req := httptest.NewRequest(http.MethodPost, "/api/jobs", bytes.NewReader(bodyBytes))
	w := httptest.NewRecorder()

	c, _ := gin.CreateTestContext(w)
	c.Request = req

	mockEngine.EXPECT().
		Enqueue(gomock.Any(), model.JobDataCleanup, reqBody.Parameters).
		Return(model.BatchJob{ID: uuid.New(), Type: model.JobDataCleanup, Status: model.JobStatusPending}, nil)

	handler.Enqueue(c)

	assert.Equal(t, http.StatusCreated, w.Result().StatusCode)
}

func TestHandler_Enqueue_UnknownType(t *testing.T) {
	handler, mockEngine := setupHandler(t)

	bodyBytes, _ := json.Marshal(EnqueueRequest{Type: "coffee_run"})
	req := httptest.NewRequest(http.MethodPost, "/api/jobs", bytes.NewReader(bodyBytes))
	w := httptest.NewRecorder()

	c, _ := gin.CreateTestContext(w)
	c.Request = req

	mockEngine.EXPECT().
		Enqueue(gomock.Any(), model.BatchJobType("coffee_run"), gomock.Nil()).
		Return(model.BatchJob{}, batch.ErrUnknownJobType)

	handler.Enqueue(c)

	assert.Equal(t, http.StatusBadRequest, w.Result().StatusCode)
}

func TestHandler_Enqueue_MissingType(t *testing.T) {
	handler, _ := setupHandler(t)

	req := httptest.NewRequest(http.MethodPost, "/api/jobs", bytes.NewReader([]byte(`{}`)))
	w := httptest.NewRecorder()

	c, _ := gin.CreateTestContext(w)
	c.Request = req

	handler.Enqueue(c)

	assert.Equal(t, http.StatusBadRequest, w.Result().StatusCode)
}

func TestHandler_GetByID_Success(t *testing.T) {
	handler, mockEngine := setupHandler(t)
	id := uuid.New()

	req := httptest.NewRequest(http.MethodGet, "/api/jobs/"+id.String(), nil)
	w := httptest.NewRecorder()

	c, _ := gin.CreateTestContext(w)
	c.Request = req
	c.Params = gin.Params{{Key: "id", Value: id.String()}}

	mockEngine.EXPECT().
		GetByID(gomock.Any(), id).
		Return(model.BatchJob{ID: id, Type: model.JobUserSync, Status: model.JobStatusCompleted}, nil)

	handler.GetByID(c)

	assert.Equal(t, http.StatusOK, w.Result().StatusCode)
}

func TestHandler_GetByID_NotFound(t *testing.T) {
	handler, mockEngine := setupHandler(t)
	id := uuid.New()

	req := httptest.NewRequest(http.MethodGet, "/api/jobs/"+id.String(), nil)
	w := httptest.NewRecorder()

	c, _ := gin.CreateTestContext(w)
	c.Request = req
	c.Params = gin.Params{{Key: "id", Value: id.String()}}

	mockEngine.EXPECT().
		GetByID(gomock.Any(), id).
		Return(model.BatchJob{}, jobrepo.ErrJobNotFound)

	handler.GetByID(c)

	assert.Equal(t, http.StatusNotFound, w.Result().StatusCode)
}

func TestHandler_List(t *testing.T) {
	handler, mockEngine := setupHandler(t)

	req := httptest.NewRequest(http.MethodGet, "/api/jobs?limit=25", nil)
	w := httptest.NewRecorder()

	c, _ := gin.CreateTestContext(w)
	c.Request = req

	mockEngine.EXPECT().
		List(gomock.Any(), 25, 0).
		Return([]model.BatchJob{{Type: model.JobUserSync}}, nil)

	handler.List(c)

	assert.Equal(t, http.StatusOK, w.Result().StatusCode)
}
