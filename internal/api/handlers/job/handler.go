package job

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/wb-go/wbf/ginext"
	"github.com/wb-go/wbf/zlog"

	"github.com/aliskhannn/notify-pipeline/internal/api/respond"
	"github.com/aliskhannn/notify-pipeline/internal/batch"
	"github.com/aliskhannn/notify-pipeline/internal/model"
	jobrepo "github.com/aliskhannn/notify-pipeline/internal/repository/batchjob"
)

// jobEngine defines the interface that the Handler depends on.
//
//go:generate mockgen -source=handler.go -destination=../../../mocks/api/handlers/job/mock.go -package=mocks
type jobEngine interface {
	Enqueue(ctx context.Context, typ model.BatchJobType, parameters map[string]any) (model.BatchJob, error)
	GetByID(ctx context.Context, id uuid.UUID) (model.BatchJob, error)
	List(ctx context.Context, limit, offset int) ([]model.BatchJob, error)
}

// Handler handles HTTP requests related to batch jobs.
type Handler struct {
	engine    jobEngine
	validator *validator.Validate
}

// NewHandler creates a new Handler instance.
func NewHandler(e jobEngine, v *validator.Validate) *Handler {
	return &Handler{engine: e, validator: v}
}

// EnqueueRequest represents the JSON body expected when enqueueing a job.
type EnqueueRequest struct {
	Type       string         `json:"type" validate:"required"`
	Parameters map[string]any `json:"parameters"`
}

// Enqueue handles HTTP POST requests to queue a new batch job.
func (h *Handler) Enqueue(c *ginext.Context) {
	var req EnqueueRequest

	if err := json.NewDecoder(c.Request.Body).Decode(&req); err != nil {
		zlog.Logger.Error().Err(err).Msg("failed to decode request body")
		respond.Fail(c.Writer, http.StatusBadRequest, fmt.Errorf("invalid request body"))
		return
	}

	if err := h.validator.Struct(req); err != nil {
		zlog.Logger.Warn().Err(err).Msg("failed to validate request body")
		respond.Fail(c.Writer, http.StatusBadRequest, fmt.Errorf("validation error: %s", err.Error()))
		return
	}

	j, err := h.engine.Enqueue(c.Request.Context(), model.BatchJobType(req.Type), req.Parameters)
	if err != nil {
		if errors.Is(err, batch.ErrUnknownJobType) {
			respond.Fail(c.Writer, http.StatusBadRequest, err)
			return
		}

		zlog.Logger.Error().Err(err).Str("type", req.Type).Msg("failed to enqueue batch job")
		respond.Fail(c.Writer, http.StatusInternalServerError, fmt.Errorf("internal server error"))
		return
	}

	respond.Created(c.Writer, j)
}

// GetByID handles HTTP GET requests to retrieve one batch job with its
// current status and run outcome.
func (h *Handler) GetByID(c *ginext.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil || id == uuid.Nil {
		respond.Fail(c.Writer, http.StatusBadRequest, fmt.Errorf("invalid id"))
		return
	}

	j, err := h.engine.GetByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, jobrepo.ErrJobNotFound) {
			respond.Fail(c.Writer, http.StatusNotFound, fmt.Errorf("batch job not found"))
			return
		}

		zlog.Logger.Error().Err(err).Str("id", id.String()).Msg("failed to get batch job")
		respond.Fail(c.Writer, http.StatusInternalServerError, fmt.Errorf("internal server error"))
		return
	}

	respond.OK(c.Writer, j)
}

// List handles HTTP GET requests to list batch jobs, newest first.
func (h *Handler) List(c *ginext.Context) {
	limit := 50
	if raw := c.Query("limit"); raw != "" {
		if v, err := strconv.Atoi(raw); err == nil && v > 0 && v <= 100 {
			limit = v
		}
	}

	offset := 0
	if raw := c.Query("offset"); raw != "" {
		if v, err := strconv.Atoi(raw); err == nil && v > 0 {
			offset = v
		}
	}

	jobs, err := h.engine.List(c.Request.Context(), limit, offset)
	if err != nil {
		zlog.Logger.Error().Err(err).Msg("failed to list batch jobs")
		respond.Fail(c.Writer, http.StatusInternalServerError, fmt.Errorf("internal server error"))
		return
	}

	respond.OK(c.Writer, jobs)
}
