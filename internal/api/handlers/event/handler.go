package event

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/wb-go/wbf/ginext"
	"github.com/wb-go/wbf/zlog"

	"github.com/aliskhannn/notify-pipeline/internal/api/respond"
	"github.com/aliskhannn/notify-pipeline/internal/model"
)

// eventService defines the interface that the Handler depends on.
//
//go:generate mockgen -source=handler.go -destination=../../../mocks/api/handlers/event/mock.go -package=mocks
type eventService interface {
	StreamSince(ctx context.Context, from, to *time.Time, types []model.EventType) ([]model.Event, error)
	ForAggregate(ctx context.Context, aggregateID uuid.UUID, aggregateType string) ([]model.Event, error)
}

// Handler handles HTTP requests for the event log.
type Handler struct {
	service eventService
}

// NewHandler creates a new Handler instance.
func NewHandler(s eventService) *Handler {
	return &Handler{service: s}
}

// List handles HTTP GET requests over the event log.
//
// Query parameters: from and to (RFC 3339 timestamps) bound the window;
// type may repeat to filter by event type.
func (h *Handler) List(c *ginext.Context) {
	from, err := queryTime(c, "from")
	if err != nil {
		respond.Fail(c.Writer, http.StatusBadRequest, err)
		return
	}

	to, err := queryTime(c, "to")
	if err != nil {
		respond.Fail(c.Writer, http.StatusBadRequest, err)
		return
	}

	var types []model.EventType
	for _, t := range c.QueryArray("type") {
		types = append(types, model.EventType(t))
	}

	events, err := h.service.StreamSince(c.Request.Context(), from, to, types)
	if err != nil {
		zlog.Logger.Error().Err(err).Msg("failed to list events")
		respond.Fail(c.Writer, http.StatusInternalServerError, fmt.Errorf("internal server error"))
		return
	}

	respond.OK(c.Writer, events)
}

// ForAggregate handles HTTP GET requests for the full event history of one
// aggregate, in creation order.
func (h *Handler) ForAggregate(c *ginext.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil || id == uuid.Nil {
		respond.Fail(c.Writer, http.StatusBadRequest, fmt.Errorf("invalid id"))
		return
	}

	aggregateType := c.Query("aggregate_type")
	if aggregateType == "" {
		aggregateType = "notification"
	}

	events, err := h.service.ForAggregate(c.Request.Context(), id, aggregateType)
	if err != nil {
		zlog.Logger.Error().Err(err).Str("id", id.String()).Msg("failed to get aggregate events")
		respond.Fail(c.Writer, http.StatusInternalServerError, fmt.Errorf("internal server error"))
		return
	}

	respond.OK(c.Writer, events)
}

func queryTime(c *ginext.Context, name string) (*time.Time, error) {
	raw := c.Query(name)
	if raw == "" {
		return nil, nil
	}

	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return nil, fmt.Errorf("invalid %s: must be RFC 3339", name)
	}

	return &t, nil
}
