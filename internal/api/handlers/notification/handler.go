package notification

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
	"github.com/aliskhannn/notify-pipeline/internal/model"
	notifrepo "github.com/aliskhannn/notify-pipeline/internal/repository/notification"
	notifsvc "github.com/aliskhannn/notify-pipeline/internal/service/notification"
)

// notificationService defines the interface that the Handler depends on.
//
//go:generate mockgen -source=handler.go -destination=../../../mocks/api/handlers/notification/mock.go -package=mocks
type notificationService interface {
	Create(ctx context.Context, message string, typ model.NotificationType, userID *uuid.UUID, metadata map[string]any) (model.Notification, error)
	GetByID(ctx context.Context, id uuid.UUID) (model.Notification, error)
	List(ctx context.Context, limit, offset int, userID *uuid.UUID) (notifsvc.ListResult, error)
	Stats(ctx context.Context, userID *uuid.UUID) (model.NotificationStats, error)
}

// Handler handles HTTP requests related to notifications.
type Handler struct {
	service   notificationService
	validator *validator.Validate
}

// NewHandler creates a new Handler instance.
func NewHandler(s notificationService, v *validator.Validate) *Handler {
	return &Handler{service: s, validator: v}
}

// CreateRequest represents the JSON body expected in a notification creation request.
type CreateRequest struct {
	Message  string         `json:"message" validate:"required,max=500"`
	Type     string         `json:"type" validate:"omitempty,oneof=info success warning error"`
	UserID   string         `json:"user_id" validate:"omitempty,uuid"`
	Metadata map[string]any `json:"metadata"`
}

// Create handles HTTP POST requests to create a new notification.
//
// The notification is persisted pending and queued for delivery. If the
// store write succeeds but queueing fails, the notification is still
// returned: the periodic sweep picks it up later.
func (h *Handler) Create(c *ginext.Context) {
	var req CreateRequest

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

	var userID *uuid.UUID
	if req.UserID != "" {
		id, err := uuid.Parse(req.UserID)
		if err != nil {
			respond.Fail(c.Writer, http.StatusBadRequest, fmt.Errorf("invalid user_id"))
			return
		}
		userID = &id
	}

	n, err := h.service.Create(c.Request.Context(), req.Message, model.NotificationType(req.Type), userID, req.Metadata)
	if err != nil && !errors.Is(err, notifsvc.ErrStreamUnavailable) {
		if errors.Is(err, notifsvc.ErrEmptyMessage) || errors.Is(err, notifsvc.ErrMessageTooLong) {
			respond.Fail(c.Writer, http.StatusBadRequest, err)
			return
		}

		zlog.Logger.Error().Err(err).Msg("failed to create notification")
		respond.Fail(c.Writer, http.StatusInternalServerError, fmt.Errorf("internal server error"))
		return
	}

	respond.Created(c.Writer, n)
}

// GetByID handles HTTP GET requests to retrieve one notification by ID.
func (h *Handler) GetByID(c *ginext.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil || id == uuid.Nil {
		respond.Fail(c.Writer, http.StatusBadRequest, fmt.Errorf("invalid id"))
		return
	}

	n, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, notifrepo.ErrNotificationNotFound) {
			respond.Fail(c.Writer, http.StatusNotFound, fmt.Errorf("notification not found"))
			return
		}

		zlog.Logger.Error().Err(err).Str("id", id.String()).Msg("failed to get notification")
		respond.Fail(c.Writer, http.StatusInternalServerError, fmt.Errorf("internal server error"))
		return
	}

	respond.OK(c.Writer, n)
}

// List handles HTTP GET requests to list notifications, newest first.
//
// Query parameters: limit (default 50, max 100), offset (default 0) and an
// optional user_id filter.
func (h *Handler) List(c *ginext.Context) {
	limit := queryInt(c, "limit", 50)
	if limit <= 0 || limit > 100 {
		limit = 50
	}

	offset := queryInt(c, "offset", 0)
	if offset < 0 {
		offset = 0
	}

	userID, err := queryUserID(c)
	if err != nil {
		respond.Fail(c.Writer, http.StatusBadRequest, err)
		return
	}

	result, err := h.service.List(c.Request.Context(), limit, offset, userID)
	if err != nil {
		zlog.Logger.Error().Err(err).Msg("failed to list notifications")
		respond.Fail(c.Writer, http.StatusInternalServerError, fmt.Errorf("internal server error"))
		return
	}

	respond.OK(c.Writer, result)
}

// Stats handles HTTP GET requests for per-status notification counts,
// optionally scoped to one user via the user_id query parameter.
func (h *Handler) Stats(c *ginext.Context) {
	userID, err := queryUserID(c)
	if err != nil {
		respond.Fail(c.Writer, http.StatusBadRequest, err)
		return
	}

	stats, err := h.service.Stats(c.Request.Context(), userID)
	if err != nil {
		zlog.Logger.Error().Err(err).Msg("failed to get notification stats")
		respond.Fail(c.Writer, http.StatusInternalServerError, fmt.Errorf("internal server error"))
		return
	}

	respond.OK(c.Writer, stats)
}

func queryInt(c *ginext.Context, name string, fallback int) int {
	raw := c.Query(name)
	if raw == "" {
		return fallback
	}

	v, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}

	return v
}

func queryUserID(c *ginext.Context) (*uuid.UUID, error) {
	raw := c.Query("user_id")
	if raw == "" {
		return nil, nil
	}

	id, err := uuid.Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("invalid user_id")
	}

	return &id, nil
}
