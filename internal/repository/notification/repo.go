package notification

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/wb-go/wbf/dbpg"

	"github.com/aliskhannn/notify-pipeline/internal/model"
)

var (
	ErrNotificationNotFound = errors.New("notification not found")

	// ErrNotificationFinal is returned when an update targets a notification
	// already in a terminal status. The conditional UPDATE is the
	// serialization point for racing delivery attempts, so callers treat
	// this as an idempotent no-op, not a failure.
	ErrNotificationFinal = errors.New("notification already in terminal status")
)

// Repository provides methods to interact with the notifications table.
type Repository struct {
	db *dbpg.DB
}

// NewRepository creates a new notification repository.
func NewRepository(db *dbpg.DB) *Repository {
	return &Repository{db: db}
}

// Create inserts a new pending notification and returns it with the
// generated id and timestamps filled in.
func (r *Repository) Create(ctx context.Context, n model.Notification) (model.Notification, error) {
	query := `
		INSERT INTO notifications (
		    message, type, status, user_id, metadata
		) VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at, updated_at;
    `

	metadata, err := marshalBag(n.Metadata)
	if err != nil {
		return model.Notification{}, fmt.Errorf("marshal metadata: %w", err)
	}

	var userID uuid.NullUUID
	if n.UserID != nil {
		userID = uuid.NullUUID{UUID: *n.UserID, Valid: true}
	}

	err = r.db.Master.QueryRowContext(
		ctx, query, n.Message, n.Type, n.Status, userID, metadata,
	).Scan(&n.ID, &n.CreatedAt, &n.UpdatedAt)
	if err != nil {
		return model.Notification{}, fmt.Errorf("failed to create notification: %w", err)
	}

	return n, nil
}

// GetByID retrieves a notification by its ID.
func (r *Repository) GetByID(ctx context.Context, id uuid.UUID) (model.Notification, error) {
	query := `
		SELECT id, message, type, status, user_id, metadata, retry_count,
		       error_message, sent_at, delivered_at, created_at, updated_at
		FROM notifications
		WHERE id = $1;
    `

	n, err := scanNotification(r.db.Master.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.Notification{}, ErrNotificationNotFound
		}

		return model.Notification{}, fmt.Errorf("failed to get notification: %w", err)
	}

	return n, nil
}

// List retrieves notifications ordered by creation time descending, with the
// total row count for the same filter.
func (r *Repository) List(ctx context.Context, limit, offset int, userID *uuid.UUID) ([]model.Notification, int, error) {
	query := `
		SELECT id, message, type, status, user_id, metadata, retry_count,
		       error_message, sent_at, delivered_at, created_at, updated_at
		FROM notifications
		WHERE ($1::uuid IS NULL OR user_id = $1)
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3;
    `

	var owner uuid.NullUUID
	if userID != nil {
		owner = uuid.NullUUID{UUID: *userID, Valid: true}
	}

	rows, err := r.db.QueryContext(ctx, query, owner, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list notifications: %w", err)
	}
	defer rows.Close()

	var notifications []model.Notification
	for rows.Next() {
		n, err := scanNotification(rows)
		if err != nil {
			return nil, 0, err
		}

		notifications = append(notifications, n)
	}

	countQuery := `
		SELECT COUNT(*)
		FROM notifications
		WHERE ($1::uuid IS NULL OR user_id = $1);
    `

	var total int
	if err := r.db.Master.QueryRowContext(ctx, countQuery, owner).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count notifications: %w", err)
	}

	return notifications, total, nil
}

// ListPending retrieves up to limit notifications still pending, oldest
// first. The sweep re-drives these through the delivery state machine.
func (r *Repository) ListPending(ctx context.Context, limit int) ([]model.Notification, error) {
	query := `
		SELECT id, message, type, status, user_id, metadata, retry_count,
		       error_message, sent_at, delivered_at, created_at, updated_at
		FROM notifications
		WHERE status = $1
		ORDER BY created_at ASC
		LIMIT $2;
    `

	rows, err := r.db.QueryContext(ctx, query, model.StatusPending, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list pending notifications: %w", err)
	}
	defer rows.Close()

	var notifications []model.Notification
	for rows.Next() {
		n, err := scanNotification(rows)
		if err != nil {
			return nil, err
		}

		notifications = append(notifications, n)
	}

	return notifications, nil
}

// UpdateStatus transitions a notification to status, setting the
// status-dependent fields: sent_at on sent, delivered_at on delivered,
// error_message on failed. Timestamps are set at most once.
//
// The update only applies while the current status is non-terminal; a racing
// update against a delivered or failed row returns ErrNotificationFinal.
func (r *Repository) UpdateStatus(ctx context.Context, id uuid.UUID, status model.NotificationStatus, errorMessage string) error {
	query := `
		UPDATE notifications
		SET status = $1,
		    sent_at = CASE WHEN $1 = 'sent' THEN COALESCE(sent_at, now()) ELSE sent_at END,
		    delivered_at = CASE WHEN $1 = 'delivered' THEN COALESCE(delivered_at, now()) ELSE delivered_at END,
		    error_message = CASE WHEN $1 = 'failed' THEN $2 ELSE error_message END,
		    updated_at = now()
		WHERE id = $3 AND status NOT IN ('delivered', 'failed');
    `

	res, err := r.db.ExecContext(ctx, query, status, errorMessage, id)
	if err != nil {
		return fmt.Errorf("failed to update notification status: %w", err)
	}

	rows, _ := res.RowsAffected()
	if rows == 0 {
		current, err := r.GetByID(ctx, id)
		if err != nil {
			return err
		}

		if current.Status.IsTerminal() {
			return ErrNotificationFinal
		}

		return ErrNotificationNotFound
	}

	return nil
}

// IncrementRetryCount atomically bumps the retry counter and returns the new
// value. The counter never decreases and never passes max: racing attempts
// that arrive after the bound is reached observe the current count unchanged,
// so all of them converge on the exhaustion path.
func (r *Repository) IncrementRetryCount(ctx context.Context, id uuid.UUID, max int) (int, error) {
	query := `
		UPDATE notifications
		SET retry_count = retry_count + 1, updated_at = now()
		WHERE id = $1 AND retry_count < $2
		RETURNING retry_count;
    `

	var count int
	err := r.db.Master.QueryRowContext(ctx, query, id, max).Scan(&count)
	if err == nil {
		return count, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return 0, fmt.Errorf("failed to increment retry count: %w", err)
	}

	// No row updated: either the counter is already at the bound or the
	// notification is gone.
	current := `SELECT retry_count FROM notifications WHERE id = $1;`

	if err := r.db.Master.QueryRowContext(ctx, current, id).Scan(&count); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, ErrNotificationNotFound
		}

		return 0, fmt.Errorf("failed to read retry count: %w", err)
	}

	return count, nil
}

// Stats returns per-status counts, optionally scoped to one owner.
func (r *Repository) Stats(ctx context.Context, userID *uuid.UUID) (model.NotificationStats, error) {
	query := `
		SELECT COUNT(*),
		       COUNT(*) FILTER (WHERE status = 'pending'),
		       COUNT(*) FILTER (WHERE status = 'sent'),
		       COUNT(*) FILTER (WHERE status = 'delivered'),
		       COUNT(*) FILTER (WHERE status = 'failed')
		FROM notifications
		WHERE ($1::uuid IS NULL OR user_id = $1);
    `

	var owner uuid.NullUUID
	if userID != nil {
		owner = uuid.NullUUID{UUID: *userID, Valid: true}
	}

	var stats model.NotificationStats
	err := r.db.Master.QueryRowContext(ctx, query, owner).Scan(
		&stats.Total, &stats.Pending, &stats.Sent, &stats.Delivered, &stats.Failed,
	)
	if err != nil {
		return model.NotificationStats{}, fmt.Errorf("failed to get notification stats: %w", err)
	}

	return stats, nil
}

// DeleteOlderThan removes terminal notifications created before cutoff and
// returns the number of deleted rows. Used by the data_cleanup batch job.
func (r *Repository) DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	query := `
		DELETE FROM notifications
		WHERE created_at < $1 AND status IN ('delivered', 'failed');
    `

	res, err := r.db.ExecContext(ctx, query, cutoff)
	if err != nil {
		return 0, fmt.Errorf("failed to delete old notifications: %w", err)
	}

	deleted, _ := res.RowsAffected()

	return deleted, nil
}

// CountSentSince returns sent notifications for one owner grouped by type
// since the given time. Used by the notification_digest batch job.
func (r *Repository) CountSentSince(ctx context.Context, userID uuid.UUID, since time.Time) (map[string]int, error) {
	query := `
		SELECT type, COUNT(*)
		FROM notifications
		WHERE user_id = $1 AND status = 'sent' AND sent_at >= $2
		GROUP BY type;
    `

	rows, err := r.db.QueryContext(ctx, query, userID, since)
	if err != nil {
		return nil, fmt.Errorf("failed to count sent notifications: %w", err)
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var typ string
		var count int
		if err := rows.Scan(&typ, &count); err != nil {
			return nil, err
		}

		counts[typ] = count
	}

	return counts, nil
}

// CountByTypeAndStatus returns counts grouped by (type, status) within a
// time range. Used by the report_generation batch job.
func (r *Repository) CountByTypeAndStatus(ctx context.Context, from, to time.Time) (map[string]int, error) {
	query := `
		SELECT type || ':' || status, COUNT(*)
		FROM notifications
		WHERE created_at >= $1 AND created_at <= $2
		GROUP BY type, status;
    `

	rows, err := r.db.QueryContext(ctx, query, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to count notifications by type and status: %w", err)
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var key string
		var count int
		if err := rows.Scan(&key, &count); err != nil {
			return nil, err
		}

		counts[key] = count
	}

	return counts, nil
}

// scanner abstracts *sql.Row and *sql.Rows for scanNotification.
type scanner interface {
	Scan(dest ...any) error
}

func scanNotification(s scanner) (model.Notification, error) {
	var (
		n            model.Notification
		userID       uuid.NullUUID
		metadata     []byte
		errorMessage sql.NullString
		sentAt       sql.NullTime
		deliveredAt  sql.NullTime
	)

	err := s.Scan(
		&n.ID, &n.Message, &n.Type, &n.Status, &userID, &metadata, &n.RetryCount,
		&errorMessage, &sentAt, &deliveredAt, &n.CreatedAt, &n.UpdatedAt,
	)
	if err != nil {
		return model.Notification{}, err
	}

	if userID.Valid {
		n.UserID = &userID.UUID
	}
	if len(metadata) > 0 {
		if err := json.Unmarshal(metadata, &n.Metadata); err != nil {
			return model.Notification{}, fmt.Errorf("unmarshal metadata: %w", err)
		}
	}
	if errorMessage.Valid {
		n.ErrorMessage = errorMessage.String
	}
	if sentAt.Valid {
		n.SentAt = &sentAt.Time
	}
	if deliveredAt.Valid {
		n.DeliveredAt = &deliveredAt.Time
	}

	return n, nil
}

func marshalBag(bag map[string]any) ([]byte, error) {
	if len(bag) == 0 {
		return nil, nil
	}

	return json.Marshal(bag)
}
