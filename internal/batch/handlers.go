package batch

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/google/uuid"
	"github.com/wb-go/wbf/zlog"

	"github.com/aliskhannn/notify-pipeline/internal/model"
)

type notificationStore interface {
	DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error)
	CountSentSince(ctx context.Context, userID uuid.UUID, since time.Time) (map[string]int, error)
	CountByTypeAndStatus(ctx context.Context, from, to time.Time) (map[string]int, error)
}

type eventStore interface {
	DeleteProcessedBefore(ctx context.Context, cutoff time.Time) (int64, error)
}

type jobProgress interface {
	UpdateCounts(ctx context.Context, id uuid.UUID, processed, failed, total int) error
}

// Deps are the stores the built-in job handlers operate on.
type Deps struct {
	Notifications notificationStore
	Events        eventStore
	Jobs          jobProgress
}

// RegisterDefaults binds the built-in handlers for every recognized job
// type.
func RegisterDefaults(e *Engine, deps Deps) {
	e.Register(model.JobNotificationDigest, NotificationDigest(deps.Notifications))
	e.Register(model.JobDataCleanup, DataCleanup(deps.Notifications, deps.Events, deps.Jobs))
	e.Register(model.JobReportGeneration, ReportGeneration(deps.Notifications))
	e.Register(model.JobUserSync, UserSync(deps.Jobs))
}

// reportProgress records item counts on the job row. Progress is advisory;
// a failure is logged and does not fail the run.
func reportProgress(ctx context.Context, jobs jobProgress, id uuid.UUID, processed, failed, total int) {
	if jobs == nil {
		return
	}

	if err := jobs.UpdateCounts(ctx, id, processed, failed, total); err != nil {
		zlog.Logger.Error().Err(err).Str("job_id", id.String()).Msg("failed to update batch job counts")
	}
}

// NotificationDigest summarizes notifications sent to one user over the
// requested period. Parameters: user_id (required), period_hours (default 24).
func NotificationDigest(notifications notificationStore) HandlerFunc {
	return func(ctx context.Context, job model.BatchJob) (map[string]any, error) {
		userID, err := paramUUID(job.Parameters, "user_id")
		if err != nil {
			return nil, err
		}

		periodHours := paramInt(job.Parameters, "period_hours", 24)
		since := time.Now().UTC().Add(-time.Duration(periodHours) * time.Hour)

		counts, err := notifications.CountSentSince(ctx, userID, since)
		if err != nil {
			return nil, fmt.Errorf("count sent notifications: %w", err)
		}

		total := 0
		for _, c := range counts {
			total += c
		}

		return map[string]any{
			"user_id":             userID.String(),
			"period_hours":        periodHours,
			"total_notifications": total,
			"digest":              counts,
			"generated_at":        time.Now().UTC().Format(time.RFC3339),
		}, nil
	}
}

// DataCleanup deletes terminal notifications and processed events older than
// the retention window. Parameters: retention_days (default 30).
func DataCleanup(notifications notificationStore, events eventStore, jobs jobProgress) HandlerFunc {
	return func(ctx context.Context, job model.BatchJob) (map[string]any, error) {
		retentionDays := paramInt(job.Parameters, "retention_days", 30)
		cutoff := time.Now().UTC().AddDate(0, 0, -retentionDays)

		notificationsDeleted, err := notifications.DeleteOlderThan(ctx, cutoff)
		if err != nil {
			return nil, fmt.Errorf("delete old notifications: %w", err)
		}

		eventsDeleted, err := events.DeleteProcessedBefore(ctx, cutoff)
		if err != nil {
			return nil, fmt.Errorf("delete processed events: %w", err)
		}

		total := int(notificationsDeleted + eventsDeleted)
		reportProgress(ctx, jobs, job.ID, total, 0, total)

		return map[string]any{
			"retention_days":        retentionDays,
			"notifications_deleted": notificationsDeleted,
			"events_deleted":        eventsDeleted,
			"total_deleted":         notificationsDeleted + eventsDeleted,
			"completed_at":          time.Now().UTC().Format(time.RFC3339),
		}, nil
	}
}

// ReportGeneration aggregates notification counts by type and status over a
// date range. Parameters: start_date, end_date (RFC 3339, default last 7
// days), report_type (free-form label).
func ReportGeneration(notifications notificationStore) HandlerFunc {
	return func(ctx context.Context, job model.BatchJob) (map[string]any, error) {
		now := time.Now().UTC()

		from, err := paramTime(job.Parameters, "start_date", now.AddDate(0, 0, -7))
		if err != nil {
			return nil, err
		}

		to, err := paramTime(job.Parameters, "end_date", now)
		if err != nil {
			return nil, err
		}

		stats, err := notifications.CountByTypeAndStatus(ctx, from, to)
		if err != nil {
			return nil, fmt.Errorf("aggregate notification counts: %w", err)
		}

		reportType := paramString(job.Parameters, "report_type", "summary")

		return map[string]any{
			"report_type":  reportType,
			"start_date":   from.Format(time.RFC3339),
			"end_date":     to.Format(time.RFC3339),
			"stats":        stats,
			"generated_at": now.Format(time.RFC3339),
		}, nil
	}
}

// UserSync simulates a synchronization pass against an external user
// directory. There is no real directory behind it; the handler exists to
// exercise the job pipeline end to end.
func UserSync(jobs jobProgress) HandlerFunc {
	return func(ctx context.Context, job model.BatchJob) (map[string]any, error) {
		synced := rand.Intn(100) + 1

		reportProgress(ctx, jobs, job.ID, synced, 0, synced)

		return map[string]any{
			"synced_users": synced,
			"completed_at": time.Now().UTC().Format(time.RFC3339),
		}, nil
	}
}

// Parameters arrive through JSON, so numbers are float64 and everything else
// is a string.

func paramString(params map[string]any, key, fallback string) string {
	if v, ok := params[key].(string); ok && v != "" {
		return v
	}
	return fallback
}

func paramInt(params map[string]any, key string, fallback int) int {
	switch v := params[key].(type) {
	case float64:
		return int(v)
	case int:
		return v
	}
	return fallback
}

func paramUUID(params map[string]any, key string) (uuid.UUID, error) {
	v, ok := params[key].(string)
	if !ok || v == "" {
		return uuid.Nil, fmt.Errorf("missing required parameter %s", key)
	}

	id, err := uuid.Parse(v)
	if err != nil {
		return uuid.Nil, fmt.Errorf("invalid %s: %w", key, err)
	}

	return id, nil
}

func paramTime(params map[string]any, key string, fallback time.Time) (time.Time, error) {
	v, ok := params[key].(string)
	if !ok || v == "" {
		return fallback, nil
	}

	t, err := time.Parse(time.RFC3339, v)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid %s: %w", key, err)
	}

	return t, nil
}
