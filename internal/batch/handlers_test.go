package batch

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/aliskhannn/notify-pipeline/internal/model"
)

type stubNotificationStore struct {
	deleted      int64
	deleteCutoff time.Time

	sentCounts map[string]int
	sentUser   uuid.UUID
	sentSince  time.Time

	typeStatusCounts map[string]int
}

func (s *stubNotificationStore) DeleteOlderThan(_ context.Context, cutoff time.Time) (int64, error) {
	s.deleteCutoff = cutoff
	return s.deleted, nil
}

func (s *stubNotificationStore) CountSentSince(_ context.Context, userID uuid.UUID, since time.Time) (map[string]int, error) {
	s.sentUser = userID
	s.sentSince = since
	return s.sentCounts, nil
}

func (s *stubNotificationStore) CountByTypeAndStatus(_ context.Context, _, _ time.Time) (map[string]int, error) {
	return s.typeStatusCounts, nil
}

type stubEventStore struct {
	deleted int64
}

func (s *stubEventStore) DeleteProcessedBefore(_ context.Context, _ time.Time) (int64, error) {
	return s.deleted, nil
}

type stubJobProgress struct {
	processed int
	failed    int
	total     int
}

func (s *stubJobProgress) UpdateCounts(_ context.Context, _ uuid.UUID, processed, failed, total int) error {
	s.processed = processed
	s.failed = failed
	s.total = total
	return nil
}

func TestNotificationDigest(t *testing.T) {
	userID := uuid.New()
	store := &stubNotificationStore{sentCounts: map[string]int{"info": 3, "warning": 1}}

	handler := NotificationDigest(store)

	result, err := handler(context.Background(), model.BatchJob{
		Type: model.JobNotificationDigest,
		Parameters: map[string]any{
			"user_id":      userID.String(),
			"period_hours": float64(48),
		},
	})
	assert.NoError(t, err)
	assert.Equal(t, userID, store.sentUser)
	assert.Equal(t, 4, result["total_notifications"])
	assert.Equal(t, 48, result["period_hours"])
	// The window starts period_hours before now.
	assert.WithinDuration(t, time.Now().UTC().Add(-48*time.Hour), store.sentSince, time.Minute)
}

func TestNotificationDigest_MissingUser(t *testing.T) {
	handler := NotificationDigest(&stubNotificationStore{})

	_, err := handler(context.Background(), model.BatchJob{Type: model.JobNotificationDigest})
	assert.Error(t, err)
}

func TestDataCleanup(t *testing.T) {
	notifications := &stubNotificationStore{deleted: 5}
	events := &stubEventStore{deleted: 12}
	jobs := &stubJobProgress{}

	handler := DataCleanup(notifications, events, jobs)

	result, err := handler(context.Background(), model.BatchJob{
		ID:         uuid.New(),
		Type:       model.JobDataCleanup,
		Parameters: map[string]any{"retention_days": float64(7)},
	})
	assert.NoError(t, err)
	assert.Equal(t, int64(5), result["notifications_deleted"])
	assert.Equal(t, int64(12), result["events_deleted"])
	assert.Equal(t, int64(17), result["total_deleted"])
	assert.Equal(t, 17, jobs.processed)
	assert.Equal(t, 17, jobs.total)
	assert.WithinDuration(t, time.Now().UTC().AddDate(0, 0, -7), notifications.deleteCutoff, time.Minute)
}

func TestDataCleanup_DefaultRetention(t *testing.T) {
	notifications := &stubNotificationStore{}
	handler := DataCleanup(notifications, &stubEventStore{}, &stubJobProgress{})

	result, err := handler(context.Background(), model.BatchJob{Type: model.JobDataCleanup})
	assert.NoError(t, err)
	assert.Equal(t, 30, result["retention_days"])
}

func TestReportGeneration(t *testing.T) {
	store := &stubNotificationStore{typeStatusCounts: map[string]int{"info:delivered": 9}}

	handler := ReportGeneration(store)

	result, err := handler(context.Background(), model.BatchJob{
		Type: model.JobReportGeneration,
		Parameters: map[string]any{
			"report_type": "weekly",
			"start_date":  "2026-08-01T00:00:00Z",
			"end_date":    "2026-08-08T00:00:00Z",
		},
	})
	assert.NoError(t, err)
	assert.Equal(t, "weekly", result["report_type"])
	assert.Equal(t, map[string]int{"info:delivered": 9}, result["stats"])
}

func TestReportGeneration_BadDate(t *testing.T) {
	handler := ReportGeneration(&stubNotificationStore{})

	_, err := handler(context.Background(), model.BatchJob{
		Type:       model.JobReportGeneration,
		Parameters: map[string]any{"start_date": "yesterday"},
	})
	assert.Error(t, err)
}

func TestUserSync(t *testing.T) {
	jobs := &stubJobProgress{}
	handler := UserSync(jobs)

	result, err := handler(context.Background(), model.BatchJob{ID: uuid.New(), Type: model.JobUserSync})
	assert.NoError(t, err)

	synced := result["synced_users"].(int)
	assert.GreaterOrEqual(t, synced, 1)
	assert.LessOrEqual(t, synced, 100)
	assert.Equal(t, synced, jobs.processed)
}

func TestParseAtTime(t *testing.T) {
	hour, minute, err := parseAtTime("02:30")
	assert.NoError(t, err)
	assert.Equal(t, uint(2), hour)
	assert.Equal(t, uint(30), minute)

	_, _, err = parseAtTime("2am")
	assert.Error(t, err)

	_, _, err = parseAtTime("25:00")
	assert.Error(t, err)
}
