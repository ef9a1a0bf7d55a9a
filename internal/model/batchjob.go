package model

import (
	"time"

	"github.com/google/uuid"
)

// BatchJobType is the closed vocabulary of recognized job types.
type BatchJobType string

const (
	JobNotificationDigest BatchJobType = "notification_digest"
	JobDataCleanup        BatchJobType = "data_cleanup"
	JobReportGeneration   BatchJobType = "report_generation"
	JobUserSync           BatchJobType = "user_sync"
)

// KnownJobType reports whether t is one of the recognized job types.
func KnownJobType(t BatchJobType) bool {
	switch t {
	case JobNotificationDigest, JobDataCleanup, JobReportGeneration, JobUserSync:
		return true
	}
	return false
}

// BatchJobStatus is the lifecycle state of a batch job.
type BatchJobStatus string

const (
	JobStatusPending   BatchJobStatus = "pending"
	JobStatusRunning   BatchJobStatus = "running"
	JobStatusCompleted BatchJobStatus = "completed"
	JobStatusFailed    BatchJobStatus = "failed"
	JobStatusCancelled BatchJobStatus = "cancelled"
)

// BatchJob is a durable record of one unit of background work.
//
// startedAt is set iff the job reached running; completedAt is set iff the
// job reached a terminal status; durationMs = completedAt - startedAt when
// both are present.
type BatchJob struct {
	ID             uuid.UUID      `json:"id"`
	Type           BatchJobType   `json:"type"`
	Status         BatchJobStatus `json:"status"`
	Parameters     map[string]any `json:"parameters,omitempty"`
	Result         map[string]any `json:"result,omitempty"` // set only on completed
	ProcessedCount int            `json:"processed_count"`
	FailedCount    int            `json:"failed_count"`
	TotalCount     int            `json:"total_count"`
	ErrorMessage   string         `json:"error_message,omitempty"` // set only on failed
	ScheduledAt    *time.Time     `json:"scheduled_at,omitempty"`
	StartedAt      *time.Time     `json:"started_at,omitempty"`
	CompletedAt    *time.Time     `json:"completed_at,omitempty"`
	DurationMs     *int64         `json:"duration_ms,omitempty"`
	CreatedAt      time.Time      `json:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at"`
}

// Progress returns the completion percentage of a job run.
func (j BatchJob) Progress() int {
	if j.TotalCount == 0 {
		return 0
	}
	return int(float64(j.ProcessedCount) / float64(j.TotalCount) * 100)
}
