package batchjob

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/wb-go/wbf/dbpg"

	"github.com/aliskhannn/notify-pipeline/internal/model"
)

var ErrJobNotFound = errors.New("batch job not found")

// Repository provides methods to interact with the batch_jobs table.
type Repository struct {
	db *dbpg.DB
}

// NewRepository creates a new batch job repository.
func NewRepository(db *dbpg.DB) *Repository {
	return &Repository{db: db}
}

// Create inserts a new pending batch job and returns it with the generated
// id and timestamps filled in.
func (r *Repository) Create(ctx context.Context, job model.BatchJob) (model.BatchJob, error) {
	query := `
		INSERT INTO batch_jobs (
		    type, status, parameters, scheduled_at
		) VALUES ($1, $2, $3, now())
		RETURNING id, scheduled_at, created_at, updated_at;
    `

	var (
		parameters []byte
		err        error
	)
	if len(job.Parameters) > 0 {
		parameters, err = json.Marshal(job.Parameters)
		if err != nil {
			return model.BatchJob{}, fmt.Errorf("marshal parameters: %w", err)
		}
	}

	var scheduledAt sql.NullTime
	err = r.db.Master.QueryRowContext(
		ctx, query, job.Type, job.Status, parameters,
	).Scan(&job.ID, &scheduledAt, &job.CreatedAt, &job.UpdatedAt)
	if err != nil {
		return model.BatchJob{}, fmt.Errorf("failed to create batch job: %w", err)
	}

	if scheduledAt.Valid {
		job.ScheduledAt = &scheduledAt.Time
	}

	return job, nil
}

// GetByID retrieves a batch job by its ID.
func (r *Repository) GetByID(ctx context.Context, id uuid.UUID) (model.BatchJob, error) {
	query := `
		SELECT id, type, status, parameters, result, processed_count,
		       failed_count, total_count, error_message, scheduled_at,
		       started_at, completed_at, duration_ms, created_at, updated_at
		FROM batch_jobs
		WHERE id = $1;
    `

	job, err := scanJob(r.db.Master.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.BatchJob{}, ErrJobNotFound
		}

		return model.BatchJob{}, fmt.Errorf("failed to get batch job: %w", err)
	}

	return job, nil
}

// List retrieves batch jobs ordered by creation time descending.
func (r *Repository) List(ctx context.Context, limit, offset int) ([]model.BatchJob, error) {
	query := `
		SELECT id, type, status, parameters, result, processed_count,
		       failed_count, total_count, error_message, scheduled_at,
		       started_at, completed_at, duration_ms, created_at, updated_at
		FROM batch_jobs
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2;
    `

	rows, err := r.db.QueryContext(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list batch jobs: %w", err)
	}
	defer rows.Close()

	var jobs []model.BatchJob
	for rows.Next() {
		job, err := scanJob(rows)
		if err != nil {
			return nil, err
		}

		jobs = append(jobs, job)
	}

	return jobs, rows.Err()
}

// MarkRunning transitions a job to running and records the start time.
func (r *Repository) MarkRunning(ctx context.Context, id uuid.UUID) error {
	query := `
		UPDATE batch_jobs
		SET status = $1, started_at = now(), updated_at = now()
		WHERE id = $2;
    `

	res, err := r.db.ExecContext(ctx, query, model.JobStatusRunning, id)
	if err != nil {
		return fmt.Errorf("failed to mark batch job running: %w", err)
	}

	rows, _ := res.RowsAffected()
	if rows == 0 {
		return ErrJobNotFound
	}

	return nil
}

// MarkCompleted transitions a job to completed, storing its result and run
// duration.
func (r *Repository) MarkCompleted(ctx context.Context, id uuid.UUID, result map[string]any, durationMs int64) error {
	query := `
		UPDATE batch_jobs
		SET status = $1, result = $2, completed_at = now(), duration_ms = $3, updated_at = now()
		WHERE id = $4;
    `

	data, err := json.Marshal(result)
	if err != nil {
		return fmt.Errorf("marshal result: %w", err)
	}

	res, err := r.db.ExecContext(ctx, query, model.JobStatusCompleted, data, durationMs, id)
	if err != nil {
		return fmt.Errorf("failed to mark batch job completed: %w", err)
	}

	rows, _ := res.RowsAffected()
	if rows == 0 {
		return ErrJobNotFound
	}

	return nil
}

// MarkFailed transitions a job to failed, storing the failure cause and run
// duration. The work queue's own redelivery mechanism decides whether the
// job is attempted again.
func (r *Repository) MarkFailed(ctx context.Context, id uuid.UUID, errorMessage string, durationMs int64) error {
	query := `
		UPDATE batch_jobs
		SET status = $1, error_message = $2, completed_at = now(), duration_ms = $3, updated_at = now()
		WHERE id = $4;
    `

	res, err := r.db.ExecContext(ctx, query, model.JobStatusFailed, errorMessage, durationMs, id)
	if err != nil {
		return fmt.Errorf("failed to mark batch job failed: %w", err)
	}

	rows, _ := res.RowsAffected()
	if rows == 0 {
		return ErrJobNotFound
	}

	return nil
}

// UpdateCounts records run progress. Counts are monotonic within a run.
func (r *Repository) UpdateCounts(ctx context.Context, id uuid.UUID, processed, failed, total int) error {
	query := `
		UPDATE batch_jobs
		SET processed_count = $1, failed_count = $2, total_count = $3, updated_at = now()
		WHERE id = $4;
    `

	res, err := r.db.ExecContext(ctx, query, processed, failed, total, id)
	if err != nil {
		return fmt.Errorf("failed to update batch job counts: %w", err)
	}

	rows, _ := res.RowsAffected()
	if rows == 0 {
		return ErrJobNotFound
	}

	return nil
}

// scanner abstracts *sql.Row and *sql.Rows for scanJob.
type scanner interface {
	Scan(dest ...any) error
}

func scanJob(s scanner) (model.BatchJob, error) {
	var (
		job          model.BatchJob
		parameters   []byte
		result       []byte
		errorMessage sql.NullString
		scheduledAt  sql.NullTime
		startedAt    sql.NullTime
		completedAt  sql.NullTime
		durationMs   sql.NullInt64
	)

	err := s.Scan(
		&job.ID, &job.Type, &job.Status, &parameters, &result,
		&job.ProcessedCount, &job.FailedCount, &job.TotalCount, &errorMessage,
		&scheduledAt, &startedAt, &completedAt, &durationMs,
		&job.CreatedAt, &job.UpdatedAt,
	)
	if err != nil {
		return model.BatchJob{}, err
	}

	if len(parameters) > 0 {
		if err := json.Unmarshal(parameters, &job.Parameters); err != nil {
			return model.BatchJob{}, fmt.Errorf("unmarshal parameters: %w", err)
		}
	}
	if len(result) > 0 {
		if err := json.Unmarshal(result, &job.Result); err != nil {
			return model.BatchJob{}, fmt.Errorf("unmarshal result: %w", err)
		}
	}
	if errorMessage.Valid {
		job.ErrorMessage = errorMessage.String
	}
	if scheduledAt.Valid {
		job.ScheduledAt = &scheduledAt.Time
	}
	if startedAt.Valid {
		job.StartedAt = &startedAt.Time
	}
	if completedAt.Valid {
		job.CompletedAt = &completedAt.Time
	}
	if durationMs.Valid {
		job.DurationMs = &durationMs.Int64
	}

	return job, nil
}
