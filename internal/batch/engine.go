// Package batch is the durable background job engine: jobs are persisted,
// queued through the broker and executed by a bounded, rate-limited worker
// pool with counted redelivery.
package batch

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/wb-go/wbf/zlog"
	"golang.org/x/time/rate"

	"github.com/aliskhannn/notify-pipeline/internal/metrics"
	"github.com/aliskhannn/notify-pipeline/internal/model"
	jobrepo "github.com/aliskhannn/notify-pipeline/internal/repository/batchjob"
	"github.com/aliskhannn/notify-pipeline/internal/stream"
)

//go:generate mockgen -source=engine.go -destination=../mocks/batch/mock.go -package=mocks

// ErrUnknownJobType rejects an enqueue for a type outside the recognized
// vocabulary.
var ErrUnknownJobType = errors.New("unknown batch job type")

// HandlerFunc executes one batch job run and returns its result payload.
type HandlerFunc func(ctx context.Context, job model.BatchJob) (map[string]any, error)

type jobRepository interface {
	Create(ctx context.Context, job model.BatchJob) (model.BatchJob, error)
	GetByID(ctx context.Context, id uuid.UUID) (model.BatchJob, error)
	List(ctx context.Context, limit, offset int) ([]model.BatchJob, error)
	MarkRunning(ctx context.Context, id uuid.UUID) error
	MarkCompleted(ctx context.Context, id uuid.UUID, result map[string]any, durationMs int64) error
	MarkFailed(ctx context.Context, id uuid.UUID, errorMessage string, durationMs int64) error
}

type streamPublisher interface {
	Publish(topic string, message any, key string) error
	PublishRaw(topic string, body []byte) error
	PublishDeadLetter(originalTopic string, original []byte, cause error) error
}

type eventLogger interface {
	Append(ctx context.Context, eventType model.EventType, aggregateID uuid.UUID, aggregateType string, payload map[string]any, metadata map[string]any) (model.Event, error)
}

// Config tunes the job engine.
type Config struct {
	Workers       int           // concurrent job executions
	RatePerSecond int           // global execution rate across workers
	MaxAttempts   int           // run attempts before dead-lettering
	BackoffBase   time.Duration // redelivery delay = base * 2^(attempt-1)
}

// Engine owns the batch job lifecycle: enqueue persists a pending row and
// puts a work item on the batch-jobs topic; the subscription side executes
// handlers and drives the row through running to completed or failed.
type Engine struct {
	repo     jobRepository
	stream   streamPublisher
	events   eventLogger
	handlers map[model.BatchJobType]HandlerFunc
	limiter  *rate.Limiter
	cfg      Config

	wg sync.WaitGroup // tracks scheduled redeliveries
}

// NewEngine creates a job engine with no handlers registered.
func NewEngine(repo jobRepository, stream streamPublisher, events eventLogger, cfg Config) *Engine {
	if cfg.Workers <= 0 {
		cfg.Workers = 5
	}
	if cfg.RatePerSecond <= 0 {
		cfg.RatePerSecond = 10
	}
	if cfg.MaxAttempts <= 0 {
		cfg.MaxAttempts = 3
	}

	return &Engine{
		repo:     repo,
		stream:   stream,
		events:   events,
		handlers: make(map[model.BatchJobType]HandlerFunc),
		limiter:  rate.NewLimiter(rate.Limit(cfg.RatePerSecond), cfg.RatePerSecond),
		cfg:      cfg,
	}
}

// Workers returns the configured worker pool size for the subscription.
func (e *Engine) Workers() int {
	return e.cfg.Workers
}

// Register binds a handler to a job type. Registering twice replaces the
// previous handler.
func (e *Engine) Register(typ model.BatchJobType, fn HandlerFunc) {
	e.handlers[typ] = fn
}

// Enqueue persists a pending job and publishes its work item keyed by the
// job id. The row is authoritative: if the publish fails the job stays
// pending and can be re-enqueued by republishing its id.
func (e *Engine) Enqueue(ctx context.Context, typ model.BatchJobType, parameters map[string]any) (model.BatchJob, error) {
	if !model.KnownJobType(typ) {
		return model.BatchJob{}, fmt.Errorf("%w: %s", ErrUnknownJobType, typ)
	}

	job, err := e.repo.Create(ctx, model.BatchJob{
		Type:       typ,
		Status:     model.JobStatusPending,
		Parameters: parameters,
	})
	if err != nil {
		return model.BatchJob{}, fmt.Errorf("create batch job: %w", err)
	}

	msg := stream.JobMessage{
		BatchJobID: job.ID,
		Type:       string(job.Type),
		Parameters: job.Parameters,
		Attempt:    1,
	}

	if err := e.stream.Publish(stream.TopicBatchJobs, msg, job.ID.String()); err != nil {
		zlog.Logger.Error().Err(err).Str("job_id", job.ID.String()).Msg("failed to publish batch job")
		return job, fmt.Errorf("publish batch job: %w", err)
	}

	zlog.Logger.Info().
		Str("job_id", job.ID.String()).
		Str("type", string(job.Type)).
		Msg("batch job enqueued")

	return job, nil
}

// GetByID returns one job with its current status and run outcome.
func (e *Engine) GetByID(ctx context.Context, id uuid.UUID) (model.BatchJob, error) {
	return e.repo.GetByID(ctx, id)
}

// List returns jobs ordered by creation time descending.
func (e *Engine) List(ctx context.Context, limit, offset int) ([]model.BatchJob, error) {
	return e.repo.List(ctx, limit, offset)
}

// HandleMessage is the batch-jobs subscription entry point. Execution waits
// on the global rate limiter before running; an unmarshalable message is
// reported back to the stream layer, which dead-letters it.
func (e *Engine) HandleMessage(ctx context.Context, raw []byte) error {
	var msg stream.JobMessage
	if err := json.Unmarshal(raw, &msg); err != nil {
		return fmt.Errorf("unmarshal job message: %w", err)
	}

	// Work items published by Enqueue carry attempt >= 1; anything injected
	// without the field counts as a first attempt.
	if msg.Attempt < 1 {
		msg.Attempt = 1
	}

	if err := e.limiter.Wait(ctx); err != nil {
		return nil // shutdown
	}

	e.run(ctx, msg, raw)

	return nil
}

// run executes one delivery of a job work item.
func (e *Engine) run(ctx context.Context, msg stream.JobMessage, raw []byte) {
	job, err := e.repo.GetByID(ctx, msg.BatchJobID)
	if err != nil {
		if errors.Is(err, jobrepo.ErrJobNotFound) {
			zlog.Logger.Warn().Str("job_id", msg.BatchJobID.String()).Msg("batch job not found, skipping message")
			return
		}

		zlog.Logger.Error().Err(err).Str("job_id", msg.BatchJobID.String()).Msg("failed to load batch job")
		return
	}

	switch job.Status {
	case model.JobStatusCompleted, model.JobStatusFailed, model.JobStatusCancelled:
		zlog.Logger.Debug().
			Str("job_id", job.ID.String()).
			Str("status", string(job.Status)).
			Msg("batch job already finished, skipping")
		return
	}

	handler, ok := e.handlers[job.Type]
	if !ok {
		e.fail(ctx, job, msg, raw, 0, fmt.Errorf("no handler registered for type %s", job.Type))
		return
	}

	if err := e.repo.MarkRunning(ctx, job.ID); err != nil {
		zlog.Logger.Error().Err(err).Str("job_id", job.ID.String()).Msg("failed to mark batch job running")
		return
	}

	if msg.Attempt <= 1 {
		e.appendEvent(ctx, model.EventBatchJobStarted, job, map[string]any{
			"type": string(job.Type),
		})
	}

	zlog.Logger.Info().
		Str("job_id", job.ID.String()).
		Str("type", string(job.Type)).
		Int("attempt", msg.Attempt).
		Msg("batch job started")

	start := time.Now()
	result, err := handler(ctx, job)
	durationMs := time.Since(start).Milliseconds()

	if err != nil {
		if msg.Attempt < e.cfg.MaxAttempts {
			zlog.Logger.Warn().Err(err).
				Str("job_id", job.ID.String()).
				Int("attempt", msg.Attempt).
				Msg("batch job failed, scheduling retry")

			e.scheduleRedelivery(ctx, msg)
			return
		}

		e.fail(ctx, job, msg, raw, durationMs, err)
		return
	}

	if err := e.repo.MarkCompleted(ctx, job.ID, result, durationMs); err != nil {
		zlog.Logger.Error().Err(err).Str("job_id", job.ID.String()).Msg("failed to mark batch job completed")
		return
	}

	metrics.BatchJobsProcessed.WithLabelValues(string(job.Type), string(model.JobStatusCompleted)).Inc()

	e.appendEvent(ctx, model.EventBatchJobCompleted, job, map[string]any{
		"type":        string(job.Type),
		"duration_ms": durationMs,
		"result":      result,
	})

	zlog.Logger.Info().
		Str("job_id", job.ID.String()).
		Str("type", string(job.Type)).
		Int64("duration_ms", durationMs).
		Msg("batch job completed")
}

// fail exhausts a job: terminal failed status, failure event, and a single
// dead-letter publish of the unchanged work item.
func (e *Engine) fail(ctx context.Context, job model.BatchJob, msg stream.JobMessage, raw []byte, durationMs int64, cause error) {
	if err := e.repo.MarkFailed(ctx, job.ID, cause.Error(), durationMs); err != nil {
		zlog.Logger.Error().Err(err).Str("job_id", job.ID.String()).Msg("failed to mark batch job failed")
		return
	}

	metrics.BatchJobsProcessed.WithLabelValues(string(job.Type), string(model.JobStatusFailed)).Inc()

	e.appendEvent(ctx, model.EventBatchJobFailed, job, map[string]any{
		"type":    string(job.Type),
		"error":   cause.Error(),
		"attempt": msg.Attempt,
	})

	zlog.Logger.Error().Err(cause).
		Str("job_id", job.ID.String()).
		Int("attempt", msg.Attempt).
		Msg("batch job failed after max attempts, dead-lettering")

	if err := e.stream.PublishDeadLetter(stream.TopicBatchJobs, raw, cause); err != nil {
		zlog.Logger.Error().Err(err).Str("job_id", job.ID.String()).Msg("failed to publish to dead letter queue")
	}
}

// scheduleRedelivery re-publishes the work item with the attempt counter
// bumped, after an exponential delay. If the process stops before the timer
// fires, the job row stays running and must be re-enqueued by an operator.
func (e *Engine) scheduleRedelivery(ctx context.Context, msg stream.JobMessage) {
	next := stream.JobMessage{
		BatchJobID: msg.BatchJobID,
		Type:       msg.Type,
		Parameters: msg.Parameters,
		Attempt:    msg.Attempt + 1,
	}

	delay := e.cfg.BackoffBase << (msg.Attempt - 1)

	e.wg.Add(1)

	go func() {
		defer e.wg.Done()

		timer := time.NewTimer(delay)
		defer timer.Stop()

		select {
		case <-ctx.Done():
			return
		case <-timer.C:
		}

		if err := e.stream.Publish(stream.TopicBatchJobs, next, next.BatchJobID.String()); err != nil {
			zlog.Logger.Error().Err(err).Str("job_id", next.BatchJobID.String()).Msg("failed to republish batch job for retry")
			return
		}

		zlog.Logger.Info().
			Str("job_id", next.BatchJobID.String()).
			Int("attempt", next.Attempt).
			Msg("batch job re-queued for retry")
	}()
}

func (e *Engine) appendEvent(ctx context.Context, eventType model.EventType, job model.BatchJob, payload map[string]any) {
	if _, err := e.events.Append(ctx, eventType, job.ID, "batch_job", payload, nil); err != nil {
		zlog.Logger.Error().Err(err).Str("job_id", job.ID.String()).Msg("failed to append batch job event")
	}
}

// Wait blocks until all scheduled redeliveries have finished or been
// cancelled. Called during shutdown after the subscription stops.
func (e *Engine) Wait() {
	e.wg.Wait()
}
