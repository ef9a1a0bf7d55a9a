package event

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/wb-go/wbf/dbpg"

	"github.com/aliskhannn/notify-pipeline/internal/model"
)

var ErrEventNotFound = errors.New("event not found")

// Filter narrows the event stream query. Zero fields are ignored.
type Filter struct {
	From       *time.Time
	To         *time.Time
	EventTypes []model.EventType
}

// Repository provides methods to interact with the append-only events table.
// Rows are never mutated after insert except for the processed checkpoint.
type Repository struct {
	db *dbpg.DB
}

// NewRepository creates a new event repository.
func NewRepository(db *dbpg.DB) *Repository {
	return &Repository{db: db}
}

// Create appends a new event and returns it with the generated id and
// creation time filled in.
func (r *Repository) Create(ctx context.Context, e model.Event) (model.Event, error) {
	query := `
		INSERT INTO events (
		    event_type, aggregate_id, aggregate_type, payload, metadata
		) VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at;
    `

	payload, err := json.Marshal(e.Payload)
	if err != nil {
		return model.Event{}, fmt.Errorf("marshal payload: %w", err)
	}

	var metadata []byte
	if len(e.Metadata) > 0 {
		metadata, err = json.Marshal(e.Metadata)
		if err != nil {
			return model.Event{}, fmt.Errorf("marshal metadata: %w", err)
		}
	}

	err = r.db.Master.QueryRowContext(
		ctx, query, e.EventType, e.AggregateID, e.AggregateType, payload, metadata,
	).Scan(&e.ID, &e.CreatedAt)
	if err != nil {
		return model.Event{}, fmt.Errorf("failed to create event: %w", err)
	}

	return e, nil
}

// ForAggregate retrieves all events for one aggregate in creation order.
func (r *Repository) ForAggregate(ctx context.Context, aggregateID uuid.UUID, aggregateType string) ([]model.Event, error) {
	query := `
		SELECT id, event_type, aggregate_id, aggregate_type, payload, metadata,
		       processed, processed_at, created_at
		FROM events
		WHERE aggregate_id = $1 AND ($2 = '' OR aggregate_type = $2)
		ORDER BY created_at ASC;
    `

	rows, err := r.db.QueryContext(ctx, query, aggregateID, aggregateType)
	if err != nil {
		return nil, fmt.Errorf("failed to get events for aggregate: %w", err)
	}
	defer rows.Close()

	return collectEvents(rows)
}

// Stream retrieves events matching the filter, ordered by creation time
// ascending, for replay and audit.
func (r *Repository) Stream(ctx context.Context, f Filter) ([]model.Event, error) {
	var (
		conds []string
		args  []any
	)

	if f.From != nil {
		args = append(args, *f.From)
		conds = append(conds, fmt.Sprintf("created_at >= $%d", len(args)))
	}
	if f.To != nil {
		args = append(args, *f.To)
		conds = append(conds, fmt.Sprintf("created_at <= $%d", len(args)))
	}
	if len(f.EventTypes) > 0 {
		placeholders := make([]string, 0, len(f.EventTypes))
		for _, t := range f.EventTypes {
			args = append(args, t)
			placeholders = append(placeholders, fmt.Sprintf("$%d", len(args)))
		}
		conds = append(conds, fmt.Sprintf("event_type IN (%s)", strings.Join(placeholders, ", ")))
	}

	query := `
		SELECT id, event_type, aggregate_id, aggregate_type, payload, metadata,
		       processed, processed_at, created_at
		FROM events
	`
	if len(conds) > 0 {
		query += " WHERE " + strings.Join(conds, " AND ")
	}
	query += " ORDER BY created_at ASC;"

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to stream events: %w", err)
	}
	defer rows.Close()

	return collectEvents(rows)
}

// Unprocessed retrieves up to limit events not yet consumed by downstream
// projections, oldest first.
func (r *Repository) Unprocessed(ctx context.Context, limit int) ([]model.Event, error) {
	query := `
		SELECT id, event_type, aggregate_id, aggregate_type, payload, metadata,
		       processed, processed_at, created_at
		FROM events
		WHERE processed = false
		ORDER BY created_at ASC
		LIMIT $1;
    `

	rows, err := r.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to get unprocessed events: %w", err)
	}
	defer rows.Close()

	return collectEvents(rows)
}

// MarkProcessed records the cooperative checkpoint for one event.
func (r *Repository) MarkProcessed(ctx context.Context, id uuid.UUID) error {
	query := `
		UPDATE events
		SET processed = true, processed_at = now()
		WHERE id = $1;
    `

	res, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to mark event as processed: %w", err)
	}

	rows, _ := res.RowsAffected()
	if rows == 0 {
		return ErrEventNotFound
	}

	return nil
}

// DeleteProcessedBefore removes processed events created before cutoff,
// returning the number of deleted rows. This is the only deletion path and
// belongs to the retention policy, not the pipeline.
func (r *Repository) DeleteProcessedBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	query := `
		DELETE FROM events
		WHERE created_at < $1 AND processed = true;
    `

	res, err := r.db.ExecContext(ctx, query, cutoff)
	if err != nil {
		return 0, fmt.Errorf("failed to delete old events: %w", err)
	}

	deleted, _ := res.RowsAffected()

	return deleted, nil
}

func collectEvents(rows *sql.Rows) ([]model.Event, error) {
	var events []model.Event

	for rows.Next() {
		var (
			e           model.Event
			payload     []byte
			metadata    []byte
			processedAt sql.NullTime
		)

		err := rows.Scan(
			&e.ID, &e.EventType, &e.AggregateID, &e.AggregateType, &payload,
			&metadata, &e.Processed, &processedAt, &e.CreatedAt,
		)
		if err != nil {
			return nil, err
		}

		if len(payload) > 0 {
			if err := json.Unmarshal(payload, &e.Payload); err != nil {
				return nil, fmt.Errorf("unmarshal payload: %w", err)
			}
		}
		if len(metadata) > 0 {
			if err := json.Unmarshal(metadata, &e.Metadata); err != nil {
				return nil, fmt.Errorf("unmarshal metadata: %w", err)
			}
		}
		if processedAt.Valid {
			e.ProcessedAt = &processedAt.Time
		}

		events = append(events, e)
	}

	return events, rows.Err()
}
