package event

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/wb-go/wbf/dbpg"

	"github.com/aliskhannn/notify-pipeline/internal/model"
)

func setupMockDB(t *testing.T) (*Repository, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to open mock db: %v", err)
	}

	wrappedDB := &dbpg.DB{Master: db}
	repo := NewRepository(wrappedDB)

	return repo, mock
}

func eventColumns() []string {
	return []string{
		"id", "event_type", "aggregate_id", "aggregate_type", "payload",
		"metadata", "processed", "processed_at", "created_at",
	}
}

func TestCreate(t *testing.T) {
	repo, mock := setupMockDB(t)

	id := uuid.New()
	aggregateID := uuid.New()
	now := time.Now()

	e := model.Event{
		EventType:     model.EventNotificationCreated,
		AggregateID:   aggregateID,
		AggregateType: "notification",
		Payload:       map[string]any{"message": "hi"},
	}

	mock.ExpectQuery(regexp.QuoteMeta(`
		INSERT INTO events (
		    event_type, aggregate_id, aggregate_type, payload, metadata
		) VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at;
    `)).
		WithArgs(e.EventType, e.AggregateID, e.AggregateType, []byte(`{"message":"hi"}`), []byte(nil)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at"}).AddRow(id, now))

	created, err := repo.Create(context.Background(), e)
	assert.NoError(t, err)
	assert.Equal(t, id, created.ID)
	assert.Equal(t, model.EventNotificationCreated, created.EventType)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestForAggregate(t *testing.T) {
	repo, mock := setupMockDB(t)

	aggregateID := uuid.New()
	now := time.Now()

	rows := sqlmock.NewRows(eventColumns()).
		AddRow(uuid.New(), "notification.created", aggregateID, "notification", []byte(`{"message":"hi"}`), nil, false, nil, now).
		AddRow(uuid.New(), "notification.sent", aggregateID, "notification", []byte(`{"status":"sent"}`), nil, false, nil, now.Add(time.Second))

	mock.ExpectQuery(regexp.QuoteMeta(`
		SELECT id, event_type, aggregate_id, aggregate_type, payload, metadata,
		       processed, processed_at, created_at
		FROM events
		WHERE aggregate_id = $1 AND ($2 = '' OR aggregate_type = $2)
		ORDER BY created_at ASC;
    `)).
		WithArgs(aggregateID, "notification").
		WillReturnRows(rows)

	events, err := repo.ForAggregate(context.Background(), aggregateID, "notification")
	assert.NoError(t, err)
	assert.Len(t, events, 2)
	assert.Equal(t, model.EventNotificationCreated, events[0].EventType)
	assert.Equal(t, model.EventNotificationSent, events[1].EventType)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMarkProcessed(t *testing.T) {
	repo, mock := setupMockDB(t)

	id := uuid.New()

	mock.ExpectExec(regexp.QuoteMeta(`
		UPDATE events
		SET processed = true, processed_at = now()
		WHERE id = $1;
    `)).
		WithArgs(id).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.MarkProcessed(context.Background(), id)
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())

	mock.ExpectExec(regexp.QuoteMeta(`
		UPDATE events
		SET processed = true, processed_at = now()
		WHERE id = $1;
    `)).
		WithArgs(id).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err = repo.MarkProcessed(context.Background(), id)
	assert.ErrorIs(t, err, ErrEventNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDeleteProcessedBefore(t *testing.T) {
	repo, mock := setupMockDB(t)

	cutoff := time.Now().AddDate(0, 0, -30)

	mock.ExpectExec(regexp.QuoteMeta(`
		DELETE FROM events
		WHERE created_at < $1 AND processed = true;
    `)).
		WithArgs(cutoff).
		WillReturnResult(sqlmock.NewResult(0, 12))

	deleted, err := repo.DeleteProcessedBefore(context.Background(), cutoff)
	assert.NoError(t, err)
	assert.Equal(t, int64(12), deleted)
	assert.NoError(t, mock.ExpectationsWereMet())
}
