package notification

import (
	"context"
	"database/sql"
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

func notificationColumns() []string {
	return []string{
		"id", "message", "type", "status", "user_id", "metadata", "retry_count",
		"error_message", "sent_at", "delivered_at", "created_at", "updated_at",
	}
}

func TestCreate(t *testing.T) {
	repo, mock := setupMockDB(t)

	id := uuid.New()
	now := time.Now()
	n := model.Notification{
		Message: "Your report is ready",
		Type:    model.TypeInfo,
		Status:  model.StatusPending,
	}

	mock.ExpectQuery(regexp.QuoteMeta(`
		INSERT INTO notifications (
		    message, type, status, user_id, metadata
		) VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at, updated_at;
    `)).
		WithArgs(n.Message, n.Type, n.Status, uuid.NullUUID{}, []byte(nil)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at", "updated_at"}).AddRow(id, now, now))

	created, err := repo.Create(context.Background(), n)
	assert.NoError(t, err)
	assert.Equal(t, id, created.ID)
	assert.Equal(t, model.StatusPending, created.Status)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateStatus(t *testing.T) {
	repo, mock := setupMockDB(t)

	id := uuid.New()

	updateQuery := regexp.QuoteMeta(`
		UPDATE notifications
		SET status = $1,
		    sent_at = CASE WHEN $1 = 'sent' THEN COALESCE(sent_at, now()) ELSE sent_at END,
		    delivered_at = CASE WHEN $1 = 'delivered' THEN COALESCE(delivered_at, now()) ELSE delivered_at END,
		    error_message = CASE WHEN $1 = 'failed' THEN $2 ELSE error_message END,
		    updated_at = now()
		WHERE id = $3 AND status NOT IN ('delivered', 'failed');
    `)

	mock.ExpectExec(updateQuery).
		WithArgs(model.StatusSent, "", id).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.UpdateStatus(context.Background(), id, model.StatusSent, "")
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateStatus_AlreadyTerminal(t *testing.T) {
	repo, mock := setupMockDB(t)

	id := uuid.New()
	now := time.Now()

	updateQuery := regexp.QuoteMeta(`
		UPDATE notifications
		SET status = $1,
		    sent_at = CASE WHEN $1 = 'sent' THEN COALESCE(sent_at, now()) ELSE sent_at END,
		    delivered_at = CASE WHEN $1 = 'delivered' THEN COALESCE(delivered_at, now()) ELSE delivered_at END,
		    error_message = CASE WHEN $1 = 'failed' THEN $2 ELSE error_message END,
		    updated_at = now()
		WHERE id = $3 AND status NOT IN ('delivered', 'failed');
    `)

	// No rows affected: the row is already terminal.
	mock.ExpectExec(updateQuery).
		WithArgs(model.StatusSent, "", id).
		WillReturnResult(sqlmock.NewResult(0, 0))

	mock.ExpectQuery(regexp.QuoteMeta(`
		SELECT id, message, type, status, user_id, metadata, retry_count,
		       error_message, sent_at, delivered_at, created_at, updated_at
		FROM notifications
		WHERE id = $1;
    `)).
		WithArgs(id).
		WillReturnRows(sqlmock.NewRows(notificationColumns()).
			AddRow(id, "msg", "info", "delivered", nil, nil, 0, nil, now, now, now, now))

	err := repo.UpdateStatus(context.Background(), id, model.StatusSent, "")
	assert.ErrorIs(t, err, ErrNotificationFinal)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestIncrementRetryCount(t *testing.T) {
	repo, mock := setupMockDB(t)

	id := uuid.New()

	mock.ExpectQuery(regexp.QuoteMeta(`
		UPDATE notifications
		SET retry_count = retry_count + 1, updated_at = now()
		WHERE id = $1 AND retry_count < $2
		RETURNING retry_count;
    `)).
		WithArgs(id, 3).
		WillReturnRows(sqlmock.NewRows([]string{"retry_count"}).AddRow(2))

	count, err := repo.IncrementRetryCount(context.Background(), id, 3)
	assert.NoError(t, err)
	assert.Equal(t, 2, count)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestIncrementRetryCount_StopsAtBound(t *testing.T) {
	repo, mock := setupMockDB(t)

	id := uuid.New()

	// The guarded UPDATE matches nothing once the counter reaches the bound;
	// the racing caller reads the unchanged count and takes the exhaustion
	// path instead of pushing the counter past max.
	mock.ExpectQuery(regexp.QuoteMeta(`
		UPDATE notifications
		SET retry_count = retry_count + 1, updated_at = now()
		WHERE id = $1 AND retry_count < $2
		RETURNING retry_count;
    `)).
		WithArgs(id, 3).
		WillReturnError(sql.ErrNoRows)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT retry_count FROM notifications WHERE id = $1;`)).
		WithArgs(id).
		WillReturnRows(sqlmock.NewRows([]string{"retry_count"}).AddRow(3))

	count, err := repo.IncrementRetryCount(context.Background(), id, 3)
	assert.NoError(t, err)
	assert.Equal(t, 3, count)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestIncrementRetryCount_NotFound(t *testing.T) {
	repo, mock := setupMockDB(t)

	id := uuid.New()

	mock.ExpectQuery(regexp.QuoteMeta(`
		UPDATE notifications
		SET retry_count = retry_count + 1, updated_at = now()
		WHERE id = $1 AND retry_count < $2
		RETURNING retry_count;
    `)).
		WithArgs(id, 3).
		WillReturnError(sql.ErrNoRows)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT retry_count FROM notifications WHERE id = $1;`)).
		WithArgs(id).
		WillReturnError(sql.ErrNoRows)

	_, err := repo.IncrementRetryCount(context.Background(), id, 3)
	assert.ErrorIs(t, err, ErrNotificationNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListPending(t *testing.T) {
	repo, mock := setupMockDB(t)

	now := time.Now()
	rows := sqlmock.NewRows(notificationColumns()).
		AddRow(uuid.New(), "msg1", "info", "pending", nil, nil, 0, nil, nil, nil, now, now).
		AddRow(uuid.New(), "msg2", "warning", "pending", nil, nil, 1, nil, nil, nil, now, now)

	mock.ExpectQuery(regexp.QuoteMeta(`
		SELECT id, message, type, status, user_id, metadata, retry_count,
		       error_message, sent_at, delivered_at, created_at, updated_at
		FROM notifications
		WHERE status = $1
		ORDER BY created_at ASC
		LIMIT $2;
    `)).
		WithArgs(model.StatusPending, 100).
		WillReturnRows(rows)

	pending, err := repo.ListPending(context.Background(), 100)
	assert.NoError(t, err)
	assert.Len(t, pending, 2)
	assert.Equal(t, model.StatusPending, pending[0].Status)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetByID_NotFound(t *testing.T) {
	repo, mock := setupMockDB(t)

	id := uuid.New()

	mock.ExpectQuery(regexp.QuoteMeta(`
		SELECT id, message, type, status, user_id, metadata, retry_count,
		       error_message, sent_at, delivered_at, created_at, updated_at
		FROM notifications
		WHERE id = $1;
    `)).
		WithArgs(id).
		WillReturnError(sql.ErrNoRows)

	_, err := repo.GetByID(context.Background(), id)
	assert.ErrorIs(t, err, ErrNotificationNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStats(t *testing.T) {
	repo, mock := setupMockDB(t)

	mock.ExpectQuery(regexp.QuoteMeta(`
		SELECT COUNT(*),
		       COUNT(*) FILTER (WHERE status = 'pending'),
		       COUNT(*) FILTER (WHERE status = 'sent'),
		       COUNT(*) FILTER (WHERE status = 'delivered'),
		       COUNT(*) FILTER (WHERE status = 'failed')
		FROM notifications
		WHERE ($1::uuid IS NULL OR user_id = $1);
    `)).
		WithArgs(uuid.NullUUID{}).
		WillReturnRows(sqlmock.NewRows([]string{"total", "pending", "sent", "delivered", "failed"}).
			AddRow(10, 2, 3, 4, 1))

	stats, err := repo.Stats(context.Background(), nil)
	assert.NoError(t, err)
	assert.Equal(t, 10, stats.Total)
	assert.Equal(t, 4, stats.Delivered)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDeleteOlderThan(t *testing.T) {
	repo, mock := setupMockDB(t)

	cutoff := time.Now().AddDate(0, 0, -30)

	mock.ExpectExec(regexp.QuoteMeta(`
		DELETE FROM notifications
		WHERE created_at < $1 AND status IN ('delivered', 'failed');
    `)).
		WithArgs(cutoff).
		WillReturnResult(sqlmock.NewResult(0, 7))

	deleted, err := repo.DeleteOlderThan(context.Background(), cutoff)
	assert.NoError(t, err)
	assert.Equal(t, int64(7), deleted)
	assert.NoError(t, mock.ExpectationsWereMet())
}
