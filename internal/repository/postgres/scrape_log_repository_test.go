package postgres

import (
	"context"
	"database/sql"
	stderrors "errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aysenurarslann/dyrt-campground-scraper/internal/domain"
	"github.com/aysenurarslann/dyrt-campground-scraper/internal/pkg/errors"
)

func TestScrapeLogRepository_Create(t *testing.T) {
	mock, db, closeFn := setupMockDB(t)
	defer closeFn()

	repo := NewScrapeLogRepository(db)

	mock.ExpectExec(`INSERT INTO scraper_logs`).
		WithArgs(sqlmock.AnyArg(), sqlmock.AnyArg(), domain.ScrapeStatusRunning, 42).
		WillReturnResult(sqlmock.NewResult(0, 1))

	log, err := repo.Create(context.Background(), 42)

	require.NoError(t, err)
	assert.Equal(t, domain.ScrapeStatusRunning, log.Status)
	assert.Equal(t, 42, log.RecordsProcessed)
	assert.NotEmpty(t, log.ID)
	_, err = uuid.Parse(log.ID)
	assert.NoError(t, err)
	assert.WithinDuration(t, time.Now().UTC(), log.StartTime, time.Minute)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestScrapeLogRepository_MarkSuccess(t *testing.T) {
	mock, db, closeFn := setupMockDB(t)
	defer closeFn()

	repo := NewScrapeLogRepository(db)

	mock.ExpectExec(`UPDATE scraper_logs`).
		WithArgs("log-1", domain.ScrapeStatusSuccess, 3, 9).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.MarkSuccess(context.Background(), "log-1", 3, 9)

	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestScrapeLogRepository_MarkFailed(t *testing.T) {
	mock, db, closeFn := setupMockDB(t)
	defer closeFn()

	repo := NewScrapeLogRepository(db)

	mock.ExpectExec(`UPDATE scraper_logs`).
		WithArgs("log-1", domain.ScrapeStatusFailed, []byte(`{"message":"upstream down"}`)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.MarkFailed(context.Background(), "log-1", stderrors.New("upstream down"))

	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestScrapeLogRepository_List(t *testing.T) {
	t.Run("returns rows newest first", func(t *testing.T) {
		mock, db, closeFn := setupMockDB(t)
		defer closeFn()

		repo := NewScrapeLogRepository(db)

		newer := time.Now().UTC()
		older := newer.Add(-time.Hour)
		end := newer.Add(-30 * time.Minute)

		rows := sqlmock.NewRows([]string{
			"id", "start_time", "end_time", "status",
			"records_processed", "records_added", "records_updated", "errors",
		}).
			AddRow("log-2", newer, nil, "running", 0, 0, 0, nil).
			AddRow("log-1", older, end, "success", 10, 4, 6, nil)

		mock.ExpectQuery(`FROM scraper_logs`).
			WithArgs(50).
			WillReturnRows(rows)

		logs, err := repo.List(context.Background(), 50)

		require.NoError(t, err)
		require.Len(t, logs, 2)
		assert.Equal(t, "log-2", logs[0].ID)
		assert.Equal(t, domain.ScrapeStatusRunning, logs[0].Status)
		assert.Nil(t, logs[0].EndTime)
		assert.Equal(t, "log-1", logs[1].ID)
		assert.Equal(t, 4, logs[1].RecordsAdded)
		assert.NotNil(t, logs[1].EndTime)
	})

	t.Run("query failure maps to database error", func(t *testing.T) {
		mock, db, closeFn := setupMockDB(t)
		defer closeFn()

		repo := NewScrapeLogRepository(db)

		mock.ExpectQuery(`FROM scraper_logs`).WillReturnError(sql.ErrConnDone)

		_, err := repo.List(context.Background(), 50)

		assert.ErrorIs(t, err, errors.ErrDatabaseError)
	})
}
