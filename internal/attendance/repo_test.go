package attendance

import (
	"context"
	"database/sql"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"presensi/internal/errdef"
)

func newMockRepo(t *testing.T) (*Repository, sqlmock.Sqlmock, *sql.DB) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	return NewRepository(db), mock, db
}

func TestInsertMapsUniqueViolation(t *testing.T) {
	repo, mock, db := newMockRepo(t)
	defer db.Close()

	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO attendance")).
		WillReturnError(&pgconn.PgError{Code: pgUniqueViolation, ConstraintName: "attendance_participant_id_day_key"})

	_, err := repo.Insert(context.Background(), Record{
		ParticipantID: "p1", Name: "Budi", Day: "Selasa, 25 Agustus 2026", TimeOfDay: "09.00.00",
	})
	assert.ErrorIs(t, err, errdef.ErrDuplicateCheckin)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestInsertReturnsRecord(t *testing.T) {
	repo, mock, db := newMockRepo(t)
	defer db.Close()

	created := time.Date(2026, 8, 25, 2, 0, 0, 0, time.UTC)
	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO attendance")).
		WillReturnRows(sqlmock.NewRows([]string{"created_at"}).AddRow(created))

	rec, err := repo.Insert(context.Background(), Record{ParticipantID: "p1", Day: "d"})
	require.NoError(t, err)
	assert.NotEmpty(t, rec.ID)
	assert.Equal(t, created, rec.CreatedAt)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestHasForDay(t *testing.T) {
	repo, mock, db := newMockRepo(t)
	defer db.Close()

	mock.ExpectQuery(regexp.QuoteMeta("SELECT 1 FROM attendance")).
		WithArgs("p1", "Selasa, 25 Agustus 2026").
		WillReturnRows(sqlmock.NewRows([]string{"?column?"}).AddRow(1))
	mock.ExpectQuery(regexp.QuoteMeta("SELECT 1 FROM attendance")).
		WithArgs("p1", "Rabu, 26 Agustus 2026").
		WillReturnRows(sqlmock.NewRows([]string{"?column?"}))

	has, err := repo.HasForDay(context.Background(), "p1", "Selasa, 25 Agustus 2026")
	require.NoError(t, err)
	assert.True(t, has)

	has, err = repo.HasForDay(context.Background(), "p1", "Rabu, 26 Agustus 2026")
	require.NoError(t, err)
	assert.False(t, has)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetAbsentRecord(t *testing.T) {
	repo, mock, db := newMockRepo(t)
	defer db.Close()

	mock.ExpectQuery(regexp.QuoteMeta("FROM attendance WHERE id")).
		WithArgs("rec-404").
		WillReturnRows(sqlmock.NewRows([]string{"id", "participant_id", "name", "day", "time_of_day", "photo_url", "created_at"}))

	rec, err := repo.Get(context.Background(), "rec-404")
	require.NoError(t, err)
	assert.Nil(t, rec)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListAllScansRows(t *testing.T) {
	repo, mock, db := newMockRepo(t)
	defer db.Close()

	now := time.Now()
	mock.ExpectQuery(regexp.QuoteMeta("FROM attendance")).
		WillReturnRows(sqlmock.NewRows([]string{"id", "participant_id", "name", "day", "time_of_day", "photo_url", "created_at"}).
			AddRow("rec-2", "p2", "Siti", "d", "10.00.00", "u2", now).
			AddRow("rec-1", "p1", "Budi", "d", "09.00.00", "u1", now))

	recs, err := repo.ListAll(context.Background())
	require.NoError(t, err)
	require.Len(t, recs, 2)
	assert.Equal(t, "rec-2", recs[0].ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}
