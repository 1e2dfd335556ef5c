package attendance

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"

	"presensi/internal/errdef"
)

const pgUniqueViolation = "23505"

// Repository persists attendance records in Postgres. The attendance table
// carries UNIQUE (participant_id, day); the repo translates that violation
// into the domain's duplicate error.
type Repository struct {
	db *sql.DB
}

// NewRepository creates a repo.
func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

// Insert writes a new record.
func (r *Repository) Insert(ctx context.Context, rec Record) (Record, error) {
	if rec.ID == "" {
		rec.ID = uuid.NewString()
	}
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = time.Now().UTC()
	}
	row := r.db.QueryRowContext(ctx, `
		INSERT INTO attendance (id, participant_id, name, day, time_of_day, photo_url, created_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7)
		RETURNING created_at
	`, rec.ID, rec.ParticipantID, rec.Name, rec.Day, rec.TimeOfDay, rec.PhotoURL, rec.CreatedAt)
	if err := row.Scan(&rec.CreatedAt); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
			return Record{}, errdef.ErrDuplicateCheckin
		}
		return Record{}, err
	}
	return rec, nil
}

// HasForDay reports whether a participant already has a record for a day.
func (r *Repository) HasForDay(ctx context.Context, participantID, day string) (bool, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT 1 FROM attendance
		WHERE participant_id = $1 AND day = $2
		LIMIT 1
	`, participantID, day)
	var one int
	if err := row.Scan(&one); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

// Get returns a single record by id, or nil when absent.
func (r *Repository) Get(ctx context.Context, id string) (*Record, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, participant_id, name, day, time_of_day, photo_url, created_at
		FROM attendance WHERE id = $1
	`, id)
	var rec Record
	if err := row.Scan(&rec.ID, &rec.ParticipantID, &rec.Name, &rec.Day, &rec.TimeOfDay, &rec.PhotoURL, &rec.CreatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &rec, nil
}

// ListByParticipant returns one participant's records, newest first.
func (r *Repository) ListByParticipant(ctx context.Context, participantID string) ([]Record, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, participant_id, name, day, time_of_day, photo_url, created_at
		FROM attendance
		WHERE participant_id = $1
		ORDER BY created_at DESC
	`, participantID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanRecords(rows)
}

// ListAll returns every record, newest first.
func (r *Repository) ListAll(ctx context.Context) ([]Record, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, participant_id, name, day, time_of_day, photo_url, created_at
		FROM attendance
		ORDER BY created_at DESC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanRecords(rows)
}

// Delete removes a record row.
func (r *Repository) Delete(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM attendance WHERE id = $1`, id)
	return err
}

func scanRecords(rows *sql.Rows) ([]Record, error) {
	var res []Record
	for rows.Next() {
		var rec Record
		if err := rows.Scan(&rec.ID, &rec.ParticipantID, &rec.Name, &rec.Day, &rec.TimeOfDay, &rec.PhotoURL, &rec.CreatedAt); err != nil {
			return nil, err
		}
		res = append(res, rec)
	}
	return res, rows.Err()
}
