package store

import (
	"context"
	"database/sql"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
)

// DB wraps sql.DB for Postgres using pgx.
type DB struct {
	Client *sql.DB
}

// NewDB creates a Postgres connection with sane defaults.
func NewDB(connString string) (*DB, error) {
	db, err := sql.Open("pgx", connString)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(time.Hour)
	return &DB{Client: db}, db.PingContext(context.Background())
}

// Close closes the underlying connection.
func (d *DB) Close() error {
	if d == nil || d.Client == nil {
		return nil
	}
	return d.Client.Close()
}

// EnsureSchema creates the credential and attendance tables. The UNIQUE pair
// on (participant_id, day) is the authoritative once-per-day rule; every
// in-process pre-check is advisory against it.
func (d *DB) EnsureSchema(ctx context.Context) error {
	const schema = `
	CREATE TABLE IF NOT EXISTS administrators (
		id         UUID PRIMARY KEY,
		email      TEXT NOT NULL UNIQUE,
		password   TEXT NOT NULL,
		name       TEXT NOT NULL DEFAULT '',
		created_at TIMESTAMPTZ NOT NULL DEFAULT now()
	);
	CREATE TABLE IF NOT EXISTS participants (
		id         UUID PRIMARY KEY,
		email      TEXT NOT NULL UNIQUE,
		password   TEXT NOT NULL,
		name       TEXT NOT NULL DEFAULT '',
		created_at TIMESTAMPTZ NOT NULL DEFAULT now()
	);
	CREATE TABLE IF NOT EXISTS attendance (
		id             UUID PRIMARY KEY,
		participant_id UUID NOT NULL,
		name           TEXT NOT NULL,
		day            TEXT NOT NULL,
		time_of_day    TEXT NOT NULL,
		photo_url      TEXT NOT NULL,
		created_at     TIMESTAMPTZ NOT NULL DEFAULT now(),
		UNIQUE (participant_id, day)
	);
	CREATE INDEX IF NOT EXISTS idx_attendance_participant ON attendance(participant_id);
	CREATE INDEX IF NOT EXISTS idx_attendance_created     ON attendance(created_at);`

	_, err := d.Client.ExecContext(ctx, schema)
	return err
}
