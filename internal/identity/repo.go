package identity

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
)

// AdminRepository reads the administrators table in Postgres.
type AdminRepository struct {
	db *sql.DB
}

// NewAdminRepository creates a repo.
func NewAdminRepository(db *sql.DB) *AdminRepository {
	return &AdminRepository{db: db}
}

// FindByEmail returns the administrator row for email, or nil when absent.
func (r *AdminRepository) FindByEmail(ctx context.Context, email string) (*CredentialRecord, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, email, password, name, created_at
		FROM administrators WHERE email = $1
	`, email)
	var rec CredentialRecord
	if err := row.Scan(&rec.ID, &rec.Email, &rec.Password, &rec.Name, &rec.CreatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &rec, nil
}

// ParticipantRepository persists participant credentials in Postgres.
type ParticipantRepository struct {
	db *sql.DB
}

// NewParticipantRepository creates a repo.
func NewParticipantRepository(db *sql.DB) *ParticipantRepository {
	return &ParticipantRepository{db: db}
}

// FindByEmail returns the participant row for email, or nil when absent.
func (r *ParticipantRepository) FindByEmail(ctx context.Context, email string) (*CredentialRecord, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, email, password, name, created_at
		FROM participants WHERE email = $1
	`, email)
	var rec CredentialRecord
	if err := row.Scan(&rec.ID, &rec.Email, &rec.Password, &rec.Name, &rec.CreatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &rec, nil
}

// Create inserts a new participant row. rec.Password must already be hashed;
// this repo never writes a plaintext credential.
func (r *ParticipantRepository) Create(ctx context.Context, rec CredentialRecord) (CredentialRecord, error) {
	if rec.ID == "" {
		rec.ID = uuid.NewString()
	}
	row := r.db.QueryRowContext(ctx, `
		INSERT INTO participants (id, email, password, name)
		VALUES ($1, $2, $3, $4)
		RETURNING created_at
	`, rec.ID, rec.Email, rec.Password, rec.Name)
	if err := row.Scan(&rec.CreatedAt); err != nil {
		return CredentialRecord{}, err
	}
	return rec, nil
}
