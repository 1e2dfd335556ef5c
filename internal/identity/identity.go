package identity

import (
	"context"
	"errors"
	"strings"
	"time"
)

// Role labels a principal kind.
type Role string

const (
	RoleAdmin       Role = "admin"
	RoleParticipant Role = "participant"
)

// CredentialRecord is one row of either principal table. Password holds either
// a bcrypt hash (new rows) or legacy plaintext; once a row is hashed it is
// never written back to plaintext.
type CredentialRecord struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Password  string    `json:"-"`
	Name      string    `json:"name,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// Registration is the input for a new participant account.
type Registration struct {
	Name     string
	Email    string
	Password string
}

var (
	ErrMissingFields  = errors.New("nama, email, dan password harus diisi")
	ErrInvalidEmail   = errors.New("format email tidak valid")
	ErrPasswordLength = errors.New("password minimal 6 karakter")
	ErrEmailTaken     = errors.New("email sudah terdaftar")
)

// Validate applies the registration form rules.
func (r Registration) Validate() error {
	if strings.TrimSpace(r.Name) == "" || strings.TrimSpace(r.Email) == "" || r.Password == "" {
		return ErrMissingFields
	}
	at := strings.Index(r.Email, "@")
	if at <= 0 || at == len(r.Email)-1 || !strings.Contains(r.Email[at+1:], ".") || strings.ContainsAny(r.Email, " \t") {
		return ErrInvalidEmail
	}
	if len(r.Password) < 6 {
		return ErrPasswordLength
	}
	return nil
}

// AdminStore looks up administrator credentials.
type AdminStore interface {
	FindByEmail(ctx context.Context, email string) (*CredentialRecord, error)
}

// ParticipantStore looks up and creates participant credentials.
type ParticipantStore interface {
	FindByEmail(ctx context.Context, email string) (*CredentialRecord, error)
	Create(ctx context.Context, rec CredentialRecord) (CredentialRecord, error)
}
