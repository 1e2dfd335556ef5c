// Package session authenticates principals against the administrator and
// participant credential tables and persists them across reloads through a
// session mirror.
package session

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"presensi/internal/errdef"
	"presensi/internal/identity"
	"presensi/internal/password"
)

const principalField = "principal"

// Authority resolves email/password pairs to a Principal and owns the session
// mirror lifecycle.
type Authority struct {
	admins       identity.AdminStore
	participants identity.ParticipantStore
	mirror       Mirror
	bcryptCost   int
	ttl          time.Duration
}

// NewAuthority wires the credential stores and the mirror.
func NewAuthority(admins identity.AdminStore, participants identity.ParticipantStore, mirror Mirror, bcryptCost int, ttl time.Duration) *Authority {
	if ttl <= 0 {
		ttl = 12 * time.Hour
	}
	return &Authority{
		admins:       admins,
		participants: participants,
		mirror:       mirror,
		bcryptCost:   bcryptCost,
		ttl:          ttl,
	}
}

// Authenticate checks the administrator table first, then participants. An
// email present in both tables resolves to admin. Store faults surface as the
// generic retryable
// errdef.ErrBackendUnavailable, never as raw backend errors.
func (a *Authority) Authenticate(ctx context.Context, email, pass string) (*Principal, error) {
	admin, err := a.admins.FindByEmail(ctx, email)
	if err != nil {
		log.Printf("admin lookup failed: %v", err)
		return nil, errdef.ErrBackendUnavailable
	}
	if admin != nil {
		// Administrators are a small trusted set outside the hash
		// migration; their values compare by direct equality only.
		if admin.Password != pass {
			return nil, errdef.ErrInvalidCredentials
		}
		return &Principal{ID: admin.ID, Email: admin.Email, Role: identity.RoleAdmin, Name: admin.Name}, nil
	}

	part, err := a.participants.FindByEmail(ctx, email)
	if err != nil {
		log.Printf("participant lookup failed: %v", err)
		return nil, errdef.ErrBackendUnavailable
	}
	if part == nil {
		return nil, errdef.ErrUnknownEmail
	}
	if !password.Verify(part.Password, pass) {
		return nil, errdef.ErrInvalidCredentials
	}
	return &Principal{ID: part.ID, Email: part.Email, Role: identity.RoleParticipant, Name: part.Name}, nil
}

// Register creates a participant account. The stored value is always hashed;
// the legacy plaintext path exists only for reads.
func (a *Authority) Register(ctx context.Context, reg identity.Registration) (*identity.CredentialRecord, error) {
	if err := reg.Validate(); err != nil {
		return nil, err
	}
	existing, err := a.participants.FindByEmail(ctx, reg.Email)
	if err != nil {
		log.Printf("participant lookup failed: %v", err)
		return nil, errdef.ErrBackendUnavailable
	}
	if existing != nil {
		return nil, identity.ErrEmailTaken
	}
	hashed, err := password.Hash(reg.Password, a.bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}
	rec, err := a.participants.Create(ctx, identity.CredentialRecord{
		Email:    reg.Email,
		Password: hashed,
		Name:     reg.Name,
	})
	if err != nil {
		log.Printf("participant create failed: %v", err)
		return nil, errdef.ErrBackendUnavailable
	}
	rec.Password = ""
	return &rec, nil
}

// Save serializes the principal into the session mirror.
func (a *Authority) Save(ctx context.Context, token string, p *Principal) error {
	raw, err := json.Marshal(p)
	if err != nil {
		return err
	}
	return a.mirror.Set(ctx, token, principalField, string(raw), a.ttl)
}

// Restore loads the mirrored principal for a token. The mirror is untrusted
// input: absent, "undefined", "null", unparseable, or structurally incomplete
// values all yield (nil, nil). A corrupt mirror is discarded, never a crash.
func (a *Authority) Restore(ctx context.Context, token string) (*Principal, error) {
	raw, err := a.mirror.Get(ctx, token, principalField)
	if err != nil {
		return nil, errdef.ErrBackendUnavailable
	}
	if raw == "" || raw == "undefined" || raw == "null" {
		return nil, nil
	}
	var p Principal
	if err := json.Unmarshal([]byte(raw), &p); err != nil {
		log.Printf("discarding corrupt session mirror: %v", err)
		_ = a.mirror.Delete(ctx, token, principalField)
		return nil, nil
	}
	if !p.Valid() {
		log.Printf("discarding incomplete session mirror for token")
		_ = a.mirror.Delete(ctx, token, principalField)
		return nil, nil
	}
	return &p, nil
}

// Logout wipes all session-scoped state, not just the principal blob.
func (a *Authority) Logout(ctx context.Context, token string) error {
	return a.mirror.Wipe(ctx, token)
}
