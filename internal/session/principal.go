package session

import "presensi/internal/identity"

// Principal is the authenticated identity carried by a session. The JSON shape
// is the session mirror format and must stay stable across releases.
type Principal struct {
	ID    string        `json:"id"`
	Email string        `json:"email"`
	Role  identity.Role `json:"role"`
	Name  string        `json:"nama,omitempty"`
}

// Valid reports whether a restored principal carries enough to be trusted.
func (p *Principal) Valid() bool {
	return p != nil && p.ID != "" && p.Email != "" &&
		(p.Role == identity.RoleAdmin || p.Role == identity.RoleParticipant)
}
