// Package routing decides where a session may go. Decisions are pure values;
// the HTTP layer turns a redirect decision into a response.
package routing

import (
	"presensi/internal/identity"
	"presensi/internal/session"
)

// Logical destinations of the app.
const (
	PathLogin    = "/login"
	PathRegister = "/register"
	PathCheckin  = "/checkin"
	PathHistory  = "/history"
	PathAdmin    = "/admin"
)

// Decision is the outcome of an authorization check.
type Decision struct {
	Allowed  bool
	Redirect string
	// Pending means the auth state is not determined yet; callers render a
	// neutral waiting state instead of allowing or redirecting.
	Pending bool
}

// Allow is the decision that lets the request through.
var Allow = Decision{Allowed: true}

// RedirectTo builds a redirect decision.
func RedirectTo(path string) Decision { return Decision{Redirect: path} }

// Pending is the decision for a not-yet-loaded auth state.
var Pending = Decision{Pending: true}

// RoleHome returns the default destination for a role. A logged-in user denied
// a destination lands here, never on a bare forbidden page.
func RoleHome(role identity.Role) string {
	if role == identity.RoleAdmin {
		return PathAdmin
	}
	return PathCheckin
}

// Authorize gates a role-protected destination. No principal sends the caller
// to the login page; a principal with the wrong role goes to its own home.
func Authorize(p *session.Principal, allowed ...identity.Role) Decision {
	if p == nil {
		return RedirectTo(PathLogin)
	}
	for _, role := range allowed {
		if p.Role == role {
			return Allow
		}
	}
	return RedirectTo(RoleHome(p.Role))
}

// AuthorizePublicOnly gates destinations meant for unauthenticated visitors,
// such as login and register. Authenticated principals bounce to their home.
func AuthorizePublicOnly(p *session.Principal) Decision {
	if p == nil {
		return Allow
	}
	return RedirectTo(RoleHome(p.Role))
}
