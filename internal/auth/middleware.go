package auth

import (
	"strings"

	"github.com/gin-gonic/gin"

	"presensi/internal/session"
)

const (
	principalKey = "principal"
	tokenKey     = "session_token"
	pendingKey   = "auth_pending"
)

// SessionLoader resolves the bearer token into a mirrored principal and puts
// both on the request context. A missing or invalid token is not an error
// here; the request proceeds unauthenticated and the routing layer decides
// where it may go.
func SessionLoader(authority *session.Authority, signingKey, issuer string) gin.HandlerFunc {
	return func(c *gin.Context) {
		authz := c.GetHeader("Authorization")
		if authz == "" || !strings.HasPrefix(strings.ToLower(authz), "bearer ") {
			c.Next()
			return
		}
		tokenStr := strings.TrimSpace(authz[len("bearer "):])
		if _, err := Parse(tokenStr, signingKey, issuer); err != nil {
			c.Next()
			return
		}
		c.Set(tokenKey, tokenStr)
		p, err := authority.Restore(c.Request.Context(), tokenStr)
		switch {
		case err != nil:
			// Auth state could not be determined; mark it pending so the
			// routing layer renders a neutral wait, not a premature deny.
			c.Set(pendingKey, true)
		case p != nil:
			c.Set(principalKey, p)
		}
		c.Next()
	}
}

// Pending reports whether the auth state could not be determined this request.
func Pending(c *gin.Context) bool {
	return c.GetBool(pendingKey)
}

// Principal returns the restored principal, or nil when unauthenticated.
func Principal(c *gin.Context) *session.Principal {
	if v, ok := c.Get(principalKey); ok {
		if p, ok := v.(*session.Principal); ok {
			return p
		}
	}
	return nil
}

// Token returns the validated session token, or "".
func Token(c *gin.Context) string {
	return c.GetString(tokenKey)
}
