package httpapi

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"presensi/internal/auth"
	"presensi/internal/identity"
	"presensi/internal/routing"
)

// redirect answers a routing redirect decision: a Location header for
// navigations plus a JSON body for fetch clients.
func redirect(c *gin.Context, path string) {
	c.Header("Location", path)
	c.AbortWithStatusJSON(http.StatusSeeOther, gin.H{"redirect": path})
}

// pending renders the neutral waiting state for an undetermined auth state.
func pending(c *gin.Context) {
	c.Header("Retry-After", "1")
	c.AbortWithStatusJSON(http.StatusAccepted, gin.H{"status": "loading"})
}

// requireRoles gates a destination on the session's role, following the
// routing rules: no principal goes to login, a wrong role goes to its own
// home, an undetermined state waits.
func (s *Server) requireRoles(roles ...identity.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		if auth.Pending(c) {
			pending(c)
			return
		}
		d := routing.Authorize(auth.Principal(c), roles...)
		if !d.Allowed {
			redirect(c, d.Redirect)
			return
		}
		c.Next()
	}
}

// publicOnly gates destinations for unauthenticated visitors; a logged-in
// principal bounces to its role home instead of seeing the page.
func (s *Server) publicOnly() gin.HandlerFunc {
	return func(c *gin.Context) {
		if auth.Pending(c) {
			pending(c)
			return
		}
		d := routing.AuthorizePublicOnly(auth.Principal(c))
		if !d.Allowed {
			redirect(c, d.Redirect)
			return
		}
		c.Next()
	}
}
