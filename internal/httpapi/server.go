// Package httpapi exposes the auth, check-in, history, and admin flows over
// JSON endpoints. Handlers translate domain errors into short user-facing
// status strings; routing decisions come from the pure routing package.
package httpapi

import (
	"sync"

	"github.com/gin-gonic/gin"

	"presensi/internal/attendance"
	"presensi/internal/auth"
	"presensi/internal/config"
	"presensi/internal/identity"
	"presensi/internal/routing"
	"presensi/internal/session"
	"presensi/internal/storage"
)

// Server holds the wired dependencies behind the HTTP surface.
type Server struct {
	cfg       config.App
	authority *session.Authority
	ledger    attendance.Ledger
	blobs     storage.ObjectStore
	records   *attendance.Service
	orphans   attendance.OrphanReporter
	clock     *attendance.Clock

	mu        sync.Mutex
	workflows map[string]*attendance.Workflow
}

// NewServer wires the API.
func NewServer(cfg config.App, authority *session.Authority, ledger attendance.Ledger, blobs storage.ObjectStore, records *attendance.Service, orphans attendance.OrphanReporter, clock *attendance.Clock) *Server {
	return &Server{
		cfg:       cfg,
		authority: authority,
		ledger:    ledger,
		blobs:     blobs,
		records:   records,
		orphans:   orphans,
		clock:     clock,
		workflows: make(map[string]*attendance.Workflow),
	}
}

// Register mounts all routes.
func (s *Server) Register(r *gin.Engine) {
	r.Use(auth.SessionLoader(s.authority, s.cfg.JWTSigningKey, s.cfg.JWTIssuer))

	v1 := r.Group("/v1")

	authGroup := v1.Group("/auth")
	authGroup.POST("/login", s.publicOnly(), s.handleLogin)
	authGroup.POST("/register", s.publicOnly(), s.handleRegister)
	authGroup.GET("/session", s.handleSession)
	authGroup.POST("/logout", s.handleLogout)

	checkin := v1.Group("/checkin", s.requireRoles(identity.RoleParticipant))
	checkin.GET("/status", s.handleCheckinStatus)
	checkin.POST("/device", s.handleDeviceReady)
	checkin.POST("/capture", s.handleCapture)
	checkin.POST("/retake", s.handleRetake)
	checkin.POST("/submit", s.handleSubmit)

	v1.GET("/history", s.requireRoles(identity.RoleParticipant, identity.RoleAdmin), s.handleHistory)

	admin := v1.Group("/admin", s.requireRoles(identity.RoleAdmin))
	admin.GET("/records", s.handleAdminList)
	admin.DELETE("/records/:id", s.handleAdminDelete)

	// Unknown destinations bounce to the unauthenticated entry point.
	r.NoRoute(func(c *gin.Context) {
		redirect(c, routing.PathLogin)
	})
}

// workflow returns the check-in workflow scoped to a session, creating it on
// first use. One workflow per session keeps the captured photo and the
// one-submit-at-a-time rule server-side.
func (s *Server) workflow(token string, p *session.Principal) *attendance.Workflow {
	s.mu.Lock()
	defer s.mu.Unlock()
	if w, ok := s.workflows[token]; ok {
		return w
	}
	w := attendance.NewWorkflow(p, s.ledger, s.blobs, s.orphans)
	s.workflows[token] = w
	return w
}

// dropWorkflow forgets a session's screen state, part of logout hygiene.
func (s *Server) dropWorkflow(token string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.workflows, token)
}
