package httpapi

import (
	"encoding/base64"
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"presensi/internal/attendance"
	authpkg "presensi/internal/auth"
	"presensi/internal/errdef"
	"presensi/internal/identity"
	"presensi/internal/metrics"
	"presensi/internal/routing"
)

func (s *Server) handleLogin(c *gin.Context) {
	var req struct {
		Email    string `json:"email" binding:"required"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "email dan password harus diisi"})
		return
	}

	p, err := s.authority.Authenticate(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		metrics.Logins.WithLabelValues("failed").Inc()
		status := http.StatusUnauthorized
		if errors.Is(err, errdef.ErrBackendUnavailable) {
			status = http.StatusServiceUnavailable
		}
		c.JSON(status, gin.H{"error": errdef.UserMessage(err)})
		return
	}

	token, expiresAt, err := authpkg.Issue(p.ID, string(p.Role), s.cfg.JWTIssuer, s.cfg.JWTSigningKey, s.cfg.SessionTTL)
	if err != nil {
		metrics.Logins.WithLabelValues("failed").Inc()
		c.JSON(http.StatusInternalServerError, gin.H{"error": "token issue failed"})
		return
	}
	if err := s.authority.Save(c.Request.Context(), token, p); err != nil {
		metrics.Logins.WithLabelValues("failed").Inc()
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": errdef.UserMessage(errdef.ErrBackendUnavailable)})
		return
	}

	metrics.Logins.WithLabelValues("ok").Inc()
	c.JSON(http.StatusOK, gin.H{
		"token":      token,
		"expires_at": expiresAt.Unix(),
		"user":       p,
		"redirect":   routing.RoleHome(p.Role),
	})
}

func (s *Server) handleRegister(c *gin.Context) {
	var req struct {
		Name     string `json:"nama" binding:"required"`
		Email    string `json:"email" binding:"required"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": identity.ErrMissingFields.Error()})
		return
	}

	rec, err := s.authority.Register(c.Request.Context(), identity.Registration{
		Name: req.Name, Email: req.Email, Password: req.Password,
	})
	if err != nil {
		switch {
		case errors.Is(err, identity.ErrMissingFields),
			errors.Is(err, identity.ErrInvalidEmail),
			errors.Is(err, identity.ErrPasswordLength):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, identity.ErrEmailTaken):
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": errdef.UserMessage(err)})
		}
		return
	}

	c.JSON(http.StatusCreated, gin.H{"user": rec, "redirect": routing.PathLogin})
}

func (s *Server) handleSession(c *gin.Context) {
	if authpkg.Pending(c) {
		pending(c)
		return
	}
	p := authpkg.Principal(c)
	if p == nil {
		c.JSON(http.StatusOK, gin.H{"user": nil})
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": p})
}

func (s *Server) handleLogout(c *gin.Context) {
	token := authpkg.Token(c)
	if token != "" {
		if err := s.authority.Logout(c.Request.Context(), token); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": errdef.UserMessage(errdef.ErrBackendUnavailable)})
			return
		}
		s.dropWorkflow(token)
	}
	c.JSON(http.StatusOK, gin.H{"redirect": routing.PathLogin})
}

func (s *Server) handleCheckinStatus(c *gin.Context) {
	w := s.workflow(authpkg.Token(c), authpkg.Principal(c))
	checkedIn, err := w.Status(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": errdef.UserMessage(err)})
		return
	}
	day, timeOfDay := s.clock.Now()
	c.JSON(http.StatusOK, gin.H{
		"checked_in": checkedIn,
		"state":      w.State().String(),
		"tanggal":    day,
		"waktu":      timeOfDay,
	})
}

func (s *Server) handleDeviceReady(c *gin.Context) {
	var req struct {
		Ready bool `json:"ready"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "provide {\"ready\": true|false}"})
		return
	}
	w := s.workflow(authpkg.Token(c), authpkg.Principal(c))
	w.SetDeviceReady(req.Ready)
	c.JSON(http.StatusOK, gin.H{"state": w.State().String()})
}

func (s *Server) handleCapture(c *gin.Context) {
	frame, err := readPhoto(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": errdef.UserMessage(errdef.ErrCaptureFailed)})
		return
	}

	w := s.workflow(authpkg.Token(c), authpkg.Principal(c))
	if err := w.Capture(frame); err != nil {
		c.JSON(http.StatusConflict, gin.H{"error": errdef.UserMessage(err)})
		return
	}
	c.JSON(http.StatusOK, gin.H{"state": w.State().String()})
}

func (s *Server) handleRetake(c *gin.Context) {
	w := s.workflow(authpkg.Token(c), authpkg.Principal(c))
	w.Retake()
	c.JSON(http.StatusOK, gin.H{"state": w.State().String()})
}

func (s *Server) handleSubmit(c *gin.Context) {
	w := s.workflow(authpkg.Token(c), authpkg.Principal(c))
	rec, err := w.Submit(c.Request.Context())
	if err != nil {
		status := http.StatusBadGateway
		switch {
		case errors.Is(err, errdef.ErrDuplicateCheckin):
			status = http.StatusConflict
		case errors.Is(err, errdef.ErrCaptureFailed), errors.Is(err, attendance.ErrSubmitInFlight):
			status = http.StatusBadRequest
		case errors.Is(err, errdef.ErrNotAuthenticated):
			status = http.StatusUnauthorized
		}
		c.JSON(status, gin.H{"error": errdef.UserMessage(err), "state": w.State().String()})
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"record": rec,
		"state":  w.State().String(),
		"status": "Absen berhasil disimpan",
	})
}

func (s *Server) handleHistory(c *gin.Context) {
	p := authpkg.Principal(c)
	recs, err := s.records.ListFor(c.Request.Context(), p.ID)
	if err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": errdef.UserMessage(err)})
		return
	}
	c.JSON(http.StatusOK, gin.H{"records": recs})
}

func (s *Server) handleAdminList(c *gin.Context) {
	recs, err := s.records.ListAll(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": errdef.UserMessage(err)})
		return
	}
	c.JSON(http.StatusOK, gin.H{"records": recs})
}

func (s *Server) handleAdminDelete(c *gin.Context) {
	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "id tidak valid"})
		return
	}

	res, err := s.records.Delete(c.Request.Context(), id)
	switch {
	case err == nil:
		c.JSON(http.StatusOK, gin.H{"deleted": true})
	case res.RowRemoved:
		// Row is gone; the stray blob is already queued for housekeeping.
		c.JSON(http.StatusOK, gin.H{"deleted": true, "warning": errdef.UserMessage(err)})
	default:
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": errdef.UserMessage(err)})
	}
}

// readPhoto accepts either a multipart "file" field or a JSON body with a
// base64 data URL, mirroring how capture devices deliver frames.
func readPhoto(c *gin.Context) ([]byte, error) {
	if strings.Contains(c.ContentType(), "multipart/form-data") {
		file, _, err := c.Request.FormFile("file")
		if err != nil {
			return nil, err
		}
		defer file.Close()
		return io.ReadAll(file)
	}

	var body struct {
		Data string `json:"data" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		return nil, err
	}
	raw := body.Data
	if i := strings.Index(raw, ";base64,"); i >= 0 {
		raw = raw[i+len(";base64,"):]
	}
	return base64.StdEncoding.DecodeString(raw)
}
