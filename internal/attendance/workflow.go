package attendance

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"sync"
	"time"

	"presensi/internal/errdef"
	"presensi/internal/localtime"
	"presensi/internal/metrics"
	"presensi/internal/session"
	"presensi/internal/storage"
)

// State of a check-in attempt.
type State int

const (
	StateIdle State = iota
	StatePhotoCaptured
	StateSubmitting
	StateSucceeded
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StatePhotoCaptured:
		return "photo_captured"
	case StateSubmitting:
		return "submitting"
	case StateSucceeded:
		return "succeeded"
	case StateFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// ErrSubmitInFlight rejects a second submit while one is still resolving.
var ErrSubmitInFlight = errors.New("submit already in progress")

// OrphanReporter receives blob keys that may be stranded in object storage: a
// blob uploaded for a check-in whose record insert failed, or a blob whose
// delete failed. These are housekeeping notices, never fatal.
type OrphanReporter interface {
	ReportOrphan(ctx context.Context, key string)
}

// Workflow drives one check-in screen: Idle → PhotoCaptured → Submitting →
// {Succeeded | Failed}. The upload-then-insert pair is a saga, not a
// transaction; when the insert fails after a successful upload the workflow
// reports the inconsistency and keeps the photo so the user can retry.
type Workflow struct {
	mu          sync.Mutex
	state       State
	photo       []byte
	deviceReady bool
	checkedIn   bool
	inFlight    bool

	principal *session.Principal
	ledger    Ledger
	blobs     storage.ObjectStore
	orphans   OrphanReporter
	now       func() time.Time
}

// NewWorkflow creates a workflow bound to one principal. principal may be nil
// for an unauthenticated screen; Submit then fails before touching storage.
func NewWorkflow(principal *session.Principal, ledger Ledger, blobs storage.ObjectStore, orphans OrphanReporter) *Workflow {
	return &Workflow{
		principal: principal,
		ledger:    ledger,
		blobs:     blobs,
		orphans:   orphans,
		now:       time.Now,
	}
}

// State returns the current machine state.
func (w *Workflow) State() State {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.state
}

// CheckedIn returns the cached daily status. Advisory only; Submit re-verifies
// against the ledger.
func (w *Workflow) CheckedIn() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.checkedIn
}

// SetDeviceReady records whether a capture device is available.
func (w *Workflow) SetDeviceReady(ready bool) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.deviceReady = ready
}

// Capture holds a still frame. Without a ready device this is a no-op
// reported as a device error; an empty frame is a capture failure.
func (w *Workflow) Capture(frame []byte) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if !w.deviceReady {
		return errdef.ErrDeviceNotReady
	}
	if len(frame) == 0 {
		return errdef.ErrCaptureFailed
	}
	w.photo = frame
	w.state = StatePhotoCaptured
	return nil
}

// Retake discards the held photo.
func (w *Workflow) Retake() {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.photo = nil
	w.state = StateIdle
}

// Status runs the advisory daily pre-check for the current participant.
func (w *Workflow) Status(ctx context.Context) (bool, error) {
	w.mu.Lock()
	p := w.principal
	w.mu.Unlock()
	if p == nil || p.ID == "" {
		return false, errdef.ErrNotAuthenticated
	}
	has, err := w.ledger.HasForDay(ctx, p.ID, localtime.Day(w.now()))
	if err != nil {
		log.Printf("daily status check failed: %v", err)
		return false, errdef.ErrBackendUnavailable
	}
	w.mu.Lock()
	w.checkedIn = has
	w.mu.Unlock()
	return has, nil
}

// Submit uploads the held photo and inserts the attendance record. Order
// matters: the record must never exist without its blob, so the upload comes
// first and a failed insert leaves a reported orphan rather than a dangling
// reference. Only one submit may be in flight per workflow.
func (w *Workflow) Submit(ctx context.Context) (Record, error) {
	w.mu.Lock()
	if w.inFlight {
		w.mu.Unlock()
		return Record{}, ErrSubmitInFlight
	}
	if len(w.photo) == 0 {
		w.mu.Unlock()
		return Record{}, errdef.ErrCaptureFailed
	}
	p := w.principal
	if p == nil || p.ID == "" {
		// No upload for unauthenticated attempts; nothing to orphan.
		w.mu.Unlock()
		return Record{}, errdef.ErrNotAuthenticated
	}
	photo := w.photo
	w.inFlight = true
	w.state = StateSubmitting
	w.mu.Unlock()

	rec, err := w.submit(ctx, p, photo)

	w.mu.Lock()
	defer w.mu.Unlock()
	w.inFlight = false
	switch {
	case err == nil:
		w.state = StateSucceeded
		w.photo = nil
		w.checkedIn = true
	case errors.Is(err, errdef.ErrDuplicateCheckin):
		// A concurrent check-in already holds the day; retrying with this
		// photo can never succeed, so drop it.
		w.state = StateIdle
		w.photo = nil
		w.checkedIn = true
	default:
		// Failed returns to PhotoCaptured: same photo, user may retry.
		w.state = StateFailed
	}
	return rec, err
}

func (w *Workflow) submit(ctx context.Context, p *session.Principal, photo []byte) (Record, error) {
	now := w.now()
	day := localtime.Day(now)

	// Do not trust the cached screen status; a check-in may have completed
	// elsewhere since the screen loaded.
	has, err := w.ledger.HasForDay(ctx, p.ID, day)
	if err != nil {
		log.Printf("pre-submit status check failed: %v", err)
		return Record{}, errdef.ErrBackendUnavailable
	}
	if has {
		metrics.DuplicateCheckins.Inc()
		return Record{}, errdef.ErrDuplicateCheckin
	}

	key := photoKey(displayName(p), now)
	if err := w.blobs.Upload(ctx, key, photo); err != nil {
		log.Printf("photo upload failed: %v", err)
		return Record{}, fmt.Errorf("%w: %v", errdef.ErrUploadFailed, err)
	}

	rec, err := w.ledger.Insert(ctx, Record{
		ParticipantID: p.ID,
		Name:          displayName(p),
		Day:           day,
		TimeOfDay:     localtime.TimeOfDay(now),
		PhotoURL:      w.blobs.PublicURL(key),
	})
	if err != nil {
		w.reportOrphan(ctx, key)
		if errors.Is(err, errdef.ErrDuplicateCheckin) {
			metrics.DuplicateCheckins.Inc()
			return Record{}, err
		}
		metrics.InconsistentWrites.Inc()
		iw := &errdef.InconsistentWriteError{BlobKey: key, Insert: err}
		log.Printf("inconsistent write: %v", iw)
		return Record{}, iw
	}

	metrics.Checkins.Inc()
	return rec, nil
}

func (w *Workflow) reportOrphan(ctx context.Context, key string) {
	if w.orphans != nil {
		w.orphans.ReportOrphan(ctx, key)
	}
}

// photoKey derives a collision-free blob name from the participant's display
// name and a millisecond timestamp.
func photoKey(name string, now time.Time) string {
	clean := strings.Map(func(r rune) rune {
		switch r {
		case ' ', '/', '\\':
			return '-'
		}
		return r
	}, name)
	return fmt.Sprintf("%s-%d.jpg", clean, now.UnixMilli())
}

func displayName(p *session.Principal) string {
	if p.Name != "" {
		return p.Name
	}
	if at := strings.Index(p.Email, "@"); at > 0 {
		return p.Email[:at]
	}
	return "peserta"
}
