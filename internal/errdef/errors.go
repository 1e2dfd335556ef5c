package errdef

import (
	"errors"
	"fmt"
)

// Sentinel errors shared across the auth and check-in flows. Handlers match on
// these and translate to short user-facing messages; raw backend errors never
// leave the service boundary.
var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUnknownEmail       = errors.New("email not registered")
	ErrBackendUnavailable = errors.New("backend unavailable")
	ErrDeviceNotReady     = errors.New("capture device not ready")
	ErrCaptureFailed      = errors.New("photo capture failed")
	ErrNotAuthenticated   = errors.New("not authenticated")
	ErrUploadFailed       = errors.New("photo upload failed")
	ErrDuplicateCheckin   = errors.New("already checked in today")
	ErrDeleteFailed       = errors.New("delete incomplete")
)

// InconsistentWriteError reports a half-completed check-in: the photo blob was
// stored but the ledger insert failed. The blob key is kept so housekeeping can
// find and remove the orphan.
type InconsistentWriteError struct {
	BlobKey string
	Insert  error
}

func (e *InconsistentWriteError) Error() string {
	return fmt.Sprintf("record insert failed after photo upload (blob %s): %v", e.BlobKey, e.Insert)
}

func (e *InconsistentWriteError) Unwrap() error { return e.Insert }

// UserMessage maps an error onto the short status string shown to the user.
// Anything outside the known taxonomy collapses to a generic failure.
func UserMessage(err error) string {
	var iw *InconsistentWriteError
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrInvalidCredentials):
		return "Password salah"
	case errors.Is(err, ErrUnknownEmail):
		return "Email tidak terdaftar"
	case errors.Is(err, ErrDeviceNotReady):
		return "Kamera belum siap, tunggu sebentar"
	case errors.Is(err, ErrCaptureFailed):
		return "Gagal mengambil foto, coba lagi"
	case errors.Is(err, ErrNotAuthenticated):
		return "Anda belum login"
	case errors.Is(err, ErrDuplicateCheckin):
		return "Anda sudah absen hari ini"
	case errors.Is(err, ErrUploadFailed):
		return "Gagal mengunggah foto"
	case errors.Is(err, ErrDeleteFailed):
		return "Data terhapus, foto gagal dihapus"
	case errors.As(err, &iw):
		return "Terjadi kesalahan saat menyimpan absen"
	case errors.Is(err, ErrBackendUnavailable):
		return "Terjadi kesalahan, silakan coba lagi"
	default:
		return "Terjadi kesalahan, silakan coba lagi"
	}
}
