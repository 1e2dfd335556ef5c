package errdef

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUserMessageTaxonomy(t *testing.T) {
	cases := []struct {
		err  error
		want string
	}{
		{nil, ""},
		{ErrInvalidCredentials, "Password salah"},
		{ErrUnknownEmail, "Email tidak terdaftar"},
		{ErrDuplicateCheckin, "Anda sudah absen hari ini"},
		{ErrDeviceNotReady, "Kamera belum siap, tunggu sebentar"},
		{ErrNotAuthenticated, "Anda belum login"},
		{ErrBackendUnavailable, "Terjadi kesalahan, silakan coba lagi"},
		// Wrapped sentinels resolve the same way.
		{fmt.Errorf("%w: pq: duplicate key", ErrDuplicateCheckin), "Anda sudah absen hari ini"},
		// Unknown errors collapse to the generic message; internals never leak.
		{errors.New("pq: connection refused"), "Terjadi kesalahan, silakan coba lagi"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, UserMessage(tc.err))
	}
}

func TestInconsistentWriteError(t *testing.T) {
	insert := errors.New("connection reset")
	err := &InconsistentWriteError{BlobKey: "Budi-123.jpg", Insert: insert}

	assert.Contains(t, err.Error(), "Budi-123.jpg")
	assert.ErrorIs(t, err, insert)
	assert.Equal(t, "Terjadi kesalahan saat menyimpan absen", UserMessage(err))

	var iw *InconsistentWriteError
	assert.ErrorAs(t, fmt.Errorf("submit: %w", err), &iw)
	assert.Equal(t, "Budi-123.jpg", iw.BlobKey)
}
