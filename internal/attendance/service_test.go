package attendance

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"presensi/internal/errdef"
)

func seededLedger() *fakeLedger {
	return &fakeLedger{records: []Record{
		{ID: "rec-1", ParticipantID: "p1", Name: "Budi", Day: "Senin, 24 Agustus 2026",
			PhotoURL: "https://blobs.example/presensi/Budi-1.jpg", CreatedAt: time.Now()},
		{ID: "rec-2", ParticipantID: "p2", Name: "Siti", Day: "Senin, 24 Agustus 2026",
			PhotoURL: "https://blobs.example/presensi/Siti-1.jpg", CreatedAt: time.Now()},
	}}
}

func TestDeleteRemovesBlobThenRow(t *testing.T) {
	ledger := seededLedger()
	blobs := newFakeBlobs()
	svc := NewService(ledger, blobs, nil)

	_, err := svc.ListAll(context.Background())
	require.NoError(t, err)

	res, err := svc.Delete(context.Background(), "rec-1")
	require.NoError(t, err)
	assert.True(t, res.RowRemoved)
	assert.True(t, res.BlobRemoved)

	assert.Equal(t, []string{"Budi-1.jpg"}, blobs.deleted)
	assert.Len(t, ledger.records, 1)
	cached := svc.Cached()
	require.Len(t, cached, 1)
	assert.Equal(t, "rec-2", cached[0].ID)
}

func TestDeleteBlobFailureStillRemovesRow(t *testing.T) {
	ledger := seededLedger()
	blobs := newFakeBlobs()
	blobs.deleteErr = errors.New("storage 500")
	rep := &recordingReporter{}
	svc := NewService(ledger, blobs, rep)

	_, err := svc.ListAll(context.Background())
	require.NoError(t, err)

	res, err := svc.Delete(context.Background(), "rec-1")
	assert.ErrorIs(t, err, errdef.ErrDeleteFailed)
	assert.True(t, res.RowRemoved)
	assert.False(t, res.BlobRemoved)

	// The ledger row is gone, the cache no longer lists it, and the stray
	// blob was handed to housekeeping.
	assert.Len(t, ledger.records, 1)
	require.Len(t, svc.Cached(), 1)
	assert.Equal(t, "rec-2", svc.Cached()[0].ID)
	assert.Equal(t, []string{"Budi-1.jpg"}, rep.keys)
}

func TestDeleteRowFailure(t *testing.T) {
	ledger := seededLedger()
	ledger.deleteErr = errors.New("deadlock detected")
	svc := NewService(ledger, newFakeBlobs(), nil)

	res, err := svc.Delete(context.Background(), "rec-1")
	assert.ErrorIs(t, err, errdef.ErrDeleteFailed)
	assert.False(t, res.RowRemoved)
	assert.Len(t, ledger.records, 2)
}

func TestDeleteMissingRecordIsNoop(t *testing.T) {
	ledger := seededLedger()
	blobs := newFakeBlobs()
	svc := NewService(ledger, blobs, nil)

	res, err := svc.Delete(context.Background(), "rec-404")
	require.NoError(t, err)
	assert.True(t, res.RowRemoved)
	assert.Empty(t, blobs.deleted)
	assert.Len(t, ledger.records, 2)
}

func TestListFor(t *testing.T) {
	svc := NewService(seededLedger(), newFakeBlobs(), nil)

	recs, err := svc.ListFor(context.Background(), "p1")
	require.NoError(t, err)
	require.Len(t, recs, 1)
	assert.Equal(t, "Budi", recs[0].Name)

	_, err = svc.ListFor(context.Background(), "")
	assert.ErrorIs(t, err, errdef.ErrNotAuthenticated)
}

func TestListAllBackendFault(t *testing.T) {
	ledger := seededLedger()
	ledger.queryErr = errors.New("pq: down")
	svc := NewService(ledger, newFakeBlobs(), nil)

	_, err := svc.ListAll(context.Background())
	assert.ErrorIs(t, err, errdef.ErrBackendUnavailable)
}
