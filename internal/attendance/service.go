package attendance

import (
	"context"
	"fmt"
	"log"
	"strings"
	"sync"

	"presensi/internal/errdef"
	"presensi/internal/storage"
)

// Service covers the listing and administrative paths over the ledger.
type Service struct {
	ledger  Ledger
	blobs   storage.ObjectStore
	orphans OrphanReporter

	mu    sync.Mutex
	cache []Record
}

// NewService creates a service.
func NewService(ledger Ledger, blobs storage.ObjectStore, orphans OrphanReporter) *Service {
	return &Service{ledger: ledger, blobs: blobs, orphans: orphans}
}

// ListAll refreshes and returns the full listing, newest first.
func (s *Service) ListAll(ctx context.Context) ([]Record, error) {
	recs, err := s.ledger.ListAll(ctx)
	if err != nil {
		log.Printf("list attendance failed: %v", err)
		return nil, errdef.ErrBackendUnavailable
	}
	s.mu.Lock()
	s.cache = recs
	s.mu.Unlock()
	return recs, nil
}

// ListFor returns one participant's history, newest first.
func (s *Service) ListFor(ctx context.Context, participantID string) ([]Record, error) {
	if participantID == "" {
		return nil, errdef.ErrNotAuthenticated
	}
	recs, err := s.ledger.ListByParticipant(ctx, participantID)
	if err != nil {
		log.Printf("list history failed: %v", err)
		return nil, errdef.ErrBackendUnavailable
	}
	return recs, nil
}

// DeleteResult says which steps of a record deletion completed. The pair is a
// saga, not a transaction: a surviving blob after a removed row is a reported
// housekeeping issue, not a rollback.
type DeleteResult struct {
	RowRemoved  bool
	BlobRemoved bool
}

// Delete removes a record and its photo. The blob goes first so a removed
// record cannot keep referencing a surviving object for long; a blob-removal
// failure is reported but does not block removing the row. The cached listing
// is updated once the row is gone.
func (s *Service) Delete(ctx context.Context, id string) (DeleteResult, error) {
	rec, err := s.ledger.Get(ctx, id)
	if err != nil {
		log.Printf("load record %s failed: %v", id, err)
		return DeleteResult{}, errdef.ErrBackendUnavailable
	}
	if rec == nil {
		return DeleteResult{RowRemoved: true, BlobRemoved: true}, nil
	}

	res := DeleteResult{BlobRemoved: true}
	if key := blobKeyFromURL(rec.PhotoURL); key != "" {
		if err := s.blobs.Delete(ctx, key); err != nil {
			res.BlobRemoved = false
			log.Printf("blob delete failed for record %s (key %s): %v", id, key, err)
			if s.orphans != nil {
				s.orphans.ReportOrphan(ctx, key)
			}
		}
	}

	if err := s.ledger.Delete(ctx, id); err != nil {
		log.Printf("row delete failed for record %s: %v", id, err)
		return res, fmt.Errorf("%w: row removal failed", errdef.ErrDeleteFailed)
	}
	res.RowRemoved = true

	s.mu.Lock()
	kept := s.cache[:0]
	for _, r := range s.cache {
		if r.ID != id {
			kept = append(kept, r)
		}
	}
	s.cache = kept
	s.mu.Unlock()

	if !res.BlobRemoved {
		return res, fmt.Errorf("%w: photo removal failed", errdef.ErrDeleteFailed)
	}
	return res, nil
}

// Cached returns the in-memory listing as of the last ListAll/Delete.
func (s *Service) Cached() []Record {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Record, len(s.cache))
	copy(out, s.cache)
	return out
}

// blobKeyFromURL recovers the object key from a stored photo URL. Keys are
// the last path segment, matching how they were generated on upload.
func blobKeyFromURL(url string) string {
	if url == "" {
		return ""
	}
	if i := strings.LastIndex(url, "/"); i >= 0 {
		return url[i+1:]
	}
	return url
}
