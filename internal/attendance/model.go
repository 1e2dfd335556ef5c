package attendance

import (
	"context"
	"time"
)

// Record is one accepted check-in. Day and TimeOfDay are Indonesian-locale
// display strings; Day is also the daily-uniqueness key, so for a given
// ParticipantID at most one record exists per distinct Day value. Records are
// never mutated after insert.
type Record struct {
	ID            string    `json:"id"`
	ParticipantID string    `json:"user_id"`
	Name          string    `json:"nama"`
	Day           string    `json:"tanggal"`
	TimeOfDay     string    `json:"waktu"`
	PhotoURL      string    `json:"foto_url"`
	CreatedAt     time.Time `json:"created_at"`
}

// Ledger is the append-mostly attendance record collection. Insert returns
// errdef.ErrDuplicateCheckin when the (participant, day) pair already exists;
// that constraint lives in the backing store and is the authoritative
// enforcement of daily uniqueness.
type Ledger interface {
	Insert(ctx context.Context, rec Record) (Record, error)
	HasForDay(ctx context.Context, participantID, day string) (bool, error)
	Get(ctx context.Context, id string) (*Record, error)
	ListByParticipant(ctx context.Context, participantID string) ([]Record, error)
	ListAll(ctx context.Context) ([]Record, error)
	Delete(ctx context.Context, id string) error
}
