package state

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Record is the last successful conversion of one source document.
type Record struct {
	Source      string
	Fingerprint string
	Output      string
	RunID       string
	ConvertedAt time.Time
}

// Store persists conversion records keyed by source path.
type Store interface {
	// Get returns the record for source. ok is false when none exists.
	Get(ctx context.Context, source string) (rec Record, ok bool, err error)
	// Put inserts or replaces the record for rec.Source.
	Put(ctx context.Context, rec Record) error
	// Delete removes the record for source. Deleting a missing record is not an error.
	Delete(ctx context.Context, source string) error
	// List returns all records ordered by source path.
	List(ctx context.Context) ([]Record, error)
	Close() error
}

// NewRunID returns a fresh identifier for one conversion run.
func NewRunID() string {
	return uuid.NewString()
}
