package convert

import (
	"fmt"
	"time"

	"git.home.luguber.info/inful/hugorg/internal/foundation/errors"
)

// Status is the outcome of converting one document.
type Status string

const (
	StatusConverted Status = "converted"
	StatusSkipped   Status = "skipped"   // Output exists and clobbering is disabled
	StatusUnchanged Status = "unchanged" // Fingerprint matches the last conversion
	StatusFailed    Status = "failed"
)

// Result describes one document of a run.
type Result struct {
	Source   string // Slash-separated path relative to the source directory
	Output   string
	Status   Status
	Err      error
	Duration time.Duration
}

// Summary collects the results of one run.
type Summary struct {
	RunID    string
	Results  []Result
	Duration time.Duration
}

// Count returns the number of results with status.
func (s *Summary) Count(status Status) int {
	n := 0
	for _, r := range s.Results {
		if r.Status == status {
			n++
		}
	}
	return n
}

// Failures returns the failed results in source order.
func (s *Summary) Failures() []Result {
	var out []Result
	for _, r := range s.Results {
		if r.Status == StatusFailed {
			out = append(out, r)
		}
	}
	return out
}

// Err returns a docs error when any document failed, otherwise nil.
func (s *Summary) Err() error {
	failures := s.Failures()
	if len(failures) == 0 {
		return nil
	}
	return errors.WrapError(failures[0].Err, errors.CategoryDocs,
		fmt.Sprintf("%d of %d documents failed", len(failures), len(s.Results))).
		WithContext("path", failures[0].Source).
		WithContext("run_id", s.RunID).
		Build()
}
