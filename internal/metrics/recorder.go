package metrics

import "time"

// OutcomeLabel enumerates final run outcomes.
type OutcomeLabel string

const (
	OutcomeSuccess  OutcomeLabel = "success"
	OutcomePartial  OutcomeLabel = "partial"
	OutcomeCanceled OutcomeLabel = "canceled"
)

// Recorder defines observability hooks for document and run metrics.
type Recorder interface {
	// IncDocument counts one document by its conversion status.
	IncDocument(status string)
	ObserveRenderDuration(d time.Duration)
	ObserveRunDuration(d time.Duration)
	IncRunOutcome(outcome OutcomeLabel)
	SetWorkers(n int)
}

// NoopRecorder is a Recorder that does nothing (default when metrics not configured).
type NoopRecorder struct{}

func (NoopRecorder) IncDocument(string)                  {}
func (NoopRecorder) ObserveRenderDuration(time.Duration) {}
func (NoopRecorder) ObserveRunDuration(time.Duration)    {}
func (NoopRecorder) IncRunOutcome(OutcomeLabel)          {}
func (NoopRecorder) SetWorkers(int)                      {}
