package metrics

import (
	"testing"
	"time"
)

type testRecorder struct {
	documents map[string]int
	renders   int
	runs      int
	outcomes  map[OutcomeLabel]int
	workers   int
}

func newTestRecorder() *testRecorder {
	return &testRecorder{documents: map[string]int{}, outcomes: map[OutcomeLabel]int{}}
}

func (t *testRecorder) IncDocument(status string) { t.documents[status]++ }
func (t *testRecorder) ObserveRenderDuration(time.Duration) { t.renders++ }
func (t *testRecorder) ObserveRunDuration(time.Duration) { t.runs++ }
func (t *testRecorder) IncRunOutcome(outcome OutcomeLabel) { t.outcomes[outcome]++ }
func (t *testRecorder) SetWorkers(n int) { t.workers = n }

func TestRecorderInterface(t *testing.T) {
	for _, r := range []Recorder{NoopRecorder{}, newTestRecorder(), NewPrometheusRecorder(nil)} {
		r.IncDocument("converted")
		r.ObserveRenderDuration(time.Millisecond)
		r.ObserveRunDuration(time.Second)
		r.IncRunOutcome(OutcomeSuccess)
		r.SetWorkers(2)
	}

	tr := newTestRecorder()
	var r Recorder = tr
	r.IncDocument("skipped")
	r.IncRunOutcome(OutcomeCanceled)
	if tr.documents["skipped"] != 1 || tr.outcomes[OutcomeCanceled] != 1 {
		t.Fatalf("unexpected counts: %+v", tr)
	}
}
