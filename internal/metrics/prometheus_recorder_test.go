package metrics

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	prom "github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"
)

func TestPrometheusRecorder(t *testing.T) {
	reg := prom.NewRegistry()
	pr := NewPrometheusRecorder(reg)

	pr.IncDocument("converted")
	pr.IncDocument("converted")
	pr.IncDocument("failed")
	pr.ObserveRenderDuration(2 * time.Millisecond)
	pr.ObserveRunDuration(500 * time.Millisecond)
	pr.IncRunOutcome(OutcomePartial)
	pr.SetWorkers(4)

	require.InDelta(t, 2, testutil.ToFloat64(pr.documents.WithLabelValues("converted")), 0)
	require.InDelta(t, 1, testutil.ToFloat64(pr.documents.WithLabelValues("failed")), 0)
	require.InDelta(t, 1, testutil.ToFloat64(pr.runOutcomes.WithLabelValues("partial")), 0)
	require.InDelta(t, 4, testutil.ToFloat64(pr.workers), 0)

	mfs, err := reg.Gather()
	require.NoError(t, err)
	require.Len(t, mfs, 5)
}

func TestPrometheusRecorder_NilReceiver(t *testing.T) {
	var pr *PrometheusRecorder
	require.NotPanics(t, func() {
		pr.IncDocument("converted")
		pr.ObserveRenderDuration(time.Millisecond)
		pr.ObserveRunDuration(time.Millisecond)
		pr.IncRunOutcome(OutcomeSuccess)
		pr.SetWorkers(1)
	})
}

func TestHTTPHandler_ServesRegistry(t *testing.T) {
	reg := prom.NewRegistry()
	NewPrometheusRecorder(reg).IncDocument("unchanged")

	srv := httptest.NewServer(HTTPHandler(reg))
	defer srv.Close()

	resp, err := http.Get(srv.URL)
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Contains(t, string(body), `hugorg_documents_total{status="unchanged"} 1`)
}
