// Package metrics provides observability hooks for conversion runs.
//
// Components receive a Recorder through dependency injection and default to
// NoopRecorder, so metrics never require nil checks at call sites:
//
//	runner := convert.NewRunner(cfg, convert.WithRecorder(metrics.NoopRecorder{}))
//
// To enable metrics, swap in a PrometheusRecorder and expose its registry
// with HTTPHandler:
//
//	reg := prometheus.NewRegistry()
//	rec := metrics.NewPrometheusRecorder(reg)
//	mux.Handle("/metrics", metrics.HTTPHandler(reg))
package metrics
