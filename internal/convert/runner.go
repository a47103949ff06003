package convert

import (
	"context"
	"log/slog"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"git.home.luguber.info/inful/hugorg/internal/config"
	"git.home.luguber.info/inful/hugorg/internal/docmodel"
	"git.home.luguber.info/inful/hugorg/internal/foundation/errors"
	"git.home.luguber.info/inful/hugorg/internal/logfields"
	"git.home.luguber.info/inful/hugorg/internal/markdown"
	"git.home.luguber.info/inful/hugorg/internal/metrics"
	"git.home.luguber.info/inful/hugorg/internal/retry"
	"git.home.luguber.info/inful/hugorg/internal/state"
)

// Runner converts a source tree into Org files.
type Runner struct {
	cfg      config.Config
	store    state.Store
	recorder metrics.Recorder
	logger   *slog.Logger
	retry    retry.Policy
	now      func() time.Time
}

// Option configures a Runner.
type Option func(*Runner)

// WithStore enables incremental conversion against store.
func WithStore(store state.Store) Option {
	return func(r *Runner) { r.store = store }
}

// WithRecorder sets the metrics recorder.
func WithRecorder(rec metrics.Recorder) Option {
	return func(r *Runner) {
		if rec != nil {
			r.recorder = rec
		}
	}
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Runner) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// NewRunner returns a Runner for cfg. cfg is expected to be validated.
func NewRunner(cfg config.Config, opts ...Option) *Runner {
	r := &Runner{
		cfg:      cfg,
		recorder: metrics.NoopRecorder{},
		logger:   slog.Default(),
		retry:    retry.NewPolicy(retry.Mode(cfg.Retry.Mode), cfg.Retry.InitialDelay, cfg.Retry.MaxDelay, cfg.Retry.MaxRetries),
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.cfg.Workers <= 0 {
		r.cfg.Workers = 1
	}
	return r
}

// RenderOptions returns the render settings derived from the configuration.
func (r *Runner) RenderOptions() RenderOptions {
	return RenderOptions{
		Markdown:  markdown.Options{DisableGFM: r.cfg.Markdown.DisableGFM},
		ExtraKeys: r.cfg.Preamble.ExtraKeys,
	}
}

// Run converts every discovered document.
//
// The returned error reports discovery failures and cancellation only.
// Per-document failures are in the Summary; see Summary.Err.
func (r *Runner) Run(ctx context.Context) (*Summary, error) {
	sources, err := r.Discover(ctx)
	if err != nil {
		return nil, err
	}
	return r.ConvertPaths(ctx, sources)
}

// ConvertPaths converts the given slash-separated source-relative paths as one run.
func (r *Runner) ConvertPaths(ctx context.Context, sources []string) (*Summary, error) {
	start := r.now()
	runID := state.NewRunID()
	log := r.logger.With(logfields.RunID(runID))
	log.LogAttrs(ctx, slog.LevelInfo, "Starting conversion",
		logfields.Count(len(sources)), logfields.Workers(r.cfg.Workers))
	r.recorder.SetWorkers(r.cfg.Workers)

	results := make([]Result, len(sources))
	scheduled := make([]bool, len(sources))
	g := new(errgroup.Group)
	g.SetLimit(r.cfg.Workers)
	for i, src := range sources {
		if ctx.Err() != nil {
			break
		}
		scheduled[i] = true
		g.Go(func() error {
			results[i] = r.convert(ctx, log, runID, src)
			return nil
		})
	}
	_ = g.Wait()

	summary := &Summary{RunID: runID}
	for i, ok := range scheduled {
		if ok {
			summary.Results = append(summary.Results, results[i])
		}
	}
	summary.Duration = r.now().Sub(start)
	r.recorder.ObserveRunDuration(summary.Duration)

	if err := ctx.Err(); err != nil {
		r.recorder.IncRunOutcome(metrics.OutcomeCanceled)
		log.LogAttrs(ctx, slog.LevelWarn, "Conversion canceled", logfields.Count(len(summary.Results)))
		return summary, errors.WrapError(err, errors.CategoryRuntime, "conversion canceled").
			WithContext("run_id", runID).
			Build()
	}

	outcome := metrics.OutcomeSuccess
	if summary.Count(StatusFailed) > 0 {
		outcome = metrics.OutcomePartial
	}
	r.recorder.IncRunOutcome(outcome)
	log.LogAttrs(ctx, slog.LevelInfo, "Conversion finished",
		slog.Int(string(StatusConverted), summary.Count(StatusConverted)),
		slog.Int(string(StatusUnchanged), summary.Count(StatusUnchanged)),
		slog.Int(string(StatusSkipped), summary.Count(StatusSkipped)),
		slog.Int(string(StatusFailed), summary.Count(StatusFailed)),
		logfields.DurationMS(float64(summary.Duration.Microseconds())/1000))
	return summary, nil
}

// ConvertFile converts one source-relative document outside of a batch.
func (r *Runner) ConvertFile(ctx context.Context, src string) Result {
	runID := state.NewRunID()
	return r.convert(ctx, r.logger.With(logfields.RunID(runID)), runID, src)
}

// Tracked returns the sources that have a state record, in path order. It
// returns nil when no store is configured.
func (r *Runner) Tracked(ctx context.Context) ([]string, error) {
	if r.store == nil {
		return nil, nil
	}
	records, err := r.store.List(ctx)
	if err != nil {
		return nil, errors.WrapError(err, errors.CategoryState, "failed to list state records").
			Retryable().
			Build()
	}
	sources := make([]string, 0, len(records))
	for _, rec := range records {
		sources = append(sources, rec.Source)
	}
	return sources, nil
}

// Forget drops the state record for a source that no longer exists.
func (r *Runner) Forget(ctx context.Context, src string) error {
	if r.store == nil {
		return nil
	}
	if err := r.store.Delete(ctx, src); err != nil {
		return errors.WrapError(err, errors.CategoryState, "failed to delete state record").
			Retryable().
			WithContext("path", src).
			Build()
	}
	return nil
}

func (r *Runner) convert(ctx context.Context, log *slog.Logger, runID, src string) Result {
	start := r.now()
	res := r.convertOne(ctx, runID, src)
	res.Duration = r.now().Sub(start)
	r.recorder.IncDocument(string(res.Status))

	attrs := []slog.Attr{
		logfields.Path(src),
		logfields.Output(res.Output),
		logfields.Status(string(res.Status)),
		logfields.DurationMS(float64(res.Duration.Microseconds()) / 1000),
	}
	if res.Err != nil {
		log.LogAttrs(ctx, slog.LevelWarn, "Document failed", append(attrs, logfields.Error(res.Err))...)
	} else {
		log.LogAttrs(ctx, slog.LevelDebug, "Document processed", attrs...)
	}
	return res
}

func (r *Runner) convertOne(ctx context.Context, runID, src string) Result {
	out := r.OutputPath(src)
	res := Result{Source: src, Output: out}
	fail := func(err error) Result {
		res.Status = StatusFailed
		res.Err = err
		return res
	}

	if !r.cfg.Clobber && fileExists(out) {
		res.Status = StatusSkipped
		return res
	}

	doc, err := docmodel.ParseFile(filepath.Join(r.cfg.Source, filepath.FromSlash(src)))
	if err != nil {
		return fail(err)
	}

	var fingerprint string
	if r.store != nil {
		fingerprint, err = doc.Fingerprint(r.settings()...)
		if err != nil {
			return fail(err)
		}
		if r.cfg.Incremental && r.upToDate(ctx, src, out, fingerprint) {
			res.Status = StatusUnchanged
			return res
		}
	}

	renderStart := r.now()
	text, err := Render(doc, r.RenderOptions())
	r.recorder.ObserveRenderDuration(r.now().Sub(renderStart))
	if err != nil {
		if classified, ok := errors.AsClassified(err); ok {
			return fail(classified.WithContext("path", src))
		}
		return fail(err)
	}

	if err := r.retry.Do(ctx, func() error { return writeFileAtomic(out, []byte(text)) }); err != nil {
		return fail(errors.WrapError(err, errors.CategoryFileSystem, "failed to write output").
			Retryable().
			WithContext("path", src).
			WithContext("output", out).
			Build())
	}

	if r.store != nil {
		rec := state.Record{Source: src, Fingerprint: fingerprint, Output: out, RunID: runID, ConvertedAt: r.now()}
		if err := r.retry.Do(ctx, func() error { return r.store.Put(ctx, rec) }); err != nil {
			return fail(errors.WrapError(err, errors.CategoryState, "failed to record conversion").
				Retryable().
				WithContext("path", src).
				Build())
		}
	}

	res.Status = StatusConverted
	return res
}

// upToDate reports whether the stored record matches the current inputs and
// the output it names still exists.
func (r *Runner) upToDate(ctx context.Context, src, out, fingerprint string) bool {
	rec, ok, err := r.store.Get(ctx, src)
	if err != nil {
		r.logger.LogAttrs(ctx, slog.LevelWarn, "State lookup failed", logfields.Path(src), logfields.Error(err))
		return false
	}
	return ok && rec.Fingerprint == fingerprint && rec.Output == out && fileExists(out)
}

// settings lists the configuration that affects output bytes.
func (r *Runner) settings() []string {
	return []string{
		"suffix=" + r.cfg.Output.Suffix,
		"replace_extension=" + strconv.FormatBool(r.cfg.Output.ReplaceExtension),
		"disable_gfm=" + strconv.FormatBool(r.cfg.Markdown.DisableGFM),
		"extra_keys=" + strings.Join(r.cfg.Preamble.ExtraKeys, ","),
	}
}
