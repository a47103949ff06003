// Package watch re-converts Markdown sources as they change on disk.
package watch

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"maps"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/go-co-op/gocron/v2"

	"git.home.luguber.info/inful/hugorg/internal/convert"
	"git.home.luguber.info/inful/hugorg/internal/logfields"
)

// Converter is the part of convert.Runner the watcher drives.
type Converter interface {
	Run(ctx context.Context) (*convert.Summary, error)
	ConvertPaths(ctx context.Context, sources []string) (*convert.Summary, error)
	Forget(ctx context.Context, source string) error
	Tracked(ctx context.Context) ([]string, error)
	Relative(path string) (string, error)
}

// Options configures a Watcher.
type Options struct {
	Debounce       time.Duration
	ResyncInterval time.Duration // Zero disables the periodic full conversion
	Logger         *slog.Logger
	// OnSummary is called after every conversion the watcher triggers.
	OnSummary func(*convert.Summary)
}

// Watcher monitors a source tree and converts changed documents after a
// quiet period. Conversions never overlap.
type Watcher struct {
	root      string
	conv      Converter
	opts      Options
	logger    *slog.Logger
	watcher   *fsnotify.Watcher
	scheduler gocron.Scheduler

	runMu   sync.Mutex
	mu      sync.Mutex
	pending map[string]bool // source path -> still exists
	gone    map[string]bool // removed paths that may be directories
}

// New creates a watcher for the source directory root.
func New(root string, conv Converter, opts Options) (*Watcher, error) {
	absRoot, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve source path: %w", err)
	}
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create file watcher: %w", err)
	}
	s, err := gocron.NewScheduler()
	if err != nil {
		_ = fw.Close()
		return nil, fmt.Errorf("failed to create gocron scheduler: %w", err)
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Watcher{
		root:      absRoot,
		conv:      conv,
		opts:      opts,
		logger:    logger,
		watcher:   fw,
		scheduler: s,
		pending:   make(map[string]bool),
		gone:      make(map[string]bool),
	}, nil
}

// Run watches until ctx is canceled. It releases all resources on return.
func (w *Watcher) Run(ctx context.Context) error {
	defer w.close()

	if err := w.addTree(w.root); err != nil {
		return err
	}
	if w.opts.ResyncInterval > 0 {
		if _, err := w.scheduler.NewJob(
			gocron.DurationJob(w.opts.ResyncInterval),
			gocron.NewTask(w.Resync, ctx),
			gocron.WithName("resync"),
			gocron.WithSingletonMode(gocron.LimitModeReschedule),
		); err != nil {
			return fmt.Errorf("failed to create resync job: %w", err)
		}
		w.scheduler.Start()
	}
	w.logger.Info("Watching source tree", logfields.Path(w.root))

	var timer *time.Timer
	var fire <-chan time.Time
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-w.watcher.Events:
			if !ok {
				return nil
			}
			if !w.handle(event) {
				continue
			}
			if timer == nil {
				timer = time.NewTimer(w.opts.Debounce)
			} else {
				timer.Reset(w.opts.Debounce)
			}
			fire = timer.C
		case <-fire:
			fire = nil
			w.flush(ctx)
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return nil
			}
			w.logger.Error("File watcher error", logfields.Error(err))
		}
	}
}

// Resync converts the whole tree.
func (w *Watcher) Resync(ctx context.Context) {
	w.runMu.Lock()
	defer w.runMu.Unlock()

	w.logger.Info("Running full resync")
	summary, err := w.conv.Run(ctx)
	w.report(summary, err)
}

// handle records the event and reports whether it queued any work.
func (w *Watcher) handle(event fsnotify.Event) bool {
	if event.Has(fsnotify.Create) {
		if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
			if err := w.addTree(event.Name); err != nil {
				w.logger.Warn("Failed to watch new directory", logfields.Path(event.Name), logfields.Error(err))
			}
			return w.queueTree(event.Name)
		}
	}
	if !convert.IsSource(event.Name) {
		if event.Has(fsnotify.Remove) || event.Has(fsnotify.Rename) {
			return w.queueGone(event.Name)
		}
		return false
	}
	switch {
	case event.Has(fsnotify.Remove), event.Has(fsnotify.Rename):
		return w.queue(event.Name, false)
	case event.Has(fsnotify.Create), event.Has(fsnotify.Write):
		return w.queue(event.Name, true)
	}
	return false
}

func (w *Watcher) queue(path string, exists bool) bool {
	rel, err := w.conv.Relative(path)
	if err != nil {
		w.logger.Debug("Ignoring event outside source tree", logfields.Path(path))
		return false
	}
	w.mu.Lock()
	w.pending[rel] = exists
	w.mu.Unlock()
	return true
}

// queueGone records a removed path that is not itself a source. A removed
// or renamed directory produces a single event, so its tracked sources are
// resolved when the batch is flushed.
func (w *Watcher) queueGone(path string) bool {
	rel, err := w.conv.Relative(path)
	if err != nil || rel == "." {
		return false
	}
	w.mu.Lock()
	w.gone[rel] = true
	w.mu.Unlock()
	return true
}

// queueTree queues every source file below a newly created directory, since
// files written before its watch was added produce no events.
func (w *Watcher) queueTree(dir string) bool {
	queued := false
	_ = filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err == nil && !d.IsDir() && convert.IsSource(d.Name()) {
			queued = w.queue(path, true) || queued
		}
		return nil
	})
	return queued
}

func (w *Watcher) flush(ctx context.Context) {
	w.mu.Lock()
	batch, gone := w.pending, w.gone
	w.pending = make(map[string]bool)
	w.gone = make(map[string]bool)
	w.mu.Unlock()
	if len(batch) == 0 && len(gone) == 0 {
		return
	}

	w.runMu.Lock()
	defer w.runMu.Unlock()

	w.expandGone(ctx, batch, gone)

	var changed []string
	for _, src := range slices.Sorted(maps.Keys(batch)) {
		if batch[src] {
			changed = append(changed, src)
			continue
		}
		if err := w.conv.Forget(ctx, src); err != nil {
			w.logger.Warn("Failed to forget removed document", logfields.Path(src), logfields.Error(err))
		} else {
			w.logger.Info("Source removed", logfields.Path(src))
		}
	}
	if len(changed) == 0 {
		return
	}
	summary, err := w.conv.ConvertPaths(ctx, changed)
	w.report(summary, err)
}

// expandGone adds every tracked source below a removed directory to batch
// as removed. Paths that exist again by flush time are left alone.
func (w *Watcher) expandGone(ctx context.Context, batch, gone map[string]bool) {
	if len(gone) == 0 {
		return
	}
	var dirs []string
	for rel := range gone {
		if _, err := os.Stat(filepath.Join(w.root, filepath.FromSlash(rel))); errors.Is(err, fs.ErrNotExist) {
			dirs = append(dirs, rel+"/")
		}
	}
	if len(dirs) == 0 {
		return
	}
	tracked, err := w.conv.Tracked(ctx)
	if err != nil {
		w.logger.Warn("Failed to list tracked documents", logfields.Error(err))
		return
	}
	for _, src := range tracked {
		if _, queued := batch[src]; queued {
			continue
		}
		for _, dir := range dirs {
			if strings.HasPrefix(src, dir) {
				batch[src] = false
				break
			}
		}
	}
}

func (w *Watcher) report(summary *convert.Summary, err error) {
	if err != nil && !errors.Is(err, context.Canceled) {
		w.logger.Error("Conversion failed", logfields.Error(err))
	}
	if summary != nil && w.opts.OnSummary != nil {
		w.opts.OnSummary(summary)
	}
}

// addTree watches dir and all directories below it.
func (w *Watcher) addTree(dir string) error {
	return filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if err := w.watcher.Add(path); err != nil {
			return fmt.Errorf("failed to watch directory %s: %w", path, err)
		}
		return nil
	})
}

func (w *Watcher) close() {
	if err := w.scheduler.Shutdown(); err != nil {
		w.logger.Debug("Scheduler shutdown", logfields.Error(err))
	}
	if err := w.watcher.Close(); err != nil {
		w.logger.Error("Error closing file watcher", logfields.Error(err))
	}
}
