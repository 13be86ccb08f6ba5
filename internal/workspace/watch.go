package workspace

import (
	"context"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/sheinsight/transform-import-declaration-plugin/pkg/rewrite"
)

// LoadFunc builds a rewriter from the current rules file.
type LoadFunc func() (*rewrite.Rewriter, error)

// ReportFunc receives the results of every pass.
type ReportFunc func(results []FileResult, elapsed time.Duration)

// WatchOptions configures a Watcher.
type WatchOptions struct {
	Runner    Options
	Debounce  time.Duration
	RulesFile string // reloaded on change (optional)
}

// Watcher rewrites files as they change on disk.
type Watcher struct {
	selector Selector
	load     LoadFunc
	opts     WatchOptions
	logger   *slog.Logger
	rules    string
}

// NewWatcher creates a watcher.
func NewWatcher(selector Selector, load LoadFunc, opts WatchOptions) *Watcher {
	logger := opts.Runner.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	if opts.Debounce <= 0 {
		opts.Debounce = 200 * time.Millisecond
	}
	w := &Watcher{selector: selector, load: load, opts: opts, logger: logger}
	if opts.RulesFile != "" {
		if abs, err := filepath.Abs(opts.RulesFile); err == nil {
			w.rules = abs
		}
	}
	return w
}

// Run rewrites every selected file under dirs once, then keeps rewriting
// changed files until ctx is cancelled. A change to the rules file reloads
// the rules and rewrites everything again.
func (w *Watcher) Run(ctx context.Context, dirs []string, report ReportFunc) error {
	rw, err := w.load()
	if err != nil {
		return err
	}
	runner := NewRunner(rw, w.opts.Runner)

	if err := w.full(ctx, runner, dirs, report); err != nil {
		return err
	}

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer func() { _ = fw.Close() }()

	if len(dirs) == 0 {
		dirs = []string{w.selector.root()}
	}
	for _, dir := range dirs {
		abs, err := filepath.Abs(dir)
		if err != nil {
			return err
		}
		if err := w.watchDir(fw, abs); err != nil {
			return fmt.Errorf("failed to watch %s: %w", dir, err)
		}
	}
	if w.rules != "" {
		if err := fw.Add(filepath.Dir(w.rules)); err != nil {
			w.logger.Warn("cannot watch rules file", "path", w.rules, "error", err)
		}
	}

	var (
		timer       *time.Timer
		fire        <-chan time.Time
		pending     = make(map[string]struct{})
		reloadRules bool
	)
	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-fw.Events:
			if !ok {
				return nil
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}
			switch {
			case event.Has(fsnotify.Create) && isDir(event.Name):
				// Files written before the watch was added produce no events
				if err := w.watchDir(fw, event.Name); err != nil {
					w.logger.Warn("cannot watch new directory", "path", event.Name, "error", err)
				}
				files, err := w.selector.Expand([]string{event.Name})
				if err != nil || len(files) == 0 {
					continue
				}
				for _, f := range files {
					pending[f] = struct{}{}
				}
			case w.rules != "" && filepath.Clean(event.Name) == w.rules:
				reloadRules = true
			case w.selector.Match(event.Name):
				pending[filepath.Clean(event.Name)] = struct{}{}
			default:
				continue
			}

			// Debounce bursts of events from editors and formatters
			if timer == nil {
				timer = time.NewTimer(w.opts.Debounce)
			} else {
				timer.Reset(w.opts.Debounce)
			}
			fire = timer.C

		case <-fire:
			fire = nil
			if reloadRules {
				reloadRules = false
				clear(pending)
				next, err := w.load()
				if err != nil {
					w.logger.Error("rules reload failed, keeping previous rules", "error", err)
					continue
				}
				w.opts.Runner.Cache.Purge()
				runner = NewRunner(next, w.opts.Runner)
				w.logger.Info("rules reloaded", "path", w.rules)
				if err := w.full(ctx, runner, dirs, report); err != nil {
					return err
				}
				continue
			}

			paths := make([]string, 0, len(pending))
			for p := range pending {
				paths = append(paths, p)
			}
			clear(pending)
			sort.Strings(paths)

			start := time.Now()
			results, _ := runner.Run(ctx, paths)
			if ctx.Err() != nil {
				return nil
			}
			report(results, time.Since(start))

		case err, ok := <-fw.Errors:
			if !ok {
				return nil
			}
			w.logger.Warn("watcher error", "error", err)
		}
	}
}

func (w *Watcher) full(ctx context.Context, runner *Runner, dirs []string, report ReportFunc) error {
	files, err := w.selector.Expand(dirs)
	if err != nil {
		return err
	}
	start := time.Now()
	results, err := runner.Run(ctx, files)
	if err != nil {
		return err
	}
	report(results, time.Since(start))
	return nil
}

func isDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}

// watchDir adds dir and its subdirectories, skipping dependency folders and
// hidden directories.
func (w *Watcher) watchDir(fw *fsnotify.Watcher, dir string) error {
	return filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		name := d.Name()
		if path != dir && (name == "node_modules" || strings.HasPrefix(name, ".")) {
			return filepath.SkipDir
		}
		return fw.Add(path)
	})
}
