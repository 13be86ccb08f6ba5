package workspace

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"runtime"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/sheinsight/transform-import-declaration-plugin/internal/cache"
	"github.com/sheinsight/transform-import-declaration-plugin/pkg/rewrite"
	"github.com/sheinsight/transform-import-declaration-plugin/pkg/source"
)

// Options configures a Runner.
type Options struct {
	// Jobs bounds the number of files processed at once (default: NumCPU)
	Jobs int
	// Verify runs esbuild on every changed output before it is written
	Verify bool
	// DryRun computes results without writing files
	DryRun bool
	// Cache memoizes results across runs (optional)
	Cache *cache.Cache
	// Logger is the structured logger (optional, uses discard if nil)
	Logger *slog.Logger
}

// FileResult is the outcome for one file. Err is set when the file could not
// be read, parsed, verified or written; other files are unaffected.
type FileResult struct {
	Path    string
	Changed bool
	Cached  bool
	Output  string
	Err     error
}

// Summary aggregates a run.
type Summary struct {
	Files    int
	Changed  int
	Failed   int
	Cached   int
	Duration time.Duration
}

// Runner rewrites files with a shared rewriter.
type Runner struct {
	rw     *rewrite.Rewriter
	opts   Options
	logger *slog.Logger
}

// NewRunner creates a runner.
func NewRunner(rw *rewrite.Rewriter, opts Options) *Runner {
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	if opts.Jobs <= 0 {
		opts.Jobs = runtime.NumCPU()
	}
	return &Runner{rw: rw, opts: opts, logger: logger}
}

// Run processes paths concurrently. Results are in the order of paths. The
// returned error is only set when ctx is cancelled; per-file failures are
// reported in the results.
func (r *Runner) Run(ctx context.Context, paths []string) ([]FileResult, error) {
	results := make([]FileResult, len(paths))

	eg, egctx := errgroup.WithContext(ctx)
	eg.SetLimit(r.opts.Jobs)
	for i, path := range paths {
		eg.Go(func() error {
			if err := egctx.Err(); err != nil {
				return err
			}
			results[i] = r.File(egctx, path)
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return results, err
	}
	return results, nil
}

// File rewrites a single file.
func (r *Runner) File(ctx context.Context, path string) FileResult {
	res := FileResult{Path: path}

	lang, err := source.LangForPath(path)
	if err != nil {
		res.Err = err
		return res
	}
	info, err := os.Stat(path)
	if err != nil {
		res.Err = fmt.Errorf("failed to stat file: %w", err)
		return res
	}
	content, err := os.ReadFile(path) //nolint:gosec // paths come from the user's selection
	if err != nil {
		res.Err = fmt.Errorf("failed to read file: %w", err)
		return res
	}

	key := r.opts.Cache.Key(lang, content)
	out, hit := r.opts.Cache.Get(key)
	if !hit {
		rewritten, err := source.Rewrite(ctx, r.rw, content, lang)
		if err != nil {
			res.Err = fmt.Errorf("%s: %w", path, err)
			return res
		}
		out = *rewritten
		if r.opts.Verify && out.Changed {
			if err := source.Verify(path, out.Output, lang); err != nil {
				res.Err = err
				return res
			}
		}
		r.opts.Cache.Add(key, out)
	}

	res.Changed = out.Changed
	res.Cached = hit
	res.Output = out.Output

	if !res.Changed {
		r.logger.Debug("unchanged", "path", path, "cached", hit)
		return res
	}
	if r.opts.DryRun {
		r.logger.Debug("would rewrite", "path", path, "cached", hit)
		return res
	}
	if err := os.WriteFile(path, []byte(out.Output), info.Mode().Perm()); err != nil {
		res.Err = fmt.Errorf("failed to write file: %w", err)
		return res
	}
	r.logger.Info("rewrote", "path", path, "cached", hit)
	return res
}

// Summarize counts results.
func Summarize(results []FileResult, elapsed time.Duration) Summary {
	s := Summary{Files: len(results), Duration: elapsed}
	for _, res := range results {
		switch {
		case res.Err != nil:
			s.Failed++
		case res.Changed:
			s.Changed++
		}
		if res.Cached {
			s.Cached++
		}
	}
	return s
}
