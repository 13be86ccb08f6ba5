package commands

import (
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/sheinsight/transform-import-declaration-plugin/internal/workspace"
	"github.com/sheinsight/transform-import-declaration-plugin/pkg/rewrite"
)

// NewWatchCommand creates the watch command.
func NewWatchCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "watch [dirs...]",
		Short: "Rewrite files as they change",
		Long: `Rewrite every selected file once, then watch the given directories
(default: the project root) and rewrite files when they are created or saved.

Editing the rules file reloads the rules and rewrites everything again.
Press Ctrl+C to stop.`,
		Example: `  # Watch the project
  import-rewrite watch

  # Watch two packages with a longer debounce
  import-rewrite watch packages/app packages/admin --debounce 500ms`,
		RunE: runWatch,
	}

	addRunFlags(cmd)
	cmd.Flags().Duration("debounce", 0, "Quiet period before rewriting changed files (default 200ms)")

	return cmd
}

func runWatch(cmd *cobra.Command, args []string) error {
	cmdCtx := NewCommandContext(cmd)
	r := cmdCtx.Renderer
	cfg := cmdCtx.Cfg

	// The first load fixes the cache fingerprint; reloads purge the cache.
	_, payload, err := cmdCtx.NewRewriter()
	if err != nil {
		return err
	}
	c, err := cmdCtx.NewCache(payload)
	if err != nil {
		return err
	}

	runOpts := cmdCtx.RunnerOptions()
	runOpts.Cache = c

	load := func() (*rewrite.Rewriter, error) {
		rw, _, err := cmdCtx.NewRewriter()
		return rw, err
	}
	w := workspace.NewWatcher(cfg.Selector(), load, workspace.WatchOptions{
		Runner:    runOpts,
		Debounce:  cfg.Debounce,
		RulesFile: cfg.Rules,
	})

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	r.Notef("watching for changes (rules: %s)", cfg.Rules)
	return w.Run(ctx, args, func(results []workspace.FileResult, elapsed time.Duration) {
		rep := buildReport(results, elapsed, false, false)
		if err := renderReport(r, rep); err != nil {
			cmdCtx.Logger.Error("failed to render report", "error", err)
		}
	})
}
