package commands

import (
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/sheinsight/transform-import-declaration-plugin/internal/cache"
	"github.com/sheinsight/transform-import-declaration-plugin/internal/cli/config"
	"github.com/sheinsight/transform-import-declaration-plugin/internal/cli/output"
	"github.com/sheinsight/transform-import-declaration-plugin/internal/workspace"
	"github.com/sheinsight/transform-import-declaration-plugin/pkg/pluginconfig"
	"github.com/sheinsight/transform-import-declaration-plugin/pkg/rewrite"
)

// CommandContext holds common dependencies for CLI commands.
type CommandContext struct {
	Cfg      *config.Config
	Logger   *slog.Logger
	Renderer *output.Renderer
}

// NewCommandContext creates a CommandContext from the loaded configuration.
func NewCommandContext(cmd *cobra.Command) *CommandContext {
	cfg := getConfig()
	return &CommandContext{
		Cfg:      cfg,
		Logger:   config.GetLogger(cmd.Context()),
		Renderer: output.NewRenderer(cmd.OutOrStdout(), cmd.ErrOrStderr(), output.Mode(cfg.OutputFormat)),
	}
}

// LoadPayload reads the rules file. The keep-unmatched and skip-type-only
// settings switch the corresponding payload options on.
func (c *CommandContext) LoadPayload() (*pluginconfig.Config, error) {
	payload, err := pluginconfig.Load(c.Cfg.Rules)
	if err != nil {
		return nil, err
	}
	payload.KeepUnmatched = payload.KeepUnmatched || c.Cfg.KeepUnmatched
	payload.SkipTypeOnly = payload.SkipTypeOnly || c.Cfg.SkipTypeOnly
	return payload, nil
}

// NewRewriter loads the rules and builds a rewriter.
func (c *CommandContext) NewRewriter() (*rewrite.Rewriter, *pluginconfig.Config, error) {
	payload, err := c.LoadPayload()
	if err != nil {
		return nil, nil, err
	}
	rw, err := payload.NewRewriter(c.Logger)
	if err != nil {
		return nil, nil, err
	}
	c.Logger.Debug("rules loaded", "path", c.Cfg.Rules, "rules", rw.Table().Len())
	return rw, payload, nil
}

// NewCache creates the result cache for payload, or nil when disabled.
func (c *CommandContext) NewCache(payload *pluginconfig.Config) (*cache.Cache, error) {
	fingerprint, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to fingerprint rules: %w", err)
	}
	return cache.New(c.Cfg.CacheSize, fingerprint)
}

// RunnerOptions returns the workspace options the settings describe.
func (c *CommandContext) RunnerOptions() workspace.Options {
	return workspace.Options{
		Jobs:   c.Cfg.Jobs,
		Verify: c.Cfg.Verify,
		Logger: c.Logger,
	}
}

// getConfig returns the current configuration, or the defaults when no
// configuration was loaded (commands built without the root command).
func getConfig() *config.Config {
	if cfg := config.GetCurrentConfig(); cfg != nil {
		return cfg
	}
	return &config.Config{
		Rules:        config.DefaultRulesFile,
		CacheSize:    config.DefaultCacheSize,
		Debounce:     config.DefaultDebounce,
		OutputFormat: config.DefaultOutput,
		Exclude:      workspace.DefaultExclude,
	}
}
