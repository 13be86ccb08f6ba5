// Package config provides configuration management for the import-rewrite CLI.
//
// Settings are layered with koanf: built-in defaults, then the project's
// import-rewrite.yaml, then IMPORT_REWRITE_* environment variables (a .env
// file in the project root is loaded first), then explicitly set flags.
package config

import (
	"time"

	"github.com/sheinsight/transform-import-declaration-plugin/internal/workspace"
)

// Config holds all CLI configuration options.
type Config struct {
	ProjectRoot   string        `koanf:"-"`
	Rules         string        `koanf:"rules"`
	Jobs          int           `koanf:"jobs"`
	Verify        bool          `koanf:"verify"`
	KeepUnmatched bool          `koanf:"keep_unmatched"`
	SkipTypeOnly  bool          `koanf:"skip_type_only"`
	Include       []string      `koanf:"include"`
	Exclude       []string      `koanf:"exclude"`
	CacheSize     int           `koanf:"cache_size"`
	Debounce      time.Duration `koanf:"debounce"`
	Verbose       bool          `koanf:"verbose"`
	OutputFormat  string        `koanf:"output"`
}

// Default configuration values.
const (
	DefaultSettingsFile = "import-rewrite.yaml"
	DefaultRulesFile    = "import-rewrite.rules.json"
	DefaultCacheSize    = 1024
	DefaultDebounce     = 200 * time.Millisecond
	DefaultOutput       = "auto" // Auto-detect: TTY=text, non-TTY=json
	EnvPrefix           = "IMPORT_REWRITE_"
)

// Selector returns the file selector the settings describe.
func (c *Config) Selector() workspace.Selector {
	return workspace.Selector{
		Root:    c.ProjectRoot,
		Include: c.Include,
		Exclude: c.Exclude,
	}
}
