package commands

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sheinsight/transform-import-declaration-plugin/internal/cli/config"
	"github.com/sheinsight/transform-import-declaration-plugin/pkg/pluginconfig"
)

func TestNewInitCommand(t *testing.T) {
	tests := []struct {
		name      string
		setupDir  func(t *testing.T, dir string) // setup before running
		args      []string
		wantErr   string
		wantFiles []string
	}{
		{
			name:      "init empty directory",
			wantFiles: []string{"import-rewrite.yaml", "import-rewrite.rules.json"},
		},
		{
			name:      "yaml rules",
			args:      []string{"--format", "yaml"},
			wantFiles: []string{"import-rewrite.yaml", "import-rewrite.rules.yaml"},
		},
		{
			name:      "into subdirectory",
			args:      []string{"web"},
			wantFiles: []string{"web/import-rewrite.yaml", "web/import-rewrite.rules.json"},
		},
		{
			name: "existing rules without force",
			setupDir: func(_ *testing.T, dir string) {
				_ = os.WriteFile(filepath.Join(dir, "import-rewrite.rules.json"), []byte("existing"), 0600)
			},
			wantErr: "already exists",
		},
		{
			name: "existing config with force",
			setupDir: func(_ *testing.T, dir string) {
				_ = os.WriteFile(filepath.Join(dir, "import-rewrite.yaml"), []byte("existing"), 0600)
			},
			args:      []string{"--force"},
			wantFiles: []string{"import-rewrite.yaml", "import-rewrite.rules.json"},
		},
		{
			name:    "unknown format",
			args:    []string{"--format", "toml"},
			wantErr: "invalid format",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			config.ResetConfig()
			tmpDir := t.TempDir()
			t.Chdir(tmpDir)

			if tt.setupDir != nil {
				tt.setupDir(t, tmpDir)
			}

			_, _, err := execute(NewInitCommand(), tt.args...)
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}
			require.NoError(t, err)

			for _, f := range tt.wantFiles {
				assert.FileExists(t, filepath.Join(tmpDir, filepath.FromSlash(f)))
			}
		})
	}
}

func TestInitRefusalWritesNothing(t *testing.T) {
	config.ResetConfig()
	tmpDir := t.TempDir()
	t.Chdir(tmpDir)
	require.NoError(t, os.WriteFile("import-rewrite.rules.json", []byte("existing"), 0600))

	_, _, err := execute(NewInitCommand())
	require.Error(t, err)
	assert.NoFileExists(t, filepath.Join(tmpDir, "import-rewrite.yaml"))
}

func TestInitCreatesLoadableProject(t *testing.T) {
	for _, format := range []string{"json", "yaml"} {
		t.Run(format, func(t *testing.T) {
			config.ResetConfig()
			t.Cleanup(config.ResetConfig)
			tmpDir := t.TempDir()
			t.Chdir(tmpDir)

			_, _, err := execute(NewInitCommand(), "--format", format)
			require.NoError(t, err)

			cfg, err := config.LoadConfig("", nil)
			require.NoError(t, err)
			assert.True(t, cfg.Verify)
			assert.Equal(t, "import-rewrite.rules."+format, filepath.Base(cfg.Rules))

			payload, err := pluginconfig.Load(cfg.Rules)
			require.NoError(t, err)
			require.Len(t, payload.Rules, 2)
			assert.Equal(t, "antd", payload.Rules[0].Source)
			assert.Equal(t, "lodash", payload.Rules[1].Source)
		})
	}
}
