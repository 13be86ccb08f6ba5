package commands

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/sheinsight/transform-import-declaration-plugin/internal/cli/config"
	"github.com/sheinsight/transform-import-declaration-plugin/internal/cli/output"
	"github.com/sheinsight/transform-import-declaration-plugin/internal/workspace"
	"github.com/sheinsight/transform-import-declaration-plugin/pkg/pluginconfig"
)

// sampleRules is written by init. It is parsed before use so the scaffold
// always matches what the decoder accepts.
const sampleRules = `{
  "config": [
    {
      "source": "antd",
      "filename": "kebabCase",
      "output": ["antd/es/{{ filename }}", "antd/es/{{ filename }}/style/css"],
      "exclude": ["message", "notification"]
    },
    {
      "source": "lodash",
      "filename": "camelCase",
      "output": ["lodash/{{ filename }}"],
      "specifier": "default"
    }
  ]
}`

// settingsFile is the scaffolded import-rewrite.yaml.
type settingsFile struct {
	Rules   string   `yaml:"rules"`
	Verify  bool     `yaml:"verify"`
	Exclude []string `yaml:"exclude"`
}

// NewInitCommand creates the init command.
func NewInitCommand() *cobra.Command {
	var force bool
	var format string

	cmd := &cobra.Command{
		Use:   "init [directory]",
		Short: "Create a settings file and a sample rules file",
		Long: `Initialize import-rewrite in a project.

This creates:
  - import-rewrite.yaml with the CLI settings
  - import-rewrite.rules.json (or .yaml) with sample rules for antd and lodash

Edit the rules file to match the libraries your project imports from.`,
		Example: `  # Initialize in current directory
  import-rewrite init

  # Write the rules as YAML
  import-rewrite init --format yaml

  # Force overwrite existing files
  import-rewrite init --force`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := "."
			if len(args) > 0 {
				dir = args[0]
			}

			cfg := getConfig()
			r := output.NewRenderer(cmd.OutOrStdout(), cmd.ErrOrStderr(), output.Mode(cfg.OutputFormat))
			return runInit(r, dir, format, force)
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "Overwrite existing files")
	cmd.Flags().StringVar(&format, "format", "json", "Rules file format: json, yaml")
	_ = cmd.RegisterFlagCompletionFunc("format", func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		return []string{"json", "yaml"}, cobra.ShellCompDirectiveNoFileComp
	})

	return cmd
}

func runInit(r *output.Renderer, dir, format string, force bool) error {
	payload, err := pluginconfig.Parse([]byte(sampleRules))
	if err != nil {
		return fmt.Errorf("invalid sample rules: %w", err)
	}

	var rulesName string
	var rulesData []byte
	switch format {
	case "json":
		rulesName = config.DefaultRulesFile
		rulesData, err = json.MarshalIndent(payload, "", "  ")
		rulesData = append(rulesData, '\n')
	case "yaml":
		rulesName = "import-rewrite.rules.yaml"
		rulesData, err = payload.EncodeYAML()
	default:
		return fmt.Errorf("invalid format %q: must be json or yaml", format)
	}
	if err != nil {
		return fmt.Errorf("failed to encode rules: %w", err)
	}

	settingsData, err := yaml.Marshal(settingsFile{
		Rules:   rulesName,
		Verify:  true,
		Exclude: workspace.DefaultExclude,
	})
	if err != nil {
		return fmt.Errorf("failed to encode settings: %w", err)
	}

	if dir != "." {
		if err := os.MkdirAll(dir, 0750); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}

	files := []struct {
		name string
		data []byte
	}{
		{config.DefaultSettingsFile, settingsData},
		{rulesName, rulesData},
	}

	// Check everything first so a refused init writes nothing
	if !force {
		for _, f := range files {
			if _, err := os.Stat(filepath.Join(dir, f.name)); err == nil {
				return fmt.Errorf("%s already exists. Use --force to overwrite", f.name)
			}
		}
	}

	for _, f := range files {
		if err := os.WriteFile(filepath.Join(dir, f.name), f.data, 0600); err != nil {
			return fmt.Errorf("failed to write %s: %w", f.name, err)
		}
		r.Printf("created %s\n", f.name)
	}

	r.Println("")
	r.Println("Next steps:")
	r.Println("  1. Edit " + rulesName + " for the libraries you use")
	r.Println("  2. Run 'import-rewrite validate' to check the rules")
	r.Println("  3. Run 'import-rewrite rewrite --dry-run' to preview changes")
	return nil
}
