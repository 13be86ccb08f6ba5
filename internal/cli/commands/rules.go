package commands

import (
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/sheinsight/transform-import-declaration-plugin/internal/cli/output"
	"github.com/sheinsight/transform-import-declaration-plugin/pkg/rules"
)

// RulesOptions holds options for the rules command.
type RulesOptions struct {
	Source string // Filter by source
	Format string // Output format
}

// NewRulesCommand creates the rules command.
func NewRulesCommand() *cobra.Command {
	opts := &RulesOptions{}
	cmd := &cobra.Command{
		Use:   "rules",
		Short: "List the configured rewrite rules",
		Long: `List the rules in the rules file in evaluation order.

For each rule the listing shows the matched source, the filename casing,
the specifier type, the output templates and the include or exclude filter.
The first rule whose source matches an import claims it.

Output adapts to environment:
  - Terminal: table
  - Piped/Scripted: JSON
  - --format yaml: YAML`,
		Example: `  # List all rules
  import-rewrite rules

  # Only the rules for antd
  import-rewrite rules --source antd

  # Output as YAML
  import-rewrite rules --format yaml`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return listRules(cmd, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.Source, "source", "s", "", "Only show rules for this source")
	cmd.Flags().StringVarP(&opts.Format, "format", "f", "", "Output format: text, json, yaml")

	return cmd
}

func listRules(cmd *cobra.Command, opts *RulesOptions) error {
	cmdCtx := NewCommandContext(cmd)
	r := cmdCtx.Renderer

	// Override renderer if format flag is set
	if opts.Format != "" {
		r = output.NewRenderer(cmd.OutOrStdout(), cmd.ErrOrStderr(), output.Mode(opts.Format))
	}

	payload, err := cmdCtx.LoadPayload()
	if err != nil {
		return err
	}
	tbl, err := payload.Table()
	if err != nil {
		return err
	}

	infos := filterRules(tbl.Describe(), opts.Source)

	if ok, err := r.Structured(struct {
		Rules []rules.Info `json:"rules" yaml:"rules"`
	}{infos}); ok {
		return err
	}

	if len(infos) == 0 {
		r.Println("No rules configured.")
		return nil
	}

	rows := make([]table.Row, 0, len(infos))
	for _, info := range infos {
		rows = append(rows, table.Row{
			info.Index,
			info.Source,
			info.Filename,
			info.Specifier,
			strings.Join(info.Output, "\n"),
			describeFilter(info),
		})
	}
	r.Table(table.Row{"#", "Source", "Filename", "Specifier", "Output", "Filter"}, rows)
	r.Printf("%d rules from %s\n", len(infos), cmdCtx.Cfg.Rules)
	return nil
}

func filterRules(infos []rules.Info, source string) []rules.Info {
	if source == "" {
		return infos
	}
	var filtered []rules.Info
	for _, info := range infos {
		if info.Source == source {
			filtered = append(filtered, info)
		}
	}
	return filtered
}

func describeFilter(info rules.Info) string {
	switch info.Filter {
	case "include", "exclude":
		if len(info.Names) == 0 {
			return info.Filter + " (empty)"
		}
		return info.Filter + ": " + strings.Join(info.Names, ", ")
	default:
		return "-"
	}
}
