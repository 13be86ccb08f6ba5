package commands

import (
	"github.com/spf13/cobra"
)

// NewValidateCommand creates the validate command.
func NewValidateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Check the rules file",
		Long: `Decode the rules file and report the first problem found: a syntax
error, an unknown field, a missing required field, an empty output list,
an unknown casing or specifier name, or a rule with both include and exclude.`,
		Example: `  import-rewrite validate
  import-rewrite validate --rules config/imports.yaml`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmdCtx := NewCommandContext(cmd)
			payload, err := cmdCtx.LoadPayload()
			if err != nil {
				return err
			}

			r := cmdCtx.Renderer
			if ok, err := r.Structured(struct {
				Path  string `json:"path" yaml:"path"`
				Rules int    `json:"rules" yaml:"rules"`
				Valid bool   `json:"valid" yaml:"valid"`
			}{cmdCtx.Cfg.Rules, len(payload.Rules), true}); ok {
				return err
			}
			r.Printf("%s: %d rules valid\n", cmdCtx.Cfg.Rules, len(payload.Rules))
			return nil
		},
	}
}
