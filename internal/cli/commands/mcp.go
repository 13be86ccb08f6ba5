package commands

import (
	"github.com/spf13/cobra"

	"github.com/sheinsight/transform-import-declaration-plugin/internal/mcp"
)

// NewMCPCommand creates the mcp command.
func NewMCPCommand(version string) *cobra.Command {
	return &cobra.Command{
		Use:   "mcp",
		Short: "Serve the rewriter over the Model Context Protocol",
		Long: `Start an MCP server on stdin/stdout with two tools:

  rewrite_imports  rewrite the imports of a code snippet
  list_rules       list the configured rules

The rules are loaded once at startup. Nothing is written to disk.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmdCtx := NewCommandContext(cmd)
			rw, payload, err := cmdCtx.NewRewriter()
			if err != nil {
				return err
			}
			c, err := cmdCtx.NewCache(payload)
			if err != nil {
				return err
			}

			server := mcp.NewServer(mcp.Config{
				Rewriter: rw,
				Cache:    c,
				Version:  version,
				Logger:   cmdCtx.Logger,
			})
			cmdCtx.Logger.Info("mcp server started", "rules", rw.Table().Len())
			return server.Run(cmd.Context())
		},
	}
}
