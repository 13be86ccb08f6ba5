// Package mcp exposes the import rewriter as Model Context Protocol tools so
// that editors and agents can rewrite a snippet without touching the disk.
package mcp

import (
	"context"
	"fmt"
	"log/slog"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/sheinsight/transform-import-declaration-plugin/internal/cache"
	"github.com/sheinsight/transform-import-declaration-plugin/pkg/rewrite"
	"github.com/sheinsight/transform-import-declaration-plugin/pkg/rules"
	"github.com/sheinsight/transform-import-declaration-plugin/pkg/source"
)

// Config configures a Server.
type Config struct {
	Rewriter *rewrite.Rewriter
	Cache    *cache.Cache // optional
	Version  string
	Logger   *slog.Logger // optional, uses discard if nil
}

// Server answers rewrite requests with a fixed rule table.
type Server struct {
	rw      *rewrite.Rewriter
	cache   *cache.Cache
	version string
	logger  *slog.Logger
}

// RewriteInput is the argument of the rewrite_imports tool.
type RewriteInput struct {
	Code     string `json:"code" jsonschema:"JavaScript or TypeScript module source"`
	Filename string `json:"filename,omitempty" jsonschema:"File name used to pick the grammar from its extension (optional, defaults to input.js)"`
	Verify   bool   `json:"verify,omitempty" jsonschema:"Check the rewritten module with esbuild (optional)"`
}

// RewriteOutput is the result of the rewrite_imports tool.
type RewriteOutput struct {
	Code    string `json:"code" jsonschema:"Rewritten module source"`
	Changed bool   `json:"changed" jsonschema:"Whether any import was rewritten"`
}

// ListRulesInput is the (empty) argument of the list_rules tool.
type ListRulesInput struct{}

// ListRulesOutput is the result of the list_rules tool.
type ListRulesOutput struct {
	Rules []rules.Info `json:"rules" jsonschema:"Configured rewrite rules in evaluation order"`
}

// NewServer creates a server.
func NewServer(cfg Config) *Server {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	version := cfg.Version
	if version == "" {
		version = "dev"
	}
	return &Server{rw: cfg.Rewriter, cache: cfg.Cache, version: version, logger: logger}
}

// RewriteImports rewrites one module.
func (s *Server) RewriteImports(ctx context.Context, in RewriteInput) (RewriteOutput, error) {
	name := in.Filename
	if name == "" {
		name = "input.js"
	}
	lang, err := source.LangForPath(name)
	if err != nil {
		return RewriteOutput{}, err
	}

	key := s.cache.Key(lang, []byte(in.Code))
	res, hit := s.cache.Get(key)
	if !hit {
		out, err := source.Rewrite(ctx, s.rw, []byte(in.Code), lang)
		if err != nil {
			return RewriteOutput{}, fmt.Errorf("%s: %w", name, err)
		}
		res = *out
		s.cache.Add(key, res)
	}
	if in.Verify && res.Changed {
		if err := source.Verify(name, res.Output, lang); err != nil {
			return RewriteOutput{}, err
		}
	}

	s.logger.Debug("rewrite_imports", "file", name, "changed", res.Changed, "cached", hit)
	return RewriteOutput{Code: res.Output, Changed: res.Changed}, nil
}

// ListRules describes the configured rules.
func (s *Server) ListRules() ListRulesOutput {
	return ListRulesOutput{Rules: s.rw.Table().Describe()}
}

// SDKServer builds the MCP server with the tools registered.
func (s *Server) SDKServer() *sdkmcp.Server {
	server := sdkmcp.NewServer(&sdkmcp.Implementation{
		Name:    "import-rewrite",
		Version: s.version,
	}, nil)

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "rewrite_imports",
		Description: "Rewrite barrel imports in a JavaScript or TypeScript module into per-symbol imports using the project's rules.",
	}, func(ctx context.Context, _ *sdkmcp.CallToolRequest, in RewriteInput) (*sdkmcp.CallToolResult, RewriteOutput, error) {
		out, err := s.RewriteImports(ctx, in)
		if err != nil {
			return nil, RewriteOutput{}, err
		}
		return nil, out, nil
	})

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "list_rules",
		Description: "List the configured import rewrite rules.",
	}, func(_ context.Context, _ *sdkmcp.CallToolRequest, _ ListRulesInput) (*sdkmcp.CallToolResult, ListRulesOutput, error) {
		return nil, s.ListRules(), nil
	})

	return server
}

// Run serves over stdio until ctx is cancelled or the client disconnects.
func (s *Server) Run(ctx context.Context) error {
	s.logger.Info("starting MCP server", "transport", "stdio", "rules", s.rw.Table().Len())
	return s.SDKServer().Run(ctx, &sdkmcp.StdioTransport{})
}
