package mcp

import (
	"context"
	"encoding/json"
	"testing"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sheinsight/transform-import-declaration-plugin/internal/cache"
	"github.com/sheinsight/transform-import-declaration-plugin/internal/testutil"
	"github.com/sheinsight/transform-import-declaration-plugin/pkg/pluginconfig"
	"github.com/sheinsight/transform-import-declaration-plugin/pkg/source"
)

const rewritten = `import Button from "antd/es/button";
import "antd/es/button/style/css";
`

func newServer(t *testing.T) (*Server, *cache.Cache) {
	t.Helper()
	cfg, err := pluginconfig.Parse([]byte(testutil.AntdPayload))
	require.NoError(t, err)
	rw, err := cfg.NewRewriter(nil)
	require.NoError(t, err)
	c, err := cache.New(8, []byte(testutil.AntdPayload))
	require.NoError(t, err)
	return NewServer(Config{Rewriter: rw, Cache: c, Version: "test", Logger: testutil.NewTestLogger(t)}), c
}

func TestServer_RewriteImports(t *testing.T) {
	s, c := newServer(t)
	ctx := context.Background()

	out, err := s.RewriteImports(ctx, RewriteInput{Code: "import { Button } from 'antd';\n", Verify: true})
	require.NoError(t, err)
	assert.True(t, out.Changed)
	assert.Equal(t, rewritten, out.Code)

	again, err := s.RewriteImports(ctx, RewriteInput{Code: "import { Button } from 'antd';\n"})
	require.NoError(t, err)
	assert.Equal(t, out, again)
	assert.Equal(t, uint64(1), c.Stats().Hits)

	ts, err := s.RewriteImports(ctx, RewriteInput{Code: "import type { ButtonProps } from 'antd';\n", Filename: "types.ts"})
	require.NoError(t, err)
	assert.True(t, ts.Changed, "type-only imports are rewritten unless skipTypeOnly is set")
}

func TestServer_RewriteImportsErrors(t *testing.T) {
	s, _ := newServer(t)

	_, err := s.RewriteImports(context.Background(), RewriteInput{Code: "a {", Filename: "style.css"})
	var unsupported *source.UnsupportedFileError
	assert.ErrorAs(t, err, &unsupported)

	_, err = s.RewriteImports(context.Background(), RewriteInput{Code: "import { from 'antd'"})
	var syntaxErr *source.SyntaxError
	assert.ErrorAs(t, err, &syntaxErr)
}

func TestServer_ListRules(t *testing.T) {
	s, _ := newServer(t)
	out := s.ListRules()
	require.Len(t, out.Rules, 1)
	assert.Equal(t, "antd", out.Rules[0].Source)
	assert.Equal(t, "exclude", out.Rules[0].Filter)
	assert.Equal(t, []string{"Tooltip"}, out.Rules[0].Names)
}

func TestServer_OverInMemoryTransport(t *testing.T) {
	s, _ := newServer(t)
	ctx := context.Background()

	clientTransport, serverTransport := sdkmcp.NewInMemoryTransports()
	serverSession, err := s.SDKServer().Connect(ctx, serverTransport, nil)
	require.NoError(t, err)
	defer func() { _ = serverSession.Close() }()

	client := sdkmcp.NewClient(&sdkmcp.Implementation{Name: "test-client", Version: "v0.0.1"}, nil)
	session, err := client.Connect(ctx, clientTransport, nil)
	require.NoError(t, err)
	defer func() { _ = session.Close() }()

	tools, err := session.ListTools(ctx, nil)
	require.NoError(t, err)
	var names []string
	for _, tool := range tools.Tools {
		names = append(names, tool.Name)
	}
	assert.ElementsMatch(t, []string{"rewrite_imports", "list_rules"}, names)

	res, err := session.CallTool(ctx, &sdkmcp.CallToolParams{
		Name:      "rewrite_imports",
		Arguments: map[string]any{"code": "import { Button } from 'antd';\n"},
	})
	require.NoError(t, err)
	require.False(t, res.IsError)

	raw, err := json.Marshal(res.StructuredContent)
	require.NoError(t, err)
	var out RewriteOutput
	require.NoError(t, json.Unmarshal(raw, &out))
	assert.Equal(t, RewriteOutput{Code: rewritten, Changed: true}, out)

	res, err = session.CallTool(ctx, &sdkmcp.CallToolParams{
		Name:      "rewrite_imports",
		Arguments: map[string]any{"code": "x", "filename": "a.css"},
	})
	require.NoError(t, err)
	assert.True(t, res.IsError)
}
