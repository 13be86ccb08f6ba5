package workspace

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sheinsight/transform-import-declaration-plugin/internal/testutil"
	"github.com/sheinsight/transform-import-declaration-plugin/pkg/pluginconfig"
	"github.com/sheinsight/transform-import-declaration-plugin/pkg/rewrite"
)

// startWatcher runs a watcher in the background and returns a channel of
// pass results.
func startWatcher(t *testing.T, root string, load LoadFunc, rulesFile string) <-chan []FileResult {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())

	passes := make(chan []FileResult, 16)
	w := NewWatcher(Selector{Root: root, Exclude: DefaultExclude}, load, WatchOptions{
		Runner:    Options{Logger: testutil.NewTestLogger(t)},
		Debounce:  20 * time.Millisecond,
		RulesFile: rulesFile,
	})

	done := make(chan error, 1)
	go func() {
		done <- w.Run(ctx, []string{root}, func(results []FileResult, _ time.Duration) {
			select {
			case passes <- results:
			default:
			}
		})
	}()
	t.Cleanup(func() {
		cancel()
		assert.NoError(t, <-done)
	})
	return passes
}

func nextPass(t *testing.T, passes <-chan []FileResult) []FileResult {
	t.Helper()
	select {
	case results := <-passes:
		return results
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for a rewrite pass")
		return nil
	}
}

// waitFor polls until the file has the wanted content.
func waitFor(t *testing.T, root, rel, want string) {
	t.Helper()
	assert.Eventually(t, func() bool {
		data, err := os.ReadFile(filepath.Join(root, rel))
		return err == nil && string(data) == want
	}, 5*time.Second, 10*time.Millisecond)
}

func TestWatcher_InitialPassAndChanges(t *testing.T) {
	root := t.TempDir()
	testutil.WriteTree(t, root, map[string]string{"src/App.jsx": appSource})

	load := func() (*rewrite.Rewriter, error) {
		cfg, err := pluginconfig.Parse([]byte(testutil.AntdPayload))
		if err != nil {
			return nil, err
		}
		return cfg.NewRewriter(nil)
	}
	passes := startWatcher(t, root, load, "")

	initial := nextPass(t, passes)
	require.Len(t, initial, 1)
	assert.True(t, initial[0].Changed)
	assert.Equal(t, appRewritten, testutil.ReadFile(t, root, "src/App.jsx"))

	// New file in a new directory
	testutil.WriteTree(t, root, map[string]string{"src/pages/Home.js": "import { Modal } from 'antd';\n"})
	waitFor(t, root, "src/pages/Home.js", `import Modal from "antd/es/modal";
import "antd/es/modal/style/css";
`)
}

func TestWatcher_ReloadsRules(t *testing.T) {
	root := t.TempDir()
	rulesFile := filepath.Join(root, "rules.json")
	testutil.WriteTree(t, root, map[string]string{
		"rules.json": `{"config": []}`,
		"src/App.js": appSource,
	})

	load := func() (*rewrite.Rewriter, error) {
		cfg, err := pluginconfig.Load(rulesFile)
		if err != nil {
			return nil, err
		}
		return cfg.NewRewriter(nil)
	}
	passes := startWatcher(t, root, load, rulesFile)

	initial := nextPass(t, passes)
	require.Len(t, initial, 1)
	assert.False(t, initial[0].Changed, "no rules yet")

	require.NoError(t, os.WriteFile(rulesFile, []byte(testutil.AntdPayload), 0o600))
	waitFor(t, root, "src/App.js", appRewritten)
}

func TestWatcher_LoadError(t *testing.T) {
	w := NewWatcher(Selector{}, func() (*rewrite.Rewriter, error) {
		return nil, assert.AnError
	}, WatchOptions{})

	err := w.Run(context.Background(), nil, func([]FileResult, time.Duration) {})
	assert.ErrorIs(t, err, assert.AnError)
}
