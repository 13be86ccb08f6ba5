// Package workspace finds the source files to rewrite and rewrites them
// concurrently.
package workspace

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/sheinsight/transform-import-declaration-plugin/pkg/source"
)

// DefaultExclude skips dependency and build output directories.
var DefaultExclude = []string{
	"**/node_modules/**",
	"**/.git/**",
	"**/dist/**",
	"**/build/**",
}

// sourceGlob matches every extension source.LangForPath accepts.
const sourceGlob = "**/*.{js,mjs,cjs,jsx,ts,mts,cts,tsx}"

// Selector turns command-line arguments into a list of source files.
// Include and Exclude are doublestar patterns matched against slash-separated
// paths relative to Root.
type Selector struct {
	Root    string
	Include []string
	Exclude []string
}

// Validate checks that every pattern is well formed.
func (s Selector) Validate() error {
	for _, p := range append(append([]string{}, s.Include...), s.Exclude...) {
		if !doublestar.ValidatePattern(p) {
			return fmt.Errorf("invalid glob pattern %q", p)
		}
	}
	return nil
}

// Expand resolves args to a sorted, de-duplicated file list. Each arg is a
// file, a directory (searched recursively) or a glob pattern. With no args
// Root is searched.
func (s Selector) Expand(args []string) ([]string, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}
	if len(args) == 0 {
		args = []string{s.root()}
	}

	seen := make(map[string]struct{})
	var files []string
	add := func(path string) {
		path = filepath.Clean(path)
		if _, ok := seen[path]; ok || !s.selected(path) {
			return
		}
		seen[path] = struct{}{}
		files = append(files, path)
	}

	for _, arg := range args {
		info, err := os.Stat(arg)
		switch {
		case err == nil && info.IsDir():
			matches, err := doublestar.Glob(os.DirFS(arg), sourceGlob, doublestar.WithFilesOnly())
			if err != nil {
				return nil, fmt.Errorf("failed to search %s: %w", arg, err)
			}
			for _, m := range matches {
				add(filepath.Join(arg, filepath.FromSlash(m)))
			}
		case err == nil:
			if !source.Supported(arg) {
				return nil, &source.UnsupportedFileError{Path: arg}
			}
			add(arg)
		case errors.Is(err, fs.ErrNotExist) && hasMeta(arg):
			matches, err := doublestar.FilepathGlob(arg, doublestar.WithFilesOnly())
			if err != nil {
				return nil, fmt.Errorf("invalid glob %q: %w", arg, err)
			}
			for _, m := range matches {
				if source.Supported(m) {
					add(m)
				}
			}
		default:
			return nil, fmt.Errorf("cannot read %s: %w", arg, err)
		}
	}

	sort.Strings(files)
	return files, nil
}

// Match reports whether path passes the include and exclude patterns. It is
// used by watch mode to filter change events.
func (s Selector) Match(path string) bool {
	return source.Supported(path) && s.selected(filepath.Clean(path))
}

func (s Selector) selected(path string) bool {
	rel := s.relative(path)
	for _, p := range s.Exclude {
		if ok, _ := doublestar.Match(p, rel); ok {
			return false
		}
	}
	if len(s.Include) == 0 {
		return true
	}
	for _, p := range s.Include {
		if ok, _ := doublestar.Match(p, rel); ok {
			return true
		}
	}
	return false
}

func (s Selector) relative(path string) string {
	root, err := filepath.Abs(s.root())
	if err != nil {
		return filepath.ToSlash(path)
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return filepath.ToSlash(path)
	}
	if rel, err := filepath.Rel(root, abs); err == nil && !strings.HasPrefix(rel, "..") {
		return filepath.ToSlash(rel)
	}
	return filepath.ToSlash(path)
}

func (s Selector) root() string {
	if s.Root == "" {
		return "."
	}
	return s.Root
}

func hasMeta(p string) bool {
	return strings.ContainsAny(p, "*?[{")
}
