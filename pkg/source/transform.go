package source

import (
	"context"

	"github.com/sheinsight/transform-import-declaration-plugin/pkg/rewrite"
)

// Result is the outcome of rewriting one module.
type Result struct {
	Output  string
	Changed bool
}

// Rewrite parses src, applies rw and prints the result. When nothing matches
// the output is the unmodified input.
func Rewrite(ctx context.Context, rw *rewrite.Rewriter, src []byte, lang Lang) (*Result, error) {
	prog, err := Parse(ctx, src, lang)
	if err != nil {
		return nil, err
	}
	if !rw.Changed(prog) {
		return &Result{Output: string(src)}, nil
	}
	return &Result{Output: Print(rw.Rewrite(prog)), Changed: true}, nil
}
