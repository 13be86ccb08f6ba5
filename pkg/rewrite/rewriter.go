// Package rewrite turns barrel imports into per-symbol imports.
//
// The rewrite is a pure flat-map over a program's top-level statements: each
// statement contributes zero or more statements to the output, in original
// order. Input nodes are never modified.
package rewrite

import (
	"log/slog"

	"github.com/sheinsight/transform-import-declaration-plugin/pkg/core"
	"github.com/sheinsight/transform-import-declaration-plugin/pkg/rules"
)

// Options controls rewrite behaviour beyond the rule table.
type Options struct {
	// KeepUnmatched retains named specifiers that no rule claims on the
	// original statement. By default they are dropped.
	KeepUnmatched bool

	// SkipTypeOnly passes `import type` statements through untouched and
	// retains `{ type X }` specifiers without evaluating them.
	SkipTypeOnly bool

	// Logger is the structured logger (optional, uses discard if nil)
	Logger *slog.Logger
}

// Rewriter applies a rule table to programs. It holds no mutable state and
// is safe for concurrent use.
type Rewriter struct {
	table  *rules.Table
	opts   Options
	logger *slog.Logger
}

// New creates a rewriter for a validated table.
func New(table *rules.Table, opts Options) *Rewriter {
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Rewriter{table: table, opts: opts, logger: logger}
}

// Table returns the rule table the rewriter applies.
func (rw *Rewriter) Table() *rules.Table {
	return rw.table
}

// Rewrite returns a new program with every matching import rewritten.
// Layout metadata is carried over unchanged.
func (rw *Rewriter) Rewrite(p *core.Program) *core.Program {
	out := &core.Program{
		Body:   make([]core.Stmt, 0, len(p.Body)),
		Layout: p.Layout,
	}
	for _, stmt := range p.Body {
		out.Body = append(out.Body, rw.rewriteStmt(stmt)...)
	}
	return out
}

// Changed reports whether rewriting p would alter its statement list.
func (rw *Rewriter) Changed(p *core.Program) bool {
	for _, decl := range p.Imports() {
		if out := rw.rewriteStmt(decl); len(out) != 1 || out[0] != core.Stmt(decl) {
			return true
		}
	}
	return false
}

func (rw *Rewriter) applies(decl *core.ImportDecl) bool {
	if decl.TypeOnly && rw.opts.SkipTypeOnly {
		return false
	}
	return len(rw.table.ForSource(decl.Source)) > 0
}

func (rw *Rewriter) rewriteStmt(stmt core.Stmt) []core.Stmt {
	decl, ok := stmt.(*core.ImportDecl)
	if !ok || !rw.applies(decl) {
		return []core.Stmt{stmt}
	}

	matched := rw.table.ForSource(decl.Source)

	var (
		out      []core.Stmt
		retained []core.Specifier
	)
	for _, spec := range decl.Specifiers {
		named, ok := spec.(*core.NamedSpecifier)
		if !ok || (named.TypeOnly && rw.opts.SkipTypeOnly) {
			retained = append(retained, spec)
			continue
		}

		r := claim(matched, named.Local)
		if r == nil {
			rw.logger.Debug("no rule claims specifier",
				"source", decl.Source, "name", named.Local, "kept", rw.opts.KeepUnmatched)
			if rw.opts.KeepUnmatched {
				retained = append(retained, spec)
			}
			continue
		}

		synthesized := synthesize(named.Local, r, decl.Loc)
		rw.logger.Debug("rewrote specifier",
			"source", decl.Source, "name", named.Local, "imports", len(synthesized))
		out = append(out, synthesized...)
	}

	if len(retained) > 0 && len(retained) == len(decl.Specifiers) {
		// Nothing was claimed or dropped.
		return []core.Stmt{stmt}
	}
	if len(retained) > 0 {
		out = append(out, &core.ImportDecl{
			Loc:        decl.Loc,
			Source:     decl.Source,
			Specifiers: retained,
			TypeOnly:   decl.TypeOnly,
			Attributes: decl.Attributes,
		})
	}
	return out
}

// claim returns the first rule in table order that matches name.
func claim(matched []*rules.Rule, name string) *rules.Rule {
	for _, r := range matched {
		if r.Matches(name) {
			return r
		}
	}
	return nil
}
