package core

// Node is the base interface for all statement-tree nodes.
type Node interface {
	// Span returns the byte range the node occupied in the original source.
	// Synthesized nodes return the zero Span.
	Span() Span
}

// Stmt is a marker interface for top-level statement nodes.
type Stmt interface {
	Node
	stmtNode() // Marker method to distinguish statements
}

// Specifier is one binding introduced by an import statement.
type Specifier interface {
	// LocalName returns the binding name at the import site.
	LocalName() string
	specifierNode()
}

// Span is a half-open byte range [Start, End) into the original source.
type Span struct {
	Start int
	End   int
}

// IsZero reports whether the span carries no position, which is the case for
// every node the rewriter synthesizes.
func (s Span) IsZero() bool {
	return s.Start == 0 && s.End == 0
}

// Len returns the number of bytes covered by the span.
func (s Span) Len() int {
	return s.End - s.Start
}

// =============================================================================
// Statements
// =============================================================================

// ImportDecl is an ES module import statement.
//
//	import Button, { Table as T } from "antd" with { type: "js" };
type ImportDecl struct {
	Loc        Span
	Source     string      // Module specifier, without quotes
	Specifiers []Specifier // In source order; empty for side-effect imports
	TypeOnly   bool        // import type { ... } from "..."
	Attributes string      // Raw attribute clause (e.g. `with { type: "json" }`), passed through untouched

	// Raw is the original statement text. It is empty for nodes built by the
	// rewriter, which tells printers to format the node from its fields.
	Raw string

	// Origin is the span of the original statement a synthesized import
	// replaces. Loc stays zero; printers use Origin to place the comments
	// that preceded the replaced statement.
	Origin Span
}

func (d *ImportDecl) stmtNode() {}

// Span implements Node.
func (d *ImportDecl) Span() Span { return d.Loc }

// Anchor returns Loc, or Origin for a synthesized import.
func (d *ImportDecl) Anchor() Span {
	if d.Loc.IsZero() {
		return d.Origin
	}
	return d.Loc
}

// IsSideEffect reports whether the import binds no names.
func (d *ImportDecl) IsSideEffect() bool {
	return len(d.Specifiers) == 0
}

// RawStmt is any top-level statement that is not an import declaration.
// It is carried through verbatim; the rewriter never looks inside it.
type RawStmt struct {
	Loc  Span
	Text string
}

func (s *RawStmt) stmtNode() {}

// Span implements Node.
func (s *RawStmt) Span() Span { return s.Loc }

// =============================================================================
// Specifiers
// =============================================================================

// DefaultSpecifier binds a module's default export: import Local from "...".
type DefaultSpecifier struct {
	Local string
}

func (s *DefaultSpecifier) specifierNode() {}

// LocalName implements Specifier.
func (s *DefaultSpecifier) LocalName() string { return s.Local }

// NamedSpecifier binds a named export: import { Imported as Local } from "...".
// Imported is empty when the specifier has no alias.
type NamedSpecifier struct {
	Local    string
	Imported string
	TypeOnly bool // import { type Local } from "..."
}

func (s *NamedSpecifier) specifierNode() {}

// LocalName implements Specifier.
func (s *NamedSpecifier) LocalName() string { return s.Local }

// ImportedName returns the exported name being imported, which is the local
// name when there is no alias.
func (s *NamedSpecifier) ImportedName() string {
	if s.Imported == "" {
		return s.Local
	}
	return s.Imported
}

// NamespaceSpecifier binds the module namespace object: import * as Local from "...".
type NamespaceSpecifier struct {
	Local string
}

func (s *NamespaceSpecifier) specifierNode() {}

// LocalName implements Specifier.
func (s *NamespaceSpecifier) LocalName() string { return s.Local }
