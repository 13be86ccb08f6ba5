package source

import (
	"context"
	"fmt"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"

	"github.com/sheinsight/transform-import-declaration-plugin/pkg/core"
)

// SyntaxError reports source text tree-sitter could not parse cleanly.
// Line and Column are 1-based.
type SyntaxError struct {
	Line   int
	Column int
	Near   string
}

func (e *SyntaxError) Error() string {
	if e.Near == "" {
		return fmt.Sprintf("syntax error at %d:%d", e.Line, e.Column)
	}
	return fmt.Sprintf("syntax error at %d:%d near %q", e.Line, e.Column, e.Near)
}

// Parse parses a module and returns its top-level statements.
func Parse(ctx context.Context, src []byte, lang Lang) (*core.Program, error) {
	parser := sitter.NewParser()
	defer parser.Close()
	parser.SetLanguage(lang.grammar())

	tree, err := parser.ParseCtx(ctx, nil, src)
	if err != nil {
		return nil, fmt.Errorf("parsing failed: %w", err)
	}
	defer tree.Close()

	root := tree.RootNode()
	if root.HasError() {
		return nil, syntaxError(root, src)
	}

	prog := &core.Program{Layout: &core.Layout{Source: src}}
	for i := 0; i < int(root.NamedChildCount()); i++ {
		n := root.NamedChild(i)
		if n.Type() == "comment" {
			continue
		}

		span := spanOf(n)
		prog.Layout.Spans = append(prog.Layout.Spans, span)

		if n.Type() == "import_statement" {
			if decl := parseImport(n, src); decl != nil {
				prog.Body = append(prog.Body, decl)
				continue
			}
		}
		prog.Body = append(prog.Body, &core.RawStmt{Loc: span, Text: n.Content(src)})
	}
	return prog, nil
}

// parseImport returns nil for import forms the rewriter does not model
// (import x = require("...")), which are then kept as raw statements.
func parseImport(n *sitter.Node, src []byte) *core.ImportDecl {
	decl := &core.ImportDecl{
		Loc: spanOf(n),
		Raw: n.Content(src),
	}

	var sourceNode *sitter.Node
	for i := 0; i < int(n.ChildCount()); i++ {
		child := n.Child(i)
		switch child.Type() {
		case "import_require_clause":
			return nil
		case "type":
			if !child.IsNamed() {
				decl.TypeOnly = true
			}
		case "import_clause":
			decl.Specifiers = parseClause(child, src)
		case "string":
			sourceNode = child
		}
	}
	if field := n.ChildByFieldName("source"); field != nil {
		sourceNode = field
	}
	if sourceNode == nil {
		return nil
	}

	decl.Source = unquote(sourceNode.Content(src))
	decl.Attributes = attributes(src[sourceNode.EndByte():n.EndByte()])
	return decl
}

// parseClause handles everything between "import" and "from":
//
//	Default
//	* as ns
//	{ a, b as c, type T }
//	Default, * as ns
//	Default, { a }
func parseClause(n *sitter.Node, src []byte) []core.Specifier {
	var specs []core.Specifier
	for i := 0; i < int(n.NamedChildCount()); i++ {
		child := n.NamedChild(i)
		switch child.Type() {
		case "identifier":
			specs = append(specs, &core.DefaultSpecifier{Local: child.Content(src)})
		case "namespace_import":
			if id := firstNamed(child, "identifier"); id != nil {
				specs = append(specs, &core.NamespaceSpecifier{Local: id.Content(src)})
			}
		case "named_imports":
			for j := 0; j < int(child.NamedChildCount()); j++ {
				if spec := parseSpecifier(child.NamedChild(j), src); spec != nil {
					specs = append(specs, spec)
				}
			}
		}
	}
	return specs
}

func parseSpecifier(n *sitter.Node, src []byte) *core.NamedSpecifier {
	if n.Type() != "import_specifier" {
		return nil
	}
	name := n.ChildByFieldName("name")
	if name == nil {
		return nil
	}

	spec := &core.NamedSpecifier{Local: unquote(name.Content(src))}
	if alias := n.ChildByFieldName("alias"); alias != nil {
		spec.Imported = spec.Local
		spec.Local = alias.Content(src)
	}
	for i := 0; i < int(n.ChildCount()); i++ {
		if child := n.Child(i); !child.IsNamed() && child.Type() == "type" {
			spec.TypeOnly = true
		}
	}
	return spec
}

func firstNamed(n *sitter.Node, typ string) *sitter.Node {
	for i := 0; i < int(n.NamedChildCount()); i++ {
		if child := n.NamedChild(i); child.Type() == typ {
			return child
		}
	}
	return nil
}

func spanOf(n *sitter.Node) core.Span {
	return core.Span{Start: int(n.StartByte()), End: int(n.EndByte())}
}

// unquote strips the delimiters of a string literal. Escape sequences are
// kept as written; the printer preserves them.
func unquote(s string) string {
	if len(s) >= 2 && (s[0] == '"' || s[0] == '\'') && s[len(s)-1] == s[0] {
		return s[1 : len(s)-1]
	}
	return s
}

// attributes extracts the `with { ... }` clause that follows the module
// specifier, if any.
func attributes(rest []byte) string {
	s := strings.TrimSpace(string(rest))
	s = strings.TrimSuffix(s, ";")
	return strings.TrimSpace(s)
}

func syntaxError(root *sitter.Node, src []byte) *SyntaxError {
	iter := sitter.NewIterator(root, sitter.DFSMode)
	for {
		n, err := iter.Next()
		if err != nil || n == nil {
			break
		}
		if !n.IsError() && !n.IsMissing() {
			continue
		}
		pt := n.StartPoint()
		near := n.Content(src)
		if len(near) > 40 {
			near = near[:40]
		}
		return &SyntaxError{Line: int(pt.Row) + 1, Column: int(pt.Column) + 1, Near: near}
	}
	pt := root.StartPoint()
	return &SyntaxError{Line: int(pt.Row) + 1, Column: int(pt.Column) + 1}
}
