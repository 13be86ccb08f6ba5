package core

import "sort"

// Program is the ordered top-level statement list of one module.
type Program struct {
	Body []Stmt

	// Layout describes the source the program was parsed from. It is nil for
	// programs built in memory. The rewriter carries it over untouched so that
	// printers can reproduce the whitespace and comments between statements.
	Layout *Layout
}

// Layout is printer metadata: the original source bytes and the spans of the
// original top-level statements, in order.
type Layout struct {
	Source []byte
	Spans  []Span
}

// Imports returns the import declarations of the program, in order.
func (p *Program) Imports() []*ImportDecl {
	var imports []*ImportDecl
	for _, stmt := range p.Body {
		if decl, ok := stmt.(*ImportDecl); ok {
			imports = append(imports, decl)
		}
	}
	return imports
}

// Leading returns the source text between the end of the original statement
// preceding span and span.Start. It returns "" when span is not an original
// statement span.
func (l *Layout) Leading(span Span) string {
	if l == nil || span.IsZero() {
		return ""
	}
	i := sort.Search(len(l.Spans), func(i int) bool { return l.Spans[i].Start >= span.Start })
	if i == len(l.Spans) || l.Spans[i].Start != span.Start {
		return ""
	}
	prevEnd := 0
	if i > 0 {
		prevEnd = l.Spans[i-1].End
	}
	if prevEnd > span.Start || span.Start > len(l.Source) {
		return ""
	}
	return string(l.Source[prevEnd:span.Start])
}

// Trailing returns the source text after the last original statement.
func (l *Layout) Trailing() string {
	if l == nil {
		return ""
	}
	if len(l.Spans) == 0 {
		return string(l.Source)
	}
	end := l.Spans[len(l.Spans)-1].End
	if end > len(l.Source) {
		return ""
	}
	return string(l.Source[end:])
}
