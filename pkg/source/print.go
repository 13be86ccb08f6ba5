package source

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/sheinsight/transform-import-declaration-plugin/pkg/core"
)

// Print renders a program as source text.
//
// The first statement placed for an original statement gets the text that
// preceded the original (comments and blank lines); synthesized imports take
// it from the statement they replace. Every other statement starts on its
// own line. Imports with Raw text are printed verbatim; the rest are
// formatted from their fields with double-quoted module specifiers.
func Print(p *core.Program) string {
	var b strings.Builder
	placed := make(map[int]bool)
	afterFormatted := false
	for i, stmt := range p.Body {
		anchor := anchorOf(stmt)
		switch {
		case p.Layout != nil && !anchor.IsZero() && !placed[anchor.Start]:
			placed[anchor.Start] = true
			leading := p.Layout.Leading(anchor)
			if afterFormatted {
				leading = breakLine(leading)
			}
			b.WriteString(leading)
		case i > 0:
			b.WriteByte('\n')
		}

		afterFormatted = false
		switch s := stmt.(type) {
		case *core.ImportDecl:
			if s.Raw != "" {
				b.WriteString(s.Raw)
			} else {
				b.WriteString(FormatImport(s))
				afterFormatted = true
			}
		case *core.RawStmt:
			b.WriteString(s.Text)
		}
	}

	if p.Layout != nil {
		trailing := p.Layout.Trailing()
		if afterFormatted && strings.TrimSpace(trailing) != "" {
			trailing = breakLine(trailing)
		}
		b.WriteString(trailing)
	} else if len(p.Body) > 0 {
		b.WriteByte('\n')
	}
	return b.String()
}

func anchorOf(stmt core.Stmt) core.Span {
	if d, ok := stmt.(*core.ImportDecl); ok {
		return d.Anchor()
	}
	return stmt.Span()
}

// breakLine makes text that follows a formatted import start on a new line.
// Spaces before the first line break are dropped.
func breakLine(text string) string {
	trimmed := strings.TrimLeft(text, " \t")
	if strings.HasPrefix(trimmed, "\n") || strings.HasPrefix(trimmed, "\r\n") {
		return trimmed
	}
	return "\n" + trimmed
}

// FormatImport formats an import declaration from its fields.
func FormatImport(d *core.ImportDecl) string {
	var b strings.Builder
	b.WriteString("import ")
	if d.TypeOnly {
		b.WriteString("type ")
	}

	var bindings, named []string
	for _, spec := range d.Specifiers {
		switch s := spec.(type) {
		case *core.DefaultSpecifier:
			bindings = append(bindings, s.Local)
		case *core.NamespaceSpecifier:
			bindings = append(bindings, "* as "+s.Local)
		case *core.NamedSpecifier:
			named = append(named, formatNamed(s))
		}
	}
	if len(named) > 0 {
		bindings = append(bindings, "{ "+strings.Join(named, ", ")+" }")
	}
	if len(bindings) > 0 {
		b.WriteString(strings.Join(bindings, ", "))
		b.WriteString(" from ")
	}

	b.WriteString(quote(d.Source))
	if d.Attributes != "" {
		b.WriteByte(' ')
		b.WriteString(d.Attributes)
	}
	b.WriteByte(';')
	return b.String()
}

func formatNamed(s *core.NamedSpecifier) string {
	var out string
	if s.TypeOnly {
		out = "type "
	}
	if s.Imported == "" || s.Imported == s.Local {
		return out + s.Local
	}
	imported := s.Imported
	if !isIdentifier(imported) {
		imported = quote(imported)
	}
	return out + imported + " as " + s.Local
}

// quote wraps a module specifier in double quotes. Existing escape sequences
// are copied as written and bare double quotes are escaped.
func quote(s string) string {
	var b strings.Builder
	b.Grow(len(s) + 2)
	b.WriteByte('"')
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c == '\\' && i+1 < len(s):
			b.WriteByte(c)
			i++
			b.WriteByte(s[i])
		case c == '"':
			b.WriteString(`\"`)
		case c == '\n':
			b.WriteString(`\n`)
		default:
			b.WriteByte(c)
		}
	}
	b.WriteByte('"')
	return b.String()
}

func isIdentifier(s string) bool {
	if s == "" {
		return false
	}
	for i, r := range s {
		if r == '$' || r == '_' || unicode.IsLetter(r) {
			continue
		}
		if i > 0 && unicode.IsDigit(r) {
			continue
		}
		return false
	}
	return utf8.ValidString(s)
}
