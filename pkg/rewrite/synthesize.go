package rewrite

import (
	"strings"

	"github.com/sheinsight/transform-import-declaration-plugin/pkg/casing"
	"github.com/sheinsight/transform-import-declaration-plugin/pkg/core"
	"github.com/sheinsight/transform-import-declaration-plugin/pkg/rules"
)

// Synthesize builds the import statements that replace symbol name under
// rule r: the primary import from Output[0], then one side-effect import per
// remaining template, in template order.
//
//	import DatePicker from "antd/es/date-picker.js";
//	import "antd/es/date-picker/style/css";
func Synthesize(name string, r *rules.Rule) []core.Stmt {
	return synthesize(name, r, core.Span{})
}

// synthesize is Synthesize with the replaced statement's span recorded as
// the Origin of every produced import.
func synthesize(name string, r *rules.Rule, origin core.Span) []core.Stmt {
	filename := casing.Convert(name, r.Filename)

	stmts := make([]core.Stmt, 0, len(r.Output))
	for i, template := range r.Output {
		path := ExpandTemplate(template, filename)
		if i == 0 {
			stmts = append(stmts, &core.ImportDecl{
				Source:     path,
				Specifiers: []core.Specifier{primarySpecifier(name, r.Specifier)},
				Origin:     origin,
			})
			continue
		}
		stmts = append(stmts, &core.ImportDecl{Source: path, Origin: origin})
	}
	return stmts
}

// ExpandTemplate replaces every literal "{{ filename }}" in template.
func ExpandTemplate(template, filename string) string {
	return strings.ReplaceAll(template, rules.Placeholder, filename)
}

func primarySpecifier(name string, st rules.SpecifierType) core.Specifier {
	switch st {
	case rules.SpecifierNamed:
		return &core.NamedSpecifier{Local: name}
	case rules.SpecifierNamespace:
		return &core.NamespaceSpecifier{Local: name}
	default:
		return &core.DefaultSpecifier{Local: name}
	}
}
