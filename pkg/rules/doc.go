// Package rules provides the rewrite rule model, its validation and the
// include/exclude matching policy.
//
// # Rules
//
// A Rule describes how named imports from one barrel module are split into
// per-symbol imports:
//
//	rule := rules.Rule{
//		Source:   "antd",
//		Filename: casing.KebabCase,
//		Output:   []string{"antd/es/{{ filename }}.js", "antd/es/{{ filename }}/style/css"},
//		Exclude:  rules.NewNameSet("Button"),
//	}
//
// Output[0] is the primary import path template; every further template
// produces a side-effect import, in listed order.
//
// # Tables
//
// NewTable validates a rule list and indexes it by source. A Table is
// immutable and safe for concurrent use:
//
//	table, err := rules.NewTable(ruleList)
//	for _, r := range table.ForSource("antd") {
//		if r.Matches("DatePicker") { ... }
//	}
//
// When several rules share a source the first matching rule in table order wins.
package rules
