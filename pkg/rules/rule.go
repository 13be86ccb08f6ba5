package rules

import (
	"sort"

	"github.com/sheinsight/transform-import-declaration-plugin/pkg/casing"
)

// Placeholder is the token in an output template that is replaced by the
// case-converted symbol name.
const Placeholder = "{{ filename }}"

// Rule rewrites named imports of one source module into per-symbol imports.
type Rule struct {
	// Source is the barrel module name, compared exactly against import sources.
	Source string
	// Filename is the case style applied to the symbol name before substitution.
	Filename casing.Case
	// Output holds the path templates. Output[0] is the primary import and
	// the rest are side-effect imports. Validate rejects an empty list.
	Output []string
	// Specifier is the shape of the synthesized primary import.
	Specifier SpecifierType
	// Include, when non-nil, restricts the rule to the listed names.
	Include NameSet
	// Exclude, when non-nil, skips the listed names. Mutually exclusive with Include.
	Exclude NameSet
}

// Matches reports whether the rule applies to the given local binding name.
func (r *Rule) Matches(name string) bool {
	if r.Include != nil {
		return r.Include.Has(name)
	}
	if r.Exclude != nil {
		return !r.Exclude.Has(name)
	}
	return true
}

// NameSet is a set of symbol names. A nil NameSet means "not configured";
// a non-nil empty set is configured and contains nothing.
type NameSet map[string]struct{}

// NewNameSet builds a non-nil set from names.
func NewNameSet(names ...string) NameSet {
	s := make(NameSet, len(names))
	for _, n := range names {
		s[n] = struct{}{}
	}
	return s
}

// Has reports whether name is in the set.
func (s NameSet) Has(name string) bool {
	_, ok := s[name]
	return ok
}

// Names returns the set members sorted.
func (s NameSet) Names() []string {
	if s == nil {
		return nil
	}
	names := make([]string, 0, len(s))
	for n := range s {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}
