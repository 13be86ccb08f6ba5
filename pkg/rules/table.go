package rules

import "fmt"

// Table is an ordered, validated collection of rules indexed by source.
// A Table never changes after NewTable returns and may be shared between
// goroutines.
type Table struct {
	rules    []Rule
	bySource map[string][]*Rule
}

// NewTable validates rs and builds a table from it. The slice is copied;
// NameSets are shared and must not be modified afterwards.
func NewTable(rs []Rule) (*Table, error) {
	if err := Validate(rs); err != nil {
		return nil, err
	}

	t := &Table{
		rules:    make([]Rule, len(rs)),
		bySource: make(map[string][]*Rule),
	}
	copy(t.rules, rs)
	for i := range t.rules {
		r := &t.rules[i]
		t.bySource[r.Source] = append(t.bySource[r.Source], r)
	}
	return t, nil
}

// Validate checks every rule in order and returns the first error found.
func Validate(rs []Rule) error {
	for i := range rs {
		if len(rs[i].Output) == 0 {
			return &EmptyOutputError{Index: i, Source: rs[i].Source}
		}
		if rs[i].Include != nil && rs[i].Exclude != nil {
			return &MutuallyExclusiveFilterError{Index: i, Source: rs[i].Source}
		}
	}
	return nil
}

// ForSource returns the rules whose source equals source, in table order.
// The returned slice must not be modified.
func (t *Table) ForSource(source string) []*Rule {
	if t == nil {
		return nil
	}
	return t.bySource[source]
}

// Rules returns a copy of the rules in table order.
func (t *Table) Rules() []Rule {
	if t == nil {
		return nil
	}
	out := make([]Rule, len(t.rules))
	copy(out, t.rules)
	return out
}

// Len returns the number of rules.
func (t *Table) Len() int {
	if t == nil {
		return 0
	}
	return len(t.rules)
}

// Sources returns the distinct sources in order of first appearance.
func (t *Table) Sources() []string {
	if t == nil {
		return nil
	}
	var sources []string
	seen := make(map[string]bool)
	for _, r := range t.rules {
		if !seen[r.Source] {
			seen[r.Source] = true
			sources = append(sources, r.Source)
		}
	}
	return sources
}

// MutuallyExclusiveFilterError is returned when a rule sets both include and exclude.
type MutuallyExclusiveFilterError struct {
	Index  int
	Source string
}

func (e *MutuallyExclusiveFilterError) Error() string {
	return fmt.Sprintf("config #%d (source: %q): 'include' and 'exclude' cannot be used together; "+
		"use 'include' to list the names to rewrite or 'exclude' to list the names to skip", e.Index, e.Source)
}

// EmptyOutputError is returned when a rule has no output templates.
type EmptyOutputError struct {
	Index  int
	Source string
}

func (e *EmptyOutputError) Error() string {
	return fmt.Sprintf("config #%d (source: %q): 'output' must contain at least one template", e.Index, e.Source)
}
