package rules

// Info is a flat, serializable description of one rule for listings.
type Info struct {
	Index     int      `json:"index" yaml:"index"`
	Source    string   `json:"source" yaml:"source"`
	Filename  string   `json:"filename" yaml:"filename"`
	Specifier string   `json:"specifier" yaml:"specifier"`
	Output    []string `json:"output" yaml:"output"`
	Filter    string   `json:"filter" yaml:"filter"` // "include", "exclude" or "none"
	Names     []string `json:"names,omitempty" yaml:"names,omitempty"`
}

// Describe returns one Info per rule, in table order.
func (t *Table) Describe() []Info {
	infos := make([]Info, 0, t.Len())
	for i, r := range t.Rules() {
		info := Info{
			Index:     i,
			Source:    r.Source,
			Filename:  r.Filename.String(),
			Specifier: r.Specifier.String(),
			Output:    append([]string(nil), r.Output...),
			Filter:    "none",
		}
		switch {
		case r.Include != nil:
			info.Filter = "include"
			info.Names = r.Include.Names()
		case r.Exclude != nil:
			info.Filter = "exclude"
			info.Names = r.Exclude.Names()
		}
		infos = append(infos, info)
	}
	return infos
}
