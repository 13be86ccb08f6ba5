package pluginconfig

import (
	"encoding/json"

	"gopkg.in/yaml.v3"

	"github.com/sheinsight/transform-import-declaration-plugin/pkg/rules"
)

// document is the marshalling form of Config.
type document struct {
	Config        []ruleSpec `json:"config" yaml:"config"`
	KeepUnmatched bool       `json:"keepUnmatched,omitempty" yaml:"keepUnmatched,omitempty"`
	SkipTypeOnly  bool       `json:"skipTypeOnly,omitempty" yaml:"skipTypeOnly,omitempty"`
}

func (c *Config) document() document {
	doc := document{
		Config:        make([]ruleSpec, len(c.Rules)),
		KeepUnmatched: c.KeepUnmatched,
		SkipTypeOnly:  c.SkipTypeOnly,
	}
	for i, r := range c.Rules {
		doc.Config[i] = ruleSpec{
			Source:    r.Source,
			Filename:  r.Filename.String(),
			Output:    r.Output,
			Specifier: r.Specifier.String(),
			Include:   filterNames(r.Include),
			Exclude:   filterNames(r.Exclude),
		}
	}
	return doc
}

// MarshalJSON encodes the payload in its wire format.
func (c *Config) MarshalJSON() ([]byte, error) {
	return json.Marshal(c.document())
}

// MarshalYAML implements yaml.Marshaler.
func (c *Config) MarshalYAML() (any, error) {
	return c.document(), nil
}

// EncodeYAML renders the payload as a YAML document.
func (c *Config) EncodeYAML() ([]byte, error) {
	return yaml.Marshal(c)
}

// filterNames keeps the nil/empty distinction of a NameSet.
func filterNames(s rules.NameSet) *[]string {
	if s == nil {
		return nil
	}
	names := s.Names()
	return &names
}
