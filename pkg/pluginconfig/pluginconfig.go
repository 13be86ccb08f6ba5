// Package pluginconfig decodes the rewrite rule payload.
//
// The payload is JSON or YAML:
//
//	{ "config": [
//	    { "source": "antd",
//	      "filename": "kebabCase",
//	      "output": ["antd/es/{{ filename }}.js", "antd/es/{{ filename }}/style/css"],
//	      "specifier": "default",
//	      "exclude": ["Button"] } ],
//	  "keepUnmatched": false,
//	  "skipTypeOnly": false }
//
// Decoding is strict: unknown fields, missing required fields, an empty
// output list and unknown enum names are errors, and so is a rule that sets
// both include and exclude. A payload that decodes is ready to use.
package pluginconfig

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"

	"github.com/go-viper/mapstructure/v2"
	"gopkg.in/yaml.v3"

	"github.com/sheinsight/transform-import-declaration-plugin/pkg/casing"
	"github.com/sheinsight/transform-import-declaration-plugin/pkg/rewrite"
	"github.com/sheinsight/transform-import-declaration-plugin/pkg/rules"
)

// Config is a decoded, validated payload.
type Config struct {
	Rules         []rules.Rule
	KeepUnmatched bool
	SkipTypeOnly  bool
}

// payload mirrors the top level of the wire format.
type payload struct {
	Config        []any `json:"config"`
	KeepUnmatched bool  `json:"keepUnmatched"`
	SkipTypeOnly  bool  `json:"skipTypeOnly"`
}

// ruleSpec mirrors one entry of the "config" list.
type ruleSpec struct {
	Source    string    `json:"source" yaml:"source"`
	Filename  string    `json:"filename" yaml:"filename"`
	Output    []string  `json:"output" yaml:"output"`
	Specifier string    `json:"specifier,omitempty" yaml:"specifier,omitempty"`
	Include   *[]string `json:"include,omitempty" yaml:"include,omitempty"`
	Exclude   *[]string `json:"exclude,omitempty" yaml:"exclude,omitempty"`
}

var requiredRuleFields = []string{"source", "filename", "output"}

// Load reads and decodes a payload file.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path) //nolint:gosec // path comes from the user's own configuration
	if err != nil {
		return nil, fmt.Errorf("failed to read rules file: %w", err)
	}
	cfg, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Parse decodes a JSON or YAML payload.
func Parse(data []byte) (*Config, error) {
	raw, err := unmarshalGeneric(data)
	if err != nil {
		return nil, err
	}

	if !present(raw, "config") {
		return nil, &SyntaxError{Message: `missing required field "config"`}
	}
	var top payload
	if err := decode(raw, &top); err != nil {
		return nil, &SyntaxError{Message: err.Error()}
	}

	cfg := &Config{
		Rules:         make([]rules.Rule, 0, len(top.Config)),
		KeepUnmatched: top.KeepUnmatched,
		SkipTypeOnly:  top.SkipTypeOnly,
	}
	for i, entry := range top.Config {
		r, err := decodeRule(i, entry)
		if err != nil {
			return nil, err
		}
		cfg.Rules = append(cfg.Rules, r)
	}

	if err := rules.Validate(cfg.Rules); err != nil {
		return nil, err
	}
	return cfg, nil
}

func decodeRule(index int, entry any) (rules.Rule, error) {
	if _, ok := entry.(map[string]any); !ok {
		return rules.Rule{}, &FieldError{Index: index, Message: fmt.Sprintf("expected an object, got %T", entry)}
	}

	for _, field := range requiredRuleFields {
		if !present(entry, field) {
			return rules.Rule{}, &FieldError{Index: index, Source: sourceOf(entry), Field: field, Message: "missing required field"}
		}
	}

	var spec ruleSpec
	if err := decode(entry, &spec); err != nil {
		return rules.Rule{}, &FieldError{Index: index, Source: sourceOf(entry), Message: err.Error()}
	}
	if len(spec.Output) == 0 {
		return rules.Rule{}, &FieldError{Index: index, Source: spec.Source, Field: "output", Message: "must contain at least one template"}
	}

	filename, err := casing.Parse(spec.Filename)
	if err != nil {
		return rules.Rule{}, &FieldError{Index: index, Source: spec.Source, Field: "filename", Message: err.Error()}
	}

	specifier := rules.SpecifierDefault
	if spec.Specifier != "" {
		specifier, err = rules.ParseSpecifierType(spec.Specifier)
		if err != nil {
			return rules.Rule{}, &FieldError{Index: index, Source: spec.Source, Field: "specifier", Message: err.Error()}
		}
	}

	r := rules.Rule{
		Source:    spec.Source,
		Filename:  filename,
		Output:    spec.Output,
		Specifier: specifier,
	}
	if spec.Include != nil {
		r.Include = rules.NewNameSet(*spec.Include...)
	}
	if spec.Exclude != nil {
		r.Exclude = rules.NewNameSet(*spec.Exclude...)
	}
	return r, nil
}

// unmarshalGeneric parses JSON when the document is a JSON object and YAML
// otherwise. YAML is a superset of JSON but rejects tab indentation, which
// JSON files commonly use.
func unmarshalGeneric(data []byte) (any, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return nil, &SyntaxError{Message: "empty payload"}
	}

	var raw any
	if trimmed[0] == '{' {
		if err := json.Unmarshal(trimmed, &raw); err != nil {
			return nil, &SyntaxError{Message: fmt.Sprintf("invalid JSON: %v", err)}
		}
	} else if err := yaml.Unmarshal(trimmed, &raw); err != nil {
		return nil, &SyntaxError{Message: fmt.Sprintf("invalid YAML: %v", err)}
	}

	if _, ok := raw.(map[string]any); !ok {
		return nil, &SyntaxError{Message: fmt.Sprintf("payload must be an object, got %T", raw)}
	}
	return raw, nil
}

// decode maps generic data onto out, rejecting unknown keys and loose type
// conversions.
func decode(input any, out any) error {
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		TagName:     "json",
		ErrorUnused: true,
		Result:      out,
	})
	if err != nil {
		return err
	}
	return dec.Decode(input)
}

// present reports whether key is set to a non-null value.
func present(obj any, key string) bool {
	m, ok := obj.(map[string]any)
	if !ok {
		return false
	}
	v, ok := m[key]
	return ok && v != nil
}

func sourceOf(entry any) string {
	if m, ok := entry.(map[string]any); ok {
		if s, ok := m["source"].(string); ok {
			return s
		}
	}
	return ""
}

// Table builds the validated rule table.
func (c *Config) Table() (*rules.Table, error) {
	return rules.NewTable(c.Rules)
}

// Options returns the rewrite options the payload selects.
func (c *Config) Options(logger *slog.Logger) rewrite.Options {
	return rewrite.Options{
		KeepUnmatched: c.KeepUnmatched,
		SkipTypeOnly:  c.SkipTypeOnly,
		Logger:        logger,
	}
}

// NewRewriter builds a rewriter from the payload.
func (c *Config) NewRewriter(logger *slog.Logger) (*rewrite.Rewriter, error) {
	table, err := c.Table()
	if err != nil {
		return nil, err
	}
	return rewrite.New(table, c.Options(logger)), nil
}
