package commands

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/sheinsight/transform-import-declaration-plugin/internal/cli/config"
	"github.com/sheinsight/transform-import-declaration-plugin/pkg/rules"
)

const twoRules = `{
  "config": [
    {"source": "antd", "filename": "kebabCase", "output": ["antd/es/{{ filename }}"], "exclude": ["Tooltip"]},
    {"source": "lodash", "filename": "camelCase", "output": ["lodash/{{ filename }}"], "specifier": "named"}
  ]
}`

type rulesOutput struct {
	Rules []rules.Info `json:"rules" yaml:"rules"`
}

func TestNewRulesCommand(t *testing.T) {
	cmd := NewRulesCommand()

	assert.Equal(t, "rules", cmd.Use)
	assert.NotEmpty(t, cmd.Short, "Short should not be empty")
	assert.NotEmpty(t, cmd.Example, "Example should not be empty")

	flags := []string{"source", "format"}
	for _, flag := range flags {
		assert.NotNil(t, cmd.Flags().Lookup(flag), "flag %q should exist", flag)
	}
}

func TestRulesCommand_JSON(t *testing.T) {
	setupProject(t, map[string]string{config.DefaultRulesFile: twoRules})

	stdout, _, err := execute(NewRulesCommand(), "--format", "json")
	require.NoError(t, err)

	var result rulesOutput
	require.NoError(t, json.Unmarshal([]byte(stdout), &result))
	require.Len(t, result.Rules, 2)

	assert.Equal(t, rules.Info{
		Index:     0,
		Source:    "antd",
		Filename:  "kebabCase",
		Specifier: "default",
		Output:    []string{"antd/es/{{ filename }}"},
		Filter:    "exclude",
		Names:     []string{"Tooltip"},
	}, result.Rules[0])
	assert.Equal(t, "lodash", result.Rules[1].Source)
	assert.Equal(t, "named", result.Rules[1].Specifier)
	assert.Equal(t, "none", result.Rules[1].Filter)
}

func TestRulesCommand_FilterBySource(t *testing.T) {
	setupProject(t, map[string]string{config.DefaultRulesFile: twoRules})

	stdout, _, err := execute(NewRulesCommand(), "--source", "lodash", "--format", "yaml")
	require.NoError(t, err)

	var result rulesOutput
	require.NoError(t, yaml.Unmarshal([]byte(stdout), &result))
	require.Len(t, result.Rules, 1)
	assert.Equal(t, 1, result.Rules[0].Index)
	assert.Equal(t, "lodash", result.Rules[0].Source)
}

func TestRulesCommand_Text(t *testing.T) {
	setupProject(t, map[string]string{config.DefaultRulesFile: twoRules})

	stdout, _, err := execute(NewRulesCommand(), "--format", "text")
	require.NoError(t, err)

	assert.Contains(t, stdout, "Source")
	assert.Contains(t, stdout, "antd/es/{{ filename }}")
	assert.Contains(t, stdout, "exclude: Tooltip")
	assert.Contains(t, stdout, "2 rules from")
}

func TestRulesCommand_InvalidRules(t *testing.T) {
	setupProject(t, map[string]string{config.DefaultRulesFile: `{"config": "antd"}`})

	_, _, err := execute(NewRulesCommand())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid rules payload")
}

func TestDescribeFilter(t *testing.T) {
	tests := []struct {
		name string
		info rules.Info
		want string
	}{
		{name: "none", info: rules.Info{Filter: "none"}, want: "-"},
		{name: "include", info: rules.Info{Filter: "include", Names: []string{"A", "B"}}, want: "include: A, B"},
		{name: "empty exclude", info: rules.Info{Filter: "exclude"}, want: "exclude (empty)"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, describeFilter(tt.info))
		})
	}
}
