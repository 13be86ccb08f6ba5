// Package casing converts identifiers into filename case styles.
package casing

import (
	"fmt"
	"strings"
)

// Case selects a filename case style.
type Case int

const (
	_ Case = iota
	// KebabCase joins lowercase words with '-'.
	// i.e.: date-picker
	KebabCase
	// CamelCase lowercases the first word and capitalizes the rest, without separator.
	// i.e.: datePicker
	CamelCase
	// SnakeCase joins lowercase words with '_'.
	// i.e.: date_picker
	SnakeCase
	// PascalCase capitalizes every word, without separator.
	// i.e.: DatePicker
	PascalCase
)

// Cases lists every valid Case in declaration order.
var Cases = []Case{KebabCase, CamelCase, SnakeCase, PascalCase}

// String returns the configuration name of the case.
func (c Case) String() string {
	switch c {
	case KebabCase:
		return "kebabCase"
	case CamelCase:
		return "camelCase"
	case SnakeCase:
		return "snakeCase"
	case PascalCase:
		return "pascalCase"
	}
	return "unknown"
}

// Valid reports whether c is one of the declared cases.
func (c Case) Valid() bool {
	return c >= KebabCase && c <= PascalCase
}

// Parse converts a configuration name into a Case. Names are case-sensitive.
func Parse(s string) (Case, error) {
	for _, c := range Cases {
		if c.String() == s {
			return c, nil
		}
	}
	return 0, &UnknownCaseError{Name: s}
}

// MarshalText implements encoding.TextMarshaler.
func (c Case) MarshalText() ([]byte, error) {
	if !c.Valid() {
		return nil, fmt.Errorf("invalid filename case %d", int(c))
	}
	return []byte(c.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (c *Case) UnmarshalText(text []byte) error {
	parsed, err := Parse(string(text))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

// UnknownCaseError is returned when a case name is not recognized.
type UnknownCaseError struct {
	Name string
}

func (e *UnknownCaseError) Error() string {
	names := make([]string, len(Cases))
	for i, c := range Cases {
		names[i] = c.String()
	}
	return fmt.Sprintf("unknown filename case %q, must be one of: %s", e.Name, strings.Join(names, ", "))
}
