package rules

import (
	"fmt"
	"strings"
)

// SpecifierType selects the shape of a synthesized primary import.
type SpecifierType int

const (
	// SpecifierDefault synthesizes: import Name from "path"
	SpecifierDefault SpecifierType = iota
	// SpecifierNamed synthesizes: import { Name } from "path"
	SpecifierNamed
	// SpecifierNamespace synthesizes: import * as Name from "path"
	SpecifierNamespace
)

// SpecifierTypes lists every valid SpecifierType in declaration order.
var SpecifierTypes = []SpecifierType{SpecifierDefault, SpecifierNamed, SpecifierNamespace}

// String returns the configuration name of the specifier type.
func (s SpecifierType) String() string {
	switch s {
	case SpecifierDefault:
		return "default"
	case SpecifierNamed:
		return "named"
	case SpecifierNamespace:
		return "namespace"
	default:
		return "unknown"
	}
}

// ParseSpecifierType converts a configuration name into a SpecifierType.
func ParseSpecifierType(s string) (SpecifierType, error) {
	for _, st := range SpecifierTypes {
		if st.String() == s {
			return st, nil
		}
	}
	names := make([]string, len(SpecifierTypes))
	for i, st := range SpecifierTypes {
		names[i] = st.String()
	}
	return SpecifierDefault, fmt.Errorf("unknown specifier type %q, must be one of: %s", s, strings.Join(names, ", "))
}

// MarshalText implements encoding.TextMarshaler.
func (s SpecifierType) MarshalText() ([]byte, error) {
	if s < SpecifierDefault || s > SpecifierNamespace {
		return nil, fmt.Errorf("invalid specifier type %d", int(s))
	}
	return []byte(s.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (s *SpecifierType) UnmarshalText(text []byte) error {
	parsed, err := ParseSpecifierType(string(text))
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}
