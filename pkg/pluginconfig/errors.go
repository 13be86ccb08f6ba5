package pluginconfig

import "fmt"

// SyntaxError is returned when the payload cannot be parsed or its top level
// is malformed.
type SyntaxError struct {
	Message string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("invalid rules payload: %s", e.Message)
}

// FieldError reports a malformed rule, identified by its index and source.
type FieldError struct {
	Index   int
	Source  string
	Field   string
	Message string
}

func (e *FieldError) Error() string {
	prefix := fmt.Sprintf("config #%d", e.Index)
	if e.Source != "" {
		prefix += fmt.Sprintf(" (source: %q)", e.Source)
	}
	if e.Field != "" {
		return fmt.Sprintf("%s: %s: %s", prefix, e.Field, e.Message)
	}
	return fmt.Sprintf("%s: %s", prefix, e.Message)
}
