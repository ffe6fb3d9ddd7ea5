package analysis

import (
	"fmt"
	"strings"
)

// MalformedOutputError indicates the normalizer could not recover JSON from
// the model's raw output. Raw carries the offending text for diagnostics.
type MalformedOutputError struct {
	Raw string
}

func (e *MalformedOutputError) Error() string {
	snippet := e.Raw
	if len(snippet) > 200 {
		snippet = snippet[:200] + "..."
	}
	return fmt.Sprintf("unable to recover JSON from model output: %q", snippet)
}

// SchemaViolationError indicates parsed JSON failed field-level contracts.
// Fields names every offending field; Details holds one message per
// violation in the same order.
type SchemaViolationError struct {
	Fields  []string
	Details []string
}

func (e *SchemaViolationError) Error() string {
	return "schema violation: " + strings.Join(e.Details, "; ")
}

// HasField reports whether the violation names the given field.
func (e *SchemaViolationError) HasField(field string) bool {
	for _, f := range e.Fields {
		if f == field {
			return true
		}
	}
	return false
}

// InputError indicates a transcript failed plausibility checks before any
// provider call was made.
type InputError struct {
	Reason string
}

func (e *InputError) Error() string {
	return "invalid transcript: " + e.Reason
}
