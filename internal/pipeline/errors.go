package pipeline

import (
	"fmt"
	"strings"

	"roadIncidents/pkg/e"
)

type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError carries every rule violation found for a request.
type ValidationError struct {
	Failures []FieldError
}

func (v *ValidationError) Error() string {
	parts := make([]string, 0, len(v.Failures))
	for _, f := range v.Failures {
		parts = append(parts, fmt.Sprintf("%s: %s", f.Field, f.Message))
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

func (v *ValidationError) Is(target error) bool {
	return target == e.ErrInvalidInput
}

// Fields lists the failing field identifiers in first-encounter order.
func (v *ValidationError) Fields() []string {
	seen := make(map[string]struct{}, len(v.Failures))
	out := make([]string, 0, len(v.Failures))
	for _, f := range v.Failures {
		if _, ok := seen[f.Field]; ok {
			continue
		}
		seen[f.Field] = struct{}{}
		out = append(out, f.Field)
	}
	return out
}

// Errors groups messages by field, keeping encounter order within each field.
func (v *ValidationError) Errors() map[string][]string {
	out := make(map[string][]string, len(v.Failures))
	for _, f := range v.Failures {
		out[f.Field] = append(out[f.Field], f.Message)
	}
	return out
}
