package exportcmd

import (
	"errors"
	"fmt"
	"strings"

	"github.com/gantryci/gantry/pkg/buildvalues"
)

// ErrInvalidOverride indicates an override argument is not NAME=VALUE.
var ErrInvalidOverride = errors.New("invalid override")

// Override replaces or appends one named value across the tasks of a run.
type Override struct {
	Name  string
	Value string
}

// ParseOverride parses a NAME=VALUE argument.
func ParseOverride(s string) (Override, error) {
	name, value, ok := strings.Cut(s, "=")
	if !ok || name == "" {
		return Override{}, fmt.Errorf("%w: %q (want NAME=VALUE)", ErrInvalidOverride, s)
	}

	return Override{Name: name, Value: value}, nil
}

// ApplyOverrides returns values with overrides applied. An override replaces
// every value sharing its name in place, preserving each value's configured
// encoding; otherwise it appends a literal value. Appended values keep
// override order.
func ApplyOverrides(values []buildvalues.NamedValue, overrides []Override) []buildvalues.NamedValue {
	if len(overrides) == 0 {
		return values
	}

	out := make([]buildvalues.NamedValue, len(values))
	copy(out, values)

	for _, ov := range overrides {
		replaced := false

		for i := range out {
			if out[i].Name == ov.Name {
				out[i].Value = ov.Value
				replaced = true
			}
		}

		if !replaced {
			out = append(out, buildvalues.NamedValue{Name: ov.Name, Value: ov.Value})
		}
	}

	return out
}

// ApplyEscapes returns values with entity-escaped serialization forced on
// every value whose name is listed.
func ApplyEscapes(values []buildvalues.NamedValue, names []string) []buildvalues.NamedValue {
	if len(names) == 0 {
		return values
	}

	escape := make(map[string]bool, len(names))
	for _, name := range names {
		escape[name] = true
	}

	out := make([]buildvalues.NamedValue, len(values))
	copy(out, values)

	for i := range out {
		if escape[out[i].Name] {
			out[i].Escaped = true
		}
	}

	return out
}
