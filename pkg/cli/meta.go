package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/breftejk/GraphicsEditor/pkg/imaging"
)

// ParamType is a small enum for parameter types used in metadata.
type ParamType string

const (
	ParamTypeInt     ParamType = "int"
	ParamTypeFloat   ParamType = "float"
	ParamTypeBool    ParamType = "bool"
	ParamTypeString  ParamType = "string"
	ParamTypeEnum    ParamType = "enum"
	ParamTypePercent ParamType = "percent"
)

// ValidationRule is a machine-friendly representation of the constraints
// that a UI or client can use to validate input before invoking a command.
type ValidationRule struct {
	Type        ParamType `json:"type"`
	Required    bool      `json:"required"`
	Min         *float64  `json:"min,omitempty"`
	Max         *float64  `json:"max,omitempty"`
	EnumOptions []string  `json:"enumOptions,omitempty"` // valid when Type == ParamTypeEnum
	Example     string    `json:"example,omitempty"`
	Hint        string    `json:"hint,omitempty"`
}

// parseBoolLikeToString accepts common truthy/falsy forms and returns "true"/"false".
func parseBoolLikeToString(s string) (string, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "1", "t", "true", "y", "yes", "on":
		return "true", nil
	case "0", "f", "false", "n", "no", "off":
		return "false", nil
	default:
		return "", fmt.Errorf("invalid boolean: %q", s)
	}
}

// parsePercentValue parses a percent string like "30%" or a bare number and
// returns a numeric string.
func parsePercentValue(s string) (string, error) {
	s = strings.TrimSpace(s)
	if strings.HasSuffix(s, "%") {
		raw := strings.TrimSuffix(s, "%")
		f, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return "", fmt.Errorf("invalid percent value: %q", s)
		}
		return strconv.FormatFloat(f, 'f', -1, 64), nil
	}
	if _, err := strconv.ParseFloat(s, 64); err != nil {
		return "", fmt.Errorf("invalid percent/float value: %q", s)
	}
	return s, nil
}

// GenerateTooltip produces a tooltip string from an imaging.CommandSpec.
func GenerateTooltip(c imaging.CommandSpec) string {
	var sb strings.Builder
	if c.Description != "" {
		sb.WriteString(c.Description)
	} else {
		sb.WriteString("No description")
	}
	if c.Usage != "" {
		sb.WriteString("\nusage: " + c.Usage)
	}
	if len(c.Args) == 0 {
		return sb.String()
	}
	sb.WriteString("\nparameters:\n")
	for _, a := range c.Args {
		req := "optional"
		if a.Required {
			req = "required"
		}
		sb.WriteString(fmt.Sprintf("- %s (%s, %s)", a.Name, a.Type, req))
		if a.Description != "" {
			sb.WriteString(": " + a.Description)
		}
		if a.Default != "" {
			sb.WriteString(" (default: " + a.Default + ")")
		}
		sb.WriteString("\n")
	}
	return strings.TrimSpace(sb.String())
}

// GenerateValidationRules creates ValidationRule entries from an imaging.CommandSpec.
func GenerateValidationRules(c imaging.CommandSpec) map[string]ValidationRule {
	rules := make(map[string]ValidationRule, len(c.Args))
	for _, a := range c.Args {
		at := strings.ToLower(a.Type)
		var t ParamType
		switch {
		case at == "int":
			t = ParamTypeInt
		case at == "float":
			t = ParamTypeFloat
		case at == "bool":
			t = ParamTypeBool
		case strings.Contains(at, "percent"):
			t = ParamTypePercent
		case at == "enum":
			t = ParamTypeEnum
		default:
			t = ParamTypeString
		}
		rules[a.Name] = ValidationRule{Type: t, Required: a.Required, Hint: a.Description, Example: a.Default}
	}
	return rules
}

// MetaStore indexes the engine command registry by name for lookups and
// argument validation.
type MetaStore struct {
	Commands []imaging.CommandSpec
	byName   map[string]imaging.CommandSpec
}

// NewMetaStore builds a MetaStore from a command list.
func NewMetaStore(cmds []imaging.CommandSpec) *MetaStore {
	m := &MetaStore{Commands: cmds, byName: make(map[string]imaging.CommandSpec, len(cmds))}
	for _, c := range cmds {
		m.byName[c.Name] = c
	}
	return m
}

// Lookup returns the command spec for name.
func (m *MetaStore) Lookup(name string) (imaging.CommandSpec, bool) {
	c, ok := m.byName[name]
	return c, ok
}

// GetCommandHelp returns both tooltip and validation rules for a command.
func (m *MetaStore) GetCommandHelp(name string) (string, map[string]ValidationRule, error) {
	c, ok := m.byName[name]
	if !ok {
		return "", nil, fmt.Errorf("unknown command: %s", name)
	}
	return GenerateTooltip(c), GenerateValidationRules(c), nil
}

// NormalizeArgs validates and canonicalizes raw argument strings against the
// command's metadata. Defaults are substituted for empty optional parameters
// so the engine always receives a complete argument vector.
func NormalizeArgs(store *MetaStore, cmdName string, args []string) ([]string, error) {
	if store == nil {
		return nil, fmt.Errorf("metadata store is nil")
	}
	c, ok := store.byName[cmdName]
	if !ok {
		return nil, fmt.Errorf("unknown command: %s", cmdName)
	}
	rules := GenerateValidationRules(c)
	out := make([]string, len(c.Args))
	for i, a := range c.Args {
		var raw string
		if i < len(args) {
			raw = strings.TrimSpace(args[i])
		}
		if raw == "" {
			if a.Required {
				return nil, fmt.Errorf("missing required parameter: %s", a.Name)
			}
			out[i] = a.Default
			continue
		}
		vr := rules[a.Name]
		switch vr.Type {
		case ParamTypeInt:
			v, err := strconv.ParseInt(raw, 10, 64)
			if err != nil {
				return nil, fmt.Errorf("parameter %s: expected integer, got %q", a.Name, raw)
			}
			out[i] = strconv.FormatInt(v, 10)
		case ParamTypeFloat:
			f, err := strconv.ParseFloat(raw, 64)
			if err != nil {
				return nil, fmt.Errorf("parameter %s: expected float, got %q", a.Name, raw)
			}
			out[i] = strconv.FormatFloat(f, 'f', -1, 64)
		case ParamTypePercent:
			n, err := parsePercentValue(raw)
			if err != nil {
				return nil, fmt.Errorf("parameter %s: %w", a.Name, err)
			}
			out[i] = n
		case ParamTypeBool:
			bs, err := parseBoolLikeToString(raw)
			if err != nil {
				return nil, fmt.Errorf("parameter %s: %w", a.Name, err)
			}
			out[i] = bs
		case ParamTypeEnum:
			if mapped, ok := mapEnumAlias(a.Name, raw); ok {
				out[i] = mapped
				break
			}
			out[i] = raw
		case ParamTypeString:
			out[i] = raw
		default:
			return nil, fmt.Errorf("parameter %s: unsupported param type %q", a.Name, vr.Type)
		}
	}
	return out, nil
}

// Textual aliases accepted at the prompt for enum parameters. Values are the
// canonical names the engine expects.
var (
	thresholdMethodAliases = map[string]string{
		"manual":          "manual",
		"fixed":           "manual",
		"percent-black":   "percent-black",
		"percent":         "percent-black",
		"pct":             "percent-black",
		"isodata":         "isodata",
		"iterative":       "isodata",
		"entropy":         "entropy",
		"kapur":           "entropy",
		"min-error":       "min-error",
		"kittler":         "min-error",
		"fuzzy-min-error": "fuzzy-min-error",
		"fuzzy":           "fuzzy-min-error",
	}

	histogramChannelAliases = map[string]string{
		"gray":  "gray",
		"grey":  "gray",
		"red":   "red",
		"r":     "red",
		"green": "green",
		"g":     "green",
		"blue":  "blue",
		"b":     "blue",
		"rgb":   "rgb",
		"all":   "rgb",
	}

	ditherAlgorithmAliases = map[string]string{
		"floyd-steinberg": "floyd-steinberg",
		"fs":              "floyd-steinberg",
		"bayer":           "bayer",
		"ordered":         "bayer",
	}
)

// mapEnumAlias translates known textual enum aliases into the canonical value
// the engine expects. Unknown parameters or values are passed through so the
// engine can report the error itself.
func mapEnumAlias(paramName string, val string) (string, bool) {
	v := strings.ToLower(strings.TrimSpace(val))
	switch strings.ToLower(paramName) {
	case "method":
		if out, ok := thresholdMethodAliases[v]; ok {
			return out, true
		}
	case "channel":
		if out, ok := histogramChannelAliases[v]; ok {
			return out, true
		}
	case "algorithm":
		if out, ok := ditherAlgorithmAliases[v]; ok {
			return out, true
		}
	}
	return "", false
}
