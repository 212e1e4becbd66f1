package view

import (
	"fmt"
	"time"

	"craftmon/internal/screen"
)

// OptionType is the declared type of a view option.
type OptionType string

const (
	OptionString   OptionType = "string"
	OptionInt      OptionType = "int"
	OptionBool     OptionType = "bool"
	OptionDuration OptionType = "duration"
	OptionColor    OptionType = "color"
)

// OptionSpec declares one option a view accepts.
type OptionSpec struct {
	Key         string
	Type        OptionType
	Default     interface{}
	Description string
}

func (s OptionSpec) validate() error {
	if s.Key == "" {
		return fmt.Errorf("option with empty key")
	}
	switch s.Type {
	case OptionString, OptionInt, OptionBool, OptionDuration, OptionColor:
	default:
		return fmt.Errorf("option %s: unknown type %q", s.Key, s.Type)
	}
	if s.Default != nil {
		if _, err := coerce(s.Type, s.Default); err != nil {
			return fmt.Errorf("option %s: bad default: %w", s.Key, err)
		}
	}
	return nil
}

// Options holds resolved, typed option values for one view instance.
type Options map[string]interface{}

// ResolveOptions checks raw config values against the schema, applies
// defaults and coerces YAML's loose types. Unknown keys are an error so a
// typo in the config surfaces instead of silently using a default.
func ResolveOptions(schema []OptionSpec, raw map[string]interface{}) (Options, error) {
	specs := make(map[string]OptionSpec, len(schema))
	out := make(Options, len(schema))
	for _, s := range schema {
		specs[s.Key] = s
		if s.Default != nil {
			v, err := coerce(s.Type, s.Default)
			if err != nil {
				return nil, fmt.Errorf("option %s: %w", s.Key, err)
			}
			out[s.Key] = v
		}
	}
	for k, rawVal := range raw {
		s, ok := specs[k]
		if !ok {
			return nil, fmt.Errorf("unknown option %q", k)
		}
		v, err := coerce(s.Type, rawVal)
		if err != nil {
			return nil, fmt.Errorf("option %s: %w", k, err)
		}
		out[k] = v
	}
	return out, nil
}

func coerce(t OptionType, v interface{}) (interface{}, error) {
	switch t {
	case OptionString:
		s, ok := v.(string)
		if !ok {
			return nil, fmt.Errorf("want string, got %T", v)
		}
		return s, nil
	case OptionInt:
		switch n := v.(type) {
		case int:
			return n, nil
		case int64:
			return int(n), nil
		case float64:
			if n == float64(int(n)) {
				return int(n), nil
			}
			return nil, fmt.Errorf("want integer, got %v", n)
		default:
			return nil, fmt.Errorf("want int, got %T", v)
		}
	case OptionBool:
		b, ok := v.(bool)
		if !ok {
			return nil, fmt.Errorf("want bool, got %T", v)
		}
		return b, nil
	case OptionDuration:
		switch d := v.(type) {
		case time.Duration:
			return d, nil
		case string:
			parsed, err := time.ParseDuration(d)
			if err != nil {
				return nil, fmt.Errorf("bad duration %q", d)
			}
			return parsed, nil
		default:
			return nil, fmt.Errorf("want duration string, got %T", v)
		}
	case OptionColor:
		switch c := v.(type) {
		case screen.Color:
			return c, nil
		case string:
			col, ok := screen.ParseColor(c)
			if !ok {
				return nil, fmt.Errorf("unknown color %q", c)
			}
			return col, nil
		default:
			return nil, fmt.Errorf("want color name, got %T", v)
		}
	}
	return nil, fmt.Errorf("unknown option type %q", t)
}

// String returns a string option, or def when absent.
func (o Options) String(key, def string) string {
	if v, ok := o[key].(string); ok {
		return v
	}
	return def
}

// Int returns an int option, or def when absent.
func (o Options) Int(key string, def int) int {
	if v, ok := o[key].(int); ok {
		return v
	}
	return def
}

// Bool returns a bool option, or def when absent.
func (o Options) Bool(key string, def bool) bool {
	if v, ok := o[key].(bool); ok {
		return v
	}
	return def
}

// Duration returns a duration option, or def when absent.
func (o Options) Duration(key string, def time.Duration) time.Duration {
	if v, ok := o[key].(time.Duration); ok {
		return v
	}
	return def
}

// Color returns a color option, or def when absent.
func (o Options) Color(key string, def screen.Color) screen.Color {
	if v, ok := o[key].(screen.Color); ok {
		return v
	}
	return def
}
