package domain

import (
	"reflect"
	"strconv"
)

// Condition gates a question on a previously collected answer.
//
// At most one of Equals, NotEquals or Contains should be set (the registry
// rejects trees that set more than one); a nil operand means unset. When no
// operand is set the condition is vacuously true. Contains checks membership
// when the referenced answer is a sequence.
type Condition struct {
	Field     string `json:"field" yaml:"field" mapstructure:"field"`
	Equals    any    `json:"equals,omitempty" yaml:"equals,omitempty" mapstructure:"equals"`
	NotEquals any    `json:"not_equals,omitempty" yaml:"not_equals,omitempty" mapstructure:"not_equals"`
	Contains  any    `json:"contains,omitempty" yaml:"contains,omitempty" mapstructure:"contains"`
}

// Matches evaluates the condition against the current answer set.
// A nil condition is vacuously true.
//
// Operands are checked in fixed priority: Equals, NotEquals, Contains.
// Equals fails when the field is unanswered; NotEquals holds when the field
// is unanswered (there is no value to collide with).
func (c *Condition) Matches(answers map[string]any) bool {
	if c == nil {
		return true
	}

	value, answered := answers[c.Field]

	switch {
	case c.Equals != nil:
		return answered && looseEqual(value, c.Equals)
	case c.NotEquals != nil:
		return !answered || !looseEqual(value, c.NotEquals)
	case c.Contains != nil:
		seq, ok := Sequence(value)
		if !ok {
			return false
		}
		for _, item := range seq {
			if looseEqual(item, c.Contains) {
				return true
			}
		}
		return false
	}

	return true
}

// looseEqual compares two answer values, normalizing numeric representations.
// JSON decodes numbers as float64 while YAML produces int; treating 200 and
// 200.0 as different values would silently break branching.
func looseEqual(a, b any) bool {
	if af, aok := toFloat(a); aok {
		if bf, bok := toFloat(b); bok {
			return af == bf
		}
		return false
	}
	return reflect.DeepEqual(a, b)
}

// toFloat converts the numeric types produced by JSON and YAML decoding.
// Strings are deliberately excluded: "200" stays a string.
func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint:
		return float64(n), true
	case uint64:
		return float64(n), true
	default:
		return 0, false
	}
}

// ParseNumber converts any answer value to a number, accepting the string
// forms users type into a number field.
func ParseNumber(v any) (float64, bool) {
	if f, ok := toFloat(v); ok {
		return f, true
	}
	if s, ok := v.(string); ok {
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return 0, false
		}
		return f, true
	}
	return 0, false
}

// Sequence normalizes the slice shapes produced by JSON ([]any) and
// YAML/typed callers ([]string).
func Sequence(v any) ([]any, bool) {
	switch s := v.(type) {
	case []any:
		return s, true
	case []string:
		out := make([]any, len(s))
		for i, item := range s {
			out[i] = item
		}
		return out, true
	default:
		return nil, false
	}
}
