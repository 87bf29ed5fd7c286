package condition

import (
	"encoding/json"
	"fmt"
	"reflect"
	"regexp"

	"github.com/fieldmark/designer/internal/notebook"
)

// Values maps field names to the values captured in a record.
type Values map[string]any

// Evaluate decides whether c holds for values. A nil condition, or a boolean
// condition with no children, always holds.
func Evaluate(c *notebook.Condition, values Values) (bool, error) {
	if c == nil {
		return true, nil
	}

	if c.IsBoolean() {
		return evaluateBoolean(c, values)
	}

	return evaluateField(c, values[c.Field])
}

func evaluateBoolean(c *notebook.Condition, values Values) (bool, error) {
	if len(c.Conditions) == 0 {
		return true, nil
	}

	for _, child := range c.Conditions {
		ok, err := Evaluate(child, values)
		if err != nil {
			return false, err
		}
		if c.Operator == And && !ok {
			return false, nil
		}
		if c.Operator == Or && ok {
			return true, nil
		}
	}
	return c.Operator == And, nil
}

func evaluateField(c *notebook.Condition, value any) (bool, error) {
	switch c.Operator {
	case Equal:
		return strictEqual(value, c.Value), nil
	case NotEqual:
		return !strictEqual(value, c.Value), nil
	case Greater, GreaterEqual, Less, LessEqual:
		cmp, ok := compare(value, c.Value)
		if !ok {
			return false, nil
		}
		switch c.Operator {
		case Greater:
			return cmp > 0, nil
		case GreaterEqual:
			return cmp >= 0, nil
		case Less:
			return cmp < 0, nil
		default:
			return cmp <= 0, nil
		}
	case Regex:
		if value == nil {
			return false, nil
		}
		re, err := compilePattern(c.Value)
		if err != nil {
			return false, err
		}
		return re.MatchString(fmt.Sprint(value)), nil
	case Contains:
		return containsValue(asList(value), c.Value), nil
	case DoesNotContain:
		return !containsValue(asList(value), c.Value), nil
	case ContainsRegex, DoesNotContainRegex:
		re, err := compilePattern(c.Value)
		if err != nil {
			return false, err
		}
		matched := false
		for _, item := range asList(value) {
			if re.MatchString(fmt.Sprint(item)) {
				matched = true
				break
			}
		}
		if c.Operator == ContainsRegex {
			return matched, nil
		}
		return !matched, nil
	case ContainsOneOf, DoesNotContainAnyOf:
		list := asList(value)
		found := false
		for _, want := range asList(c.Value) {
			if containsValue(list, want) {
				found = true
				break
			}
		}
		if c.Operator == ContainsOneOf {
			return found, nil
		}
		return !found, nil
	case ContainsAllOf, DoesNotContainAllOf:
		list := asList(value)
		all := true
		for _, want := range asList(c.Value) {
			if !containsValue(list, want) {
				all = false
				break
			}
		}
		if c.Operator == ContainsAllOf {
			return all, nil
		}
		return !all, nil
	default:
		return false, fmt.Errorf("unknown condition operator %q", c.Operator)
	}
}

func compilePattern(v any) (*regexp.Regexp, error) {
	pattern := fmt.Sprint(v)
	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, fmt.Errorf("invalid regular expression %q: %w", pattern, err)
	}
	return re, nil
}

// strictEqual compares like ===: numbers by value whatever their Go type,
// everything else by type and value.
func strictEqual(a, b any) bool {
	if x, ok := toNumber(a); ok {
		y, ok := toNumber(b)
		return ok && x == y
	}
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	if reflect.TypeOf(a) != reflect.TypeOf(b) {
		return false
	}
	return reflect.DeepEqual(a, b)
}

// compare orders two numbers numerically or two strings lexicographically.
func compare(a, b any) (int, bool) {
	if x, ok := toNumber(a); ok {
		y, ok := toNumber(b)
		if !ok {
			return 0, false
		}
		switch {
		case x < y:
			return -1, true
		case x > y:
			return 1, true
		}
		return 0, true
	}
	x, ok := a.(string)
	if !ok {
		return 0, false
	}
	y, ok := b.(string)
	if !ok {
		return 0, false
	}
	switch {
	case x < y:
		return -1, true
	case x > y:
		return 1, true
	}
	return 0, true
}

func toNumber(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int8:
		return float64(n), true
	case int16:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint:
		return float64(n), true
	case uint8:
		return float64(n), true
	case uint16:
		return float64(n), true
	case uint32:
		return float64(n), true
	case uint64:
		return float64(n), true
	case json.Number:
		f, err := n.Float64()
		return f, err == nil
	}
	return 0, false
}

// asList views a record value as a list; scalars become one element lists
// and nil becomes the empty list.
func asList(v any) []any {
	switch l := v.(type) {
	case nil:
		return nil
	case []any:
		return l
	case []string:
		out := make([]any, len(l))
		for i, s := range l {
			out[i] = s
		}
		return out
	}
	return []any{v}
}

func containsValue(list []any, want any) bool {
	for _, item := range list {
		if strictEqual(item, want) {
			return true
		}
	}
	return false
}
