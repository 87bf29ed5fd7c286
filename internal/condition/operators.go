// Package condition evaluates, edits and describes the visibility conditions
// attached to notebook fields and sections.
package condition

import "github.com/fieldmark/designer/internal/notebook"

// Field operators.
const (
	Equal               = "equal"
	NotEqual            = "not-equal"
	Greater             = "greater"
	GreaterEqual        = "greater-equal"
	Less                = "less"
	LessEqual           = "less-equal"
	Regex               = "regex"
	Contains            = "contains"
	DoesNotContain      = "does-not-contain"
	ContainsRegex       = "contains-regex"
	DoesNotContainRegex = "does-not-contain-regex"
	ContainsOneOf       = "contains-one-of"
	DoesNotContainAnyOf = "does-not-contain-any-of"
	ContainsAllOf       = "contains-all-of"
	DoesNotContainAllOf = "does-not-contain-all-of"
	And                 = notebook.OperatorAnd
	Or                  = notebook.OperatorOr
)

// phrases is the fixed operator → English table used by Translate.
var phrases = map[string]string{
	Equal:               "Equal to",
	NotEqual:            "Not equal to",
	Greater:             "Greater than",
	GreaterEqual:        "Greater than or equal",
	Less:                "Less than",
	LessEqual:           "Less than or equal",
	Regex:               "Matches regular expression",
	Contains:            "List contains this value",
	DoesNotContain:      "List does not contain this value",
	ContainsRegex:       "List contains a value matching this regex",
	DoesNotContainRegex: "List does not contain any value matching this regex",
	ContainsOneOf:       "List contains one of these values",
	DoesNotContainAnyOf: "List does not contain any of these values",
	ContainsAllOf:       "List contains all of these values",
	DoesNotContainAllOf: "List does not contain all of these values",
}

// operatorOrder lists the field operators in display order.
var operatorOrder = []string{
	Equal, NotEqual, Greater, GreaterEqual, Less, LessEqual, Regex,
	Contains, DoesNotContain, ContainsRegex, DoesNotContainRegex,
	ContainsOneOf, DoesNotContainAnyOf, ContainsAllOf, DoesNotContainAllOf,
}

// Phrase returns the display phrase for op.
func Phrase(op string) (string, bool) {
	p, ok := phrases[op]
	return p, ok
}

// Operators returns every field operator in display order.
func Operators() []string {
	return append([]string(nil), operatorOrder...)
}

// IsBooleanOperator reports whether op combines child conditions.
func IsBooleanOperator(op string) bool {
	return op == And || op == Or
}

// AllowedOperators returns the operators the editor offers for a target
// field, driven by its component name.
func AllowedOperators(f *notebook.Field) []string {
	if f == nil {
		return nil
	}
	switch f.ComponentName {
	case "MultiSelect":
		return []string{ContainsOneOf, DoesNotContainAnyOf, ContainsAllOf, DoesNotContainAllOf}
	case "Checkbox":
		return []string{Equal}
	case "Select", "RadioGroup":
		return []string{Equal, NotEqual}
	default:
		return []string{Equal, NotEqual, Greater, Less, Contains, Regex}
	}
}
