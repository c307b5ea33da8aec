// Package contract compares an API response with the outcome a test expects, and reports every
// difference at once.
package contract

import (
	"fmt"

	"gopkg.in/launchdarkly/go-sdk-common.v2/ldvalue"
)

type matcherKind int

const (
	matchEquals matcherKind = iota
	matchNotNull
	matchNotEmpty
)

// Matcher is a condition on one top-level field of a JSON response body.
type Matcher struct {
	kind  matcherKind
	value ldvalue.Value
}

// Equals requires the field to be present and equal to value.
func Equals(value ldvalue.Value) Matcher { return Matcher{kind: matchEquals, value: value} }

func EqualsString(s string) Matcher { return Equals(ldvalue.String(s)) }

func EqualsBool(b bool) Matcher { return Equals(ldvalue.Bool(b)) }

// NotNull requires the field to be present with a non-null value.
func NotNull() Matcher { return Matcher{kind: matchNotNull} }

// NotEmpty requires the field to be an array or object with at least one element.
func NotEmpty() Matcher { return Matcher{kind: matchNotEmpty} }

func (m Matcher) String() string {
	switch m.kind {
	case matchEquals:
		return "equal to " + m.value.JSONString()
	case matchNotNull:
		return "not null"
	case matchNotEmpty:
		return "a non-empty collection"
	}
	return "?"
}

func (m Matcher) matches(value ldvalue.Value, present bool) bool {
	if !present {
		return false
	}
	switch m.kind {
	case matchEquals:
		return value.Equal(m.value)
	case matchNotNull:
		return !value.IsNull()
	case matchNotEmpty:
		t := value.Type()
		return (t == ldvalue.ArrayType || t == ldvalue.ObjectType) && value.Count() > 0
	}
	return false
}

// placeholder is what the field is shown as on the "expected" side of a diff.
func (m Matcher) placeholder() ldvalue.Value {
	if m.kind == matchEquals {
		return m.value
	}
	return ldvalue.String("<" + m.String() + ">")
}

// FieldCheck pairs a body field with the condition it must meet.
type FieldCheck struct {
	Field   string
	Matcher Matcher
}

func (f FieldCheck) String() string {
	return fmt.Sprintf("%q %s", f.Field, f.Matcher)
}

// Outcome is the expected result of one API call: a status code, and any number of conditions
// on the body. Conditions are checked in the order they were added.
type Outcome struct {
	StatusCode int
	Body       []FieldCheck
}

// Expect starts an Outcome with the given status and no body conditions.
func Expect(statusCode int) Outcome {
	return Outcome{StatusCode: statusCode}
}

// Field returns a copy of the Outcome with one more body condition.
func (o Outcome) Field(name string, m Matcher) Outcome {
	o.Body = append(append([]FieldCheck(nil), o.Body...), FieldCheck{Field: name, Matcher: m})
	return o
}

func (o Outcome) String() string {
	s := fmt.Sprintf("status %d", o.StatusCode)
	for _, f := range o.Body {
		s += ", " + f.String()
	}
	return s
}
