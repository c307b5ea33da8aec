package contract

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/scooter-qa/courier-contract-tests/scooterapi"

	"github.com/pmezard/go-difflib/difflib"
	"github.com/stretchr/testify/require"
	"gopkg.in/launchdarkly/go-sdk-common.v2/ldvalue"
)

// StatusMismatch means the response had a different status than the contract requires. The raw
// body is included, since it usually explains the status.
type StatusMismatch struct {
	Expected int
	Actual   int
	Body     string
}

func (e *StatusMismatch) Error() string {
	return fmt.Sprintf("contract violation: expected status %d but got %d; response body: %s",
		e.Expected, e.Actual, e.Body)
}

// FieldFailure is one body condition that did not hold.
type FieldFailure struct {
	Check   FieldCheck
	Actual  ldvalue.Value
	Present bool
}

func (f FieldFailure) String() string {
	if !f.Present {
		return fmt.Sprintf("field %q should be %s, but was missing", f.Check.Field, f.Check.Matcher)
	}
	return fmt.Sprintf("field %q should be %s, but was %s", f.Check.Field, f.Check.Matcher, f.Actual.JSONString())
}

// BodyMismatch means one or more body conditions failed. All of the conditions are evaluated,
// so Failures lists every one that failed.
type BodyMismatch struct {
	StatusCode int
	Failures   []FieldFailure
	Diff       string
}

func (e *BodyMismatch) Error() string {
	lines := []string{fmt.Sprintf("contract violation: %d body condition(s) failed for status %d:",
		len(e.Failures), e.StatusCode)}
	for _, f := range e.Failures {
		lines = append(lines, "  "+f.String())
	}
	if e.Diff != "" {
		lines = append(lines, strings.TrimRight(e.Diff, "\n"))
	}
	return strings.Join(lines, "\n")
}

// IsViolation returns true if err is a *StatusMismatch or *BodyMismatch.
func IsViolation(err error) bool {
	var sm *StatusMismatch
	var bm *BodyMismatch
	return errors.As(err, &sm) || errors.As(err, &bm)
}

// Check returns nil if the response meets the expected outcome. Otherwise it returns a
// *StatusMismatch, a *BodyMismatch, or both joined with errors.Join: the status and every body
// condition are always evaluated, so one call reports every way the response was wrong.
func Check(actual scooterapi.Response, expected Outcome) error {
	var statusErr, bodyErr error
	if actual.StatusCode != expected.StatusCode {
		statusErr = &StatusMismatch{Expected: expected.StatusCode, Actual: actual.StatusCode, Body: string(actual.Raw)}
	}
	if bm := checkBody(actual, expected); bm != nil {
		bodyErr = bm
	}
	return errors.Join(statusErr, bodyErr)
}

func checkBody(actual scooterapi.Response, expected Outcome) *BodyMismatch {
	var failures []FieldFailure
	for _, check := range expected.Body {
		value, present := lookup(actual.Body, check.Field)
		if !check.Matcher.matches(value, present) {
			failures = append(failures, FieldFailure{Check: check, Actual: value, Present: present})
		}
	}
	if len(failures) == 0 {
		return nil
	}
	return &BodyMismatch{
		StatusCode: actual.StatusCode,
		Failures:   failures,
		Diff:       bodyDiff(actual.Body, failures),
	}
}

type errorReporter interface {
	ReportError(err error)
}

// Assert checks the response and reports any violation through t. If t has a ReportError
// method, as framework.Context does, the violation is passed to it as an error value;
// otherwise it is passed to t.Errorf as text. It returns true if the response met the outcome.
func Assert(t require.TestingT, actual scooterapi.Response, expected Outcome) bool {
	err := Check(actual, expected)
	if err == nil {
		return true
	}
	if r, ok := t.(errorReporter); ok {
		r.ReportError(err)
	} else {
		t.Errorf("%s", err)
	}
	return false
}

// Require is like Assert, but stops the test with t.FailNow if the outcome was not met.
func Require(t require.TestingT, actual scooterapi.Response, expected Outcome) {
	if !Assert(t, actual, expected) {
		t.FailNow()
	}
}

func lookup(body ldvalue.Value, field string) (ldvalue.Value, bool) {
	if body.Type() != ldvalue.ObjectType {
		return ldvalue.Null(), false
	}
	for _, key := range body.Keys() {
		if key == field {
			return body.GetByKey(field), true
		}
	}
	return ldvalue.Null(), false
}

// bodyDiff renders the actual body, and the same body with each failed field replaced by what
// was expected, as indented JSON, and returns a unified diff of the two.
func bodyDiff(actual ldvalue.Value, failures []FieldFailure) string {
	actualFields := map[string]interface{}{}
	if actual.Type() == ldvalue.ObjectType {
		for _, key := range actual.Keys() {
			actualFields[key] = actual.GetByKey(key).AsArbitraryValue()
		}
	}
	expectedFields := make(map[string]interface{}, len(actualFields))
	for k, v := range actualFields {
		expectedFields[k] = v
	}
	for _, f := range failures {
		expectedFields[f.Check.Field] = f.Check.Matcher.placeholder().AsArbitraryValue()
	}
	diff, err := difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
		A:        difflib.SplitLines(indentedJSON(expectedFields)),
		B:        difflib.SplitLines(indentedJSON(actualFields)),
		FromFile: "expected",
		ToFile:   "actual",
		Context:  1,
	})
	if err != nil {
		return ""
	}
	return diff
}

func indentedJSON(fields map[string]interface{}) string {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	_ = enc.Encode(fields)
	return buf.String()
}
