package contract

import (
	"errors"
	"fmt"
	"testing"

	"github.com/scooter-qa/courier-contract-tests/scooterapi"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/launchdarkly/go-sdk-common.v2/ldvalue"
)

func response(status int, body string) scooterapi.Response {
	return scooterapi.Response{StatusCode: status, Body: ldvalue.Parse([]byte(body)), Raw: []byte(body)}
}

func TestCheckPassesWhenEverythingMatches(t *testing.T) {
	r := response(201, `{"ok":true}`)
	assert.NoError(t, Check(r, Expect(201).Field("ok", EqualsBool(true))))
	assert.NoError(t, Check(response(200, `{"id":5}`), Expect(200).Field("id", NotNull())))
	assert.NoError(t, Check(response(200, `{"orders":[{"id":1}]}`), Expect(200).Field("orders", NotEmpty())))
	assert.NoError(t, Check(response(200, ``), Expect(200)))
}

func TestStatusMismatchReportsBothValues(t *testing.T) {
	err := Check(response(400, `{"message":"nope"}`), Expect(201).Field("ok", EqualsBool(true)))
	var sm *StatusMismatch
	require.True(t, errors.As(err, &sm))
	assert.Equal(t, 201, sm.Expected)
	assert.Equal(t, 400, sm.Actual)
	assert.Contains(t, err.Error(), "expected status 201 but got 400")
	assert.Contains(t, err.Error(), `{"message":"nope"}`)
	assert.True(t, IsViolation(err))
}

func TestStatusAndBodyFailuresAreReportedTogether(t *testing.T) {
	r := response(404, `{"message":"Учетная запись не найдена"}`)
	err := Check(r, Expect(200).Field("id", NotNull()))

	var sm *StatusMismatch
	require.True(t, errors.As(err, &sm))
	assert.Equal(t, 404, sm.Actual)

	var bm *BodyMismatch
	require.True(t, errors.As(err, &bm))
	require.Len(t, bm.Failures, 1)
	assert.Equal(t, "id", bm.Failures[0].Check.Field)
	assert.False(t, bm.Failures[0].Present)

	assert.Contains(t, err.Error(), "expected status 200 but got 404")
	assert.Contains(t, err.Error(), `field "id" should be not null, but was missing`)
}

func TestStatusMismatchAloneWhenBodyConditionsHold(t *testing.T) {
	err := Check(response(201, `{"ok":true}`), Expect(200).Field("ok", EqualsBool(true)))

	var sm *StatusMismatch
	require.True(t, errors.As(err, &sm))
	var bm *BodyMismatch
	assert.False(t, errors.As(err, &bm))
}

func TestBodyMismatchCollectsEveryFailure(t *testing.T) {
	r := response(200, `{"message":"other","id":null,"orders":[]}`)
	expected := Expect(200).
		Field("message", EqualsString("expected")).
		Field("id", NotNull()).
		Field("orders", NotEmpty()).
		Field("track", NotNull())
	err := Check(r, expected)

	var bm *BodyMismatch
	require.True(t, errors.As(err, &bm))
	require.Len(t, bm.Failures, 4)
	assert.Equal(t, "message", bm.Failures[0].Check.Field)
	assert.Equal(t, "id", bm.Failures[1].Check.Field)
	assert.True(t, bm.Failures[1].Present)
	assert.Equal(t, "orders", bm.Failures[2].Check.Field)
	assert.Equal(t, "track", bm.Failures[3].Check.Field)
	assert.False(t, bm.Failures[3].Present)

	assert.Contains(t, err.Error(), `field "track" should be not null, but was missing`)
	assert.Contains(t, bm.Diff, `-  "message": "expected"`)
	assert.Contains(t, bm.Diff, `+  "message": "other"`)
	assert.True(t, IsViolation(err))
}

func TestEqualsIsStrictAboutType(t *testing.T) {
	err := Check(response(201, `{"ok":"true"}`), Expect(201).Field("ok", EqualsBool(true)))
	assert.Error(t, err)
}

func TestNotEmptyRejectsNonCollections(t *testing.T) {
	for _, body := range []string{`{"orders":"x"}`, `{"orders":3}`, `{"orders":{}}`, `{}`, `not json`} {
		t.Run(body, func(t *testing.T) {
			assert.Error(t, Check(response(200, body), Expect(200).Field("orders", NotEmpty())))
		})
	}
}

func TestIsViolationIgnoresOtherErrors(t *testing.T) {
	assert.False(t, IsViolation(errors.New("x")))
	assert.False(t, IsViolation(&scooterapi.TransportError{Err: errors.New("refused")}))
	assert.True(t, IsViolation(fmt.Errorf("wrapped: %w", &StatusMismatch{})))
}

type recordingT struct {
	errors []string
	failed bool
}

func (r *recordingT) Errorf(format string, args ...interface{}) {
	r.errors = append(r.errors, fmt.Sprintf(format, args...))
}

func (r *recordingT) FailNow() {
	r.failed = true
}

func TestAssertAndRequire(t *testing.T) {
	rt := &recordingT{}
	assert.True(t, Assert(rt, response(200, `{"id":1}`), Expect(200).Field("id", NotNull())))
	assert.Empty(t, rt.errors)

	assert.False(t, Assert(rt, response(404, `{}`), Expect(200)))
	assert.Len(t, rt.errors, 1)
	assert.False(t, rt.failed)

	Require(rt, response(404, `{}`), Expect(200))
	assert.True(t, rt.failed)
}

type reportingT struct {
	recordingT
	reported []error
}

func (r *reportingT) ReportError(err error) {
	r.reported = append(r.reported, err)
}

func TestAssertPassesTypedErrorWhenSupported(t *testing.T) {
	rt := &reportingT{}
	assert.False(t, Assert(rt, response(404, `{}`), Expect(200)))
	assert.Empty(t, rt.errors)
	require.Len(t, rt.reported, 1)
	var sm *StatusMismatch
	assert.True(t, errors.As(rt.reported[0], &sm))
}

func TestOutcomeFieldDoesNotShareBacking(t *testing.T) {
	base := Expect(200).Field("a", NotNull())
	o1 := base.Field("b", NotNull())
	o2 := base.Field("c", NotNull())
	assert.Equal(t, "b", o1.Body[1].Field)
	assert.Equal(t, "c", o2.Body[1].Field)
	assert.Equal(t, `status 200, "a" not null, "b" not null`, o1.String())
}
