package couriertests

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/scooter-qa/courier-contract-tests/contract"
	"github.com/scooter-qa/courier-contract-tests/fakeapi"
	"github.com/scooter-qa/courier-contract-tests/fixtures"
	"github.com/scooter-qa/courier-contract-tests/framework"
	"github.com/scooter-qa/courier-contract-tests/scooterapi"
	"github.com/scooter-qa/courier-contract-tests/servicedef"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runAgainst(t *testing.T, handler http.Handler, filter framework.Filter) framework.Results {
	server := httptest.NewServer(handler)
	defer server.Close()
	client, err := scooterapi.NewClient(scooterapi.Config{BaseURL: server.URL})
	require.NoError(t, err)
	env := Env{Client: client, Fixtures: fixtures.NewSeededGenerator(1)}
	return RunTestSuite(env, filter, nil)
}

func TestSuitePassesAgainstConformingService(t *testing.T) {
	s := fakeapi.NewServer()
	results := runAgainst(t, s.Handler(), nil)

	for _, f := range results.Failures {
		t.Errorf("unexpected failure in %s: %v", f.TestID, f.Errors)
	}
	assert.True(t, results.OK())
	assert.Empty(t, results.Warnings())
	assert.Equal(t, 0, s.CourierCount(), "every courier created by the suite should have been deleted")

	for _, path := range [][]string{
		{"courier", "create", "required field missing or empty", "login=missing"},
		{"courier", "create", "required field missing or empty", "password=empty"},
		{"courier", "login", "wrong credentials", `password="aaaaa"`},
		{"orders", "create", "colors=[BLACK]"},
		{"orders", "create", "colors=[GREY]"},
		{"orders", "create", "colors=[BLACK,GREY]"},
		{"orders", "create", "colors=[]"},
		{"orders", "list", "list is not empty"},
	} {
		_, found := results.Find(path...)
		assert.True(t, found, "expected a result for %s", strings.Join(path, "/"))
	}
}

func TestVariantFailuresAreIsolated(t *testing.T) {
	s := fakeapi.NewServer()
	inner := s.Handler()
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost && r.URL.Path == servicedef.OrdersPath {
			w.WriteHeader(http.StatusOK)
			_, _ = w.Write([]byte(`{"track":null}`))
			return
		}
		inner.ServeHTTP(w, r)
	})
	results := runAgainst(t, handler, nil)

	var failed []string
	for _, f := range results.Failures {
		failed = append(failed, f.TestID.String())
		require.Len(t, f.Errors, 1)
		assert.True(t, contract.IsViolation(f.Errors[0]))
	}
	assert.Equal(t, []string{
		"orders/create/colors=[BLACK]",
		"orders/create/colors=[GREY]",
		"orders/create/colors=[BLACK,GREY]",
		"orders/create/colors=[]",
	}, failed)
}

func TestLeaksAreWarningsNotExtraFailures(t *testing.T) {
	s := fakeapi.NewServer(fakeapi.WithFailingLogin())
	results := runAgainst(t, s.Handler(), nil)

	r, found := results.Find("courier", "create", "existing login with another password is rejected")
	require.True(t, found)
	assert.Empty(t, r.Errors)
	require.Len(t, r.Warnings, 1)
	assert.Contains(t, r.Warnings[0], "was left on the service")

	r, found = results.Find("courier", "login", "registered courier can log in")
	require.True(t, found)
	assert.Len(t, r.Errors, 1, "the contract failure should be reported once, with the leak only as a warning")
	assert.Len(t, r.Warnings, 1)

	assert.NotEmpty(t, results.Warnings())
	assert.Greater(t, s.CourierCount(), 0)
}

func TestTransportErrorsFailEachTestAndRunContinues(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	client, err := scooterapi.NewClient(scooterapi.Config{BaseURL: server.URL})
	require.NoError(t, err)
	server.Close()

	results := RunTestSuite(Env{Client: client, Fixtures: fixtures.NewGenerator()}, nil, nil)
	assert.False(t, results.OK())
	for _, path := range [][]string{
		{"courier", "create", "courier with all fields is created"},
		{"courier", "login", "registered courier can log in"},
		{"orders", "list", "list is not empty"},
	} {
		r, found := results.Find(path...)
		require.True(t, found)
		require.Len(t, r.Errors, 1)
		var te *scooterapi.TransportError
		assert.True(t, errors.As(r.Errors[0], &te), "%s: %T", strings.Join(path, "/"), r.Errors[0])
		assert.False(t, contract.IsViolation(r.Errors[0]))
	}
}

// requireFirstName rejects couriers without a first name, as some deployments of the service do.
func requireFirstName(inner http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost && r.URL.Path == servicedef.CourierPath {
			data, _ := io.ReadAll(r.Body)
			var body struct {
				FirstName *string `json:"firstName"`
			}
			if json.Unmarshal(data, &body) == nil && (body.FirstName == nil || *body.FirstName == "") {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusBadRequest)
				_, _ = w.Write([]byte(`{"message":"` + servicedef.MessageNotEnoughDataToCreate + `"}`))
				return
			}
			r.Body = io.NopCloser(bytes.NewReader(data))
		}
		inner.ServeHTTP(w, r)
	})
}

func TestSuiteMakesNoClaimAboutOptionalFirstName(t *testing.T) {
	s := fakeapi.NewServer()
	results := runAgainst(t, requireFirstName(s.Handler()), nil)

	for _, f := range results.Failures {
		t.Errorf("unexpected failure in %s: %v", f.TestID, f.Errors)
	}
	assert.Equal(t, 0, s.CourierCount())
}

func TestFilterSelectsOneVariant(t *testing.T) {
	var filters framework.RegexFilters
	require.NoError(t, filters.MustMatch.Set(`^orders$/^create$/GREY\]$`))
	s := fakeapi.NewServer()
	results := runAgainst(t, s.Handler(), filters.AsFilter)

	var ran []string
	for _, r := range results.Tests {
		ran = append(ran, r.TestID.String())
	}
	assert.Equal(t, []string{"orders/create/colors=[GREY]", "orders/create/colors=[BLACK,GREY]", "orders/create", "orders"}, ran)
}
