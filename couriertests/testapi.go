package couriertests

import (
	"context"
	"fmt"

	"github.com/scooter-qa/courier-contract-tests/fixtures"
	"github.com/scooter-qa/courier-contract-tests/framework"
	"github.com/scooter-qa/courier-contract-tests/lifecycle"
	"github.com/scooter-qa/courier-contract-tests/scooterapi"
	"github.com/scooter-qa/courier-contract-tests/servicedef"

	"github.com/stretchr/testify/require"
)

func requireEnv(t *framework.Context) Env {
	if e, ok := t.SuiteData().(Env); ok {
		return e
	}
	panic("couriertests.Env was not included in the test suite configuration!" +
		" This is a basic mistake in the initialization logic.")
}

// api returns a client whose requests and responses go to this test's debug output.
func api(t *framework.Context) *scooterapi.Client {
	return requireEnv(t).Client.WithLogger(t.DebugLogger())
}

func generator(t *framework.Context) *fixtures.Generator {
	return requireEnv(t).Fixtures
}

// requireResponse stops the test if the call did not get a response at all. The error is
// recorded as is, so a *scooterapi.TransportError can be told apart from a contract violation.
func requireResponse(t *framework.Context, resp scooterapi.Response, err error) scooterapi.Response {
	if err != nil {
		if !scooterapi.IsTransportError(err) {
			err = fmt.Errorf("request was not sent: %w", err)
		}
		t.ReportError(err)
		t.FailNow()
	}
	return resp
}

// fixtureLogger keeps the calls made by fixtures apart from the calls made by the test in the
// debug output.
func fixtureLogger(t *framework.Context) framework.Logger {
	return framework.LoggerWithPrefix(t.DebugLogger(), "fixture: ")
}

// provisionCourier creates a courier account that is deleted when the test ends. The test
// stops if the account cannot be created.
func provisionCourier(t *framework.Context) *lifecycle.CourierFixture {
	client := requireEnv(t).Client.WithLogger(fixtureLogger(t))
	f, err := lifecycle.Provision(context.Background(), client, generator(t).Courier(), t, fixtureLogger(t))
	t.Defer(func() { f.TearDown() })
	if err != nil {
		t.ReportError(fmt.Errorf("precondition failed: %w", err))
		t.FailNow()
	}
	return f
}

// useCourier runs action with the parameters of a provisioned courier.
func useCourier(t *framework.Context, f *lifecycle.CourierFixture, action func(servicedef.CourierParams)) {
	require.NoError(t, f.Use(action))
}

// trackCourier registers an account the test is about to create itself, so that it is deleted
// when the test ends if the creation succeeded.
func trackCourier(t *framework.Context, params servicedef.CourierParams) *lifecycle.CourierFixture {
	client := requireEnv(t).Client.WithLogger(fixtureLogger(t))
	f := lifecycle.Track(context.Background(), client, params, t, fixtureLogger(t))
	t.Defer(func() { f.TearDown() })
	return f
}

// createTrackedCourier calls create-courier for an account registered with trackCourier.
func createTrackedCourier(t *framework.Context, f *lifecycle.CourierFixture) scooterapi.Response {
	resp, err := api(t).CreateCourier(context.Background(), f.Params())
	resp = requireResponse(t, resp, err)
	f.ObserveCreate(resp)
	return resp
}

// requireSessionID logs in with the fixture's credentials and returns the courier id.
func requireSessionID(t *framework.Context, f *lifecycle.CourierFixture) int {
	resp, err := api(t).LoginCourier(context.Background(), f.Credentials())
	resp = requireResponse(t, resp, err)
	id, ok := resp.SessionID()
	require.True(t, ok, "login did not return an id: %s", resp)
	return id
}
