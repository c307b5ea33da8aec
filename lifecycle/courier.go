// Package lifecycle manages courier accounts that exist only to support a test. It owns the
// deletion protocol for them: the API deletes an account only by numeric id, and the id is only
// available from a successful login, so teardown is always login followed by delete.
package lifecycle

import (
	"context"
	"fmt"
	"net/http"

	"github.com/scooter-qa/courier-contract-tests/framework"
	"github.com/scooter-qa/courier-contract-tests/scooterapi"
	"github.com/scooter-qa/courier-contract-tests/servicedef"
)

// State is the position of a fixture in its lifecycle.
//
//	Init -> Provisioned -> InUse -> TornDown
//	Provisioned | InUse -> LeakedOnFailure
//
// TornDown and LeakedOnFailure are terminal; a fixture reaches exactly one of them.
type State int

const (
	Init State = iota
	Provisioned
	InUse
	TornDown
	LeakedOnFailure
)

func (s State) String() string {
	switch s {
	case Init:
		return "Init"
	case Provisioned:
		return "Provisioned"
	case InUse:
		return "InUse"
	case TornDown:
		return "TornDown"
	case LeakedOnFailure:
		return "LeakedOnFailure"
	}
	return fmt.Sprintf("State(%d)", int(s))
}

func (s State) Terminal() bool {
	return s == TornDown || s == LeakedOnFailure
}

// CourierAPI is the part of the API client that fixtures need.
type CourierAPI interface {
	CreateCourier(ctx context.Context, params servicedef.CourierParams) (scooterapi.Response, error)
	LoginCourier(ctx context.Context, params servicedef.LoginParams) (scooterapi.Response, error)
	DeleteCourier(ctx context.Context, id int) (scooterapi.Response, error)
}

// LeakRecorder receives a diagnostic when a fixture could not be removed. *framework.Context
// implements it by attaching a warning to the test, without failing it.
type LeakRecorder interface {
	Warn(format string, args ...interface{})
}

// ProvisionError means the account needed by a test could not be created.
type ProvisionError struct {
	Response scooterapi.Response
}

func (e *ProvisionError) Error() string {
	return fmt.Sprintf("could not create courier fixture: expected status %d but got %s",
		http.StatusCreated, e.Response)
}

// CourierFixture is one courier account owned by a test.
type CourierFixture struct {
	api     CourierAPI
	ctx     context.Context
	params  servicedef.CourierParams
	state   State
	exists  bool
	absent  bool
	deleted bool
	leaks   LeakRecorder
	logger  framework.Logger
}

// Provision creates an account with the given parameters. It requires a 201 response; on any
// other result the fixture goes directly to TornDown, since there is nothing to clean up, and
// the error is a *ProvisionError or *scooterapi.TransportError.
//
// The caller must arrange for TearDown to be called on every exit path once Provision has
// returned, for instance with Context.Defer.
func Provision(
	ctx context.Context,
	api CourierAPI,
	params servicedef.CourierParams,
	leaks LeakRecorder,
	logger framework.Logger,
) (*CourierFixture, error) {
	f := newFixture(ctx, api, params, leaks, logger)
	f.logger.Printf("Provisioning courier fixture %q", params.Login.StringValue())
	resp, err := api.CreateCourier(ctx, params)
	if err != nil {
		f.state = TornDown
		return f, err
	}
	if resp.StatusCode != http.StatusCreated {
		f.state = TornDown
		return f, &ProvisionError{Response: resp}
	}
	f.exists = true
	f.state = Provisioned
	return f, nil
}

// Track registers an account that the test itself is going to try to create, because the
// creation is the operation under test. Teardown will remove the account if it turns out to
// exist. The fixture starts in Provisioned.
func Track(
	ctx context.Context,
	api CourierAPI,
	params servicedef.CourierParams,
	leaks LeakRecorder,
	logger framework.Logger,
) *CourierFixture {
	f := newFixture(ctx, api, params, leaks, logger)
	f.state = Provisioned
	return f
}

func newFixture(
	ctx context.Context,
	api CourierAPI,
	params servicedef.CourierParams,
	leaks LeakRecorder,
	logger framework.Logger,
) *CourierFixture {
	if logger == nil {
		logger = framework.NullLogger()
	}
	return &CourierFixture{
		api:    api,
		ctx:    ctx,
		params: params,
		state:  Init,
		leaks:  leaks,
		logger: logger,
	}
}

func (f *CourierFixture) State() State {
	return f.state
}

// Params returns the parameters the account was (or will be) created with.
func (f *CourierFixture) Params() servicedef.CourierParams {
	return f.params
}

func (f *CourierFixture) Credentials() servicedef.LoginParams {
	return f.params.Credentials()
}

// ObserveCreate tells a tracked fixture the result of the test's own create call. A 201 means
// the account now exists, so failing to delete it later is a leak. Any other status, before
// a 201 has been seen, means the account was never created and teardown has nothing to do.
func (f *CourierFixture) ObserveCreate(resp scooterapi.Response) {
	if resp.StatusCode == http.StatusCreated {
		f.exists = true
		f.absent = false
	} else if !f.exists {
		f.absent = true
	}
}

// ObserveDelete tells the fixture that the test deleted the account itself. Teardown then has
// nothing left to do.
func (f *CourierFixture) ObserveDelete(resp scooterapi.Response) {
	if resp.StatusCode == http.StatusOK {
		f.deleted = true
	}
}

// Use moves the fixture from Provisioned to InUse and runs action with the account's
// parameters. It returns an error without running action if the fixture is in any other state.
func (f *CourierFixture) Use(action func(servicedef.CourierParams)) error {
	if f.state != Provisioned {
		return fmt.Errorf("courier fixture cannot be used in state %s", f.state)
	}
	f.state = InUse
	action(f.params)
	return nil
}

// TearDown removes the account by logging in to get its id and then deleting it. It never
// returns an error: if the account exists but cannot be removed, the fixture goes to
// LeakedOnFailure and the leak is reported to the LeakRecorder. Calling TearDown again after
// a terminal state has no effect.
func (f *CourierFixture) TearDown() State {
	if f.state.Terminal() {
		return f.state
	}
	if f.state == Init {
		f.state = TornDown
		return f.state
	}
	login := f.params.Login.StringValue()

	if f.deleted {
		f.logger.Printf("Courier fixture %q was already deleted by the test", login)
		f.state = TornDown
		return f.state
	}
	if !f.exists && (f.absent || !f.params.Credentials().Complete()) {
		f.logger.Printf("Courier fixture %q was never created, nothing to delete", login)
		f.state = TornDown
		return f.state
	}

	resp, err := f.api.LoginCourier(f.ctx, f.params.Credentials())
	if err != nil {
		return f.leak("login for teardown failed: %s", err)
	}
	id, ok := resp.SessionID()
	if resp.StatusCode != http.StatusOK || !ok {
		if !f.exists && resp.StatusCode == http.StatusNotFound {
			f.logger.Printf("Courier fixture %q does not exist, nothing to delete", login)
			f.state = TornDown
			return f.state
		}
		return f.leak("login for teardown returned %s", resp)
	}

	resp, err = f.api.DeleteCourier(f.ctx, id)
	if err != nil {
		return f.leak("delete of courier id %d failed: %s", id, err)
	}
	if resp.StatusCode != http.StatusOK {
		return f.leak("delete of courier id %d returned %s", id, resp)
	}
	f.logger.Printf("Deleted courier fixture %q (id %d)", login, id)
	f.state = TornDown
	return f.state
}

func (f *CourierFixture) leak(format string, args ...interface{}) State {
	f.state = LeakedOnFailure
	message := fmt.Sprintf("courier %q was left on the service: ", f.params.Login.StringValue()) +
		fmt.Sprintf(format, args...)
	f.logger.Printf("%s", message)
	if f.leaks != nil {
		f.leaks.Warn("%s", message)
	}
	return f.state
}
