package couriertests

import (
	"github.com/scooter-qa/courier-contract-tests/fixtures"
	"github.com/scooter-qa/courier-contract-tests/framework"
	"github.com/scooter-qa/courier-contract-tests/scooterapi"
)

// Env is what every test in the suite has access to.
type Env struct {
	Client   *scooterapi.Client
	Fixtures *fixtures.Generator
}

func RunTestSuite(
	env Env,
	filter framework.Filter,
	testLogger framework.TestLogger,
) framework.Results {
	return framework.Run(filter, testLogger, env, func(t *framework.Context) {
		t.Run("courier", func(t *framework.Context) {
			t.Run("create", DoCreateCourierTests)
			t.Run("login", DoLoginTests)
			t.Run("delete", DoDeleteCourierTests)
		})
		t.Run("orders", func(t *framework.Context) {
			t.Run("create", DoCreateOrderTests)
			t.Run("list", DoListOrdersTests)
		})
	})
}
