package couriertests

import (
	"github.com/scooter-qa/courier-contract-tests/contract"
	"github.com/scooter-qa/courier-contract-tests/framework"
)

func DoCreateCourierTests(t *framework.Context) {
	t.Run("courier with all fields is created", func(t *framework.Context) {
		f := trackCourier(t, generator(t).Courier())
		contract.Assert(t, createTrackedCourier(t, f), courierCreated)
	})

	t.Run("same courier twice is rejected the second time", func(t *framework.Context) {
		f := trackCourier(t, generator(t).Courier())
		contract.Require(t, createTrackedCourier(t, f), courierCreated)
		contract.Assert(t, createTrackedCourier(t, f), courierLoginAlreadyUsed)
	})

	t.Run("existing login with another password is rejected", func(t *framework.Context) {
		existing := provisionCourier(t)
		params := generator(t).Courier()
		params.Login = existing.Params().Login
		f := trackCourier(t, params)
		contract.Assert(t, createTrackedCourier(t, f), courierLoginAlreadyUsed)
	})

	t.Run("required field missing or empty", func(t *framework.Context) {
		framework.RunVariants(t, missingOrEmpty("login", "password"), fieldOverride.label,
			func(t *framework.Context, o fieldOverride) {
				f := trackCourier(t, o.applyToCourier(generator(t).Courier()))
				contract.Assert(t, createTrackedCourier(t, f), courierNotEnoughData)
			})
	})

	t.Run("created courier can log in", func(t *framework.Context) {
		f := trackCourier(t, generator(t).Courier())
		contract.Require(t, createTrackedCourier(t, f), courierCreated)
		requireSessionID(t, f)
	})
}
