package couriertests

import (
	"context"

	"github.com/scooter-qa/courier-contract-tests/contract"
	"github.com/scooter-qa/courier-contract-tests/framework"
	"github.com/scooter-qa/courier-contract-tests/servicedef"

	"gopkg.in/launchdarkly/go-sdk-common.v2/ldvalue"
)

// wrongLogin is a login that the random generator cannot produce, since generated logins are
// longer than eight characters.
const wrongLogin = "11111111"

const wrongPassword = "aaaaa"

func DoLoginTests(t *framework.Context) {
	t.Run("registered courier can log in", func(t *framework.Context) {
		useCourier(t, provisionCourier(t), func(courier servicedef.CourierParams) {
			resp, err := api(t).LoginCourier(context.Background(), courier.Credentials())
			contract.Assert(t, requireResponse(t, resp, err), loginSucceeded)
		})
	})

	t.Run("credentials missing or empty", func(t *framework.Context) {
		framework.RunVariants(t, missingOrEmpty("login", "password"), fieldOverride.label,
			func(t *framework.Context, o fieldOverride) {
				useCourier(t, provisionCourier(t), func(courier servicedef.CourierParams) {
					resp, err := api(t).LoginCourier(context.Background(), o.applyToLogin(courier.Credentials()))
					contract.Assert(t, requireResponse(t, resp, err), loginNotEnoughData)
				})
			})
	})

	wrongCredentials := []fieldOverride{
		{field: "login", value: ldvalue.NewOptionalString(wrongLogin)},
		{field: "password", value: ldvalue.NewOptionalString(wrongPassword)},
	}
	t.Run("wrong credentials", func(t *framework.Context) {
		framework.RunVariants(t, wrongCredentials, fieldOverride.label,
			func(t *framework.Context, o fieldOverride) {
				useCourier(t, provisionCourier(t), func(courier servicedef.CourierParams) {
					resp, err := api(t).LoginCourier(context.Background(), o.applyToLogin(courier.Credentials()))
					contract.Assert(t, requireResponse(t, resp, err), loginAccountNotFound)
				})
			})
	})

	t.Run("courier that does not exist", func(t *framework.Context) {
		credentials := generator(t).Courier().Credentials()
		resp, err := api(t).LoginCourier(context.Background(), credentials)
		contract.Assert(t, requireResponse(t, resp, err), loginAccountNotFound)
	})
}
