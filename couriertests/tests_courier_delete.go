package couriertests

import (
	"context"

	"github.com/scooter-qa/courier-contract-tests/contract"
	"github.com/scooter-qa/courier-contract-tests/framework"
)

func DoDeleteCourierTests(t *framework.Context) {
	t.Run("courier is deleted by id", func(t *framework.Context) {
		f := provisionCourier(t)
		id := requireSessionID(t, f)
		resp, err := api(t).DeleteCourier(context.Background(), id)
		resp = requireResponse(t, resp, err)
		f.ObserveDelete(resp)
		contract.Assert(t, resp, courierDeleted)
	})

	t.Run("deleted courier can no longer log in", func(t *framework.Context) {
		f := provisionCourier(t)
		id := requireSessionID(t, f)
		resp, err := api(t).DeleteCourier(context.Background(), id)
		resp = requireResponse(t, resp, err)
		f.ObserveDelete(resp)
		contract.Require(t, resp, courierDeleted)

		resp, err = api(t).LoginCourier(context.Background(), f.Credentials())
		contract.Assert(t, requireResponse(t, resp, err), loginAccountNotFound)
	})
}
