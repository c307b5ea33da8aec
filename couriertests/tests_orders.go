package couriertests

import (
	"context"

	"github.com/scooter-qa/courier-contract-tests/contract"
	"github.com/scooter-qa/courier-contract-tests/framework"
	"github.com/scooter-qa/courier-contract-tests/servicedef"
)

func DoCreateOrderTests(t *framework.Context) {
	framework.RunVariants(t, orderColorVariants, colorsLabel,
		func(t *framework.Context, colors []servicedef.Color) {
			t.Debug("Creating order with %s", colorsLabel(colors))
			resp, err := api(t).CreateOrder(context.Background(), generator(t).Order(colors...))
			contract.Assert(t, requireResponse(t, resp, err), orderCreated)
		})
}

func DoListOrdersTests(t *framework.Context) {
	t.Run("list is not empty", func(t *framework.Context) {
		resp, err := api(t).ListOrders(context.Background())
		contract.Assert(t, requireResponse(t, resp, err), ordersListed)
	})
}
