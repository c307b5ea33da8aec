package couriertests

import (
	"net/http"

	"github.com/scooter-qa/courier-contract-tests/contract"
	"github.com/scooter-qa/courier-contract-tests/servicedef"
)

var (
	loginSucceeded       = contract.Expect(http.StatusOK).Field("id", contract.NotNull())
	loginNotEnoughData   = expectMessage(http.StatusBadRequest, servicedef.MessageNotEnoughDataToLogin)
	loginAccountNotFound = expectMessage(http.StatusNotFound, servicedef.MessageAccountNotFound)

	courierCreated          = contract.Expect(http.StatusCreated).Field("ok", contract.EqualsBool(true))
	courierLoginAlreadyUsed = expectMessage(http.StatusConflict, servicedef.MessageLoginAlreadyUsed)
	courierNotEnoughData    = expectMessage(http.StatusBadRequest, servicedef.MessageNotEnoughDataToCreate)

	courierDeleted = contract.Expect(http.StatusOK).Field("ok", contract.EqualsBool(true))

	ordersListed = contract.Expect(http.StatusOK).Field("orders", contract.NotEmpty())
	orderCreated = contract.Expect(http.StatusCreated).Field("track", contract.NotNull())
)

func expectMessage(status int, message string) contract.Outcome {
	return contract.Expect(status).Field("message", contract.EqualsString(message))
}
