// Package servicedef describes the JSON bodies exchanged with the courier and order API.
package servicedef

import "gopkg.in/launchdarkly/go-sdk-common.v2/ldvalue"

const (
	CourierPath      = "/api/v1/courier"
	CourierLoginPath = "/api/v1/courier/login"
	OrdersPath       = "/api/v1/orders"
)

// Messages returned by the API for documented error responses.
const (
	MessageNotEnoughDataToLogin  = "Недостаточно данных для входа"
	MessageAccountNotFound       = "Учетная запись не найдена"
	MessageLoginAlreadyUsed      = "Этот логин уже используется"
	MessageNotEnoughDataToCreate = "Недостаточно данных для создания учетной записи"
)

type Color string

const (
	ColorBlack Color = "BLACK"
	ColorGrey  Color = "GREY"
)

// CourierParams is the body of a create-courier request. An undefined field is sent as null,
// which the API treats the same as a missing field; an empty string is sent as "".
type CourierParams struct {
	Login     ldvalue.OptionalString `json:"login"`
	Password  ldvalue.OptionalString `json:"password"`
	FirstName ldvalue.OptionalString `json:"firstName"`
}

// Credentials returns the login request for the same account.
func (p CourierParams) Credentials() LoginParams {
	return LoginParams{Login: p.Login, Password: p.Password}
}

type LoginParams struct {
	Login    ldvalue.OptionalString `json:"login"`
	Password ldvalue.OptionalString `json:"password"`
}

// Complete is true if both fields are set to non-empty values.
func (p LoginParams) Complete() bool {
	return p.Login.StringValue() != "" && p.Password.StringValue() != ""
}

type OrderParams struct {
	FirstName    string  `json:"firstName"`
	LastName     string  `json:"lastName"`
	Address      string  `json:"address"`
	MetroStation int     `json:"metroStation"`
	Phone        string  `json:"phone"`
	RentTime     int     `json:"rentTime"`
	DeliveryDate string  `json:"deliveryDate"`
	Comment      string  `json:"comment"`
	Color        []Color `json:"color"`
}
