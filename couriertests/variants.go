package couriertests

import (
	"fmt"
	"strings"

	"github.com/scooter-qa/courier-contract-tests/servicedef"

	"gopkg.in/launchdarkly/go-sdk-common.v2/ldvalue"
)

// fieldOverride replaces one field of a request with a missing (null) or empty value.
type fieldOverride struct {
	field string
	value ldvalue.OptionalString
}

func (o fieldOverride) label() string {
	switch {
	case !o.value.IsDefined():
		return o.field + "=missing"
	case o.value.StringValue() == "":
		return o.field + "=empty"
	default:
		return fmt.Sprintf("%s=%q", o.field, o.value.StringValue())
	}
}

func (o fieldOverride) applyToCourier(p servicedef.CourierParams) servicedef.CourierParams {
	switch o.field {
	case "login":
		p.Login = o.value
	case "password":
		p.Password = o.value
	case "firstName":
		p.FirstName = o.value
	default:
		panic("unknown courier field " + o.field)
	}
	return p
}

func (o fieldOverride) applyToLogin(p servicedef.LoginParams) servicedef.LoginParams {
	switch o.field {
	case "login":
		p.Login = o.value
	case "password":
		p.Password = o.value
	default:
		panic("unknown login field " + o.field)
	}
	return p
}

func missingOrEmpty(fields ...string) []fieldOverride {
	var ret []fieldOverride
	for _, f := range fields {
		ret = append(ret,
			fieldOverride{field: f, value: ldvalue.OptionalString{}},
			fieldOverride{field: f, value: ldvalue.NewOptionalString("")},
		)
	}
	return ret
}

var orderColorVariants = [][]servicedef.Color{
	{servicedef.ColorBlack},
	{servicedef.ColorGrey},
	{servicedef.ColorBlack, servicedef.ColorGrey},
	{},
}

func colorsLabel(colors []servicedef.Color) string {
	names := make([]string, 0, len(colors))
	for _, c := range colors {
		names = append(names, string(c))
	}
	return "colors=[" + strings.Join(names, ",") + "]"
}
