package schema

import (
	"encoding/json"
	"fmt"
)

type RoundedFloat float64

func (f RoundedFloat) MarshalJSON() ([]byte, error) {
	return []byte(fmt.Sprintf("%.2f", f)), nil
}

// PaymentOption is the guest's settlement mode. The JSON form is a closed set
// of strings; anything else fails to unmarshal so an unknown option can never
// reach the markup logic.
type PaymentOption int

const (
	PaymentOptionUnselected PaymentOption = iota
	PaymentOptionDeposit
	PaymentOptionFullOnline
	PaymentOptionPayAtProperty
)

const (
	paymentOptionDepositName       = "deposit"
	paymentOptionFullOnlineName    = "full_online"
	paymentOptionPayAtPropertyName = "pay_at_property"
)

func (o PaymentOption) String() string {
	switch o {
	case PaymentOptionDeposit:
		return paymentOptionDepositName
	case PaymentOptionFullOnline:
		return paymentOptionFullOnlineName
	case PaymentOptionPayAtProperty:
		return paymentOptionPayAtPropertyName
	default:
		return ""
	}
}

// Label is the human readable payment label sent to the reservations backend.
func (o PaymentOption) Label() string {
	switch o {
	case PaymentOptionDeposit:
		return "Deposit"
	case PaymentOptionFullOnline:
		return "Full amount online"
	case PaymentOptionPayAtProperty:
		return "Reserve now, pay at property"
	default:
		return ""
	}
}

func ParsePaymentOption(name string) (PaymentOption, error) {
	switch name {
	case paymentOptionDepositName:
		return PaymentOptionDeposit, nil
	case paymentOptionFullOnlineName:
		return PaymentOptionFullOnline, nil
	case paymentOptionPayAtPropertyName:
		return PaymentOptionPayAtProperty, nil
	default:
		return PaymentOptionUnselected, fmt.Errorf("unknown payment option %q", name)
	}
}

func (o PaymentOption) MarshalJSON() ([]byte, error) {
	return json.Marshal(o.String())
}

func (o *PaymentOption) UnmarshalJSON(data []byte) error {
	var name string
	if err := json.Unmarshal(data, &name); err != nil {
		return err
	}

	if name == "" {
		*o = PaymentOptionUnselected
		return nil
	}

	parsed, err := ParsePaymentOption(name)
	if err != nil {
		return err
	}

	*o = parsed
	return nil
}
