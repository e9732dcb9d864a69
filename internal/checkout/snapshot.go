package checkout

import (
	"bitbucket.org/umrahtrips/checkout-hub/internal/checkout/session"
	"bitbucket.org/umrahtrips/checkout-hub/internal/pricing"
	"bitbucket.org/umrahtrips/checkout-hub/internal/schema"
)

type orderSnapshot struct {
	OrderID           string `json:"orderId"`
	ExpectedUsdAmount string `json:"expectedUsdAmount"`
	Mode              string `json:"mode"`
}

// SessionSnapshot is what every checkout endpoint returns: the priced cart,
// the money the guest owes now and at the property, and the struck-through
// comparison price shown next to the online options.
type SessionSnapshot struct {
	ID                  string                  `json:"id"`
	State               string                  `json:"state"`
	Lines               []schema.RoomCartLine   `json:"lines"`
	Guest               schema.GuestDetails     `json:"guest"`
	PaymentOption       schema.PaymentOption    `json:"paymentOption"`
	Deposit             schema.DepositDetails   `json:"depositDetails"`
	Converted           schema.ConvertedAmounts `json:"convertedAmounts"`
	AmountDueNow        schema.RoundedFloat     `json:"amountDueNow"`
	AmountDueAtProperty schema.RoundedFloat     `json:"amountDueAtProperty"`
	ComparisonPrice     schema.RoundedFloat     `json:"comparisonPrice"`
	Order               *orderSnapshot          `json:"order,omitempty"`
}

func snapshot(checkoutSession *session.Session) SessionSnapshot {
	response := SessionSnapshot{
		ID:            checkoutSession.ID,
		State:         checkoutSession.State.String(),
		Lines:         checkoutSession.Lines,
		Guest:         checkoutSession.Guest,
		PaymentOption: checkoutSession.PaymentOption,
		Deposit:       checkoutSession.Deposit,
		Converted:     checkoutSession.Converted,
		AmountDueNow: schema.RoundedFloat(
			pricing.AmountDueNow(checkoutSession.PaymentOption, checkoutSession.Deposit),
		),
		AmountDueAtProperty: schema.RoundedFloat(
			pricing.AmountDueAtProperty(checkoutSession.PaymentOption, checkoutSession.Deposit),
		),
		ComparisonPrice: schema.RoundedFloat(
			pricing.Round2(float64(checkoutSession.Deposit.TotalPriceWithCommission) * pricing.PayAtPropertyMarkup),
		),
	}

	if checkoutSession.Attempt != nil && checkoutSession.HasPendingOrder() {
		response.Order = &orderSnapshot{
			OrderID:           checkoutSession.Attempt.OrderID,
			ExpectedUsdAmount: checkoutSession.Attempt.ExpectedUsdAmount,
			Mode:              checkoutSession.Attempt.Mode,
		}
	}

	return response
}
