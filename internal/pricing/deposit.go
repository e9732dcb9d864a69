package pricing

import (
	"math"

	"bitbucket.org/umrahtrips/checkout-hub/internal/schema"
)

// CalculateDeposit aggregates the whole cart into the amount collected up
// front for the deposit option: the commission accrued on every night plus
// one full first night's cost basis per physical room. The blended rate is
// the deposit as a whole percent of the cart total, 0 when the cart is empty.
func CalculateDeposit(lines []schema.RoomCartLine) schema.DepositDetails {
	var (
		commissionTotal float64
		firstNightRoot  float64
		cartTotal       float64
	)

	for _, line := range lines {
		count := float64(line.Count)

		for i, night := range line.NightlyBreakdownWithCommission {
			commissionTotal += (night.TotalPriceWithCommission - night.Price) * count
			cartTotal += night.TotalPriceWithCommission * count

			if i == 0 {
				firstNightRoot += night.RootPrice * count
			}
		}
	}

	depositAmount := commissionTotal + firstNightRoot

	averageRate := 0.0
	if cartTotal > 0 {
		averageRate = math.Round(depositAmount / cartTotal * 100)
	}

	return schema.DepositDetails{
		DepositAmount:                schema.RoundedFloat(Round2(depositAmount)),
		TotalRoomsPricePerNight:      schema.RoundedFloat(Round2(firstNightRoot)),
		OverallAverageCommissionRate: averageRate,
		TotalPriceWithCommission:     schema.RoundedFloat(Round2(cartTotal)),
	}
}

// AmountDueNow is the SAR amount the selected payment option collects online.
// Pay at property collects nothing up front.
func AmountDueNow(option schema.PaymentOption, deposit schema.DepositDetails) float64 {
	switch option {
	case schema.PaymentOptionDeposit:
		return float64(deposit.DepositAmount)
	case schema.PaymentOptionFullOnline:
		return float64(deposit.TotalPriceWithCommission)
	default:
		return 0
	}
}

// AmountDueAtProperty is what remains owed on arrival. Skipping online
// payment entirely bumps the property total by the pay-at-property markup.
func AmountDueAtProperty(option schema.PaymentOption, deposit schema.DepositDetails) float64 {
	total := float64(deposit.TotalPriceWithCommission)

	switch option {
	case schema.PaymentOptionDeposit:
		return Round2(total - float64(deposit.DepositAmount))
	case schema.PaymentOptionFullOnline:
		return 0
	case schema.PaymentOptionPayAtProperty:
		return Round2(total * PayAtPropertyMarkup)
	default:
		return total
	}
}

// PayAtPropertyMarkup compensates the platform for forgoing upfront
// collection. The bumped total is also shown struck through on the online
// options as the comparison price.
const PayAtPropertyMarkup = 1.1
