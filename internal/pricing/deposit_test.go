package pricing_test

import (
	"testing"

	"bitbucket.org/umrahtrips/checkout-hub/internal/pricing"
	"bitbucket.org/umrahtrips/checkout-hub/internal/schema"
	"github.com/stretchr/testify/assert"
)

func TestCalculateDeposit(t *testing.T) {
	t.Run("should collect per-night commission plus the first night's cost basis", func(t *testing.T) {
		deposit := pricing.CalculateDeposit(cartTemplate(1))

		// 8 commission per night over three nights plus 80 for the first night.
		assert.Equal(t, schema.RoundedFloat(104), deposit.DepositAmount)
		assert.Equal(t, schema.RoundedFloat(80), deposit.TotalRoomsPricePerNight)
		assert.Equal(t, schema.RoundedFloat(324), deposit.TotalPriceWithCommission)
		assert.Equal(t, 32.0, deposit.OverallAverageCommissionRate)
	})

	t.Run("should scale with the room count", func(t *testing.T) {
		deposit := pricing.CalculateDeposit(cartTemplate(2))

		assert.Equal(t, schema.RoundedFloat(208), deposit.DepositAmount)
		assert.Equal(t, schema.RoundedFloat(160), deposit.TotalRoomsPricePerNight)
		assert.Equal(t, schema.RoundedFloat(648), deposit.TotalPriceWithCommission)
	})

	t.Run("should return zero values for an empty cart", func(t *testing.T) {
		deposit := pricing.CalculateDeposit([]schema.RoomCartLine{})

		assert.Equal(t, schema.RoundedFloat(0), deposit.DepositAmount)
		assert.Equal(t, 0.0, deposit.OverallAverageCommissionRate)
	})
}

func TestAmountDueNow(t *testing.T) {
	deposit := pricing.CalculateDeposit(cartTemplate(1))

	assert.Equal(t, 104.0, pricing.AmountDueNow(schema.PaymentOptionDeposit, deposit))
	assert.Equal(t, 324.0, pricing.AmountDueNow(schema.PaymentOptionFullOnline, deposit))
	assert.Equal(t, 0.0, pricing.AmountDueNow(schema.PaymentOptionPayAtProperty, deposit))
	assert.Equal(t, 0.0, pricing.AmountDueNow(schema.PaymentOptionUnselected, deposit))
}

func TestAmountDueAtProperty(t *testing.T) {
	deposit := pricing.CalculateDeposit(cartTemplate(1))

	t.Run("should leave the remainder for the deposit option", func(t *testing.T) {
		assert.Equal(t, 220.0, pricing.AmountDueAtProperty(schema.PaymentOptionDeposit, deposit))
	})

	t.Run("should leave nothing after paying in full online", func(t *testing.T) {
		assert.Equal(t, 0.0, pricing.AmountDueAtProperty(schema.PaymentOptionFullOnline, deposit))
	})

	t.Run("should bump the total for paying at the property", func(t *testing.T) {
		assert.Equal(t, 356.40, pricing.AmountDueAtProperty(schema.PaymentOptionPayAtProperty, deposit))
	})
}

func cartTemplate(count int) []schema.RoomCartLine {
	nights := []schema.NightlyPrice{
		{Date: "2026-10-01", Price: 100, RootPrice: 80, CommissionRate: 0.1},
		{Date: "2026-10-02", Price: 100, RootPrice: 80, CommissionRate: 0.1},
		{Date: "2026-10-03", Price: 100, RootPrice: 80, CommissionRate: 0.1},
	}

	return []schema.RoomCartLine{
		{
			RoomID:                         "room-1",
			HotelID:                        "hotel-1",
			RoomType:                       "double",
			DisplayName:                    "Double Room",
			Count:                          count,
			StartDate:                      "2026-10-01",
			EndDate:                        "2026-10-04",
			NightlyBreakdown:               nights,
			NightlyBreakdownWithCommission: pricing.WithCommission(nights),
		},
	}
}
