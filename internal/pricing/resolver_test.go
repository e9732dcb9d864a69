package pricing_test

import (
	"testing"

	"bitbucket.org/umrahtrips/checkout-hub/internal/pricing"
	"bitbucket.org/umrahtrips/checkout-hub/internal/schema"
	"bitbucket.org/umrahtrips/checkout-hub/internal/tools/converting"
	"github.com/stretchr/testify/assert"
)

func TestNormalizeCommission(t *testing.T) {
	t.Run("should keep fractions as they are", func(t *testing.T) {
		assert.Equal(t, 0.1, pricing.NormalizeCommission(0.1))
		assert.Equal(t, 1.0, pricing.NormalizeCommission(1.0))
		assert.Equal(t, 0.0, pricing.NormalizeCommission(0))
	})

	t.Run("should divide whole percents by 100", func(t *testing.T) {
		assert.Equal(t, 0.1, pricing.NormalizeCommission(10))
		assert.Equal(t, 0.25, pricing.NormalizeCommission(25))
		assert.InDelta(t, 0.015, pricing.NormalizeCommission(1.5), 0.000001)
	})
}

func TestResolveNightlyRate(t *testing.T) {
	t.Run("should use the exact rate table row when present", func(t *testing.T) {
		room := roomTemplate()
		room.PricingByDay = []schema.RateRow{
			{Date: "2026-10-01", Price: 120, RootPrice: 90, Commission: converting.PointerToValue(20.0)},
		}

		night := pricing.ResolveNightlyRate(room, "2026-10-01", 0.1)

		assert.Equal(t, 120.0, night.Price)
		assert.Equal(t, 90.0, night.RootPrice)
		assert.Equal(t, 0.2, night.CommissionRate)
	})

	t.Run("should match rate rows that carry a timestamp", func(t *testing.T) {
		room := roomTemplate()
		room.PricingByDay = []schema.RateRow{
			{Date: "2026-10-01T00:00:00.000Z", Price: 120, RootPrice: 90, Commission: converting.PointerToValue(20.0)},
		}

		night := pricing.ResolveNightlyRate(room, "2026-10-01", 0.1)

		assert.Equal(t, 120.0, night.Price)
		assert.Equal(t, 0.2, night.CommissionRate)
	})

	t.Run("should fall back to room commission when the row has none", func(t *testing.T) {
		room := roomTemplate()
		room.Commission = converting.PointerToValue(15.0)
		room.PricingByDay = []schema.RateRow{
			{Date: "2026-10-01", Price: 120, RootPrice: 90},
		}

		night := pricing.ResolveNightlyRate(room, "2026-10-01", 0.1)

		assert.Equal(t, 0.15, night.CommissionRate)
	})

	t.Run("should fall back to hotel commission next", func(t *testing.T) {
		room := roomTemplate()
		room.HotelCommission = converting.PointerToValue(0.12)

		night := pricing.ResolveNightlyRate(room, "2026-10-05", 0.1)

		assert.Equal(t, room.BasePrice, night.Price)
		assert.Equal(t, room.RootPrice, night.RootPrice)
		assert.Equal(t, 0.12, night.CommissionRate)
	})

	t.Run("should fall back to the platform default last", func(t *testing.T) {
		room := roomTemplate()

		night := pricing.ResolveNightlyRate(room, "2026-10-05", 10)

		assert.Equal(t, 0.1, night.CommissionRate)
	})
}

func roomTemplate() schema.Room {
	return schema.Room{
		ID:          "room-1",
		HotelID:     "hotel-1",
		RoomType:    "double",
		DisplayName: "Double Room",
		BasePrice:   100,
		RootPrice:   80,
	}
}
