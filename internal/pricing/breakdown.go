package pricing

import (
	"math"
	"time"

	"bitbucket.org/umrahtrips/checkout-hub/internal/schema"
)

// BuildNightlyBreakdown prices every night of a stay against the room's rate
// table snapshot. Pure: the same snapshot and dates always produce identical
// output, and callers replace a line's breakdown wholesale on date changes.
func BuildNightlyBreakdown(room schema.Room, startDate, endDate time.Time, defaultCommissionRate float64) []schema.NightlyPrice {
	nights := StayNights(startDate, endDate)

	breakdown := make([]schema.NightlyPrice, 0, len(nights))
	for _, night := range nights {
		breakdown = append(breakdown, ResolveNightlyRate(room, night, defaultCommissionRate))
	}

	return breakdown
}

// WithCommission derives the per-night totals the guest actually pays:
// price plus the platform's commission on the cost basis.
func WithCommission(breakdown []schema.NightlyPrice) []schema.NightlyPriceWithCommission {
	withCommission := make([]schema.NightlyPriceWithCommission, 0, len(breakdown))

	for _, night := range breakdown {
		withCommission = append(withCommission, schema.NightlyPriceWithCommission{
			NightlyPrice:             night,
			TotalPriceWithCommission: night.Price + night.RootPrice*night.CommissionRate,
		})
	}

	return withCommission
}

func Round2(value float64) float64 {
	return math.Round(value*100) / 100
}
