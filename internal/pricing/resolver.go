package pricing

import (
	"bitbucket.org/umrahtrips/checkout-hub/internal/schema"
)

// NormalizeCommission accepts both admin conventions for commission values:
// anything above 1 is a whole percent and gets divided by 100, anything at or
// below 1 is already a decimal fraction.
func NormalizeCommission(value float64) float64 {
	if value > 1 {
		return value / 100
	}

	return value
}

// ResolveNightlyRate resolves the price triple for one (room, date) pair.
// Resolution order: exact rate table row, then the room's base price with the
// room- or hotel-level commission, then the platform default commission. The
// result is always fully populated.
func ResolveNightlyRate(room schema.Room, date string, defaultCommissionRate float64) schema.NightlyPrice {
	commission := func(override *float64) float64 {
		if override != nil {
			return NormalizeCommission(*override)
		}
		if room.Commission != nil {
			return NormalizeCommission(*room.Commission)
		}
		if room.HotelCommission != nil {
			return NormalizeCommission(*room.HotelCommission)
		}
		return NormalizeCommission(defaultCommissionRate)
	}

	for _, row := range room.PricingByDay {
		if sameDay(row.Date, date) {
			return schema.NightlyPrice{
				Date:           date,
				Price:          row.Price,
				RootPrice:      row.RootPrice,
				CommissionRate: commission(row.Commission),
			}
		}
	}

	return schema.NightlyPrice{
		Date:           date,
		Price:          room.BasePrice,
		RootPrice:      room.RootPrice,
		CommissionRate: commission(nil),
	}
}

// Rate table rows written by older admin tools carry a full timestamp, the
// cart always works with plain days.
func sameDay(rowDate, day string) bool {
	if len(rowDate) > len(DayFormat) {
		rowDate = rowDate[:len(DayFormat)]
	}

	return rowDate == day
}
