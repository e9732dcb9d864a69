package reservation

import (
	"bitbucket.org/umrahtrips/checkout-hub/internal/pricing"
	"bitbucket.org/umrahtrips/checkout-hub/internal/schema"
)

// Expand turns cart lines into the per-physical-room records the backend
// persists: a line with Count=3 becomes three records with Count=1. When the
// guest reserves without paying online, the pay-at-property markup is applied
// to every nightly total, not only the aggregate, so the persisted breakdown
// still sums to the displayed total. The hotel's cut is the plain cost basis
// either way.
func Expand(lines []schema.RoomCartLine, isPayAtProperty bool) []schema.PickedRoomType {
	picked := []schema.PickedRoomType{}

	for _, line := range lines {
		for unit := 0; unit < line.Count; unit++ {
			picked = append(picked, expandUnit(line, isPayAtProperty))
		}
	}

	return picked
}

func expandUnit(line schema.RoomCartLine, isPayAtProperty bool) schema.PickedRoomType {
	pricingByDay := make([]schema.NightlyPriceWithCommission, 0, len(line.NightlyBreakdownWithCommission))

	var total, hotelShouldGet float64
	for _, night := range line.NightlyBreakdownWithCommission {
		if isPayAtProperty {
			night.TotalPriceWithCommission = pricing.Round2(night.TotalPriceWithCommission * pricing.PayAtPropertyMarkup)
		}

		pricingByDay = append(pricingByDay, night)
		total += night.TotalPriceWithCommission
		hotelShouldGet += night.RootPrice
	}

	chosenPrice := 0.0
	if len(pricingByDay) > 0 {
		chosenPrice = total / float64(len(pricingByDay))
	}

	return schema.PickedRoomType{
		RoomType:                 line.RoomType,
		DisplayName:              line.DisplayName,
		ChosenPrice:              schema.RoundedFloat(pricing.Round2(chosenPrice)),
		Count:                    1,
		PricingByDay:             pricingByDay,
		TotalPriceWithCommission: schema.RoundedFloat(pricing.Round2(total)),
		HotelShouldGet:           schema.RoundedFloat(pricing.Round2(hotelShouldGet)),
	}
}
