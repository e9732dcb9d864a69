package schema

// NightlyPrice is one resolved night of a stay, in SAR. Immutable once
// computed for a given rate table snapshot.
type NightlyPrice struct {
	Date           string  `json:"date"`
	Price          float64 `json:"price"`
	RootPrice      float64 `json:"rootPrice"`
	CommissionRate float64 `json:"commissionRate"`
}

type NightlyPriceWithCommission struct {
	NightlyPrice
	TotalPriceWithCommission float64 `json:"totalPriceWithCommission"`
}

// RoomCartLine is one cart entry: a room type, how many physical rooms of it,
// and the priced breakdown of the stay. Breakdowns are replaced wholesale
// whenever dates change, never patched.
type RoomCartLine struct {
	RoomID                         string                       `json:"roomId"`
	HotelID                        string                       `json:"hotelId"`
	RoomType                       string                       `json:"room_type"`
	DisplayName                    string                       `json:"displayName"`
	Count                          int                          `json:"count"`
	StartDate                      string                       `json:"startDate"`
	EndDate                        string                       `json:"endDate"`
	RoomColor                      string                       `json:"roomColor,omitempty"`
	NightlyBreakdown               []NightlyPrice               `json:"nightlyBreakdown"`
	NightlyBreakdownWithCommission []NightlyPriceWithCommission `json:"nightlyBreakdownWithCommission"`
}

// DepositDetails is derived from the whole cart and recomputed on every cart
// change. Money fields carry two decimals, the blended commission rate is a
// whole percent for display.
type DepositDetails struct {
	DepositAmount                RoundedFloat `json:"depositAmount"`
	TotalRoomsPricePerNight      RoundedFloat `json:"totalRoomsPricePerNight"`
	OverallAverageCommissionRate float64      `json:"overallAverageCommissionRate"`
	TotalPriceWithCommission     RoundedFloat `json:"total_price_with_commission"`
}

// ConvertedAmounts mirrors the cart totals in USD. The gateway settles in USD
// only, so these are refreshed from the currency service right before an
// order is minted; zero values block order creation.
type ConvertedAmounts struct {
	DepositUSD                 float64 `json:"depositUSD"`
	TotalUSD                   float64 `json:"totalUSD"`
	TotalRoomsPricePerNightUSD float64 `json:"totalRoomsPricePerNightUSD"`
}

// PickedRoomType is one physical room unit of the assembled reservation, as
// persisted by the backend. A cart line with Count=3 expands to three of
// these.
type PickedRoomType struct {
	RoomType                 string                       `json:"room_type"`
	DisplayName              string                       `json:"displayName"`
	ChosenPrice              RoundedFloat                 `json:"chosenPrice"`
	Count                    int                          `json:"count"`
	PricingByDay             []NightlyPriceWithCommission `json:"pricingByDay"`
	TotalPriceWithCommission RoundedFloat                 `json:"totalPriceWithCommission"`
	HotelShouldGet           RoundedFloat                 `json:"hotelShouldGet"`
}

// PayPalOrderEvidence is attached to the reservation submission so the
// backend can authorize-capture and keep dispute evidence. Minted once per
// attempt; a retry gets a fresh order id.
type PayPalOrderEvidence struct {
	OrderID           string `json:"order_id"`
	ExpectedUsdAmount string `json:"expectedUsdAmount"`
	Cmid              string `json:"cmid,omitempty"`
	Mode              string `json:"mode"`
}

type GuestDetails struct {
	FullName       string `json:"fullName"`
	Phone          string `json:"phone"`
	Email          string `json:"email"`
	Nationality    string `json:"nationality,omitempty"`
	PassportNumber string `json:"passportNumber,omitempty"`
	PassportExpiry string `json:"passportExpiry,omitempty"`
	TermsAccepted  bool   `json:"termsAccepted"`
}
