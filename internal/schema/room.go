package schema

// Room is the room document served by the rooms backend. Commission values
// may arrive either as a fraction (0.1) or a whole percent (10) depending on
// which admin tool wrote them; resolution normalizes both.
type Room struct {
	ID              string    `json:"_id"`
	HotelID         string    `json:"hotelId"`
	RoomType        string    `json:"room_type"`
	DisplayName     string    `json:"displayName"`
	BasePrice       float64   `json:"price"`
	RootPrice       float64   `json:"rootPrice"`
	Commission      *float64  `json:"commission,omitempty"`
	HotelCommission *float64  `json:"hotelCommission,omitempty"`
	PricingByDay    []RateRow `json:"pricing"`
}

// RateRow is one calendar-day override in a room's rate table.
type RateRow struct {
	Date       string   `json:"date"`
	Price      float64  `json:"price"`
	RootPrice  float64  `json:"rootPrice"`
	Commission *float64 `json:"commission,omitempty"`
}
