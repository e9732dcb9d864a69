package currencyapi

// Rates is the spot-rate pair the storefront runs on. SAR is the cart
// currency, the payment gateway settles in USD, EUR is display only.
type Rates struct {
	SarUsd float64 `json:"SAR_USD"`
	SarEur float64 `json:"SAR_EUR"`
}

type ratesQuery struct {
	Base string `url:"base"`
}

type convertedAmount struct {
	AmountInUSD float64 `json:"amountInUSD"`
}
