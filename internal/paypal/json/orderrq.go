package json

// IntentAuthorize holds the funds; capture is deferred to the backend after
// the reservation exists. Checkout never creates immediate-capture orders.
const IntentAuthorize = "AUTHORIZE"

type OrderRQ struct {
	Intent        string         `json:"intent"`
	PurchaseUnits []PurchaseUnit `json:"purchase_units"`
}

type PurchaseUnit struct {
	ReferenceID string `json:"reference_id,omitempty"`
	Amount      Amount `json:"amount"`
}

// Amount carries the value as a 2-decimal string; the approved amount is
// compared as a string as well, so no float ever crosses the gateway
// boundary.
type Amount struct {
	CurrencyCode string `json:"currency_code"`
	Value        string `json:"value"`
}
