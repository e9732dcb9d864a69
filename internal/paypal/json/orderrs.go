package json

const (
	OrderStatusCreated   = "CREATED"
	OrderStatusApproved  = "APPROVED"
	OrderStatusCompleted = "COMPLETED"
	OrderStatusVoided    = "VOIDED"
)

type OrderRS struct {
	ID            string         `json:"id"`
	Status        string         `json:"status"`
	Intent        string         `json:"intent"`
	PurchaseUnits []PurchaseUnit `json:"purchase_units"`
	Links         []Link         `json:"links"`

	// Error shape, populated instead of the order fields on 4xx responses.
	Name    string        `json:"name"`
	Message string        `json:"message"`
	Details []ErrorDetail `json:"details"`
}

type Link struct {
	Href   string `json:"href"`
	Rel    string `json:"rel"`
	Method string `json:"method"`
}

type ErrorDetail struct {
	Issue       string `json:"issue"`
	Description string `json:"description"`
}

func (o OrderRS) ErrorMessage() string {
	if o.Name == "" {
		return ""
	}

	message := o.Name
	if o.Message != "" {
		message += ": " + o.Message
	}

	if len(o.Details) > 0 {
		message += " (" + o.Details[0].Issue + ")"
	}

	return message
}

// AmountValue is the purchase-unit amount as the gateway echoes it back.
func (o OrderRS) AmountValue() string {
	if len(o.PurchaseUnits) == 0 {
		return ""
	}

	return o.PurchaseUnits[0].Amount.Value
}
