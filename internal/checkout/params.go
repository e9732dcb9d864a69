package checkout

import (
	"bitbucket.org/umrahtrips/checkout-hub/internal/schema"
)

type CartLineParams struct {
	RoomID    string `json:"roomId" binding:"required"`
	Count     int    `json:"count" binding:"required,min=1"`
	StartDate string `json:"startDate" binding:"required"`
	EndDate   string `json:"endDate" binding:"required"`
	RoomColor string `json:"roomColor"`
}

type CreateSessionParams struct {
	Lines []CartLineParams `json:"lines" binding:"required,min=1,dive"`
}

// RequoteParams replaces the whole cart: date and quantity changes arrive as
// the full new line set, never as a patch.
type RequoteParams struct {
	Lines []CartLineParams `json:"lines" binding:"required,min=1,dive"`
}

type GuestParams struct {
	FullName       string `json:"fullName" binding:"required"`
	Phone          string `json:"phone" binding:"required"`
	Email          string `json:"email" binding:"required,email"`
	Nationality    string `json:"nationality"`
	PassportNumber string `json:"passportNumber"`
	PassportExpiry string `json:"passportExpiry"`
	TermsAccepted  bool   `json:"termsAccepted"`
}

type PaymentOptionParams struct {
	Option schema.PaymentOption `json:"option" binding:"required"`
}

type CreateOrderParams struct {
	Cmid string `json:"cmid"`
}

// RegisterOrderParams is the redirect-button path: the SDK created the order
// client-side, the hub only learns its id.
type RegisterOrderParams struct {
	OrderID string `json:"orderId" binding:"required"`
	Cmid    string `json:"cmid"`
}

type ApproveParams struct {
	OrderID string `json:"orderId" binding:"required"`
}

type CreateLinkParams struct {
	Lines    []CartLineParams `json:"lines" binding:"required,min=1,dive"`
	TTLHours int              `json:"ttlHours"`
}
