package reservations

import (
	"bitbucket.org/umrahtrips/checkout-hub/internal/schema"
)

// NewReservationRequest is the reservation-creation payload. The paypal block
// is present only when an online payment was authorized; its absence is the
// pay-at-property signal, answered with a verification email instead of a
// charge.
type NewReservationRequest struct {
	SessionID        string                      `json:"sessionId"`
	PaymentLabel     string                      `json:"payment"`
	Option           schema.PaymentOption        `json:"option"`
	Guest            schema.GuestDetails         `json:"guest"`
	PickedRoomsType  []schema.PickedRoomType     `json:"pickedRoomsType"`
	Deposit          schema.DepositDetails       `json:"depositDetails"`
	PaidNowSar       schema.RoundedFloat         `json:"paidNowSar"`
	DueAtPropertySar schema.RoundedFloat         `json:"dueAtPropertySar"`
	PayPal           *schema.PayPalOrderEvidence `json:"paypal,omitempty"`
}

type NewReservationResponse struct {
	ReservationID         string `json:"reservationId,omitempty"`
	VerificationEmailSent bool   `json:"verificationEmailSent,omitempty"`
}

// UncompleteReservation is the abandoned-cart checkpoint written at checkout
// milestones. Fire and forget: failures are logged, never surfaced.
type UncompleteReservation struct {
	SessionID string                `json:"sessionId"`
	Milestone string                `json:"milestone"`
	Guest     schema.GuestDetails   `json:"guest"`
	Option    schema.PaymentOption  `json:"option"`
	Lines     []schema.RoomCartLine `json:"lines"`
	Deposit   schema.DepositDetails `json:"depositDetails"`
}
