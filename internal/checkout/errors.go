package checkout

import "errors"

var (
	ErrEmptyStay              = errors.New("stay must cover at least one night")
	ErrUnknownRoom            = errors.New("unknown room id")
	ErrNoPaymentOption        = errors.New("no payment option chosen")
	ErrNoOnlinePayment        = errors.New("pay at property collects nothing online")
	ErrOrderAlreadyPending    = errors.New("an order is already pending for this session")
	ErrSessionCompleted       = errors.New("checkout session already submitted")
	ErrSubmissionInFlight     = errors.New("submission already in progress")
	ErrConversionUnavailable  = errors.New("usd conversion unavailable")
	ErrOrderNotPending        = errors.New("no pending order for this session")
	ErrUnknownOrder           = errors.New("approval references an unknown order")
	ErrOrderIntentMismatch    = errors.New("order was not created with an authorize intent")
	ErrApprovedAmountMismatch = errors.New("approved amount does not match expected amount")
)
