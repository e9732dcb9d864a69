package session

import (
	"fmt"
	"time"

	"bitbucket.org/umrahtrips/checkout-hub/internal/schema"
	"github.com/google/uuid"
)

// State is the checkout session lifecycle. Submitted is the only terminal
// state; a failed payment attempt returns the session to its pre-order state
// so the guest can retry with a fresh order.
type State string

const (
	StateCreated      State = "CREATED"
	StateQuoted       State = "QUOTED"
	StateOptioned     State = "OPTIONED"
	StateOrderPending State = "ORDER_PENDING"
	StateApproved     State = "APPROVED"
	StateSubmitted    State = "SUBMITTED"
)

func (s State) String() string {
	return string(s)
}

func (s State) IsTerminal() bool {
	return s == StateSubmitted
}

var allowedTransitions = map[State][]State{
	StateCreated:      {StateQuoted},
	StateQuoted:       {StateQuoted, StateOptioned},
	StateOptioned:     {StateQuoted, StateOptioned, StateOrderPending, StateSubmitted},
	StateOrderPending: {StateQuoted, StateOptioned, StateApproved},
	StateApproved:     {StateQuoted, StateOptioned, StateSubmitted},
	StateSubmitted:    {},
}

func (s State) CanTransitionTo(next State) bool {
	for _, allowed := range allowedTransitions[s] {
		if allowed == next {
			return true
		}
	}

	return false
}

// Attempt is one PayPal order attempt. A retry after failure always mints a
// new attempt; order ids are never reused.
type Attempt struct {
	OrderID           string    `json:"orderId"`
	ExpectedUsdAmount string    `json:"expectedUsdAmount"`
	Cmid              string    `json:"cmid,omitempty"`
	Mode              string    `json:"mode"`
	CreatedAt         time.Time `json:"createdAt"`
	FailureReason     string    `json:"failureReason,omitempty"`
}

func (a Attempt) Evidence() schema.PayPalOrderEvidence {
	return schema.PayPalOrderEvidence{
		OrderID:           a.OrderID,
		ExpectedUsdAmount: a.ExpectedUsdAmount,
		Cmid:              a.Cmid,
		Mode:              a.Mode,
	}
}

// Session is the single state container for one checkout. Every mutation
// goes through Transition so an illegal jump is impossible to persist.
type Session struct {
	ID             string                  `json:"id"`
	State          State                   `json:"state"`
	Lines          []schema.RoomCartLine   `json:"lines"`
	Guest          schema.GuestDetails     `json:"guest"`
	PaymentOption  schema.PaymentOption    `json:"paymentOption"`
	Deposit        schema.DepositDetails   `json:"depositDetails"`
	Converted      schema.ConvertedAmounts `json:"convertedAmounts"`
	Attempt        *Attempt                `json:"attempt,omitempty"`
	FailedAttempts []Attempt               `json:"failedAttempts,omitempty"`
	CreatedAt      time.Time               `json:"createdAt"`
	UpdatedAt      time.Time               `json:"updatedAt"`
}

func New() *Session {
	now := time.Now().UTC()

	return &Session{
		ID:        uuid.New().String(),
		State:     StateCreated,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func (s *Session) Transition(next State) error {
	if !s.State.CanTransitionTo(next) {
		return fmt.Errorf("illegal checkout transition %s -> %s", s.State, next)
	}

	s.State = next
	s.UpdatedAt = time.Now().UTC()

	return nil
}

func (s *Session) HasPendingOrder() bool {
	return s.Attempt != nil && (s.State == StateOrderPending || s.State == StateApproved)
}

// DiscardPendingOrder drops the in-flight order attempt, keeping it on the
// failed list for support evidence, and rolls the session back to the state
// matching what the guest has filled in so far.
func (s *Session) DiscardPendingOrder(reason string) bool {
	if !s.HasPendingOrder() {
		return false
	}

	attempt := *s.Attempt
	attempt.FailureReason = reason
	s.FailedAttempts = append(s.FailedAttempts, attempt)
	s.Attempt = nil

	if s.PaymentOption != schema.PaymentOptionUnselected {
		s.State = StateOptioned
	} else {
		s.State = StateQuoted
	}
	s.UpdatedAt = time.Now().UTC()

	return true
}
