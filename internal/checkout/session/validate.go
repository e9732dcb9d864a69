package session

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"bitbucket.org/umrahtrips/checkout-hub/internal/pricing"
	"bitbucket.org/umrahtrips/checkout-hub/internal/schema"
)

// The validation gate every payment option must pass before it can be
// activated. Purely local: no network call happens until the gate is clear.

var (
	ErrTermsNotAccepted    = errors.New("terms and conditions not accepted")
	ErrMissingFullName     = errors.New("full name is required")
	ErrMissingPhone        = errors.New("a valid phone number is required")
	ErrInvalidEmail        = errors.New("a valid email is required")
	ErrMissingPassport     = errors.New("passport number is required for pay at property")
	ErrPassportExpiresSoon = errors.New("passport must be valid for at least 6 months")
)

var (
	emailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)
	phonePattern = regexp.MustCompile(`^\+?[0-9 \-()]{7,20}$`)
)

func ValidateGuest(guest schema.GuestDetails, option schema.PaymentOption, now time.Time) error {
	if !guest.TermsAccepted {
		return ErrTermsNotAccepted
	}

	if len(strings.Fields(guest.FullName)) < 2 {
		return ErrMissingFullName
	}

	if !phonePattern.MatchString(strings.TrimSpace(guest.Phone)) {
		return ErrMissingPhone
	}

	if !emailPattern.MatchString(strings.TrimSpace(guest.Email)) {
		return ErrInvalidEmail
	}

	if option == schema.PaymentOptionPayAtProperty {
		if strings.TrimSpace(guest.PassportNumber) == "" {
			return ErrMissingPassport
		}

		expiry, err := pricing.ParseDay(guest.PassportExpiry)
		if err != nil {
			return fmt.Errorf("invalid passport expiry: %w", err)
		}

		if expiry.Before(now.AddDate(0, 6, 0)) {
			return ErrPassportExpiresSoon
		}
	}

	return nil
}
