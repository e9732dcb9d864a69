package session_test

import (
	"testing"
	"time"

	"bitbucket.org/umrahtrips/checkout-hub/internal/checkout/session"
	"bitbucket.org/umrahtrips/checkout-hub/internal/schema"
	"github.com/stretchr/testify/assert"
)

func TestValidateGuest(t *testing.T) {
	now, _ := time.Parse("2006-01-02", "2026-08-30")

	validGuest := func() schema.GuestDetails {
		return schema.GuestDetails{
			FullName:       "Ahmed Hassan",
			Phone:          "+966 50 123 4567",
			Email:          "ahmed@example.com",
			Nationality:    "EG",
			PassportNumber: "A1234567",
			PassportExpiry: "2028-01-01",
			TermsAccepted:  true,
		}
	}

	t.Run("should accept a complete guest for every option", func(t *testing.T) {
		for _, option := range []schema.PaymentOption{
			schema.PaymentOptionDeposit,
			schema.PaymentOptionFullOnline,
			schema.PaymentOptionPayAtProperty,
		} {
			assert.NoError(t, session.ValidateGuest(validGuest(), option, now))
		}
	})

	t.Run("should require accepted terms first", func(t *testing.T) {
		guest := validGuest()
		guest.TermsAccepted = false

		err := session.ValidateGuest(guest, schema.PaymentOptionDeposit, now)

		assert.ErrorIs(t, err, session.ErrTermsNotAccepted)
	})

	t.Run("should require at least two name words", func(t *testing.T) {
		guest := validGuest()
		guest.FullName = "Ahmed"

		err := session.ValidateGuest(guest, schema.PaymentOptionDeposit, now)

		assert.ErrorIs(t, err, session.ErrMissingFullName)
	})

	t.Run("should require a plausible phone number", func(t *testing.T) {
		guest := validGuest()
		guest.Phone = "phone"

		err := session.ValidateGuest(guest, schema.PaymentOptionDeposit, now)

		assert.ErrorIs(t, err, session.ErrMissingPhone)
	})

	t.Run("should require a plausible email", func(t *testing.T) {
		guest := validGuest()
		guest.Email = "not-an-email"

		err := session.ValidateGuest(guest, schema.PaymentOptionDeposit, now)

		assert.ErrorIs(t, err, session.ErrInvalidEmail)
	})

	t.Run("should require passport details only for pay at property", func(t *testing.T) {
		guest := validGuest()
		guest.PassportNumber = ""
		guest.PassportExpiry = ""

		assert.NoError(t, session.ValidateGuest(guest, schema.PaymentOptionDeposit, now))
		assert.ErrorIs(t,
			session.ValidateGuest(guest, schema.PaymentOptionPayAtProperty, now),
			session.ErrMissingPassport,
		)
	})

	t.Run("should reject passports expiring within six months", func(t *testing.T) {
		guest := validGuest()
		guest.PassportExpiry = "2026-12-01"

		err := session.ValidateGuest(guest, schema.PaymentOptionPayAtProperty, now)

		assert.ErrorIs(t, err, session.ErrPassportExpiresSoon)
	})

	t.Run("should reject unparseable passport expiry dates", func(t *testing.T) {
		guest := validGuest()
		guest.PassportExpiry = "next year"

		err := session.ValidateGuest(guest, schema.PaymentOptionPayAtProperty, now)

		assert.Error(t, err)
	})
}
