package reservations_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"bitbucket.org/umrahtrips/checkout-hub/internal/schema"
	"bitbucket.org/umrahtrips/checkout-hub/internal/tools/client"
	"bitbucket.org/umrahtrips/checkout-hub/internal/tools/client/reservations"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

func TestCreateReservation(t *testing.T) {
	out := &bytes.Buffer{}
	log := zerolog.New(out)

	t.Run("should post the assembled reservation", func(t *testing.T) {
		testServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/new-reservation-client", r.RequestURI)
			assert.Equal(t, "POST", r.Method)

			var request reservations.NewReservationRequest
			assert.NoError(t, json.NewDecoder(r.Body).Decode(&request))
			assert.Equal(t, "session-1", request.SessionID)
			assert.Equal(t, "Deposit", request.PaymentLabel)
			assert.NotNil(t, request.PayPal)
			assert.Equal(t, "ORDER-1", request.PayPal.OrderID)

			w.WriteHeader(http.StatusOK)
			w.Write([]byte(`{"reservationId":"res-1"}`))
		}))
		defer testServer.Close()

		reservationsClient, err := reservations.NewClient(&log, client.WithBaseURL(testServer.URL))
		assert.NoError(t, err)

		response, err := reservationsClient.CreateReservation(context.Background(), requestTemplate())

		assert.NoError(t, err)
		assert.Equal(t, "res-1", response.ReservationID)
		assert.False(t, response.VerificationEmailSent)
	})

	t.Run("should report the verification email for pay at property", func(t *testing.T) {
		testServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			var request reservations.NewReservationRequest
			json.NewDecoder(r.Body).Decode(&request)
			assert.Nil(t, request.PayPal)

			w.WriteHeader(http.StatusOK)
			w.Write([]byte(`{"reservationId":"res-2","verificationEmailSent":true}`))
		}))
		defer testServer.Close()

		reservationsClient, _ := reservations.NewClient(&log, client.WithBaseURL(testServer.URL))

		request := requestTemplate()
		request.PaymentLabel = "Reserve now, pay at property"
		request.Option = schema.PaymentOptionPayAtProperty
		request.PayPal = nil

		response, err := reservationsClient.CreateReservation(context.Background(), request)

		assert.NoError(t, err)
		assert.True(t, response.VerificationEmailSent)
	})

	t.Run("should never swallow backend rejections", func(t *testing.T) {
		testServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusConflict)
		}))
		defer testServer.Close()

		reservationsClient, _ := reservations.NewClient(&log, client.WithBaseURL(testServer.URL))

		_, err := reservationsClient.CreateReservation(context.Background(), requestTemplate())

		assert.Error(t, err)
		assert.Contains(t, err.Error(), "409")
	})
}

func TestCreateUncompleteCheckpoint(t *testing.T) {
	out := &bytes.Buffer{}
	log := zerolog.New(out)

	t.Run("should post checkpoint milestones", func(t *testing.T) {
		testServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/create-uncomplete-reservation-document", r.RequestURI)

			var checkpoint reservations.UncompleteReservation
			assert.NoError(t, json.NewDecoder(r.Body).Decode(&checkpoint))
			assert.Equal(t, "guest-details", checkpoint.Milestone)

			w.WriteHeader(http.StatusCreated)
		}))
		defer testServer.Close()

		reservationsClient, _ := reservations.NewClient(&log, client.WithBaseURL(testServer.URL))

		err := reservationsClient.CreateUncompleteCheckpoint(context.Background(), reservations.UncompleteReservation{
			SessionID: "session-1",
			Milestone: "guest-details",
		})

		assert.NoError(t, err)
	})
}

func requestTemplate() reservations.NewReservationRequest {
	return reservations.NewReservationRequest{
		SessionID:    "session-1",
		PaymentLabel: "Deposit",
		Option:       schema.PaymentOptionDeposit,
		Guest: schema.GuestDetails{
			FullName:      "Ahmed Hassan",
			Phone:         "+966501234567",
			Email:         "ahmed@example.com",
			TermsAccepted: true,
		},
		PaidNowSar:       schema.RoundedFloat(104),
		DueAtPropertySar: schema.RoundedFloat(220),
		PayPal: &schema.PayPalOrderEvidence{
			OrderID:           "ORDER-1",
			ExpectedUsdAmount: "28.08",
			Mode:              "authorize",
		},
	}
}
