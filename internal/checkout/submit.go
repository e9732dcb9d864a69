package checkout

import (
	"net/http"
	"time"

	checkoutMiddleware "bitbucket.org/umrahtrips/checkout-hub/internal/checkout/middleware"
	"bitbucket.org/umrahtrips/checkout-hub/internal/checkout/session"
	"bitbucket.org/umrahtrips/checkout-hub/internal/pricing"
	"bitbucket.org/umrahtrips/checkout-hub/internal/reservation"
	"bitbucket.org/umrahtrips/checkout-hub/internal/schema"
	"bitbucket.org/umrahtrips/checkout-hub/internal/tools/client/reservations"
	"bitbucket.org/umrahtrips/checkout-hub/internal/tools/responding"
	"bitbucket.org/umrahtrips/checkout-hub/internal/tools/slowlog"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// submitHandler hands the checkout to the reservations backend. A redis lock
// keeps double clicks from creating two reservations; the lock is released
// only when the submission fails so a retry stays possible.
func submitHandler(deps *Dependencies) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		logger := ctx.MustGet("logger").(*zerolog.Logger)
		checkoutSession := ctx.MustGet(checkoutMiddleware.SessionKey).(*session.Session)

		slowLog := slowlog.CreateLogger(logger)
		slowLog.Start("checkout:submit")
		defer slowLog.Stop("checkout:submit")

		if checkoutSession.State.IsTerminal() {
			responding.HandleError(ctx, http.StatusConflict, "Checkout session already submitted", ErrSessionCompleted)
			return
		}

		locked, err := deps.Sessions.AcquireSubmitLock(ctx.Request.Context(), checkoutSession.ID)
		if err != nil {
			responding.HandleError(ctx, http.StatusInternalServerError, "Failed to acquire submission lock", err)
			return
		}
		if !locked {
			responding.HandleError(ctx, http.StatusConflict, "A submission is already in progress", ErrSubmissionInFlight)
			return
		}

		isPayAtProperty := checkoutSession.PaymentOption == schema.PaymentOptionPayAtProperty

		var paypalEvidence *schema.PayPalOrderEvidence
		if isPayAtProperty {
			if checkoutSession.State != session.StateOptioned {
				deps.Sessions.ReleaseSubmitLock(ctx.Request.Context(), checkoutSession.ID)
				responding.HandleError(ctx, http.StatusConflict, "Session is not ready for submission", ErrNoPaymentOption)
				return
			}

			if err := session.ValidateGuest(checkoutSession.Guest, checkoutSession.PaymentOption, time.Now()); err != nil {
				deps.Sessions.ReleaseSubmitLock(ctx.Request.Context(), checkoutSession.ID)
				responding.HandleError(ctx, http.StatusUnprocessableEntity, "Guest details incomplete for this payment option", err)
				return
			}
		} else {
			if checkoutSession.State != session.StateApproved || checkoutSession.Attempt == nil {
				deps.Sessions.ReleaseSubmitLock(ctx.Request.Context(), checkoutSession.ID)
				responding.HandleError(ctx, http.StatusConflict, "Payment was not approved for this session", ErrOrderNotPending)
				return
			}

			evidence := checkoutSession.Attempt.Evidence()
			paypalEvidence = &evidence
		}

		request := reservations.NewReservationRequest{
			SessionID:       checkoutSession.ID,
			PaymentLabel:    checkoutSession.PaymentOption.Label(),
			Option:          checkoutSession.PaymentOption,
			Guest:           checkoutSession.Guest,
			PickedRoomsType: reservation.Expand(checkoutSession.Lines, isPayAtProperty),
			Deposit:         checkoutSession.Deposit,
			PaidNowSar: schema.RoundedFloat(
				pricing.AmountDueNow(checkoutSession.PaymentOption, checkoutSession.Deposit),
			),
			DueAtPropertySar: schema.RoundedFloat(
				pricing.AmountDueAtProperty(checkoutSession.PaymentOption, checkoutSession.Deposit),
			),
			PayPal: paypalEvidence,
		}

		response, err := deps.Reservations.CreateReservation(ctx.Request.Context(), request)
		if err != nil {
			deps.Sessions.ReleaseSubmitLock(ctx.Request.Context(), checkoutSession.ID)

			// The guest may already have an authorized payment riding on this
			// rejection, so the error payload carries the order evidence for
			// support to reconcile against the gateway.
			payload := gin.H{"message": "Reservation backend rejected the submission"}
			if paypalEvidence != nil {
				payload["orderId"] = paypalEvidence.OrderID
				payload["cmid"] = paypalEvidence.Cmid
			}

			logger.Error().Err(err).Interface("evidence", paypalEvidence).Msg("Reservation backend rejected the submission")
			ctx.AbortWithStatusJSON(http.StatusBadGateway, gin.H{"error": payload})
			return
		}

		if err := checkoutSession.Transition(session.StateSubmitted); err != nil {
			responding.HandleError(ctx, http.StatusConflict, "Session can not be submitted now", err)
			return
		}

		if err := deps.Sessions.Save(ctx.Request.Context(), checkoutSession); err != nil {
			responding.HandleError(ctx, http.StatusInternalServerError, "Failed to store checkout session", err)
			return
		}

		ctx.JSON(http.StatusOK, gin.H{
			"reservationId":         response.ReservationID,
			"verificationEmailSent": response.VerificationEmailSent,
			"session":               snapshot(checkoutSession),
		})
	}
}
