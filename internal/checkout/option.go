package checkout

import (
	"net/http"
	"time"

	checkoutMiddleware "bitbucket.org/umrahtrips/checkout-hub/internal/checkout/middleware"
	"bitbucket.org/umrahtrips/checkout-hub/internal/checkout/session"
	"bitbucket.org/umrahtrips/checkout-hub/internal/tools/responding"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

func paymentOptionHandler(deps *Dependencies) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		logger := ctx.MustGet("logger").(*zerolog.Logger)
		params := ctx.MustGet(checkoutMiddleware.ParamsKey).(*PaymentOptionParams)
		checkoutSession := ctx.MustGet(checkoutMiddleware.SessionKey).(*session.Session)

		if checkoutSession.State.IsTerminal() {
			responding.HandleError(ctx, http.StatusConflict, "Checkout session already submitted", ErrSessionCompleted)
			return
		}

		if err := session.ValidateGuest(checkoutSession.Guest, params.Option, time.Now()); err != nil {
			responding.HandleError(ctx, http.StatusUnprocessableEntity, "Guest details incomplete for this payment option", err)
			return
		}

		// Re-selecting while an order is pending invalidates that order: its
		// amount was priced for the previous option.
		if checkoutSession.DiscardPendingOrder("payment option changed") {
			logger.Info().Msg("Discarded pending order after payment option change")
		}

		checkoutSession.PaymentOption = params.Option

		if err := checkoutSession.Transition(session.StateOptioned); err != nil {
			responding.HandleError(ctx, http.StatusConflict, "Payment option can not be selected now", err)
			return
		}

		if err := deps.Sessions.Save(ctx.Request.Context(), checkoutSession); err != nil {
			responding.HandleError(ctx, http.StatusInternalServerError, "Failed to store checkout session", err)
			return
		}

		writeCheckpoint(deps, logger, checkoutSession, "payment-option")

		ctx.JSON(http.StatusOK, snapshot(checkoutSession))
	}
}
