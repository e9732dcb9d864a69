package checkout

import (
	"net/http"

	checkoutMiddleware "bitbucket.org/umrahtrips/checkout-hub/internal/checkout/middleware"
	"bitbucket.org/umrahtrips/checkout-hub/internal/checkout/session"
	"bitbucket.org/umrahtrips/checkout-hub/internal/paypal/json"
	"bitbucket.org/umrahtrips/checkout-hub/internal/tools/converting"
	"bitbucket.org/umrahtrips/checkout-hub/internal/tools/responding"
	"bitbucket.org/umrahtrips/checkout-hub/internal/tools/slowlog"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// approveHandler re-validates an approval server side. The widget's word is
// never trusted: the order is re-fetched from the gateway and its status and
// amount are compared against what this session minted.
func approveHandler(deps *Dependencies) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		logger := ctx.MustGet("logger").(*zerolog.Logger)
		params := ctx.MustGet(checkoutMiddleware.ParamsKey).(*ApproveParams)
		checkoutSession := ctx.MustGet(checkoutMiddleware.SessionKey).(*session.Session)

		slowLog := slowlog.CreateLogger(logger)
		slowLog.Start("checkout:approve-order")
		defer slowLog.Stop("checkout:approve-order")

		if checkoutSession.State != session.StateOrderPending || checkoutSession.Attempt == nil {
			responding.HandleError(ctx, http.StatusConflict, "No pending order to approve", ErrOrderNotPending)
			return
		}

		if params.OrderID != checkoutSession.Attempt.OrderID {
			responding.HandleError(ctx, http.StatusUnprocessableEntity, "Approval references a different order", ErrUnknownOrder)
			return
		}

		result, err := deps.PayPal.GetOrder(ctx.Request.Context(), params.OrderID, logger)
		if err != nil {
			responding.HandleError(ctx, http.StatusBadGateway, "Payment gateway lookup failed", err)
			return
		}

		if len(converting.Unwrap(result.Errors)) > 0 {
			logger.Error().Interface("gatewayErrors", result.Errors).Msg("Payment gateway lookup failed")
			responding.HandleError(ctx, http.StatusBadGateway, "Payment gateway lookup failed", nil)
			return
		}

		if result.Status != json.OrderStatusApproved {
			checkoutSession.DiscardPendingOrder("order not approved: " + result.Status)
			if saveErr := deps.Sessions.Save(ctx.Request.Context(), checkoutSession); saveErr != nil {
				logger.Error().Err(saveErr).Msg("Failed to store checkout session after discarding order")
			}

			responding.HandleError(ctx, http.StatusUnprocessableEntity, "Order is not approved by the gateway", ErrOrderNotPending)
			return
		}

		// The widget can mint its own orders, so the intent is only fully
		// trusted once the gateway echoes it back here. Anything but an
		// authorization hold must never reach submission.
		if result.Intent != json.IntentAuthorize {
			logger.Error().
				Str("intent", result.Intent).
				Msg("Approved order does not carry an authorize intent")

			checkoutSession.DiscardPendingOrder("order intent is not authorize: " + result.Intent)
			if saveErr := deps.Sessions.Save(ctx.Request.Context(), checkoutSession); saveErr != nil {
				logger.Error().Err(saveErr).Msg("Failed to store checkout session after discarding order")
			}

			responding.HandleError(ctx, http.StatusUnprocessableEntity, "Order was not created as an authorization hold", ErrOrderIntentMismatch)
			return
		}

		// String comparison on purpose: both sides are 2-decimal strings and
		// a float round trip could mask a real mismatch.
		if result.AmountValue != checkoutSession.Attempt.ExpectedUsdAmount {
			logger.Error().
				Str("expected", checkoutSession.Attempt.ExpectedUsdAmount).
				Str("approved", result.AmountValue).
				Msg("Approved order amount differs from the minted amount")

			checkoutSession.DiscardPendingOrder("approved amount mismatch")
			if saveErr := deps.Sessions.Save(ctx.Request.Context(), checkoutSession); saveErr != nil {
				logger.Error().Err(saveErr).Msg("Failed to store checkout session after discarding order")
			}

			responding.HandleError(ctx, http.StatusUnprocessableEntity, "Approved amount does not match the order", ErrApprovedAmountMismatch)
			return
		}

		if err := checkoutSession.Transition(session.StateApproved); err != nil {
			responding.HandleError(ctx, http.StatusConflict, "Order can not be approved now", err)
			return
		}

		if err := deps.Sessions.Save(ctx.Request.Context(), checkoutSession); err != nil {
			responding.HandleError(ctx, http.StatusInternalServerError, "Failed to store checkout session", err)
			return
		}

		ctx.JSON(http.StatusOK, snapshot(checkoutSession))
	}
}
