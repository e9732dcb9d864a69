package checkout

import (
	"net/http"
	"os"
	"strconv"
	"time"

	checkoutMiddleware "bitbucket.org/umrahtrips/checkout-hub/internal/checkout/middleware"
	"bitbucket.org/umrahtrips/checkout-hub/internal/checkout/session"
	"bitbucket.org/umrahtrips/checkout-hub/internal/paypal/json"
	"bitbucket.org/umrahtrips/checkout-hub/internal/pricing"
	"bitbucket.org/umrahtrips/checkout-hub/internal/schema"
	"bitbucket.org/umrahtrips/checkout-hub/internal/tools/converting"
	"bitbucket.org/umrahtrips/checkout-hub/internal/tools/responding"
	"bitbucket.org/umrahtrips/checkout-hub/internal/tools/slowlog"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// sdkConfigHandler exposes what the payment widget needs to initialise,
// including the current SAR spot rates for display. The intent is fixed:
// funds are authorized at approval and captured by the reservations backend
// only after the reservation is accepted.
func sdkConfigHandler(deps *Dependencies) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		logger := ctx.MustGet("logger").(*zerolog.Logger)

		env := os.Getenv("PAYPAL_ENV")
		if env == "" {
			env = "sandbox"
		}

		// Display only. Orders are priced through AmountsInUSD at creation
		// time, so stale or missing rates here never touch a charge.
		rates, err := deps.Currency.FetchRates(ctx.Request.Context())
		if err != nil {
			logger.Warn().Err(err).Msg("Spot rates are unavailable for the payment widget")
		}

		ctx.JSON(http.StatusOK, gin.H{
			"clientId":      os.Getenv("PAYPAL_CLIENT_ID"),
			"intent":        "authorize",
			"currency":      "USD",
			"enableFunding": "paypal,card",
			"env":           env,
			"rates": gin.H{
				"sarUsd": rates.SarUsd,
				"sarEur": rates.SarEur,
			},
		})
	}
}

// prepareOrderAmount gates order creation and returns the exact USD string
// the gateway must be charged. Conversions are refreshed on every call so a
// stale rate can never leak into an order.
func prepareOrderAmount(ctx *gin.Context, deps *Dependencies, checkoutSession *session.Session) (string, bool) {
	if checkoutSession.State.IsTerminal() {
		responding.HandleError(ctx, http.StatusConflict, "Checkout session already submitted", ErrSessionCompleted)
		return "", false
	}

	if checkoutSession.PaymentOption == schema.PaymentOptionUnselected {
		responding.HandleError(ctx, http.StatusUnprocessableEntity, "Select a payment option first", ErrNoPaymentOption)
		return "", false
	}

	if checkoutSession.PaymentOption == schema.PaymentOptionPayAtProperty {
		responding.HandleError(ctx, http.StatusUnprocessableEntity, "Pay at property does not create an online order", ErrNoOnlinePayment)
		return "", false
	}

	if checkoutSession.State != session.StateOptioned {
		responding.HandleError(ctx, http.StatusConflict, "An order is already pending for this session", ErrOrderAlreadyPending)
		return "", false
	}

	// Guest details can be rewritten after the option was chosen, so the
	// gate that guarded option selection has to hold again right before
	// money is involved.
	if err := session.ValidateGuest(checkoutSession.Guest, checkoutSession.PaymentOption, time.Now()); err != nil {
		responding.HandleError(ctx, http.StatusUnprocessableEntity, "Guest details no longer pass validation", err)
		return "", false
	}

	converted, err := deps.Currency.AmountsInUSD(ctx.Request.Context(), []float64{
		float64(checkoutSession.Deposit.DepositAmount),
		float64(checkoutSession.Deposit.TotalPriceWithCommission),
		float64(checkoutSession.Deposit.TotalRoomsPricePerNight),
	})
	if err != nil {
		responding.HandleError(ctx, http.StatusBadGateway, "Currency conversion failed", err)
		return "", false
	}

	checkoutSession.Converted = schema.ConvertedAmounts{
		DepositUSD:                 converted[0],
		TotalUSD:                   converted[1],
		TotalRoomsPricePerNightUSD: converted[2],
	}

	usdAmount := checkoutSession.Converted.TotalUSD
	if checkoutSession.PaymentOption == schema.PaymentOptionDeposit {
		usdAmount = checkoutSession.Converted.DepositUSD
	}

	if usdAmount <= 0 {
		responding.HandleError(ctx, http.StatusUnprocessableEntity, "Currency conversion returned no usable amount", ErrConversionUnavailable)
		return "", false
	}

	return strconv.FormatFloat(pricing.Round2(usdAmount), 'f', 2, 64), true
}

func createOrderHandler(deps *Dependencies) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		logger := ctx.MustGet("logger").(*zerolog.Logger)
		params := ctx.MustGet(checkoutMiddleware.ParamsKey).(*CreateOrderParams)
		checkoutSession := ctx.MustGet(checkoutMiddleware.SessionKey).(*session.Session)

		slowLog := slowlog.CreateLogger(logger)
		slowLog.Start("checkout:create-order")
		defer slowLog.Stop("checkout:create-order")

		usdValue, ok := prepareOrderAmount(ctx, deps, checkoutSession)
		if !ok {
			return
		}

		result, err := deps.PayPal.CreateOrder(ctx.Request.Context(), usdValue, logger)
		if err != nil {
			responding.HandleError(ctx, http.StatusBadGateway, "Payment gateway rejected the order", err)
			return
		}

		if len(converting.Unwrap(result.Errors)) > 0 {
			logger.Error().Interface("gatewayErrors", result.Errors).Msg("Payment gateway rejected the order")
			responding.HandleError(ctx, http.StatusBadGateway, "Payment gateway rejected the order", nil)
			return
		}

		if result.Intent != json.IntentAuthorize {
			responding.HandleError(ctx, http.StatusBadGateway, "Payment gateway returned an unexpected intent", ErrUnknownOrder)
			return
		}

		if result.AmountValue != usdValue {
			logger.Error().
				Str("expected", usdValue).
				Str("received", result.AmountValue).
				Msg("Gateway echoed a different order amount")
			responding.HandleError(ctx, http.StatusBadGateway, "Payment gateway returned an unexpected amount", ErrApprovedAmountMismatch)
			return
		}

		checkoutSession.Attempt = &session.Attempt{
			OrderID:           result.OrderID,
			ExpectedUsdAmount: usdValue,
			Cmid:              params.Cmid,
			Mode:              "authorize",
			CreatedAt:         time.Now().UTC(),
		}

		if err := checkoutSession.Transition(session.StateOrderPending); err != nil {
			responding.HandleError(ctx, http.StatusConflict, "Order can not be created now", err)
			return
		}

		if err := deps.Sessions.Save(ctx.Request.Context(), checkoutSession); err != nil {
			responding.HandleError(ctx, http.StatusInternalServerError, "Failed to store checkout session", err)
			return
		}

		ctx.JSON(http.StatusCreated, gin.H{
			"orderId":           result.OrderID,
			"expectedUsdAmount": usdValue,
			"gatewayRequests":   result.GatewayRequests,
		})
	}
}

// registerOrderHandler records an order the payment widget minted on its own.
// The server still owns the expected amount; the widget only supplies the id.
func registerOrderHandler(deps *Dependencies) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		params := ctx.MustGet(checkoutMiddleware.ParamsKey).(*RegisterOrderParams)
		checkoutSession := ctx.MustGet(checkoutMiddleware.SessionKey).(*session.Session)

		usdValue, ok := prepareOrderAmount(ctx, deps, checkoutSession)
		if !ok {
			return
		}

		checkoutSession.Attempt = &session.Attempt{
			OrderID:           params.OrderID,
			ExpectedUsdAmount: usdValue,
			Cmid:              params.Cmid,
			Mode:              "authorize",
			CreatedAt:         time.Now().UTC(),
		}

		if err := checkoutSession.Transition(session.StateOrderPending); err != nil {
			responding.HandleError(ctx, http.StatusConflict, "Order can not be registered now", err)
			return
		}

		if err := deps.Sessions.Save(ctx.Request.Context(), checkoutSession); err != nil {
			responding.HandleError(ctx, http.StatusInternalServerError, "Failed to store checkout session", err)
			return
		}

		ctx.JSON(http.StatusOK, gin.H{
			"orderId":           params.OrderID,
			"expectedUsdAmount": usdValue,
		})
	}
}
