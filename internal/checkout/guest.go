package checkout

import (
	"context"
	"net/http"
	"time"

	checkoutMiddleware "bitbucket.org/umrahtrips/checkout-hub/internal/checkout/middleware"
	"bitbucket.org/umrahtrips/checkout-hub/internal/checkout/session"
	"bitbucket.org/umrahtrips/checkout-hub/internal/schema"
	"bitbucket.org/umrahtrips/checkout-hub/internal/tools/client/reservations"
	"bitbucket.org/umrahtrips/checkout-hub/internal/tools/responding"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// writeCheckpoint records an abandoned-cart milestone in the background.
// Strictly best effort: the guest never waits on it and never sees it fail.
func writeCheckpoint(deps *Dependencies, logger *zerolog.Logger, checkoutSession *session.Session, milestone string) {
	checkpoint := reservations.UncompleteReservation{
		SessionID: checkoutSession.ID,
		Milestone: milestone,
		Guest:     checkoutSession.Guest,
		Option:    checkoutSession.PaymentOption,
		Lines:     checkoutSession.Lines,
		Deposit:   checkoutSession.Deposit,
	}

	backgroundLogger := logger.With().Str("milestone", milestone).Logger()

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := deps.Reservations.CreateUncompleteCheckpoint(ctx, checkpoint); err != nil {
			backgroundLogger.Warn().Err(err).Msg("Failed to write uncomplete reservation checkpoint")
		}
	}()
}

func guestHandler(deps *Dependencies) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		logger := ctx.MustGet("logger").(*zerolog.Logger)
		params := ctx.MustGet(checkoutMiddleware.ParamsKey).(*GuestParams)
		checkoutSession := ctx.MustGet(checkoutMiddleware.SessionKey).(*session.Session)

		if checkoutSession.State.IsTerminal() {
			responding.HandleError(ctx, http.StatusConflict, "Checkout session already submitted", ErrSessionCompleted)
			return
		}

		checkoutSession.Guest = schema.GuestDetails{
			FullName:       params.FullName,
			Phone:          params.Phone,
			Email:          params.Email,
			Nationality:    params.Nationality,
			PassportNumber: params.PassportNumber,
			PassportExpiry: params.PassportExpiry,
			TermsAccepted:  params.TermsAccepted,
		}

		if err := deps.Sessions.Save(ctx.Request.Context(), checkoutSession); err != nil {
			responding.HandleError(ctx, http.StatusInternalServerError, "Failed to store checkout session", err)
			return
		}

		if params.TermsAccepted {
			writeCheckpoint(deps, logger, checkoutSession, "guest-details")
		}

		ctx.JSON(http.StatusOK, snapshot(checkoutSession))
	}
}
