package checkout

import (
	"context"
	"fmt"
	"net/http"

	checkoutMiddleware "bitbucket.org/umrahtrips/checkout-hub/internal/checkout/middleware"
	"bitbucket.org/umrahtrips/checkout-hub/internal/checkout/session"
	"bitbucket.org/umrahtrips/checkout-hub/internal/pricing"
	"bitbucket.org/umrahtrips/checkout-hub/internal/schema"
	"bitbucket.org/umrahtrips/checkout-hub/internal/tools/responding"
	"bitbucket.org/umrahtrips/checkout-hub/internal/tools/slowlog"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// buildCartLines prices the requested cart against fresh room documents.
// Each line gets a complete breakdown or the whole build fails; a partially
// priced cart never leaves this function.
func buildCartLines(ctx context.Context, deps *Dependencies, params []CartLineParams) ([]schema.RoomCartLine, error) {
	roomIds := make([]string, 0, len(params))
	for _, line := range params {
		roomIds = append(roomIds, line.RoomID)
	}

	roomsById, err := deps.Rooms.GetByIds(ctx, roomIds)
	if err != nil {
		return nil, err
	}

	lines := make([]schema.RoomCartLine, 0, len(params))
	for _, lineParams := range params {
		room, ok := roomsById[lineParams.RoomID]
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrUnknownRoom, lineParams.RoomID)
		}

		startDate, err := pricing.ParseDay(lineParams.StartDate)
		if err != nil {
			return nil, fmt.Errorf("invalid start date: %w", err)
		}

		endDate, err := pricing.ParseDay(lineParams.EndDate)
		if err != nil {
			return nil, fmt.Errorf("invalid end date: %w", err)
		}

		breakdown := pricing.BuildNightlyBreakdown(room, startDate, endDate, deps.DefaultCommission)
		if len(breakdown) == 0 {
			return nil, ErrEmptyStay
		}

		lines = append(lines, schema.RoomCartLine{
			RoomID:                         room.ID,
			HotelID:                        room.HotelID,
			RoomType:                       room.RoomType,
			DisplayName:                    room.DisplayName,
			Count:                          lineParams.Count,
			StartDate:                      lineParams.StartDate,
			EndDate:                        lineParams.EndDate,
			RoomColor:                      lineParams.RoomColor,
			NightlyBreakdown:               breakdown,
			NightlyBreakdownWithCommission: pricing.WithCommission(breakdown),
		})
	}

	return lines, nil
}

func createSession(ctx context.Context, deps *Dependencies, params []CartLineParams) (*session.Session, error) {
	lines, err := buildCartLines(ctx, deps, params)
	if err != nil {
		return nil, err
	}

	checkoutSession := session.New()
	checkoutSession.Lines = lines
	checkoutSession.Deposit = pricing.CalculateDeposit(lines)

	if err := checkoutSession.Transition(session.StateQuoted); err != nil {
		return nil, err
	}

	if err := deps.Sessions.Save(ctx, checkoutSession); err != nil {
		return nil, err
	}

	return checkoutSession, nil
}

func createSessionHandler(deps *Dependencies) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		logger := ctx.MustGet("logger").(*zerolog.Logger)
		params := ctx.MustGet(checkoutMiddleware.ParamsKey).(*CreateSessionParams)

		slowLog := slowlog.CreateLogger(logger)
		slowLog.Start("checkout:create-session")
		defer slowLog.Stop("checkout:create-session")

		checkoutSession, err := createSession(ctx.Request.Context(), deps, params.Lines)
		if err != nil {
			responding.HandleError(ctx, http.StatusBadRequest, "Failed to price cart", err)
			return
		}

		ctx.JSON(http.StatusCreated, snapshot(checkoutSession))
	}
}

func requoteHandler(deps *Dependencies) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		logger := ctx.MustGet("logger").(*zerolog.Logger)
		params := ctx.MustGet(checkoutMiddleware.ParamsKey).(*RequoteParams)
		checkoutSession := ctx.MustGet(checkoutMiddleware.SessionKey).(*session.Session)

		if checkoutSession.State.IsTerminal() {
			responding.HandleError(ctx, http.StatusConflict, "Checkout session already submitted", ErrSessionCompleted)
			return
		}

		lines, err := buildCartLines(ctx.Request.Context(), deps, params.Lines)
		if err != nil {
			responding.HandleError(ctx, http.StatusBadRequest, "Failed to price cart", err)
			return
		}

		// A pending order references an amount that just went stale.
		if checkoutSession.DiscardPendingOrder("cart changed") {
			logger.Info().Msg("Discarded pending order after cart change")
		}

		checkoutSession.Lines = lines
		checkoutSession.Deposit = pricing.CalculateDeposit(lines)
		checkoutSession.Converted = schema.ConvertedAmounts{}

		if err := deps.Sessions.Save(ctx.Request.Context(), checkoutSession); err != nil {
			responding.HandleError(ctx, http.StatusInternalServerError, "Failed to store checkout session", err)
			return
		}

		ctx.JSON(http.StatusOK, snapshot(checkoutSession))
	}
}

func getSessionHandler() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		checkoutSession := ctx.MustGet(checkoutMiddleware.SessionKey).(*session.Session)
		ctx.JSON(http.StatusOK, snapshot(checkoutSession))
	}
}
