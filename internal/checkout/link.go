package checkout

import (
	"net/http"
	"time"

	"bitbucket.org/umrahtrips/checkout-hub/internal/checkout/link"
	checkoutMiddleware "bitbucket.org/umrahtrips/checkout-hub/internal/checkout/middleware"
	"bitbucket.org/umrahtrips/checkout-hub/internal/tools/responding"
	"github.com/gin-gonic/gin"
)

func createLinkHandler(deps *Dependencies) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		params := ctx.MustGet(checkoutMiddleware.ParamsKey).(*CreateLinkParams)

		seedLines := make([]link.SeedLine, 0, len(params.Lines))
		for _, line := range params.Lines {
			seedLines = append(seedLines, link.SeedLine{
				RoomID:    line.RoomID,
				Count:     line.Count,
				StartDate: line.StartDate,
				EndDate:   line.EndDate,
				RoomColor: line.RoomColor,
			})
		}

		token, err := link.Sign(
			deps.LinkSigningKey,
			link.CartSeed{Lines: seedLines},
			time.Duration(params.TTLHours)*time.Hour,
		)
		if err != nil {
			responding.HandleError(ctx, http.StatusInternalServerError, "Failed to sign checkout link", err)
			return
		}

		ctx.JSON(http.StatusCreated, gin.H{"token": token})
	}
}

// resolveLinkHandler opens a shared link: the cart seed is re-priced through
// the same path a direct checkout takes, so both flows always agree on the
// numbers.
func resolveLinkHandler(deps *Dependencies) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		cart, err := link.Parse(deps.LinkSigningKey, ctx.Param("token"))
		if err != nil {
			responding.HandleError(ctx, http.StatusUnauthorized, "Checkout link is invalid or expired", err)
			return
		}

		lines := make([]CartLineParams, 0, len(cart.Lines))
		for _, seed := range cart.Lines {
			lines = append(lines, CartLineParams{
				RoomID:    seed.RoomID,
				Count:     seed.Count,
				StartDate: seed.StartDate,
				EndDate:   seed.EndDate,
				RoomColor: seed.RoomColor,
			})
		}

		checkoutSession, err := createSession(ctx.Request.Context(), deps, lines)
		if err != nil {
			responding.HandleError(ctx, http.StatusBadRequest, "Failed to price cart", err)
			return
		}

		ctx.JSON(http.StatusCreated, snapshot(checkoutSession))
	}
}
