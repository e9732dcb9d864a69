package middleware

import (
	"context"
	"net/http"

	"bitbucket.org/umrahtrips/checkout-hub/internal/checkout/session"
	"bitbucket.org/umrahtrips/checkout-hub/internal/tools/responding"
	"github.com/gin-gonic/gin"
)

type sessionStore interface {
	Fetch(ctx context.Context, id string) (*session.Session, bool)
}

const (
	SessionKey string = "checkoutSession"
)

func PrepareSession(store sessionStore) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		sessionId := ctx.Params.ByName("sessionId")

		checkoutSession, ok := store.Fetch(ctx.Request.Context(), sessionId)
		if !ok {
			responding.HandleError(ctx, http.StatusNotFound, "Checkout session not found", nil)
			return
		}

		ctx.Set(SessionKey, checkoutSession)
	}
}
