package checkout

import (
	checkoutMiddleware "bitbucket.org/umrahtrips/checkout-hub/internal/checkout/middleware"
	"github.com/gin-gonic/gin"
)

func RegisterRoutes(router *gin.Engine, deps *Dependencies) {
	group := router.Group("/checkout")

	group.GET("/config", sdkConfigHandler(deps))
	group.POST("/session", checkoutMiddleware.PrepareParams(CreateSessionParams{}), createSessionHandler(deps))
	group.POST("/link", checkoutMiddleware.PrepareParams(CreateLinkParams{}), createLinkHandler(deps))
	group.GET("/link/:token", resolveLinkHandler(deps))

	withSession := group.Group(
		"/session/:sessionId",
		checkoutMiddleware.PrepareSession(deps.Sessions),
		checkoutMiddleware.TapLogger,
	)

	withSession.GET("", getSessionHandler())
	withSession.POST("/quote", checkoutMiddleware.PrepareParams(RequoteParams{}), requoteHandler(deps))
	withSession.POST("/guest", checkoutMiddleware.PrepareParams(GuestParams{}), guestHandler(deps))
	withSession.POST("/payment-option", checkoutMiddleware.PrepareParams(PaymentOptionParams{}), paymentOptionHandler(deps))
	withSession.POST("/order", checkoutMiddleware.PrepareParams(CreateOrderParams{}), createOrderHandler(deps))
	withSession.POST("/order/register", checkoutMiddleware.PrepareParams(RegisterOrderParams{}), registerOrderHandler(deps))
	withSession.POST("/approve", checkoutMiddleware.PrepareParams(ApproveParams{}), approveHandler(deps))
	withSession.POST("/submit", submitHandler(deps))
}
