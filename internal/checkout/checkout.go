package checkout

import (
	"os"
	"strconv"

	"bitbucket.org/umrahtrips/checkout-hub/internal/checkout/session"
	"bitbucket.org/umrahtrips/checkout-hub/internal/paypal"
	"bitbucket.org/umrahtrips/checkout-hub/internal/pricing"
	"bitbucket.org/umrahtrips/checkout-hub/internal/tools/caching"
	"bitbucket.org/umrahtrips/checkout-hub/internal/tools/client/currencyapi"
	"bitbucket.org/umrahtrips/checkout-hub/internal/tools/client/reservations"
	"bitbucket.org/umrahtrips/checkout-hub/internal/tools/client/rooms"
	"bitbucket.org/umrahtrips/checkout-hub/internal/tools/redisfactory"
	"github.com/rs/zerolog"
)

// Dependencies wires the checkout handlers to the session store and the
// platform's sibling services. Built once at startup.
type Dependencies struct {
	Sessions          *session.Store
	Rooms             *rooms.Client
	Currency          *currencyapi.Client
	Reservations      *reservations.Client
	PayPal            *paypal.Client
	DefaultCommission float64
	LinkSigningKey    []byte
}

func NewDependencies(log *zerolog.Logger, redisFactory *redisfactory.Factory) (*Dependencies, error) {
	roomsClient, err := rooms.NewClient(log, caching.NewRedisCache(redisFactory.ResponsesCacheClient()))
	if err != nil {
		return nil, err
	}

	currencyClient, err := currencyapi.NewClient(log)
	if err != nil {
		return nil, err
	}

	reservationsClient, err := reservations.NewClient(log)
	if err != nil {
		return nil, err
	}

	defaultCommission, err := strconv.ParseFloat(os.Getenv("DEFAULT_COMMISSION_RATE"), 64)
	if err != nil {
		defaultCommission = 0.10
	}

	return &Dependencies{
		Sessions:          session.NewStore(redisFactory.SessionsClient()),
		Rooms:             roomsClient,
		Currency:          currencyClient,
		Reservations:      reservationsClient,
		PayPal:            paypal.New(redisFactory.ResponsesCacheClient(), paypal.ConfigurationFromEnv()),
		DefaultCommission: pricing.NormalizeCommission(defaultCommission),
		LinkSigningKey:    []byte(os.Getenv("CHECKOUT_LINK_SIGNING_KEY")),
	}, nil
}
