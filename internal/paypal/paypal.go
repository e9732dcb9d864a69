package paypal

import (
	"context"
	"net/http"
	"os"
	"time"

	"bitbucket.org/umrahtrips/checkout-hub/internal/schema"
	"bitbucket.org/umrahtrips/checkout-hub/internal/tools/caching"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

const (
	sandboxApiUrl = "https://api-m.sandbox.paypal.com"
	liveApiUrl    = "https://api-m.paypal.com"

	defaultTimeout = 10 * time.Second
)

type Configuration struct {
	ApiUrl       string
	ClientID     string
	ClientSecret string
	Env          string
}

// ConfigurationFromEnv picks sandbox or live from PAYPAL_ENV unless
// PAYPAL_API_URL overrides the base URL outright (tests do).
func ConfigurationFromEnv() Configuration {
	configuration := Configuration{
		ApiUrl:       os.Getenv("PAYPAL_API_URL"),
		ClientID:     os.Getenv("PAYPAL_CLIENT_ID"),
		ClientSecret: os.Getenv("PAYPAL_CLIENT_SECRET"),
		Env:          os.Getenv("PAYPAL_ENV"),
	}

	if configuration.ApiUrl == "" {
		if configuration.Env == "live" {
			configuration.ApiUrl = liveApiUrl
		} else {
			configuration.ApiUrl = sandboxApiUrl
		}
	}

	return configuration
}

// Client drives the PayPal order lifecycle. Every operation reports its
// outgoing traffic into a gateway-request bucket so payment attempts keep
// their evidence.
type Client struct {
	redis         *redis.Client
	httpTransport *http.Transport
	configuration Configuration
}

func New(redisClient *redis.Client, configuration Configuration) *Client {
	transport := http.DefaultTransport.(*http.Transport)
	// improves durations a lot
	transport.DisableKeepAlives = true

	return &Client{
		redis:         redisClient,
		httpTransport: transport,
		configuration: configuration,
	}
}

// CreateOrder mints a fresh AUTHORIZE order for the given 2-decimal USD
// value. Every call creates a new order id; retries never reuse one.
func (c *Client) CreateOrder(ctx context.Context, usdValue string, logger *zerolog.Logger) (OrderResult, error) {
	request := createOrderRequest{
		cache:         caching.NewRedisCache(c.redis),
		configuration: c.configuration,
		usdValue:      usdValue,
		logger:        logger,
	}

	return request.Execute(ctx, c.httpTransport)
}

// GetOrder re-fetches an order so the approved amount can be re-validated
// against what checkout expected.
func (c *Client) GetOrder(ctx context.Context, orderID string, logger *zerolog.Logger) (OrderResult, error) {
	request := getOrderRequest{
		cache:         caching.NewRedisCache(c.redis),
		configuration: c.configuration,
		orderID:       orderID,
		logger:        logger,
	}

	return request.Execute(ctx, c.httpTransport)
}

// OrderResult carries the parsed order plus the traffic and errors behind it.
type OrderResult struct {
	Errors          *schema.GatewayResponseErrors `json:"errors,omitempty"`
	GatewayRequests *schema.GatewayRequests       `json:"gatewayRequests,omitempty"`
	OrderID         string                        `json:"orderId,omitempty"`
	Status          string                        `json:"status,omitempty"`
	Intent          string                        `json:"intent,omitempty"`
	AmountValue     string                        `json:"amountValue,omitempty"`
}
