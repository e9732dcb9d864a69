package paypal

import (
	"context"
	jsonEncoding "encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"bitbucket.org/umrahtrips/checkout-hub/internal/paypal/json"
	"bitbucket.org/umrahtrips/checkout-hub/internal/schema"
	"bitbucket.org/umrahtrips/checkout-hub/internal/tools/caching"
	"bitbucket.org/umrahtrips/checkout-hub/internal/tools/requesting"
	"github.com/rs/zerolog"
)

// Access tokens are cached in redis slightly short of their advertised
// expiry so a token never goes stale mid-order.
const tokenExpirySlack = 60

type authRequest struct {
	configuration Configuration
	logger        *zerolog.Logger
	cache         *caching.Cacher
}

type authResponse struct {
	Errors          *schema.GatewayResponseErrors
	GatewayRequests *schema.GatewayRequests
	Token           *string
}

func (a *authRequest) Execute(ctx context.Context, httpTransport *http.Transport) (authResponse, error) {
	response := authResponse{}

	requestsBucket := schema.NewGatewayRequestsBucket()
	errorsBucket := schema.NewErrorsBucket()

	response.GatewayRequests = requestsBucket.GatewayRequests()
	response.Errors = errorsBucket.Errors()

	c := context.WithValue(ctx, schema.RequestingTypeKey, schema.PayPalAuth)

	var cachedToken string
	if a.cache.Fetch(c, a.getCacheKey(), &cachedToken) {
		response.Token = &cachedToken

		return response, nil
	}

	client := &http.Client{
		Timeout: defaultTimeout,
		Transport: &requesting.InterceptorTransport{
			Transport: httpTransport,
			Middlewares: []requesting.TransportMiddleware{
				requesting.NewLoggingTransportMiddleware(a.logger),
				requesting.NewBucketTransportMiddleware(&requestsBucket),
			},
		},
	}

	httpResponse, e := requesting.RequestErrors(a.makeRequest(c, client))
	if e != nil {
		errorsBucket.AddError(*e)
		return response, nil
	}

	bodyBytes, _ := io.ReadAll(httpResponse.Body)
	httpResponse.Body.Close()

	var tokenResponse json.TokenRS
	if err := jsonEncoding.Unmarshal(bodyBytes, &tokenResponse); err != nil {
		return response, err
	}

	if message := tokenResponse.ErrorMessage(); message != "" {
		errorsBucket.AddError(schema.NewGatewayError(message))

		return response, nil
	}

	response.Token = &tokenResponse.AccessToken

	ttl := tokenResponse.ExpiresIn - tokenExpirySlack
	if ttl > 0 {
		err := a.cache.Store(c, a.getCacheKey(), tokenResponse.AccessToken, time.Duration(ttl)*time.Second)
		if err != nil {
			return response, err
		}
	}

	return response, nil
}

func (a *authRequest) makeRequest(ctx context.Context, client *http.Client) (*http.Response, error) {
	body := strings.NewReader("grant_type=client_credentials")
	url := a.configuration.ApiUrl + "/v1/oauth2/token"

	httpRequest, err := http.NewRequestWithContext(ctx, http.MethodPost, url, body)
	if err != nil {
		return nil, err
	}

	httpRequest.SetBasicAuth(a.configuration.ClientID, a.configuration.ClientSecret)
	httpRequest.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	return client.Do(httpRequest)
}

func (a *authRequest) getCacheKey() string {
	return fmt.Sprintf("paypal-auth-token:%s-%s", a.configuration.ApiUrl, a.configuration.ClientID)
}
