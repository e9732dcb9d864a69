package paypal

import (
	"context"
	jsonEncoding "encoding/json"
	"io"
	"net/http"

	"bitbucket.org/umrahtrips/checkout-hub/internal/paypal/json"
	"bitbucket.org/umrahtrips/checkout-hub/internal/schema"
	"bitbucket.org/umrahtrips/checkout-hub/internal/tools/caching"
	"bitbucket.org/umrahtrips/checkout-hub/internal/tools/requesting"
	"github.com/rs/zerolog"
)

type getOrderRequest struct {
	cache         *caching.Cacher
	configuration Configuration
	orderID       string
	logger        *zerolog.Logger
}

func (r *getOrderRequest) Execute(ctx context.Context, httpTransport *http.Transport) (OrderResult, error) {
	result := OrderResult{}

	requestsBucket := schema.NewGatewayRequestsBucket()
	errorsBucket := schema.NewErrorsBucket()

	result.GatewayRequests = requestsBucket.GatewayRequests()
	result.Errors = errorsBucket.Errors()

	auth := authRequest{
		configuration: r.configuration,
		logger:        r.logger,
		cache:         r.cache,
	}

	authResult, err := auth.Execute(ctx, httpTransport)
	requestsBucket.AddRequests(*authResult.GatewayRequests)
	errorsBucket.AddErrors(*authResult.Errors)

	if err != nil {
		return result, err
	}

	if authResult.Token == nil {
		return result, nil
	}

	client := &http.Client{
		Timeout: defaultTimeout,
		Transport: &requesting.InterceptorTransport{
			Transport: httpTransport,
			Middlewares: []requesting.TransportMiddleware{
				requesting.NewLoggingTransportMiddleware(r.logger),
				requesting.NewBucketTransportMiddleware(&requestsBucket),
			},
		},
	}

	c := context.WithValue(ctx, schema.RequestingTypeKey, schema.PayPalOrderGet)
	url := r.configuration.ApiUrl + "/v2/checkout/orders/" + r.orderID

	httpRequest, _ := http.NewRequestWithContext(c, http.MethodGet, url, http.NoBody)
	httpRequest.Header.Set("Authorization", "Bearer "+*authResult.Token)

	httpResponse, e := requesting.RequestErrors(client.Do(httpRequest))
	if e != nil {
		errorsBucket.AddError(*e)
		return result, nil
	}

	bodyBytes, _ := io.ReadAll(httpResponse.Body)
	httpResponse.Body.Close()

	var orderResponse json.OrderRS
	if err := jsonEncoding.Unmarshal(bodyBytes, &orderResponse); err != nil {
		errorsBucket.AddError(schema.NewGatewayError(err.Error()))
		return result, nil
	}

	if message := orderResponse.ErrorMessage(); message != "" {
		errorsBucket.AddError(schema.NewGatewayError(message))
		return result, nil
	}

	result.OrderID = orderResponse.ID
	result.Status = orderResponse.Status
	result.Intent = orderResponse.Intent
	result.AmountValue = orderResponse.AmountValue()

	return result, nil
}
