package paypal

import (
	"bytes"
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

type createOrderRequest struct {
	cache         *caching.Cacher
	configuration Configuration
	usdValue      string
	logger        *zerolog.Logger
}

func (r *createOrderRequest) Execute(ctx context.Context, httpTransport *http.Transport) (OrderResult, error) {
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

	order, e := r.makeRequest(ctx, client, *authResult.Token)
	if e != nil {
		errorsBucket.AddError(*e)
		return result, nil
	}

	result.OrderID = order.ID
	result.Status = order.Status
	result.Intent = order.Intent
	result.AmountValue = order.AmountValue()

	return result, nil
}

func (r *createOrderRequest) makeRequest(
	ctx context.Context,
	client *http.Client,
	token string,
) (json.OrderRS, *schema.GatewayResponseError) {
	body, _ := jsonEncoding.Marshal(json.OrderRQ{
		Intent: json.IntentAuthorize,
		PurchaseUnits: []json.PurchaseUnit{
			{
				Amount: json.Amount{
					CurrencyCode: "USD",
					Value:        r.usdValue,
				},
			},
		},
	})

	c := context.WithValue(ctx, schema.RequestingTypeKey, schema.PayPalOrderCreate)
	url := r.configuration.ApiUrl + "/v2/checkout/orders"

	httpRequest, _ := http.NewRequestWithContext(c, http.MethodPost, url, bytes.NewReader(body))
	httpRequest.Header.Set("Content-Type", "application/json")
	httpRequest.Header.Set("Authorization", "Bearer "+token)

	httpResponse, e := requesting.RequestErrors(client.Do(httpRequest))
	if e != nil {
		return json.OrderRS{}, e
	}

	bodyBytes, _ := io.ReadAll(httpResponse.Body)
	httpResponse.Body.Close()

	var orderResponse json.OrderRS
	if err := jsonEncoding.Unmarshal(bodyBytes, &orderResponse); err != nil {
		parseError := schema.NewGatewayError(err.Error())
		return json.OrderRS{}, &parseError
	}

	if message := orderResponse.ErrorMessage(); message != "" {
		gatewayError := schema.NewGatewayError(message)
		return json.OrderRS{}, &gatewayError
	}

	return orderResponse, nil
}
