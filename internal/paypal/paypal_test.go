package paypal_test

import (
	"bytes"
	"compress/flate"
	"context"
	jsonEncoding "encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"bitbucket.org/umrahtrips/checkout-hub/internal/paypal"
	"bitbucket.org/umrahtrips/checkout-hub/internal/paypal/json"
	"bitbucket.org/umrahtrips/checkout-hub/internal/schema"
	"github.com/go-redis/redismock/v9"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

func TestCreateOrder(t *testing.T) {
	out := &bytes.Buffer{}
	log := zerolog.New(out)

	t.Run("should authenticate and mint an authorize order", func(t *testing.T) {
		var handlerFunc http.HandlerFunc
		testServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			handlerFunc(w, r)
		}))
		defer testServer.Close()

		handlerFuncCalledCount := 0
		handlerFunc = func(w http.ResponseWriter, r *http.Request) {
			handlerFuncCalledCount++

			w.WriteHeader(http.StatusOK)

			// mock the auth response
			if handlerFuncCalledCount == 1 {
				assert.Equal(t, "/v1/oauth2/token", r.RequestURI)
				assert.Equal(t, "POST", r.Method)
				assert.Equal(t, "application/x-www-form-urlencoded", r.Header.Get("Content-Type"))

				username, password, ok := r.BasicAuth()
				assert.True(t, ok)
				assert.Equal(t, "test-client-id", username)
				assert.Equal(t, "test-client-secret", password)

				body, _ := io.ReadAll(r.Body)
				assert.Equal(t, "grant_type=client_credentials", string(body))

				w.Write([]byte(defaultAuthResponse()))
			}

			// mock the order creation response
			if handlerFuncCalledCount == 2 {
				assert.Equal(t, "/v2/checkout/orders", r.RequestURI)
				assert.Equal(t, "POST", r.Method)
				assert.Equal(t, "Bearer test-token", r.Header.Get("Authorization"))

				var orderRequest json.OrderRQ
				body, _ := io.ReadAll(r.Body)
				assert.NoError(t, jsonEncoding.Unmarshal(body, &orderRequest))
				assert.Equal(t, json.IntentAuthorize, orderRequest.Intent)
				assert.Len(t, orderRequest.PurchaseUnits, 1)
				assert.Equal(t, "USD", orderRequest.PurchaseUnits[0].Amount.CurrencyCode)
				assert.Equal(t, "28.08", orderRequest.PurchaseUnits[0].Amount.Value)

				w.Write([]byte(createdOrderResponse("28.08")))
			}
		}

		redisClient, mock := redismock.NewClientMock()
		cachedToken, _ := compressedCachedToken()
		mock.ExpectGet(authCacheKey(testServer.URL)).RedisNil()
		mock.ExpectSetEx(authCacheKey(testServer.URL), cachedToken, time.Duration(3540)*time.Second).SetVal("")

		client := paypal.New(redisClient, testConfiguration(testServer.URL))
		result, err := client.CreateOrder(context.Background(), "28.08", &log)

		assert.Nil(t, err)
		assert.Equal(t, 2, handlerFuncCalledCount)
		assert.Empty(t, *result.Errors)
		assert.Equal(t, "ORDER-1", result.OrderID)
		assert.Equal(t, json.IntentAuthorize, result.Intent)
		assert.Equal(t, "CREATED", result.Status)
		assert.Equal(t, "28.08", result.AmountValue)
	})

	t.Run("should reuse a cached token", func(t *testing.T) {
		handlerFuncCalledCount := 0
		testServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			handlerFuncCalledCount++

			assert.Equal(t, "/v2/checkout/orders", r.RequestURI)

			w.WriteHeader(http.StatusOK)
			w.Write([]byte(createdOrderResponse("87.48")))
		}))
		defer testServer.Close()

		redisClient, mock := redismock.NewClientMock()
		cachedToken, _ := compressedCachedToken()
		mock.ExpectGet(authCacheKey(testServer.URL)).SetVal(string(cachedToken))

		client := paypal.New(redisClient, testConfiguration(testServer.URL))
		result, err := client.CreateOrder(context.Background(), "87.48", &log)

		assert.Nil(t, err)
		assert.Equal(t, 1, handlerFuncCalledCount)
		assert.Equal(t, "87.48", result.AmountValue)
	})

	t.Run("should report gateway rejections as errors, not order data", func(t *testing.T) {
		handlerFuncCalledCount := 0
		testServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			handlerFuncCalledCount++

			if handlerFuncCalledCount == 1 {
				w.WriteHeader(http.StatusOK)
				w.Write([]byte(defaultAuthResponse()))
				return
			}

			w.WriteHeader(http.StatusUnprocessableEntity)
			w.Write([]byte(`{"name":"UNPROCESSABLE_ENTITY","message":"The requested action could not be performed.","details":[{"issue":"INVALID_CURRENCY_CODE"}]}`))
		}))
		defer testServer.Close()

		redisClient, mock := redismock.NewClientMock()
		cachedToken, _ := compressedCachedToken()
		mock.ExpectGet(authCacheKey(testServer.URL)).RedisNil()
		mock.ExpectSetEx(authCacheKey(testServer.URL), cachedToken, time.Duration(3540)*time.Second).SetVal("")

		client := paypal.New(redisClient, testConfiguration(testServer.URL))
		result, err := client.CreateOrder(context.Background(), "10.00", &log)

		assert.Nil(t, err)
		assert.Empty(t, result.OrderID)
		assert.Len(t, *result.Errors, 1)
		assert.Equal(t, schema.GatewayError, (*result.Errors)[0].Code)
	})

	t.Run("should record the gateway traffic", func(t *testing.T) {
		handlerFuncCalledCount := 0
		testServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			handlerFuncCalledCount++
			w.WriteHeader(http.StatusOK)

			if handlerFuncCalledCount == 1 {
				w.Write([]byte(defaultAuthResponse()))
				return
			}

			w.Write([]byte(createdOrderResponse("28.08")))
		}))
		defer testServer.Close()

		redisClient, mock := redismock.NewClientMock()
		cachedToken, _ := compressedCachedToken()
		mock.ExpectGet(authCacheKey(testServer.URL)).RedisNil()
		mock.ExpectSetEx(authCacheKey(testServer.URL), cachedToken, time.Duration(3540)*time.Second).SetVal("")

		client := paypal.New(redisClient, testConfiguration(testServer.URL))
		result, _ := client.CreateOrder(context.Background(), "28.08", &log)

		assert.Len(t, *result.GatewayRequests, 2)
		assert.Equal(t, testServer.URL+"/v1/oauth2/token", *(*result.GatewayRequests)[0].RequestContent.Url)
		assert.Equal(t, testServer.URL+"/v2/checkout/orders", *(*result.GatewayRequests)[1].RequestContent.Url)
	})
}

func TestGetOrder(t *testing.T) {
	out := &bytes.Buffer{}
	log := zerolog.New(out)

	t.Run("should fetch the order for re-validation", func(t *testing.T) {
		handlerFuncCalledCount := 0
		testServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			handlerFuncCalledCount++
			w.WriteHeader(http.StatusOK)

			if handlerFuncCalledCount == 1 {
				w.Write([]byte(defaultAuthResponse()))
				return
			}

			assert.Equal(t, "/v2/checkout/orders/ORDER-1", r.RequestURI)
			assert.Equal(t, "GET", r.Method)
			assert.Equal(t, "Bearer test-token", r.Header.Get("Authorization"))

			w.Write([]byte(approvedOrderResponse("28.08")))
		}))
		defer testServer.Close()

		redisClient, mock := redismock.NewClientMock()
		cachedToken, _ := compressedCachedToken()
		mock.ExpectGet(authCacheKey(testServer.URL)).RedisNil()
		mock.ExpectSetEx(authCacheKey(testServer.URL), cachedToken, time.Duration(3540)*time.Second).SetVal("")

		client := paypal.New(redisClient, testConfiguration(testServer.URL))
		result, err := client.GetOrder(context.Background(), "ORDER-1", &log)

		assert.Nil(t, err)
		assert.Equal(t, "ORDER-1", result.OrderID)
		assert.Equal(t, json.OrderStatusApproved, result.Status)
		assert.Equal(t, "28.08", result.AmountValue)
	})
}

func testConfiguration(url string) paypal.Configuration {
	return paypal.Configuration{
		ApiUrl:       url,
		ClientID:     "test-client-id",
		ClientSecret: "test-client-secret",
		Env:          "sandbox",
	}
}

func authCacheKey(url string) string {
	return fmt.Sprintf("paypal-auth-token:%s-%s", url, "test-client-id")
}

func compressedCachedToken() ([]byte, error) {
	uncompressed, err := jsonEncoding.Marshal("test-token")
	if err != nil {
		return nil, err
	}

	var buffer bytes.Buffer
	writer, _ := flate.NewWriter(&buffer, flate.BestSpeed)

	_, err = writer.Write(uncompressed)
	if err != nil {
		return nil, err
	}

	err = writer.Close()
	if err != nil {
		return nil, err
	}

	return buffer.Bytes(), nil
}

func defaultAuthResponse() string {
	return `{"scope":"openid","access_token":"test-token","token_type":"Bearer","app_id":"APP-1","expires_in":3600}`
}

func createdOrderResponse(amount string) string {
	return fmt.Sprintf(
		`{"id":"ORDER-1","status":"CREATED","intent":"AUTHORIZE","purchase_units":[{"amount":{"currency_code":"USD","value":"%s"}}]}`,
		amount,
	)
}

func approvedOrderResponse(amount string) string {
	return fmt.Sprintf(
		`{"id":"ORDER-1","status":"APPROVED","intent":"AUTHORIZE","purchase_units":[{"amount":{"currency_code":"USD","value":"%s"}}]}`,
		amount,
	)
}
