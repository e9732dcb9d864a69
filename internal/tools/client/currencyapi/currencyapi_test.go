package currencyapi_test

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"bitbucket.org/umrahtrips/checkout-hub/internal/tools/client"
	"bitbucket.org/umrahtrips/checkout-hub/internal/tools/client/currencyapi"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

func TestFetchRates(t *testing.T) {
	out := &bytes.Buffer{}
	log := zerolog.New(out)

	t.Run("should fetch SAR spot rates", func(t *testing.T) {
		testServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/currency-rates?base=SAR", r.RequestURI)
			assert.Equal(t, "GET", r.Method)

			w.WriteHeader(http.StatusOK)
			w.Write([]byte(`{"SAR_USD":0.27,"SAR_EUR":0.24}`))
		}))
		defer testServer.Close()

		currencyClient, err := currencyapi.NewClient(&log, client.WithBaseURL(testServer.URL))
		assert.NoError(t, err)

		rates, err := currencyClient.FetchRates(context.Background())

		assert.NoError(t, err)
		assert.Equal(t, 0.27, rates.SarUsd)
		assert.Equal(t, 0.24, rates.SarEur)
	})

	t.Run("should surface non-200 responses", func(t *testing.T) {
		testServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusServiceUnavailable)
		}))
		defer testServer.Close()

		currencyClient, _ := currencyapi.NewClient(&log, client.WithBaseURL(testServer.URL))

		_, err := currencyClient.FetchRates(context.Background())

		assert.Error(t, err)
	})
}

func TestAmountsInUSD(t *testing.T) {
	out := &bytes.Buffer{}
	log := zerolog.New(out)

	t.Run("should send amounts with two decimals and keep order", func(t *testing.T) {
		testServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/currencyapi-amounts/104.00,324.00,80.00", r.RequestURI)
			assert.Equal(t, "POST", r.Method)

			w.WriteHeader(http.StatusOK)
			w.Write([]byte(`[{"amountInUSD":28.08},{"amountInUSD":87.48},{"amountInUSD":21.6}]`))
		}))
		defer testServer.Close()

		currencyClient, _ := currencyapi.NewClient(&log, client.WithBaseURL(testServer.URL))

		converted, err := currencyClient.AmountsInUSD(context.Background(), []float64{104, 324, 80})

		assert.NoError(t, err)
		assert.Equal(t, []float64{28.08, 87.48, 21.6}, converted)
	})

	t.Run("should reject misaligned responses", func(t *testing.T) {
		testServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusOK)
			w.Write([]byte(`[{"amountInUSD":28.08}]`))
		}))
		defer testServer.Close()

		currencyClient, _ := currencyapi.NewClient(&log, client.WithBaseURL(testServer.URL))

		_, err := currencyClient.AmountsInUSD(context.Background(), []float64{104, 324})

		assert.Error(t, err)
	})

	t.Run("should not call out for an empty batch", func(t *testing.T) {
		called := false
		testServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			called = true
		}))
		defer testServer.Close()

		currencyClient, _ := currencyapi.NewClient(&log, client.WithBaseURL(testServer.URL))

		converted, err := currencyClient.AmountsInUSD(context.Background(), []float64{})

		assert.NoError(t, err)
		assert.Empty(t, converted)
		assert.False(t, called)
	})
}
