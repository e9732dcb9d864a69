package currencyapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"strconv"
	"strings"

	"bitbucket.org/umrahtrips/checkout-hub/internal/tools/client"
	"github.com/google/go-querystring/query"
	"github.com/rs/zerolog"
)

// Client talks to the platform's currency conversion service. There is no
// retry policy here on purpose: a failed conversion degrades to zero values
// and the checkout blocks order creation on a zero USD amount.
type Client struct {
	httpClient *http.Client
	baseURL    string
}

func NewClient(logger *zerolog.Logger, optionFuncs ...client.OptionFunc) (*Client, error) {
	baseURL := os.Getenv("CURRENCY_API_URL")
	clientOptions := []client.OptionFunc{client.WithBaseURL(baseURL)}
	clientOptions = append(clientOptions, optionFuncs...)

	options, err := client.NewOptions(clientOptions...)
	if err != nil {
		return nil, err
	}

	return &Client{
		baseURL: options.BaseURL("currency-api", ""),
		httpClient: &http.Client{
			Timeout:   options.Timeout(),
			Transport: client.NewOutgoingLoggerRoundTripper(logger, "currency-api"),
		},
	}, nil
}

// FetchRates returns the current SAR spot rates.
func (c *Client) FetchRates(ctx context.Context) (Rates, error) {
	v, _ := query.Values(ratesQuery{Base: "SAR"})
	url := fmt.Sprintf("%s/currency-rates?%s", c.baseURL, v.Encode())

	request, err := http.NewRequestWithContext(ctx, http.MethodGet, url, http.NoBody)
	if err != nil {
		return Rates{}, err
	}

	response, err := c.httpClient.Do(request)
	if err != nil {
		return Rates{}, err
	}
	defer response.Body.Close()

	if response.StatusCode != http.StatusOK {
		return Rates{}, fmt.Errorf("currency api returned status code %d", response.StatusCode)
	}

	var rates Rates
	if err := json.NewDecoder(response.Body).Decode(&rates); err != nil {
		return Rates{}, err
	}

	return rates, nil
}

// AmountsInUSD converts a batch of SAR amounts. The response array is aligned
// positionally with the input, so a length mismatch means the response can
// not be trusted at all.
func (c *Client) AmountsInUSD(ctx context.Context, amounts []float64) ([]float64, error) {
	if len(amounts) == 0 {
		return []float64{}, nil
	}

	formatted := make([]string, 0, len(amounts))
	for _, amount := range amounts {
		formatted = append(formatted, strconv.FormatFloat(amount, 'f', 2, 64))
	}

	url := fmt.Sprintf("%s/currencyapi-amounts/%s", c.baseURL, strings.Join(formatted, ","))

	request, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(nil))
	if err != nil {
		return nil, err
	}
	request.Header.Set("Content-Type", "application/json")

	response, err := c.httpClient.Do(request)
	if err != nil {
		return nil, err
	}
	defer response.Body.Close()

	if response.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("currency api returned status code %d", response.StatusCode)
	}

	bodyBytes, err := io.ReadAll(response.Body)
	if err != nil {
		return nil, err
	}

	var converted []convertedAmount
	if err := json.Unmarshal(bodyBytes, &converted); err != nil {
		return nil, err
	}

	if len(converted) != len(amounts) {
		return nil, errors.New("currency api returned misaligned amounts")
	}

	result := make([]float64, 0, len(converted))
	for _, amount := range converted {
		result = append(result, amount.AmountInUSD)
	}

	return result, nil
}
