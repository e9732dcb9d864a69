package reservations

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"

	"bitbucket.org/umrahtrips/checkout-hub/internal/tools/client"
	"github.com/rs/zerolog"
)

// Client talks to the reservations backend, the system of record for created
// reservations. After a payment authorization the backend is also the source
// of truth for reconciliation; this client never swallows its rejections.
type Client struct {
	httpClient *http.Client
	baseURL    string
	logger     *zerolog.Logger
}

func NewClient(logger *zerolog.Logger, optionFuncs ...client.OptionFunc) (*Client, error) {
	baseURL := os.Getenv("RESERVATIONS_API_URL")
	clientOptions := []client.OptionFunc{client.WithBaseURL(baseURL)}
	clientOptions = append(clientOptions, optionFuncs...)

	options, err := client.NewOptions(clientOptions...)
	if err != nil {
		return nil, err
	}

	return &Client{
		baseURL: options.BaseURL("reservations", ""),
		logger:  logger,
		httpClient: &http.Client{
			Timeout:   options.Timeout(),
			Transport: client.NewOutgoingLoggerRoundTripper(logger, "reservations"),
		},
	}, nil
}

func (c *Client) post(ctx context.Context, path string, payload any, destination any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	request, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return err
	}
	request.Header.Set("Content-Type", "application/json")

	response, err := c.httpClient.Do(request)
	if err != nil {
		return err
	}
	defer response.Body.Close()

	if response.StatusCode < 200 || response.StatusCode > 299 {
		return fmt.Errorf("reservations backend returned status code %d", response.StatusCode)
	}

	if destination == nil {
		return nil
	}

	return json.NewDecoder(response.Body).Decode(destination)
}

// CreateReservation submits the assembled reservation. With a paypal block
// the backend author-captures; without one it sends the verification email
// for the pay-at-property flow.
func (c *Client) CreateReservation(ctx context.Context, request NewReservationRequest) (NewReservationResponse, error) {
	var response NewReservationResponse
	err := c.post(ctx, "/new-reservation-client", request, &response)

	return response, err
}

// CreateUncompleteCheckpoint writes an abandoned-cart checkpoint. Callers
// fire it in the background; an error here is log-only.
func (c *Client) CreateUncompleteCheckpoint(ctx context.Context, checkpoint UncompleteReservation) error {
	return c.post(ctx, "/create-uncomplete-reservation-document", checkpoint, nil)
}
