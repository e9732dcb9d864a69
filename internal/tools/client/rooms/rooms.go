package rooms

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"sort"
	"strings"
	"time"

	"bitbucket.org/umrahtrips/checkout-hub/internal/schema"
	"bitbucket.org/umrahtrips/checkout-hub/internal/tools/caching"
	"bitbucket.org/umrahtrips/checkout-hub/internal/tools/client"
	"github.com/rs/zerolog"
)

const cacheTTL = 2 * time.Minute

// Client fetches room documents (including rate tables) from the rooms
// backend. Responses are cached briefly: a date change re-prices the same
// rooms seconds after the first quote.
type Client struct {
	httpClient *http.Client
	baseURL    string
	cache      *caching.Cacher
}

type getByIdsRequest struct {
	RoomIds []string `json:"roomIds"`
}

func NewClient(logger *zerolog.Logger, cache *caching.Cacher, optionFuncs ...client.OptionFunc) (*Client, error) {
	baseURL := os.Getenv("ROOMS_API_URL")
	clientOptions := []client.OptionFunc{client.WithBaseURL(baseURL)}
	clientOptions = append(clientOptions, optionFuncs...)

	options, err := client.NewOptions(clientOptions...)
	if err != nil {
		return nil, err
	}

	return &Client{
		baseURL: options.BaseURL("rooms", ""),
		cache:   cache,
		httpClient: &http.Client{
			Timeout:   options.Timeout(),
			Transport: client.NewOutgoingLoggerRoundTripper(logger, "rooms"),
		},
	}, nil
}

func cacheKey(roomIds []string) string {
	sorted := make([]string, len(roomIds))
	copy(sorted, roomIds)
	sort.Strings(sorted)

	return "rooms:" + strings.Join(sorted, ",")
}

// GetByIds returns the room documents for the given ids, keyed by id.
func (c *Client) GetByIds(ctx context.Context, roomIds []string) (map[string]schema.Room, error) {
	key := cacheKey(roomIds)

	var cached []schema.Room
	if c.cache != nil && c.cache.Fetch(ctx, key, &cached) {
		return roomsById(cached), nil
	}

	body, err := json.Marshal(getByIdsRequest{RoomIds: roomIds})
	if err != nil {
		return nil, err
	}

	url := fmt.Sprintf("%s/rooms/get-by-ids", c.baseURL)
	request, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
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
		return nil, fmt.Errorf("rooms backend returned status code %d", response.StatusCode)
	}

	var rooms []schema.Room
	if err := json.NewDecoder(response.Body).Decode(&rooms); err != nil {
		return nil, err
	}

	if c.cache != nil {
		_ = c.cache.Store(ctx, key, rooms, cacheTTL)
	}

	return roomsById(rooms), nil
}

func roomsById(rooms []schema.Room) map[string]schema.Room {
	byId := make(map[string]schema.Room, len(rooms))
	for _, room := range rooms {
		byId[room.ID] = room
	}

	return byId
}
