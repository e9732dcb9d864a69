package schema

import (
	"net/http"
	"os"
	"sync"
	"time"

	"bitbucket.org/umrahtrips/checkout-hub/internal/tools/converting"
)

type Key string

const (
	RequestingTypeKey Key = "requestingType"
)

// GatewayRequestName labels one outgoing call in the request history that is
// echoed back on checkout responses for debugging and support evidence.
type GatewayRequestName string

const (
	CurrencyRates        GatewayRequestName = "currencyRates"
	ConvertAmounts       GatewayRequestName = "convertAmounts"
	RoomsByIds           GatewayRequestName = "roomsByIds"
	PayPalAuth           GatewayRequestName = "paypalAuth"
	PayPalOrderCreate    GatewayRequestName = "paypalOrderCreate"
	PayPalOrderGet       GatewayRequestName = "paypalOrderGet"
	ReservationCreate    GatewayRequestName = "reservationCreate"
	UncompleteCheckpoint GatewayRequestName = "uncompleteCheckpoint"
)

type RequestContent struct {
	Url     *string                 `json:"url,omitempty"`
	Method  *string                 `json:"method,omitempty"`
	Body    *string                 `json:"body,omitempty"`
	Headers *map[string]interface{} `json:"headers,omitempty"`
}

type ResponseContent struct {
	StatusCode *int                    `json:"statusCode,omitempty"`
	Headers    *map[string]interface{} `json:"headers,omitempty"`
	Body       *string                 `json:"body,omitempty"`
}

type GatewayRequest struct {
	Name            *GatewayRequestName `json:"name,omitempty"`
	RequestContent  *RequestContent     `json:"requestContent,omitempty"`
	ResponseContent *ResponseContent    `json:"responseContent,omitempty"`
	Duration        *int                `json:"duration,omitempty"`
	StartDateTime   *time.Time          `json:"startDateTime,omitempty"`
}

type GatewayRequests []GatewayRequest

type gatewayRequestsBucket struct {
	gatewayRequests GatewayRequests
	sync.Mutex
}

func NewGatewayRequestsBucket() gatewayRequestsBucket {
	return gatewayRequestsBucket{
		gatewayRequests: []GatewayRequest{},
	}
}

func (r *gatewayRequestsBucket) GatewayRequests() *GatewayRequests {
	return &r.gatewayRequests
}

func (r *gatewayRequestsBucket) AddRequests(requests GatewayRequests) {
	r.Lock()
	r.gatewayRequests = append(r.gatewayRequests, requests...)
	r.Unlock()
}

// scrubHeaders drops credentials before they end up in history payloads.
func scrubHeaders(headers http.Header) map[string]interface{} {
	cleaned := headers.Clone()
	cleaned.Del("Authorization")
	return converting.ConvertMap(cleaned)
}

func (r *gatewayRequestsBucket) FinishedRequest(
	requestType GatewayRequestName,
	startTime time.Time,
	statusCode int,
	method string,
	url string,
	requestBody string,
	requestHeaders http.Header,
	responseBody string,
	responseHeaders http.Header,
) {
	reqHeaders := scrubHeaders(requestHeaders)

	req := RequestContent{
		Url:     &url,
		Method:  &method,
		Body:    &requestBody,
		Headers: &reqHeaders,
	}

	historyRequest := GatewayRequest{
		Name:           &requestType,
		RequestContent: &req,
	}

	resHeaders := converting.ConvertMap(responseHeaders)

	res := ResponseContent{
		StatusCode: &statusCode,
		Headers:    &resHeaders,
		Body:       &responseBody,
	}

	historyRequest.ResponseContent = &res

	if os.Getenv("TEST") != "true" {
		duration := int(time.Since(startTime).Milliseconds())
		historyRequest.Duration = &duration
		historyRequest.StartDateTime = &startTime
	}

	r.Lock()
	r.gatewayRequests = append(r.gatewayRequests, historyRequest)
	r.Unlock()
}
