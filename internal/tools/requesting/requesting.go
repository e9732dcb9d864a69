package requesting

import (
	"fmt"
	"net/http"
	"os"

	"bitbucket.org/umrahtrips/checkout-hub/internal/schema"
)

func isValidResponse(code int) bool {
	return code >= 200 && code <= 299
}

// RequestErrors sorts an outgoing call's outcome into the gateway error
// taxonomy: timeouts, connection failures and non-2xx responses.
func RequestErrors(response *http.Response, err error) (*http.Response, *schema.GatewayResponseError) {
	if err != nil {
		if os.IsTimeout(err) {
			e := schema.NewTimeoutError(err.Error())
			return nil, &e
		}

		e := schema.NewConnectionError(err.Error())
		return nil, &e
	}

	if !isValidResponse(response.StatusCode) {
		e := schema.NewGatewayError(fmt.Sprintf("gateway returned status code %d", response.StatusCode))
		return nil, &e
	}

	return response, nil
}
