package schema

import (
	"sync"
)

type GatewayErrorCode string

const (
	GatewayError    GatewayErrorCode = "GATEWAY_ERROR"
	TimeoutError    GatewayErrorCode = "TIMEOUT_ERROR"
	ConnectionError GatewayErrorCode = "CONNECTION_ERROR"
)

type GatewayResponseError struct {
	Code    GatewayErrorCode `json:"code"`
	Message string           `json:"message"`
}

type GatewayResponseErrors []GatewayResponseError

type errorsBucket struct {
	errors GatewayResponseErrors
	sync.Mutex
}

func NewErrorsBucket() errorsBucket {
	return errorsBucket{
		errors: []GatewayResponseError{},
	}
}

func (e *errorsBucket) AddErrors(errors []GatewayResponseError) {
	e.Lock()
	e.errors = append(e.errors, errors...)
	e.Unlock()
}

func (e *errorsBucket) AddError(err GatewayResponseError) {
	e.Lock()
	e.errors = append(e.errors, err)
	e.Unlock()
}

func (e *errorsBucket) Errors() *GatewayResponseErrors {
	return &e.errors
}

func NewGatewayError(msg string) GatewayResponseError {
	return GatewayResponseError{
		Code:    GatewayError,
		Message: msg,
	}
}

func NewTimeoutError(msg string) GatewayResponseError {
	return GatewayResponseError{
		Code:    TimeoutError,
		Message: msg,
	}
}

func NewConnectionError(msg string) GatewayResponseError {
	return GatewayResponseError{
		Code:    ConnectionError,
		Message: msg,
	}
}
