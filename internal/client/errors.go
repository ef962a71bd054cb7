package client

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
)

// ClientError represents an error encountered when communicating with the storefront API.
// StatusCode 0 = network/connection error, >0 = HTTP response received but the body was not JSON
type ClientError struct {
	StatusCode  int    `json:"status_code"`
	UserMessage string `json:"user_message"`
	LogMessage  string `json:"log_message"`
	Err         error  `json:"-"`
}

func (e *ClientError) Error() string {
	return e.LogMessage
}

// UserError returns the user-friendly message
func (e *ClientError) UserError() string {
	return e.UserMessage
}

func (e *ClientError) Unwrap() error {
	return e.Err
}

// NewClientConnectionError creates a ClientError for network/connection issues
func NewClientConnectionError(err error) *ClientError {
	userMsg := "Unable to connect. Please check your internet connection and try again."

	var netErr net.Error
	switch {
	case errors.Is(err, context.Canceled):
		userMsg = "The request was cancelled."
	case errors.As(err, &netErr) && netErr.Timeout():
		userMsg = "The request timed out. Please check your connection and try again."
	}

	return &ClientError{
		StatusCode:  0,
		UserMessage: userMsg,
		LogMessage:  fmt.Sprintf("network error: %v", err),
		Err:         err,
	}
}

// NewClientInternalError creates a ClientError for internal errors, supply the error and an explanation of what was being done when the error occurred
func NewClientInternalError(err error, while string) *ClientError {
	return &ClientError{
		StatusCode:  0,
		UserMessage: "An error occurred. Please try again later.",
		LogMessage:  fmt.Sprintf("internal error: %v while %v", err, while),
		Err:         err,
	}
}

// NewClientDecodeError creates a ClientError for a response whose body could not be parsed as JSON.
// The backend answers some failures (e.g. an unhandled 401 or 500) with an html page, so the status is used to pick the user message.
func NewClientDecodeError(statusCode int, body []byte) *ClientError {
	var userMsg string
	switch statusCode {
	case http.StatusUnauthorized:
		userMsg = "Your session has expired or the credentials are incorrect. Please log in and try again."
	case http.StatusForbidden:
		userMsg = "You don't have permission to access this resource."
	case http.StatusNotFound:
		userMsg = "The requested resource was not found."
	case http.StatusBadRequest:
		userMsg = "Invalid request. Please check your input and try again."
	case http.StatusTooManyRequests:
		userMsg = "Too many requests. Please try again in a few moments."
	case http.StatusInternalServerError, http.StatusBadGateway, http.StatusServiceUnavailable:
		userMsg = "The service is temporarily unavailable. Please try again later."
	default:
		userMsg = "An error occurred. Please try again."
	}

	const maxLogged = 200
	snippet := string(body)
	if len(snippet) > maxLogged {
		snippet = snippet[:maxLogged] + "..."
	}

	return &ClientError{
		StatusCode:  statusCode,
		UserMessage: userMsg,
		LogMessage:  fmt.Sprintf("storefront api status %d - response is not valid JSON: %q", statusCode, snippet),
		Err:         ErrInvalidJSON,
	}
}

// ErrInvalidJSON is wrapped by the ClientError returned when a response body is not JSON
var ErrInvalidJSON = errors.New("response body is not valid JSON")
