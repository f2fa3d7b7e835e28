package apicall

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// FallbackMessage is shown when no message can be extracted from a failure.
const FallbackMessage = "An unexpected error occurred"

// Kind identifies one of the three error variants.
type Kind int

const (
	KindUnclassified Kind = iota
	KindAPI
	KindNetwork
)

func (k Kind) String() string {
	switch k {
	case KindAPI:
		return "api"
	case KindNetwork:
		return "network"
	default:
		return "unclassified"
	}
}

// Error is the closed set of failures the executor understands. Only the types
// in this package implement it.
type Error interface {
	error
	Kind() Kind
	isCallError()
}

var (
	_ Error = (*APIError)(nil)
	_ Error = (*NetworkError)(nil)
	_ Error = (*UnclassifiedError)(nil)
)

// APIError is returned when the admin API answered with a non-2xx response.
type APIError struct {
	Status  int      `json:"status"`
	Code    string   `json:"code"`
	Message string   `json:"message"`
	Details []string `json:"details,omitempty"`
}

func (e *APIError) Error() string {
	code := e.Code
	if code == "" {
		code = strings.ToUpper(strings.ReplaceAll(http.StatusText(e.Status), " ", "_"))
	}
	return fmt.Sprintf("api error (status %d, %s): %s", e.Status, code, e.Message)
}

func (e *APIError) Kind() Kind   { return KindAPI }
func (e *APIError) isCallError() {}

// NetworkError is returned when a request never produced a response.
type NetworkError struct {
	Method  string
	URL     string
	Message string
	Err     error
}

func (e *NetworkError) Error() string {
	if e.Method == "" && e.URL == "" {
		return "network error: " + e.Message
	}
	return fmt.Sprintf("network error (%s %s): %s", e.Method, e.URL, e.Message)
}

func (e *NetworkError) Unwrap() error { return e.Err }
func (e *NetworkError) Kind() Kind    { return KindNetwork }
func (e *NetworkError) isCallError()  {}

// NewNetworkError wraps a transport failure.
func NewNetworkError(method, url string, err error) *NetworkError {
	msg := ""
	if err != nil {
		msg = err.Error()
	}
	return &NetworkError{Method: method, URL: url, Message: msg, Err: err}
}

// UnclassifiedError wraps any failure that is neither an API nor a network
// error. Value holds the original error or recovered panic value.
type UnclassifiedError struct {
	Value any
}

func (e *UnclassifiedError) Error() string {
	return Message(e.Value)
}

func (e *UnclassifiedError) Unwrap() error {
	if err, ok := e.Value.(error); ok {
		return err
	}
	return nil
}

func (e *UnclassifiedError) Kind() Kind   { return KindUnclassified }
func (e *UnclassifiedError) isCallError() {}

// KindOf reports which variant err is, looking through wrapped errors.
func KindOf(err error) Kind {
	if err == nil {
		return KindUnclassified
	}
	var netErr *NetworkError
	if errors.As(err, &netErr) {
		return KindNetwork
	}
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return KindAPI
	}
	return KindUnclassified
}

// AsError converts an arbitrary failure value into an error. Errors are
// returned unchanged; everything else is wrapped in an UnclassifiedError.
func AsError(v any) error {
	if err, ok := v.(error); ok && err != nil {
		return err
	}
	return &UnclassifiedError{Value: v}
}
