package apicall

import (
	"errors"
	"reflect"
)

type messager interface {
	Message() string
}

// Message extracts a human readable message from any failure value. It never
// panics and never returns an empty string.
func Message(v any) (msg string) {
	defer func() {
		if recover() != nil || msg == "" {
			msg = FallbackMessage
		}
	}()

	if isNil(v) {
		return FallbackMessage
	}

	switch t := v.(type) {
	case *APIError:
		return t.Message
	case *NetworkError:
		return t.Message
	case *UnclassifiedError:
		return Message(t.Value)
	case error:
		// A wrapped variant supplies the message; the wrapping text is never shown.
		var apiErr *APIError
		if errors.As(t, &apiErr) {
			return apiErr.Message
		}
		var netErr *NetworkError
		if errors.As(t, &netErr) {
			return netErr.Message
		}
		return t.Error()
	case messager:
		return t.Message()
	case map[string]any:
		if s, ok := t["message"].(string); ok {
			return s
		}
	case map[string]string:
		return t["message"]
	}
	return FallbackMessage
}

// IsRetryable reports whether v is, or wraps, a network error. API rejections
// and unclassified failures are never retryable.
func IsRetryable(v any) bool {
	err, ok := v.(error)
	if !ok || isNil(v) {
		return false
	}
	return KindOf(err) == KindNetwork
}

func isNil(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Ptr, reflect.Map, reflect.Slice, reflect.Interface, reflect.Func, reflect.Chan:
		return rv.IsNil()
	}
	return false
}
