package apicall

import "context"

// Result is the outcome of Execute. Exactly one of the following holds:
//
//   - success: Err == nil, IsNetworkError == false, Retry == nil, Data is the
//     operation's return value.
//   - failure: Err != nil, Data is the zero value, and Retry != nil if and only
//     if IsNetworkError is true.
type Result[T any] struct {
	Data           T
	Err            error
	IsNetworkError bool

	// Retry re-runs the original call with identical configuration. It is only
	// set for network failures.
	Retry func(ctx context.Context) Result[T]
}

// OK reports whether the call succeeded.
func (r Result[T]) OK() bool {
	return r.Err == nil
}

// Retryable reports whether a retry closure is available.
func (r Result[T]) Retryable() bool {
	return r.Retry != nil
}

// Message returns the classified message for a failed result, or "" on
// success.
func (r Result[T]) Message() string {
	if r.Err == nil {
		return ""
	}
	return Message(r.Err)
}
