package apicall

import (
	"context"
	"fmt"
)

// Operation is one unit of work, typically a single REST call.
type Operation[T any] func(ctx context.Context) (T, error)

// Execute runs op once and converts its outcome into a Result. Notifications
// are delivered before Execute returns. Execute never panics; a panic inside
// op is reported as an UnclassifiedError.
func Execute[T any](ctx context.Context, op Operation[T], opts Options, n Notifier) Result[T] {
	if n == nil {
		n = Discard
	}
	return execute(ctx, op, opts.resolve(), n)
}

func execute[T any](ctx context.Context, op Operation[T], opts resolved, n Notifier) Result[T] {
	data, err := run(ctx, op)
	if err == nil {
		if opts.showSuccess && opts.successMessage != "" {
			n.ShowSuccess(opts.successMessage)
		}
		return Result[T]{Data: data}
	}

	msg := opts.errorMessage
	if msg == "" {
		msg = Message(err)
	}
	if opts.showError {
		n.ShowError(msg)
	}

	res := Result[T]{Err: err}
	if IsRetryable(err) {
		res.IsNetworkError = true
		res.Retry = func(ctx context.Context) Result[T] {
			return execute(ctx, op, opts, n)
		}
	}
	return res
}

func run[T any](ctx context.Context, op Operation[T]) (data T, err error) {
	defer func() {
		if r := recover(); r != nil {
			var zero T
			data = zero
			err = &UnclassifiedError{Value: r}
		}
	}()

	if op == nil {
		return data, &UnclassifiedError{Value: fmt.Errorf("nil operation")}
	}
	data, err = op(ctx)
	if err != nil {
		var zero T
		return zero, err
	}
	return data, nil
}
