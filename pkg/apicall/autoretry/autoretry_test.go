package autoretry

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hashicorp-forge/adminportal/pkg/apicall"
)

func countingOp(failures int, err error) (apicall.Operation[string], *int) {
	calls := 0
	return func(context.Context) (string, error) {
		calls++
		if calls <= failures {
			return "", err
		}
		return "done", nil
	}, &calls
}

func TestDrive_ConvergesWithinBudget(t *testing.T) {
	op, calls := countingOp(2, &apicall.NetworkError{Message: "offline"})
	ctx := context.Background()

	res := apicall.Execute(ctx, op, apicall.Quiet(), nil)
	res = Drive(ctx, res, backoff.WithMaxRetries(&backoff.ZeroBackOff{}, 5))

	require.True(t, res.OK())
	assert.Equal(t, "done", res.Data)
	assert.Equal(t, 3, *calls)
}

func TestDrive_GivesUpAfterMaxRetries(t *testing.T) {
	op, calls := countingOp(10, &apicall.NetworkError{Message: "offline"})
	ctx := context.Background()

	res := apicall.Execute(ctx, op, apicall.Quiet(), nil)
	res = Drive(ctx, res, backoff.WithMaxRetries(&backoff.ZeroBackOff{}, 2))

	assert.True(t, res.IsNetworkError)
	assert.NotNil(t, res.Retry)
	assert.Equal(t, 3, *calls)
}

func TestDrive_StopsOnNonNetworkError(t *testing.T) {
	op, calls := countingOp(10, &apicall.APIError{Status: 409, Message: "conflict"})
	ctx := context.Background()

	res := apicall.Execute(ctx, op, apicall.Quiet(), nil)
	res = Drive(ctx, res, backoff.WithMaxRetries(&backoff.ZeroBackOff{}, 5))

	assert.False(t, res.IsNetworkError)
	assert.Equal(t, 1, *calls)
}

func TestDrive_RespectsContext(t *testing.T) {
	op, calls := countingOp(10, &apicall.NetworkError{Message: "offline"})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	res := apicall.Execute(context.Background(), op, apicall.Quiet(), nil)
	res = Drive(ctx, res, backoff.WithMaxRetries(backoff.NewConstantBackOff(time.Hour), 5))

	assert.True(t, res.IsNetworkError)
	assert.Equal(t, 1, *calls)
}

func TestNewBackOff(t *testing.T) {
	assert.Equal(t, backoff.Stop, NewBackOff(Config{}).NextBackOff())

	b := NewBackOff(Config{MaxRetries: 2, InitialInterval: time.Millisecond, MaxInterval: time.Millisecond})
	assert.NotEqual(t, backoff.Stop, b.NextBackOff())
	assert.NotEqual(t, backoff.Stop, b.NextBackOff())
	assert.Equal(t, backoff.Stop, b.NextBackOff())
}

func TestDrive_NilBackOff(t *testing.T) {
	res := apicall.Result[int]{Err: errors.New("x")}
	assert.Equal(t, res.Err, Drive(context.Background(), res, nil).Err)
}
