// Package autoretry follows apicall retry closures without user interaction.
//
// It lives outside the executor on purpose: apicall.Execute never retries on
// its own, so unattended runs opt into bounded, backed-off retries here.
package autoretry

import (
	"context"
	"time"

	"github.com/cenkalti/backoff/v4"

	"github.com/hashicorp-forge/adminportal/pkg/apicall"
)

// Config controls the backoff schedule.
type Config struct {
	// MaxRetries is the number of times Retry is followed. Zero disables.
	MaxRetries int

	// InitialInterval is the first wait. Default: 500ms
	InitialInterval time.Duration

	// MaxInterval caps each wait. Default: 10s
	MaxInterval time.Duration
}

// NewBackOff builds an exponential backoff limited to cfg.MaxRetries attempts.
func NewBackOff(cfg Config) backoff.BackOff {
	if cfg.MaxRetries <= 0 {
		return &backoff.StopBackOff{}
	}

	eb := backoff.NewExponentialBackOff()
	eb.InitialInterval = 500 * time.Millisecond
	eb.MaxInterval = 10 * time.Second
	if cfg.InitialInterval > 0 {
		eb.InitialInterval = cfg.InitialInterval
	}
	if cfg.MaxInterval > 0 {
		eb.MaxInterval = cfg.MaxInterval
	}
	// Attempt count bounds the loop, not elapsed time.
	eb.MaxElapsedTime = 0

	return backoff.WithMaxRetries(eb, uint64(cfg.MaxRetries))
}

// Drive keeps following res.Retry until the call succeeds, fails with a
// non-network error, the backoff gives up, or ctx is done. The last result is
// returned in every case.
func Drive[T any](ctx context.Context, res apicall.Result[T], b backoff.BackOff) apicall.Result[T] {
	if b == nil {
		return res
	}
	b.Reset()

	for res.Retry != nil {
		wait := b.NextBackOff()
		if wait == backoff.Stop {
			return res
		}

		timer := time.NewTimer(wait)
		select {
		case <-ctx.Done():
			timer.Stop()
			return res
		case <-timer.C:
		}

		res = res.Retry(ctx)
	}
	return res
}
