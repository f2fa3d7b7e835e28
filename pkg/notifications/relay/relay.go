// Package relay delivers notifications published to Kafka by other consoles
// to the local notification handlers.
package relay

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/cenkalti/backoff/v4"
	"github.com/hashicorp/go-hclog"
	"github.com/hashicorp/go-multierror"
	"github.com/twmb/franz-go/pkg/kgo"

	"github.com/hashicorp-forge/adminportal/pkg/notifications"
)

// Consumer is the part of *kgo.Client the relay uses.
type Consumer interface {
	PollFetches(ctx context.Context) kgo.Fetches
	CommitRecords(ctx context.Context, rs ...*kgo.Record) error
}

// Stats counts what the relay has done so far.
type Stats struct {
	Relayed   int
	Failed    int
	Malformed int
}

// Relay reads records one partition at a time, in order. A record is
// committed once it has been delivered, once delivery has failed for good,
// or when it cannot be decoded. Records are left uncommitted only when the
// relay is stopped mid-delivery.
type Relay struct {
	consumer Consumer
	targets  []*notifications.Dispatcher
	backoff  backoff.BackOff
	log      hclog.Logger
	stats    Stats
}

// New creates a relay delivering to handlers. Retryable failures are retried
// per handler, so a slow push service does not cause duplicates elsewhere. b
// bounds those retries; nil disables them.
func New(consumer Consumer, handlers []notifications.Handler, b backoff.BackOff, log hclog.Logger) *Relay {
	if b == nil {
		b = &backoff.StopBackOff{}
	}
	if log == nil {
		log = hclog.NewNullLogger()
	}
	targets := make([]*notifications.Dispatcher, len(handlers))
	for i, h := range handlers {
		targets[i] = notifications.NewDispatcher(log, h)
	}
	return &Relay{
		consumer: consumer,
		targets:  targets,
		backoff:  b,
		log:      log,
	}
}

// Stats returns the counters. Call it after Run has returned.
func (r *Relay) Stats() Stats {
	return r.stats
}

// Run relays until ctx is done or the client is closed.
func (r *Relay) Run(ctx context.Context) error {
	for {
		if ctx.Err() != nil {
			r.log.Info("relay stopped",
				"relayed", r.stats.Relayed,
				"failed", r.stats.Failed,
				"malformed", r.stats.Malformed,
			)
			return nil
		}

		fetches := r.consumer.PollFetches(ctx)
		if fetches.IsClientClosed() {
			return errors.New("kafka client closed")
		}
		fetches.EachError(func(topic string, partition int32, err error) {
			if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
				return
			}
			r.log.Warn("fetch error", "topic", topic, "partition", partition, "error", err)
		})

		fetches.EachPartition(func(p kgo.FetchTopicPartition) {
			for _, record := range p.Records {
				if !r.process(ctx, record) {
					return
				}
			}
		})
	}
}

// process handles one record and reports whether the partition may continue.
func (r *Relay) process(ctx context.Context, record *kgo.Record) bool {
	n, err := decode(record)
	if err != nil {
		r.stats.Malformed++
		r.log.Warn("skipping malformed notification",
			"topic", record.Topic,
			"partition", record.Partition,
			"offset", record.Offset,
			"error", err,
		)
		return r.commit(ctx, record)
	}

	var failed error
	for _, target := range r.targets {
		op := func() error {
			err := target.Deliver(ctx, n)
			if err != nil && !notifications.IsRetryable(err) {
				return backoff.Permanent(err)
			}
			return err
		}
		if err := backoff.Retry(op, backoff.WithContext(r.backoff, ctx)); err != nil {
			failed = multierror.Append(failed, err)
		}
	}

	if ctx.Err() != nil {
		// Redelivered after a restart.
		return false
	}
	if failed != nil {
		r.stats.Failed++
		r.log.Error("notification could not be delivered",
			"notification_id", n.ID,
			"operation", n.Operation,
			"error", failed,
		)
	} else {
		r.stats.Relayed++
		r.log.Debug("relayed notification", "notification_id", n.ID, "operation", n.Operation)
	}
	return r.commit(ctx, record)
}

func (r *Relay) commit(ctx context.Context, record *kgo.Record) bool {
	if err := r.consumer.CommitRecords(ctx, record); err != nil {
		r.log.Warn("failed to commit record offset", "offset", record.Offset, "error", err)
		return ctx.Err() == nil
	}
	return true
}

func decode(record *kgo.Record) (*notifications.Notification, error) {
	var n notifications.Notification
	if err := json.Unmarshal(record.Value, &n); err != nil {
		return nil, fmt.Errorf("failed to unmarshal notification: %w", err)
	}
	if n.ID == "" || n.Level == "" {
		return nil, errors.New("notification is missing its id or level")
	}
	return &n, nil
}
