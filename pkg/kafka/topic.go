package kafka

import (
	"context"
	"errors"
	"fmt"

	"github.com/twmb/franz-go/pkg/kerr"
	"github.com/twmb/franz-go/pkg/kmsg"
)

// EnsureTopic creates topic with the broker's default replication factor
// unless it already exists.
func EnsureTopic(ctx context.Context, client kmsg.Requestor, topic string, partitions int32) error {
	if partitions <= 0 {
		partitions = 1
	}

	t := kmsg.NewCreateTopicsRequestTopic()
	t.Topic = topic
	t.NumPartitions = partitions
	t.ReplicationFactor = -1

	req := kmsg.NewPtrCreateTopicsRequest()
	req.Topics = append(req.Topics, t)
	req.TimeoutMillis = 10000

	resp, err := req.RequestWith(ctx, client)
	if err != nil {
		return fmt.Errorf("error creating topic %s: %w", topic, err)
	}
	for _, rt := range resp.Topics {
		if err := kerr.ErrorForCode(rt.ErrorCode); err != nil && !errors.Is(err, kerr.TopicAlreadyExists) {
			return fmt.Errorf("error creating topic %s: %w", topic, err)
		}
	}
	return nil
}
