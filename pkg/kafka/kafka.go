// Package kafka builds franz-go clients for the notification topic shared by
// the kafka notification backend and the relay.
package kafka

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/twmb/franz-go/pkg/kgo"
)

const (
	// EnvBrokers overrides the configured brokers, comma-separated.
	EnvBrokers = "ADMINPORTAL_KAFKA_BROKERS"

	DefaultBroker        = "localhost:19092"
	DefaultTopic         = "adminportal.notifications"
	DefaultConsumerGroup = "adminportal-relay"
)

// Brokers returns the broker addresses. It checks the environment first,
// then falls back to configured, then the default.
func Brokers(configured []string) []string {
	if env := os.Getenv(EnvBrokers); env != "" {
		var brokers []string
		for _, b := range strings.Split(env, ",") {
			if b = strings.TrimSpace(b); b != "" {
				brokers = append(brokers, b)
			}
		}
		if len(brokers) > 0 {
			return brokers
		}
	}
	if len(configured) > 0 {
		return configured
	}
	return []string{DefaultBroker}
}

// Topic returns topic, or the default topic when empty.
func Topic(topic string) string {
	if topic == "" {
		return DefaultTopic
	}
	return topic
}

// ConsumerGroup returns group, or the default relay group when empty.
func ConsumerGroup(group string) string {
	if group == "" {
		return DefaultConsumerGroup
	}
	return group
}

func retryBackoff(tries int) time.Duration {
	backoff := time.Duration(tries) * 100 * time.Millisecond
	if backoff > 5*time.Second {
		backoff = 5 * time.Second
	}
	return backoff
}

// NewProducer creates a client that waits for all in-sync replicas and
// retries failed produce requests a few times.
func NewProducer(brokers []string, opts ...kgo.Opt) (*kgo.Client, error) {
	if len(brokers) == 0 {
		return nil, fmt.Errorf("at least one broker is required")
	}
	client, err := kgo.NewClient(append([]kgo.Opt{
		kgo.SeedBrokers(brokers...),
		kgo.RequiredAcks(kgo.AllISRAcks()),
		kgo.ProducerBatchCompression(kgo.GzipCompression()),
		kgo.RetryBackoffFn(retryBackoff),
		kgo.RequestRetries(3),
		kgo.ProducerLinger(10 * time.Millisecond),
	}, opts...)...)
	if err != nil {
		return nil, fmt.Errorf("failed to create kafka producer: %w", err)
	}
	return client, nil
}

// NewConsumer creates a group consumer for topic. Offsets are only committed
// explicitly, after a record has been handled.
func NewConsumer(brokers []string, topic, group string, opts ...kgo.Opt) (*kgo.Client, error) {
	if len(brokers) == 0 {
		return nil, fmt.Errorf("at least one broker is required")
	}
	client, err := kgo.NewClient(append([]kgo.Opt{
		kgo.SeedBrokers(brokers...),
		kgo.ConsumerGroup(ConsumerGroup(group)),
		kgo.ConsumeTopics(Topic(topic)),
		kgo.DisableAutoCommit(),
		kgo.RetryBackoffFn(retryBackoff),
	}, opts...)...)
	if err != nil {
		return nil, fmt.Errorf("failed to create kafka consumer: %w", err)
	}
	return client, nil
}
