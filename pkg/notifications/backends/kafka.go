package backends

import (
	"context"
	"encoding/json"

	"github.com/twmb/franz-go/pkg/kgo"

	"github.com/hashicorp-forge/adminportal/pkg/kafka"
	"github.com/hashicorp-forge/adminportal/pkg/notifications"
)

// KafkaBackend publishes notifications to Redpanda/Kafka so other services
// can follow admin activity.
type KafkaBackend struct {
	levels
	client *kgo.Client
	topic  string
}

// KafkaBackendConfig holds configuration for the kafka backend
type KafkaBackendConfig struct {
	Brokers []string
	Topic   string
	Levels  []string
}

// NewKafkaBackend creates a new kafka backend
func NewKafkaBackend(cfg KafkaBackendConfig) (*KafkaBackend, error) {
	client, err := kafka.NewProducer(kafka.Brokers(cfg.Brokers))
	if err != nil {
		return nil, err
	}

	return &KafkaBackend{
		levels: newLevels(cfg.Levels),
		client: client,
		topic:  kafka.Topic(cfg.Topic),
	}, nil
}

// Name returns the backend identifier
func (b *KafkaBackend) Name() string {
	return "kafka"
}

// Handle processes a notification
func (b *KafkaBackend) Handle(ctx context.Context, n *notifications.Notification) error {
	value, err := json.Marshal(n)
	if err != nil {
		return NewBackendError("kafka", "marshal", false, err)
	}

	record := &kgo.Record{
		Topic: b.topic,
		Key:   []byte(partitionKey(n)),
		Value: value,
	}

	if err := b.client.ProduceSync(ctx, record).FirstErr(); err != nil {
		return NewBackendError("kafka", "publish", true, err)
	}
	return nil
}

// Close closes the underlying client
func (b *KafkaBackend) Close() {
	b.client.Close()
}

// partitionKey keeps notifications for the same operation ordered.
func partitionKey(n *notifications.Notification) string {
	if n.Operation != "" {
		return "op:" + n.Operation
	}
	return n.ID
}
