package kafka

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/twmb/franz-go/pkg/kerr"
	"github.com/twmb/franz-go/pkg/kmsg"
)

func TestBrokers(t *testing.T) {
	t.Setenv(EnvBrokers, "")
	assert.Equal(t, []string{DefaultBroker}, Brokers(nil))
	assert.Equal(t, []string{"kafka-1:9092"}, Brokers([]string{"kafka-1:9092"}))

	t.Setenv(EnvBrokers, "a:9092, b:9092,")
	assert.Equal(t, []string{"a:9092", "b:9092"}, Brokers([]string{"kafka-1:9092"}))
}

func TestDefaults(t *testing.T) {
	assert.Equal(t, DefaultTopic, Topic(""))
	assert.Equal(t, "custom", Topic("custom"))
	assert.Equal(t, DefaultConsumerGroup, ConsumerGroup(""))
	assert.Equal(t, "ops", ConsumerGroup("ops"))
}

func TestRetryBackoff(t *testing.T) {
	assert.Equal(t, 100*time.Millisecond, retryBackoff(1))
	assert.Equal(t, 5*time.Second, retryBackoff(500))
}

func TestNewClients_RequireBrokers(t *testing.T) {
	_, err := NewProducer(nil)
	assert.Error(t, err)
	_, err = NewConsumer(nil, "", "")
	assert.Error(t, err)
}

func TestNewProducer_DoesNotDial(t *testing.T) {
	client, err := NewProducer([]string{"127.0.0.1:1"})
	if assert.NoError(t, err) {
		client.Close()
	}
}

// requestor answers CreateTopics with a fixed error code.
type requestor struct {
	code int16
	got  *kmsg.CreateTopicsRequest
}

func (r *requestor) Request(_ context.Context, req kmsg.Request) (kmsg.Response, error) {
	r.got = req.(*kmsg.CreateTopicsRequest)
	resp := kmsg.NewPtrCreateTopicsResponse()
	t := kmsg.NewCreateTopicsResponseTopic()
	t.Topic = r.got.Topics[0].Topic
	t.ErrorCode = r.code
	resp.Topics = append(resp.Topics, t)
	return resp, nil
}

func TestEnsureTopic(t *testing.T) {
	r := &requestor{}
	require.NoError(t, EnsureTopic(context.Background(), r, "adminportal.notifications", 0))
	require.Len(t, r.got.Topics, 1)
	assert.Equal(t, int32(1), r.got.Topics[0].NumPartitions)
	assert.Equal(t, int16(-1), r.got.Topics[0].ReplicationFactor)

	r = &requestor{code: kerr.TopicAlreadyExists.Code}
	assert.NoError(t, EnsureTopic(context.Background(), r, "adminportal.notifications", 3))

	r = &requestor{code: kerr.TopicAuthorizationFailed.Code}
	assert.ErrorIs(t, EnsureTopic(context.Background(), r, "adminportal.notifications", 3), kerr.TopicAuthorizationFailed)
}
