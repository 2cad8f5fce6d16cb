package lib

import (
	"encoding/json"
	"plannova/src/types"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"
)

func TestKafkaMessageIsKeyedByAggregate(t *testing.T) {
	evt := types.WorkflowEvent{
		Type:        types.PAYMENT_SETTLED_EVENT,
		AggregateID: "0b7c8a52-5a7e-4a53-9a55-3d1b0f1c2e11",
		OccurredAt:  time.Now(),
		Payload:     types.JSONB{"amount": 500},
	}
	value, err := json.Marshal(evt)
	require.Nil(t, err)

	msg := kafkaMessage("workflow-events", evt, value)
	assert.Equal(t, "workflow-events", *msg.TopicPartition.Topic)
	assert.Equal(t, evt.AggregateID, string(msg.Key))
	require.Len(t, msg.Headers, 1)
	assert.Equal(t, string(types.PAYMENT_SETTLED_EVENT), string(msg.Headers[0].Value))
	assert.Equal(t, int64(500), gjson.GetBytes(msg.Value, "payload.amount").Int())
}

func TestKafkaConfigUsesBroker(t *testing.T) {
	cfg := GetKafkaConsumerConfig("notifications")
	assert.Equal(t, "notifications", cfg["group.id"])
	assert.Equal(t, "all", GetKafkaProducerConfig("api")["acks"])
}
