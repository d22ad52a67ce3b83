package kafka_test

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/Astemirdum/bookhub/pkg/kafka"
	"github.com/stretchr/testify/require"
)

func TestCatalogEvent_Message(t *testing.T) {
	t.Parallel()
	ts := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	event := kafka.CatalogEvent{
		EventID:   "0f8e4c1e-7f43-4c55-8d2c-8f1f1b3f9a10",
		Type:      kafka.EventDeleted,
		Entity:    kafka.EntityUser,
		EntityID:  42,
		Timestamp: ts,
	}
	msg, err := event.Message(kafka.CatalogTopic)
	require.NoError(t, err)
	require.Equal(t, kafka.CatalogTopic, msg.Topic)
	require.Equal(t, ts, msg.Timestamp)

	key, err := msg.Key.Encode()
	require.NoError(t, err)
	require.Equal(t, "USER:42", string(key))

	value, err := msg.Value.Encode()
	require.NoError(t, err)
	require.JSONEq(t,
		`{"eventId":"0f8e4c1e-7f43-4c55-8d2c-8f1f1b3f9a10","type":"DELETED","entity":"USER","entityId":42,"timestamp":"2024-05-01T12:00:00Z"}`,
		string(value))

	var back map[string]any
	require.NoError(t, json.Unmarshal(value, &back))
	require.NotContains(t, back, "label")
}

func TestConfig_Enabled(t *testing.T) {
	t.Parallel()
	require.False(t, kafka.Config{}.Enabled())
	require.True(t, kafka.Config{Addrs: []string{"localhost:9092"}}.Enabled())
}
