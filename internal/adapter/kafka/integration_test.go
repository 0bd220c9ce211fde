//go:build integration

package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"testing"
	"time"

	kafkago "github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	tckafka "github.com/testcontainers/testcontainers-go/modules/kafka"

	"github.com/farmwise/crop-advisor/internal/domain"
	"github.com/farmwise/crop-advisor/internal/engine"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func startKafka(ctx context.Context, t *testing.T) string {
	t.Helper()

	container, err := tckafka.Run(ctx, "confluentinc/confluent-local:7.5.0",
		tckafka.WithClusterID("advisor-test-cluster"))
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = container.Terminate(context.Background())
	})

	brokers, err := container.Brokers(ctx)
	require.NoError(t, err)
	require.NotEmpty(t, brokers)
	return brokers[0]
}

func createTopic(ctx context.Context, t *testing.T, broker, topic string) {
	t.Helper()

	conn, err := kafkago.DialContext(ctx, "tcp", broker)
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = conn.Close()
	})

	controller, err := conn.Controller()
	require.NoError(t, err)
	controllerConn, err := kafkago.DialContext(ctx, "tcp", fmt.Sprintf("%s:%d", controller.Host, controller.Port))
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = controllerConn.Close()
	})

	err = controllerConn.CreateTopics(kafkago.TopicConfig{
		Topic:             topic,
		NumPartitions:     1,
		ReplicationFactor: 1,
	})
	require.NoError(t, err)
}

func TestWriterPublishesAdvisory(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Minute)
	defer cancel()

	broker := startKafka(ctx, t)
	topic := "crop.advisories.test"
	createTopic(ctx, t, broker, topic)

	w := NewWriter([]string{broker}, topic, discardLogger())
	t.Cleanup(func() {
		_ = w.Close()
	})

	result := engine.Result{
		EvaluationID: "eval-integration-1",
		GeneratedAt:  time.Now().UTC().Truncate(time.Second),
		Zone:         "Western Maharashtra",
		Recommendations: []domain.Recommendation{
			{
				Crop:        domain.CropProfile{ID: "jowar", Name: "Jowar (Sorghum)"},
				IsSmartSwap: true,
			},
		},
	}
	require.NoError(t, w.Publish(ctx, result))

	reader := kafkago.NewReader(kafkago.ReaderConfig{
		Brokers:  []string{broker},
		Topic:    topic,
		GroupID:  fmt.Sprintf("advisor-test-%d", time.Now().UnixNano()),
		MaxWait:  time.Second,
		MinBytes: 1,
		MaxBytes: 10e6,
	})
	t.Cleanup(func() {
		_ = reader.Close()
	})

	msg, err := reader.ReadMessage(ctx)
	require.NoError(t, err)

	assert.Equal(t, "eval-integration-1", string(msg.Key))

	var got engine.Result
	require.NoError(t, json.Unmarshal(msg.Value, &got))
	assert.Equal(t, result.EvaluationID, got.EvaluationID)
	assert.Equal(t, result.Zone, got.Zone)
	require.Len(t, got.Recommendations, 1)
	assert.True(t, got.Recommendations[0].IsSmartSwap)

	headers := make(map[string]string, len(msg.Headers))
	for _, h := range msg.Headers {
		headers[h.Key] = string(h.Value)
	}
	assert.Equal(t, "jowar", headers["top_crop"])
	assert.Equal(t, "true", headers["smart_swap"])
}
