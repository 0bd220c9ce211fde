// Package kafka publishes completed evaluations to an advisory topic for
// downstream analytics (district dashboards, sowing trend reports).
package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	kafkago "github.com/segmentio/kafka-go"

	"github.com/farmwise/crop-advisor/internal/engine"
)

// Writer produces advisory events to a Kafka topic. It implements
// engine.Publisher.
type Writer struct {
	writer *kafkago.Writer
	logger *slog.Logger
}

// NewWriter creates a Kafka producer for the advisory topic.
func NewWriter(brokers []string, topic string, logger *slog.Logger) *Writer {
	w := &kafkago.Writer{
		Addr:         kafkago.TCP(brokers...),
		Topic:        topic,
		Balancer:     &kafkago.LeastBytes{},
		RequiredAcks: kafkago.RequireAll,
	}
	return &Writer{writer: w, logger: logger}
}

// Publish serializes one evaluation result and writes it to the advisory
// topic, keyed by evaluation id so replays land on the same partition.
func (w *Writer) Publish(ctx context.Context, result engine.Result) error {
	msg, err := serializeToMessage(result)
	if err != nil {
		return err
	}
	return w.writer.WriteMessages(ctx, msg)
}

func (w *Writer) Close() error {
	return w.writer.Close()
}

// serializeToMessage marshals a Result into a Kafka message. Headers carry
// the fields downstream consumers filter on without decoding the payload.
func serializeToMessage(result engine.Result) (kafkago.Message, error) {
	data, err := json.Marshal(result)
	if err != nil {
		return kafkago.Message{}, fmt.Errorf("serialize advisory event: %w", err)
	}

	swap := false
	topCrop := ""
	if len(result.Recommendations) > 0 {
		topCrop = result.Recommendations[0].Crop.ID
		swap = result.Recommendations[0].IsSmartSwap
	}

	return kafkago.Message{
		Key:   []byte(result.EvaluationID),
		Value: data,
		Headers: []kafkago.Header{
			{Key: "zone", Value: []byte(result.Zone)},
			{Key: "top_crop", Value: []byte(topCrop)},
			{Key: "smart_swap", Value: []byte(strconv.FormatBool(swap))},
			{Key: "generated_at", Value: []byte(result.GeneratedAt.Format(time.RFC3339))},
		},
	}, nil
}
