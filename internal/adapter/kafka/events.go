package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	kafkago "github.com/segmentio/kafka-go"

	"github.com/prismdirectory/venue-search-service/internal/config"
	"github.com/prismdirectory/venue-search-service/internal/search"
)

// EventWriter publishes search analytics events to a Kafka topic.
// It implements search.EventRecorder.
type EventWriter struct {
	writer *kafkago.Writer
	logger *slog.Logger
}

// NewEventWriter creates a Kafka producer for the configured events topic.
// Analytics events are advisory, so RequireOne keeps publish latency low.
func NewEventWriter(cfg *config.Config, logger *slog.Logger) *EventWriter {
	w := &kafkago.Writer{
		Addr:         kafkago.TCP(cfg.KafkaBrokers...),
		Topic:        cfg.KafkaEventTopic,
		Balancer:     &kafkago.LeastBytes{},
		RequiredAcks: kafkago.RequireOne,
	}
	return &EventWriter{writer: w, logger: logger}
}

// Record serializes and publishes one search event.
func (w *EventWriter) Record(ctx context.Context, event search.SearchEvent) error {
	msg, err := serializeEvent(event)
	if err != nil {
		return err
	}
	if err := w.writer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("publish search event: %w", err)
	}
	return nil
}

func (w *EventWriter) Close() error {
	return w.writer.Close()
}

// serializeEvent marshals a SearchEvent into a Kafka message keyed by event ID.
func serializeEvent(event search.SearchEvent) (kafkago.Message, error) {
	data, err := json.Marshal(event)
	if err != nil {
		return kafkago.Message{}, fmt.Errorf("serialize search event: %w", err)
	}
	return kafkago.Message{
		Key:   []byte(event.ID),
		Value: data,
		Headers: []kafkago.Header{
			{Key: "sort", Value: []byte(event.Sort)},
			{Key: "created_at", Value: []byte(event.CreatedAt.Format(time.RFC3339))},
		},
	}, nil
}
