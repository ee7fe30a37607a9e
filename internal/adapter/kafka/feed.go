package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	kafkago "github.com/segmentio/kafka-go"

	"github.com/prismdirectory/venue-search-service/internal/config"
	"github.com/prismdirectory/venue-search-service/internal/domain"
	"github.com/prismdirectory/venue-search-service/internal/observability"
	"github.com/prismdirectory/venue-search-service/internal/store"
)

// Feed operation names carried in the "op" field of change events.
const (
	OpUpsert = "upsert"
	OpDelete = "delete"
)

// VenueChangeEvent is the wire format of one message on the venue feed topic.
// Delete events may carry either a bare ID or a full venue record.
type VenueChangeEvent struct {
	Op    string          `json:"op"`
	ID    string          `json:"id,omitempty"`
	Venue domain.RawVenue `json:"venue"`
}

// FeedReader consumes venue change events from Kafka and applies them to the
// store, keeping the in-memory directory current without restarts.
type FeedReader struct {
	reader  *kafkago.Reader
	store   *store.VenueStore
	metrics *observability.Metrics
	logger  *slog.Logger
}

// NewFeedReader creates a consumer for the configured venue feed topic.
func NewFeedReader(cfg *config.Config, venues *store.VenueStore, metrics *observability.Metrics, logger *slog.Logger) *FeedReader {
	r := kafkago.NewReader(kafkago.ReaderConfig{
		Brokers:  cfg.KafkaBrokers,
		Topic:    cfg.KafkaVenueTopic,
		GroupID:  cfg.KafkaGroupID,
		MinBytes: 1,
		MaxBytes: 10e6,
		MaxWait:  500 * time.Millisecond,
	})
	return &FeedReader{reader: r, store: venues, metrics: metrics, logger: logger}
}

// Run consumes the feed until the context is cancelled. Offsets are committed
// only after the event has been applied to the store; malformed events are
// logged, counted, and committed so they are not redelivered forever.
func (f *FeedReader) Run(ctx context.Context) error {
	f.logger.Info("venue feed started", "topic", f.reader.Config().Topic)

	// Exponential backoff: start at 200ms, double each retry, cap at 5s.
	backoff := 200 * time.Millisecond
	maxBackoff := 5 * time.Second

	for {
		msg, err := f.reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				f.logger.Info("venue feed stopping", "reason", ctx.Err())
				return nil
			}
			f.logger.Error("fetch venue event failed", "error", err)
			if !sleepWithContext(ctx, backoff) {
				return nil
			}
			backoff = nextBackoff(backoff, maxBackoff)
			continue
		}
		backoff = 200 * time.Millisecond

		if err := f.apply(msg); err != nil {
			f.logger.Warn("skipping venue event",
				"error", err,
				"partition", msg.Partition,
				"offset", msg.Offset,
			)
		}

		if err := f.reader.CommitMessages(ctx, msg); err != nil {
			if ctx.Err() != nil {
				return nil
			}
			f.logger.Warn("commit offset failed", "error", err,
				"partition", msg.Partition, "offset", msg.Offset)
		}
	}
}

func (f *FeedReader) Close() error {
	return f.reader.Close()
}

// apply decodes one change event and mutates the store accordingly.
func (f *FeedReader) apply(msg kafkago.Message) error {
	event, err := decodeChangeEvent(msg.Value)
	if err != nil {
		f.metrics.FeedEvents.WithLabelValues("unknown", "error").Inc()
		return err
	}

	switch event.Op {
	case OpUpsert:
		if err := f.store.Upsert(event.Venue); err != nil {
			f.metrics.FeedEvents.WithLabelValues(OpUpsert, "error").Inc()
			return err
		}
		f.metrics.FeedEvents.WithLabelValues(OpUpsert, "ok").Inc()
	case OpDelete:
		id := event.ID
		if id == "" {
			id = event.Venue.ID
		}
		if id == "" {
			f.metrics.FeedEvents.WithLabelValues(OpDelete, "error").Inc()
			return fmt.Errorf("delete event without id")
		}
		f.store.Delete(id)
		f.metrics.FeedEvents.WithLabelValues(OpDelete, "ok").Inc()
	default:
		f.metrics.FeedEvents.WithLabelValues("unknown", "error").Inc()
		return fmt.Errorf("unknown venue event op %q", event.Op)
	}
	return nil
}

// decodeChangeEvent parses a feed message body.
func decodeChangeEvent(data []byte) (VenueChangeEvent, error) {
	var event VenueChangeEvent
	if err := json.Unmarshal(data, &event); err != nil {
		return VenueChangeEvent{}, fmt.Errorf("decode venue event: %w", err)
	}
	return event, nil
}

func nextBackoff(current, maxBackoff time.Duration) time.Duration {
	next := current * 2
	if next > maxBackoff {
		return maxBackoff
	}
	return next
}

// sleepWithContext waits for d or until ctx is cancelled. Returns false if the
// context ended first.
func sleepWithContext(ctx context.Context, d time.Duration) bool {
	if d <= 0 {
		return true
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-timer.C:
		return true
	}
}
