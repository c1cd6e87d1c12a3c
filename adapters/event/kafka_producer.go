package event

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/khoahotran/connecthub/internal/config"
	"github.com/segmentio/kafka-go"
)

const TopicSearchEvents = "search.events"

// SearchEventPayload is emitted after every successful search; the worker
// folds these into the trending counters. Counts are the returned page
// sizes, not totals.
type SearchEventPayload struct {
	EventID   uuid.UUID `json:"event_id"`
	Query     string    `json:"query"`
	Scope     string    `json:"scope"`
	ViewerID  int64     `json:"viewer_id"`
	UserHits  int       `json:"user_hits"`
	PostHits  int       `json:"post_hits"`
	CreatedAt time.Time `json:"created_at"`
}

type KafkaProducerClient struct {
	SearchEventsWriter *kafka.Writer
}

func NewKafkaProducerClient(cfg config.Config) (*KafkaProducerClient, error) {
	brokers := cfg.Kafka.Brokers
	if len(brokers) == 0 {
		return nil, fmt.Errorf("config Kafka brokers not found")
	}

	searchWriter := &kafka.Writer{
		Addr:     kafka.TCP(brokers...),
		Topic:    TopicSearchEvents,
		Balancer: &kafka.LeastBytes{},
	}

	return &KafkaProducerClient{
		SearchEventsWriter: searchWriter,
	}, nil
}

func (c *KafkaProducerClient) PublishSearchEvent(ctx context.Context, payload SearchEventPayload) error {
	if payload.EventID == uuid.Nil {
		payload.EventID = uuid.New()
	}
	if payload.CreatedAt.IsZero() {
		payload.CreatedAt = time.Now().UTC()
	}

	value, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("cannot marshal search event: %w", err)
	}

	return c.SearchEventsWriter.WriteMessages(ctx, kafka.Message{
		Key:   []byte(payload.Scope),
		Value: value,
	})
}

func (c *KafkaProducerClient) Close() {
	if c.SearchEventsWriter != nil {
		c.SearchEventsWriter.Close()
	}
}
