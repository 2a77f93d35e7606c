package audit

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/twmb/franz-go/pkg/kadm"
	"github.com/twmb/franz-go/pkg/kerr"
	"github.com/twmb/franz-go/pkg/kgo"
)

// Publisher emits audit events to a Kafka topic for downstream consumers
// (reporting, alerting). Publishing is asynchronous and fail-open: a broker
// outage is logged, never surfaced to the sync run.
type Publisher struct {
	client *kgo.Client
	topic  string
	logger *slog.Logger
}

// NewPublisher connects to the brokers and ensures the topic exists.
func NewPublisher(brokers []string, topic string, logger *slog.Logger) (*Publisher, error) {
	client, err := kgo.NewClient(
		kgo.SeedBrokers(brokers...),
		kgo.DefaultProduceTopic(topic),
		kgo.ProducerBatchMaxBytes(1<<20),
	)
	if err != nil {
		return nil, fmt.Errorf("create kafka client: %w", err)
	}

	if err := ensureTopic(client, topic); err != nil {
		client.Close()
		return nil, err
	}

	return &Publisher{client: client, topic: topic, logger: logger}, nil
}

func ensureTopic(client *kgo.Client, topic string) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	adm := kadm.NewClient(client)
	resp, err := adm.CreateTopic(ctx, 1, 1, nil, topic)
	if err != nil {
		return fmt.Errorf("create audit topic: %w", err)
	}
	// An existing topic is fine; anything else is a broker problem.
	if resp.Err != nil && !errors.Is(resp.Err, kerr.TopicAlreadyExists) {
		return fmt.Errorf("create audit topic %q: %w", topic, resp.Err)
	}
	return nil
}

// Publish sends the event keyed by its event id so one event's runs stay
// ordered within a partition.
func (p *Publisher) Publish(ctx context.Context, event Event) {
	payload, err := json.Marshal(event)
	if err != nil {
		p.logger.ErrorContext(ctx, "failed to marshal audit event", "error", err)
		return
	}

	record := &kgo.Record{
		Topic: p.topic,
		Key:   []byte(event.EventID),
		Value: payload,
	}
	p.client.Produce(ctx, record, func(_ *kgo.Record, err error) {
		if err != nil {
			p.logger.Error("failed to publish audit event",
				"topic", p.topic,
				"event_id", event.EventID,
				"error", err,
			)
		}
	})
}

// Close flushes pending records and releases the client.
func (p *Publisher) Close() {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_ = p.client.Flush(ctx)
	p.client.Close()
}
