// Package events publishes domain events to kafka
package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"

	"lookalike/internal/platform/logger"
)

// Event is a domain event; Key drives partitioning
type Event struct {
	ID      string            `json:"id"`
	Type    string            `json:"type"`
	Key     string            `json:"-"`
	At      time.Time         `json:"at"`
	Payload any               `json:"payload"`
	Headers map[string]string `json:"-"`
}

// Publisher emits events
type Publisher interface {
	Publish(ctx context.Context, evs ...Event) error
	Close() error
}

// Config configures the kafka publisher
type Config struct {
	Brokers      []string
	Topic        string
	BatchTimeout time.Duration
	RequiredAcks int
	Compression  string
}

// messageWriter is the part of *kafka.Writer the publisher uses
type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// Kafka publishes events as JSON messages on a single topic
type Kafka struct {
	w     messageWriter
	topic string
	log   logger.Logger
}

// NewKafka builds a publisher; with no brokers it returns a Nop publisher
func NewKafka(cfg Config, log logger.Logger) Publisher {
	if len(cfg.Brokers) == 0 || cfg.Topic == "" {
		return Nop{}
	}

	var compression kafka.Compression
	switch cfg.Compression {
	case "gzip":
		compression = kafka.Gzip
	case "lz4":
		compression = kafka.Lz4
	case "zstd":
		compression = kafka.Zstd
	case "snappy":
		compression = kafka.Snappy
	}
	bt := cfg.BatchTimeout
	if bt <= 0 {
		bt = 50 * time.Millisecond
	}

	w := &kafka.Writer{
		Addr:                   kafka.TCP(cfg.Brokers...),
		Topic:                  cfg.Topic,
		Balancer:               &kafka.Hash{},
		BatchTimeout:           bt,
		RequiredAcks:           kafka.RequiredAcks(cfg.RequiredAcks),
		Compression:            compression,
		AllowAutoTopicCreation: true,
	}
	return &Kafka{w: w, topic: cfg.Topic, log: log}
}

// Publish stamps missing ids and times then writes every event in one call
func (k *Kafka) Publish(ctx context.Context, evs ...Event) error {
	if len(evs) == 0 {
		return nil
	}
	msgs := make([]kafka.Message, 0, len(evs))
	for _, e := range evs {
		if e.ID == "" {
			e.ID = uuid.NewString()
		}
		if e.At.IsZero() {
			e.At = time.Now().UTC()
		}
		body, err := json.Marshal(e)
		if err != nil {
			return fmt.Errorf("events: encode %s: %w", e.Type, err)
		}
		hs := []kafka.Header{{Key: "event_type", Value: []byte(e.Type)}, {Key: "event_id", Value: []byte(e.ID)}}
		for hk, hv := range e.Headers {
			hs = append(hs, kafka.Header{Key: hk, Value: []byte(hv)})
		}
		msgs = append(msgs, kafka.Message{Key: []byte(e.Key), Value: body, Headers: hs, Time: e.At})
	}

	if err := k.w.WriteMessages(ctx, msgs...); err != nil {
		k.log.Error().Err(err).Str("topic", k.topic).Int("events", len(msgs)).Msg("publish failed")
		return fmt.Errorf("events: publish: %w", err)
	}
	k.log.Debug().Str("topic", k.topic).Int("events", len(msgs)).Msg("published")
	return nil
}

// Close flushes and closes the writer
func (k *Kafka) Close() error { return k.w.Close() }

// Nop drops every event
type Nop struct{}

// Publish implements Publisher
func (Nop) Publish(context.Context, ...Event) error { return nil }

// Close implements Publisher
func (Nop) Close() error { return nil }
