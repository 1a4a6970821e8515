package kafka

import (
	"context"
	"log"

	"device-ingest/pkg/observability"

	"github.com/segmentio/kafka-go"
)

// Consumer fetches messages from one topic and hands each to a Handler on
// the worker pool. Offsets are committed whether the handler succeeded or
// not: a failed record is logged and counted, never redelivered. There is no
// retry topic and no dead letter queue.
type Consumer struct {
	reader  *kafka.Reader
	pool    *Pool
	handler Handler
}

func NewConsumer(broker, topic, groupID string, pool *Pool, handler Handler) *Consumer {
	r := kafka.NewReader(kafka.ReaderConfig{
		Brokers:  []string{broker},
		Topic:    topic,
		GroupID:  groupID,
		MinBytes: 10e3,
		MaxBytes: 10e6,
	})

	return &Consumer{
		reader:  r,
		pool:    pool,
		handler: handler,
	}
}

func (c *Consumer) Run(ctx context.Context) error {
	for {
		m, err := c.reader.FetchMessage(ctx)
		if err != nil {
			return err
		}

		msg := m
		c.pool.Submit(func(ctx context.Context) error {
			if err := c.handler.Handle(ctx, string(msg.Key), msg.Value); err != nil {
				observability.EventsFailed.Inc()
				log.Printf("event %s dropped: %v", msg.Key, err)
			}
			return c.reader.CommitMessages(ctx, msg)
		})
	}
}

func (c *Consumer) Close() error {
	return c.reader.Close()
}
