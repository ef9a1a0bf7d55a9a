// Package stream is the at-least-once publish/subscribe client for the
// pipeline. It owns topic naming, queue topology and dead-letter redirection.
package stream

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/wb-go/wbf/rabbitmq"
	"github.com/wb-go/wbf/retry"
	"github.com/wb-go/wbf/zlog"
)

// Handler processes a single raw message. A non-nil error forwards the
// message to the dead-letter topic; in-place retry is the retry engine's
// responsibility, not the stream's.
type Handler func(ctx context.Context, body []byte) error

// Client is a broker client with at-least-once producer semantics. Publish
// retries on the producer side are idempotent at the broker level but do not
// dedupe application-level re-publishes.
//
// Reconnect on startup is bounded: rabbitmq.Connect retries with a pause and
// gives up after the configured number of attempts, after which the caller
// must treat the stream as unavailable.
// publisher is the producer-side surface of rabbitmq.Publisher.
type publisher interface {
	PublishWithRetry(body []byte, routingKey, contentType string, strategy retry.Strategy, options ...rabbitmq.PublishingOptions) error
}

type Client struct {
	ch       *rabbitmq.Channel
	pub      publisher
	source   string
	strategy retry.Strategy
}

// New declares the exchange and every topic queue, and returns a client
// ready to publish and subscribe.
func New(ch *rabbitmq.Channel, source string, strategy retry.Strategy) (*Client, error) {
	exchange := rabbitmq.NewExchange(ExchangeName, "direct")
	if err := exchange.BindToChannel(ch); err != nil {
		return nil, fmt.Errorf("bind exchange: %w", err)
	}

	qm := rabbitmq.NewQueueManager(ch)

	for _, topic := range []string{TopicNotifications, TopicEvents, TopicBatchJobs, TopicDeadLetter} {
		q, err := qm.DeclareQueue(topic, rabbitmq.QueueConfig{Durable: true})
		if err != nil {
			return nil, fmt.Errorf("declare queue %s: %w", topic, err)
		}

		if err := ch.QueueBind(q.Name, topic, exchange.Name(), false, nil); err != nil {
			return nil, fmt.Errorf("bind queue %s: %w", topic, err)
		}
	}

	return &Client{
		ch:       ch,
		pub:      rabbitmq.NewPublisher(ch, exchange.Name()),
		source:   source,
		strategy: strategy,
	}, nil
}

// Publish serializes message, stamps it with a timestamp and the producer
// source, and sends it to topic. key identifies the aggregate the message
// belongs to; messages with the same key are observed in publish order.
func (c *Client) Publish(topic string, message any, key string) error {
	body, err := c.stamp(message, key)
	if err != nil {
		return err
	}

	if err := c.pub.PublishWithRetry(body, topic, "application/json", c.strategy); err != nil {
		return fmt.Errorf("publish to %s: %w", topic, err)
	}

	return nil
}

// PublishRaw sends an already-serialized message unchanged. Used for
// re-publishing a consumed message for another delivery attempt without
// altering its payload.
func (c *Client) PublishRaw(topic string, body []byte) error {
	if err := c.pub.PublishWithRetry(body, topic, "application/json", c.strategy); err != nil {
		return fmt.Errorf("publish raw to %s: %w", topic, err)
	}

	return nil
}

// PublishBatch sends all messages to topic. The first failure aborts the
// batch and is reported for the batch as a whole; there is no per-message
// result.
func (c *Client) PublishBatch(topic string, messages []any) error {
	for i, m := range messages {
		body, err := c.stamp(m, "")
		if err != nil {
			return fmt.Errorf("batch message %d: %w", i, err)
		}

		if err := c.pub.PublishWithRetry(body, topic, "application/json", c.strategy); err != nil {
			return fmt.Errorf("publish batch to %s: %w", topic, err)
		}
	}

	return nil
}

// Subscribe joins the consumer group for topic and delivers each message to
// handler on a bounded pool of workers. A handler error or panic forwards
// the raw message to the dead-letter topic; the message is not retried in
// place. Subscribe blocks until ctx is cancelled.
func (c *Client) Subscribe(ctx context.Context, topic string, handler Handler, group string, workers int) error {
	if workers <= 0 {
		workers = 1
	}

	cons := rabbitmq.NewConsumer(c.ch, rabbitmq.NewConsumerConfig(topic))
	msgChan := make(chan []byte, workers*10)

	var wg sync.WaitGroup
	wg.Add(workers)

	for i := 0; i < workers; i++ {
		go func(id int) {
			defer wg.Done()

			for {
				select {
				case <-ctx.Done():
					return
				case body, ok := <-msgChan:
					if !ok {
						return
					}

					c.dispatch(ctx, topic, group, body, handler)
				}
			}
		}(i)
	}

	// The consume loop has no context of its own; it ends when the AMQP
	// channel closes during shutdown. Closing msgChan lets the workers
	// finish the buffered backlog and exit.
	go func() {
		defer close(msgChan)

		if err := cons.ConsumeWithRetry(msgChan, c.strategy); err != nil {
			zlog.Logger.Error().Err(err).Str("topic", topic).Str("group", group).Msg("consume failed")
		}
	}()

	zlog.Logger.Info().Str("topic", topic).Str("group", group).Int("workers", workers).Msg("subscribed")

	<-ctx.Done()

	// Workers stop on ctx.Done; keep draining so the consume loop never
	// blocks on a full buffer while the channel tears down.
	go func() {
		for range msgChan {
		}
	}()

	wg.Wait()

	return nil
}

// dispatch runs handler for one message, converting an error or panic into a
// dead-letter forward.
func (c *Client) dispatch(ctx context.Context, topic, group string, body []byte, handler Handler) {
	defer func() {
		if r := recover(); r != nil {
			zlog.Logger.Error().Interface("panic", r).Str("topic", topic).Msg("handler panicked")
			c.forwardDeadLetter(topic, body, fmt.Errorf("handler panic: %v", r))
		}
	}()

	if err := handler(ctx, body); err != nil {
		zlog.Logger.Error().Err(err).Str("topic", topic).Str("group", group).Msg("handler failed")
		c.forwardDeadLetter(topic, body, err)
	}
}

// PublishDeadLetter parks a message that exhausted processing, attaching the
// originating topic and the failure cause. Dead-lettered messages are never
// auto-discarded; replay is an operator action.
func (c *Client) PublishDeadLetter(originalTopic string, original []byte, cause error) error {
	dl := DeadLetterMessage{
		OriginalTopic: originalTopic,
		Message:       string(original),
		Error:         cause.Error(),
		Timestamp:     time.Now().UTC(),
		Source:        c.source,
	}

	body, err := json.Marshal(dl)
	if err != nil {
		return fmt.Errorf("marshal dead letter: %w", err)
	}

	if err := c.pub.PublishWithRetry(body, TopicDeadLetter, "application/json", c.strategy); err != nil {
		return fmt.Errorf("publish dead letter: %w", err)
	}

	return nil
}

func (c *Client) forwardDeadLetter(topic string, body []byte, cause error) {
	if err := c.PublishDeadLetter(topic, body, cause); err != nil {
		zlog.Logger.Error().Err(err).Str("topic", topic).Msg("failed to publish to dead letter queue")
	}
}

// stamp marshals message and injects timestamp, source and key fields into
// the serialized object.
func (c *Client) stamp(message any, key string) ([]byte, error) {
	data, err := json.Marshal(message)
	if err != nil {
		return nil, fmt.Errorf("marshal message: %w", err)
	}

	var m map[string]any
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("unmarshal message for stamping: %w", err)
	}

	m["timestamp"] = time.Now().UTC().Format(time.RFC3339Nano)
	m["source"] = c.source
	if key != "" {
		m["key"] = key
	}

	body, err := json.Marshal(m)
	if err != nil {
		return nil, fmt.Errorf("marshal stamped message: %w", err)
	}

	return body, nil
}
