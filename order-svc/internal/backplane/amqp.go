package backplane

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"overcooked-tableside/logger"

	amqp "github.com/rabbitmq/amqp091-go"
)

var errBusClosed = errors.New("backplane closed")

// AMQPBus publishes to a fanout exchange. Each instance consumes through an
// exclusive, auto-deleted queue bound to it, so every instance gets a copy.
// A dropped broker connection is redialled on the next publish or consume.
type AMQPBus struct {
	url      string
	mu       sync.Mutex
	conn     *amqp.Connection
	ch       *amqp.Channel
	closed   bool
	exchange string
	queue    string
	log      *slog.Logger

	retryDelay time.Duration
}

func NewAMQPBus(url, exchange, instanceID string, log *slog.Logger) (*AMQPBus, error) {
	if log == nil {
		log = logger.Discard()
	}
	b := &AMQPBus{
		url:        url,
		exchange:   exchange,
		queue:      exchange + "." + instanceID,
		log:        log,
		retryDelay: time.Second,
	}
	if err := b.dial(); err != nil {
		return nil, err
	}
	return b, nil
}

// dial replaces the connection and publishing channel. Callers hold mu.
func (b *AMQPBus) dial() error {
	conn, err := amqp.Dial(b.url)
	if err != nil {
		return fmt.Errorf("failed to connect to RabbitMQ: %w", err)
	}
	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return fmt.Errorf("failed to open channel: %w", err)
	}
	if err := ch.ExchangeDeclare(b.exchange, amqp.ExchangeFanout, true, false, false, false, nil); err != nil {
		conn.Close()
		return fmt.Errorf("failed to declare exchange %s: %w", b.exchange, err)
	}
	b.conn, b.ch = conn, ch
	return nil
}

// ensureLocked redials or reopens the publishing channel as needed. Callers
// hold mu.
func (b *AMQPBus) ensureLocked() error {
	if b.closed {
		return errBusClosed
	}
	if b.conn == nil || b.conn.IsClosed() {
		b.log.Warn("rabbitmq connection lost, redialling", "exchange", b.exchange)
		return b.dial()
	}
	if b.ch.IsClosed() {
		ch, err := b.conn.Channel()
		if err != nil {
			return fmt.Errorf("failed to open channel: %w", err)
		}
		b.ch = ch
	}
	return nil
}

func (b *AMQPBus) connection() (*amqp.Connection, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if err := b.ensureLocked(); err != nil {
		return nil, err
	}
	return b.conn, nil
}

func (b *AMQPBus) Publish(ctx context.Context, env Envelope) error {
	data, err := encodeEnvelope(env)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	b.mu.Lock()
	defer b.mu.Unlock()
	if err := b.ensureLocked(); err != nil {
		return err
	}
	return b.ch.PublishWithContext(ctx, b.exchange, "", false, false, amqp.Publishing{
		ContentType:  "application/json",
		Body:         data,
		DeliveryMode: amqp.Transient,
		Timestamp:    env.PublishedAt,
	})
}

func (b *AMQPBus) Consume(ctx context.Context, handle func(Envelope)) error {
	for {
		err := b.consumeOnce(ctx, handle)
		if ctx.Err() != nil || errors.Is(err, errBusClosed) {
			return nil
		}
		b.log.Error("rabbitmq consumer lost, reconnecting", "queue", b.queue, "error", err)
		if !waitRetry(ctx, b.retryDelay) {
			return nil
		}
	}
}

func (b *AMQPBus) consumeOnce(ctx context.Context, handle func(Envelope)) error {
	conn, err := b.connection()
	if err != nil {
		return err
	}
	ch, err := conn.Channel()
	if err != nil {
		return fmt.Errorf("failed to open consumer channel: %w", err)
	}
	defer ch.Close()

	q, err := ch.QueueDeclare(b.queue, false, true, true, false, nil)
	if err != nil {
		return fmt.Errorf("failed to declare queue %s: %w", b.queue, err)
	}
	if err := ch.QueueBind(q.Name, "", b.exchange, false, nil); err != nil {
		return fmt.Errorf("failed to bind queue %s: %w", q.Name, err)
	}

	deliveries, err := ch.Consume(q.Name, "", true, true, false, false, nil)
	if err != nil {
		return fmt.Errorf("failed to register consumer: %w", err)
	}

	for {
		select {
		case <-ctx.Done():
			return nil
		case d, ok := <-deliveries:
			if !ok {
				return fmt.Errorf("delivery channel for %s closed", q.Name)
			}
			dispatch(b.log, d.Body, handle)
		}
	}
}

func (b *AMQPBus) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.closed = true
	if err := b.ch.Close(); err != nil && !errors.Is(err, amqp.ErrClosed) {
		return err
	}
	return b.conn.Close()
}

var _ Bus = (*AMQPBus)(nil)
