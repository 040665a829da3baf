package backplane

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"overcooked-tableside/logger"

	"github.com/redis/go-redis/v9"
)

var errSubscriptionClosed = errors.New("redis subscription closed")

// RedisBus fans envelopes out over a single Redis pub/sub channel. A lost
// subscription is re-established after retryDelay.
type RedisBus struct {
	Client  *redis.Client
	Channel string
	log     *slog.Logger

	retryDelay time.Duration
}

func NewRedisBus(client *redis.Client, channel string, log *slog.Logger) *RedisBus {
	if log == nil {
		log = logger.Discard()
	}
	return &RedisBus{Client: client, Channel: channel, log: log, retryDelay: time.Second}
}

func (b *RedisBus) Publish(ctx context.Context, env Envelope) error {
	data, err := encodeEnvelope(env)
	if err != nil {
		return err
	}
	return b.Client.Publish(ctx, b.Channel, data).Err()
}

func (b *RedisBus) Consume(ctx context.Context, handle func(Envelope)) error {
	for {
		err := b.consumeOnce(ctx, handle)
		if ctx.Err() != nil {
			return nil
		}
		b.log.Error("redis subscription lost, resubscribing", "channel", b.Channel, "error", err)
		if !waitRetry(ctx, b.retryDelay) {
			return nil
		}
	}
}

func (b *RedisBus) consumeOnce(ctx context.Context, handle func(Envelope)) error {
	sub := b.Client.Subscribe(ctx, b.Channel)
	defer sub.Close()

	if _, err := sub.Receive(ctx); err != nil {
		return err
	}
	b.log.Info("subscribed to redis channel", "channel", b.Channel)

	messages := sub.Channel()
	for {
		select {
		case <-ctx.Done():
			return nil
		case msg, ok := <-messages:
			if !ok {
				return errSubscriptionClosed
			}
			dispatch(b.log, []byte(msg.Payload), handle)
		}
	}
}

func (b *RedisBus) Close() error {
	return b.Client.Close()
}

var _ Bus = (*RedisBus)(nil)
