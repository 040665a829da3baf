package backplane

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"overcooked-tableside/logger"

	"github.com/segmentio/kafka-go"
)

type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

type messageReader interface {
	ReadMessage(ctx context.Context) (kafka.Message, error)
	Close() error
}

// KafkaBus keeps every envelope on a topic, keyed by notification topic so
// events for one audience stay in one partition and in order.
type KafkaBus struct {
	Writer messageWriter
	Reader messageReader
	log    *slog.Logger

	retryDelay time.Duration
}

func NewKafkaBus(writer *kafka.Writer, reader *kafka.Reader, log *slog.Logger) *KafkaBus {
	if log == nil {
		log = logger.Discard()
	}
	return &KafkaBus{Writer: writer, Reader: reader, log: log, retryDelay: time.Second}
}

func (b *KafkaBus) Publish(ctx context.Context, env Envelope) error {
	data, err := encodeEnvelope(env)
	if err != nil {
		return err
	}
	return b.Writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(env.Topic),
		Value: data,
		Time:  env.PublishedAt,
	})
}

func (b *KafkaBus) Consume(ctx context.Context, handle func(Envelope)) error {
	for {
		message, err := b.Reader.ReadMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			b.log.Error("error reading backplane message", "error", err)
			if !waitRetry(ctx, b.retryDelay) {
				return nil
			}
			continue
		}
		b.ProcessMessage(message, handle)
	}
}

func (b *KafkaBus) ProcessMessage(message kafka.Message, handle func(Envelope)) {
	dispatch(b.log, message.Value, handle)
}

func (b *KafkaBus) Close() error {
	return errors.Join(b.Writer.Close(), b.Reader.Close())
}

var _ Bus = (*KafkaBus)(nil)
