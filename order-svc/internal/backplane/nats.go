package backplane

import (
	"context"
	"fmt"
	"log/slog"

	"overcooked-tableside/logger"

	"github.com/nats-io/nats.go"
)

type NATSBus struct {
	conn    *nats.Conn
	subject string
	log     *slog.Logger
}

func NewNATSBus(url, subject string, log *slog.Logger) (*NATSBus, error) {
	if log == nil {
		log = logger.Discard()
	}
	conn, err := nats.Connect(url, nats.Name("order-svc"), nats.MaxReconnects(-1))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to NATS: %w", err)
	}
	return &NATSBus{conn: conn, subject: subject, log: log}, nil
}

func (b *NATSBus) Publish(_ context.Context, env Envelope) error {
	data, err := encodeEnvelope(env)
	if err != nil {
		return err
	}
	return b.conn.Publish(b.subject, data)
}

func (b *NATSBus) Consume(ctx context.Context, handle func(Envelope)) error {
	messages := make(chan *nats.Msg, 256)
	sub, err := b.conn.ChanSubscribe(b.subject, messages)
	if err != nil {
		return fmt.Errorf("failed to subscribe to %s: %w", b.subject, err)
	}
	defer sub.Unsubscribe()

	for {
		select {
		case <-ctx.Done():
			return nil
		case msg := <-messages:
			dispatch(b.log, msg.Data, handle)
		}
	}
}

func (b *NATSBus) Close() error {
	b.conn.Close()
	return nil
}

var _ Bus = (*NATSBus)(nil)
