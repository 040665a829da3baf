// Package backplane carries notifications between order-svc instances so a
// client connected to any instance sees events raised on every instance.
package backplane

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"overcooked-tableside/logger"
	"overcooked-tableside/order-svc/internal/notify"
)

// Envelope is the wire form of one topic publish.
type Envelope struct {
	Topic       string          `json:"topic"`
	Event       string          `json:"event"`
	Payload     json.RawMessage `json:"payload"`
	Origin      string          `json:"origin"`
	PublishedAt time.Time       `json:"published_at"`
}

// Bus is a shared pub/sub channel. Consume blocks until ctx is done and
// hands every envelope, including ones this instance published, to handle.
type Bus interface {
	Publish(ctx context.Context, env Envelope) error
	Consume(ctx context.Context, handle func(Envelope)) error
	Close() error
}

// Relay is a notify.Transport that publishes through a Bus and feeds what
// the bus delivers into the local hub.
type Relay struct {
	bus    Bus
	hub    *notify.Hub
	origin string
	log    *slog.Logger
	now    func() time.Time
}

func NewRelay(bus Bus, hub *notify.Hub, origin string, log *slog.Logger) *Relay {
	if log == nil {
		log = logger.Discard()
	}
	return &Relay{bus: bus, hub: hub, origin: origin, log: log, now: time.Now}
}

func (r *Relay) Subscribe(connID, topic string) error {
	return r.hub.Subscribe(connID, topic)
}

func (r *Relay) Unsubscribe(connID, topic string) error {
	return r.hub.Unsubscribe(connID, topic)
}

// Publish falls back to local delivery when the bus rejects the envelope.
func (r *Relay) Publish(ctx context.Context, topic, event string, payload any) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	env := Envelope{
		Topic:       topic,
		Event:       event,
		Payload:     data,
		Origin:      r.origin,
		PublishedAt: r.now().UTC(),
	}
	if err := r.bus.Publish(ctx, env); err != nil {
		r.hub.Deliver(topic, event, data)
		return fmt.Errorf("backplane publish: %w", err)
	}
	return nil
}

// Run consumes the bus until ctx is cancelled.
func (r *Relay) Run(ctx context.Context) error {
	r.log.Info("backplane relay started", "origin", r.origin)
	err := r.bus.Consume(ctx, r.deliver)
	r.log.Info("backplane relay stopped", "origin", r.origin)
	return err
}

func (r *Relay) deliver(env Envelope) {
	r.hub.Deliver(env.Topic, env.Event, env.Payload)
}

// waitRetry sleeps for d and reports false if ctx ended first.
func waitRetry(ctx context.Context, d time.Duration) bool {
	select {
	case <-ctx.Done():
		return false
	case <-time.After(d):
		return true
	}
}

func encodeEnvelope(env Envelope) ([]byte, error) {
	return json.Marshal(env)
}

// dispatch decodes a raw bus message and hands it on. Malformed messages
// are logged and skipped.
func dispatch(log *slog.Logger, raw []byte, handle func(Envelope)) {
	var env Envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		log.Warn("skipping malformed backplane message", "error", err)
		return
	}
	if env.Topic == "" || env.Event == "" {
		log.Warn("skipping backplane message without topic or event")
		return
	}
	handle(env)
}

var _ notify.Transport = (*Relay)(nil)
