package notify

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"overcooked-tableside/logger"
	"overcooked-tableside/order-svc/internal/domain"
	"overcooked-tableside/order-svc/internal/service"
)

const (
	publishTimeout   = 5 * time.Second
	DefaultQueueSize = 256
)

// Broadcaster maps lifecycle events onto the topics that care about them.
// Events are queued and published by a single goroutine in the order they
// were raised, so callers never wait on the transport. A full queue drops
// the event, transport errors and panics are logged, and a nil transport
// turns every call into a no-op.
type Broadcaster struct {
	transport Transport
	log       *slog.Logger
	now       func() time.Time

	mu     sync.RWMutex
	closed bool
	queue  chan broadcast
	done   chan struct{}
}

type broadcast struct {
	ctx     context.Context
	event   string
	payload any
	topics  []string
}

func NewBroadcaster(transport Transport, log *slog.Logger) *Broadcaster {
	return newBroadcaster(transport, log, DefaultQueueSize)
}

func newBroadcaster(transport Transport, log *slog.Logger, size int) *Broadcaster {
	if log == nil {
		log = logger.Discard()
	}
	b := &Broadcaster{
		transport: transport,
		log:       log,
		now:       time.Now,
		queue:     make(chan broadcast, size),
		done:      make(chan struct{}),
	}
	go b.drain()
	return b
}

// Close stops accepting events and returns once everything already queued
// has been published.
func (b *Broadcaster) Close() {
	b.mu.Lock()
	if !b.closed {
		b.closed = true
		close(b.queue)
	}
	b.mu.Unlock()
	<-b.done
}

func (b *Broadcaster) NewOrder(ctx context.Context, order domain.CompositeOrder) {
	b.publish(ctx, domain.EventNewOrder, domain.NewOrderEvent{
		EventMeta: b.meta(domain.EventNewOrder),
		Order:     order,
	}, domain.TopicAdmin, domain.TopicKitchen)
}

func (b *Broadcaster) OrderStatusUpdate(ctx context.Context, orderID int, status domain.Status, tableNumber int, estimatedTime *int) {
	topics := []string{domain.TopicAdmin, domain.TopicKitchen, domain.CustomerTopic(orderID)}
	if tableNumber > 0 {
		topics = append(topics, domain.TableTopic(tableNumber))
	}
	b.publish(ctx, domain.EventOrderStatusUpdate, domain.OrderStatusUpdateEvent{
		EventMeta:     b.meta(domain.EventOrderStatusUpdate),
		OrderID:       orderID,
		Status:        status,
		TableNumber:   tableNumber,
		EstimatedTime: estimatedTime,
	}, topics...)
}

func (b *Broadcaster) NewItemsAdded(ctx context.Context, orderID int, items []domain.OrderItem, tableNumber int) {
	b.publish(ctx, domain.EventNewItemsAdded, domain.NewItemsAddedEvent{
		EventMeta:   b.meta(domain.EventNewItemsAdded),
		OrderID:     orderID,
		NewItems:    items,
		TableNumber: tableNumber,
	}, domain.TopicKitchen, domain.TopicAdmin)
}

func (b *Broadcaster) OrderCompleted(ctx context.Context, orderID int) {
	b.publish(ctx, domain.EventOrderCompleted, domain.OrderCompletedEvent{
		EventMeta: b.meta(domain.EventOrderCompleted),
		OrderID:   orderID,
	}, domain.TopicAdmin, domain.TopicKitchen)
}

func (b *Broadcaster) OrderCancelled(ctx context.Context, orderID int, reason string) {
	b.publish(ctx, domain.EventOrderCancelled, domain.OrderCancelledEvent{
		EventMeta: b.meta(domain.EventOrderCancelled),
		OrderID:   orderID,
		Reason:    reason,
	}, domain.TopicAdmin, domain.TopicKitchen)
}

func (b *Broadcaster) OrderDeleted(ctx context.Context, orderID int, tableNumber int) {
	topics := []string{domain.TopicAdmin, domain.TopicKitchen}
	if tableNumber > 0 {
		topics = append(topics, domain.TableTopic(tableNumber))
	}
	b.publish(ctx, domain.EventOrderDeleted, domain.OrderDeletedEvent{
		EventMeta:   b.meta(domain.EventOrderDeleted),
		OrderID:     orderID,
		TableNumber: tableNumber,
	}, topics...)
}

func (b *Broadcaster) meta(eventType string) domain.EventMeta {
	return domain.NewEventMeta(eventType, b.now())
}

func (b *Broadcaster) publish(ctx context.Context, event string, payload any, topics ...string) {
	if b.transport == nil {
		return
	}

	b.mu.RLock()
	defer b.mu.RUnlock()
	if b.closed {
		b.log.Warn("broadcaster closed, dropping notification", "event", event)
		return
	}

	// Fan-out outlives the request context.
	select {
	case b.queue <- broadcast{ctx: context.WithoutCancel(ctx), event: event, payload: payload, topics: topics}:
	default:
		b.log.Warn("notification queue full, dropping notification", "event", event)
	}
}

func (b *Broadcaster) drain() {
	defer close(b.done)
	for next := range b.queue {
		b.deliver(next)
	}
}

func (b *Broadcaster) deliver(next broadcast) {
	defer func() {
		if r := recover(); r != nil {
			b.log.Error("transport panicked while publishing", "event", next.event, "panic", r)
		}
	}()

	ctx, cancel := context.WithTimeout(next.ctx, publishTimeout)
	defer cancel()

	for _, topic := range next.topics {
		if err := b.transport.Publish(ctx, topic, next.event, next.payload); err != nil {
			b.log.Warn("notification not delivered", "event", next.event, "topic", topic, "error", err)
		}
	}
}

var _ service.Notifier = (*Broadcaster)(nil)
