package notify

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"overcooked-tableside/order-svc/internal/domain"
	"overcooked-tableside/order-svc/internal/mocks"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func publishedTopics(transport *mocks.Transport) []string {
	var topics []string
	for _, call := range transport.Calls {
		if call.Method == "Publish" {
			topics = append(topics, call.Arguments.String(1))
		}
	}
	return topics
}

func TestBroadcaster_TopicFanOut(t *testing.T) {
	estimate := 15

	tests := []struct {
		name           string
		event          string
		emit           func(b *Broadcaster)
		expectedTopics []string
	}{
		{
			name:  "new_order",
			event: domain.EventNewOrder,
			emit: func(b *Broadcaster) {
				b.NewOrder(context.Background(), domain.CompositeOrder{Order: domain.Order{ID: 7}, TableNumber: 4})
			},
			expectedTopics: []string{"admin", "kitchen"},
		},
		{
			name:  "status_update",
			event: domain.EventOrderStatusUpdate,
			emit: func(b *Broadcaster) {
				b.OrderStatusUpdate(context.Background(), 7, domain.StatusPreparing, 4, &estimate)
			},
			expectedTopics: []string{"admin", "kitchen", "customer:7", "table:4"},
		},
		{
			name:  "status_update_without_table",
			event: domain.EventOrderStatusUpdate,
			emit: func(b *Broadcaster) {
				b.OrderStatusUpdate(context.Background(), 7, domain.StatusPreparing, 0, nil)
			},
			expectedTopics: []string{"admin", "kitchen", "customer:7"},
		},
		{
			name:  "new_items_added",
			event: domain.EventNewItemsAdded,
			emit: func(b *Broadcaster) {
				b.NewItemsAdded(context.Background(), 7, []domain.OrderItem{{ID: 3}}, 4)
			},
			expectedTopics: []string{"kitchen", "admin"},
		},
		{
			name:           "completed",
			event:          domain.EventOrderCompleted,
			emit:           func(b *Broadcaster) { b.OrderCompleted(context.Background(), 7) },
			expectedTopics: []string{"admin", "kitchen"},
		},
		{
			name:           "cancelled",
			event:          domain.EventOrderCancelled,
			emit:           func(b *Broadcaster) { b.OrderCancelled(context.Background(), 7, "out of stock") },
			expectedTopics: []string{"admin", "kitchen"},
		},
		{
			name:           "deleted",
			event:          domain.EventOrderDeleted,
			emit:           func(b *Broadcaster) { b.OrderDeleted(context.Background(), 7, 4) },
			expectedTopics: []string{"admin", "kitchen", "table:4"},
		},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			transport := mocks.NewTransport(t)
			transport.On("Publish", mock.Anything, mock.AnythingOfType("string"), testCase.event, mock.Anything).
				Return(nil).Times(len(testCase.expectedTopics))

			b := NewBroadcaster(transport, nil)
			testCase.emit(b)
			b.Close()

			assert.Equal(t, testCase.expectedTopics, publishedTopics(transport))
		})
	}
}

func TestBroadcaster_PayloadCarriesMeta(t *testing.T) {
	at := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	transport := mocks.NewTransport(t)
	transport.On("Publish", mock.Anything, mock.Anything, domain.EventOrderCancelled, mock.MatchedBy(func(ev domain.OrderCancelledEvent) bool {
		return ev.Type == domain.EventOrderCancelled && ev.Timestamp.Equal(at) && ev.OrderID == 7 && ev.Reason == "kitchen closed"
	})).Return(nil).Twice()

	b := NewBroadcaster(transport, nil)
	b.now = func() time.Time { return at }
	b.OrderCancelled(context.Background(), 7, "kitchen closed")
	b.Close()
}

func TestBroadcaster_TransportErrorsAreSwallowed(t *testing.T) {
	transport := mocks.NewTransport(t)
	transport.On("Publish", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(errors.New("broker unavailable")).Twice()

	b := NewBroadcaster(transport, nil)
	assert.NotPanics(t, func() { b.OrderCompleted(context.Background(), 7) })
	b.Close()
}

func TestBroadcaster_NilTransportIsNoop(t *testing.T) {
	b := NewBroadcaster(nil, nil)
	assert.NotPanics(t, func() {
		b.NewOrder(context.Background(), domain.CompositeOrder{})
		b.OrderDeleted(context.Background(), 1, 2)
		b.Close()
		b.Close()
	})
}

func TestBroadcaster_PublishesAfterRequestCancelled(t *testing.T) {
	transport := mocks.NewTransport(t)
	transport.On("Publish", mock.MatchedBy(func(ctx context.Context) bool { return ctx.Err() == nil }),
		mock.Anything, domain.EventOrderCompleted, mock.Anything).Return(nil).Twice()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	b := NewBroadcaster(transport, nil)
	b.OrderCompleted(ctx, 7)
	b.Close()
}

func TestBroadcaster_DeliversThroughHub(t *testing.T) {
	hub := NewHub(8, nil)
	ch, _ := hub.Connect("table-tablet")
	_ = hub.Subscribe("table-tablet", domain.TableTopic(4))

	NewBroadcaster(hub, nil).OrderDeleted(context.Background(), 7, 4)

	msg := <-ch
	assert.Equal(t, domain.EventOrderDeleted, msg.Event)
	assert.Contains(t, string(msg.Data), `"tableNumber":4`)
	assert.Contains(t, string(msg.Data), `"type":"order-deleted"`)
}

func TestBroadcaster_DoesNotWaitForTransport(t *testing.T) {
	release := make(chan struct{})
	transport := mocks.NewTransport(t)
	transport.On("Publish", mock.Anything, mock.Anything, domain.EventOrderCompleted, mock.Anything).
		Run(func(mock.Arguments) { <-release }).Return(nil).Twice()

	b := NewBroadcaster(transport, nil)
	start := time.Now()
	b.OrderCompleted(context.Background(), 7)
	assert.Less(t, time.Since(start), 100*time.Millisecond)

	close(release)
	b.Close()
	transport.AssertNumberOfCalls(t, "Publish", 2)
}

func TestBroadcaster_SurvivesTransportPanic(t *testing.T) {
	transport := mocks.NewTransport(t)
	transport.On("Publish", mock.Anything, mock.Anything, domain.EventOrderCancelled, mock.Anything).
		Panic("codec exploded").Once()
	transport.On("Publish", mock.Anything, mock.Anything, domain.EventOrderCompleted, mock.Anything).
		Return(nil).Twice()

	b := NewBroadcaster(transport, nil)
	b.OrderCancelled(context.Background(), 7, "burnt")
	b.OrderCompleted(context.Background(), 8)
	b.Close()

	assert.Equal(t, []string{"admin", "admin", "kitchen"}, publishedTopics(transport))
}

func TestBroadcaster_FullQueueDrops(t *testing.T) {
	var once sync.Once
	started := make(chan struct{})
	release := make(chan struct{})
	transport := mocks.NewTransport(t)
	transport.On("Publish", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Run(func(mock.Arguments) {
			once.Do(func() { close(started) })
			<-release
		}).Return(nil)

	b := newBroadcaster(transport, nil, 1)
	b.OrderCompleted(context.Background(), 1)
	<-started
	b.OrderCompleted(context.Background(), 2)
	b.OrderCompleted(context.Background(), 3)

	close(release)
	b.Close()

	// Order 1 is in flight, order 2 is queued, order 3 is dropped.
	transport.AssertNumberOfCalls(t, "Publish", 4)
}

func TestBroadcaster_DropsAfterClose(t *testing.T) {
	transport := mocks.NewTransport(t)

	b := NewBroadcaster(transport, nil)
	b.Close()
	b.OrderCompleted(context.Background(), 7)

	transport.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}
