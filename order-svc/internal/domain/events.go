package domain

import (
	"strconv"
	"strings"
	"time"
)

const (
	EventNewOrder          = "new-order"
	EventOrderStatusUpdate = "order-status-update"
	EventNewItemsAdded     = "new-items-added"
	EventOrderCompleted    = "order-completed"
	EventOrderCancelled    = "order-cancelled"
	EventOrderDeleted      = "order-deleted"
)

const (
	TopicAdmin   = "admin"
	TopicKitchen = "kitchen"

	customerTopicPrefix = "customer:"
	tableTopicPrefix    = "table:"
)

func CustomerTopic(orderID int) string {
	return customerTopicPrefix + strconv.Itoa(orderID)
}

func TableTopic(tableNumber int) string {
	return tableTopicPrefix + strconv.Itoa(tableNumber)
}

// ValidTopic accepts admin, kitchen, customer:<orderId> and table:<tableNumber>.
func ValidTopic(topic string) bool {
	switch topic {
	case TopicAdmin, TopicKitchen:
		return true
	}
	for _, prefix := range []string{customerTopicPrefix, tableTopicPrefix} {
		if rest, ok := strings.CutPrefix(topic, prefix); ok {
			n, err := strconv.Atoi(rest)
			return err == nil && n > 0
		}
	}
	return false
}

// EventMeta is embedded in every event payload.
type EventMeta struct {
	Type      string    `json:"type"`
	Timestamp time.Time `json:"timestamp"`
}

func NewEventMeta(eventType string, at time.Time) EventMeta {
	return EventMeta{Type: eventType, Timestamp: at.UTC()}
}

type NewOrderEvent struct {
	EventMeta
	Order CompositeOrder `json:"order"`
}

type OrderStatusUpdateEvent struct {
	EventMeta
	OrderID       int    `json:"orderId"`
	Status        Status `json:"status"`
	TableNumber   int    `json:"tableNumber,omitempty"`
	EstimatedTime *int   `json:"estimatedTime,omitempty"`
}

type NewItemsAddedEvent struct {
	EventMeta
	OrderID     int         `json:"orderId"`
	NewItems    []OrderItem `json:"newItems"`
	TableNumber int         `json:"tableNumber"`
}

type OrderCompletedEvent struct {
	EventMeta
	OrderID int `json:"orderId"`
}

type OrderCancelledEvent struct {
	EventMeta
	OrderID int    `json:"orderId"`
	Reason  string `json:"reason"`
}

type OrderDeletedEvent struct {
	EventMeta
	OrderID     int `json:"orderId"`
	TableNumber int `json:"tableNumber"`
}
