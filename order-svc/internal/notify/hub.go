package notify

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"sort"
	"sync"

	"overcooked-tableside/logger"
)

var (
	ErrUnknownConnection = errors.New("unknown connection")
	ErrConnectionExists  = errors.New("connection already registered")
	ErrHubClosed         = errors.New("hub closed")
)

// Transport is what the broadcaster publishes through.
type Transport interface {
	Subscribe(connID, topic string) error
	Unsubscribe(connID, topic string) error
	Publish(ctx context.Context, topic, event string, payload any) error
}

type Message struct {
	Topic string
	Event string
	Data  []byte
}

type connection struct {
	ch     chan Message
	topics map[string]struct{}
}

// Hub tracks live connections and their topic memberships in process
// memory. Each connection has one buffered queue; when it is full, new
// messages for that connection are dropped.
type Hub struct {
	mu     sync.RWMutex
	conns  map[string]*connection
	topics map[string]map[string]struct{}
	buffer int
	closed bool
	log    *slog.Logger
}

func NewHub(buffer int, log *slog.Logger) *Hub {
	if buffer <= 0 {
		buffer = 64
	}
	if log == nil {
		log = logger.Discard()
	}
	return &Hub{
		conns:  make(map[string]*connection),
		topics: make(map[string]map[string]struct{}),
		buffer: buffer,
		log:    log,
	}
}

func (h *Hub) Connect(connID string) (<-chan Message, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.closed {
		return nil, ErrHubClosed
	}
	if _, ok := h.conns[connID]; ok {
		return nil, ErrConnectionExists
	}
	conn := &connection{
		ch:     make(chan Message, h.buffer),
		topics: make(map[string]struct{}),
	}
	h.conns[connID] = conn
	return conn.ch, nil
}

// Disconnect drops every membership of the connection and closes its queue.
func (h *Hub) Disconnect(connID string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	conn, ok := h.conns[connID]
	if !ok {
		return
	}
	for topic := range conn.topics {
		h.removeMember(topic, connID)
	}
	delete(h.conns, connID)
	close(conn.ch)
}

// Close ends every open stream and refuses new connections.
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.closed = true
	for connID, conn := range h.conns {
		delete(h.conns, connID)
		close(conn.ch)
	}
	h.topics = make(map[string]map[string]struct{})
}

func (h *Hub) Subscribe(connID, topic string) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	conn, ok := h.conns[connID]
	if !ok {
		return ErrUnknownConnection
	}
	conn.topics[topic] = struct{}{}
	members, ok := h.topics[topic]
	if !ok {
		members = make(map[string]struct{})
		h.topics[topic] = members
	}
	members[connID] = struct{}{}
	return nil
}

func (h *Hub) Unsubscribe(connID, topic string) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	conn, ok := h.conns[connID]
	if !ok {
		return ErrUnknownConnection
	}
	delete(conn.topics, topic)
	h.removeMember(topic, connID)
	return nil
}

func (h *Hub) removeMember(topic, connID string) {
	members := h.topics[topic]
	delete(members, connID)
	if len(members) == 0 {
		delete(h.topics, topic)
	}
}

func (h *Hub) Publish(_ context.Context, topic, event string, payload any) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	h.Deliver(topic, event, data)
	return nil
}

// Deliver queues an encoded message for every member of topic and returns
// how many connections accepted it.
func (h *Hub) Deliver(topic, event string, data []byte) int {
	h.mu.RLock()
	defer h.mu.RUnlock()

	delivered := 0
	for connID := range h.topics[topic] {
		select {
		case h.conns[connID].ch <- Message{Topic: topic, Event: event, Data: data}:
			delivered++
		default:
			h.log.Warn("connection queue full, dropping message", "connection_id", connID, "topic", topic, "event", event)
		}
	}
	return delivered
}

func (h *Hub) Topics(connID string) []string {
	h.mu.RLock()
	defer h.mu.RUnlock()

	conn, ok := h.conns[connID]
	if !ok {
		return nil
	}
	topics := make([]string, 0, len(conn.topics))
	for topic := range conn.topics {
		topics = append(topics, topic)
	}
	sort.Strings(topics)
	return topics
}

func (h *Hub) Members(topic string) []string {
	h.mu.RLock()
	defer h.mu.RUnlock()

	members := make([]string, 0, len(h.topics[topic]))
	for connID := range h.topics[topic] {
		members = append(members, connID)
	}
	sort.Strings(members)
	return members
}

func (h *Hub) ConnectionCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.conns)
}

var _ Transport = (*Hub)(nil)
