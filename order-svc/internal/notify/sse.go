package notify

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"overcooked-tableside/logger"
	"overcooked-tableside/order-svc/internal/domain"

	"github.com/google/uuid"
)

const DefaultKeepalive = 30 * time.Second

// SSEHandler streams hub messages to a browser as Server-Sent Events. The
// initial topics come from repeated ?topic= query parameters.
type SSEHandler struct {
	hub       *Hub
	log       *slog.Logger
	Keepalive time.Duration
}

func NewSSEHandler(hub *Hub, log *slog.Logger) *SSEHandler {
	if log == nil {
		log = logger.Discard()
	}
	return &SSEHandler{hub: hub, log: log, Keepalive: DefaultKeepalive}
}

type frame struct {
	Topic string          `json:"topic"`
	Data  json.RawMessage `json:"data"`
}

func (h *SSEHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "streaming unsupported", http.StatusInternalServerError)
		return
	}

	topics := r.URL.Query()["topic"]
	for _, topic := range topics {
		if !domain.ValidTopic(topic) {
			http.Error(w, fmt.Sprintf("invalid topic %q", topic), http.StatusBadRequest)
			return
		}
	}

	connID := uuid.NewString()
	messages, err := h.hub.Connect(connID)
	if errors.Is(err, ErrHubClosed) {
		http.Error(w, err.Error(), http.StatusServiceUnavailable)
		return
	}
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	defer h.hub.Disconnect(connID)

	for _, topic := range topics {
		if err := h.hub.Subscribe(connID, topic); err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("X-Accel-Buffering", "no")
	w.WriteHeader(http.StatusOK)

	h.log.Info("event stream opened", "connection_id", connID, "topics", topics)

	hello, _ := json.Marshal(map[string]any{"connectionId": connID, "topics": h.hub.Topics(connID)})
	fmt.Fprintf(w, "retry: 2000\n\n")
	writeEvent(w, "connected", hello)
	flusher.Flush()

	ticker := time.NewTicker(h.Keepalive)
	defer ticker.Stop()

	for {
		select {
		case <-r.Context().Done():
			h.log.Info("event stream closed", "connection_id", connID)
			return

		case <-ticker.C:
			fmt.Fprintf(w, ": keepalive\n\n")
			flusher.Flush()

		case msg, ok := <-messages:
			if !ok {
				h.log.Info("event stream closed by server", "connection_id", connID)
				return
			}
			data, err := json.Marshal(frame{Topic: msg.Topic, Data: msg.Data})
			if err != nil {
				h.log.Error("failed to encode event", "connection_id", connID, "event", msg.Event, "error", err)
				continue
			}
			writeEvent(w, msg.Event, data)
			flusher.Flush()
		}
	}
}

func writeEvent(w http.ResponseWriter, event string, data []byte) {
	fmt.Fprintf(w, "event: %s\n", event)
	fmt.Fprintf(w, "data: %s\n\n", data)
}
