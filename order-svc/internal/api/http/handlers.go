package httpapi

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"overcooked-tableside/logger"
	"overcooked-tableside/order-svc/internal/domain"
	"overcooked-tableside/order-svc/internal/notify"
	"overcooked-tableside/order-svc/internal/service"

	"github.com/gorilla/mux"
)

const serviceName = "order-svc"

// ConnectionCounter reports how many event streams are open on this instance.
type ConnectionCounter interface {
	ConnectionCount() int
}

type Handler struct {
	Orders        service.OrderServiceInterface
	Subscriptions notify.Transport
	Connections   ConnectionCounter
	log           *slog.Logger
}

func NewHandler(orders service.OrderServiceInterface, subscriptions notify.Transport, connections ConnectionCounter, log *slog.Logger) *Handler {
	if log == nil {
		log = logger.Discard()
	}
	return &Handler{
		Orders:        orders,
		Subscriptions: subscriptions,
		Connections:   connections,
		log:           log,
	}
}

func (h *Handler) RegisterRoutes(r *mux.Router) {
	r.HandleFunc("/health", h.healthCheck).Methods("GET")

	r.HandleFunc("/api/orders", h.createOrder).Methods("POST")
	r.HandleFunc("/api/orders", h.getOrders).Methods("GET")
	r.HandleFunc("/api/orders/{id}", h.getOrder).Methods("GET")
	r.HandleFunc("/api/orders/{id}", h.deleteOrder).Methods("DELETE")
	r.HandleFunc("/api/orders/{id}/status", h.updateStatus).Methods("PATCH")

	r.HandleFunc("/api/tables/{tableId}/orders", h.getTableOrders).Methods("GET")
	r.HandleFunc("/api/tables/{tableId}/orders/active", h.getActiveOrder).Methods("GET")
	r.HandleFunc("/api/tables/{tableId}/qrcode", h.getTableQRCode).Methods("GET")

	r.HandleFunc("/api/events/{connectionId}/topics", h.subscribe).Methods("POST")
	r.HandleFunc("/api/events/{connectionId}/topics/{topic}", h.unsubscribe).Methods("DELETE")
}

func (h *Handler) healthCheck(w http.ResponseWriter, r *http.Request) {
	connections := 0
	if h.Connections != nil {
		connections = h.Connections.ConnectionCount()
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"status":      "healthy",
		"service":     serviceName,
		"timestamp":   time.Now().Format(time.RFC3339),
		"connections": connections,
	})
}

type createOrderResponse struct {
	Order     *domain.CompositeOrder `json:"order"`
	Merged    bool                   `json:"merged"`
	OrderID   int                    `json:"orderId"`
	MergeInfo *domain.MergeInfo      `json:"mergeInfo,omitempty"`
	NewItems  []domain.OrderItem     `json:"newItems,omitempty"`
}

func (h *Handler) createOrder(w http.ResponseWriter, r *http.Request) {
	var req domain.PlaceOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Invalid JSON format: " + err.Error()})
		return
	}

	result, err := h.Orders.PlaceOrder(r.Context(), req)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	code := http.StatusCreated
	if result.Merged {
		code = http.StatusOK
	}
	resp := createOrderResponse{
		Order:     result.Order,
		Merged:    result.Merged,
		OrderID:   result.Order.ID,
		MergeInfo: result.MergeInfo,
	}
	// A fresh order's items are already the whole order.
	if result.Merged {
		resp.NewItems = result.NewItems
	}
	writeJSON(w, code, resp)
}

func (h *Handler) getOrders(w http.ResponseWriter, r *http.Request) {
	status := domain.Status(strings.TrimSpace(r.URL.Query().Get("status")))
	orders, err := h.Orders.ListOrders(r.Context(), status)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, nonNil(orders))
}

func (h *Handler) getOrder(w http.ResponseWriter, r *http.Request) {
	orderID, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	order, err := h.Orders.GetOrder(r.Context(), orderID)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, order)
}

func (h *Handler) updateStatus(w http.ResponseWriter, r *http.Request) {
	orderID, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	var update domain.StatusUpdate
	if err := json.NewDecoder(r.Body).Decode(&update); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Invalid JSON format: " + err.Error()})
		return
	}

	order, err := h.Orders.UpdateStatus(r.Context(), orderID, update)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, order)
}

func (h *Handler) deleteOrder(w http.ResponseWriter, r *http.Request) {
	orderID, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	result, err := h.Orders.DeleteOrder(r.Context(), orderID)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"order":       result.Order,
		"tableNumber": result.TableNumber,
	})
}

func (h *Handler) getTableOrders(w http.ResponseWriter, r *http.Request) {
	tableID, ok := pathID(w, r, "tableId")
	if !ok {
		return
	}
	orders, err := h.Orders.ListTableOrders(r.Context(), tableID)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, nonNil(orders))
}

func (h *Handler) getActiveOrder(w http.ResponseWriter, r *http.Request) {
	tableID, ok := pathID(w, r, "tableId")
	if !ok {
		return
	}
	order, err := h.Orders.ActiveOrder(r.Context(), tableID, r.URL.Query().Get("customer_name"))
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, order)
}

func (h *Handler) getTableQRCode(w http.ResponseWriter, r *http.Request) {
	tableID, ok := pathID(w, r, "tableId")
	if !ok {
		return
	}
	png, err := h.Orders.TableQRCode(r.Context(), tableID)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Cache-Control", "public, max-age=3600")
	w.WriteHeader(http.StatusOK)
	w.Write(png)
}

func (h *Handler) subscribe(w http.ResponseWriter, r *http.Request) {
	connID := mux.Vars(r)["connectionId"]
	var body struct {
		Topic string `json:"topic"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Invalid JSON format: " + err.Error()})
		return
	}
	h.changeMembership(w, connID, body.Topic, h.Subscriptions.Subscribe)
}

func (h *Handler) unsubscribe(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	h.changeMembership(w, vars["connectionId"], vars["topic"], h.Subscriptions.Unsubscribe)
}

func (h *Handler) changeMembership(w http.ResponseWriter, connID, topic string, change func(connID, topic string) error) {
	if !domain.ValidTopic(topic) {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid topic", "field": "topic"})
		return
	}
	if err := change(connID, topic); err != nil {
		if errors.Is(err, notify.ErrUnknownConnection) {
			writeJSON(w, http.StatusNotFound, map[string]string{"error": "Connection not found", "entity": "connection"})
			return
		}
		h.log.Error("failed to change subscription", "connection_id", connID, "topic", topic, "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "Internal server error"})
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// writeError maps service errors onto status codes. Store failures are
// already logged with their identifiers by the service.
func (h *Handler) writeError(w http.ResponseWriter, r *http.Request, err error) {
	var (
		validation *domain.ValidationError
		notFound   *domain.NotFoundError
		transition *domain.TransitionError
	)
	switch {
	case errors.As(err, &validation):
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": validation.Error(), "field": validation.Field})
	case errors.As(err, &notFound):
		writeJSON(w, http.StatusNotFound, map[string]interface{}{
			"error":  notFoundMessage(notFound.Entity),
			"entity": notFound.Entity,
			"id":     notFound.ID,
		})
	case errors.As(err, &transition):
		allowed := domain.NextStatuses(transition.From)
		if allowed == nil {
			allowed = []domain.Status{}
		}
		writeJSON(w, http.StatusBadRequest, map[string]interface{}{
			"error":           transition.Error(),
			"currentStatus":   string(transition.From),
			"requestedStatus": string(transition.To),
			"allowedStatuses": allowed,
		})
	default:
		h.log.Error("request failed", "method", r.Method, "path", r.URL.Path, "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "Internal server error"})
	}
}

func notFoundMessage(entity string) string {
	switch entity {
	case "table":
		return "Table not found"
	case "menu_item":
		return "Menu item not found"
	case "active_order":
		return "No active order found"
	default:
		return "Order not found"
	}
}

func pathID(w http.ResponseWriter, r *http.Request, name string) (int, bool) {
	id, err := strconv.Atoi(mux.Vars(r)[name])
	if err != nil || id <= 0 {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid " + name, "field": name})
		return 0, false
	}
	return id, true
}

func nonNil(orders []domain.CompositeOrder) []domain.CompositeOrder {
	if orders == nil {
		return []domain.CompositeOrder{}
	}
	return orders
}

func writeJSON(w http.ResponseWriter, code int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(body)
}
