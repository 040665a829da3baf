package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"unicode/utf8"

	"overcooked-tableside/logger"
	"overcooked-tableside/order-svc/internal/domain"

	"github.com/shopspring/decimal"
)

const (
	DefaultCancelReason = "Order cancelled"

	maxCustomerNameLength = 100
	maxItemQuantity       = 999
	maxCreateAttempts     = 3
)

type OrderService struct {
	repository OrderRepository
	numbers    NumberGenerator
	notifier   Notifier
	qr         QRGenerator
	log        *slog.Logger
}

func NewOrderService(repository OrderRepository, numbers NumberGenerator, notifier Notifier, qr QRGenerator, log *slog.Logger) *OrderService {
	if notifier == nil {
		notifier = nopNotifier{}
	}
	if log == nil {
		log = logger.Discard()
	}
	return &OrderService{
		repository: repository,
		numbers:    numbers,
		notifier:   notifier,
		qr:         qr,
		log:        log,
	}
}

// placement is what a single PlaceOrder unit of work produced.
type placement struct {
	orderID       int
	merged        bool
	items         []domain.OrderItem
	previousTotal decimal.Decimal
	newTotal      decimal.Decimal
}

// PlaceOrder appends the items to the customer's open order at the table,
// or opens a new order when there is none.
func (s *OrderService) PlaceOrder(ctx context.Context, req domain.PlaceOrderRequest) (*domain.PlaceOrderResult, error) {
	req.CustomerName = strings.TrimSpace(req.CustomerName)
	if err := validatePlaceOrder(req); err != nil {
		return nil, err
	}

	table, err := s.repository.GetActiveTable(ctx, req.TableID)
	if err != nil {
		return nil, s.storeFailure("get table", err, "table_id", req.TableID)
	}

	prices, err := s.repository.MenuItemPrices(ctx, menuItemIDs(req.Items))
	if err != nil {
		return nil, s.storeFailure("get menu prices", err, "table_id", req.TableID)
	}
	for _, item := range req.Items {
		if _, ok := prices[item.MenuItemID]; !ok {
			return nil, domain.NewNotFoundError("menu_item", item.MenuItemID)
		}
	}

	var placed *placement
	for attempt := 1; ; attempt++ {
		placed, err = s.place(ctx, req, prices)
		if errors.Is(err, domain.ErrDuplicateOrderNumber) && attempt < maxCreateAttempts {
			s.log.Warn("order number taken at insert, retrying", "table_id", req.TableID, "attempt", attempt)
			continue
		}
		break
	}
	if err != nil {
		return nil, s.storeFailure("place order", err, "table_id", req.TableID, "customer_name", req.CustomerName)
	}

	order, err := s.repository.GetCompositeOrder(ctx, placed.orderID)
	if err != nil {
		return nil, s.storeFailure("get order", err, "order_id", placed.orderID)
	}

	result := &domain.PlaceOrderResult{
		Order:    order,
		Merged:   placed.merged,
		NewItems: placed.items,
	}

	if placed.merged {
		result.MergeInfo = &domain.MergeInfo{
			ItemsAdded:    len(placed.items),
			PreviousTotal: placed.previousTotal,
			NewTotal:      placed.newTotal,
		}
		s.log.Info("items merged into open order",
			"order_id", order.ID, "table_id", order.TableID, "items_added", len(placed.items), "total", order.TotalAmount.StringFixed(2))
		s.notifier.OrderStatusUpdate(ctx, order.ID, order.Status, table.TableNumber, nil)
		s.notifier.NewItemsAdded(ctx, order.ID, placed.items, table.TableNumber)
	} else {
		s.log.Info("order created",
			"order_id", order.ID, "order_number", order.OrderNumber, "table_id", order.TableID, "total", order.TotalAmount.StringFixed(2))
		s.notifier.NewOrder(ctx, *order)
	}

	return result, nil
}

func (s *OrderService) place(ctx context.Context, req domain.PlaceOrderRequest, prices map[int]decimal.Decimal) (*placement, error) {
	var placed placement

	err := s.repository.WithinTx(ctx, func(store OrderStore) error {
		placed = placement{}

		active, err := store.FindActiveOrder(ctx, req.TableID, req.CustomerName)
		if err != nil {
			return domain.WrapStore("find active order", err)
		}

		if active != nil {
			placed.merged = true
			placed.orderID = active.ID
			placed.previousTotal = active.TotalAmount
		} else {
			number, err := s.numbers.Generate(ctx, store)
			if err != nil {
				return err
			}
			order := &domain.Order{
				OrderNumber:         number,
				TableID:             req.TableID,
				CustomerName:        req.CustomerName,
				Status:              domain.StatusPending,
				TotalAmount:         quoteTotal(req.Items, prices),
				SpecialInstructions: strings.TrimSpace(req.SpecialInstructions),
			}
			if err := store.InsertOrder(ctx, order); err != nil {
				return domain.WrapStore("insert order", err)
			}
			placed.orderID = order.ID
			placed.previousTotal = decimal.Zero
		}

		for _, requested := range req.Items {
			price := prices[requested.MenuItemID]
			item := &domain.OrderItem{
				OrderID:         placed.orderID,
				MenuItemID:      requested.MenuItemID,
				Quantity:        requested.Quantity,
				UnitPrice:       price,
				TotalPrice:      domain.LineTotal(price, requested.Quantity),
				SpecialRequests: strings.TrimSpace(requested.SpecialRequests),
			}
			if err := store.InsertOrderItem(ctx, item); err != nil {
				return domain.WrapStore("insert order item", err)
			}
			placed.items = append(placed.items, *item)
		}

		total, err := store.RecomputeTotal(ctx, placed.orderID)
		if err != nil {
			return domain.WrapStore("recompute order total", err)
		}
		placed.newTotal = total
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &placed, nil
}

func (s *OrderService) UpdateStatus(ctx context.Context, orderID int, update domain.StatusUpdate) (*domain.CompositeOrder, error) {
	if !update.Status.Valid() {
		return nil, domain.NewValidationError("status", fmt.Sprintf("unknown status %q", update.Status))
	}
	if update.EstimatedTime != nil && *update.EstimatedTime < 0 {
		return nil, domain.NewValidationError("estimated_time", "must not be negative")
	}

	current, err := s.repository.GetOrder(ctx, orderID)
	if err != nil {
		return nil, s.storeFailure("get order", err, "order_id", orderID)
	}

	if err := checkTransition(current.Status, update.Status); err != nil {
		return nil, err
	}

	if _, err := s.repository.UpdateStatus(ctx, orderID, current.Status, update.Status); err != nil {
		if !errors.Is(err, domain.ErrNotFound) {
			return nil, s.storeFailure("update order status", err, "order_id", orderID)
		}
		// Nothing matched: the order moved or vanished after it was read.
		latest, getErr := s.repository.GetOrder(ctx, orderID)
		if getErr != nil {
			return nil, s.storeFailure("get order", getErr, "order_id", orderID)
		}
		return nil, &domain.TransitionError{From: latest.Status, To: update.Status, Reason: "order status changed concurrently"}
	}

	order, err := s.repository.GetCompositeOrder(ctx, orderID)
	if err != nil {
		return nil, s.storeFailure("get order", err, "order_id", orderID)
	}

	s.log.Info("order status changed", "order_id", orderID, "from", current.Status, "to", update.Status)

	s.notifier.OrderStatusUpdate(ctx, orderID, order.Status, order.TableNumber, update.EstimatedTime)
	switch update.Status {
	case domain.StatusCompleted:
		s.notifier.OrderCompleted(ctx, orderID)
	case domain.StatusCancelled:
		reason := strings.TrimSpace(update.Reason)
		if reason == "" {
			reason = DefaultCancelReason
		}
		s.notifier.OrderCancelled(ctx, orderID, reason)
	}

	return order, nil
}

// checkTransition applies the completion guard first, then the lifecycle table.
func checkTransition(from, to domain.Status) error {
	if to == domain.StatusCompleted && from != domain.StatusReady {
		return &domain.TransitionError{From: from, To: to, Reason: "order must be ready before it can be completed"}
	}
	if domain.CanTransition(from, to) {
		return nil
	}
	err := &domain.TransitionError{From: from, To: to}
	switch {
	case from == to:
		err.Reason = "order is already " + string(from)
	case from.Terminal():
		err.Reason = "order is " + string(from) + " and can no longer change"
	}
	return err
}

func (s *OrderService) DeleteOrder(ctx context.Context, orderID int) (*domain.DeleteResult, error) {
	var deleted *domain.Order

	err := s.repository.WithinTx(ctx, func(store OrderStore) error {
		order, err := store.GetOrder(ctx, orderID)
		if err != nil {
			return domain.WrapStore("get order", err)
		}
		if _, err := store.DeleteOrderItems(ctx, orderID); err != nil {
			return domain.WrapStore("delete order items", err)
		}
		n, err := store.DeleteOrder(ctx, orderID)
		if err != nil {
			return domain.WrapStore("delete order", err)
		}
		if n == 0 {
			return domain.NewNotFoundError("order", orderID)
		}
		deleted = order
		return nil
	})
	if err != nil {
		return nil, s.storeFailure("delete order", err, "order_id", orderID)
	}

	tableNumber, err := s.repository.GetTableNumber(ctx, deleted.TableID)
	if err != nil {
		s.log.Warn("deleted order has no resolvable table", "order_id", orderID, "table_id", deleted.TableID, "error", err)
	}

	s.log.Info("order deleted", "order_id", orderID, "table_number", tableNumber)
	s.notifier.OrderDeleted(ctx, orderID, tableNumber)

	return &domain.DeleteResult{Order: deleted, TableNumber: tableNumber}, nil
}

func (s *OrderService) GetOrder(ctx context.Context, orderID int) (*domain.CompositeOrder, error) {
	order, err := s.repository.GetCompositeOrder(ctx, orderID)
	if err != nil {
		return nil, s.storeFailure("get order", err, "order_id", orderID)
	}
	return order, nil
}

func (s *OrderService) ListOrders(ctx context.Context, status domain.Status) ([]domain.CompositeOrder, error) {
	if status != "" && !status.Valid() {
		return nil, domain.NewValidationError("status", fmt.Sprintf("unknown status %q", status))
	}
	orders, err := s.repository.ListCompositeOrders(ctx, status)
	if err != nil {
		return nil, s.storeFailure("list orders", err, "status", status)
	}
	return orders, nil
}

func (s *OrderService) ListTableOrders(ctx context.Context, tableID int) ([]domain.CompositeOrder, error) {
	if tableID <= 0 {
		return nil, domain.NewValidationError("table_id", "must be a positive integer")
	}
	if _, err := s.repository.GetTableNumber(ctx, tableID); err != nil {
		return nil, s.storeFailure("get table", err, "table_id", tableID)
	}
	orders, err := s.repository.ListTableOrders(ctx, tableID)
	if err != nil {
		return nil, s.storeFailure("list table orders", err, "table_id", tableID)
	}
	return orders, nil
}

// ActiveOrder lets a returning customer pick up the order still open for them.
func (s *OrderService) ActiveOrder(ctx context.Context, tableID int, customerName string) (*domain.CompositeOrder, error) {
	customerName = strings.TrimSpace(customerName)
	if customerName == "" {
		return nil, domain.NewValidationError("customer_name", "is required")
	}
	active, err := s.repository.FindActiveOrder(ctx, tableID, customerName)
	if err != nil {
		return nil, s.storeFailure("find active order", err, "table_id", tableID)
	}
	if active == nil {
		return nil, domain.NewNotFoundError("active_order", tableID)
	}
	return s.GetOrder(ctx, active.ID)
}

func (s *OrderService) TableQRCode(ctx context.Context, tableID int) ([]byte, error) {
	table, err := s.repository.GetActiveTable(ctx, tableID)
	if err != nil {
		return nil, s.storeFailure("get table", err, "table_id", tableID)
	}
	png, err := s.qr.Generate(table.TableNumber)
	if err != nil {
		return nil, fmt.Errorf("generate qr code: %w", err)
	}
	return png, nil
}

// storeFailure logs persistence failures with their identifiers. Domain
// errors are returned as they are.
func (s *OrderService) storeFailure(op string, err error, attrs ...any) error {
	err = domain.WrapStore(op, err)
	var storeErr *domain.StoreError
	if errors.As(err, &storeErr) || errors.Is(err, domain.ErrExhaustedRetries) {
		s.log.Error(op+" failed", append(attrs, "error", err)...)
	}
	return err
}

func validatePlaceOrder(req domain.PlaceOrderRequest) error {
	if req.TableID <= 0 {
		return domain.NewValidationError("table_id", "is required")
	}
	if req.CustomerName == "" {
		return domain.NewValidationError("customer_name", "is required")
	}
	if utf8.RuneCountInString(req.CustomerName) > maxCustomerNameLength {
		return domain.NewValidationError("customer_name", fmt.Sprintf("must be at most %d characters", maxCustomerNameLength))
	}
	if len(req.Items) == 0 {
		return domain.NewValidationError("items", "at least one item is required")
	}
	for i, item := range req.Items {
		if item.MenuItemID <= 0 {
			return domain.NewValidationError(fmt.Sprintf("items[%d].menu_item_id", i), "is required")
		}
		if item.Quantity <= 0 || item.Quantity > maxItemQuantity {
			return domain.NewValidationError(fmt.Sprintf("items[%d].quantity", i), fmt.Sprintf("must be between 1 and %d", maxItemQuantity))
		}
	}
	return nil
}

func menuItemIDs(items []domain.ItemRequest) []int {
	seen := make(map[int]bool, len(items))
	ids := make([]int, 0, len(items))
	for _, item := range items {
		if !seen[item.MenuItemID] {
			seen[item.MenuItemID] = true
			ids = append(ids, item.MenuItemID)
		}
	}
	return ids
}

func quoteTotal(items []domain.ItemRequest, prices map[int]decimal.Decimal) decimal.Decimal {
	total := decimal.Zero
	for _, item := range items {
		total = total.Add(domain.LineTotal(prices[item.MenuItemID], item.Quantity))
	}
	return total
}

type nopNotifier struct{}

func (nopNotifier) NewOrder(context.Context, domain.CompositeOrder) {}
func (nopNotifier) OrderStatusUpdate(context.Context, int, domain.Status, int, *int) {}
func (nopNotifier) NewItemsAdded(context.Context, int, []domain.OrderItem, int) {}
func (nopNotifier) OrderCompleted(context.Context, int) {}
func (nopNotifier) OrderCancelled(context.Context, int, string) {}
func (nopNotifier) OrderDeleted(context.Context, int, int) {}
