package service

import (
	"context"

	"overcooked-tableside/order-svc/internal/domain"

	"github.com/shopspring/decimal"
)

type OrderServiceInterface interface {
	PlaceOrder(ctx context.Context, req domain.PlaceOrderRequest) (*domain.PlaceOrderResult, error)
	UpdateStatus(ctx context.Context, orderID int, update domain.StatusUpdate) (*domain.CompositeOrder, error)
	DeleteOrder(ctx context.Context, orderID int) (*domain.DeleteResult, error)
	GetOrder(ctx context.Context, orderID int) (*domain.CompositeOrder, error)
	ListOrders(ctx context.Context, status domain.Status) ([]domain.CompositeOrder, error)
	ListTableOrders(ctx context.Context, tableID int) ([]domain.CompositeOrder, error)
	ActiveOrder(ctx context.Context, tableID int, customerName string) (*domain.CompositeOrder, error)
	TableQRCode(ctx context.Context, tableID int) ([]byte, error)
}

// OrderStore is the set of order writes and reads that can run either
// directly against the store or inside a unit of work.
type OrderStore interface {
	NumberChecker
	// FindActiveOrder returns the newest non-terminal order for the pair, or
	// nil when there is none. Inside a unit of work the row is locked.
	FindActiveOrder(ctx context.Context, tableID int, customerName string) (*domain.Order, error)
	InsertOrder(ctx context.Context, order *domain.Order) error
	InsertOrderItem(ctx context.Context, item *domain.OrderItem) error
	RecomputeTotal(ctx context.Context, orderID int) (decimal.Decimal, error)
	GetOrder(ctx context.Context, orderID int) (*domain.Order, error)
	// UpdateStatus moves the order only if it is still in status from.
	UpdateStatus(ctx context.Context, orderID int, from, to domain.Status) (*domain.Order, error)
	DeleteOrderItems(ctx context.Context, orderID int) (int64, error)
	DeleteOrder(ctx context.Context, orderID int) (int64, error)
}

type OrderRepository interface {
	OrderStore
	GetActiveTable(ctx context.Context, tableID int) (*domain.Table, error)
	GetTableNumber(ctx context.Context, tableID int) (int, error)
	// MenuItemPrices returns the price of every available item among ids.
	MenuItemPrices(ctx context.Context, ids []int) (map[int]decimal.Decimal, error)
	GetCompositeOrder(ctx context.Context, orderID int) (*domain.CompositeOrder, error)
	ListCompositeOrders(ctx context.Context, status domain.Status) ([]domain.CompositeOrder, error)
	ListTableOrders(ctx context.Context, tableID int) ([]domain.CompositeOrder, error)
	GetOrderItems(ctx context.Context, itemIDs []int) ([]domain.OrderItem, error)
	WithinTx(ctx context.Context, fn func(store OrderStore) error) error
}

type NumberChecker interface {
	OrderNumberExists(ctx context.Context, orderNumber string) (bool, error)
}

type NumberGenerator interface {
	Generate(ctx context.Context, checker NumberChecker) (string, error)
}

// Notifier receives lifecycle events after they are committed. Delivery is
// best effort; implementations never report failures to the caller.
type Notifier interface {
	NewOrder(ctx context.Context, order domain.CompositeOrder)
	OrderStatusUpdate(ctx context.Context, orderID int, status domain.Status, tableNumber int, estimatedTime *int)
	NewItemsAdded(ctx context.Context, orderID int, items []domain.OrderItem, tableNumber int)
	OrderCompleted(ctx context.Context, orderID int)
	OrderCancelled(ctx context.Context, orderID int, reason string)
	OrderDeleted(ctx context.Context, orderID int, tableNumber int)
}

type QRGenerator interface {
	Generate(tableNumber int) ([]byte, error)
}

var (
	_ OrderServiceInterface = (*OrderService)(nil)
	_ NumberGenerator       = (*OrderNumberGenerator)(nil)
	_ QRGenerator           = DefaultQRGenerator{}
)
