package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type Table struct {
	ID          int  `json:"id"`
	TableNumber int  `json:"table_number"`
	IsActive    bool `json:"is_active"`
}

type MenuItem struct {
	ID          int             `json:"id"`
	Name        string          `json:"name"`
	Price       decimal.Decimal `json:"price"`
	IsAvailable bool            `json:"is_available"`
}

type Order struct {
	ID                  int             `json:"id"`
	OrderNumber         string          `json:"order_number"`
	TableID             int             `json:"table_id"`
	CustomerName        string          `json:"customer_name"`
	Status              Status          `json:"status"`
	TotalAmount         decimal.Decimal `json:"total_amount"`
	SpecialInstructions string          `json:"special_instructions,omitempty"`
	CreatedAt           time.Time       `json:"created_at"`
	UpdatedAt           time.Time       `json:"updated_at"`
}

type OrderItem struct {
	ID              int             `json:"id"`
	OrderID         int             `json:"order_id"`
	MenuItemID      int             `json:"menu_item_id"`
	MenuItemName    string          `json:"menu_item_name,omitempty"`
	Quantity        int             `json:"quantity"`
	UnitPrice       decimal.Decimal `json:"unit_price"`
	TotalPrice      decimal.Decimal `json:"total_price"`
	SpecialRequests string          `json:"special_requests,omitempty"`
	CreatedAt       time.Time       `json:"created_at"`
}

// CompositeOrder is the order row joined with its items and the owning
// table's number, as returned to API callers and carried by new-order events.
type CompositeOrder struct {
	Order
	TableNumber int         `json:"table_number"`
	Items       []OrderItem `json:"items"`
}

type ItemRequest struct {
	MenuItemID      int    `json:"menu_item_id"`
	Quantity        int    `json:"quantity"`
	SpecialRequests string `json:"special_requests,omitempty"`
}

type PlaceOrderRequest struct {
	TableID             int           `json:"table_id"`
	CustomerName        string        `json:"customer_name"`
	Items               []ItemRequest `json:"items"`
	SpecialInstructions string        `json:"special_instructions,omitempty"`
}

type MergeInfo struct {
	ItemsAdded    int             `json:"items_added"`
	PreviousTotal decimal.Decimal `json:"previous_total"`
	NewTotal      decimal.Decimal `json:"new_total"`
}

type PlaceOrderResult struct {
	Order     *CompositeOrder
	Merged    bool
	NewItems  []OrderItem
	MergeInfo *MergeInfo
}

type StatusUpdate struct {
	Status        Status `json:"status"`
	Reason        string `json:"reason,omitempty"`
	EstimatedTime *int   `json:"estimated_time,omitempty"`
}

type DeleteResult struct {
	Order       *Order
	TableNumber int
}

// LineTotal is unit price times quantity.
func LineTotal(unitPrice decimal.Decimal, quantity int) decimal.Decimal {
	return unitPrice.Mul(decimal.NewFromInt(int64(quantity)))
}

// SumItems adds the total_price of every item.
func SumItems(items []OrderItem) decimal.Decimal {
	total := decimal.Zero
	for _, item := range items {
		total = total.Add(item.TotalPrice)
	}
	return total
}
