package storage

import (
	"context"
	"sort"
	"sync"
	"time"

	"overcooked-tableside/order-svc/internal/domain"
	"overcooked-tableside/order-svc/internal/service"

	"github.com/shopspring/decimal"
)

// MemoryRepository keeps everything in process memory. Units of work hold
// the repository lock for their whole duration, so merges are serialized the
// same way row locks serialize them in Postgres. A failed unit of work is
// undone from a journal of the rows it touched.
type MemoryRepository struct {
	mu   sync.Mutex
	data memoryData
	now  func() time.Time
}

type memoryData struct {
	tables      map[int]domain.Table
	menu        map[int]domain.MenuItem
	orders      map[int]domain.Order
	items       map[int]domain.OrderItem
	nextOrderID int
	nextItemID  int
}

// txJournal holds the value each touched row had before the unit of work
// first changed it. ok is false for rows that did not exist yet.
type txJournal struct {
	orders      map[int]savedOrder
	items       map[int]savedItem
	nextOrderID int
	nextItemID  int
}

type savedOrder struct {
	order domain.Order
	ok    bool
}

type savedItem struct {
	item domain.OrderItem
	ok   bool
}

func newJournal(d *memoryData) *txJournal {
	return &txJournal{
		orders:      map[int]savedOrder{},
		items:       map[int]savedItem{},
		nextOrderID: d.nextOrderID,
		nextItemID:  d.nextItemID,
	}
}

func (j *txJournal) rollback(d *memoryData) {
	for id, saved := range j.orders {
		if saved.ok {
			d.orders[id] = saved.order
		} else {
			delete(d.orders, id)
		}
	}
	for id, saved := range j.items {
		if saved.ok {
			d.items[id] = saved.item
		} else {
			delete(d.items, id)
		}
	}
	d.nextOrderID = j.nextOrderID
	d.nextItemID = j.nextItemID
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{
		data: memoryData{
			tables: map[int]domain.Table{},
			menu:   map[int]domain.MenuItem{},
			orders: map[int]domain.Order{},
			items:  map[int]domain.OrderItem{},
		},
		now: time.Now,
	}
}

func (r *MemoryRepository) AddTable(table domain.Table) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.data.tables[table.ID] = table
}

func (r *MemoryRepository) AddMenuItem(item domain.MenuItem) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.data.menu[item.ID] = item
}

// SeedDemo loads a small floor plan and menu for local runs.
func SeedDemo(r *MemoryRepository) {
	for i := 1; i <= 12; i++ {
		r.AddTable(domain.Table{ID: i, TableNumber: i, IsActive: true})
	}
	menu := []struct {
		name  string
		price string
	}{
		{"Margherita Pizza", "12.50"},
		{"Caesar Salad", "8.00"},
		{"Grilled Salmon", "18.90"},
		{"Tomato Soup", "6.50"},
		{"Tiramisu", "7.00"},
		{"Lemonade", "3.50"},
	}
	for i, m := range menu {
		r.AddMenuItem(domain.MenuItem{ID: i + 1, Name: m.name, Price: decimal.RequireFromString(m.price), IsAvailable: true})
	}
}

func (r *MemoryRepository) view() *memoryView {
	return &memoryView{data: &r.data, now: r.now}
}

func (r *MemoryRepository) WithinTx(ctx context.Context, fn func(store service.OrderStore) error) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return err
	}

	view := r.view()
	view.journal = newJournal(&r.data)
	if err := fn(view); err != nil {
		view.journal.rollback(&r.data)
		return err
	}
	return nil
}

func (r *MemoryRepository) OrderNumberExists(ctx context.Context, orderNumber string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.view().OrderNumberExists(ctx, orderNumber)
}

func (r *MemoryRepository) FindActiveOrder(ctx context.Context, tableID int, customerName string) (*domain.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.view().FindActiveOrder(ctx, tableID, customerName)
}

func (r *MemoryRepository) InsertOrder(ctx context.Context, order *domain.Order) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.view().InsertOrder(ctx, order)
}

func (r *MemoryRepository) InsertOrderItem(ctx context.Context, item *domain.OrderItem) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.view().InsertOrderItem(ctx, item)
}

func (r *MemoryRepository) RecomputeTotal(ctx context.Context, orderID int) (decimal.Decimal, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.view().RecomputeTotal(ctx, orderID)
}

func (r *MemoryRepository) GetOrder(ctx context.Context, orderID int) (*domain.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.view().GetOrder(ctx, orderID)
}

func (r *MemoryRepository) UpdateStatus(ctx context.Context, orderID int, from, to domain.Status) (*domain.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.view().UpdateStatus(ctx, orderID, from, to)
}

func (r *MemoryRepository) DeleteOrderItems(ctx context.Context, orderID int) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.view().DeleteOrderItems(ctx, orderID)
}

func (r *MemoryRepository) DeleteOrder(ctx context.Context, orderID int) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.view().DeleteOrder(ctx, orderID)
}

func (r *MemoryRepository) GetActiveTable(_ context.Context, tableID int) (*domain.Table, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	table, ok := r.data.tables[tableID]
	if !ok || !table.IsActive {
		return nil, domain.NewNotFoundError("table", tableID)
	}
	return &table, nil
}

func (r *MemoryRepository) GetTableNumber(_ context.Context, tableID int) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	table, ok := r.data.tables[tableID]
	if !ok {
		return 0, domain.NewNotFoundError("table", tableID)
	}
	return table.TableNumber, nil
}

func (r *MemoryRepository) MenuItemPrices(_ context.Context, ids []int) (map[int]decimal.Decimal, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	prices := make(map[int]decimal.Decimal, len(ids))
	for _, id := range ids {
		if item, ok := r.data.menu[id]; ok && item.IsAvailable {
			prices[id] = item.Price
		}
	}
	return prices, nil
}

func (r *MemoryRepository) GetCompositeOrder(_ context.Context, orderID int) (*domain.CompositeOrder, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	order, ok := r.data.orders[orderID]
	if !ok {
		return nil, domain.NewNotFoundError("order", orderID)
	}
	composite := r.compose(order)
	return &composite, nil
}

func (r *MemoryRepository) ListCompositeOrders(_ context.Context, status domain.Status) ([]domain.CompositeOrder, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.list(func(o domain.Order) bool { return status == "" || o.Status == status }), nil
}

func (r *MemoryRepository) ListTableOrders(_ context.Context, tableID int) ([]domain.CompositeOrder, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.list(func(o domain.Order) bool { return o.TableID == tableID }), nil
}

func (r *MemoryRepository) GetOrderItems(_ context.Context, itemIDs []int) ([]domain.OrderItem, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var items []domain.OrderItem
	for _, id := range itemIDs {
		if item, ok := r.data.items[id]; ok {
			items = append(items, r.named(item))
		}
	}
	return items, nil
}

func (r *MemoryRepository) list(keep func(domain.Order) bool) []domain.CompositeOrder {
	var orders []domain.Order
	for _, o := range r.data.orders {
		if keep(o) {
			orders = append(orders, o)
		}
	}
	sortNewestFirst(orders)

	out := make([]domain.CompositeOrder, 0, len(orders))
	for _, o := range orders {
		out = append(out, r.compose(o))
	}
	return out
}

func (r *MemoryRepository) compose(order domain.Order) domain.CompositeOrder {
	composite := domain.CompositeOrder{
		Order:       order,
		TableNumber: r.data.tables[order.TableID].TableNumber,
		Items:       []domain.OrderItem{},
	}
	for _, item := range r.data.items {
		if item.OrderID == order.ID {
			composite.Items = append(composite.Items, r.named(item))
		}
	}
	sort.Slice(composite.Items, func(i, j int) bool { return composite.Items[i].ID < composite.Items[j].ID })
	return composite
}

func (r *MemoryRepository) named(item domain.OrderItem) domain.OrderItem {
	item.MenuItemName = r.data.menu[item.MenuItemID].Name
	return item
}

func sortNewestFirst(orders []domain.Order) {
	sort.Slice(orders, func(i, j int) bool {
		if !orders[i].CreatedAt.Equal(orders[j].CreatedAt) {
			return orders[i].CreatedAt.After(orders[j].CreatedAt)
		}
		return orders[i].ID > orders[j].ID
	})
}

// memoryView implements service.OrderStore on data the caller has locked.
// Inside a unit of work every write is journaled first.
type memoryView struct {
	data    *memoryData
	now     func() time.Time
	journal *txJournal
}

func (v *memoryView) touchOrder(id int) {
	if v.journal == nil {
		return
	}
	if _, seen := v.journal.orders[id]; seen {
		return
	}
	order, ok := v.data.orders[id]
	v.journal.orders[id] = savedOrder{order: order, ok: ok}
}

func (v *memoryView) touchItem(id int) {
	if v.journal == nil {
		return
	}
	if _, seen := v.journal.items[id]; seen {
		return
	}
	item, ok := v.data.items[id]
	v.journal.items[id] = savedItem{item: item, ok: ok}
}

func (v *memoryView) OrderNumberExists(_ context.Context, orderNumber string) (bool, error) {
	for _, o := range v.data.orders {
		if o.OrderNumber == orderNumber {
			return true, nil
		}
	}
	return false, nil
}

func (v *memoryView) FindActiveOrder(_ context.Context, tableID int, customerName string) (*domain.Order, error) {
	var candidates []domain.Order
	for _, o := range v.data.orders {
		if o.TableID == tableID && o.CustomerName == customerName && o.Status.Active() {
			candidates = append(candidates, o)
		}
	}
	if len(candidates) == 0 {
		return nil, nil
	}
	sortNewestFirst(candidates)
	return &candidates[0], nil
}

func (v *memoryView) InsertOrder(ctx context.Context, order *domain.Order) error {
	if taken, _ := v.OrderNumberExists(ctx, order.OrderNumber); taken {
		return domain.ErrDuplicateOrderNumber
	}
	v.data.nextOrderID++
	now := v.now()
	order.ID = v.data.nextOrderID
	order.CreatedAt = now
	order.UpdatedAt = now
	v.touchOrder(order.ID)
	v.data.orders[order.ID] = *order
	return nil
}

func (v *memoryView) InsertOrderItem(_ context.Context, item *domain.OrderItem) error {
	if _, ok := v.data.orders[item.OrderID]; !ok {
		return domain.NewNotFoundError("order", item.OrderID)
	}
	v.data.nextItemID++
	item.ID = v.data.nextItemID
	item.CreatedAt = v.now()
	v.touchItem(item.ID)
	v.data.items[item.ID] = *item
	return nil
}

func (v *memoryView) RecomputeTotal(_ context.Context, orderID int) (decimal.Decimal, error) {
	order, ok := v.data.orders[orderID]
	if !ok {
		return decimal.Zero, domain.NewNotFoundError("order", orderID)
	}
	total := decimal.Zero
	for _, item := range v.data.items {
		if item.OrderID == orderID {
			total = total.Add(item.TotalPrice)
		}
	}
	order.TotalAmount = total
	order.UpdatedAt = v.now()
	v.touchOrder(orderID)
	v.data.orders[orderID] = order
	return total, nil
}

func (v *memoryView) GetOrder(_ context.Context, orderID int) (*domain.Order, error) {
	order, ok := v.data.orders[orderID]
	if !ok {
		return nil, domain.NewNotFoundError("order", orderID)
	}
	return &order, nil
}

func (v *memoryView) UpdateStatus(_ context.Context, orderID int, from, to domain.Status) (*domain.Order, error) {
	order, ok := v.data.orders[orderID]
	if !ok || order.Status != from {
		return nil, domain.NewNotFoundError("order", orderID)
	}
	order.Status = to
	order.UpdatedAt = v.now()
	v.touchOrder(orderID)
	v.data.orders[orderID] = order
	return &order, nil
}

func (v *memoryView) DeleteOrderItems(_ context.Context, orderID int) (int64, error) {
	var n int64
	for id, item := range v.data.items {
		if item.OrderID == orderID {
			v.touchItem(id)
			delete(v.data.items, id)
			n++
		}
	}
	return n, nil
}

func (v *memoryView) DeleteOrder(_ context.Context, orderID int) (int64, error) {
	if _, ok := v.data.orders[orderID]; !ok {
		return 0, nil
	}
	v.touchOrder(orderID)
	delete(v.data.orders, orderID)
	return 1, nil
}

var (
	_ service.OrderRepository = (*MemoryRepository)(nil)
	_ service.OrderStore      = (*memoryView)(nil)
)
