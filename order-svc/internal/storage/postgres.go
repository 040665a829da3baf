package storage

import (
	"context"
	"database/sql"
	"errors"

	"overcooked-tableside/order-svc/internal/domain"
	"overcooked-tableside/order-svc/internal/service"

	"github.com/lib/pq"
	"github.com/shopspring/decimal"
)

const uniqueViolation = "23505"

const orderColumns = `id, order_number, table_id, customer_name, status, total_amount,
	COALESCE(special_instructions, ''), created_at, updated_at`

const compositeOrderQuery = `
	SELECT o.id, o.order_number, o.table_id, o.customer_name, o.status, o.total_amount,
		COALESCE(o.special_instructions, ''), o.created_at, o.updated_at, t.table_number
	FROM orders o
	JOIN restaurant_tables t ON t.id = o.table_id`

const orderItemQuery = `
	SELECT oi.id, oi.order_id, oi.menu_item_id, COALESCE(m.name, ''), oi.quantity,
		oi.unit_price, oi.total_price, COALESCE(oi.special_requests, ''), oi.created_at
	FROM order_items oi
	LEFT JOIN menu_items m ON m.id = oi.menu_item_id`

// queryer is satisfied by both *sql.DB and *sql.Tx.
type queryer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

type pgStore struct {
	q queryer
	// lock is set inside transactions so the active-order lookup takes row
	// and advisory locks.
	lock bool
}

type PostgresRepository struct {
	pgStore
	DB *sql.DB
}

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{DB: db, pgStore: pgStore{q: db}}
}

func (r *PostgresRepository) WithinTx(ctx context.Context, fn func(store service.OrderStore) error) error {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if err := fn(&pgStore{q: tx, lock: true}); err != nil {
		return err
	}
	return tx.Commit()
}

func (s *pgStore) OrderNumberExists(ctx context.Context, orderNumber string) (bool, error) {
	var exists bool
	err := s.q.QueryRowContext(ctx,
		"SELECT EXISTS(SELECT 1 FROM orders WHERE order_number = $1)", orderNumber).Scan(&exists)
	return exists, err
}

func (s *pgStore) FindActiveOrder(ctx context.Context, tableID int, customerName string) (*domain.Order, error) {
	query := `SELECT ` + orderColumns + `
		FROM orders
		WHERE table_id = $1 AND customer_name = $2 AND status NOT IN ('completed', 'cancelled')
		ORDER BY created_at DESC, id DESC
		LIMIT 1`

	if s.lock {
		// Serializes creates for the same guest, which have no row to lock yet.
		if _, err := s.q.ExecContext(ctx, "SELECT pg_advisory_xact_lock($1, hashtext($2))", tableID, customerName); err != nil {
			return nil, err
		}
		query += " FOR UPDATE"
	}

	order, err := scanOrder(s.q.QueryRowContext(ctx, query, tableID, customerName))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return order, nil
}

func (s *pgStore) InsertOrder(ctx context.Context, order *domain.Order) error {
	err := s.q.QueryRowContext(ctx, `
		INSERT INTO orders (order_number, table_id, customer_name, status, total_amount, special_instructions)
		VALUES ($1, $2, $3, $4, $5, NULLIF($6, ''))
		RETURNING id, created_at, updated_at`,
		order.OrderNumber, order.TableID, order.CustomerName, order.Status, order.TotalAmount, order.SpecialInstructions,
	).Scan(&order.ID, &order.CreatedAt, &order.UpdatedAt)

	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
		return domain.ErrDuplicateOrderNumber
	}
	return err
}

func (s *pgStore) InsertOrderItem(ctx context.Context, item *domain.OrderItem) error {
	return s.q.QueryRowContext(ctx, `
		INSERT INTO order_items (order_id, menu_item_id, quantity, unit_price, total_price, special_requests)
		VALUES ($1, $2, $3, $4, $5, NULLIF($6, ''))
		RETURNING id, created_at`,
		item.OrderID, item.MenuItemID, item.Quantity, item.UnitPrice, item.TotalPrice, item.SpecialRequests,
	).Scan(&item.ID, &item.CreatedAt)
}

func (s *pgStore) RecomputeTotal(ctx context.Context, orderID int) (decimal.Decimal, error) {
	var total decimal.Decimal
	err := s.q.QueryRowContext(ctx, `
		UPDATE orders
		SET total_amount = (SELECT COALESCE(SUM(total_price), 0) FROM order_items WHERE order_id = $1),
			updated_at = NOW()
		WHERE id = $1
		RETURNING total_amount`, orderID).Scan(&total)
	if errors.Is(err, sql.ErrNoRows) {
		return decimal.Zero, domain.NewNotFoundError("order", orderID)
	}
	return total, err
}

func (s *pgStore) GetOrder(ctx context.Context, orderID int) (*domain.Order, error) {
	order, err := scanOrder(s.q.QueryRowContext(ctx, `SELECT `+orderColumns+` FROM orders WHERE id = $1`, orderID))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.NewNotFoundError("order", orderID)
	}
	return order, err
}

func (s *pgStore) UpdateStatus(ctx context.Context, orderID int, from, to domain.Status) (*domain.Order, error) {
	order, err := scanOrder(s.q.QueryRowContext(ctx, `
		UPDATE orders SET status = $3, updated_at = NOW()
		WHERE id = $1 AND status = $2
		RETURNING `+orderColumns, orderID, from, to))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.NewNotFoundError("order", orderID)
	}
	return order, err
}

func (s *pgStore) DeleteOrderItems(ctx context.Context, orderID int) (int64, error) {
	result, err := s.q.ExecContext(ctx, "DELETE FROM order_items WHERE order_id = $1", orderID)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

func (s *pgStore) DeleteOrder(ctx context.Context, orderID int) (int64, error) {
	result, err := s.q.ExecContext(ctx, "DELETE FROM orders WHERE id = $1", orderID)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

func (r *PostgresRepository) GetActiveTable(ctx context.Context, tableID int) (*domain.Table, error) {
	var table domain.Table
	err := r.DB.QueryRowContext(ctx,
		"SELECT id, table_number, is_active FROM restaurant_tables WHERE id = $1", tableID).
		Scan(&table.ID, &table.TableNumber, &table.IsActive)
	if errors.Is(err, sql.ErrNoRows) || (err == nil && !table.IsActive) {
		return nil, domain.NewNotFoundError("table", tableID)
	}
	if err != nil {
		return nil, err
	}
	return &table, nil
}

func (r *PostgresRepository) GetTableNumber(ctx context.Context, tableID int) (int, error) {
	var number int
	err := r.DB.QueryRowContext(ctx, "SELECT table_number FROM restaurant_tables WHERE id = $1", tableID).Scan(&number)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, domain.NewNotFoundError("table", tableID)
	}
	return number, err
}

func (r *PostgresRepository) MenuItemPrices(ctx context.Context, ids []int) (map[int]decimal.Decimal, error) {
	rows, err := r.DB.QueryContext(ctx,
		"SELECT id, price FROM menu_items WHERE id = ANY($1) AND is_available = TRUE", pq.Array(toInt64(ids)))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	prices := make(map[int]decimal.Decimal, len(ids))
	for rows.Next() {
		var (
			id    int
			price decimal.Decimal
		)
		if err := rows.Scan(&id, &price); err != nil {
			return nil, err
		}
		prices[id] = price
	}
	return prices, rows.Err()
}

func (r *PostgresRepository) GetCompositeOrder(ctx context.Context, orderID int) (*domain.CompositeOrder, error) {
	orders, err := r.listComposite(ctx, compositeOrderQuery+" WHERE o.id = $1", orderID)
	if err != nil {
		return nil, err
	}
	if len(orders) == 0 {
		return nil, domain.NewNotFoundError("order", orderID)
	}
	return &orders[0], nil
}

func (r *PostgresRepository) ListCompositeOrders(ctx context.Context, status domain.Status) ([]domain.CompositeOrder, error) {
	return r.listComposite(ctx,
		compositeOrderQuery+" WHERE ($1 = '' OR o.status = $1) ORDER BY o.created_at DESC, o.id DESC", string(status))
}

func (r *PostgresRepository) ListTableOrders(ctx context.Context, tableID int) ([]domain.CompositeOrder, error) {
	return r.listComposite(ctx,
		compositeOrderQuery+" WHERE o.table_id = $1 ORDER BY o.created_at DESC, o.id DESC", tableID)
}

func (r *PostgresRepository) GetOrderItems(ctx context.Context, itemIDs []int) ([]domain.OrderItem, error) {
	return r.queryItems(ctx, orderItemQuery+" WHERE oi.id = ANY($1) ORDER BY oi.id", pq.Array(toInt64(itemIDs)))
}

// listComposite loads the order rows, then all of their items in one query.
func (r *PostgresRepository) listComposite(ctx context.Context, query string, args ...any) ([]domain.CompositeOrder, error) {
	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var (
		orders []domain.CompositeOrder
		ids    []int
	)
	for rows.Next() {
		var o domain.CompositeOrder
		if err := rows.Scan(&o.ID, &o.OrderNumber, &o.TableID, &o.CustomerName, &o.Status, &o.TotalAmount,
			&o.SpecialInstructions, &o.CreatedAt, &o.UpdatedAt, &o.TableNumber); err != nil {
			return nil, err
		}
		o.Items = []domain.OrderItem{}
		orders = append(orders, o)
		ids = append(ids, o.ID)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(orders) == 0 {
		return []domain.CompositeOrder{}, nil
	}

	items, err := r.queryItems(ctx, orderItemQuery+" WHERE oi.order_id = ANY($1) ORDER BY oi.id", pq.Array(toInt64(ids)))
	if err != nil {
		return nil, err
	}

	index := make(map[int]int, len(orders))
	for i, o := range orders {
		index[o.ID] = i
	}
	for _, item := range items {
		if i, ok := index[item.OrderID]; ok {
			orders[i].Items = append(orders[i].Items, item)
		}
	}
	return orders, nil
}

func (r *PostgresRepository) queryItems(ctx context.Context, query string, args ...any) ([]domain.OrderItem, error) {
	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []domain.OrderItem
	for rows.Next() {
		var item domain.OrderItem
		if err := rows.Scan(&item.ID, &item.OrderID, &item.MenuItemID, &item.MenuItemName, &item.Quantity,
			&item.UnitPrice, &item.TotalPrice, &item.SpecialRequests, &item.CreatedAt); err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

func scanOrder(row *sql.Row) (*domain.Order, error) {
	var o domain.Order
	if err := row.Scan(&o.ID, &o.OrderNumber, &o.TableID, &o.CustomerName, &o.Status, &o.TotalAmount,
		&o.SpecialInstructions, &o.CreatedAt, &o.UpdatedAt); err != nil {
		return nil, err
	}
	return &o, nil
}

func toInt64(ids []int) []int64 {
	out := make([]int64, len(ids))
	for i, id := range ids {
		out[i] = int64(id)
	}
	return out
}

var (
	_ service.OrderRepository = (*PostgresRepository)(nil)
	_ service.OrderStore      = (*pgStore)(nil)
)
