package storage

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"overcooked-tableside/logger"
	"overcooked-tableside/order-svc/internal/domain"
	"overcooked-tableside/order-svc/internal/service"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var orderRowColumns = []string{"id", "order_number", "table_id", "customer_name", "status", "total_amount",
	"special_instructions", "created_at", "updated_at"}

func newMockRepository(t *testing.T) (*PostgresRepository, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() {
		assert.NoError(t, mock.ExpectationsWereMet())
		db.Close()
	})
	return NewPostgresRepository(db), mock
}

func TestPostgresRepository_OrderNumberExists(t *testing.T) {
	repo, mock := newMockRepository(t)

	mock.ExpectQuery("SELECT EXISTS").
		WithArgs("ORD12345678001").
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))

	exists, err := repo.OrderNumberExists(context.Background(), "ORD12345678001")
	assert.NoError(t, err)
	assert.True(t, exists)
}

func TestPostgresRepository_FindActiveOrderNone(t *testing.T) {
	repo, mock := newMockRepository(t)

	mock.ExpectQuery("FROM orders").
		WithArgs(4, "Asha").
		WillReturnRows(sqlmock.NewRows(orderRowColumns))

	order, err := repo.FindActiveOrder(context.Background(), 4, "Asha")
	assert.NoError(t, err)
	assert.Nil(t, order)
}

func TestPostgresRepository_WithinTxLocksActiveOrder(t *testing.T) {
	repo, mock := newMockRepository(t)
	now := time.Now()

	mock.ExpectBegin()
	mock.ExpectExec("pg_advisory_xact_lock").
		WithArgs(4, "Asha").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery("FOR UPDATE").
		WithArgs(4, "Asha").
		WillReturnRows(sqlmock.NewRows(orderRowColumns).
			AddRow(7, "ORD12345678001", 4, "Asha", "pending", "20.00", "", now, now))
	mock.ExpectCommit()

	var found *domain.Order
	err := repo.WithinTx(context.Background(), func(store service.OrderStore) error {
		var err error
		found, err = store.FindActiveOrder(context.Background(), 4, "Asha")
		return err
	})

	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, 7, found.ID)
	assert.Equal(t, domain.StatusPending, found.Status)
	assert.True(t, decimal.RequireFromString("20").Equal(found.TotalAmount))
}

func TestPostgresRepository_WithinTxRollsBackOnDuplicateNumber(t *testing.T) {
	repo, mock := newMockRepository(t)

	mock.ExpectBegin()
	mock.ExpectQuery("INSERT INTO orders").
		WillReturnError(&pq.Error{Code: "23505", Constraint: "orders_order_number_key"})
	mock.ExpectRollback()

	err := repo.WithinTx(context.Background(), func(store service.OrderStore) error {
		return store.InsertOrder(context.Background(), &domain.Order{
			OrderNumber: "ORD12345678001", TableID: 4, CustomerName: "Asha",
			Status: domain.StatusPending, TotalAmount: decimal.NewFromInt(20),
		})
	})

	assert.ErrorIs(t, err, domain.ErrDuplicateOrderNumber)
}

func TestPostgresRepository_InsertOrderAndItem(t *testing.T) {
	repo, mock := newMockRepository(t)
	now := time.Now()

	mock.ExpectQuery("INSERT INTO orders").
		WithArgs("ORD12345678001", 4, "Asha", domain.StatusPending, sqlmock.AnyArg(), "").
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at", "updated_at"}).AddRow(7, now, now))
	mock.ExpectQuery("INSERT INTO order_items").
		WithArgs(7, 3, 2, sqlmock.AnyArg(), sqlmock.AnyArg(), "no onions").
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at"}).AddRow(11, now))

	order := &domain.Order{
		OrderNumber: "ORD12345678001", TableID: 4, CustomerName: "Asha",
		Status: domain.StatusPending, TotalAmount: decimal.NewFromInt(20),
	}
	require.NoError(t, repo.InsertOrder(context.Background(), order))
	assert.Equal(t, 7, order.ID)

	item := &domain.OrderItem{
		OrderID: 7, MenuItemID: 3, Quantity: 2,
		UnitPrice: decimal.NewFromInt(10), TotalPrice: decimal.NewFromInt(20), SpecialRequests: "no onions",
	}
	require.NoError(t, repo.InsertOrderItem(context.Background(), item))
	assert.Equal(t, 11, item.ID)
}

func TestPostgresRepository_RecomputeTotal(t *testing.T) {
	repo, mock := newMockRepository(t)

	mock.ExpectQuery("UPDATE orders").
		WithArgs(7).
		WillReturnRows(sqlmock.NewRows([]string{"total_amount"}).AddRow("25.00"))

	total, err := repo.RecomputeTotal(context.Background(), 7)
	require.NoError(t, err)
	assert.Equal(t, "25.00", total.StringFixed(2))

	mock.ExpectQuery("UPDATE orders").
		WithArgs(8).
		WillReturnError(sql.ErrNoRows)

	_, err = repo.RecomputeTotal(context.Background(), 8)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestPostgresRepository_UpdateStatus(t *testing.T) {
	repo, mock := newMockRepository(t)
	now := time.Now()

	mock.ExpectQuery("UPDATE orders SET status").
		WithArgs(7, domain.StatusPending, domain.StatusPreparing).
		WillReturnRows(sqlmock.NewRows(orderRowColumns).
			AddRow(7, "ORD12345678001", 4, "Asha", "preparing", "20.00", "", now, now))

	order, err := repo.UpdateStatus(context.Background(), 7, domain.StatusPending, domain.StatusPreparing)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusPreparing, order.Status)

	mock.ExpectQuery("UPDATE orders SET status").
		WithArgs(7, domain.StatusPending, domain.StatusPreparing).
		WillReturnRows(sqlmock.NewRows(orderRowColumns))

	_, err = repo.UpdateStatus(context.Background(), 7, domain.StatusPending, domain.StatusPreparing)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestPostgresRepository_GetActiveTable(t *testing.T) {
	tests := []struct {
		name        string
		rows        *sqlmock.Rows
		expectedErr error
	}{
		{
			name: "active",
			rows: sqlmock.NewRows([]string{"id", "table_number", "is_active"}).AddRow(4, 4, true),
		},
		{
			name:        "inactive",
			rows:        sqlmock.NewRows([]string{"id", "table_number", "is_active"}).AddRow(4, 4, false),
			expectedErr: domain.ErrNotFound,
		},
		{
			name:        "missing",
			rows:        sqlmock.NewRows([]string{"id", "table_number", "is_active"}),
			expectedErr: domain.ErrNotFound,
		},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			repo, mock := newMockRepository(t)
			mock.ExpectQuery("FROM restaurant_tables").WithArgs(4).WillReturnRows(testCase.rows)

			table, err := repo.GetActiveTable(context.Background(), 4)
			if testCase.expectedErr != nil {
				assert.ErrorIs(t, err, testCase.expectedErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, 4, table.TableNumber)
		})
	}
}

func TestPostgresRepository_MenuItemPrices(t *testing.T) {
	repo, mock := newMockRepository(t)

	mock.ExpectQuery("FROM menu_items").
		WithArgs(sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows([]string{"id", "price"}).AddRow(1, "10.00").AddRow(2, "5.00"))

	prices, err := repo.MenuItemPrices(context.Background(), []int{1, 2, 3})
	require.NoError(t, err)
	assert.Len(t, prices, 2)
	assert.Equal(t, "10.00", prices[1].StringFixed(2))
	_, hasMissing := prices[3]
	assert.False(t, hasMissing)
}

func TestPostgresRepository_GetCompositeOrder(t *testing.T) {
	repo, mock := newMockRepository(t)
	now := time.Now()

	mock.ExpectQuery("JOIN restaurant_tables").
		WithArgs(7).
		WillReturnRows(sqlmock.NewRows(append(orderRowColumns, "table_number")).
			AddRow(7, "ORD12345678001", 4, "Asha", "pending", "25.00", "", now, now, 4))
	mock.ExpectQuery("FROM order_items").
		WithArgs(sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows([]string{"id", "order_id", "menu_item_id", "name", "quantity",
			"unit_price", "total_price", "special_requests", "created_at"}).
			AddRow(1, 7, 1, "Soup", 2, "10.00", "20.00", "", now).
			AddRow(2, 7, 2, "Bread", 1, "5.00", "5.00", "", now))

	order, err := repo.GetCompositeOrder(context.Background(), 7)
	require.NoError(t, err)
	assert.Equal(t, 4, order.TableNumber)
	require.Len(t, order.Items, 2)
	assert.Equal(t, "Soup", order.Items[0].MenuItemName)
	assert.True(t, domain.SumItems(order.Items).Equal(order.TotalAmount))
}

func TestPostgresRepository_GetCompositeOrderMissing(t *testing.T) {
	repo, mock := newMockRepository(t)

	mock.ExpectQuery("JOIN restaurant_tables").
		WithArgs(99).
		WillReturnRows(sqlmock.NewRows(append(orderRowColumns, "table_number")))

	_, err := repo.GetCompositeOrder(context.Background(), 99)
	var notFound *domain.NotFoundError
	require.ErrorAs(t, err, &notFound)
	assert.Equal(t, "order", notFound.Entity)
}

func TestPostgresRepository_DeleteCascadeOrder(t *testing.T) {
	repo, mock := newMockRepository(t)

	mock.ExpectBegin()
	mock.ExpectExec("DELETE FROM order_items").WithArgs(7).WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectExec("DELETE FROM orders").WithArgs(7).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err := repo.WithinTx(context.Background(), func(store service.OrderStore) error {
		items, err := store.DeleteOrderItems(context.Background(), 7)
		if err != nil {
			return err
		}
		assert.Equal(t, int64(2), items)
		_, err = store.DeleteOrder(context.Background(), 7)
		return err
	})
	assert.NoError(t, err)
}

func TestPostgresRepository_WithinTxPropagatesCallbackError(t *testing.T) {
	repo, mock := newMockRepository(t)
	boom := errors.New("boom")

	mock.ExpectBegin()
	mock.ExpectRollback()

	err := repo.WithinTx(context.Background(), func(service.OrderStore) error { return boom })
	assert.ErrorIs(t, err, boom)
}

func TestPostgresRepository_Migrate(t *testing.T) {
	repo, mock := newMockRepository(t)

	mock.ExpectExec("CREATE TABLE IF NOT EXISTS schema_migrations").WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery("SELECT migration_name").
		WillReturnRows(sqlmock.NewRows([]string{"migration_name"}).AddRow("001_create_catalog.sql"))
	mock.ExpectBegin()
	mock.ExpectExec("CREATE TABLE IF NOT EXISTS orders").WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec("INSERT INTO schema_migrations").
		WithArgs("002_create_orders.sql").
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	assert.NoError(t, repo.Migrate(context.Background(), logger.Discard()))
}
