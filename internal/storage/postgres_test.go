package storage

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"restaurant-ops/internal/domain"
	"restaurant-ops/internal/service"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// helper to install a sqlmock-backed repository.
func setupTestRepo(t *testing.T) (*PostgresRepository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create sqlmock: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return NewPostgresRepository(db), mock
}

var orderColumns = []string{
	"id", "restaurant_id", "table_id", "customer_id", "status", "created_at", "total",
	"payment_id", "amount", "provider", "currency", "paid_at",
}

func TestCreateOrder_InsertsOrderAndItemsInTransaction(t *testing.T) {
	repo, mock := setupTestRepo(t)
	createdAt := time.Date(2025, 3, 14, 12, 30, 0, 0, time.UTC)
	order := &domain.CustomerOrder{
		RestaurantID: 1, TableID: 2, CustomerID: 3,
		Status: domain.OrderPending, CreatedAt: createdAt, Total: decimal.RequireFromString("19.00"),
		Items: []domain.OrderItem{{MenuItemID: 4, Quantity: 2, Price: decimal.RequireFromString("9.50")}},
	}

	mock.ExpectBegin()
	mock.ExpectQuery("INSERT INTO orders").
		WithArgs(int64(1), int64(2), int64(3), "PENDING", createdAt, order.Total).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(10))
	mock.ExpectQuery("INSERT INTO order_items").
		WithArgs(int64(10), int64(4), 2, order.Items[0].Price).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(100))
	mock.ExpectCommit()

	err := repo.CreateOrder(context.Background(), order)

	require.NoError(t, err)
	assert.Equal(t, int64(10), order.ID)
	assert.Equal(t, int64(100), order.Items[0].ID)
	assert.Equal(t, int64(10), order.Items[0].OrderID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateOrder_ItemFailureRollsBack(t *testing.T) {
	repo, mock := setupTestRepo(t)
	order := &domain.CustomerOrder{
		RestaurantID: 1, TableID: 2, CustomerID: 3, Status: domain.OrderPending,
		Items: []domain.OrderItem{{MenuItemID: 4, Quantity: 1}},
	}

	mock.ExpectBegin()
	mock.ExpectQuery("INSERT INTO orders").WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(10))
	mock.ExpectQuery("INSERT INTO order_items").WillReturnError(&pq.Error{Code: "23503", Detail: "menu item missing"})
	mock.ExpectRollback()

	err := repo.CreateOrder(context.Background(), order)

	assert.ErrorIs(t, err, domain.ErrConflict)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAtomically_JoinsOuterTransaction(t *testing.T) {
	repo, mock := setupTestRepo(t)

	mock.ExpectBegin()
	mock.ExpectQuery("INSERT INTO orders").WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(1))
	mock.ExpectExec("UPDATE orders SET status").
		WithArgs("CONFIRMED", int64(1)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err := repo.Atomically(context.Background(), false, func(tx service.Repository) error {
		order := &domain.CustomerOrder{Status: domain.OrderPending}
		if err := tx.CreateOrder(context.Background(), order); err != nil {
			return err
		}
		return tx.UpdateOrderStatus(context.Background(), order.ID, domain.OrderConfirmed)
	})

	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAtomically_RollsBackOnError(t *testing.T) {
	repo, mock := setupTestRepo(t)

	mock.ExpectBegin()
	mock.ExpectQuery("FROM restaurants WHERE id").WithArgs(int64(7)).WillReturnError(sql.ErrNoRows)
	mock.ExpectRollback()

	err := repo.Atomically(context.Background(), true, func(tx service.Repository) error {
		_, err := tx.GetRestaurant(context.Background(), 7)
		return err
	})

	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetOrder_WithItemsAndPayment(t *testing.T) {
	repo, mock := setupTestRepo(t)
	createdAt := time.Date(2025, 3, 14, 12, 30, 0, 0, time.UTC)
	paidAt := createdAt.Add(time.Hour)

	mock.ExpectQuery("FROM orders o").WithArgs(int64(10)).WillReturnRows(
		sqlmock.NewRows(orderColumns).
			AddRow(10, 1, 2, 3, "SERVED", createdAt, "19.00", 5, "19.00", "stripe", "USD", paidAt))
	mock.ExpectQuery("FROM order_items oi").WillReturnRows(
		sqlmock.NewRows([]string{"id", "order_id", "menu_item_id", "name", "quantity", "price"}).
			AddRow(100, 10, 4, "Burger", 2, "9.50"))

	order, err := repo.GetOrder(context.Background(), 10)

	require.NoError(t, err)
	assert.True(t, decimal.RequireFromString("19").Equal(order.Total))
	require.Len(t, order.Items, 1)
	assert.Equal(t, "Burger", order.Items[0].Name)
	require.NotNil(t, order.Payment)
	assert.Equal(t, int64(5), order.Payment.ID)
	assert.Equal(t, "USD", order.Payment.Currency)
	assert.Equal(t, paidAt, order.Payment.PaidAt)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetOrder_NotFound(t *testing.T) {
	repo, mock := setupTestRepo(t)
	mock.ExpectQuery("FROM orders o").WithArgs(int64(99)).WillReturnRows(sqlmock.NewRows(orderColumns))

	_, err := repo.GetOrder(context.Background(), 99)

	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestListOrdersBetween(t *testing.T) {
	repo, mock := setupTestRepo(t)
	start := time.Date(2025, 3, 14, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 0, 1)

	mock.ExpectQuery("o.created_at >= \\$2 AND o.created_at < \\$3").WithArgs(int64(1), start, end).WillReturnRows(
		sqlmock.NewRows(orderColumns).
			AddRow(10, 1, 2, 3, "PENDING", start, "0", nil, nil, nil, nil, nil).
			AddRow(11, 1, 2, 3, "READY", start.Add(time.Hour), "9.50", nil, nil, nil, nil, nil))
	mock.ExpectQuery("FROM order_items oi").WillReturnRows(
		sqlmock.NewRows([]string{"id", "order_id", "menu_item_id", "name", "quantity", "price"}).
			AddRow(100, 11, 4, "Burger", 1, "9.50"))

	orders, err := repo.ListOrdersBetween(context.Background(), 1, start, end)

	require.NoError(t, err)
	require.Len(t, orders, 2)
	assert.Empty(t, orders[0].Items)
	assert.Nil(t, orders[0].Payment)
	assert.Len(t, orders[1].Items, 1)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSavePayment_Upsert(t *testing.T) {
	repo, mock := setupTestRepo(t)
	payment := &domain.Payment{OrderID: 10, Amount: decimal.RequireFromString("19.00"), Provider: "stripe", Currency: "USD", PaidAt: time.Now()}

	mock.ExpectQuery("ON CONFLICT \\(order_id\\) DO UPDATE").
		WithArgs(int64(10), payment.Amount, "stripe", "USD", payment.PaidAt).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(5))

	require.NoError(t, repo.SavePayment(context.Background(), payment))
	assert.Equal(t, int64(5), payment.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateOrderStatus_NoRows(t *testing.T) {
	repo, mock := setupTestRepo(t)
	mock.ExpectExec("UPDATE orders SET status").WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.UpdateOrderStatus(context.Background(), 99, domain.OrderReady)

	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestGetMenuItems(t *testing.T) {
	repo, mock := setupTestRepo(t)

	mock.ExpectQuery("WHERE mi.id = ANY\\(\\$1\\)").
		WithArgs(pq.Array([]int64{1, 2})).
		WillReturnRows(sqlmock.NewRows([]string{"id", "category_id", "restaurant_id", "name", "description", "price"}).
			AddRow(1, 3, 7, "Burger", "", "9.50"))

	items, err := repo.GetMenuItems(context.Background(), []int64{1, 2})

	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, int64(7), items[1].RestaurantID)
	assert.NoError(t, mock.ExpectationsWereMet())

	empty, err := repo.GetMenuItems(context.Background(), nil)
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func TestCreateRestaurant(t *testing.T) {
	repo, mock := setupTestRepo(t)
	rest := &domain.Restaurant{Name: "Diner", OpeningTime: "08:00"}

	mock.ExpectQuery("INSERT INTO restaurants").
		WithArgs("Diner", "", "", "", "08:00", "").
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(1))

	require.NoError(t, repo.CreateRestaurant(context.Background(), rest))
	assert.Equal(t, int64(1), rest.ID)
}

func TestDeleteRestaurant_ForeignKeyConflict(t *testing.T) {
	repo, mock := setupTestRepo(t)
	mock.ExpectExec("DELETE FROM restaurants").
		WithArgs(int64(1)).
		WillReturnError(&pq.Error{Code: "23503", Detail: "orders reference restaurant"})

	_, err := repo.DeleteRestaurant(context.Background(), 1)

	assert.ErrorIs(t, err, domain.ErrConflict)
}

func TestCreateUser_DuplicateEmail(t *testing.T) {
	repo, mock := setupTestRepo(t)
	mock.ExpectQuery("INSERT INTO users").WillReturnError(&pq.Error{Code: "23505", Detail: "email exists"})

	err := repo.CreateUser(context.Background(), &domain.UserAccount{Email: "a@b.c", Role: domain.RoleCustomer})

	assert.ErrorIs(t, err, domain.ErrConflict)
}

func TestListReservationsBetween(t *testing.T) {
	repo, mock := setupTestRepo(t)
	at := time.Date(2025, 3, 20, 19, 0, 0, 0, time.UTC)

	mock.ExpectQuery("reservation_time >= \\$2 AND reservation_time < \\$3").
		WithArgs(int64(1), at.Add(-time.Hour), at.Add(time.Hour)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "restaurant_id", "table_id", "customer_id", "reservation_time", "party_size", "status", "notes", "created_at"}).
			AddRow(1, 1, 2, 3, at, 4, "REQUESTED", "", at.AddDate(0, 0, -6)))

	reservations, err := repo.ListReservationsBetween(context.Background(), 1, at.Add(-time.Hour), at.Add(time.Hour))

	require.NoError(t, err)
	require.Len(t, reservations, 1)
	assert.Equal(t, domain.ReservationRequested, reservations[0].Status)
	assert.Equal(t, 4, reservations[0].PartySize)
	assert.Equal(t, at.AddDate(0, 0, -6), reservations[0].CreatedAt)
}

func TestMarkNotificationDelivered(t *testing.T) {
	repo, mock := setupTestRepo(t)
	mock.ExpectExec("UPDATE notifications SET delivered = TRUE").
		WithArgs(int64(3)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	n, err := repo.MarkNotificationDelivered(context.Background(), 3)

	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
}

func TestEnsureSchema(t *testing.T) {
	repo, mock := setupTestRepo(t)
	for range schemaStatements {
		mock.ExpectExec(".+").WillReturnResult(sqlmock.NewResult(0, 0))
	}

	require.NoError(t, repo.EnsureSchema(context.Background()))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestEnsureSchema_Failure(t *testing.T) {
	repo, mock := setupTestRepo(t)
	mock.ExpectExec(".+").WillReturnError(errors.New("permission denied"))

	err := repo.EnsureSchema(context.Background())

	assert.ErrorContains(t, err, "permission denied")
}

func TestCountActivityBetween(t *testing.T) {
	repo, mock := setupTestRepo(t)
	start := time.Date(2025, 3, 14, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 0, 1)

	mock.ExpectQuery("p.paid_at >= \\$2 AND p.paid_at < \\$3").
		WithArgs(int64(1), start, end).
		WillReturnRows(sqlmock.NewRows([]string{"orders", "payments", "reservations"}).AddRow(3, 2, 1))

	counters, err := repo.CountActivityBetween(context.Background(), 1, start, end)

	require.NoError(t, err)
	assert.Equal(t, map[string]int64{
		domain.EventOrderCreated:       3,
		domain.EventPaymentRecorded:    2,
		domain.EventReservationCreated: 1,
	}, counters)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestOrderService_FindForRestaurantSendsHalfOpenDay(t *testing.T) {
	repo, mock := setupTestRepo(t)
	day := time.Date(2025, 3, 14, 15, 0, 0, 0, time.UTC)
	start := time.Date(2025, 3, 14, 0, 0, 0, 0, time.UTC)
	nextMidnight := time.Date(2025, 3, 15, 0, 0, 0, 0, time.UTC)

	mock.ExpectBegin()
	mock.ExpectQuery("FROM restaurants WHERE id").WithArgs(int64(1)).WillReturnRows(
		sqlmock.NewRows([]string{"id", "name", "description", "address", "phone", "opening_time", "closing_time"}).
			AddRow(1, "Diner", "", "", "", "", ""))
	mock.ExpectQuery("o.created_at >= \\$2 AND o.created_at < \\$3").
		WithArgs(int64(1), start, nextMidnight).
		WillReturnRows(sqlmock.NewRows(orderColumns))
	mock.ExpectCommit()

	orders, err := service.NewOrderService(repo, service.SystemClock{}).FindForRestaurant(context.Background(), 1, day)

	require.NoError(t, err)
	assert.Empty(t, orders)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestReservationService_FindForRestaurantOnDateSendsHalfOpenDay(t *testing.T) {
	repo, mock := setupTestRepo(t)
	day := time.Date(2025, 3, 20, 0, 0, 0, 0, time.UTC)

	mock.ExpectBegin()
	mock.ExpectQuery("FROM restaurants WHERE id").WithArgs(int64(1)).WillReturnRows(
		sqlmock.NewRows([]string{"id", "name", "description", "address", "phone", "opening_time", "closing_time"}).
			AddRow(1, "Diner", "", "", "", "", ""))
	mock.ExpectQuery("reservation_time >= \\$2 AND reservation_time < \\$3").
		WithArgs(int64(1), day, day.AddDate(0, 0, 1)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "restaurant_id", "table_id", "customer_id", "reservation_time", "party_size", "status", "notes", "created_at"}))
	mock.ExpectCommit()

	reservations, err := service.NewReservationService(repo, service.SystemClock{}, nil).
		FindForRestaurantOnDate(context.Background(), 1, day)

	require.NoError(t, err)
	assert.Empty(t, reservations)
	assert.NoError(t, mock.ExpectationsWereMet())
}
