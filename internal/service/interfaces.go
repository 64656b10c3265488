package service

import (
	"context"
	"time"

	"restaurant-ops/internal/domain"
)

// Repository finders return domain.ErrNotFound when a row is absent. The
// *Between listings cover the half-open range [start, end).

type CatalogRepository interface {
	CreateRestaurant(ctx context.Context, rest *domain.Restaurant) error
	GetRestaurant(ctx context.Context, id int64) (*domain.Restaurant, error)
	ListRestaurants(ctx context.Context) ([]domain.Restaurant, error)
	UpdateRestaurant(ctx context.Context, rest *domain.Restaurant) error
	DeleteRestaurant(ctx context.Context, id int64) (int64, error)

	CreateTable(ctx context.Context, table *domain.DiningTable) error
	GetTable(ctx context.Context, id int64) (*domain.DiningTable, error)
	ListTables(ctx context.Context, restaurantID int64) ([]domain.DiningTable, error)

	CreateCategory(ctx context.Context, category *domain.MenuCategory) error
	GetCategory(ctx context.Context, id int64) (*domain.MenuCategory, error)
	ListCategories(ctx context.Context, restaurantID int64) ([]domain.MenuCategory, error)

	CreateMenuItem(ctx context.Context, item *domain.MenuItem) error
	GetMenuItem(ctx context.Context, id int64) (*domain.MenuItem, error)
	GetMenuItems(ctx context.Context, ids []int64) (map[int64]domain.MenuItem, error)
	ListMenuItems(ctx context.Context, categoryID int64) ([]domain.MenuItem, error)
	UpdateMenuItem(ctx context.Context, item *domain.MenuItem) error
}

type UserRepository interface {
	CreateUser(ctx context.Context, user *domain.UserAccount) error
	GetUser(ctx context.Context, id int64) (*domain.UserAccount, error)
	ListUsersByRole(ctx context.Context, role domain.UserRole) ([]domain.UserAccount, error)
}

type OrderRepository interface {
	CreateOrder(ctx context.Context, order *domain.CustomerOrder) error
	GetOrder(ctx context.Context, id int64) (*domain.CustomerOrder, error)
	UpdateOrderStatus(ctx context.Context, id int64, status domain.OrderStatus) error
	ListOrdersBetween(ctx context.Context, restaurantID int64, start, end time.Time) ([]domain.CustomerOrder, error)
	DeleteOrder(ctx context.Context, id int64) (int64, error)
	SavePayment(ctx context.Context, payment *domain.Payment) error
}

type ReservationRepository interface {
	CreateReservation(ctx context.Context, reservation *domain.Reservation) error
	GetReservation(ctx context.Context, id int64) (*domain.Reservation, error)
	UpdateReservationStatus(ctx context.Context, id int64, status domain.ReservationStatus) error
	ListReservationsBetween(ctx context.Context, restaurantID int64, start, end time.Time) ([]domain.Reservation, error)
	DeleteReservation(ctx context.Context, id int64) (int64, error)
}

type NotificationRepository interface {
	CreateNotification(ctx context.Context, notification *domain.Notification) error
	ListNotifications(ctx context.Context, recipientID int64) ([]domain.Notification, error)
	MarkNotificationDelivered(ctx context.Context, id int64) (int64, error)
}

// ActivityRepository rebuilds the worker's per-day counters from rows: orders
// by created_at, payments by paid_at, reservations by created_at. Keys match
// the event types the worker counts.
type ActivityRepository interface {
	CountActivityBetween(ctx context.Context, restaurantID int64, start, end time.Time) (map[string]int64, error)
}

type Repository interface {
	CatalogRepository
	UserRepository
	OrderRepository
	ReservationRepository
	NotificationRepository
	ActivityRepository
}

// Store runs fn against a transaction-bound Repository. The transaction
// commits only when fn returns nil.
type Store interface {
	Repository
	Atomically(ctx context.Context, readOnly bool, fn func(repo Repository) error) error
}

type Clock interface {
	Now() time.Time
}

type SystemClock struct{}

func (SystemClock) Now() time.Time { return time.Now() }

type EventPublisher interface {
	Publish(ctx context.Context, event domain.Event) error
}

type ActivityStore interface {
	Record(ctx context.Context, event domain.Event) error
	Daily(ctx context.Context, restaurantID int64, day time.Time) (map[string]int64, error)
}

type QRGenerator interface {
	Generate(orderID int64) ([]byte, error)
}

type CatalogServiceInterface interface {
	CreateRestaurant(ctx context.Context, rest *domain.Restaurant) error
	GetRestaurant(ctx context.Context, id int64) (*domain.Restaurant, error)
	ListRestaurants(ctx context.Context) ([]domain.RestaurantSummary, error)
	UpdateRestaurant(ctx context.Context, rest *domain.Restaurant) error
	DeleteRestaurant(ctx context.Context, id int64) error
	CreateTable(ctx context.Context, table *domain.DiningTable) error
	ListTables(ctx context.Context, restaurantID int64) ([]domain.DiningTable, error)
	CreateCategory(ctx context.Context, category *domain.MenuCategory) error
	ListCategories(ctx context.Context, restaurantID int64) ([]domain.MenuCategory, error)
	CreateMenuItem(ctx context.Context, item *domain.MenuItem) error
	GetMenuItem(ctx context.Context, id int64) (*domain.MenuItem, error)
	ListMenuItems(ctx context.Context, categoryID int64) ([]domain.MenuItem, error)
	UpdateMenuItem(ctx context.Context, item *domain.MenuItem) error
}

type UserServiceInterface interface {
	Create(ctx context.Context, user *domain.UserAccount) error
	Get(ctx context.Context, id int64) (*domain.UserAccount, error)
	ListByRole(ctx context.Context, role domain.UserRole) ([]domain.UserAccount, error)
}

type OrderServiceInterface interface {
	Create(ctx context.Context, req domain.OrderRequest) (*domain.CustomerOrder, error)
	Get(ctx context.Context, id int64) (*domain.CustomerOrder, error)
	UpdateStatus(ctx context.Context, id int64, status domain.OrderStatus) (*domain.CustomerOrder, error)
	FindForRestaurant(ctx context.Context, restaurantID int64, day time.Time) ([]domain.CustomerOrder, error)
	Delete(ctx context.Context, id int64) error
	QRCode(ctx context.Context, id int64) ([]byte, error)
}

type ReservationServiceInterface interface {
	Create(ctx context.Context, req domain.ReservationRequest) (*domain.Reservation, error)
	Get(ctx context.Context, id int64) (*domain.Reservation, error)
	UpdateStatus(ctx context.Context, id int64, status domain.ReservationStatus) (*domain.Reservation, error)
	FindForRestaurantOnDate(ctx context.Context, restaurantID int64, day time.Time) ([]domain.Reservation, error)
	Delete(ctx context.Context, id int64) error
}

type PaymentServiceInterface interface {
	Record(ctx context.Context, req domain.PaymentRequest) (*domain.Payment, error)
	ForOrder(ctx context.Context, orderID int64) (*domain.Payment, error)
}

type NotificationServiceInterface interface {
	Send(ctx context.Context, req domain.NotificationRequest) (*domain.Notification, error)
	ListForUser(ctx context.Context, userID int64) ([]domain.Notification, error)
	MarkDelivered(ctx context.Context, id int64) error
}

type ActivityServiceInterface interface {
	Daily(ctx context.Context, restaurantID int64, day time.Time) (*domain.DailyActivity, error)
}
