package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type Restaurant struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Address     string `json:"address"`
	Phone       string `json:"phone"`
	OpeningTime string `json:"opening_time"`
	ClosingTime string `json:"closing_time"`
}

type DiningTable struct {
	ID           int64  `json:"id"`
	RestaurantID int64  `json:"restaurant_id"`
	Code         string `json:"code"`
	Capacity     int    `json:"capacity"`
	Outdoor      bool   `json:"outdoor"`
}

type MenuCategory struct {
	ID           int64  `json:"id"`
	RestaurantID int64  `json:"restaurant_id"`
	Name         string `json:"name"`
}

// MenuItem carries the restaurant of its category so pricing can reject
// items from another restaurant without a second lookup.
type MenuItem struct {
	ID           int64           `json:"id"`
	CategoryID   int64           `json:"category_id"`
	RestaurantID int64           `json:"restaurant_id"`
	Name         string          `json:"name"`
	Description  string          `json:"description"`
	Price        decimal.Decimal `json:"price"`
}

type UserAccount struct {
	ID       int64    `json:"id"`
	FullName string   `json:"full_name"`
	Email    string   `json:"email"`
	Phone    string   `json:"phone"`
	Role     UserRole `json:"role"`
}

type CustomerOrder struct {
	ID           int64           `json:"id"`
	RestaurantID int64           `json:"restaurant_id"`
	TableID      int64           `json:"table_id"`
	CustomerID   int64           `json:"customer_id"`
	Status       OrderStatus     `json:"status"`
	CreatedAt    time.Time       `json:"created_at"`
	Total        decimal.Decimal `json:"total"`
	Items        []OrderItem     `json:"items"`
	Payment      *Payment        `json:"payment,omitempty"`
}

// OrderItem.Price is the menu price captured when the order was created.
type OrderItem struct {
	ID         int64           `json:"id"`
	OrderID    int64           `json:"order_id"`
	MenuItemID int64           `json:"menu_item_id"`
	Name       string          `json:"name"`
	Quantity   int             `json:"quantity"`
	Price      decimal.Decimal `json:"price"`
}

func (i OrderItem) LineTotal() decimal.Decimal {
	return i.Price.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

type Payment struct {
	ID       int64           `json:"id"`
	OrderID  int64           `json:"order_id"`
	Amount   decimal.Decimal `json:"amount"`
	Provider string          `json:"provider"`
	Currency string          `json:"currency"`
	PaidAt   time.Time       `json:"paid_at"`
}

type Reservation struct {
	ID              int64             `json:"id"`
	RestaurantID    int64             `json:"restaurant_id"`
	TableID         int64             `json:"table_id"`
	CustomerID      int64             `json:"customer_id"`
	ReservationTime time.Time         `json:"reservation_time"`
	PartySize       int               `json:"party_size"`
	Status          ReservationStatus `json:"status"`
	Notes           string            `json:"notes"`
	CreatedAt       time.Time         `json:"created_at"`
}

const MaxNotificationLength = 500

type Notification struct {
	ID          int64     `json:"id"`
	RecipientID int64     `json:"recipient_id"`
	Channel     string    `json:"channel"`
	Message     string    `json:"message"`
	Delivered   bool      `json:"delivered"`
	CreatedAt   time.Time `json:"created_at"`
}

type DailyActivity struct {
	RestaurantID int64            `json:"restaurant_id"`
	Date         string           `json:"date"`
	Source       string           `json:"source"`
	Counters     map[string]int64 `json:"counters"`
}
