package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type LineRequest struct {
	MenuItemID int64 `json:"menu_item_id"`
	Quantity   int   `json:"quantity"`
}

type OrderRequest struct {
	RestaurantID int64         `json:"restaurant_id"`
	TableID      int64         `json:"table_id"`
	CustomerID   int64         `json:"customer_id"`
	Items        []LineRequest `json:"items"`
}

func (r OrderRequest) MenuItemIDs() []int64 {
	seen := make(map[int64]bool, len(r.Items))
	ids := make([]int64, 0, len(r.Items))
	for _, line := range r.Items {
		if !seen[line.MenuItemID] {
			seen[line.MenuItemID] = true
			ids = append(ids, line.MenuItemID)
		}
	}
	return ids
}

type ReservationRequest struct {
	RestaurantID    int64     `json:"restaurant_id"`
	TableID         int64     `json:"table_id"`
	CustomerID      int64     `json:"customer_id"`
	ReservationTime time.Time `json:"reservation_time"`
	PartySize       int       `json:"party_size"`
	Notes           string    `json:"notes"`
}

type PaymentRequest struct {
	OrderID  int64           `json:"order_id"`
	Amount   decimal.Decimal `json:"amount"`
	Provider string          `json:"provider"`
	Currency string          `json:"currency"`
}

type NotificationRequest struct {
	RecipientID int64  `json:"recipient_id"`
	Channel     string `json:"channel"`
	Message     string `json:"message"`
}

type StatusUpdateRequest struct {
	Status string `json:"status"`
}

type RestaurantSummary struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Address     string `json:"address"`
	Phone       string `json:"phone"`
	OpeningTime string `json:"opening_time"`
	ClosingTime string `json:"closing_time"`
}
