package domain

import "time"

const (
	EventOrderCreated             = "order_created"
	EventOrderStatusChanged       = "order_status_changed"
	EventReservationCreated       = "reservation_created"
	EventReservationStatusChanged = "reservation_status_changed"
	EventPaymentRecorded          = "payment_recorded"
)

// Event is published on the lifecycle topic by callers of the lifecycle
// managers after a successful write.
type Event struct {
	Type          string    `json:"type"`
	RestaurantID  int64     `json:"restaurant_id"`
	CustomerID    int64     `json:"customer_id"`
	OrderID       int64     `json:"order_id,omitempty"`
	ReservationID int64     `json:"reservation_id,omitempty"`
	Status        string    `json:"status,omitempty"`
	Amount        string    `json:"amount,omitempty"`
	Timestamp     time.Time `json:"timestamp"`
}

func OrderEvent(eventType string, order *CustomerOrder, at time.Time) Event {
	return Event{
		Type:         eventType,
		RestaurantID: order.RestaurantID,
		CustomerID:   order.CustomerID,
		OrderID:      order.ID,
		Status:       string(order.Status),
		Timestamp:    at,
	}
}

func ReservationEvent(eventType string, reservation *Reservation, at time.Time) Event {
	return Event{
		Type:          eventType,
		RestaurantID:  reservation.RestaurantID,
		CustomerID:    reservation.CustomerID,
		ReservationID: reservation.ID,
		Status:        string(reservation.Status),
		Timestamp:     at,
	}
}
