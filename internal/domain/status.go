package domain

import "strings"

type OrderStatus string

const (
	OrderPending   OrderStatus = "PENDING"
	OrderConfirmed OrderStatus = "CONFIRMED"
	OrderPreparing OrderStatus = "PREPARING"
	OrderReady     OrderStatus = "READY"
	OrderServed    OrderStatus = "SERVED"
	OrderCompleted OrderStatus = "COMPLETED"
	OrderCancelled OrderStatus = "CANCELLED"
)

var orderStatuses = []OrderStatus{
	OrderPending, OrderConfirmed, OrderPreparing, OrderReady, OrderServed, OrderCompleted, OrderCancelled,
}

func ParseOrderStatus(s string) (OrderStatus, error) {
	for _, status := range orderStatuses {
		if strings.EqualFold(s, string(status)) {
			return status, nil
		}
	}
	return "", &InvalidValueError{Err: ErrInvalidStatus, Value: s}
}

type ReservationStatus string

const (
	ReservationRequested ReservationStatus = "REQUESTED"
	ReservationConfirmed ReservationStatus = "CONFIRMED"
	ReservationSeated    ReservationStatus = "SEATED"
	ReservationCompleted ReservationStatus = "COMPLETED"
	ReservationCancelled ReservationStatus = "CANCELLED"
	ReservationNoShow    ReservationStatus = "NO_SHOW"
)

var reservationStatuses = []ReservationStatus{
	ReservationRequested, ReservationConfirmed, ReservationSeated,
	ReservationCompleted, ReservationCancelled, ReservationNoShow,
}

func ParseReservationStatus(s string) (ReservationStatus, error) {
	for _, status := range reservationStatuses {
		if strings.EqualFold(s, string(status)) {
			return status, nil
		}
	}
	return "", &InvalidValueError{Err: ErrInvalidStatus, Value: s}
}

type UserRole string

const (
	RoleCustomer UserRole = "CUSTOMER"
	RoleWaiter   UserRole = "WAITER"
	RoleChef     UserRole = "CHEF"
	RoleManager  UserRole = "MANAGER"
	RoleAdmin    UserRole = "ADMIN"
)

var userRoles = []UserRole{RoleCustomer, RoleWaiter, RoleChef, RoleManager, RoleAdmin}

func ParseUserRole(s string) (UserRole, error) {
	for _, role := range userRoles {
		if strings.EqualFold(s, string(role)) {
			return role, nil
		}
	}
	return "", &InvalidValueError{Err: ErrInvalidUser, Value: s}
}

// Transitions lists, per state, the states it may move to. A nil table
// allows every move.
type Transitions[S ~string] map[S][]S

func (t Transitions[S]) Allowed(from, to S) bool {
	if t == nil || from == to {
		return true
	}
	for _, next := range t[from] {
		if next == to {
			return true
		}
	}
	return false
}

var DefaultOrderTransitions = Transitions[OrderStatus]{
	OrderPending:   {OrderConfirmed, OrderPreparing, OrderCancelled},
	OrderConfirmed: {OrderPreparing, OrderCancelled},
	OrderPreparing: {OrderReady, OrderCancelled},
	OrderReady:     {OrderServed, OrderCancelled},
	OrderServed:    {OrderCompleted},
}

var DefaultReservationTransitions = Transitions[ReservationStatus]{
	ReservationRequested: {ReservationConfirmed, ReservationCancelled},
	ReservationConfirmed: {ReservationSeated, ReservationCancelled, ReservationNoShow},
	ReservationSeated:    {ReservationCompleted},
}
