package service

import (
	"context"
	"fmt"
	"time"

	"restaurant-ops/internal/domain"
	"restaurant-ops/internal/pricing"
)

type OrderService struct {
	store       Store
	clock       Clock
	qrEncoder   QRGenerator
	transitions domain.Transitions[domain.OrderStatus]
}

type OrderOption func(*OrderService)

func WithOrderTransitions(t domain.Transitions[domain.OrderStatus]) OrderOption {
	return func(s *OrderService) { s.transitions = t }
}

func WithQRGenerator(qr QRGenerator) OrderOption {
	return func(s *OrderService) { s.qrEncoder = qr }
}

func NewOrderService(store Store, clock Clock, opts ...OrderOption) *OrderService {
	s := &OrderService{store: store, clock: clock}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Create resolves the restaurant, table and customer, prices the lines and
// persists the order with its items in one transaction.
func (s *OrderService) Create(ctx context.Context, req domain.OrderRequest) (*domain.CustomerOrder, error) {
	var created *domain.CustomerOrder
	err := s.store.Atomically(ctx, false, func(repo Repository) error {
		if _, err := resolveRestaurant(ctx, repo, req.RestaurantID); err != nil {
			return err
		}
		if _, err := resolveTable(ctx, repo, req.TableID); err != nil {
			return err
		}
		if _, err := resolveCustomer(ctx, repo, req.CustomerID); err != nil {
			return err
		}

		menu, err := repo.GetMenuItems(ctx, req.MenuItemIDs())
		if err != nil {
			return fmt.Errorf("load menu items: %w", err)
		}
		quote, err := pricing.Calculate(req.RestaurantID, menu, req.Items)
		if err != nil {
			return err
		}

		order := &domain.CustomerOrder{
			RestaurantID: req.RestaurantID,
			TableID:      req.TableID,
			CustomerID:   req.CustomerID,
			Status:       domain.OrderPending,
			CreatedAt:    s.clock.Now(),
			Total:        quote.Total,
			Items:        quote.OrderItems(),
		}
		if err := repo.CreateOrder(ctx, order); err != nil {
			return fmt.Errorf("create order: %w", err)
		}
		created = order
		return nil
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

func (s *OrderService) Get(ctx context.Context, id int64) (*domain.CustomerOrder, error) {
	order, err := s.store.GetOrder(ctx, id)
	if err != nil {
		return nil, notFoundAs(err, "order", id)
	}
	return order, nil
}

// UpdateStatus sets the status unconditionally unless a transition table was
// configured. Concurrent updates are last-writer-wins.
func (s *OrderService) UpdateStatus(ctx context.Context, id int64, status domain.OrderStatus) (*domain.CustomerOrder, error) {
	var updated *domain.CustomerOrder
	err := s.store.Atomically(ctx, false, func(repo Repository) error {
		order, err := repo.GetOrder(ctx, id)
		if err != nil {
			return notFoundAs(err, "order", id)
		}
		if !s.transitions.Allowed(order.Status, status) {
			return fmt.Errorf("%w: %s -> %s", domain.ErrTransitionNotAllowed, order.Status, status)
		}
		if err := repo.UpdateOrderStatus(ctx, id, status); err != nil {
			return notFoundAs(err, "order", id)
		}
		order.Status = status
		updated = order
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

func (s *OrderService) FindForRestaurant(ctx context.Context, restaurantID int64, day time.Time) ([]domain.CustomerOrder, error) {
	var orders []domain.CustomerOrder
	err := s.store.Atomically(ctx, true, func(repo Repository) error {
		if _, err := resolveRestaurant(ctx, repo, restaurantID); err != nil {
			return err
		}
		start, end := dayBounds(day)
		found, err := repo.ListOrdersBetween(ctx, restaurantID, start, end)
		if err != nil {
			return err
		}
		orders = found
		return nil
	})
	if err != nil {
		return nil, err
	}
	if orders == nil {
		orders = []domain.CustomerOrder{}
	}
	return orders, nil
}

func (s *OrderService) Delete(ctx context.Context, id int64) error {
	rows, err := s.store.DeleteOrder(ctx, id)
	if err != nil {
		return err
	}
	if rows == 0 {
		return domain.NotFound("order", id)
	}
	return nil
}

func (s *OrderService) QRCode(ctx context.Context, id int64) ([]byte, error) {
	if s.qrEncoder == nil {
		return nil, fmt.Errorf("qr generator not configured")
	}
	if _, err := s.Get(ctx, id); err != nil {
		return nil, err
	}
	return s.qrEncoder.Generate(id)
}

var _ OrderServiceInterface = (*OrderService)(nil)
