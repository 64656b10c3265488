package service

import (
	"context"
	"fmt"
	"strings"

	"restaurant-ops/internal/domain"

	"go.uber.org/zap"
)

type PaymentService struct {
	store  Store
	clock  Clock
	logger *zap.Logger
}

func NewPaymentService(store Store, clock Clock, logger *zap.Logger) *PaymentService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &PaymentService{store: store, clock: clock, logger: logger}
}

// Record stores a payment for the order. The amount is not compared with the
// order total and no payment network is contacted. A second payment for the
// same order replaces the first.
func (s *PaymentService) Record(ctx context.Context, req domain.PaymentRequest) (*domain.Payment, error) {
	if strings.TrimSpace(req.Provider) == "" || strings.TrimSpace(req.Currency) == "" {
		return nil, domain.Invalid(domain.ErrInvalidPayment, "provider and currency are required")
	}
	if req.Amount.IsNegative() {
		return nil, domain.Invalid(domain.ErrInvalidPayment, req.Amount.String())
	}

	var recorded *domain.Payment
	err := s.store.Atomically(ctx, false, func(repo Repository) error {
		order, err := repo.GetOrder(ctx, req.OrderID)
		if err != nil {
			return notFoundAs(err, "order", req.OrderID)
		}
		if order.Payment != nil {
			s.logger.Warn("replacing existing payment",
				zap.Int64("order_id", order.ID),
				zap.Int64("payment_id", order.Payment.ID),
				zap.String("previous_amount", order.Payment.Amount.String()))
		}

		payment := &domain.Payment{
			OrderID:  order.ID,
			Amount:   req.Amount,
			Provider: strings.TrimSpace(req.Provider),
			Currency: strings.ToUpper(strings.TrimSpace(req.Currency)),
			PaidAt:   s.clock.Now(),
		}
		if err := repo.SavePayment(ctx, payment); err != nil {
			return fmt.Errorf("save payment: %w", err)
		}
		recorded = payment
		return nil
	})
	if err != nil {
		return nil, err
	}
	return recorded, nil
}

func (s *PaymentService) ForOrder(ctx context.Context, orderID int64) (*domain.Payment, error) {
	order, err := s.store.GetOrder(ctx, orderID)
	if err != nil {
		return nil, notFoundAs(err, "order", orderID)
	}
	if order.Payment == nil {
		return nil, domain.NotFound("payment for order", orderID)
	}
	return order.Payment, nil
}

var _ PaymentServiceInterface = (*PaymentService)(nil)
