package service

import (
	"context"
	"strings"
	"unicode/utf8"

	"restaurant-ops/internal/domain"
)

type NotificationStore interface {
	UserRepository
	NotificationRepository
}

type NotificationService struct {
	repo  NotificationStore
	clock Clock
}

func NewNotificationService(repo NotificationStore, clock Clock) *NotificationService {
	return &NotificationService{repo: repo, clock: clock}
}

// Send records an undelivered notification. Delivery happens elsewhere.
func (s *NotificationService) Send(ctx context.Context, req domain.NotificationRequest) (*domain.Notification, error) {
	channel := strings.TrimSpace(req.Channel)
	if channel == "" || strings.TrimSpace(req.Message) == "" {
		return nil, domain.Invalid(domain.ErrInvalidNotification, "channel and message are required")
	}
	if n := utf8.RuneCountInString(req.Message); n > domain.MaxNotificationLength {
		return nil, domain.Invalid(domain.ErrInvalidNotification, n)
	}
	if _, err := s.repo.GetUser(ctx, req.RecipientID); err != nil {
		return nil, notFoundAs(err, "user", req.RecipientID)
	}

	notification := &domain.Notification{
		RecipientID: req.RecipientID,
		Channel:     channel,
		Message:     req.Message,
		Delivered:   false,
		CreatedAt:   s.clock.Now(),
	}
	if err := s.repo.CreateNotification(ctx, notification); err != nil {
		return nil, err
	}
	return notification, nil
}

func (s *NotificationService) ListForUser(ctx context.Context, userID int64) ([]domain.Notification, error) {
	if _, err := s.repo.GetUser(ctx, userID); err != nil {
		return nil, notFoundAs(err, "user", userID)
	}
	return s.repo.ListNotifications(ctx, userID)
}

func (s *NotificationService) MarkDelivered(ctx context.Context, id int64) error {
	rows, err := s.repo.MarkNotificationDelivered(ctx, id)
	if err != nil {
		return err
	}
	if rows == 0 {
		return domain.NotFound("notification", id)
	}
	return nil
}

var _ NotificationServiceInterface = (*NotificationService)(nil)
