package events

import (
	"context"
	"encoding/json"
	"fmt"

	"restaurant-ops/internal/domain"
	"restaurant-ops/internal/service"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

type MessageReader interface {
	ReadMessage(ctx context.Context) (kafka.Message, error)
}

type NotificationSender interface {
	Send(ctx context.Context, req domain.NotificationRequest) (*domain.Notification, error)
}

// Consumer turns lifecycle events into customer notifications and daily
// activity counters.
type Consumer struct {
	Reader        MessageReader
	Notifications NotificationSender
	Activity      service.ActivityStore
	Channel       string
	Logger        *zap.Logger
}

func NewConsumer(reader MessageReader, notifications NotificationSender, activity service.ActivityStore, channel string, logger *zap.Logger) *Consumer {
	return &Consumer{
		Reader:        reader,
		Notifications: notifications,
		Activity:      activity,
		Channel:       channel,
		Logger:        logger,
	}
}

func (c *Consumer) Start(ctx context.Context) {
	c.Logger.Info("starting lifecycle event consumer")
	for {
		message, err := c.Reader.ReadMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				c.Logger.Info("lifecycle event consumer stopped")
				return
			}
			c.Logger.Error("error reading message", zap.Error(err))
			continue
		}

		var event domain.Event
		if err := json.Unmarshal(message.Value, &event); err != nil {
			c.Logger.Error("error unmarshaling message", zap.Error(err), zap.ByteString("key", message.Key))
			continue
		}

		c.ProcessEvent(ctx, event)
	}
}

func (c *Consumer) ProcessEvent(ctx context.Context, event domain.Event) {
	text, ok := MessageFor(event)
	if !ok {
		c.Logger.Debug("ignoring event", zap.String("type", event.Type))
		return
	}
	log := c.Logger.With(
		zap.String("type", event.Type),
		zap.Int64("restaurant_id", event.RestaurantID),
		zap.Int64("customer_id", event.CustomerID),
	)

	if c.Activity != nil {
		if err := c.Activity.Record(ctx, event); err != nil {
			log.Error("error recording activity", zap.Error(err))
		}
	}

	if event.CustomerID == 0 {
		return
	}
	notification, err := c.Notifications.Send(ctx, domain.NotificationRequest{
		RecipientID: event.CustomerID,
		Channel:     c.Channel,
		Message:     text,
	})
	if err != nil {
		log.Error("error creating notification", zap.Error(err))
		return
	}
	log.Info("notification queued", zap.Int64("notification_id", notification.ID))
}

// MessageFor renders the customer-facing text for an event type.
func MessageFor(event domain.Event) (string, bool) {
	switch event.Type {
	case domain.EventOrderCreated:
		return fmt.Sprintf("Your order #%d has been received.", event.OrderID), true
	case domain.EventOrderStatusChanged:
		return fmt.Sprintf("Your order #%d is now %s.", event.OrderID, event.Status), true
	case domain.EventPaymentRecorded:
		return fmt.Sprintf("Payment of %s received for order #%d.", event.Amount, event.OrderID), true
	case domain.EventReservationCreated:
		return fmt.Sprintf("Your reservation #%d has been requested.", event.ReservationID), true
	case domain.EventReservationStatusChanged:
		return fmt.Sprintf("Your reservation #%d is now %s.", event.ReservationID, event.Status), true
	}
	return "", false
}
