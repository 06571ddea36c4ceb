package notification

import (
	"context"
	"encoding/json"
	"fmt"

	"barberbook/models"

	"github.com/go-redis/redis/v8"
	"github.com/hibiken/asynq"
)

// TypeBookingEvent is the asynq task type for deferred event delivery.
const TypeBookingEvent = "booking:event"

// Notifier pushes booking lifecycle events to interested listeners
// (the barber's live dashboard). Delivery is best effort: callers log and
// swallow any error, and a nil Notifier means "no notifications".
type Notifier interface {
	PublishBookingEvent(ctx context.Context, event models.BookingEvent) error
}

// BarberChannel is the Redis pub/sub channel a barber's dashboard listens on.
func BarberChannel(barberID string) string {
	return fmt.Sprintf("barber:%s:events", barberID)
}

// RedisNotifier publishes events directly on the barber's channel.
type RedisNotifier struct {
	Client *redis.Client
}

func (n *RedisNotifier) PublishBookingEvent(ctx context.Context, event models.BookingEvent) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal booking event: %w", err)
	}
	if err := n.Client.Publish(ctx, BarberChannel(event.BarberID), payload).Err(); err != nil {
		return fmt.Errorf("failed to publish booking event: %w", err)
	}
	return nil
}

// AsynqNotifier enqueues events for the background worker, keeping delivery
// off the request path entirely.
type AsynqNotifier struct {
	Client *asynq.Client
}

func (n *AsynqNotifier) PublishBookingEvent(ctx context.Context, event models.BookingEvent) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal booking event: %w", err)
	}
	if _, err := n.Client.EnqueueContext(ctx, asynq.NewTask(TypeBookingEvent, payload)); err != nil {
		return fmt.Errorf("failed to enqueue booking event: %w", err)
	}
	return nil
}
