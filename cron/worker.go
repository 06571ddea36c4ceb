package cron

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"barberbook/config"
	"barberbook/models"
	"barberbook/services/notification"
	"barberbook/utils"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

// InitEventWorker runs the async worker in background. It drains queued
// booking lifecycle events and fans them out to the barber dashboard
// channel. Delivery stays best effort end to end.
func InitEventWorker() {
	redisOpts := asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisEventDB,
	}

	srv := asynq.NewServer(
		redisOpts,
		asynq.Config{
			Concurrency: 10,
			Queues: map[string]int{
				"default": 1,
			},
		},
	)

	mux := asynq.NewServeMux()
	mux.HandleFunc(notification.TypeBookingEvent, handleBookingEventTask)

	go func() {
		log.Println("[EventWorker] starting async worker...")
		const maxAttempts = 5

		for attempts := 1; attempts <= maxAttempts; attempts++ {
			if err := srv.Run(mux); err != nil {
				log.Printf("[EventWorker] attempt %d/%d failed to start worker: %v", attempts, maxAttempts, err)

				if attempts == maxAttempts {
					log.Fatal("[EventWorker] max retry attempts reached, exiting")
				}
				time.Sleep(time.Duration(attempts*2) * time.Second)
			} else {
				break
			}
		}
	}()
}

func handleBookingEventTask(ctx context.Context, task *asynq.Task) error {
	logger := utils.GetLogger()

	var event models.BookingEvent
	if err := json.Unmarshal(task.Payload(), &event); err != nil {
		logger.Error("invalid booking event payload", zap.Error(err))
		return err
	}

	delivery := &notification.RedisNotifier{Client: utils.GetEventClient()}
	if err := delivery.PublishBookingEvent(ctx, event); err != nil {
		// Best effort: log and drop rather than retrying forever.
		logger.Warn("failed to deliver booking event",
			zap.String("bookingId", event.BookingID),
			zap.String("barberId", event.BarberID),
			zap.Error(err))
		return nil
	}

	logger.Debug("delivered booking event",
		zap.String("bookingId", event.BookingID),
		zap.String("type", event.Type))
	return nil
}
