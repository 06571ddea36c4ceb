package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"barberbook/config"
	"barberbook/cron"
	"barberbook/database"
	barberRepo "barberbook/database/repository/barber"
	bookingRepo "barberbook/database/repository/booking"
	userRepo "barberbook/database/repository/user"
	"barberbook/handlers"
	"barberbook/middleware"
	"barberbook/routes"
	"barberbook/services/booking"
	"barberbook/services/notification"
	"barberbook/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/hibiken/asynq"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()

	database.InitDB()
	utils.InitCache()
	utils.InitEventClient()

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())
	router.Use(middleware.RateLimitMiddleware())
	router.Use(middleware.CallerIdentity())
	router.Use(cors.Default())

	// repositories.
	barbers := barberRepo.NewMongoBarberRepo()
	bookings := bookingRepo.NewMongoBookingRepo()
	users := userRepo.NewMongoUserRepo()

	// booking lifecycle events go through asynq; the worker delivers them
	// to the barber dashboard channel.
	asynqClient := asynq.NewClient(asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisEventDB,
	})
	defer asynqClient.Close()
	cron.InitEventWorker()

	// services.
	bookingService := &booking.DefaultBookingService{
		Repo:     bookings,
		Barbers:  barbers,
		Notifier: &notification.AsynqNotifier{Client: asynqClient},
		Cache:    utils.GetCacheClient(),
		Limits: booking.Limits{
			MaxGuestBookings:    config.AppConfig.MaxGuestBookings,
			MaxActiveBookings:   config.AppConfig.MaxActiveBookings,
			BasicPlanMonthlyCap: config.AppConfig.BasicPlanMonthlyCap,
		},
		Granularity: config.AppConfig.SlotGranularityMin,
		Buffer:      config.AppConfig.SlotBufferMin,
	}

	// handlers + routes.
	authHandler := handlers.NewAuthHandler(users, barbers)
	barberHandler := handlers.NewBarberHandler(barbers)
	bookingHandler := handlers.NewBookingHandler(bookingService)

	routes.RegisterAuthRoutes(router, authHandler)
	routes.RegisterBarberRoutes(router, barberHandler, bookingHandler)
	routes.RegisterBookingRoutes(router, bookingHandler)

	srv := &http.Server{
		Addr:    ":" + config.AppConfig.AppPort,
		Handler: router,
	}

	go func() {
		logger.Sugar().Infof("listening on :%s", config.AppConfig.AppPort)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Sugar().Fatalf("server error: %v", err)
		}
	}()

	// Graceful shutdown on SIGINT/SIGTERM.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Sugar().Fatalf("forced shutdown: %v", err)
	}
}
