package routes

import (
	"barberbook/handlers"
	"barberbook/middleware"

	"github.com/gin-gonic/gin"
)

// RegisterAuthRoutes registers account endpoints.
func RegisterAuthRoutes(r *gin.Engine, auth *handlers.AuthHandler) {
	api := r.Group("/api/auth")
	{
		api.POST("/register", auth.Register)
		api.POST("/login", auth.Login)
	}
}

// RegisterBarberRoutes registers barber profile, schedule and menu endpoints.
func RegisterBarberRoutes(r *gin.Engine, barber *handlers.BarberHandler, booking *handlers.BookingHandler) {
	api := r.Group("/api/barbers")
	{
		api.GET("/:id", barber.GetBarber)
		api.GET("/:id/services", barber.ListServices)
		api.GET("/:id/slots", booking.FreeSlots)
		api.GET("/:id/bookings", booking.ListBarberDay)

		protected := api.Group("")
		protected.Use(middleware.RequireAuth())
		protected.PUT("/:id/schedule", barber.UpdateSchedule)
		protected.POST("/:id/services", barber.CreateService)
	}
}
