package routes

import (
	"barberbook/handlers"
	"barberbook/middleware"

	"github.com/gin-gonic/gin"
)

// RegisterBookingRoutes registers all endpoints for the reservation engine.
func RegisterBookingRoutes(r *gin.Engine, booking *handlers.BookingHandler) {
	api := r.Group("/api/bookings")
	{
		// Creation is open to guests; the admission rules decide.
		api.POST("", booking.CreateBooking)
		api.PATCH("/:id", middleware.RequireAuth(), booking.UpdateBooking)
		api.GET("/mine", middleware.RequireAuth(), booking.ListMine)
	}
}
