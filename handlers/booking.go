package handlers

import (
	"net/http"

	"barberbook/middleware"
	"barberbook/models"
	"barberbook/services/booking"
	"barberbook/utils"

	"github.com/gin-gonic/gin"
)

// BookingHandler exposes the reservation engine over HTTP.
type BookingHandler struct {
	Service booking.BookingService
}

func NewBookingHandler(svc booking.BookingService) *BookingHandler {
	return &BookingHandler{Service: svc}
}

// callerFromContext builds the service-level caller from whatever the
// identity middleware verified. Zero value = guest.
func callerFromContext(c *gin.Context) booking.Caller {
	return booking.Caller{
		ID:   c.GetString(middleware.CtxCallerID),
		Role: c.GetString(middleware.CtxCallerRole),
	}
}

// statusFor maps the business error taxonomy onto HTTP statuses.
func statusFor(code string) int {
	switch code {
	case booking.CodeInvalidInput:
		return http.StatusBadRequest
	case booking.CodeNotFound, booking.CodeMismatch:
		return http.StatusNotFound
	case booking.CodeForbidden, booking.CodeSubscriptionExpired:
		return http.StatusForbidden
	case booking.CodeSlotAlreadyBooked:
		return http.StatusConflict
	case booking.CodeMaxGuestBookings, booking.CodeMaxActiveBookings, booking.CodeBarberLimitReached:
		return http.StatusTooManyRequests
	case booking.CodeStoreUnavailable:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// respondError writes the structured {error, errorCode} body.
func respondError(c *gin.Context, err error) {
	if be := booking.AsError(err); be != nil {
		utils.JSONError(c, statusFor(be.Code), be.Message, be.Code)
		return
	}
	utils.JSONError(c, http.StatusInternalServerError, "internal error", "Internal")
}

// CreateBooking handles POST /bookings.
func (h *BookingHandler) CreateBooking(c *gin.Context) {
	var req models.BookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid request body", booking.CodeInvalidInput)
		return
	}

	caller := callerFromContext(c)
	if req.AsGuest {
		// An authenticated user may still book as a guest on someone's behalf.
		caller = booking.Caller{}
	}

	created, err := h.Service.Reserve(c.Request.Context(), req, caller)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"booking": created})
}

// UpdateBooking handles PATCH /bookings/:id.
func (h *BookingHandler) UpdateBooking(c *gin.Context) {
	var req models.StatusUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid request body", booking.CodeInvalidInput)
		return
	}

	updated, err := h.Service.UpdateStatus(c.Request.Context(), c.Param("id"), req, callerFromContext(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"booking": updated})
}

// ListBarberDay handles GET /barbers/:id/bookings?date=YYYY-MM-DD.
func (h *BookingHandler) ListBarberDay(c *gin.Context) {
	barberID := c.Param("id")
	date := c.Query("date")

	full, public, err := h.Service.BarberDay(c.Request.Context(), barberID, date, callerFromContext(c))
	if err != nil {
		respondError(c, err)
		return
	}
	if full != nil {
		c.JSON(http.StatusOK, gin.H{"bookings": full})
		return
	}
	c.JSON(http.StatusOK, gin.H{"bookings": public})
}

// FreeSlots handles GET /barbers/:id/slots?date=YYYY-MM-DD&serviceId=...
func (h *BookingHandler) FreeSlots(c *gin.Context) {
	slots, err := h.Service.FreeSlots(c.Request.Context(), c.Param("id"), c.Query("serviceId"), c.Query("date"))
	if err != nil {
		respondError(c, err)
		return
	}
	if slots == nil {
		slots = []string{}
	}
	c.JSON(http.StatusOK, gin.H{"slots": slots})
}

// ListMine handles GET /bookings/mine for registered clients.
func (h *BookingHandler) ListMine(c *gin.Context) {
	bookings, err := h.Service.ListForClient(c.Request.Context(), callerFromContext(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"bookings": bookings})
}
