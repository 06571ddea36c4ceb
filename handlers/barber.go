package handlers

import (
	"errors"
	"net/http"
	"time"

	barberRepo "barberbook/database/repository/barber"
	"barberbook/middleware"
	"barberbook/models"
	"barberbook/services/booking"
	"barberbook/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// BarberHandler manages barber profiles, schedules and service menus.
type BarberHandler struct {
	Repo barberRepo.BarberRepository
}

func NewBarberHandler(repo barberRepo.BarberRepository) *BarberHandler {
	return &BarberHandler{Repo: repo}
}

// GetBarber handles GET /barbers/:id.
func (h *BarberHandler) GetBarber(c *gin.Context) {
	barber, err := h.Repo.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, barberRepo.ErrNotFound) {
			utils.JSONError(c, http.StatusNotFound, "barber not found", booking.CodeNotFound)
			return
		}
		utils.JSONError(c, http.StatusServiceUnavailable, "failed to load barber", booking.CodeStoreUnavailable)
		return
	}
	c.JSON(http.StatusOK, gin.H{"barber": barber})
}

// UpdateSchedule handles PUT /barbers/:id/schedule. Only the owning barber
// may change their availability.
func (h *BarberHandler) UpdateSchedule(c *gin.Context) {
	barberID := c.Param("id")
	if c.GetString(middleware.CtxCallerID) != barberID {
		utils.JSONError(c, http.StatusForbidden, "only the owning barber may edit the schedule", booking.CodeForbidden)
		return
	}

	var req struct {
		Schedule      models.WeeklySchedule `json:"schedule"`
		BlackoutDates []string              `json:"blackoutDates"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid request body", booking.CodeInvalidInput)
		return
	}
	if err := req.Schedule.Validate(); err != nil {
		utils.JSONError(c, http.StatusBadRequest, err.Error(), booking.CodeInvalidInput)
		return
	}
	for _, d := range req.BlackoutDates {
		if _, err := time.Parse("2006-01-02", d); err != nil {
			utils.JSONError(c, http.StatusBadRequest, "blackout dates must be YYYY-MM-DD", booking.CodeInvalidInput)
			return
		}
	}

	if err := h.Repo.UpdateSchedule(c.Request.Context(), barberID, req.Schedule, req.BlackoutDates); err != nil {
		if errors.Is(err, barberRepo.ErrNotFound) {
			utils.JSONError(c, http.StatusNotFound, "barber not found", booking.CodeNotFound)
			return
		}
		utils.JSONError(c, http.StatusServiceUnavailable, "failed to update schedule", booking.CodeStoreUnavailable)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

// CreateService handles POST /barbers/:id/services.
func (h *BarberHandler) CreateService(c *gin.Context) {
	barberID := c.Param("id")
	if c.GetString(middleware.CtxCallerID) != barberID {
		utils.JSONError(c, http.StatusForbidden, "only the owning barber may edit the menu", booking.CodeForbidden)
		return
	}

	var req struct {
		Name            string  `json:"name"`
		DurationMinutes int     `json:"durationMinutes"`
		Price           float64 `json:"price"`
		Currency        string  `json:"currency"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid request body", booking.CodeInvalidInput)
		return
	}
	if req.Name == "" || req.DurationMinutes <= 0 || req.Price < 0 {
		utils.JSONError(c, http.StatusBadRequest, "name, a positive duration and a non-negative price are required", booking.CodeInvalidInput)
		return
	}

	svc := &models.Service{
		ID:              uuid.New().String(),
		BarberID:        barberID,
		Name:            req.Name,
		DurationMinutes: req.DurationMinutes,
		Price:           req.Price,
		Currency:        req.Currency,
		CreatedAt:       time.Now(),
	}
	if err := h.Repo.CreateService(c.Request.Context(), svc); err != nil {
		utils.JSONError(c, http.StatusServiceUnavailable, "failed to create service", booking.CodeStoreUnavailable)
		return
	}
	c.JSON(http.StatusOK, gin.H{"service": svc})
}

// ListServices handles GET /barbers/:id/services.
func (h *BarberHandler) ListServices(c *gin.Context) {
	services, err := h.Repo.ListServices(c.Request.Context(), c.Param("id"))
	if err != nil {
		utils.JSONError(c, http.StatusServiceUnavailable, "failed to list services", booking.CodeStoreUnavailable)
		return
	}
	if services == nil {
		services = []models.Service{}
	}
	c.JSON(http.StatusOK, gin.H{"services": services})
}
