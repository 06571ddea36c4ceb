package handlers

import (
	"errors"
	"net/http"
	"time"

	barberRepo "barberbook/database/repository/barber"
	userRepo "barberbook/database/repository/user"
	"barberbook/models"
	"barberbook/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

const tokenTTL = 24 * time.Hour

// AuthHandler issues the verified identities the booking engine relies on.
type AuthHandler struct {
	Users   userRepo.UserRepository
	Barbers barberRepo.BarberRepository
}

func NewAuthHandler(users userRepo.UserRepository, barbers barberRepo.BarberRepository) *AuthHandler {
	return &AuthHandler{Users: users, Barbers: barbers}
}

// Register handles POST /auth/register. Registering with role "barber"
// also creates the barber profile (trial subscription) under the same ID.
func (h *AuthHandler) Register(c *gin.Context) {
	var req struct {
		Name     string `json:"name"`
		Phone    string `json:"phone"`
		Password string `json:"password"`
		Role     string `json:"role"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid request body", "InvalidInput")
		return
	}
	if req.Name == "" || req.Phone == "" || len(req.Password) < 6 {
		utils.JSONError(c, http.StatusBadRequest, "name, phone and a password of at least 6 characters are required", "InvalidInput")
		return
	}
	role := req.Role
	if role == "" {
		role = models.RoleClient
	}
	if role != models.RoleClient && role != models.RoleBarber {
		utils.JSONError(c, http.StatusBadRequest, "role must be client or barber", "InvalidInput")
		return
	}

	if _, err := h.Users.GetByPhone(c.Request.Context(), req.Phone); err == nil {
		utils.JSONError(c, http.StatusConflict, "phone number already registered", "InvalidInput")
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "failed to hash password", "Internal")
		return
	}

	user := &models.User{
		ID:           uuid.New().String(),
		Name:         req.Name,
		Phone:        req.Phone,
		Role:         role,
		PasswordHash: string(hash),
		CreatedAt:    time.Now(),
	}
	if err := h.Users.Create(c.Request.Context(), user); err != nil {
		utils.JSONError(c, http.StatusServiceUnavailable, "failed to create account", "StoreUnavailable")
		return
	}

	if role == models.RoleBarber {
		barber := &models.Barber{
			ID:    user.ID,
			Name:  user.Name,
			Phone: user.Phone,
			Subscription: models.Subscription{
				Status:  models.SubscriptionTrial,
				Plan:    models.PlanBasic,
				EndDate: time.Now().AddDate(0, 1, 0).Format("2006-01-02"),
			},
			CreatedAt: time.Now(),
		}
		if err := h.Barbers.Create(c.Request.Context(), barber); err != nil {
			utils.JSONError(c, http.StatusServiceUnavailable, "failed to create barber profile", "StoreUnavailable")
			return
		}
	}

	token, err := utils.GenerateToken(user.ID, user.Role, tokenTTL)
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "failed to issue token", "Internal")
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": user, "token": token})
}

// Login handles POST /auth/login.
func (h *AuthHandler) Login(c *gin.Context) {
	var req struct {
		Phone    string `json:"phone"`
		Password string `json:"password"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid request body", "InvalidInput")
		return
	}

	user, err := h.Users.GetByPhone(c.Request.Context(), req.Phone)
	if err != nil {
		if errors.Is(err, userRepo.ErrNotFound) {
			utils.JSONError(c, http.StatusUnauthorized, "invalid credentials", "Forbidden")
			return
		}
		utils.JSONError(c, http.StatusServiceUnavailable, "failed to load account", "StoreUnavailable")
		return
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		utils.JSONError(c, http.StatusUnauthorized, "invalid credentials", "Forbidden")
		return
	}

	token, err := utils.GenerateToken(user.ID, user.Role, tokenTTL)
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "failed to issue token", "Internal")
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": user, "token": token})
}
