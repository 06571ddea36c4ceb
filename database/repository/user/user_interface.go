package userRepo

import (
	"context"

	"barberbook/models"
)

// UserRepository persists registered accounts.
type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, userID string) (*models.User, error)
	GetByPhone(ctx context.Context, phone string) (*models.User, error)
}
