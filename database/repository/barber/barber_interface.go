package barberRepo

import (
	"context"

	"barberbook/models"
)

// BarberRepository persists barber profiles and their service menus.
type BarberRepository interface {
	Create(ctx context.Context, barber *models.Barber) error
	GetByID(ctx context.Context, barberID string) (*models.Barber, error)
	UpdateSchedule(ctx context.Context, barberID string, schedule models.WeeklySchedule, blackoutDates []string) error
	UpdateSubscription(ctx context.Context, barberID string, sub models.Subscription) error

	CreateService(ctx context.Context, svc *models.Service) error
	GetServiceByID(ctx context.Context, serviceID string) (*models.Service, error)
	ListServices(ctx context.Context, barberID string) ([]models.Service, error)
}
