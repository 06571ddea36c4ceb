package booking

import (
	"context"

	"barberbook/models"
	"barberbook/services/notification"
)

// Notifier is what the service publishes lifecycle events to. Aliased here
// so the engine's collaborators are all nameable from one package.
type Notifier = notification.Notifier

// Caller is the verified identity supplied by the auth layer. The zero
// value is an anonymous (guest) caller.
type Caller struct {
	ID   string
	Role string
}

// IsGuest reports whether the caller has no verified identity.
func (c Caller) IsGuest() bool {
	return c.ID == ""
}

// BookingService is the appointment reservation engine: free-slot
// computation on the read path, rule-gated atomic reservation on the write
// path, and the status lifecycle after creation.
type BookingService interface {
	FreeSlots(ctx context.Context, barberID, serviceID, date string) ([]string, error)
	Reserve(ctx context.Context, req models.BookingRequest, caller Caller) (*models.Booking, error)
	BarberDay(ctx context.Context, barberID, date string, caller Caller) ([]models.Booking, []models.PublicBooking, error)
	ListForClient(ctx context.Context, caller Caller) ([]models.Booking, error)
	UpdateStatus(ctx context.Context, bookingID string, req models.StatusUpdateRequest, caller Caller) (*models.Booking, error)
}
