package bookingRepo

import (
	"context"

	"barberbook/models"
)

// BookingRepository is the durable store for reservations. Create is the
// authoritative write: the collection's unique slotKey index is the single
// source of truth for slot exclusivity, and a duplicate-key rejection is
// surfaced as ErrSlotTaken.
type BookingRepository interface {
	Create(ctx context.Context, booking *models.Booking) error
	GetByID(ctx context.Context, bookingID string) (*models.Booking, error)
	// ActiveSlotExists is the advisory pre-check: cheap, race-prone, never
	// the correctness guarantee.
	ActiveSlotExists(ctx context.Context, slotKey string) (bool, error)
	ListByBarberDay(ctx context.Context, barberID, date string) ([]models.Booking, error)
	ListByClient(ctx context.Context, clientID string) ([]models.Booking, error)

	CountActiveByClient(ctx context.Context, clientID string) (int64, error)
	CountActiveByGuestPhone(ctx context.Context, guestPhone, fromDate string) (int64, error)
	CountByBarberBetween(ctx context.Context, barberID, fromDate, toDate string) (int64, error)

	// UpdateStatus moves the booking from fromStatus to toStatus (with an
	// optional comment) and clears slotKey when the new status is cancelled,
	// releasing the slot. The update matches on the current status too, so a
	// transition validated against a stale read fails instead of clobbering
	// a concurrent one; a missed match surfaces as ErrNotFound.
	UpdateStatus(ctx context.Context, bookingID, fromStatus, toStatus, comment string) (*models.Booking, error)
}
