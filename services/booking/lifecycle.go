package booking

import (
	"context"
	"errors"

	bookingRepo "barberbook/database/repository/booking"
	"barberbook/models"
)

// transitions is the status state machine. Missing keys are terminal.
var transitions = map[string][]string{
	models.StatusPending:   {models.StatusConfirmed, models.StatusCancelled},
	models.StatusConfirmed: {models.StatusCompleted, models.StatusCancelled, models.StatusNoShow},
}

// CanTransition reports whether from -> to is a legal status move.
func CanTransition(from, to string) bool {
	for _, next := range transitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// UpdateStatus applies a lifecycle transition. The owning barber may make
// any legal move and attach a comment; the owning client may only cancel;
// everyone else is rejected. Cancelling releases the slot (the store clears
// slotKey in the same update).
func (s *DefaultBookingService) UpdateStatus(ctx context.Context, bookingID string, req models.StatusUpdateRequest, caller Caller) (*models.Booking, error) {
	if bookingID == "" {
		return nil, NewError(CodeInvalidInput, "booking id is required")
	}
	switch req.Status {
	case models.StatusConfirmed, models.StatusCancelled, models.StatusCompleted, models.StatusNoShow:
	default:
		return nil, NewError(CodeInvalidInput, "unknown status %q", req.Status)
	}

	current, err := s.Repo.GetByID(ctx, bookingID)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrNotFound) {
			return nil, NewError(CodeNotFound, "booking %s not found", bookingID)
		}
		return nil, NewError(CodeStoreUnavailable, "failed to load booking: %v", err)
	}

	isOwningBarber := !caller.IsGuest() && caller.ID == current.BarberID
	isOwningClient := !caller.IsGuest() && caller.ID == current.ClientID && current.ClientID != ""
	switch {
	case isOwningBarber:
		// any legal move, comment allowed
	case isOwningClient:
		if req.Status != models.StatusCancelled {
			return nil, NewError(CodeForbidden, "clients may only cancel their bookings")
		}
	default:
		return nil, NewError(CodeForbidden, "not allowed to modify this booking")
	}

	if !CanTransition(current.Status, req.Status) {
		return nil, NewError(CodeInvalidInput, "cannot move booking from %s to %s", current.Status, req.Status)
	}

	comment := ""
	if isOwningBarber {
		comment = req.Comment
	}
	updated, err := s.Repo.UpdateStatus(ctx, bookingID, current.Status, req.Status, comment)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrNotFound) {
			// The compare-and-swap missed: either the booking is gone or a
			// concurrent update moved it off the status we validated.
			if latest, gerr := s.Repo.GetByID(ctx, bookingID); gerr == nil {
				return nil, NewError(CodeInvalidInput, "booking already moved to %s, cannot apply %s", latest.Status, req.Status)
			}
			return nil, NewError(CodeNotFound, "booking %s not found", bookingID)
		}
		return nil, NewError(CodeStoreUnavailable, "failed to update booking: %v", err)
	}

	if req.Status == models.StatusCancelled {
		s.invalidateSlotCache(ctx, updated.BarberID, updated.Date)
	}
	s.emitEvent(ctx, "status_changed", updated)
	return updated, nil
}
