package booking

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	barberRepo "barberbook/database/repository/barber"
	bookingRepo "barberbook/database/repository/booking"
	"barberbook/models"
	"barberbook/services/availability"
	"barberbook/utils"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const slotCacheTTL = 30 * time.Second

// DefaultBookingService is the production implementation of BookingService.
// Notifier and Cache are optional: a nil Notifier means no events are
// emitted, a nil Cache disables free-slot caching.
type DefaultBookingService struct {
	Repo     bookingRepo.BookingRepository
	Barbers  barberRepo.BarberRepository
	Notifier Notifier
	Cache    *redis.Client
	Limits   Limits

	Granularity int // minutes between candidate start times
	Buffer      int // same-day lead time in minutes

	// Now overrides the clock in tests; nil means time.Now.
	Now func() time.Time
}

func (s *DefaultBookingService) clock() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

func (s *DefaultBookingService) granularity() int {
	if s.Granularity > 0 {
		return s.Granularity
	}
	return availability.DefaultGranularityMin
}

func (s *DefaultBookingService) buffer() int {
	if s.Buffer > 0 {
		return s.Buffer
	}
	return availability.DefaultBufferMin
}

// SlotKey encodes a (barber, date, time) triple as the uniqueness anchor
// for the store. It deliberately ignores service duration: two
// different-duration services can never double-book the same clock slot.
func SlotKey(barberID, date, startTime string) string {
	return barberID + ":" + date + ":" + startTime
}

// FreeSlots computes the bookable start times for one barber/day/service,
// serving from cache when possible.
func (s *DefaultBookingService) FreeSlots(ctx context.Context, barberID, serviceID, date string) ([]string, error) {
	if barberID == "" || serviceID == "" || !dateRe.MatchString(date) {
		return nil, NewError(CodeInvalidInput, "barberId, serviceId and a YYYY-MM-DD date are required")
	}

	cacheKey := fmt.Sprintf("slots:%s:%s:%s", barberID, serviceID, date)
	if s.Cache != nil {
		if cached, err := s.Cache.Get(ctx, cacheKey).Result(); err == nil {
			var slots []string
			if err := json.Unmarshal([]byte(cached), &slots); err == nil {
				return slots, nil
			}
		}
	}

	barber, svc, err := s.resolveEntities(ctx, models.BookingRequest{BarberID: barberID, ServiceID: serviceID})
	if err != nil {
		return nil, err
	}
	existing, err := s.Repo.ListByBarberDay(ctx, barberID, date)
	if err != nil {
		return nil, NewError(CodeStoreUnavailable, "failed to load bookings: %v", err)
	}

	slots := availability.FreeSlots(barber, svc, date, existing, s.clock(), s.granularity(), s.buffer())

	if s.Cache != nil {
		if payload, err := json.Marshal(slots); err == nil {
			if err := s.Cache.Set(ctx, cacheKey, payload, slotCacheTTL).Err(); err != nil {
				utils.GetLogger().Warn("failed to cache free slots", zap.String("key", cacheKey), zap.Error(err))
			}
		}
	}
	return slots, nil
}

// Reserve turns a reservation request into a durable booking. Admission
// rules gate the attempt; the store's unique slotKey index decides races.
func (s *DefaultBookingService) Reserve(ctx context.Context, req models.BookingRequest, caller Caller) (*models.Booking, error) {
	barber, svc, err := s.admit(ctx, req, caller)
	if err != nil {
		return nil, err
	}

	slotKey := SlotKey(barber.ID, req.Date, req.Time)

	// Advisory check: reject obviously-doomed requests before paying the
	// write. Races that slip past land on the unique index below.
	taken, err := s.Repo.ActiveSlotExists(ctx, slotKey)
	if err != nil {
		return nil, NewError(CodeStoreUnavailable, "failed to check slot: %v", err)
	}
	if taken {
		return nil, NewError(CodeSlotAlreadyBooked, "slot %s on %s is already booked", req.Time, req.Date)
	}

	booking := &models.Booking{
		ID:              uuid.New().String(),
		BarberID:        barber.ID,
		ServiceID:       svc.ID,
		ServiceName:     svc.Name,
		DurationMinutes: svc.DurationMinutes,
		Price:           svc.Price,
		Date:            req.Date,
		Time:            req.Time,
		Status:          models.StatusPending,
		SlotKey:         slotKey,
		Comment:         req.Comment,
		CreatedAt:       s.clock(),
	}
	if caller.IsGuest() {
		booking.GuestName = req.GuestName
		booking.GuestPhone = req.GuestPhone
	} else {
		booking.ClientID = caller.ID
	}

	if err := s.Repo.Create(ctx, booking); err != nil {
		if errors.Is(err, bookingRepo.ErrSlotTaken) {
			return nil, NewError(CodeSlotAlreadyBooked, "slot %s on %s was just taken", req.Time, req.Date)
		}
		return nil, NewError(CodeStoreUnavailable, "failed to create booking: %v", err)
	}

	s.invalidateSlotCache(ctx, barber.ID, req.Date)
	s.emitEvent(ctx, "created", booking)
	return booking, nil
}

// BarberDay returns the day's non-cancelled bookings. The owning barber
// gets the full records; everyone else gets the PII-reduced view.
func (s *DefaultBookingService) BarberDay(ctx context.Context, barberID, date string, caller Caller) ([]models.Booking, []models.PublicBooking, error) {
	if barberID == "" || !dateRe.MatchString(date) {
		return nil, nil, NewError(CodeInvalidInput, "barberId and a YYYY-MM-DD date are required")
	}
	bookings, err := s.Repo.ListByBarberDay(ctx, barberID, date)
	if err != nil {
		return nil, nil, NewError(CodeStoreUnavailable, "failed to load bookings: %v", err)
	}
	if caller.ID == barberID {
		return bookings, nil, nil
	}
	public := make([]models.PublicBooking, 0, len(bookings))
	for _, b := range bookings {
		public = append(public, models.ToPublicBooking(b))
	}
	return nil, public, nil
}

// ListForClient returns the caller's own bookings.
func (s *DefaultBookingService) ListForClient(ctx context.Context, caller Caller) ([]models.Booking, error) {
	if caller.IsGuest() {
		return nil, NewError(CodeForbidden, "sign in to list your bookings")
	}
	bookings, err := s.Repo.ListByClient(ctx, caller.ID)
	if err != nil {
		return nil, NewError(CodeStoreUnavailable, "failed to load bookings: %v", err)
	}
	return bookings, nil
}

// invalidateSlotCache drops all cached slot lists for a barber/day. Key
// layout is slots:{barber}:{service}:{date}; the service segment is
// wildcarded. SCAN keeps the walk incremental instead of blocking the
// server the way KEYS would.
func (s *DefaultBookingService) invalidateSlotCache(ctx context.Context, barberID, date string) {
	if s.Cache == nil {
		return
	}
	pattern := fmt.Sprintf("slots:%s:*:%s", barberID, date)
	var keys []string
	iter := s.Cache.Scan(ctx, 0, pattern, 100).Iterator()
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		utils.GetLogger().Warn("failed to scan slot cache", zap.String("pattern", pattern), zap.Error(err))
		return
	}
	if len(keys) > 0 {
		if err := s.Cache.Del(ctx, keys...).Err(); err != nil {
			utils.GetLogger().Warn("failed to invalidate slot cache", zap.Error(err))
		}
	}
}

// emitEvent pushes a lifecycle event to the barber's dashboard, best
// effort. Failures are logged and swallowed; they never fail the booking.
func (s *DefaultBookingService) emitEvent(ctx context.Context, eventType string, b *models.Booking) {
	if s.Notifier == nil {
		return
	}
	event := models.BookingEvent{
		Type:      eventType,
		BookingID: b.ID,
		BarberID:  b.BarberID,
		Date:      b.Date,
		Time:      b.Time,
		Status:    b.Status,
		At:        s.clock(),
	}
	if err := s.Notifier.PublishBookingEvent(ctx, event); err != nil {
		utils.GetLogger().Warn("failed to publish booking event",
			zap.String("bookingId", b.ID), zap.String("type", eventType), zap.Error(err))
	}
}
