package booking

import (
	"context"
	"errors"
	"regexp"
	"time"

	barberRepo "barberbook/database/repository/barber"
	"barberbook/models"
)

var (
	dateRe = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
	timeRe = regexp.MustCompile(`^\d{2}:\d{2}$`)
)

// Limits are the soft business caps the admission rules enforce.
type Limits struct {
	MaxGuestBookings    int // active bookings per guest phone, dated today or later
	MaxActiveBookings   int // active bookings per registered client
	BasicPlanMonthlyCap int // bookings per calendar month on the basic plan
}

// DefaultLimits mirror the product defaults.
func DefaultLimits() Limits {
	return Limits{
		MaxGuestBookings:    2,
		MaxActiveBookings:   3,
		BasicPlanMonthlyCap: 50,
	}
}

// admissionContext gathers everything the rules consult for one request.
// It is computed per request and never persisted.
type admissionContext struct {
	caller Caller
	barber *models.Barber
	svc    *models.Service
}

// validateShape checks identifiers and the date/time wire formats before
// anything touches the store.
func validateShape(req models.BookingRequest) error {
	if req.BarberID == "" || req.ServiceID == "" {
		return NewError(CodeInvalidInput, "barberId and serviceId are required")
	}
	if !dateRe.MatchString(req.Date) {
		return NewError(CodeInvalidInput, "date must be YYYY-MM-DD")
	}
	if _, err := time.Parse("2006-01-02", req.Date); err != nil {
		return NewError(CodeInvalidInput, "invalid date %q", req.Date)
	}
	if !timeRe.MatchString(req.Time) {
		return NewError(CodeInvalidInput, "time must be HH:mm")
	}
	if _, err := models.ParseClock(req.Time); err != nil {
		return NewError(CodeInvalidInput, "invalid time %q", req.Time)
	}
	return nil
}

// resolveEntities loads the barber and service and verifies ownership.
func (s *DefaultBookingService) resolveEntities(ctx context.Context, req models.BookingRequest) (*models.Barber, *models.Service, error) {
	barber, err := s.Barbers.GetByID(ctx, req.BarberID)
	if err != nil {
		if errors.Is(err, barberRepo.ErrNotFound) {
			return nil, nil, NewError(CodeNotFound, "barber %s not found", req.BarberID)
		}
		return nil, nil, NewError(CodeStoreUnavailable, "failed to load barber: %v", err)
	}
	svc, err := s.Barbers.GetServiceByID(ctx, req.ServiceID)
	if err != nil {
		if errors.Is(err, barberRepo.ErrNotFound) {
			return nil, nil, NewError(CodeNotFound, "service %s not found", req.ServiceID)
		}
		return nil, nil, NewError(CodeStoreUnavailable, "failed to load service: %v", err)
	}
	if svc.BarberID != barber.ID {
		return nil, nil, NewError(CodeMismatch, "service %s does not belong to barber %s", svc.ID, barber.ID)
	}
	return barber, svc, nil
}

// checkSubscription gates bookings on the barber's billing state. Skipped
// entirely when the barber is booking their own calendar.
func (s *DefaultBookingService) checkSubscription(ctx context.Context, ac admissionContext, now time.Time) error {
	if ac.caller.ID == ac.barber.ID {
		return nil
	}

	sub := ac.barber.Subscription
	if sub.Status != models.SubscriptionActive {
		expired := sub.Status == models.SubscriptionExpired
		// Dates are YYYY-MM-DD, so a string compare is a calendar compare.
		if !expired && sub.EndDate != "" && sub.EndDate < now.Format("2006-01-02") {
			expired = true
		}
		if expired {
			return NewError(CodeSubscriptionExpired, "barber's subscription has expired")
		}
	}

	if sub.Plan == models.PlanBasic {
		monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
		nextMonth := monthStart.AddDate(0, 1, 0)
		count, err := s.Repo.CountByBarberBetween(ctx, ac.barber.ID,
			monthStart.Format("2006-01-02"), nextMonth.Format("2006-01-02"))
		if err != nil {
			return NewError(CodeStoreUnavailable, "failed to count barber bookings: %v", err)
		}
		if count >= int64(s.Limits.BasicPlanMonthlyCap) {
			return NewError(CodeBarberLimitReached, "barber has reached the monthly booking limit of %d", s.Limits.BasicPlanMonthlyCap)
		}
	}
	return nil
}

// checkCallerQuota throttles the caller: guests by phone, registered
// clients by account. These counts are read-then-act and are deliberately
// not linked to the final insert in one transaction; they are soft limits,
// unlike slot exclusivity.
func (s *DefaultBookingService) checkCallerQuota(ctx context.Context, req models.BookingRequest, caller Caller, now time.Time) error {
	if caller.IsGuest() {
		if req.GuestName == "" || req.GuestPhone == "" {
			return NewError(CodeInvalidInput, "guest bookings require guestName and guestPhone")
		}
		count, err := s.Repo.CountActiveByGuestPhone(ctx, req.GuestPhone, now.Format("2006-01-02"))
		if err != nil {
			return NewError(CodeStoreUnavailable, "failed to count guest bookings: %v", err)
		}
		if count >= int64(s.Limits.MaxGuestBookings) {
			return NewError(CodeMaxGuestBookings, "this phone number already has %d upcoming bookings", count)
		}
		return nil
	}

	count, err := s.Repo.CountActiveByClient(ctx, caller.ID)
	if err != nil {
		return NewError(CodeStoreUnavailable, "failed to count active bookings: %v", err)
	}
	if count >= int64(s.Limits.MaxActiveBookings) {
		return NewError(CodeMaxActiveBookings, "you already have %d active bookings", count)
	}
	return nil
}

// admit runs the full rule chain in order, short-circuiting on the first
// failure. Only after it passes does control reach the authoritative write.
func (s *DefaultBookingService) admit(ctx context.Context, req models.BookingRequest, caller Caller) (*models.Barber, *models.Service, error) {
	if err := validateShape(req); err != nil {
		return nil, nil, err
	}
	barber, svc, err := s.resolveEntities(ctx, req)
	if err != nil {
		return nil, nil, err
	}
	now := s.clock()
	ac := admissionContext{caller: caller, barber: barber, svc: svc}
	if err := s.checkSubscription(ctx, ac, now); err != nil {
		return nil, nil, err
	}
	if err := s.checkCallerQuota(ctx, req, caller, now); err != nil {
		return nil, nil, err
	}
	return barber, svc, nil
}
