package booking

import (
	"context"
	"sync"

	barberRepo "barberbook/database/repository/barber"
	bookingRepo "barberbook/database/repository/booking"
	"barberbook/models"
)

// fakeBookingRepo is an in-memory BookingRepository. Create enforces the
// same slotKey exclusivity the Mongo unique index provides, under a mutex,
// so concurrent reservation tests exercise the real contract.
type fakeBookingRepo struct {
	mu       sync.Mutex
	bookings map[string]*models.Booking
	slots    map[string]string // slotKey -> booking id
	failAll  bool              // simulate an unavailable store
}

func newFakeBookingRepo() *fakeBookingRepo {
	return &fakeBookingRepo{
		bookings: make(map[string]*models.Booking),
		slots:    make(map[string]string),
	}
}

func (r *fakeBookingRepo) Create(_ context.Context, booking *models.Booking) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failAll {
		return context.DeadlineExceeded
	}
	if booking.SlotKey != "" {
		if _, taken := r.slots[booking.SlotKey]; taken {
			return bookingRepo.ErrSlotTaken
		}
		r.slots[booking.SlotKey] = booking.ID
	}
	cp := *booking
	r.bookings[booking.ID] = &cp
	return nil
}

func (r *fakeBookingRepo) GetByID(_ context.Context, bookingID string) (*models.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	b, ok := r.bookings[bookingID]
	if !ok {
		return nil, bookingRepo.ErrNotFound
	}
	cp := *b
	return &cp, nil
}

func (r *fakeBookingRepo) ActiveSlotExists(_ context.Context, slotKey string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failAll {
		return false, context.DeadlineExceeded
	}
	_, taken := r.slots[slotKey]
	return taken, nil
}

func (r *fakeBookingRepo) ListByBarberDay(_ context.Context, barberID, date string) ([]models.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.Booking
	for _, b := range r.bookings {
		if b.BarberID == barberID && b.Date == date && b.Status != models.StatusCancelled {
			out = append(out, *b)
		}
	}
	return out, nil
}

func (r *fakeBookingRepo) ListByClient(_ context.Context, clientID string) ([]models.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.Booking
	for _, b := range r.bookings {
		if b.ClientID == clientID {
			out = append(out, *b)
		}
	}
	return out, nil
}

func (r *fakeBookingRepo) CountActiveByClient(_ context.Context, clientID string) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var n int64
	for _, b := range r.bookings {
		if b.ClientID == clientID && isActive(b.Status) {
			n++
		}
	}
	return n, nil
}

func (r *fakeBookingRepo) CountActiveByGuestPhone(_ context.Context, guestPhone, fromDate string) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var n int64
	for _, b := range r.bookings {
		if b.GuestPhone == guestPhone && isActive(b.Status) && b.Date >= fromDate {
			n++
		}
	}
	return n, nil
}

func (r *fakeBookingRepo) CountByBarberBetween(_ context.Context, barberID, fromDate, toDate string) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var n int64
	for _, b := range r.bookings {
		if b.BarberID == barberID && b.Date >= fromDate && b.Date < toDate {
			n++
		}
	}
	return n, nil
}

func (r *fakeBookingRepo) UpdateStatus(_ context.Context, bookingID, fromStatus, toStatus, comment string) (*models.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	b, ok := r.bookings[bookingID]
	if !ok || b.Status != fromStatus {
		return nil, bookingRepo.ErrNotFound
	}
	b.Status = toStatus
	if comment != "" {
		b.Comment = comment
	}
	if toStatus == models.StatusCancelled && b.SlotKey != "" {
		delete(r.slots, b.SlotKey)
		b.SlotKey = ""
	}
	cp := *b
	return &cp, nil
}

func isActive(status string) bool {
	return status == models.StatusPending || status == models.StatusConfirmed
}

// fakeBarberRepo is an in-memory BarberRepository.
type fakeBarberRepo struct {
	mu       sync.Mutex
	barbers  map[string]*models.Barber
	services map[string]*models.Service
}

func newFakeBarberRepo() *fakeBarberRepo {
	return &fakeBarberRepo{
		barbers:  make(map[string]*models.Barber),
		services: make(map[string]*models.Service),
	}
}

func (r *fakeBarberRepo) Create(_ context.Context, barber *models.Barber) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *barber
	r.barbers[barber.ID] = &cp
	return nil
}

func (r *fakeBarberRepo) GetByID(_ context.Context, barberID string) (*models.Barber, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	b, ok := r.barbers[barberID]
	if !ok {
		return nil, barberRepo.ErrNotFound
	}
	cp := *b
	return &cp, nil
}

func (r *fakeBarberRepo) UpdateSchedule(_ context.Context, barberID string, schedule models.WeeklySchedule, blackoutDates []string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	b, ok := r.barbers[barberID]
	if !ok {
		return barberRepo.ErrNotFound
	}
	b.Schedule = schedule
	b.BlackoutDates = blackoutDates
	return nil
}

func (r *fakeBarberRepo) UpdateSubscription(_ context.Context, barberID string, sub models.Subscription) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	b, ok := r.barbers[barberID]
	if !ok {
		return barberRepo.ErrNotFound
	}
	b.Subscription = sub
	return nil
}

func (r *fakeBarberRepo) CreateService(_ context.Context, svc *models.Service) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *svc
	r.services[svc.ID] = &cp
	return nil
}

func (r *fakeBarberRepo) GetServiceByID(_ context.Context, serviceID string) (*models.Service, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.services[serviceID]
	if !ok {
		return nil, barberRepo.ErrNotFound
	}
	cp := *s
	return &cp, nil
}

func (r *fakeBarberRepo) ListServices(_ context.Context, barberID string) ([]models.Service, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.Service
	for _, s := range r.services {
		if s.BarberID == barberID {
			out = append(out, *s)
		}
	}
	return out, nil
}

var _ Notifier = (*recordingNotifier)(nil)

// recordingNotifier captures published events.
type recordingNotifier struct {
	mu     sync.Mutex
	events []models.BookingEvent
}

func (n *recordingNotifier) PublishBookingEvent(_ context.Context, event models.BookingEvent) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.events = append(n.events, event)
	return nil
}

func (n *recordingNotifier) all() []models.BookingEvent {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]models.BookingEvent(nil), n.events...)
}
