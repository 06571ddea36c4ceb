package booking

import (
	"context"
	"fmt"
	"testing"

	"barberbook/models"

	"github.com/stretchr/testify/require"
)

func TestReserveRejectsMalformedRequests(t *testing.T) {
	svc, _, _, _ := newTestService()
	caller := Caller{ID: "client-1"}

	cases := []struct {
		name   string
		mutate func(*models.BookingRequest)
	}{
		{"missing barber", func(r *models.BookingRequest) { r.BarberID = "" }},
		{"missing service", func(r *models.BookingRequest) { r.ServiceID = "" }},
		{"date wrong shape", func(r *models.BookingRequest) { r.Date = "02-03-2026" }},
		{"date not a calendar day", func(r *models.BookingRequest) { r.Date = "2026-02-31" }},
		{"time wrong shape", func(r *models.BookingRequest) { r.Time = "9:00" }},
		{"time out of range", func(r *models.BookingRequest) { r.Time = "25:00" }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := validRequest()
			tc.mutate(&req)
			_, err := svc.Reserve(context.Background(), req, caller)
			requireCode(t, err, CodeInvalidInput)
		})
	}
}

func TestReserveUnknownEntities(t *testing.T) {
	svc, _, barbers, _ := newTestService()

	req := validRequest()
	req.BarberID = "barber-missing"
	_, err := svc.Reserve(context.Background(), req, Caller{ID: "client-1"})
	requireCode(t, err, CodeNotFound)

	req = validRequest()
	req.ServiceID = "svc-missing"
	_, err = svc.Reserve(context.Background(), req, Caller{ID: "client-1"})
	requireCode(t, err, CodeNotFound)

	// A real service belonging to a different barber is a mismatch, not a
	// not-found.
	_ = barbers.Create(context.Background(), &models.Barber{
		ID: "barber-2",
		Schedule: models.WeeklySchedule{
			"monday": {Open: "09:00", Close: "18:00"},
		},
		Subscription: models.Subscription{Status: models.SubscriptionActive, Plan: models.PlanPro},
	})
	_ = barbers.CreateService(context.Background(), &models.Service{
		ID: "svc-other", BarberID: "barber-2", Name: "Shave", DurationMinutes: 30, Price: 8,
	})
	req = validRequest()
	req.ServiceID = "svc-other"
	_, err = svc.Reserve(context.Background(), req, Caller{ID: "client-1"})
	requireCode(t, err, CodeMismatch)
}

func TestExpiredSubscriptionBlocksClientsNotOwner(t *testing.T) {
	svc, _, barbers, _ := newTestService()

	// Trial that lapsed yesterday.
	require.NoError(t, barbers.UpdateSubscription(context.Background(), "barber-1",
		models.Subscription{Status: models.SubscriptionTrial, Plan: models.PlanBasic, EndDate: "2026-03-01"}))

	_, err := svc.Reserve(context.Background(), validRequest(), Caller{ID: "client-1"})
	requireCode(t, err, CodeSubscriptionExpired)

	// The barber can still manage their own calendar.
	_, err = svc.Reserve(context.Background(), validRequest(), Caller{ID: "barber-1", Role: models.RoleBarber})
	require.NoError(t, err)
}

func TestExplicitlyExpiredStatusBlocksRegardlessOfEndDate(t *testing.T) {
	svc, _, barbers, _ := newTestService()

	require.NoError(t, barbers.UpdateSubscription(context.Background(), "barber-1",
		models.Subscription{Status: models.SubscriptionExpired, Plan: models.PlanPro, EndDate: "2099-01-01"}))

	_, err := svc.Reserve(context.Background(), validRequest(), Caller{ID: "client-1"})
	requireCode(t, err, CodeSubscriptionExpired)
}

func TestBasicPlanMonthlyCap(t *testing.T) {
	svc, bookings, barbers, _ := newTestService()
	svc.Limits.BasicPlanMonthlyCap = 3

	require.NoError(t, barbers.UpdateSubscription(context.Background(), "barber-1",
		models.Subscription{Status: models.SubscriptionActive, Plan: models.PlanBasic, EndDate: "2026-12-31"}))

	// Fill the month; cancelled bookings still count against the cap.
	for i, date := range []string{"2026-03-05", "2026-03-12", "2026-03-19"} {
		b := &models.Booking{
			ID: fmt.Sprintf("seed-%d", i), BarberID: "barber-1", ServiceID: "svc-cut",
			Date: date, Time: "09:00", Status: models.StatusConfirmed,
			SlotKey: SlotKey("barber-1", date, "09:00"),
		}
		require.NoError(t, bookings.Create(context.Background(), b))
	}
	_, err := svc.UpdateStatus(context.Background(),
		"seed-0", models.StatusUpdateRequest{Status: models.StatusCancelled}, Caller{ID: "barber-1"})
	require.NoError(t, err)

	_, err = svc.Reserve(context.Background(), validRequest(), Caller{ID: "client-1"})
	requireCode(t, err, CodeBarberLimitReached)

	// A booking in a different month does not count.
	svc.Limits.BasicPlanMonthlyCap = 4
	april := &models.Booking{
		ID: "seed-april", BarberID: "barber-1", ServiceID: "svc-cut",
		Date: "2026-04-01", Time: "09:00", Status: models.StatusConfirmed,
		SlotKey: SlotKey("barber-1", "2026-04-01", "09:00"),
	}
	require.NoError(t, bookings.Create(context.Background(), april))
	_, err = svc.Reserve(context.Background(), validRequest(), Caller{ID: "client-1"})
	require.NoError(t, err)
}

func TestGuestBookingQuota(t *testing.T) {
	svc, _, _, _ := newTestService()

	book := func(bookingTime string) error {
		req := validRequest()
		req.Time = bookingTime
		req.GuestName = "Rashad"
		req.GuestPhone = "+994500000000"
		_, err := svc.Reserve(context.Background(), req, Caller{})
		return err
	}

	require.NoError(t, book("09:00"))
	require.NoError(t, book("11:00"))
	requireCode(t, book("13:00"), CodeMaxGuestBookings)

	// A different phone is a different guest.
	req := validRequest()
	req.Time = "13:00"
	req.GuestName = "Samir"
	req.GuestPhone = "+994500000001"
	_, err := svc.Reserve(context.Background(), req, Caller{})
	require.NoError(t, err)
}

func TestGuestRequiresNameAndPhone(t *testing.T) {
	svc, _, _, _ := newTestService()

	req := validRequest()
	req.GuestName = "Rashad"
	_, err := svc.Reserve(context.Background(), req, Caller{})
	requireCode(t, err, CodeInvalidInput)

	req = validRequest()
	req.GuestPhone = "+994500000000"
	_, err = svc.Reserve(context.Background(), req, Caller{})
	requireCode(t, err, CodeInvalidInput)
}

func TestClientActiveBookingQuota(t *testing.T) {
	svc, _, _, _ := newTestService()
	caller := Caller{ID: "client-1", Role: models.RoleClient}

	book := func(bookingTime string) (*models.Booking, error) {
		req := validRequest()
		req.Time = bookingTime
		return svc.Reserve(context.Background(), req, caller)
	}

	var last *models.Booking
	for _, tm := range []string{"09:00", "10:00", "11:00"} {
		b, err := book(tm)
		require.NoError(t, err)
		last = b
	}
	_, err := book("12:00")
	requireCode(t, err, CodeMaxActiveBookings)

	// Cancelling frees quota; the next reservation is admitted.
	_, err = svc.UpdateStatus(context.Background(),
		last.ID, models.StatusUpdateRequest{Status: models.StatusCancelled}, caller)
	require.NoError(t, err)

	_, err = book("12:00")
	require.NoError(t, err)
}
