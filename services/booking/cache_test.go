package booking

import (
	"context"
	"testing"

	"barberbook/models"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCache(t *testing.T) *redis.Client {
	t.Helper()
	mr := miniredis.RunT(t)
	return redis.NewClient(&redis.Options{Addr: mr.Addr()})
}

func TestFreeSlotsServedFromCache(t *testing.T) {
	svc, bookings, barbers, _ := newTestService()
	svc.Cache = newTestCache(t)

	require.NoError(t, barbers.UpdateSchedule(context.Background(), "barber-1",
		models.WeeklySchedule{"monday": {Open: "09:00", Close: "12:00"}}, nil))

	first, err := svc.FreeSlots(context.Background(), "barber-1", "svc-cut", "2026-03-02")
	require.NoError(t, err)
	assert.Equal(t, []string{"09:00", "09:30", "10:00", "10:30", "11:00"}, first)

	// A booking written behind the service's back is invisible while the
	// cached answer is live.
	direct := &models.Booking{
		ID: "direct-1", BarberID: "barber-1", ServiceID: "svc-cut",
		Date: "2026-03-02", Time: "09:00", DurationMinutes: 60,
		Status:  models.StatusConfirmed,
		SlotKey: SlotKey("barber-1", "2026-03-02", "09:00"),
	}
	require.NoError(t, bookings.Create(context.Background(), direct))

	cached, err := svc.FreeSlots(context.Background(), "barber-1", "svc-cut", "2026-03-02")
	require.NoError(t, err)
	assert.Equal(t, first, cached)
}

func TestReserveInvalidatesSlotCache(t *testing.T) {
	svc, _, barbers, _ := newTestService()
	svc.Cache = newTestCache(t)

	require.NoError(t, barbers.UpdateSchedule(context.Background(), "barber-1",
		models.WeeklySchedule{"monday": {Open: "09:00", Close: "12:00"}}, nil))

	first, err := svc.FreeSlots(context.Background(), "barber-1", "svc-cut", "2026-03-02")
	require.NoError(t, err)
	require.Contains(t, first, "10:00")

	_, err = svc.Reserve(context.Background(), validRequest(), Caller{ID: "client-1"})
	require.NoError(t, err)

	// Reserving dropped the cached entry, so the next read recomputes and
	// the 10:00 hour is gone.
	after, err := svc.FreeSlots(context.Background(), "barber-1", "svc-cut", "2026-03-02")
	require.NoError(t, err)
	assert.Equal(t, []string{"09:00", "11:00"}, after)
}

func TestCancelInvalidatesSlotCache(t *testing.T) {
	svc, _, barbers, _ := newTestService()
	svc.Cache = newTestCache(t)

	require.NoError(t, barbers.UpdateSchedule(context.Background(), "barber-1",
		models.WeeklySchedule{"monday": {Open: "09:00", Close: "12:00"}}, nil))

	created, err := svc.Reserve(context.Background(), validRequest(), Caller{ID: "client-1"})
	require.NoError(t, err)

	taken, err := svc.FreeSlots(context.Background(), "barber-1", "svc-cut", "2026-03-02")
	require.NoError(t, err)
	assert.NotContains(t, taken, "10:00")

	_, err = svc.UpdateStatus(context.Background(), created.ID,
		models.StatusUpdateRequest{Status: models.StatusCancelled}, Caller{ID: "client-1"})
	require.NoError(t, err)

	freed, err := svc.FreeSlots(context.Background(), "barber-1", "svc-cut", "2026-03-02")
	require.NoError(t, err)
	assert.Contains(t, freed, "10:00")
}
