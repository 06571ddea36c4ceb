// Package availability computes which start times are legally bookable for
// a barber on a given day. It is pure read-path logic: the results improve
// UX by pre-filtering taken or impossible slots, but slot exclusivity is
// enforced by the booking store's unique slotKey index, never here.
package availability

import (
	"time"

	"barberbook/models"
)

const (
	// DefaultGranularityMin is the step between candidate start times.
	DefaultGranularityMin = 30
	// DefaultBufferMin suppresses same-day candidates starting sooner than
	// this many minutes from now.
	DefaultBufferMin = 30
	// fallbackDurationMin is assumed when a booking carries no duration.
	fallbackDurationMin = 30
)

// CandidateSlots emits the ascending start times (minutes from midnight)
// at which a service of the given duration fits inside the day's opening
// hours. A candidate is emitted only if it finishes by closing time. When
// today is true, candidates earlier than now+buffer are suppressed.
func CandidateSlots(hours models.DayHours, durationMin, granularityMin int, now time.Time, today bool, bufferMin int) []int {
	if granularityMin <= 0 {
		granularityMin = DefaultGranularityMin
	}
	if durationMin <= 0 {
		durationMin = fallbackDurationMin
	}

	open, err := models.ParseClock(hours.Open)
	if err != nil {
		return nil
	}
	close_, err := models.ParseClock(hours.Close)
	if err != nil {
		return nil
	}

	earliest := -1
	if today {
		earliest = now.Hour()*60 + now.Minute() + bufferMin
	}

	var candidates []int
	for t := open; t < close_; t += granularityMin {
		if t+durationMin > close_ {
			break
		}
		if t < earliest {
			continue
		}
		candidates = append(candidates, t)
	}
	return candidates
}

// Overlaps reports whether two half-open intervals [startA, startA+durA)
// and [startB, startB+durB) intersect.
func Overlaps(startA, durA, startB, durB int) bool {
	return startA < startB+durB && startA+durA > startB
}

// IsFree reports whether a candidate interval conflicts with none of the
// existing reservations for that day. Cancelled reservations never
// participate; a reservation without duration information is treated
// conservatively as 30 minutes.
func IsFree(candidateStart, candidateDur int, date string, existing []models.Booking) bool {
	for _, b := range existing {
		if b.Date != date || b.Status == models.StatusCancelled {
			continue
		}
		start, err := models.ParseClock(b.Time)
		if err != nil {
			continue
		}
		dur := b.DurationMinutes
		if dur <= 0 {
			dur = fallbackDurationMin
		}
		if Overlaps(candidateStart, candidateDur, start, dur) {
			return false
		}
	}
	return true
}

// FreeSlots composes CandidateSlots and IsFree for one barber/day/service:
// opening hours minus blackout days, stepped by granularity, filtered
// against the day's existing reservations. Returned as "HH:mm" strings in
// ascending order.
func FreeSlots(barber *models.Barber, svc *models.Service, date string, existing []models.Booking, now time.Time, granularityMin, bufferMin int) []string {
	hours, open := barber.DayHoursFor(date)
	if !open {
		return nil
	}
	today := now.Format("2006-01-02") == date

	var free []string
	for _, start := range CandidateSlots(hours, svc.DurationMinutes, granularityMin, now, today, bufferMin) {
		if IsFree(start, svc.DurationMinutes, date, existing) {
			free = append(free, models.FormatClock(start))
		}
	}
	return free
}
