package models

import (
	"fmt"
	"time"
)

// Canonical weekday keys for WeeklySchedule, in display order.
var Weekdays = []string{"monday", "tuesday", "wednesday", "thursday", "friday", "saturday", "sunday"}

// DayHours is a single day's opening interval in "HH:mm" wall-clock time.
type DayHours struct {
	Open  string `bson:"open" json:"open"`
	Close string `bson:"close" json:"close"`
}

// WeeklySchedule maps a weekday key ("monday".."sunday") to its opening
// hours. A missing key means the barber is closed that day.
type WeeklySchedule map[string]DayHours

// Validate checks every entry uses a known weekday key and opens before it closes.
func (ws WeeklySchedule) Validate() error {
	known := map[string]bool{}
	for _, d := range Weekdays {
		known[d] = true
	}
	for day, hours := range ws {
		if !known[day] {
			return fmt.Errorf("unknown weekday %q", day)
		}
		open, err := ParseClock(hours.Open)
		if err != nil {
			return fmt.Errorf("%s: invalid open time %q", day, hours.Open)
		}
		close_, err := ParseClock(hours.Close)
		if err != nil {
			return fmt.Errorf("%s: invalid close time %q", day, hours.Close)
		}
		if open >= close_ {
			return fmt.Errorf("%s: open %q must be before close %q", day, hours.Open, hours.Close)
		}
	}
	return nil
}

// ParseClock converts an "HH:mm" string to minutes from midnight.
func ParseClock(s string) (int, error) {
	t, err := time.Parse("15:04", s)
	if err != nil {
		return 0, err
	}
	return t.Hour()*60 + t.Minute(), nil
}

// FormatClock converts minutes from midnight back to "HH:mm".
func FormatClock(minutes int) string {
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}

// Subscription state values.
const (
	SubscriptionActive  = "active"
	SubscriptionTrial   = "trial"
	SubscriptionExpired = "expired"
)

// Subscription plan tiers.
const (
	PlanBasic = "basic" // capped bookings per calendar month
	PlanPro   = "pro"   // unlimited
)

// Subscription carries a barber's billing state. EndDate is a "YYYY-MM-DD"
// calendar day; gating compares it against today when Status is not active.
type Subscription struct {
	Status  string `bson:"status" json:"status"`
	Plan    string `bson:"plan" json:"plan"`
	EndDate string `bson:"endDate,omitempty" json:"endDate,omitempty"`
}

// Barber is a provider profile. The weekly schedule and blackout dates are
// stored as typed structures, validated at the boundary.
type Barber struct {
	ID            string         `bson:"id" json:"id"`
	Name          string         `bson:"name" json:"name"`
	Phone         string         `bson:"phone,omitempty" json:"phone,omitempty"`
	Schedule      WeeklySchedule `bson:"schedule,omitempty" json:"schedule,omitempty"`
	BlackoutDates []string       `bson:"blackoutDates,omitempty" json:"blackoutDates,omitempty"` // "YYYY-MM-DD" holidays
	Subscription  Subscription   `bson:"subscription" json:"subscription"`
	CreatedAt     time.Time      `bson:"createdAt" json:"createdAt"`
}

// DayHoursFor returns the opening hours for a calendar date, honouring the
// blackout set. ok is false when the barber is closed that day.
func (b *Barber) DayHoursFor(date string) (DayHours, bool) {
	for _, blackout := range b.BlackoutDates {
		if blackout == date {
			return DayHours{}, false
		}
	}
	day, err := time.Parse("2006-01-02", date)
	if err != nil {
		return DayHours{}, false
	}
	// time.Weekday is Sunday==0; Weekdays starts at monday.
	idx := (int(day.Weekday()) + 6) % 7
	hours, ok := b.Schedule[Weekdays[idx]]
	return hours, ok
}
