package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseClock(t *testing.T) {
	cases := map[string]int{
		"00:00": 0,
		"09:00": 540,
		"09:30": 570,
		"23:59": 1439,
	}
	for in, want := range cases {
		got, err := ParseClock(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	for _, bad := range []string{"24:00", "09:60", "noon", ""} {
		_, err := ParseClock(bad)
		assert.Error(t, err, bad)
	}
}

func TestFormatClockRoundTrips(t *testing.T) {
	for _, s := range []string{"00:00", "08:05", "12:30", "23:59"} {
		minutes, err := ParseClock(s)
		require.NoError(t, err)
		assert.Equal(t, s, FormatClock(minutes))
	}
}

func TestWeeklyScheduleValidate(t *testing.T) {
	good := WeeklySchedule{
		"monday":   {Open: "09:00", Close: "18:00"},
		"saturday": {Open: "10:00", Close: "14:00"},
	}
	assert.NoError(t, good.Validate())

	assert.Error(t, WeeklySchedule{"funday": {Open: "09:00", Close: "18:00"}}.Validate())
	assert.Error(t, WeeklySchedule{"monday": {Open: "18:00", Close: "09:00"}}.Validate())
	assert.Error(t, WeeklySchedule{"monday": {Open: "09:00", Close: "09:00"}}.Validate())
	assert.Error(t, WeeklySchedule{"monday": {Open: "9am", Close: "18:00"}}.Validate())
}

func TestDayHoursFor(t *testing.T) {
	b := &Barber{
		Schedule: WeeklySchedule{
			"monday": {Open: "09:00", Close: "12:00"},
		},
		BlackoutDates: []string{"2026-03-09"},
	}

	// 2026-03-02 is a Monday.
	hours, ok := b.DayHoursFor("2026-03-02")
	require.True(t, ok)
	assert.Equal(t, DayHours{Open: "09:00", Close: "12:00"}, hours)

	// Tuesday is not in the schedule.
	_, ok = b.DayHoursFor("2026-03-03")
	assert.False(t, ok)

	// The following Monday is blacked out.
	_, ok = b.DayHoursFor("2026-03-09")
	assert.False(t, ok)

	_, ok = b.DayHoursFor("not-a-date")
	assert.False(t, ok)
}
