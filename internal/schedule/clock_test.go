package schedule

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseClock(t *testing.T) {
	cases := map[string]Clock{
		"09:00 AM": NewClock(9, 0),
		"9:30 am":  NewClock(9, 30),
		"12:00 PM": NewClock(12, 0),
		"12:15 AM": NewClock(0, 15),
		"06:45PM":  NewClock(18, 45),
		"14:30":    NewClock(14, 30),
	}
	for in, want := range cases {
		got, err := ParseClock(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	for _, bad := range []string{"", "25:00", "9", "noon"} {
		_, err := ParseClock(bad)
		assert.ErrorIs(t, err, ErrValidation, bad)
	}
}

func TestClockString(t *testing.T) {
	assert.Equal(t, "09:05 AM", NewClock(9, 5).String())
	assert.Equal(t, "12:00 PM", NewClock(12, 0).String())
	assert.Equal(t, "11:59 PM", NewClock(23, 59).String())

	text, err := NewClock(13, 30).MarshalText()
	require.NoError(t, err)

	var c Clock
	require.NoError(t, c.UnmarshalText(text))
	assert.Equal(t, NewClock(13, 30), c)
}

func TestClockOn(t *testing.T) {
	day := time.Date(2026, 3, 9, 17, 0, 0, 0, time.UTC)
	assert.Equal(t, time.Date(2026, 3, 9, 14, 30, 0, 0, time.UTC), NewClock(14, 30).On(day))
	assert.Equal(t, NewClock(17, 0), ClockOf(day))
}

func TestWeekday(t *testing.T) {
	for _, in := range []string{"Monday", "monday", "MON", "mon"} {
		d, err := ParseWeekday(in)
		require.NoError(t, err, in)
		assert.Equal(t, Monday, d)
	}

	_, err := ParseWeekday("Funday")
	assert.ErrorIs(t, err, ErrValidation)

	assert.Equal(t, Sunday, WeekdayOf(time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, Monday, WeekdayOf(time.Date(2026, 3, 9, 0, 0, 0, 0, time.UTC)))
	assert.Len(t, Weekdays(), 7)
	assert.False(t, Weekday(0).Valid())
}

func TestIntervalOverlaps(t *testing.T) {
	a := Interval{Day: Monday, Start: NewClock(10, 0), End: NewClock(11, 0)}

	assert.False(t, a.Overlaps(Interval{Day: Monday, Start: NewClock(11, 0), End: NewClock(12, 0)}))
	assert.False(t, a.Overlaps(Interval{Day: Monday, Start: NewClock(9, 0), End: NewClock(10, 0)}))
	assert.True(t, a.Overlaps(Interval{Day: Monday, Start: NewClock(10, 59), End: NewClock(12, 0)}))
	assert.True(t, a.Overlaps(Interval{Day: Monday, Start: NewClock(9, 0), End: NewClock(12, 0)}))
	assert.False(t, a.Overlaps(Interval{Day: Tuesday, Start: NewClock(10, 0), End: NewClock(11, 0)}))
	assert.Equal(t, 60, a.Minutes())
}
