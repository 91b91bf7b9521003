package allocator

import (
	"testing"

	"github.com/christopherklint97/planr/internal/schedule"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func booking(day schedule.Weekday, start, end string, label string) schedule.Booking {
	return schedule.Booking{
		Label: label,
		Interval: schedule.Interval{
			Day:   day,
			Start: schedule.MustClock(start),
			End:   schedule.MustClock(end),
		},
	}
}

func starts(slots []SlotCandidate) []string {
	out := make([]string, len(slots))
	for i, s := range slots {
		out[i] = s.Start.String()
	}
	return out
}

func TestFindFreeSlots(t *testing.T) {
	w := DefaultWindow()

	t.Run("empty day afternoon", func(t *testing.T) {
		slots := FindFreeSlots(schedule.Monday, nil, 60, w, true)
		require.Len(t, slots, 1)
		assert.Equal(t, SlotCandidate{Day: schedule.Monday, Start: schedule.NewClock(12, 0), Minutes: 60}, slots[0])
	})

	t.Run("empty day morning", func(t *testing.T) {
		slots := FindFreeSlots(schedule.Monday, nil, 60, w, false)
		assert.Equal(t, []string{"09:00 AM"}, starts(slots))
	})

	t.Run("empty day does not check fit", func(t *testing.T) {
		slots := FindFreeSlots(schedule.Monday, nil, 600, w, true)
		require.Len(t, slots, 1)
		assert.Equal(t, "10:00 PM", slots[0].End().String())
	})

	t.Run("strict empty day checks fit", func(t *testing.T) {
		assert.Empty(t, FindFreeSlotsStrict(schedule.Monday, nil, 600, w, true))
		assert.Len(t, FindFreeSlotsStrict(schedule.Monday, nil, 360, w, true), 1)
	})

	t.Run("morning bookings before afternoon cursor", func(t *testing.T) {
		bs := []schedule.Booking{
			booking(schedule.Tuesday, "09:00 AM", "10:00 AM", "a"),
			booking(schedule.Tuesday, "11:00 AM", "12:00 PM", "b"),
		}
		assert.Equal(t, []string{"12:00 PM"}, starts(FindFreeSlots(schedule.Tuesday, bs, 90, w, true)))
		assert.Equal(t, []string{"12:00 PM"}, starts(FindFreeSlots(schedule.Tuesday, bs, 90, w, false)))
		assert.Equal(t, []string{"10:00 AM", "12:00 PM"}, starts(FindFreeSlots(schedule.Tuesday, bs, 60, w, false)))
	})

	t.Run("gaps between afternoon bookings", func(t *testing.T) {
		bs := []schedule.Booking{
			booking(schedule.Wednesday, "04:00 PM", "05:00 PM", "late"),
			booking(schedule.Wednesday, "12:30 PM", "02:00 PM", "lunch"),
		}
		slots := FindFreeSlots(schedule.Wednesday, bs, 30, w, true)
		assert.Equal(t, []string{"12:00 PM", "02:00 PM", "05:00 PM"}, starts(slots))
		for _, s := range slots {
			assert.Equal(t, schedule.Wednesday, s.Day)
			assert.Equal(t, 30, s.Minutes)
		}

		assert.Equal(t, []string{"02:00 PM"}, starts(FindFreeSlots(schedule.Wednesday, bs, 90, w, true)))
	})

	t.Run("nested booking does not move cursor back", func(t *testing.T) {
		bs := []schedule.Booking{
			booking(schedule.Thursday, "12:00 PM", "04:00 PM", "outer"),
			booking(schedule.Thursday, "01:00 PM", "02:00 PM", "inner"),
		}
		assert.Equal(t, []string{"04:00 PM"}, starts(FindFreeSlots(schedule.Thursday, bs, 60, w, true)))
	})

	t.Run("full day", func(t *testing.T) {
		bs := []schedule.Booking{booking(schedule.Friday, "09:00 AM", "06:00 PM", "all")}
		assert.Empty(t, FindFreeSlots(schedule.Friday, bs, 15, w, true))
		assert.Empty(t, FindFreeSlots(schedule.Friday, bs, 15, w, false))
	})

	t.Run("candidates never overlap bookings", func(t *testing.T) {
		bs := []schedule.Booking{
			booking(schedule.Friday, "09:30 AM", "10:15 AM", "a"),
			booking(schedule.Friday, "01:00 PM", "01:20 PM", "b"),
			booking(schedule.Friday, "03:00 PM", "05:30 PM", "c"),
		}
		for _, pm := range []bool{true, false} {
			for _, s := range FindFreeSlots(schedule.Friday, bs, 20, w, pm) {
				for _, b := range bs {
					assert.False(t, s.Interval().Overlaps(b.Interval), "%s overlaps %s", s.Start, b.Label)
				}
				assert.LessOrEqual(t, s.End(), w.DayEnd)
			}
		}
	})

	t.Run("input order is left alone", func(t *testing.T) {
		bs := []schedule.Booking{
			booking(schedule.Friday, "03:00 PM", "04:00 PM", "z"),
			booking(schedule.Friday, "01:00 PM", "02:00 PM", "a"),
		}
		FindFreeSlots(schedule.Friday, bs, 30, w, true)
		assert.Equal(t, "z", bs[0].Label)
	})
}

func TestWindowValidate(t *testing.T) {
	require.NoError(t, DefaultWindow().Validate())

	w := DefaultWindow()
	w.AfternoonStart = w.DayEnd
	assert.ErrorIs(t, w.Validate(), schedule.ErrValidation)
}
