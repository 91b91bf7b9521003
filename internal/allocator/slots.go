package allocator

import (
	"slices"

	"github.com/christopherklint97/planr/internal/schedule"
)

// SlotCandidate is a proposed, unconfirmed start for a task on one day.
type SlotCandidate struct {
	Day     schedule.Weekday `json:"day"`
	Start   schedule.Clock   `json:"start"`
	Minutes int              `json:"minutes"`
}

// End is the exclusive end of the candidate.
func (c SlotCandidate) End() schedule.Clock {
	return c.Start.Add(c.Minutes)
}

// Interval converts the candidate to the interval a commit would book.
func (c SlotCandidate) Interval() schedule.Interval {
	return schedule.Interval{Day: c.Day, Start: c.Start, End: c.End()}
}

// FindFreeSlots sweeps the bookings of day once and returns a candidate at
// the start of every gap that holds minutes, beginning at the afternoon
// boundary or the morning start.
//
// A day with no bookings yields a single candidate at the cursor without
// checking that minutes fit before the window closes. Use
// FindFreeSlotsStrict to get that check.
func FindFreeSlots(day schedule.Weekday, bookings []schedule.Booking, minutes int, window WorkingWindow, preferAfternoon bool) []SlotCandidate {
	return sweep(day, bookings, minutes, window, preferAfternoon, false)
}

// FindFreeSlotsStrict is FindFreeSlots with the empty-day candidate
// dropped when minutes run past the window end.
func FindFreeSlotsStrict(day schedule.Weekday, bookings []schedule.Booking, minutes int, window WorkingWindow, preferAfternoon bool) []SlotCandidate {
	return sweep(day, bookings, minutes, window, preferAfternoon, true)
}

func sweep(day schedule.Weekday, bookings []schedule.Booking, minutes int, window WorkingWindow, preferAfternoon, strict bool) []SlotCandidate {
	cursor := window.start(preferAfternoon)

	if len(bookings) == 0 {
		if strict && int(window.DayEnd-cursor) < minutes {
			return nil
		}
		return []SlotCandidate{{Day: day, Start: cursor, Minutes: minutes}}
	}

	sorted := slices.Clone(bookings)
	schedule.SortBookings(sorted)

	var slots []SlotCandidate
	for _, b := range sorted {
		if int(b.Start-cursor) >= minutes {
			slots = append(slots, SlotCandidate{Day: day, Start: cursor, Minutes: minutes})
		}
		cursor = max(cursor, b.End)
	}

	if int(window.DayEnd-cursor) >= minutes {
		slots = append(slots, SlotCandidate{Day: day, Start: cursor, Minutes: minutes})
	}
	return slots
}
