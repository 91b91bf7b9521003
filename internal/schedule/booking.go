package schedule

import (
	"cmp"
	"slices"

	"github.com/google/uuid"
)

// Interval is a half-open [Start, End) span on one weekday.
type Interval struct {
	Day   Weekday `json:"day"`
	Start Clock   `json:"start"`
	End   Clock   `json:"end"`
}

func (iv Interval) Validate() error {
	if !iv.Day.Valid() {
		return &ValidationError{Field: "day", Reason: "weekday out of range"}
	}
	if !iv.Start.Valid() || !iv.End.Valid() {
		return &ValidationError{Field: "time", Reason: "time must fall within one day"}
	}
	if iv.Start >= iv.End {
		return &ValidationError{Field: "time", Reason: "start must be before end"}
	}
	return nil
}

// Overlaps reports whether two intervals on the same day share any instant.
// Touching intervals do not overlap.
func (iv Interval) Overlaps(o Interval) bool {
	if iv.Day != o.Day {
		return false
	}
	return !(iv.End <= o.Start || iv.Start >= o.End)
}

func (iv Interval) Minutes() int {
	return int(iv.End - iv.Start)
}

// Booking is a committed interval reserved for a task by one owner.
type Booking struct {
	ID    uuid.UUID `json:"id"`
	Owner string    `json:"owner"`
	Label string    `json:"label"`
	Interval
}

// Week is a per-day snapshot of an owner's bookings.
type Week map[Weekday][]Booking

// Day returns the bookings for d. A missing day is an empty slice.
func (w Week) Day(d Weekday) []Booking {
	return w[d]
}

// All flattens the week in Monday→Sunday order.
func (w Week) All() []Booking {
	var out []Booking
	for _, d := range Weekdays() {
		out = append(out, w[d]...)
	}
	return out
}

// GroupWeek builds a Week from an unordered booking list.
func GroupWeek(bookings []Booking) Week {
	w := make(Week)
	for _, b := range bookings {
		w[b.Day] = append(w[b.Day], b)
	}
	for d := range w {
		SortBookings(w[d])
	}
	return w
}

// SortBookings orders by start time, then label, in place.
func SortBookings(bs []Booking) {
	slices.SortStableFunc(bs, func(a, b Booking) int {
		if c := cmp.Compare(a.Start, b.Start); c != 0 {
			return c
		}
		return cmp.Compare(a.Label, b.Label)
	})
}
