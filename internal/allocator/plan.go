package allocator

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"time"

	"github.com/christopherklint97/planr/internal/schedule"
	"github.com/christopherklint97/planr/internal/todo"
)

// reviewDays are kept free before a deadline when spreading work.
const reviewDays = 2

// Options tune AllocateWeek.
type Options struct {
	// StrictEmptyDay drops the empty-day candidate when the task does not
	// fit before the window closes.
	StrictEmptyDay bool
}

// Plan maps task label → weekday → candidate slots.
type Plan map[string]map[schedule.Weekday][]SlotCandidate

// MinutesPerDay spreads a task's minutes over the days left before the
// review buffer. With the deadline two days out or closer the whole
// duration is asked for on each day. The result is at least one minute.
func MinutesPerDay(minutes, daysUntilDeadline int) int {
	perDay := minutes
	if daysUntilDeadline > reviewDays {
		perDay = minutes / (daysUntilDeadline - reviewDays)
	}
	return max(perDay, 1)
}

// AllocateWeek proposes slots for every task on every weekday. Afternoon
// slots are preferred; a day with none falls back to morning slots. Tasks
// do not reserve slots against each other.
func AllocateWeek(tasks []todo.Task, week schedule.Week, window WorkingWindow, today time.Time, opts Options) Plan {
	find := FindFreeSlots
	if opts.StrictEmptyDay {
		find = FindFreeSlotsStrict
	}

	plan := make(Plan, len(tasks))
	for _, t := range tasks {
		perDay := MinutesPerDay(t.Minutes, t.DaysUntilDeadline(today))

		days := make(map[schedule.Weekday][]SlotCandidate, 7)
		for _, d := range schedule.Weekdays() {
			slots := find(d, week.Day(d), perDay, window, true)
			if len(slots) == 0 {
				slots = find(d, week.Day(d), perDay, window, false)
			}
			days[d] = slots
		}
		plan[t.Label] = days
	}
	return plan
}

// Exclude drops candidates that overlap an already chosen slot on the same
// day, so one selection cannot be offered twice.
func Exclude(candidates, chosen []SlotCandidate) []SlotCandidate {
	out := make([]SlotCandidate, 0, len(candidates))
	for _, c := range candidates {
		taken := slices.ContainsFunc(chosen, func(o SlotCandidate) bool {
			return c.Interval().Overlaps(o.Interval())
		})
		if !taken {
			out = append(out, c)
		}
	}
	return out
}

// AutoSelect takes the first candidate of every task and day in document
// order, skipping candidates that overlap an earlier pick.
func AutoSelect(doc Document) []Selection {
	var (
		out    []Selection
		chosen []SlotCandidate
	)
	for _, t := range doc.Tasks {
		for _, d := range t.Days {
			free := Exclude(d.Candidates, chosen)
			if len(free) == 0 {
				continue
			}
			chosen = append(chosen, free[0])
			out = append(out, Selection{Label: t.Label, Candidate: free[0]})
		}
	}
	return out
}

// Selection is one confirmed candidate for one task.
type Selection struct {
	Label     string
	Candidate SlotCandidate
}

// Rejection is a selection the store refused with an overlap or
// validation error.
type Rejection struct {
	Selection
	Err error
}

type CommitReport struct {
	Booked   []schedule.Booking
	Rejected []Rejection
}

// Booker is the part of schedule.Store that Commit needs.
type Booker interface {
	Insert(ctx context.Context, owner string, day schedule.Weekday, start, end schedule.Clock, label string) (schedule.Booking, error)
}

// Commit books each selection through the checked insert. Overlap and
// validation failures are reported per selection so the caller can
// re-offer or skip; any other error stops the commit.
func Commit(ctx context.Context, store Booker, owner string, selections []Selection) (CommitReport, error) {
	var report CommitReport
	for _, sel := range selections {
		c := sel.Candidate
		b, err := store.Insert(ctx, owner, c.Day, c.Start, c.End(), sel.Label)
		switch {
		case err == nil:
			report.Booked = append(report.Booked, b)
		case errors.Is(err, schedule.ErrOverlap), errors.Is(err, schedule.ErrValidation):
			report.Rejected = append(report.Rejected, Rejection{Selection: sel, Err: err})
		default:
			return report, fmt.Errorf("committing %q on %s: %w", sel.Label, c.Day, err)
		}
	}
	return report, nil
}
