package stats

import (
	"github.com/christopherklint97/planr/internal/schedule"
	"github.com/christopherklint97/planr/internal/todo"
)

// StatusCount is one slice of the task-status breakdown.
type StatusCount struct {
	Status  todo.Status
	Count   int
	Percent float64
}

// StatusCounts tallies tasks per status in lifecycle order. Statuses with
// no tasks are omitted.
func StatusCounts(tasks []todo.Task) []StatusCount {
	counts := make(map[todo.Status]int)
	for _, t := range tasks {
		counts[t.Status]++
	}

	var out []StatusCount
	for _, s := range todo.Statuses() {
		n := counts[s]
		if n == 0 {
			continue
		}
		out = append(out, StatusCount{
			Status:  s,
			Count:   n,
			Percent: 100 * float64(n) / float64(len(tasks)),
		})
	}
	return out
}

// DayHours is the booked time on one weekday.
type DayHours struct {
	Day   schedule.Weekday
	Hours float64
}

// WeeklyHours sums booked hours per weekday, Monday→Sunday, including
// empty days.
func WeeklyHours(week schedule.Week) []DayHours {
	out := make([]DayHours, 0, 7)
	for _, d := range schedule.Weekdays() {
		minutes := 0
		for _, b := range week.Day(d) {
			minutes += b.Minutes()
		}
		out = append(out, DayHours{Day: d, Hours: float64(minutes) / 60})
	}
	return out
}

// TotalHours is the sum over the week.
func TotalHours(days []DayHours) float64 {
	var total float64
	for _, d := range days {
		total += d.Hours
	}
	return total
}
