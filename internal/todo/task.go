package todo

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/christopherklint97/planr/internal/schedule"
	"github.com/google/uuid"
)

type Status string

const (
	Pending    Status = "Pending"
	InProgress Status = "In Progress"
	Completed  Status = "Completed"
)

var statusRank = map[Status]int{Pending: 0, InProgress: 1, Completed: 2}

// Statuses lists every status in lifecycle order.
func Statuses() []Status {
	return []Status{Pending, InProgress, Completed}
}

// ParseStatus accepts the display names plus "in-progress"/"inprogress".
func ParseStatus(s string) (Status, error) {
	v := strings.ToLower(strings.NewReplacer("-", "", "_", "", " ", "").Replace(s))
	for _, st := range Statuses() {
		if v == strings.ToLower(strings.ReplaceAll(string(st), " ", "")) {
			return st, nil
		}
	}
	return "", &schedule.ValidationError{Field: "status", Reason: fmt.Sprintf("unknown status %q", s)}
}

// CanMoveTo reports whether the lifecycle allows s → next. Moves only go
// forward; staying put is allowed.
func (s Status) CanMoveTo(next Status) bool {
	from, ok := statusRank[s]
	if !ok {
		return false
	}
	to, ok := statusRank[next]
	if !ok {
		return false
	}
	return to >= from
}

type Priority string

const (
	High   Priority = "High"
	Medium Priority = "Medium"
	Low    Priority = "Low"
)

func ParsePriority(s string) (Priority, error) {
	for _, p := range []Priority{High, Medium, Low} {
		if strings.EqualFold(strings.TrimSpace(s), string(p)) {
			return p, nil
		}
	}
	return "", &schedule.ValidationError{Field: "priority", Reason: fmt.Sprintf("unknown priority %q", s)}
}

// Task is a to-do item with an estimated duration and a deadline date.
type Task struct {
	ID         uuid.UUID
	Owner      string
	Label      string
	Minutes    int
	Deadline   time.Time
	Status     Status
	Priority   Priority
	Reminder   bool
	RemindedOn time.Time
	CreatedAt  time.Time
}

// DaysUntilDeadline counts calendar days from today to the deadline.
func (t Task) DaysUntilDeadline(today time.Time) int {
	return int(Date(t.Deadline).Sub(Date(today)).Hours() / 24)
}

// Date truncates t to its calendar date at UTC midnight.
func Date(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// DueForReminder decides whether a reminder should go out today. Sending
// it is left to the caller.
func DueForReminder(t Task, today time.Time, leadDays int) bool {
	if !t.Reminder || t.Status == Completed {
		return false
	}
	if !t.RemindedOn.IsZero() && Date(t.RemindedOn).Equal(Date(today)) {
		return false
	}
	days := t.DaysUntilDeadline(today)
	return days >= 0 && days <= leadDays
}

// FormatMinutes renders 135 as "2h 15m" and 45 as "45m".
func FormatMinutes(minutes int) string {
	h, m := minutes/60, minutes%60
	if h == 0 {
		return fmt.Sprintf("%dm", m)
	}
	return fmt.Sprintf("%dh %dm", h, m)
}

// ParseMinutes accepts a bare minute count ("90") or an hour/minute form
// ("1h 30m", "2h", "45m").
func ParseMinutes(s string) (int, error) {
	v := strings.ReplaceAll(strings.TrimSpace(s), " ", "")
	if n, err := strconv.Atoi(v); err == nil {
		return n, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil || d%time.Minute != 0 {
		return 0, &schedule.ValidationError{Field: "duration", Reason: fmt.Sprintf("malformed duration %q", s)}
	}
	return int(d.Minutes()), nil
}
