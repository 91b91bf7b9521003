package todo

import (
	"fmt"
	"strings"
	"time"

	"github.com/christopherklint97/planr/internal/schedule"
	naturaldate "github.com/tj/go-naturaldate"
)

// ParseDeadline accepts an ISO date ("2026-03-14") or a phrase such as
// "next friday" or "in 3 days", resolved forward from now.
func ParseDeadline(s string, now time.Time) (time.Time, error) {
	v := strings.TrimSpace(s)
	if v == "" {
		return time.Time{}, &schedule.ValidationError{Field: "deadline", Reason: "deadline is required"}
	}
	if d, err := time.Parse(time.DateOnly, v); err == nil {
		return d, nil
	}
	switch strings.ToLower(v) {
	case "today":
		return Date(now), nil
	case "tomorrow":
		return Date(now).AddDate(0, 0, 1), nil
	}

	d, err := naturaldate.Parse(v, now, naturaldate.WithDirection(naturaldate.Future))
	if err != nil || d.Equal(now) {
		return time.Time{}, &schedule.ValidationError{Field: "deadline", Reason: fmt.Sprintf("cannot read date %q", s)}
	}
	return Date(d), nil
}
