package allocator

import (
	"fmt"

	"github.com/christopherklint97/planr/internal/schedule"
)

// WorkingWindow bounds the part of each day in which slots are proposed.
type WorkingWindow struct {
	DayStart       schedule.Clock
	DayEnd         schedule.Clock
	AfternoonStart schedule.Clock
}

// DefaultWindow is 09:00 AM – 06:00 PM with the afternoon from 12:00 PM.
func DefaultWindow() WorkingWindow {
	return WorkingWindow{
		DayStart:       schedule.NewClock(9, 0),
		DayEnd:         schedule.NewClock(18, 0),
		AfternoonStart: schedule.NewClock(12, 0),
	}
}

func (w WorkingWindow) Validate() error {
	if !(w.DayStart <= w.AfternoonStart && w.AfternoonStart < w.DayEnd) {
		return &schedule.ValidationError{
			Field:  "window",
			Reason: fmt.Sprintf("need day start <= afternoon start < day end, got %s / %s / %s", w.DayStart, w.AfternoonStart, w.DayEnd),
		}
	}
	return nil
}

func (w WorkingWindow) start(preferAfternoon bool) schedule.Clock {
	if preferAfternoon {
		return w.AfternoonStart
	}
	return w.DayStart
}
