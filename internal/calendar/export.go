package calendar

import (
	"fmt"
	"io"
	"time"

	"github.com/christopherklint97/planr/internal/schedule"
	ical "github.com/emersion/go-ical"
	"github.com/teambition/rrule-go"
)

const floatingLayout = "20060102T150405"

var rruleDays = map[schedule.Weekday]rrule.Weekday{
	schedule.Monday:    rrule.MO,
	schedule.Tuesday:   rrule.TU,
	schedule.Wednesday: rrule.WE,
	schedule.Thursday:  rrule.TH,
	schedule.Friday:    rrule.FR,
	schedule.Saturday:  rrule.SA,
	schedule.Sunday:    rrule.SU,
}

// Export writes the bookings as weekly recurring events, starting in the
// week that contains anchor. Times are floating so the calendar client
// shows them at the same wall-clock time in any zone.
func Export(w io.Writer, bookings []schedule.Booking, anchor time.Time) error {
	cal := ical.NewCalendar()
	cal.Props.SetText(ical.PropVersion, "2.0")
	cal.Props.SetText(ical.PropProductID, "-//planr//weekly schedule//EN")

	monday := WeekOf(anchor)
	stamp := time.Now().UTC()

	for _, b := range bookings {
		date := monday.AddDate(0, 0, int(b.Day)-int(schedule.Monday))

		ev := ical.NewEvent()
		ev.Props.SetText(ical.PropUID, b.ID.String()+"@planr")
		ev.Props.SetDateTime(ical.PropDateTimeStamp, stamp)
		ev.Props.SetText(ical.PropSummary, b.Label)
		ev.Props.Set(floating(ical.PropDateTimeStart, b.Start.On(date)))
		ev.Props.Set(floating(ical.PropDateTimeEnd, b.End.On(date)))
		ev.Props.SetRecurrenceRule(&rrule.ROption{
			Freq:      rrule.WEEKLY,
			Byweekday: []rrule.Weekday{rruleDays[b.Day]},
		})
		cal.Children = append(cal.Children, ev.Component)
	}

	if err := ical.NewEncoder(w).Encode(cal); err != nil {
		return fmt.Errorf("encoding calendar: %w", err)
	}
	return nil
}

func floating(name string, t time.Time) *ical.Prop {
	p := ical.NewProp(name)
	p.Value = t.Format(floatingLayout)
	return p
}
