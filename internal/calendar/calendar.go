package calendar

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/christopherklint97/planr/internal/schedule"
	ical "github.com/emersion/go-ical"
)

// Event is a timed calendar event read from an iCalendar source.
type Event struct {
	Summary   string
	StartTime time.Time
	EndTime   time.Time
}

// Fetch reads iCalendar data from a URL or file path and returns timed
// events overlapping [windowStart, windowEnd). All-day and untitled events
// are skipped.
func Fetch(ctx context.Context, source string, windowStart, windowEnd time.Time) ([]Event, error) {
	r, err := openSource(ctx, source)
	if err != nil {
		return nil, err
	}
	defer r.Close()
	return Decode(r, windowStart, windowEnd)
}

func openSource(ctx context.Context, source string) (io.ReadCloser, error) {
	if !strings.HasPrefix(source, "http://") && !strings.HasPrefix(source, "https://") {
		f, err := os.Open(source)
		if err != nil {
			return nil, fmt.Errorf("opening calendar file: %w", err)
		}
		return f, nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, source, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching calendar: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		return nil, fmt.Errorf("calendar fetch returned status %d", resp.StatusCode)
	}
	return resp.Body, nil
}

// Decode parses every calendar in r.
func Decode(r io.Reader, windowStart, windowEnd time.Time) ([]Event, error) {
	dec := ical.NewDecoder(r)
	var events []Event

	for {
		cal, err := dec.Decode()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("parsing calendar: %w", err)
		}

		for _, ev := range cal.Events() {
			if ev.Props.Get(ical.PropDateTimeStart) == nil ||
				ev.Props.Get(ical.PropDateTimeStart).ValueType() == ical.ValueDate {
				continue
			}
			start, err := ev.DateTimeStart(time.Local)
			if err != nil {
				continue
			}
			end, err := ev.DateTimeEnd(time.Local)
			if err != nil {
				continue
			}
			if !start.Before(windowEnd) || !end.After(windowStart) {
				continue
			}
			summary, _ := ev.Props.Text(ical.PropSummary)
			if summary == "" {
				continue
			}
			events = append(events, Event{Summary: summary, StartTime: start, EndTime: end})
		}
	}

	return events, nil
}

// Block is an event reduced to a weekday interval.
type Block struct {
	Label string
	schedule.Interval
}

// Blocks converts events that start and end on the same local day into
// weekday intervals. Events crossing midnight are returned separately.
func Blocks(events []Event) (blocks []Block, skipped []Event) {
	for _, e := range events {
		start, end := e.StartTime.Local(), e.EndTime.Local()
		if start.YearDay() != end.YearDay() || start.Year() != end.Year() {
			skipped = append(skipped, e)
			continue
		}
		blocks = append(blocks, Block{
			Label: e.Summary,
			Interval: schedule.Interval{
				Day:   schedule.WeekdayOf(start),
				Start: schedule.ClockOf(start),
				End:   schedule.ClockOf(end),
			},
		})
	}
	return blocks, skipped
}

// WeekOf returns the Monday at 00:00 of the week containing t.
func WeekOf(t time.Time) time.Time {
	d := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
	return d.AddDate(0, 0, -(int(schedule.WeekdayOf(d)) - int(schedule.Monday)))
}
