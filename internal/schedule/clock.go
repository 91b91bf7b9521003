package schedule

import (
	"fmt"
	"strings"
	"time"
)

// Clock is a time of day expressed as minutes after midnight.
type Clock int

// ClockLayout is the 12-hour form used in stored data and on screen.
const ClockLayout = "03:04 PM"

const minutesPerDay = 24 * 60

var clockLayouts = []string{
	ClockLayout,
	"3:04 PM",
	"03:04PM",
	"3:04PM",
	"15:04",
}

// NewClock returns the Clock for hour:minute in 24-hour terms.
func NewClock(hour, minute int) Clock {
	return Clock(hour*60 + minute)
}

// ParseClock accepts "09:00 AM", "9:00am" or "14:30".
func ParseClock(s string) (Clock, error) {
	v := strings.ToUpper(strings.TrimSpace(s))
	for _, layout := range clockLayouts {
		t, err := time.Parse(layout, v)
		if err == nil {
			return NewClock(t.Hour(), t.Minute()), nil
		}
	}
	return 0, &ValidationError{Field: "time", Reason: fmt.Sprintf("malformed time %q", s)}
}

// MustClock is ParseClock for constants; it panics on bad input.
func MustClock(s string) Clock {
	c, err := ParseClock(s)
	if err != nil {
		panic(err)
	}
	return c
}

func (c Clock) Hour() int   { return int(c) / 60 }
func (c Clock) Minute() int { return int(c) % 60 }

// Add returns the clock moved by the given number of minutes. The result
// is not wrapped past midnight; Valid reports whether it is still in range.
func (c Clock) Add(minutes int) Clock {
	return c + Clock(minutes)
}

// Valid reports whether c falls within a single day.
func (c Clock) Valid() bool {
	return c >= 0 && c < minutesPerDay
}

// On places the clock on the calendar date of d, in d's location.
func (c Clock) On(d time.Time) time.Time {
	return time.Date(d.Year(), d.Month(), d.Day(), c.Hour(), c.Minute(), 0, 0, d.Location())
}

func (c Clock) String() string {
	if !c.Valid() {
		return fmt.Sprintf("+%dmin", int(c))
	}
	return time.Date(0, 1, 1, c.Hour(), c.Minute(), 0, 0, time.UTC).Format(ClockLayout)
}

// ClockOf returns the time of day of t.
func ClockOf(t time.Time) Clock {
	return NewClock(t.Hour(), t.Minute())
}

func (c Clock) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

func (c *Clock) UnmarshalText(b []byte) error {
	v, err := ParseClock(string(b))
	if err != nil {
		return err
	}
	*c = v
	return nil
}
