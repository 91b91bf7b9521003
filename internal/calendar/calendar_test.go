package calendar

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/christopherklint97/planr/internal/schedule"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sample = `BEGIN:VCALENDAR
VERSION:2.0
PRODID:-//test//EN
BEGIN:VEVENT
UID:1
DTSTAMP:20260301T000000Z
SUMMARY:Team sync
DTSTART:20260310T140000
DTEND:20260310T150000
END:VEVENT
BEGIN:VEVENT
UID:2
DTSTAMP:20260301T000000Z
SUMMARY:Holiday
DTSTART;VALUE=DATE:20260311
DTEND;VALUE=DATE:20260312
END:VEVENT
BEGIN:VEVENT
UID:3
DTSTAMP:20260301T000000Z
SUMMARY:Night shift
DTSTART:20260312T220000
DTEND:20260313T060000
END:VEVENT
BEGIN:VEVENT
UID:4
DTSTAMP:20260301T000000Z
SUMMARY:Next month
DTSTART:20260410T100000
DTEND:20260410T110000
END:VEVENT
END:VCALENDAR
`

func crlf(s string) string { return strings.ReplaceAll(s, "\n", "\r\n") }

func TestDecodeAndBlocks(t *testing.T) {
	monday := time.Date(2026, 3, 9, 0, 0, 0, 0, time.Local)

	events, err := Decode(strings.NewReader(crlf(sample)), monday, monday.AddDate(0, 0, 7))
	require.NoError(t, err)
	require.Len(t, events, 2)

	blocks, skipped := Blocks(events)
	require.Len(t, blocks, 1)
	require.Len(t, skipped, 1)
	assert.Equal(t, "Night shift", skipped[0].Summary)
	assert.Equal(t, Block{
		Label:    "Team sync",
		Interval: schedule.Interval{Day: schedule.Tuesday, Start: schedule.NewClock(14, 0), End: schedule.NewClock(15, 0)},
	}, blocks[0])
}

func TestFetchFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "work.ics")
	require.NoError(t, os.WriteFile(path, []byte(crlf(sample)), 0644))

	monday := time.Date(2026, 3, 9, 0, 0, 0, 0, time.Local)
	events, err := Fetch(t.Context(), path, monday, monday.AddDate(0, 0, 7))
	require.NoError(t, err)
	assert.Len(t, events, 2)

	_, err = Fetch(t.Context(), filepath.Join(t.TempDir(), "missing.ics"), monday, monday)
	require.Error(t, err)
}

func TestWeekOf(t *testing.T) {
	want := time.Date(2026, 3, 9, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, want, WeekOf(time.Date(2026, 3, 9, 13, 0, 0, 0, time.UTC)))
	assert.Equal(t, want, WeekOf(time.Date(2026, 3, 15, 23, 0, 0, 0, time.UTC)))
	assert.Equal(t, want.AddDate(0, 0, 7), WeekOf(time.Date(2026, 3, 16, 0, 0, 0, 0, time.UTC)))
}

func TestExport(t *testing.T) {
	bookings := []schedule.Booking{
		{ID: uuid.New(), Owner: "alice", Label: "Standup", Interval: schedule.Interval{Day: schedule.Monday, Start: schedule.NewClock(9, 0), End: schedule.NewClock(9, 15)}},
		{ID: uuid.New(), Owner: "alice", Label: "Gym", Interval: schedule.Interval{Day: schedule.Friday, Start: schedule.NewClock(17, 0), End: schedule.NewClock(18, 0)}},
	}
	anchor := time.Date(2026, 3, 11, 12, 0, 0, 0, time.Local)

	var buf bytes.Buffer
	require.NoError(t, Export(&buf, bookings, anchor))

	out := buf.String()
	assert.Contains(t, out, "FREQ=WEEKLY")
	assert.Contains(t, out, "BYDAY=FR")
	assert.Contains(t, out, "DTSTART:20260309T090000")
	assert.Contains(t, out, bookings[0].ID.String()+"@planr")

	monday := WeekOf(anchor)
	events, err := Decode(&buf, monday, monday.AddDate(0, 0, 7))
	require.NoError(t, err)

	blocks, skipped := Blocks(events)
	assert.Empty(t, skipped)
	require.Len(t, blocks, 2)
	for i, b := range bookings {
		assert.Equal(t, b.Label, blocks[i].Label)
		assert.Equal(t, b.Interval, blocks[i].Interval)
	}
}
