package legacy

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/christopherklint97/planr/internal/schedule"
	"github.com/christopherklint97/planr/internal/todo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadBookings(t *testing.T) {
	in := "Time To,Email,Task,Day,Time From\n" +
		"10:00 AM,alice@example.com,Standup,Monday,09:30 AM\n" +
		"03:00 PM,bob@example.com,Gym,Friday,01:00 PM\n"

	got, err := ReadBookings(strings.NewReader(in))
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "alice@example.com", got[0].Owner)
	assert.Equal(t, "Standup", got[0].Label)
	assert.Equal(t, schedule.Interval{Day: schedule.Monday, Start: schedule.NewClock(9, 30), End: schedule.NewClock(10, 0)}, got[0].Interval)
	assert.NotEqual(t, got[0].ID, got[1].ID)

	_, err = ReadBookings(strings.NewReader("Email,Task\nx,y\n"))
	require.ErrorContains(t, err, "missing column")

	_, err = ReadBookings(strings.NewReader("Email,Task,Day,Time From,Time To\nx,y,Someday,09:00 AM,10:00 AM\n"))
	require.ErrorContains(t, err, "line 2")
}

func TestBookingsRoundTrip(t *testing.T) {
	in := []schedule.Booking{
		{Owner: "alice", Label: "Standup, daily", Interval: schedule.Interval{Day: schedule.Tuesday, Start: schedule.NewClock(9, 0), End: schedule.NewClock(9, 15)}},
		{Owner: "alice", Label: "Review", Interval: schedule.Interval{Day: schedule.Sunday, Start: schedule.NewClock(16, 0), End: schedule.NewClock(17, 30)}},
	}

	var buf bytes.Buffer
	require.NoError(t, WriteBookings(&buf, in))
	assert.True(t, strings.HasPrefix(buf.String(), "Email,Task,Day,Time From,Time To\n"))
	assert.Contains(t, buf.String(), "Sunday,04:00 PM,05:30 PM")

	out, err := ReadBookings(&buf)
	require.NoError(t, err)
	require.Len(t, out, len(in))
	for i := range in {
		assert.Equal(t, in[i].Owner, out[i].Owner)
		assert.Equal(t, in[i].Label, out[i].Label)
		assert.Equal(t, in[i].Interval, out[i].Interval)
	}
}

func TestReadTasks(t *testing.T) {
	in := "Email,Task,Deadline,Status,Time Needed,Priority,Reminder\n" +
		"alice,Report,2026-03-14 00:00:00,In Progress,120,High,True\n" +
		"alice,Slides,2026-03-20,Pending,45,Low,False\n"

	got, err := ReadTasks(strings.NewReader(in))
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, time.Date(2026, 3, 14, 0, 0, 0, 0, time.UTC), got[0].Deadline)
	assert.Equal(t, todo.InProgress, got[0].Status)
	assert.Equal(t, 120, got[0].Minutes)
	assert.Equal(t, todo.High, got[0].Priority)
	assert.True(t, got[0].Reminder)
	assert.False(t, got[1].Reminder)

	_, err = ReadTasks(strings.NewReader("Email,Task,Deadline,Status,Time Needed,Priority,Reminder\nalice,x,soon,Pending,5,Low,False\n"))
	require.ErrorIs(t, err, schedule.ErrValidation)
}

func TestTasksRoundTrip(t *testing.T) {
	in := []todo.Task{
		{Owner: "alice", Label: "Report", Minutes: 120, Deadline: time.Date(2026, 3, 14, 0, 0, 0, 0, time.UTC), Status: todo.Completed, Priority: todo.Medium, Reminder: true},
	}

	var buf bytes.Buffer
	require.NoError(t, WriteTasks(&buf, in))
	assert.Contains(t, buf.String(), "alice,Report,2026-03-14,Completed,120,Medium,True")

	out, err := ReadTasks(&buf)
	require.NoError(t, err)
	require.Len(t, out, 1)
	out[0].ID = in[0].ID
	assert.Equal(t, in[0], out[0])
}

func TestEmptyTable(t *testing.T) {
	got, err := ReadTasks(strings.NewReader(""))
	require.NoError(t, err)
	assert.Empty(t, got)
}
