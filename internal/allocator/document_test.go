package allocator

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/christopherklint97/planr/internal/schedule"
	"github.com/christopherklint97/planr/internal/todo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDocument(t *testing.T) {
	today := time.Date(2026, 3, 9, 8, 0, 0, 0, time.UTC)
	tasks := []todo.Task{
		{Label: "Later", Minutes: 300, Deadline: todo.Date(today.AddDate(0, 0, 7))},
		{Label: "Sooner", Minutes: 30, Deadline: todo.Date(today.AddDate(0, 0, 2))},
	}
	plan := AllocateWeek(tasks, nil, DefaultWindow(), today, Options{})

	doc := NewDocument("alice", tasks, plan, DefaultWindow(), today)
	assert.Equal(t, "2026-03-09", doc.GeneratedOn)
	require.Len(t, doc.Tasks, 2)
	assert.Equal(t, "Sooner", doc.Tasks[0].Label)
	assert.Equal(t, 2, doc.Tasks[0].DaysUntilDeadline)
	assert.Equal(t, 60, doc.Tasks[1].MinutesPerDay)
	require.Len(t, doc.Tasks[1].Days, 7)
	assert.Equal(t, schedule.Monday, doc.Tasks[1].Days[0].Day)

	out, err := json.Marshal(doc)
	require.NoError(t, err)
	assert.Contains(t, string(out), `"day_start":"09:00 AM"`)
	assert.Contains(t, string(out), `"day":"Monday","candidates":[{"day":"Monday","start":"12:00 PM","minutes":60}]`)
}

func TestSchema(t *testing.T) {
	out, err := json.Marshal(Schema())
	require.NoError(t, err)

	var s map[string]any
	require.NoError(t, json.Unmarshal(out, &s))
	props, ok := s["properties"].(map[string]any)
	require.True(t, ok)
	assert.Contains(t, props, "tasks")
	assert.Contains(t, props, "window")
	assert.Contains(t, string(out), "Wednesday")
	assert.Contains(t, string(out), "(AM|PM)")
}

func TestAutoSelect(t *testing.T) {
	today := time.Date(2026, 3, 9, 8, 0, 0, 0, time.UTC)
	tasks := []todo.Task{
		{Label: "Report", Minutes: 60, Deadline: todo.Date(today.AddDate(0, 0, 1))},
		{Label: "Slides", Minutes: 60, Deadline: todo.Date(today.AddDate(0, 0, 2))},
	}
	week := schedule.GroupWeek([]schedule.Booking{
		booking(schedule.Monday, "01:00 PM", "06:00 PM", "busy"),
		booking(schedule.Wednesday, "01:00 PM", "02:00 PM", "lunch"),
	})
	doc := NewDocument("alice", tasks, AllocateWeek(tasks, week, DefaultWindow(), today, Options{}), DefaultWindow(), today)

	sel := AutoSelect(doc)
	require.Len(t, sel, 8)
	for _, s := range sel[:7] {
		assert.Equal(t, "Report", s.Label)
		assert.Equal(t, schedule.NewClock(12, 0), s.Candidate.Start)
	}
	assert.Equal(t, "Slides", sel[7].Label)
	assert.Equal(t, schedule.Wednesday, sel[7].Candidate.Day)
	assert.Equal(t, schedule.NewClock(14, 0), sel[7].Candidate.Start)
}
