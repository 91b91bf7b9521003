package tui

import (
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/christopherklint97/planr/internal/allocator"
	"github.com/christopherklint97/planr/internal/schedule"
	"github.com/christopherklint97/planr/internal/todo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	enter = tea.KeyMsg{Type: tea.KeyEnter}
	down  = tea.KeyMsg{Type: tea.KeyDown}
	space = tea.KeyMsg{Type: tea.KeySpace}
)

func key(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func send(m tea.Model, msgs ...tea.Msg) tea.Model {
	for _, msg := range msgs {
		m, _ = m.Update(msg)
	}
	return m
}

func testDocument() allocator.Document {
	today := time.Date(2026, 3, 9, 8, 0, 0, 0, time.UTC)
	tasks := []todo.Task{
		{Label: "Report", Minutes: 60, Deadline: today.AddDate(0, 0, 1)},
		{Label: "Slides", Minutes: 60, Deadline: today.AddDate(0, 0, 2)},
	}
	week := schedule.GroupWeek([]schedule.Booking{
		{Label: "busy", Interval: schedule.Interval{Day: schedule.Monday, Start: schedule.NewClock(13, 0), End: schedule.NewClock(18, 0)}},
	})
	for _, d := range schedule.Weekdays()[1:] {
		week[d] = []schedule.Booking{{Label: "full", Interval: schedule.Interval{Day: d, Start: schedule.NewClock(9, 0), End: schedule.NewClock(18, 0)}}}
	}
	plan := allocator.AllocateWeek(tasks, week, allocator.DefaultWindow(), today, allocator.Options{})
	return allocator.NewDocument("alice", tasks, plan, allocator.DefaultWindow(), today)
}

func TestPickerExcludesEarlierPicks(t *testing.T) {
	app := NewPickerApp(testDocument())
	require.Len(t, app.steps, 2, "only Monday has room")
	assert.Equal(t, []string{"12:00 PM"}, startsOf(app.available()))

	send(app, enter)
	assert.Empty(t, app.available(), "Slides cannot reuse the 12:00 PM slot")
	assert.Contains(t, app.View(), "taken by an earlier pick")

	send(app, enter)
	require.True(t, app.reviewing)

	_, cmd := app.Update(key("y"))
	require.NotNil(t, cmd)

	res := app.GetResult()
	require.NotNil(t, res)
	assert.False(t, res.Canceled)
	require.Len(t, res.Selections, 1)
	assert.Equal(t, "Report", res.Selections[0].Label)
	assert.Equal(t, schedule.NewClock(12, 0), res.Selections[0].Candidate.Start)
}

func TestPickerSkipBackAndCancel(t *testing.T) {
	app := NewPickerApp(testDocument())

	send(app, key("s"))
	assert.Equal(t, []string{"12:00 PM"}, startsOf(app.available()), "skipped slot stays on offer")

	send(app, key("b"))
	assert.Equal(t, 0, app.idx)

	send(app, key("d"))
	assert.True(t, app.reviewing)
	assert.Contains(t, app.View(), "Nothing selected")

	send(app, key("b"))
	assert.False(t, app.reviewing)

	send(app, tea.KeyMsg{Type: tea.KeyCtrlC})
	require.NotNil(t, app.GetResult())
	assert.True(t, app.GetResult().Canceled)
}

func TestPickerEmptyDocument(t *testing.T) {
	app := NewPickerApp(allocator.Document{})
	assert.True(t, app.reviewing)

	send(app, key("b"), enter)
	require.NotNil(t, app.GetResult())
	assert.Empty(t, app.GetResult().Selections)
}

func TestTaskPicker(t *testing.T) {
	tasks := []todo.Task{{Label: "Report"}, {Label: "Slides"}, {Label: "Reading"}}

	app := NewTaskPickerApp(tasks)
	send(app, down, space, enter)

	res := app.GetResult()
	require.NotNil(t, res)
	require.Len(t, res.Tasks, 2)
	assert.Equal(t, "Report", res.Tasks[0].Label)
	assert.Equal(t, "Reading", res.Tasks[1].Label)

	t.Run("filter", func(t *testing.T) {
		app := NewTaskPickerApp(tasks)
		send(app, key("sli"))
		assert.Equal(t, []int{1}, app.picker.filtered)
		assert.Contains(t, app.View(), "Slides")
	})

	t.Run("cancel", func(t *testing.T) {
		app := NewTaskPickerApp(tasks)
		send(app, tea.KeyMsg{Type: tea.KeyEsc})
		require.NotNil(t, app.GetResult())
		assert.True(t, app.GetResult().Canceled)
	})
}

func TestRender(t *testing.T) {
	doc := testDocument()
	out := RenderPlan(doc)
	assert.Contains(t, out, "Report")
	assert.Contains(t, out, "12:00 PM - 01:00 PM")
	assert.Contains(t, out, "no free slot")

	assert.Contains(t, RenderPlan(allocator.Document{}), "No pending tasks.")
	assert.Contains(t, RenderCommit(allocator.CommitReport{}), "Nothing selected.")
	assert.Equal(t, "ab…", truncate("abcdef", 3))
	assert.Equal(t, "abc", truncate("abc", 3))
}

func startsOf(cs []allocator.SlotCandidate) []string {
	var out []string
	for _, c := range cs {
		out = append(out, c.Start.String())
	}
	return out
}
