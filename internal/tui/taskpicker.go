package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/christopherklint97/planr/internal/todo"
)

const taskPickerVisible = 15

type taskPickerModel struct {
	tasks    []todo.Task
	filtered []int // indices into tasks
	selected map[int]bool
	cursor   int
	filter   textinput.Model
	done     bool
	canceled bool
}

// TaskPickerResult holds the tasks the user wants slots for.
type TaskPickerResult struct {
	Tasks    []todo.Task
	Canceled bool
}

// TaskPickerApp wraps taskPickerModel for standalone use with tea.NewProgram.
type TaskPickerApp struct {
	picker taskPickerModel
	result *TaskPickerResult
}

// NewTaskPickerApp starts with every task selected.
func NewTaskPickerApp(tasks []todo.Task) *TaskPickerApp {
	return &TaskPickerApp{
		picker: newTaskPicker(tasks),
	}
}

func (a *TaskPickerApp) Init() tea.Cmd {
	return a.picker.Init()
}

func (a *TaskPickerApp) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	m, cmd := a.picker.Update(msg)
	a.picker = m.(taskPickerModel)

	if a.picker.done || a.picker.canceled {
		a.result = a.picker.Result()
		return a, tea.Quit
	}

	return a, cmd
}

func (a *TaskPickerApp) View() string {
	return a.picker.View()
}

func (a *TaskPickerApp) GetResult() *TaskPickerResult {
	return a.result
}

func newTaskPicker(tasks []todo.Task) taskPickerModel {
	ti := textinput.New()
	ti.Placeholder = "Filter tasks..."
	ti.Focus()

	filtered := make([]int, len(tasks))
	selected := make(map[int]bool, len(tasks))
	for i := range tasks {
		filtered[i] = i
		selected[i] = true
	}

	return taskPickerModel{
		tasks:    tasks,
		filtered: filtered,
		selected: selected,
		filter:   ti,
	}
}

func (m taskPickerModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m taskPickerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.String() {
		case "ctrl+c", "esc":
			m.canceled = true
			return m, nil
		case "enter":
			if len(m.selected) > 0 {
				m.done = true
			}
			return m, nil
		case " ":
			if len(m.filtered) > 0 {
				idx := m.filtered[m.cursor]
				if m.selected[idx] {
					delete(m.selected, idx)
				} else {
					m.selected[idx] = true
				}
			}
			return m, nil
		case "up":
			if m.cursor > 0 {
				m.cursor--
			}
			return m, nil
		case "down":
			if m.cursor < len(m.filtered)-1 {
				m.cursor++
			}
			return m, nil
		}
	}

	var cmd tea.Cmd
	prevFilter := m.filter.Value()
	m.filter, cmd = m.filter.Update(msg)

	if m.filter.Value() != prevFilter {
		m.applyFilter()
	}

	return m, cmd
}

func (m *taskPickerModel) applyFilter() {
	query := strings.ToLower(m.filter.Value())
	m.filtered = m.filtered[:0]
	for i, t := range m.tasks {
		if query == "" || strings.Contains(strings.ToLower(t.Label), query) {
			m.filtered = append(m.filtered, i)
		}
	}
	if m.cursor >= len(m.filtered) {
		m.cursor = max(0, len(m.filtered)-1)
	}
}

func (m taskPickerModel) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("Tasks to Schedule"))
	b.WriteString("\n")
	b.WriteString(m.filter.View())
	b.WriteString("\n\n")

	if len(m.filtered) == 0 {
		b.WriteString(dimStyle.Render("  No tasks match filter"))
		b.WriteString("\n")
	} else {
		start := 0
		if m.cursor >= taskPickerVisible {
			start = m.cursor - taskPickerVisible + 1
		}
		end := min(start+taskPickerVisible, len(m.filtered))

		for vi := start; vi < end; vi++ {
			idx := m.filtered[vi]
			t := m.tasks[idx]

			cursor := "  "
			if vi == m.cursor {
				cursor = "> "
			}
			check := "[ ]"
			if m.selected[idx] {
				check = "[x]"
			}

			detail := dimStyle.Render(fmt.Sprintf(" — %s, due %s", todo.FormatMinutes(t.Minutes), t.Deadline.Format("Mon Jan 2")))
			line := fmt.Sprintf("%s%s %s%s", cursor, check, t.Label, detail)
			if vi == m.cursor {
				line = highlightStyle.Render(fmt.Sprintf("%s%s ", cursor, check)) + t.Label + detail
			}
			b.WriteString(line)
			b.WriteString("\n")
		}
	}

	b.WriteString(helpStyle.Render(fmt.Sprintf(
		"\n%d selected — Space: toggle — Enter: confirm — Esc: cancel", len(m.selected))))

	return b.String()
}

// Result keeps the original task order.
func (m taskPickerModel) Result() *TaskPickerResult {
	if m.canceled {
		return &TaskPickerResult{Canceled: true}
	}
	var tasks []todo.Task
	for i, t := range m.tasks {
		if m.selected[i] {
			tasks = append(tasks, t)
		}
	}
	return &TaskPickerResult{Tasks: tasks}
}
