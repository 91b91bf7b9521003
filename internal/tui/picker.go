package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/christopherklint97/planr/internal/allocator"
	"github.com/christopherklint97/planr/internal/schedule"
	"github.com/christopherklint97/planr/internal/todo"
)

// pickStep is one (task, day) pair the user chooses a slot for.
type pickStep struct {
	label      string
	day        schedule.Weekday
	minutes    int
	candidates []allocator.SlotCandidate
}

// PickerResult holds the confirmed selections.
type PickerResult struct {
	Selections []allocator.Selection
	Canceled   bool
}

// PickerApp walks every task/day with candidates and lets the user pick
// one slot or skip. A slot chosen earlier hides overlapping candidates on
// later steps for the same day.
type PickerApp struct {
	steps     []pickStep
	chosen    []*allocator.SlotCandidate
	idx       int
	cursor    int
	reviewing bool
	result    *PickerResult
}

func NewPickerApp(doc allocator.Document) *PickerApp {
	var steps []pickStep
	for _, t := range doc.Tasks {
		for _, d := range t.Days {
			if len(d.Candidates) == 0 {
				continue
			}
			steps = append(steps, pickStep{
				label:      t.Label,
				day:        d.Day,
				minutes:    t.MinutesPerDay,
				candidates: d.Candidates,
			})
		}
	}
	return &PickerApp{
		steps:     steps,
		chosen:    make([]*allocator.SlotCandidate, len(steps)),
		reviewing: len(steps) == 0,
	}
}

func (a *PickerApp) Init() tea.Cmd {
	return nil
}

func (a *PickerApp) GetResult() *PickerResult {
	return a.result
}

// available filters the current step's candidates against earlier picks.
func (a *PickerApp) available() []allocator.SlotCandidate {
	if a.idx >= len(a.steps) {
		return nil
	}
	var taken []allocator.SlotCandidate
	for i := 0; i < a.idx; i++ {
		if a.chosen[i] != nil {
			taken = append(taken, *a.chosen[i])
		}
	}
	return allocator.Exclude(a.steps[a.idx].candidates, taken)
}

func (a *PickerApp) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return a, nil
	}

	if keyMsg.String() == "ctrl+c" {
		a.result = &PickerResult{Canceled: true}
		return a, tea.Quit
	}

	if a.reviewing {
		return a.updateReview(keyMsg)
	}

	options := a.available()
	switch keyMsg.String() {
	case "up", "k":
		if a.cursor > 0 {
			a.cursor--
		}
	case "down", "j":
		if a.cursor < len(options)-1 {
			a.cursor++
		}
	case "enter", " ":
		if len(options) > 0 {
			c := options[a.cursor]
			a.chosen[a.idx] = &c
		}
		a.advance()
	case "s", "n":
		a.chosen[a.idx] = nil
		a.advance()
	case "b", "backspace":
		a.back()
	case "d":
		for i := a.idx; i < len(a.steps); i++ {
			a.chosen[i] = nil
		}
		a.idx = len(a.steps)
		a.reviewing = true
	}
	return a, nil
}

func (a *PickerApp) updateReview(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter", "y":
		a.result = &PickerResult{Selections: a.selections()}
		return a, tea.Quit
	case "b", "backspace":
		if len(a.steps) > 0 {
			a.reviewing = false
			a.back()
		}
	case "q", "esc":
		a.result = &PickerResult{Canceled: true}
		return a, tea.Quit
	}
	return a, nil
}

func (a *PickerApp) advance() {
	a.cursor = 0
	a.idx++
	if a.idx >= len(a.steps) {
		a.reviewing = true
	}
}

func (a *PickerApp) back() {
	if a.idx > 0 {
		a.idx--
	}
	a.chosen[a.idx] = nil
	a.cursor = 0
}

func (a *PickerApp) selections() []allocator.Selection {
	var out []allocator.Selection
	for i, c := range a.chosen {
		if c != nil {
			out = append(out, allocator.Selection{Label: a.steps[i].label, Candidate: *c})
		}
	}
	return out
}

func (a *PickerApp) View() string {
	if a.reviewing {
		return a.reviewView()
	}

	step := a.steps[a.idx]
	var sb strings.Builder

	sb.WriteString(titleStyle.Render("Suggested Schedule"))
	sb.WriteString("\n")
	sb.WriteString(subtitleStyle.Render(fmt.Sprintf("Step %d of %d", a.idx+1, len(a.steps))))
	sb.WriteString("\n")
	sb.WriteString(fmt.Sprintf("Select time for %s on %s (%s)\n\n",
		highlightStyle.Render(step.label), step.day, todo.FormatMinutes(step.minutes)))

	options := a.available()
	if len(options) == 0 {
		sb.WriteString(warningStyle.Render("  Every slot here is taken by an earlier pick"))
		sb.WriteString("\n")
	}
	for i, c := range options {
		prefix := "  "
		if i == a.cursor {
			prefix = "> "
		}
		line := fmt.Sprintf("%s%s - %s", prefix, c.Start, c.End())
		if i == a.cursor {
			line = highlightStyle.Render(line)
		}
		sb.WriteString(line)
		sb.WriteString("\n")
	}

	sb.WriteString(helpStyle.Render("Enter: choose • s: skip • b: back • d: done • Ctrl+C: cancel"))
	return boxStyle.Render(sb.String())
}

func (a *PickerApp) reviewView() string {
	var sb strings.Builder
	sb.WriteString(titleStyle.Render("Add Selected Tasks to Daily Schedule"))
	sb.WriteString("\n")

	sel := a.selections()
	if len(sel) == 0 {
		sb.WriteString(dimStyle.Render("  Nothing selected"))
		sb.WriteString("\n")
	}
	for _, s := range sel {
		sb.WriteString(fmt.Sprintf("  %-10s %s - %s  %s\n",
			s.Candidate.Day, s.Candidate.Start, s.Candidate.End(), s.Label))
	}

	sb.WriteString(helpStyle.Render("Enter: add to schedule • b: back • q: cancel"))
	return boxStyle.Render(sb.String())
}
