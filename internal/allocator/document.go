package allocator

import (
	"reflect"
	"slices"
	"time"

	"github.com/christopherklint97/planr/internal/schedule"
	"github.com/christopherklint97/planr/internal/todo"
	"github.com/invopop/jsonschema"
)

// Document is the machine-readable form of a Plan printed by
// `planr suggest --json`.
type Document struct {
	Owner       string     `json:"owner" jsonschema:"description=Owner identifier the plan was computed for"`
	GeneratedOn string     `json:"generated_on" jsonschema:"format=date"`
	Window      WindowDoc  `json:"window"`
	Tasks       []TaskPlan `json:"tasks"`
}

type WindowDoc struct {
	DayStart       schedule.Clock `json:"day_start"`
	DayEnd         schedule.Clock `json:"day_end"`
	AfternoonStart schedule.Clock `json:"afternoon_start"`
}

type TaskPlan struct {
	Label             string    `json:"label"`
	Deadline          string    `json:"deadline" jsonschema:"format=date"`
	DaysUntilDeadline int       `json:"days_until_deadline"`
	MinutesPerDay     int       `json:"minutes_per_day" jsonschema:"minimum=1"`
	Days              []DayPlan `json:"days"`
}

type DayPlan struct {
	Day        schedule.Weekday `json:"day"`
	Candidates []SlotCandidate  `json:"candidates"`
}

// NewDocument orders a Plan by task deadline and weekday.
func NewDocument(owner string, tasks []todo.Task, plan Plan, window WorkingWindow, today time.Time) Document {
	doc := Document{
		Owner:       owner,
		GeneratedOn: todo.Date(today).Format(time.DateOnly),
		Window: WindowDoc{
			DayStart:       window.DayStart,
			DayEnd:         window.DayEnd,
			AfternoonStart: window.AfternoonStart,
		},
	}

	ordered := slices.Clone(tasks)
	slices.SortStableFunc(ordered, func(a, b todo.Task) int { return a.Deadline.Compare(b.Deadline) })

	for _, t := range ordered {
		days, ok := plan[t.Label]
		if !ok {
			continue
		}
		left := t.DaysUntilDeadline(today)
		tp := TaskPlan{
			Label:             t.Label,
			Deadline:          t.Deadline.Format(time.DateOnly),
			DaysUntilDeadline: left,
			MinutesPerDay:     MinutesPerDay(t.Minutes, left),
		}
		for _, d := range schedule.Weekdays() {
			slots := days[d]
			if slots == nil {
				slots = []SlotCandidate{}
			}
			tp.Days = append(tp.Days, DayPlan{Day: d, Candidates: slots})
		}
		doc.Tasks = append(doc.Tasks, tp)
	}
	return doc
}

// Schema returns the JSON Schema of Document. Clock and Weekday are
// described as the strings they marshal to.
func Schema() *jsonschema.Schema {
	clockType := reflect.TypeOf(schedule.Clock(0))
	dayType := reflect.TypeOf(schedule.Weekday(0))

	r := &jsonschema.Reflector{
		DoNotReference: true,
		Mapper: func(t reflect.Type) *jsonschema.Schema {
			switch t {
			case clockType:
				return &jsonschema.Schema{
					Type:        "string",
					Pattern:     `^(0[1-9]|1[0-2]):[0-5][0-9] (AM|PM)$`,
					Description: "12-hour time of day",
				}
			case dayType:
				var names []any
				for _, d := range schedule.Weekdays() {
					names = append(names, d.String())
				}
				return &jsonschema.Schema{Type: "string", Enum: names}
			}
			return nil
		},
	}
	return r.Reflect(&Document{})
}
