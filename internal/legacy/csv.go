// Package legacy reads and writes the schedule_tasks.csv and todo_tasks.csv
// tables of the earlier planner so existing data can be migrated in and out.
package legacy

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/christopherklint97/planr/internal/schedule"
	"github.com/christopherklint97/planr/internal/todo"
	"github.com/google/uuid"
)

var (
	ScheduleHeader = []string{"Email", "Task", "Day", "Time From", "Time To"}
	TodoHeader     = []string{"Email", "Task", "Deadline", "Status", "Time Needed", "Priority", "Reminder"}
)

type table struct {
	index map[string]int
	rows  [][]string
}

func readTable(r io.Reader, want []string) (*table, error) {
	records, err := csv.NewReader(r).ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading csv: %w", err)
	}
	if len(records) == 0 {
		return &table{}, nil
	}

	t := &table{index: make(map[string]int), rows: records[1:]}
	for i, name := range records[0] {
		t.index[strings.TrimSpace(name)] = i
	}
	for _, name := range want {
		if _, ok := t.index[name]; !ok {
			return nil, fmt.Errorf("csv is missing column %q", name)
		}
	}
	return t, nil
}

func (t *table) get(row []string, col string) string {
	i := t.index[col]
	if i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}

// ReadBookings parses schedule_tasks.csv. Every row gets a fresh ID.
func ReadBookings(r io.Reader) ([]schedule.Booking, error) {
	t, err := readTable(r, ScheduleHeader)
	if err != nil {
		return nil, err
	}

	var out []schedule.Booking
	for n, row := range t.rows {
		line := n + 2
		day, err := schedule.ParseWeekday(t.get(row, "Day"))
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		from, err := schedule.ParseClock(t.get(row, "Time From"))
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		to, err := schedule.ParseClock(t.get(row, "Time To"))
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		out = append(out, schedule.Booking{
			ID:       uuid.New(),
			Owner:    t.get(row, "Email"),
			Label:    t.get(row, "Task"),
			Interval: schedule.Interval{Day: day, Start: from, End: to},
		})
	}
	return out, nil
}

func WriteBookings(w io.Writer, bookings []schedule.Booking) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(ScheduleHeader); err != nil {
		return fmt.Errorf("writing csv: %w", err)
	}
	for _, b := range bookings {
		if err := cw.Write([]string{b.Owner, b.Label, b.Day.String(), b.Start.String(), b.End.String()}); err != nil {
			return fmt.Errorf("writing csv: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// ReadTasks parses todo_tasks.csv. Deadlines may carry a time part, which
// is dropped.
func ReadTasks(r io.Reader) ([]todo.Task, error) {
	t, err := readTable(r, TodoHeader)
	if err != nil {
		return nil, err
	}

	var out []todo.Task
	for n, row := range t.rows {
		line := n + 2
		deadline, err := parseDate(t.get(row, "Deadline"))
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		status, err := todo.ParseStatus(t.get(row, "Status"))
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		minutes, err := todo.ParseMinutes(t.get(row, "Time Needed"))
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		priority, err := todo.ParsePriority(t.get(row, "Priority"))
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		reminder, err := strconv.ParseBool(t.get(row, "Reminder"))
		if err != nil {
			return nil, fmt.Errorf("line %d: invalid reminder flag: %w", line, err)
		}
		out = append(out, todo.Task{
			ID:       uuid.New(),
			Owner:    t.get(row, "Email"),
			Label:    t.get(row, "Task"),
			Minutes:  minutes,
			Deadline: deadline,
			Status:   status,
			Priority: priority,
			Reminder: reminder,
		})
	}
	return out, nil
}

func WriteTasks(w io.Writer, tasks []todo.Task) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(TodoHeader); err != nil {
		return fmt.Errorf("writing csv: %w", err)
	}
	for _, t := range tasks {
		reminder := "False"
		if t.Reminder {
			reminder = "True"
		}
		if err := cw.Write([]string{
			t.Owner, t.Label, t.Deadline.Format(time.DateOnly), string(t.Status),
			strconv.Itoa(t.Minutes), string(t.Priority), reminder,
		}); err != nil {
			return fmt.Errorf("writing csv: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}

func parseDate(s string) (time.Time, error) {
	for _, layout := range []string{time.DateOnly, time.DateTime, "2006-01-02 15:04:05.999999"} {
		if d, err := time.Parse(layout, s); err == nil {
			return todo.Date(d), nil
		}
	}
	return time.Time{}, &schedule.ValidationError{Field: "deadline", Reason: fmt.Sprintf("malformed date %q", s)}
}
