package store

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"sync"
	"time"

	"github.com/christopherklint97/planr/internal/schedule"
	"github.com/christopherklint97/planr/internal/todo"
	"github.com/google/uuid"
)

// File stores everything in one JSON document. Every write reads the whole
// document, changes it, and replaces the file atomically (tmp + rename).
type File struct {
	path string
	mu   sync.Mutex
}

type fileDocument struct {
	Bookings []fileBooking `json:"bookings"`
	Tasks    []fileTask    `json:"tasks"`
}

type fileBooking struct {
	ID    uuid.UUID        `json:"id"`
	Owner string           `json:"owner"`
	Label string           `json:"label"`
	Day   schedule.Weekday `json:"day"`
	From  schedule.Clock   `json:"time_from"`
	To    schedule.Clock   `json:"time_to"`
}

type fileTask struct {
	ID         uuid.UUID     `json:"id"`
	Owner      string        `json:"owner"`
	Label      string        `json:"label"`
	Deadline   string        `json:"deadline"`
	Status     todo.Status   `json:"status"`
	Minutes    int           `json:"minutes"`
	Priority   todo.Priority `json:"priority"`
	Reminder   bool          `json:"reminder"`
	RemindedOn string        `json:"reminded_on,omitempty"`
	CreatedAt  time.Time     `json:"created_at"`
}

func NewFile(path string) *File {
	return &File{path: path}
}

// DefaultFilePath is ~/.config/planr/planr.json.
func DefaultFilePath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("finding home directory: %w", err)
	}
	return filepath.Join(home, ".config", "planr", "planr.json"), nil
}

func (f *File) load() (*fileDocument, error) {
	var doc fileDocument
	data, err := os.ReadFile(f.path)
	if err != nil {
		if os.IsNotExist(err) {
			return &doc, nil
		}
		return nil, fmt.Errorf("reading store file: %w", err)
	}
	if len(data) == 0 {
		return &doc, nil
	}
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parsing store file: %w", err)
	}
	return &doc, nil
}

func (f *File) save(doc *fileDocument) error {
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling store: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(f.path), 0755); err != nil {
		return fmt.Errorf("creating data directory: %w", err)
	}

	tmp := f.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0600); err != nil {
		return fmt.Errorf("writing temp store file: %w", err)
	}
	if err := os.Rename(tmp, f.path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("renaming store file: %w", err)
	}
	return nil
}

// read runs fn against a fresh copy of the document.
func (f *File) read(fn func(*fileDocument)) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	doc, err := f.load()
	if err != nil {
		return err
	}
	fn(doc)
	return nil
}

// write runs fn and persists the result. Nothing is written if fn fails.
func (f *File) write(fn func(*fileDocument) error) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	doc, err := f.load()
	if err != nil {
		return err
	}
	if err := fn(doc); err != nil {
		return err
	}
	return f.save(doc)
}

func (f *File) ListBookings(ctx context.Context, owner string, day schedule.Weekday) ([]schedule.Booking, error) {
	var out []schedule.Booking
	err := f.read(func(doc *fileDocument) {
		for _, r := range doc.Bookings {
			if r.Owner == owner && r.Day == day {
				out = append(out, r.booking())
			}
		}
	})
	return out, err
}

func (f *File) ListWeek(ctx context.Context, owner string) ([]schedule.Booking, error) {
	var out []schedule.Booking
	err := f.read(func(doc *fileDocument) {
		for _, r := range doc.Bookings {
			if r.Owner == owner {
				out = append(out, r.booking())
			}
		}
	})
	return out, err
}

func (f *File) AddBooking(ctx context.Context, b schedule.Booking) error {
	return f.write(func(doc *fileDocument) error {
		doc.Bookings = append(doc.Bookings, fileBooking{
			ID: b.ID, Owner: b.Owner, Label: b.Label, Day: b.Day, From: b.Start, To: b.End,
		})
		return nil
	})
}

func (f *File) DeleteBookings(ctx context.Context, owner string, day schedule.Weekday, label string) (int, error) {
	var n int
	err := f.write(func(doc *fileDocument) error {
		before := len(doc.Bookings)
		doc.Bookings = slices.DeleteFunc(doc.Bookings, func(r fileBooking) bool {
			return r.Owner == owner && r.Day == day && r.Label == label
		})
		n = before - len(doc.Bookings)
		return nil
	})
	return n, err
}

func (f *File) ListTasks(ctx context.Context, owner string) ([]todo.Task, error) {
	var out []todo.Task
	err := f.read(func(doc *fileDocument) {
		for _, r := range doc.Tasks {
			if r.Owner == owner {
				out = append(out, r.task())
			}
		}
	})
	return out, err
}

func (f *File) GetTask(ctx context.Context, owner, label string) (*todo.Task, error) {
	var found *todo.Task
	err := f.read(func(doc *fileDocument) {
		for _, r := range doc.Tasks {
			if r.Owner == owner && r.Label == label {
				t := r.task()
				found = &t
				return
			}
		}
	})
	return found, err
}

func (f *File) AddTask(ctx context.Context, t todo.Task) error {
	return f.write(func(doc *fileDocument) error {
		doc.Tasks = append(doc.Tasks, newFileTask(t))
		return nil
	})
}

func (f *File) UpdateTask(ctx context.Context, t todo.Task) error {
	return f.write(func(doc *fileDocument) error {
		for i, r := range doc.Tasks {
			if r.Owner == t.Owner && r.Label == t.Label {
				doc.Tasks[i] = newFileTask(t)
				return nil
			}
		}
		return fmt.Errorf("task %q not stored", t.Label)
	})
}

func (f *File) DeleteTask(ctx context.Context, owner, label string) (int, error) {
	var n int
	err := f.write(func(doc *fileDocument) error {
		before := len(doc.Tasks)
		doc.Tasks = slices.DeleteFunc(doc.Tasks, func(r fileTask) bool {
			return r.Owner == owner && r.Label == label
		})
		n = before - len(doc.Tasks)
		return nil
	})
	return n, err
}

func (r fileBooking) booking() schedule.Booking {
	return schedule.Booking{
		ID:       r.ID,
		Owner:    r.Owner,
		Label:    r.Label,
		Interval: schedule.Interval{Day: r.Day, Start: r.From, End: r.To},
	}
}

func newFileTask(t todo.Task) fileTask {
	r := fileTask{
		ID:        t.ID,
		Owner:     t.Owner,
		Label:     t.Label,
		Deadline:  t.Deadline.Format(time.DateOnly),
		Status:    t.Status,
		Minutes:   t.Minutes,
		Priority:  t.Priority,
		Reminder:  t.Reminder,
		CreatedAt: t.CreatedAt,
	}
	if !t.RemindedOn.IsZero() {
		r.RemindedOn = t.RemindedOn.Format(time.DateOnly)
	}
	return r
}

func (r fileTask) task() todo.Task {
	t := todo.Task{
		ID:        r.ID,
		Owner:     r.Owner,
		Label:     r.Label,
		Status:    r.Status,
		Minutes:   r.Minutes,
		Priority:  r.Priority,
		Reminder:  r.Reminder,
		CreatedAt: r.CreatedAt,
	}
	t.Deadline, _ = time.Parse(time.DateOnly, r.Deadline)
	if r.RemindedOn != "" {
		t.RemindedOn, _ = time.Parse(time.DateOnly, r.RemindedOn)
	}
	return t
}
