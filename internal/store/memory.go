package store

import (
	"context"
	"slices"
	"sync"

	"github.com/christopherklint97/planr/internal/schedule"
	"github.com/christopherklint97/planr/internal/todo"
)

// Memory keeps bookings and tasks in process memory. Nothing survives a
// restart; it backs tests and dry runs.
type Memory struct {
	mu       sync.RWMutex
	bookings []schedule.Booking
	tasks    []todo.Task
}

func NewMemory() *Memory {
	return &Memory{}
}

func (m *Memory) ListBookings(ctx context.Context, owner string, day schedule.Weekday) ([]schedule.Booking, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return filterBookings(m.bookings, func(b schedule.Booking) bool {
		return b.Owner == owner && b.Day == day
	}), nil
}

func (m *Memory) ListWeek(ctx context.Context, owner string) ([]schedule.Booking, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return filterBookings(m.bookings, func(b schedule.Booking) bool { return b.Owner == owner }), nil
}

func (m *Memory) AddBooking(ctx context.Context, b schedule.Booking) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.bookings = append(m.bookings, b)
	return nil
}

func (m *Memory) DeleteBookings(ctx context.Context, owner string, day schedule.Weekday, label string) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	before := len(m.bookings)
	m.bookings = slices.DeleteFunc(m.bookings, matchBooking(owner, day, label))
	return before - len(m.bookings), nil
}

func (m *Memory) ListTasks(ctx context.Context, owner string) ([]todo.Task, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []todo.Task
	for _, t := range m.tasks {
		if t.Owner == owner {
			out = append(out, t)
		}
	}
	return out, nil
}

func (m *Memory) GetTask(ctx context.Context, owner, label string) (*todo.Task, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if i := indexTask(m.tasks, owner, label); i >= 0 {
		t := m.tasks[i]
		return &t, nil
	}
	return nil, nil
}

func (m *Memory) AddTask(ctx context.Context, t todo.Task) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.tasks = append(m.tasks, t)
	return nil
}

func (m *Memory) UpdateTask(ctx context.Context, t todo.Task) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if i := indexTask(m.tasks, t.Owner, t.Label); i >= 0 {
		m.tasks[i] = t
	}
	return nil
}

func (m *Memory) DeleteTask(ctx context.Context, owner, label string) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	before := len(m.tasks)
	m.tasks = slices.DeleteFunc(m.tasks, func(t todo.Task) bool {
		return t.Owner == owner && t.Label == label
	})
	return before - len(m.tasks), nil
}

func filterBookings(bs []schedule.Booking, keep func(schedule.Booking) bool) []schedule.Booking {
	var out []schedule.Booking
	for _, b := range bs {
		if keep(b) {
			out = append(out, b)
		}
	}
	return out
}

func matchBooking(owner string, day schedule.Weekday, label string) func(schedule.Booking) bool {
	return func(b schedule.Booking) bool {
		return b.Owner == owner && b.Day == day && b.Label == label
	}
}

func indexTask(ts []todo.Task, owner, label string) int {
	return slices.IndexFunc(ts, func(t todo.Task) bool {
		return t.Owner == owner && t.Label == label
	})
}
