package todo

import (
	"cmp"
	"context"
	"fmt"
	"io"
	"log/slog"
	"slices"
	"strings"
	"time"

	"github.com/christopherklint97/planr/internal/schedule"
	"github.com/google/uuid"
)

// Repository is the persistence port for tasks. GetTask returns nil, nil
// when the task does not exist.
type Repository interface {
	ListTasks(ctx context.Context, owner string) ([]Task, error)
	GetTask(ctx context.Context, owner, label string) (*Task, error)
	AddTask(ctx context.Context, t Task) error
	UpdateTask(ctx context.Context, t Task) error
	DeleteTask(ctx context.Context, owner, label string) (int, error)
}

// NewTask is the input to Service.Add.
type NewTask struct {
	Owner    string
	Label    string
	Minutes  int
	Deadline time.Time
	Status   Status
	Priority Priority
	Reminder bool
}

// Update changes a task's status and, when Minutes > 0, its duration.
// An empty Status keeps the current one.
type Update struct {
	Status  Status
	Minutes int
}

type Service struct {
	repo   Repository
	logger *slog.Logger
	Now    func() time.Time
}

func NewService(repo Repository, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Service{repo: repo, logger: logger, Now: time.Now}
}

func (s *Service) Add(ctx context.Context, in NewTask) (Task, error) {
	in.Label = strings.TrimSpace(in.Label)
	if in.Status == "" {
		in.Status = Pending
	}
	if in.Priority == "" {
		in.Priority = Medium
	}
	if err := s.validate(in); err != nil {
		return Task{}, err
	}

	existing, err := s.repo.GetTask(ctx, in.Owner, in.Label)
	if err != nil {
		return Task{}, fmt.Errorf("looking up task: %w", err)
	}
	if existing != nil {
		return Task{}, &schedule.ValidationError{Field: "label", Reason: fmt.Sprintf("task %q already exists", in.Label)}
	}

	t := Task{
		ID:        uuid.New(),
		Owner:     in.Owner,
		Label:     in.Label,
		Minutes:   in.Minutes,
		Deadline:  Date(in.Deadline),
		Status:    in.Status,
		Priority:  in.Priority,
		Reminder:  in.Reminder,
		CreatedAt: s.Now().UTC().Truncate(time.Second),
	}
	if err := s.repo.AddTask(ctx, t); err != nil {
		return Task{}, fmt.Errorf("saving task: %w", err)
	}

	s.logger.Debug("task added", "owner", t.Owner, "label", t.Label, "minutes", t.Minutes, "deadline", t.Deadline.Format(time.DateOnly))
	return t, nil
}

func (s *Service) validate(in NewTask) error {
	if strings.TrimSpace(in.Owner) == "" {
		return &schedule.ValidationError{Field: "owner", Reason: "owner identifier is required"}
	}
	if in.Label == "" {
		return &schedule.ValidationError{Field: "label", Reason: "task name cannot be empty"}
	}
	if in.Minutes <= 0 {
		return &schedule.ValidationError{Field: "duration", Reason: "duration must be positive"}
	}
	if in.Deadline.IsZero() || Date(in.Deadline).Before(Date(s.Now())) {
		return &schedule.ValidationError{Field: "deadline", Reason: "deadline is in the past"}
	}
	if _, ok := statusRank[in.Status]; !ok {
		return &schedule.ValidationError{Field: "status", Reason: fmt.Sprintf("unknown status %q", in.Status)}
	}
	if _, err := ParsePriority(string(in.Priority)); err != nil {
		return err
	}
	return nil
}

func (s *Service) Get(ctx context.Context, owner, label string) (Task, error) {
	t, err := s.repo.GetTask(ctx, owner, strings.TrimSpace(label))
	if err != nil {
		return Task{}, fmt.Errorf("looking up task: %w", err)
	}
	if t == nil {
		return Task{}, &schedule.NotFoundError{Kind: "task", Key: fmt.Sprintf("%q", label)}
	}
	return *t, nil
}

func (s *Service) Update(ctx context.Context, owner, label string, u Update) (Task, error) {
	t, err := s.Get(ctx, owner, label)
	if err != nil {
		return Task{}, err
	}

	if u.Status != "" {
		if !t.Status.CanMoveTo(u.Status) {
			return Task{}, &schedule.ValidationError{
				Field:  "status",
				Reason: fmt.Sprintf("cannot move from %s to %s", t.Status, u.Status),
			}
		}
		t.Status = u.Status
	}
	if u.Minutes < 0 {
		return Task{}, &schedule.ValidationError{Field: "duration", Reason: "duration must be positive"}
	}
	if u.Minutes > 0 {
		t.Minutes = u.Minutes
	}

	if err := s.repo.UpdateTask(ctx, t); err != nil {
		return Task{}, fmt.Errorf("updating task: %w", err)
	}

	s.logger.Debug("task updated", "owner", owner, "label", t.Label, "status", t.Status, "minutes", t.Minutes)
	return t, nil
}

// MarkReminded records that today's reminder went out.
func (s *Service) MarkReminded(ctx context.Context, t Task, on time.Time) error {
	t.RemindedOn = Date(on)
	if err := s.repo.UpdateTask(ctx, t); err != nil {
		return fmt.Errorf("updating task: %w", err)
	}
	return nil
}

func (s *Service) Delete(ctx context.Context, owner, label string) error {
	n, err := s.repo.DeleteTask(ctx, owner, strings.TrimSpace(label))
	if err != nil {
		return fmt.Errorf("deleting task: %w", err)
	}
	if n == 0 {
		return &schedule.NotFoundError{Kind: "task", Key: fmt.Sprintf("%q", label)}
	}
	s.logger.Debug("task deleted", "owner", owner, "label", label)
	return nil
}

// List returns the owner's tasks ordered by deadline, then label.
func (s *Service) List(ctx context.Context, owner string) ([]Task, error) {
	tasks, err := s.repo.ListTasks(ctx, owner)
	if err != nil {
		return nil, fmt.Errorf("listing tasks: %w", err)
	}
	slices.SortStableFunc(tasks, func(a, b Task) int {
		if c := a.Deadline.Compare(b.Deadline); c != 0 {
			return c
		}
		return cmp.Compare(a.Label, b.Label)
	})
	return tasks, nil
}

// Pending returns every task that is not Completed.
func (s *Service) Pending(ctx context.Context, owner string) ([]Task, error) {
	tasks, err := s.List(ctx, owner)
	if err != nil {
		return nil, err
	}
	return slices.DeleteFunc(tasks, func(t Task) bool { return t.Status == Completed }), nil
}

// Import stores a task read from another system as is. Only the owner,
// label and duration are checked; past deadlines are accepted.
func (s *Service) Import(ctx context.Context, t Task) error {
	t.Label = strings.TrimSpace(t.Label)
	if strings.TrimSpace(t.Owner) == "" || t.Label == "" || t.Minutes <= 0 {
		return &schedule.ValidationError{Field: "task", Reason: fmt.Sprintf("incomplete task %q", t.Label)}
	}
	existing, err := s.repo.GetTask(ctx, t.Owner, t.Label)
	if err != nil {
		return fmt.Errorf("looking up task: %w", err)
	}
	if existing != nil {
		return &schedule.ValidationError{Field: "label", Reason: fmt.Sprintf("task %q already exists", t.Label)}
	}
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	if t.CreatedAt.IsZero() {
		t.CreatedAt = s.Now().UTC().Truncate(time.Second)
	}
	t.Deadline = Date(t.Deadline)
	if err := s.repo.AddTask(ctx, t); err != nil {
		return fmt.Errorf("saving task: %w", err)
	}
	return nil
}
