package notify

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/gen2brain/beeep"
)

// Reminder is what a notifier is asked to deliver.
type Reminder struct {
	Owner    string
	Label    string
	Deadline time.Time
}

func (r Reminder) Message() string {
	return fmt.Sprintf("Your task '%s' is due on %s. Please complete it soon.", r.Label, r.Deadline.Format("Mon Jan 2"))
}

// Notifier delivers reminders. The planner core only decides whether one
// is due; callers hand the result to a Notifier.
type Notifier interface {
	Remind(ctx context.Context, r Reminder) error
}

// Desktop shows a desktop notification through beeep.
type Desktop struct {
	AppName string
}

func (d Desktop) Remind(ctx context.Context, r Reminder) error {
	title := d.AppName
	if title == "" {
		title = "planr"
	}
	if err := beeep.Notify(title+": task deadline approaching", r.Message(), ""); err != nil {
		return fmt.Errorf("sending desktop notification: %w", err)
	}
	return nil
}

// Log writes reminders to a logger instead of the desktop.
type Log struct {
	Logger *slog.Logger
}

func (l Log) Remind(ctx context.Context, r Reminder) error {
	logger := l.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	logger.Info("reminder", "owner", r.Owner, "task", r.Label, "deadline", r.Deadline.Format(time.DateOnly))
	return nil
}
