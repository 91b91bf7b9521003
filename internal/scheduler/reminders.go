package scheduler

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/christopherklint97/planr/internal/config"
	"github.com/christopherklint97/planr/internal/notify"
	"github.com/christopherklint97/planr/internal/schedule"
	"github.com/christopherklint97/planr/internal/todo"
)

// Scheduler wakes on aligned ticks during work hours and sends reminders
// for tasks whose deadline is close.
type Scheduler struct {
	cfg      *config.Config
	tasks    *todo.Service
	notifier notify.Notifier
	owner    string
	logger   *slog.Logger
	now      func() time.Time
}

func New(cfg *config.Config, tasks *todo.Service, notifier notify.Notifier, owner string, logger *slog.Logger) *Scheduler {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Scheduler{
		cfg:      cfg,
		tasks:    tasks,
		notifier: notifier,
		owner:    owner,
		logger:   logger,
		now:      time.Now,
	}
}

func (s *Scheduler) Run(ctx context.Context) error {
	if err := s.writePID(); err != nil {
		return fmt.Errorf("writing PID file: %w", err)
	}
	defer s.removePID()

	interval := time.Duration(s.cfg.Notifications.CheckIntervalMinutes) * time.Minute

	fmt.Printf("Reminder loop started (interval: %s, hours: %s–%s)\n",
		interval, s.cfg.Notifications.WorkStart, s.cfg.Notifications.WorkEnd)

	if s.isWorkTime(s.now()) {
		s.check(ctx)
	}

	for {
		nextTick := nextAlignedTick(s.now(), interval)
		s.logger.Debug("waiting for next check", "at", nextTick.Format("15:04"))

		select {
		case <-ctx.Done():
			fmt.Println("\nReminder loop stopped.")
			return nil
		case <-time.After(time.Until(nextTick)):
		}

		if !s.isWorkTime(s.now()) {
			continue
		}
		s.check(ctx)
	}
}

func (s *Scheduler) check(ctx context.Context) {
	sent, err := s.Check(ctx)
	if err != nil {
		s.logger.Error("reminder check failed", "error", err)
		return
	}
	if sent > 0 {
		fmt.Printf("Sent %d reminder(s)\n", sent)
	}
}

// Check sends every reminder that is due now and records it on the task.
// It returns how many were sent.
func (s *Scheduler) Check(ctx context.Context) (int, error) {
	tasks, err := s.tasks.List(ctx, s.owner)
	if err != nil {
		return 0, err
	}

	today := s.now()
	sent := 0
	for _, t := range tasks {
		if !todo.DueForReminder(t, today, s.cfg.Notifications.LeadDays) {
			continue
		}

		r := notify.Reminder{Owner: t.Owner, Label: t.Label, Deadline: t.Deadline}
		if err := s.notifier.Remind(ctx, r); err != nil {
			s.logger.Warn("reminder not delivered", "task", t.Label, "error", err)
			continue
		}
		if err := s.tasks.MarkReminded(ctx, t, today); err != nil {
			return sent, fmt.Errorf("recording reminder for %q: %w", t.Label, err)
		}

		s.logger.Info("reminder sent", "task", t.Label, "deadline", t.Deadline.Format(time.DateOnly))
		sent++
	}
	return sent, nil
}

func nextAlignedTick(now time.Time, interval time.Duration) time.Time {
	mins := int(interval.Minutes())
	if mins <= 0 {
		mins = 60
	}

	currentMinute := now.Minute()
	nextMinute := ((currentMinute / mins) + 1) * mins

	next := time.Date(now.Year(), now.Month(), now.Day(), now.Hour(), 0, 0, 0, now.Location())
	return next.Add(time.Duration(nextMinute) * time.Minute)
}

func (s *Scheduler) isWorkTime(t time.Time) bool {
	n := s.cfg.Notifications
	if !slices.Contains(n.WorkDays, int(schedule.WeekdayOf(t))) {
		return false
	}

	start, err := schedule.ParseClock(n.WorkStart)
	if err != nil {
		start = schedule.NewClock(9, 0)
	}
	end, err := schedule.ParseClock(n.WorkEnd)
	if err != nil {
		end = schedule.NewClock(18, 0)
	}

	now := schedule.ClockOf(t)
	return now >= start && now <= end
}

func pidPath() (string, error) {
	dir, err := config.ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "planr.pid"), nil
}

func (s *Scheduler) writePID() error {
	if err := config.EnsureConfigDir(); err != nil {
		return err
	}
	path, err := pidPath()
	if err != nil {
		return err
	}
	return os.WriteFile(path, []byte(strconv.Itoa(os.Getpid())), 0644)
}

func (s *Scheduler) removePID() {
	if path, err := pidPath(); err == nil {
		os.Remove(path)
	}
}

func ReadPID() (int, error) {
	path, err := pidPath()
	if err != nil {
		return 0, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return 0, fmt.Errorf("no running reminder loop found")
	}

	pid, err := strconv.Atoi(strings.TrimSpace(string(data)))
	if err != nil {
		return 0, fmt.Errorf("invalid PID file")
	}
	return pid, nil
}
