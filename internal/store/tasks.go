package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/christopherklint97/planr/internal/todo"
	"github.com/google/uuid"
)

const taskColumns = `id, owner, label, deadline, status, minutes, priority, reminder, reminded_on, created_at`

func (db *DB) ListTasks(ctx context.Context, owner string) ([]todo.Task, error) {
	return db.queryTasks(ctx,
		`SELECT `+taskColumns+` FROM tasks WHERE owner = ? ORDER BY deadline ASC, label ASC`,
		owner,
	)
}

func (db *DB) GetTask(ctx context.Context, owner, label string) (*todo.Task, error) {
	tasks, err := db.queryTasks(ctx,
		`SELECT `+taskColumns+` FROM tasks WHERE owner = ? AND label = ?`,
		owner, label,
	)
	if err != nil {
		return nil, err
	}
	if len(tasks) == 0 {
		return nil, nil
	}
	return &tasks[0], nil
}

func (db *DB) AddTask(ctx context.Context, t todo.Task) error {
	_, err := db.ExecContext(ctx, db.rebind(
		`INSERT INTO tasks (`+taskColumns+`)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`),
		t.ID.String(), t.Owner, t.Label,
		t.Deadline.Format(time.DateOnly),
		string(t.Status), t.Minutes, string(t.Priority), t.Reminder,
		nullDate(t.RemindedOn),
		t.CreatedAt.UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("inserting task: %w", err)
	}
	return nil
}

func (db *DB) UpdateTask(ctx context.Context, t todo.Task) error {
	_, err := db.ExecContext(ctx, db.rebind(
		`UPDATE tasks SET deadline = ?, status = ?, minutes = ?, priority = ?, reminder = ?, reminded_on = ?
		 WHERE owner = ? AND label = ?`),
		t.Deadline.Format(time.DateOnly), string(t.Status), t.Minutes, string(t.Priority), t.Reminder,
		nullDate(t.RemindedOn),
		t.Owner, t.Label,
	)
	if err != nil {
		return fmt.Errorf("updating task: %w", err)
	}
	return nil
}

func (db *DB) DeleteTask(ctx context.Context, owner, label string) (int, error) {
	result, err := db.ExecContext(ctx, db.rebind(`DELETE FROM tasks WHERE owner = ? AND label = ?`), owner, label)
	if err != nil {
		return 0, fmt.Errorf("deleting task: %w", err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("counting deleted tasks: %w", err)
	}
	return int(n), nil
}

func (db *DB) queryTasks(ctx context.Context, query string, args ...any) ([]todo.Task, error) {
	rows, err := db.QueryContext(ctx, db.rebind(query), args...)
	if err != nil {
		return nil, fmt.Errorf("querying tasks: %w", err)
	}
	defer rows.Close()

	var tasks []todo.Task
	for rows.Next() {
		var t todo.Task
		var id, deadline, status, priority, created string
		var remindedOn sql.NullString

		if err := rows.Scan(
			&id, &t.Owner, &t.Label, &deadline, &status, &t.Minutes, &priority,
			&t.Reminder, &remindedOn, &created,
		); err != nil {
			return nil, fmt.Errorf("scanning task: %w", err)
		}

		if t.ID, err = uuid.Parse(id); err != nil {
			return nil, fmt.Errorf("parsing task id %q: %w", id, err)
		}
		if t.Deadline, err = time.Parse(time.DateOnly, deadline); err != nil {
			return nil, fmt.Errorf("parsing deadline of %q: %w", t.Label, err)
		}
		t.Status = todo.Status(status)
		t.Priority = todo.Priority(priority)

		if remindedOn.Valid {
			if d, err := time.Parse(time.DateOnly, remindedOn.String); err == nil {
				t.RemindedOn = d
			}
		}
		if ts, err := time.Parse(time.RFC3339, created); err == nil {
			t.CreatedAt = ts
		}

		tasks = append(tasks, t)
	}

	return tasks, rows.Err()
}

func nullDate(t time.Time) sql.NullString {
	if t.IsZero() {
		return sql.NullString{}
	}
	return sql.NullString{String: t.Format(time.DateOnly), Valid: true}
}
