package store

import (
	"context"
	"fmt"

	"github.com/christopherklint97/planr/internal/schedule"
	"github.com/google/uuid"
)

const bookingColumns = `id, owner, label, day, time_from, time_to`

func (db *DB) ListBookings(ctx context.Context, owner string, day schedule.Weekday) ([]schedule.Booking, error) {
	return db.queryBookings(ctx,
		`SELECT `+bookingColumns+` FROM bookings WHERE owner = ? AND day = ? ORDER BY start_minute ASC, label ASC`,
		owner, day.String(),
	)
}

func (db *DB) ListWeek(ctx context.Context, owner string) ([]schedule.Booking, error) {
	return db.queryBookings(ctx,
		`SELECT `+bookingColumns+` FROM bookings WHERE owner = ? ORDER BY start_minute ASC, label ASC`,
		owner,
	)
}

func (db *DB) AddBooking(ctx context.Context, b schedule.Booking) error {
	_, err := db.ExecContext(ctx, db.rebind(
		`INSERT INTO bookings (id, owner, label, day, time_from, time_to, start_minute)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`),
		b.ID.String(), b.Owner, b.Label, b.Day.String(), b.Start.String(), b.End.String(), int(b.Start),
	)
	if err != nil {
		return fmt.Errorf("inserting booking: %w", err)
	}
	return nil
}

func (db *DB) DeleteBookings(ctx context.Context, owner string, day schedule.Weekday, label string) (int, error) {
	result, err := db.ExecContext(ctx, db.rebind(
		`DELETE FROM bookings WHERE owner = ? AND day = ? AND label = ?`),
		owner, day.String(), label,
	)
	if err != nil {
		return 0, fmt.Errorf("deleting bookings: %w", err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("counting deleted bookings: %w", err)
	}
	return int(n), nil
}

func (db *DB) queryBookings(ctx context.Context, query string, args ...any) ([]schedule.Booking, error) {
	rows, err := db.QueryContext(ctx, db.rebind(query), args...)
	if err != nil {
		return nil, fmt.Errorf("querying bookings: %w", err)
	}
	defer rows.Close()

	var bookings []schedule.Booking
	for rows.Next() {
		var id, day, from, to string
		var b schedule.Booking
		if err := rows.Scan(&id, &b.Owner, &b.Label, &day, &from, &to); err != nil {
			return nil, fmt.Errorf("scanning booking: %w", err)
		}

		if b.ID, err = uuid.Parse(id); err != nil {
			return nil, fmt.Errorf("parsing booking id %q: %w", id, err)
		}
		if b.Day, err = schedule.ParseWeekday(day); err != nil {
			return nil, fmt.Errorf("parsing booking %s: %w", id, err)
		}
		if b.Start, err = schedule.ParseClock(from); err != nil {
			return nil, fmt.Errorf("parsing booking %s: %w", id, err)
		}
		if b.End, err = schedule.ParseClock(to); err != nil {
			return nil, fmt.Errorf("parsing booking %s: %w", id, err)
		}

		bookings = append(bookings, b)
	}

	return bookings, rows.Err()
}
