package schedule

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"sync"

	"github.com/google/uuid"
)

// Repository is the persistence port for bookings. Implementations live in
// internal/store; none of them check overlaps.
type Repository interface {
	ListBookings(ctx context.Context, owner string, day Weekday) ([]Booking, error)
	ListWeek(ctx context.Context, owner string) ([]Booking, error)
	AddBooking(ctx context.Context, b Booking) error
	DeleteBookings(ctx context.Context, owner string, day Weekday, label string) (int, error)
}

type partition struct {
	owner string
	day   Weekday
}

// Store is the checked booking API. Writes to one (owner, day) partition
// are serialized so the overlap check and the write cannot interleave.
type Store struct {
	repo   Repository
	logger *slog.Logger

	mu    sync.Mutex
	locks map[partition]*sync.Mutex
}

func NewStore(repo Repository, logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Store{
		repo:   repo,
		logger: logger,
		locks:  make(map[partition]*sync.Mutex),
	}
}

func (s *Store) lock(owner string, day Weekday) func() {
	s.mu.Lock()
	key := partition{owner: owner, day: day}
	l, ok := s.locks[key]
	if !ok {
		l = &sync.Mutex{}
		s.locks[key] = l
	}
	s.mu.Unlock()

	l.Lock()
	return l.Unlock
}

// List returns the owner's bookings for day sorted by start, then label.
func (s *Store) List(ctx context.Context, owner string, day Weekday) ([]Booking, error) {
	if err := validateOwner(owner); err != nil {
		return nil, err
	}
	bookings, err := s.repo.ListBookings(ctx, owner, day)
	if err != nil {
		return nil, fmt.Errorf("listing bookings: %w", err)
	}
	SortBookings(bookings)
	return bookings, nil
}

// Week returns a snapshot of all seven days for owner.
func (s *Store) Week(ctx context.Context, owner string) (Week, error) {
	if err := validateOwner(owner); err != nil {
		return nil, err
	}
	bookings, err := s.repo.ListWeek(ctx, owner)
	if err != nil {
		return nil, fmt.Errorf("listing week: %w", err)
	}
	return GroupWeek(bookings), nil
}

// Overlaps reports whether [start, end) intersects any booking on day.
func (s *Store) Overlaps(ctx context.Context, owner string, day Weekday, start, end Clock) (bool, error) {
	b, err := s.conflict(ctx, owner, Interval{Day: day, Start: start, End: end})
	if err != nil {
		return false, err
	}
	return b != nil, nil
}

func (s *Store) conflict(ctx context.Context, owner string, iv Interval) (*Booking, error) {
	existing, err := s.List(ctx, owner, iv.Day)
	if err != nil {
		return nil, err
	}
	for i := range existing {
		if existing[i].Overlaps(iv) {
			return &existing[i], nil
		}
	}
	return nil, nil
}

// Insert books [start, end) on day for owner. It fails with *OverlapError
// when the interval intersects an existing booking and leaves the store
// unchanged on any failure.
func (s *Store) Insert(ctx context.Context, owner string, day Weekday, start, end Clock, label string) (Booking, error) {
	iv := Interval{Day: day, Start: start, End: end}
	if err := validateOwner(owner); err != nil {
		return Booking{}, err
	}
	if strings.TrimSpace(label) == "" {
		return Booking{}, &ValidationError{Field: "label", Reason: "task name cannot be empty"}
	}
	if err := iv.Validate(); err != nil {
		return Booking{}, err
	}

	unlock := s.lock(owner, day)
	defer unlock()

	existing, err := s.conflict(ctx, owner, iv)
	if err != nil {
		return Booking{}, err
	}
	if existing != nil {
		s.logger.Debug("booking rejected", "owner", owner, "day", day, "start", start, "end", end, "conflict", existing.Label)
		return Booking{}, &OverlapError{Attempt: iv, Existing: *existing}
	}

	b := Booking{
		ID:       uuid.New(),
		Owner:    owner,
		Label:    strings.TrimSpace(label),
		Interval: iv,
	}
	if err := s.repo.AddBooking(ctx, b); err != nil {
		return Booking{}, fmt.Errorf("saving booking: %w", err)
	}

	s.logger.Debug("booking added", "owner", owner, "day", day, "start", start, "end", end, "label", b.Label)
	return b, nil
}

// Remove deletes every booking on day whose label matches.
func (s *Store) Remove(ctx context.Context, owner string, day Weekday, label string) error {
	if err := validateOwner(owner); err != nil {
		return err
	}
	if !day.Valid() {
		return &ValidationError{Field: "day", Reason: "weekday out of range"}
	}
	label = strings.TrimSpace(label)

	unlock := s.lock(owner, day)
	defer unlock()

	n, err := s.repo.DeleteBookings(ctx, owner, day, label)
	if err != nil {
		return fmt.Errorf("deleting booking: %w", err)
	}
	if n == 0 {
		return &NotFoundError{Kind: "booking", Key: fmt.Sprintf("%q on %s", label, day)}
	}

	s.logger.Debug("booking removed", "owner", owner, "day", day, "label", label, "count", n)
	return nil
}

func validateOwner(owner string) error {
	if strings.TrimSpace(owner) == "" {
		return &ValidationError{Field: "owner", Reason: "owner identifier is required"}
	}
	return nil
}
