package schedule_test

import (
	"sync"
	"testing"

	"github.com/christopherklint97/planr/internal/schedule"
	"github.com/christopherklint97/planr/internal/store"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const owner = "alice@example.com"

func clock(t *testing.T, s string) schedule.Clock {
	t.Helper()
	c, err := schedule.ParseClock(s)
	require.NoError(t, err)
	return c
}

func TestInsert(t *testing.T) {
	s := schedule.NewStore(store.NewMemory(), nil)
	ctx := t.Context()

	b, err := s.Insert(ctx, owner, schedule.Monday, clock(t, "10:00 AM"), clock(t, "11:00 AM"), " Standup ")
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, b.ID)
	assert.Equal(t, "Standup", b.Label)

	t.Run("touching intervals do not overlap", func(t *testing.T) {
		_, err := s.Insert(ctx, owner, schedule.Monday, clock(t, "11:00 AM"), clock(t, "12:00 PM"), "Review")
		require.NoError(t, err)
		_, err = s.Insert(ctx, owner, schedule.Monday, clock(t, "09:00 AM"), clock(t, "10:00 AM"), "Email")
		require.NoError(t, err)
	})

	t.Run("overlap is rejected and store unchanged", func(t *testing.T) {
		before, err := s.List(ctx, owner, schedule.Monday)
		require.NoError(t, err)

		_, err = s.Insert(ctx, owner, schedule.Monday, clock(t, "10:30 AM"), clock(t, "11:30 AM"), "Clash")
		require.ErrorIs(t, err, schedule.ErrOverlap)

		var overlap *schedule.OverlapError
		require.ErrorAs(t, err, &overlap)
		assert.Equal(t, "Standup", overlap.Existing.Label)

		after, err := s.List(ctx, owner, schedule.Monday)
		require.NoError(t, err)
		assert.Equal(t, before, after)
	})

	t.Run("other day and other owner are independent", func(t *testing.T) {
		_, err := s.Insert(ctx, owner, schedule.Tuesday, clock(t, "10:30 AM"), clock(t, "11:30 AM"), "Clash")
		require.NoError(t, err)
		_, err = s.Insert(ctx, "bob@example.com", schedule.Monday, clock(t, "10:30 AM"), clock(t, "11:30 AM"), "Clash")
		require.NoError(t, err)
	})

	t.Run("validation", func(t *testing.T) {
		cases := []struct {
			name       string
			owner      string
			day        schedule.Weekday
			start, end string
			label      string
		}{
			{"empty owner", " ", schedule.Friday, "01:00 PM", "02:00 PM", "x"},
			{"empty label", owner, schedule.Friday, "01:00 PM", "02:00 PM", "  "},
			{"start after end", owner, schedule.Friday, "02:00 PM", "01:00 PM", "x"},
			{"zero length", owner, schedule.Friday, "02:00 PM", "02:00 PM", "x"},
			{"bad day", owner, schedule.Weekday(9), "01:00 PM", "02:00 PM", "x"},
		}
		for _, tc := range cases {
			t.Run(tc.name, func(t *testing.T) {
				_, err := s.Insert(ctx, tc.owner, tc.day, clock(t, tc.start), clock(t, tc.end), tc.label)
				require.ErrorIs(t, err, schedule.ErrValidation)
			})
		}
	})

	t.Run("end past midnight", func(t *testing.T) {
		start := clock(t, "11:00 PM")
		_, err := s.Insert(ctx, owner, schedule.Sunday, start, start.Add(120), "Late")
		require.ErrorIs(t, err, schedule.ErrValidation)
	})
}

func TestListSortsByStartThenLabel(t *testing.T) {
	s := schedule.NewStore(store.NewMemory(), nil)
	ctx := t.Context()

	_, err := s.Insert(ctx, owner, schedule.Wednesday, clock(t, "02:00 PM"), clock(t, "03:00 PM"), "Late")
	require.NoError(t, err)
	_, err = s.Insert(ctx, owner, schedule.Wednesday, clock(t, "09:00 AM"), clock(t, "10:00 AM"), "Early")
	require.NoError(t, err)

	got, err := s.List(ctx, owner, schedule.Wednesday)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "Early", got[0].Label)
	assert.Equal(t, "Late", got[1].Label)

	empty, err := s.List(ctx, owner, schedule.Thursday)
	require.NoError(t, err)
	assert.Empty(t, empty)

	bs := []schedule.Booking{
		{Label: "b", Interval: schedule.Interval{Start: 60, End: 90}},
		{Label: "a", Interval: schedule.Interval{Start: 60, End: 120}},
		{Label: "c", Interval: schedule.Interval{Start: 30, End: 60}},
	}
	schedule.SortBookings(bs)
	assert.Equal(t, []string{"c", "a", "b"}, []string{bs[0].Label, bs[1].Label, bs[2].Label})
}

func TestRemove(t *testing.T) {
	s := schedule.NewStore(store.NewMemory(), nil)
	ctx := t.Context()

	start, end := clock(t, "01:00 PM"), clock(t, "02:00 PM")
	_, err := s.Insert(ctx, owner, schedule.Friday, start, end, "Gym")
	require.NoError(t, err)

	t.Run("missing label leaves store unchanged", func(t *testing.T) {
		err := s.Remove(ctx, owner, schedule.Friday, "Swim")
		require.ErrorIs(t, err, schedule.ErrNotFound)

		got, err := s.List(ctx, owner, schedule.Friday)
		require.NoError(t, err)
		assert.Len(t, got, 1)
	})

	t.Run("remove then re-insert", func(t *testing.T) {
		require.NoError(t, s.Remove(ctx, owner, schedule.Friday, "Gym"))

		overlaps, err := s.Overlaps(ctx, owner, schedule.Friday, start, end)
		require.NoError(t, err)
		assert.False(t, overlaps)

		_, err = s.Insert(ctx, owner, schedule.Friday, start, end, "Gym")
		require.NoError(t, err)

		overlaps, err = s.Overlaps(ctx, owner, schedule.Friday, start, end)
		require.NoError(t, err)
		assert.True(t, overlaps)
	})
}

func TestConcurrentInsertKeepsDayExclusive(t *testing.T) {
	s := schedule.NewStore(store.NewMemory(), nil)
	ctx := t.Context()

	start, end := clock(t, "03:00 PM"), clock(t, "04:00 PM")

	var wg sync.WaitGroup
	errs := make([]error, 16)
	for i := range errs {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, errs[i] = s.Insert(ctx, owner, schedule.Saturday, start, end, "Race")
		}()
	}
	wg.Wait()

	ok := 0
	for _, err := range errs {
		if err == nil {
			ok++
			continue
		}
		assert.ErrorIs(t, err, schedule.ErrOverlap)
	}
	assert.Equal(t, 1, ok)

	got, err := s.List(ctx, owner, schedule.Saturday)
	require.NoError(t, err)
	assert.Len(t, got, 1)
}

func TestWeek(t *testing.T) {
	s := schedule.NewStore(store.NewMemory(), nil)
	ctx := t.Context()

	for _, d := range []schedule.Weekday{schedule.Sunday, schedule.Monday} {
		_, err := s.Insert(ctx, owner, d, clock(t, "09:00 AM"), clock(t, "10:00 AM"), "Plan")
		require.NoError(t, err)
	}

	week, err := s.Week(ctx, owner)
	require.NoError(t, err)
	assert.Len(t, week.Day(schedule.Monday), 1)
	assert.Empty(t, week.Day(schedule.Tuesday))

	all := week.All()
	require.Len(t, all, 2)
	assert.Equal(t, schedule.Monday, all[0].Day)
	assert.Equal(t, schedule.Sunday, all[1].Day)
}
