package task

import (
	"errors"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stepClock returns a clock that advances one second per call.
func stepClock(start time.Time) func() time.Time {
	current := start
	return func() time.Time {
		t := current
		current = current.Add(time.Second)
		return t
	}
}

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s := NewStore()
	s.UseClock(stepClock(time.Date(2026, 1, 1, 9, 0, 0, 0, time.UTC)))
	return s
}

func mustAdd(t *testing.T, s *Store, description string) Task {
	t.Helper()
	created, err := s.Add(description)
	require.NoError(t, err)
	return created
}

func TestAddAssignsIDs(t *testing.T) {
	s := newTestStore(t)

	first := mustAdd(t, s, "write report")
	assert.Equal(t, 1, first.ID)
	assert.Equal(t, StatusNew, first.Status)
	assert.Equal(t, "write report", first.Description)
	assert.True(t, first.CreatedAt.Equal(first.UpdatedAt))

	second := mustAdd(t, s, "buy milk")
	assert.Equal(t, 2, second.ID)

	s.Tasks[10] = Task{ID: 10, Description: "far", Status: StatusDone}
	assert.Equal(t, 11, mustAdd(t, s, "after gap").ID)
}

func TestNextIDReusesAfterDeletingMax(t *testing.T) {
	s := newTestStore(t)
	mustAdd(t, s, "one")
	mustAdd(t, s, "two")

	_, err := s.Delete(2)
	require.NoError(t, err)
	next, err := s.NextID()
	require.NoError(t, err)
	assert.Equal(t, 2, next)
}

func TestAddFailsWhenIDsAreExhausted(t *testing.T) {
	s := newTestStore(t)
	s.Tasks[math.MaxInt] = Task{ID: math.MaxInt, Description: "last", Status: StatusNew}

	_, err := s.NextID()
	require.ErrorIs(t, err, ErrInvalidInput)

	_, err = s.Add("one too many")
	require.ErrorIs(t, err, ErrInvalidInput)
	assert.Equal(t, 1, s.Len(), "store must not gain a task")
	for id := range s.Tasks {
		assert.Positive(t, id)
	}
}

func TestAddOnZeroValueStore(t *testing.T) {
	var s Store
	got := mustAdd(t, &s, "first")
	assert.Equal(t, 1, got.ID)
	assert.Equal(t, 1, s.Len())
}

func TestDelete(t *testing.T) {
	s := newTestStore(t)
	mustAdd(t, s, "one")
	kept := mustAdd(t, s, "two")

	removed, err := s.Delete(1)
	require.NoError(t, err)
	assert.Equal(t, 1, removed.ID)
	assert.Equal(t, map[int]Task{2: kept}, s.Tasks)

	t.Run("absent id leaves store unchanged", func(t *testing.T) {
		_, err := s.Delete(7)
		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrTaskNotFound))
		assert.Equal(t, map[int]Task{2: kept}, s.Tasks)
	})
}

func TestUpdateDescription(t *testing.T) {
	s := newTestStore(t)
	orig := mustAdd(t, s, "draft")

	previous, err := s.UpdateDescription(orig.ID, "final")
	require.NoError(t, err)
	assert.Equal(t, "draft", previous)

	got, ok := s.Get(orig.ID)
	require.True(t, ok)
	assert.Equal(t, "final", got.Description)
	assert.Equal(t, orig.ID, got.ID)
	assert.Equal(t, StatusNew, got.Status)
	assert.True(t, got.CreatedAt.Equal(orig.CreatedAt))
	assert.True(t, got.UpdatedAt.After(orig.UpdatedAt))

	_, err = s.UpdateDescription(99, "nope")
	assert.ErrorIs(t, err, ErrTaskNotFound)
}

func TestMarkStatus(t *testing.T) {
	s := newTestStore(t)
	orig := mustAdd(t, s, "ship it")

	got, err := s.MarkStatus(orig.ID, StatusInProgress)
	require.NoError(t, err)
	assert.Equal(t, StatusInProgress, got.Status)
	assert.Equal(t, orig.Description, got.Description)
	assert.True(t, got.CreatedAt.Equal(orig.CreatedAt))
	assert.True(t, got.UpdatedAt.After(orig.UpdatedAt))

	done, err := s.MarkStatus(orig.ID, StatusDone)
	require.NoError(t, err)
	assert.Equal(t, StatusDone, done.Status)

	_, err = s.MarkStatus(42, StatusDone)
	assert.ErrorIs(t, err, ErrTaskNotFound)

	_, err = s.MarkStatus(orig.ID, Status("Blocked"))
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestMutationNeverMovesUpdatedAtBackwards(t *testing.T) {
	s := NewStore()
	later := time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC)
	s.UseClock(func() time.Time { return later })
	orig := mustAdd(t, s, "clock skew")

	s.UseClock(func() time.Time { return later.Add(-time.Hour) })
	got, err := s.MarkStatus(orig.ID, StatusDone)
	require.NoError(t, err)
	assert.True(t, got.UpdatedAt.Equal(later))
	assert.False(t, got.UpdatedAt.Before(got.CreatedAt))
}

func TestListFiltersAndSorts(t *testing.T) {
	s := newTestStore(t)
	for _, d := range []string{"a", "b", "c", "d", "e"} {
		mustAdd(t, s, d)
	}
	_, err := s.MarkStatus(2, StatusDone)
	require.NoError(t, err)
	_, err = s.MarkStatus(4, StatusInProgress)
	require.NoError(t, err)
	_, err = s.MarkStatus(5, StatusDone)
	require.NoError(t, err)

	ids := func(tasks []Task) []int {
		out := make([]int, 0, len(tasks))
		for _, t := range tasks {
			out = append(out, t.ID)
		}
		return out
	}

	tests := []struct {
		filter Filter
		want   []int
	}{
		{FilterAll, []int{1, 2, 3, 4, 5}},
		{FilterNew, []int{1, 3}},
		{FilterInProgress, []int{4}},
		{FilterDone, []int{2, 5}},
	}
	for _, tt := range tests {
		t.Run(tt.filter.String(), func(t *testing.T) {
			assert.Equal(t, tt.want, ids(s.List(tt.filter)))
		})
	}

	total := len(s.List(FilterNew)) + len(s.List(FilterInProgress)) + len(s.List(FilterDone))
	assert.Equal(t, len(s.List(FilterAll)), total)
}

func TestListEmpty(t *testing.T) {
	s := NewStore()
	assert.Empty(t, s.List(FilterAll))
}

func TestCounts(t *testing.T) {
	s := newTestStore(t)
	mustAdd(t, s, "a")
	mustAdd(t, s, "b")
	_, err := s.MarkStatus(1, StatusDone)
	require.NoError(t, err)

	assert.Equal(t, map[Status]int{
		StatusNew:        1,
		StatusInProgress: 0,
		StatusDone:       1,
	}, s.Counts())
}

func TestParseFilter(t *testing.T) {
	tests := []struct {
		in      string
		want    Filter
		wantErr bool
	}{
		{"", FilterAll, false},
		{"all", FilterAll, false},
		{"new", FilterNew, false},
		{"todo", FilterNew, false},
		{"in-progress", FilterInProgress, false},
		{"InProgress", FilterInProgress, false},
		{"DONE", FilterDone, false},
		{"blocked", FilterAll, true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseFilter(tt.in)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidInput)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseID(t *testing.T) {
	id, err := ParseID("12")
	require.NoError(t, err)
	assert.Equal(t, 12, id)

	_, err = ParseID("twelve")
	assert.ErrorIs(t, err, ErrParse)

	_, err = ParseID("0")
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = ParseID("-3")
	assert.ErrorIs(t, err, ErrInvalidInput)
}
