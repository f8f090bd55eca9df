package repository

import (
	"bytes"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nibzard/tasker/internal/task"
)

func tickingClock() func() time.Time {
	current := time.Date(2026, 10, 14, 8, 0, 0, 0, time.UTC)
	return func() time.Time {
		current = current.Add(time.Minute)
		return current
	}
}

func newRepo(t *testing.T) (*Repository, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "tasks.json")
	return New(path, WithClock(tickingClock())), path
}

func TestAddCreatesFile(t *testing.T) {
	repo, path := newRepo(t)

	created, err := repo.Add("write report")
	require.NoError(t, err)
	assert.Equal(t, 1, created.ID)
	assert.Equal(t, "write report", created.Description)
	assert.Equal(t, task.StatusNew, created.Status)

	_, err = os.Stat(path)
	require.NoError(t, err, "store file should exist after add")

	store, err := task.Load(path)
	require.NoError(t, err)
	require.Equal(t, 1, store.Len())
	got := store.Tasks[1]
	assert.Equal(t, created.Description, got.Description)
	assert.True(t, created.CreatedAt.Equal(got.CreatedAt))
}

func TestAddAppendsToExistingFile(t *testing.T) {
	repo, _ := newRepo(t)
	for _, d := range []string{"one", "two", "three"} {
		_, err := repo.Add(d)
		require.NoError(t, err)
	}

	tasks, err := repo.List(task.FilterAll)
	require.NoError(t, err)
	require.Len(t, tasks, 3)
	for i, tk := range tasks {
		assert.Equal(t, i+1, tk.ID)
	}
}

func TestDelete(t *testing.T) {
	repo, path := newRepo(t)
	_, err := repo.Add("first")
	require.NoError(t, err)
	second, err := repo.Add("second")
	require.NoError(t, err)

	removed, err := repo.Delete(1)
	require.NoError(t, err)
	assert.Equal(t, "first", removed.Description)

	store, err := task.Load(path)
	require.NoError(t, err)
	require.Equal(t, 1, store.Len())
	assert.Equal(t, second.Description, store.Tasks[2].Description)
	assert.True(t, second.UpdatedAt.Equal(store.Tasks[2].UpdatedAt))

	before, err := os.ReadFile(path)
	require.NoError(t, err)
	_, err = repo.Delete(1)
	assert.ErrorIs(t, err, task.ErrTaskNotFound)
	after, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, before, after, "failed delete must not rewrite the file")
}

func TestUpdateDescription(t *testing.T) {
	repo, _ := newRepo(t)
	orig, err := repo.Add("draft")
	require.NoError(t, err)

	previous, updated, err := repo.UpdateDescription(orig.ID, "final")
	require.NoError(t, err)
	assert.Equal(t, "draft", previous)
	assert.Equal(t, "final", updated.Description)
	assert.True(t, updated.CreatedAt.Equal(orig.CreatedAt))
	assert.True(t, updated.UpdatedAt.After(orig.UpdatedAt))

	_, _, err = repo.UpdateDescription(5, "x")
	assert.ErrorIs(t, err, task.ErrTaskNotFound)
}

func TestMarkInProgress(t *testing.T) {
	repo, path := newRepo(t)
	orig, err := repo.Add("ship")
	require.NoError(t, err)

	_, err = repo.MarkStatus(orig.ID, task.StatusInProgress)
	require.NoError(t, err)

	store, err := task.Load(path)
	require.NoError(t, err)
	got := store.Tasks[orig.ID]
	assert.Equal(t, task.StatusInProgress, got.Status)
	assert.True(t, got.CreatedAt.Equal(orig.CreatedAt))
	assert.False(t, got.UpdatedAt.Equal(orig.UpdatedAt))
}

func TestListFilter(t *testing.T) {
	repo, _ := newRepo(t)
	for _, d := range []string{"a", "b", "c"} {
		_, err := repo.Add(d)
		require.NoError(t, err)
	}
	_, err := repo.MarkStatus(3, task.StatusDone)
	require.NoError(t, err)

	done, err := repo.List(task.FilterDone)
	require.NoError(t, err)
	require.Len(t, done, 1)
	assert.Equal(t, 3, done[0].ID)

	fresh, err := repo.List(task.FilterNew)
	require.NoError(t, err)
	assert.Len(t, fresh, 2)
}

func TestOperationsRequireFile(t *testing.T) {
	repo, path := newRepo(t)

	_, err := repo.List(task.FilterAll)
	assert.ErrorIs(t, err, task.ErrIO)
	assert.ErrorIs(t, err, task.ErrStoreNotFound)
	_, err = repo.Delete(1)
	assert.ErrorIs(t, err, task.ErrIO)
	_, _, err = repo.UpdateDescription(1, "x")
	assert.ErrorIs(t, err, task.ErrIO)
	_, err = repo.MarkStatus(1, task.StatusDone)
	assert.ErrorIs(t, err, task.ErrIO)
	_, err = repo.Snapshot()
	assert.ErrorIs(t, err, task.ErrIO)

	_, err = os.Stat(path)
	assert.True(t, os.IsNotExist(err), "read operations must not create the file")
}

func TestCorruptFile(t *testing.T) {
	repo, path := newRepo(t)
	require.NoError(t, os.WriteFile(path, []byte(`{"schema_version": 1, "tasks": {"1": `), 0644))

	_, err := repo.List(task.FilterAll)
	assert.ErrorIs(t, err, task.ErrParse)

	_, err = repo.Add("cannot add over a corrupt file")
	assert.ErrorIs(t, err, task.ErrParse)
}

func TestAddWithExhaustedIDsLeavesStoreLoadable(t *testing.T) {
	repo, path := newRepo(t)
	maxID := strconv.Itoa(math.MaxInt)
	doc := `{"schema_version": 1, "tasks": {"` + maxID + `": {"id": ` + maxID +
		`, "description": "last", "status": "New",` +
		` "created_at": "2026-10-14T08:00:00Z", "updated_at": "2026-10-14T08:00:00Z"}}}`
	require.NoError(t, os.WriteFile(path, []byte(doc), 0644))

	_, err := repo.Add("next")
	require.ErrorIs(t, err, task.ErrInvalidInput)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, doc, string(data), "store file must be untouched")

	tasks, err := repo.List(task.FilterAll)
	require.NoError(t, err)
	require.Len(t, tasks, 1)
	assert.Equal(t, math.MaxInt, tasks[0].ID)
}

func TestAddIntoMissingDirectory(t *testing.T) {
	repo := New(filepath.Join(t.TempDir(), "missing", "tasks.json"))
	_, err := repo.Add("x")
	assert.ErrorIs(t, err, task.ErrIO)
	assert.NotErrorIs(t, err, task.ErrStoreNotFound)
}

func TestDebugLogging(t *testing.T) {
	var buf bytes.Buffer
	logger := log.NewWithOptions(&buf, log.Options{Level: log.DebugLevel})
	repo := New(filepath.Join(t.TempDir(), "tasks.json"), WithLogger(logger))

	_, err := repo.Add("logged")
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "task added")
}
