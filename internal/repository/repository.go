// Package repository runs task operations against the store file.
//
// Every call loads the whole store from disk, applies one operation and, if
// the operation mutates, writes the whole store back. Nothing is cached
// between calls.
package repository

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"time"

	"github.com/charmbracelet/log"

	"github.com/nibzard/tasker/internal/task"
)

// Repository operates on a single store file.
type Repository struct {
	path   string
	logger *log.Logger
	clock  func() time.Time
}

// Option configures a Repository.
type Option func(*Repository)

// WithLogger sets the logger used for per-operation debug output.
func WithLogger(logger *log.Logger) Option {
	return func(r *Repository) {
		r.logger = logger
	}
}

// WithClock sets the time source for task timestamps.
func WithClock(clock func() time.Time) Option {
	return func(r *Repository) {
		r.clock = clock
	}
}

// New returns a repository backed by the file at path.
func New(path string, opts ...Option) *Repository {
	r := &Repository{path: path}
	for _, opt := range opts {
		opt(r)
	}
	if r.logger == nil {
		r.logger = log.New(io.Discard)
	}
	return r
}

// Path returns the store file path.
func (r *Repository) Path() string {
	return r.path
}

// Add creates a task. It is the only operation that may start without a
// store file; the file is created by the save.
func (r *Repository) Add(description string) (task.Task, error) {
	store, err := r.load(true)
	if err != nil {
		return task.Task{}, err
	}
	t, err := store.Add(description)
	if err != nil {
		return task.Task{}, err
	}
	if err := r.save(store); err != nil {
		return task.Task{}, err
	}
	r.logger.Debug("task added", "id", t.ID, "path", r.path)
	return t, nil
}

// Delete removes a task and returns it.
func (r *Repository) Delete(id int) (task.Task, error) {
	store, err := r.load(false)
	if err != nil {
		return task.Task{}, err
	}
	t, err := store.Delete(id)
	if err != nil {
		return task.Task{}, err
	}
	if err := r.save(store); err != nil {
		return task.Task{}, err
	}
	r.logger.Debug("task deleted", "id", id, "path", r.path)
	return t, nil
}

// UpdateDescription replaces a description. It returns the previous
// description and the updated task.
func (r *Repository) UpdateDescription(id int, description string) (string, task.Task, error) {
	store, err := r.load(false)
	if err != nil {
		return "", task.Task{}, err
	}
	previous, err := store.UpdateDescription(id, description)
	if err != nil {
		return "", task.Task{}, err
	}
	if err := r.save(store); err != nil {
		return "", task.Task{}, err
	}
	t, _ := store.Get(id)
	r.logger.Debug("task updated", "id", id, "path", r.path)
	return previous, t, nil
}

// MarkStatus sets the status of a task.
func (r *Repository) MarkStatus(id int, status task.Status) (task.Task, error) {
	store, err := r.load(false)
	if err != nil {
		return task.Task{}, err
	}
	t, err := store.MarkStatus(id, status)
	if err != nil {
		return task.Task{}, err
	}
	if err := r.save(store); err != nil {
		return task.Task{}, err
	}
	r.logger.Debug("task status changed", "id", id, "status", status, "path", r.path)
	return t, nil
}

// List returns the tasks matching filter, ascending by id.
func (r *Repository) List(filter task.Filter) ([]task.Task, error) {
	store, err := r.load(false)
	if err != nil {
		return nil, err
	}
	return store.List(filter), nil
}

// Snapshot loads the current store without modifying it.
func (r *Repository) Snapshot() (*task.Store, error) {
	return r.load(false)
}

func (r *Repository) load(allowMissing bool) (*task.Store, error) {
	store, err := task.Load(r.path)
	if err != nil {
		switch {
		case !errors.Is(err, fs.ErrNotExist):
			return nil, fmt.Errorf("load tasks: %w", err)
		case !allowMissing:
			return nil, fmt.Errorf("load tasks: %w: %w", task.ErrStoreNotFound, err)
		default:
			r.logger.Debug("store file not found, starting empty", "path", r.path)
			store = task.NewStore()
		}
	}
	if r.clock != nil {
		store.UseClock(r.clock)
	}
	return store, nil
}

func (r *Repository) save(store *task.Store) error {
	if err := store.Save(r.path); err != nil {
		return fmt.Errorf("save tasks: %w", err)
	}
	return nil
}
