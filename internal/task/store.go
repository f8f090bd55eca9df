package task

import (
	"fmt"
	"math"
	"sort"
	"time"
)

// CurrentSchemaVersion is the only document version this package reads or writes.
const CurrentSchemaVersion = 1

// Store is the full persisted state: tasks keyed by id.
type Store struct {
	SchemaVersion int          `json:"schema_version"`
	Tasks         map[int]Task `json:"tasks"`

	clock func() time.Time
}

// NewStore returns an empty store.
func NewStore() *Store {
	return &Store{
		SchemaVersion: CurrentSchemaVersion,
		Tasks:         make(map[int]Task),
	}
}

// UseClock replaces the time source used for task timestamps.
func (s *Store) UseClock(clock func() time.Time) {
	s.clock = clock
}

func (s *Store) now() time.Time {
	if s.clock != nil {
		return s.clock()
	}
	return time.Now().UTC()
}

// touch returns now, or prev if the clock reads earlier than prev.
func (s *Store) touch(prev time.Time) time.Time {
	now := s.now()
	if now.Before(prev) {
		return prev
	}
	return now
}

// Len returns the number of tasks.
func (s *Store) Len() int {
	return len(s.Tasks)
}

// NextID returns the highest id plus one, or 1 for an empty store.
// Ids freed by deleting the highest task are handed out again. Once the
// highest id is math.MaxInt there is no successor and NextID fails.
func (s *Store) NextID() (int, error) {
	highest := 0
	for id := range s.Tasks {
		if id > highest {
			highest = id
		}
	}
	if highest == math.MaxInt {
		return 0, fmt.Errorf("%w: task ids exhausted (highest id is %d)", ErrInvalidInput, highest)
	}
	return highest + 1, nil
}

// Get returns the task with the given id.
func (s *Store) Get(id int) (Task, bool) {
	t, ok := s.Tasks[id]
	return t, ok
}

// Add creates a New task and inserts it.
func (s *Store) Add(description string) (Task, error) {
	id, err := s.NextID()
	if err != nil {
		return Task{}, err
	}
	if s.Tasks == nil {
		s.Tasks = make(map[int]Task)
	}
	now := s.now()
	t := Task{
		ID:          id,
		Description: description,
		Status:      StatusNew,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	s.Tasks[t.ID] = t
	return t, nil
}

// Delete removes the task and returns it.
func (s *Store) Delete(id int) (Task, error) {
	t, ok := s.Tasks[id]
	if !ok {
		return Task{}, notFound(id)
	}
	delete(s.Tasks, id)
	return t, nil
}

// UpdateDescription replaces the description and returns the previous one.
func (s *Store) UpdateDescription(id int, description string) (string, error) {
	t, ok := s.Tasks[id]
	if !ok {
		return "", notFound(id)
	}
	previous := t.Description
	t.Description = description
	t.UpdatedAt = s.touch(t.UpdatedAt)
	s.Tasks[id] = t
	return previous, nil
}

// MarkStatus sets the status of a task and refreshes updated_at.
func (s *Store) MarkStatus(id int, status Status) (Task, error) {
	if !status.Valid() {
		return Task{}, fmt.Errorf("%w: unknown status %q", ErrInvalidInput, status)
	}
	t, ok := s.Tasks[id]
	if !ok {
		return Task{}, notFound(id)
	}
	t.Status = status
	t.UpdatedAt = s.touch(t.UpdatedAt)
	s.Tasks[id] = t
	return t, nil
}

// List returns the tasks matching f, ascending by id.
func (s *Store) List(f Filter) []Task {
	tasks := make([]Task, 0, len(s.Tasks))
	for _, t := range s.Tasks {
		if f.Match(t) {
			tasks = append(tasks, t)
		}
	}
	sort.Slice(tasks, func(i, j int) bool {
		return tasks[i].ID < tasks[j].ID
	})
	return tasks
}

// Counts returns the number of tasks per status.
func (s *Store) Counts() map[Status]int {
	counts := make(map[Status]int, len(Statuses))
	for _, status := range Statuses {
		counts[status] = 0
	}
	for _, t := range s.Tasks {
		counts[t.Status]++
	}
	return counts
}

func notFound(id int) error {
	return fmt.Errorf("%w: no task with id %d", ErrTaskNotFound, id)
}
