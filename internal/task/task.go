package task

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Status represents a task status.
type Status string

const (
	StatusNew        Status = "New"
	StatusInProgress Status = "InProgress"
	StatusDone       Status = "Done"
)

// Statuses lists every status in display order.
var Statuses = []Status{StatusNew, StatusInProgress, StatusDone}

// Valid reports whether s is one of the known statuses.
func (s Status) Valid() bool {
	switch s {
	case StatusNew, StatusInProgress, StatusDone:
		return true
	}
	return false
}

// Task is a single unit of work.
type Task struct {
	ID          int       `json:"id"`
	Description string    `json:"description"`
	Status      Status    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// String formats the task as a single list line.
func (t Task) String() string {
	return fmt.Sprintf("%s %d %s", t.Status.Icon(), t.ID, t.Description)
}

// Icon returns the bracketed marker used in listings.
func (s Status) Icon() string {
	switch s {
	case StatusInProgress:
		return "[>]"
	case StatusDone:
		return "[x]"
	default:
		return "[ ]"
	}
}

// ParseID parses a task id argument.
func ParseID(s string) (int, error) {
	id, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, fmt.Errorf("%w: task id %q is not a number", ErrParse, s)
	}
	if id <= 0 {
		return 0, fmt.Errorf("%w: task id must be positive, got %d", ErrInvalidInput, id)
	}
	return id, nil
}
