package task

import (
	"fmt"
	"strings"
)

// Filter selects tasks for listing.
type Filter int

const (
	FilterAll Filter = iota
	FilterNew
	FilterInProgress
	FilterDone
)

// ParseFilter resolves a filter name. An empty name selects all tasks.
func ParseFilter(name string) (Filter, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "all":
		return FilterAll, nil
	case "new", "todo":
		return FilterNew, nil
	case "in-progress", "inprogress":
		return FilterInProgress, nil
	case "done":
		return FilterDone, nil
	}
	return FilterAll, fmt.Errorf("%w: unknown filter %q (expected done|new|in-progress)", ErrInvalidInput, name)
}

// Match reports whether t passes the filter.
func (f Filter) Match(t Task) bool {
	switch f {
	case FilterNew:
		return t.Status == StatusNew
	case FilterInProgress:
		return t.Status == StatusInProgress
	case FilterDone:
		return t.Status == StatusDone
	default:
		return true
	}
}

func (f Filter) String() string {
	switch f {
	case FilterNew:
		return "new"
	case FilterInProgress:
		return "in-progress"
	case FilterDone:
		return "done"
	default:
		return "all"
	}
}
