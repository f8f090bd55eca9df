package command

import (
	"fmt"
	"strings"

	"github.com/nibzard/tasker/internal/task"
)

// Kind identifies a shell command.
type Kind int

const (
	KindAdd Kind = iota + 1
	KindDelete
	KindUpdate
	KindMarkDone
	KindMarkInProgress
	KindList
	KindHelp
	KindQuit
)

var keywords = map[string]Kind{
	"add":              KindAdd,
	"delete":           KindDelete,
	"update":           KindUpdate,
	"mark-done":        KindMarkDone,
	"markdone":         KindMarkDone,
	"mark-in-progress": KindMarkInProgress,
	"markinprogress":   KindMarkInProgress,
	"list":             KindList,
	"help":             KindHelp,
	"quit":             KindQuit,
	"q":                KindQuit,
}

func (k Kind) String() string {
	switch k {
	case KindAdd:
		return "add"
	case KindDelete:
		return "delete"
	case KindUpdate:
		return "update"
	case KindMarkDone:
		return "mark-done"
	case KindMarkInProgress:
		return "mark-in-progress"
	case KindList:
		return "list"
	case KindHelp:
		return "help"
	case KindQuit:
		return "quit"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// ParseKind resolves a command keyword, ignoring case.
func ParseKind(keyword string) (Kind, error) {
	if k, ok := keywords[strings.ToLower(keyword)]; ok {
		return k, nil
	}
	return 0, fmt.Errorf("%w: unknown command %q (type help for a list)", task.ErrInvalidInput, keyword)
}

// Command is a fully parsed shell command. Only the fields relevant to Kind
// are set.
type Command struct {
	Kind        Kind
	ID          int
	Description string
	Filter      task.Filter
}

// Status returns the status a mark command sets.
func (c Command) Status() task.Status {
	if c.Kind == KindMarkInProgress {
		return task.StatusInProgress
	}
	return task.StatusDone
}

// Parse tokenizes line and validates its arguments for the command keyword.
func Parse(line string) (Command, error) {
	tokens := Tokenize(line)
	if len(tokens) == 0 {
		return Command{}, task.ErrNoArguments
	}

	kind, err := ParseKind(tokens[0])
	if err != nil {
		return Command{}, err
	}
	cmd := Command{Kind: kind}
	args := tokens[1:]

	switch kind {
	case KindAdd:
		if err := wantArgs(kind, args, 1, "<description>"); err != nil {
			return Command{}, err
		}
		cmd.Description = args[0]
	case KindDelete, KindMarkDone, KindMarkInProgress:
		if err := wantArgs(kind, args, 1, "<id>"); err != nil {
			return Command{}, err
		}
		if cmd.ID, err = task.ParseID(args[0]); err != nil {
			return Command{}, err
		}
	case KindUpdate:
		if err := wantArgs(kind, args, 2, "<id> <description>"); err != nil {
			return Command{}, err
		}
		if cmd.ID, err = task.ParseID(args[0]); err != nil {
			return Command{}, err
		}
		cmd.Description = args[1]
	case KindList:
		if len(args) > 1 {
			return Command{}, fmt.Errorf("%w: list takes at most one filter, got %d arguments", task.ErrInvalidInput, len(args))
		}
		if len(args) == 1 {
			if cmd.Filter, err = task.ParseFilter(args[0]); err != nil {
				return Command{}, err
			}
		}
	case KindHelp, KindQuit:
		if len(args) > 0 {
			return Command{}, fmt.Errorf("%w: %s takes no arguments", task.ErrInvalidInput, kind)
		}
	}

	return cmd, nil
}

// wantArgs checks that exactly n arguments were given.
func wantArgs(kind Kind, args []string, n int, usage string) error {
	if len(args) < n {
		return fmt.Errorf("%w: usage: %s %s", task.ErrNoArguments, kind, usage)
	}
	if len(args) > n {
		return fmt.Errorf("%w: usage: %s %s (quote descriptions with spaces)", task.ErrInvalidInput, kind, usage)
	}
	return nil
}
