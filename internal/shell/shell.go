// Package shell runs the interactive task command loop.
package shell

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/nibzard/tasker/internal/command"
	"github.com/nibzard/tasker/internal/task"
)

// Repository is the set of task operations the shell dispatches to.
type Repository interface {
	Add(description string) (task.Task, error)
	Delete(id int) (task.Task, error)
	UpdateDescription(id int, description string) (string, task.Task, error)
	MarkStatus(id int, status task.Status) (task.Task, error)
	List(filter task.Filter) ([]task.Task, error)
}

// Shell reads one command per line and prints the result.
type Shell struct {
	repo   Repository
	in     io.Reader
	out    io.Writer
	prompt string
	logger *log.Logger
}

// Option configures a Shell.
type Option func(*Shell)

// WithPrompt sets the prompt printed before each line is read.
func WithPrompt(prompt string) Option {
	return func(s *Shell) {
		s.prompt = prompt
	}
}

// WithLogger sets the logger for command tracing.
func WithLogger(logger *log.Logger) Option {
	return func(s *Shell) {
		s.logger = logger
	}
}

// New creates a shell reading from in and writing to out.
func New(repo Repository, in io.Reader, out io.Writer, opts ...Option) *Shell {
	s := &Shell{
		repo:   repo,
		in:     in,
		out:    out,
		prompt: "> ",
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.logger == nil {
		s.logger = log.New(io.Discard)
	}
	return s
}

// maxLineBytes bounds a single input line. Longer lines are discarded and
// reported; the shell keeps reading.
const maxLineBytes = 1 << 20

var errLineTooLong = fmt.Errorf("%w: input line longer than %d bytes", task.ErrInvalidInput, maxLineBytes)

// inputLine is one line read from input, or the reason it was dropped.
type inputLine struct {
	text string
	err  error
}

// Run loops until quit, end of input or context cancellation. Quit and end
// of input return nil.
func (s *Shell) Run(ctx context.Context) error {
	lines := make(chan inputLine)
	readErr := make(chan error, 1)
	done := make(chan struct{})
	defer close(done)

	// The reader goroutine only feeds lines; commands run on this goroutine.
	go func() {
		defer close(lines)
		reader := bufio.NewReader(s.in)
		for {
			text, err := readLine(reader)
			if err != nil && !errors.Is(err, errLineTooLong) {
				if errors.Is(err, io.EOF) {
					err = nil
				}
				readErr <- err
				return
			}
			select {
			case lines <- inputLine{text: text, err: err}:
			case <-done:
				return
			case <-ctx.Done():
				return
			}
		}
	}()

	fmt.Fprintln(s.out, "tasker: type help for commands, quit to exit")
	for {
		fmt.Fprint(s.out, s.prompt)
		select {
		case <-ctx.Done():
			fmt.Fprintln(s.out)
			return ctx.Err()
		case line, ok := <-lines:
			if !ok {
				fmt.Fprintln(s.out)
				if err := <-readErr; err != nil {
					return fmt.Errorf("read input: %w", err)
				}
				return nil
			}
			if line.err != nil {
				s.printError(line.err)
				continue
			}
			if s.Execute(line.text) {
				return nil
			}
		}
	}
}

// readLine returns the next line without its line ending. A line over
// maxLineBytes is consumed up to its newline and reported as errLineTooLong.
// A final line without a newline is returned before io.EOF.
func readLine(r *bufio.Reader) (string, error) {
	var (
		buf     []byte
		tooLong bool
	)
	for {
		chunk, err := r.ReadSlice('\n')
		if !tooLong {
			if len(buf)+len(chunk) > maxLineBytes+1 {
				tooLong = true
				buf = nil
			} else {
				buf = append(buf, chunk...)
			}
		}
		if errors.Is(err, bufio.ErrBufferFull) {
			continue
		}
		if err != nil && !(errors.Is(err, io.EOF) && (tooLong || len(buf) > 0)) {
			return "", err
		}
		if tooLong {
			return "", errLineTooLong
		}
		line := strings.TrimSuffix(string(buf), "\n")
		return strings.TrimSuffix(line, "\r"), nil
	}
}

// Execute parses and runs a single line. It reports whether the line asked
// the shell to quit. Errors are printed, never returned.
func (s *Shell) Execute(line string) bool {
	cmd, err := command.Parse(line)
	if err != nil {
		s.printError(err)
		return false
	}
	s.logger.Debug("executing command", "command", cmd.Kind, "id", cmd.ID)

	quit, err := s.dispatch(cmd)
	if err != nil {
		s.printError(err)
	}
	return quit
}

func (s *Shell) dispatch(cmd command.Command) (bool, error) {
	switch cmd.Kind {
	case command.KindAdd:
		t, err := s.repo.Add(cmd.Description)
		if err != nil {
			return false, err
		}
		fmt.Fprintf(s.out, "Task added successfully (ID: %d): %s\n", t.ID, t.Description)
	case command.KindDelete:
		t, err := s.repo.Delete(cmd.ID)
		if err != nil {
			return false, err
		}
		fmt.Fprintf(s.out, "Task %d deleted: %s\n", t.ID, t.Description)
	case command.KindUpdate:
		previous, t, err := s.repo.UpdateDescription(cmd.ID, cmd.Description)
		if err != nil {
			return false, err
		}
		fmt.Fprintf(s.out, "Task %d updated: %q -> %q\n", t.ID, previous, t.Description)
	case command.KindMarkDone, command.KindMarkInProgress:
		t, err := s.repo.MarkStatus(cmd.ID, cmd.Status())
		if err != nil {
			return false, err
		}
		fmt.Fprintf(s.out, "Task %d marked %s\n", t.ID, t.Status)
	case command.KindList:
		tasks, err := s.repo.List(cmd.Filter)
		if err != nil {
			return false, err
		}
		WriteTasks(s.out, tasks)
	case command.KindHelp:
		WriteHelp(s.out)
	case command.KindQuit:
		fmt.Fprintln(s.out, "Goodbye!")
		return true, nil
	default:
		return false, fmt.Errorf("%w: unhandled command %s", task.ErrInvalidInput, cmd.Kind)
	}
	return false, nil
}

func (s *Shell) printError(err error) {
	s.logger.Debug("command failed", "err", err)
	if errors.Is(err, task.ErrStoreNotFound) {
		fmt.Fprintln(s.out, "Error: no task store yet (add a task to create it)")
		return
	}
	fmt.Fprintf(s.out, "Error: %v\n", err)
}
