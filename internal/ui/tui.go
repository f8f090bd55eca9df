// Package ui provides the optional full-screen task viewer.
package ui

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/nibzard/tasker/internal/task"
)

// Source loads the current store.
type Source interface {
	Snapshot() (*task.Store, error)
}

// TUIOption configures the TUI behavior.
type TUIOption func(*tuiModel)

// WithRefreshInterval sets how often the store file is reloaded.
func WithRefreshInterval(d time.Duration) TUIOption {
	return func(m *tuiModel) {
		if d > 0 {
			m.tickInterval = d
		}
	}
}

// RunTUI starts the viewer on the terminal.
func RunTUI(ctx context.Context, src Source, storePath string, opts ...TUIOption) error {
	if !IsTTY(os.Stdout) {
		return fmt.Errorf("tui requires a TTY")
	}
	model := newTUIModel(src, storePath, opts...)
	program := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := program.Run()
	return err
}

var (
	titleStyle  = lipgloss.NewStyle().Bold(true)
	headerStyle = lipgloss.NewStyle().Underline(true)
	doneStyle   = lipgloss.NewStyle().Faint(true)
	activeStyle = lipgloss.NewStyle().Bold(true)
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
)

type tuiModel struct {
	src          Source
	storePath    string
	loadErr      error
	store        *task.Store
	filter       task.Filter
	showHelp     bool
	tickInterval time.Duration
}

type tickMsg time.Time

func newTUIModel(src Source, storePath string, opts ...TUIOption) *tuiModel {
	m := &tuiModel{
		src:          src,
		storePath:    storePath,
		tickInterval: 2 * time.Second,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

func (m *tuiModel) Init() tea.Cmd {
	m.refresh()
	return tickCmd(m.tickInterval)
}

func (m *tuiModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit
		case "r", "f5":
			m.refresh()
		case "h", "?":
			m.showHelp = !m.showHelp
		case "0":
			m.filter = task.FilterAll
		case "1":
			m.filter = task.FilterNew
		case "2":
			m.filter = task.FilterInProgress
		case "3":
			m.filter = task.FilterDone
		}
		return m, nil
	case tickMsg:
		m.refresh()
		return m, tickCmd(m.tickInterval)
	}
	return m, nil
}

func (m *tuiModel) View() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("tasker") + "\n\n")

	if m.showHelp {
		writeHelp(&b)
		writeFooter(&b, m.tickInterval)
		return b.String()
	}

	if m.loadErr != nil {
		b.WriteString(errorStyle.Render("Error loading task store:") + "\n")
		b.WriteString("  " + m.loadErr.Error() + "\n\n")
		writeFooter(&b, m.tickInterval)
		return b.String()
	}
	if m.store == nil {
		b.WriteString("Loading...\n\n")
		writeFooter(&b, m.tickInterval)
		return b.String()
	}

	writeOverview(&b, m.store.Counts())
	if m.filter != task.FilterAll {
		b.WriteString(fmt.Sprintf("Filter: %s (0 to clear)\n\n", m.filter))
	}
	writeTasks(&b, m.store.List(m.filter))
	b.WriteString(fmt.Sprintf("Store: %s\n\n", m.storePath))
	writeFooter(&b, m.tickInterval)
	return b.String()
}

func tickCmd(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (m *tuiModel) refresh() {
	store, err := m.src.Snapshot()
	if err != nil {
		m.loadErr = err
		m.store = nil
		return
	}
	m.loadErr = nil
	m.store = store
}

func writeOverview(b *strings.Builder, counts map[task.Status]int) {
	b.WriteString(headerStyle.Render("Overview") + "\n\n")
	b.WriteString(fmt.Sprintf("  New: %d  InProgress: %d  Done: %d\n\n",
		counts[task.StatusNew],
		counts[task.StatusInProgress],
		counts[task.StatusDone],
	))
}

func writeTasks(b *strings.Builder, tasks []task.Task) {
	b.WriteString(headerStyle.Render("Tasks") + "\n\n")
	if len(tasks) == 0 {
		b.WriteString("  No tasks found.\n\n")
		return
	}
	for _, t := range tasks {
		line := fmt.Sprintf("  %s %3d  %s", t.Status.Icon(), t.ID, t.Description)
		switch t.Status {
		case task.StatusDone:
			line = doneStyle.Render(line)
		case task.StatusInProgress:
			line = activeStyle.Render(line)
		}
		b.WriteString(line + "\n")
	}
	b.WriteString("\n")
}

func writeHelp(b *strings.Builder) {
	b.WriteString("Keyboard Shortcuts\n\n")
	b.WriteString("  q, ctrl+c    Quit\n")
	b.WriteString("  r, F5        Refresh data\n")
	b.WriteString("  h, ?         Toggle this help screen\n")
	b.WriteString("  1            Filter by New\n")
	b.WriteString("  2            Filter by InProgress\n")
	b.WriteString("  3            Filter by Done\n")
	b.WriteString("  0            Clear filter\n\n")
}

func writeFooter(b *strings.Builder, interval time.Duration) {
	b.WriteString(fmt.Sprintf("Press h for help | q to quit | Refreshing every %s\n", interval))
}

// IsTTY returns true if w is a terminal.
func IsTTY(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	info, err := f.Stat()
	if err != nil {
		return false
	}
	return (info.Mode() & os.ModeCharDevice) != 0
}
