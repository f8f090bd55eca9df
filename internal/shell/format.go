package shell

import (
	"fmt"
	"io"

	"github.com/nibzard/tasker/internal/task"
)

const timeLayout = "2006-01-02 15:04"

// WriteTasks prints one line per task, or a notice when there are none.
func WriteTasks(w io.Writer, tasks []task.Task) {
	if len(tasks) == 0 {
		fmt.Fprintln(w, "No tasks found")
		return
	}
	for _, t := range tasks {
		fmt.Fprintf(w, "%s %3d  %s  (%s, updated %s)\n",
			t.Status.Icon(), t.ID, t.Description, t.Status, t.UpdatedAt.Local().Format(timeLayout))
	}
}

// WriteHelp prints the command table.
func WriteHelp(w io.Writer) {
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, `  add "<description>"            Create a task`)
	fmt.Fprintln(w, "  delete <id>                    Remove a task")
	fmt.Fprintln(w, `  update <id> "<description>"    Replace a task's description`)
	fmt.Fprintln(w, "  mark-done <id>                 Set status Done")
	fmt.Fprintln(w, "  mark-in-progress <id>          Set status InProgress")
	fmt.Fprintln(w, "  list [done|new|in-progress]    List tasks (all when omitted)")
	fmt.Fprintln(w, "  help                           Show this help")
	fmt.Fprintln(w, "  quit, q                        Exit")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Quote descriptions that contain spaces.")
}
