package cmd

import (
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"os"

	"github.com/nibzard/tasker/internal/task"
)

// doctorCommand checks the configuration and the task store file.
func (a *app) doctorCommand(args []string) error {
	flags := flag.NewFlagSet("tasker doctor", flag.ContinueOnError)
	flags.SetOutput(a.err)
	verbose := flags.Bool("v", false, "Verbose output")
	if err := flags.Parse(args); err != nil {
		return err
	}
	if flags.NArg() > 0 {
		return fmt.Errorf("unexpected arguments: %v", flags.Args())
	}

	w := a.out
	fmt.Fprintln(w, "tasker doctor")
	fmt.Fprintln(w, "=============")
	fmt.Fprintln(w)

	allOK := true

	// Check project root
	fmt.Fprintf(w, "Project root: %s\n", a.cfg.ProjectRoot)
	if _, err := os.Stat(a.cfg.ProjectRoot); err != nil {
		fmt.Fprintf(w, "  ❌ Error: %v\n", err)
		allOK = false
	} else {
		fmt.Fprintln(w, "  ✅ OK")
	}
	fmt.Fprintln(w)

	// Config files
	fmt.Fprintln(w, "Config files:")
	if len(a.sources.Files) == 0 {
		fmt.Fprintln(w, "  ⚠️  None found (using defaults)")
	}
	for _, f := range a.sources.Files {
		fmt.Fprintf(w, "  ✅ %s\n", f)
	}
	fmt.Fprintln(w)

	// Check store file
	fmt.Fprintf(w, "Store file: %s\n", a.cfg.StoreFile)
	info, err := os.Stat(a.cfg.StoreFile)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		fmt.Fprintln(w, "  ⚠️  Not found (created by the first add)")
	case err != nil:
		fmt.Fprintf(w, "  ❌ Error: %v\n", err)
		allOK = false
	case info.IsDir():
		fmt.Fprintln(w, "  ❌ Error: path is a directory")
		allOK = false
	default:
		store, loadErr := a.repo.Snapshot()
		if loadErr != nil {
			fmt.Fprintf(w, "  ❌ Invalid: %v\n", loadErr)
			allOK = false
			break
		}
		fmt.Fprintln(w, "  ✅ Valid")
		counts := store.Counts()
		fmt.Fprintf(w, "  Tasks: %d (New: %d, InProgress: %d, Done: %d)\n",
			store.Len(), counts[task.StatusNew], counts[task.StatusInProgress], counts[task.StatusDone])
		if next, err := store.NextID(); err != nil {
			fmt.Fprintf(w, "  ⚠️  Next id: %v\n", err)
		} else {
			fmt.Fprintf(w, "  Next id: %d\n", next)
		}
		if *verbose {
			for _, t := range store.List(task.FilterAll) {
				fmt.Fprintf(w, "    - %s\n", t)
			}
		}
	}
	fmt.Fprintln(w)

	if allOK {
		fmt.Fprintln(w, "✅ All checks passed!")
		return nil
	}
	fmt.Fprintln(w, "⚠️  Some checks failed.")
	return fmt.Errorf("doctor checks failed")
}
