// Package editor composes tasks in the user's $EDITOR.
package editor

import (
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
)

// DefaultEditor is run when $EDITOR is unset.
const DefaultEditor = "vi"

// Command returns the editor to run, from $EDITOR or DefaultEditor.
func Command() string {
	if editor := os.Getenv("EDITOR"); editor != "" {
		return editor
	}
	return DefaultEditor
}

// Edit runs the editor on path attached to the given streams and waits for
// it to exit. A non-zero exit status is reported as an error.
func Edit(path string, in io.Reader, out, errOut io.Writer) error {
	cmd := exec.Command(Command(), path)
	cmd.Stdin = in
	cmd.Stdout = out
	cmd.Stderr = errOut

	if err := cmd.Run(); err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return fmt.Errorf("editor exited with status %d", exitErr.ExitCode())
		}
		return fmt.Errorf("run editor %s: %w", Command(), err)
	}
	return nil
}
