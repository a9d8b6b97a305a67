package executor

import (
	"fmt"
	"strings"
)

// ToolError is returned when an external command exits non-zero, times out
// or cannot be started.
type ToolError struct {
	Name     string
	Args     []string
	ExitCode int
	Stderr   string
	TimedOut bool
	Err      error
}

func (e *ToolError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "command '%s' failed", e.Name)
	if e.TimedOut {
		b.WriteString(" (timed out)")
	}
	fmt.Fprintf(&b, ": %v", e.Err)
	if e.Stderr != "" {
		fmt.Fprintf(&b, "\nstderr: %s", e.Stderr)
	}
	return b.String()
}

func (e *ToolError) Unwrap() error {
	return e.Err
}
