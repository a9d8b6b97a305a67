package testsupport

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

// Call records a single command invocation.
type Call struct {
	Dir  string
	Name string
	Args []string
}

// Output returns the last argument resolved against Dir, which is where
// ffmpeg writes its result.
func (c Call) Output() string {
	if len(c.Args) == 0 {
		return ""
	}
	out := c.Args[len(c.Args)-1]
	if c.Dir != "" && !filepath.IsAbs(out) {
		out = filepath.Join(c.Dir, out)
	}
	return out
}

// Has reports whether any argument contains substr.
func (c Call) Has(substr string) bool {
	for _, arg := range c.Args {
		if strings.Contains(arg, substr) {
			return true
		}
	}
	return false
}

// FakeExecutor satisfies executor.Executor without spawning processes.
// Handler decides the outcome of each call; a nil Handler succeeds and
// writes a placeholder output file.
type FakeExecutor struct {
	Handler func(ctx context.Context, call Call) (string, error)

	mu    sync.Mutex
	calls []Call
}

func (f *FakeExecutor) Execute(ctx context.Context, name string, args ...string) (string, error) {
	return f.ExecuteInDir(ctx, "", name, args...)
}

func (f *FakeExecutor) ExecuteInDir(ctx context.Context, dir string, name string, args ...string) (string, error) {
	call := Call{Dir: dir, Name: name, Args: append([]string(nil), args...)}

	f.mu.Lock()
	f.calls = append(f.calls, call)
	f.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return "", err
	}
	if f.Handler != nil {
		return f.Handler(ctx, call)
	}
	return "", TouchOutput(call)
}

// Calls returns a copy of the recorded calls.
func (f *FakeExecutor) Calls() []Call {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]Call(nil), f.calls...)
}

// CallsWith returns the recorded calls with an argument containing substr.
func (f *FakeExecutor) CallsWith(substr string) []Call {
	var out []Call
	for _, c := range f.Calls() {
		if c.Has(substr) {
			out = append(out, c)
		}
	}
	return out
}

// TouchOutput writes a placeholder file at the call's output path.
func TouchOutput(call Call) error {
	out := call.Output()
	if out == "" {
		return nil
	}
	return os.WriteFile(out, []byte("fake"), 0644)
}
