package render

import (
	"fmt"
	"os"
	"path/filepath"
)

// scratch is a per-segment working directory. It is acquired before the
// clip cut and released on every exit path of Render.
type scratch struct {
	dir string
}

func acquireScratch(root string, index int) (*scratch, error) {
	if err := os.MkdirAll(root, 0755); err != nil {
		return nil, fmt.Errorf("create temp root: %w", err)
	}
	dir, err := os.MkdirTemp(root, fmt.Sprintf("segment-%04d-*", index))
	if err != nil {
		return nil, fmt.Errorf("create scratch dir: %w", err)
	}
	return &scratch{dir: dir}, nil
}

func (s *scratch) path(name string) string {
	return filepath.Join(s.dir, name)
}

func (s *scratch) release() error {
	return os.RemoveAll(s.dir)
}
