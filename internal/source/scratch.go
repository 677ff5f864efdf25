package source

import (
	"fmt"
	"os"
)

// Scratch is the process-lifetime directory remote downloads are written to.
// Nothing else writes into it.
type Scratch struct {
	dir string
}

// NewScratch creates a fresh scratch directory under parent.
// If parent is empty, uses the system temp directory.
func NewScratch(parent string) (*Scratch, error) {
	if parent != "" {
		if err := os.MkdirAll(parent, 0700); err != nil {
			return nil, fmt.Errorf("failed to create scratch parent: %w", err)
		}
	}

	dir, err := os.MkdirTemp(parent, "riffle-")
	if err != nil {
		return nil, fmt.Errorf("failed to create scratch directory: %w", err)
	}

	return &Scratch{dir: dir}, nil
}

// Dir returns the scratch directory path.
func (s *Scratch) Dir() string {
	return s.dir
}

// Close removes the scratch directory and everything in it.
func (s *Scratch) Close() error {
	if s == nil || s.dir == "" {
		return nil
	}
	if err := os.RemoveAll(s.dir); err != nil {
		return fmt.Errorf("failed to remove scratch directory: %w", err)
	}
	return nil
}
