// Package state persists the view state between sessions. FileStore keeps
// it in a YAML file written atomically; MemoryStore keeps it in memory.
package state

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/mesh-intelligence/tabview/pkg/types"
)

// DefaultFileName is the state file name inside the state directory.
const DefaultFileName = "view.yaml"

// FileStore implements types.ViewStore on a YAML file.
type FileStore struct {
	path string
}

// NewFileStore returns a store backed by the file at path. The file and its
// directory are created on the first Save.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// Path returns the backing file path.
func (s *FileStore) Path() string { return s.path }

// Load reads the stored view. A missing or empty file yields the zero view.
func (s *FileStore) Load() (types.PersistedView, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return types.PersistedView{}, nil
	}
	if err != nil {
		return types.PersistedView{}, fmt.Errorf("reading %s: %w", s.path, err)
	}

	var p types.PersistedView
	if err := yaml.Unmarshal(data, &p); err != nil {
		return types.PersistedView{}, fmt.Errorf("parsing %s: %w", s.path, err)
	}
	return p.Normalized(), nil
}

// Save writes the view using the temp-file, fsync, rename pattern so a crash
// never leaves a half-written state file.
func (s *FileStore) Save(view types.PersistedView) error {
	data, err := yaml.Marshal(view.Normalized())
	if err != nil {
		return fmt.Errorf("marshal view: %w", err)
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating state dir: %w", err)
	}
	return writeAtomic(s.path, data)
}

func writeAtomic(path string, data []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), ".view-*.tmp")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tmpName := tmp.Name()

	w := bufio.NewWriter(tmp)
	if _, err := w.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("writing view: %w", err)
	}
	if err := w.Flush(); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("flushing buffer: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("syncing temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("closing temp file: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("renaming temp file: %w", err)
	}
	return nil
}

// MemoryStore implements types.ViewStore in memory. Safe for concurrent use.
type MemoryStore struct {
	mu    sync.Mutex
	view  types.PersistedView
	saves int
}

// NewMemoryStore returns a store preloaded with view.
func NewMemoryStore(view types.PersistedView) *MemoryStore {
	return &MemoryStore{view: view.Normalized()}
}

// Load returns the held view.
func (s *MemoryStore) Load() (types.PersistedView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return copyView(s.view), nil
}

// Save replaces the held view.
func (s *MemoryStore) Save(view types.PersistedView) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.view = view.Normalized()
	s.saves++
	return nil
}

// Saves returns how many times Save has been called.
func (s *MemoryStore) Saves() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.saves
}

func copyView(p types.PersistedView) types.PersistedView {
	sel := make([]int, len(p.Selection))
	copy(sel, p.Selection)
	return types.PersistedView{Reversed: p.Reversed, Selection: sel}
}
