// Package prefs persists the user's last selection between runs so the
// editor can reopen where it left off.
package prefs

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sync"
)

const selectionFileName = "selection.json"

// Selection remembers which project and model were last active. Both fields
// are optional; an empty value means nothing was selected.
//
// Persistence is intentionally best effort: callers must tolerate missing or
// invalid data and fall back to an empty selection.
type Selection struct {
	ProjectID string `json:"selectedProjectId,omitempty"`
	ModelID   string `json:"selectedModelId,omitempty"`
}

// Store loads and saves the last selection.
type Store interface {
	Load() Selection
	Save(Selection) error
}

// FileStore keeps the selection in a JSON file under a directory.
type FileStore struct {
	dir string
}

// NewFileStore creates a store rooted at dir. The directory is created on the
// first save.
func NewFileStore(dir string) *FileStore {
	return &FileStore{dir: dir}
}

// DefaultDir returns the per-user data directory for c4board state.
func DefaultDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return filepath.Join(home, ".local", "share", "c4board")
}

func (s *FileStore) path() string {
	return filepath.Join(s.dir, selectionFileName)
}

// Load reads the persisted selection. Missing or corrupted files yield an
// empty selection rather than an error.
func (s *FileStore) Load() Selection {
	data, err := os.ReadFile(s.path())
	if err != nil {
		return Selection{}
	}
	var sel Selection
	if err := json.Unmarshal(data, &sel); err != nil {
		return Selection{}
	}
	return sel
}

// Save writes the selection atomically via a temp file rename.
func (s *FileStore) Save(sel Selection) error {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(sel, "", "  ")
	if err != nil {
		return err
	}
	tmp := s.path() + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return err
	}
	return os.Rename(tmp, s.path())
}

// MemStore is an in-memory Store for tests.
type MemStore struct {
	mu  sync.Mutex
	sel Selection
}

func NewMemStore() *MemStore {
	return &MemStore{}
}

func (s *MemStore) Load() Selection {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sel
}

func (s *MemStore) Save(sel Selection) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sel = sel
	return nil
}
