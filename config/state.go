// Package config persists potenad's session state and reads its process
// environment.
//
// The session state is a small TOML file holding only durable fields:
//
//	path = "/home/me/notes.txt"
//
// Runtime data (open file contents, notification channels) never passes
// through this package.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
	"unicode/utf8"

	"github.com/pelletier/go-toml/v2"

	"github.com/zhubert/potenad/logger"
)

// State is the durable session record.
type State struct {
	mu       sync.RWMutex
	path     string
	filePath string
}

// stateFile is the on-disk schema. Adding a durable field means adding it here.
type stateFile struct {
	Path string `toml:"path,omitempty" yaml:"path,omitempty" json:"path,omitempty"`
}

// NewState returns an empty state that saves to filePath. An empty filePath
// yields an in-memory state whose Save fails with ErrNoFilePath.
func NewState(filePath string) *State {
	return &State{filePath: filePath}
}

var (
	// ErrNoFilePath is returned by Save when the state has nowhere to be written.
	ErrNoFilePath = errors.New("state has no file path")

	// ErrPathNotUTF8 is returned by Save when the recorded path cannot be
	// stored in TOML without losing bytes.
	ErrPathNotUTF8 = errors.New("path is not valid UTF-8")
)

// Load reads and decodes the state file at filePath. Missing files, read
// failures and decode failures (malformed TOML, unknown keys, wrong types) are
// all returned as errors; a missing file wraps fs.ErrNotExist.
func Load(filePath string) (*State, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read state file: %w", err)
	}

	var f stateFile
	dec := toml.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&f); err != nil {
		return nil, fmt.Errorf("failed to decode state file %s: %w", filePath, err)
	}

	return &State{path: f.Path, filePath: filePath}, nil
}

// LoadOrDefault is Load with every failure replaced by an empty state bound
// to the same filePath. The failure is logged, never returned.
func LoadOrDefault(filePath string) *State {
	log := logger.WithComponent("config")

	if filePath == "" {
		log.Warn("no state file path, session state will not persist")
		return NewState("")
	}

	st, err := Load(filePath)
	switch {
	case err == nil:
		log.Debug("state loaded", "file", filePath, "path", st.Path())
		return st
	case errors.Is(err, fs.ErrNotExist):
		log.Debug("no prior session state", "file", filePath)
	default:
		log.Warn("ignoring unusable state file", "file", filePath, "error", err)
	}
	return NewState(filePath)
}

// Save encodes the durable fields and writes them to the state file,
// creating missing parent directories. The write is not atomic.
func (s *State) Save() error {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.filePath == "" {
		return ErrNoFilePath
	}
	if !utf8.ValidString(s.path) {
		return fmt.Errorf("cannot save %q: %w", s.path, ErrPathNotUTF8)
	}

	data, err := toml.Marshal(stateFile{Path: s.path})
	if err != nil {
		return fmt.Errorf("failed to encode state: %w", err)
	}

	dir := filepath.Dir(s.filePath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create state directory %s: %w", dir, err)
	}

	if err := os.WriteFile(s.filePath, data, 0644); err != nil {
		return fmt.Errorf("failed to write state file: %w", err)
	}

	logger.WithComponent("config").Debug("state saved", "file", s.filePath, "path", s.path)
	return nil
}

// Snapshot returns the on-disk representation of the state, suitable for
// re-encoding in another format.
func (s *State) Snapshot() any {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return stateFile{Path: s.path}
}

// FilePath returns where the state is saved.
func (s *State) FilePath() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.filePath
}

// Path returns the last opened file, or "" if none.
func (s *State) Path() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.path
}

// HasPath reports whether a last opened file is recorded.
func (s *State) HasPath() bool {
	return s.Path() != ""
}

// SetPath records path as the last opened file. An absolute path is kept
// byte for byte. A relative path is prefixed with the working directory so the
// record stays valid from any directory; ".." segments are kept as given.
func (s *State) SetPath(path string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.path = absPath(path)
}

// IsPath reports whether path refers to the recorded file.
func (s *State) IsPath(path string) bool {
	cur := s.Path()
	if cur == "" || path == "" {
		return false
	}
	return SamePath(cur, absPath(path))
}

// Clear forgets the last opened file.
func (s *State) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.path = ""
}
