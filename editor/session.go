package editor

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"sync"

	"github.com/google/uuid"

	"github.com/zhubert/potenad/config"
	"github.com/zhubert/potenad/logger"
	"github.com/zhubert/potenad/paths"
)

// notifyBuffer bounds queued notifications; later ones are dropped.
const notifyBuffer = 16

var (
	// ErrNotPersistent is returned by SaveState when the session has no state file.
	ErrNotPersistent = errors.New("session state is not persisted")
	// ErrNoFile is returned when an operation needs an open file and there is none.
	ErrNoFile = errors.New("no file open")
	// ErrSessionClosed is returned by operations on a closed session.
	ErrSessionClosed = errors.New("session closed")
)

// Session is an editing session: one open file plus the persisted state.
type Session struct {
	id    string
	state *config.State
	log   *slog.Logger

	mu       sync.Mutex
	contents string
	notify   chan string
	closed   bool

	done      chan struct{}
	closeOnce sync.Once
}

// New creates a session whose state is loaded from, and saved to, statePath.
// An empty statePath gives a session without persistence.
func New(statePath string) *Session {
	id := uuid.New().String()
	s := &Session{
		id:     id,
		state:  config.LoadOrDefault(statePath),
		log:    logger.WithSession(id),
		notify: make(chan string, notifyBuffer),
		done:   make(chan struct{}),
	}
	s.log.Info("session started", "stateFile", statePath, "lastPath", s.state.Path())
	return s
}

// NewDefault creates a session persisting to the platform config path. If the
// path cannot be resolved the session still works, without persistence.
func NewDefault() *Session {
	statePath, err := paths.StateFilePath()
	if err != nil {
		logger.Get().Warn("cannot resolve state file, running without persistence", "error", err)
		statePath = ""
	}
	return New(statePath)
}

// ID returns the session's unique identifier.
func (s *Session) ID() string {
	return s.id
}

// State returns the durable session state.
func (s *Session) State() *config.State {
	return s.state
}

// Path returns the open (or last opened) file, or "" if none.
func (s *Session) Path() string {
	return s.state.Path()
}

// Contents returns the in-memory buffer.
func (s *Session) Contents() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.contents
}

// SetContents replaces the in-memory buffer, e.g. after the user edits it.
func (s *Session) SetContents(contents string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.contents = contents
}

// Persistent reports whether SaveState has somewhere to write.
func (s *Session) Persistent() bool {
	return s.state.FilePath() != ""
}

// Notifications returns the channel on which changed file paths are
// published. It is closed by Close.
func (s *Session) Notifications() <-chan string {
	return s.notify
}

// OpenFile reads path fully and makes it the session's document. The buffer
// is replaced, not appended to. On any error the buffer and recorded path are
// left as they were.
//
// The recorded path is path exactly as given when it is absolute. A relative
// path is recorded with the working directory prepended, so it differs from
// the argument but names the same file from any later working directory.
func (s *Session) OpenFile(path string) error {
	if s.isClosed() {
		return ErrSessionClosed
	}

	text, err := readText(path)
	if err != nil {
		s.log.Warn("open failed", "path", path, "error", err)
		return err
	}

	reopened := s.state.IsPath(path)

	s.mu.Lock()
	s.contents = text
	s.mu.Unlock()
	s.state.SetPath(path)

	s.log.Info("file opened", "path", s.state.Path(), "bytes", len(text), "reopened", reopened)
	return nil
}

// ReopenLast opens the file recorded by a previous run. It returns ErrNoFile
// if nothing was recorded.
func (s *Session) ReopenLast() error {
	last := s.state.Path()
	if last == "" {
		return ErrNoFile
	}
	return s.OpenFile(last)
}

// SaveState writes the durable state to disk.
func (s *Session) SaveState() error {
	if !s.Persistent() {
		return ErrNotPersistent
	}
	if err := s.state.Save(); err != nil {
		s.log.Error("failed to save session state", "file", s.state.FilePath(), "error", err)
		return err
	}
	return nil
}

// WriteFile writes the buffer back to the open file, keeping its permissions.
func (s *Session) WriteFile() error {
	path := s.state.Path()
	if path == "" {
		return ErrNoFile
	}

	mode := os.FileMode(0644)
	if info, err := os.Stat(path); err == nil {
		mode = info.Mode().Perm()
	}

	contents := s.Contents()
	if err := os.WriteFile(path, []byte(contents), mode); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	s.log.Info("file written", "path", path, "bytes", len(contents))
	return nil
}

// Close stops any watcher, closes the notification channel and saves the
// state. A session without persistence closes without error. Calling Close
// more than once is safe; only the first call saves.
func (s *Session) Close() error {
	first := false
	s.closeOnce.Do(func() {
		first = true
		close(s.done)

		s.mu.Lock()
		s.closed = true
		close(s.notify)
		s.mu.Unlock()
	})
	if !first {
		return nil
	}

	err := s.SaveState()
	if errors.Is(err, ErrNotPersistent) {
		err = nil
	}
	s.log.Info("session closed", "saveError", err)
	return err
}

func (s *Session) isClosed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.closed
}

// publish queues a notification without blocking.
func (s *Session) publish(path string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return
	}
	select {
	case s.notify <- path:
	default:
		s.log.Debug("notification dropped, buffer full", "path", path)
	}
}
