package editor

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/zhubert/potenad/config"
)

// watchDebounce coalesces the burst of events a single save usually produces.
const watchDebounce = 100 * time.Millisecond

// Watch publishes the open file's path on Notifications each time the file is
// written, replaced, or removed on disk. It follows the file that was open when
// Watch was called and blocks until ctx is cancelled or the session is closed.
//
// The parent directory is watched rather than the file so that editors which
// save by renaming a temp file over the original are still seen.
func (s *Session) Watch(ctx context.Context) error {
	if s.isClosed() {
		return ErrSessionClosed
	}
	path := s.state.Path()
	if path == "" {
		return ErrNoFile
	}

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer w.Close()

	dir, target := watchTarget(path)
	if err := w.Add(dir); err != nil {
		return fmt.Errorf("failed to watch %s: %w", dir, err)
	}
	s.log.Info("watch started", "path", path)
	defer s.log.Info("watch stopped", "path", path)

	var timer *time.Timer
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil

		case <-s.done:
			return nil

		case event, ok := <-w.Events:
			if !ok {
				return nil
			}
			if !relevant(event, target) {
				continue
			}
			s.log.Debug("file event", "op", event.Op.String(), "path", event.Name)
			if timer == nil {
				timer = time.AfterFunc(watchDebounce, func() { s.publish(path) })
			} else {
				timer.Reset(watchDebounce)
			}

		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			s.log.Error("watcher error", "error", err)
		}
	}
}

// watchTarget resolves the directory holding path through the filesystem, so
// that "link/../x.txt" watches the directory link's parent really is. It
// returns that directory and the file's path inside it.
func watchTarget(path string) (dir, target string) {
	parent := filepath.Dir(path)
	if i := strings.LastIndexByte(path, filepath.Separator); i > 0 {
		parent = path[:i]
	}
	if resolved, err := filepath.EvalSymlinks(parent); err == nil {
		parent = resolved
	} else {
		parent = filepath.Dir(path)
	}
	return parent, filepath.Join(parent, filepath.Base(path))
}

// relevant reports whether event concerns path with an operation that changes
// what is on disk.
func relevant(event fsnotify.Event, path string) bool {
	if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) &&
		!event.Has(fsnotify.Rename) && !event.Has(fsnotify.Remove) {
		return false
	}
	return config.SamePath(filepath.Clean(event.Name), path)
}
