// Package editor holds the runtime side of a potenad editing session.
//
// # Overview
//
// A Session pairs the durable config.State (the last opened path) with data
// that only lives as long as the process: the text of the open file and a
// channel of change notifications. A GUI or the CLI drives it through two
// operations, OpenFile and SaveState, and shuts it down with Close.
//
// # Session Lifecycle
//
// 1. Create: New loads the state file. Any failure (missing, unreadable,
// malformed) leaves an empty state bound to the same file. NewDefault resolves
// the platform config path first; if no config directory exists the session
// runs in memory and SaveState returns ErrNotPersistent.
//
// 2. Open: OpenFile reads the whole file, requires valid UTF-8, then replaces
// the buffer and records the path. A failed open changes nothing.
//
// 3. Watch (optional): Watch publishes the open file's path on Notifications
// whenever it changes on disk.
//
// 4. Close: stops any watcher, closes the notification channel and saves the
// state.
//
// # Functions
//
// New: Creates a session persisting to the given state file.
//
// NewDefault: Creates a session persisting to the platform config path.
//
// OpenFile: Loads a file into the buffer and records it as the last file.
//
// ReopenLast: Opens the file recorded by a previous run.
//
// SaveState: Writes the session state to disk.
//
// WriteFile: Writes the buffer back to the open file.
package editor
