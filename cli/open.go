package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/zhubert/potenad/editor"
)

func newOpenCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "open FILE",
		Short: "Open FILE, print its contents and remember it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s := editor.NewDefault()
			return runSession(cmd.OutOrStdout(), s, func() error {
				return s.OpenFile(args[0])
			})
		},
	}
}

func newLastCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "last",
		Short: "Reopen the last file and print its contents",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s := editor.NewDefault()
			return runSession(cmd.OutOrStdout(), s, func() error {
				if err := s.ReopenLast(); err != nil {
					if errors.Is(err, editor.ErrNoFile) {
						return errors.New("no file has been opened yet")
					}
					return err
				}
				return nil
			})
		},
	}
}

// runSession runs open against s, prints the buffer on success and always
// closes the session so the state is saved. An open error takes precedence
// over a save error.
func runSession(out io.Writer, s *editor.Session, open func() error) error {
	openErr := open()
	if openErr == nil {
		fmt.Fprint(out, s.Contents())
	}

	closeErr := s.Close()
	if openErr != nil {
		return openErr
	}
	if closeErr != nil {
		return fmt.Errorf("failed to save session state: %w", closeErr)
	}
	return nil
}

func newWatchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "watch [FILE]",
		Short: "Open FILE (or the last file) and report changes until interrupted",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s := editor.NewDefault()

			var err error
			if len(args) == 1 {
				err = s.OpenFile(args[0])
			} else {
				err = s.ReopenLast()
			}
			if err != nil {
				if errors.Is(err, editor.ErrNoFile) {
					err = errors.New("no file given and no file has been opened yet")
				}
				if closeErr := s.Close(); closeErr != nil {
					return errors.Join(err, fmt.Errorf("failed to save session state: %w", closeErr))
				}
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			watchErr := watch(ctx, cmd.OutOrStdout(), s)
			if err := s.Close(); err != nil {
				return fmt.Errorf("failed to save session state: %w", err)
			}
			return watchErr
		},
	}
}

// watch prints the path and new size of the file each time it changes,
// reloading the buffer, until ctx ends.
func watch(ctx context.Context, out io.Writer, s *editor.Session) error {
	fmt.Fprintf(out, "watching %s\n", s.Path())

	errCh := make(chan error, 1)
	go func() { errCh <- s.Watch(ctx) }()

	for {
		select {
		case err := <-errCh:
			return err
		case path, ok := <-s.Notifications():
			if !ok {
				return <-errCh
			}
			if err := s.OpenFile(path); err != nil {
				fmt.Fprintf(out, "changed: %s (unreadable: %v)\n", path, err)
				continue
			}
			fmt.Fprintf(out, "changed: %s (%d bytes)\n", path, len(s.Contents()))
		}
	}
}
