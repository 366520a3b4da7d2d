package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"

	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/zhubert/potenad/config"
	"github.com/zhubert/potenad/paths"
)

func newStateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "state",
		Short: "Inspect or reset the saved session state",
	}
	cmd.AddCommand(newStateShowCmd(), newStatePathCmd(), newStateClearCmd())
	return cmd
}

func newStateShowCmd() *cobra.Command {
	var format string
	cmd := &cobra.Command{
		Use:   "show",
		Short: "Print the saved session state",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			file, err := paths.StateFilePath()
			if err != nil {
				return err
			}
			st, err := config.Load(file)
			if errors.Is(err, fs.ErrNotExist) {
				st = config.NewState(file)
			} else if err != nil {
				return err
			}
			return encodeState(cmd.OutOrStdout(), st, format)
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", "toml", "output format: toml, yaml or json")
	return cmd
}

func newStatePathCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Print the location of the session state file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			file, err := paths.StateFilePath()
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), file)
			return nil
		},
	}
}

func newStateClearCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Forget the last opened file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			file, err := paths.StateFilePath()
			if err != nil {
				return err
			}
			st := config.LoadOrDefault(file)
			st.Clear()
			if err := st.Save(); err != nil {
				return fmt.Errorf("failed to save session state: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), "session state cleared")
			return nil
		},
	}
}

// encodeState writes the durable part of st in the requested format.
func encodeState(w io.Writer, st *config.State, format string) error {
	snap := st.Snapshot()

	var (
		data []byte
		err  error
	)
	switch format {
	case "toml":
		data, err = toml.Marshal(snap)
	case "yaml":
		data, err = yaml.Marshal(snap)
	case "json":
		data, err = json.MarshalIndent(snap, "", "  ")
		data = append(data, '\n')
	default:
		return fmt.Errorf("unknown format %q (want toml, yaml or json)", format)
	}
	if err != nil {
		return fmt.Errorf("failed to encode state as %s: %w", format, err)
	}

	_, err = w.Write(data)
	return err
}
