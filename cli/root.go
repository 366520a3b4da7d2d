// Package cli implements the potenad command line: the same open/save
// workflow a GUI front end drives, plus state inspection and environment checks.
package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/zhubert/potenad/config"
	"github.com/zhubert/potenad/logger"
	"github.com/zhubert/potenad/paths"
)

const version = "0.1.0"

type globalFlags struct {
	configDir string
	logFile   string
	debug     bool
}

// NewRootCmd builds a fresh command tree. Each call has its own flag state,
// which keeps tests independent.
func NewRootCmd() *cobra.Command {
	flags := &globalFlags{}

	root := &cobra.Command{
		Use:   "potenad",
		Short: "potenad - a minimal text editor shell",
		Long: `potenad opens a text file and remembers the last file you opened
between runs. The session record lives in <config dir>/potenad/config.toml.`,
		Version:       GetVersion(),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return setup(cmd, flags)
		},
	}

	root.PersistentFlags().StringVar(&flags.configDir, "config-dir", "", "directory holding config.toml (default is <user config dir>/potenad, env POTENAD_CONFIG_DIR)")
	root.PersistentFlags().StringVar(&flags.logFile, "log-file", "", "log file (default is <state dir>/potenad/logs/potenad.log, env POTENAD_LOG_FILE)")
	root.PersistentFlags().BoolVar(&flags.debug, "debug", false, "enable debug logging (env POTENAD_DEBUG)")

	root.SetVersionTemplate(`{{with .Name}}{{printf "%s " .}}{{end}}{{printf "version %s" .Version}}
`)

	root.AddCommand(
		newOpenCmd(),
		newLastCmd(),
		newWatchCmd(),
		newStateCmd(),
		newDoctorCmd(),
	)
	return root
}

// Execute runs the potenad command tree. Called by main.main().
func Execute() error {
	defer logger.Close()
	return NewRootCmd().Execute()
}

// setup applies environment settings, then flags on top of them.
func setup(cmd *cobra.Command, flags *globalFlags) error {
	env, err := config.LoadEnv()
	if err != nil {
		return err
	}

	configDir := env.ConfigDir
	if cmd.Flags().Changed("config-dir") {
		configDir = flags.configDir
	}
	logFile := env.LogFile
	if cmd.Flags().Changed("log-file") {
		logFile = flags.logFile
	}
	debug := env.Debug
	if cmd.Flags().Changed("debug") {
		debug = flags.debug
	}

	paths.SetConfigDirOverride(configDir)
	logger.SetDebug(debug)
	if logFile != "" {
		if err := logger.Init(logFile); err != nil {
			return fmt.Errorf("failed to initialize logging: %w", err)
		}
	}

	logger.WithComponent("cli").Debug("command starting", "command", cmd.CommandPath(), "configDir", configDir)
	return nil
}

// GetVersion returns the current version
func GetVersion() string {
	return version
}
