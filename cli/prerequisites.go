package cli

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/zhubert/potenad/config"
	"github.com/zhubert/potenad/logger"
	"github.com/zhubert/potenad/paths"
)

// Prerequisite is one environment condition potenad depends on.
type Prerequisite struct {
	Name        string                 // Short name (e.g., "config dir")
	Required    bool                   // Whether session state persistence needs it
	Description string                 // Human-readable description
	Probe       func() (string, error) // Returns a detail string on success
}

// DefaultPrerequisites returns the checks run by "potenad doctor"
func DefaultPrerequisites() []Prerequisite {
	return []Prerequisite{
		{
			Name:        "config dir",
			Required:    true,
			Description: "user configuration directory can be resolved",
			Probe:       paths.ConfigDir,
		},
		{
			Name:        "config writable",
			Required:    true,
			Description: "session state can be written",
			Probe:       probeConfigWritable,
		},
		{
			Name:        "state file",
			Required:    false, // A bad file only costs the previous session
			Description: "saved session state is readable",
			Probe:       probeStateFile,
		},
		{
			Name:        "log dir",
			Required:    false,
			Description: "log file can be written",
			Probe:       probeLogDir,
		},
	}
}

// CheckResult contains the result of checking a prerequisite
type CheckResult struct {
	Prerequisite Prerequisite
	Found        bool
	Detail       string
	Error        error
}

// Check runs a single prerequisite probe
func Check(prereq Prerequisite) CheckResult {
	result := CheckResult{Prerequisite: prereq}

	detail, err := prereq.Probe()
	if err != nil {
		result.Error = fmt.Errorf("%s: %w", prereq.Name, err)
		return result
	}

	result.Found = true
	result.Detail = detail
	return result
}

// CheckAll runs all prerequisites and returns results
func CheckAll(prereqs []Prerequisite) []CheckResult {
	results := make([]CheckResult, len(prereqs))
	for i, prereq := range prereqs {
		results[i] = Check(prereq)
	}
	return results
}

// ValidateRequired returns nil if every required prerequisite in results
// passed, otherwise an error describing what failed
func ValidateRequired(results []CheckResult) error {
	var missing []string

	for _, r := range results {
		if !r.Prerequisite.Required || r.Found {
			continue
		}
		missing = append(missing, fmt.Sprintf("  - %s (%s)\n    %v",
			r.Prerequisite.Name, r.Prerequisite.Description, r.Error))
	}

	if len(missing) > 0 {
		return fmt.Errorf("session state will not persist:\n%s", strings.Join(missing, "\n"))
	}

	return nil
}

// FormatCheckResults formats check results for display
func FormatCheckResults(results []CheckResult) string {
	var sb strings.Builder

	sb.WriteString("Environment:\n")
	for _, r := range results {
		status := "✓"
		if !r.Found {
			if r.Prerequisite.Required {
				status = "✗"
			} else {
				status = "○"
			}
		}

		sb.WriteString(fmt.Sprintf("  %s %s", status, r.Prerequisite.Name))
		if r.Found && r.Detail != "" {
			sb.WriteString(fmt.Sprintf(" (%s)", r.Detail))
		} else if !r.Found {
			if r.Prerequisite.Required {
				sb.WriteString(" [REQUIRED]")
			} else {
				sb.WriteString(" [optional]")
			}
			if r.Error != nil {
				sb.WriteString(fmt.Sprintf(": %v", r.Error))
			}
		}
		sb.WriteString("\n")
	}

	return sb.String()
}

func probeConfigWritable() (string, error) {
	dir, err := paths.ConfigDir()
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", err
	}
	f, err := os.CreateTemp(dir, ".doctor-*")
	if err != nil {
		return "", err
	}
	name := f.Name()
	f.Close()
	return dir, os.Remove(name)
}

func probeStateFile() (string, error) {
	file, err := paths.StateFilePath()
	if err != nil {
		return "", err
	}
	st, err := config.Load(file)
	if errors.Is(err, fs.ErrNotExist) {
		return "no saved session", nil
	}
	if err != nil {
		return "", err
	}
	if !st.HasPath() {
		return "no last file", nil
	}
	return "last file " + st.Path(), nil
}

// probeLogDir reports the active log file, or the default location when
// logging has not started yet.
func probeLogDir() (string, error) {
	if p := logger.Path(); p != "" {
		return p, nil
	}
	dir, err := paths.LogsDir()
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", err
	}
	return filepath.Clean(dir), nil
}

func newDoctorCmd() *cobra.Command {
	var clearLogs bool
	cmd := &cobra.Command{
		Use:   "doctor",
		Short: "Check that potenad can persist its session state",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if clearLogs {
				n, err := logger.ClearLogs()
				if err != nil {
					return fmt.Errorf("failed to clear logs: %w", err)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Removed %d log file(s)\n", n)
			}
			results := CheckAll(DefaultPrerequisites())
			fmt.Fprint(cmd.OutOrStdout(), FormatCheckResults(results))
			return ValidateRequired(results)
		},
	}
	cmd.Flags().BoolVar(&clearLogs, "clear-logs", false, "remove potenad log files before checking")
	return cmd
}
