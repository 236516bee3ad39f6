// Package cli wires the command tree.
package cli

import (
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var (
	verbose        bool
	nonInteractive bool
)

// NewRootCmd builds the mobl command tree.
func NewRootCmd(version string) *cobra.Command {
	root := &cobra.Command{
		Use:     "mobl",
		Short:   "Scaffold, configure, and build mobile projects for a Rust crate",
		Version: version,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := zerolog.WarnLevel
			if verbose {
				level = zerolog.DebugLevel
			}
			zerolog.SetGlobalLevel(level)
			log.Logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
				Level(level).
				With().Timestamp().Logger()
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	root.PersistentFlags().BoolVar(&nonInteractive, "non-interactive", false, "never prompt; fail when input would be required")

	root.AddCommand(
		newInitCmd(),
		newGenCmd(),
		newDoctorCmd(version),
		newDevicesCmd(),
		newOpenCmd(),
		newAndroidCmd(),
		newAppleCmd(),
	)
	return root
}

// Execute runs the CLI and returns the process exit code.
func Execute(version string) int {
	if err := NewRootCmd(version).Execute(); err != nil {
		log.Error().Err(err).Msg("command failed")
		return 1
	}
	return 0
}
