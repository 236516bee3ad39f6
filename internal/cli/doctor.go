package cli

import (
	"github.com/spf13/cobra"

	"github.com/agiangrant/mobl/internal/doctor"
)

func newDoctorCmd(version string) *cobra.Command {
	return &cobra.Command{
		Use:   "doctor",
		Short: "Check the host toolchains and report what's missing",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			doctor.Run(cmd.Context(), version).Print()
			return nil
		},
	}
}
