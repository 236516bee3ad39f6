package cli

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/agiangrant/mobl/internal/android"
	"github.com/agiangrant/mobl/internal/apple"
	"github.com/agiangrant/mobl/internal/env"
)

func newDevicesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "devices",
		Short: "List connected Android and Apple devices",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var androidDevices []android.Device
			var appleDevices []apple.Device
			var simulators []apple.Simulator

			g, ctx := errgroup.WithContext(cmd.Context())
			g.Go(func() error {
				e, err := env.New()
				if err != nil {
					return err
				}
				androidEnv, err := android.NewEnv(e)
				if err != nil {
					return nil
				}
				androidDevices, err = android.ListDevices(ctx, androidEnv)
				return err
			})
			if runtime.GOOS == "darwin" {
				g.Go(func() error {
					if !apple.IosDeploy.Present() {
						return nil
					}
					var err error
					appleDevices, err = apple.ListDevices(ctx)
					return err
				})
				g.Go(func() error {
					var err error
					simulators, err = apple.ListSimulators(ctx)
					return err
				})
			}
			if err := g.Wait(); err != nil {
				return err
			}

			for _, d := range androidDevices {
				fmt.Printf("  %s  Android %s\n", d, d.Target.ABI)
			}
			for _, d := range appleDevices {
				fmt.Printf("  %s  iOS\n", d)
			}
			for _, s := range simulators {
				fmt.Printf("  %s  simulator\n", s)
			}
			if len(androidDevices)+len(appleDevices)+len(simulators) == 0 {
				fmt.Println("No devices detected.")
			}
			return nil
		},
	}
}
