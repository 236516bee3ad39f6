package cli

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"

	"github.com/agiangrant/mobl/internal/apple"
	"github.com/agiangrant/mobl/internal/config"
	"github.com/agiangrant/mobl/internal/env"
)

func newAppleCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "apple",
		Short: "iOS build and deployment commands",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if runtime.GOOS != "darwin" {
				return fmt.Errorf("Apple workflows require macOS")
			}
			return nil
		},
	}
	cmd.AddCommand(
		newAppleBuildCmd(),
		newAppleArchiveCmd(),
		newAppleExportCmd(),
		newAppleRunCmd(),
		newAppleListCmd(),
		newApplePodCmd(),
		newAppleOpenCmd(),
	)
	return cmd
}

func appleSetup() (*env.Env, *config.Config, error) {
	cfg, err := config.LoadOrErr()
	if err != nil {
		return nil, nil, err
	}
	if _, err := cfg.Apple(); err != nil {
		return nil, nil, err
	}
	e, err := env.New()
	if err != nil {
		return nil, nil, err
	}
	return e, cfg, nil
}

func newAppleBuildCmd() *cobra.Command {
	var release, sim bool
	cmd := &cobra.Command{
		Use:   "build",
		Short: "Build the app for a device or the simulator",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			e, cfg, err := appleSetup()
			if err != nil {
				return err
			}
			return apple.Build(cmd.Context(), e, cfg, sim, release)
		},
	}
	cmd.Flags().BoolVar(&release, "release", false, "build with optimizations")
	cmd.Flags().BoolVar(&sim, "sim", false, "build for the simulator")
	return cmd
}

func newAppleArchiveCmd() *cobra.Command {
	var buildNumber int
	cmd := &cobra.Command{
		Use:   "archive",
		Short: "Produce an .xcarchive for distribution",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			e, cfg, err := appleSetup()
			if err != nil {
				return err
			}
			return apple.Archive(cmd.Context(), e, cfg, buildNumber)
		},
	}
	cmd.Flags().IntVar(&buildNumber, "build-number", 0, "append a build number to the project version")
	return cmd
}

func newAppleExportCmd() *cobra.Command {
	var buildNumber int
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Archive and export a signed IPA",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			e, cfg, err := appleSetup()
			if err != nil {
				return err
			}
			if err := apple.Archive(cmd.Context(), e, cfg, buildNumber); err != nil {
				return err
			}
			_, err = apple.ExportIpa(cmd.Context(), cfg)
			return err
		},
	}
	cmd.Flags().IntVar(&buildNumber, "build-number", 0, "append a build number to the project version")
	return cmd
}

func newAppleRunCmd() *cobra.Command {
	var release, sim bool
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Build and run on a device or the simulator",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			e, cfg, err := appleSetup()
			if err != nil {
				return err
			}
			ctx := cmd.Context()
			if sim {
				if err := apple.Build(ctx, e, cfg, true, release); err != nil {
					return err
				}
				appPath, err := apple.SimulatorAppPath(cfg, release)
				if err != nil {
					return err
				}
				sims, err := apple.ListSimulators(ctx)
				if err != nil {
					return err
				}
				if len(sims) == 0 {
					return fmt.Errorf("no simulators available")
				}
				target := sims[0]
				for _, s := range sims {
					if s.Booted {
						target = s
						break
					}
				}
				appleCfg, err := cfg.Apple()
				if err != nil {
					return err
				}
				fmt.Printf("Running on %s\n", target)
				return target.Run(ctx, appPath, appleCfg.BundleIdentifier())
			}
			devices, err := apple.ListDevices(ctx)
			if err != nil {
				return err
			}
			if len(devices) == 0 {
				return fmt.Errorf("no iOS devices connected")
			}
			if err := apple.Archive(ctx, e, cfg, 0); err != nil {
				return err
			}
			if _, err := apple.ExportIpa(ctx, cfg); err != nil {
				return err
			}
			appPath, err := apple.ExtractApp(ctx, cfg)
			if err != nil {
				return err
			}
			fmt.Printf("Running on %s\n", devices[0])
			return devices[0].Run(ctx, appPath, nonInteractive)
		},
	}
	cmd.Flags().BoolVar(&release, "release", false, "build with optimizations")
	cmd.Flags().BoolVar(&sim, "sim", false, "run in the simulator")
	return cmd
}

func newAppleListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List development teams with signing certificates",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			teams, err := apple.FindTeams(cmd.Context())
			if err != nil {
				return err
			}
			if len(teams) == 0 {
				fmt.Println("No development teams found.")
				return nil
			}
			for _, team := range teams {
				fmt.Printf("  %s  %s\n", team.ID, team.Name)
			}
			return nil
		},
	}
}

func newApplePodCmd() *cobra.Command {
	var update bool
	cmd := &cobra.Command{
		Use:   "pod",
		Short: "Run CocoaPods in the generated project",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, cfg, err := appleSetup()
			if err != nil {
				return err
			}
			return apple.PodInstall(cmd.Context(), cfg, update)
		},
	}
	cmd.Flags().BoolVar(&update, "update", false, "refresh the spec repos before installing")
	return cmd
}

func newAppleOpenCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "open",
		Short: "Open the generated project in Xcode",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, cfg, err := appleSetup()
			if err != nil {
				return err
			}
			return apple.Open(cmd.Context(), cfg)
		},
	}
}
