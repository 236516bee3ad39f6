package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/agiangrant/mobl/internal/android"
	"github.com/agiangrant/mobl/internal/config"
	"github.com/agiangrant/mobl/internal/env"
	"github.com/agiangrant/mobl/internal/metadata"
)

func newAndroidCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "android",
		Short: "Android build and deployment commands",
	}
	cmd.AddCommand(
		newAndroidBuildCmd(),
		newAndroidApkCmd(),
		newAndroidAabCmd(),
		newAndroidRunCmd(),
		newAndroidDevicesCmd(),
		newAndroidEnvCmd(),
		newAndroidStacktraceCmd(),
	)
	return cmd
}

func androidSetup() (*android.Env, *config.Config, error) {
	cfg, err := config.LoadOrErr()
	if err != nil {
		return nil, nil, err
	}
	e, err := env.New()
	if err != nil {
		return nil, nil, err
	}
	androidEnv, err := android.NewEnv(e)
	if err != nil {
		return nil, nil, err
	}
	return androidEnv, cfg, nil
}

func resolveArchs(args []string) ([]android.Target, error) {
	if len(args) == 0 {
		return android.AllTargets(), nil
	}
	targets := make([]android.Target, 0, len(args))
	for _, arch := range args {
		target, err := android.TargetForArch(arch)
		if err != nil {
			return nil, err
		}
		targets = append(targets, target)
	}
	return targets, nil
}

func newAndroidBuildCmd() *cobra.Command {
	var release bool
	cmd := &cobra.Command{
		Use:   "build [archs...]",
		Short: "Cross-compile the crate for Android targets",
		RunE: func(cmd *cobra.Command, args []string) error {
			androidEnv, cfg, err := androidSetup()
			if err != nil {
				return err
			}
			targets, err := resolveArchs(args)
			if err != nil {
				return err
			}
			meta, err := metadata.Load(cfg.App().RootDir())
			if err != nil {
				return err
			}
			for _, target := range targets {
				if err := android.CompileLib(cmd.Context(), androidEnv, cfg, &meta.Android, target, release); err != nil {
					return err
				}
				fmt.Printf("  ✓ Built %s for %s\n", cfg.Android().SoName(), target.Triple)
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&release, "release", false, "build with optimizations")
	return cmd
}

func newAndroidApkCmd() *cobra.Command {
	var release bool
	cmd := &cobra.Command{
		Use:   "apk [archs...]",
		Short: "Build APKs",
		RunE: func(cmd *cobra.Command, args []string) error {
			androidEnv, cfg, err := androidSetup()
			if err != nil {
				return err
			}
			targets, err := resolveArchs(args)
			if err != nil {
				return err
			}
			return android.BuildApk(cmd.Context(), androidEnv, cfg, targets, release)
		},
	}
	cmd.Flags().BoolVar(&release, "release", false, "build with optimizations")
	return cmd
}

func newAndroidAabCmd() *cobra.Command {
	var release bool
	var install bool
	cmd := &cobra.Command{
		Use:   "aab [archs...]",
		Short: "Build App Bundles",
		RunE: func(cmd *cobra.Command, args []string) error {
			androidEnv, cfg, err := androidSetup()
			if err != nil {
				return err
			}
			targets, err := resolveArchs(args)
			if err != nil {
				return err
			}
			if err := android.BuildAab(cmd.Context(), androidEnv, cfg, targets, release); err != nil {
				return err
			}
			if !install {
				return nil
			}
			if len(targets) != 1 {
				return fmt.Errorf("--install needs exactly one arch")
			}
			return installAab(cmd.Context(), androidEnv, cfg, targets[0], release)
		},
	}
	cmd.Flags().BoolVar(&release, "release", false, "build with optimizations")
	cmd.Flags().BoolVar(&install, "install", false, "install on a connected device via bundletool")
	return cmd
}

// installAab converts the bundle with bundletool and pushes it to the first
// connected device.
func installAab(ctx context.Context, androidEnv *android.Env, cfg *config.Config, target android.Target, release bool) error {
	device, err := pickDevice(ctx, androidEnv, "")
	if err != nil {
		return err
	}
	tool, err := android.InstallBundletool(ctx, nil)
	if err != nil {
		return err
	}
	aab := android.AabPath(cfg, target, release)
	apks := aab + "s"
	if err := tool.BuildApks(ctx, aab, apks); err != nil {
		return err
	}
	return tool.InstallApks(ctx, apks, device.Serial)
}

func pickDevice(ctx context.Context, androidEnv *android.Env, serial string) (android.Device, error) {
	devices, err := android.ListDevices(ctx, androidEnv)
	if err != nil {
		return android.Device{}, err
	}
	if len(devices) == 0 {
		return android.Device{}, fmt.Errorf("no Android devices connected")
	}
	if serial == "" {
		return devices[0], nil
	}
	for _, device := range devices {
		if device.Serial == serial {
			return device, nil
		}
	}
	return android.Device{}, fmt.Errorf("no connected device with serial %q", serial)
}

func newAndroidRunCmd() *cobra.Command {
	var (
		release  bool
		serial   string
		noLogcat bool
		filter   string
	)
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Build, install, and launch on a connected device",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			androidEnv, cfg, err := androidSetup()
			if err != nil {
				return err
			}
			device, err := pickDevice(cmd.Context(), androidEnv, serial)
			if err != nil {
				return err
			}
			fmt.Printf("Running on %s\n", device)
			return device.Run(cmd.Context(), androidEnv, cfg, android.RunOptions{
				Release:  release,
				Filter:   android.LogFilter(filter),
				NoLogcat: noLogcat,
			})
		},
	}
	cmd.Flags().BoolVar(&release, "release", false, "build with optimizations")
	cmd.Flags().StringVarP(&serial, "device", "d", "", "device serial (defaults to the first one)")
	cmd.Flags().BoolVar(&noLogcat, "no-logcat", false, "exit after launching instead of tailing the log")
	cmd.Flags().StringVar(&filter, "filter", "", "logcat priority filter (E, W, or I)")
	return cmd
}

func newAndroidDevicesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "devices",
		Short: "List connected Android devices",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			androidEnv, _, err := androidSetup()
			if err != nil {
				return err
			}
			devices, err := android.ListDevices(cmd.Context(), androidEnv)
			if err != nil {
				return err
			}
			if len(devices) == 0 {
				fmt.Println("No devices detected.")
				return nil
			}
			for _, device := range devices {
				fmt.Printf("  %s  %s  %s\n", device.Serial, device, device.Target.ABI)
			}
			return nil
		},
	}
}

func newAndroidEnvCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "env",
		Short: "Print the Android environment as seen by mobl",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := env.New()
			if err != nil {
				return err
			}
			androidEnv, err := android.NewEnv(e)
			if err != nil {
				return err
			}
			fmt.Printf("ANDROID_SDK_ROOT=%s\n", androidEnv.SdkRoot())
			fmt.Printf("NDK_HOME=%s\n", androidEnv.Ndk().Home())
			if version, err := androidEnv.Ndk().Version(); err == nil {
				fmt.Printf("NDK version: %s\n", version)
			}
			return nil
		},
	}
}

func newAndroidStacktraceCmd() *cobra.Command {
	var release bool
	var serial string
	cmd := &cobra.Command{
		Use:   "stacktrace",
		Short: "Symbolize the most recent native crash from the device log",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			androidEnv, cfg, err := androidSetup()
			if err != nil {
				return err
			}
			device, err := pickDevice(cmd.Context(), androidEnv, serial)
			if err != nil {
				return err
			}
			return device.Stacktrace(cmd.Context(), androidEnv, cfg, release)
		},
	}
	cmd.Flags().BoolVar(&release, "release", false, "use release build symbols")
	cmd.Flags().StringVarP(&serial, "device", "d", "", "device serial (defaults to the first one)")
	return cmd
}
