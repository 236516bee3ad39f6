package cli

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"

	"github.com/agiangrant/mobl/internal/apple"
	"github.com/agiangrant/mobl/internal/config"
	"github.com/agiangrant/mobl/internal/util"
)

func newOpenCmd() *cobra.Command {
	return &cobra.Command{
		Use:       "open {android|apple}",
		Short:     "Open the generated project in Android Studio or Xcode",
		Args:      cobra.ExactArgs(1),
		ValidArgs: []string{"android", "apple"},
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadOrErr()
			if err != nil {
				return err
			}
			switch args[0] {
			case "android":
				return openAndroidStudio(cmd, cfg)
			case "apple":
				if runtime.GOOS != "darwin" {
					return fmt.Errorf("Xcode is only available on macOS")
				}
				return apple.Open(cmd.Context(), cfg)
			default:
				return fmt.Errorf("unknown platform %q", args[0])
			}
		},
	}
}

func openAndroidStudio(cmd *cobra.Command, cfg *config.Config) error {
	projectDir := cfg.Android().ProjectDir()
	if !cfg.Android().ProjectDirExists() {
		return fmt.Errorf("no Android project at %q; run `mobl gen` first", projectDir)
	}
	if runtime.GOOS == "darwin" {
		return util.Run(cmd.Context(), "open", "-a", "Android Studio", projectDir)
	}
	if util.CommandPresent("studio") {
		return util.Run(cmd.Context(), "studio", projectDir)
	}
	return fmt.Errorf("Android Studio launcher not found; open %q manually", projectDir)
}
