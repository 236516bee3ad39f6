package cli

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/agiangrant/mobl/internal/apple"
	"github.com/agiangrant/mobl/internal/config"
	"github.com/agiangrant/mobl/internal/templating"
	"github.com/agiangrant/mobl/internal/util"
)

func newInitCmd() *cobra.Command {
	var (
		name         string
		domain       string
		team         string
		force        bool
		skipDevTools bool
	)
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Create " + config.FileName + " and scaffold the project skeleton",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cwd, err := os.Getwd()
			if err != nil {
				return err
			}
			if _, err := os.Stat(filepath.Join(cwd, config.FileName)); err == nil && !force {
				return fmt.Errorf("%s already exists (use --force to overwrite)", config.FileName)
			}

			if name == "" {
				fallback := filepath.Base(cwd)
				if name, err = prompt("App name", fallback); err != nil {
					return err
				}
			}
			if err := config.CheckAppName(name); err != nil {
				return err
			}
			if domain == "" {
				if domain, err = prompt("Domain", "example.com"); err != nil {
					return err
				}
			}
			if err := config.CheckDomainSyntax(domain); err != nil {
				return err
			}
			if team == "" {
				team, err = prompt("Apple development team id (blank to skip)", "")
				if err != nil {
					return err
				}
			}

			raw := config.Raw{App: config.RawApp{Name: name, Domain: domain}}
			if team != "" {
				raw.Apple = &config.RawApple{DevelopmentTeam: team}
			}
			if err := config.Write(cwd, raw); err != nil {
				return err
			}
			fmt.Printf("  ✓ Created %s\n", config.FileName)

			cfg, err := config.Load(cwd)
			if err != nil {
				return err
			}
			if err := renderBase(cfg); err != nil {
				return err
			}

			if !skipDevTools && runtime.GOOS == "darwin" && util.CommandPresent("brew") {
				if err := apple.EnsureDeps(cmd.Context(), apple.XcodeGen, apple.IosDeploy, apple.CocoaPods); err != nil {
					log.Warn().Err(err).Msg("dev tool install failed; rerun later or pass --skip-dev-tools")
				}
			}

			fmt.Println("")
			fmt.Println("✓ Project initialized!")
			fmt.Println("")
			fmt.Println("Next steps:")
			fmt.Println("  1. Generate the platform projects:")
			fmt.Println("     mobl gen")
			fmt.Println("  2. Check your toolchains:")
			fmt.Println("     mobl doctor")
			fmt.Println("  3. Build and run:")
			fmt.Println("     mobl android run")
			fmt.Println("     mobl apple run")
			return nil
		},
	}
	cmd.Flags().StringVar(&name, "name", "", "app name")
	cmd.Flags().StringVar(&domain, "domain", "", "reverse-DNS domain, e.g. example.com")
	cmd.Flags().StringVar(&team, "team", "", "Apple development team id")
	cmd.Flags().BoolVar(&force, "force", false, "overwrite an existing "+config.FileName)
	cmd.Flags().BoolVar(&skipDevTools, "skip-dev-tools", false, "skip Homebrew dev tool installation")
	return cmd
}

// renderBase lays down the crate skeleton, leaving files the user already
// has untouched.
func renderBase(cfg *config.Config) error {
	pack, err := templating.LookupPack("base")
	if err != nil {
		return err
	}
	app := cfg.App()
	data := map[string]string{
		"NameSnake":    app.NameSnake(),
		"StylizedName": app.StylizedName(),
		"AssetDirRel":  app.AssetDir(),
	}
	return pack.Render(app.RootDir(), data, func(rel string) string {
		if _, err := os.Stat(filepath.Join(app.RootDir(), rel)); err == nil {
			return ""
		}
		return rel
	})
}

// prompt reads one line from stdin, returning fallback on empty input. In
// non-interactive mode the fallback is taken directly.
func prompt(label, fallback string) (string, error) {
	if nonInteractive {
		return fallback, nil
	}
	if fallback != "" {
		fmt.Printf("%s [%s]: ", label, fallback)
	} else {
		fmt.Printf("%s: ", label)
	}
	line, err := bufio.NewReader(os.Stdin).ReadString('\n')
	if err != nil {
		return "", err
	}
	line = strings.TrimSpace(line)
	if line == "" {
		return fallback, nil
	}
	return line, nil
}
