package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/agiangrant/mobl/internal/android"
	"github.com/agiangrant/mobl/internal/apple"
	"github.com/agiangrant/mobl/internal/config"
	"github.com/agiangrant/mobl/internal/env"
	"github.com/agiangrant/mobl/internal/metadata"
)

func newGenCmd() *cobra.Command {
	var watch bool
	cmd := &cobra.Command{
		Use:   "gen",
		Short: "Generate the Android and Xcode projects from " + config.FileName,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := generate(cmd.Context()); err != nil {
				return err
			}
			if !watch {
				return nil
			}
			return watchAndRegenerate(cmd.Context())
		},
	}
	cmd.Flags().BoolVar(&watch, "watch", false, "regenerate whenever "+config.FileName+" or Cargo.toml changes")
	return cmd
}

func generate(ctx context.Context) error {
	cfg, err := config.LoadOrErr()
	if err != nil {
		return err
	}
	meta, err := metadata.Load(cfg.App().RootDir())
	if err != nil {
		return err
	}

	if meta.Android.IsSupported() {
		if err := generateAndroid(ctx, cfg, &meta.Android); err != nil {
			return err
		}
	}
	if runtime.GOOS == "darwin" && meta.Apple.IsSupported() {
		if _, err := cfg.Apple(); err != nil {
			log.Warn().Err(err).Msg("skipping Xcode project")
		} else if err := apple.CreateProject(ctx, cfg, &meta.Apple); err != nil {
			return err
		}
	}
	return nil
}

func generateAndroid(ctx context.Context, cfg *config.Config, meta *metadata.Android) error {
	e, err := env.New()
	if err != nil {
		return err
	}
	androidEnv, err := android.NewEnv(e)
	if err != nil {
		log.Warn().Err(err).Msg("skipping Android project; run `mobl doctor` for setup help")
		return nil
	}
	return android.CreateProject(ctx, androidEnv, cfg, meta)
}

// watchAndRegenerate reruns generation whenever the config or the Cargo
// manifest changes. Events are debounced since editors fire several per save.
func watchAndRegenerate(ctx context.Context) error {
	cfg, err := config.LoadOrErr()
	if err != nil {
		return err
	}
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer watcher.Close()

	rootDir := cfg.App().RootDir()
	// Watch the directory, not the files: most editors replace on save,
	// which drops file-level watches.
	if err := watcher.Add(rootDir); err != nil {
		return fmt.Errorf("failed to watch %q: %w", rootDir, err)
	}
	fmt.Printf("  ✓ Watching %s and Cargo.toml for changes\n", config.FileName)

	watched := map[string]bool{
		filepath.Join(rootDir, config.FileName): true,
		filepath.Join(rootDir, "Cargo.toml"):    true,
	}
	var timer *time.Timer
	pending := make(chan struct{}, 1)
	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !watched[event.Name] {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
				continue
			}
			log.Debug().Str("file", event.Name).Str("op", event.Op.String()).Msg("change detected")
			if timer != nil {
				timer.Stop()
			}
			timer = time.AfterFunc(500*time.Millisecond, func() {
				select {
				case pending <- struct{}{}:
				default:
				}
			})
		case <-pending:
			if err := generate(ctx); err != nil {
				log.Error().Err(err).Msg("regeneration failed")
				fmt.Fprintln(os.Stderr, "waiting for the next change...")
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			log.Warn().Err(err).Msg("watch error")
		}
	}
}
