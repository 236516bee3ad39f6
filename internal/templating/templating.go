// Package templating renders the embedded project template packs that back
// `mobl init` and `mobl gen`. Files carrying a .tmpl suffix are rendered with
// text/template and written with the suffix stripped; everything else is
// copied through verbatim.
package templating

import (
	"bytes"
	"embed"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"
	"text/template"

	"github.com/google/renameio/v2"
	"github.com/rs/zerolog/log"

	"github.com/agiangrant/mobl/internal/util"
)

//go:embed all:packs
var packsFS embed.FS

const tmplSuffix = ".tmpl"

// Pack is one embedded template pack rooted at packs/<name>.
type Pack struct {
	name string
	fsys fs.FS
}

// LookupPack resolves a pack by name.
func LookupPack(name string) (*Pack, error) {
	sub, err := fs.Sub(packsFS, path.Join("packs", name))
	if err != nil {
		return nil, fmt.Errorf("template pack %q not found: %w", name, err)
	}
	if _, err := fs.Stat(sub, "."); err != nil {
		return nil, fmt.Errorf("template pack %q not found: %w", name, err)
	}
	return &Pack{name: name, fsys: sub}, nil
}

// Name returns the pack's name.
func (p *Pack) Name() string {
	return p.name
}

// Renamer relocates a pack-relative output path before it is written. It
// returns the new relative path, or "" to skip the file.
type Renamer func(rel string) string

// Render writes the pack into destDir, rendering .tmpl files against data.
// Every output path is checked to stay inside destDir, so a hostile rename
// cannot escape the project tree.
func (p *Pack) Render(destDir string, data any, rename Renamer) error {
	destDir, err := filepath.Abs(destDir)
	if err != nil {
		return err
	}
	return fs.WalkDir(p.fsys, ".", func(rel string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		out := filepath.FromSlash(strings.TrimSuffix(rel, tmplSuffix))
		if rename != nil {
			out = rename(out)
			if out == "" {
				log.Debug().Str("pack", p.name).Str("file", rel).Msg("skipped by renamer")
				return nil
			}
		}
		inside, err := util.UnderRoot(out, destDir)
		if err != nil {
			return err
		}
		if !inside {
			return fmt.Errorf("template output %q escapes project directory %q", out, destDir)
		}
		dest := filepath.Join(destDir, out)
		contents, err := fs.ReadFile(p.fsys, rel)
		if err != nil {
			return fmt.Errorf("failed to read template %s/%s: %w", p.name, rel, err)
		}
		if strings.HasSuffix(rel, tmplSuffix) {
			contents, err = renderBytes(p.name+"/"+rel, contents, data)
			if err != nil {
				return err
			}
		}
		if err := os.MkdirAll(filepath.Dir(dest), 0o755); err != nil {
			return err
		}
		mode := os.FileMode(0o644)
		if info, err := d.Info(); err == nil && info.Mode()&0o100 != 0 {
			mode = 0o755
		}
		if err := renameio.WriteFile(dest, contents, mode); err != nil {
			return fmt.Errorf("failed to write %s: %w", dest, err)
		}
		fmt.Printf("  ✓ Created %s\n", dest)
		return nil
	})
}

func renderBytes(name string, contents []byte, data any) ([]byte, error) {
	tmpl, err := template.New(name).Option("missingkey=error").Parse(string(contents))
	if err != nil {
		return nil, fmt.Errorf("failed to parse template %s: %w", name, err)
	}
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("failed to render template %s: %w", name, err)
	}
	return buf.Bytes(), nil
}

// RenderString renders a one-off template string, for small generated
// snippets that do not live in a pack.
func RenderString(tmplStr string, data any) (string, error) {
	out, err := renderBytes("inline", []byte(tmplStr), data)
	if err != nil {
		return "", err
	}
	return string(out), nil
}
