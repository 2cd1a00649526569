package main

import (
	"fmt"
	"html/template"
	"io/fs"

	"github.com/mabego/springai-web/internal/components"
	"github.com/mabego/springai-web/internal/database"
	"github.com/mabego/springai-web/internal/router"
	"github.com/mabego/springai-web/internal/sprite"
	"github.com/spf13/cobra"
)

// newCheckCmd verifies that the build config loads, the sprite builds, every
// view parses with its imports, the stylesheet entry exists and the session
// migrations are readable.
func newCheckCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "Validate the build config against the embedded UI",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, fsys, err := opts.loadConfig()
			if err != nil {
				return err
			}

			if _, err := fs.Stat(fsys, cfg.CSS.Entry); err != nil {
				return fmt.Errorf("css entry: %w", err)
			}

			sp, err := buildSprite(fsys, cfg.SVGIcons.IconDirs, sprite.Options{
				SymbolID:    cfg.SVGIcons.SymbolID,
				Inject:      cfg.SVGIcons.Inject,
				CustomDomID: cfg.SVGIcons.CustomDomID,
			})
			if err != nil {
				return err
			}

			if _, err := router.New(router.HashMode, router.DefaultRoutes()); err != nil {
				return err
			}

			for _, rt := range router.DefaultRoutes() {
				page := cfg.ResolveAlias(rt.View)

				v, err := components.LoadView(fsys, cfg, page)
				if err != nil {
					return fmt.Errorf("%s: %w", page, err)
				}

				// Functions only need to exist for parsing.
				funcs := template.FuncMap{"icon": func(string, string) template.HTML { return "" }}
				if _, err := template.New(page).Funcs(funcs).ParseFS(fsys, v.Patterns()...); err != nil {
					return fmt.Errorf("%s: %w", page, err)
				}
			}

			versions, err := database.Versions()
			if err != nil {
				return fmt.Errorf("session migrations: %w", err)
			}

			_, err = fmt.Fprintf(cmd.OutOrStdout(), "ok: %d views, %d icons, %d migrations\n",
				len(router.DefaultRoutes()), len(sp.Symbols), len(versions))
			return err
		},
	}
}
