package main

import (
	"fmt"
	"io/fs"
	"os"

	"github.com/mabego/springai-web/internal/sprite"
	"github.com/spf13/cobra"
)

func newSpriteCmd(opts *options) *cobra.Command {
	var (
		out   string
		icons string
		list  bool
	)

	cmd := &cobra.Command{
		Use:   "sprite",
		Short: "Generate the SVG icon sprite",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, fsys, err := opts.loadConfig()
			if err != nil {
				return err
			}

			dirs := cfg.SVGIcons.IconDirs
			if icons != "" {
				fsys, dirs = os.DirFS(icons), []string{"."}
			}

			sp, err := buildSprite(fsys, dirs, sprite.Options{
				SymbolID:    cfg.SVGIcons.SymbolID,
				Inject:      cfg.SVGIcons.Inject,
				CustomDomID: cfg.SVGIcons.CustomDomID,
			})
			if err != nil {
				return err
			}

			if list {
				for _, sym := range sp.Symbols {
					fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\n", sym.ID, sym.Source)
				}
				return nil
			}

			if out == "" {
				_, err = fmt.Fprintln(cmd.OutOrStdout(), sp.Markup())
				return err
			}

			return os.WriteFile(out, []byte(sp.Markup()), 0o644)
		},
	}

	cmd.Flags().StringVarP(&out, "out", "o", "", "write the sprite to this file instead of stdout")
	cmd.Flags().StringVar(&icons, "icons", "", "read icons from this directory instead of the embedded ones")
	cmd.Flags().BoolVar(&list, "list", false, "list symbol ids and their source files")

	return cmd
}

func buildSprite(fsys fs.FS, dirs []string, o sprite.Options) (*sprite.Sprite, error) {
	sp, err := sprite.Build(fsys, dirs, o)
	if err != nil {
		return nil, err
	}
	if len(sp.Symbols) == 0 {
		return nil, fmt.Errorf("no icons found in %v", dirs)
	}
	return sp, nil
}
