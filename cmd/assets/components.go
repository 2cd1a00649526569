package main

import (
	"fmt"
	"strings"

	"github.com/mabego/springai-web/internal/components"
	"github.com/mabego/springai-web/internal/router"
	"github.com/spf13/cobra"
)

func newComponentsCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "components",
		Short: "Print the components each view imports",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, fsys, err := opts.loadConfig()
			if err != nil {
				return err
			}

			for _, rt := range router.DefaultRoutes() {
				page := cfg.ResolveAlias(rt.View)

				v, err := components.LoadView(fsys, cfg, page)
				if err != nil {
					return fmt.Errorf("%s: %w", page, err)
				}

				fmt.Fprintf(cmd.OutOrStdout(), "%s (%s)\n", rt.Name, page)
				for _, c := range v.Imports {
					line := fmt.Sprintf("  %s -> %s from %s", c.Ref, c.Name, c.File)
					if len(c.SideEffects) > 0 {
						line += " + " + strings.Join(c.SideEffects, ", ")
					}
					fmt.Fprintln(cmd.OutOrStdout(), line)
				}
			}

			return nil
		},
	}
}
