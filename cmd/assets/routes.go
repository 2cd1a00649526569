package main

import (
	"context"
	"fmt"
	"text/tabwriter"

	"github.com/mabego/springai-web/internal/router"
	"github.com/mabego/springai-web/internal/storage"
	"github.com/spf13/cobra"
)

func (o *options) newRouter() (*router.Router, error) {
	mode := router.HashMode
	if o.history {
		mode = router.HistoryMode
	}
	return router.New(mode, router.DefaultRoutes())
}

func newRoutesCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "routes",
		Short: "Print the route table",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, _, err := opts.loadConfig()
			if err != nil {
				return err
			}

			r, err := opts.newRouter()
			if err != nil {
				return err
			}

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "NAME\tHREF\tVIEW\tGUARDED\tTITLE")
			for _, rt := range r.Routes() {
				fmt.Fprintf(tw, "%s\t%s\t%s\t%t\t%s\n",
					rt.Name, r.Href(rt.Path), cfg.ResolveAlias(rt.View), rt.RequiresToken, rt.Title)
			}
			return tw.Flush()
		},
	}
}

// newNavigateCmd resolves a URL the way a client with the given stored token would.
func newNavigateCmd(opts *options) *cobra.Command {
	var token string

	cmd := &cobra.Command{
		Use:   "navigate URL",
		Short: "Resolve a URL through the route guard",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := opts.newRouter()
			if err != nil {
				return err
			}

			ctx := context.Background()
			tokens := storage.NewMemoryStore()
			if cmd.Flags().Changed("token") {
				tokens.Set(ctx, router.TokenKey, token)
			}

			nav, err := r.Navigate(ctx, args[0], tokens)
			if err != nil {
				return err
			}

			status := "allowed"
			if nav.Redirected {
				status = "redirected"
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "%s -> %s (%s) %s\n",
				nav.Requested, nav.Route.Path, status, nav.Route.Title)
			return err
		},
	}

	cmd.Flags().StringVar(&token, "token", "", "stored token value; omit the flag for no token")

	return cmd
}
