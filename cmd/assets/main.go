// Command assets inspects and builds the web front's static wiring: the icon
// sprite, the route table, component auto-imports and guard navigation.
package main

import (
	"fmt"
	"io/fs"
	"os"

	"github.com/mabego/springai-web/internal/buildconfig"
	"github.com/mabego/springai-web/ui"
	"github.com/spf13/cobra"
)

type options struct {
	config  string
	history bool
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	opts := &options{}

	root := &cobra.Command{
		Use:           "assets",
		Short:         "Build and inspect the web front's assets",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.PersistentFlags().StringVar(&opts.config, "config", "", "build config on disk (embedded ui/build.yaml when empty)")
	root.PersistentFlags().BoolVar(&opts.history, "history", false, "use path URLs instead of hash URLs")

	root.AddCommand(
		newSpriteCmd(opts),
		newRoutesCmd(opts),
		newComponentsCmd(opts),
		newNavigateCmd(opts),
		newCheckCmd(opts),
	)

	return root
}

// loadConfig returns the build config and the file system its paths are relative to.
func (o *options) loadConfig() (*buildconfig.Config, fs.FS, error) {
	if o.config == "" {
		cfg, err := buildconfig.Load(ui.Files, "build.yaml")
		return cfg, ui.Files, err
	}

	f, err := os.Open(o.config)
	if err != nil {
		return nil, nil, err
	}
	defer f.Close()

	cfg, err := buildconfig.Parse(f)
	if err != nil {
		return nil, nil, fmt.Errorf("%s: %w", o.config, err)
	}

	return cfg, ui.Files, nil
}
