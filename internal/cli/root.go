package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/mosaic/pkg/buildinfo"
)

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   "mosaic",
		Short: "Mosaic is a shuffling photo wall for the terminal",
		Long: `Mosaic lays photographs out in a responsive masonry grid, reshuffles
them every few seconds with spring animations, and opens any photo in a
full-screen viewer with keyboard and mouse-drag navigation.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			registerLogHooks(c.Logger)
			return nil
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().StringVar(&c.configPath, "config", "", "config file (default: $XDG_CONFIG_HOME/mosaic/config.toml)")

	root.AddCommand(c.viewCommand())
	root.AddCommand(c.layoutCommand())
	root.AddCommand(c.itemsCommand())
	root.AddCommand(c.configCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}
