package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/matzehuels/mosaic/internal/config"
)

// configCommand creates the config management command.
func (c *CLI) configCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect and create the configuration file",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "path",
		Short: "Print the config file path",
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintln(cmd.OutOrStdout(), c.resolvedConfigPath())
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			printTitle("Configuration")
			printKeyValue("file", c.resolvedConfigPath())
			printKeyValue("data", orDefault(cfg.Data, "built-in"))
			printKeyValue("columns", strconv.Itoa(cfg.Layout.DefaultColumns))
			printKeyValue("shuffle", fmt.Sprintf("%t every %s", cfg.Shuffle.Enabled, cfg.Shuffle.Interval))
			printKeyValue("spring", fmt.Sprintf("mass %g tension %g friction %g", cfg.Motion.Mass, cfg.Motion.Tension, cfg.Motion.Friction))
			printKeyValue("hover", fmt.Sprintf("×%g", cfg.Motion.HoverScale))
			printKeyValue("swipe", fmt.Sprintf("%gpx", cfg.Lightbox.SwipeThreshold))
			for _, bp := range cfg.Breakpoints {
				printKeyValue("breakpoint", fmt.Sprintf("%s → %d", bp.Query, bp.Columns))
			}
			return nil
		},
	})

	var force bool
	initCmd := &cobra.Command{
		Use:   "init",
		Short: "Write the default configuration file",
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runConfigInit(force)
		},
	}
	initCmd.Flags().BoolVar(&force, "force", false, "overwrite an existing file")
	cmd.AddCommand(initCmd)

	return cmd
}

func (c *CLI) resolvedConfigPath() string {
	if c.configPath != "" {
		return c.configPath
	}
	return config.DefaultPath()
}

// runConfigInit writes the defaults to the config path unless a file is
// already there.
func (c *CLI) runConfigInit(force bool) error {
	path := c.resolvedConfigPath()
	if _, err := os.Stat(path); err == nil && !force {
		printWarning("Config already exists")
		printDetail("Use --force to overwrite %s", path)
		return nil
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create config: %w", err)
	}
	defer f.Close()

	if err := config.Write(f, config.Default()); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	printSuccess("Wrote default configuration")
	printFile(path)
	return nil
}

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}
