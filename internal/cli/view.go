package cli

import (
	"context"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/matzehuels/mosaic/internal/app"
	"github.com/matzehuels/mosaic/internal/config"
)

// viewFlags holds command-line overrides for the viewer.
type viewFlags struct {
	data      string
	interval  time.Duration
	seed      uint64
	noShuffle bool
	noMotion  bool
	watch     bool
	logFile   string
}

// viewCommand creates the interactive viewer command.
func (c *CLI) viewCommand() *cobra.Command {
	var f viewFlags

	cmd := &cobra.Command{
		Use:   "view [dataset.json]",
		Short: "Open the interactive photo wall",
		Long: `Open the interactive photo wall.

The grid reflows to the terminal width, reshuffles on a timer and animates
every tile to its new place. Click a tile or press enter to open it; use the
arrow keys or drag sideways to move between photos and esc to close.

Without a dataset argument the built-in set of 30 photos is shown.`,
		Args:              cobra.MaximumNArgs(1),
		ValidArgsFunction: completeDataset,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 1 {
				f.data = args[0]
			}
			return c.runView(cmd.Context(), cmd, f)
		},
	}

	cmd.Flags().DurationVar(&f.interval, "interval", 0, "time between shuffles (default from config, 5s)")
	cmd.Flags().Uint64Var(&f.seed, "seed", 0, "shuffle seed for a reproducible sequence")
	cmd.Flags().BoolVar(&f.noShuffle, "no-shuffle", false, "disable periodic shuffling")
	cmd.Flags().BoolVar(&f.noMotion, "no-motion", false, "snap tiles into place without animation")
	cmd.Flags().BoolVarP(&f.watch, "watch", "w", false, "reload the dataset when the file changes")
	cmd.Flags().StringVar(&f.logFile, "log-file", "", "log file (default: $XDG_STATE_HOME/mosaic/mosaic.log)")

	return cmd
}

// applyViewFlags layers flags that were set on the command line over cfg.
func applyViewFlags(cmd *cobra.Command, cfg *config.Config, f viewFlags) {
	flags := cmd.Flags()
	if f.data != "" {
		cfg.Data = f.data
	}
	if flags.Changed("interval") {
		cfg.Shuffle.Interval = f.interval
	}
	if flags.Changed("seed") {
		cfg.Shuffle.Seed = f.seed
	}
	if f.noShuffle {
		cfg.Shuffle.Enabled = false
	}
	if f.noMotion {
		cfg.Motion.Enabled = false
	}
}

// runView loads the config and dataset and runs the viewer until it quits.
func (c *CLI) runView(ctx context.Context, cmd *cobra.Command, f viewFlags) error {
	cfg, err := c.loadConfig()
	if err != nil {
		return err
	}
	applyViewFlags(cmd, cfg, f)
	if err := cfg.Validate(); err != nil {
		return err
	}

	items, err := loadItems(cfg.Data)
	if err != nil {
		return fmt.Errorf("load dataset: %w", err)
	}
	if f.watch && cfg.Data == "" {
		return fmt.Errorf("--watch needs a dataset file")
	}

	logPath := f.logFile
	if logPath == "" {
		if logPath, err = defaultLogPath(); err != nil {
			return fmt.Errorf("get state dir: %w", err)
		}
	}
	lf, err := openLogFile(logPath)
	if err != nil {
		return fmt.Errorf("open log file: %w", err)
	}
	defer lf.Close()

	logger := newLogger(lf, c.Logger.GetLevel())
	registerLogHooks(logger)

	m, err := app.New(app.Options{
		Items:    items,
		Config:   cfg,
		Logger:   logger,
		DataPath: cfg.Data,
		Watch:    f.watch,
	})
	if err != nil {
		return err
	}
	defer m.Close()

	logger.Info("viewer started", "items", len(items), "data", cfg.Data, "watch", f.watch)
	p := tea.NewProgram(m,
		tea.WithAltScreen(),
		tea.WithMouseAllMotion(),
		tea.WithContext(ctx),
	)
	if _, err := p.Run(); err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return fmt.Errorf("viewer: %w", err)
	}
	logger.Info("viewer stopped")
	return nil
}
