package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/matzehuels/mosaic/pkg/breakpoint"
	"github.com/matzehuels/mosaic/pkg/cache"
	"github.com/matzehuels/mosaic/pkg/errors"
	"github.com/matzehuels/mosaic/pkg/masonry"
	"github.com/matzehuels/mosaic/pkg/observability"
	"github.com/matzehuels/mosaic/pkg/shuffle"
	"github.com/matzehuels/mosaic/pkg/sink"
)

// layoutOptions holds the flags of the layout command.
type layoutOptions struct {
	data    string
	columns int
	width   float64
	seed    uint64
	formats string
	output  string
	scale   float64
	labels  bool
	noCache bool

	displayScale float64
}

// layoutCommand creates the layout export command.
func (c *CLI) layoutCommand() *cobra.Command {
	opts := layoutOptions{width: 1200, scale: 1}

	cmd := &cobra.Command{
		Use:   "layout [dataset.json]",
		Short: "Compute a masonry layout and export it",
		Long: `Compute a masonry layout and export it as JSON, SVG or PNG.

The column count comes from --columns, or from the configured breakpoints
applied to --width. With --seed the items are shuffled once before layout,
so the same seed always yields the same wall.

Rendered exports are cached locally for faster subsequent runs.`,
		Args:              cobra.MaximumNArgs(1),
		ValidArgsFunction: completeDataset,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 1 {
				opts.data = args[0]
			}
			return c.runLayout(cmd.Context(), opts)
		},
	}

	cmd.Flags().IntVarP(&opts.columns, "columns", "c", 0, "column count (default: resolved from --width)")
	cmd.Flags().Float64Var(&opts.width, "width", opts.width, "container width in pixels")
	cmd.Flags().Uint64Var(&opts.seed, "seed", 0, "shuffle the items once with this seed")
	cmd.Flags().StringVarP(&opts.formats, "format", "f", "svg", "output formats: json, svg, png (comma-separated)")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "mosaic", "output file base name")
	cmd.Flags().Float64Var(&opts.scale, "scale", opts.scale, "pixel density of PNG output")
	cmd.Flags().BoolVar(&opts.labels, "labels", false, "draw image names on tiles")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable caching")

	return cmd
}

// runLayout loads the dataset, computes the layout and writes one file per format.
func (c *CLI) runLayout(ctx context.Context, opts layoutOptions) error {
	formats := parseFormats(opts.formats)
	if err := errors.ValidateFormats(formats); err != nil {
		return err
	}
	if opts.width <= 0 {
		return errors.New(errors.ErrCodeInvalidInput, "width must be positive, got %g", opts.width)
	}

	cfg, err := c.loadConfig()
	if err != nil {
		return err
	}
	if opts.data == "" {
		opts.data = cfg.Data
	}
	items, err := loadItems(opts.data)
	if err != nil {
		return fmt.Errorf("load dataset: %w", err)
	}
	if opts.seed != 0 {
		order := shuffle.NewOrder(items, opts.seed)
		order.Shuffle()
		items = order.Items()
	}

	columns := opts.columns
	if columns <= 0 {
		rules, err := cfg.Rules()
		if err != nil {
			return err
		}
		columns = breakpoint.Resolve(opts.width, rules, cfg.Layout.DefaultColumns)
	}

	store, err := newCache(opts.noCache)
	if err != nil {
		return fmt.Errorf("initialize cache: %w", err)
	}
	memo := masonry.NewMemo(masonry.WithCache(store), masonry.WithScale(cfg.Layout.DisplayScale))
	defer memo.Close()

	opts.displayScale = cfg.Layout.DisplayScale
	ctx = withLogger(ctx, c.Logger)
	prog := newProgress(c.Logger)
	res, err := memo.Compute(ctx, items, columns, opts.width)
	if err != nil {
		return fmt.Errorf("compute layout: %w", err)
	}
	prog.done(fmt.Sprintf("Computed %d placements", len(res.Placements)))

	layoutHash := masonry.Fingerprint(items)
	allCached := true
	var paths []string
	for _, format := range formats {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		data, hit, err := renderArtifact(ctx, store, layoutHash, res, items, format, opts)
		if err != nil {
			return fmt.Errorf("render %s: %w", format, err)
		}
		allCached = allCached && hit

		path := opts.output + "." + format
		if dir := filepath.Dir(path); dir != "." {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return fmt.Errorf("create output dir: %w", err)
			}
		}
		if err := os.WriteFile(path, data, 0o644); err != nil {
			return fmt.Errorf("write output %s: %w", path, err)
		}
		paths = append(paths, path)
	}

	printSuccess("Layout complete")
	for _, p := range paths {
		printFile(p)
	}
	printStats(len(items), columns, res.Width, res.Height, allCached)
	printNewline()
	printNextStep("Browse interactively", "mosaic view "+opts.data)
	return nil
}

// renderArtifact renders res in format, reusing a cached export when one
// exists for the same layout and render options.
func renderArtifact(ctx context.Context, store cache.Cache, layoutHash string, res masonry.Result, items []masonry.Item, format string, opts layoutOptions) ([]byte, bool, error) {
	logger := loggerFromContext(ctx)

	keyOpts := cache.ArtifactKeyOpts{Format: format, Labels: opts.labels}
	if format == "png" {
		keyOpts.Scale = opts.scale
	}
	key := cache.NewDefaultKeyer().ArtifactKey(
		layoutHash+fmt.Sprintf(":%d:%g:%g", len(res.Columns), res.Width, opts.displayScale), keyOpts)

	if data, hit, err := store.Get(ctx, key); err == nil && hit {
		observability.Cache().OnCacheHit(ctx, "artifact")
		logger.Debug("export from cache", "format", format)
		return data, true, nil
	}
	observability.Cache().OnCacheMiss(ctx, "artifact")

	data, err := render(res, items, format, opts)
	if err != nil {
		return nil, false, err
	}
	if err := store.Set(ctx, key, data, 0); err != nil {
		logger.Warn("cache write failed", "format", format, "error", err)
	} else {
		observability.Cache().OnCacheSet(ctx, "artifact", len(data))
	}
	return data, false, nil
}

func render(res masonry.Result, items []masonry.Item, format string, opts layoutOptions) ([]byte, error) {
	labels := sink.LabelsOf(items)
	switch format {
	case "json":
		jsonOpts := []sink.JSONOption{sink.WithJSONScale(opts.displayScale), sink.WithJSONSeed(opts.seed)}
		if opts.labels {
			jsonOpts = append(jsonOpts, sink.WithJSONLabels(labels))
		}
		return sink.RenderJSON(res, jsonOpts...)
	case "svg":
		svgOpts := []sink.SVGOption{sink.WithImages(items)}
		if opts.labels {
			svgOpts = append(svgOpts, sink.WithLabels())
		}
		return sink.RenderSVG(res, svgOpts...), nil
	case "png":
		pngOpts := []sink.PNGOption{sink.WithPNGScale(opts.scale)}
		if opts.labels {
			pngOpts = append(pngOpts, sink.WithPNGLabels(labels))
		}
		return sink.RenderPNG(res, pngOpts...)
	default:
		return nil, errors.New(errors.ErrCodeUnsupported, "unsupported format: %s", format)
	}
}
