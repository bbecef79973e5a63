// Package config loads the viewer configuration from TOML.
//
// Values are resolved in three layers: built-in defaults, then the config
// file, then command-line flags applied by the caller.
package config

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/mosaic/pkg/breakpoint"
	"github.com/matzehuels/mosaic/pkg/errors"
	"github.com/matzehuels/mosaic/pkg/lightbox"
	"github.com/matzehuels/mosaic/pkg/masonry"
	"github.com/matzehuels/mosaic/pkg/shuffle"
	"github.com/matzehuels/mosaic/pkg/transition"
)

// Config is the complete viewer configuration.
type Config struct {
	Data        string         `toml:"data"` // dataset file, empty for the built-in set
	Layout      LayoutConfig   `toml:"layout"`
	Shuffle     ShuffleConfig  `toml:"shuffle"`
	Motion      MotionConfig   `toml:"motion"`
	Lightbox    LightboxConfig `toml:"lightbox"`
	Breakpoints []Breakpoint   `toml:"breakpoints"`

	// Warnings lists keys in the file that were not recognised.
	Warnings []string `toml:"-"`
}

// LayoutConfig controls the grid geometry.
type LayoutConfig struct {
	DisplayScale   float64 `toml:"display_scale"`
	DefaultColumns int     `toml:"default_columns"` // when no breakpoint matches
	CellWidthPx    float64 `toml:"cell_width_px"`   // pixels per terminal column
	CellHeightPx   float64 `toml:"cell_height_px"`  // pixels per terminal row
}

// ShuffleConfig controls periodic reshuffling.
type ShuffleConfig struct {
	Enabled  bool          `toml:"enabled"`
	Interval time.Duration `toml:"interval"`
	Seed     uint64        `toml:"seed"` // 0 draws a random seed
}

// MotionConfig holds the spring settings of tile transitions.
type MotionConfig struct {
	Enabled    bool          `toml:"enabled"` // false snaps tiles into place
	Mass       float64       `toml:"mass"`
	Tension    float64       `toml:"tension"`
	Friction   float64       `toml:"friction"`
	Trail      time.Duration `toml:"trail"`
	HoverScale float64       `toml:"hover_scale"`
}

// LightboxConfig controls the image viewer.
type LightboxConfig struct {
	SwipeThreshold float64 `toml:"swipe_threshold"`
}

// Breakpoint maps a media query to a column count.
type Breakpoint struct {
	Query   string `toml:"query"`
	Columns int    `toml:"columns"`
}

// Default returns the built-in configuration.
func Default() *Config {
	tc := transition.DefaultConfig()
	return &Config{
		Layout: LayoutConfig{
			DisplayScale:   masonry.DisplayScale,
			DefaultColumns: breakpoint.DefaultColumns,
			CellWidthPx:    8,
			CellHeightPx:   16,
		},
		Shuffle: ShuffleConfig{
			Enabled:  true,
			Interval: shuffle.DefaultInterval,
		},
		Motion: MotionConfig{
			Enabled:    true,
			Mass:       tc.Mass,
			Tension:    tc.Tension,
			Friction:   tc.Friction,
			Trail:      tc.Trail,
			HoverScale: tc.HoverScale,
		},
		Lightbox: LightboxConfig{
			SwipeThreshold: lightbox.DefaultSwipeThreshold,
		},
		Breakpoints: []Breakpoint{
			{Query: "(min-width: 1500px)", Columns: 5},
			{Query: "(min-width: 1000px)", Columns: 4},
			{Query: "(min-width: 600px)", Columns: 3},
		},
	}
}

// DefaultPath returns the default config file path.
func DefaultPath() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "mosaic", "config.toml")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "mosaic", "config.toml")
}

// Load reads the config file at path over the defaults. With an empty path
// the default location is used and a missing file is not an error.
func Load(path string) (*Config, error) {
	explicit := path != ""
	if !explicit {
		path = DefaultPath()
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) && !explicit {
			return Default(), nil
		}
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "config %s", path)
		}
		return nil, fmt.Errorf("reading config: %w", err)
	}

	cfg, err := Parse(string(data))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Parse decodes TOML over the defaults. A [[breakpoints]] list in the input
// replaces the default list as a whole.
func Parse(data string) (*Config, error) {
	cfg := Default()
	defaults := cfg.Breakpoints
	cfg.Breakpoints = nil

	md, err := toml.Decode(data, cfg)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "parsing config")
	}
	if !md.IsDefined("breakpoints") {
		cfg.Breakpoints = defaults
	}
	for _, k := range md.Undecoded() {
		cfg.Warnings = append(cfg.Warnings, fmt.Sprintf("unknown key %q", k.String()))
	}
	return cfg, nil
}

// Validate reports every invalid field at once.
func (c *Config) Validate() error {
	v := &errors.ValidationError{Code: errors.ErrCodeInvalidConfig}

	if !(c.Layout.DisplayScale > 0) {
		v.Add("layout.display_scale", "must be positive, got %v", c.Layout.DisplayScale)
	}
	if c.Layout.DefaultColumns < 1 {
		v.Add("layout.default_columns", "must be at least 1, got %d", c.Layout.DefaultColumns)
	}
	if !(c.Layout.CellWidthPx > 0) {
		v.Add("layout.cell_width_px", "must be positive, got %v", c.Layout.CellWidthPx)
	}
	if !(c.Layout.CellHeightPx > 0) {
		v.Add("layout.cell_height_px", "must be positive, got %v", c.Layout.CellHeightPx)
	}
	if c.Shuffle.Interval < 100*time.Millisecond {
		v.Add("shuffle.interval", "must be at least 100ms, got %v", c.Shuffle.Interval)
	}
	if err := c.Transition().Validate(); err != nil {
		if ve, ok := err.(*errors.ValidationError); ok {
			for _, f := range ve.Fields {
				v.Add("motion."+f.Field, "%s", f.Reason)
			}
		}
	}
	if !(c.Lightbox.SwipeThreshold > 0) {
		v.Add("lightbox.swipe_threshold", "must be positive, got %v", c.Lightbox.SwipeThreshold)
	}
	for i, b := range c.Breakpoints {
		if _, err := breakpoint.Parse(b.Query, b.Columns); err != nil {
			v.Add(fmt.Sprintf("breakpoints[%d].query", i), "%s", errors.UserMessage(err))
		}
		if b.Columns < 1 {
			v.Add(fmt.Sprintf("breakpoints[%d].columns", i), "must be at least 1, got %d", b.Columns)
		}
	}
	return v.ErrOrNil()
}

// Rules converts the breakpoints into resolver rules, in file order.
func (c *Config) Rules() ([]breakpoint.Rule, error) {
	rules := make([]breakpoint.Rule, 0, len(c.Breakpoints))
	for _, b := range c.Breakpoints {
		r, err := breakpoint.Parse(b.Query, b.Columns)
		if err != nil {
			return nil, err
		}
		rules = append(rules, r)
	}
	return rules, nil
}

// Transition returns the transition settings.
func (c *Config) Transition() transition.Config {
	return transition.Config{
		Mass:       c.Motion.Mass,
		Tension:    c.Motion.Tension,
		Friction:   c.Motion.Friction,
		Trail:      c.Motion.Trail,
		HoverScale: c.Motion.HoverScale,
	}
}

// Write encodes the configuration as TOML.
func Write(w io.Writer, c *Config) error {
	fmt.Fprintln(w, "# mosaic configuration")
	fmt.Fprintln(w)
	return toml.NewEncoder(w).Encode(c)
}
