// Package transition classifies layout changes into animation targets.
//
// Given the previous and next layout pass, [Controller.Diff] decides for every
// item whether it is entering, moving or leaving and what style it should
// animate to. It keeps no state between calls; the animator that consumes the
// targets owns the in-flight values.
package transition

import (
	"time"

	"github.com/matzehuels/mosaic/pkg/errors"
	"github.com/matzehuels/mosaic/pkg/masonry"
)

// Phase is the lifecycle stage of an animated item.
type Phase int

const (
	// Enter is an item that was not in the previous pass.
	Enter Phase = iota
	// Update is an item present in both passes.
	Update
	// Leave is an item that is gone from the next pass.
	Leave
)

func (p Phase) String() string {
	switch p {
	case Enter:
		return "enter"
	case Update:
		return "update"
	case Leave:
		return "leave"
	default:
		return "unknown"
	}
}

// Style is the set of animated properties of one tile.
type Style struct {
	X, Y    float64
	Width   float64
	Height  float64
	Opacity float64
}

// StyleOf returns the fully visible style of a placement.
func StyleOf(p masonry.Placement) Style {
	return Style{X: p.X, Y: p.Y, Width: p.Width, Height: p.Height, Opacity: 1}
}

// Target is the animation instruction for one item.
type Target struct {
	ID    string
	Phase Phase
	// From is the starting style for entering items and nil otherwise,
	// in which case the animation starts from the item's current value.
	From  *Style
	To    Style
	Delay time.Duration
}

// Default spring and stagger settings.
const (
	DefaultMass       = 5
	DefaultTension    = 500
	DefaultFriction   = 100
	DefaultTrail      = 25 * time.Millisecond
	DefaultHoverScale = 1.1
)

// Config holds the spring physics and stagger settings.
type Config struct {
	Mass       float64
	Tension    float64
	Friction   float64
	Trail      time.Duration
	HoverScale float64
}

// DefaultConfig returns a heavy, critically damped spring with a short trail.
func DefaultConfig() Config {
	return Config{
		Mass:       DefaultMass,
		Tension:    DefaultTension,
		Friction:   DefaultFriction,
		Trail:      DefaultTrail,
		HoverScale: DefaultHoverScale,
	}
}

// Validate reports every field outside its allowed range.
func (c Config) Validate() error {
	v := &errors.ValidationError{Code: errors.ErrCodeInvalidConfig}
	if !(c.Mass > 0) {
		v.Add("mass", "must be positive, got %v", c.Mass)
	}
	if !(c.Tension > 0) {
		v.Add("tension", "must be positive, got %v", c.Tension)
	}
	if c.Friction < 0 {
		v.Add("friction", "must not be negative, got %v", c.Friction)
	}
	if c.Trail < 0 {
		v.Add("trail", "must not be negative, got %v", c.Trail)
	}
	if !(c.HoverScale > 0) {
		v.Add("hover_scale", "must be positive, got %v", c.HoverScale)
	}
	return v.ErrOrNil()
}

// Controller turns consecutive layout passes into animation targets.
type Controller struct {
	cfg Config
}

// NewController returns a controller for cfg. Zero fields take their defaults.
func NewController(cfg Config) *Controller {
	d := DefaultConfig()
	if cfg.Mass == 0 {
		cfg.Mass = d.Mass
	}
	if cfg.Tension == 0 {
		cfg.Tension = d.Tension
	}
	if cfg.Friction == 0 {
		cfg.Friction = d.Friction
	}
	if cfg.HoverScale == 0 {
		cfg.HoverScale = d.HoverScale
	}
	return &Controller{cfg: cfg}
}

// Config returns the effective configuration.
func (c *Controller) Config() Config { return c.cfg }

// Diff compares two layout passes. Targets come back in stagger order: the
// items of next in their order, then the leaving items in their prev order.
// The i-th target is delayed by i*Trail.
//
// hovered is the id under the pointer, or empty. Its target size is the
// placement size times HoverScale; every other item gets its unscaled size.
// Both are recomputed on every call, so a reshuffle never drops the hover.
func (c *Controller) Diff(prev, next []masonry.Placement, hovered string) []Target {
	before := make(map[string]masonry.Placement, len(prev))
	for _, p := range prev {
		before[p.ID] = p
	}
	present := make(map[string]bool, len(next))

	out := make([]Target, 0, len(next)+len(prev))
	for _, p := range next {
		present[p.ID] = true
		if _, ok := before[p.ID]; !ok {
			from := StyleOf(p)
			from.Opacity = 0
			out = append(out, Target{ID: p.ID, Phase: Enter, From: &from, To: StyleOf(p)})
			continue
		}
		to := StyleOf(p)
		if p.ID == hovered {
			to.Width *= c.cfg.HoverScale
			to.Height *= c.cfg.HoverScale
		}
		out = append(out, Target{ID: p.ID, Phase: Update, To: to})
	}

	for _, p := range prev {
		if present[p.ID] {
			continue
		}
		out = append(out, Target{ID: p.ID, Phase: Leave, To: LeaveStyle(StyleOf(p))})
	}

	for i := range out {
		out[i].Delay = time.Duration(i) * c.cfg.Trail
	}
	return out
}

// LeaveStyle collapses s in place: position and width are kept, height and
// opacity go to zero.
func LeaveStyle(s Style) Style {
	s.Height = 0
	s.Opacity = 0
	return s
}
