// Package motion animates transition targets with damped springs.
//
// An [Animator] holds the current value and velocity of every animated tile
// property and advances them one frame at a time. Each property runs its own
// harmonica spring toward the value set by the latest [transition.Target].
package motion

import (
	"math"
	"time"

	"github.com/charmbracelet/harmonica"

	"github.com/matzehuels/mosaic/pkg/transition"
)

// FPS is the frame rate the viewer ticks the animator at.
const FPS = 60

// FrameInterval is the time between two frames at [FPS].
var FrameInterval = time.Second / FPS

// epsilon is the distance and speed below which a property counts as settled.
const epsilon = 0.01

// Sprite is one tile as it should be drawn in the current frame.
type Sprite struct {
	ID    string
	Phase transition.Phase
	Style transition.Style
}

// SpringParams converts mass, tension and friction into harmonica's angular
// frequency and damping ratio.
func SpringParams(cfg transition.Config) (angularFreq, dampingRatio float64) {
	if cfg.Mass <= 0 || cfg.Tension <= 0 {
		return 0, 0
	}
	angularFreq = math.Sqrt(cfg.Tension / cfg.Mass)
	dampingRatio = cfg.Friction / (2 * math.Sqrt(cfg.Tension*cfg.Mass))
	return angularFreq, dampingRatio
}

const (
	propX = iota
	propY
	propW
	propH
	propO
	numProps
)

type vec [numProps]float64

func toVec(s transition.Style) vec {
	return vec{s.X, s.Y, s.Width, s.Height, s.Opacity}
}

func (v vec) style() transition.Style {
	return transition.Style{X: v[propX], Y: v[propY], Width: v[propW], Height: v[propH], Opacity: v[propO]}
}

type track struct {
	id     string
	phase  transition.Phase
	pos    vec
	vel    vec
	target vec
	delay  time.Duration
}

func (t *track) settled() bool {
	if t.delay > 0 {
		return false
	}
	for i := range t.pos {
		if math.Abs(t.pos[i]-t.target[i]) > epsilon || math.Abs(t.vel[i]) > epsilon {
			return false
		}
	}
	return true
}

// Animator interpolates tile styles between layout passes.
// It is not safe for concurrent use.
type Animator struct {
	omega, zeta float64

	spring   harmonica.Spring
	springDT time.Duration

	tracks map[string]*track
	order  []string
}

// New returns an animator using the spring settings of cfg.
func New(cfg transition.Config) *Animator {
	omega, zeta := SpringParams(cfg)
	return &Animator{
		omega:  omega,
		zeta:   zeta,
		tracks: make(map[string]*track),
	}
}

// Apply retargets the animator. Items named by targets animate toward their
// new style after their delay; items that are still leaving from an earlier
// pass keep going and are drawn after the new batch.
func (a *Animator) Apply(targets []transition.Target) {
	seen := make(map[string]bool, len(targets))
	order := make([]string, 0, len(targets)+len(a.order))

	for _, tg := range targets {
		seen[tg.ID] = true
		order = append(order, tg.ID)

		tr, ok := a.tracks[tg.ID]
		if !ok {
			start := tg.To
			if tg.From != nil {
				start = *tg.From
			}
			tr = &track{id: tg.ID, pos: toVec(start)}
			a.tracks[tg.ID] = tr
		}
		tr.phase = tg.Phase
		tr.target = toVec(tg.To)
		tr.delay = tg.Delay
	}

	for _, id := range a.order {
		if !seen[id] {
			if _, ok := a.tracks[id]; ok {
				order = append(order, id)
			}
		}
	}
	a.order = order
}

// Step advances every track by dt. Leaving tracks are dropped once settled.
func (a *Animator) Step(dt time.Duration) {
	if dt <= 0 {
		return
	}
	spring := a.springFor(dt)

	kept := a.order[:0]
	for _, id := range a.order {
		tr := a.tracks[id]
		if tr.delay > 0 {
			tr.delay -= dt
			if tr.delay > 0 {
				kept = append(kept, id)
				continue
			}
			tr.delay = 0
		}

		for i := range tr.pos {
			tr.pos[i], tr.vel[i] = spring.Update(tr.pos[i], tr.vel[i], tr.target[i])
		}
		if tr.settled() {
			tr.pos, tr.vel = tr.target, vec{}
			if tr.phase == transition.Leave {
				delete(a.tracks, id)
				continue
			}
		}
		kept = append(kept, id)
	}
	a.order = kept
}

// Snap jumps every track to its target, as if the animation had finished.
func (a *Animator) Snap() {
	kept := a.order[:0]
	for _, id := range a.order {
		tr := a.tracks[id]
		if tr.phase == transition.Leave {
			delete(a.tracks, id)
			continue
		}
		tr.pos, tr.vel, tr.delay = tr.target, vec{}, 0
		kept = append(kept, id)
	}
	a.order = kept
}

// Settled reports whether nothing is moving, so the frame ticker can stop.
func (a *Animator) Settled() bool {
	for _, tr := range a.tracks {
		if !tr.settled() {
			return false
		}
	}
	return true
}

// Len returns the number of tracked tiles, leaving ones included.
func (a *Animator) Len() int { return len(a.order) }

// Frame returns the tiles to draw in stable order. Opacity is clamped to
// [0, 1] and sizes to non-negative values, since springs overshoot.
func (a *Animator) Frame() []Sprite {
	out := make([]Sprite, 0, len(a.order))
	for _, id := range a.order {
		tr := a.tracks[id]
		s := tr.pos.style()
		s.Opacity = min(max(s.Opacity, 0), 1)
		s.Width = max(s.Width, 0)
		s.Height = max(s.Height, 0)
		out = append(out, Sprite{ID: id, Phase: tr.phase, Style: s})
	}
	return out
}

func (a *Animator) springFor(dt time.Duration) harmonica.Spring {
	if dt != a.springDT {
		a.spring = harmonica.NewSpring(dt.Seconds(), a.omega, a.zeta)
		a.springDT = dt
	}
	return a.spring
}
