package motion

import (
	"math"
	"testing"
	"time"

	"github.com/matzehuels/mosaic/pkg/masonry"
	"github.com/matzehuels/mosaic/pkg/transition"
)

func run(a *Animator, d time.Duration) {
	for elapsed := time.Duration(0); elapsed < d; elapsed += FrameInterval {
		a.Step(FrameInterval)
	}
}

func sprite(t *testing.T, a *Animator, id string) Sprite {
	t.Helper()
	for _, s := range a.Frame() {
		if s.ID == id {
			return s
		}
	}
	t.Fatalf("no sprite %q", id)
	return Sprite{}
}

func TestSpringParams(t *testing.T) {
	omega, zeta := SpringParams(transition.DefaultConfig())
	if math.Abs(omega-10) > 1e-9 {
		t.Errorf("angular frequency = %v, want 10", omega)
	}
	if math.Abs(zeta-1) > 1e-9 {
		t.Errorf("damping ratio = %v, want 1 (critically damped)", zeta)
	}
}

func TestAnimatorEnterFadesIn(t *testing.T) {
	ctrl := transition.NewController(transition.DefaultConfig())
	a := New(ctrl.Config())
	a.Apply(ctrl.Diff(nil, []masonry.Placement{{ID: "a", X: 10, Y: 20, Width: 100, Height: 50}}, ""))

	s := sprite(t, a, "a")
	if s.Style.Opacity != 0 {
		t.Errorf("entering sprite should start transparent, opacity %v", s.Style.Opacity)
	}
	if a.Settled() {
		t.Error("animator should not be settled while fading in")
	}

	run(a, 3*time.Second)

	if !a.Settled() {
		t.Fatal("animator should settle within 3s")
	}
	want := transition.Style{X: 10, Y: 20, Width: 100, Height: 50, Opacity: 1}
	if got := sprite(t, a, "a").Style; got != want {
		t.Errorf("settled style = %+v, want %+v", got, want)
	}
}

func TestAnimatorUpdateMovesFromCurrent(t *testing.T) {
	ctrl := transition.NewController(transition.DefaultConfig())
	a := New(ctrl.Config())
	p1 := []masonry.Placement{{ID: "a", X: 0, Width: 100, Height: 100}}
	a.Apply(ctrl.Diff(nil, p1, ""))
	a.Snap()

	p2 := []masonry.Placement{{ID: "a", X: 200, Width: 100, Height: 100}}
	a.Apply(ctrl.Diff(p1, p2, ""))

	a.Step(FrameInterval)
	x := sprite(t, a, "a").Style.X
	if x <= 0 || x >= 200 {
		t.Errorf("after one frame x = %v, want strictly between 0 and 200", x)
	}

	run(a, 3*time.Second)
	if got := sprite(t, a, "a").Style.X; got != 200 {
		t.Errorf("settled x = %v, want 200", got)
	}
}

func TestAnimatorLeaveIsRemovedOnceSettled(t *testing.T) {
	ctrl := transition.NewController(transition.DefaultConfig())
	a := New(ctrl.Config())
	p1 := []masonry.Placement{{ID: "a", Width: 100, Height: 100}, {ID: "b", X: 100, Width: 100, Height: 40}}
	a.Apply(ctrl.Diff(nil, p1, ""))
	a.Snap()

	p2 := p1[:1]
	a.Apply(ctrl.Diff(p1, p2, ""))
	if a.Len() != 2 {
		t.Fatalf("leaving sprite should still be drawn, Len() = %d", a.Len())
	}
	if s := sprite(t, a, "b"); s.Phase != transition.Leave {
		t.Errorf("phase = %v, want leave", s.Phase)
	}

	run(a, 3*time.Second)
	if a.Len() != 1 {
		t.Errorf("leaving sprite should be dropped once settled, Len() = %d", a.Len())
	}
}

func TestAnimatorHonoursDelay(t *testing.T) {
	cfg := transition.DefaultConfig()
	cfg.Trail = 100 * time.Millisecond
	ctrl := transition.NewController(cfg)
	a := New(cfg)

	p1 := []masonry.Placement{{ID: "a", Width: 10, Height: 10}, {ID: "b", Width: 10, Height: 10}}
	a.Apply(ctrl.Diff(nil, p1, ""))
	a.Snap()

	p2 := []masonry.Placement{{ID: "a", X: 50, Width: 10, Height: 10}, {ID: "b", X: 50, Width: 10, Height: 10}}
	a.Apply(ctrl.Diff(p1, p2, ""))
	a.Step(50 * time.Millisecond)

	if x := sprite(t, a, "a").Style.X; x == 0 {
		t.Error("first item has no delay and should have moved")
	}
	if x := sprite(t, a, "b").Style.X; x != 0 {
		t.Errorf("second item is delayed by one trail and should not move yet, x = %v", x)
	}
}

func TestAnimatorFrameClamps(t *testing.T) {
	a := New(transition.DefaultConfig())
	a.Apply([]transition.Target{{
		ID:   "a",
		From: &transition.Style{Opacity: 2, Width: -5},
		To:   transition.Style{Opacity: 1, Width: 10},
	}})
	s := sprite(t, a, "a").Style
	if s.Opacity != 1 || s.Width != 0 {
		t.Errorf("frame should clamp, got opacity %v width %v", s.Opacity, s.Width)
	}
}

func TestAnimatorFrameOrderFollowsTargets(t *testing.T) {
	a := New(transition.DefaultConfig())
	a.Apply([]transition.Target{{ID: "b"}, {ID: "a"}, {ID: "c"}})
	var got []string
	for _, s := range a.Frame() {
		got = append(got, s.ID)
	}
	if len(got) != 3 || got[0] != "b" || got[1] != "a" || got[2] != "c" {
		t.Errorf("frame order = %v, want [b a c]", got)
	}
}
