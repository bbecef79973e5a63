// Package lightbox implements the navigation state machine of the
// full-screen image viewer.
//
// A [Viewer] is either closed or open on one item of the canonical item list.
// Navigation is index-based over that list, independent of the order the
// mosaic currently shows. Keyboard, pointer and drag input all funnel into
// the same four operations: Select, Close, Next and Prev.
package lightbox

import (
	"context"
	"slices"

	"github.com/matzehuels/mosaic/pkg/observability"
)

// DefaultSwipeThreshold is the horizontal drag distance, in pixels, that
// counts as a swipe.
const DefaultSwipeThreshold = 50

// State is the open/closed state of the viewer.
type State int

const (
	Closed State = iota
	Open
)

func (s State) String() string {
	if s == Open {
		return "open"
	}
	return "closed"
}

// Viewer is the lightbox state machine. It is not safe for concurrent use.
//
// Invariant: index is a valid position in items iff the viewer is open, and
// items[index] is the selected id.
type Viewer struct {
	ctx       context.Context
	items     []string
	selected  string
	index     int
	threshold float64
	onChange  func(open bool)

	touching   bool
	touchStart float64
	fired      bool
}

// Option configures a Viewer.
type Option func(*Viewer)

// WithSwipeThreshold sets the swipe distance in pixels.
func WithSwipeThreshold(px float64) Option {
	return func(v *Viewer) {
		if px > 0 {
			v.threshold = px
		}
	}
}

// WithOpenChange registers a callback for every Closed/Open transition. The
// viewer uses it to pause the shuffle while open and resume it on close.
func WithOpenChange(fn func(open bool)) Option {
	return func(v *Viewer) { v.onChange = fn }
}

// WithContext sets the context passed to observability hooks.
func WithContext(ctx context.Context) Option {
	return func(v *Viewer) { v.ctx = ctx }
}

// New returns a closed viewer over the canonical ids.
func New(ids []string, opts ...Option) *Viewer {
	v := &Viewer{
		ctx:       context.Background(),
		items:     slices.Clone(ids),
		index:     -1,
		threshold: DefaultSwipeThreshold,
	}
	for _, opt := range opts {
		opt(v)
	}
	return v
}

// State returns the current state.
func (v *Viewer) State() State {
	if v.index < 0 {
		return Closed
	}
	return Open
}

// IsOpen reports whether an item is shown.
func (v *Viewer) IsOpen() bool { return v.index >= 0 }

// Selected returns the shown id and its index, or ok=false when closed.
func (v *Viewer) Selected() (id string, index int, ok bool) {
	if v.index < 0 {
		return "", -1, false
	}
	return v.selected, v.index, true
}

// Len returns the number of navigable items.
func (v *Viewer) Len() int { return len(v.items) }

// Select opens the viewer on id. Selecting while open moves to id without
// another open notification. Unknown ids are ignored and return false.
func (v *Viewer) Select(id string) bool {
	i := slices.Index(v.items, id)
	if i < 0 {
		return false
	}
	wasOpen := v.IsOpen()
	v.selected, v.index = id, i
	v.resetGesture()
	if wasOpen {
		observability.Viewer().OnNavigate(v.ctx, id, i)
		return true
	}
	observability.Viewer().OnOpen(v.ctx, id, i)
	v.notify(true)
	return true
}

// Close returns to the closed state. It returns false if already closed.
func (v *Viewer) Close() bool {
	if !v.IsOpen() {
		return false
	}
	v.selected, v.index = "", -1
	v.resetGesture()
	observability.Viewer().OnClose(v.ctx)
	v.notify(false)
	return true
}

// HasNext reports whether Next would move.
func (v *Viewer) HasNext() bool { return v.IsOpen() && v.index < len(v.items)-1 }

// HasPrev reports whether Prev would move.
func (v *Viewer) HasPrev() bool { return v.IsOpen() && v.index > 0 }

// Next moves to the following item. At the last item, or when closed, it
// does nothing and returns false.
func (v *Viewer) Next() bool {
	if !v.HasNext() {
		return false
	}
	v.moveTo(v.index + 1)
	return true
}

// Prev moves to the preceding item. At the first item, or when closed, it
// does nothing and returns false.
func (v *Viewer) Prev() bool {
	if !v.HasPrev() {
		return false
	}
	v.moveTo(v.index - 1)
	return true
}

// HandleKey maps a key name onto navigation: "right" is Next, "left" is Prev
// and "esc" is Close. Keys are ignored while closed. It returns true if the
// key was one of the three.
func (v *Viewer) HandleKey(name string) bool {
	if !v.IsOpen() {
		return false
	}
	switch name {
	case "right":
		v.Next()
	case "left":
		v.Prev()
	case "esc":
		v.Close()
	default:
		return false
	}
	return true
}

// TouchStart begins a horizontal gesture at x.
func (v *Viewer) TouchStart(x float64) {
	if !v.IsOpen() {
		return
	}
	v.touching, v.touchStart, v.fired = true, x, false
}

// TouchMove tracks the gesture. Once the pointer has travelled more than the
// threshold, a leftward drag triggers Next and a rightward one Prev. A
// gesture triggers at most once. It returns true on the move that triggered.
func (v *Viewer) TouchMove(x float64) bool {
	if !v.touching || v.fired || !v.IsOpen() {
		return false
	}
	switch {
	case v.touchStart-x > v.threshold:
		v.fired = true
		v.Next()
		return true
	case x-v.touchStart > v.threshold:
		v.fired = true
		v.Prev()
		return true
	}
	return false
}

// TouchEnd finishes the gesture.
func (v *Viewer) TouchEnd() { v.resetGesture() }

// Swiping reports whether a gesture is in progress.
func (v *Viewer) Swiping() bool { return v.touching }

// ClickImage handles a click on the shown image. The click is consumed and
// never closes the viewer.
func (v *Viewer) ClickImage() bool { return v.IsOpen() }

// ClickBackdrop handles a click outside the image and closes the viewer.
func (v *Viewer) ClickBackdrop() bool { return v.Close() }

// SetItems replaces the canonical list. An open viewer follows its item to
// the new index; if the item is gone the viewer closes and SetItems returns
// true.
func (v *Viewer) SetItems(ids []string) (closed bool) {
	v.items = slices.Clone(ids)
	if !v.IsOpen() {
		return false
	}
	i := slices.Index(v.items, v.selected)
	if i < 0 {
		return v.Close()
	}
	v.index = i
	return false
}

func (v *Viewer) moveTo(i int) {
	v.index = i
	v.selected = v.items[i]
	observability.Viewer().OnNavigate(v.ctx, v.selected, i)
}

func (v *Viewer) resetGesture() {
	v.touching, v.touchStart, v.fired = false, 0, false
}

func (v *Viewer) notify(open bool) {
	if v.onChange != nil {
		v.onChange(open)
	}
}
