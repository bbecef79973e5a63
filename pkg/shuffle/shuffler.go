package shuffle

import (
	"context"

	"github.com/matzehuels/mosaic/pkg/masonry"
	"github.com/matzehuels/mosaic/pkg/observability"
)

// Shuffler ties an Order to its Scheduler and applies the pause/resume
// policy of the viewer: paused while the lightbox is open, and on resume one
// immediate shuffle followed by the regular interval.
type Shuffler struct {
	order    *Order
	sched    *Scheduler
	shuffles int
}

// NewShuffler pairs an order with a scheduler. Neither is started.
func NewShuffler(order *Order, sched *Scheduler) *Shuffler {
	return &Shuffler{order: order, sched: sched}
}

// Items returns the current display order.
func (s *Shuffler) Items() []masonry.Item { return s.order.Items() }

// Order returns the underlying order.
func (s *Shuffler) Order() *Order { return s.order }

// Shuffles returns how many shuffles have been applied.
func (s *Shuffler) Shuffles() int { return s.shuffles }

// Running reports whether periodic shuffling is active.
func (s *Shuffler) Running() bool { return s.sched.Running() }

// Start begins periodic shuffling without an immediate shuffle.
func (s *Shuffler) Start(ctx context.Context) {
	s.sched.Start()
	observability.Shuffle().OnSchedulerStart(ctx, s.sched.Interval())
}

// Pause cancels the pending shuffle.
func (s *Shuffler) Pause(ctx context.Context) {
	s.sched.Stop()
	observability.Shuffle().OnSchedulerStop(ctx)
}

// Resume shuffles once immediately and restarts the interval.
func (s *Shuffler) Resume(ctx context.Context) {
	s.apply(ctx, true)
	s.Start(ctx)
}

// Handle applies a tick from the scheduler. It returns true when the order
// changed and a relayout is due.
func (s *Shuffler) Handle(ctx context.Context, t Tick) bool {
	if !s.sched.Fire(t) {
		return false
	}
	s.apply(ctx, false)
	return true
}

// Close tears the scheduler down.
func (s *Shuffler) Close() {
	s.sched.Close()
}

func (s *Shuffler) apply(ctx context.Context, immediate bool) {
	s.order.Shuffle()
	s.shuffles++
	observability.Shuffle().OnShuffle(ctx, s.order.Len(), immediate)
}
