package shuffle

import (
	"sync"
	"time"

	"github.com/jonboulle/clockwork"
)

// DefaultInterval is the time between automatic reshuffles.
const DefaultInterval = 5 * time.Second

// Tick asks the owner of the item order to reshuffle.
type Tick struct {
	Gen uint64
}

// Scheduler is a cancellable, self-rearming interval timer.
//
// The timer callback runs on the clock's goroutine and only hands a Tick to
// the notify function. Ticks are validated and the next interval armed in
// [Scheduler.Fire], which the event loop calls when it receives the tick.
type Scheduler struct {
	clock    clockwork.Clock
	interval time.Duration
	notify   func(Tick)

	mu      sync.Mutex
	timer   clockwork.Timer
	gen     uint64
	running bool
	closed  bool
}

// Option configures a Scheduler.
type Option func(*Scheduler)

// WithClock replaces the real clock, typically with a clockwork.FakeClock in tests.
func WithClock(c clockwork.Clock) Option { return func(s *Scheduler) { s.clock = c } }

// NewScheduler creates a stopped scheduler. notify must not block.
func NewScheduler(interval time.Duration, notify func(Tick), opts ...Option) *Scheduler {
	if interval <= 0 {
		interval = DefaultInterval
	}
	s := &Scheduler{
		clock:    clockwork.NewRealClock(),
		interval: interval,
		notify:   notify,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Interval returns the configured interval.
func (s *Scheduler) Interval() time.Duration { return s.interval }

// Start cancels any pending timer and arms a fresh interval.
func (s *Scheduler) Start() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	s.cancelLocked()
	s.running = true
	s.armLocked()
}

// Stop cancels the pending timer. Ticks already in flight become stale.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cancelLocked()
	s.running = false
}

// Running reports whether the scheduler is armed.
func (s *Scheduler) Running() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.running
}

// Fire validates a tick received by the event loop. It returns true if the
// tick belongs to the current run, in which case the next interval has been
// armed and the caller should shuffle. Stale ticks return false.
func (s *Scheduler) Fire(t Tick) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.running || t.Gen != s.gen {
		return false
	}
	s.armLocked()
	return true
}

// Close stops the scheduler permanently.
func (s *Scheduler) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cancelLocked()
	s.running = false
	s.closed = true
}

func (s *Scheduler) armLocked() {
	s.gen++
	gen := s.gen
	s.timer = s.clock.AfterFunc(s.interval, func() {
		s.notify(Tick{Gen: gen})
	})
}

func (s *Scheduler) cancelLocked() {
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
	s.gen++
}
