// Package shuffle keeps the mosaic moving.
//
// [Order] owns the display order of the items and reorders it with a uniform
// random permutation. [Scheduler] owns the interval timer that asks for a
// reshuffle. The two are deliberately separate: the scheduler never touches
// the items, it only emits [Tick] values, and the owner of the event loop
// decides whether to shuffle.
//
// # Lifecycle
//
//	sched := shuffle.NewScheduler(5*time.Second, send)
//	sched.Start()                 // mosaic visible, shuffling
//	sched.Stop()                  // lightbox opened: pending timer cancelled
//	order.Shuffle(); sched.Start() // lightbox closed: shuffle now, then resume
//	sched.Close()                 // teardown
//
// Every Start cancels the previous timer first, so at most one timer is ever
// pending. Ticks carry a generation number and [Scheduler.Fire] discards any
// tick that was already in flight when the scheduler was stopped or restarted.
package shuffle

import (
	"math/rand/v2"
	"slices"

	"github.com/matzehuels/mosaic/pkg/masonry"
)

// Order is the single owner of the item display order.
// It is not safe for concurrent use; mutate it from the event loop only.
type Order struct {
	items []masonry.Item
	rng   *rand.Rand
}

// NewOrder creates an order over a copy of items. A zero seed draws a
// random one, any other seed makes the shuffle sequence reproducible.
func NewOrder(items []masonry.Item, seed uint64) *Order {
	if seed == 0 {
		seed = rand.Uint64()
	}
	return &Order{
		items: slices.Clone(items),
		rng:   rand.New(rand.NewPCG(seed, seed^0xdeadbeef)),
	}
}

// Items returns a copy of the current order.
func (o *Order) Items() []masonry.Item {
	return slices.Clone(o.items)
}

// Len returns the number of items.
func (o *Order) Len() int { return len(o.items) }

// Shuffle applies a uniform random permutation (Fisher–Yates).
// Item identity is preserved; only positions change.
func (o *Order) Shuffle() {
	o.rng.Shuffle(len(o.items), func(i, j int) {
		o.items[i], o.items[j] = o.items[j], o.items[i]
	})
}

// Replace swaps in a new item set. Items that survive keep their current
// relative order, updated in place; new items are appended in input order.
func (o *Order) Replace(items []masonry.Item) {
	next := make(map[string]masonry.Item, len(items))
	for _, it := range items {
		next[it.ID] = it
	}

	kept := make([]masonry.Item, 0, len(items))
	seen := make(map[string]bool, len(items))
	for _, it := range o.items {
		if n, ok := next[it.ID]; ok {
			kept = append(kept, n)
			seen[it.ID] = true
		}
	}
	for _, it := range items {
		if !seen[it.ID] {
			kept = append(kept, it)
			seen[it.ID] = true
		}
	}
	o.items = kept
}
