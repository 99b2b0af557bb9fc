package engine

import "sync"

// Barrier is a reusable rendezvous point for a fixed number of goroutines.
// Arrive blocks until every participant has called it for the current
// generation, then releases all of them and advances to the next
// generation so the same Barrier can be reused for a later phase.
type Barrier struct {
	mu         sync.Mutex
	cond       *sync.Cond
	n          int
	count      int
	generation uint64
}

// NewBarrier returns a Barrier for exactly n participants. n must be >= 1.
func NewBarrier(n int) *Barrier {
	if n < 1 {
		n = 1
	}
	b := &Barrier{n: n}
	b.cond = sync.NewCond(&b.mu)
	return b
}

// Arrive blocks the calling goroutine until n goroutines (including this
// one) have called Arrive for the current generation. The last arrival
// wakes every waiter and advances the generation, so Arrive can be called
// again immediately without any re-arm step.
func (b *Barrier) Arrive() {
	b.mu.Lock()
	gen := b.generation
	b.count++
	if b.count == b.n {
		b.count = 0
		b.generation++
		b.cond.Broadcast()
		b.mu.Unlock()
		return
	}
	for gen == b.generation {
		b.cond.Wait()
	}
	b.mu.Unlock()
}
