package engine

// WorkerContext is the per-goroutine scratch space passed into every Map
// and Reduce call. During the map phase it is written only by its owning
// worker; after the post-map barrier, worker 0 reads every worker's buffer
// during shuffle and no other worker touches it again.
type WorkerContext[K2 Key[K2], V2 any, K3 Key[K3], V3 any] struct {
	index int
	core  *jobCore[K2, V2, K3, V3]

	buffer []Pair[K2, V2]
}

// Emit2 appends an intermediate pair to this worker's local buffer. No
// synchronization is needed: the buffer is single-owner until the post-map
// barrier hands it off to worker 0 for shuffle.
func (wc *WorkerContext[K2, V2, K3, V3]) Emit2(key K2, value V2) {
	wc.buffer = append(wc.buffer, Pair[K2, V2]{Key: key, Value: value})
}

// Emit3 appends an output pair under the job's output mutex. Reduce calls
// run concurrently and in arbitrary order, so output order is unspecified.
func (wc *WorkerContext[K2, V2, K3, V3]) Emit3(key K3, value V3) {
	wc.core.outputMu.Lock()
	*wc.core.output = append(*wc.core.output, Pair[K3, V3]{Key: key, Value: value})
	wc.core.outputMu.Unlock()
}
