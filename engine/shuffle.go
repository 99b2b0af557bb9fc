package engine

import (
	"container/heap"
	"sync/atomic"
)

// shuffleItem is one cursor position inside a k-way merge: the current
// head of buffer bufIdx.
type shuffleItem[K2 Key[K2], V2 any] struct {
	key    K2
	value  V2
	bufIdx int
}

// shuffleHeap is a min-heap of shuffleItem ordered by key, the same
// heap.Interface shape as a priority queue — only the ordering comes from
// the Key capability instead of a fixed priority field.
type shuffleHeap[K2 Key[K2], V2 any] []shuffleItem[K2, V2]

func (h shuffleHeap[K2, V2]) Len() int { return len(h) }

func (h shuffleHeap[K2, V2]) Less(i, j int) bool {
	return h[i].key.Less(h[j].key)
}

func (h shuffleHeap[K2, V2]) Swap(i, j int) { h[i], h[j] = h[j], h[i] }

func (h *shuffleHeap[K2, V2]) Push(x any) {
	*h = append(*h, x.(shuffleItem[K2, V2]))
}

func (h *shuffleHeap[K2, V2]) Pop() any {
	old := *h
	n := len(old)
	it := old[n-1]
	*h = old[:n-1]
	return it
}

// shuffle performs the single-producer k-way merge of N sorted
// intermediate buffers into key groups. It is run by worker 0 only,
// strictly between the two barrier arrivals in runWorker, so it can read
// every worker's buffer without synchronization: the post-map barrier
// already established the happens-before edge that makes each worker's
// sorted buffer visible here.
//
// shuffle first stores (SHUFFLE, 0, total), total being the summed size of
// all buffers, then advances progress by one processedStep per pair
// consumed from the heap. The REDUCE-stage transition is the caller's
// responsibility (runShufflePhase), since only the caller knows when it is
// safe to also reset the work index.
func shuffle[K2 Key[K2], V2 any](buffers [][]Pair[K2, V2], progress *atomic.Uint64) []groupedPair[K2, V2] {
	var total uint64
	for _, buf := range buffers {
		total += uint64(len(buf))
	}
	progress.Store(encodeProgress(StageShuffle, 0, total))

	h := make(shuffleHeap[K2, V2], 0, len(buffers))
	indices := make([]int, len(buffers))
	for i, buf := range buffers {
		if len(buf) > 0 {
			h = append(h, shuffleItem[K2, V2]{key: buf[0].Key, value: buf[0].Value, bufIdx: i})
			indices[i] = 1
		}
	}
	heap.Init(&h)

	var groups []groupedPair[K2, V2]
	for h.Len() > 0 {
		groupKey := h[0].key
		var group []Pair[K2, V2]

		for h.Len() > 0 && equivalent(groupKey, h[0].key) {
			item := heap.Pop(&h).(shuffleItem[K2, V2])
			group = append(group, Pair[K2, V2]{Key: item.key, Value: item.value})

			buf := buffers[item.bufIdx]
			if indices[item.bufIdx] < len(buf) {
				next := buf[indices[item.bufIdx]]
				heap.Push(&h, shuffleItem[K2, V2]{key: next.Key, value: next.Value, bufIdx: item.bufIdx})
				indices[item.bufIdx]++
			}
			progress.Add(processedStep)
		}
		groups = append(groups, groupedPair[K2, V2]{pairs: group})
	}
	return groups
}
