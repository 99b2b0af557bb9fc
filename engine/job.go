package engine

import (
	"sync"
	"sync/atomic"

	"github.com/google/uuid"

	"github.com/arnemeyer/mrengine/internal/shared/logging"
)

// Key is the ordering capability intermediate and output keys must expose,
// a single method constraint in place of a comparison base class: K2 and
// K3 type parameters are required to satisfy Key[K2] / Key[K3]
// respectively. Input keys (K1) and every value type carry no constraint —
// the engine never compares them.
type Key[T any] interface {
	Less(other T) bool
}

func equivalent[K Key[K]](a, b K) bool {
	return !a.Less(b) && !b.Less(a)
}

// Pair is a generic key/value tuple, used for input, intermediate, and
// output pairs alike.
type Pair[K, V any] struct {
	Key   K
	Value V
}

// Client is the polymorphic collaborator supplied by the caller: a map
// function invoked once per input pair and a reduce function invoked once
// per shuffled key group. Both must be safe to call concurrently from
// distinct goroutines — the engine calls them concurrently across workers.
type Client[K1, V1 any, K2 Key[K2], V2 any, K3 Key[K3], V3 any] interface {
	Map(key K1, value V1, ctx *WorkerContext[K2, V2, K3, V3])
	Reduce(group []Pair[K2, V2], ctx *WorkerContext[K2, V2, K3, V3])
}

// jobCore holds the state shared by the job driver and every
// WorkerContext that is independent of the input key and value types (K1,
// V1): the atomic work index, the progress word, the barriers, the output
// collection and the mutex guarding it, and the shuffled group queue.
// Separating it from job lets WorkerContext carry only the four type
// parameters the Client interface exposes through Map/Reduce.
type jobCore[K2 Key[K2], V2 any, K3 Key[K3], V3 any] struct {
	id uuid.UUID

	output   *[]Pair[K3, V3]
	outputMu sync.Mutex

	numWorkers int

	workIndex atomic.Int64
	progress  atomic.Uint64

	barrier1 *Barrier
	barrier2 *Barrier

	groups []groupedPair[K2, V2]

	wg   sync.WaitGroup
	once sync.Once

	logger logging.Logger
	exit   func(code int)
}

// groupedPair is a non-empty shuffled group: every pair's key is
// equivalent, under K2's ordering, to the group's representative.
type groupedPair[K2 Key[K2], V2 any] struct {
	pairs []Pair[K2, V2]
}

// fatal logs the failure and terminates the process. Both infrastructure
// failures and client-raised failures are unrecoverable under this
// engine's error model: no partial results, no retries.
func (c *jobCore[K2, V2, K3, V3]) fatal(msg string, args ...any) {
	c.logger.Error(msg, append([]any{"job_id", c.id.String()}, args...)...)
	c.exit(1)
}

// job is the full shared state of one MapReduce job: the unexported
// counterpart of the opaque handle returned by Start.
type job[K1, V1 any, K2 Key[K2], V2 any, K3 Key[K3], V3 any] struct {
	*jobCore[K2, V2, K3, V3]

	client  Client[K1, V1, K2, V2, K3, V3]
	input   []Pair[K1, V1]
	workers []*WorkerContext[K2, V2, K3, V3]
}
