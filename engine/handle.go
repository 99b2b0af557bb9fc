package engine

import (
	"os"

	"github.com/google/uuid"

	"github.com/arnemeyer/mrengine/internal/shared/logging"
)

// Handle is the opaque handle returned by Start. Its zero value is not
// usable; only a value returned by Start is. Calling any operation on a
// Handle after Close is undefined.
type Handle[K1, V1 any, K2 Key[K2], V2 any, K3 Key[K3], V3 any] struct {
	j *job[K1, V1, K2, V2, K3, V3]
}

// Option configures a job started with Start.
type Option func(*options)

type options struct {
	logger logging.Logger
	exit   func(code int)
}

// WithLogger overrides the logger used for fatal diagnostics. The default
// is a slog-backed JSON logger writing to stderr.
func WithLogger(l logging.Logger) Option {
	return func(o *options) { o.logger = l }
}

// withExit overrides the function called on fatal infrastructure or
// client-raised failure. Unexported: it exists purely so tests can observe
// the fatal path without killing the test binary; production callers have
// no reason to override os.Exit.
func withExit(exit func(code int)) Option {
	return func(o *options) { o.exit = exit }
}

// Start allocates a job context, publishes the initial progress
// (MAP, 0, len(input)), spawns numWorkers workers, and returns an opaque
// handle. numWorkers less than 1 is treated as 1. Surplus workers (more
// workers than input pairs) exit the map loop immediately and wait at the
// first barrier.
func Start[K1, V1 any, K2 Key[K2], V2 any, K3 Key[K3], V3 any](
	client Client[K1, V1, K2, V2, K3, V3],
	input []Pair[K1, V1],
	output *[]Pair[K3, V3],
	numWorkers int,
	opts ...Option,
) *Handle[K1, V1, K2, V2, K3, V3] {
	if numWorkers < 1 {
		numWorkers = 1
	}

	o := options{
		logger: logging.NewSlogLogger(logging.LevelInfo),
		exit:   os.Exit,
	}
	for _, opt := range opts {
		opt(&o)
	}

	core := &jobCore[K2, V2, K3, V3]{
		id:         uuid.New(),
		output:     output,
		numWorkers: numWorkers,
		barrier1:   NewBarrier(numWorkers),
		barrier2:   NewBarrier(numWorkers),
		logger:     o.logger,
		exit:       o.exit,
	}
	core.progress.Store(encodeProgress(StageMap, 0, uint64(len(input))))

	j := &job[K1, V1, K2, V2, K3, V3]{
		jobCore: core,
		client:  client,
		input:   input,
	}

	j.workers = make([]*WorkerContext[K2, V2, K3, V3], numWorkers)
	for i := range j.workers {
		j.workers[i] = &WorkerContext[K2, V2, K3, V3]{index: i, core: core}
	}

	o.logger.Info("job started", "job_id", core.id.String(), "workers", numWorkers, "input_size", len(input))

	j.wg.Add(numWorkers)
	for i := 0; i < numWorkers; i++ {
		go runWorker(j, j.workers[i])
	}

	return &Handle[K1, V1, K2, V2, K3, V3]{j: j}
}

// WaitForJob blocks until every worker has returned. It is idempotent: the
// first call joins the workers, every subsequent call is a no-op.
// Concurrent calls to WaitForJob from multiple goroutines on the same
// handle are not supported — only a single-threaded caller contract is
// guaranteed.
func (h *Handle[K1, V1, K2, V2, K3, V3]) WaitForJob() {
	h.j.once.Do(func() {
		h.j.wg.Wait()
	})
}

// GetJobState atomically loads and decodes the progress word. It never
// blocks.
func (h *Handle[K1, V1, K2, V2, K3, V3]) GetJobState() JobState {
	stage, processed, total := decodeProgress(h.j.progress.Load())
	return JobState{Stage: stage, Percentage: percentage(processed, total)}
}

// Close waits for the job to finish and releases the handle. Calling any
// other operation on h after Close returns is undefined; double-close is
// not a supported operation.
func (h *Handle[K1, V1, K2, V2, K3, V3]) Close() {
	h.WaitForJob()
}
