// Package jobs is a registry of ready-to-run engine.Client implementations
// for the mrdriver CLI. Register/Get/List give callers name-based lookup
// across jobs whose engine.Client type parameters differ, via a small
// interface-erasure boundary (Job/Run below).
package jobs

import (
	"fmt"
	"sync"

	"github.com/arnemeyer/mrengine/engine"
)

// KV is a display-friendly key/value pair: every bundled job's output,
// regardless of its real K3/V3 types, is rendered through this shape so
// the CLI driver can print results without knowing which job produced
// them.
type KV struct {
	Key   string
	Value string
}

// Run is a started job, independent of its underlying type parameters.
type Run interface {
	State() engine.JobState
	Wait()
	Output() []KV
}

// Job is a registrable, runnable MapReduce client. Start should start the
// job immediately (as engine.Start does) and return a handle to it.
type Job interface {
	Name() string
	Describe() string
	Start(lines []engine.Pair[string, string], numWorkers int, opts ...engine.Option) (Run, error)
}

var (
	registryMu sync.Mutex
	registry   = make(map[string]Job)
)

// Register adds a job to the registry. It panics if name is already
// registered, since registration happens at init() time and a collision
// there is a programming error, not a runtime condition to recover from.
func Register(job Job) {
	registryMu.Lock()
	defer registryMu.Unlock()

	name := job.Name()
	if _, exists := registry[name]; exists {
		panic(fmt.Sprintf("jobs: job already registered: %s", name))
	}
	registry[name] = job
}

// Get looks up a registered job by name.
func Get(name string) (Job, error) {
	registryMu.Lock()
	defer registryMu.Unlock()

	job, exists := registry[name]
	if !exists {
		return nil, fmt.Errorf("jobs: unknown job %q (available: %v)", name, listLocked())
	}
	return job, nil
}

// List returns the names of every registered job.
func List() []string {
	registryMu.Lock()
	defer registryMu.Unlock()
	return listLocked()
}

func listLocked() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	return names
}

// runner adapts a started engine.Handle into the type-erased Run
// interface so the registry can hand it back without exposing the job's
// K1/V1/K2/V2/K3/V3 type parameters to callers.
type runner[K1, V1 any, K2 engine.Key[K2], V2 any, K3 engine.Key[K3], V3 any] struct {
	handle *engine.Handle[K1, V1, K2, V2, K3, V3]
	output *[]engine.Pair[K3, V3]
	format func(engine.Pair[K3, V3]) KV
}

func (r *runner[K1, V1, K2, V2, K3, V3]) State() engine.JobState {
	return r.handle.GetJobState()
}

func (r *runner[K1, V1, K2, V2, K3, V3]) Wait() {
	r.handle.WaitForJob()
}

func (r *runner[K1, V1, K2, V2, K3, V3]) Output() []KV {
	out := make([]KV, 0, len(*r.output))
	for _, p := range *r.output {
		out = append(out, r.format(p))
	}
	return out
}
