package jobs

import (
	"strconv"

	"github.com/arnemeyer/mrengine/engine"
)

func init() {
	Register(charcountJob{})
}

// charcountClient counts occurrences of each byte across the input lines:
// map emits one (byte, count) pair per distinct byte of a line, reduce
// sums per-group.
type charcountClient struct{}

func (charcountClient) Map(_ string, value string, ctx *engine.WorkerContext[charKey, int, charKey, int]) {
	var counts [256]int
	for i := 0; i < len(value); i++ {
		counts[value[i]]++
	}
	for b, n := range counts {
		if n == 0 {
			continue
		}
		ctx.Emit2(charKey(b), n)
	}
}

func (charcountClient) Reduce(group []engine.Pair[charKey, int], ctx *engine.WorkerContext[charKey, int, charKey, int]) {
	total := 0
	for _, p := range group {
		total += p.Value
	}
	ctx.Emit3(group[0].Key, total)
}

type charcountJob struct{}

func (charcountJob) Name() string { return "charcount" }

func (charcountJob) Describe() string {
	return "counts occurrences of each character across the input lines"
}

func (charcountJob) Start(lines []engine.Pair[string, string], numWorkers int, opts ...engine.Option) (Run, error) {
	var output []engine.Pair[charKey, int]
	handle := engine.Start[string, string, charKey, int, charKey, int](charcountClient{}, lines, &output, numWorkers, opts...)
	return &runner[string, string, charKey, int, charKey, int]{
		handle: handle,
		output: &output,
		format: func(p engine.Pair[charKey, int]) KV {
			return KV{Key: string(rune(p.Key)), Value: strconv.Itoa(p.Value)}
		},
	}, nil
}
