package jobs

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/arnemeyer/mrengine/engine"
)

func init() {
	Register(identityJob{})
}

// identityClient passes input through unchanged: map emits one
// intermediate pair per input pair, unchanged; reduce collects every
// value sharing a key into a single output pair. It exercises the
// engine's grouping guarantee directly, with no aggregation logic of its
// own to obscure it.
type identityClient struct{}

func (identityClient) Map(key string, value int, ctx *engine.WorkerContext[stringKey, int, stringKey, []int]) {
	ctx.Emit2(stringKey(key), value)
}

func (identityClient) Reduce(group []engine.Pair[stringKey, int], ctx *engine.WorkerContext[stringKey, int, stringKey, []int]) {
	values := make([]int, 0, len(group))
	for _, p := range group {
		values = append(values, p.Value)
	}
	ctx.Emit3(group[0].Key, values)
}

type identityJob struct{}

func (identityJob) Name() string { return "identity" }

func (identityJob) Describe() string {
	return `groups input values by key unchanged; each line must read "key value"`
}

func (identityJob) Start(lines []engine.Pair[string, string], numWorkers int, opts ...engine.Option) (Run, error) {
	input := make([]engine.Pair[string, int], 0, len(lines))
	for _, line := range lines {
		key, value, err := parseIdentityLine(line.Value)
		if err != nil {
			return nil, err
		}
		input = append(input, engine.Pair[string, int]{Key: key, Value: value})
	}

	var output []engine.Pair[stringKey, []int]
	handle := engine.Start[string, int, stringKey, int, stringKey, []int](identityClient{}, input, &output, numWorkers, opts...)
	return &runner[string, int, stringKey, int, stringKey, []int]{
		handle: handle,
		output: &output,
		format: func(p engine.Pair[stringKey, []int]) KV {
			return KV{Key: string(p.Key), Value: fmt.Sprint(p.Value)}
		},
	}, nil
}

func parseIdentityLine(raw string) (string, int, error) {
	fields := strings.Fields(raw)
	if len(fields) != 2 {
		return "", 0, fmt.Errorf(`identity job: expected "key value", got %q`, raw)
	}
	value, err := strconv.Atoi(fields[1])
	if err != nil {
		return "", 0, fmt.Errorf("identity job: invalid value in %q: %w", raw, err)
	}
	return fields[0], value, nil
}
