package jobs

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/arnemeyer/mrengine/engine"
)

func init() {
	Register(wordcountJob{})
}

var wordcountNonAlnum = regexp.MustCompile(`[^\p{L}\p{N}]+`)

// wordcountClient counts occurrences of each word across the input lines,
// folding case and stripping non-alphanumeric runs before counting.
type wordcountClient struct{}

func (wordcountClient) Map(_ string, line string, ctx *engine.WorkerContext[stringKey, int, stringKey, int]) {
	for _, word := range strings.Fields(line) {
		word = wordcountNonAlnum.ReplaceAllString(word, "")
		word = strings.ToLower(strings.TrimSpace(word))
		if word == "" {
			continue
		}
		ctx.Emit2(stringKey(word), 1)
	}
}

func (wordcountClient) Reduce(group []engine.Pair[stringKey, int], ctx *engine.WorkerContext[stringKey, int, stringKey, int]) {
	total := 0
	for _, p := range group {
		total += p.Value
	}
	ctx.Emit3(group[0].Key, total)
}

type wordcountJob struct{}

func (wordcountJob) Name() string { return "wordcount" }

func (wordcountJob) Describe() string {
	return "counts occurrences of each word across the input lines"
}

func (wordcountJob) Start(lines []engine.Pair[string, string], numWorkers int, opts ...engine.Option) (Run, error) {
	var output []engine.Pair[stringKey, int]
	handle := engine.Start[string, string, stringKey, int, stringKey, int](wordcountClient{}, lines, &output, numWorkers, opts...)
	return &runner[string, string, stringKey, int, stringKey, int]{
		handle: handle,
		output: &output,
		format: func(p engine.Pair[stringKey, int]) KV {
			return KV{Key: string(p.Key), Value: strconv.Itoa(p.Value)}
		},
	}, nil
}
