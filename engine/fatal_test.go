package engine

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

type panickyClient struct{}

func (panickyClient) Map(_ int, _ string, ctx *WorkerContext[byteKey, int, byteKey, int]) {
	panic("map exploded")
}

func (panickyClient) Reduce(_ []Pair[byteKey, int], ctx *WorkerContext[byteKey, int, byteKey, int]) {}

// TestEngine_ClientPanic_IsFatal verifies that a panicking client
// callback is treated as fatal: logged and routed through the exit seam,
// with no partial results exposed. The overridden exit function records
// the code instead of terminating the process so the test can observe
// the outcome.
func TestEngine_ClientPanic_IsFatal(t *testing.T) {
	var exitCode atomic.Int32
	var exitCalled atomic.Bool
	exit := func(code int) {
		exitCode.Store(int32(code))
		exitCalled.Store(true)
	}

	input := []Pair[int, string]{{Key: 0, Value: "x"}}
	var output []Pair[byteKey, int]
	h := Start[int, string, byteKey, int, byteKey, int](panickyClient{}, input, &output, 1, withExit(exit))

	done := make(chan struct{})
	go func() {
		h.WaitForJob()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("worker never returned after panic recovery")
	}

	require.True(t, exitCalled.Load())
	require.EqualValues(t, 1, exitCode.Load())
	require.Empty(t, output)
}
