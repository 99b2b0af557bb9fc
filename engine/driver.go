package engine

import "slices"

// runWorker is the function every worker goroutine runs: map loop → local
// sort → barrier → (worker 0 only) shuffle + phase switch → barrier →
// reduce loop. A panicking Map or Reduce call is treated the same as an
// infrastructure failure: logged and fatal, with no partial results
// exposed.
func runWorker[K1, V1 any, K2 Key[K2], V2 any, K3 Key[K3], V3 any](j *job[K1, V1, K2, V2, K3, V3], wc *WorkerContext[K2, V2, K3, V3]) {
	defer j.wg.Done()
	defer func() {
		if r := recover(); r != nil {
			j.fatal("client callback panicked", "worker", wc.index, "panic", r)
		}
	}()

	runMapPhase(j, wc)

	slices.SortFunc(wc.buffer, func(a, b Pair[K2, V2]) int {
		switch {
		case a.Key.Less(b.Key):
			return -1
		case b.Key.Less(a.Key):
			return 1
		default:
			return 0
		}
	})

	j.barrier1.Arrive()

	if wc.index == 0 {
		runShufflePhase(j)
	}

	j.barrier2.Arrive()

	runReducePhase(j, wc)
}

func runMapPhase[K1, V1 any, K2 Key[K2], V2 any, K3 Key[K3], V3 any](j *job[K1, V1, K2, V2, K3, V3], wc *WorkerContext[K2, V2, K3, V3]) {
	for {
		i := j.workIndex.Add(1) - 1
		if i >= int64(len(j.input)) {
			return
		}
		pair := j.input[i]
		j.client.Map(pair.Key, pair.Value, wc)
		j.progress.Add(processedStep)
	}
}

func runShufflePhase[K1, V1 any, K2 Key[K2], V2 any, K3 Key[K3], V3 any](j *job[K1, V1, K2, V2, K3, V3]) {
	j.logger.Debug("stage transition", "job_id", j.id.String(), "stage", StageShuffle.String())

	buffers := make([][]Pair[K2, V2], len(j.workers))
	for i, w := range j.workers {
		buffers[i] = w.buffer
	}

	groups := shuffle(buffers, &j.progress)

	j.groups = groups
	j.logger.Debug("stage transition", "job_id", j.id.String(), "stage", StageReduce.String(), "groups", len(groups))
	j.progress.Store(encodeProgress(StageReduce, 0, uint64(len(groups))))
	j.workIndex.Store(0)
}

func runReducePhase[K1, V1 any, K2 Key[K2], V2 any, K3 Key[K3], V3 any](j *job[K1, V1, K2, V2, K3, V3], wc *WorkerContext[K2, V2, K3, V3]) {
	for {
		i := j.workIndex.Add(1) - 1
		if i >= int64(len(j.groups)) {
			return
		}
		j.client.Reduce(j.groups[i].pairs, wc)
		j.progress.Add(processedStep)
	}
}
