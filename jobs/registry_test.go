package jobs

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arnemeyer/mrengine/engine"
)

func TestRegistry_BundledJobsAreRegistered(t *testing.T) {
	require.ElementsMatch(t, []string{"charcount", "wordcount", "identity"}, List())
}

func TestRegistry_Get_UnknownJob(t *testing.T) {
	_, err := Get("does-not-exist")
	require.Error(t, err)
}

func TestCharcountJob_CountsCharactersAcrossLines(t *testing.T) {
	job, err := Get("charcount")
	require.NoError(t, err)

	lines := []engine.Pair[string, string]{
		{Key: "0", Value: "ab"},
		{Key: "1", Value: "bc"},
	}
	run, err := job.Start(lines, 2)
	require.NoError(t, err)
	run.Wait()

	byKey := map[string]string{}
	for _, kv := range run.Output() {
		byKey[kv.Key] = kv.Value
	}
	require.Equal(t, map[string]string{"a": "1", "b": "2", "c": "1"}, byKey)

	state := run.State()
	require.Equal(t, engine.StageReduce, state.Stage)
	require.Equal(t, 100.0, state.Percentage)
}

func TestWordcountJob_CountsWordsCaseInsensitively(t *testing.T) {
	job, err := Get("wordcount")
	require.NoError(t, err)

	lines := []engine.Pair[string, string]{
		{Key: "0", Value: "Go go GO!"},
	}
	run, err := job.Start(lines, 2)
	require.NoError(t, err)
	run.Wait()

	require.Len(t, run.Output(), 1)
	require.Equal(t, "go", run.Output()[0].Key)
	require.Equal(t, "3", run.Output()[0].Value)
}

func TestIdentityJob_ParsesKeyValueLines(t *testing.T) {
	job, err := Get("identity")
	require.NoError(t, err)

	lines := []engine.Pair[string, string]{
		{Key: "0", Value: "k1 1"},
		{Key: "1", Value: "k2 1"},
		{Key: "2", Value: "k1 1"},
	}
	run, err := job.Start(lines, 3)
	require.NoError(t, err)
	run.Wait()

	byKey := map[string]string{}
	for _, kv := range run.Output() {
		byKey[kv.Key] = kv.Value
	}
	require.Equal(t, "[1 1]", byKey["k1"])
	require.Equal(t, "[1]", byKey["k2"])
}

func TestIdentityJob_RejectsMalformedLine(t *testing.T) {
	job, err := Get("identity")
	require.NoError(t, err)

	lines := []engine.Pair[string, string]{{Key: "0", Value: "not-enough-fields"}}
	_, err = job.Start(lines, 1)
	require.Error(t, err)
}
