package engine

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestEncodeDecodeProgress_RoundTrip(t *testing.T) {
	cases := []struct {
		stage     Stage
		processed uint64
		total     uint64
	}{
		{StageUndefined, 0, 0},
		{StageMap, 0, 3},
		{StageMap, 3, 3},
		{StageShuffle, 5, 12},
		{StageReduce, 0, 0},
		{StageReduce, 1000, 1000},
		{StageMap, countMask, countMask},
	}
	for _, c := range cases {
		word := encodeProgress(c.stage, c.processed, c.total)
		stage, processed, total := decodeProgress(word)
		require.Equal(t, c.stage, stage)
		require.Equal(t, c.processed, processed)
		require.Equal(t, c.total, total)
	}
}

func TestEncodeProgress_BitLayout(t *testing.T) {
	// [stage:2][processed:31][total:31], stage in the top two bits.
	word := encodeProgress(StageReduce, 7, 9)
	require.Equal(t, uint64(StageReduce), word>>62)
	require.Equal(t, uint64(7), (word>>31)&countMask)
	require.Equal(t, uint64(9), word&countMask)
}

func TestPercentage_ZeroTotalIsComplete(t *testing.T) {
	require.Equal(t, 100.0, percentage(0, 0))
}

func TestPercentage_Fraction(t *testing.T) {
	require.InDelta(t, 50.0, percentage(5, 10), 1e-9)
	require.InDelta(t, 0.0, percentage(0, 10), 1e-9)
	require.InDelta(t, 100.0, percentage(10, 10), 1e-9)
}

func TestStageString(t *testing.T) {
	require.Equal(t, "UNDEFINED", StageUndefined.String())
	require.Equal(t, "MAP", StageMap.String())
	require.Equal(t, "SHUFFLE", StageShuffle.String())
	require.Equal(t, "REDUCE", StageReduce.String())
}
