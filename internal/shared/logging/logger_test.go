package logging

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"os"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSlogLogger_WritesStructuredJSON(t *testing.T) {
	r, w, err := os.Pipe()
	require.NoError(t, err)

	orig := os.Stderr
	os.Stderr = w
	defer func() { os.Stderr = orig }()

	logger := NewSlogLogger(LevelInfo)
	logger.Info("job started", "job_id", "abc-123")
	require.NoError(t, w.Close())

	var buf bytes.Buffer
	_, err = buf.ReadFrom(r)
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	require.Equal(t, "job started", decoded["msg"])
	require.Equal(t, "abc-123", decoded["job_id"])
}

func TestLevelConstants_MatchSlog(t *testing.T) {
	require.Equal(t, slog.LevelDebug, LevelDebug)
	require.Equal(t, slog.LevelInfo, LevelInfo)
	require.Equal(t, slog.LevelWarn, LevelWarn)
	require.Equal(t, slog.LevelError, LevelError)
}
