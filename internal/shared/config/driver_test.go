package config

import (
	"os"
	"testing"

	"github.com/stretchr/testify/require"
)

func chdirTemp(t *testing.T) {
	dir := t.TempDir()
	old, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() {
		require.NoError(t, os.Chdir(old))
	})
}

func TestLoadDriver_DefaultsWhenNoConfigFile(t *testing.T) {
	chdirTemp(t)

	cfg, err := LoadDriver("")
	require.NoError(t, err)
	require.Equal(t, 4, cfg.Workers)
	require.Equal(t, "info", cfg.Logging.Level)
	require.Equal(t, "json", cfg.Logging.Format)
}
