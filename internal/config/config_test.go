package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestDefaults(t *testing.T) {
	c := Default()
	require.Equal(t, "5050", c.Server.Port)
	require.Equal(t, 50, c.Waveform.DefaultLength)
	require.Equal(t, 3*time.Second, c.Upload.ProcessingDelay)
	require.Equal(t, []string{".csv", ".edf"}, c.Upload.AllowedExtensions)
	require.Equal(t, "id", c.Upload.CompletionKey)
	require.Equal(t, 24*time.Hour, c.Workspace.TTL)
	require.Equal(t, "config/patients.yaml", c.Dashboard.Fixtures)
}

func TestLoadWithoutFileUsesDefaults(t *testing.T) {
	_, err := Load(t.TempDir())
	require.NoError(t, err)
	require.Equal(t, 3*time.Second, Conf.Upload.ProcessingDelay)
}

func TestLoadFileAndEnv(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, "config"), 0o755))
	yaml := []byte("upload:\n  processing_delay: 250ms\n  completion_key: name\nwaveform:\n  default_length: 80\n")
	require.NoError(t, os.WriteFile(filepath.Join(root, "config", "config.yaml"), yaml, 0o644))
	t.Setenv("NEUROWATCH_SERVER_PORT", "9090")

	_, err := Load(root)
	require.NoError(t, err)
	require.Equal(t, 250*time.Millisecond, Conf.Upload.ProcessingDelay)
	require.Equal(t, "name", Conf.Upload.CompletionKey)
	require.Equal(t, 80, Conf.Waveform.DefaultLength)
	require.Equal(t, "9090", Conf.Server.Port)
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, "config"), 0o755))
	yaml := []byte("waveform:\n  default_length: 100\n  max_length: 10\n")
	require.NoError(t, os.WriteFile(filepath.Join(root, "config", "config.yaml"), yaml, 0o644))

	_, err := Load(root)
	require.Error(t, err)
}

func TestLoadRejectsUnknownCompletionKey(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, "config"), 0o755))
	yaml := []byte("upload:\n  completion_key: filename\n")
	require.NoError(t, os.WriteFile(filepath.Join(root, "config", "config.yaml"), yaml, 0o644))

	_, err := Load(root)
	require.ErrorContains(t, err, "completion_key")
}

func TestReloadUpdatesCurrent(t *testing.T) {
	root := t.TempDir()
	dir := filepath.Join(root, "config")
	require.NoError(t, os.MkdirAll(dir, 0o755))
	file := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(file, []byte("waveform:\n  default_length: 40\n"), 0o644))

	v, err := Load(root)
	require.NoError(t, err)
	require.Same(t, Conf, Current())
	startup := Conf

	require.NoError(t, os.WriteFile(file, []byte("waveform:\n  default_length: 60\n"), 0o644))
	require.NoError(t, v.ReadInConfig())
	reload(v, zap.NewNop())
	require.Equal(t, 60, Current().Waveform.DefaultLength)
	require.Equal(t, 40, Conf.Waveform.DefaultLength)
	require.Same(t, startup, Conf)

	// An invalid file keeps the last good configuration.
	require.NoError(t, os.WriteFile(file, []byte("waveform:\n  default_length: 60\n  max_length: 10\n"), 0o644))
	require.NoError(t, v.ReadInConfig())
	reload(v, zap.NewNop())
	require.Equal(t, 2000, Current().Waveform.MaxLength)
}
