package logger

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"neurowatch/internal/config"

	"github.com/stretchr/testify/require"
)

func TestInitWritesPerLevelFiles(t *testing.T) {
	root := t.TempDir()
	conf := config.Default().Logging
	conf.Console = false
	conf.Compress = false

	log, err := Init(root, conf)
	require.NoError(t, err)
	log.Info("hello")
	log.Warn("careful")
	log.Debug("hidden")
	require.NoError(t, log.Sync())

	entries, err := os.ReadDir(filepath.Join(root, "logs"))
	require.NoError(t, err)

	var names []string
	for _, e := range entries {
		names = append(names, e.Name())
	}
	joined := strings.Join(names, ",")
	require.Contains(t, joined, "-info.log")
	require.Contains(t, joined, "-warn.log")
	require.NotContains(t, joined, "-debug.log")
}

func TestInitRejectsUnknownLevel(t *testing.T) {
	conf := config.Default().Logging
	conf.Level = "loud"
	_, err := Init(t.TempDir(), conf)
	require.Error(t, err)
}
