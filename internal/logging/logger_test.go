package logging

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/jask/inventaris/internal/config"
)

func TestNewWritesJSONToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "inventaris.log")
	logger, err := New(config.LogConfig{Level: "info", Format: "json", Path: path})
	require.NoError(t, err)

	logger.Debug("hidden")
	logger.Info("snapshot restored")
	_ = logger.Sync()

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	require.Len(t, lines, 1)

	var entry map[string]any
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &entry))
	require.Equal(t, "snapshot restored", entry["msg"])
	require.Equal(t, "info", entry["level"])
	require.NotEmpty(t, entry["session_id"])
	require.Contains(t, entry, "timestamp")
}

func TestNewDebugLevel(t *testing.T) {
	path := filepath.Join(t.TempDir(), "debug.log")
	logger, err := New(config.LogConfig{Level: "debug", Format: "console", Path: path})
	require.NoError(t, err)

	logger.Debug("snapshot committed")
	_ = logger.Sync()

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Contains(t, string(data), "snapshot committed")
}
