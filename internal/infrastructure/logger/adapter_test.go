package logger

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestSanitize(t *testing.T) {
	assert.Equal(t, "https___example_com", sanitize("https://example.com"))
	assert.Equal(t, "run", sanitize("///"))
	assert.Len(t, sanitize(strings.Repeat("a", 100)), 60)
}

func TestLoggerAdapter_WithFieldsCarriesContext(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	log := NewWithCore(core)

	runLog := log.WithField("run_id", "r-1").WithFields(map[string]any{"agent": "Lead Market Analyst"})
	runLog.Info("Task started", "task", "product_analysis")

	entries := logs.All()
	require.Len(t, entries, 1)
	fields := entries[0].ContextMap()
	assert.Equal(t, "Task started", entries[0].Message)
	assert.Equal(t, "r-1", fields["run_id"])
	assert.Equal(t, "Lead Market Analyst", fields["agent"])
	assert.Equal(t, "product_analysis", fields["task"])
}

func TestNewLoggerAdapter_WritesJSONFile(t *testing.T) {
	dir := t.TempDir()

	log, err := NewLoggerAdapter(Config{Dir: dir, Name: "crew", Level: "info"})
	require.NoError(t, err)

	log.Debug("hidden")
	log.Info("visible", "key", "value")
	require.NoError(t, log.Close())

	files, err := filepath.Glob(filepath.Join(dir, "*_crew.log"))
	require.NoError(t, err)
	require.Len(t, files, 1)

	data, err := os.ReadFile(files[0])
	require.NoError(t, err)
	assert.Contains(t, string(data), `"message":"visible"`)
	assert.Contains(t, string(data), `"key":"value"`)
	assert.NotContains(t, string(data), "hidden")
}

func TestLoggerAdapter_CloseReleasesFile(t *testing.T) {
	if _, err := os.Stat("/proc/self/fd"); err != nil {
		t.Skip("needs /proc to inspect open descriptors")
	}
	dir := t.TempDir()

	log, err := NewLoggerAdapter(Config{Dir: dir, Name: "release"})
	require.NoError(t, err)
	child := log.WithField("stage", "copy")
	child.Info("from child")
	require.NoError(t, child.Close(), "derived loggers share the file and leave it open")

	files, err := filepath.Glob(filepath.Join(dir, "*_release.log"))
	require.NoError(t, err)
	require.Len(t, files, 1)
	assert.True(t, holdsOpen(t, files[0]))

	require.NoError(t, log.Close())
	assert.False(t, holdsOpen(t, files[0]))
	assert.NoError(t, log.Close())
}

func holdsOpen(t *testing.T, path string) bool {
	t.Helper()
	want, err := filepath.EvalSymlinks(path)
	require.NoError(t, err)
	entries, err := os.ReadDir("/proc/self/fd")
	require.NoError(t, err)
	for _, e := range entries {
		target, err := os.Readlink(filepath.Join("/proc/self/fd", e.Name()))
		if err == nil && target == want {
			return true
		}
	}
	return false
}
