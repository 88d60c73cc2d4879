package observability

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"

	"github.com/lixenwraith/reachlab/config"
)

type bufferSyncer struct {
	strings.Builder
}

func (b *bufferSyncer) Sync() error { return nil }

func TestInitializeConsole(t *testing.T) {
	ResetForTest()
	t.Cleanup(ResetForTest)

	buf := &bufferSyncer{}
	Initialize(config.LoggerConfig{Level: "debug", Format: "console"}, buf)

	GetLogger().Debug("Trial resolved")
	Sync()

	out := buf.String()
	assert.Contains(t, out, "Trial resolved")
	assert.Contains(t, out, "reachlab.")
	assert.Contains(t, out, "DEBUG")
}

func TestInitializeOnce(t *testing.T) {
	ResetForTest()
	t.Cleanup(ResetForTest)

	first := &bufferSyncer{}
	second := &bufferSyncer{}
	Initialize(config.LoggerConfig{Level: "info", Format: "json"}, first)
	Initialize(config.LoggerConfig{Level: "info", Format: "json"}, second)

	GetLogger().Info("hello")
	assert.NotEmpty(t, first.String())
	assert.Empty(t, second.String())
}

func TestLevelFilteringAndFallbackLevel(t *testing.T) {
	ResetForTest()
	t.Cleanup(ResetForTest)

	buf := &bufferSyncer{}
	Initialize(config.LoggerConfig{Level: "loud", Format: "json"}, buf)

	GetLogger().Debug("hidden")
	GetLogger().Info("shown")
	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "shown")
}

func TestFileCoreWritesJSON(t *testing.T) {
	ResetForTest()
	t.Cleanup(ResetForTest)

	path := filepath.Join(t.TempDir(), "reachlab.log")
	Initialize(config.LoggerConfig{Level: "info", Format: "console", LogFile: path, MaxSize: 1}, zapcore.AddSync(&bufferSyncer{}))

	GetLogger().Info("Session started")
	Sync()

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	var entry map[string]any
	require.NoError(t, json.Unmarshal([]byte(strings.SplitN(string(data), "\n", 2)[0]), &entry))
	assert.Equal(t, "Session started", entry["msg"])
	assert.Equal(t, "INFO", entry["level"])
}

func TestGetLoggerFallback(t *testing.T) {
	ResetForTest()
	t.Cleanup(ResetForTest)
	assert.NotNil(t, GetLogger())
}
