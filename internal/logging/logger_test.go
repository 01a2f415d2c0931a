package logging

import (
	"testing"

	"github.com/paveg/biocframe/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestFromConfig(t *testing.T) {
	cfg := config.NewConfig()
	cfg.LogLevel = "debug"
	cfg.LogEncoding = "json"

	lc := FromConfig(cfg)
	assert.Equal(t, "debug", lc.Level)
	assert.Equal(t, "json", lc.Encoding)
	assert.Equal(t, []string{"stderr"}, lc.OutputPaths)
}

func TestInit(t *testing.T) {
	t.Cleanup(func() { SetLogger(nil) })

	require.NoError(t, Init(Config{Level: "info", Encoding: "json"}))
	assert.True(t, Get().Core().Enabled(zapcore.InfoLevel))
	assert.False(t, Get().Core().Enabled(zapcore.DebugLevel))

	err := Init(Config{Level: "loud"})
	assert.ErrorContains(t, err, "invalid log level")
}

func TestGetDefaultsToWarn(t *testing.T) {
	SetLogger(nil)
	t.Cleanup(func() { SetLogger(nil) })

	logger := Get()
	require.NotNil(t, logger)
	assert.True(t, logger.Core().Enabled(zapcore.WarnLevel))
	assert.False(t, logger.Core().Enabled(zapcore.InfoLevel))
	assert.Same(t, logger, Get())
}

func TestGlobalHelpers(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	SetLogger(zap.New(core))
	t.Cleanup(func() { SetLogger(nil) })

	Debug("combine", zap.String("op", "CombineRows"))
	Info("info")
	Warn("warn")
	Error("error")
	With(zap.Int("rows", 3)).Debug("child")

	require.Equal(t, 5, logs.Len())
	first := logs.All()[0]
	assert.Equal(t, "combine", first.Message)
	assert.Equal(t, "CombineRows", first.ContextMap()["op"])
	assert.Equal(t, int64(3), logs.All()[4].ContextMap()["rows"])
	assert.NoError(t, Sync())
}
