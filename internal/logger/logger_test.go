package logger

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileLoggerWritesToLogFile(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)
	t.Setenv("DTOP_DEBUG", "1")

	l, err := NewFileLogger("test")
	require.NoError(t, err)

	l.Debug("debug %s", "msg")
	l.Info("info %d", 42)
	l.Warn("warn")
	l.Error("error")

	data, err := os.ReadFile(filepath.Join(dir, "dtop", "dtop.log"))
	require.NoError(t, err)

	out := string(data)
	assert.Contains(t, out, "debug msg")
	assert.Contains(t, out, "info 42")
	assert.Contains(t, out, "warn")
	assert.Contains(t, out, "error")
	assert.Contains(t, out, `component=test`)
}

func TestFileLoggerDebugGatedByEnv(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)
	os.Unsetenv("DTOP_DEBUG")

	l, err := NewFileLogger("test")
	require.NoError(t, err)
	l.Debug("should not appear")
	l.Info("should appear")

	data, err := os.ReadFile(filepath.Join(dir, "dtop", "dtop.log"))
	require.NoError(t, err)

	out := string(data)
	assert.NotContains(t, out, "should not appear")
	assert.Contains(t, out, "should appear")
}

func TestNoopLogger(t *testing.T) {
	l := Noop()
	assert.NotPanics(t, func() {
		l.Debug("debug")
		l.Info("info")
		l.Warn("warn")
		l.Error("error")
	})
}

func TestBufferLogger(t *testing.T) {
	l := NewBufferLogger()

	l.Debug("debug %s", "msg")
	l.Info("info %s", "msg")
	l.Warn("warn %s", "msg")
	l.Error("error %s", "msg")

	require.Len(t, l.Messages, 4)
	assert.Equal(t, "debug", l.Messages[0].Level)
	assert.Equal(t, "debug msg", l.Messages[0].Message)
	assert.Equal(t, "info", l.Messages[1].Level)
	assert.Equal(t, "warn", l.Messages[2].Level)
	assert.Equal(t, "error", l.Messages[3].Level)
}

func TestBufferLoggerHasLevel(t *testing.T) {
	l := NewBufferLogger()

	assert.False(t, l.HasLevel("debug"))
	l.Debug("test")
	assert.True(t, l.HasLevel("debug"))
	assert.False(t, l.HasLevel("error"))
	l.Error("test")
	assert.True(t, l.HasLevel("error"))
}

func TestBufferLoggerClear(t *testing.T) {
	l := NewBufferLogger()

	l.Debug("test1")
	l.Info("test2")
	require.Len(t, l.Messages, 2)

	l.Clear()
	assert.Empty(t, l.Messages)
}

func TestDefault(t *testing.T) {
	original := defaultLogger
	defer func() { defaultLogger = original }()

	assert.NotNil(t, Default())

	buf := NewBufferLogger()
	SetDefault(buf)
	assert.Equal(t, buf, Default())
}
