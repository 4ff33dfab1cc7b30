package logging

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAppLogger_Levels(t *testing.T) {
	var buf bytes.Buffer
	l := newAppLogger(&buf, LogLevelWarn)

	l.Debug("hidden debug")
	l.Info("hidden info")
	l.Warn("shown warn", "key", "value")
	l.Error("shown error", "msg", "two words")

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "warn: shown warn key=value")
	assert.Contains(t, out, `error: shown error msg="two words"`)
	assert.False(t, l.IsDebug())
}

func TestAppLogger_With(t *testing.T) {
	var buf bytes.Buffer
	base := newAppLogger(&buf, LogLevelDebug)
	child := base.WithFields("realm", "main")

	child.Debug("looked up user", "username", "ME")
	base.Debug("plain")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2)
	assert.Contains(t, lines[0], "realm=main username=ME")
	assert.NotContains(t, lines[1], "realm=main")

	assert.Panics(t, func() { child.Panic("boom") })
}

func TestAccessLogger_LogAuth(t *testing.T) {
	var buf bytes.Buffer
	l := newAccessLogger(&buf)

	l.LogAuth("AUTH", "ME", "failure", "reason", "bad_password", "odd")

	out := buf.String()
	assert.Contains(t, out, "op=AUTH user=ME status=failure reason=bad_password")
	assert.NotContains(t, out, "odd")
}

func TestInitialize(t *testing.T) {
	dir := t.TempDir()
	appPath := filepath.Join(dir, "logs", "app.log")
	accessPath := filepath.Join(dir, "logs", "access.log")

	oldApp, oldAccess := App, Access
	t.Cleanup(func() { App, Access = oldApp, oldAccess })

	require.NoError(t, Initialize(Config{AppLogPath: appPath, AccessLogPath: accessPath, Level: LogLevelDebug}))
	App.Debug("written")
	Access.LogAuth("AUTH", "ME", "success")
	require.NoError(t, App.Close())

	data, err := os.ReadFile(appPath)
	require.NoError(t, err)
	assert.Contains(t, string(data), "debug: written")

	data, err = os.ReadFile(accessPath)
	require.NoError(t, err)
	assert.Contains(t, string(data), "status=success")
}

func TestParseLevel(t *testing.T) {
	level, err := ParseLevel("")
	require.NoError(t, err)
	assert.Equal(t, LogLevelInfo, level)

	level, err = ParseLevel("DEBUG")
	require.NoError(t, err)
	assert.Equal(t, LogLevelDebug, level)

	_, err = ParseLevel("verbose")
	assert.Error(t, err)
}

func TestNewAppLogger_Close(t *testing.T) {
	t.Run("file logger owns its file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "app.log")
		l, err := NewAppLogger(path, LogLevelInfo)
		require.NoError(t, err)
		require.NotNil(t, l.closer)

		l.Info("before close")
		require.NoError(t, l.Close())
		assert.ErrorIs(t, l.Close(), os.ErrClosed, "file should already be closed")

		data, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Contains(t, string(data), "before close")
	})

	t.Run("stdout logger has nothing to close", func(t *testing.T) {
		l, err := NewAppLogger("", LogLevelInfo)
		require.NoError(t, err)
		assert.Nil(t, l.closer)
		assert.NoError(t, l.Close())
	})
}
