package logger

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	l := NewWriter(&buf, "warn")

	l.Debugf("debug %d", 1)
	l.Infof("info %d", 2)
	l.Warnf("warn %d", 3)
	l.Errorf("error %d", 4)

	out := buf.String()
	assert.NotContains(t, out, "debug 1")
	assert.NotContains(t, out, "info 2")
	assert.Contains(t, out, "[WARN] warn 3")
	assert.Contains(t, out, "[ERROR] error 4")
}

func TestWithTagsComponent(t *testing.T) {
	var buf bytes.Buffer
	l := NewWriter(&buf, "debug").With("hunt").With("backend")

	l.Infof("lookup done")

	assert.Contains(t, buf.String(), "[INFO] [hunt.backend] lookup done")
}

func TestNilAndDisabledLoggersDiscard(t *testing.T) {
	var l *Logger
	l.Infof("nothing")
	assert.Nil(t, l.With("x"))
	assert.NoError(t, l.Close())

	disabled, err := New(Config{Enabled: false})
	require.NoError(t, err)
	disabled.Errorf("still nothing")
}

func TestNewCreatesLogFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "socdash.log")
	l, err := New(Config{Enabled: true, Level: "info", File: path})
	require.NoError(t, err)

	l.Infof("session started")
	require.NoError(t, l.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, strings.Contains(string(data), "session started"))
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, Debug, ParseLevel("DEBUG"))
	assert.Equal(t, Warn, ParseLevel("warning"))
	assert.Equal(t, Error, ParseLevel("error"))
	assert.Equal(t, Info, ParseLevel("verbose"))
}
