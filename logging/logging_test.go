package logging_test

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/LubyRuffy/deltabridge/logging"
	"github.com/stretchr/testify/require"
)

func TestNew_TextOutput(t *testing.T) {
	var buf bytes.Buffer
	l := logging.New(logging.WithWriter(&buf), logging.WithPrefix("test"))
	l.Info("hello", "key", "value")

	out := buf.String()
	require.Contains(t, out, "hello")
	require.Contains(t, out, "key")
	require.Contains(t, out, "value")
	require.Contains(t, out, "test")
}

func TestNew_FiltersBelowLevel(t *testing.T) {
	var buf bytes.Buffer
	l := logging.New(logging.WithWriter(&buf))
	l.Debug("hidden")
	require.Empty(t, buf.String())

	buf.Reset()
	l = logging.New(logging.WithWriter(&buf), logging.WithLevel(slog.LevelDebug))
	l.Debug("shown")
	require.Contains(t, buf.String(), "shown")
}

func TestNew_JSON(t *testing.T) {
	var buf bytes.Buffer
	l := logging.New(logging.WithWriter(&buf), logging.WithJSON(true))
	l.Info("structured", "count", 42)

	var parsed map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &parsed))
	require.Equal(t, "structured", parsed["msg"])
	require.EqualValues(t, 42, parsed["count"])
}

func TestNew_MultipleWriters(t *testing.T) {
	var a, b bytes.Buffer
	l := logging.New(logging.WithWriters(&a, &b))
	l.Warn("multi")
	require.Contains(t, a.String(), "multi")
	require.Contains(t, b.String(), "multi")
}

func TestParseLevel(t *testing.T) {
	cases := map[string]slog.Level{
		"":      slog.LevelInfo,
		"debug": slog.LevelDebug,
		"INFO":  slog.LevelInfo,
		"warn":  slog.LevelWarn,
		"error": slog.LevelError,
	}
	for in, want := range cases {
		got, err := logging.ParseLevel(in)
		require.NoError(t, err, in)
		require.Equal(t, want, got, in)
	}

	_, err := logging.ParseLevel("loud")
	require.Error(t, err)
}
