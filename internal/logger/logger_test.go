package logger

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input    string
		expected Level
		wantErr  bool
	}{
		{"debug", LevelDebug, false},
		{"DEBUG", LevelDebug, false},
		{"info", LevelInfo, false},
		{" info ", LevelInfo, false},
		{"warn", LevelWarn, false},
		{"warning", LevelWarn, false},
		{"error", LevelError, false},
		{"ERROR", LevelError, false},
		{"invalid", LevelInfo, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseLevel(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tt.expected, got)
		})
	}
}

func TestLevelString(t *testing.T) {
	require.Equal(t, "DEBUG", LevelDebug.String())
	require.Equal(t, "INFO", LevelInfo.String())
	require.Equal(t, "WARN", LevelWarn.String())
	require.Equal(t, "ERROR", LevelError.String())
	require.Equal(t, "UNKNOWN", Level(42).String())
}

func TestLogger_SetLevel(t *testing.T) {
	var buf bytes.Buffer
	l := New()
	l.SetOutput(&buf)
	l.SetLevel(LevelWarn)

	l.Debug("debug message")
	l.Info("info message")
	l.Warn("warn message")
	l.Error("error message")

	output := buf.String()
	require.NotContains(t, output, "debug message")
	require.NotContains(t, output, "info message")
	require.Contains(t, output, "warn message")
	require.Contains(t, output, "error message")
}

func TestLogger_LogFormat(t *testing.T) {
	var buf bytes.Buffer
	l := New()
	l.SetOutput(&buf)
	l.SetLevel(LevelDebug)

	l.Info("test message with %s", "formatting")

	output := buf.String()
	require.Contains(t, output, "[INFO]")
	require.Contains(t, output, "test message with formatting")
}

func TestLogger_NamedSharesOutputAndLevel(t *testing.T) {
	var buf bytes.Buffer
	l := New()
	l.SetOutput(&buf)
	l.SetLevel(LevelInfo)

	tour := l.Named("tour")
	tour.Debug("hidden")
	tour.Info("stage %d entered", 2)

	output := buf.String()
	require.NotContains(t, output, "hidden")
	require.Contains(t, output, "[INFO] tour: stage 2 entered")

	// Level changes through the child apply to the parent
	tour.SetLevel(LevelDebug)
	l.Debug("now visible")
	require.Contains(t, buf.String(), "now visible")
}

func TestLogger_EnvVarLogLevel(t *testing.T) {
	t.Setenv("CELEBTOUR_LOG_LEVEL", "debug")
	t.Setenv("CELEBTOUR_LOG_FILE", "")

	l := New()
	require.Equal(t, LevelDebug, l.level)
}

func TestLogger_EnvVarLogFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "celebtour.log")
	t.Setenv("CELEBTOUR_LOG_FILE", path)
	t.Setenv("CELEBTOUR_LOG_LEVEL", "")

	l := New()
	l.Info("test message")
	require.NoError(t, l.Close())

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Contains(t, string(content), "test message")
}

func TestLogger_Configure(t *testing.T) {
	t.Setenv("CELEBTOUR_LOG_FILE", "")
	t.Setenv("CELEBTOUR_LOG_LEVEL", "")

	l := New()
	require.Error(t, l.Configure("loud", ""))

	path := filepath.Join(t.TempDir(), "configured.log")
	require.NoError(t, l.Configure("warn", path))
	l.Info("dropped")
	l.Warn("kept")
	require.NoError(t, l.Close())

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	require.False(t, strings.Contains(string(content), "dropped"))
	require.Contains(t, string(content), "kept")
}

func TestLogger_CloseWithoutFile(t *testing.T) {
	t.Setenv("CELEBTOUR_LOG_FILE", "")
	l := New()
	require.NoError(t, l.Close())
}

func TestPackageLevelFunctions(t *testing.T) {
	var buf bytes.Buffer
	Default.SetOutput(&buf)
	Default.SetLevel(LevelDebug)
	defer Default.SetLevel(LevelInfo)

	Debug("debug %d", 1)
	Info("info %d", 2)
	Warn("warn %d", 3)
	Error("error %d", 4)
	Named("share").Info("copied")

	output := buf.String()
	for _, want := range []string{"debug 1", "info 2", "warn 3", "error 4", "share: copied"} {
		require.Contains(t, output, want)
	}
}
