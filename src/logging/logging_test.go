package logging

import (
	"bytes"
	"os"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	lvl, ok := ParseLevel(" WARNING ")
	require.True(t, ok)
	require.Equal(t, zerolog.WarnLevel, lvl)
	_, ok = ParseLevel("")
	require.False(t, ok)
	_, ok = ParseLevel("chatty")
	require.False(t, ok)
}

func TestNew(t *testing.T) {
	os.Unsetenv(EnvLogLevel)
	var buf bytes.Buffer
	logger := New(&buf, false)
	logger.Debug().Msg("hidden")
	logger.Info().Str("mount", "app").Msg("shown")
	require.NotContains(t, buf.String(), "hidden")
	require.Contains(t, buf.String(), `"mount":"app"`)

	buf.Reset()
	logger = New(&buf, true)
	logger.Debug().Msg("visible")
	require.Contains(t, buf.String(), "visible")
}

func TestEnvOverride(t *testing.T) {
	t.Setenv(EnvLogLevel, "error")
	var buf bytes.Buffer
	logger := New(&buf, true)
	logger.Info().Msg("quiet")
	require.Empty(t, buf.String())

	t.Setenv(EnvLogLevel, "debug")
	logger = NewConsole(&buf, false)
	logger.Debug().Str("bundle", "global.css").Msg("registered")
	require.Contains(t, buf.String(), "registered")
	require.Contains(t, buf.String(), "bundle=global.css")
}

func TestNewConsole(t *testing.T) {
	os.Unsetenv(EnvLogLevel)
	var buf bytes.Buffer
	logger := NewConsole(&buf, false)
	logger.Debug().Msg("hidden")
	logger.Info().Msg("mounted")
	require.NotContains(t, buf.String(), "hidden")
	require.Contains(t, buf.String(), "INF mounted")
	require.NotContains(t, buf.String(), "\x1b[")
}
