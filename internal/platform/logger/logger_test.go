package logger

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	cases := map[string]Level{
		"":        Info,
		"debug":   Debug,
		" WARN ":  Warn,
		"warning": Warn,
		"error":   Error,
		"bogus":   Info,
	}
	for in, want := range cases {
		require.Equal(t, want, ParseLevel(in), "input %q", in)
	}
}

func TestJSONFormat_IncludesFieldsAndApp(t *testing.T) {
	var buf bytes.Buffer
	log := New(Options{Level: Debug, Format: FormatJSON, App: "petstore", Out: &buf})

	log.With(map[string]any{"component": "api"}).Error("api request failed", map[string]any{
		"status": 404,
		"error":  errors.New("boom"),
		"":       "ignored",
	})

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	require.Equal(t, "api request failed", entry["msg"])
	require.Equal(t, "error", entry["level"])
	require.Equal(t, "petstore", entry["app"])
	require.Equal(t, "api", entry["component"])
	require.Equal(t, "boom", entry["error"])
	require.EqualValues(t, 404, entry["status"])
	require.NotContains(t, entry, "")
}

func TestLevelFiltersLowerEntries(t *testing.T) {
	var buf bytes.Buffer
	log := New(Options{Level: Warn, Format: FormatText, Out: &buf})

	log.Info("hidden", nil)
	log.Warn("shown", map[string]any{"k": "v"})

	out := buf.String()
	require.NotContains(t, out, "hidden")
	require.True(t, strings.Contains(out, "shown"))
	require.Contains(t, out, "k=v")
}
