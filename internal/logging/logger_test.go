package logging

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	lvl, err := ParseLevel("")
	require.NoError(t, err)
	assert.Equal(t, zerolog.InfoLevel, lvl)

	lvl, err = ParseLevel("debug")
	require.NoError(t, err)
	assert.Equal(t, zerolog.DebugLevel, lvl)

	_, err = ParseLevel("chatty")
	assert.Error(t, err)
}

func TestNewWithoutFileDiscards(t *testing.T) {
	l, err := New(Options{})
	require.NoError(t, err)
	l.Info().Msg("dropped")
	assert.NoError(t, l.Close())
}

func TestNewWritesToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "panefm.log")
	l, err := New(Options{File: path, Level: "warn"})
	require.NoError(t, err)

	l.Info().Msg("below level")
	l.Warn().Str("op", "copy").Msg("copy failed")
	require.NoError(t, l.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	out := string(data)
	assert.NotContains(t, out, "below level")
	assert.Contains(t, out, `"op":"copy"`)
	assert.Contains(t, out, `"message":"copy failed"`)
}

func TestNewWriterStructuredFields(t *testing.T) {
	var buf bytes.Buffer
	l := NewWriter(&buf, zerolog.DebugLevel)
	l.Debug().Str("path", "/tmp").Msg("listed")
	assert.True(t, strings.Contains(buf.String(), `"path":"/tmp"`), buf.String())
}
