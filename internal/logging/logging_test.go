package logging

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMake_WriterHonorsLevel(t *testing.T) {
	var buf bytes.Buffer
	l, err := New().FromWriter(&buf).Level("info").Make()
	require.NoError(t, err)

	l.Debug().Msg("hidden")
	l.Info().Str("k", "v").Msg("shown")
	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), `"k":"v"`)
	assert.Contains(t, buf.String(), `"time"`)
}

func TestMake_FileAppends(t *testing.T) {
	path := filepath.Join(t.TempDir(), "linkdeck.log")
	for i := 0; i < 2; i++ {
		l, err := New().FromPath(path).Make()
		require.NoError(t, err)
		l.Warn().Msg("line")
		require.NoError(t, l.Close())
	}
	b, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, 2, bytes.Count(b, []byte("\n")))
}

func TestMake_NoSinkDiscards(t *testing.T) {
	l, err := New().Make()
	require.NoError(t, err)
	assert.Equal(t, zerolog.Disabled, l.GetLevel())
	assert.NoError(t, l.Close())
}

func TestParseLevel(t *testing.T) {
	lvl, err := ParseLevel("")
	require.NoError(t, err)
	assert.Equal(t, zerolog.WarnLevel, lvl)

	lvl, err = ParseLevel(" DEBUG ")
	require.NoError(t, err)
	assert.Equal(t, zerolog.DebugLevel, lvl)

	_, err = New().Level("loud").Make()
	assert.Error(t, err)
}
