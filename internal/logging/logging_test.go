package logging

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_FiltersByLevel(t *testing.T) {
	var buf bytes.Buffer
	log := New(&buf, zerolog.WarnLevel, "tui")

	log.Info().Msg("hidden")
	log.Warn().Str("op", "upload").Msg("shown")

	lines := bytes.Split(bytes.TrimSpace(buf.Bytes()), []byte("\n"))
	require.Len(t, lines, 1)

	var entry map[string]any
	require.NoError(t, json.Unmarshal(lines[0], &entry))
	assert.Equal(t, "shown", entry["message"])
	assert.Equal(t, "tui", entry["app"])
	assert.Equal(t, "upload", entry["op"])
	assert.Contains(t, entry, "time")
}

func TestOpen_AppendsToFile(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "data")

	for _, msg := range []string{"first", "second"} {
		l, err := Open(dir, zerolog.DebugLevel, "cli")
		require.NoError(t, err)
		l.Info().Msg(msg)
		require.NoError(t, l.Close())
	}

	data, err := os.ReadFile(filepath.Join(dir, FileName))
	require.NoError(t, err)
	assert.Contains(t, string(data), "first")
	assert.Contains(t, string(data), "second")
}

func TestClose_Nil(t *testing.T) {
	var l *Logger
	assert.NoError(t, l.Close())
}
