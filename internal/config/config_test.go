package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"arknotes/internal/domain"
)

func env(vars map[string]string) func(string) string {
	return func(k string) string { return vars[k] }
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := load(env(nil))
	require.NoError(t, err)

	home, _ := os.UserHomeDir()
	assert.Equal(t, filepath.Join(home, ".local/share/arknotes"), cfg.Home)
	assert.Equal(t, DefaultRemote, cfg.Remote)
	assert.Equal(t, 30*time.Second, cfg.SyncInterval)
	assert.Equal(t, zerolog.InfoLevel, cfg.LogLevel)
	assert.Equal(t, domain.Size{Width: 10, Height: 20}, cfg.Cell)
	assert.True(t, cfg.SyncEnabled())
}

func TestLoad_Overrides(t *testing.T) {
	cfg, err := load(env(map[string]string{
		"ARKNOTES_HOME":          "/data/notes",
		"ARKNOTES_REMOTE":        "http://localhost:8080/",
		"ARKNOTES_SYNC_INTERVAL": "0",
		"ARKNOTES_LOG_LEVEL":     "DEBUG",
		"ARKNOTES_CELL":          "8x16",
	}))
	require.NoError(t, err)

	assert.Equal(t, "/data/notes", cfg.Home)
	assert.Equal(t, "http://localhost:8080", cfg.Remote)
	assert.False(t, cfg.SyncEnabled())
	assert.Equal(t, zerolog.DebugLevel, cfg.LogLevel)
	assert.Equal(t, domain.Size{Width: 8, Height: 16}, cfg.Cell)
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name string
		vars map[string]string
	}{
		{name: "interval", vars: map[string]string{"ARKNOTES_SYNC_INTERVAL": "soon"}},
		{name: "negative interval", vars: map[string]string{"ARKNOTES_SYNC_INTERVAL": "-5s"}},
		{name: "level", vars: map[string]string{"ARKNOTES_LOG_LEVEL": "loud"}},
		{name: "cell", vars: map[string]string{"ARKNOTES_CELL": "10"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := load(env(tt.vars))
			assert.Error(t, err)
		})
	}
}

func TestParseCell(t *testing.T) {
	tests := []struct {
		in      string
		want    domain.Size
		wantErr bool
	}{
		{in: "10x20", want: domain.Size{Width: 10, Height: 20}},
		{in: " 7.5X15 ", want: domain.Size{Width: 7.5, Height: 15}},
		{in: "0x20", wantErr: true},
		{in: "ax20", wantErr: true},
		{in: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseCell(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
