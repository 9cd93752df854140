// Package logging builds the zerolog logger shared by the binaries.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
)

// FileName is the log file inside the data directory
const FileName = "arknotes.log"

const permission = 0o664

// Logger is a zerolog logger together with the file it writes to
type Logger struct {
	zerolog.Logger
	file *os.File
}

// Open appends to <dir>/arknotes.log so the terminal UI is never written over
func Open(dir string, level zerolog.Level, component string) (*Logger, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}
	f, err := os.OpenFile(filepath.Join(dir, FileName), os.O_APPEND|os.O_CREATE|os.O_WRONLY, permission)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}
	return &Logger{Logger: New(zerolog.SyncWriter(f), level, component), file: f}, nil
}

// New builds a timestamped logger on w
func New(w io.Writer, level zerolog.Level, component string) zerolog.Logger {
	ctx := zerolog.New(w).Level(level).With().Timestamp()
	if component != "" {
		ctx = ctx.Str("app", component)
	}
	return ctx.Logger()
}

// Console builds a human readable logger on stderr, for the CLI
func Console(level zerolog.Level) zerolog.Logger {
	return New(zerolog.ConsoleWriter{Out: os.Stderr, NoColor: true}, level, "")
}

// Close closes the log file
func (l *Logger) Close() error {
	if l == nil || l.file == nil {
		return nil
	}
	return l.file.Close()
}
