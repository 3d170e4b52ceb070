package logging

import (
	"io"
	"os"
	"strings"

	"github.com/rs/zerolog"
)

const permission = 0o664

// Builder assembles a zerolog.Logger from a writer or a log file path.
type Builder struct {
	writer io.Writer
	path   string
	level  string
}

// Logger is a built logger plus the file it owns, if any.
type Logger struct {
	zerolog.Logger
	File *os.File
}

func New() *Builder {
	return &Builder{}
}

func (b *Builder) FromPath(path string) *Builder {
	b.path = strings.TrimSpace(path)
	return b
}

func (b *Builder) FromWriter(w io.Writer) *Builder {
	b.writer = w
	return b
}

// Level sets the minimum level by name (trace|debug|info|warn|error|disabled).
func (b *Builder) Level(level string) *Builder {
	b.level = level
	return b
}

// Make opens the log file when a path was given; a file wins over a writer.
// With neither, the logger discards everything.
func (b *Builder) Make() (*Logger, error) {
	lvl, err := ParseLevel(b.level)
	if err != nil {
		return nil, err
	}
	out := &Logger{}
	w := b.writer
	if b.path != "" {
		out.File, err = os.OpenFile(b.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, permission)
		if err != nil {
			return nil, err
		}
		w = zerolog.SyncWriter(out.File)
	}
	if w == nil {
		out.Logger = zerolog.Nop()
		return out, nil
	}
	out.Logger = zerolog.New(w).Level(lvl).With().Timestamp().Logger()
	return out, nil
}

func (l *Logger) Close() error {
	if l == nil || l.File == nil {
		return nil
	}
	return l.File.Close()
}

// ParseLevel maps an empty level to warn.
func ParseLevel(level string) (zerolog.Level, error) {
	level = strings.ToLower(strings.TrimSpace(level))
	if level == "" {
		return zerolog.WarnLevel, nil
	}
	return zerolog.ParseLevel(level)
}
