package logging

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
)

// New builds a zerolog logger writing to w. Pretty output uses
// zerolog.ConsoleWriter; otherwise records are JSON lines. An unknown level
// falls back to info.
func New(w io.Writer, level string, pretty bool) zerolog.Logger {
	if w == nil {
		w = os.Stderr
	}
	if pretty {
		w = zerolog.ConsoleWriter{Out: w, TimeFormat: time.RFC3339}
	}
	lvl, err := zerolog.ParseLevel(level)
	if err != nil || level == "" {
		lvl = zerolog.InfoLevel
	}
	return zerolog.New(w).Level(lvl).With().Timestamp().Logger()
}

// ZerologLogger adapts a zerolog.Logger to the printf-style Logger interface
// used by the calculation engine.
type ZerologLogger struct {
	log zerolog.Logger
}

// NewZerologLogger wraps l, tagging every record with the component name.
func NewZerologLogger(l zerolog.Logger, component string) *ZerologLogger {
	return &ZerologLogger{log: l.With().Str("component", component).Logger()}
}

func (z *ZerologLogger) Debugf(format string, args ...any) { z.log.Debug().Msg(fmt.Sprintf(format, args...)) }
func (z *ZerologLogger) Infof(format string, args ...any)  { z.log.Info().Msg(fmt.Sprintf(format, args...)) }
func (z *ZerologLogger) Warnf(format string, args ...any)  { z.log.Warn().Msg(fmt.Sprintf(format, args...)) }
func (z *ZerologLogger) Errorf(format string, args ...any) { z.log.Error().Msg(fmt.Sprintf(format, args...)) }
