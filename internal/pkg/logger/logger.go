package logger

import (
	"os"

	"github.com/rs/zerolog"

	"github.com/doeshing/serpkit-go/internal/ports"
)

// ZerologLogger implements ports.Logger on top of zerolog's console
// writer. Debug output is gated by the verbose flag so normal runs
// stay quiet on stderr.
type ZerologLogger struct {
	log zerolog.Logger
}

// New creates a ZerologLogger writing to stderr.
func New(verbose bool) *ZerologLogger {
	level := zerolog.InfoLevel
	if verbose {
		level = zerolog.DebugLevel
	}
	log := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
		With().Timestamp().Logger().
		Level(level)
	return &ZerologLogger{log: log}
}

func (l *ZerologLogger) Debug(msg string, fields map[string]interface{}) {
	l.log.Debug().Fields(fields).Msg(msg)
}

func (l *ZerologLogger) Info(msg string, fields map[string]interface{}) {
	l.log.Info().Fields(fields).Msg(msg)
}

func (l *ZerologLogger) Warn(msg string, fields map[string]interface{}) {
	l.log.Warn().Fields(fields).Msg(msg)
}

func (l *ZerologLogger) Error(msg string, err error, fields map[string]interface{}) {
	l.log.Error().Err(err).Fields(fields).Msg(msg)
}

var _ ports.Logger = (*ZerologLogger)(nil)
