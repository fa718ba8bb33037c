package log

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"
)

// GooseLogger routes migration output through the context logger. Per
// migration lines go to debug, the summary line to info.
type GooseLogger struct {
	logger zerolog.Logger
}

func NewGooseLoggerFromCtx(ctx context.Context) *GooseLogger {
	return &GooseLogger{
		logger: FromCtx(ctx).With().Str("component", "migrations").Logger(),
	}
}

func (g *GooseLogger) Fatalf(format string, v ...any) {
	g.logger.Fatal().Msgf(format, v...)
}

func (g *GooseLogger) Printf(format string, v ...any) {
	msg, summary := gooseMessage(format, v...)
	if msg == "" {
		return
	}
	if summary {
		g.logger.Info().Msg(msg)
		return
	}
	g.logger.Debug().Msg(msg)
}

// gooseMessage trims goose's prefix and newline. Goose prefixes only its
// run summaries, so the prefix tells them apart from per file lines.
func gooseMessage(format string, v ...any) (string, bool) {
	msg := strings.TrimSpace(fmt.Sprintf(format, v...))
	trimmed, summary := strings.CutPrefix(msg, "goose: ")
	return trimmed, summary
}
