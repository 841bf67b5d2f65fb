package logx

import (
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/supplysight/assistant-core/internal/core"
)

// Opts controls logger initialisation. Production keeps structured JSON at
// info level; everything else gets a console writer with caller info.
type Opts struct {
	Environment core.Environment
}

var defaultOpts = &Opts{Environment: core.Development}

func safe(opts ...Opts) *Opts {
	if len(opts) == 0 {
		return defaultOpts
	}
	return &opts[0]
}

func Init(opts ...Opts) {
	if safe(opts...).Environment.IsProduction() {
		log.Logger = log.Logger.Level(zerolog.InfoLevel)
		return
	}
	log.Logger = zerolog.New(zerolog.NewConsoleWriter()).With().Timestamp().Caller().Logger()
	log.Logger = log.Logger.Level(zerolog.DebugLevel)
}

// With returns a child context builder for component-scoped loggers.
func With() zerolog.Context {
	return log.Logger.With()
}

func Debug() *zerolog.Event {
	return log.Debug()
}

func Info() *zerolog.Event {
	return log.Info()
}

func Warn() *zerolog.Event {
	return log.Warn()
}

func Error() *zerolog.Event {
	return log.Error()
}

func Fatal() *zerolog.Event {
	return log.Fatal()
}
