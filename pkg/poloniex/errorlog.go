package poloniex

import "github.com/rs/zerolog"

// ErrorLogger receives the message of every error field the exchange
// returns. It is called once per failed reply.
type ErrorLogger interface {
	LogError(message string)
}

// ErrorLoggerFunc adapts a function to ErrorLogger.
type ErrorLoggerFunc func(message string)

// LogError calls f(message).
func (f ErrorLoggerFunc) LogError(message string) {
	f(message)
}

type zerologErrorLogger struct {
	logger zerolog.Logger
}

// NewZerologErrorLogger writes exchange errors as error-level events.
func NewZerologErrorLogger(logger zerolog.Logger) ErrorLogger {
	return &zerologErrorLogger{logger: logger}
}

func (z *zerologErrorLogger) LogError(message string) {
	z.logger.Error().Str("source", "poloniex").Msg(message)
}
