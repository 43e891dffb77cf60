// Package log provides structured logging for the autoprice pipeline.
//
// Logging is built on Go's standard log/slog with a JSON handler. Errors
// created by pkg/errors carry cockroachdb stack traces; the handler in this
// package extracts them into a dedicated attribute. Warnings raised through
// pkg/errors.Warn are routed to a zerolog sink installed by SetupWarnSink.
package log

import (
	"io"
	"log/slog"
	"os"

	"github.com/rs/zerolog"

	apperrors "github.com/YuminosukeSato/autoprice/pkg/errors"
)

// SetupLogger function setup logger.
func SetupLogger(loglevel string) error {
	return SetupLoggerWithWriter(loglevel, os.Stdout)
}

// SetupLoggerWithWriter is SetupLogger with a custom output destination,
// mainly for tests.
func SetupLoggerWithWriter(loglevel string, w io.Writer) error {
	level, err := ToLogLevel(loglevel)
	if err != nil {
		return err
	}

	ops := slog.HandlerOptions{
		AddSource: true,
		Level:     level,
		// Replace attributes to convert to CloudLogging format.
		ReplaceAttr: func(groups []string, attr slog.Attr) slog.Attr {
			switch attr.Key {
			case slog.LevelKey:
				attr = slog.Attr{
					Key:   "severity",
					Value: attr.Value,
				}
			case slog.MessageKey:
				attr = slog.Attr{
					Key:   "message",
					Value: attr.Value,
				}
			case slog.SourceKey:
				attr = slog.Attr{
					Key:   "logging.googleapis.com/sourceLocation",
					Value: attr.Value,
				}
			}
			return attr
		},
	}
	handler := slog.NewJSONHandler(w, &ops)
	errFmtHandler := WrapByErrFmtHandler(handler)
	slog.SetDefault(slog.New(errFmtHandler))
	return nil
}

// ToLogLevel maps a level name to its slog level. Unknown names are a
// configuration error; levels reach this point straight from user YAML
// and flags.
func ToLogLevel(level string) (slog.Level, error) {
	switch level {
	case "info":
		return slog.LevelInfo, nil
	case "debug":
		return slog.LevelDebug, nil
	case "warn":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, apperrors.NewValidationError("log_level",
			"must be debug, info, warn or error", level)
	}
}

const (
	ErrAttrKey        = "error"
	StacktraceAttrKey = "stacktrace"
)

// ErrAttr is a wrapper to pass err to slog.
func ErrAttr(err error) slog.Attr {
	return slog.Any(ErrAttrKey, err)
}

// SetupWarnSink routes pkg/errors warnings (e.g. DataConversionWarning
// raised during numeric coercion) to a zerolog logger on stderr. Warning
// types implementing zerolog.LogObjectMarshaler are embedded as structured
// fields.
func SetupWarnSink() {
	logger := zerolog.New(os.Stderr).With().Timestamp().Logger()
	apperrors.SetZerologWarnFunc(func(warning error) {
		ev := logger.Warn()
		if m, ok := warning.(zerolog.LogObjectMarshaler); ok {
			ev = ev.EmbedObject(m)
		}
		ev.Msg(warning.Error())
	})
}
