package logging

import (
	"context"
	"io"
	"sync/atomic"

	"github.com/rs/zerolog"
)

// ZerologLogger adapts a zerolog.Logger to the Logger interface.
type ZerologLogger struct {
	zl    zerolog.Logger
	level *atomic.Int32
}

// NewZerologLogger wraps zl. Level filtering is done by the adapter so that
// SetLevel affects every logger derived through WithFields.
func NewZerologLogger(zl zerolog.Logger) *ZerologLogger {
	level := &atomic.Int32{}
	level.Store(int32(InfoLevel))
	return &ZerologLogger{zl: zl.Level(zerolog.TraceLevel), level: level}
}

// NewConsoleLogger returns a human readable zerolog logger writing to w.
func NewConsoleLogger(w io.Writer) *ZerologLogger {
	zl := zerolog.New(zerolog.ConsoleWriter{Out: w}).With().Timestamp().Logger()
	return NewZerologLogger(zl)
}

func (z *ZerologLogger) event(level Level) *zerolog.Event {
	if level < Level(z.level.Load()) {
		return nil
	}
	switch level {
	case DebugLevel:
		return z.zl.Debug()
	case InfoLevel:
		return z.zl.Info()
	case WarnLevel:
		return z.zl.Warn()
	case ErrorLevel:
		return z.zl.Error()
	default:
		return z.zl.Fatal()
	}
}

func (z *ZerologLogger) emit(level Level, err error, msg string, fields ...Fields) {
	ev := z.event(level)
	if ev == nil {
		return
	}
	if err != nil {
		ev = ev.Err(err)
	}
	for _, f := range fields {
		ev = ev.Fields(map[string]any(f))
	}
	ev.Msg(msg)
}

func (z *ZerologLogger) Debug(msg string, fields ...Fields) {
	z.emit(DebugLevel, nil, msg, fields...)
}

func (z *ZerologLogger) Info(msg string, fields ...Fields) {
	z.emit(InfoLevel, nil, msg, fields...)
}

func (z *ZerologLogger) Warn(msg string, fields ...Fields) {
	z.emit(WarnLevel, nil, msg, fields...)
}

func (z *ZerologLogger) Error(err error, msg string, fields ...Fields) {
	z.emit(ErrorLevel, err, msg, fields...)
}

func (z *ZerologLogger) Fatal(err error, msg string, fields ...Fields) {
	z.emit(FatalLevel, err, msg, fields...)
}

func (z *ZerologLogger) WithFields(fields Fields) Logger {
	return &ZerologLogger{
		zl:    z.zl.With().Fields(map[string]any(fields)).Logger(),
		level: z.level,
	}
}

func (z *ZerologLogger) WithContext(ctx context.Context) Logger {
	if fields, ok := FieldsFromContext(ctx); ok {
		return z.WithFields(fields)
	}
	return z
}

func (z *ZerologLogger) SetLevel(level Level) {
	z.level.Store(int32(level))
}
