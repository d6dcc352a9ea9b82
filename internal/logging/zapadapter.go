package logging

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// ZapAdapter is a zapcore.Core that forwards entries to our Logger, so
// libraries that expect a *zap.Logger share the service's log stream.
type ZapAdapter struct {
	logger *Logger
}

// NewZapAdapter creates a zapcore.Core backed by the given Logger.
func NewZapAdapter(logger *Logger) *ZapAdapter {
	return &ZapAdapter{logger: logger}
}

// NewZapLogger creates a *zap.Logger that writes through the given Logger.
func NewZapLogger(logger *Logger) *zap.Logger {
	return zap.New(NewZapAdapter(logger))
}

// levelFromZap maps a zapcore level onto our levels. Panic-class
// levels collapse to ERROR; fatal handling stays with our logger.
func levelFromZap(level zapcore.Level) LogLevel {
	switch level {
	case zapcore.DebugLevel:
		return DebugLevel
	case zapcore.InfoLevel:
		return InfoLevel
	case zapcore.WarnLevel:
		return WarnLevel
	default:
		return ErrorLevel
	}
}

// fieldMap converts zap fields using zap's own object encoder, which
// handles every field type without reimplementing the conversion.
func fieldMap(fields []zapcore.Field) map[string]interface{} {
	if len(fields) == 0 {
		return nil
	}
	enc := zapcore.NewMapObjectEncoder()
	for _, field := range fields {
		field.AddTo(enc)
	}
	return enc.Fields
}

// Enabled implements zapcore.Core.
func (a *ZapAdapter) Enabled(level zapcore.Level) bool {
	return a.logger.shouldLog(levelFromZap(level))
}

// With implements zapcore.Core.
func (a *ZapAdapter) With(fields []zapcore.Field) zapcore.Core {
	return &ZapAdapter{logger: a.logger.WithFields(fieldMap(fields))}
}

// Check implements zapcore.Core.
func (a *ZapAdapter) Check(ent zapcore.Entry, ce *zapcore.CheckedEntry) *zapcore.CheckedEntry {
	if a.Enabled(ent.Level) {
		return ce.AddCore(ent, a)
	}
	return ce
}

// Write implements zapcore.Core.
func (a *ZapAdapter) Write(ent zapcore.Entry, fields []zapcore.Field) error {
	a.logger.log(levelFromZap(ent.Level), ent.Message, fieldMap(fields))
	return nil
}

// Sync implements zapcore.Core. Our logger writes unbuffered.
func (a *ZapAdapter) Sync() error {
	return nil
}
