package logging

import (
	"fmt"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var globalLogger = zap.NewNop().Sugar()

// Init builds the global JSON logger. Production config is used when appEnv is
// "production", development config otherwise.
func Init(appEnv string) error {
	var config zap.Config
	if strings.EqualFold(appEnv, "production") {
		config = zap.NewProductionConfig()
	} else {
		config = zap.NewDevelopmentConfig()
	}
	config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	config.Encoding = "json"

	logger, err := config.Build()
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	globalLogger = logger.Sugar()
	return nil
}

// SetLogger swaps the global logger (tests use zaptest/observer loggers).
func SetLogger(l *zap.SugaredLogger) {
	if l == nil {
		l = zap.NewNop().Sugar()
	}
	globalLogger = l
}

// Close flushes any buffered logs.
func Close() error {
	return globalLogger.Sync()
}

func Info(message string, fields ...interface{}) {
	globalLogger.Infow(message, fields...)
}

func Debug(message string, fields ...interface{}) {
	globalLogger.Debugw(message, fields...)
}

func Warn(message string, fields ...interface{}) {
	globalLogger.Warnw(message, fields...)
}

func Error(message string, fields ...interface{}) {
	globalLogger.Errorw(message, fields...)
}

func Fatal(message string, fields ...interface{}) {
	globalLogger.Fatalw(message, fields...)
}

// Event writes the standard module/action/request_id line.
// Keep message short and free of payload data.
func Event(requestID, module, action, message string) {
	globalLogger.Infow(message,
		"module", strings.ToUpper(module),
		"action", action,
		"request_id", strings.TrimSpace(requestID),
	)
}

// EventError is Event at error level with the error attached.
func EventError(requestID, module, action string, err error) {
	globalLogger.Errorw(action+" failed",
		"module", strings.ToUpper(module),
		"action", action,
		"request_id", strings.TrimSpace(requestID),
		"error", err,
	)
}
