package logging

import (
	"context"
)

// Funciones globales de conveniencia sobre el logger por defecto

func Debug(ctx context.Context, message string, fields Fields) {
	GetGlobalLogger().Debug(ctx, message, fields)
}

func Info(ctx context.Context, message string, fields Fields) {
	GetGlobalLogger().Info(ctx, message, fields)
}

func Warn(ctx context.Context, message string, fields Fields) {
	GetGlobalLogger().Warn(ctx, message, fields)
}

func Error(ctx context.Context, message string, fields Fields) {
	GetGlobalLogger().Error(ctx, message, fields)
}

func InfoWithError(ctx context.Context, message string, err error, fields Fields) {
	GetGlobalLogger().InfoWithError(ctx, message, err, fields)
}

func WarnWithError(ctx context.Context, message string, err error, fields Fields) {
	GetGlobalLogger().WarnWithError(ctx, message, err, fields)
}

func ErrorWithError(ctx context.Context, message string, err error, fields Fields) {
	GetGlobalLogger().ErrorWithError(ctx, message, err, fields)
}

// HTTPRequest registra la finalización de un request HTTP con el logger HTTP global
func HTTPRequest(ctx context.Context, method, path string, statusCode int, durationMs float64) {
	GetGlobalLoggers().HTTP.RequestCompleted(ctx, method, path, statusCode, durationMs)
}

func HTTP() HTTPLogger {
	return GetGlobalLoggers().HTTP
}

func ExternalAPI() ExternalAPILogger {
	return GetGlobalLoggers().ExternalAPI
}

func Store() StoreLogger {
	return GetGlobalLoggers().Store
}

func Business() BusinessLogger {
	return GetGlobalLoggers().Business
}

func Security() SecurityLogger {
	return GetGlobalLoggers().Security
}
