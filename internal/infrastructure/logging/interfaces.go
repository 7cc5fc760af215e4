package logging

import (
	"context"
)

// Logger define la interfaz principal para logging estructurado
type Logger interface {
	Debug(ctx context.Context, message string, fields Fields)
	Info(ctx context.Context, message string, fields Fields)
	Warn(ctx context.Context, message string, fields Fields)
	Error(ctx context.Context, message string, fields Fields)

	InfoWithError(ctx context.Context, message string, err error, fields Fields)
	WarnWithError(ctx context.Context, message string, err error, fields Fields)
	ErrorWithError(ctx context.Context, message string, err error, fields Fields)

	SetLevel(level LogLevel)
	GetLevel() LogLevel
}

// DomainLogger representa loggers especializados por dominio
type DomainLogger interface {
	Logger

	Domain() string
}

// HTTPLogger especializado para logs relacionados con HTTP
type HTTPLogger interface {
	DomainLogger

	RequestReceived(ctx context.Context, method, path, userAgent, remoteIP string)
	RequestCompleted(ctx context.Context, method, path string, statusCode int, duration float64)
	RequestFailed(ctx context.Context, method, path string, statusCode int, err error, duration float64)
}

// ExternalAPILogger especializado para la API de precios
type ExternalAPILogger interface {
	DomainLogger

	RequestStarted(ctx context.Context, service, endpoint, method string)
	RequestCompleted(ctx context.Context, service, endpoint string, statusCode int, duration float64)
	RequestFailed(ctx context.Context, service, endpoint string, statusCode int, err error, duration float64)
}

// StoreLogger especializado para el almacén de ajustes y la caché de series
type StoreLogger interface {
	DomainLogger

	Hit(ctx context.Context, key string)
	Miss(ctx context.Context, key string, reason string)
	Written(ctx context.Context, keys []string, backend string)
	StoreError(ctx context.Context, operation, key string, err error)
}

// BusinessLogger especializado para los casos de uso de precios
type BusinessLogger interface {
	DomainLogger

	PricesRequested(ctx context.Context, variable, unit string)
	PricesServed(ctx context.Context, variable, unit string, points int, refreshed bool)
	RefreshCompleted(ctx context.Context, day string, duration float64)
	RefreshFailed(ctx context.Context, variable string, err error)
	ValidationFailed(ctx context.Context, input string, reason string)
}

// SecurityLogger especializado para logs relacionados con seguridad
type SecurityLogger interface {
	DomainLogger

	RateLimitExceeded(ctx context.Context, clientIP string, endpoint string)
	SuspiciousActivity(ctx context.Context, clientIP string, activity string)
}
