package logging

import (
	"context"
)

// BaseDomainLogger implementa funcionalidad común para loggers de dominio
type BaseDomainLogger struct {
	Logger
	domain string
}

func newBaseDomainLogger(base Logger, domain string) *BaseDomainLogger {
	return &BaseDomainLogger{Logger: base, domain: domain}
}

// Domain retorna el dominio del logger
func (dl *BaseDomainLogger) Domain() string {
	return dl.domain
}

// withDomain retorna una copia de los campos con el dominio añadido
func (dl *BaseDomainLogger) withDomain(fields Fields) Fields {
	out := make(Fields, len(fields)+1)
	for k, v := range fields {
		out[k] = v
	}
	out[FieldDomain] = dl.domain
	return out
}

// logWithDomain agrega el campo de dominio a los logs
func (dl *BaseDomainLogger) logWithDomain(ctx context.Context, level LogLevel, message string, fields Fields) {
	fields = dl.withDomain(fields)

	switch level {
	case LevelDebug:
		dl.Logger.Debug(ctx, message, fields)
	case LevelInfo:
		dl.Logger.Info(ctx, message, fields)
	case LevelWarn:
		dl.Logger.Warn(ctx, message, fields)
	case LevelError:
		dl.Logger.Error(ctx, message, fields)
	}
}

func (dl *BaseDomainLogger) Debug(ctx context.Context, message string, fields Fields) {
	dl.logWithDomain(ctx, LevelDebug, message, fields)
}

func (dl *BaseDomainLogger) Info(ctx context.Context, message string, fields Fields) {
	dl.logWithDomain(ctx, LevelInfo, message, fields)
}

func (dl *BaseDomainLogger) Warn(ctx context.Context, message string, fields Fields) {
	dl.logWithDomain(ctx, LevelWarn, message, fields)
}

func (dl *BaseDomainLogger) Error(ctx context.Context, message string, fields Fields) {
	dl.logWithDomain(ctx, LevelError, message, fields)
}

func (dl *BaseDomainLogger) WarnWithError(ctx context.Context, message string, err error, fields Fields) {
	dl.Logger.WarnWithError(ctx, message, err, dl.withDomain(fields))
}

func (dl *BaseDomainLogger) ErrorWithError(ctx context.Context, message string, err error, fields Fields) {
	dl.Logger.ErrorWithError(ctx, message, err, dl.withDomain(fields))
}

// levelForStatus elige el nivel según el código HTTP
func levelForStatus(statusCode int) LogLevel {
	switch {
	case statusCode >= 500:
		return LevelError
	case statusCode >= 400:
		return LevelWarn
	default:
		return LevelInfo
	}
}

// HTTPDomainLogger especializado para logs HTTP
type HTTPDomainLogger struct {
	*BaseDomainLogger
}

// NewHTTPLogger crea un nuevo logger HTTP
func NewHTTPLogger(baseLogger Logger) HTTPLogger {
	return &HTTPDomainLogger{BaseDomainLogger: newBaseDomainLogger(baseLogger, "http")}
}

func (hl *HTTPDomainLogger) RequestReceived(ctx context.Context, method, path, userAgent, remoteIP string) {
	fields := NewFieldBuilder().
		WithHTTPInfo(method, path, 0).
		WithUserAgent(userAgent).
		WithRemoteIP(remoteIP).
		Build()

	hl.Debug(ctx, "HTTP request received", fields)
}

func (hl *HTTPDomainLogger) RequestCompleted(ctx context.Context, method, path string, statusCode int, duration float64) {
	fields := NewFieldBuilder().
		WithHTTPInfo(method, path, statusCode).
		WithCustomField(FieldDuration, duration).
		Build()

	hl.logWithDomain(ctx, levelForStatus(statusCode), "HTTP request completed", fields)
}

func (hl *HTTPDomainLogger) RequestFailed(ctx context.Context, method, path string, statusCode int, err error, duration float64) {
	fields := NewFieldBuilder().
		WithHTTPInfo(method, path, statusCode).
		WithCustomField(FieldDuration, duration).
		Build()

	hl.ErrorWithError(ctx, "HTTP request failed", err, fields)
}

// ExternalAPIDomainLogger especializado para la API de precios
type ExternalAPIDomainLogger struct {
	*BaseDomainLogger
}

// NewExternalAPILogger crea un nuevo logger para APIs externas
func NewExternalAPILogger(baseLogger Logger) ExternalAPILogger {
	return &ExternalAPIDomainLogger{BaseDomainLogger: newBaseDomainLogger(baseLogger, "external_api")}
}

func (el *ExternalAPIDomainLogger) RequestStarted(ctx context.Context, service, endpoint, method string) {
	fields := NewFieldBuilder().
		WithCustomField(FieldExternalService, service).
		WithCustomField(FieldExternalEndpoint, endpoint).
		WithCustomField(FieldExternalMethod, method).
		Build()

	el.Debug(ctx, "External API request started", fields)
}

func (el *ExternalAPIDomainLogger) RequestCompleted(ctx context.Context, service, endpoint string, statusCode int, duration float64) {
	fields := NewFieldBuilder().
		WithExternalAPI(service, endpoint, statusCode, duration).
		Build()

	el.logWithDomain(ctx, levelForStatus(statusCode), "External API request completed", fields)
}

func (el *ExternalAPIDomainLogger) RequestFailed(ctx context.Context, service, endpoint string, statusCode int, err error, duration float64) {
	fields := NewFieldBuilder().
		WithExternalAPI(service, endpoint, statusCode, duration).
		Build()

	el.ErrorWithError(ctx, "External API request failed", err, fields)
}

// StoreDomainLogger especializado para el almacén de ajustes
type StoreDomainLogger struct {
	*BaseDomainLogger
}

// NewStoreLogger crea un nuevo logger de almacén
func NewStoreLogger(baseLogger Logger) StoreLogger {
	return &StoreDomainLogger{BaseDomainLogger: newBaseDomainLogger(baseLogger, "store")}
}

func (cl *StoreDomainLogger) Hit(ctx context.Context, key string) {
	fields := NewFieldBuilder().
		WithStore(StoreOpGet, key, true).
		Build()

	cl.Debug(ctx, "Cached series is fresh", fields)
}

func (cl *StoreDomainLogger) Miss(ctx context.Context, key string, reason string) {
	fields := NewFieldBuilder().
		WithStore(StoreOpGet, key, false).
		WithCustomField("reason", reason).
		Build()

	cl.Info(ctx, "Cached series unavailable", fields)
}

func (cl *StoreDomainLogger) Written(ctx context.Context, keys []string, backend string) {
	fields := NewFieldBuilder().
		WithCustomField(FieldStoreOperation, StoreOpSetMany).
		WithCustomField(FieldStoreKeys, keys).
		WithCustomField(FieldStoreBackend, backend).
		Build()

	cl.Debug(ctx, "Series persisted", fields)
}

func (cl *StoreDomainLogger) StoreError(ctx context.Context, operation, key string, err error) {
	fields := NewFieldBuilder().
		WithCustomField(FieldStoreOperation, operation).
		WithCustomField(FieldStoreKey, key).
		Build()

	cl.ErrorWithError(ctx, "Store operation failed", err, fields)
}

// BusinessDomainLogger especializado para los casos de uso de precios
type BusinessDomainLogger struct {
	*BaseDomainLogger
}

// NewBusinessLogger crea un nuevo logger de negocio
func NewBusinessLogger(baseLogger Logger) BusinessLogger {
	return &BusinessDomainLogger{BaseDomainLogger: newBaseDomainLogger(baseLogger, "business")}
}

func (bl *BusinessDomainLogger) PricesRequested(ctx context.Context, variable, unit string) {
	fields := NewFieldBuilder().
		WithCustomField(FieldVariable, variable).
		WithCustomField(FieldUnit, unit).
		Build()

	bl.Debug(ctx, "Prices requested", fields)
}

func (bl *BusinessDomainLogger) PricesServed(ctx context.Context, variable, unit string, points int, refreshed bool) {
	fields := NewFieldBuilder().
		WithPrices(variable, unit, points, refreshed).
		Build()

	bl.Info(ctx, "Prices served", fields)
}

func (bl *BusinessDomainLogger) RefreshCompleted(ctx context.Context, day string, duration float64) {
	fields := NewFieldBuilder().
		WithCustomField(FieldDay, day).
		WithCustomField(FieldDuration, duration).
		Build()

	bl.Info(ctx, "Daily prices refreshed", fields)
}

func (bl *BusinessDomainLogger) RefreshFailed(ctx context.Context, variable string, err error) {
	fields := NewFieldBuilder().
		WithCustomField(FieldVariable, variable).
		Build()

	bl.ErrorWithError(ctx, "Daily prices refresh failed", err, fields)
}

func (bl *BusinessDomainLogger) ValidationFailed(ctx context.Context, input string, reason string) {
	fields := NewFieldBuilder().
		WithCustomField("input", input).
		WithCustomField("reason", reason).
		WithCustomField(FieldValidation, "failed").
		Build()

	bl.Warn(ctx, "Input validation failed", fields)
}

// SecurityDomainLogger especializado para seguridad
type SecurityDomainLogger struct {
	*BaseDomainLogger
}

// NewSecurityLogger crea un nuevo logger de seguridad
func NewSecurityLogger(baseLogger Logger) SecurityLogger {
	return &SecurityDomainLogger{BaseDomainLogger: newBaseDomainLogger(baseLogger, "security")}
}

func (sl *SecurityDomainLogger) RateLimitExceeded(ctx context.Context, clientIP string, endpoint string) {
	fields := NewFieldBuilder().
		WithCustomField(FieldClientIP, clientIP).
		WithCustomField("endpoint", endpoint).
		WithCustomField(FieldRateLimit, "exceeded").
		Build()

	sl.Warn(ctx, "Rate limit exceeded", fields)
}

func (sl *SecurityDomainLogger) SuspiciousActivity(ctx context.Context, clientIP string, activity string) {
	fields := NewFieldBuilder().
		WithCustomField(FieldClientIP, clientIP).
		WithCustomField(FieldSuspiciousReason, activity).
		Build()

	sl.Warn(ctx, "Suspicious activity detected", fields)
}
