package logging

import (
	"context"
	"fmt"
	"time"
)

// Fields representa campos estructurados para logs
type Fields map[string]interface{}

// LogLevel representa los diferentes niveles de log
type LogLevel string

const (
	LevelDebug LogLevel = "DEBUG"
	LevelInfo  LogLevel = "INFO"
	LevelWarn  LogLevel = "WARN"
	LevelError LogLevel = "ERROR"
)

// Campos estándar
const (
	FieldTimestamp   = "timestamp"
	FieldMessage     = "message"
	FieldRequestID   = "request_id"
	FieldService     = "service"
	FieldVersion     = "version"
	FieldEnvironment = "environment"
	FieldDomain      = "domain"
	FieldSource      = "source"
	FieldError       = "error"
	FieldErrorType   = "error_type"
	FieldDuration    = "duration_ms"
)

// Campos HTTP
const (
	FieldHTTPMethod     = "http_method"
	FieldHTTPPath       = "http_path"
	FieldHTTPStatusCode = "http_status_code"
	FieldHTTPUserAgent  = "http_user_agent"
	FieldHTTPRemoteIP   = "http_remote_ip"
)

// Campos para la API externa
const (
	FieldExternalService  = "external_service"
	FieldExternalEndpoint = "external_endpoint"
	FieldExternalMethod   = "external_method"
	FieldExternalStatus   = "external_status_code"
	FieldExternalDuration = "external_duration_ms"
)

// Campos del almacén
const (
	FieldStoreOperation = "store_operation"
	FieldStoreKey       = "store_key"
	FieldStoreKeys      = "store_keys"
	FieldStoreBackend   = "store_backend"
	FieldStoreHit       = "store_hit"
)

// Campos de negocio
const (
	FieldVariable   = "variable"
	FieldUnit       = "unit"
	FieldPoints     = "points"
	FieldRefreshed  = "refreshed"
	FieldDay        = "day"
	FieldValidation = "validation"
)

// Campos de seguridad
const (
	FieldClientIP         = "client_ip"
	FieldSuspiciousReason = "suspicious_reason"
	FieldRateLimit        = "rate_limit"
)

// Operaciones del almacén
const (
	StoreOpGet     = "GET"
	StoreOpSet     = "SET"
	StoreOpSetMany = "SET_MANY"
	StoreOpDecode  = "DECODE"
)

// FieldBuilder ayuda a construir campos de manera estandarizada
type FieldBuilder struct {
	fields Fields
}

// NewFieldBuilder crea un nuevo builder de campos
func NewFieldBuilder() *FieldBuilder {
	return &FieldBuilder{
		fields: make(Fields),
	}
}

// WithError añade información del error
func (fb *FieldBuilder) WithError(err error) *FieldBuilder {
	if err != nil {
		fb.fields[FieldError] = err.Error()
		fb.fields[FieldErrorType] = getErrorType(err)
	}
	return fb
}

// WithDuration añade duración en milisegundos
func (fb *FieldBuilder) WithDuration(duration time.Duration) *FieldBuilder {
	fb.fields[FieldDuration] = float64(duration.Nanoseconds()) / 1e6
	return fb
}

// WithHTTPInfo añade información HTTP básica
func (fb *FieldBuilder) WithHTTPInfo(method, path string, statusCode int) *FieldBuilder {
	fb.fields[FieldHTTPMethod] = method
	fb.fields[FieldHTTPPath] = path
	if statusCode > 0 {
		fb.fields[FieldHTTPStatusCode] = statusCode
	}
	return fb
}

func (fb *FieldBuilder) WithUserAgent(userAgent string) *FieldBuilder {
	if userAgent != "" {
		fb.fields[FieldHTTPUserAgent] = userAgent
	}
	return fb
}

func (fb *FieldBuilder) WithRemoteIP(ip string) *FieldBuilder {
	if ip != "" {
		fb.fields[FieldHTTPRemoteIP] = ip
	}
	return fb
}

// WithExternalAPI añade información de la llamada a la API externa
func (fb *FieldBuilder) WithExternalAPI(service, endpoint string, statusCode int, duration float64) *FieldBuilder {
	fb.fields[FieldExternalService] = service
	fb.fields[FieldExternalEndpoint] = endpoint
	if statusCode > 0 {
		fb.fields[FieldExternalStatus] = statusCode
	}
	fb.fields[FieldExternalDuration] = duration
	return fb
}

// WithStore añade información del almacén
func (fb *FieldBuilder) WithStore(operation, key string, hit bool) *FieldBuilder {
	fb.fields[FieldStoreOperation] = operation
	fb.fields[FieldStoreKey] = key
	fb.fields[FieldStoreHit] = hit
	return fb
}

// WithPrices añade el contexto de negocio de una consulta de precios
func (fb *FieldBuilder) WithPrices(variable, unit string, points int, refreshed bool) *FieldBuilder {
	fb.fields[FieldVariable] = variable
	fb.fields[FieldUnit] = unit
	fb.fields[FieldPoints] = points
	fb.fields[FieldRefreshed] = refreshed
	return fb
}

// WithCustomField añade un campo personalizado
func (fb *FieldBuilder) WithCustomField(key string, value interface{}) *FieldBuilder {
	if key != "" && value != nil {
		fb.fields[key] = value
	}
	return fb
}

// Build retorna los campos construidos
func (fb *FieldBuilder) Build() Fields {
	if len(fb.fields) == 0 {
		return nil
	}
	return fb.fields
}

type contextKey string

const (
	RequestIDKey contextKey = "request_id"
	StartTimeKey contextKey = "start_time"
)

func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, RequestIDKey, requestID)
}

func WithStartTime(ctx context.Context, startTime time.Time) context.Context {
	return context.WithValue(ctx, StartTimeKey, startTime)
}

func GetRequestID(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	if requestID, ok := ctx.Value(RequestIDKey).(string); ok {
		return requestID
	}
	return ""
}

func GetStartTime(ctx context.Context) time.Time {
	if ctx == nil {
		return time.Time{}
	}
	if startTime, ok := ctx.Value(StartTimeKey).(time.Time); ok {
		return startTime
	}
	return time.Time{}
}

// getErrorType retorna el tipo dinámico del error
func getErrorType(err error) string {
	if err == nil {
		return ""
	}
	return fmt.Sprintf("%T", err)
}
