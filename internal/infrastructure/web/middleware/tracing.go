package middleware

import (
	"energy-es/internal/infrastructure/logging"
	"net"
	"net/http"
	"strings"
	"time"
)

// RequestIDHeader es la cabecera con la que se propaga el ID del request
const RequestIDHeader = "X-Request-ID"

// responseWriter captura el status code y el tamaño de la respuesta
type responseWriter struct {
	http.ResponseWriter
	statusCode int
	written    int64
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

func (rw *responseWriter) Write(b []byte) (int, error) {
	if rw.statusCode == 0 {
		rw.statusCode = http.StatusOK
	}
	n, err := rw.ResponseWriter.Write(b)
	rw.written += int64(n)
	return n, err
}

// RequestTracingMiddleware asigna un request ID, lo guarda en el contexto y registra el request completado.
// Un X-Request-ID entrante se reutiliza para poder seguir el request entre servicios.
func RequestTracingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := strings.TrimSpace(r.Header.Get(RequestIDHeader))
		if requestID == "" || len(requestID) > 128 {
			requestID = logging.GenerateRequestID()
		}

		startTime := time.Now()
		ctx := logging.WithRequestID(r.Context(), requestID)
		ctx = logging.WithStartTime(ctx, startTime)

		w.Header().Set(RequestIDHeader, requestID)
		wrapped := &responseWriter{ResponseWriter: w}

		logging.Info(ctx, "HTTP request started", logging.Fields{
			"http_method": r.Method,
			"http_path":   r.URL.Path,
			"user_agent":  r.UserAgent(),
			"remote_ip":   ClientIP(r),
		})

		next.ServeHTTP(wrapped, r.WithContext(ctx))

		if wrapped.statusCode == 0 {
			wrapped.statusCode = http.StatusOK
		}
		durationMs := float64(time.Since(startTime).Microseconds()) / 1000
		logging.HTTPRequest(ctx, r.Method, r.URL.Path, wrapped.statusCode, durationMs)
	})
}

// ClientIP extrae la IP real del cliente: primero X-Forwarded-For, luego X-Real-IP y por último RemoteAddr sin puerto
func ClientIP(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		first, _, _ := strings.Cut(xff, ",")
		if ip := strings.TrimSpace(first); ip != "" {
			return ip
		}
	}

	if xRealIP := strings.TrimSpace(r.Header.Get("X-Real-IP")); xRealIP != "" {
		return xRealIP
	}

	if host, _, err := net.SplitHostPort(r.RemoteAddr); err == nil {
		return host
	}
	return r.RemoteAddr
}
