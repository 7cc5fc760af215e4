package middleware

import (
	"energy-es/internal/infrastructure/logging"
	"net/http"
	"net/url"
	"strings"
)

// maxQueryLength es la longitud a partir de la cual un query string se considera anómalo.
// Los endpoints de precios sólo aceptan ?unit=.
const maxQueryLength = 256

// suspiciousPatterns son fragmentos típicos de sondeos automáticos
var suspiciousPatterns = []string{
	"../",
	"..%2f",
	"<script",
	"union select",
	"/etc/passwd",
	"exec(",
	"eval(",
	".env",
	"wp-admin",
}

// LoggingMiddleware añade logs de depuración y de seguridad.
// Complementa a RequestTracingMiddleware, que registra el request completado.
func LoggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		remoteIP := ClientIP(r)

		logging.HTTP().RequestReceived(ctx, r.Method, r.URL.Path, r.UserAgent(), remoteIP)

		logging.Debug(ctx, "Processing HTTP request", logging.Fields{
			"headers": extractImportantHeaders(r),
			"query":   r.URL.RawQuery,
		})

		if activity, ok := detectSuspiciousRequest(r); ok {
			logging.Security().SuspiciousActivity(ctx, remoteIP, activity)
		}

		next.ServeHTTP(w, r)
	})
}

// extractImportantHeaders extrae las cabeceras relevantes para depurar, sin datos sensibles
func extractImportantHeaders(r *http.Request) map[string]string {
	headers := make(map[string]string)

	for _, header := range []string{"Accept", "Accept-Encoding", "Accept-Language", "X-Forwarded-For", "X-Real-IP"} {
		if value := r.Header.Get(header); value != "" {
			headers[header] = value
		}
	}

	return headers
}

// detectSuspiciousRequest retorna la actividad detectada si el request parece un sondeo
func detectSuspiciousRequest(r *http.Request) (string, bool) {
	if r.Method != http.MethodGet && r.Method != http.MethodHead && r.Method != http.MethodOptions {
		return "unexpected_method_" + strings.ToLower(r.Method), true
	}

	if len(r.URL.RawQuery) > maxQueryLength {
		return "oversized_query", true
	}

	query := r.URL.RawQuery
	if unescaped, err := url.QueryUnescape(query); err == nil {
		query = unescaped
	}

	target := strings.ToLower(r.URL.Path + "?" + query)
	for _, pattern := range suspiciousPatterns {
		if strings.Contains(target, pattern) {
			return "unusual_request_pattern", true
		}
	}

	return "", false
}
