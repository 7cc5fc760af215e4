package handlers

import (
	"energy-es/internal/application/dto"
	"net/http"

	"github.com/goccy/go-json"
)

// writeJSONResponse escribe una respuesta JSON
func writeJSONResponse(w http.ResponseWriter, statusCode int, data interface{}) {
	body, err := json.Marshal(data)
	if err != nil {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"error":"ENCODING_ERROR","message":"Failed to encode response"}`))
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_, _ = w.Write(body)
}

// writeErrorResponse escribe el panel de error que muestra la capa de presentación
func writeErrorResponse(w http.ResponseWriter, statusCode int, errorCode, message string) {
	writeJSONResponse(w, statusCode, dto.NewErrorResponse(errorCode, message, statusCode))
}
