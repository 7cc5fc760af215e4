package dto

import (
	"strconv"
	"time"
)

// PricePointData represents one hourly price in the response
// @Description Hourly electricity price
type PricePointData struct {
	Datetime time.Time `json:"datetime" example:"2024-03-10T13:00:00+01:00"` // Start of the hour, with the upstream UTC offset
	Hour     string    `json:"hour" example:"13:00"`                         // HH:MM label of the hour
	Value    float64   `json:"value" example:"87.12"`                        // Price in the requested unit
}

// PricesResponse represents the response from /api/v1/prices/{variable}
// @Description Hourly prices of the current day for one variable
type PricesResponse struct {
	Variable  string           `json:"variable" example:"spot" enums:"spot,pvpc"`
	Title     string           `json:"title" example:"Spot market price"`
	Unit      string           `json:"unit" example:"m" enums:"m,k"`
	UnitLabel string           `json:"unit_label" example:"€/MWh"`
	Day       string           `json:"day" example:"2024-03-10"`
	Prices    []PricePointData `json:"prices"`
}

// ExtremeData is the minimum or maximum point of a series
// @Description Minimum or maximum price of the day
type ExtremeData struct {
	Datetime time.Time `json:"datetime" example:"2024-03-10T04:00:00+01:00"`
	Hour     string    `json:"hour" example:"04:00"`
	Value    float64   `json:"value" example:"41.5"`
	Label    string    `json:"label" example:"04:00, 41.5 €/MWh"` // Display text "HH:MM, value unit"
}

// SummaryResponse represents the response from /api/v1/prices/{variable}/summary
// @Description Hourly prices plus the minimum and maximum of the day
type SummaryResponse struct {
	PricesResponse
	Min ExtremeData `json:"min"`
	Max ExtremeData `json:"max"`
}

// AllPricesResponse represents the response from /api/v1/prices
// @Description Both series of the current day
type AllPricesResponse struct {
	Unit   string           `json:"unit" example:"m" enums:"m,k"`
	Series []PricesResponse `json:"series"`
}

// ErrorResponse represents a standard error response for endpoints
// @Description Standard error response, rendered by clients as an inline error panel
type ErrorResponse struct {
	Error   string `json:"error" example:"INVALID_PARAMETER" validate:"required"`         // Error code
	Message string `json:"message,omitempty" example:"unknown unit \"x\", must be m or k"` // Displayable description
	Code    string `json:"code,omitempty" example:"400"`                                  // HTTP status code
}

// HealthResponse represents the health check response with service status
// @Description Health check response with service status
type HealthResponse struct {
	Status    string            `json:"status" example:"healthy" validate:"required" enums:"healthy,ready,not_ready"` // Overall service status
	Timestamp time.Time         `json:"timestamp" example:"2024-03-10T10:30:00Z" validate:"required"`                    // When the health check was performed
	Services  map[string]string `json:"services,omitempty" example:"spot:fresh,pvpc:stale"`                              // Individual component statuses
}

// NewErrorResponse creates a new error response
func NewErrorResponse(errorCode, message string, statusCode int) *ErrorResponse {
	return &ErrorResponse{
		Error:   errorCode,
		Message: message,
		Code:    strconv.Itoa(statusCode),
	}
}

// NewHealthResponse creates a new health check response
func NewHealthResponse(status string, services map[string]string) *HealthResponse {
	return &HealthResponse{
		Status:    status,
		Timestamp: time.Now().UTC(),
		Services:  services,
	}
}
