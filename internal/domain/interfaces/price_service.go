package interfaces

import (
	"context"
	"energy-es/internal/domain/entities"
)

// PriceService define los casos de uso de consulta de precios de la electricidad
type PriceService interface {
	// GetPrices retorna la serie del día de la variable en la unidad pedida.
	// Si la caché no es del día actual refresca ambas series antes de responder.
	GetPrices(ctx context.Context, variable entities.Variable, unit entities.Unit) (entities.PriceSeries, error)

	GetSpotMarketPrices(ctx context.Context, unit entities.Unit) (entities.PriceSeries, error)
	GetPVPCPrices(ctx context.Context, unit entities.Unit) (entities.PriceSeries, error)

	// GetSummary añade a la serie sus puntos de mínimo y máximo
	GetSummary(ctx context.Context, variable entities.Variable, unit entities.Unit) (*entities.PriceSummary, error)

	// GetDaily retorna spot y PVPC de la misma instantánea de la caché
	GetDaily(ctx context.Context, unit entities.Unit) (*entities.DailyPrices, error)

	// IsFresh indica, sin hacer I/O, si la serie en memoria es del día actual
	IsFresh(variable entities.Variable) bool
}
