package interfaces

import (
	"context"
	"energy-es/internal/domain/entities"
	"time"
)

// PriceSource obtiene las series horarias del día desde una fuente externa.
// Una llamada equivale a una única consulta saliente que devuelve ambas series.
type PriceSource interface {
	FetchDailyPrices(ctx context.Context, day time.Time) (*entities.DailyPrices, error)
}
