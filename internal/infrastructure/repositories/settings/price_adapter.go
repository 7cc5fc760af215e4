package settings

import (
	"context"
	"energy-es/internal/domain/entities"
	"energy-es/internal/domain/interfaces"
	"errors"
	"fmt"

	"github.com/goccy/go-json"
)

// Claves persistidas, una por variable
const (
	SpotPricesKey = "spot_market_prices"
	PVPCPricesKey = "pvpc_prices"
)

// ErrMalformedEntry la entrada guardada no es una serie diaria válida
var ErrMalformedEntry = errors.New("malformed cache entry")

// KeyFor retorna la clave de settings de una variable
func KeyFor(variable entities.Variable) string {
	if variable == entities.VariablePVPC {
		return PVPCPricesKey
	}
	return SpotPricesKey
}

// PriceSeriesAdapter guarda series de precios en cualquier SettingsStore
// como un array JSON de {datetime, value}.
type PriceSeriesAdapter struct {
	backend interfaces.SettingsStore
}

// NewPriceSeriesAdapter crea un nuevo adaptador
func NewPriceSeriesAdapter(backend interfaces.SettingsStore) *PriceSeriesAdapter {
	return &PriceSeriesAdapter{backend: backend}
}

// Load retorna la serie guardada de la variable.
// found es false si la clave no existe; una entrada corrupta devuelve ErrMalformedEntry.
func (p *PriceSeriesAdapter) Load(ctx context.Context, variable entities.Variable) (entities.PriceSeries, bool, error) {
	raw, err := p.backend.Get(ctx, KeyFor(variable))
	if errors.Is(err, interfaces.ErrKeyNotFound) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}

	series, err := DecodeSeries(raw)
	if err != nil {
		return nil, false, err
	}
	return series, true, nil
}

// SaveDaily persiste ambas series en una única llamada al almacén
func (p *PriceSeriesAdapter) SaveDaily(ctx context.Context, prices *entities.DailyPrices) error {
	spot, err := EncodeSeries(prices.Spot)
	if err != nil {
		return err
	}
	pvpc, err := EncodeSeries(prices.PVPC)
	if err != nil {
		return err
	}

	return p.backend.SetMany(ctx, map[string]string{
		SpotPricesKey: spot,
		PVPCPricesKey: pvpc,
	})
}

// EncodeSeries serializa la serie con timestamps RFC 3339 que conservan su offset
func EncodeSeries(series entities.PriceSeries) (string, error) {
	if series == nil {
		series = entities.PriceSeries{}
	}
	bytes, err := json.Marshal(series)
	if err != nil {
		return "", fmt.Errorf("encode price series: %w", err)
	}
	return string(bytes), nil
}

// DecodeSeries parsea y valida una entrada guardada
func DecodeSeries(raw string) (entities.PriceSeries, error) {
	var series entities.PriceSeries
	if err := json.Unmarshal([]byte(raw), &series); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedEntry, err)
	}

	if err := series.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedEntry, err)
	}

	series.SortByTimestamp()
	return series, nil
}
