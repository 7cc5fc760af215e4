package ree

import (
	"energy-es/internal/domain/entities"
	"energy-es/pkg/utils"
	"fmt"
	"strings"
)

// Response representa la respuesta de precios-mercados-tiempo-real
type Response struct {
	Included []Included `json:"included"`
}

// Included es una serie dentro de la respuesta. Type identifica la variable ("PVPC", "Precio mercado spot", ...).
type Included struct {
	Type       string     `json:"type"`
	ID         string     `json:"id"`
	Attributes Attributes `json:"attributes"`
}

// Attributes contiene los valores horarios de una serie
type Attributes struct {
	Title      string  `json:"title"`
	LastUpdate string  `json:"last-update"`
	Values     []Value `json:"values"`
}

// Value es un punto horario tal y como lo devuelve la API
type Value struct {
	Value      float64 `json:"value"`
	Percentage float64 `json:"percentage"`
	Datetime   string  `json:"datetime"`
}

// find retorna la primera serie cuyo type contiene kind, sin distinguir mayúsculas
func (r *Response) find(kind string) (*Included, bool) {
	kind = strings.ToLower(kind)
	for i := range r.Included {
		if strings.Contains(strings.ToLower(r.Included[i].Type), kind) {
			return &r.Included[i], true
		}
	}
	return nil, false
}

// DailyPrices extrae y valida ambas series de la respuesta
func (r *Response) DailyPrices() (*entities.DailyPrices, error) {
	spot, err := r.series(string(entities.VariableSpot))
	if err != nil {
		return nil, err
	}

	pvpc, err := r.series(string(entities.VariablePVPC))
	if err != nil {
		return nil, err
	}

	return &entities.DailyPrices{Spot: spot, PVPC: pvpc}, nil
}

func (r *Response) series(kind string) (entities.PriceSeries, error) {
	included, ok := r.find(kind)
	if !ok {
		return nil, fmt.Errorf("%w: no %q series in response", entities.ErrData, kind)
	}

	values := included.Attributes.Values
	if len(values) != entities.HoursPerDay {
		return nil, fmt.Errorf("%w: %s series has %d points, expected %d",
			entities.ErrData, kind, len(values), entities.HoursPerDay)
	}

	series := make(entities.PriceSeries, 0, len(values))
	for _, v := range values {
		ts, err := utils.ParseTimestamp(v.Datetime)
		if err != nil {
			return nil, fmt.Errorf("%w: invalid datetime %q in %s series: %v", entities.ErrData, v.Datetime, kind, err)
		}
		series = append(series, entities.NewPricePoint(ts, v.Value))
	}

	series.SortByTimestamp()
	return series, nil
}
