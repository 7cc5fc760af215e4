package entities

import (
	"energy-es/pkg/utils"
	"fmt"
	"sort"
	"time"
)

// HoursPerDay es el número de puntos que debe tener una serie diaria
const HoursPerDay = 24

// PricePoint representa el precio de una hora concreta
type PricePoint struct {
	Timestamp time.Time `json:"datetime"`
	Value     float64   `json:"value"`
}

// NewPricePoint crea un nuevo punto de precio
func NewPricePoint(timestamp time.Time, value float64) PricePoint {
	return PricePoint{
		Timestamp: timestamp,
		Value:     value,
	}
}

// PriceSeries es la serie horaria de un día, ordenada por timestamp ascendente
type PriceSeries []PricePoint

// Len retorna el número de puntos de la serie
func (s PriceSeries) Len() int {
	return len(s)
}

// Clone retorna una copia independiente de la serie
func (s PriceSeries) Clone() PriceSeries {
	if s == nil {
		return nil
	}
	out := make(PriceSeries, len(s))
	copy(out, s)
	return out
}

// SortByTimestamp ordena la serie in place de forma estable
func (s PriceSeries) SortByTimestamp() {
	sort.SliceStable(s, func(i, j int) bool {
		return s[i].Timestamp.Before(s[j].Timestamp)
	})
}

// Validate comprueba que la serie tenga exactamente 24 puntos con horas distintas,
// de modo que una vez ordenada sea estrictamente ascendente
func (s PriceSeries) Validate() error {
	if len(s) != HoursPerDay {
		return fmt.Errorf("%w: expected %d points, got %d", ErrData, HoursPerDay, len(s))
	}

	seen := make(map[int64]struct{}, len(s))
	for _, p := range s {
		key := p.Timestamp.UnixNano()
		if _, dup := seen[key]; dup {
			return fmt.Errorf("%w: duplicate timestamp %s", ErrData, p.Timestamp.Format(time.RFC3339))
		}
		seen[key] = struct{}{}
	}
	return nil
}

// Min retorna el punto de menor precio. En caso de empate gana el primero.
func (s PriceSeries) Min() (PricePoint, error) {
	if len(s) == 0 {
		return PricePoint{}, ErrEmptySeries
	}
	best := s[0]
	for _, p := range s[1:] {
		if p.Value < best.Value {
			best = p
		}
	}
	return best, nil
}

// Max retorna el punto de mayor precio. En caso de empate gana el primero.
func (s PriceSeries) Max() (PricePoint, error) {
	if len(s) == 0 {
		return PricePoint{}, ErrEmptySeries
	}
	best := s[0]
	for _, p := range s[1:] {
		if p.Value > best.Value {
			best = p
		}
	}
	return best, nil
}

// Convert retorna una copia de la serie expresada en la unidad indicada
func (s PriceSeries) Convert(unit Unit) PriceSeries {
	out := s.Clone()
	for i := range out {
		out[i].Value = unit.Convert(out[i].Value)
	}
	return out
}

// Date retorna el día natural del primer punto en la zona indicada
func (s PriceSeries) Date(loc *time.Location) (time.Time, error) {
	if len(s) == 0 {
		return time.Time{}, ErrEmptySeries
	}
	return utils.StartOfDay(s[0].Timestamp, loc), nil
}

// IsFor indica si la serie corresponde al mismo día natural que day, ambos en loc
func (s PriceSeries) IsFor(day time.Time, loc *time.Location) bool {
	if len(s) == 0 {
		return false
	}
	return utils.SameLocalDate(s[0].Timestamp, day, loc)
}

// DailyPrices agrupa las dos series que devuelve una única consulta a la API
type DailyPrices struct {
	Spot PriceSeries
	PVPC PriceSeries
}

// Series retorna la serie correspondiente a la variable
func (d *DailyPrices) Series(v Variable) PriceSeries {
	switch v {
	case VariableSpot:
		return d.Spot
	case VariablePVPC:
		return d.PVPC
	default:
		return nil
	}
}

// PriceSummary resume una serie para la capa de presentación
type PriceSummary struct {
	Variable Variable
	Unit     Unit
	Day      time.Time
	Points   PriceSeries
	Min      PricePoint
	Max      PricePoint
}

// NewPriceSummary construye el resumen de una serie ya convertida
func NewPriceSummary(v Variable, unit Unit, series PriceSeries, loc *time.Location) (*PriceSummary, error) {
	minPoint, err := series.Min()
	if err != nil {
		return nil, err
	}
	maxPoint, err := series.Max()
	if err != nil {
		return nil, err
	}
	day, err := series.Date(loc)
	if err != nil {
		return nil, err
	}

	return &PriceSummary{
		Variable: v,
		Unit:     unit,
		Day:      day,
		Points:   series,
		Min:      minPoint,
		Max:      maxPoint,
	}, nil
}
