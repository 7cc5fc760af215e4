package dto

import (
	"energy-es/internal/domain/entities"
	"energy-es/pkg/utils"
	"fmt"
	"strconv"
	"time"
)

// PriceMapper maneja la conversión entre entidades del dominio y DTOs
type PriceMapper struct {
	loc *time.Location
}

// NewPriceMapper crea un mapper que calcula el día en loc (nil equivale a time.Local)
func NewPriceMapper(loc *time.Location) *PriceMapper {
	if loc == nil {
		loc = time.Local
	}
	return &PriceMapper{loc: loc}
}

// ToPricesResponse convierte una serie ya convertida a unit
func (m *PriceMapper) ToPricesResponse(variable entities.Variable, unit entities.Unit, series entities.PriceSeries) PricesResponse {
	points := make([]PricePointData, len(series))
	for i, p := range series {
		points[i] = PricePointData{
			Datetime: p.Timestamp,
			Hour:     utils.FormatHour(p.Timestamp),
			Value:    p.Value,
		}
	}

	day := ""
	if d, err := series.Date(m.loc); err == nil {
		day = utils.FormatDay(d)
	}

	return PricesResponse{
		Variable:  string(variable),
		Title:     variable.Title(),
		Unit:      string(unit),
		UnitLabel: unit.Label(),
		Day:       day,
		Prices:    points,
	}
}

// ToSummaryResponse convierte un resumen del dominio
func (m *PriceMapper) ToSummaryResponse(summary *entities.PriceSummary) SummaryResponse {
	resp := SummaryResponse{
		PricesResponse: m.ToPricesResponse(summary.Variable, summary.Unit, summary.Points),
		Min:            toExtreme(summary.Min, summary.Unit),
		Max:            toExtreme(summary.Max, summary.Unit),
	}
	resp.Day = utils.FormatDay(summary.Day)
	return resp
}

// ToAllPricesResponse agrupa varias series en la misma unidad
func (m *PriceMapper) ToAllPricesResponse(unit entities.Unit, series map[entities.Variable]entities.PriceSeries) AllPricesResponse {
	resp := AllPricesResponse{
		Unit:   string(unit),
		Series: make([]PricesResponse, 0, len(series)),
	}

	// Orden fijo: spot, pvpc
	for _, v := range entities.Variables {
		if s, ok := series[v]; ok {
			resp.Series = append(resp.Series, m.ToPricesResponse(v, unit, s))
		}
	}
	return resp
}

func toExtreme(p entities.PricePoint, unit entities.Unit) ExtremeData {
	return ExtremeData{
		Datetime: p.Timestamp,
		Hour:     utils.FormatHour(p.Timestamp),
		Value:    p.Value,
		Label:    FormatPriceLabel(p, unit),
	}
}

// FormatPriceLabel retorna "HH:MM, valor unidad", p. ej. "04:00, 41.5 €/MWh"
func FormatPriceLabel(p entities.PricePoint, unit entities.Unit) string {
	return fmt.Sprintf("%s, %s %s", utils.FormatHour(p.Timestamp), strconv.FormatFloat(p.Value, 'f', -1, 64), unit.Label())
}
