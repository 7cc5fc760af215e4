package pricesource

import (
	"context"
	"energy-es/internal/domain/entities"
	"energy-es/internal/infrastructure/logging"
	"energy-es/pkg/utils"
	"math"
	"math/rand"
	"time"
)

// MockSource implementa PriceSource para desarrollo sin acceso a la API de REE.
// Genera una curva diaria con valle nocturno y picos de mañana y tarde.
type MockSource struct {
	spotBase float64 // €/MWh
	pvpcBase float64 // €/MWh
	variance float64 // variación relativa aleatoria por hora
	loc      *time.Location
}

// NewMockSource crea una fuente simulada en la zona horaria indicada
func NewMockSource(loc *time.Location) *MockSource {
	if loc == nil {
		loc = time.Local
	}
	return &MockSource{
		spotBase: 85.0,
		pvpcBase: 140.0,
		variance: 0.05,
		loc:      loc,
	}
}

// FetchDailyPrices retorna 24 puntos horarios para el día de day
func (m *MockSource) FetchDailyPrices(ctx context.Context, day time.Time) (*entities.DailyPrices, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	start := utils.StartOfDay(day, m.loc)

	prices := &entities.DailyPrices{
		Spot: m.curve(start, m.spotBase),
		PVPC: m.curve(start, m.pvpcBase),
	}

	logging.Debug(ctx, "MockSource: Generated mock prices", logging.Fields{
		logging.FieldDay:    utils.FormatDay(start),
		logging.FieldPoints: entities.HoursPerDay,
	})

	return prices, nil
}

func (m *MockSource) curve(start time.Time, base float64) entities.PriceSeries {
	series := make(entities.PriceSeries, 0, entities.HoursPerDay)
	for h := 0; h < entities.HoursPerDay; h++ {
		// Dos picos (09:00 y 21:00) sobre un valle a las 04:00
		shape := 1 + 0.25*math.Sin(float64(h-3)*math.Pi/12) + 0.15*math.Sin(float64(h-6)*math.Pi/6)
		variation := (rand.Float64()*2 - 1) * m.variance
		value := math.Round(base*shape*(1+variation)*100) / 100

		ts := time.Date(start.Year(), start.Month(), start.Day(), h, 0, 0, 0, m.loc)
		series = append(series, entities.NewPricePoint(ts, value))
	}
	return series
}
