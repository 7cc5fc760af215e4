package services

import (
	"context"
	"energy-es/internal/domain/entities"
	"energy-es/internal/domain/interfaces"
	"energy-es/internal/infrastructure/logging"
	"energy-es/internal/infrastructure/metrics"
	"energy-es/internal/infrastructure/repositories/settings"
	"energy-es/pkg/utils"
	"errors"
	"fmt"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"
)

const (
	refreshKey   = "daily"
	allVariables = "all"
)

// Resultados de refresco para métricas
const (
	refreshSuccess       = "success"
	refreshUpstreamError = "upstream_error"
	refreshDataError     = "data_error"
	refreshStoreError    = "store_error"
)

// PriceManager es la caché diaria de precios spot y PVPC.
// Mantiene en memoria la última pareja de series obtenida y la persiste en el
// SettingsStore. Se refresca de forma perezosa cuando la serie pedida no es de hoy.
type PriceManager struct {
	source interfaces.PriceSource
	repo   *settings.PriceSeriesAdapter
	loc    *time.Location
	now    func() time.Time

	mu   sync.RWMutex
	spot entities.PriceSeries
	pvpc entities.PriceSeries

	group singleflight.Group
}

// Option configura un PriceManager
type Option func(*PriceManager)

// WithLocation fija la zona horaria en la que se evalúa "hoy". Por defecto time.Local.
func WithLocation(loc *time.Location) Option {
	return func(m *PriceManager) {
		if loc != nil {
			m.loc = loc
		}
	}
}

// WithClock sustituye el reloj, útil en tests
func WithClock(now func() time.Time) Option {
	return func(m *PriceManager) {
		if now != nil {
			m.now = now
		}
	}
}

// NewPriceManager crea la caché y carga las series guardadas en store.
// Una entrada corrupta se registra y se ignora; un error de E/S del almacén se devuelve.
func NewPriceManager(ctx context.Context, source interfaces.PriceSource, store interfaces.SettingsStore, opts ...Option) (*PriceManager, error) {
	m := &PriceManager{
		source: source,
		repo:   settings.NewPriceSeriesAdapter(store),
		loc:    time.Local,
		now:    time.Now,
	}

	for _, opt := range opts {
		opt(m)
	}

	if err := m.load(ctx); err != nil {
		return nil, err
	}

	return m, nil
}

var _ interfaces.PriceService = (*PriceManager)(nil)

func (m *PriceManager) load(ctx context.Context) error {
	loaded := make(map[entities.Variable]entities.PriceSeries, len(entities.Variables))

	for _, v := range entities.Variables {
		series, found, err := m.repo.Load(ctx, v)
		switch {
		case errors.Is(err, settings.ErrMalformedEntry):
			logging.WarnWithError(ctx, "Ignoring malformed cached prices", err, logging.Fields{
				logging.FieldVariable: string(v),
				logging.FieldStoreKey: settings.KeyFor(v),
			})
		case err != nil:
			return fmt.Errorf("failed to load cached %s prices: %w", v, err)
		case found:
			loaded[v] = series
		}
	}

	m.mu.Lock()
	m.spot = loaded[entities.VariableSpot]
	m.pvpc = loaded[entities.VariablePVPC]
	m.mu.Unlock()

	today := m.now()
	for _, v := range entities.Variables {
		series := loaded[v]
		metrics.UpdateSeriesFreshness(string(v), series.IsFor(today, m.loc))
	}

	logging.Info(ctx, "Price cache loaded", logging.Fields{
		"spot_points": loaded[entities.VariableSpot].Len(),
		"pvpc_points": loaded[entities.VariablePVPC].Len(),
	})
	return nil
}

// GetPrices retorna la serie de hoy de la variable en la unidad pedida.
// La validación de argumentos ocurre antes de cualquier E/S.
func (m *PriceManager) GetPrices(ctx context.Context, variable entities.Variable, unit entities.Unit) (entities.PriceSeries, error) {
	variable, unit, err := validateArgs(variable, unit)
	if err != nil {
		return nil, err
	}

	return m.prices(ctx, variable, unit)
}

// GetSpotMarketPrices es GetPrices para la serie spot
func (m *PriceManager) GetSpotMarketPrices(ctx context.Context, unit entities.Unit) (entities.PriceSeries, error) {
	return m.GetPrices(ctx, entities.VariableSpot, unit)
}

// GetPVPCPrices es GetPrices para la serie PVPC
func (m *PriceManager) GetPVPCPrices(ctx context.Context, unit entities.Unit) (entities.PriceSeries, error) {
	return m.GetPrices(ctx, entities.VariablePVPC, unit)
}

// GetSummary retorna la serie junto con sus puntos de mínimo y máximo
func (m *PriceManager) GetSummary(ctx context.Context, variable entities.Variable, unit entities.Unit) (*entities.PriceSummary, error) {
	variable, unit, err := validateArgs(variable, unit)
	if err != nil {
		return nil, err
	}

	series, err := m.prices(ctx, variable, unit)
	if err != nil {
		return nil, err
	}

	summary, err := entities.NewPriceSummary(variable, unit, series, m.loc)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", entities.ErrData, err)
	}
	return summary, nil
}

// GetDaily retorna las dos series de hoy leídas de la misma instantánea,
// así nunca se mezcla un spot de un día con un PVPC de otro.
func (m *PriceManager) GetDaily(ctx context.Context, unit entities.Unit) (*entities.DailyPrices, error) {
	unit, err := entities.ParseUnit(string(unit))
	if err != nil {
		return nil, err
	}

	logging.Business().PricesRequested(ctx, allVariables, string(unit))

	refreshed := false
	if !m.IsFresh(entities.VariableSpot) || !m.IsFresh(entities.VariablePVPC) {
		if err := m.refresh(ctx); err != nil {
			return nil, err
		}
		refreshed = true
	}

	m.mu.RLock()
	spot, pvpc := m.spot, m.pvpc
	m.mu.RUnlock()

	daily := &entities.DailyPrices{Spot: spot.Convert(unit), PVPC: pvpc.Convert(unit)}
	for _, v := range entities.Variables {
		metrics.RecordPriceRequest(string(v), string(unit), !refreshed)
	}
	logging.Business().PricesServed(ctx, allVariables, string(unit), spot.Len()+pvpc.Len(), refreshed)

	return daily, nil
}

// prices sirve una variable ya validada
func (m *PriceManager) prices(ctx context.Context, variable entities.Variable, unit entities.Unit) (entities.PriceSeries, error) {
	logging.Business().PricesRequested(ctx, string(variable), string(unit))

	series, refreshed, err := m.current(ctx, variable)
	if err != nil {
		return nil, err
	}

	metrics.RecordPriceRequest(string(variable), string(unit), !refreshed)
	logging.Business().PricesServed(ctx, string(variable), string(unit), series.Len(), refreshed)

	return series.Convert(unit), nil
}

// IsFresh indica si la serie en memoria es del día actual. No hace E/S.
func (m *PriceManager) IsFresh(variable entities.Variable) bool {
	m.mu.RLock()
	series := m.seriesFor(variable)
	m.mu.RUnlock()

	return series.IsFor(m.now(), m.loc)
}

// current retorna la serie en memoria, refrescando antes si falta o no es de hoy
func (m *PriceManager) current(ctx context.Context, variable entities.Variable) (entities.PriceSeries, bool, error) {
	key := settings.KeyFor(variable)

	m.mu.RLock()
	series := m.seriesFor(variable)
	m.mu.RUnlock()

	if series.IsFor(m.now(), m.loc) {
		logging.Store().Hit(ctx, key)
		return series, false, nil
	}

	reason := "stale"
	if series == nil {
		reason = "absent"
	}
	logging.Store().Miss(ctx, key, reason)

	if err := m.refresh(ctx); err != nil {
		return nil, false, err
	}

	m.mu.RLock()
	series = m.seriesFor(variable)
	m.mu.RUnlock()

	return series, true, nil
}

// refresh agrupa los refrescos concurrentes en una única consulta a la fuente.
// La consulta compartida no hereda la cancelación de quien la inicia (el timeout
// del cliente HTTP la acota); cada llamante deja de esperar cuando se cancela su ctx.
func (m *PriceManager) refresh(ctx context.Context) error {
	ch := m.group.DoChan(refreshKey, func() (interface{}, error) {
		return nil, m.doRefresh(context.WithoutCancel(ctx))
	})

	select {
	case res := <-ch:
		return res.Err
	case <-ctx.Done():
		return fmt.Errorf("%w: waiting for price refresh: %w", entities.ErrUpstream, ctx.Err())
	}
}

// doRefresh descarga ambas series, las persiste y después las publica en memoria.
// Cualquier fallo deja intacto el estado anterior y se devuelve sin registrarlo;
// el registro corresponde a quien llama.
func (m *PriceManager) doRefresh(ctx context.Context) error {
	today := m.now().In(m.loc)

	// Otro refresco pudo completarse justo antes de entrar en el grupo
	if m.IsFresh(entities.VariableSpot) && m.IsFresh(entities.VariablePVPC) {
		return nil
	}

	start := time.Now()

	daily, err := m.source.FetchDailyPrices(ctx, today)
	if err == nil {
		err = validateDaily(daily)
	}
	if err != nil {
		result := refreshUpstreamError
		if errors.Is(err, entities.ErrData) {
			result = refreshDataError
		}
		metrics.RecordPriceRefresh(result, time.Since(start).Seconds())
		return err
	}

	if err := m.repo.SaveDaily(ctx, daily); err != nil {
		metrics.RecordPriceRefresh(refreshStoreError, time.Since(start).Seconds())
		return fmt.Errorf("failed to persist prices: %w", err)
	}

	spot, pvpc := daily.Spot.Clone(), daily.PVPC.Clone()

	m.mu.Lock()
	m.spot, m.pvpc = spot, pvpc
	m.mu.Unlock()

	duration := time.Since(start)
	metrics.RecordPriceRefresh(refreshSuccess, duration.Seconds())
	for _, v := range entities.Variables {
		m.recordSeriesMetrics(v, daily.Series(v), today)
	}
	logging.Business().RefreshCompleted(ctx, utils.FormatDay(today), float64(duration.Nanoseconds())/1e6)

	return nil
}

func (m *PriceManager) recordSeriesMetrics(v entities.Variable, series entities.PriceSeries, today time.Time) {
	metrics.UpdateSeriesFreshness(string(v), series.IsFor(today, m.loc))

	minPoint, errMin := series.Min()
	maxPoint, errMax := series.Max()
	if errMin == nil && errMax == nil {
		metrics.UpdateDailyExtremes(string(v), minPoint.Value, maxPoint.Value)
	}
}

// seriesFor debe llamarse con m.mu tomado
func (m *PriceManager) seriesFor(v entities.Variable) entities.PriceSeries {
	switch v {
	case entities.VariableSpot:
		return m.spot
	case entities.VariablePVPC:
		return m.pvpc
	default:
		return nil
	}
}

// validateDaily comprueba el resultado de la fuente antes de tocar el estado
func validateDaily(daily *entities.DailyPrices) error {
	if daily == nil {
		return fmt.Errorf("%w: price source returned no data", entities.ErrData)
	}

	for _, v := range entities.Variables {
		series := daily.Series(v)
		if err := series.Validate(); err != nil {
			return fmt.Errorf("%s: %w", v, err)
		}
		series.SortByTimestamp()
	}
	return nil
}

func validateArgs(variable entities.Variable, unit entities.Unit) (entities.Variable, entities.Unit, error) {
	v, err := entities.ParseVariable(string(variable))
	if err != nil {
		return "", "", err
	}

	u, err := entities.ParseUnit(string(unit))
	if err != nil {
		return "", "", err
	}

	return v, u, nil
}
