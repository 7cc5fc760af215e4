package services

import (
	"bytes"
	"context"
	"energy-es/internal/domain/entities"
	"energy-es/internal/domain/interfaces"
	"energy-es/internal/infrastructure/logging"
	"energy-es/internal/infrastructure/repositories/settings"
	"errors"
	"fmt"
	"math"
	"strings"
	"sync"
	"testing"
	"time"
	_ "time/tzdata"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockPriceSource es un mock de interfaces.PriceSource
type MockPriceSource struct {
	mock.Mock
}

func (m *MockPriceSource) FetchDailyPrices(ctx context.Context, day time.Time) (*entities.DailyPrices, error) {
	args := m.Called(ctx, day)
	var prices *entities.DailyPrices
	if v := args.Get(0); v != nil {
		prices = v.(*entities.DailyPrices)
	}
	return prices, args.Error(1)
}

// MockSettingsStore es un mock de interfaces.SettingsStore
type MockSettingsStore struct {
	mock.Mock
}

func (m *MockSettingsStore) Get(ctx context.Context, key string) (string, error) {
	args := m.Called(ctx, key)
	return args.String(0), args.Error(1)
}

func (m *MockSettingsStore) Set(ctx context.Context, key, value string) error {
	return m.Called(ctx, key, value).Error(0)
}

func (m *MockSettingsStore) SetMany(ctx context.Context, entries map[string]string) error {
	return m.Called(ctx, entries).Error(0)
}

func (m *MockSettingsStore) Close() error {
	return m.Called().Error(0)
}

var (
	_ interfaces.PriceSource   = (*MockPriceSource)(nil)
	_ interfaces.SettingsStore = (*MockSettingsStore)(nil)
)

// testClock es un reloj manual
type testClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *testClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *testClock) Set(t time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = t
}

var madrid = time.FixedZone("CET", 3600)

func midnight(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, madrid)
}

// constantSeries genera 24 puntos horarios desde start con el mismo valor
func constantSeries(start time.Time, value float64) entities.PriceSeries {
	series := make(entities.PriceSeries, 0, entities.HoursPerDay)
	for h := 0; h < entities.HoursPerDay; h++ {
		series = append(series, entities.NewPricePoint(start.Add(time.Duration(h)*time.Hour), value))
	}
	return series
}

// rampSeries genera 24 puntos con valores base, base+1, ...
func rampSeries(start time.Time, base float64) entities.PriceSeries {
	series := make(entities.PriceSeries, 0, entities.HoursPerDay)
	for h := 0; h < entities.HoursPerDay; h++ {
		series = append(series, entities.NewPricePoint(start.Add(time.Duration(h)*time.Hour), base+float64(h)))
	}
	return series
}

// withDuplicateHour repite la hora 3 en lugar de la 4, manteniendo 24 puntos
func withDuplicateHour(day time.Time) *entities.DailyPrices {
	daily := dailyFor(day, 1, 2)
	daily.Spot[4].Timestamp = daily.Spot[3].Timestamp
	return daily
}

func dailyFor(day time.Time, spot, pvpc float64) *entities.DailyPrices {
	return &entities.DailyPrices{Spot: constantSeries(day, spot), PVPC: constantSeries(day, pvpc)}
}

type fixture struct {
	source  *MockPriceSource
	store   *settings.MemoryStore
	clock   *testClock
	manager *PriceManager
}

func newFixture(t *testing.T, now time.Time, seed *entities.DailyPrices) *fixture {
	t.Helper()
	return newFixtureIn(t, madrid, now, seed)
}

func newFixtureIn(t *testing.T, loc *time.Location, now time.Time, seed *entities.DailyPrices) *fixture {
	t.Helper()
	ctx := context.Background()

	f := &fixture{
		source: &MockPriceSource{},
		store:  settings.NewMemoryStore(),
		clock:  &testClock{now: now},
	}

	if seed != nil {
		require.NoError(t, settings.NewPriceSeriesAdapter(f.store).SaveDaily(ctx, seed))
	}

	manager, err := NewPriceManager(ctx, f.source, f.store, WithLocation(loc), WithClock(f.clock.Now))
	require.NoError(t, err)
	f.manager = manager
	return f
}

func sameDay(day time.Time) interface{} {
	return mock.MatchedBy(func(t time.Time) bool {
		return t.Year() == day.Year() && t.Month() == day.Month() && t.Day() == day.Day()
	})
}

// ===== ESCENARIOS =====

func TestPriceManager_EmptyStoreScenario(t *testing.T) {
	today := midnight(2024, 3, 10)
	f := newFixture(t, today.Add(10*time.Hour), nil)
	ctx := context.Background()

	f.source.On("FetchDailyPrices", mock.Anything, sameDay(today)).Return(dailyFor(today, 1.0, 2.0), nil).Once()

	mega, err := f.manager.GetSpotMarketPrices(ctx, entities.UnitMega)
	require.NoError(t, err)
	require.Len(t, mega, entities.HoursPerDay)
	for _, p := range mega {
		assert.Equal(t, 1.0, p.Value)
	}

	kilo, err := f.manager.GetSpotMarketPrices(ctx, entities.UnitKilo)
	require.NoError(t, err)
	require.Len(t, kilo, entities.HoursPerDay)
	for _, p := range kilo {
		assert.Equal(t, 0.001, p.Value)
	}

	// Ambas series llegan en el mismo refresco
	pvpc, err := f.manager.GetPVPCPrices(ctx, entities.UnitMega)
	require.NoError(t, err)
	for _, p := range pvpc {
		assert.Equal(t, 2.0, p.Value)
	}

	f.source.AssertNumberOfCalls(t, "FetchDailyPrices", 1)

	// Y quedan persistidas
	_, err = f.store.Get(ctx, settings.SpotPricesKey)
	assert.NoError(t, err)
	_, err = f.store.Get(ctx, settings.PVPCPricesKey)
	assert.NoError(t, err)
}

func TestPriceManager_SortedStrictlyAscending(t *testing.T) {
	today := midnight(2024, 3, 10)
	f := newFixture(t, today.Add(time.Hour), nil)

	daily := &entities.DailyPrices{Spot: rampSeries(today, 10), PVPC: rampSeries(today, 100)}
	// Orden de llegada arbitrario
	daily.Spot[0], daily.Spot[17] = daily.Spot[17], daily.Spot[0]
	daily.PVPC[3], daily.PVPC[22] = daily.PVPC[22], daily.PVPC[3]
	f.source.On("FetchDailyPrices", mock.Anything, mock.Anything).Return(daily, nil).Once()

	for _, v := range entities.Variables {
		series, err := f.manager.GetPrices(context.Background(), v, entities.UnitMega)
		require.NoError(t, err)
		require.Len(t, series, entities.HoursPerDay)
		for i := 1; i < len(series); i++ {
			assert.True(t, series[i-1].Timestamp.Before(series[i].Timestamp), "%s index %d", v, i)
		}
	}
}

func TestPriceManager_SameDayIsIdempotent(t *testing.T) {
	today := midnight(2024, 3, 10)
	f := newFixture(t, today.Add(time.Hour), nil)
	ctx := context.Background()

	f.source.On("FetchDailyPrices", mock.Anything, mock.Anything).Return(dailyFor(today, 5, 6), nil).Once()

	for i := 0; i < 3; i++ {
		_, err := f.manager.GetSpotMarketPrices(ctx, entities.UnitMega)
		require.NoError(t, err)
		f.clock.Set(f.clock.Now().Add(5 * time.Hour))
	}

	f.source.AssertNumberOfCalls(t, "FetchDailyPrices", 1)
}

func TestPriceManager_StaleSeriesTriggersOneRefresh(t *testing.T) {
	yesterday := midnight(2024, 3, 9)
	today := midnight(2024, 3, 10)
	f := newFixture(t, today.Add(30*time.Minute), dailyFor(yesterday, 7, 8))
	ctx := context.Background()

	assert.False(t, f.manager.IsFresh(entities.VariableSpot))

	f.source.On("FetchDailyPrices", mock.Anything, sameDay(today)).Return(dailyFor(today, 9, 10), nil).Once()

	series, err := f.manager.GetPVPCPrices(ctx, entities.UnitMega)
	require.NoError(t, err)
	assert.Equal(t, 10.0, series[0].Value)
	assert.True(t, f.manager.IsFresh(entities.VariableSpot))
	assert.True(t, f.manager.IsFresh(entities.VariablePVPC))

	// Al cambiar de día se refresca exactamente una vez más
	tomorrow := midnight(2024, 3, 11)
	f.clock.Set(tomorrow.Add(time.Minute))
	f.source.On("FetchDailyPrices", mock.Anything, sameDay(tomorrow)).Return(dailyFor(tomorrow, 11, 12), nil).Once()

	series, err = f.manager.GetSpotMarketPrices(ctx, entities.UnitMega)
	require.NoError(t, err)
	assert.Equal(t, 11.0, series[0].Value)

	f.source.AssertNumberOfCalls(t, "FetchDailyPrices", 2)
	f.source.AssertExpectations(t)
}

func TestPriceManager_FreshnessAcrossDST(t *testing.T) {
	europeMadrid, err := time.LoadLocation("Europe/Madrid")
	require.NoError(t, err)

	tests := []struct {
		name       string
		seedDay    time.Time
		now        time.Time
		wantFresh  bool
		refreshDay time.Time
	}{
		{
			name:      "spring forward, first point +01:00 and now +02:00",
			seedDay:   time.Date(2024, 3, 31, 0, 0, 0, 0, europeMadrid),
			now:       time.Date(2024, 3, 31, 12, 0, 0, 0, europeMadrid),
			wantFresh: true,
		},
		{
			name:       "fall back, yesterday +02:00 and now 00:30 +01:00",
			seedDay:    time.Date(2024, 10, 26, 0, 0, 0, 0, europeMadrid),
			now:        time.Date(2024, 10, 27, 0, 30, 0, 0, europeMadrid),
			wantFresh:  false,
			refreshDay: time.Date(2024, 10, 27, 0, 0, 0, 0, europeMadrid),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixtureIn(t, europeMadrid, tt.now, dailyFor(tt.seedDay, 7, 8))
			assert.Equal(t, tt.wantFresh, f.manager.IsFresh(entities.VariableSpot))

			if !tt.wantFresh {
				f.source.On("FetchDailyPrices", mock.Anything, sameDay(tt.refreshDay)).
					Return(dailyFor(tt.refreshDay, 9, 10), nil).Once()
			}

			series, err := f.manager.GetSpotMarketPrices(context.Background(), entities.UnitMega)
			require.NoError(t, err)
			assert.True(t, f.manager.IsFresh(entities.VariableSpot))

			if tt.wantFresh {
				assert.Equal(t, 7.0, series[0].Value)
				f.source.AssertNotCalled(t, "FetchDailyPrices", mock.Anything, mock.Anything)
				return
			}
			assert.Equal(t, 9.0, series[0].Value)
			f.source.AssertNumberOfCalls(t, "FetchDailyPrices", 1)
		})
	}
}

func TestPriceManager_FreshStoreNeedsNoFetch(t *testing.T) {
	today := midnight(2024, 3, 10)
	f := newFixture(t, today.Add(12*time.Hour), dailyFor(today, 3, 4))

	series, err := f.manager.GetSpotMarketPrices(context.Background(), entities.UnitMega)
	require.NoError(t, err)
	assert.Equal(t, 3.0, series[0].Value)

	f.source.AssertNotCalled(t, "FetchDailyPrices", mock.Anything, mock.Anything)
}

// ===== ERRORES =====

func TestPriceManager_InvalidArgumentsFailBeforeIO(t *testing.T) {
	today := midnight(2024, 3, 10)
	f := newFixture(t, today, nil)
	ctx := context.Background()

	tests := []struct {
		name     string
		variable entities.Variable
		unit     entities.Unit
	}{
		{name: "unknown variable", variable: "omie", unit: entities.UnitMega},
		{name: "empty variable", variable: "", unit: entities.UnitMega},
		{name: "unknown unit", variable: entities.VariableSpot, unit: "g"},
		{name: "empty unit", variable: entities.VariablePVPC, unit: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.manager.GetPrices(ctx, tt.variable, tt.unit)
			assert.ErrorIs(t, err, entities.ErrInvalidArgument)

			_, err = f.manager.GetSummary(ctx, tt.variable, tt.unit)
			assert.ErrorIs(t, err, entities.ErrInvalidArgument)
		})
	}

	f.source.AssertNotCalled(t, "FetchDailyPrices", mock.Anything, mock.Anything)
	assert.Equal(t, 0, f.store.Size())
}

func TestPriceManager_ArgumentsAreCaseInsensitive(t *testing.T) {
	today := midnight(2024, 3, 10)
	f := newFixture(t, today, dailyFor(today, 1500, 2))

	series, err := f.manager.GetPrices(context.Background(), "SPOT", "K")
	require.NoError(t, err)
	assert.Equal(t, 1.5, series[0].Value)
}

func TestPriceManager_FailedRefreshKeepsPreviousState(t *testing.T) {
	yesterday := midnight(2024, 3, 9)
	today := midnight(2024, 3, 10)

	invalid := func(n int) *entities.DailyPrices {
		return &entities.DailyPrices{Spot: constantSeries(today, 1)[:n], PVPC: constantSeries(today, 2)}
	}

	tests := []struct {
		name    string
		prices  *entities.DailyPrices
		err     error
		wantErr error
	}{
		{name: "upstream error", err: fmt.Errorf("%w: HTTP 503 Service Unavailable", entities.ErrUpstream), wantErr: entities.ErrUpstream},
		{name: "missing pvpc", err: fmt.Errorf("%w: no \"pvpc\" series in response", entities.ErrData), wantErr: entities.ErrData},
		{name: "23 points", prices: invalid(23), wantErr: entities.ErrData},
		{name: "25 points", prices: &entities.DailyPrices{Spot: constantSeries(today, 1), PVPC: append(constantSeries(today, 2), entities.NewPricePoint(today.Add(24*time.Hour), 2))}, wantErr: entities.ErrData},
		{name: "nil result", wantErr: entities.ErrData},
		{name: "duplicate timestamps", prices: withDuplicateHour(today), wantErr: entities.ErrData},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := context.Background()
			f := newFixture(t, today.Add(time.Hour), dailyFor(yesterday, 7, 8))
			storedBefore, err := f.store.Get(ctx, settings.SpotPricesKey)
			require.NoError(t, err)

			f.source.On("FetchDailyPrices", mock.Anything, mock.Anything).Return(tt.prices, tt.err).Once()

			_, err = f.manager.GetSpotMarketPrices(ctx, entities.UnitMega)
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.wantErr)

			// Ni la memoria ni el almacén cambian
			storedAfter, err := f.store.Get(ctx, settings.SpotPricesKey)
			require.NoError(t, err)
			assert.Equal(t, storedBefore, storedAfter)

			f.clock.Set(yesterday.Add(time.Hour))
			series, err := f.manager.GetSpotMarketPrices(ctx, entities.UnitMega)
			require.NoError(t, err)
			assert.Equal(t, 7.0, series[0].Value)
			f.source.AssertNumberOfCalls(t, "FetchDailyPrices", 1)
		})
	}
}

func TestPriceManager_PersistFailureKeepsPreviousState(t *testing.T) {
	ctx := context.Background()
	yesterday := midnight(2024, 3, 9)
	today := midnight(2024, 3, 10)

	seed := settings.NewMemoryStore()
	require.NoError(t, settings.NewPriceSeriesAdapter(seed).SaveDaily(ctx, dailyFor(yesterday, 7, 8)))
	spotRaw, _ := seed.Get(ctx, settings.SpotPricesKey)
	pvpcRaw, _ := seed.Get(ctx, settings.PVPCPricesKey)

	store := &MockSettingsStore{}
	store.On("Get", mock.Anything, settings.SpotPricesKey).Return(spotRaw, nil)
	store.On("Get", mock.Anything, settings.PVPCPricesKey).Return(pvpcRaw, nil)
	store.On("SetMany", mock.Anything, mock.Anything).Return(errors.New("disk full"))

	source := &MockPriceSource{}
	source.On("FetchDailyPrices", mock.Anything, mock.Anything).Return(dailyFor(today, 1, 2), nil)

	clock := &testClock{now: today.Add(time.Hour)}
	manager, err := NewPriceManager(ctx, source, store, WithLocation(madrid), WithClock(clock.Now))
	require.NoError(t, err)

	_, err = manager.GetSpotMarketPrices(ctx, entities.UnitMega)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "disk full")
	assert.False(t, manager.IsFresh(entities.VariableSpot))

	clock.Set(yesterday.Add(time.Hour))
	series, err := manager.GetSpotMarketPrices(ctx, entities.UnitMega)
	require.NoError(t, err)
	assert.Equal(t, 7.0, series[0].Value)
}

func TestNewPriceManager_StoreErrors(t *testing.T) {
	ctx := context.Background()

	t.Run("io error fails constructor", func(t *testing.T) {
		store := &MockSettingsStore{}
		store.On("Get", mock.Anything, settings.SpotPricesKey).Return("", errors.New("connection refused"))

		manager, err := NewPriceManager(ctx, &MockPriceSource{}, store)
		assert.Nil(t, manager)
		assert.Error(t, err)
	})

	t.Run("malformed entry is treated as absent", func(t *testing.T) {
		store := settings.NewMemoryStore()
		require.NoError(t, store.Set(ctx, settings.SpotPricesKey, "{broken"))
		require.NoError(t, store.Set(ctx, settings.PVPCPricesKey, "[]"))

		manager, err := NewPriceManager(ctx, &MockPriceSource{}, store)
		require.NoError(t, err)
		assert.False(t, manager.IsFresh(entities.VariableSpot))
		assert.False(t, manager.IsFresh(entities.VariablePVPC))
	})
}

// ===== INVARIANTES =====

func TestPriceManager_CallersCannotMutateCache(t *testing.T) {
	today := midnight(2024, 3, 10)
	f := newFixture(t, today, dailyFor(today, 42, 43))
	ctx := context.Background()

	first, err := f.manager.GetSpotMarketPrices(ctx, entities.UnitMega)
	require.NoError(t, err)
	first[0].Value = -1
	first[1].Timestamp = time.Time{}

	second, err := f.manager.GetSpotMarketPrices(ctx, entities.UnitMega)
	require.NoError(t, err)
	assert.Equal(t, 42.0, second[0].Value)
	assert.False(t, second[1].Timestamp.IsZero())
}

func TestPriceManager_KiloConversion(t *testing.T) {
	today := midnight(2024, 3, 10)
	values := []float64{123.45678, 99.99995, 1000, 0, -12.34565, 87.6543, 250.1}

	daily := &entities.DailyPrices{Spot: constantSeries(today, 0), PVPC: constantSeries(today, 0)}
	for i := range daily.Spot {
		daily.Spot[i].Value = values[i%len(values)]
	}
	f := newFixture(t, today, daily)
	ctx := context.Background()

	mega, err := f.manager.GetSpotMarketPrices(ctx, entities.UnitMega)
	require.NoError(t, err)
	kilo, err := f.manager.GetSpotMarketPrices(ctx, entities.UnitKilo)
	require.NoError(t, err)

	for i := range mega {
		want := math.Round(mega[i].Value/1000*1e4) / 1e4
		assert.InDelta(t, want, kilo[i].Value, 1e-12, "point %d (%v)", i, mega[i].Value)
		assert.True(t, mega[i].Timestamp.Equal(kilo[i].Timestamp))
	}
	assert.Equal(t, 0.1235, kilo[0].Value)
}

func TestPriceManager_ConcurrentCallersShareOneRefresh(t *testing.T) {
	today := midnight(2024, 3, 10)
	f := newFixture(t, today.Add(time.Hour), nil)

	f.source.On("FetchDailyPrices", mock.Anything, mock.Anything).
		After(50*time.Millisecond).
		Return(dailyFor(today, 1, 2), nil)

	var wg sync.WaitGroup
	errs := make(chan error, 20)
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			v := entities.Variables[i%2]
			series, err := f.manager.GetPrices(context.Background(), v, entities.UnitMega)
			if err == nil && len(series) != entities.HoursPerDay {
				err = fmt.Errorf("got %d points", len(series))
			}
			errs <- err
		}(i)
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		assert.NoError(t, err)
	}
	f.source.AssertNumberOfCalls(t, "FetchDailyPrices", 1)
}

func TestPriceManager_GetSummary(t *testing.T) {
	today := midnight(2024, 3, 10)
	daily := &entities.DailyPrices{Spot: rampSeries(today, 50), PVPC: constantSeries(today, 100)}
	daily.Spot[5].Value = 10   // mínimo
	daily.Spot[9].Value = 200  // máximo
	daily.Spot[20].Value = 200 // empate: gana el primero
	f := newFixture(t, today, daily)

	summary, err := f.manager.GetSummary(context.Background(), entities.VariableSpot, entities.UnitKilo)
	require.NoError(t, err)

	assert.Equal(t, entities.VariableSpot, summary.Variable)
	assert.Equal(t, entities.UnitKilo, summary.Unit)
	assert.True(t, summary.Day.Equal(today))
	assert.Len(t, summary.Points, entities.HoursPerDay)
	assert.Equal(t, 0.01, summary.Min.Value)
	assert.Equal(t, 5, summary.Min.Timestamp.In(madrid).Hour())
	assert.Equal(t, 0.2, summary.Max.Value)
	assert.Equal(t, 9, summary.Max.Timestamp.In(madrid).Hour())
}

func TestPriceManager_CancelledCallerDoesNotFailSharedRefresh(t *testing.T) {
	today := midnight(2024, 3, 10)
	f := newFixture(t, today.Add(time.Hour), nil)

	started := make(chan struct{})
	release := make(chan struct{})
	var fetchCtx context.Context
	f.source.On("FetchDailyPrices", mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) {
			fetchCtx = args.Get(0).(context.Context)
			close(started)
			<-release
		}).
		Return(dailyFor(today, 1, 2), nil).Once()

	ctxA, cancelA := context.WithCancel(context.Background())
	defer cancelA()
	errA := make(chan error, 1)
	go func() {
		_, err := f.manager.GetSpotMarketPrices(ctxA, entities.UnitMega)
		errA <- err
	}()
	<-started

	errB := make(chan error, 1)
	go func() {
		series, err := f.manager.GetPVPCPrices(context.Background(), entities.UnitMega)
		if err == nil && series[0].Value != 2 {
			err = fmt.Errorf("unexpected value %v", series[0].Value)
		}
		errB <- err
	}()

	cancelA()
	err := <-errA
	assert.ErrorIs(t, err, context.Canceled)
	assert.NoError(t, fetchCtx.Err(), "fetch must not inherit the first caller's cancellation")

	close(release)
	assert.NoError(t, <-errB)
	assert.True(t, f.manager.IsFresh(entities.VariableSpot))
	f.source.AssertNumberOfCalls(t, "FetchDailyPrices", 1)
}

func TestPriceManager_GetDaily(t *testing.T) {
	yesterday := midnight(2024, 3, 9)
	today := midnight(2024, 3, 10)

	tests := []struct {
		name      string
		seed      *entities.DailyPrices
		wantFetch bool
	}{
		{name: "both fresh", seed: dailyFor(today, 1000, 2000)},
		{name: "both stale", seed: dailyFor(yesterday, 7, 8), wantFetch: true},
		{
			name:      "only pvpc stale",
			seed:      &entities.DailyPrices{Spot: constantSeries(today, 7), PVPC: constantSeries(yesterday, 8)},
			wantFetch: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t, today.Add(13*time.Hour), tt.seed)
			if tt.wantFetch {
				f.source.On("FetchDailyPrices", mock.Anything, sameDay(today)).Return(dailyFor(today, 1000, 2000), nil).Once()
			}

			daily, err := f.manager.GetDaily(context.Background(), entities.UnitKilo)
			require.NoError(t, err)

			require.Len(t, daily.Spot, entities.HoursPerDay)
			require.Len(t, daily.PVPC, entities.HoursPerDay)
			assert.Equal(t, 1.0, daily.Spot[0].Value)
			assert.Equal(t, 2.0, daily.PVPC[0].Value)
			assert.True(t, daily.Spot.IsFor(today, madrid))
			assert.True(t, daily.PVPC.IsFor(today, madrid))

			if tt.wantFetch {
				f.source.AssertNumberOfCalls(t, "FetchDailyPrices", 1)
			} else {
				f.source.AssertNotCalled(t, "FetchDailyPrices", mock.Anything, mock.Anything)
			}
		})
	}
}

func TestPriceManager_GetDailyInvalidUnit(t *testing.T) {
	f := newFixture(t, midnight(2024, 3, 10), nil)

	_, err := f.manager.GetDaily(context.Background(), "w")
	assert.ErrorIs(t, err, entities.ErrInvalidArgument)
	f.source.AssertNotCalled(t, "FetchDailyPrices", mock.Anything, mock.Anything)
}

func TestPriceManager_GetSummaryLogsOneRequest(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, logging.InitializeGlobalLoggers(
		logging.DefaultConfig().WithLevel(logging.LevelDebug).WithOutput(&buf)))
	t.Cleanup(func() { _ = logging.InitializeGlobalLoggers(logging.DefaultConfig()) })

	today := midnight(2024, 3, 10)
	f := newFixture(t, today, dailyFor(today, 1, 2))

	_, err := f.manager.GetSummary(context.Background(), entities.VariableSpot, entities.UnitMega)
	require.NoError(t, err)

	assert.Equal(t, 1, strings.Count(buf.String(), "Prices requested"))
}
