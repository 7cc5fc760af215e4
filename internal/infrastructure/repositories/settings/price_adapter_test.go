package settings

import (
	"context"
	"energy-es/internal/domain/entities"
	"energy-es/internal/domain/interfaces"
	"energy-es/internal/infrastructure/metrics"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func daySeries(day time.Time, base float64) entities.PriceSeries {
	series := make(entities.PriceSeries, 0, entities.HoursPerDay)
	for h := 0; h < entities.HoursPerDay; h++ {
		series = append(series, entities.NewPricePoint(day.Add(time.Duration(h)*time.Hour), base+float64(h)))
	}
	return series
}

func TestPriceSeriesAdapter_RoundTrip(t *testing.T) {
	ctx := context.Background()
	madrid := time.FixedZone("CET", 3600)
	day := time.Date(2024, 3, 10, 0, 0, 0, 0, madrid)

	store := NewMemoryStore()
	adapter := NewPriceSeriesAdapter(store)

	daily := &entities.DailyPrices{Spot: daySeries(day, 50), PVPC: daySeries(day, 120)}
	require.NoError(t, adapter.SaveDaily(ctx, daily))
	assert.Equal(t, 2, store.Size())

	raw, err := store.Get(ctx, SpotPricesKey)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(raw, `[{"datetime":"2024-03-10T00:00:00+01:00","value":50}`), raw)

	spot, found, err := adapter.Load(ctx, entities.VariableSpot)
	require.NoError(t, err)
	require.True(t, found)
	require.Len(t, spot, entities.HoursPerDay)
	assert.True(t, spot[0].Timestamp.Equal(day))
	_, offset := spot[0].Timestamp.Zone()
	assert.Equal(t, 3600, offset)
	assert.Equal(t, 50.0, spot[0].Value)

	pvpc, found, err := adapter.Load(ctx, entities.VariablePVPC)
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, 143.0, pvpc[23].Value)
}

func TestPriceSeriesAdapter_Load(t *testing.T) {
	tests := []struct {
		name      string
		raw       string
		wantFound bool
		wantErr   error
	}{
		{name: "absent key"},
		{name: "not json", raw: "{oops", wantErr: ErrMalformedEntry},
		{name: "wrong length", raw: `[{"datetime":"2024-03-10T00:00:00+01:00","value":1}]`, wantErr: ErrMalformedEntry},
		{name: "bad timestamp", raw: `[{"datetime":"yesterday","value":1}]`, wantErr: ErrMalformedEntry},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := context.Background()
			store := NewMemoryStore()
			if tt.raw != "" {
				require.NoError(t, store.Set(ctx, SpotPricesKey, tt.raw))
			}

			series, found, err := NewPriceSeriesAdapter(store).Load(ctx, entities.VariableSpot)
			assert.Equal(t, tt.wantFound, found)
			assert.Nil(t, series)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestDecodeSeries_SortsUnorderedEntry(t *testing.T) {
	day := time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC)
	series := daySeries(day, 0)
	series[0], series[23] = series[23], series[0]

	raw, err := EncodeSeries(series)
	require.NoError(t, err)

	decoded, err := DecodeSeries(raw)
	require.NoError(t, err)
	assert.True(t, decoded[0].Timestamp.Equal(day))
	assert.Equal(t, 23.0, decoded[23].Value)
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

var _ interfaces.SettingsStore = (*MockSettingsStore)(nil)

func TestPriceSeriesAdapter_StoreErrors(t *testing.T) {
	ctx := context.Background()
	boom := errors.New("connection reset")

	inner := &MockSettingsStore{}
	inner.On("Get", mock.Anything, SpotPricesKey).Return("", boom)
	inner.On("SetMany", mock.Anything, mock.MatchedBy(func(entries map[string]string) bool {
		_, spot := entries[SpotPricesKey]
		_, pvpc := entries[PVPCPricesKey]
		return len(entries) == 2 && spot && pvpc
	})).Return(boom)

	store := NewInstrumentedStore(inner, "mock")
	adapter := NewPriceSeriesAdapter(store)

	getErrors := testutil.ToFloat64(metrics.StoreOperationsTotal.WithLabelValues("mock", "get", "error"))
	setErrors := testutil.ToFloat64(metrics.StoreOperationsTotal.WithLabelValues("mock", "set_many", "error"))

	_, found, err := adapter.Load(ctx, entities.VariableSpot)
	assert.False(t, found)
	assert.ErrorIs(t, err, boom)

	day := time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC)
	err = adapter.SaveDaily(ctx, &entities.DailyPrices{Spot: daySeries(day, 1), PVPC: daySeries(day, 2)})
	assert.ErrorIs(t, err, boom)

	assert.Equal(t, getErrors+1, testutil.ToFloat64(metrics.StoreOperationsTotal.WithLabelValues("mock", "get", "error")))
	assert.Equal(t, setErrors+1, testutil.ToFloat64(metrics.StoreOperationsTotal.WithLabelValues("mock", "set_many", "error")))
	inner.AssertExpectations(t)
}

func TestKeyFor(t *testing.T) {
	assert.Equal(t, "spot_market_prices", KeyFor(entities.VariableSpot))
	assert.Equal(t, "pvpc_prices", KeyFor(entities.VariablePVPC))
}
