package analytics

import (
	"testing"
	"time"

	"github.com/guckert-dev/shopify-mcp/internal/entity"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func monthOrder(year int, month time.Month, total float64) entity.OrderRecord {
	return entity.OrderRecord{
		ID:          "o",
		CreatedAt:   time.Date(year, month, 15, 10, 0, 0, 0, time.UTC),
		TotalAmount: decimal.NewFromFloat(total),
	}
}

func forecastWindow(t *testing.T, now time.Time) entity.PeriodWindow {
	t.Helper()
	w, err := entity.NewPeriodWindow(now, 90)
	require.NoError(t, err)
	return w
}

func TestForecast_ZeroHistory(t *testing.T) {
	now := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	res, err := Forecast(nil, forecastWindow(t, now), entity.ForecastOptions{Now: now}, DefaultBenchmarks())
	require.NoError(t, err)

	assert.Empty(t, res.MonthlyHistory)
	assert.Zero(t, res.AvgMonthlyOrders)
	assert.True(t, res.AvgMonthlyRevenue.IsZero())
	require.Len(t, res.Points, len(DefaultHorizons))
	for _, p := range res.Points {
		assert.Zero(t, p.ProjectedOrders)
		assert.Zero(t, p.ProjectedSessions)
		assert.True(t, p.ProjectedRevenue.IsZero())
		assert.True(t, p.RevenueLow.IsZero())
		assert.True(t, p.RevenueHigh.IsZero())
	}
}

func TestForecast_ObservedGrowthApplied(t *testing.T) {
	now := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	orders := []entity.OrderRecord{
		monthOrder(2024, time.April, 100),
		monthOrder(2024, time.May, 150),
	}

	res, err := Forecast(orders, forecastWindow(t, now), entity.ForecastOptions{
		Now:      now,
		Horizons: []int{1},
	}, DefaultBenchmarks())
	require.NoError(t, err)

	require.Len(t, res.MonthlyHistory, 2)
	assert.Equal(t, "2024-04", res.MonthlyHistory[0].Month)
	assert.Equal(t, "2024-05", res.MonthlyHistory[1].Month)
	assert.InDelta(t, 0.5, res.ObservedGrowthRate, 1e-9)
	assert.InDelta(t, 0.5, res.AppliedGrowthRate, 1e-9)

	// baseline 125, one month at +50%
	assert.Equal(t, "187.50", res.Points[0].ProjectedRevenue.StringFixed(2))
}

func TestForecast_NegativeGrowthFallsBackToScenario(t *testing.T) {
	now := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	orders := []entity.OrderRecord{
		monthOrder(2024, time.April, 200),
		monthOrder(2024, time.May, 100),
	}

	res, err := Forecast(orders, forecastWindow(t, now), entity.ForecastOptions{
		Now:      now,
		Scenario: entity.ScenarioConservative,
		Horizons: []int{1},
	}, DefaultBenchmarks())
	require.NoError(t, err)

	assert.InDelta(t, -0.5, res.ObservedGrowthRate, 1e-9)
	assert.InDelta(t, 0.02, res.AppliedGrowthRate, 1e-9)
}

func TestForecast_DefaultHorizons(t *testing.T) {
	now := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	res, err := Forecast(nil, forecastWindow(t, now), entity.ForecastOptions{Now: now}, DefaultBenchmarks())
	require.NoError(t, err)

	require.Len(t, res.Points, 4)
	for i, h := range DefaultHorizons {
		assert.Equal(t, h, res.Points[i].MonthsAhead)
		assert.Equal(t, now.AddDate(0, h, 0), res.Points[i].TargetDate)
	}
}

func TestForecast_ConfidenceBandWidensWithHorizon(t *testing.T) {
	now := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	orders := []entity.OrderRecord{monthOrder(2024, time.May, 1000)}

	res, err := Forecast(orders, forecastWindow(t, now), entity.ForecastOptions{
		Now:      now,
		Horizons: []int{1, 3, 6, 12},
	}, DefaultBenchmarks())
	require.NoError(t, err)

	prevWidth := decimal.NewFromInt(-1)
	for _, p := range res.Points {
		width := p.RevenueHigh.Sub(p.RevenueLow)
		assert.True(t, width.GreaterThanOrEqual(prevWidth),
			"band at h=%d narrower than previous horizon", p.MonthsAhead)
		assert.True(t, p.RevenueLow.LessThanOrEqual(p.ProjectedRevenue))
		assert.True(t, p.RevenueHigh.GreaterThanOrEqual(p.ProjectedRevenue))
		prevWidth = width
	}
}

func TestForecast_SeasonalFactorAppliedOnce(t *testing.T) {
	now := time.Date(2024, 6, 15, 0, 0, 0, 0, time.UTC)
	orders := []entity.OrderRecord{monthOrder(2024, time.May, 1000)}
	bm := DefaultBenchmarks()

	// December target: factor 1.35 applied exactly once, not compounded
	// through the six intermediate months.
	plain, err := Forecast(orders, forecastWindow(t, now), entity.ForecastOptions{
		Now:      now,
		Horizons: []int{6},
	}, bm)
	require.NoError(t, err)
	seasonal, err := Forecast(orders, forecastWindow(t, now), entity.ForecastOptions{
		Now:         now,
		Horizons:    []int{6},
		Seasonality: true,
	}, bm)
	require.NoError(t, err)

	assert.Equal(t, time.December, seasonal.Points[0].TargetDate.Month())
	plainRev, _ := plain.Points[0].ProjectedRevenue.Float64()
	seasonalRev, _ := seasonal.Points[0].ProjectedRevenue.Float64()
	assert.InDelta(t, plainRev*1.35, seasonalRev, 0.02)
}

func TestForecast_SessionsShareFunnelConversionRate(t *testing.T) {
	now := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	orders := make([]entity.OrderRecord, 0, 100)
	for i := 0; i < 100; i++ {
		orders = append(orders, monthOrder(2024, time.May, 10))
	}

	res, err := Forecast(orders, forecastWindow(t, now), entity.ForecastOptions{
		Now:      now,
		Horizons: []int{1},
	}, DefaultBenchmarks())
	require.NoError(t, err)

	p := res.Points[0]
	// projected sessions are projected orders / 2.5%
	assert.Equal(t, p.ProjectedOrders*40, p.ProjectedSessions)
}

func TestForecast_InvalidParams(t *testing.T) {
	now := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	w := forecastWindow(t, now)

	_, err := Forecast(nil, w, entity.ForecastOptions{Now: now, Horizons: []int{}}, DefaultBenchmarks())
	assert.ErrorIs(t, err, entity.ErrInvalidParams)

	_, err = Forecast(nil, w, entity.ForecastOptions{Now: now, Horizons: []int{-1}}, DefaultBenchmarks())
	assert.ErrorIs(t, err, entity.ErrInvalidParams)

	_, err = Forecast(nil, w, entity.ForecastOptions{Now: now, Scenario: "wild"}, DefaultBenchmarks())
	assert.ErrorIs(t, err, entity.ErrInvalidParams)
}
