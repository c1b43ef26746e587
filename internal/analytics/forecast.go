package analytics

import (
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/guckert-dev/shopify-mcp/internal/entity"
	"github.com/shopspring/decimal"
)

const monthKeyLayout = "2006-01"

// DefaultHorizons are the projection horizons, in months, used when the
// caller does not request specific ones.
var DefaultHorizons = []int{1, 3, 6, 12}

// Forecast buckets the lookback window's orders into calendar months,
// derives an observed month-over-month growth rate (falling back to the
// scenario constant when growth is flat or negative), and compounds the
// monthly baseline forward for each requested horizon.
//
// The seasonal factor is applied once per horizon, using the target month's
// factor only; it does not compound through intermediate months. The
// confidence band widens with the square root of the horizon. With no
// historical orders every projection is zero and the band collapses to zero.
func Forecast(orders []entity.OrderRecord, window entity.PeriodWindow, opts entity.ForecastOptions, bm Benchmarks) (*entity.ForecastResult, error) {
	scenario := opts.Scenario
	if scenario == "" {
		scenario = entity.ScenarioModerate
	}
	fallbackRate, ok := bm.ScenarioGrowth[string(scenario)]
	if !ok {
		return nil, fmt.Errorf("%w: unknown forecast scenario %q", entity.ErrInvalidParams, scenario)
	}

	horizons := opts.Horizons
	if horizons == nil {
		horizons = DefaultHorizons
	}
	if len(horizons) == 0 {
		return nil, fmt.Errorf("%w: horizon list is empty", entity.ErrInvalidParams)
	}
	for _, h := range horizons {
		if h <= 0 {
			return nil, fmt.Errorf("%w: horizon must be positive, got %d", entity.ErrInvalidParams, h)
		}
	}

	now := opts.Now
	if now.IsZero() {
		now = time.Now().UTC()
	}

	buckets := bucketByMonth(orders)

	res := &entity.ForecastResult{
		Window:             window,
		Scenario:           scenario,
		MonthlyHistory:     buckets,
		AvgMonthlyRevenue:  decimal.Zero,
		SeasonalityApplied: opts.Seasonality,
	}

	if len(buckets) > 0 {
		totalOrders := 0
		totalRevenue := decimal.Zero
		for _, b := range buckets {
			totalOrders += b.OrderCount
			totalRevenue = totalRevenue.Add(b.Revenue)
		}
		months := decimal.NewFromInt(int64(len(buckets)))
		res.AvgMonthlyOrders = float64(totalOrders) / float64(len(buckets))
		res.AvgMonthlyRevenue = totalRevenue.Div(months).Round(2)
	}

	if len(buckets) >= 2 {
		last := buckets[len(buckets)-1]
		prev := buckets[len(buckets)-2]
		if !prev.Revenue.IsZero() {
			res.ObservedGrowthRate, _ = last.Revenue.Sub(prev.Revenue).
				Div(prev.Revenue).Float64()
		}
	}

	res.AppliedGrowthRate = fallbackRate
	if res.ObservedGrowthRate > 0 {
		res.AppliedGrowthRate = res.ObservedGrowthRate
	}

	res.Points = make([]entity.ForecastPoint, 0, len(horizons))
	for _, h := range horizons {
		res.Points = append(res.Points, projectHorizon(res, now, h, bm))
	}
	return res, nil
}

func projectHorizon(res *entity.ForecastResult, now time.Time, h int, bm Benchmarks) entity.ForecastPoint {
	target := now.AddDate(0, h, 0)
	growth := math.Pow(1+res.AppliedGrowthRate, float64(h))

	factor := 1.0
	if res.SeasonalityApplied {
		if f, ok := bm.SeasonalFactors[target.Month()]; ok {
			factor = f
		}
	}

	orders := res.AvgMonthlyOrders * growth * factor
	revenue := res.AvgMonthlyRevenue.
		Mul(decimal.NewFromFloat(growth)).
		Mul(decimal.NewFromFloat(factor))

	spread := bm.ConfidenceSpread * math.Sqrt(float64(h))
	lowFactor := 1 - spread
	if lowFactor < 0 {
		lowFactor = 0
	}

	sessions := 0
	if bm.OrderConversionRate > 0 {
		sessions = int(math.Round(orders / bm.OrderConversionRate))
	}

	return entity.ForecastPoint{
		MonthsAhead:       h,
		TargetDate:        target,
		ProjectedOrders:   int(math.Round(orders)),
		ProjectedSessions: sessions,
		ProjectedRevenue:  revenue.Round(2),
		RevenueLow:        revenue.Mul(decimal.NewFromFloat(lowFactor)).Round(2),
		RevenueHigh:       revenue.Mul(decimal.NewFromFloat(1 + spread)).Round(2),
	}
}

// bucketByMonth groups orders by the calendar month of CreatedAt, ascending.
func bucketByMonth(orders []entity.OrderRecord) []entity.MonthBucket {
	byMonth := make(map[string]*entity.MonthBucket)
	for _, o := range orders {
		key := o.CreatedAt.UTC().Format(monthKeyLayout)
		b, ok := byMonth[key]
		if !ok {
			b = &entity.MonthBucket{Month: key, Revenue: decimal.Zero}
			byMonth[key] = b
		}
		b.OrderCount++
		b.Revenue = b.Revenue.Add(o.TotalAmount)
	}
	keys := make([]string, 0, len(byMonth))
	for k := range byMonth {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	buckets := make([]entity.MonthBucket, 0, len(keys))
	for _, k := range keys {
		buckets = append(buckets, *byMonth[k])
	}
	return buckets
}
