// Package analytics derives aggregate business metrics, traffic attribution,
// conversion funnels, growth forecasts and product velocity rankings from
// raw order, checkout and customer records. All computation is synchronous
// and pure; the only suspension points are the data-source fetches.
package analytics

import "time"

// Benchmarks holds every policy constant the engine applies: assumed
// conversion rates, seasonal demand factors, recommendation cutoffs and
// velocity thresholds. These are policy, not physics - they live in one
// injected structure so they can be tuned and tested apart from the
// aggregation logic.
type Benchmarks struct {
	// OrderConversionRate is the assumed sessions-to-order rate used to
	// estimate sessions from order counts (2.5%). Shared by the funnel
	// estimator and the forecaster so the two stay consistent.
	OrderConversionRate float64 `mapstructure:"order_conversion_rate"`
	// VisitorCheckoutRate is the assumed visitors-to-checkout rate (3%).
	VisitorCheckoutRate float64 `mapstructure:"visitor_checkout_rate"`
	// CartToCheckoutRate is the assumed add-to-cart-to-checkout rate (45%).
	CartToCheckoutRate float64 `mapstructure:"cart_to_checkout_rate"`

	// HighAbandonmentPct flags the abandonment recommendation (70).
	HighAbandonmentPct float64 `mapstructure:"high_abandonment_pct"`
	// LowReturningPct flags the retention recommendation (20).
	LowReturningPct float64 `mapstructure:"low_returning_pct"`

	// ScenarioGrowth maps a forecast scenario to its fallback monthly
	// growth rate, used when no positive growth is observed.
	ScenarioGrowth map[string]float64 `mapstructure:"scenario_growth"`
	// SeasonalFactors approximates e-commerce demand seasonality per
	// calendar month. Applied once, to the target month of a projection.
	SeasonalFactors map[time.Month]float64 `mapstructure:"-"`
	// ConfidenceSpread scales the forecast band: low/high are
	// projected * (1 -/+ ConfidenceSpread*sqrt(horizon)).
	ConfidenceSpread float64 `mapstructure:"confidence_spread"`
	// ForecastLookbackDays bounds the order history bucketed into months.
	ForecastLookbackDays int `mapstructure:"forecast_lookback_days"`

	// Restock: low stock moving fast.
	RestockInventoryBelow int     `mapstructure:"restock_inventory_below"`
	RestockVelocityAbove  float64 `mapstructure:"restock_velocity_above"`
	// Promotion: high stock moving slowly.
	PromoInventoryAbove int     `mapstructure:"promo_inventory_above"`
	PromoVelocityBelow  float64 `mapstructure:"promo_velocity_below"`
}

// DefaultBenchmarks returns the canonical constants.
func DefaultBenchmarks() Benchmarks {
	return Benchmarks{
		OrderConversionRate: 0.025,
		VisitorCheckoutRate: 0.03,
		CartToCheckoutRate:  0.45,

		HighAbandonmentPct: 70,
		LowReturningPct:    20,

		ScenarioGrowth: map[string]float64{
			"conservative": 0.02,
			"moderate":     0.05,
			"aggressive":   0.10,
		},
		SeasonalFactors: map[time.Month]float64{
			time.January:   0.85,
			time.February:  0.88,
			time.March:     0.95,
			time.April:     1.00,
			time.May:       1.02,
			time.June:      0.98,
			time.July:      0.96,
			time.August:    0.98,
			time.September: 1.02,
			time.October:   1.08,
			time.November:  1.20,
			time.December:  1.35,
		},
		ConfidenceSpread:     0.15,
		ForecastLookbackDays: 90,

		RestockInventoryBelow: 10,
		RestockVelocityAbove:  0.5,
		PromoInventoryAbove:   50,
		PromoVelocityBelow:    0.1,
	}
}

// FillDefaults replaces zero-valued fields with the canonical constants so a
// partial config override keeps the rest of the table intact.
func (b *Benchmarks) FillDefaults() {
	def := DefaultBenchmarks()
	if b.OrderConversionRate == 0 {
		b.OrderConversionRate = def.OrderConversionRate
	}
	if b.VisitorCheckoutRate == 0 {
		b.VisitorCheckoutRate = def.VisitorCheckoutRate
	}
	if b.CartToCheckoutRate == 0 {
		b.CartToCheckoutRate = def.CartToCheckoutRate
	}
	if b.HighAbandonmentPct == 0 {
		b.HighAbandonmentPct = def.HighAbandonmentPct
	}
	if b.LowReturningPct == 0 {
		b.LowReturningPct = def.LowReturningPct
	}
	if len(b.ScenarioGrowth) == 0 {
		b.ScenarioGrowth = def.ScenarioGrowth
	}
	if len(b.SeasonalFactors) == 0 {
		b.SeasonalFactors = def.SeasonalFactors
	}
	if b.ConfidenceSpread == 0 {
		b.ConfidenceSpread = def.ConfidenceSpread
	}
	if b.ForecastLookbackDays == 0 {
		b.ForecastLookbackDays = def.ForecastLookbackDays
	}
	if b.RestockInventoryBelow == 0 {
		b.RestockInventoryBelow = def.RestockInventoryBelow
	}
	if b.RestockVelocityAbove == 0 {
		b.RestockVelocityAbove = def.RestockVelocityAbove
	}
	if b.PromoInventoryAbove == 0 {
		b.PromoInventoryAbove = def.PromoInventoryAbove
	}
	if b.PromoVelocityBelow == 0 {
		b.PromoVelocityBelow = def.PromoVelocityBelow
	}
}
