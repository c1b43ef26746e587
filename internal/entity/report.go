package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrderSummary is the scalar reduction of a window's orders.
type OrderSummary struct {
	OrderCount              int             `json:"order_count"`
	RevenueTotal            decimal.Decimal `json:"revenue_total"`
	UnitsTotal              int             `json:"units_total"`
	UniqueCustomers         int             `json:"unique_customers"`
	ReturningCustomerOrders int             `json:"returning_customer_orders"`
	NewCustomerOrders       int             `json:"new_customer_orders"`
}

// PeriodComparison holds period-over-period deltas. Change percentages are
// strings: "N/A" when the previous period's value is zero, otherwise the
// delta formatted to one decimal place ("50.0").
type PeriodComparison struct {
	CurrentRevenue   decimal.Decimal `json:"current_revenue"`
	PreviousRevenue  decimal.Decimal `json:"previous_revenue"`
	CurrentOrders    int             `json:"current_orders"`
	PreviousOrders   int             `json:"previous_orders"`
	RevenueChangePct string          `json:"revenue_change_pct"`
	OrdersChangePct  string          `json:"orders_change_pct"`
}

// StoreAnalyticsResult is the store analytics report.
type StoreAnalyticsResult struct {
	Window          PeriodWindow        `json:"window"`
	Summary         OrderSummary        `json:"summary"`
	AvgOrderValue   decimal.Decimal     `json:"avg_order_value"`
	NewCustomers    int                 `json:"new_customers"`
	Comparison      PeriodComparison    `json:"comparison"`
	TrafficBySource []TrafficSourceStat `json:"traffic_by_source"`
}

// MonthBucket accumulates the orders of one calendar month, keyed YYYY-MM.
type MonthBucket struct {
	Month      string          `json:"month"`
	OrderCount int             `json:"order_count"`
	Revenue    decimal.Decimal `json:"revenue"`
}

// ForecastPoint is one projected horizon. RevenueLow/RevenueHigh form a
// heuristic confidence band that widens with the square root of the horizon.
type ForecastPoint struct {
	MonthsAhead       int             `json:"months_ahead"`
	TargetDate        time.Time       `json:"target_date"`
	ProjectedOrders   int             `json:"projected_orders"`
	ProjectedSessions int             `json:"projected_sessions"`
	ProjectedRevenue  decimal.Decimal `json:"projected_revenue"`
	RevenueLow        decimal.Decimal `json:"revenue_low"`
	RevenueHigh       decimal.Decimal `json:"revenue_high"`
}

// ForecastScenario selects the fallback growth rate used when no positive
// month-over-month growth is observed in the lookback window.
type ForecastScenario string

const (
	ScenarioConservative ForecastScenario = "conservative"
	ScenarioModerate     ForecastScenario = "moderate"
	ScenarioAggressive   ForecastScenario = "aggressive"
)

// ForecastOptions parameterizes a forecast run. Now anchors the lookback
// window and target dates; the zero value means time.Now().
type ForecastOptions struct {
	Scenario    ForecastScenario `json:"scenario"`
	Horizons    []int            `json:"horizons"`
	Seasonality bool             `json:"seasonality"`
	Now         time.Time        `json:"-"`
}

// ForecastResult is the growth forecast report.
type ForecastResult struct {
	Window             PeriodWindow     `json:"window"`
	Scenario           ForecastScenario `json:"scenario"`
	MonthlyHistory     []MonthBucket    `json:"monthly_history"`
	AvgMonthlyOrders   float64          `json:"avg_monthly_orders"`
	AvgMonthlyRevenue  decimal.Decimal  `json:"avg_monthly_revenue"`
	ObservedGrowthRate float64          `json:"observed_growth_rate"`
	AppliedGrowthRate  float64          `json:"applied_growth_rate"`
	SeasonalityApplied bool             `json:"seasonality_applied"`
	Points             []ForecastPoint  `json:"points"`
}

// FunnelStages holds the conversion funnel counts. Visitors and add-to-cart
// are estimates derived from industry benchmarks, not measurements; the
// field names carry that label so no consumer mistakes them for data.
type FunnelStages struct {
	VisitorsEstimate  int `json:"visitors_estimate"`
	AddToCartEstimate int `json:"add_to_cart_estimate"`
	ReachedCheckout   int `json:"reached_checkout"`
	CompletedOrders   int `json:"completed_orders"`
}

// ConversionAnalysisResult is the conversion funnel report.
type ConversionAnalysisResult struct {
	Window                 PeriodWindow    `json:"window"`
	Funnel                 FunnelStages    `json:"funnel"`
	CheckoutCompletionRate float64         `json:"checkout_completion_rate"`
	AbandonmentRate        float64         `json:"abandonment_rate"`
	AbandonedValue         decimal.Decimal `json:"abandoned_value"`
	AvgCompletedValue      decimal.Decimal `json:"avg_completed_value"`
	AvgAbandonedValue      decimal.Decimal `json:"avg_abandoned_value"`
	ReturningCustomerRate  float64         `json:"returning_customer_rate"`
	Recommendations        []string        `json:"recommendations"`
}

// ProductStat accumulates one product's movement within a window. Velocity
// is units sold per unit of inventory on hand; with untracked inventory it
// degrades to raw units sold.
type ProductStat struct {
	ProductID       string          `json:"product_id"`
	Title           string          `json:"title"`
	UnitsSold       int             `json:"units_sold"`
	Revenue         decimal.Decimal `json:"revenue"`
	OrderCount      int             `json:"order_count"`
	InventoryOnHand int             `json:"inventory_on_hand"`
	Velocity        float64         `json:"velocity"`
}

// ProductPerformanceResult is the product performance report. Products are
// ordered by revenue descending.
type ProductPerformanceResult struct {
	Window              PeriodWindow  `json:"window"`
	Products            []ProductStat `json:"products"`
	RestockCandidates   []ProductStat `json:"restock_candidates"`
	PromotionCandidates []ProductStat `json:"promotion_candidates"`
}
