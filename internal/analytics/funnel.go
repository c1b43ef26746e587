package analytics

import (
	"math"

	"github.com/guckert-dev/shopify-mcp/internal/entity"
	"github.com/shopspring/decimal"
)

// Recommendation texts are stable strings so downstream consumers can match
// on them.
const (
	RecommendationHighAbandonment = "abandonment rate is high: simplify checkout and enable cart recovery emails"
	RecommendationHighCartValue   = "abandoned carts are worth more than completed orders: target high-value recovery"
	RecommendationLowRetention    = "returning customer rate is low: invest in retention and post-purchase campaigns"
)

// AnalyzeFunnel combines a window's completed orders and abandoned checkouts
// into funnel-stage counts and rates. Visitors and add-to-cart counts are
// benchmark-derived estimates upstream of the first measured stage; both
// collapse to zero with the checkout count, so an empty window yields zeros
// throughout.
func AnalyzeFunnel(orders []entity.OrderRecord, checkouts []entity.CheckoutRecord, window entity.PeriodWindow, bm Benchmarks) *entity.ConversionAnalysisResult {
	completed := len(orders)
	abandoned := len(checkouts)
	reached := completed + abandoned

	res := &entity.ConversionAnalysisResult{
		Window: window,
		Funnel: entity.FunnelStages{
			ReachedCheckout: reached,
			CompletedOrders: completed,
		},
		AbandonedValue:    decimal.Zero,
		AvgCompletedValue: decimal.Zero,
		AvgAbandonedValue: decimal.Zero,
	}

	if reached > 0 {
		res.Funnel.AddToCartEstimate = int(math.Round(float64(reached) / bm.CartToCheckoutRate))
		res.Funnel.VisitorsEstimate = int(math.Round(float64(reached) / bm.VisitorCheckoutRate))
		res.CheckoutCompletionRate = float64(completed) / float64(reached) * 100
		res.AbandonmentRate = float64(abandoned) / float64(reached) * 100
	}

	abandonedTotal := decimal.Zero
	for _, c := range checkouts {
		abandonedTotal = abandonedTotal.Add(c.TotalAmount)
	}
	res.AbandonedValue = abandonedTotal
	if abandoned > 0 {
		res.AvgAbandonedValue = abandonedTotal.Div(decimal.NewFromInt(int64(abandoned))).Round(2)
	}

	summary := Summarize(orders)
	res.AvgCompletedValue = AvgOrderValue(summary)

	attributed := summary.ReturningCustomerOrders + summary.NewCustomerOrders
	if attributed > 0 {
		res.ReturningCustomerRate = float64(summary.ReturningCustomerOrders) / float64(attributed) * 100
	}

	if res.AbandonmentRate > bm.HighAbandonmentPct {
		res.Recommendations = append(res.Recommendations, RecommendationHighAbandonment)
	}
	if abandoned > 0 && completed > 0 && res.AvgAbandonedValue.GreaterThan(res.AvgCompletedValue) {
		res.Recommendations = append(res.Recommendations, RecommendationHighCartValue)
	}
	if attributed > 0 && res.ReturningCustomerRate < bm.LowReturningPct {
		res.Recommendations = append(res.Recommendations, RecommendationLowRetention)
	}

	return res
}
