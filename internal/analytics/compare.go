package analytics

import (
	"github.com/guckert-dev/shopify-mcp/internal/entity"
	"github.com/shopspring/decimal"
)

// ChangeNotAvailable is returned when the previous period's value is zero
// and a percentage delta is undefined. It is a deliberate sentinel: callers
// and serialized reports carry the literal string, never infinity or null.
const ChangeNotAvailable = "N/A"

// ComparePeriods derives period-over-period deltas from two summaries. The
// previous summary must cover the equal-length window immediately preceding
// the current one; building those windows is the caller's job (see
// entity.PeriodWindow.Previous).
func ComparePeriods(current, previous entity.OrderSummary) entity.PeriodComparison {
	return entity.PeriodComparison{
		CurrentRevenue:   current.RevenueTotal,
		PreviousRevenue:  previous.RevenueTotal,
		CurrentOrders:    current.OrderCount,
		PreviousOrders:   previous.OrderCount,
		RevenueChangePct: changePct(current.RevenueTotal, previous.RevenueTotal),
		OrdersChangePct: changePct(
			decimal.NewFromInt(int64(current.OrderCount)),
			decimal.NewFromInt(int64(previous.OrderCount)),
		),
	}
}

// changePct formats (current-previous)/previous*100 to one decimal place.
func changePct(current, previous decimal.Decimal) string {
	if previous.IsZero() {
		return ChangeNotAvailable
	}
	return current.Sub(previous).
		Div(previous).
		Mul(decimal.NewFromInt(100)).
		StringFixed(1)
}
