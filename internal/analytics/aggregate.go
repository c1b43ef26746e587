package analytics

import (
	"github.com/guckert-dev/shopify-mcp/internal/entity"
	"github.com/shopspring/decimal"
)

// Summarize reduces a window's orders into scalar totals. Orders without a
// customer reference count toward order and revenue totals but toward
// neither the unique-customer set nor the returning/new split. Empty input
// yields all zeros, never an error.
func Summarize(orders []entity.OrderRecord) entity.OrderSummary {
	s := entity.OrderSummary{
		RevenueTotal: decimal.Zero,
	}
	seen := make(map[string]struct{}, len(orders))
	for _, o := range orders {
		s.OrderCount++
		s.RevenueTotal = s.RevenueTotal.Add(o.TotalAmount)
		for _, li := range o.LineItems {
			s.UnitsTotal += li.Quantity
		}
		if o.Customer == nil || o.Customer.ID == "" {
			continue
		}
		seen[o.Customer.ID] = struct{}{}
		if o.Customer.LifetimeOrderCount > 1 {
			s.ReturningCustomerOrders++
		} else {
			s.NewCustomerOrders++
		}
	}
	s.UniqueCustomers = len(seen)
	return s
}

// AvgOrderValue is revenue per order, zero for an empty window.
func AvgOrderValue(s entity.OrderSummary) decimal.Decimal {
	if s.OrderCount == 0 {
		return decimal.Zero
	}
	return s.RevenueTotal.Div(decimal.NewFromInt(int64(s.OrderCount))).Round(2)
}
