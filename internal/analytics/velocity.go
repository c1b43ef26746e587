package analytics

import (
	"sort"

	"github.com/guckert-dev/shopify-mcp/internal/entity"
	"github.com/shopspring/decimal"
)

// RankProducts aggregates line items across a window's orders into
// per-product stats and flags restock and promotion candidates. inventory
// maps product id to units on hand; missing or non-positive entries mean the
// inventory is untracked, in which case velocity degrades to raw units sold
// (untracked stock is treated as effectively infinite - the product still
// ranks by demand and nothing divides by zero).
//
// Thresholds come from bm and are fixed policy; callers that need different
// cutoffs must post-filter.
func RankProducts(orders []entity.OrderRecord, inventory map[string]int, bm Benchmarks) *entity.ProductPerformanceResult {
	byProduct := make(map[string]*entity.ProductStat)
	for _, o := range orders {
		counted := make(map[string]bool, len(o.LineItems))
		for _, li := range o.LineItems {
			if li.ProductID == "" {
				continue
			}
			st, ok := byProduct[li.ProductID]
			if !ok {
				st = &entity.ProductStat{
					ProductID: li.ProductID,
					Title:     li.Title,
					Revenue:   decimal.Zero,
				}
				byProduct[li.ProductID] = st
			}
			st.UnitsSold += li.Quantity
			st.Revenue = st.Revenue.Add(li.UnitTotal.Mul(decimal.NewFromInt(int64(li.Quantity))))
			if !counted[li.ProductID] {
				st.OrderCount++
				counted[li.ProductID] = true
			}
		}
	}

	res := &entity.ProductPerformanceResult{}
	for id, st := range byProduct {
		st.InventoryOnHand = inventory[id]
		st.Velocity = velocity(st.UnitsSold, st.InventoryOnHand)
		res.Products = append(res.Products, *st)
	}
	sort.Slice(res.Products, func(i, j int) bool {
		if !res.Products[i].Revenue.Equal(res.Products[j].Revenue) {
			return res.Products[i].Revenue.GreaterThan(res.Products[j].Revenue)
		}
		return res.Products[i].ProductID < res.Products[j].ProductID
	})

	for _, st := range res.Products {
		if st.InventoryOnHand > 0 && st.InventoryOnHand < bm.RestockInventoryBelow && st.Velocity > bm.RestockVelocityAbove {
			res.RestockCandidates = append(res.RestockCandidates, st)
		}
		if st.InventoryOnHand > bm.PromoInventoryAbove && st.Velocity < bm.PromoVelocityBelow {
			res.PromotionCandidates = append(res.PromotionCandidates, st)
		}
	}
	return res
}

func velocity(unitsSold, inventoryOnHand int) float64 {
	if inventoryOnHand > 0 {
		return float64(unitsSold) / float64(inventoryOnHand)
	}
	return float64(unitsSold)
}
