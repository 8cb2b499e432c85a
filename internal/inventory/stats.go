package inventory

import (
	"stockroom/internal/model"

	"github.com/shopspring/decimal"
)

// LowStockThreshold is the quantity below which a product raises a low stock alert.
const LowStockThreshold = 10

// totals are the money aggregates shared by the dashboard and the summary export.
type totals struct {
	value  decimal.Decimal // sum(buyingPrice * quantity)
	profit decimal.Decimal // sum((sellingPrice - buyingPrice) * sold)
	sold   int
}

func computeTotals(products []model.Product) totals {
	t := totals{value: decimal.Zero, profit: decimal.Zero}
	for _, p := range products {
		buy := decimal.NewFromFloat(p.BuyingPrice)
		sell := decimal.NewFromFloat(p.SellingPrice)
		t.value = t.value.Add(buy.Mul(decimal.NewFromInt(int64(p.Quantity))))
		t.profit = t.profit.Add(sell.Sub(buy).Mul(decimal.NewFromInt(int64(p.Sold))))
		t.sold += p.Sold
	}
	return t
}

// ComputeDashboardStats aggregates the given products.
func ComputeDashboardStats(products []model.Product) model.DashboardStats {
	stats := model.DashboardStats{
		TotalProducts: len(products),
		Categories:    make(map[string]int),
	}

	vendors := make(map[string]struct{})
	for _, p := range products {
		stats.TotalStockQuantity += p.Quantity
		if p.Quantity < LowStockThreshold {
			stats.LowStockAlerts++
		}
		vendors[p.Vendor] = struct{}{}
		stats.Categories[p.Category]++
	}
	stats.TotalVendors = len(vendors)

	t := computeTotals(products)
	stats.TotalValue, _ = t.value.Float64()
	stats.TotalSoldProfit, _ = t.profit.Float64()
	stats.TotalSold = t.sold

	return stats
}
