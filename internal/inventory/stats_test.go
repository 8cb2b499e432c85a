package inventory

import (
	"testing"

	"stockroom/internal/model"

	"github.com/stretchr/testify/assert"
)

func TestComputeDashboardStats(t *testing.T) {
	products := []model.Product{
		{BuyingPrice: 10, SellingPrice: 15, Quantity: 5, Sold: 2, Category: "A", Vendor: "V1"},
		{BuyingPrice: 20, SellingPrice: 18, Quantity: 3, Sold: 0, Category: "B", Vendor: "V1"},
	}

	stats := ComputeDashboardStats(products)

	assert.Equal(t, 2, stats.TotalProducts)
	assert.Equal(t, 8, stats.TotalStockQuantity)
	assert.Equal(t, 110.0, stats.TotalValue)
	assert.Equal(t, 2, stats.TotalSold)
	assert.Equal(t, 10.0, stats.TotalSoldProfit)
	assert.Equal(t, 2, stats.LowStockAlerts)
	assert.Equal(t, 1, stats.TotalVendors)
	assert.Equal(t, map[string]int{"A": 1, "B": 1}, stats.Categories)
}

func TestComputeDashboardStats_CountsProductsNotQuantityPerCategory(t *testing.T) {
	products := []model.Product{
		{Category: "Books", Vendor: "V1", Quantity: 100, BuyingPrice: 1, SellingPrice: 2},
		{Category: "Books", Vendor: "V2", Quantity: 10, BuyingPrice: 1, SellingPrice: 2},
		{Category: "Toys", Vendor: "V3", Quantity: 9, BuyingPrice: 1, SellingPrice: 2},
	}

	stats := ComputeDashboardStats(products)

	assert.Equal(t, map[string]int{"Books": 2, "Toys": 1}, stats.Categories)
	assert.Equal(t, 3, stats.TotalVendors)
	assert.Equal(t, 1, stats.LowStockAlerts, "only quantity strictly below 10 alerts")
}

func TestComputeDashboardStats_Empty(t *testing.T) {
	stats := ComputeDashboardStats(nil)

	assert.Equal(t, 0, stats.TotalProducts)
	assert.Equal(t, 0.0, stats.TotalValue)
	assert.Equal(t, 0.0, stats.TotalSoldProfit)
	assert.NotNil(t, stats.Categories)
	assert.Empty(t, stats.Categories)
}

func TestComputeDashboardStats_ZeroFieldsTolerated(t *testing.T) {
	products := []model.Product{{Name: "Incomplete"}}

	stats := ComputeDashboardStats(products)

	assert.Equal(t, 1, stats.TotalProducts)
	assert.Equal(t, 0, stats.TotalStockQuantity)
	assert.Equal(t, 1, stats.LowStockAlerts)
	assert.Equal(t, 0.0, stats.TotalValue)
}
