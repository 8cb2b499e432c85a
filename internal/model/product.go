package model

import "time"

// Product represents a stocked item in the inventory.
type Product struct {
	ID               string     `json:"id"`
	ProductCode      string     `json:"productCode"`
	Name             string     `json:"name"`
	Category         string     `json:"category"`
	Vendor           string     `json:"vendor"`
	BuyingPrice      float64    `json:"buyingPrice"`
	SellingPrice     float64    `json:"sellingPrice"`
	Quantity         int        `json:"quantity"`
	Sold             int        `json:"sold"`
	Image            *string    `json:"image"`
	ProfitPercentage float64    `json:"profitPercentage"`
	CreatedAt        time.Time  `json:"createdAt"`
	UpdatedAt        *time.Time `json:"updatedAt,omitempty"`
}

// AvailableStock returns quantity minus units sold. It may be negative.
func (p Product) AvailableStock() int {
	return p.Quantity - p.Sold
}

// ImageRef returns the image reference or an empty string.
func (p Product) ImageRef() string {
	if p.Image == nil {
		return ""
	}
	return *p.Image
}

// ProductInput carries unparsed product fields from a form, JSON body or CSV row.
// Numeric fields are kept as text so that parsing happens at the validation boundary.
type ProductInput struct {
	ProductCode  *string
	Name         string
	Category     string
	Vendor       string
	BuyingPrice  string
	SellingPrice string
	Quantity     string
	Sold         string
	ImageURL     *string
}

// ProductFields holds validated and parsed product fields.
type ProductFields struct {
	ProductCode  string
	Name         string
	Category     string
	Vendor       string
	BuyingPrice  float64
	SellingPrice float64
	Quantity     int
	Sold         int
}

// ProductQuery filters and orders a product listing.
type ProductQuery struct {
	Search    string
	SortBy    string
	SortOrder string // "asc" or "desc"
}

// DashboardStats holds inventory-wide aggregates.
type DashboardStats struct {
	TotalProducts      int            `json:"totalProducts"`
	TotalStockQuantity int            `json:"totalStockQuantity"`
	TotalVendors       int            `json:"totalVendors"`
	LowStockAlerts     int            `json:"lowStockAlerts"`
	TotalValue         float64        `json:"totalValue"`
	TotalSold          int            `json:"totalSold"`
	TotalSoldProfit    float64        `json:"totalSoldProfit"`
	Categories         map[string]int `json:"categories"`
}

// ImportResult reports the outcome of a CSV import.
type ImportResult struct {
	ImportedCount int       `json:"uploadedCount"`
	SkippedCount  int       `json:"skippedCount,omitempty"`
	Errors        []string  `json:"errors,omitempty"`
	Products      []Product `json:"-"`
}
