package inventory

import (
	"cmp"
	"slices"
	"strings"

	"stockroom/internal/model"
)

// FilterProducts keeps products whose code, name, vendor or category contains
// term, case-insensitively. An empty term keeps everything.
func FilterProducts(products []model.Product, term string) []model.Product {
	term = strings.ToLower(strings.TrimSpace(term))
	if term == "" {
		return slices.Clone(products)
	}

	out := make([]model.Product, 0, len(products))
	for _, p := range products {
		if strings.Contains(strings.ToLower(p.ProductCode), term) ||
			strings.Contains(strings.ToLower(p.Name), term) ||
			strings.Contains(strings.ToLower(p.Vendor), term) ||
			strings.Contains(strings.ToLower(p.Category), term) {
			out = append(out, p)
		}
	}
	return out
}

var productComparators = map[string]func(a, b model.Product) int{
	"name":             func(a, b model.Product) int { return cmp.Compare(strings.ToLower(a.Name), strings.ToLower(b.Name)) },
	"productCode":      func(a, b model.Product) int { return cmp.Compare(a.ProductCode, b.ProductCode) },
	"category":         func(a, b model.Product) int { return cmp.Compare(a.Category, b.Category) },
	"vendor":           func(a, b model.Product) int { return cmp.Compare(a.Vendor, b.Vendor) },
	"buyingPrice":      func(a, b model.Product) int { return cmp.Compare(a.BuyingPrice, b.BuyingPrice) },
	"sellingPrice":     func(a, b model.Product) int { return cmp.Compare(a.SellingPrice, b.SellingPrice) },
	"price":            func(a, b model.Product) int { return cmp.Compare(a.SellingPrice, b.SellingPrice) },
	"quantity":         func(a, b model.Product) int { return cmp.Compare(a.Quantity, b.Quantity) },
	"sold":             func(a, b model.Product) int { return cmp.Compare(a.Sold, b.Sold) },
	"profitPercentage": func(a, b model.Product) int { return cmp.Compare(a.ProfitPercentage, b.ProfitPercentage) },
	"createdAt":        func(a, b model.Product) int { return a.CreatedAt.Compare(b.CreatedAt) },
}

// SortProducts stably sorts products in place by field. Unknown fields leave
// the order untouched.
func SortProducts(products []model.Product, field, order string) {
	compare, ok := productComparators[field]
	if !ok {
		return
	}
	if strings.EqualFold(order, "desc") {
		slices.SortStableFunc(products, func(a, b model.Product) int { return compare(b, a) })
		return
	}
	slices.SortStableFunc(products, compare)
}

// ApplyQuery filters then sorts a copy of products.
func ApplyQuery(products []model.Product, q model.ProductQuery) []model.Product {
	out := FilterProducts(products, q.Search)
	SortProducts(out, q.SortBy, q.SortOrder)
	return out
}
