package inventory

import (
	"testing"
	"time"

	"stockroom/internal/model"

	"github.com/stretchr/testify/assert"
)

func queryFixture() []model.Product {
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	return []model.Product{
		{ID: "1", ProductCode: "EL-100", Name: "laptop", Category: "Electronics", Vendor: "Amazon", SellingPrice: 900, Quantity: 5, CreatedAt: base},
		{ID: "2", ProductCode: "BK-200", Name: "Atlas", Category: "Books", Vendor: "Target", SellingPrice: 30, Quantity: 40, CreatedAt: base.Add(time.Hour)},
		{ID: "3", ProductCode: "TY-300", Name: "Kite", Category: "Toys", Vendor: "Amazon", SellingPrice: 30, Quantity: 12, CreatedAt: base.Add(2 * time.Hour)},
	}
}

func ids(products []model.Product) []string {
	out := make([]string, len(products))
	for i, p := range products {
		out[i] = p.ID
	}
	return out
}

func TestFilterProducts(t *testing.T) {
	tests := []struct {
		name     string
		term     string
		expected []string
	}{
		{name: "Empty term keeps all", term: "  ", expected: []string{"1", "2", "3"}},
		{name: "Matches vendor case insensitively", term: "amazon", expected: []string{"1", "3"}},
		{name: "Matches product code", term: "bk-2", expected: []string{"2"}},
		{name: "Matches category", term: "TOYS", expected: []string{"3"}},
		{name: "Matches name", term: "lap", expected: []string{"1"}},
		{name: "No match", term: "garden", expected: []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ids(FilterProducts(queryFixture(), tt.term)))
		})
	}
}

func TestFilterProducts_DoesNotAliasInput(t *testing.T) {
	products := queryFixture()
	out := FilterProducts(products, "")
	out[0].Name = "changed"

	assert.Equal(t, "laptop", products[0].Name)
}

func TestSortProducts(t *testing.T) {
	tests := []struct {
		name     string
		field    string
		order    string
		expected []string
	}{
		{name: "Name ascending ignores case", field: "name", order: "asc", expected: []string{"2", "3", "1"}},
		{name: "Name descending", field: "name", order: "desc", expected: []string{"1", "3", "2"}},
		{name: "Price ties keep input order", field: "price", order: "asc", expected: []string{"2", "3", "1"}},
		{name: "Price descending keeps ties stable", field: "sellingPrice", order: "DESC", expected: []string{"1", "2", "3"}},
		{name: "Quantity", field: "quantity", order: "", expected: []string{"1", "3", "2"}},
		{name: "Created at descending", field: "createdAt", order: "desc", expected: []string{"3", "2", "1"}},
		{name: "Unknown field is a no-op", field: "colour", order: "desc", expected: []string{"1", "2", "3"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			products := queryFixture()
			SortProducts(products, tt.field, tt.order)
			assert.Equal(t, tt.expected, ids(products))
		})
	}
}

func TestApplyQuery(t *testing.T) {
	products := queryFixture()

	out := ApplyQuery(products, model.ProductQuery{Search: "amazon", SortBy: "quantity", SortOrder: "desc"})

	assert.Equal(t, []string{"3", "1"}, ids(out))
	assert.Equal(t, []string{"1", "2", "3"}, ids(products), "input order is untouched")
}
