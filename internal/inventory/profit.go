package inventory

import "github.com/shopspring/decimal"

var hundred = decimal.NewFromInt(100)

// ProfitPercentage returns (sellingPrice - buyingPrice) / buyingPrice * 100
// rounded to two decimal places. A zero buying price yields 0.
func ProfitPercentage(buyingPrice, sellingPrice float64) float64 {
	if buyingPrice == 0 {
		return 0
	}
	buy := decimal.NewFromFloat(buyingPrice)
	sell := decimal.NewFromFloat(sellingPrice)
	pct, _ := sell.Sub(buy).Div(buy).Mul(hundred).Round(2).Float64()
	return pct
}

// Round2 rounds v half away from zero to two decimal places.
func Round2(v float64) float64 {
	r, _ := decimal.NewFromFloat(v).Round(2).Float64()
	return r
}
