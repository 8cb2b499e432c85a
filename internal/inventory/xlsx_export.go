package inventory

import (
	"fmt"
	"io"
	"strconv"
	"time"

	"stockroom/internal/model"

	"github.com/360EntSecGroup-Skylar/excelize"
)

const xlsxSheet = "Sheet1"

var xlsxHeader = []string{
	ColProductCode, ColProductName, ColCategory, ColVendor,
	ColBuyingPrice, ColSellingPrice, ColProfitPercent, ColQuantity,
	ColSold, ColAvailableStock, ColCreatedDate, ColLastUpdated, ColImageURL,
}

// ExportProductsXLSX writes the detail export as an Excel workbook. Numeric
// columns are stored as numbers rather than text.
func ExportProductsXLSX(w io.Writer, products []model.Product, loc *time.Location) error {
	if loc == nil {
		loc = time.Local
	}

	f := excelize.NewFile()
	for col, name := range xlsxHeader {
		f.SetCellValue(xlsxSheet, cellName(col, 1), name)
	}

	for i, row := range toDetailRows(products, loc) {
		p := products[i]
		values := []interface{}{
			row.ProductCode,
			row.Name,
			row.Category,
			row.Vendor,
			p.BuyingPrice,
			p.SellingPrice,
			p.ProfitPercentage,
			row.Quantity,
			row.Sold,
			row.AvailableStock,
			row.CreatedDate,
			row.LastUpdated,
			row.ImageURL,
		}
		for col, v := range values {
			f.SetCellValue(xlsxSheet, cellName(col, i+2), v)
		}
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}

// cellName converts a zero-based column and one-based row to an A1 reference.
func cellName(col, row int) string {
	name := ""
	for n := col + 1; n > 0; n = (n - 1) / 26 {
		name = string(rune('A'+(n-1)%26)) + name
	}
	return name + strconv.Itoa(row)
}
