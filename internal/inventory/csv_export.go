package inventory

import (
	"fmt"
	"io"
	"strconv"
	"time"

	"stockroom/internal/model"

	"github.com/gocarina/gocsv"
)

// Display layouts matching the en-IN locale used by the original spreadsheets.
const (
	exportDateLayout = "2/1/2006"
	exportTimeLayout = "3:04:05 pm"
)

// detailRow is one line of the product detail export.
type detailRow struct {
	ProductCode    string `csv:"Product Code"`
	Name           string `csv:"Product Name"`
	Category       string `csv:"Category"`
	Vendor         string `csv:"Vendor"`
	BuyingPrice    string `csv:"Buying Price"`
	SellingPrice   string `csv:"Selling Price"`
	ProfitPercent  string `csv:"Profit %"`
	Quantity       int    `csv:"Quantity"`
	Sold           int    `csv:"Sold"`
	AvailableStock int    `csv:"Available Stock"`
	CreatedDate    string `csv:"Created Date"`
	LastUpdated    string `csv:"Last Updated"`
	ImageURL       string `csv:"Image URL"`
}

// summaryRow is one metric of the summary export.
type summaryRow struct {
	Metric  string `csv:"Metric"`
	Value   string `csv:"Value"`
	Details string `csv:"Details"`
}

func toDetailRows(products []model.Product, loc *time.Location) []detailRow {
	rows := make([]detailRow, 0, len(products))
	for _, p := range products {
		row := detailRow{
			ProductCode:    textOrNA(p.ProductCode),
			Name:           textOrNA(p.Name),
			Category:       textOrNA(p.Category),
			Vendor:         textOrNA(p.Vendor),
			BuyingPrice:    formatAmount(p.BuyingPrice),
			SellingPrice:   formatAmount(p.SellingPrice),
			ProfitPercent:  strconv.FormatFloat(p.ProfitPercentage, 'f', 2, 64),
			Quantity:       p.Quantity,
			Sold:           p.Sold,
			AvailableStock: p.AvailableStock(),
			CreatedDate:    notAvailable,
			LastUpdated:    notAvailable,
			ImageURL:       textOrNA(p.ImageRef()),
		}
		if !p.CreatedAt.IsZero() {
			row.CreatedDate = p.CreatedAt.In(loc).Format(exportDateLayout)
		}
		if p.UpdatedAt != nil && !p.UpdatedAt.IsZero() {
			row.LastUpdated = p.UpdatedAt.In(loc).Format(exportDateLayout)
		}
		rows = append(rows, row)
	}
	return rows
}

// writeBOM prefixes output so spreadsheet tools pick UTF-8.
func writeBOM(w io.Writer) error {
	_, err := io.WriteString(w, byteOrderMark)
	return err
}

// ExportProducts writes one CSV row per product. Text fields are quoted
// whenever they contain a separator or quote. The output re-imports cleanly.
func ExportProducts(w io.Writer, products []model.Product, loc *time.Location) error {
	if loc == nil {
		loc = time.Local
	}
	if err := writeBOM(w); err != nil {
		return fmt.Errorf("failed to write byte order mark: %w", err)
	}
	rows := toDetailRows(products, loc)
	if err := gocsv.Marshal(rows, w); err != nil {
		return fmt.Errorf("failed to write product export: %w", err)
	}
	return nil
}

// Summary is the inventory summary computed for an export.
type Summary struct {
	TotalProducts int
	TotalValue    float64
	TotalSold     int
	TotalProfit   float64
	AverageProfit float64 // percent of TotalValue; 0 when TotalValue is 0
	ExportedAt    time.Time
}

// Summarise computes the summary export figures.
func Summarise(products []model.Product, now time.Time) Summary {
	t := computeTotals(products)
	s := Summary{
		TotalProducts: len(products),
		TotalSold:     t.sold,
		ExportedAt:    now,
	}
	s.TotalValue, _ = t.value.Round(2).Float64()
	s.TotalProfit, _ = t.profit.Round(2).Float64()
	if !t.value.IsZero() {
		s.AverageProfit, _ = t.profit.Div(t.value).Mul(hundred).Round(2).Float64()
	}
	return s
}

// ExportSummary writes the seven-row summary of products as CSV.
func ExportSummary(w io.Writer, products []model.Product, now time.Time) error {
	s := Summarise(products, now)
	rows := []summaryRow{
		{"Total Products", strconv.Itoa(s.TotalProducts), "Number of products in inventory"},
		{"Total Inventory Value", strconv.FormatFloat(s.TotalValue, 'f', 2, 64), "Total value of all products at buying price"},
		{"Total Units Sold", strconv.Itoa(s.TotalSold), "Total units sold across all products"},
		{"Total Profit", strconv.FormatFloat(s.TotalProfit, 'f', 2, 64), "Total profit from sold units"},
		{"Average Profit %", strconv.FormatFloat(s.AverageProfit, 'f', 2, 64) + "%", "Average profit percentage"},
		{"Export Date", now.Format(exportDateLayout), "Date when this summary was exported"},
		{"Export Time", now.Format(exportTimeLayout), "Time when this summary was exported"},
	}

	if err := writeBOM(w); err != nil {
		return fmt.Errorf("failed to write byte order mark: %w", err)
	}
	if err := gocsv.Marshal(rows, w); err != nil {
		return fmt.Errorf("failed to write summary export: %w", err)
	}
	return nil
}

func textOrNA(s string) string {
	if s == "" {
		return notAvailable
	}
	return s
}

func formatAmount(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
