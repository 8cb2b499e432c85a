package inventory

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"
	"time"

	"stockroom/internal/model"
)

// Import column names. The header row must contain all of RequiredColumns.
const (
	ColProductCode    = "Product Code"
	ColProductName    = "Product Name"
	ColCategory       = "Category"
	ColVendor         = "Vendor"
	ColBuyingPrice    = "Buying Price"
	ColSellingPrice   = "Selling Price"
	ColProfitPercent  = "Profit %"
	ColQuantity       = "Quantity"
	ColSold           = "Sold"
	ColAvailableStock = "Available Stock"
	ColImageURL       = "Image URL"
	ColCreatedDate    = "Created Date"
	ColLastUpdated    = "Last Updated"
)

// RequiredColumns lists the import header in canonical order.
var RequiredColumns = []string{
	ColProductCode, ColProductName, ColCategory, ColVendor,
	ColBuyingPrice, ColSellingPrice, ColProfitPercent, ColQuantity,
	ColSold, ColAvailableStock, ColImageURL,
}

// Bounds for a supplied Profit % cell.
const (
	MinProfitPercent = -100
	MaxProfitPercent = 1000
)

// notAvailable is the placeholder the exporter writes for empty text values.
const notAvailable = "N/A"

const byteOrderMark = "\uFEFF"

// "Buying Price (₹)" and similar currency-suffixed headers map to their bare name.
var headerSuffix = regexp.MustCompile(`\s*\([^)]*\)\s*$`)

// Importer turns CSV text into validated products.
type Importer struct {
	// NewID assigns identifiers to imported products.
	NewID func() string
	// Now stamps CreatedAt.
	Now func() time.Time
}

// Import parses data and validates each row independently. Rows that fail
// validation are reported in ImportResult.Errors and left out; rows with fewer
// cells than the header are skipped and counted in SkippedCount.
//
// It fails with MALFORMED_INPUT when there is no header plus data row,
// SCHEMA_MISMATCH when required columns are absent, and NO_VALID_ROWS
// (Details holding the row errors) when nothing could be imported.
func (im *Importer) Import(data []byte, ref *Reference) (*model.ImportResult, error) {
	records, err := readRecords(data)
	if err != nil {
		return nil, &model.DomainError{
			Code:    model.ErrCodeMalformedInput,
			Message: "CSV file could not be parsed",
			Err:     err,
		}
	}
	if len(records) < 2 {
		return nil, model.NewDomainError(model.ErrCodeMalformedInput,
			"CSV file must have at least a header row and one data row")
	}

	header := make([]string, len(records[0]))
	for i, h := range records[0] {
		header[i] = normaliseHeader(h)
	}
	index := make(map[string]int, len(header))
	for i, h := range header {
		if _, seen := index[h]; !seen {
			index[h] = i
		}
	}

	var missing []string
	for _, col := range RequiredColumns {
		if _, ok := index[col]; !ok {
			missing = append(missing, col)
		}
	}
	if len(missing) > 0 {
		return nil, &model.DomainError{
			Code:    model.ErrCodeSchemaMismatch,
			Message: "Missing required headers: " + strings.Join(missing, ", "),
			Details: missing,
		}
	}

	result := &model.ImportResult{}
	now := im.Now()
	for i, rec := range records[1:] {
		rowNum := i + 1
		if len(rec) < len(header) {
			result.SkippedCount++
			continue
		}

		product, rowErr := im.buildProduct(rec, index, ref, now)
		if rowErr != "" {
			result.Errors = append(result.Errors, fmt.Sprintf("Row %d: %s", rowNum, rowErr))
			continue
		}
		result.Products = append(result.Products, product)
	}

	if len(result.Products) == 0 {
		return nil, &model.DomainError{
			Code:    model.ErrCodeNoValidRows,
			Message: "No products were uploaded. Please check your CSV format.",
			Details: result.Errors,
		}
	}
	result.ImportedCount = len(result.Products)
	return result, nil
}

func (im *Importer) buildProduct(rec []string, index map[string]int, ref *Reference, now time.Time) (model.Product, string) {
	cell := func(col string) string {
		return strings.TrimSpace(rec[index[col]])
	}

	code := optionalText(cell(ColProductCode))
	in := model.ProductInput{
		ProductCode:  &code,
		Name:         cell(ColProductName),
		Category:     cell(ColCategory),
		Vendor:       cell(ColVendor),
		BuyingPrice:  cell(ColBuyingPrice),
		SellingPrice: cell(ColSellingPrice),
		Quantity:     defaultZero(cell(ColQuantity)),
		Sold:         defaultZero(cell(ColSold)),
	}

	fields, errs := ValidateProduct(in, ref)
	if len(errs) > 0 {
		return model.Product{}, formatFieldErrors(errs)
	}

	if raw := strings.TrimSuffix(cell(ColProfitPercent), "%"); raw != "" {
		pct, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
		if err != nil {
			return model.Product{}, fmt.Sprintf("Profit %% %q is not a number", raw)
		}
		if pct < MinProfitPercent || pct > MaxProfitPercent {
			return model.Product{}, "Profit percentage should be between -100% and 1000%"
		}
	}

	p := model.Product{
		ID:               im.NewID(),
		ProductCode:      fields.ProductCode,
		Name:             fields.Name,
		Category:         fields.Category,
		Vendor:           fields.Vendor,
		BuyingPrice:      fields.BuyingPrice,
		SellingPrice:     fields.SellingPrice,
		Quantity:         fields.Quantity,
		Sold:             fields.Sold,
		ProfitPercentage: ProfitPercentage(fields.BuyingPrice, fields.SellingPrice),
		CreatedAt:        now,
	}
	if img := optionalText(cell(ColImageURL)); img != "" {
		p.Image = &img
	}
	return p, ""
}

// readRecords returns the non-blank CSV records in data.
func readRecords(data []byte) ([][]string, error) {
	data = bytes.TrimPrefix(data, []byte(byteOrderMark))

	r := csv.NewReader(bytes.NewReader(data))
	r.FieldsPerRecord = -1
	r.LazyQuotes = true
	r.TrimLeadingSpace = true

	var records [][]string
	for {
		rec, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}
		if isBlank(rec) {
			continue
		}
		records = append(records, rec)
	}
	return records, nil
}

func isBlank(rec []string) bool {
	for _, c := range rec {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}

func normaliseHeader(h string) string {
	h = strings.TrimSpace(strings.TrimPrefix(h, byteOrderMark))
	h = strings.Trim(h, `"`)
	return headerSuffix.ReplaceAllString(h, "")
}

func optionalText(v string) string {
	if strings.EqualFold(v, notAvailable) {
		return ""
	}
	return v
}

func defaultZero(v string) string {
	if v == "" {
		return "0"
	}
	return v
}
