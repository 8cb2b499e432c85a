package inventory

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"stockroom/internal/model"
)

// NameSet is an ordered list of unique, case-sensitive names.
type NameSet []string

// Contains reports whether name is present (exact match).
func (s NameSet) Contains(name string) bool {
	for _, n := range s {
		if n == name {
			return true
		}
	}
	return false
}

// Reference is the set of categories and vendors products may point at.
type Reference struct {
	Categories NameSet
	Vendors    NameSet
}

// productFieldOrder fixes the order in which field errors are reported.
var productFieldOrder = []string{
	"name", "category", "vendor", "buyingPrice", "sellingPrice", "quantity", "sold",
}

// ValidateProduct trims and parses in. When ref is nil the category and vendor
// are only checked for presence. An empty Sold defaults to 0.
func ValidateProduct(in model.ProductInput, ref *Reference) (model.ProductFields, model.FieldErrors) {
	errs := model.FieldErrors{}
	out := model.ProductFields{
		Name:     strings.TrimSpace(in.Name),
		Category: strings.TrimSpace(in.Category),
		Vendor:   strings.TrimSpace(in.Vendor),
	}
	if in.ProductCode != nil {
		out.ProductCode = strings.TrimSpace(*in.ProductCode)
	}

	if out.Name == "" {
		errs.Add("name", "Name is required")
	}
	if out.Category == "" {
		errs.Add("category", "Category is required")
	} else if ref != nil && !ref.Categories.Contains(out.Category) {
		errs.Add("category", fmt.Sprintf("Unknown category %q", out.Category))
	}
	if out.Vendor == "" {
		errs.Add("vendor", "Vendor is required")
	} else if ref != nil && !ref.Vendors.Contains(out.Vendor) {
		errs.Add("vendor", fmt.Sprintf("Unknown vendor %q", out.Vendor))
	}

	if v, ok := parsePrice(in.BuyingPrice, "Buying price", "buyingPrice", errs); ok {
		out.BuyingPrice = v
	}
	if v, ok := parsePrice(in.SellingPrice, "Selling price", "sellingPrice", errs); ok {
		out.SellingPrice = v
	}

	if strings.TrimSpace(in.Quantity) == "" {
		errs.Add("quantity", "Quantity is required")
	} else if v, ok := parseCount(in.Quantity, "Quantity", "quantity", errs); ok {
		out.Quantity = v
	}

	if strings.TrimSpace(in.Sold) != "" {
		if v, ok := parseCount(in.Sold, "Sold quantity", "sold", errs); ok {
			out.Sold = v
		}
	}

	return out, errs
}

func parsePrice(raw, label, field string, errs model.FieldErrors) (float64, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		errs.Add(field, label+" is required")
		return 0, false
	}
	v, err := parseNumber(raw)
	if err != nil {
		errs.Add(field, fmt.Sprintf("%s %q is not a number", label, raw))
		return 0, false
	}
	if v <= 0 {
		errs.Add(field, label+" must be greater than 0")
		return 0, false
	}
	return v, true
}

func parseCount(raw, label, field string, errs model.FieldErrors) (int, bool) {
	raw = strings.TrimSpace(raw)
	n, err := strconv.ParseInt(raw, 10, 64)
	if errors.Is(err, strconv.ErrRange) {
		errs.Add(field, label+" is too large")
		return 0, false
	}
	if err != nil {
		// "5.0" and "1e3" are accepted as long as they are whole.
		v, ferr := parseNumber(raw)
		if ferr != nil || v != math.Trunc(v) {
			errs.Add(field, fmt.Sprintf("%s %q is not a whole number", label, raw))
			return 0, false
		}
		if math.Abs(v) > math.MaxInt32 {
			errs.Add(field, label+" is too large")
			return 0, false
		}
		n = int64(v)
	}
	if n < 0 {
		errs.Add(field, label+" cannot be negative")
		return 0, false
	}
	if n > math.MaxInt {
		errs.Add(field, label+" is too large")
		return 0, false
	}
	return int(n), true
}

func parseNumber(raw string) (float64, error) {
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, err
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("non-finite number %q", raw)
	}
	return v, nil
}

// formatFieldErrors joins field messages in a stable order.
func formatFieldErrors(errs model.FieldErrors) string {
	msgs := make([]string, 0, len(errs))
	for _, f := range productFieldOrder {
		if m, ok := errs[f]; ok {
			msgs = append(msgs, m)
		}
	}
	return strings.Join(msgs, "; ")
}

// ValidateNewName checks a category or vendor name before it is added.
// It returns the trimmed name.
func ValidateNewName(kind, name string, existing NameSet) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", model.NewValidationError("name", kind+" name is required")
	}
	if existing.Contains(name) {
		return "", model.NewConflictError(kind + " already exists")
	}
	return name, nil
}

// Field selects the product attribute a category or vendor name is matched against.
type Field int

const (
	CategoryField Field = iota
	VendorField
)

// CheckRemovable fails with a conflict when any product still references name.
func CheckRemovable(kind string, field Field, name string, products []model.Product) error {
	for _, p := range products {
		ref := p.Category
		if field == VendorField {
			ref = p.Vendor
		}
		if ref == name {
			return model.NewConflictError(fmt.Sprintf("Cannot delete %s that is used by products", strings.ToLower(kind)))
		}
	}
	return nil
}

// ValidateCustomer trims req in place and reports missing fields.
// Blank product codes are dropped before the non-empty check.
func ValidateCustomer(req *model.CustomerRequest) model.FieldErrors {
	errs := model.FieldErrors{}

	req.Name = strings.TrimSpace(req.Name)
	req.Address = strings.TrimSpace(req.Address)
	req.MobileNumber = strings.TrimSpace(req.MobileNumber)
	req.Date = strings.TrimSpace(req.Date)
	req.Time = strings.TrimSpace(req.Time)

	codes := make([]string, 0, len(req.ProductCodes))
	for _, c := range req.ProductCodes {
		if c = strings.TrimSpace(c); c != "" {
			codes = append(codes, c)
		}
	}
	req.ProductCodes = codes

	if req.Name == "" {
		errs.Add("name", "Customer name is required")
	}
	if req.Address == "" {
		errs.Add("address", "Address is required")
	}
	if req.MobileNumber == "" {
		errs.Add("mobileNumber", "Mobile number is required")
	}
	if len(req.ProductCodes) == 0 {
		errs.Add("productCodes", "At least one product is required")
	}
	if req.Date == "" {
		errs.Add("date", "Date is required")
	}
	if req.Time == "" {
		errs.Add("time", "Time is required")
	}
	return errs
}
