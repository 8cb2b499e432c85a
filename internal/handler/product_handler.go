package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime"
	"net/http"
	"strconv"
	"strings"
	"time"

	"stockroom/internal/model"
	"stockroom/internal/service"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
)

// Form and JSON keys read into a ProductInput.
const (
	fieldProductCode  = "productCode"
	fieldName         = "name"
	fieldCategory     = "category"
	fieldVendor       = "vendor"
	fieldBuyingPrice  = "buyingPrice"
	fieldSellingPrice = "sellingPrice"
	fieldQuantity     = "quantity"
	fieldSold         = "sold"
	fieldImageURL     = "imageUrl"
)

const (
	contentTypeCSV  = "text/csv; charset=utf-8"
	contentTypeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

// ProductHandler handles product-related HTTP requests.
type ProductHandler struct {
	service      service.ProductService
	maxBodyBytes int64
	now          func() time.Time
	logger       zerolog.Logger
}

// NewProductHandler creates a new product handler. maxBodyBytes caps
// multipart bodies.
func NewProductHandler(service service.ProductService, maxBodyBytes int64, logger zerolog.Logger) *ProductHandler {
	return &ProductHandler{
		service:      service,
		maxBodyBytes: maxBodyBytes,
		now:          time.Now,
		logger:       logger.With().Str("handler", "product").Logger(),
	}
}

// List handles GET /api/products and GET /api/products/search requests.
func (h *ProductHandler) List(w http.ResponseWriter, r *http.Request) {
	products, err := h.service.List(r.Context(), queryFrom(r))
	if err != nil {
		writeDomainError(w, err, h.logger)
		return
	}
	if products == nil {
		products = []model.Product{}
	}
	writeJSON(w, http.StatusOK, products)
}

// GetByID handles GET /api/products/{id} requests.
func (h *ProductHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	product, err := h.service.GetByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeDomainError(w, err, h.logger)
		return
	}
	writeJSON(w, http.StatusOK, product)
}

// Create handles POST /api/products requests.
func (h *ProductHandler) Create(w http.ResponseWriter, r *http.Request) {
	in, img, err := h.readProduct(w, r)
	if err != nil {
		writeDomainError(w, err, h.logger)
		return
	}

	product, err := h.service.Create(r.Context(), in, img)
	if err != nil {
		writeDomainError(w, err, h.logger)
		return
	}
	writeJSON(w, http.StatusCreated, product)
}

// Update handles PUT /api/products/{id} requests.
func (h *ProductHandler) Update(w http.ResponseWriter, r *http.Request) {
	in, img, err := h.readProduct(w, r)
	if err != nil {
		writeDomainError(w, err, h.logger)
		return
	}

	product, err := h.service.Update(r.Context(), chi.URLParam(r, "id"), in, img)
	if err != nil {
		writeDomainError(w, err, h.logger)
		return
	}
	writeJSON(w, http.StatusOK, product)
}

// Delete handles DELETE /api/products/{id} requests.
func (h *ProductHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.service.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeDomainError(w, err, h.logger)
		return
	}
	writeJSON(w, http.StatusOK, successResponse{Success: true})
}

// BulkCreate handles POST /api/products/bulk requests. The body is either a
// JSON array of products or an object with a "products" array.
func (h *ProductHandler) BulkCreate(w http.ResponseWriter, r *http.Request) {
	var raw json.RawMessage
	if err := decodeJSON(r, &raw); err != nil {
		writeDomainError(w, err, h.logger)
		return
	}

	items, err := bulkItems(raw)
	if err != nil {
		writeDomainError(w, err, h.logger)
		return
	}

	inputs := make([]model.ProductInput, 0, len(items))
	for _, item := range items {
		inputs = append(inputs, inputFromMap(item))
	}

	result, err := h.service.BulkCreate(r.Context(), inputs)
	if err != nil {
		writeDomainError(w, err, h.logger)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

type importResponse struct {
	Success bool `json:"success"`
	*model.ImportResult
}

// Import handles POST /api/products/bulk-upload requests.
func (h *ProductHandler) Import(w http.ResponseWriter, r *http.Request) {
	if err := parseMultipart(w, r, h.maxBodyBytes); err != nil {
		writeDomainError(w, err, h.logger)
		return
	}

	file, err := readUpload(r, "csvFile")
	if err != nil {
		writeDomainError(w, err, h.logger)
		return
	}
	if file == nil {
		writeDomainError(w, model.NewDomainError(model.ErrCodeInvalidUpload, "No CSV file uploaded"), h.logger)
		return
	}

	result, err := h.service.Import(r.Context(), *file)
	if err != nil {
		writeDomainError(w, err, h.logger)
		return
	}
	writeJSON(w, http.StatusOK, importResponse{Success: true, ImportResult: result})
}

// DashboardStats handles GET /api/dashboard/stats requests.
func (h *ProductHandler) DashboardStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.service.DashboardStats(r.Context())
	if err != nil {
		writeDomainError(w, err, h.logger)
		return
	}
	writeJSON(w, http.StatusOK, stats)
}

// ExportCSV handles GET /api/products/export requests.
func (h *ProductHandler) ExportCSV(w http.ResponseWriter, r *http.Request) {
	h.export(w, r, h.service.ExportCSV, contentTypeCSV, "inventory-export-%s.csv")
}

// ExportSummary handles GET /api/products/export/summary requests.
func (h *ProductHandler) ExportSummary(w http.ResponseWriter, r *http.Request) {
	h.export(w, r, h.service.ExportSummary, contentTypeCSV, "inventory-summary-%s.csv")
}

// ExportXLSX handles GET /api/products/export.xlsx requests.
func (h *ProductHandler) ExportXLSX(w http.ResponseWriter, r *http.Request) {
	h.export(w, r, h.service.ExportXLSX, contentTypeXLSX, "inventory-export-%s.xlsx")
}

type exportFunc func(ctx context.Context, w io.Writer, q model.ProductQuery) error

// export renders into a buffer first so a failure still yields a JSON error.
func (h *ProductHandler) export(w http.ResponseWriter, r *http.Request, render exportFunc, contentType, nameFormat string) {
	var buf bytes.Buffer
	if err := render(r.Context(), &buf, queryFrom(r)); err != nil {
		writeDomainError(w, err, h.logger)
		return
	}

	filename := fmt.Sprintf(nameFormat, h.now().Format("2006-01-02"))
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{"filename": filename}))
	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
	w.WriteHeader(http.StatusOK)
	if _, err := buf.WriteTo(w); err != nil {
		h.logger.Warn().Err(err).Str("filename", filename).Msg("export write interrupted")
	}
}

// readProduct reads a product from a multipart or url-encoded form, or from a
// JSON object. Keys absent from the request leave the optional fields nil.
func (h *ProductHandler) readProduct(w http.ResponseWriter, r *http.Request) (model.ProductInput, *model.FileUpload, error) {
	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if mediaType == "application/json" {
		var body map[string]interface{}
		if err := decodeJSON(r, &body); err != nil {
			return model.ProductInput{}, nil, err
		}
		return inputFromMap(body), nil, nil
	}

	if mediaType == "multipart/form-data" {
		if err := parseMultipart(w, r, h.maxBodyBytes); err != nil {
			return model.ProductInput{}, nil, err
		}
	} else if err := r.ParseForm(); err != nil {
		return model.ProductInput{}, nil, model.NewDomainError(model.ErrCodeValidation, "invalid form body")
	}

	in := model.ProductInput{
		ProductCode:  optionalForm(r, fieldProductCode),
		Name:         r.FormValue(fieldName),
		Category:     r.FormValue(fieldCategory),
		Vendor:       r.FormValue(fieldVendor),
		BuyingPrice:  r.FormValue(fieldBuyingPrice),
		SellingPrice: r.FormValue(fieldSellingPrice),
		Quantity:     r.FormValue(fieldQuantity),
		Sold:         r.FormValue(fieldSold),
		ImageURL:     optionalForm(r, fieldImageURL),
	}

	if r.MultipartForm == nil {
		return in, nil, nil
	}
	img, err := readUpload(r, "image")
	if err != nil {
		return model.ProductInput{}, nil, err
	}
	return in, img, nil
}

// optionalForm returns nil when key was not submitted at all.
func optionalForm(r *http.Request, key string) *string {
	if _, ok := r.Form[key]; !ok {
		return nil
	}
	v := r.Form.Get(key)
	return &v
}

func queryFrom(r *http.Request) model.ProductQuery {
	q := r.URL.Query()
	search := q.Get("q")
	if search == "" {
		search = q.Get("search")
	}
	return model.ProductQuery{
		Search:    search,
		SortBy:    q.Get("sortBy"),
		SortOrder: q.Get("sortOrder"),
	}
}

func bulkItems(raw json.RawMessage) ([]map[string]interface{}, error) {
	trimmed := bytes.TrimSpace(raw)
	invalid := &model.DomainError{Code: model.ErrCodeInvalidJSON, Message: "expected an array of products"}

	if len(trimmed) > 0 && trimmed[0] == '{' {
		var wrapper struct {
			Products []map[string]interface{} `json:"products"`
		}
		if err := json.Unmarshal(trimmed, &wrapper); err != nil {
			invalid.Err = err
			return nil, invalid
		}
		return wrapper.Products, nil
	}

	var items []map[string]interface{}
	if err := json.Unmarshal(trimmed, &items); err != nil {
		invalid.Err = err
		return nil, invalid
	}
	return items, nil
}

// inputFromMap converts a decoded JSON object to a ProductInput. Numbers are
// rendered back to text so they share the form validation path.
func inputFromMap(m map[string]interface{}) model.ProductInput {
	text := func(key string) string {
		switch v := m[key].(type) {
		case string:
			return v
		case float64:
			return strconv.FormatFloat(v, 'f', -1, 64)
		case bool:
			return strconv.FormatBool(v)
		case nil:
			return ""
		default:
			return fmt.Sprint(v)
		}
	}
	optional := func(key string) *string {
		if _, ok := m[key]; !ok {
			return nil
		}
		v := strings.TrimSpace(text(key))
		return &v
	}

	return model.ProductInput{
		ProductCode:  optional(fieldProductCode),
		Name:         text(fieldName),
		Category:     text(fieldCategory),
		Vendor:       text(fieldVendor),
		BuyingPrice:  text(fieldBuyingPrice),
		SellingPrice: text(fieldSellingPrice),
		Quantity:     text(fieldQuantity),
		Sold:         text(fieldSold),
		ImageURL:     optional(fieldImageURL),
	}
}
