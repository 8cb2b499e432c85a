package service

import (
	"context"
	"io"
	"sync"
	"time"

	"stockroom/internal/model"
)

// ProductService defines operations for product management.
type ProductService interface {
	// List returns products filtered and sorted by q.
	List(ctx context.Context, q model.ProductQuery) ([]model.Product, error)

	// GetByID retrieves a single product by ID.
	GetByID(ctx context.Context, id string) (*model.Product, error)

	// Create validates in and stores a new product. img is optional.
	Create(ctx context.Context, in model.ProductInput, img *model.FileUpload) (*model.Product, error)

	// Update replaces the editable fields of a product. Omitted product code,
	// sold count and image URL keep their current values.
	Update(ctx context.Context, id string, in model.ProductInput, img *model.FileUpload) (*model.Product, error)

	// Delete removes a product and the image it owns.
	Delete(ctx context.Context, id string) error

	// BulkCreate stores every input or, when any is invalid, none.
	BulkCreate(ctx context.Context, inputs []model.ProductInput) (*model.BulkCreateResult, error)

	// Import loads products from an uploaded CSV file, keeping valid rows.
	Import(ctx context.Context, file model.FileUpload) (*model.ImportResult, error)

	// DashboardStats aggregates all products.
	DashboardStats(ctx context.Context) (model.DashboardStats, error)

	// ExportCSV writes the detail export of the products matching q.
	ExportCSV(ctx context.Context, w io.Writer, q model.ProductQuery) error

	// ExportSummary writes the summary export of the products matching q.
	ExportSummary(ctx context.Context, w io.Writer, q model.ProductQuery) error

	// ExportXLSX writes the detail export as a workbook.
	ExportXLSX(ctx context.Context, w io.Writer, q model.ProductQuery) error
}

// CatalogService manages one list of names products refer to (categories or vendors).
type CatalogService interface {
	List(ctx context.Context) ([]string, error)

	// Add appends a new unique name and returns the updated list.
	Add(ctx context.Context, name string) ([]string, error)

	// Remove deletes a name no product uses and returns the updated list.
	Remove(ctx context.Context, name string) ([]string, error)
}

// CustomerService defines operations for customer management.
type CustomerService interface {
	List(ctx context.Context) ([]model.Customer, error)
	Create(ctx context.Context, req *model.CustomerRequest) (*model.Customer, error)
	Update(ctx context.Context, id string, req *model.CustomerRequest) (*model.Customer, error)
	Delete(ctx context.Context, id string) error
}

// SettingsService manages the company profile.
type SettingsService interface {
	Get(ctx context.Context) (model.Settings, error)

	// UpdateCompanyName changes the company name when name is non-nil.
	UpdateCompanyName(ctx context.Context, name *string) (model.Settings, error)

	// UploadLogo stores a new logo image and drops the previous one.
	UploadLogo(ctx context.Context, file model.FileUpload) (model.Settings, error)
}

// Clock returns the current time.
type Clock func() time.Time

// CatalogLock orders category and vendor removals against product writes.
// Product writes hold it shared from reading the name lists until the
// product is stored; a removal holds it exclusively from the in-use check
// until the name is gone.
type CatalogLock struct {
	mu sync.RWMutex
}

// NewCatalogLock returns an unlocked CatalogLock.
func NewCatalogLock() *CatalogLock {
	return &CatalogLock{}
}
