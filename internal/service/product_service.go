package service

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"time"

	"stockroom/internal/image"
	"stockroom/internal/inventory"
	"stockroom/internal/model"
	"stockroom/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// UploadLimits caps the size of uploaded files, in bytes.
type UploadLimits struct {
	ImageMaxBytes int64
	CSVMaxBytes   int64
}

// productService implements ProductService.
type productService struct {
	productRepo  repository.ProductRepository
	categoryRepo repository.NameRepository
	vendorRepo   repository.NameRepository
	lock         *CatalogLock
	images       image.Store
	limits       UploadLimits
	now          Clock
	location     *time.Location
	logger       zerolog.Logger
}

// NewProductService creates a new product service.
func NewProductService(
	productRepo repository.ProductRepository,
	categoryRepo repository.NameRepository,
	vendorRepo repository.NameRepository,
	lock *CatalogLock,
	images image.Store,
	limits UploadLimits,
	logger zerolog.Logger,
) ProductService {
	return &productService{
		productRepo:  productRepo,
		categoryRepo: categoryRepo,
		vendorRepo:   vendorRepo,
		lock:         lock,
		images:       images,
		limits:       limits,
		now:          time.Now,
		location:     time.Local,
		logger:       logger.With().Str("service", "product").Logger(),
	}
}

// List returns products filtered and sorted by q.
func (s *productService) List(ctx context.Context, q model.ProductQuery) ([]model.Product, error) {
	products, err := s.productRepo.List(ctx)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to list products")
		return nil, fmt.Errorf("failed to get products: %w", err)
	}

	out := inventory.ApplyQuery(products, q)
	s.logger.Debug().
		Int("count", len(out)).
		Str("search", q.Search).
		Str("sort_by", q.SortBy).
		Msg("retrieved products")
	return out, nil
}

// GetByID retrieves a single product by ID.
func (s *productService) GetByID(ctx context.Context, id string) (*model.Product, error) {
	if id == "" {
		s.logger.Warn().Msg("product ID is empty")
		return nil, model.NewNotFoundError("Product", id)
	}
	return s.productRepo.GetByID(ctx, id)
}

// reference loads the category and vendor names products may use. Callers
// hold the catalog lock shared until the product is stored.
func (s *productService) reference(ctx context.Context) (*inventory.Reference, error) {
	categories, err := s.categoryRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get categories: %w", err)
	}
	vendors, err := s.vendorRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get vendors: %w", err)
	}
	return &inventory.Reference{Categories: categories, Vendors: vendors}, nil
}

// Create validates in and stores a new product.
func (s *productService) Create(ctx context.Context, in model.ProductInput, img *model.FileUpload) (*model.Product, error) {
	s.lock.mu.RLock()
	defer s.lock.mu.RUnlock()

	ref, err := s.reference(ctx)
	if err != nil {
		return nil, err
	}

	fields, errs := inventory.ValidateProduct(in, ref)
	if err := errs.Err(); err != nil {
		s.logger.Debug().Interface("fields", errs).Msg("product validation failed")
		return nil, err
	}

	product := newProduct(uuid.NewString(), fields, s.now())
	if in.ImageURL != nil && *in.ImageURL != "" {
		product.Image = in.ImageURL
	}

	if img != nil {
		stored, err := s.storeImage(ctx, img)
		if err != nil {
			return nil, err
		}
		product.Image = &stored
	}

	if err := s.productRepo.Create(ctx, product); err != nil {
		s.discardImage(ctx, product.Image)
		s.logger.Error().Err(err).Msg("failed to create product")
		return nil, err
	}

	s.logger.Info().
		Str("product_id", product.ID).
		Str("name", product.Name).
		Msg("product created")
	return &product, nil
}

// Update replaces the editable fields of a product.
func (s *productService) Update(ctx context.Context, id string, in model.ProductInput, img *model.FileUpload) (*model.Product, error) {
	existing, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if in.ProductCode == nil {
		in.ProductCode = &existing.ProductCode
	}
	if in.Sold == "" {
		in.Sold = strconv.Itoa(existing.Sold)
	}

	s.lock.mu.RLock()
	defer s.lock.mu.RUnlock()

	ref, err := s.reference(ctx)
	if err != nil {
		return nil, err
	}
	fields, errs := inventory.ValidateProduct(in, ref)
	if err := errs.Err(); err != nil {
		return nil, err
	}

	updated := newProduct(existing.ID, fields, existing.CreatedAt)
	now := s.now()
	updated.UpdatedAt = &now
	updated.Image = existing.Image

	switch {
	case img != nil:
		stored, err := s.storeImage(ctx, img)
		if err != nil {
			return nil, err
		}
		updated.Image = &stored
	case in.ImageURL != nil && *in.ImageURL == "":
		updated.Image = nil
	case in.ImageURL != nil:
		updated.Image = in.ImageURL
	}

	if err := s.productRepo.Replace(ctx, updated); err != nil {
		if img != nil {
			s.discardImage(ctx, updated.Image)
		}
		s.logger.Error().Err(err).Str("product_id", id).Msg("failed to update product")
		return nil, err
	}

	if existing.ImageRef() != updated.ImageRef() {
		s.discardImage(ctx, existing.Image)
	}

	s.logger.Info().Str("product_id", id).Msg("product updated")
	return &updated, nil
}

// Delete removes a product and the image it owns.
func (s *productService) Delete(ctx context.Context, id string) error {
	removed, err := s.productRepo.Delete(ctx, id)
	if err != nil {
		return err
	}
	s.discardImage(ctx, removed.Image)
	return nil
}

// BulkCreate stores every input or, when any is invalid, none.
func (s *productService) BulkCreate(ctx context.Context, inputs []model.ProductInput) (*model.BulkCreateResult, error) {
	if len(inputs) == 0 {
		return nil, model.NewValidationError("products", "No products provided")
	}

	s.lock.mu.RLock()
	defer s.lock.mu.RUnlock()

	ref, err := s.reference(ctx)
	if err != nil {
		return nil, err
	}

	now := s.now()
	products := make([]model.Product, 0, len(inputs))
	var problems []string
	for i, in := range inputs {
		fields, errs := inventory.ValidateProduct(in, ref)
		if len(errs) > 0 {
			problems = append(problems, fmt.Sprintf("Item %d: %s", i+1, errs.Err()))
			continue
		}
		p := newProduct(uuid.NewString(), fields, now)
		if in.ImageURL != nil && *in.ImageURL != "" {
			p.Image = in.ImageURL
		}
		products = append(products, p)
	}

	if len(problems) > 0 {
		return nil, &model.DomainError{
			Code:    model.ErrCodeValidation,
			Message: "one or more products are invalid",
			Details: problems,
		}
	}

	if err := s.productRepo.Create(ctx, products...); err != nil {
		s.logger.Error().Err(err).Int("count", len(products)).Msg("failed to bulk create products")
		return nil, err
	}

	s.logger.Info().Int("count", len(products)).Msg("products bulk created")
	return &model.BulkCreateResult{Success: true, CreatedCount: len(products), Products: products}, nil
}

// Import loads products from an uploaded CSV file.
func (s *productService) Import(ctx context.Context, file model.FileUpload) (*model.ImportResult, error) {
	if err := image.CheckCSV(file.Filename, file.ContentType, file.Data, s.limits.CSVMaxBytes); err != nil {
		return nil, err
	}

	s.lock.mu.RLock()
	defer s.lock.mu.RUnlock()

	ref, err := s.reference(ctx)
	if err != nil {
		return nil, err
	}

	importer := &inventory.Importer{NewID: uuid.NewString, Now: s.now}
	result, err := importer.Import(file.Data, ref)
	if err != nil {
		s.logger.Warn().Err(err).Str("filename", file.Filename).Msg("CSV import rejected")
		return nil, err
	}

	if err := s.productRepo.Create(ctx, result.Products...); err != nil {
		s.logger.Error().Err(err).Msg("failed to store imported products")
		return nil, err
	}

	s.logger.Info().
		Str("filename", file.Filename).
		Int("imported", result.ImportedCount).
		Int("row_errors", len(result.Errors)).
		Int("skipped", result.SkippedCount).
		Msg("CSV import completed")
	return result, nil
}

// DashboardStats aggregates all products.
func (s *productService) DashboardStats(ctx context.Context) (model.DashboardStats, error) {
	products, err := s.productRepo.List(ctx)
	if err != nil {
		return model.DashboardStats{}, fmt.Errorf("failed to get products: %w", err)
	}
	return inventory.ComputeDashboardStats(products), nil
}

// ExportCSV writes the detail export of the products matching q.
func (s *productService) ExportCSV(ctx context.Context, w io.Writer, q model.ProductQuery) error {
	products, err := s.List(ctx, q)
	if err != nil {
		return err
	}
	return inventory.ExportProducts(w, products, s.location)
}

// ExportSummary writes the summary export of the products matching q.
func (s *productService) ExportSummary(ctx context.Context, w io.Writer, q model.ProductQuery) error {
	products, err := s.List(ctx, q)
	if err != nil {
		return err
	}
	return inventory.ExportSummary(w, products, s.now().In(s.location))
}

// ExportXLSX writes the detail export as a workbook.
func (s *productService) ExportXLSX(ctx context.Context, w io.Writer, q model.ProductQuery) error {
	products, err := s.List(ctx, q)
	if err != nil {
		return err
	}
	return inventory.ExportProductsXLSX(w, products, s.location)
}

func (s *productService) storeImage(ctx context.Context, img *model.FileUpload) (string, error) {
	contentType, _, err := image.CheckImage(img.Data, s.limits.ImageMaxBytes)
	if err != nil {
		return "", err
	}
	ref, err := s.images.Save(ctx, img.Filename, contentType, img.Data)
	if err != nil {
		s.logger.Error().Err(err).Str("filename", img.Filename).Msg("failed to store image")
		return "", model.NewStorageError("store image", err)
	}
	return ref, nil
}

// discardImage removes an image the store owns. Failures are logged only.
func (s *productService) discardImage(ctx context.Context, ref *string) {
	if ref == nil || !s.images.Owns(*ref) {
		return
	}
	if err := s.images.Delete(ctx, *ref); err != nil {
		s.logger.Warn().Err(err).Str("image", *ref).Msg("failed to delete image")
	}
}

func newProduct(id string, f model.ProductFields, createdAt time.Time) model.Product {
	return model.Product{
		ID:               id,
		ProductCode:      f.ProductCode,
		Name:             f.Name,
		Category:         f.Category,
		Vendor:           f.Vendor,
		BuyingPrice:      f.BuyingPrice,
		SellingPrice:     f.SellingPrice,
		Quantity:         f.Quantity,
		Sold:             f.Sold,
		ProfitPercentage: inventory.ProfitPercentage(f.BuyingPrice, f.SellingPrice),
		CreatedAt:        createdAt,
	}
}
