package catalog

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/warehouse/backend/internal/domain/catalog"
	"github.com/warehouse/backend/internal/domain/shared"
)

// ProductService handles product master data operations
type ProductService struct {
	products   catalog.ProductRepository
	categories catalog.CategoryRepository
}

// NewProductService creates a new ProductService
func NewProductService(products catalog.ProductRepository, categories catalog.CategoryRepository) *ProductService {
	return &ProductService{products: products, categories: categories}
}

// resolveCategory checks that a referenced category exists and is active
func (s *ProductService) resolveCategory(ctx context.Context, categoryID *uuid.UUID) error {
	if categoryID == nil {
		return nil
	}
	category, err := s.categories.FindByID(ctx, *categoryID)
	if err != nil {
		return err
	}
	if !category.IsActive {
		return shared.NewDomainError("INACTIVE_CATEGORY", "Category is inactive")
	}
	return nil
}

// Create creates a product after checking SKU uniqueness
func (s *ProductService) Create(ctx context.Context, req CreateProductRequest) (*ProductResponse, error) {
	existing, err := s.products.FindBySKU(ctx, req.SKU)
	if err != nil && !errors.Is(err, shared.ErrNotFound) {
		return nil, err
	}
	if existing != nil {
		return nil, shared.NewDomainError("DUPLICATE_SKU", "A product with this SKU already exists")
	}

	if err := s.resolveCategory(ctx, req.CategoryID); err != nil {
		return nil, err
	}

	product, err := catalog.NewProduct(req.SKU, req.Name, req.Unit, req.CostPrice, req.SellingPrice, req.MinStock, req.MaxStock)
	if err != nil {
		return nil, err
	}
	product.Description = req.Description
	product.Brand = req.Brand
	product.CategoryID = req.CategoryID

	if err := s.products.Save(ctx, product); err != nil {
		return nil, err
	}
	response := ToProductResponse(product)
	return &response, nil
}

// GetByID retrieves a product
func (s *ProductService) GetByID(ctx context.Context, id uuid.UUID) (*ProductResponse, error) {
	product, err := s.products.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	response := ToProductResponse(product)
	return &response, nil
}

// List retrieves products with pagination and optional search
func (s *ProductService) List(ctx context.Context, filter ListFilter) ([]ProductResponse, int64, error) {
	domainFilter := shared.NewFilter()
	if filter.Page > 0 {
		domainFilter.Page = filter.Page
	}
	if filter.PageSize > 0 {
		domainFilter.PageSize = filter.PageSize
	}
	domainFilter.Search = filter.Search

	products, err := s.products.FindAll(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.products.Count(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}
	return ToProductResponses(products), total, nil
}

// ListActive retrieves all active products, for pickers
func (s *ProductService) ListActive(ctx context.Context) ([]ProductResponse, error) {
	products, err := s.products.FindActive(ctx)
	if err != nil {
		return nil, err
	}
	return ToProductResponses(products), nil
}

// ListByCategory retrieves all products assigned to a category
func (s *ProductService) ListByCategory(ctx context.Context, categoryID uuid.UUID) ([]ProductResponse, error) {
	if _, err := s.categories.FindByID(ctx, categoryID); err != nil {
		return nil, err
	}
	products, err := s.products.FindByCategory(ctx, categoryID)
	if err != nil {
		return nil, err
	}
	return ToProductResponses(products), nil
}

// Update changes the mutable product attributes
func (s *ProductService) Update(ctx context.Context, id uuid.UUID, req UpdateProductRequest) (*ProductResponse, error) {
	product, err := s.products.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := product.Rename(req.Name); err != nil {
		return nil, err
	}
	if err := product.UpdatePrices(req.CostPrice, req.SellingPrice); err != nil {
		return nil, err
	}
	if err := product.UpdateThresholds(req.MinStock, req.MaxStock); err != nil {
		return nil, err
	}
	if err := s.resolveCategory(ctx, req.CategoryID); err != nil {
		return nil, err
	}
	product.Description = req.Description
	product.Brand = req.Brand
	product.SetCategory(req.CategoryID)

	if err := s.products.Save(ctx, product); err != nil {
		return nil, err
	}
	response := ToProductResponse(product)
	return &response, nil
}

// Deactivate marks the product inactive so new receipts cannot reference it
func (s *ProductService) Deactivate(ctx context.Context, id uuid.UUID) error {
	product, err := s.products.FindByID(ctx, id)
	if err != nil {
		return err
	}
	product.Deactivate()
	return s.products.Save(ctx, product)
}

// Activate marks the product active again
func (s *ProductService) Activate(ctx context.Context, id uuid.UUID) error {
	product, err := s.products.FindByID(ctx, id)
	if err != nil {
		return err
	}
	product.Activate()
	return s.products.Save(ctx, product)
}
