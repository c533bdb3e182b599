package catalog

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/warehouse/backend/internal/domain/catalog"
	"github.com/warehouse/backend/internal/domain/shared"
)

// CategoryService handles category master data operations
type CategoryService struct {
	categories catalog.CategoryRepository
}

// NewCategoryService creates a new CategoryService
func NewCategoryService(categories catalog.CategoryRepository) *CategoryService {
	return &CategoryService{categories: categories}
}

// Create creates a category after checking code uniqueness
func (s *CategoryService) Create(ctx context.Context, req CreateCategoryRequest) (*CategoryResponse, error) {
	existing, err := s.categories.FindByCode(ctx, strings.ToUpper(req.Code))
	if err != nil && !errors.Is(err, shared.ErrNotFound) {
		return nil, err
	}
	if existing != nil {
		return nil, shared.NewDomainError("DUPLICATE_CODE", "A category with this code already exists")
	}

	var category *catalog.Category
	if req.ParentID != nil {
		parent, err := s.categories.FindByID(ctx, *req.ParentID)
		if err != nil {
			return nil, err
		}
		category, err = catalog.NewChildCategory(req.Code, req.Name, parent)
		if err != nil {
			return nil, err
		}
	} else {
		category, err = catalog.NewCategory(req.Code, req.Name)
		if err != nil {
			return nil, err
		}
	}
	category.Description = req.Description

	if err := s.categories.Save(ctx, category); err != nil {
		return nil, err
	}
	response := ToCategoryResponse(category)
	return &response, nil
}

// GetByID retrieves a category
func (s *CategoryService) GetByID(ctx context.Context, id uuid.UUID) (*CategoryResponse, error) {
	category, err := s.categories.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	response := ToCategoryResponse(category)
	return &response, nil
}

// List retrieves categories with pagination and optional search
func (s *CategoryService) List(ctx context.Context, filter ListFilter) ([]CategoryResponse, int64, error) {
	domainFilter := shared.NewFilter()
	if filter.Page > 0 {
		domainFilter.Page = filter.Page
	}
	if filter.PageSize > 0 {
		domainFilter.PageSize = filter.PageSize
	}
	domainFilter.Search = filter.Search

	categories, err := s.categories.FindAll(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.categories.Count(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}
	return ToCategoryResponses(categories), total, nil
}

// ListActive retrieves all active categories, for pickers
func (s *CategoryService) ListActive(ctx context.Context) ([]CategoryResponse, error) {
	categories, err := s.categories.FindActive(ctx)
	if err != nil {
		return nil, err
	}
	return ToCategoryResponses(categories), nil
}

// ListTrees assembles the active categories into parent/child trees.
// Children whose parent is inactive surface as roots.
func (s *CategoryService) ListTrees(ctx context.Context) ([]CategoryResponse, error) {
	categories, err := s.categories.FindActive(ctx)
	if err != nil {
		return nil, err
	}

	nodes := make(map[uuid.UUID]*CategoryResponse, len(categories))
	order := make([]uuid.UUID, 0, len(categories))
	for i := range categories {
		response := ToCategoryResponse(&categories[i])
		nodes[response.ID] = &response
		order = append(order, response.ID)
	}

	var roots []CategoryResponse
	for _, id := range order {
		node := nodes[id]
		if node.ParentID != nil {
			if parent, ok := nodes[*node.ParentID]; ok {
				parent.Children = append(parent.Children, node)
				continue
			}
		}
		roots = append(roots, *node)
	}

	// The map holds pointers, so children attached after a root was
	// appended still show up; re-materialize from the node table.
	result := make([]CategoryResponse, 0, len(roots))
	for _, root := range roots {
		result = append(result, *nodes[root.ID])
	}
	return result, nil
}

// Update changes the mutable category attributes
func (s *CategoryService) Update(ctx context.Context, id uuid.UUID, req UpdateCategoryRequest) (*CategoryResponse, error) {
	category, err := s.categories.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := category.Update(req.Name, req.Description); err != nil {
		return nil, err
	}
	if err := s.categories.Save(ctx, category); err != nil {
		return nil, err
	}
	response := ToCategoryResponse(category)
	return &response, nil
}

// Deactivate marks the category inactive. Categories that still have child
// categories or assigned products cannot be deactivated.
func (s *CategoryService) Deactivate(ctx context.Context, id uuid.UUID) error {
	category, err := s.categories.FindByID(ctx, id)
	if err != nil {
		return err
	}

	hasChildren, err := s.categories.HasChildren(ctx, id)
	if err != nil {
		return err
	}
	if hasChildren {
		return shared.NewDomainError("CATEGORY_HAS_CHILDREN", "Category still has child categories")
	}

	hasProducts, err := s.categories.HasProducts(ctx, id)
	if err != nil {
		return err
	}
	if hasProducts {
		return shared.NewDomainError("CATEGORY_HAS_PRODUCTS", "Category still has assigned products")
	}

	category.Deactivate()
	return s.categories.Save(ctx, category)
}

// Activate marks the category active again
func (s *CategoryService) Activate(ctx context.Context, id uuid.UUID) error {
	category, err := s.categories.FindByID(ctx, id)
	if err != nil {
		return err
	}
	category.Activate()
	return s.categories.Save(ctx, category)
}
