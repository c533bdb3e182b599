package catalog

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/warehouse/backend/internal/domain/catalog"
	"github.com/warehouse/backend/internal/domain/shared"
)

// fakeProductRepo keeps products in memory.
type fakeProductRepo struct {
	products map[uuid.UUID]catalog.Product
}

func newFakeProductRepo() *fakeProductRepo {
	return &fakeProductRepo{products: make(map[uuid.UUID]catalog.Product)}
}

func (r *fakeProductRepo) add(p *catalog.Product) { r.products[p.ID] = *p }

func (r *fakeProductRepo) FindByID(_ context.Context, id uuid.UUID) (*catalog.Product, error) {
	p, ok := r.products[id]
	if !ok {
		return nil, shared.ErrNotFound
	}
	return &p, nil
}

func (r *fakeProductRepo) FindBySKU(_ context.Context, sku string) (*catalog.Product, error) {
	for _, p := range r.products {
		if p.SKU == sku {
			found := p
			return &found, nil
		}
	}
	return nil, shared.ErrNotFound
}

func (r *fakeProductRepo) FindAll(_ context.Context, _ shared.Filter) ([]catalog.Product, error) {
	all := make([]catalog.Product, 0, len(r.products))
	for _, p := range r.products {
		all = append(all, p)
	}
	return all, nil
}

func (r *fakeProductRepo) FindActive(_ context.Context) ([]catalog.Product, error) {
	var active []catalog.Product
	for _, p := range r.products {
		if p.IsActive {
			active = append(active, p)
		}
	}
	return active, nil
}

func (r *fakeProductRepo) FindByCategory(_ context.Context, categoryID uuid.UUID) ([]catalog.Product, error) {
	var matched []catalog.Product
	for _, p := range r.products {
		if p.CategoryID != nil && *p.CategoryID == categoryID {
			matched = append(matched, p)
		}
	}
	return matched, nil
}

func (r *fakeProductRepo) Count(_ context.Context, _ shared.Filter) (int64, error) {
	return int64(len(r.products)), nil
}

func (r *fakeProductRepo) Save(_ context.Context, p *catalog.Product) error {
	r.products[p.ID] = *p
	return nil
}

func (r *fakeProductRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(r.products, id)
	return nil
}

var _ catalog.ProductRepository = (*fakeProductRepo)(nil)

func newTestProduct(t *testing.T, sku string) *catalog.Product {
	t.Helper()
	product, err := catalog.NewProduct(sku, "Widget", "pcs", decimal.NewFromInt(5), decimal.NewFromInt(8), 0, 0)
	require.NoError(t, err)
	return product
}

func TestProductService_Create(t *testing.T) {
	t.Run("assigns an active category", func(t *testing.T) {
		products := newFakeProductRepo()
		categories := newFakeCategoryRepo()
		svc := NewProductService(products, categories)

		category, err := catalog.NewCategory("TOOLS", "Tools")
		require.NoError(t, err)
		categories.add(category)

		resp, err := svc.Create(context.Background(), CreateProductRequest{
			SKU: "SKU-001", Name: "Widget", Unit: "pcs", CategoryID: &category.ID,
		})
		require.NoError(t, err)
		require.NotNil(t, resp.CategoryID)
		assert.Equal(t, category.ID, *resp.CategoryID)
	})

	t.Run("inactive category rejected", func(t *testing.T) {
		products := newFakeProductRepo()
		categories := newFakeCategoryRepo()
		svc := NewProductService(products, categories)

		category, err := catalog.NewCategory("TOOLS", "Tools")
		require.NoError(t, err)
		category.Deactivate()
		categories.add(category)

		_, err = svc.Create(context.Background(), CreateProductRequest{
			SKU: "SKU-001", Name: "Widget", Unit: "pcs", CategoryID: &category.ID,
		})
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "INACTIVE_CATEGORY", domainErr.Code)
	})

	t.Run("duplicate SKU rejected", func(t *testing.T) {
		products := newFakeProductRepo()
		svc := NewProductService(products, newFakeCategoryRepo())
		products.add(newTestProduct(t, "SKU-001"))

		_, err := svc.Create(context.Background(), CreateProductRequest{
			SKU: "SKU-001", Name: "Widget", Unit: "pcs",
		})
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "DUPLICATE_SKU", domainErr.Code)
	})
}

func TestProductService_ListActive(t *testing.T) {
	products := newFakeProductRepo()
	svc := NewProductService(products, newFakeCategoryRepo())

	active := newTestProduct(t, "SKU-001")
	inactive := newTestProduct(t, "SKU-002")
	inactive.Deactivate()
	products.add(active)
	products.add(inactive)

	listed, err := svc.ListActive(context.Background())
	require.NoError(t, err)

	require.Len(t, listed, 1)
	assert.Equal(t, "SKU-001", listed[0].SKU)
}

func TestProductService_ListByCategory(t *testing.T) {
	t.Run("returns only products in the category", func(t *testing.T) {
		products := newFakeProductRepo()
		categories := newFakeCategoryRepo()
		svc := NewProductService(products, categories)

		category, err := catalog.NewCategory("TOOLS", "Tools")
		require.NoError(t, err)
		categories.add(category)

		inCategory := newTestProduct(t, "SKU-001")
		inCategory.CategoryID = &category.ID
		other := newTestProduct(t, "SKU-002")
		products.add(inCategory)
		products.add(other)

		listed, err := svc.ListByCategory(context.Background(), category.ID)
		require.NoError(t, err)

		require.Len(t, listed, 1)
		assert.Equal(t, "SKU-001", listed[0].SKU)
	})

	t.Run("unknown category rejected", func(t *testing.T) {
		svc := NewProductService(newFakeProductRepo(), newFakeCategoryRepo())
		_, err := svc.ListByCategory(context.Background(), uuid.New())
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})
}
