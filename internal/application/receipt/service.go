package receipt

import (
	"context"

	"github.com/google/uuid"
	"github.com/warehouse/backend/internal/domain/catalog"
	"github.com/warehouse/backend/internal/domain/shared"
)

// maxTransitionAttempts bounds the transparent retries on optimistic-lock
// conflicts during a status transition. The loser of a completion race
// reloads the receipt and then fails the legality check instead.
const maxTransitionAttempts = 3

// activeWarehouse resolves a warehouse and rejects inactive ones
func activeWarehouse(ctx context.Context, repo catalog.WarehouseRepository, id uuid.UUID) (*catalog.Warehouse, error) {
	warehouse, err := repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !warehouse.IsActive {
		return nil, shared.NewDomainError("INACTIVE_WAREHOUSE", "Warehouse is not active")
	}
	return warehouse, nil
}

// activeProduct resolves a product and rejects inactive ones
func activeProduct(ctx context.Context, repo catalog.ProductRepository, id uuid.UUID) (*catalog.Product, error) {
	product, err := repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !product.IsActive {
		return nil, shared.NewDomainError("INACTIVE_PRODUCT", "Product is not active")
	}
	return product, nil
}

// toDomainFilter converts the list filter to the shared repository filter
func toDomainFilter(f ListFilter) shared.Filter {
	filter := shared.NewFilter()
	if f.Page > 0 {
		filter.Page = f.Page
	}
	if f.PageSize > 0 {
		filter.PageSize = f.PageSize
	}
	if f.Status != "" {
		filter.Filters["status"] = f.Status
	}
	return filter
}
