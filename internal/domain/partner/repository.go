package partner

import (
	"context"

	"github.com/google/uuid"
	"github.com/warehouse/backend/internal/domain/shared"
)

// SupplierRepository defines persistence operations for suppliers
type SupplierRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Supplier, error)
	FindByCode(ctx context.Context, code string) (*Supplier, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]Supplier, error)
	FindActive(ctx context.Context) ([]Supplier, error)
	Count(ctx context.Context, filter shared.Filter) (int64, error)
	Save(ctx context.Context, supplier *Supplier) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// PartnerRepository defines persistence operations for partners
type PartnerRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Partner, error)
	FindByCode(ctx context.Context, code string) (*Partner, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]Partner, error)
	Count(ctx context.Context, filter shared.Filter) (int64, error)
	Save(ctx context.Context, partner *Partner) error
	Delete(ctx context.Context, id uuid.UUID) error
}
