package inventory

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/warehouse/backend/internal/domain/catalog"
	"github.com/warehouse/backend/internal/domain/inventory"
	"github.com/warehouse/backend/internal/domain/shared"
)

// maxAdjustRetries bounds retries when a manual adjustment races with a
// concurrent lazy creation of the same ledger record.
const maxAdjustRetries = 3

// LedgerService exposes inventory ledger queries and manual adjustments.
// Receipt completion goes through the receipt services instead; this service
// covers stocktaking corrections and read paths.
type LedgerService struct {
	records    inventory.Repository
	products   catalog.ProductRepository
	warehouses catalog.WarehouseRepository
}

// NewLedgerService creates a new LedgerService
func NewLedgerService(
	records inventory.Repository,
	products catalog.ProductRepository,
	warehouses catalog.WarehouseRepository,
) *LedgerService {
	return &LedgerService{
		records:    records,
		products:   products,
		warehouses: warehouses,
	}
}

// GetQuantity returns the current quantity for a (product, warehouse) pair.
// A pair with no ledger record reads as zero.
func (s *LedgerService) GetQuantity(ctx context.Context, productID, warehouseID uuid.UUID) (*QuantityResponse, error) {
	quantity, err := s.records.GetQuantity(ctx, productID, warehouseID)
	if err != nil {
		return nil, err
	}
	return &QuantityResponse{
		ProductID:   productID,
		WarehouseID: warehouseID,
		Quantity:    quantity,
	}, nil
}

// Adjust applies a manual stock correction. The product and warehouse must
// exist; the conditional ledger update rejects a delta that would drive the
// quantity negative.
func (s *LedgerService) Adjust(ctx context.Context, req AdjustRequest) (*QuantityResponse, error) {
	if _, err := s.products.FindByID(ctx, req.ProductID); err != nil {
		return nil, err
	}
	if _, err := s.warehouses.FindByID(ctx, req.WarehouseID); err != nil {
		return nil, err
	}

	for attempt := 0; attempt < maxAdjustRetries; attempt++ {
		quantity, err := s.records.ApplyAdjustment(ctx, req.ProductID, req.WarehouseID, req.Delta)
		if err == nil {
			return &QuantityResponse{
				ProductID:   req.ProductID,
				WarehouseID: req.WarehouseID,
				Quantity:    quantity,
			}, nil
		}
		if errors.Is(err, shared.ErrConcurrencyConflict) {
			continue
		}
		return nil, err
	}
	return nil, shared.ErrConcurrencyConflict
}

// SetLocation updates the slot label of a ledger record
func (s *LedgerService) SetLocation(ctx context.Context, id uuid.UUID, location string) (*RecordResponse, error) {
	record, err := s.records.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	record.SetLocation(location)
	if err := s.records.SaveWithLock(ctx, record); err != nil {
		return nil, err
	}
	response := ToRecordResponse(record)
	return &response, nil
}

// List retrieves ledger records with pagination and optional filters
func (s *LedgerService) List(ctx context.Context, filter ListFilter) ([]RecordResponse, error) {
	domainFilter := shared.NewFilter()
	if filter.Page > 0 {
		domainFilter.Page = filter.Page
	}
	if filter.PageSize > 0 {
		domainFilter.PageSize = filter.PageSize
	}
	if filter.WarehouseID != "" {
		domainFilter.Filters["warehouse_id"] = filter.WarehouseID
	}
	if filter.ProductID != "" {
		domainFilter.Filters["product_id"] = filter.ProductID
	}
	records, err := s.records.FindAll(ctx, domainFilter)
	if err != nil {
		return nil, err
	}
	return ToRecordResponses(records), nil
}

// ListByWarehouse retrieves every ledger record of one warehouse
func (s *LedgerService) ListByWarehouse(ctx context.Context, warehouseID uuid.UUID) ([]RecordResponse, error) {
	records, err := s.records.FindByWarehouse(ctx, warehouseID)
	if err != nil {
		return nil, err
	}
	return ToRecordResponses(records), nil
}

// ListByProduct retrieves the per-warehouse records of one product
func (s *LedgerService) ListByProduct(ctx context.Context, productID uuid.UUID) ([]RecordResponse, error) {
	records, err := s.records.FindByProduct(ctx, productID)
	if err != nil {
		return nil, err
	}
	return ToRecordResponses(records), nil
}

// ListLowStock retrieves records at or below their product's minimum threshold
func (s *LedgerService) ListLowStock(ctx context.Context) ([]LowStockResponse, error) {
	items, err := s.records.FindLowStock(ctx)
	if err != nil {
		return nil, err
	}
	return ToLowStockResponses(items), nil
}
