package catalog

import (
	"context"

	"github.com/google/uuid"
	"github.com/warehouse/backend/internal/domain/catalog"
	"github.com/warehouse/backend/internal/domain/shared"
)

// WarehouseService handles warehouse master data operations
type WarehouseService struct {
	warehouses catalog.WarehouseRepository
}

// NewWarehouseService creates a new WarehouseService
func NewWarehouseService(warehouses catalog.WarehouseRepository) *WarehouseService {
	return &WarehouseService{warehouses: warehouses}
}

// Create creates a warehouse
func (s *WarehouseService) Create(ctx context.Context, req CreateWarehouseRequest) (*WarehouseResponse, error) {
	warehouse, err := catalog.NewWarehouse(req.Name, catalog.WarehouseType(req.Type), req.Address)
	if err != nil {
		return nil, err
	}
	warehouse.Phone = req.Phone
	warehouse.Manager = req.Manager

	if err := s.warehouses.Save(ctx, warehouse); err != nil {
		return nil, err
	}
	response := ToWarehouseResponse(warehouse)
	return &response, nil
}

// GetByID retrieves a warehouse
func (s *WarehouseService) GetByID(ctx context.Context, id uuid.UUID) (*WarehouseResponse, error) {
	warehouse, err := s.warehouses.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	response := ToWarehouseResponse(warehouse)
	return &response, nil
}

// List retrieves warehouses with pagination
func (s *WarehouseService) List(ctx context.Context, filter ListFilter) ([]WarehouseResponse, int64, error) {
	domainFilter := shared.NewFilter()
	if filter.Page > 0 {
		domainFilter.Page = filter.Page
	}
	if filter.PageSize > 0 {
		domainFilter.PageSize = filter.PageSize
	}
	domainFilter.Search = filter.Search

	warehouses, err := s.warehouses.FindAll(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.warehouses.Count(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}
	return ToWarehouseResponses(warehouses), total, nil
}

// ListActive retrieves all active warehouses, for pickers
func (s *WarehouseService) ListActive(ctx context.Context) ([]WarehouseResponse, error) {
	warehouses, err := s.warehouses.FindActive(ctx)
	if err != nil {
		return nil, err
	}
	return ToWarehouseResponses(warehouses), nil
}

// Update changes the mutable warehouse attributes
func (s *WarehouseService) Update(ctx context.Context, id uuid.UUID, req UpdateWarehouseRequest) (*WarehouseResponse, error) {
	warehouse, err := s.warehouses.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := warehouse.Update(req.Name, req.Address, req.Phone, req.Manager); err != nil {
		return nil, err
	}
	if err := s.warehouses.Save(ctx, warehouse); err != nil {
		return nil, err
	}
	response := ToWarehouseResponse(warehouse)
	return &response, nil
}

// Deactivate marks the warehouse inactive so new receipts cannot reference it
func (s *WarehouseService) Deactivate(ctx context.Context, id uuid.UUID) error {
	warehouse, err := s.warehouses.FindByID(ctx, id)
	if err != nil {
		return err
	}
	warehouse.Deactivate()
	return s.warehouses.Save(ctx, warehouse)
}

// Activate marks the warehouse active again
func (s *WarehouseService) Activate(ctx context.Context, id uuid.UUID) error {
	warehouse, err := s.warehouses.FindByID(ctx, id)
	if err != nil {
		return err
	}
	warehouse.Activate()
	return s.warehouses.Save(ctx, warehouse)
}
