package receipt

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/warehouse/backend/internal/domain/catalog"
	"github.com/warehouse/backend/internal/domain/receipt"
	"github.com/warehouse/backend/internal/domain/shared"
)

// ExportService handles export receipt operations
type ExportService struct {
	scope      TransactionScope
	exports    receipt.ExportRepository
	products   catalog.ProductRepository
	warehouses catalog.WarehouseRepository
	applier    *StockApplier
}

// NewExportService creates a new ExportService
func NewExportService(
	scope TransactionScope,
	exports receipt.ExportRepository,
	products catalog.ProductRepository,
	warehouses catalog.WarehouseRepository,
) *ExportService {
	return &ExportService{
		scope:      scope,
		exports:    exports,
		products:   products,
		warehouses: warehouses,
		applier:    NewStockApplier(),
	}
}

// Create validates master data, assigns a receipt number and persists a
// pending export receipt. Stock availability is not checked here; a pending
// export may provisionally over-commit and fails at completion instead.
func (s *ExportService) Create(ctx context.Context, createdBy uuid.UUID, req CreateExportRequest) (*ExportReceiptResponse, error) {
	if _, err := activeWarehouse(ctx, s.warehouses, req.WarehouseID); err != nil {
		return nil, err
	}
	for _, line := range req.Lines {
		if _, err := activeProduct(ctx, s.products, line.ProductID); err != nil {
			return nil, err
		}
	}

	number, err := s.exports.GenerateReceiptNumber(ctx)
	if err != nil {
		return nil, err
	}

	rec, err := receipt.NewExportReceipt(number, req.WarehouseID, receipt.ExportType(req.ExportType), createdBy, req.Notes)
	if err != nil {
		return nil, err
	}
	rec.SetCustomer(req.CustomerName, req.CustomerPhone, req.CustomerAddress)
	for _, line := range req.Lines {
		if err := rec.AddLine(line.ProductID, line.Quantity, line.UnitPrice); err != nil {
			return nil, err
		}
		rec.Lines[len(rec.Lines)-1].Notes = line.Notes
	}

	if err := s.exports.Save(ctx, rec); err != nil {
		return nil, err
	}

	response := ToExportReceiptResponse(rec)
	return &response, nil
}

// GetByID retrieves an export receipt with its lines
func (s *ExportService) GetByID(ctx context.Context, id uuid.UUID) (*ExportReceiptResponse, error) {
	rec, err := s.exports.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	response := ToExportReceiptResponse(rec)
	return &response, nil
}

// List retrieves export receipts with pagination
func (s *ExportService) List(ctx context.Context, filter ListFilter) ([]ExportReceiptResponse, int64, error) {
	domainFilter := toDomainFilter(filter)
	receipts, err := s.exports.FindAll(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.exports.Count(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}
	return ToExportReceiptResponses(receipts), total, nil
}

// UpdateStatus transitions the receipt. Completion deducts stock atomically
// with the status change; insufficient stock rolls the transition back.
func (s *ExportService) UpdateStatus(ctx context.Context, id uuid.UUID, target receipt.Status) (*ExportReceiptResponse, error) {
	for attempt := 0; attempt < maxTransitionAttempts; attempt++ {
		var result *ExportReceiptResponse
		err := s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
			rec, err := repos.Exports().FindByID(ctx, id)
			if err != nil {
				return err
			}
			previous := rec.Status
			if err := rec.TransitionTo(target); err != nil {
				return err
			}
			if rec.Status == previous {
				response := ToExportReceiptResponse(rec)
				result = &response
				return nil
			}
			if rec.Status == receipt.StatusCompleted {
				if err := s.applier.Apply(ctx, repos.Inventory(), rec.StockMovements()); err != nil {
					return err
				}
			}
			if err := repos.Exports().SaveWithLock(ctx, rec); err != nil {
				return err
			}
			response := ToExportReceiptResponse(rec)
			result = &response
			return nil
		})
		if err == nil {
			return result, nil
		}
		if errors.Is(err, shared.ErrConcurrencyConflict) {
			continue
		}
		return nil, err
	}
	return nil, shared.ErrConcurrencyConflict
}
