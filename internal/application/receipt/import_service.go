package receipt

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/warehouse/backend/internal/domain/catalog"
	"github.com/warehouse/backend/internal/domain/receipt"
	"github.com/warehouse/backend/internal/domain/shared"
)

// ImportService handles import receipt operations
type ImportService struct {
	scope      TransactionScope
	imports    receipt.ImportRepository
	products   catalog.ProductRepository
	warehouses catalog.WarehouseRepository
	applier    *StockApplier
}

// NewImportService creates a new ImportService
func NewImportService(
	scope TransactionScope,
	imports receipt.ImportRepository,
	products catalog.ProductRepository,
	warehouses catalog.WarehouseRepository,
) *ImportService {
	return &ImportService{
		scope:      scope,
		imports:    imports,
		products:   products,
		warehouses: warehouses,
		applier:    NewStockApplier(),
	}
}

// Create validates master data, assigns a receipt number and persists a
// pending import receipt. Creation never touches the inventory ledger.
func (s *ImportService) Create(ctx context.Context, createdBy uuid.UUID, req CreateImportRequest) (*ImportReceiptResponse, error) {
	if _, err := activeWarehouse(ctx, s.warehouses, req.WarehouseID); err != nil {
		return nil, err
	}
	for _, line := range req.Lines {
		if _, err := activeProduct(ctx, s.products, line.ProductID); err != nil {
			return nil, err
		}
	}

	number, err := s.imports.GenerateReceiptNumber(ctx)
	if err != nil {
		return nil, err
	}

	rec, err := receipt.NewImportReceipt(number, req.WarehouseID, req.SupplierID, createdBy, req.Notes)
	if err != nil {
		return nil, err
	}
	for _, line := range req.Lines {
		if err := rec.AddLine(line.ProductID, line.Quantity, line.UnitPrice); err != nil {
			return nil, err
		}
		rec.Lines[len(rec.Lines)-1].Notes = line.Notes
	}

	if err := s.imports.Save(ctx, rec); err != nil {
		return nil, err
	}

	response := ToImportReceiptResponse(rec)
	return &response, nil
}

// GetByID retrieves an import receipt with its lines
func (s *ImportService) GetByID(ctx context.Context, id uuid.UUID) (*ImportReceiptResponse, error) {
	rec, err := s.imports.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	response := ToImportReceiptResponse(rec)
	return &response, nil
}

// List retrieves import receipts with pagination
func (s *ImportService) List(ctx context.Context, filter ListFilter) ([]ImportReceiptResponse, int64, error) {
	domainFilter := toDomainFilter(filter)
	receipts, err := s.imports.FindAll(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.imports.Count(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}
	return ToImportReceiptResponses(receipts), total, nil
}

// UpdateStatus transitions the receipt, applying the stock effect atomically
// with the status change when the target is completed. Optimistic-lock
// conflicts are retried a bounded number of times against the reloaded
// aggregate, so a lost completion race surfaces as an invalid transition
// rather than a double application.
func (s *ImportService) UpdateStatus(ctx context.Context, id uuid.UUID, target receipt.Status) (*ImportReceiptResponse, error) {
	for attempt := 0; attempt < maxTransitionAttempts; attempt++ {
		var result *ImportReceiptResponse
		err := s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
			rec, err := repos.Imports().FindByID(ctx, id)
			if err != nil {
				return err
			}
			previous := rec.Status
			if err := rec.TransitionTo(target); err != nil {
				return err
			}
			if rec.Status == previous {
				// Idempotent re-request of a non-terminal status.
				response := ToImportReceiptResponse(rec)
				result = &response
				return nil
			}
			if rec.Status == receipt.StatusCompleted {
				if err := s.applier.Apply(ctx, repos.Inventory(), rec.StockMovements()); err != nil {
					return err
				}
			}
			if err := repos.Imports().SaveWithLock(ctx, rec); err != nil {
				return err
			}
			response := ToImportReceiptResponse(rec)
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
