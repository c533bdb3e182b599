package receipt

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/warehouse/backend/internal/domain/catalog"
	"github.com/warehouse/backend/internal/domain/receipt"
	"github.com/warehouse/backend/internal/domain/shared"
)

// TransferService handles transfer receipt operations
type TransferService struct {
	scope      TransactionScope
	transfers  receipt.TransferRepository
	products   catalog.ProductRepository
	warehouses catalog.WarehouseRepository
	applier    *StockApplier
}

// NewTransferService creates a new TransferService
func NewTransferService(
	scope TransactionScope,
	transfers receipt.TransferRepository,
	products catalog.ProductRepository,
	warehouses catalog.WarehouseRepository,
) *TransferService {
	return &TransferService{
		scope:      scope,
		transfers:  transfers,
		products:   products,
		warehouses: warehouses,
		applier:    NewStockApplier(),
	}
}

// Create validates both warehouses and every product, assigns a receipt
// number and persists a pending transfer receipt.
func (s *TransferService) Create(ctx context.Context, createdBy uuid.UUID, req CreateTransferRequest) (*TransferReceiptResponse, error) {
	if _, err := activeWarehouse(ctx, s.warehouses, req.ExportWarehouseID); err != nil {
		return nil, err
	}
	if _, err := activeWarehouse(ctx, s.warehouses, req.ImportWarehouseID); err != nil {
		return nil, err
	}
	for _, item := range req.Items {
		if _, err := activeProduct(ctx, s.products, item.ProductID); err != nil {
			return nil, err
		}
	}

	number, err := s.transfers.GenerateReceiptNumber(ctx)
	if err != nil {
		return nil, err
	}

	rec, err := receipt.NewTransferReceipt(number, req.ExportWarehouseID, req.ImportWarehouseID, createdBy, req.Notes)
	if err != nil {
		return nil, err
	}
	for _, item := range req.Items {
		if err := rec.AddItem(item.ProductID, item.Quantity); err != nil {
			return nil, err
		}
	}

	if err := s.transfers.Save(ctx, rec); err != nil {
		return nil, err
	}

	response := ToTransferReceiptResponse(rec)
	return &response, nil
}

// GetByID retrieves a transfer receipt with its items
func (s *TransferService) GetByID(ctx context.Context, id uuid.UUID) (*TransferReceiptResponse, error) {
	rec, err := s.transfers.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	response := ToTransferReceiptResponse(rec)
	return &response, nil
}

// List retrieves transfer receipts with pagination
func (s *TransferService) List(ctx context.Context, filter ListFilter) ([]TransferReceiptResponse, int64, error) {
	domainFilter := toDomainFilter(filter)
	receipts, err := s.transfers.FindAll(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.transfers.Count(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}
	return ToTransferReceiptResponses(receipts), total, nil
}

// UpdateStatus transitions the transfer. Transfers skip the approval step,
// so pending moves straight to completed or cancelled. Completion deducts
// from the source and credits the destination in one transaction.
func (s *TransferService) UpdateStatus(ctx context.Context, id uuid.UUID, target receipt.Status) (*TransferReceiptResponse, error) {
	for attempt := 0; attempt < maxTransitionAttempts; attempt++ {
		var result *TransferReceiptResponse
		err := s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
			rec, err := repos.Transfers().FindByID(ctx, id)
			if err != nil {
				return err
			}
			previous := rec.Status
			if err := rec.TransitionTo(target); err != nil {
				return err
			}
			if rec.Status == previous {
				response := ToTransferReceiptResponse(rec)
				result = &response
				return nil
			}
			if rec.Status == receipt.StatusCompleted {
				if err := s.applier.Apply(ctx, repos.Inventory(), rec.StockMovements()); err != nil {
					return err
				}
			}
			if err := repos.Transfers().SaveWithLock(ctx, rec); err != nil {
				return err
			}
			response := ToTransferReceiptResponse(rec)
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
