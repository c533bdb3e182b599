package receipt

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/warehouse/backend/internal/domain/shared"
)

// ImportRepository defines persistence operations for import receipts
type ImportRepository interface {
	// FindByID loads the receipt with its lines
	FindByID(ctx context.Context, id uuid.UUID) (*ImportReceipt, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]ImportReceipt, error)
	Count(ctx context.Context, filter shared.Filter) (int64, error)
	Save(ctx context.Context, receipt *ImportReceipt) error
	// SaveWithLock persists status changes with an optimistic version check;
	// fails with shared.ErrConcurrencyConflict when the row moved underneath.
	SaveWithLock(ctx context.Context, receipt *ImportReceipt) error
	// GenerateReceiptNumber returns the next number in the IM-YYYY-NNNNN sequence
	GenerateReceiptNumber(ctx context.Context) (string, error)
	SumCompletedAmountBetween(ctx context.Context, from, to time.Time) (decimal.Decimal, error)
	CountByStatus(ctx context.Context, status Status) (int64, error)
}

// ExportRepository defines persistence operations for export receipts
type ExportRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*ExportReceipt, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]ExportReceipt, error)
	Count(ctx context.Context, filter shared.Filter) (int64, error)
	Save(ctx context.Context, receipt *ExportReceipt) error
	SaveWithLock(ctx context.Context, receipt *ExportReceipt) error
	// GenerateReceiptNumber returns the next number in the EX-YYYY-NNNNN sequence
	GenerateReceiptNumber(ctx context.Context) (string, error)
	SumCompletedAmountBetween(ctx context.Context, from, to time.Time) (decimal.Decimal, error)
	CountByStatus(ctx context.Context, status Status) (int64, error)
}

// TransferRepository defines persistence operations for transfer receipts
type TransferRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*TransferReceipt, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]TransferReceipt, error)
	Count(ctx context.Context, filter shared.Filter) (int64, error)
	Save(ctx context.Context, receipt *TransferReceipt) error
	SaveWithLock(ctx context.Context, receipt *TransferReceipt) error
	// GenerateReceiptNumber returns the next number in the TR-YYYY-NNNNN sequence
	GenerateReceiptNumber(ctx context.Context) (string, error)
	CountByStatus(ctx context.Context, status Status) (int64, error)
}
