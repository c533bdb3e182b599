package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/warehouse/backend/internal/domain/receipt"
	"github.com/warehouse/backend/internal/domain/shared"
	"gorm.io/gorm"
)

// GormExportRepository implements receipt.ExportRepository using GORM
type GormExportRepository struct {
	db *gorm.DB
}

// NewGormExportRepository creates a new GormExportRepository
func NewGormExportRepository(db *gorm.DB) *GormExportRepository {
	return &GormExportRepository{db: db}
}

// FindByID loads an export receipt with its lines
func (r *GormExportRepository) FindByID(ctx context.Context, id uuid.UUID) (*receipt.ExportReceipt, error) {
	var rec receipt.ExportReceipt
	if err := r.db.WithContext(ctx).
		Preload("Lines").
		First(&rec, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &rec, nil
}

// FindAll finds export receipts matching the filter
func (r *GormExportRepository) FindAll(ctx context.Context, filter shared.Filter) ([]receipt.ExportReceipt, error) {
	var receipts []receipt.ExportReceipt
	query := applyReceiptFilter(r.db.WithContext(ctx).Model(&receipt.ExportReceipt{}), filter, true)
	if err := query.Preload("Lines").Find(&receipts).Error; err != nil {
		return nil, err
	}
	return receipts, nil
}

// Count counts export receipts matching the filter
func (r *GormExportRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := applyReceiptFilter(r.db.WithContext(ctx).Model(&receipt.ExportReceipt{}), filter, false)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Save creates or updates an export receipt with its lines
func (r *GormExportRepository) Save(ctx context.Context, rec *receipt.ExportReceipt) error {
	return r.db.WithContext(ctx).Save(rec).Error
}

// SaveWithLock persists a status change with an optimistic version check
func (r *GormExportRepository) SaveWithLock(ctx context.Context, rec *receipt.ExportReceipt) error {
	result := r.db.WithContext(ctx).
		Model(rec).
		Where("id = ? AND version = ?", rec.ID, rec.Version-1).
		Updates(map[string]interface{}{
			"status":     rec.Status,
			"version":    rec.Version,
			"updated_at": rec.UpdatedAt,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrConcurrencyConflict
	}
	return nil
}

// GenerateReceiptNumber returns the next number in the EX-YYYY-NNNNN sequence
func (r *GormExportRepository) GenerateReceiptNumber(ctx context.Context) (string, error) {
	return generateReceiptNumber(ctx, r.db, &receipt.ExportReceipt{}, "EX")
}

// SumCompletedAmountBetween sums the total amount of completed receipts in the range
func (r *GormExportRepository) SumCompletedAmountBetween(ctx context.Context, from, to time.Time) (decimal.Decimal, error) {
	return sumCompletedAmount(ctx, r.db, &receipt.ExportReceipt{}, from, to)
}

// CountByStatus counts export receipts in the given status
func (r *GormExportRepository) CountByStatus(ctx context.Context, status receipt.Status) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&receipt.ExportReceipt{}).
		Where("status = ?", status).
		Count(&count).Error
	return count, err
}

var _ receipt.ExportRepository = (*GormExportRepository)(nil)
