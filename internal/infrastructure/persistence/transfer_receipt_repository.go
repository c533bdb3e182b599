package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/warehouse/backend/internal/domain/receipt"
	"github.com/warehouse/backend/internal/domain/shared"
	"gorm.io/gorm"
)

// GormTransferRepository implements receipt.TransferRepository using GORM
type GormTransferRepository struct {
	db *gorm.DB
}

// NewGormTransferRepository creates a new GormTransferRepository
func NewGormTransferRepository(db *gorm.DB) *GormTransferRepository {
	return &GormTransferRepository{db: db}
}

// FindByID loads a transfer receipt with its items
func (r *GormTransferRepository) FindByID(ctx context.Context, id uuid.UUID) (*receipt.TransferReceipt, error) {
	var rec receipt.TransferReceipt
	if err := r.db.WithContext(ctx).
		Preload("Items").
		First(&rec, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &rec, nil
}

// FindAll finds transfer receipts matching the filter
func (r *GormTransferRepository) FindAll(ctx context.Context, filter shared.Filter) ([]receipt.TransferReceipt, error) {
	var receipts []receipt.TransferReceipt
	query := applyReceiptFilter(r.db.WithContext(ctx).Model(&receipt.TransferReceipt{}), filter, true)
	if err := query.Preload("Items").Find(&receipts).Error; err != nil {
		return nil, err
	}
	return receipts, nil
}

// Count counts transfer receipts matching the filter
func (r *GormTransferRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := applyReceiptFilter(r.db.WithContext(ctx).Model(&receipt.TransferReceipt{}), filter, false)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Save creates or updates a transfer receipt with its items
func (r *GormTransferRepository) Save(ctx context.Context, rec *receipt.TransferReceipt) error {
	return r.db.WithContext(ctx).Save(rec).Error
}

// SaveWithLock persists a status change with an optimistic version check
func (r *GormTransferRepository) SaveWithLock(ctx context.Context, rec *receipt.TransferReceipt) error {
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

// GenerateReceiptNumber returns the next number in the TR-YYYY-NNNNN sequence
func (r *GormTransferRepository) GenerateReceiptNumber(ctx context.Context) (string, error) {
	return generateReceiptNumber(ctx, r.db, &receipt.TransferReceipt{}, "TR")
}

// CountByStatus counts transfer receipts in the given status
func (r *GormTransferRepository) CountByStatus(ctx context.Context, status receipt.Status) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&receipt.TransferReceipt{}).
		Where("status = ?", status).
		Count(&count).Error
	return count, err
}

var _ receipt.TransferRepository = (*GormTransferRepository)(nil)
