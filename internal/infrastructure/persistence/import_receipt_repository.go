package persistence

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/warehouse/backend/internal/domain/receipt"
	"github.com/warehouse/backend/internal/domain/shared"
	"gorm.io/gorm"
)

// GormImportRepository implements receipt.ImportRepository using GORM
type GormImportRepository struct {
	db *gorm.DB
}

// NewGormImportRepository creates a new GormImportRepository
func NewGormImportRepository(db *gorm.DB) *GormImportRepository {
	return &GormImportRepository{db: db}
}

// FindByID loads an import receipt with its lines
func (r *GormImportRepository) FindByID(ctx context.Context, id uuid.UUID) (*receipt.ImportReceipt, error) {
	var rec receipt.ImportReceipt
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

// FindAll finds import receipts matching the filter
func (r *GormImportRepository) FindAll(ctx context.Context, filter shared.Filter) ([]receipt.ImportReceipt, error) {
	var receipts []receipt.ImportReceipt
	query := applyReceiptFilter(r.db.WithContext(ctx).Model(&receipt.ImportReceipt{}), filter, true)
	if err := query.Preload("Lines").Find(&receipts).Error; err != nil {
		return nil, err
	}
	return receipts, nil
}

// Count counts import receipts matching the filter
func (r *GormImportRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := applyReceiptFilter(r.db.WithContext(ctx).Model(&receipt.ImportReceipt{}), filter, false)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Save creates or updates an import receipt with its lines
func (r *GormImportRepository) Save(ctx context.Context, rec *receipt.ImportReceipt) error {
	return r.db.WithContext(ctx).Save(rec).Error
}

// SaveWithLock persists a status change with an optimistic version check
func (r *GormImportRepository) SaveWithLock(ctx context.Context, rec *receipt.ImportReceipt) error {
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

// GenerateReceiptNumber returns the next number in the IM-YYYY-NNNNN sequence
func (r *GormImportRepository) GenerateReceiptNumber(ctx context.Context) (string, error) {
	return generateReceiptNumber(ctx, r.db, &receipt.ImportReceipt{}, "IM")
}

// SumCompletedAmountBetween sums the total amount of completed receipts in the range
func (r *GormImportRepository) SumCompletedAmountBetween(ctx context.Context, from, to time.Time) (decimal.Decimal, error) {
	return sumCompletedAmount(ctx, r.db, &receipt.ImportReceipt{}, from, to)
}

// CountByStatus counts import receipts in the given status
func (r *GormImportRepository) CountByStatus(ctx context.Context, status receipt.Status) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&receipt.ImportReceipt{}).
		Where("status = ?", status).
		Count(&count).Error
	return count, err
}

var _ receipt.ImportRepository = (*GormImportRepository)(nil)

// applyReceiptFilter applies the common receipt listing options
func applyReceiptFilter(query *gorm.DB, filter shared.Filter, paginate bool) *gorm.DB {
	if filter.Search != "" {
		query = query.Where("receipt_number ILIKE ?", "%"+filter.Search+"%")
	}
	if status, ok := filter.Filters["status"]; ok {
		query = query.Where("status = ?", status)
	}

	if !paginate {
		return query
	}

	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}

	sortField := ValidateSortField(filter.OrderBy, ReceiptSortFields, "created_at")
	return query.Order(sortField + " " + ValidateSortOrder(filter.OrderDir))
}

// generateReceiptNumber returns the next number in the {prefix}-YYYY-NNNNN
// sequence for the given receipt table. The sequence restarts every year.
func generateReceiptNumber(ctx context.Context, db *gorm.DB, model interface{}, prefix string) (string, error) {
	yearPrefix := fmt.Sprintf("%s-%d-", prefix, time.Now().Year())

	var lastNumber string
	err := db.WithContext(ctx).
		Model(model).
		Select("receipt_number").
		Where("receipt_number LIKE ?", yearPrefix+"%").
		Order("receipt_number DESC").
		Limit(1).
		Scan(&lastNumber).Error
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return "", err
	}

	var nextNum int64 = 1
	if lastNumber != "" {
		parts := strings.Split(lastNumber, "-")
		if len(parts) == 3 {
			var num int64
			if _, parseErr := fmt.Sscanf(parts[2], "%d", &num); parseErr == nil {
				nextNum = num + 1
			}
		}
	}

	return fmt.Sprintf("%s%05d", yearPrefix, nextNum), nil
}

// sumCompletedAmount sums total_amount over completed receipts whose last
// update falls in the range
func sumCompletedAmount(ctx context.Context, db *gorm.DB, model interface{}, from, to time.Time) (decimal.Decimal, error) {
	var total decimal.Decimal
	err := db.WithContext(ctx).
		Model(model).
		Select("COALESCE(SUM(total_amount), 0)").
		Where("status = ? AND updated_at BETWEEN ? AND ?", receipt.StatusCompleted, from, to).
		Scan(&total).Error
	if err != nil {
		return decimal.Zero, err
	}
	return total, nil
}
