package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/warehouse/backend/internal/domain/inventory"
	"github.com/warehouse/backend/internal/domain/shared"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormInventoryRepository implements inventory.Repository using GORM
type GormInventoryRepository struct {
	db *gorm.DB
}

// NewGormInventoryRepository creates a new GormInventoryRepository
func NewGormInventoryRepository(db *gorm.DB) *GormInventoryRepository {
	return &GormInventoryRepository{db: db}
}

// FindByID finds a ledger record by its ID
func (r *GormInventoryRepository) FindByID(ctx context.Context, id uuid.UUID) (*inventory.Record, error) {
	var record inventory.Record
	if err := r.db.WithContext(ctx).First(&record, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &record, nil
}

// FindByProductAndWarehouse finds the ledger record for one (product, warehouse) pair
func (r *GormInventoryRepository) FindByProductAndWarehouse(ctx context.Context, productID, warehouseID uuid.UUID) (*inventory.Record, error) {
	var record inventory.Record
	if err := r.db.WithContext(ctx).
		Where("product_id = ? AND warehouse_id = ?", productID, warehouseID).
		First(&record).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &record, nil
}

// FindAll finds ledger records matching the filter
func (r *GormInventoryRepository) FindAll(ctx context.Context, filter shared.Filter) ([]inventory.Record, error) {
	var records []inventory.Record
	query := r.applyFilter(r.db.WithContext(ctx).Model(&inventory.Record{}), filter)
	if err := query.Find(&records).Error; err != nil {
		return nil, err
	}
	return records, nil
}

// FindByWarehouse finds all ledger records of one warehouse
func (r *GormInventoryRepository) FindByWarehouse(ctx context.Context, warehouseID uuid.UUID) ([]inventory.Record, error) {
	var records []inventory.Record
	if err := r.db.WithContext(ctx).
		Where("warehouse_id = ?", warehouseID).
		Order("created_at DESC").
		Find(&records).Error; err != nil {
		return nil, err
	}
	return records, nil
}

// FindByProduct finds the per-warehouse ledger records of one product
func (r *GormInventoryRepository) FindByProduct(ctx context.Context, productID uuid.UUID) ([]inventory.Record, error) {
	var records []inventory.Record
	if err := r.db.WithContext(ctx).
		Where("product_id = ?", productID).
		Order("created_at DESC").
		Find(&records).Error; err != nil {
		return nil, err
	}
	return records, nil
}

// FindLowStock joins ledger records with products and returns records at or
// below the product's minimum stock threshold
func (r *GormInventoryRepository) FindLowStock(ctx context.Context) ([]inventory.LowStockItem, error) {
	var items []inventory.LowStockItem
	err := r.db.WithContext(ctx).
		Model(&inventory.Record{}).
		Select("inventory_records.*, products.sku AS product_sku, products.name AS product_name, products.min_stock AS min_stock").
		Joins("JOIN products ON products.id = inventory_records.product_id").
		Where("products.is_active AND products.min_stock > 0 AND inventory_records.quantity <= products.min_stock").
		Find(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}

// GetQuantity returns the stored quantity, or 0 when no record exists
func (r *GormInventoryRepository) GetQuantity(ctx context.Context, productID, warehouseID uuid.UUID) (int64, error) {
	record, err := r.FindByProductAndWarehouse(ctx, productID, warehouseID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return 0, nil
		}
		return 0, err
	}
	return record.Quantity, nil
}

// ApplyAdjustment atomically adds delta to the record's quantity. The update
// is a single conditional statement guarded by quantity + delta >= 0, so the
// non-negative invariant holds under concurrent writers without row locks.
// A missing record is created lazily when the delta is non-negative.
func (r *GormInventoryRepository) ApplyAdjustment(ctx context.Context, productID, warehouseID uuid.UUID, delta int64) (int64, error) {
	result := r.db.WithContext(ctx).
		Model(&inventory.Record{}).
		Where("product_id = ? AND warehouse_id = ? AND quantity + ? >= 0", productID, warehouseID, delta).
		Updates(map[string]interface{}{
			"quantity":   gorm.Expr("quantity + ?", delta),
			"version":    gorm.Expr("version + 1"),
			"updated_at": gorm.Expr("NOW()"),
		})
	if result.Error != nil {
		return 0, result.Error
	}

	if result.RowsAffected == 0 {
		existing, err := r.FindByProductAndWarehouse(ctx, productID, warehouseID)
		switch {
		case err == nil:
			// Record exists, so the guard rejected the delta.
			return 0, &inventory.InsufficientStockError{
				ProductID:   productID,
				WarehouseID: warehouseID,
				Requested:   -delta,
				Available:   existing.Quantity,
			}
		case errors.Is(err, shared.ErrNotFound):
			if delta < 0 {
				return 0, &inventory.InsufficientStockError{
					ProductID:   productID,
					WarehouseID: warehouseID,
					Requested:   -delta,
					Available:   0,
				}
			}
			return r.createWithQuantity(ctx, productID, warehouseID, delta)
		default:
			return 0, err
		}
	}

	return r.GetQuantity(ctx, productID, warehouseID)
}

// createWithQuantity lazily creates the ledger record for a pair's first
// stock movement. A concurrent creation of the same pair loses the unique
// index race and surfaces as ErrConcurrencyConflict for the caller to retry.
func (r *GormInventoryRepository) createWithQuantity(ctx context.Context, productID, warehouseID uuid.UUID, quantity int64) (int64, error) {
	record, err := inventory.NewRecord(productID, warehouseID)
	if err != nil {
		return 0, err
	}
	record.Quantity = quantity

	result := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "product_id"}, {Name: "warehouse_id"}},
			DoNothing: true,
		}).
		Create(record)
	if result.Error != nil {
		return 0, result.Error
	}
	if result.RowsAffected == 0 {
		return 0, shared.ErrConcurrencyConflict
	}
	return record.Quantity, nil
}

// Save creates or updates a ledger record
func (r *GormInventoryRepository) Save(ctx context.Context, record *inventory.Record) error {
	return r.db.WithContext(ctx).Save(record).Error
}

// SaveWithLock saves with optimistic locking (checks version)
func (r *GormInventoryRepository) SaveWithLock(ctx context.Context, record *inventory.Record) error {
	result := r.db.WithContext(ctx).
		Model(record).
		Where("id = ? AND version = ?", record.ID, record.Version-1).
		Updates(map[string]interface{}{
			"quantity":   record.Quantity,
			"location":   record.Location,
			"version":    record.Version,
			"updated_at": record.UpdatedAt,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrConcurrencyConflict
	}
	return nil
}

// applyFilter applies filter options to the query
func (r *GormInventoryRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	for key, value := range filter.Filters {
		switch key {
		case "warehouse_id":
			query = query.Where("warehouse_id = ?", value)
		case "product_id":
			query = query.Where("product_id = ?", value)
		}
	}

	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}

	sortField := ValidateSortField(filter.OrderBy, InventorySortFields, "created_at")
	return query.Order(sortField + " " + ValidateSortOrder(filter.OrderDir))
}

var _ inventory.Repository = (*GormInventoryRepository)(nil)
