package persistence

import (
	"context"

	apprcpt "github.com/warehouse/backend/internal/application/receipt"
	"github.com/warehouse/backend/internal/domain/inventory"
	"github.com/warehouse/backend/internal/domain/receipt"
	"gorm.io/gorm"
)

// GormTransactionScope implements the receipt TransactionScope using GORM
// transactions, making a status change and its stock application atomic.
type GormTransactionScope struct {
	db *gorm.DB
}

// NewGormTransactionScope creates a new GormTransactionScope
func NewGormTransactionScope(db *gorm.DB) *GormTransactionScope {
	return &GormTransactionScope{db: db}
}

// Execute runs the given function within a database transaction.
// If the function returns an error, the transaction is rolled back.
func (s *GormTransactionScope) Execute(ctx context.Context, fn func(repos apprcpt.TransactionalRepositories) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&gormTransactionalRepositories{tx: tx})
	})
}

type gormTransactionalRepositories struct {
	tx *gorm.DB
}

// Inventory returns the ledger repository scoped to the current transaction
func (r *gormTransactionalRepositories) Inventory() inventory.Repository {
	return NewGormInventoryRepository(r.tx)
}

// Imports returns the import receipt repository scoped to the current transaction
func (r *gormTransactionalRepositories) Imports() receipt.ImportRepository {
	return NewGormImportRepository(r.tx)
}

// Exports returns the export receipt repository scoped to the current transaction
func (r *gormTransactionalRepositories) Exports() receipt.ExportRepository {
	return NewGormExportRepository(r.tx)
}

// Transfers returns the transfer receipt repository scoped to the current transaction
func (r *gormTransactionalRepositories) Transfers() receipt.TransferRepository {
	return NewGormTransferRepository(r.tx)
}

var _ apprcpt.TransactionScope = (*GormTransactionScope)(nil)
var _ apprcpt.TransactionalRepositories = (*gormTransactionalRepositories)(nil)
