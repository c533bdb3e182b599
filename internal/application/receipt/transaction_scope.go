package receipt

import (
	"context"

	"github.com/warehouse/backend/internal/domain/inventory"
	"github.com/warehouse/backend/internal/domain/receipt"
)

// TransactionScope provides transactional access to the repositories a receipt
// completion touches. Everything executed inside one scope commits or rolls
// back atomically, which is what makes a multi-line stock application
// all-or-nothing.
type TransactionScope interface {
	// Execute runs the given function within a database transaction.
	// If the function returns an error, the transaction is rolled back.
	Execute(ctx context.Context, fn func(repos TransactionalRepositories) error) error
}

// TransactionalRepositories exposes the repositories scoped to one transaction
type TransactionalRepositories interface {
	Inventory() inventory.Repository
	Imports() receipt.ImportRepository
	Exports() receipt.ExportRepository
	Transfers() receipt.TransferRepository
}

// NoOpTransactionScope runs the function without a real transaction.
// Used by unit tests that pair it with in-memory repositories.
type NoOpTransactionScope struct {
	InventoryRepo inventory.Repository
	ImportRepo    receipt.ImportRepository
	ExportRepo    receipt.ExportRepository
	TransferRepo  receipt.TransferRepository
}

// Execute runs the function directly
func (s *NoOpTransactionScope) Execute(_ context.Context, fn func(repos TransactionalRepositories) error) error {
	return fn(s)
}

// Inventory returns the inventory repository
func (s *NoOpTransactionScope) Inventory() inventory.Repository { return s.InventoryRepo }

// Imports returns the import receipt repository
func (s *NoOpTransactionScope) Imports() receipt.ImportRepository { return s.ImportRepo }

// Exports returns the export receipt repository
func (s *NoOpTransactionScope) Exports() receipt.ExportRepository { return s.ExportRepo }

// Transfers returns the transfer receipt repository
func (s *NoOpTransactionScope) Transfers() receipt.TransferRepository { return s.TransferRepo }

var _ TransactionScope = (*NoOpTransactionScope)(nil)
var _ TransactionalRepositories = (*NoOpTransactionScope)(nil)
