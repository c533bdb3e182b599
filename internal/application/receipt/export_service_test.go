package receipt

import (
	"context"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/warehouse/backend/internal/domain/catalog"
	"github.com/warehouse/backend/internal/domain/inventory"
	"github.com/warehouse/backend/internal/domain/receipt"
	"github.com/warehouse/backend/internal/domain/shared"
)

type exportEnv struct {
	svc       *ExportService
	exports   *fakeExportRepo
	ledger    *fakeLedger
	warehouse *catalog.Warehouse
	product   *catalog.Product
	createdBy uuid.UUID
}

func newExportEnv(t *testing.T) *exportEnv {
	t.Helper()

	warehouse, err := catalog.NewWarehouse("Central", catalog.WarehouseTypeMain, "1 Dock Rd")
	require.NoError(t, err)
	product, err := catalog.NewProduct("SKU-001", "Widget", "pcs", decimal.NewFromInt(5), decimal.NewFromInt(8), 0, 0)
	require.NoError(t, err)

	products := newFakeProductRepo()
	products.add(product)
	warehouses := newFakeWarehouseRepo()
	warehouses.add(warehouse)

	env := &exportEnv{
		exports:   newFakeExportRepo(),
		ledger:    newFakeLedger(),
		warehouse: warehouse,
		product:   product,
		createdBy: uuid.New(),
	}
	scope := &NoOpTransactionScope{
		InventoryRepo: env.ledger,
		ExportRepo:    env.exports,
	}
	env.svc = NewExportService(scope, env.exports, products, warehouses)
	return env
}

func (e *exportEnv) createReceipt(t *testing.T, lines ...LineRequest) uuid.UUID {
	t.Helper()
	resp, err := e.svc.Create(context.Background(), e.createdBy, CreateExportRequest{
		WarehouseID: e.warehouse.ID,
		ExportType:  "sale",
		Lines:       lines,
	})
	require.NoError(t, err)
	return resp.ID
}

func TestExportService_Create(t *testing.T) {
	t.Run("persists a pending receipt with customer fields", func(t *testing.T) {
		env := newExportEnv(t)

		resp, err := env.svc.Create(context.Background(), env.createdBy, CreateExportRequest{
			WarehouseID:   env.warehouse.ID,
			ExportType:    "sale",
			CustomerName:  "Alice",
			CustomerPhone: "0123456789",
			Lines: []LineRequest{
				{ProductID: env.product.ID, Quantity: 3, UnitPrice: decimal.NewFromInt(8)},
			},
		})
		require.NoError(t, err)

		assert.Equal(t, "EX-2026-00001", resp.ReceiptNumber)
		assert.Equal(t, "pending", resp.Status)
		assert.Equal(t, "sale", resp.ExportType)
		assert.Equal(t, "Alice", resp.CustomerName)
		assert.True(t, resp.TotalAmount.Equal(decimal.NewFromInt(24)))
	})

	t.Run("does not check availability at creation", func(t *testing.T) {
		env := newExportEnv(t)

		// Nothing in stock, yet the pending export is accepted.
		id := env.createReceipt(t, LineRequest{ProductID: env.product.ID, Quantity: 100, UnitPrice: decimal.NewFromInt(1)})
		assert.NotEqual(t, uuid.Nil, id)
		assert.Empty(t, env.ledger.adjustments)
	})

	t.Run("unknown export type rejected", func(t *testing.T) {
		env := newExportEnv(t)
		_, err := env.svc.Create(context.Background(), env.createdBy, CreateExportRequest{
			WarehouseID: env.warehouse.ID,
			ExportType:  "gift",
			Lines:       []LineRequest{{ProductID: env.product.ID, Quantity: 1, UnitPrice: decimal.NewFromInt(1)}},
		})
		assert.Error(t, err)
	})
}

func TestExportService_UpdateStatus(t *testing.T) {
	t.Run("completion deducts from the source warehouse", func(t *testing.T) {
		env := newExportEnv(t)
		env.ledger.set(env.product.ID, env.warehouse.ID, 20)
		id := env.createReceipt(t, LineRequest{ProductID: env.product.ID, Quantity: 8, UnitPrice: decimal.NewFromInt(1)})

		_, err := env.svc.UpdateStatus(context.Background(), id, receipt.StatusApproved)
		require.NoError(t, err)
		resp, err := env.svc.UpdateStatus(context.Background(), id, receipt.StatusCompleted)
		require.NoError(t, err)
		assert.Equal(t, "completed", resp.Status)

		quantity, err := env.ledger.GetQuantity(context.Background(), env.product.ID, env.warehouse.ID)
		require.NoError(t, err)
		assert.Equal(t, int64(12), quantity)
	})

	t.Run("insufficient stock fails completion without side effects", func(t *testing.T) {
		env := newExportEnv(t)
		env.ledger.set(env.product.ID, env.warehouse.ID, 5)
		id := env.createReceipt(t, LineRequest{ProductID: env.product.ID, Quantity: 8, UnitPrice: decimal.NewFromInt(1)})

		_, err := env.svc.UpdateStatus(context.Background(), id, receipt.StatusApproved)
		require.NoError(t, err)

		_, err = env.svc.UpdateStatus(context.Background(), id, receipt.StatusCompleted)
		var stockErr *inventory.InsufficientStockError
		require.ErrorAs(t, err, &stockErr)
		assert.Equal(t, env.product.ID, stockErr.ProductID)
		assert.Equal(t, env.warehouse.ID, stockErr.WarehouseID)
		assert.Equal(t, int64(8), stockErr.Requested)
		assert.Equal(t, int64(5), stockErr.Available)

		// Nothing applied, receipt still approved.
		assert.Empty(t, env.ledger.adjustments)
		loaded, err := env.exports.FindByID(context.Background(), id)
		require.NoError(t, err)
		assert.Equal(t, receipt.StatusApproved, loaded.Status)
	})

	t.Run("cancellation has no stock effect", func(t *testing.T) {
		env := newExportEnv(t)
		env.ledger.set(env.product.ID, env.warehouse.ID, 5)
		id := env.createReceipt(t, LineRequest{ProductID: env.product.ID, Quantity: 3, UnitPrice: decimal.NewFromInt(1)})

		resp, err := env.svc.UpdateStatus(context.Background(), id, receipt.StatusCancelled)
		require.NoError(t, err)
		assert.Equal(t, "cancelled", resp.Status)
		assert.Empty(t, env.ledger.adjustments)
	})

	t.Run("concurrent completions against shared stock let exactly one through", func(t *testing.T) {
		env := newExportEnv(t)
		env.ledger.set(env.product.ID, env.warehouse.ID, 10)

		ids := []uuid.UUID{
			env.createReceipt(t, LineRequest{ProductID: env.product.ID, Quantity: 6, UnitPrice: decimal.NewFromInt(1)}),
			env.createReceipt(t, LineRequest{ProductID: env.product.ID, Quantity: 6, UnitPrice: decimal.NewFromInt(1)}),
		}
		for _, id := range ids {
			_, err := env.svc.UpdateStatus(context.Background(), id, receipt.StatusApproved)
			require.NoError(t, err)
		}

		errs := make([]error, len(ids))
		var wg sync.WaitGroup
		for i, id := range ids {
			wg.Add(1)
			go func(i int, id uuid.UUID) {
				defer wg.Done()
				_, errs[i] = env.svc.UpdateStatus(context.Background(), id, receipt.StatusCompleted)
			}(i, id)
		}
		wg.Wait()

		var completed, failed int
		for i, err := range errs {
			if err == nil {
				completed++
				continue
			}
			failed++
			var stockErr *inventory.InsufficientStockError
			require.ErrorAs(t, err, &stockErr)

			loaded, findErr := env.exports.FindByID(context.Background(), ids[i])
			require.NoError(t, findErr)
			assert.Equal(t, receipt.StatusApproved, loaded.Status)
		}
		assert.Equal(t, 1, completed)
		assert.Equal(t, 1, failed)

		quantity, err := env.ledger.GetQuantity(context.Background(), env.product.ID, env.warehouse.ID)
		require.NoError(t, err)
		assert.Equal(t, int64(4), quantity)
		assert.Len(t, env.ledger.adjustments, 1)
	})

	t.Run("conflict error propagates after exhausted retries", func(t *testing.T) {
		env := newExportEnv(t)
		id := env.createReceipt(t, LineRequest{ProductID: env.product.ID, Quantity: 1, UnitPrice: decimal.NewFromInt(1)})
		env.exports.lockConflicts = maxTransitionAttempts

		_, err := env.svc.UpdateStatus(context.Background(), id, receipt.StatusApproved)
		assert.ErrorIs(t, err, shared.ErrConcurrencyConflict)
	})
}
