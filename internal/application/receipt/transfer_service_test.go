package receipt

import (
	"context"
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

type transferEnv struct {
	svc         *TransferService
	transfers   *fakeTransferRepo
	ledger      *fakeLedger
	source      *catalog.Warehouse
	destination *catalog.Warehouse
	product     *catalog.Product
	createdBy   uuid.UUID
}

func newTransferEnv(t *testing.T) *transferEnv {
	t.Helper()

	source, err := catalog.NewWarehouse("Central", catalog.WarehouseTypeMain, "1 Dock Rd")
	require.NoError(t, err)
	destination, err := catalog.NewWarehouse("North Branch", catalog.WarehouseTypeBranch, "9 Hill St")
	require.NoError(t, err)
	product, err := catalog.NewProduct("SKU-001", "Widget", "pcs", decimal.NewFromInt(5), decimal.NewFromInt(8), 0, 0)
	require.NoError(t, err)

	products := newFakeProductRepo()
	products.add(product)
	warehouses := newFakeWarehouseRepo()
	warehouses.add(source)
	warehouses.add(destination)

	env := &transferEnv{
		transfers:   newFakeTransferRepo(),
		ledger:      newFakeLedger(),
		source:      source,
		destination: destination,
		product:     product,
		createdBy:   uuid.New(),
	}
	scope := &NoOpTransactionScope{
		InventoryRepo: env.ledger,
		TransferRepo:  env.transfers,
	}
	env.svc = NewTransferService(scope, env.transfers, products, warehouses)
	return env
}

func (e *transferEnv) createReceipt(t *testing.T, items ...ItemRequest) uuid.UUID {
	t.Helper()
	resp, err := e.svc.Create(context.Background(), e.createdBy, CreateTransferRequest{
		ExportWarehouseID: e.source.ID,
		ImportWarehouseID: e.destination.ID,
		Items:             items,
	})
	require.NoError(t, err)
	return resp.ID
}

func TestTransferService_Create(t *testing.T) {
	t.Run("persists a pending transfer", func(t *testing.T) {
		env := newTransferEnv(t)

		resp, err := env.svc.Create(context.Background(), env.createdBy, CreateTransferRequest{
			ExportWarehouseID: env.source.ID,
			ImportWarehouseID: env.destination.ID,
			Items:             []ItemRequest{{ProductID: env.product.ID, Quantity: 5}},
		})
		require.NoError(t, err)

		assert.Equal(t, "TR-2026-00001", resp.ReceiptNumber)
		assert.Equal(t, "pending", resp.Status)
		require.Len(t, resp.Items, 1)
		assert.Equal(t, int64(5), resp.Items[0].Quantity)
	})

	t.Run("same source and destination rejected", func(t *testing.T) {
		env := newTransferEnv(t)

		_, err := env.svc.Create(context.Background(), env.createdBy, CreateTransferRequest{
			ExportWarehouseID: env.source.ID,
			ImportWarehouseID: env.source.ID,
			Items:             []ItemRequest{{ProductID: env.product.ID, Quantity: 1}},
		})

		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "SAME_WAREHOUSE", domainErr.Code)
	})

	t.Run("unknown destination warehouse rejected", func(t *testing.T) {
		env := newTransferEnv(t)
		_, err := env.svc.Create(context.Background(), env.createdBy, CreateTransferRequest{
			ExportWarehouseID: env.source.ID,
			ImportWarehouseID: uuid.New(),
			Items:             []ItemRequest{{ProductID: env.product.ID, Quantity: 1}},
		})
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})
}

func TestTransferService_UpdateStatus(t *testing.T) {
	t.Run("completion moves stock between warehouses", func(t *testing.T) {
		env := newTransferEnv(t)
		env.ledger.set(env.product.ID, env.source.ID, 10)
		id := env.createReceipt(t, ItemRequest{ProductID: env.product.ID, Quantity: 4})

		resp, err := env.svc.UpdateStatus(context.Background(), id, receipt.StatusCompleted)
		require.NoError(t, err)
		assert.Equal(t, "completed", resp.Status)

		sourceQty, err := env.ledger.GetQuantity(context.Background(), env.product.ID, env.source.ID)
		require.NoError(t, err)
		assert.Equal(t, int64(6), sourceQty)

		destQty, err := env.ledger.GetQuantity(context.Background(), env.product.ID, env.destination.ID)
		require.NoError(t, err)
		assert.Equal(t, int64(4), destQty)
	})

	t.Run("destination record created lazily", func(t *testing.T) {
		env := newTransferEnv(t)
		env.ledger.set(env.product.ID, env.source.ID, 3)
		id := env.createReceipt(t, ItemRequest{ProductID: env.product.ID, Quantity: 3})

		_, err := env.svc.UpdateStatus(context.Background(), id, receipt.StatusCompleted)
		require.NoError(t, err)

		destQty, err := env.ledger.GetQuantity(context.Background(), env.product.ID, env.destination.ID)
		require.NoError(t, err)
		assert.Equal(t, int64(3), destQty)
	})

	t.Run("insufficient source stock fails completion", func(t *testing.T) {
		env := newTransferEnv(t)
		env.ledger.set(env.product.ID, env.source.ID, 2)
		id := env.createReceipt(t, ItemRequest{ProductID: env.product.ID, Quantity: 4})

		_, err := env.svc.UpdateStatus(context.Background(), id, receipt.StatusCompleted)
		var stockErr *inventory.InsufficientStockError
		require.ErrorAs(t, err, &stockErr)
		assert.Equal(t, env.source.ID, stockErr.WarehouseID)
		assert.Equal(t, int64(4), stockErr.Requested)
		assert.Equal(t, int64(2), stockErr.Available)
		assert.Empty(t, env.ledger.adjustments)
	})

	t.Run("approval step not available", func(t *testing.T) {
		env := newTransferEnv(t)
		id := env.createReceipt(t, ItemRequest{ProductID: env.product.ID, Quantity: 1})

		_, err := env.svc.UpdateStatus(context.Background(), id, receipt.StatusApproved)
		var invalidErr *receipt.InvalidTransitionError
		require.ErrorAs(t, err, &invalidErr)
	})

	t.Run("cancellation has no stock effect", func(t *testing.T) {
		env := newTransferEnv(t)
		env.ledger.set(env.product.ID, env.source.ID, 9)
		id := env.createReceipt(t, ItemRequest{ProductID: env.product.ID, Quantity: 2})

		resp, err := env.svc.UpdateStatus(context.Background(), id, receipt.StatusCancelled)
		require.NoError(t, err)
		assert.Equal(t, "cancelled", resp.Status)
		assert.Empty(t, env.ledger.adjustments)
	})
}
