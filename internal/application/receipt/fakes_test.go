package receipt

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/warehouse/backend/internal/domain/catalog"
	"github.com/warehouse/backend/internal/domain/inventory"
	"github.com/warehouse/backend/internal/domain/receipt"
	"github.com/warehouse/backend/internal/domain/shared"
)

// fakeLedger is an in-memory inventory.Repository keyed by (product, warehouse).
// The mutex makes ApplyAdjustment's check-and-update atomic so the fake can
// stand in for the conditional UPDATE under concurrent completions.
type fakeLedger struct {
	mu          sync.Mutex
	quantities  map[string]int64
	adjustments []inventory.Movement
}

func newFakeLedger() *fakeLedger {
	return &fakeLedger{quantities: make(map[string]int64)}
}

func ledgerKey(productID, warehouseID uuid.UUID) string {
	return productID.String() + "/" + warehouseID.String()
}

func (l *fakeLedger) set(productID, warehouseID uuid.UUID, quantity int64) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.quantities[ledgerKey(productID, warehouseID)] = quantity
}

func (l *fakeLedger) FindByID(context.Context, uuid.UUID) (*inventory.Record, error) {
	return nil, shared.ErrNotFound
}

func (l *fakeLedger) FindByProductAndWarehouse(context.Context, uuid.UUID, uuid.UUID) (*inventory.Record, error) {
	return nil, shared.ErrNotFound
}

func (l *fakeLedger) FindAll(context.Context, shared.Filter) ([]inventory.Record, error) {
	return nil, nil
}

func (l *fakeLedger) FindByWarehouse(context.Context, uuid.UUID) ([]inventory.Record, error) {
	return nil, nil
}

func (l *fakeLedger) FindByProduct(context.Context, uuid.UUID) ([]inventory.Record, error) {
	return nil, nil
}

func (l *fakeLedger) FindLowStock(context.Context) ([]inventory.LowStockItem, error) {
	return nil, nil
}

func (l *fakeLedger) GetQuantity(_ context.Context, productID, warehouseID uuid.UUID) (int64, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.quantities[ledgerKey(productID, warehouseID)], nil
}

func (l *fakeLedger) ApplyAdjustment(_ context.Context, productID, warehouseID uuid.UUID, delta int64) (int64, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	key := ledgerKey(productID, warehouseID)
	next := l.quantities[key] + delta
	if next < 0 {
		return 0, &inventory.InsufficientStockError{
			ProductID:   productID,
			WarehouseID: warehouseID,
			Requested:   -delta,
			Available:   l.quantities[key],
		}
	}
	l.quantities[key] = next
	l.adjustments = append(l.adjustments, inventory.Movement{
		ProductID:   productID,
		WarehouseID: warehouseID,
		Delta:       delta,
	})
	return next, nil
}

func (l *fakeLedger) Save(context.Context, *inventory.Record) error         { return nil }
func (l *fakeLedger) SaveWithLock(context.Context, *inventory.Record) error { return nil }

// fakeImportRepo keeps receipts in memory. FindByID returns a copy so the
// services' retry loop observes the stored state, not its own mutations.
// lockConflicts makes the next N SaveWithLock calls fail with a concurrency
// conflict.
type fakeImportRepo struct {
	receipts      map[uuid.UUID]receipt.ImportReceipt
	nextNumber    int
	lockConflicts int
	lockCalls     int
}

func newFakeImportRepo() *fakeImportRepo {
	return &fakeImportRepo{receipts: make(map[uuid.UUID]receipt.ImportReceipt)}
}

func (r *fakeImportRepo) FindByID(_ context.Context, id uuid.UUID) (*receipt.ImportReceipt, error) {
	rec, ok := r.receipts[id]
	if !ok {
		return nil, shared.ErrNotFound
	}
	return &rec, nil
}

func (r *fakeImportRepo) FindAll(context.Context, shared.Filter) ([]receipt.ImportReceipt, error) {
	receipts := make([]receipt.ImportReceipt, 0, len(r.receipts))
	for _, rec := range r.receipts {
		receipts = append(receipts, rec)
	}
	return receipts, nil
}

func (r *fakeImportRepo) Count(context.Context, shared.Filter) (int64, error) {
	return int64(len(r.receipts)), nil
}

func (r *fakeImportRepo) Save(_ context.Context, rec *receipt.ImportReceipt) error {
	r.receipts[rec.ID] = *rec
	return nil
}

func (r *fakeImportRepo) SaveWithLock(_ context.Context, rec *receipt.ImportReceipt) error {
	r.lockCalls++
	if r.lockConflicts > 0 {
		r.lockConflicts--
		return shared.ErrConcurrencyConflict
	}
	r.receipts[rec.ID] = *rec
	return nil
}

func (r *fakeImportRepo) GenerateReceiptNumber(context.Context) (string, error) {
	r.nextNumber++
	return fmt.Sprintf("IM-2026-%05d", r.nextNumber), nil
}

func (r *fakeImportRepo) SumCompletedAmountBetween(context.Context, time.Time, time.Time) (decimal.Decimal, error) {
	return decimal.Zero, nil
}

func (r *fakeImportRepo) CountByStatus(context.Context, receipt.Status) (int64, error) {
	return 0, nil
}

type fakeExportRepo struct {
	mu            sync.Mutex
	receipts      map[uuid.UUID]receipt.ExportReceipt
	nextNumber    int
	lockConflicts int
	lockCalls     int
}

func newFakeExportRepo() *fakeExportRepo {
	return &fakeExportRepo{receipts: make(map[uuid.UUID]receipt.ExportReceipt)}
}

func (r *fakeExportRepo) FindByID(_ context.Context, id uuid.UUID) (*receipt.ExportReceipt, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	rec, ok := r.receipts[id]
	if !ok {
		return nil, shared.ErrNotFound
	}
	return &rec, nil
}

func (r *fakeExportRepo) FindAll(context.Context, shared.Filter) ([]receipt.ExportReceipt, error) {
	receipts := make([]receipt.ExportReceipt, 0, len(r.receipts))
	for _, rec := range r.receipts {
		receipts = append(receipts, rec)
	}
	return receipts, nil
}

func (r *fakeExportRepo) Count(context.Context, shared.Filter) (int64, error) {
	return int64(len(r.receipts)), nil
}

func (r *fakeExportRepo) Save(_ context.Context, rec *receipt.ExportReceipt) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.receipts[rec.ID] = *rec
	return nil
}

func (r *fakeExportRepo) SaveWithLock(_ context.Context, rec *receipt.ExportReceipt) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.lockCalls++
	if r.lockConflicts > 0 {
		r.lockConflicts--
		return shared.ErrConcurrencyConflict
	}
	r.receipts[rec.ID] = *rec
	return nil
}

func (r *fakeExportRepo) GenerateReceiptNumber(context.Context) (string, error) {
	r.nextNumber++
	return fmt.Sprintf("EX-2026-%05d", r.nextNumber), nil
}

func (r *fakeExportRepo) SumCompletedAmountBetween(context.Context, time.Time, time.Time) (decimal.Decimal, error) {
	return decimal.Zero, nil
}

func (r *fakeExportRepo) CountByStatus(context.Context, receipt.Status) (int64, error) {
	return 0, nil
}

type fakeTransferRepo struct {
	receipts      map[uuid.UUID]receipt.TransferReceipt
	nextNumber    int
	lockConflicts int
	lockCalls     int
}

func newFakeTransferRepo() *fakeTransferRepo {
	return &fakeTransferRepo{receipts: make(map[uuid.UUID]receipt.TransferReceipt)}
}

func (r *fakeTransferRepo) FindByID(_ context.Context, id uuid.UUID) (*receipt.TransferReceipt, error) {
	rec, ok := r.receipts[id]
	if !ok {
		return nil, shared.ErrNotFound
	}
	return &rec, nil
}

func (r *fakeTransferRepo) FindAll(context.Context, shared.Filter) ([]receipt.TransferReceipt, error) {
	receipts := make([]receipt.TransferReceipt, 0, len(r.receipts))
	for _, rec := range r.receipts {
		receipts = append(receipts, rec)
	}
	return receipts, nil
}

func (r *fakeTransferRepo) Count(context.Context, shared.Filter) (int64, error) {
	return int64(len(r.receipts)), nil
}

func (r *fakeTransferRepo) Save(_ context.Context, rec *receipt.TransferReceipt) error {
	r.receipts[rec.ID] = *rec
	return nil
}

func (r *fakeTransferRepo) SaveWithLock(_ context.Context, rec *receipt.TransferReceipt) error {
	r.lockCalls++
	if r.lockConflicts > 0 {
		r.lockConflicts--
		return shared.ErrConcurrencyConflict
	}
	r.receipts[rec.ID] = *rec
	return nil
}

func (r *fakeTransferRepo) GenerateReceiptNumber(context.Context) (string, error) {
	r.nextNumber++
	return fmt.Sprintf("TR-2026-%05d", r.nextNumber), nil
}

func (r *fakeTransferRepo) CountByStatus(context.Context, receipt.Status) (int64, error) {
	return 0, nil
}

type fakeProductRepo struct {
	products map[uuid.UUID]catalog.Product
}

func newFakeProductRepo() *fakeProductRepo {
	return &fakeProductRepo{products: make(map[uuid.UUID]catalog.Product)}
}

func (r *fakeProductRepo) add(p *catalog.Product) { r.products[p.ID] = *p }

func (r *fakeProductRepo) FindByID(_ context.Context, id uuid.UUID) (*catalog.Product, error) {
	p, ok := r.products[id]
	if !ok {
		return nil, shared.ErrNotFound
	}
	return &p, nil
}

func (r *fakeProductRepo) FindBySKU(context.Context, string) (*catalog.Product, error) {
	return nil, shared.ErrNotFound
}

func (r *fakeProductRepo) FindAll(context.Context, shared.Filter) ([]catalog.Product, error) {
	return nil, nil
}

func (r *fakeProductRepo) FindActive(context.Context) ([]catalog.Product, error) { return nil, nil }

func (r *fakeProductRepo) FindByCategory(context.Context, uuid.UUID) ([]catalog.Product, error) {
	return nil, nil
}

func (r *fakeProductRepo) Count(context.Context, shared.Filter) (int64, error) { return 0, nil }

func (r *fakeProductRepo) Save(_ context.Context, p *catalog.Product) error {
	r.products[p.ID] = *p
	return nil
}

func (r *fakeProductRepo) Delete(context.Context, uuid.UUID) error { return nil }

type fakeWarehouseRepo struct {
	warehouses map[uuid.UUID]catalog.Warehouse
}

func newFakeWarehouseRepo() *fakeWarehouseRepo {
	return &fakeWarehouseRepo{warehouses: make(map[uuid.UUID]catalog.Warehouse)}
}

func (r *fakeWarehouseRepo) add(w *catalog.Warehouse) { r.warehouses[w.ID] = *w }

func (r *fakeWarehouseRepo) FindByID(_ context.Context, id uuid.UUID) (*catalog.Warehouse, error) {
	w, ok := r.warehouses[id]
	if !ok {
		return nil, shared.ErrNotFound
	}
	return &w, nil
}

func (r *fakeWarehouseRepo) FindAll(context.Context, shared.Filter) ([]catalog.Warehouse, error) {
	return nil, nil
}

func (r *fakeWarehouseRepo) FindActive(context.Context) ([]catalog.Warehouse, error) {
	return nil, nil
}

func (r *fakeWarehouseRepo) Count(context.Context, shared.Filter) (int64, error) { return 0, nil }

func (r *fakeWarehouseRepo) Save(_ context.Context, w *catalog.Warehouse) error {
	r.warehouses[w.ID] = *w
	return nil
}

func (r *fakeWarehouseRepo) Delete(context.Context, uuid.UUID) error { return nil }

var (
	_ inventory.Repository        = (*fakeLedger)(nil)
	_ receipt.ImportRepository    = (*fakeImportRepo)(nil)
	_ receipt.ExportRepository    = (*fakeExportRepo)(nil)
	_ receipt.TransferRepository  = (*fakeTransferRepo)(nil)
	_ catalog.ProductRepository   = (*fakeProductRepo)(nil)
	_ catalog.WarehouseRepository = (*fakeWarehouseRepo)(nil)
)
