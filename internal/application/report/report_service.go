package report

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/warehouse/backend/internal/domain/catalog"
	"github.com/warehouse/backend/internal/domain/inventory"
	"github.com/warehouse/backend/internal/domain/receipt"
	"github.com/warehouse/backend/internal/domain/shared"
)

// reportPageSize caps the rows pulled into an in-process report
const reportPageSize = 10000

// ReportService aggregates read-only reporting queries
type ReportService struct {
	records    inventory.Repository
	products   catalog.ProductRepository
	warehouses catalog.WarehouseRepository
	imports    receipt.ImportRepository
	exports    receipt.ExportRepository
	transfers  receipt.TransferRepository
}

// NewReportService creates a new ReportService
func NewReportService(
	records inventory.Repository,
	products catalog.ProductRepository,
	warehouses catalog.WarehouseRepository,
	imports receipt.ImportRepository,
	exports receipt.ExportRepository,
	transfers receipt.TransferRepository,
) *ReportService {
	return &ReportService{
		records:    records,
		products:   products,
		warehouses: warehouses,
		imports:    imports,
		exports:    exports,
		transfers:  transfers,
	}
}

func wideFilter() shared.Filter {
	filter := shared.NewFilter()
	filter.PageSize = reportPageSize
	return filter
}

// Inventory builds the stock position report across all warehouses.
// Cost value uses the product's current cost price, not historical cost.
func (s *ReportService) Inventory(ctx context.Context) (*InventoryReport, error) {
	products, err := s.products.FindAll(ctx, wideFilter())
	if err != nil {
		return nil, err
	}
	byID := make(map[uuid.UUID]*catalog.Product, len(products))
	for i := range products {
		byID[products[i].ID] = &products[i]
	}

	records, err := s.records.FindAll(ctx, wideFilter())
	if err != nil {
		return nil, err
	}
	lowStock, err := s.records.FindLowStock(ctx)
	if err != nil {
		return nil, err
	}

	report := &InventoryReport{
		TotalCostValue: decimal.Zero,
		LowStockCount:  len(lowStock),
		Rows:           make([]InventoryReportRow, 0, len(records)),
	}
	for _, record := range records {
		row := InventoryReportRow{
			ProductID:   record.ProductID,
			WarehouseID: record.WarehouseID,
			Quantity:    record.Quantity,
			CostValue:   decimal.Zero,
		}
		if product, ok := byID[record.ProductID]; ok {
			row.ProductSKU = product.SKU
			row.ProductName = product.Name
			row.CostValue = product.CostPrice.Mul(decimal.NewFromInt(record.Quantity))
		}
		report.TotalQuantity += record.Quantity
		report.TotalCostValue = report.TotalCostValue.Add(row.CostValue)
		report.Rows = append(report.Rows, row)
	}
	return report, nil
}

// ImportExport sums the value of completed receipts over the date range.
// An empty range defaults to the current calendar month.
func (s *ReportService) ImportExport(ctx context.Context, filter DateRangeFilter) (*ImportExportReport, error) {
	from, to := normalizeRange(filter)

	importTotal, err := s.imports.SumCompletedAmountBetween(ctx, from, to)
	if err != nil {
		return nil, err
	}
	exportTotal, err := s.exports.SumCompletedAmountBetween(ctx, from, to)
	if err != nil {
		return nil, err
	}

	return &ImportExportReport{
		From:        from,
		To:          to,
		ImportTotal: importTotal,
		ExportTotal: exportTotal,
		NetChange:   importTotal.Sub(exportTotal),
	}, nil
}

// Dashboard builds the landing-page summary
func (s *ReportService) Dashboard(ctx context.Context) (*Dashboard, error) {
	productCount, err := s.products.Count(ctx, shared.NewFilter())
	if err != nil {
		return nil, err
	}
	warehouseCount, err := s.warehouses.Count(ctx, shared.NewFilter())
	if err != nil {
		return nil, err
	}
	lowStock, err := s.records.FindLowStock(ctx)
	if err != nil {
		return nil, err
	}
	stock, err := s.Inventory(ctx)
	if err != nil {
		return nil, err
	}

	importCounts, err := statusCounts(ctx, s.imports.CountByStatus)
	if err != nil {
		return nil, err
	}
	exportCounts, err := statusCounts(ctx, s.exports.CountByStatus)
	if err != nil {
		return nil, err
	}
	transferCounts, err := statusCounts(ctx, s.transfers.CountByStatus)
	if err != nil {
		return nil, err
	}

	return &Dashboard{
		ProductCount:   productCount,
		WarehouseCount: warehouseCount,
		LowStockCount:  len(lowStock),
		StockValue:     stock.TotalCostValue,
		Imports:        importCounts,
		Exports:        exportCounts,
		Transfers:      transferCounts,
	}, nil
}

func statusCounts(ctx context.Context, count func(context.Context, receipt.Status) (int64, error)) (StatusCounts, error) {
	var counts StatusCounts
	var err error
	if counts.Pending, err = count(ctx, receipt.StatusPending); err != nil {
		return counts, err
	}
	if counts.Approved, err = count(ctx, receipt.StatusApproved); err != nil {
		return counts, err
	}
	if counts.Completed, err = count(ctx, receipt.StatusCompleted); err != nil {
		return counts, err
	}
	if counts.Cancelled, err = count(ctx, receipt.StatusCancelled); err != nil {
		return counts, err
	}
	return counts, nil
}

func normalizeRange(filter DateRangeFilter) (time.Time, time.Time) {
	from, to := filter.From, filter.To
	now := time.Now()
	if from.IsZero() {
		from = time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	}
	if to.IsZero() {
		to = now
	} else {
		// Inclusive end of day for a date-only upper bound.
		to = to.Add(24*time.Hour - time.Nanosecond)
	}
	return from, to
}
