package report

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// DateRangeFilter bounds a report to a date range.
// Both ends are inclusive; zero values default to the current month.
type DateRangeFilter struct {
	From time.Time `form:"from" time_format:"2006-01-02"`
	To   time.Time `form:"to" time_format:"2006-01-02"`
}

// InventoryReportRow is one product's stock position in one warehouse
type InventoryReportRow struct {
	ProductID   uuid.UUID       `json:"productId"`
	ProductSKU  string          `json:"productSku"`
	ProductName string          `json:"productName"`
	WarehouseID uuid.UUID       `json:"warehouseId"`
	Quantity    int64           `json:"quantity"`
	CostValue   decimal.Decimal `json:"costValue"`
}

// InventoryReport summarizes the stock position across all warehouses
type InventoryReport struct {
	TotalQuantity  int64                `json:"totalQuantity"`
	TotalCostValue decimal.Decimal      `json:"totalCostValue"`
	LowStockCount  int                  `json:"lowStockCount"`
	Rows           []InventoryReportRow `json:"rows"`
}

// ImportExportReport summarizes completed receipt value over a date range
type ImportExportReport struct {
	From        time.Time       `json:"from"`
	To          time.Time       `json:"to"`
	ImportTotal decimal.Decimal `json:"importTotal"`
	ExportTotal decimal.Decimal `json:"exportTotal"`
	NetChange   decimal.Decimal `json:"netChange"`
}

// StatusCounts breaks one receipt kind down by status
type StatusCounts struct {
	Pending   int64 `json:"pending"`
	Approved  int64 `json:"approved"`
	Completed int64 `json:"completed"`
	Cancelled int64 `json:"cancelled"`
}

// Dashboard is the landing-page summary
type Dashboard struct {
	ProductCount   int64           `json:"productCount"`
	WarehouseCount int64           `json:"warehouseCount"`
	LowStockCount  int             `json:"lowStockCount"`
	StockValue     decimal.Decimal `json:"stockValue"`
	Imports        StatusCounts    `json:"imports"`
	Exports        StatusCounts    `json:"exports"`
	Transfers      StatusCounts    `json:"transfers"`
}
