package repository

import (
	"time"

	"goldshop-api/internal/model"

	"gorm.io/gorm"
)

// DailyMovement is one row of the stock movement report: per-day totals
// of units leaving (sales) and entering (returns) a branch's warehouses.
type DailyMovement struct {
	Day      time.Time `json:"day"`
	Outbound int64     `json:"outbound"`
	Inbound  int64     `json:"inbound"`
}

type DashboardStats struct {
	ProductCount     int64 `json:"product_count"`
	LowStockRows     int64 `json:"low_stock_rows"`
	PendingTransfers int64 `json:"pending_transfers"`
	InvoicesToday    int64 `json:"invoices_today"`
}

type ReportRepository interface {
	Dashboard(branchID *uint, lowStockThreshold int64) (*DashboardStats, error)
	DailyMovements(branchID *uint, from, to time.Time) ([]DailyMovement, error)
	InvoicesBetween(branchID *uint, from, to time.Time) ([]model.Invoice, error)
}

type reportRepo struct {
	db *gorm.DB
}

func NewReportRepo(db *gorm.DB) ReportRepository {
	return &reportRepo{db}
}

func (r *reportRepo) Dashboard(branchID *uint, lowStockThreshold int64) (*DashboardStats, error) {
	stats := &DashboardStats{}

	if err := r.db.Model(&model.Product{}).Count(&stats.ProductCount).Error; err != nil {
		return nil, err
	}

	stockQ := r.db.Model(&model.StockRow{}).Where("stock_rows.quantity < ?", lowStockThreshold)
	if branchID != nil {
		stockQ = stockQ.Joins("JOIN warehouses ON warehouses.id = stock_rows.warehouse_id").
			Where("warehouses.branch_id = ?", *branchID)
	}
	if err := stockQ.Count(&stats.LowStockRows).Error; err != nil {
		return nil, err
	}

	transferQ := r.db.Model(&model.WarehouseTransaction{}).
		Where("warehouse_transactions.status = ?", model.TransferPending)
	if branchID != nil {
		transferQ = transferQ.Joins("JOIN warehouses ON warehouses.id = warehouse_transactions.from_warehouse_id").
			Where("warehouses.branch_id = ?", *branchID)
	}
	if err := transferQ.Count(&stats.PendingTransfers).Error; err != nil {
		return nil, err
	}

	invoiceQ := r.db.Model(&model.Invoice{}).Where("created_at >= CURRENT_DATE")
	if branchID != nil {
		invoiceQ = invoiceQ.Where("branch_id = ?", *branchID)
	}
	if err := invoiceQ.Count(&stats.InvoicesToday).Error; err != nil {
		return nil, err
	}

	return stats, nil
}

// DailyMovements aggregates invoice items by calendar day. Sales count
// as outbound units, both return types as inbound.
func (r *reportRepo) DailyMovements(branchID *uint, from, to time.Time) ([]DailyMovement, error) {
	var rows []DailyMovement
	q := r.db.
		Table("invoice_items").
		Select(`DATE(invoices.created_at) AS day,
			COALESCE(SUM(CASE WHEN invoices.invoice_type = ? THEN invoice_items.item_quantity ELSE 0 END), 0) AS outbound,
			COALESCE(SUM(CASE WHEN invoices.invoice_type <> ? THEN invoice_items.item_quantity ELSE 0 END), 0) AS inbound`,
			model.InvoiceSale, model.InvoiceSale).
		Joins("JOIN invoices ON invoices.id = invoice_items.invoice_id").
		Where("invoices.created_at >= ? AND invoices.created_at < ?", from, to)
	if branchID != nil {
		q = q.Where("invoices.branch_id = ?", *branchID)
	}
	err := q.Group("DATE(invoices.created_at)").Order("day").Scan(&rows).Error
	return rows, err
}

func (r *reportRepo) InvoicesBetween(branchID *uint, from, to time.Time) ([]model.Invoice, error) {
	var invoices []model.Invoice
	q := r.db.
		Preload("Items").
		Preload("Warehouse").
		Preload("Seller").
		Preload("Customer").
		Preload("CreatedBy").
		Where("created_at >= ? AND created_at < ?", from, to)
	if branchID != nil {
		q = q.Where("branch_id = ?", *branchID)
	}
	err := q.Order("created_at").Find(&invoices).Error
	return invoices, err
}
