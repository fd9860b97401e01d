package service

import (
	"time"

	"goldshop-api/internal/apperr"
	"goldshop-api/internal/model"
	"goldshop-api/internal/policy"
	"goldshop-api/internal/repository"

	"github.com/xuri/excelize/v2"
)

// lowStockThreshold marks ledger rows the dashboard flags for reorder.
const lowStockThreshold = 5

type ReportService interface {
	Dashboard(actor policy.Actor) (*repository.DashboardStats, error)
	DailyMovements(actor policy.Actor, from, to time.Time) ([]repository.DailyMovement, error)
	ExportInvoicesXLSX(actor policy.Actor, from, to time.Time) ([]byte, error)
}

type reportService struct {
	reportRepo repository.ReportRepository
}

func NewReportService(reportRepo repository.ReportRepository) ReportService {
	return &reportService{reportRepo: reportRepo}
}

// scope returns the branch filter for the actor: none for admins, their
// own branch for everyone else.
func scope(actor policy.Actor) (*uint, error) {
	if actor.Role == model.RoleAdmin {
		return nil, nil
	}
	if actor.BranchID == nil {
		return nil, apperr.Wrap(apperr.ErrPermissionDenied, "actor has no branch")
	}
	return actor.BranchID, nil
}

func (s *reportService) Dashboard(actor policy.Actor) (*repository.DashboardStats, error) {
	branchID, err := scope(actor)
	if err != nil {
		return nil, err
	}
	return s.reportRepo.Dashboard(branchID, lowStockThreshold)
}

func (s *reportService) DailyMovements(actor policy.Actor, from, to time.Time) ([]repository.DailyMovement, error) {
	branchID, err := scope(actor)
	if err != nil {
		return nil, err
	}
	if !to.After(from) {
		return nil, apperr.Wrap(apperr.ErrValidation, "date range is empty")
	}
	return s.reportRepo.DailyMovements(branchID, from, to)
}

// ExportInvoicesXLSX renders the invoices in the range as a spreadsheet,
// one row per invoice item so the snapshot fields stay visible.
func (s *reportService) ExportInvoicesXLSX(actor policy.Actor, from, to time.Time) ([]byte, error) {
	branchID, err := scope(actor)
	if err != nil {
		return nil, err
	}
	if !to.After(from) {
		return nil, apperr.Wrap(apperr.ErrValidation, "date range is empty")
	}

	invoices, err := s.reportRepo.InvoicesBetween(branchID, from, to)
	if err != nil {
		return nil, err
	}

	f := excelize.NewFile()
	sheet := "Invoices"
	index, err := f.NewSheet(sheet)
	if err != nil {
		return nil, err
	}
	f.DeleteSheet("Sheet1")
	f.SetActiveSheet(index)

	header := []string{"Invoice", "Date", "Type", "Material", "Payment", "Warehouse", "Seller", "Customer", "Item", "Vendor", "Weight", "Carat", "Qty", "Price", "Line Total", "Invoice Total"}
	for c, v := range header {
		cell, _ := excelize.CoordinatesToCellName(c+1, 1)
		_ = f.SetCellValue(sheet, cell, v)
	}

	row := 2
	for _, inv := range invoices {
		warehouseCode := ""
		if inv.Warehouse != nil {
			warehouseCode = inv.Warehouse.Code
		}
		sellerName := ""
		if inv.Seller != nil {
			sellerName = inv.Seller.Name
		}
		customerName := ""
		if inv.Customer != nil {
			customerName = inv.Customer.Name
		}
		for _, item := range inv.Items {
			values := []any{
				inv.ID,
				inv.CreatedAt.Format("2006-01-02"),
				string(inv.InvoiceType),
				string(inv.Material),
				string(inv.TransactionType),
				warehouseCode,
				sellerName,
				customerName,
				item.ItemName,
				item.VendorName,
				item.ItemWeight.String(),
				item.ItemCarat.String(),
				item.ItemQuantity,
				item.ItemPrice.String(),
				item.ItemTotalPrice.String(),
				inv.TotalPrice.String(),
			}
			for c, v := range values {
				cell, _ := excelize.CoordinatesToCellName(c+1, row)
				_ = f.SetCellValue(sheet, cell, v)
			}
			row++
		}
	}

	style, _ := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
	})
	_ = f.SetCellStyle(sheet, "A1", "P1", style)
	_ = f.SetColWidth(sheet, "A", "P", 14)

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
