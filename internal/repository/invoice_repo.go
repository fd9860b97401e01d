package repository

import (
	"errors"

	"goldshop-api/internal/apperr"
	"goldshop-api/internal/model"

	"gorm.io/gorm"
)

type InvoiceRepository interface {
	Create(tx *gorm.DB, invoice *model.Invoice) error
	FindByID(id uint) (*model.Invoice, error)
	FindAll(material model.Material, branchID *uint) ([]model.Invoice, error)
}

type invoiceRepo struct {
	db *gorm.DB
}

func NewInvoiceRepo(db *gorm.DB) InvoiceRepository {
	return &invoiceRepo{db}
}

// Create persists the header and its items in the caller's transaction
// so stock effects and rows commit or roll back together.
func (r *invoiceRepo) Create(tx *gorm.DB, invoice *model.Invoice) error {
	return tx.Create(invoice).Error
}

func (r *invoiceRepo) FindByID(id uint) (*model.Invoice, error) {
	var invoice model.Invoice
	err := r.db.
		Preload("Items").
		Preload("Warehouse").
		Preload("Seller").
		Preload("Branch").
		Preload("Customer").
		Preload("CreatedBy").
		First(&invoice, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.Wrap(apperr.ErrNotFound, "invoice %d", id)
	}
	if err != nil {
		return nil, err
	}
	return &invoice, nil
}

// FindAll lists invoices newest first, optionally filtered by material
// and branch. Invoices are permanent; there is no deleted variant.
func (r *invoiceRepo) FindAll(material model.Material, branchID *uint) ([]model.Invoice, error) {
	var invoices []model.Invoice
	q := r.db.Preload("Items").Preload("Warehouse").Preload("Seller").Preload("Customer")
	if material != "" {
		q = q.Where("material = ?", material)
	}
	if branchID != nil {
		q = q.Where("branch_id = ?", *branchID)
	}
	err := q.Order("created_at DESC").Find(&invoices).Error
	return invoices, err
}
