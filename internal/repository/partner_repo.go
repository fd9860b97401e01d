package repository

import (
	"goldshop-api/internal/model"

	"gorm.io/gorm"
)

// Vendors, customers and sellers share the same thin CRUD shape.

type VendorRepository interface {
	Create(vendor *model.Vendor) error
	FindByID(id uint) (*model.Vendor, error)
	FindAll(includeDeleted bool) ([]model.Vendor, error)
	Update(vendor *model.Vendor) error
	SoftDelete(id uint) error
	Restore(id uint) error
	HardDelete(id uint) error
	CountProducts(id uint) (int64, error)
}

type vendorRepo struct {
	db *gorm.DB
}

func NewVendorRepo(db *gorm.DB) VendorRepository {
	return &vendorRepo{db}
}

func (r *vendorRepo) Create(vendor *model.Vendor) error {
	return r.db.Create(vendor).Error
}

func (r *vendorRepo) FindByID(id uint) (*model.Vendor, error) {
	return FindActive[model.Vendor](r.db, id, "CreatedBy")
}

func (r *vendorRepo) FindAll(includeDeleted bool) ([]model.Vendor, error) {
	return ListAll[model.Vendor](r.db, includeDeleted)
}

func (r *vendorRepo) Update(vendor *model.Vendor) error {
	return r.db.Save(vendor).Error
}

func (r *vendorRepo) SoftDelete(id uint) error {
	return SoftDeleteByID[model.Vendor](r.db, id)
}

func (r *vendorRepo) Restore(id uint) error {
	return RestoreByID[model.Vendor](r.db, id)
}

func (r *vendorRepo) HardDelete(id uint) error {
	return HardDeleteByID[model.Vendor](r.db, id)
}

func (r *vendorRepo) CountProducts(id uint) (int64, error) {
	var n int64
	err := r.db.Unscoped().Model(&model.Product{}).Where("vendor_id = ?", id).Count(&n).Error
	return n, err
}

type CustomerRepository interface {
	Create(customer *model.Customer) error
	FindByID(id uint) (*model.Customer, error)
	FindAll(includeDeleted bool) ([]model.Customer, error)
	Update(customer *model.Customer) error
	SoftDelete(id uint) error
	Restore(id uint) error
	HardDelete(id uint) error
	CountInvoices(id uint) (int64, error)
}

type customerRepo struct {
	db *gorm.DB
}

func NewCustomerRepo(db *gorm.DB) CustomerRepository {
	return &customerRepo{db}
}

func (r *customerRepo) Create(customer *model.Customer) error {
	return r.db.Create(customer).Error
}

func (r *customerRepo) FindByID(id uint) (*model.Customer, error) {
	return FindActive[model.Customer](r.db, id, "CreatedBy")
}

func (r *customerRepo) FindAll(includeDeleted bool) ([]model.Customer, error) {
	return ListAll[model.Customer](r.db, includeDeleted)
}

func (r *customerRepo) Update(customer *model.Customer) error {
	return r.db.Save(customer).Error
}

func (r *customerRepo) SoftDelete(id uint) error {
	return SoftDeleteByID[model.Customer](r.db, id)
}

func (r *customerRepo) Restore(id uint) error {
	return RestoreByID[model.Customer](r.db, id)
}

func (r *customerRepo) HardDelete(id uint) error {
	return HardDeleteByID[model.Customer](r.db, id)
}

// CountInvoices counts invoices referencing the customer; they are
// permanent records, so a physical delete would orphan them.
func (r *customerRepo) CountInvoices(id uint) (int64, error) {
	var n int64
	err := r.db.Model(&model.Invoice{}).Where("customer_id = ?", id).Count(&n).Error
	return n, err
}

type SellerRepository interface {
	Create(seller *model.Seller) error
	FindByID(id uint) (*model.Seller, error)
	FindAll(includeDeleted bool) ([]model.Seller, error)
	Update(seller *model.Seller) error
	SoftDelete(id uint) error
	Restore(id uint) error
	HardDelete(id uint) error
	CountInvoices(id uint) (int64, error)
}

type sellerRepo struct {
	db *gorm.DB
}

func NewSellerRepo(db *gorm.DB) SellerRepository {
	return &sellerRepo{db}
}

func (r *sellerRepo) Create(seller *model.Seller) error {
	return r.db.Create(seller).Error
}

func (r *sellerRepo) FindByID(id uint) (*model.Seller, error) {
	return FindActive[model.Seller](r.db, id, "Branch")
}

func (r *sellerRepo) FindAll(includeDeleted bool) ([]model.Seller, error) {
	return ListAll[model.Seller](r.db, includeDeleted, "Branch")
}

func (r *sellerRepo) Update(seller *model.Seller) error {
	return r.db.Save(seller).Error
}

func (r *sellerRepo) SoftDelete(id uint) error {
	return SoftDeleteByID[model.Seller](r.db, id)
}

func (r *sellerRepo) Restore(id uint) error {
	return RestoreByID[model.Seller](r.db, id)
}

func (r *sellerRepo) HardDelete(id uint) error {
	return HardDeleteByID[model.Seller](r.db, id)
}

func (r *sellerRepo) CountInvoices(id uint) (int64, error) {
	var n int64
	err := r.db.Model(&model.Invoice{}).Where("seller_id = ?", id).Count(&n).Error
	return n, err
}
