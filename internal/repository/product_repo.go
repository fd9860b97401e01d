package repository

import (
	"goldshop-api/internal/model"

	"gorm.io/gorm"
)

type ProductRepository interface {
	Create(product *model.Product) error
	FindByID(id uint) (*model.Product, error)
	FindAll(material model.Material, includeDeleted bool) ([]model.Product, error)
	Update(product *model.Product) error
	SoftDelete(id uint) error
	Restore(id uint) error
	HardDelete(id uint) error
	CountStockRows(id uint) (int64, error)
}

type productRepo struct {
	db *gorm.DB
}

func NewProductRepo(db *gorm.DB) ProductRepository {
	return &productRepo{db}
}

func (r *productRepo) Create(product *model.Product) error {
	return r.db.Create(product).Error
}

func (r *productRepo) FindByID(id uint) (*model.Product, error) {
	return FindActive[model.Product](r.db, id, "Vendor")
}

// FindAll lists products, optionally filtered to one material.
func (r *productRepo) FindAll(material model.Material, includeDeleted bool) ([]model.Product, error) {
	var rows []model.Product
	q := r.db
	if includeDeleted {
		q = q.Unscoped()
	}
	if material != "" {
		q = q.Where("material = ?", material)
	}
	err := q.Preload("Vendor").Order("id").Find(&rows).Error
	return rows, err
}

func (r *productRepo) Update(product *model.Product) error {
	return r.db.Save(product).Error
}

func (r *productRepo) SoftDelete(id uint) error {
	return SoftDeleteByID[model.Product](r.db, id)
}

func (r *productRepo) Restore(id uint) error {
	return RestoreByID[model.Product](r.db, id)
}

func (r *productRepo) HardDelete(id uint) error {
	return HardDeleteByID[model.Product](r.db, id)
}

// CountStockRows counts ledger rows referencing the product, including
// soft-deleted ones; a hard delete would orphan them.
func (r *productRepo) CountStockRows(id uint) (int64, error) {
	var n int64
	err := r.db.Unscoped().Model(&model.StockRow{}).Where("product_id = ?", id).Count(&n).Error
	return n, err
}
