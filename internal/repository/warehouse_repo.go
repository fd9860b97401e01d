package repository

import (
	"goldshop-api/internal/model"

	"gorm.io/gorm"
)

type WarehouseRepository interface {
	Create(warehouse *model.Warehouse) error
	FindByID(id uint) (*model.Warehouse, error)
	FindAll(includeDeleted bool) ([]model.Warehouse, error)
	FindByBranch(branchID uint) ([]model.Warehouse, error)
	Update(warehouse *model.Warehouse) error
	SoftDelete(id uint) error
	Restore(id uint) error
	HardDelete(id uint) error
	CountStockRows(id uint) (int64, error)
}

type warehouseRepo struct {
	db *gorm.DB
}

func NewWarehouseRepo(db *gorm.DB) WarehouseRepository {
	return &warehouseRepo{db}
}

func (r *warehouseRepo) Create(warehouse *model.Warehouse) error {
	return r.db.Create(warehouse).Error
}

func (r *warehouseRepo) FindByID(id uint) (*model.Warehouse, error) {
	return FindActive[model.Warehouse](r.db, id, "Branch")
}

func (r *warehouseRepo) FindAll(includeDeleted bool) ([]model.Warehouse, error) {
	return ListAll[model.Warehouse](r.db, includeDeleted, "Branch")
}

func (r *warehouseRepo) FindByBranch(branchID uint) ([]model.Warehouse, error) {
	var rows []model.Warehouse
	err := r.db.Preload("Branch").Where("branch_id = ?", branchID).Order("id").Find(&rows).Error
	return rows, err
}

func (r *warehouseRepo) Update(warehouse *model.Warehouse) error {
	return r.db.Save(warehouse).Error
}

func (r *warehouseRepo) SoftDelete(id uint) error {
	return SoftDeleteByID[model.Warehouse](r.db, id)
}

func (r *warehouseRepo) Restore(id uint) error {
	return RestoreByID[model.Warehouse](r.db, id)
}

func (r *warehouseRepo) HardDelete(id uint) error {
	return HardDeleteByID[model.Warehouse](r.db, id)
}

func (r *warehouseRepo) CountStockRows(id uint) (int64, error) {
	var n int64
	err := r.db.Unscoped().Model(&model.StockRow{}).Where("warehouse_id = ?", id).Count(&n).Error
	return n, err
}
