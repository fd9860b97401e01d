package repository

import (
	"errors"

	"goldshop-api/internal/apperr"
	"goldshop-api/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type TransferRepository interface {
	Create(transfer *model.WarehouseTransaction) error
	FindByID(id uint) (*model.WarehouseTransaction, error)
	FindByIDLocked(tx *gorm.DB, id uint) (*model.WarehouseTransaction, error)
	FindAll(status model.TransferStatus, branchID *uint) ([]model.WarehouseTransaction, error)
	Save(tx *gorm.DB, transfer *model.WarehouseTransaction) error
	CountPendingForProduct(productID uint) (int64, error)
}

type transferRepo struct {
	db *gorm.DB
}

func NewTransferRepo(db *gorm.DB) TransferRepository {
	return &transferRepo{db}
}

func (r *transferRepo) Create(transfer *model.WarehouseTransaction) error {
	return r.db.Create(transfer).Error
}

func (r *transferRepo) FindByID(id uint) (*model.WarehouseTransaction, error) {
	var transfer model.WarehouseTransaction
	err := r.db.
		Preload("Product").
		Preload("FromWarehouse").
		Preload("ToWarehouse").
		Preload("CreatedBy").
		Preload("ActionBy").
		First(&transfer, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.Wrap(apperr.ErrNotFound, "transfer %d", id)
	}
	if err != nil {
		return nil, err
	}
	return &transfer, nil
}

// FindByIDLocked locks the transfer row for the duration of the caller's
// transaction. The status transition out of Pending happens exactly
// once; concurrent approvals serialize on this lock.
func (r *transferRepo) FindByIDLocked(tx *gorm.DB, id uint) (*model.WarehouseTransaction, error) {
	var transfer model.WarehouseTransaction
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&transfer, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.Wrap(apperr.ErrNotFound, "transfer %d", id)
	}
	if err != nil {
		return nil, err
	}
	return &transfer, nil
}

func (r *transferRepo) FindAll(status model.TransferStatus, branchID *uint) ([]model.WarehouseTransaction, error) {
	var transfers []model.WarehouseTransaction
	q := r.db.
		Preload("Product").
		Preload("FromWarehouse").
		Preload("ToWarehouse").
		Preload("CreatedBy").
		Preload("ActionBy")
	if status != "" {
		q = q.Where("status = ?", status)
	}
	if branchID != nil {
		q = q.Joins("JOIN warehouses ON warehouses.id = warehouse_transactions.from_warehouse_id").
			Where("warehouses.branch_id = ?", *branchID)
	}
	err := q.Order("warehouse_transactions.created_at DESC").Find(&transfers).Error
	return transfers, err
}

func (r *transferRepo) Save(tx *gorm.DB, transfer *model.WarehouseTransaction) error {
	return tx.Save(transfer).Error
}

func (r *transferRepo) CountPendingForProduct(productID uint) (int64, error) {
	var n int64
	err := r.db.Model(&model.WarehouseTransaction{}).
		Where("product_id = ? AND status = ?", productID, model.TransferPending).
		Count(&n).Error
	return n, err
}
