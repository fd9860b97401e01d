package repository

import (
	"goldshop-api/internal/model"

	"gorm.io/gorm"
)

type BranchRepository interface {
	Create(branch *model.Branch) error
	FindByID(id uint) (*model.Branch, error)
	FindAll(includeDeleted bool) ([]model.Branch, error)
	Update(branch *model.Branch) error
	SoftDelete(id uint) error
	Restore(id uint) error
	HardDelete(id uint) error
	CountDependents(id uint) (int64, error)
}

type branchRepo struct {
	db *gorm.DB
}

func NewBranchRepo(db *gorm.DB) BranchRepository {
	return &branchRepo{db}
}

func (r *branchRepo) Create(branch *model.Branch) error {
	return r.db.Create(branch).Error
}

func (r *branchRepo) FindByID(id uint) (*model.Branch, error) {
	return FindActive[model.Branch](r.db, id)
}

func (r *branchRepo) FindAll(includeDeleted bool) ([]model.Branch, error) {
	return ListAll[model.Branch](r.db, includeDeleted)
}

func (r *branchRepo) Update(branch *model.Branch) error {
	return r.db.Save(branch).Error
}

func (r *branchRepo) SoftDelete(id uint) error {
	return SoftDeleteByID[model.Branch](r.db, id)
}

func (r *branchRepo) Restore(id uint) error {
	return RestoreByID[model.Branch](r.db, id)
}

func (r *branchRepo) HardDelete(id uint) error {
	return HardDeleteByID[model.Branch](r.db, id)
}

// CountDependents counts rows that would be orphaned by a physical
// delete: users, warehouses and sellers still pointing at the branch.
func (r *branchRepo) CountDependents(id uint) (int64, error) {
	var total, n int64

	if err := r.db.Unscoped().Model(&model.User{}).Where("branch_id = ?", id).Count(&n).Error; err != nil {
		return 0, err
	}
	total += n
	if err := r.db.Unscoped().Model(&model.Warehouse{}).Where("branch_id = ?", id).Count(&n).Error; err != nil {
		return 0, err
	}
	total += n
	if err := r.db.Unscoped().Model(&model.Seller{}).Where("branch_id = ?", id).Count(&n).Error; err != nil {
		return 0, err
	}
	total += n
	return total, nil
}
