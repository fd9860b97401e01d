package service

import (
	"goldshop-api/internal/apperr"
	"goldshop-api/internal/model"
	"goldshop-api/internal/policy"
	"goldshop-api/internal/repository"
	"goldshop-api/pkg/money"
	"goldshop-api/pkg/validator"

	"github.com/shopspring/decimal"
)

// OrgService manages branches and the warehouses under them. Branch
// creation and edits are admin operations; warehouses additionally
// serve branch-scoped reads for the inventory screens.
type OrgService interface {
	CreateBranch(actor policy.Actor, branch *model.Branch) error
	UpdateBranch(actor policy.Actor, id uint, name string) (*model.Branch, error)
	GetBranch(actor policy.Actor, id uint) (*model.Branch, error)
	ListBranches(actor policy.Actor, includeDeleted bool) ([]model.Branch, error)

	CreateWarehouse(actor policy.Actor, warehouse *model.Warehouse) error
	UpdateWarehouse(actor policy.Actor, id uint, code string, cash *decimal.Decimal) (*model.Warehouse, error)
	GetWarehouse(actor policy.Actor, id uint) (*model.Warehouse, error)
	ListWarehouses(actor policy.Actor, includeDeleted bool) ([]model.Warehouse, error)
	ListWarehousesByBranch(actor policy.Actor, branchID uint) ([]model.Warehouse, error)
}

type orgService struct {
	branchRepo    repository.BranchRepository
	warehouseRepo repository.WarehouseRepository
}

func NewOrgService(branchRepo repository.BranchRepository, warehouseRepo repository.WarehouseRepository) OrgService {
	return &orgService{
		branchRepo:    branchRepo,
		warehouseRepo: warehouseRepo,
	}
}

func (s *orgService) CreateBranch(actor policy.Actor, branch *model.Branch) error {
	if actor.Role != model.RoleAdmin {
		return apperr.Wrap(apperr.ErrPermissionDenied, "creating branches requires admin")
	}
	if errs := validator.ValidateStruct(branch); len(errs) > 0 {
		return apperr.Wrap(apperr.ErrValidation, "field %s failed on %s", errs[0].FailedField, errs[0].Tag)
	}
	branch.CreatedByID = &actor.ID
	return s.branchRepo.Create(branch)
}

func (s *orgService) UpdateBranch(actor policy.Actor, id uint, name string) (*model.Branch, error) {
	if actor.Role != model.RoleAdmin {
		return nil, apperr.Wrap(apperr.ErrPermissionDenied, "editing branches requires admin")
	}
	branch, err := s.branchRepo.FindByID(id)
	if err != nil {
		return nil, err
	}
	if name == "" {
		return nil, apperr.Wrap(apperr.ErrValidation, "name is required")
	}
	branch.Name = name
	if err := s.branchRepo.Update(branch); err != nil {
		return nil, err
	}
	return branch, nil
}

func (s *orgService) GetBranch(actor policy.Actor, id uint) (*model.Branch, error) {
	branch, err := s.branchRepo.FindByID(id)
	if err != nil {
		return nil, err
	}
	if err := policy.Authorize(actor, branch); err != nil {
		return nil, err
	}
	return branch, nil
}

func (s *orgService) ListBranches(actor policy.Actor, includeDeleted bool) ([]model.Branch, error) {
	return s.branchRepo.FindAll(includeDeletedFor(actor, includeDeleted))
}

func (s *orgService) CreateWarehouse(actor policy.Actor, warehouse *model.Warehouse) error {
	if actor.Role != model.RoleAdmin {
		return apperr.Wrap(apperr.ErrPermissionDenied, "creating warehouses requires admin")
	}
	if errs := validator.ValidateStruct(warehouse); len(errs) > 0 {
		return apperr.Wrap(apperr.ErrValidation, "field %s failed on %s", errs[0].FailedField, errs[0].Tag)
	}
	if _, err := s.branchRepo.FindByID(warehouse.BranchID); err != nil {
		return err
	}
	warehouse.Cash = money.Round2(warehouse.Cash)
	warehouse.CreatedByID = &actor.ID
	return s.warehouseRepo.Create(warehouse)
}

func (s *orgService) UpdateWarehouse(actor policy.Actor, id uint, code string, cash *decimal.Decimal) (*model.Warehouse, error) {
	warehouse, err := s.warehouseRepo.FindByID(id)
	if err != nil {
		return nil, err
	}
	if err := policy.Authorize(actor, warehouse); err != nil {
		return nil, err
	}
	if code != "" {
		warehouse.Code = code
	}
	if cash != nil {
		warehouse.Cash = money.Round2(*cash)
	}
	// The branch assignment is immutable; moving a warehouse would
	// silently re-home its whole ledger.
	if err := s.warehouseRepo.Update(warehouse); err != nil {
		return nil, err
	}
	return warehouse, nil
}

func (s *orgService) GetWarehouse(actor policy.Actor, id uint) (*model.Warehouse, error) {
	warehouse, err := s.warehouseRepo.FindByID(id)
	if err != nil {
		return nil, err
	}
	if err := policy.Authorize(actor, warehouse); err != nil {
		return nil, err
	}
	return warehouse, nil
}

func (s *orgService) ListWarehouses(actor policy.Actor, includeDeleted bool) ([]model.Warehouse, error) {
	if actor.Role == model.RoleAdmin {
		return s.warehouseRepo.FindAll(includeDeleted)
	}
	if actor.BranchID == nil {
		return nil, apperr.Wrap(apperr.ErrPermissionDenied, "actor has no branch")
	}
	return s.warehouseRepo.FindByBranch(*actor.BranchID)
}

func (s *orgService) ListWarehousesByBranch(actor policy.Actor, branchID uint) ([]model.Warehouse, error) {
	branch, err := s.branchRepo.FindByID(branchID)
	if err != nil {
		return nil, err
	}
	if err := policy.Authorize(actor, branch); err != nil {
		return nil, err
	}
	return s.warehouseRepo.FindByBranch(branchID)
}
