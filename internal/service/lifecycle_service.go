package service

import (
	"goldshop-api/internal/apperr"
	"goldshop-api/internal/model"
	"goldshop-api/internal/policy"
	"goldshop-api/internal/repository"
	"goldshop-api/pkg/logger"

	"github.com/sirupsen/logrus"
)

// LifecycleService holds the delete/restore/purge operations shared by
// all master-data entities. Soft deletes hide rows from normal reads,
// restores bring them back unchanged, and purges remove them physically
// only when nothing still references them.
type LifecycleService interface {
	DeleteBranch(actor policy.Actor, id uint) error
	RestoreBranch(actor policy.Actor, id uint) error
	PurgeBranch(actor policy.Actor, id uint) error

	DeleteWarehouse(actor policy.Actor, id uint) error
	RestoreWarehouse(actor policy.Actor, id uint) error
	PurgeWarehouse(actor policy.Actor, id uint) error

	DeleteVendor(actor policy.Actor, id uint) error
	RestoreVendor(actor policy.Actor, id uint) error
	PurgeVendor(actor policy.Actor, id uint) error

	DeleteCustomer(actor policy.Actor, id uint) error
	RestoreCustomer(actor policy.Actor, id uint) error
	PurgeCustomer(actor policy.Actor, id uint) error

	DeleteSeller(actor policy.Actor, id uint) error
	RestoreSeller(actor policy.Actor, id uint) error
	PurgeSeller(actor policy.Actor, id uint) error

	DeleteProduct(actor policy.Actor, id uint) error
	RestoreProduct(actor policy.Actor, id uint) error
	PurgeProduct(actor policy.Actor, id uint) error
}

type lifecycleService struct {
	branchRepo    repository.BranchRepository
	warehouseRepo repository.WarehouseRepository
	vendorRepo    repository.VendorRepository
	customerRepo  repository.CustomerRepository
	sellerRepo    repository.SellerRepository
	productRepo   repository.ProductRepository
	transferRepo  repository.TransferRepository
}

func NewLifecycleService(
	branchRepo repository.BranchRepository,
	warehouseRepo repository.WarehouseRepository,
	vendorRepo repository.VendorRepository,
	customerRepo repository.CustomerRepository,
	sellerRepo repository.SellerRepository,
	productRepo repository.ProductRepository,
	transferRepo repository.TransferRepository,
) LifecycleService {
	return &lifecycleService{
		branchRepo:    branchRepo,
		warehouseRepo: warehouseRepo,
		vendorRepo:    vendorRepo,
		customerRepo:  customerRepo,
		sellerRepo:    sellerRepo,
		productRepo:   productRepo,
		transferRepo:  transferRepo,
	}
}

func requireAdmin(actor policy.Actor, op string) error {
	if actor.Role != model.RoleAdmin {
		return apperr.Wrap(apperr.ErrPermissionDenied, "%s requires admin", op)
	}
	return nil
}

// --- branches ---

func (s *lifecycleService) DeleteBranch(actor policy.Actor, id uint) error {
	if err := requireAdmin(actor, "deleting a branch"); err != nil {
		return err
	}
	return s.branchRepo.SoftDelete(id)
}

func (s *lifecycleService) RestoreBranch(actor policy.Actor, id uint) error {
	if err := requireAdmin(actor, "restoring a branch"); err != nil {
		return err
	}
	return s.branchRepo.Restore(id)
}

// PurgeBranch physically removes a branch. Refused while any user,
// warehouse or seller (live or soft-deleted) still points at it.
func (s *lifecycleService) PurgeBranch(actor policy.Actor, id uint) error {
	if err := requireAdmin(actor, "purging a branch"); err != nil {
		return err
	}
	n, err := s.branchRepo.CountDependents(id)
	if err != nil {
		return err
	}
	if n > 0 {
		return apperr.Wrap(apperr.ErrReferentialIntegrity, "branch %d still has %d dependent rows", id, n)
	}
	if err := s.branchRepo.HardDelete(id); err != nil {
		return err
	}
	logger.Info("lifecycle", "PurgeBranch", logrus.Fields{"branch_id": id, "user_id": actor.ID})
	return nil
}

// --- warehouses ---

func (s *lifecycleService) DeleteWarehouse(actor policy.Actor, id uint) error {
	warehouse, err := s.warehouseRepo.FindByID(id)
	if err != nil {
		return err
	}
	if err := policy.Authorize(actor, warehouse); err != nil {
		return err
	}
	return s.warehouseRepo.SoftDelete(id)
}

func (s *lifecycleService) RestoreWarehouse(actor policy.Actor, id uint) error {
	if err := requireAdmin(actor, "restoring a warehouse"); err != nil {
		return err
	}
	return s.warehouseRepo.Restore(id)
}

func (s *lifecycleService) PurgeWarehouse(actor policy.Actor, id uint) error {
	if err := requireAdmin(actor, "purging a warehouse"); err != nil {
		return err
	}
	n, err := s.warehouseRepo.CountStockRows(id)
	if err != nil {
		return err
	}
	if n > 0 {
		return apperr.Wrap(apperr.ErrReferentialIntegrity, "warehouse %d still has %d stock rows", id, n)
	}
	if err := s.warehouseRepo.HardDelete(id); err != nil {
		return err
	}
	logger.Info("lifecycle", "PurgeWarehouse", logrus.Fields{"warehouse_id": id, "user_id": actor.ID})
	return nil
}

// --- vendors ---

func (s *lifecycleService) DeleteVendor(actor policy.Actor, id uint) error {
	vendor, err := s.vendorRepo.FindByID(id)
	if err != nil {
		return err
	}
	if err := policy.Authorize(actor, vendor); err != nil {
		return err
	}
	return s.vendorRepo.SoftDelete(id)
}

func (s *lifecycleService) RestoreVendor(actor policy.Actor, id uint) error {
	if err := requireAdmin(actor, "restoring a vendor"); err != nil {
		return err
	}
	return s.vendorRepo.Restore(id)
}

func (s *lifecycleService) PurgeVendor(actor policy.Actor, id uint) error {
	if err := requireAdmin(actor, "purging a vendor"); err != nil {
		return err
	}
	n, err := s.vendorRepo.CountProducts(id)
	if err != nil {
		return err
	}
	if n > 0 {
		return apperr.Wrap(apperr.ErrReferentialIntegrity, "vendor %d still has %d products", id, n)
	}
	return s.vendorRepo.HardDelete(id)
}

// --- customers ---

func (s *lifecycleService) DeleteCustomer(actor policy.Actor, id uint) error {
	customer, err := s.customerRepo.FindByID(id)
	if err != nil {
		return err
	}
	if err := policy.Authorize(actor, customer); err != nil {
		return err
	}
	return s.customerRepo.SoftDelete(id)
}

func (s *lifecycleService) RestoreCustomer(actor policy.Actor, id uint) error {
	if err := requireAdmin(actor, "restoring a customer"); err != nil {
		return err
	}
	return s.customerRepo.Restore(id)
}

func (s *lifecycleService) PurgeCustomer(actor policy.Actor, id uint) error {
	if err := requireAdmin(actor, "purging a customer"); err != nil {
		return err
	}
	n, err := s.customerRepo.CountInvoices(id)
	if err != nil {
		return err
	}
	if n > 0 {
		return apperr.Wrap(apperr.ErrReferentialIntegrity, "customer %d appears on %d invoices", id, n)
	}
	return s.customerRepo.HardDelete(id)
}

// --- sellers ---

func (s *lifecycleService) DeleteSeller(actor policy.Actor, id uint) error {
	seller, err := s.sellerRepo.FindByID(id)
	if err != nil {
		return err
	}
	if err := policy.Authorize(actor, seller); err != nil {
		return err
	}
	return s.sellerRepo.SoftDelete(id)
}

func (s *lifecycleService) RestoreSeller(actor policy.Actor, id uint) error {
	if err := requireAdmin(actor, "restoring a seller"); err != nil {
		return err
	}
	return s.sellerRepo.Restore(id)
}

func (s *lifecycleService) PurgeSeller(actor policy.Actor, id uint) error {
	if err := requireAdmin(actor, "purging a seller"); err != nil {
		return err
	}
	n, err := s.sellerRepo.CountInvoices(id)
	if err != nil {
		return err
	}
	if n > 0 {
		return apperr.Wrap(apperr.ErrReferentialIntegrity, "seller %d appears on %d invoices", id, n)
	}
	return s.sellerRepo.HardDelete(id)
}

// --- products ---

// DeleteProduct refuses while the product sits on a pending transfer:
// approving the transfer later would have to move goods nobody can see.
func (s *lifecycleService) DeleteProduct(actor policy.Actor, id uint) error {
	product, err := s.productRepo.FindByID(id)
	if err != nil {
		return err
	}
	if err := policy.Authorize(actor, product); err != nil {
		return err
	}
	pending, err := s.transferRepo.CountPendingForProduct(id)
	if err != nil {
		return err
	}
	if pending > 0 {
		return apperr.Wrap(apperr.ErrReferentialIntegrity, "product %d has %d pending transfers", id, pending)
	}
	return s.productRepo.SoftDelete(id)
}

func (s *lifecycleService) RestoreProduct(actor policy.Actor, id uint) error {
	if err := requireAdmin(actor, "restoring a product"); err != nil {
		return err
	}
	return s.productRepo.Restore(id)
}

func (s *lifecycleService) PurgeProduct(actor policy.Actor, id uint) error {
	if err := requireAdmin(actor, "purging a product"); err != nil {
		return err
	}
	n, err := s.productRepo.CountStockRows(id)
	if err != nil {
		return err
	}
	if n > 0 {
		return apperr.Wrap(apperr.ErrReferentialIntegrity, "product %d still has %d stock rows", id, n)
	}
	return s.productRepo.HardDelete(id)
}
