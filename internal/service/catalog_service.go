package service

import (
	"goldshop-api/internal/apperr"
	"goldshop-api/internal/model"
	"goldshop-api/internal/policy"
	"goldshop-api/internal/repository"
	"goldshop-api/pkg/validator"
)

// CatalogService manages the master data sold and tracked by the shop:
// vendors, customers, sellers and products. All writes are policy
// checked; lifecycle operations follow the shared soft-delete contract.
type CatalogService interface {
	CreateVendor(actor policy.Actor, vendor *model.Vendor) error
	UpdateVendor(actor policy.Actor, id uint, name string) (*model.Vendor, error)
	ListVendors(actor policy.Actor, includeDeleted bool) ([]model.Vendor, error)

	CreateCustomer(actor policy.Actor, customer *model.Customer) error
	UpdateCustomer(actor policy.Actor, id uint, name, phone string) (*model.Customer, error)
	ListCustomers(actor policy.Actor, includeDeleted bool) ([]model.Customer, error)

	CreateSeller(actor policy.Actor, seller *model.Seller) error
	UpdateSeller(actor policy.Actor, id uint, name string) (*model.Seller, error)
	ListSellers(actor policy.Actor, includeDeleted bool) ([]model.Seller, error)

	CreateProduct(actor policy.Actor, product *model.Product) error
	UpdateProduct(actor policy.Actor, id uint, update *model.Product) (*model.Product, error)
	ListProducts(actor policy.Actor, material model.Material, includeDeleted bool) ([]model.Product, error)
	GetProduct(actor policy.Actor, id uint) (*model.Product, error)
}

type catalogService struct {
	vendorRepo   repository.VendorRepository
	customerRepo repository.CustomerRepository
	sellerRepo   repository.SellerRepository
	productRepo  repository.ProductRepository
	branchRepo   repository.BranchRepository
}

func NewCatalogService(
	vendorRepo repository.VendorRepository,
	customerRepo repository.CustomerRepository,
	sellerRepo repository.SellerRepository,
	productRepo repository.ProductRepository,
	branchRepo repository.BranchRepository,
) CatalogService {
	return &catalogService{
		vendorRepo:   vendorRepo,
		customerRepo: customerRepo,
		sellerRepo:   sellerRepo,
		productRepo:  productRepo,
		branchRepo:   branchRepo,
	}
}

// includeDeletedFor limits the include-deleted listing to admins.
func includeDeletedFor(actor policy.Actor, requested bool) bool {
	return requested && actor.Role == model.RoleAdmin
}

func (s *catalogService) CreateVendor(actor policy.Actor, vendor *model.Vendor) error {
	if errs := validator.ValidateStruct(vendor); len(errs) > 0 {
		return apperr.Wrap(apperr.ErrValidation, "field %s failed on %s", errs[0].FailedField, errs[0].Tag)
	}
	vendor.CreatedByID = &actor.ID
	return s.vendorRepo.Create(vendor)
}

func (s *catalogService) UpdateVendor(actor policy.Actor, id uint, name string) (*model.Vendor, error) {
	vendor, err := s.vendorRepo.FindByID(id)
	if err != nil {
		return nil, err
	}
	if err := policy.Authorize(actor, vendor); err != nil {
		return nil, err
	}
	if name == "" {
		return nil, apperr.Wrap(apperr.ErrValidation, "name is required")
	}
	vendor.Name = name
	if err := s.vendorRepo.Update(vendor); err != nil {
		return nil, err
	}
	return vendor, nil
}

func (s *catalogService) ListVendors(actor policy.Actor, includeDeleted bool) ([]model.Vendor, error) {
	return s.vendorRepo.FindAll(includeDeletedFor(actor, includeDeleted))
}

func (s *catalogService) CreateCustomer(actor policy.Actor, customer *model.Customer) error {
	if errs := validator.ValidateStruct(customer); len(errs) > 0 {
		return apperr.Wrap(apperr.ErrValidation, "field %s failed on %s", errs[0].FailedField, errs[0].Tag)
	}
	// The keeper gate applies to creation too: check against the
	// would-be row scoped to the actor's own branch.
	probe := &model.Customer{}
	probe.CreatedBy = &model.User{BranchID: actor.BranchID}
	if err := policy.Authorize(actor, probe); err != nil {
		return err
	}
	customer.CreatedByID = &actor.ID
	return s.customerRepo.Create(customer)
}

func (s *catalogService) UpdateCustomer(actor policy.Actor, id uint, name, phone string) (*model.Customer, error) {
	customer, err := s.customerRepo.FindByID(id)
	if err != nil {
		return nil, err
	}
	if err := policy.Authorize(actor, customer); err != nil {
		return nil, err
	}
	if name != "" {
		customer.Name = name
	}
	if phone != "" {
		customer.Phone = phone
	}
	if err := s.customerRepo.Update(customer); err != nil {
		return nil, err
	}
	return customer, nil
}

func (s *catalogService) ListCustomers(actor policy.Actor, includeDeleted bool) ([]model.Customer, error) {
	return s.customerRepo.FindAll(includeDeletedFor(actor, includeDeleted))
}

func (s *catalogService) CreateSeller(actor policy.Actor, seller *model.Seller) error {
	if errs := validator.ValidateStruct(seller); len(errs) > 0 {
		return apperr.Wrap(apperr.ErrValidation, "field %s failed on %s", errs[0].FailedField, errs[0].Tag)
	}
	if _, err := s.branchRepo.FindByID(seller.BranchID); err != nil {
		return err
	}
	if err := policy.Authorize(actor, seller); err != nil {
		return err
	}
	seller.CreatedByID = &actor.ID
	return s.sellerRepo.Create(seller)
}

func (s *catalogService) UpdateSeller(actor policy.Actor, id uint, name string) (*model.Seller, error) {
	seller, err := s.sellerRepo.FindByID(id)
	if err != nil {
		return nil, err
	}
	if err := policy.Authorize(actor, seller); err != nil {
		return nil, err
	}
	if name == "" {
		return nil, apperr.Wrap(apperr.ErrValidation, "name is required")
	}
	// The branch assignment is fixed at creation; only the name moves.
	seller.Name = name
	if err := s.sellerRepo.Update(seller); err != nil {
		return nil, err
	}
	return seller, nil
}

func (s *catalogService) ListSellers(actor policy.Actor, includeDeleted bool) ([]model.Seller, error) {
	return s.sellerRepo.FindAll(includeDeletedFor(actor, includeDeleted))
}

func (s *catalogService) CreateProduct(actor policy.Actor, product *model.Product) error {
	if errs := validator.ValidateStruct(product); len(errs) > 0 {
		return apperr.Wrap(apperr.ErrValidation, "field %s failed on %s", errs[0].FailedField, errs[0].Tag)
	}
	if _, err := s.vendorRepo.FindByID(product.VendorID); err != nil {
		return err
	}
	product.CreatedByID = &actor.ID
	return s.productRepo.Create(product)
}

func (s *catalogService) UpdateProduct(actor policy.Actor, id uint, update *model.Product) (*model.Product, error) {
	product, err := s.productRepo.FindByID(id)
	if err != nil {
		return nil, err
	}
	if err := policy.Authorize(actor, product); err != nil {
		return nil, err
	}

	// Material is fixed at creation; editing it would desync existing
	// stock rows and invoices.
	if update.Material != "" && update.Material != product.Material {
		return nil, apperr.Wrap(apperr.ErrValidation, "product material cannot change")
	}
	if update.Name != "" {
		product.Name = update.Name
	}
	if update.VendorID != 0 && update.VendorID != product.VendorID {
		if _, err := s.vendorRepo.FindByID(update.VendorID); err != nil {
			return nil, err
		}
		product.VendorID = update.VendorID
	}
	product.Weight = update.Weight
	product.Carat = update.Carat
	product.StampEnduser = update.StampEnduser
	product.Cashback = update.Cashback
	product.CashbackUnpacking = update.CashbackUnpacking

	if err := s.productRepo.Update(product); err != nil {
		return nil, err
	}
	return product, nil
}

func (s *catalogService) ListProducts(actor policy.Actor, material model.Material, includeDeleted bool) ([]model.Product, error) {
	if material != "" && !material.Valid() {
		return nil, apperr.Wrap(apperr.ErrValidation, "unknown material %q", material)
	}
	return s.productRepo.FindAll(material, includeDeletedFor(actor, includeDeleted))
}

func (s *catalogService) GetProduct(actor policy.Actor, id uint) (*model.Product, error) {
	return s.productRepo.FindByID(id)
}
