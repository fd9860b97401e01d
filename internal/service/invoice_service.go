package service

import (
	"sort"

	"goldshop-api/internal/apperr"
	"goldshop-api/internal/model"
	"goldshop-api/internal/policy"
	"goldshop-api/internal/repository"
	"goldshop-api/internal/ws"
	"goldshop-api/pkg/logger"
	"goldshop-api/pkg/money"
	"goldshop-api/pkg/validator"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

type CreateInvoiceItemRequest struct {
	ProductID uint            `json:"product_id" validate:"required"`
	Quantity  int64           `json:"quantity" validate:"required,gt=0"`
	Price     decimal.Decimal `json:"price" validate:"required"`
}

type CreateInvoiceRequest struct {
	Material        model.Material             `json:"material" validate:"required,oneof=Gold Silver"`
	WarehouseID     uint                       `json:"warehouse_id" validate:"required"`
	SellerID        uint                       `json:"seller_id" validate:"required"`
	BranchID        uint                       `json:"branch_id" validate:"required"`
	CustomerID      uint                       `json:"customer_id" validate:"required"`
	GoldPrice21     decimal.Decimal            `json:"gold_price_21"`
	GoldPrice24     decimal.Decimal            `json:"gold_price_24"`
	SilverPrice     decimal.Decimal            `json:"silver_price"`
	TransactionType model.TransactionType      `json:"transaction_type" validate:"required,oneof=Cash Visa"`
	InvoiceType     model.InvoiceType          `json:"invoice_type" validate:"required,oneof='Sale' 'Return Packing' 'Return Unpacking'"`
	Items           []CreateInvoiceItemRequest `json:"items" validate:"required,min=1,dive"`
}

type InvoiceService interface {
	CreateInvoice(actor policy.Actor, req *CreateInvoiceRequest) (*model.Invoice, error)
	GetInvoice(actor policy.Actor, id uint) (*model.Invoice, error)
	ListInvoices(actor policy.Actor, material model.Material) ([]model.Invoice, error)
}

type invoiceService struct {
	invoiceRepo   repository.InvoiceRepository
	stockRepo     repository.StockRepository
	warehouseRepo repository.WarehouseRepository
	sellerRepo    repository.SellerRepository
	customerRepo  repository.CustomerRepository
	branchRepo    repository.BranchRepository
	productRepo   repository.ProductRepository
	db            *gorm.DB
	wsHub         *ws.Hub
}

func NewInvoiceService(
	invoiceRepo repository.InvoiceRepository,
	stockRepo repository.StockRepository,
	warehouseRepo repository.WarehouseRepository,
	sellerRepo repository.SellerRepository,
	customerRepo repository.CustomerRepository,
	branchRepo repository.BranchRepository,
	productRepo repository.ProductRepository,
	db *gorm.DB,
	hub *ws.Hub,
) InvoiceService {
	return &invoiceService{
		invoiceRepo:   invoiceRepo,
		stockRepo:     stockRepo,
		warehouseRepo: warehouseRepo,
		sellerRepo:    sellerRepo,
		customerRepo:  customerRepo,
		branchRepo:    branchRepo,
		productRepo:   productRepo,
		db:            db,
		wsHub:         hub,
	}
}

// buildItems snapshots the referenced products into invoice items and
// computes the line and invoice totals. The snapshot decouples the
// invoice from later product edits; the total is the exact sum of the
// rounded line totals.
func buildItems(reqItems []CreateInvoiceItemRequest, products map[uint]*model.Product) ([]model.InvoiceItem, decimal.Decimal, error) {
	items := make([]model.InvoiceItem, 0, len(reqItems))
	total := decimal.Zero

	for _, ri := range reqItems {
		product, ok := products[ri.ProductID]
		if !ok {
			return nil, decimal.Zero, apperr.Wrap(apperr.ErrNotFound, "product %d", ri.ProductID)
		}
		if ri.Quantity <= 0 {
			return nil, decimal.Zero, apperr.Wrap(apperr.ErrValidation, "item quantity must be positive")
		}

		vendorName := ""
		if product.Vendor != nil {
			vendorName = product.Vendor.Name
		}

		lineTotal := money.LineTotal(ri.Price, ri.Quantity)
		items = append(items, model.InvoiceItem{
			ProductID:        product.ID,
			ItemName:         product.Name,
			ItemWeight:       product.Weight,
			ItemCarat:        product.Carat,
			ItemStampEnduser: product.StampEnduser,
			ItemQuantity:     ri.Quantity,
			ItemPrice:        money.Round2(ri.Price),
			ItemTotalPrice:   lineTotal,
			VendorName:       vendorName,
		})
		total = total.Add(lineTotal)
	}
	return items, total, nil
}

func (s *invoiceService) CreateInvoice(actor policy.Actor, req *CreateInvoiceRequest) (*model.Invoice, error) {
	if errs := validator.ValidateStruct(req); len(errs) > 0 {
		return nil, apperr.Wrap(apperr.ErrValidation, "field %s failed on %s", errs[0].FailedField, errs[0].Tag)
	}

	// Header references must resolve to active rows.
	warehouse, err := s.warehouseRepo.FindByID(req.WarehouseID)
	if err != nil {
		return nil, err
	}
	seller, err := s.sellerRepo.FindByID(req.SellerID)
	if err != nil {
		return nil, err
	}
	if _, err := s.customerRepo.FindByID(req.CustomerID); err != nil {
		return nil, err
	}
	if _, err := s.branchRepo.FindByID(req.BranchID); err != nil {
		return nil, err
	}

	// Seller and warehouse must share the header's branch.
	if warehouse.BranchID != req.BranchID {
		return nil, apperr.Wrap(apperr.ErrValidation, "warehouse %d belongs to branch %d, not %d", warehouse.ID, warehouse.BranchID, req.BranchID)
	}
	if seller.BranchID != req.BranchID {
		return nil, apperr.Wrap(apperr.ErrValidation, "seller %d belongs to branch %d, not %d", seller.ID, seller.BranchID, req.BranchID)
	}

	if err := policy.Authorize(actor, warehouse); err != nil {
		return nil, err
	}

	// Load and snapshot products. Every item must match the header's
	// material line.
	products := make(map[uint]*model.Product, len(req.Items))
	for _, ri := range req.Items {
		if _, seen := products[ri.ProductID]; seen {
			continue
		}
		product, err := s.productRepo.FindByID(ri.ProductID)
		if err != nil {
			return nil, err
		}
		if product.Material != req.Material {
			return nil, apperr.Wrap(apperr.ErrValidation, "product %d is %s, invoice is %s", product.ID, product.Material, req.Material)
		}
		products[ri.ProductID] = product
	}

	items, total, err := buildItems(req.Items, products)
	if err != nil {
		return nil, err
	}

	invoice := &model.Invoice{
		Material:        req.Material,
		WarehouseID:     req.WarehouseID,
		SellerID:        req.SellerID,
		BranchID:        req.BranchID,
		CustomerID:      req.CustomerID,
		GoldPrice21:     money.Round2(req.GoldPrice21),
		GoldPrice24:     money.Round2(req.GoldPrice24),
		SilverPrice:     money.Round2(req.SilverPrice),
		TotalPrice:      total,
		TransactionType: req.TransactionType,
		InvoiceType:     req.InvoiceType,
		Items:           items,
	}
	invoice.CreatedByID = &actor.ID

	// Stock effects and rows commit as one unit. Rows are touched in
	// ascending product order so overlapping invoices cannot deadlock.
	err = s.db.Transaction(func(tx *gorm.DB) error {
		ordered := make([]model.InvoiceItem, len(items))
		copy(ordered, invoice.Items)
		sort.Slice(ordered, func(i, j int) bool { return ordered[i].ProductID < ordered[j].ProductID })

		for _, item := range ordered {
			switch req.InvoiceType {
			case model.InvoiceSale:
				if _, err := s.stockRepo.Decrement(tx, req.WarehouseID, item.ProductID, item.ItemQuantity); err != nil {
					return err
				}
			case model.InvoiceReturnPacking, model.InvoiceReturnUnpacking:
				if _, err := s.stockRepo.Increment(tx, req.WarehouseID, item.ProductID, item.ItemQuantity, &actor.ID); err != nil {
					return err
				}
			}
		}

		return s.invoiceRepo.Create(tx, invoice)
	})
	if err != nil {
		logger.Error("invoice", "CreateInvoice", err, logrus.Fields{
			"warehouse_id": req.WarehouseID,
			"invoice_type": req.InvoiceType,
		})
		return nil, err
	}

	s.wsHub.BroadcastEvent("invoice_created", map[string]interface{}{
		"invoice_id":   invoice.ID,
		"material":     invoice.Material,
		"invoice_type": invoice.InvoiceType,
		"warehouse_id": invoice.WarehouseID,
		"total_price":  invoice.TotalPrice,
		"user_id":      actor.ID,
	})

	return invoice, nil
}

func (s *invoiceService) GetInvoice(actor policy.Actor, id uint) (*model.Invoice, error) {
	invoice, err := s.invoiceRepo.FindByID(id)
	if err != nil {
		return nil, err
	}
	if err := policy.Authorize(actor, invoice); err != nil {
		return nil, err
	}
	return invoice, nil
}

// ListInvoices scopes non-admin callers to their own branch.
func (s *invoiceService) ListInvoices(actor policy.Actor, material model.Material) ([]model.Invoice, error) {
	var branchID *uint
	if actor.Role != model.RoleAdmin {
		if actor.BranchID == nil {
			return nil, apperr.Wrap(apperr.ErrPermissionDenied, "actor has no branch")
		}
		branchID = actor.BranchID
	}
	return s.invoiceRepo.FindAll(material, branchID)
}
