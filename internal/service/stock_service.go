package service

import (
	"goldshop-api/internal/apperr"
	"goldshop-api/internal/model"
	"goldshop-api/internal/policy"
	"goldshop-api/internal/repository"
	"goldshop-api/internal/ws"
	"goldshop-api/pkg/validator"

	"gorm.io/gorm"
)

type ReceiveStockRequest struct {
	WarehouseID uint  `json:"warehouse_id" validate:"required"`
	ProductID   uint  `json:"product_id" validate:"required"`
	Quantity    int64 `json:"quantity" validate:"required,gt=0"`
}

type StockService interface {
	ListByWarehouse(actor policy.Actor, warehouseID uint) ([]model.StockRow, error)
	GetQuantity(actor policy.Actor, warehouseID, productID uint) (int64, error)
	Receive(actor policy.Actor, req *ReceiveStockRequest) (*model.StockRow, error)
}

type stockService struct {
	stockRepo     repository.StockRepository
	warehouseRepo repository.WarehouseRepository
	productRepo   repository.ProductRepository
	db            *gorm.DB
	wsHub         *ws.Hub
}

func NewStockService(
	stockRepo repository.StockRepository,
	warehouseRepo repository.WarehouseRepository,
	productRepo repository.ProductRepository,
	db *gorm.DB,
	hub *ws.Hub,
) StockService {
	return &stockService{
		stockRepo:     stockRepo,
		warehouseRepo: warehouseRepo,
		productRepo:   productRepo,
		db:            db,
		wsHub:         hub,
	}
}

func (s *stockService) ListByWarehouse(actor policy.Actor, warehouseID uint) ([]model.StockRow, error) {
	warehouse, err := s.warehouseRepo.FindByID(warehouseID)
	if err != nil {
		return nil, err
	}
	if err := policy.Authorize(actor, warehouse); err != nil {
		return nil, err
	}
	return s.stockRepo.ListByWarehouse(warehouseID)
}

func (s *stockService) GetQuantity(actor policy.Actor, warehouseID, productID uint) (int64, error) {
	warehouse, err := s.warehouseRepo.FindByID(warehouseID)
	if err != nil {
		return 0, err
	}
	if err := policy.Authorize(actor, warehouse); err != nil {
		return 0, err
	}
	return s.stockRepo.GetQuantity(warehouseID, productID)
}

// Receive books incoming goods onto the ledger. Restricted to managers
// and warehouse keepers of the warehouse's branch.
func (s *stockService) Receive(actor policy.Actor, req *ReceiveStockRequest) (*model.StockRow, error) {
	if errs := validator.ValidateStruct(req); len(errs) > 0 {
		return nil, apperr.Wrap(apperr.ErrValidation, "field %s failed on %s", errs[0].FailedField, errs[0].Tag)
	}
	if !policy.CanDecideTransfer(actor) {
		return nil, apperr.Wrap(apperr.ErrPermissionDenied, "receiving stock requires manager or warehouse keeper")
	}

	warehouse, err := s.warehouseRepo.FindByID(req.WarehouseID)
	if err != nil {
		return nil, err
	}
	if err := policy.Authorize(actor, warehouse); err != nil {
		return nil, err
	}
	if _, err := s.productRepo.FindByID(req.ProductID); err != nil {
		return nil, err
	}

	var row *model.StockRow
	err = s.db.Transaction(func(tx *gorm.DB) error {
		row, err = s.stockRepo.Increment(tx, req.WarehouseID, req.ProductID, req.Quantity, &actor.ID)
		return err
	})
	if err != nil {
		return nil, err
	}

	s.wsHub.BroadcastEvent("stock_update", map[string]interface{}{
		"action":       "stock_received",
		"warehouse_id": req.WarehouseID,
		"product_id":   req.ProductID,
		"quantity":     row.Quantity,
		"user_id":      actor.ID,
	})

	return row, nil
}
