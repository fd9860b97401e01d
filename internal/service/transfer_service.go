package service

import (
	"time"

	"goldshop-api/internal/apperr"
	"goldshop-api/internal/model"
	"goldshop-api/internal/policy"
	"goldshop-api/internal/repository"
	"goldshop-api/internal/ws"
	"goldshop-api/pkg/logger"
	"goldshop-api/pkg/validator"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

type CreateTransferRequest struct {
	ProductID       uint  `json:"product_id" validate:"required"`
	FromWarehouseID uint  `json:"from_warehouse_id" validate:"required"`
	ToWarehouseID   uint  `json:"to_warehouse_id" validate:"required"`
	Quantity        int64 `json:"quantity" validate:"required,gt=0"`
}

type TransferService interface {
	Create(actor policy.Actor, req *CreateTransferRequest) (*model.WarehouseTransaction, error)
	Approve(actor policy.Actor, transferID uint) (*model.WarehouseTransaction, error)
	Reject(actor policy.Actor, transferID uint) (*model.WarehouseTransaction, error)
	Get(actor policy.Actor, transferID uint) (*model.WarehouseTransaction, error)
	List(actor policy.Actor, status model.TransferStatus) ([]model.WarehouseTransaction, error)
}

type transferService struct {
	transferRepo  repository.TransferRepository
	stockRepo     repository.StockRepository
	warehouseRepo repository.WarehouseRepository
	productRepo   repository.ProductRepository
	db            *gorm.DB
	wsHub         *ws.Hub
}

func NewTransferService(
	transferRepo repository.TransferRepository,
	stockRepo repository.StockRepository,
	warehouseRepo repository.WarehouseRepository,
	productRepo repository.ProductRepository,
	db *gorm.DB,
	hub *ws.Hub,
) TransferService {
	return &transferService{
		transferRepo:  transferRepo,
		stockRepo:     stockRepo,
		warehouseRepo: warehouseRepo,
		productRepo:   productRepo,
		db:            db,
		wsHub:         hub,
	}
}

// Create records a Pending movement request. Stock is neither checked
// nor reserved here: the gap between request and approval can be long,
// and levels are verified at approval time instead.
func (s *transferService) Create(actor policy.Actor, req *CreateTransferRequest) (*model.WarehouseTransaction, error) {
	if errs := validator.ValidateStruct(req); len(errs) > 0 {
		return nil, apperr.Wrap(apperr.ErrValidation, "field %s failed on %s", errs[0].FailedField, errs[0].Tag)
	}
	if req.FromWarehouseID == req.ToWarehouseID {
		return nil, apperr.Wrap(apperr.ErrValidation, "source and destination warehouse must differ")
	}

	from, err := s.warehouseRepo.FindByID(req.FromWarehouseID)
	if err != nil {
		return nil, err
	}
	if _, err := s.warehouseRepo.FindByID(req.ToWarehouseID); err != nil {
		return nil, err
	}
	product, err := s.productRepo.FindByID(req.ProductID)
	if err != nil {
		return nil, err
	}

	// The request acts on the source warehouse's branch.
	if err := policy.Authorize(actor, from); err != nil {
		return nil, err
	}

	transfer := &model.WarehouseTransaction{
		ItemName:        product.Name,
		ProductID:       product.ID,
		FromWarehouseID: req.FromWarehouseID,
		ToWarehouseID:   req.ToWarehouseID,
		Quantity:        req.Quantity,
		Status:          model.TransferPending,
	}
	transfer.CreatedByID = &actor.ID

	if err := s.transferRepo.Create(transfer); err != nil {
		return nil, err
	}

	s.wsHub.BroadcastEvent("transfer_created", map[string]interface{}{
		"transfer_id":       transfer.ID,
		"product_id":        transfer.ProductID,
		"from_warehouse_id": transfer.FromWarehouseID,
		"to_warehouse_id":   transfer.ToWarehouseID,
		"quantity":          transfer.Quantity,
		"user_id":           actor.ID,
	})

	return transfer, nil
}

// Approve moves the stock and flips the status in one transaction. On
// insufficient stock the transaction stays Pending and the error goes
// back to the caller: approval is retryable once stock is replenished,
// never auto-rejected.
func (s *transferService) Approve(actor policy.Actor, transferID uint) (*model.WarehouseTransaction, error) {
	if err := s.authorizeDecision(actor, transferID); err != nil {
		return nil, err
	}

	var approved *model.WarehouseTransaction
	err := s.db.Transaction(func(tx *gorm.DB) error {
		transfer, err := s.transferRepo.FindByIDLocked(tx, transferID)
		if err != nil {
			return err
		}
		if err := transfer.EnsurePending(); err != nil {
			return err
		}

		if err := s.stockRepo.Transfer(tx, transfer.FromWarehouseID, transfer.ToWarehouseID, transfer.ProductID, transfer.Quantity, &actor.ID); err != nil {
			return err
		}

		transfer.Decide(model.TransferApproved, actor.ID, time.Now())
		if err := s.transferRepo.Save(tx, transfer); err != nil {
			return err
		}
		approved = transfer
		return nil
	})
	if err != nil {
		logger.Error("transfer", "Approve", err, logrus.Fields{"transfer_id": transferID})
		return nil, err
	}

	s.broadcastDecision(approved, actor.ID)
	return approved, nil
}

// Reject is terminal and has no stock effect.
func (s *transferService) Reject(actor policy.Actor, transferID uint) (*model.WarehouseTransaction, error) {
	if err := s.authorizeDecision(actor, transferID); err != nil {
		return nil, err
	}

	var rejected *model.WarehouseTransaction
	err := s.db.Transaction(func(tx *gorm.DB) error {
		transfer, err := s.transferRepo.FindByIDLocked(tx, transferID)
		if err != nil {
			return err
		}
		if err := transfer.EnsurePending(); err != nil {
			return err
		}

		transfer.Decide(model.TransferRejected, actor.ID, time.Now())
		if err := s.transferRepo.Save(tx, transfer); err != nil {
			return err
		}
		rejected = transfer
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.broadcastDecision(rejected, actor.ID)
	return rejected, nil
}

func (s *transferService) Get(actor policy.Actor, transferID uint) (*model.WarehouseTransaction, error) {
	transfer, err := s.transferRepo.FindByID(transferID)
	if err != nil {
		return nil, err
	}
	if err := policy.Authorize(actor, transfer); err != nil {
		return nil, err
	}
	return transfer, nil
}

func (s *transferService) List(actor policy.Actor, status model.TransferStatus) ([]model.WarehouseTransaction, error) {
	var branchID *uint
	if actor.Role != model.RoleAdmin {
		if actor.BranchID == nil {
			return nil, apperr.Wrap(apperr.ErrPermissionDenied, "actor has no branch")
		}
		branchID = actor.BranchID
	}
	return s.transferRepo.FindAll(status, branchID)
}

// authorizeDecision checks the role gate and the source warehouse's
// branch before a transfer is approved or rejected.
func (s *transferService) authorizeDecision(actor policy.Actor, transferID uint) error {
	if !policy.CanDecideTransfer(actor) {
		return apperr.Wrap(apperr.ErrPermissionDenied, "transfer decisions require manager or warehouse keeper")
	}
	transfer, err := s.transferRepo.FindByID(transferID)
	if err != nil {
		return err
	}
	return policy.Authorize(actor, transfer)
}

func (s *transferService) broadcastDecision(transfer *model.WarehouseTransaction, actorID uint) {
	if transfer == nil {
		return
	}
	s.wsHub.BroadcastEvent("transfer_decided", map[string]interface{}{
		"transfer_id":       transfer.ID,
		"status":            transfer.Status,
		"product_id":        transfer.ProductID,
		"from_warehouse_id": transfer.FromWarehouseID,
		"to_warehouse_id":   transfer.ToWarehouseID,
		"quantity":          transfer.Quantity,
		"user_id":           actorID,
	})
}
