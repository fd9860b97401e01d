package model

import (
	"time"

	"goldshop-api/internal/apperr"
)

type TransferStatus string

const (
	TransferPending  TransferStatus = "Pending"
	TransferApproved TransferStatus = "Approved"
	TransferRejected TransferStatus = "Rejected"
)

func (s TransferStatus) Valid() bool {
	return s == TransferPending || s == TransferApproved || s == TransferRejected
}

// WarehouseTransaction is a requested stock movement between two
// warehouses. It is created Pending and transitions exactly once to
// Approved or Rejected; both are terminal. No stock moves before
// approval.
type WarehouseTransaction struct {
	PermanentModel
	ItemName        string     `gorm:"type:varchar(255);not null" json:"item_name"`
	ProductID       uint       `gorm:"index;not null" json:"product_id" validate:"required"`
	Product         *Product   `gorm:"foreignKey:ProductID" json:"product,omitempty"`
	FromWarehouseID uint       `gorm:"index;not null" json:"from_warehouse_id" validate:"required"`
	FromWarehouse   *Warehouse `gorm:"foreignKey:FromWarehouseID" json:"from_warehouse,omitempty"`
	ToWarehouseID   uint       `gorm:"index;not null" json:"to_warehouse_id" validate:"required"`
	ToWarehouse     *Warehouse `gorm:"foreignKey:ToWarehouseID" json:"to_warehouse,omitempty"`
	Quantity        int64      `gorm:"not null" json:"quantity" validate:"required,gt=0"`

	Status     TransferStatus `gorm:"type:varchar(20);not null;default:'Pending';index" json:"status"`
	ActionByID *uint          `gorm:"index" json:"action_by_id,omitempty"`
	ActionBy   *User          `gorm:"foreignKey:ActionByID" json:"action_by,omitempty"`
	ActionDate *time.Time     `json:"action_date,omitempty"`
}

// EnsurePending guards the single transition out of Pending. Acting on a
// decided transaction is a hard error, never a silent no-op; a double
// approval must not double-apply the stock effect.
func (t *WarehouseTransaction) EnsurePending() error {
	if t.Status != TransferPending {
		return apperr.Wrap(apperr.ErrInvalidStateTransition, "transaction %d is already %s", t.ID, t.Status)
	}
	return nil
}

// Decide stamps the terminal state and the acting user.
func (t *WarehouseTransaction) Decide(status TransferStatus, actionBy uint, now time.Time) {
	t.Status = status
	t.ActionByID = &actionBy
	t.ActionDate = &now
}

func (t *WarehouseTransaction) ResolveBranch() (uint, bool) {
	if t.FromWarehouse != nil {
		return t.FromWarehouse.BranchID, true
	}
	return 0, false
}
