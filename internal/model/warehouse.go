package model

import "github.com/shopspring/decimal"

// Warehouse holds stock and a cash balance for one branch. The branch
// assignment is fixed at creation; moving a warehouse across branches
// would break tenant isolation.
type Warehouse struct {
	BaseModel
	Code     string          `gorm:"type:varchar(255);not null" json:"code" validate:"required"`
	BranchID uint            `gorm:"index;not null" json:"branch_id" validate:"required"`
	Branch   *Branch         `gorm:"foreignKey:BranchID" json:"branch,omitempty"`
	Cash     decimal.Decimal `gorm:"type:decimal(10,2);default:0" json:"cash"`
}

func (w *Warehouse) ResolveBranch() (uint, bool) {
	return w.BranchID, true
}
