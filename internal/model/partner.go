package model

// Vendor supplies products. Vendors carry no branch of their own; their
// scope is resolved through the creating user's branch.
type Vendor struct {
	BaseModel
	Name string `gorm:"type:varchar(255);not null" json:"name" validate:"required"`
}

func (v *Vendor) ResolveBranch() (uint, bool) {
	if v.CreatedBy != nil && v.CreatedBy.BranchID != nil {
		return *v.CreatedBy.BranchID, true
	}
	return 0, false
}

// Customer is a buyer. Customer management is restricted to managers and
// warehouse keepers, see the policy package.
type Customer struct {
	BaseModel
	Name  string `gorm:"type:varchar(255);not null" json:"name" validate:"required"`
	Phone string `gorm:"type:varchar(255)" json:"phone"`
}

func (c *Customer) ResolveBranch() (uint, bool) {
	if c.CreatedBy != nil && c.CreatedBy.BranchID != nil {
		return *c.CreatedBy.BranchID, true
	}
	return 0, false
}

// KeeperGated marks customers as manageable only by managers, warehouse
// keepers or admins.
func (c *Customer) KeeperGated() {}

// Seller is a salesperson attached to a branch.
type Seller struct {
	BaseModel
	Name     string  `gorm:"type:varchar(255);not null" json:"name" validate:"required"`
	BranchID uint    `gorm:"index;not null" json:"branch_id" validate:"required"`
	Branch   *Branch `gorm:"foreignKey:BranchID" json:"branch,omitempty"`
}

func (s *Seller) ResolveBranch() (uint, bool) {
	return s.BranchID, true
}
