package model

// Branch is the tenant boundary: users, warehouses, sellers and invoices
// all belong to exactly one branch.
type Branch struct {
	BaseModel
	Name string `gorm:"type:varchar(255);not null" json:"name" validate:"required"`
}

// ResolveBranch lets a branch act as its own authorization scope.
func (b *Branch) ResolveBranch() (uint, bool) {
	return b.ID, true
}
