package model

import "github.com/shopspring/decimal"

// Material discriminates the two parallel product lines. The gold and
// silver schemas are field-for-field identical, so they share one table.
type Material string

const (
	MaterialGold   Material = "Gold"
	MaterialSilver Material = "Silver"
)

func (m Material) Valid() bool {
	return m == MaterialGold || m == MaterialSilver
}

// Product is a catalog entry. Live product fields may be edited at any
// time; invoices never read them back after creation (see InvoiceItem).
type Product struct {
	BaseModel
	Material          Material        `gorm:"type:varchar(10);not null;index" json:"material" validate:"required,oneof=Gold Silver"`
	VendorID          uint            `gorm:"index;not null" json:"vendor_id" validate:"required"`
	Vendor            *Vendor         `gorm:"foreignKey:VendorID" json:"vendor,omitempty"`
	Name              string          `gorm:"type:varchar(255);not null" json:"name" validate:"required"`
	Weight            decimal.Decimal `gorm:"type:decimal(10,2)" json:"weight"`
	Carat             decimal.Decimal `gorm:"type:decimal(10,2)" json:"carat"`
	StampEnduser      decimal.Decimal `gorm:"type:decimal(10,2)" json:"stamp_enduser"`
	Cashback          decimal.Decimal `gorm:"type:decimal(10,2)" json:"cashback"`
	CashbackUnpacking decimal.Decimal `gorm:"type:decimal(10,2)" json:"cashback_unpacking"`
}

func (p *Product) ResolveBranch() (uint, bool) {
	if p.CreatedBy != nil && p.CreatedBy.BranchID != nil {
		return *p.CreatedBy.BranchID, true
	}
	return 0, false
}
