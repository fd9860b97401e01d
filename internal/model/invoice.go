package model

import "github.com/shopspring/decimal"

type TransactionType string

const (
	TransactionCash TransactionType = "Cash"
	TransactionVisa TransactionType = "Visa"
)

type InvoiceType string

const (
	InvoiceSale            InvoiceType = "Sale"
	InvoiceReturnPacking   InvoiceType = "Return Packing"
	InvoiceReturnUnpacking InvoiceType = "Return Unpacking"
)

func (t InvoiceType) Valid() bool {
	return t == InvoiceSale || t == InvoiceReturnPacking || t == InvoiceReturnUnpacking
}

// Invoice is a permanent financial record. TotalPrice always equals the
// exact sum of its items' totals.
type Invoice struct {
	PermanentModel
	Material        Material        `gorm:"type:varchar(10);not null;index" json:"material" validate:"required,oneof=Gold Silver"`
	WarehouseID     uint            `gorm:"index;not null" json:"warehouse_id" validate:"required"`
	Warehouse       *Warehouse      `gorm:"foreignKey:WarehouseID" json:"warehouse,omitempty"`
	SellerID        uint            `gorm:"index;not null" json:"seller_id" validate:"required"`
	Seller          *Seller         `gorm:"foreignKey:SellerID" json:"seller,omitempty"`
	BranchID        uint            `gorm:"index;not null" json:"branch_id" validate:"required"`
	Branch          *Branch         `gorm:"foreignKey:BranchID" json:"branch,omitempty"`
	CustomerID      uint            `gorm:"index;not null" json:"customer_id" validate:"required"`
	Customer        *Customer       `gorm:"foreignKey:CustomerID" json:"customer,omitempty"`
	GoldPrice21     decimal.Decimal `gorm:"type:decimal(10,2);default:0" json:"gold_price_21"`
	GoldPrice24     decimal.Decimal `gorm:"type:decimal(10,2);default:0" json:"gold_price_24"`
	SilverPrice     decimal.Decimal `gorm:"type:decimal(10,2);default:0" json:"silver_price"`
	TotalPrice      decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"total_price"`
	TransactionType TransactionType `gorm:"type:varchar(20);not null;default:'Cash'" json:"transaction_type" validate:"required,oneof=Cash Visa"`
	InvoiceType     InvoiceType     `gorm:"type:varchar(20);not null" json:"invoice_type" validate:"required,oneof='Sale' 'Return Packing' 'Return Unpacking'"`

	Items []InvoiceItem `gorm:"foreignKey:InvoiceID" json:"items,omitempty"`
}

func (i *Invoice) ResolveBranch() (uint, bool) {
	return i.BranchID, true
}

// InvoiceItem stores a point-in-time snapshot of the product and vendor.
// Snapshot fields are copied at creation and never re-derived, so later
// product edits cannot rewrite history. ProductID is kept for stock
// effects and reporting only.
type InvoiceItem struct {
	ID        uint `gorm:"primaryKey" json:"id"`
	InvoiceID uint `gorm:"index;not null" json:"invoice_id"`
	ProductID uint `gorm:"index;not null" json:"product_id"`

	ItemName         string          `gorm:"type:varchar(255);not null" json:"item_name"`
	ItemWeight       decimal.Decimal `gorm:"type:decimal(10,2)" json:"item_weight"`
	ItemCarat        decimal.Decimal `gorm:"type:decimal(10,2)" json:"item_carat"`
	ItemStampEnduser decimal.Decimal `gorm:"type:decimal(10,2)" json:"item_stamp_enduser"`
	ItemQuantity     int64           `gorm:"not null" json:"item_quantity"`
	ItemPrice        decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"item_price"`
	ItemTotalPrice   decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"item_total_price"`
	VendorName       string          `gorm:"type:varchar(255)" json:"vendor_name"`
}
