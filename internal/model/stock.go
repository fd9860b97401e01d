package model

// StockRow is the ledger entry for one (warehouse, product) pair.
// The unique index deliberately ignores the soft-delete marker: a
// restore must reuse the existing row, never create a duplicate.
type StockRow struct {
	BaseModel
	WarehouseID uint       `gorm:"not null;uniqueIndex:idx_stock_warehouse_product" json:"warehouse_id" validate:"required"`
	Warehouse   *Warehouse `gorm:"foreignKey:WarehouseID" json:"warehouse,omitempty"`
	ProductID   uint       `gorm:"not null;uniqueIndex:idx_stock_warehouse_product" json:"product_id" validate:"required"`
	Product     *Product   `gorm:"foreignKey:ProductID" json:"product,omitempty"`
	Material    Material   `gorm:"type:varchar(10);not null;index" json:"material"`
	Quantity    int64      `gorm:"not null;default:0;check:quantity >= 0" json:"quantity"`
}

func (s *StockRow) ResolveBranch() (uint, bool) {
	if s.Warehouse != nil {
		return s.Warehouse.BranchID, true
	}
	return 0, false
}
