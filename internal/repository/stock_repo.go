package repository

import (
	"errors"
	"strings"

	"goldshop-api/internal/apperr"
	"goldshop-api/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// StockRepository is the per-(warehouse, product) quantity ledger.
// Mutating methods take the caller's transaction handle so that invoice
// posting and transfer approval commit their stock effects atomically
// with their own rows.
type StockRepository interface {
	GetQuantity(warehouseID, productID uint) (int64, error)
	ListByWarehouse(warehouseID uint) ([]model.StockRow, error)
	ListAll(includeDeleted bool) ([]model.StockRow, error)
	Increment(tx *gorm.DB, warehouseID, productID uint, delta int64, createdBy *uint) (*model.StockRow, error)
	Decrement(tx *gorm.DB, warehouseID, productID uint, delta int64) (*model.StockRow, error)
	Transfer(tx *gorm.DB, fromWarehouseID, toWarehouseID, productID uint, qty int64, createdBy *uint) error
}

type stockRepo struct {
	db *gorm.DB
}

func NewStockRepo(db *gorm.DB) StockRepository {
	return &stockRepo{db}
}

// GetQuantity returns the on-hand quantity, 0 if no active row exists.
func (r *stockRepo) GetQuantity(warehouseID, productID uint) (int64, error) {
	var row model.StockRow
	err := r.db.Where("warehouse_id = ? AND product_id = ?", warehouseID, productID).First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	return row.Quantity, nil
}

func (r *stockRepo) ListByWarehouse(warehouseID uint) ([]model.StockRow, error) {
	var rows []model.StockRow
	err := r.db.Preload("Product").Preload("Product.Vendor").Preload("Warehouse").
		Where("warehouse_id = ?", warehouseID).
		Order("product_id").
		Find(&rows).Error
	return rows, err
}

func (r *stockRepo) ListAll(includeDeleted bool) ([]model.StockRow, error) {
	return ListAll[model.StockRow](r.db, includeDeleted, "Product", "Warehouse")
}

// lockRow locks the active row for one key, nil if absent.
func (r *stockRepo) lockRow(tx *gorm.DB, warehouseID, productID uint) (*model.StockRow, error) {
	var row model.StockRow
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("warehouse_id = ? AND product_id = ?", warehouseID, productID).
		First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &row, nil
}

// lockOrCreateRow locks the row for one key, creating it at quantity 0
// when absent. A soft-deleted row is restored rather than duplicated:
// the (warehouse, product) uniqueness spans deleted rows.
func (r *stockRepo) lockOrCreateRow(tx *gorm.DB, warehouseID, productID uint, createdBy *uint) (*model.StockRow, error) {
	var row model.StockRow
	err := tx.Unscoped().Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("warehouse_id = ? AND product_id = ?", warehouseID, productID).
		First(&row).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		var product model.Product
		if err := tx.First(&product, "id = ?", productID).Error; err != nil {
			return nil, apperr.Wrap(apperr.ErrNotFound, "product %d", productID)
		}
		row = model.StockRow{
			WarehouseID: warehouseID,
			ProductID:   productID,
			Material:    product.Material,
			Quantity:    0,
		}
		row.CreatedByID = createdBy
		if err := tx.Create(&row).Error; err != nil {
			if isUniqueViolation(err) {
				return nil, apperr.Wrap(apperr.ErrDuplicateStockRow, "warehouse %d product %d", warehouseID, productID)
			}
			return nil, err
		}
		return &row, nil
	}
	if err != nil {
		return nil, err
	}

	if !row.IsActive() {
		if err := tx.Unscoped().Model(&model.StockRow{}).
			Where("id = ?", row.ID).
			Update("deleted_at", nil).Error; err != nil {
			return nil, err
		}
		row.Restore()
	}
	return &row, nil
}

func (r *stockRepo) setQuantity(tx *gorm.DB, rowID uint, quantity int64) error {
	return tx.Model(&model.StockRow{}).Where("id = ?", rowID).Update("quantity", quantity).Error
}

// Increment adds delta to the key's quantity, creating the row when
// absent. Always succeeds for a valid product.
func (r *stockRepo) Increment(tx *gorm.DB, warehouseID, productID uint, delta int64, createdBy *uint) (*model.StockRow, error) {
	if delta <= 0 {
		return nil, apperr.Wrap(apperr.ErrValidation, "increment delta must be positive, got %d", delta)
	}
	row, err := r.lockOrCreateRow(tx, warehouseID, productID, createdBy)
	if err != nil {
		return nil, err
	}
	row.Quantity += delta
	if err := r.setQuantity(tx, row.ID, row.Quantity); err != nil {
		return nil, err
	}
	return row, nil
}

// Decrement subtracts delta. Fails with InsufficientStock when the
// current quantity is short; no partial decrement ever happens.
func (r *stockRepo) Decrement(tx *gorm.DB, warehouseID, productID uint, delta int64) (*model.StockRow, error) {
	if delta <= 0 {
		return nil, apperr.Wrap(apperr.ErrValidation, "decrement delta must be positive, got %d", delta)
	}
	row, err := r.lockRow(tx, warehouseID, productID)
	if err != nil {
		return nil, err
	}
	if row == nil || row.Quantity < delta {
		have := int64(0)
		if row != nil {
			have = row.Quantity
		}
		return nil, apperr.Wrap(apperr.ErrInsufficientStock, "warehouse %d product %d has %d, need %d", warehouseID, productID, have, delta)
	}
	row.Quantity -= delta
	if err := r.setQuantity(tx, row.ID, row.Quantity); err != nil {
		return nil, err
	}
	return row, nil
}

// Transfer moves qty from one warehouse to another as one atomic unit.
// Both rows are locked in ascending warehouse order so that two
// transfers touching the same pair in opposite directions cannot
// deadlock. If the source is short, nothing is applied.
func (r *stockRepo) Transfer(tx *gorm.DB, fromWarehouseID, toWarehouseID, productID uint, qty int64, createdBy *uint) error {
	if fromWarehouseID == toWarehouseID {
		return apperr.Wrap(apperr.ErrValidation, "source and destination warehouse must differ")
	}
	if qty <= 0 {
		return apperr.Wrap(apperr.ErrValidation, "transfer quantity must be positive, got %d", qty)
	}

	var fromRow, toRow *model.StockRow
	var err error

	lockFrom := func() error {
		fromRow, err = r.lockRow(tx, fromWarehouseID, productID)
		return err
	}
	lockTo := func() error {
		toRow, err = r.lockOrCreateRow(tx, toWarehouseID, productID, createdBy)
		return err
	}

	// Deterministic lock order: ascending (warehouse, product).
	if fromWarehouseID < toWarehouseID {
		err = lockFrom()
		if err == nil {
			err = lockTo()
		}
	} else {
		err = lockTo()
		if err == nil {
			err = lockFrom()
		}
	}
	if err != nil {
		return err
	}

	if fromRow == nil || fromRow.Quantity < qty {
		have := int64(0)
		if fromRow != nil {
			have = fromRow.Quantity
		}
		return apperr.Wrap(apperr.ErrInsufficientStock, "warehouse %d product %d has %d, need %d", fromWarehouseID, productID, have, qty)
	}

	if err := r.setQuantity(tx, fromRow.ID, fromRow.Quantity-qty); err != nil {
		return err
	}
	return r.setQuantity(tx, toRow.ID, toRow.Quantity+qty)
}

func isUniqueViolation(err error) bool {
	// Postgres unique_violation is SQLSTATE 23505.
	return err != nil && (strings.Contains(err.Error(), "23505") ||
		strings.Contains(err.Error(), "duplicate key"))
}
