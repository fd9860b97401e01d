package repository

import (
	"errors"

	"goldshop-api/internal/apperr"

	"gorm.io/gorm"
)

// The soft-delete lifecycle is shared by every tenant-scoped entity.
// Default reads exclude deleted rows (gorm's DeletedAt scope); the
// Unscoped variants are the privileged include-deleted path.

// FindActive loads an active row by id, mapping gorm's not-found to the
// business NotFound error. Soft-deleted rows are not found here.
func FindActive[T any](db *gorm.DB, id uint, preloads ...string) (*T, error) {
	var row T
	q := db
	for _, p := range preloads {
		q = q.Preload(p)
	}
	if err := q.First(&row, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.Wrap(apperr.ErrNotFound, "id %d", id)
		}
		return nil, err
	}
	return &row, nil
}

// FindAny loads a row regardless of its deletion marker.
func FindAny[T any](db *gorm.DB, id uint, preloads ...string) (*T, error) {
	var row T
	q := db.Unscoped()
	for _, p := range preloads {
		q = q.Preload(p)
	}
	if err := q.First(&row, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.Wrap(apperr.ErrNotFound, "id %d", id)
		}
		return nil, err
	}
	return &row, nil
}

// ListAll returns rows, optionally including soft-deleted ones.
func ListAll[T any](db *gorm.DB, includeDeleted bool, preloads ...string) ([]T, error) {
	var rows []T
	q := db
	if includeDeleted {
		q = q.Unscoped()
	}
	for _, p := range preloads {
		q = q.Preload(p)
	}
	err := q.Order("id").Find(&rows).Error
	return rows, err
}

// SoftDeleteByID marks a row deleted. Deleting an already-deleted row is
// a no-op; a row that never existed is NotFound.
func SoftDeleteByID[T any](db *gorm.DB, id uint) error {
	var row T
	if err := db.Unscoped().First(&row, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperr.Wrap(apperr.ErrNotFound, "id %d", id)
		}
		return err
	}
	return db.Delete(&row).Error
}

// RestoreByID clears the deletion marker, leaving all other fields as
// they were when the row was deleted.
func RestoreByID[T any](db *gorm.DB, id uint) error {
	res := db.Unscoped().Model(new(T)).Where("id = ?", id).Update("deleted_at", nil)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return apperr.Wrap(apperr.ErrNotFound, "id %d", id)
	}
	return nil
}

// HardDeleteByID physically removes a row, bypassing the soft-delete
// flag. Dependent-row checks belong to the caller.
func HardDeleteByID[T any](db *gorm.DB, id uint) error {
	res := db.Unscoped().Delete(new(T), "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return apperr.Wrap(apperr.ErrNotFound, "id %d", id)
	}
	return nil
}
