package model

import (
	"time"

	"gorm.io/gorm"
)

// BaseModel handles integer primary keys, timestamps, soft delete and
// creator tracking. Every tenant-scoped entity embeds it.
type BaseModel struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deleted_at"`

	CreatedByID *uint `gorm:"index" json:"created_by_id,omitempty"`
	CreatedBy   *User `gorm:"foreignKey:CreatedByID" json:"created_by,omitempty"`
}

// IsActive reports whether the row is visible to default reads.
func (b *BaseModel) IsActive() bool {
	return !b.DeletedAt.Valid
}

// SoftDelete marks the row deleted. Deleting an already-deleted row is a no-op.
func (b *BaseModel) SoftDelete(now time.Time) {
	if b.DeletedAt.Valid {
		return
	}
	b.DeletedAt = gorm.DeletedAt{Time: now, Valid: true}
}

// Restore clears the deletion marker. All other fields are untouched.
func (b *BaseModel) Restore() {
	b.DeletedAt = gorm.DeletedAt{}
}

// PermanentModel is the base for append-only financial records.
// Invoices, invoice items and warehouse transactions are never soft
// deleted; history must stay intact.
type PermanentModel struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	CreatedAt   time.Time `json:"created_at"`
	CreatedByID *uint     `gorm:"index" json:"created_by_id,omitempty"`
	CreatedBy   *User     `gorm:"foreignKey:CreatedByID" json:"created_by,omitempty"`
}
