package model

import (
	"time"

	"golang.org/x/crypto/bcrypt"
)

type Role string

const (
	RoleAdmin    Role = "Admin"
	RoleManager  Role = "Manager"
	RoleEmployee Role = "Employee"
)

// Valid reports whether r is one of the three known roles.
func (r Role) Valid() bool {
	return r == RoleAdmin || r == RoleManager || r == RoleEmployee
}

// User represents an authenticated user. Admins have no branch and see
// everything; managers and employees are scoped to their branch.
type User struct {
	BaseModel
	Username          string  `gorm:"type:varchar(255);uniqueIndex;not null" json:"username" validate:"required"`
	Email             string  `gorm:"type:varchar(255);uniqueIndex;not null" json:"email" validate:"required,email"`
	Password          string  `gorm:"type:varchar(255);not null" json:"-"`
	Role              Role    `gorm:"type:varchar(20);not null" json:"role" validate:"required,oneof=Admin Manager Employee"`
	BranchID          *uint   `gorm:"index" json:"branch_id"`
	Branch            *Branch `gorm:"foreignKey:BranchID" json:"branch,omitempty"`
	IsWarehouseKeeper bool    `gorm:"default:false" json:"is_warehouse_keeper"`
	Enabled           bool    `gorm:"default:true" json:"is_active"`

	TokenVersion string     `gorm:"type:varchar(255);default:''" json:"-"` // single session enforcement
	LastSeenAt   *time.Time `json:"last_seen_at,omitempty"`
}

// SetPassword hashes and sets the user's password.
func (u *User) SetPassword(password string) error {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	u.Password = string(hashed)
	return nil
}

// CheckPassword verifies the provided password against the stored hash.
func (u *User) CheckPassword(password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(password)) == nil
}

// UserResponse is the API shape for a user (no credentials).
type UserResponse struct {
	ID                uint       `json:"id"`
	Username          string     `json:"username"`
	Email             string     `json:"email"`
	Role              Role       `json:"role"`
	BranchID          *uint      `json:"branch_id,omitempty"`
	Branch            *Branch    `json:"branch,omitempty"`
	IsWarehouseKeeper bool       `json:"is_warehouse_keeper"`
	Enabled           bool       `json:"is_active"`
	LastSeenAt        *time.Time `json:"last_seen_at,omitempty"`
}

func (u *User) ToResponse() UserResponse {
	return UserResponse{
		ID:                u.ID,
		Username:          u.Username,
		Email:             u.Email,
		Role:              u.Role,
		BranchID:          u.BranchID,
		Branch:            u.Branch,
		IsWarehouseKeeper: u.IsWarehouseKeeper,
		Enabled:           u.Enabled,
		LastSeenAt:        u.LastSeenAt,
	}
}
