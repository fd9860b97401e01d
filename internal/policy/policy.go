// Package policy makes branch-scoped authorization decisions. It is a
// pure function over an actor snapshot and a resource, with no store or
// transport dependencies, so every (role, flag, branch) combination can
// be unit-tested in isolation.
package policy

import (
	"goldshop-api/internal/apperr"
	"goldshop-api/internal/model"
)

// Actor is the pre-authenticated identity a request acts as.
type Actor struct {
	ID                uint
	Role              model.Role
	BranchID          *uint
	IsWarehouseKeeper bool
}

// BranchResolver is implemented by every resource type that can be
// scoped to a branch: directly, through its warehouse, or through its
// creator. Resolution is static per type, not probed at call time.
type BranchResolver interface {
	ResolveBranch() (uint, bool)
}

// KeeperGated marks resource types (customers) whose management
// additionally requires Manager role or the warehouse-keeper flag.
type KeeperGated interface {
	KeeperGated()
}

// Authorize decides whether the actor may act on the resource.
// Rules, in order: admins always pass; keeper-gated resources require
// Manager or keeper-Employee; otherwise the resource's branch must
// resolve and match the actor's branch.
func Authorize(actor Actor, resource BranchResolver) error {
	if actor.Role == model.RoleAdmin {
		return nil
	}

	if _, gated := resource.(KeeperGated); gated {
		keeper := actor.Role == model.RoleManager ||
			(actor.Role == model.RoleEmployee && actor.IsWarehouseKeeper)
		if !keeper {
			return apperr.Wrap(apperr.ErrPermissionDenied, "customer management requires manager or warehouse keeper")
		}
	}

	branchID, ok := resource.ResolveBranch()
	if !ok {
		return apperr.Wrap(apperr.ErrPermissionDenied, "resource has no resolvable branch")
	}
	if actor.BranchID == nil || *actor.BranchID != branchID {
		return apperr.Wrap(apperr.ErrPermissionDenied, "resource belongs to another branch")
	}
	return nil
}

// CanDecideTransfer reports whether the actor may approve or reject
// transfers: managers, warehouse keepers, and admins.
func CanDecideTransfer(actor Actor) bool {
	switch actor.Role {
	case model.RoleAdmin, model.RoleManager:
		return true
	case model.RoleEmployee:
		return actor.IsWarehouseKeeper
	}
	return false
}
