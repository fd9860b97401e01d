package policy

import (
	"errors"
	"testing"

	"goldshop-api/internal/apperr"
	"goldshop-api/internal/model"
)

func branchPtr(id uint) *uint { return &id }

func warehouseIn(branchID uint) *model.Warehouse {
	return &model.Warehouse{BranchID: branchID}
}

func customerCreatedIn(branchID uint) *model.Customer {
	c := &model.Customer{}
	c.CreatedBy = &model.User{BranchID: branchPtr(branchID)}
	return c
}

func TestAuthorize_AdminBypassesEverything(t *testing.T) {
	admin := Actor{ID: 1, Role: model.RoleAdmin}

	if err := Authorize(admin, warehouseIn(7)); err != nil {
		t.Fatalf("admin denied on warehouse: %v", err)
	}
	if err := Authorize(admin, customerCreatedIn(7)); err != nil {
		t.Fatalf("admin denied on customer: %v", err)
	}
	// Even an unresolvable branch is fine for admins.
	if err := Authorize(admin, &model.Customer{}); err != nil {
		t.Fatalf("admin denied on branchless resource: %v", err)
	}
}

func TestAuthorize_BranchMatrix(t *testing.T) {
	cases := []struct {
		name    string
		role    model.Role
		keeper  bool
		branch  *uint
		allowed bool
	}{
		{"manager same branch", model.RoleManager, false, branchPtr(1), true},
		{"manager other branch", model.RoleManager, false, branchPtr(2), false},
		{"manager no branch", model.RoleManager, false, nil, false},
		{"employee same branch", model.RoleEmployee, false, branchPtr(1), true},
		{"employee other branch", model.RoleEmployee, false, branchPtr(2), false},
		{"keeper employee same branch", model.RoleEmployee, true, branchPtr(1), true},
		{"keeper employee other branch", model.RoleEmployee, true, branchPtr(2), false},
	}

	for _, tc := range cases {
		actor := Actor{ID: 10, Role: tc.role, BranchID: tc.branch, IsWarehouseKeeper: tc.keeper}
		err := Authorize(actor, warehouseIn(1))
		if tc.allowed && err != nil {
			t.Errorf("%s: expected allow, got %v", tc.name, err)
		}
		if !tc.allowed {
			if err == nil {
				t.Errorf("%s: expected deny", tc.name)
			} else if !errors.Is(err, apperr.ErrPermissionDenied) {
				t.Errorf("%s: expected ErrPermissionDenied, got %v", tc.name, err)
			}
		}
	}
}

// A manager of branch A acting on a branch-B warehouse must be denied.
func TestAuthorize_ManagerCrossBranchWarehouse(t *testing.T) {
	actor := Actor{ID: 3, Role: model.RoleManager, BranchID: branchPtr(1)}
	err := Authorize(actor, warehouseIn(2))
	if !errors.Is(err, apperr.ErrPermissionDenied) {
		t.Fatalf("expected ErrPermissionDenied, got %v", err)
	}
}

func TestAuthorize_CustomerKeeperGate(t *testing.T) {
	cases := []struct {
		name    string
		role    model.Role
		keeper  bool
		allowed bool
	}{
		{"manager", model.RoleManager, false, true},
		{"keeper employee", model.RoleEmployee, true, true},
		{"plain employee", model.RoleEmployee, false, false},
	}

	for _, tc := range cases {
		actor := Actor{ID: 5, Role: tc.role, BranchID: branchPtr(1), IsWarehouseKeeper: tc.keeper}
		err := Authorize(actor, customerCreatedIn(1))
		if tc.allowed && err != nil {
			t.Errorf("%s: expected allow, got %v", tc.name, err)
		}
		if !tc.allowed && !errors.Is(err, apperr.ErrPermissionDenied) {
			t.Errorf("%s: expected ErrPermissionDenied, got %v", tc.name, err)
		}
	}
}

func TestAuthorize_UnresolvableBranchDenied(t *testing.T) {
	actor := Actor{ID: 5, Role: model.RoleManager, BranchID: branchPtr(1)}
	// Customer without creator loaded: branch cannot resolve.
	if err := Authorize(actor, &model.Customer{}); !errors.Is(err, apperr.ErrPermissionDenied) {
		t.Fatalf("expected ErrPermissionDenied, got %v", err)
	}
}

func TestCanDecideTransfer(t *testing.T) {
	if !CanDecideTransfer(Actor{Role: model.RoleAdmin}) {
		t.Error("admin should decide transfers")
	}
	if !CanDecideTransfer(Actor{Role: model.RoleManager}) {
		t.Error("manager should decide transfers")
	}
	if !CanDecideTransfer(Actor{Role: model.RoleEmployee, IsWarehouseKeeper: true}) {
		t.Error("keeper employee should decide transfers")
	}
	if CanDecideTransfer(Actor{Role: model.RoleEmployee}) {
		t.Error("plain employee must not decide transfers")
	}
}
