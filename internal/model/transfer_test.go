package model

import (
	"errors"
	"testing"
	"time"

	"goldshop-api/internal/apperr"
)

func TestEnsurePending(t *testing.T) {
	tx := &WarehouseTransaction{Status: TransferPending}
	if err := tx.EnsurePending(); err != nil {
		t.Fatalf("pending transaction rejected: %v", err)
	}

	for _, terminal := range []TransferStatus{TransferApproved, TransferRejected} {
		tx := &WarehouseTransaction{Status: terminal}
		err := tx.EnsurePending()
		if err == nil {
			t.Fatalf("acting on %s transaction should fail", terminal)
		}
		if !errors.Is(err, apperr.ErrInvalidStateTransition) {
			t.Errorf("want ErrInvalidStateTransition, got %v", err)
		}
	}
}

func TestDecideStampsActionFields(t *testing.T) {
	tx := &WarehouseTransaction{Status: TransferPending}
	now := time.Now()
	tx.Decide(TransferApproved, 42, now)

	if tx.Status != TransferApproved {
		t.Errorf("status = %s, want Approved", tx.Status)
	}
	if tx.ActionByID == nil || *tx.ActionByID != 42 {
		t.Errorf("action_by not stamped: %v", tx.ActionByID)
	}
	if tx.ActionDate == nil || !tx.ActionDate.Equal(now) {
		t.Errorf("action_date not stamped: %v", tx.ActionDate)
	}

	// A decided transaction is terminal.
	if err := tx.EnsurePending(); err == nil {
		t.Fatal("decided transaction should refuse further transitions")
	}
}

func TestTransferStatusValid(t *testing.T) {
	for _, s := range []TransferStatus{TransferPending, TransferApproved, TransferRejected} {
		if !s.Valid() {
			t.Errorf("%s should be valid", s)
		}
	}
	if TransferStatus("Cancelled").Valid() {
		t.Error("unknown status should be invalid")
	}
}

func TestMaterialValid(t *testing.T) {
	if !MaterialGold.Valid() || !MaterialSilver.Valid() {
		t.Error("known materials should be valid")
	}
	if Material("Platinum").Valid() {
		t.Error("unknown material should be invalid")
	}
}
