package model

import (
	"testing"
	"time"
)

func TestSoftDeleteRoundTrip(t *testing.T) {
	v := &Vendor{Name: "Golden Source"}
	if !v.IsActive() {
		t.Fatal("fresh row should be active")
	}

	now := time.Now()
	v.SoftDelete(now)
	if v.IsActive() {
		t.Fatal("deleted row should not be active")
	}
	if !v.DeletedAt.Time.Equal(now) {
		t.Errorf("deletion timestamp = %v, want %v", v.DeletedAt.Time, now)
	}

	v.Restore()
	if !v.IsActive() {
		t.Fatal("restored row should be active")
	}
	if v.Name != "Golden Source" {
		t.Errorf("restore touched other fields: %q", v.Name)
	}
}

func TestSoftDeleteIdempotent(t *testing.T) {
	v := &Vendor{Name: "x"}
	first := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	later := first.Add(48 * time.Hour)

	v.SoftDelete(first)
	v.SoftDelete(later)
	if !v.DeletedAt.Time.Equal(first) {
		t.Errorf("second delete moved the timestamp to %v, want %v", v.DeletedAt.Time, first)
	}
}
