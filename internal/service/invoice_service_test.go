package service

import (
	"errors"
	"testing"

	"goldshop-api/internal/apperr"
	"goldshop-api/internal/model"

	"github.com/shopspring/decimal"
)

func dec(t *testing.T, s string) decimal.Decimal {
	t.Helper()
	d, err := decimal.NewFromString(s)
	if err != nil {
		t.Fatalf("bad decimal %q: %v", s, err)
	}
	return d
}

func testProduct(id uint, name string) *model.Product {
	p := &model.Product{
		Material: model.MaterialGold,
		Name:     name,
		Weight:   decimal.NewFromInt(5),
		Carat:    decimal.NewFromInt(21),
		Vendor:   &model.Vendor{Name: "Aurum Trading"},
	}
	p.ID = id
	return p
}

func TestBuildItemsSnapshotsProductFields(t *testing.T) {
	products := map[uint]*model.Product{
		1: testProduct(1, "Gold Ring"),
	}
	reqs := []CreateInvoiceItemRequest{
		{ProductID: 1, Quantity: 2, Price: dec(t, "150.00")},
	}

	items, total, err := buildItems(reqs, products)
	if err != nil {
		t.Fatalf("buildItems: %v", err)
	}
	if len(items) != 1 {
		t.Fatalf("got %d items, want 1", len(items))
	}

	item := items[0]
	if item.ItemName != "Gold Ring" {
		t.Errorf("ItemName = %q", item.ItemName)
	}
	if item.VendorName != "Aurum Trading" {
		t.Errorf("VendorName = %q", item.VendorName)
	}
	if !item.ItemWeight.Equal(decimal.NewFromInt(5)) {
		t.Errorf("ItemWeight = %s", item.ItemWeight)
	}
	if !item.ItemTotalPrice.Equal(dec(t, "300.00")) {
		t.Errorf("ItemTotalPrice = %s", item.ItemTotalPrice)
	}
	if !total.Equal(dec(t, "300.00")) {
		t.Errorf("total = %s", total)
	}

	// Editing the live product afterwards must not affect the snapshot.
	products[1].Name = "Renamed"
	products[1].Weight = decimal.NewFromInt(99)
	if item.ItemName != "Gold Ring" || !item.ItemWeight.Equal(decimal.NewFromInt(5)) {
		t.Error("snapshot mutated by product edit")
	}
}

// The invoice total must equal the exact sum of the rounded line totals,
// not a rounding of the raw sum.
func TestBuildItemsTotalIsSumOfRoundedLines(t *testing.T) {
	products := map[uint]*model.Product{
		1: testProduct(1, "A"),
		2: testProduct(2, "B"),
	}
	// Raw: 3 * 3.335 = 10.005 -> 10.01; 2 * 7.991 = 15.982 -> 15.98.
	reqs := []CreateInvoiceItemRequest{
		{ProductID: 1, Quantity: 3, Price: dec(t, "3.335")},
		{ProductID: 2, Quantity: 2, Price: dec(t, "7.991")},
	}

	items, total, err := buildItems(reqs, products)
	if err != nil {
		t.Fatalf("buildItems: %v", err)
	}

	want := decimal.Zero
	for _, item := range items {
		want = want.Add(item.ItemTotalPrice)
	}
	if !total.Equal(want) {
		t.Errorf("total = %s, want sum of lines %s", total, want)
	}
	if !total.Equal(dec(t, "25.99")) {
		t.Errorf("total = %s, want 25.99", total)
	}
}

func TestBuildItemsUnknownProduct(t *testing.T) {
	reqs := []CreateInvoiceItemRequest{
		{ProductID: 7, Quantity: 1, Price: dec(t, "10")},
	}
	_, _, err := buildItems(reqs, map[uint]*model.Product{})
	if err == nil {
		t.Fatal("expected error for unknown product")
	}
	if !errors.Is(err, apperr.ErrNotFound) {
		t.Errorf("want ErrNotFound, got %v", err)
	}
}

func TestBuildItemsRejectsNonPositiveQuantity(t *testing.T) {
	products := map[uint]*model.Product{1: testProduct(1, "A")}
	reqs := []CreateInvoiceItemRequest{
		{ProductID: 1, Quantity: 0, Price: dec(t, "10")},
	}
	_, _, err := buildItems(reqs, products)
	if !errors.Is(err, apperr.ErrValidation) {
		t.Errorf("want ErrValidation, got %v", err)
	}
}
