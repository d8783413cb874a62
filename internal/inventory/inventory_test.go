package inventory

import (
	"reflect"
	"testing"
	"time"

	"github.com/kisaan/demand-dashboard/backend-go/internal/domain"
)

func row(productID, warehouseID int64, category string, qty, reserved, available float64) domain.InventorySnapshotRow {
	return domain.InventorySnapshotRow{
		OdooProductID:     productID,
		WarehouseID:       warehouseID,
		WarehouseName:     map[int64]string{1: "Main", 2: "Annex", 0: "Default"}[warehouseID],
		ProductName:       map[int64]string{10: "Boxes", 11: "Dividers", 12: "Tape"}[productID],
		CategoryName:      category,
		Quantity:          qty,
		ReservedQuantity:  reserved,
		AvailableQuantity: available,
	}
}

func TestParseCategoryPath(t *testing.T) {
	tests := []struct {
		in   string
		want []string
	}{
		{"Raw Material / Card Boxes / Dividers", []string{"Raw Material", "Card Boxes", "Dividers"}},
		{"Raw Material", []string{"Raw Material"}},
		{"A/B", []string{"A", "B"}},
		{" / / ", nil},
		{"", nil},
	}
	for _, tt := range tests {
		got := ParseCategoryPath(tt.in)
		if len(got) == 0 && len(tt.want) == 0 {
			continue
		}
		if !reflect.DeepEqual(got, tt.want) {
			t.Errorf("ParseCategoryPath(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestCategoryFilterExactness(t *testing.T) {
	deep := row(10, 1, "Raw Material / Card Boxes / Dividers", 1, 0, 1)
	shallow := row(11, 1, "Raw Material", 1, 0, 1)

	if got := FilterRows([]domain.InventorySnapshotRow{deep}, nil, "Raw Material", "Card Boxes"); len(got) != 1 {
		t.Error("root+sub match should pass")
	}
	// "Dividers" is segment 2, not the sub-level
	if got := FilterRows([]domain.InventorySnapshotRow{deep}, nil, "Raw Material", "Dividers"); len(got) != 0 {
		t.Error("segment-2 name must not match the sub filter")
	}
	// a path with no sub-level fails any sub filter
	if got := FilterRows([]domain.InventorySnapshotRow{shallow}, nil, "Raw Material", "Card Boxes"); len(got) != 0 {
		t.Error("short path must fail the sub filter")
	}
	if got := FilterRows([]domain.InventorySnapshotRow{shallow}, nil, "Raw Material", ""); len(got) != 1 {
		t.Error("root-only filter should pass the short path")
	}
	if got := FilterRows([]domain.InventorySnapshotRow{deep}, nil, "Packaging", ""); len(got) != 0 {
		t.Error("non-matching root should fail")
	}
}

func TestWarehouseFilter(t *testing.T) {
	rows := []domain.InventorySnapshotRow{
		row(10, 0, "Raw Material", 5, 0, 5),
		row(10, 1, "Raw Material", 3, 0, 3),
	}

	if got := FilterRows(rows, nil, "", ""); len(got) != 2 {
		t.Errorf("nil warehouse id (all stock) kept %d rows, want 2", len(got))
	}
	// id 0 is a legitimate warehouse, distinct from "no selection"
	zero := int64(0)
	got := FilterRows(rows, &zero, "", "")
	if len(got) != 1 || got[0].WarehouseID != 0 {
		t.Errorf("warehouse 0 filter kept %v", got)
	}
}

func TestAggregateByWarehouseAdditivity(t *testing.T) {
	rows := []domain.InventorySnapshotRow{
		row(10, 1, "", 5, 1, 4),
		row(11, 1, "", 7, 0, 7),
		row(10, 2, "", 2, 2, 0),
		row(11, 1, "", 3, 1, 2), // second line for the same product+warehouse
	}
	aggs := AggregateByWarehouse(rows)
	if len(aggs) != 2 {
		t.Fatalf("got %d warehouses, want 2", len(aggs))
	}
	// sorted by warehouse name: Annex (2) before Main (1)
	annex, main := aggs[0], aggs[1]
	if annex.WarehouseName != "Annex" || main.WarehouseName != "Main" {
		t.Fatalf("order = %q, %q", annex.WarehouseName, main.WarehouseName)
	}
	if main.TotalQuantity != 15 || main.TotalAvailable != 13 {
		t.Errorf("main sums = %v/%v, want 15/13", main.TotalQuantity, main.TotalAvailable)
	}
	if main.ProductCount != 2 {
		t.Errorf("main product count = %d, want 2 distinct products", main.ProductCount)
	}
	if annex.TotalQuantity != 2 || annex.ProductCount != 1 {
		t.Errorf("annex = %+v", annex)
	}
}

func TestAggregateByWarehouseOrderIndependence(t *testing.T) {
	rows := []domain.InventorySnapshotRow{
		row(10, 1, "", 5, 1, 4),
		row(11, 1, "", 7, 0, 7),
		row(10, 2, "", 2, 2, 0),
	}
	reversed := []domain.InventorySnapshotRow{rows[2], rows[1], rows[0]}
	if !reflect.DeepEqual(AggregateByWarehouse(rows), AggregateByWarehouse(reversed)) {
		t.Error("aggregation depends on row order")
	}
}

func TestAggregateByProduct(t *testing.T) {
	rows := []domain.InventorySnapshotRow{
		row(10, 1, "Raw Material / Card Boxes", 5, 1, 4),
		row(10, 2, "Raw Material / Card Boxes", 2, 2, 0),
		row(12, 2, "Consumables", 9, 0, 9),
	}
	aggs := AggregateByProduct(rows)
	if len(aggs) != 2 {
		t.Fatalf("got %d products, want 2", len(aggs))
	}
	// sorted by product name: Boxes before Tape
	boxes := aggs[0]
	if boxes.ProductName != "Boxes" {
		t.Fatalf("order = %q", boxes.ProductName)
	}
	if boxes.Quantity != 7 || boxes.ReservedQuantity != 3 || boxes.AvailableQuantity != 4 {
		t.Errorf("boxes sums = %+v", boxes)
	}
	if boxes.WarehouseID != nil || boxes.WarehouseName != AllWarehousesLabel {
		t.Errorf("by-product warehouse label = %v %q", boxes.WarehouseID, boxes.WarehouseName)
	}
}

func TestCategoryFacets(t *testing.T) {
	rows := []domain.InventorySnapshotRow{
		row(10, 1, "Raw Material / Card Boxes / Dividers", 1, 0, 1),
		row(11, 1, "Raw Material / Labels", 1, 0, 1),
		row(12, 2, "Consumables", 1, 0, 1),
	}
	if got := CategoryRoots(rows); !reflect.DeepEqual(got, []string{"Consumables", "Raw Material"}) {
		t.Errorf("roots = %v", got)
	}
	if got := CategorySubs(rows, "Raw Material"); !reflect.DeepEqual(got, []string{"Card Boxes", "Labels"}) {
		t.Errorf("subs = %v", got)
	}
	if got := CategorySubs(rows, ""); got != nil {
		t.Errorf("subs without root = %v", got)
	}
}

func TestLatestSnapshotAt(t *testing.T) {
	if got := LatestSnapshotAt(nil); got != nil {
		t.Errorf("empty rows snapshot = %v", got)
	}
	older := time.Date(2024, 3, 1, 6, 0, 0, 0, time.UTC)
	newer := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	rows := []domain.InventorySnapshotRow{
		{OdooProductID: 1, SnapshotAt: older},
		{OdooProductID: 2, SnapshotAt: newer},
	}
	got := LatestSnapshotAt(rows)
	if got == nil || !got.Equal(newer) {
		t.Errorf("latest snapshot = %v, want %v", got, newer)
	}
}
