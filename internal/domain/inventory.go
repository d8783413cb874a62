// backend-go/internal/domain/inventory.go
package domain

import "time"

// Warehouse mirrors analytics.odoo_warehouses.
type Warehouse struct {
	ID        int64     `json:"id" db:"id"`
	Name      string    `json:"name" db:"name"`
	Code      string    `json:"code" db:"code"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// InventorySnapshotRow is one (product, warehouse) line of the latest Odoo
// stock sync. CategoryName is a slash-delimited path, e.g.
// "Raw Material / Card Boxes / Dividers".
type InventorySnapshotRow struct {
	OdooProductID     int64     `json:"odoo_product_id" db:"odoo_product_id"`
	WarehouseID       int64     `json:"warehouse_id" db:"warehouse_id"`
	WarehouseName     string    `json:"warehouse_name" db:"warehouse_name"`
	ProductName       string    `json:"product_name" db:"product_name"`
	DefaultCode       string    `json:"default_code" db:"default_code"`
	CategoryName      string    `json:"category_name" db:"category_name"`
	Quantity          float64   `json:"quantity" db:"quantity"`
	ReservedQuantity  float64   `json:"reserved_quantity" db:"reserved_quantity"`
	AvailableQuantity float64   `json:"available_quantity" db:"available_quantity"`
	SnapshotAt        time.Time `json:"snapshot_at" db:"snapshot_at"`
}

// WarehouseAggregate sums snapshot rows for one warehouse. Each summed
// field is accumulated from its own source column, never derived from the
// other sums.
type WarehouseAggregate struct {
	WarehouseID    int64   `json:"warehouse_id"`
	WarehouseName  string  `json:"warehouse_name"`
	TotalQuantity  float64 `json:"total_quantity"`
	TotalAvailable float64 `json:"total_available"`
	ProductCount   int     `json:"product_count"`
}

// ProductAggregate sums one product's snapshot rows across all warehouses.
// WarehouseID is always nil and WarehouseName carries the "All warehouses"
// sentinel label.
type ProductAggregate struct {
	OdooProductID     int64     `json:"odoo_product_id"`
	ProductName       string    `json:"product_name"`
	DefaultCode       string    `json:"default_code"`
	CategoryName      string    `json:"category_name"`
	WarehouseID       *int64    `json:"warehouse_id"`
	WarehouseName     string    `json:"warehouse_name"`
	Quantity          float64   `json:"quantity"`
	ReservedQuantity  float64   `json:"reserved_quantity"`
	AvailableQuantity float64   `json:"available_quantity"`
	SnapshotAt        time.Time `json:"snapshot_at"`
}

// InventoryFilter is the parsed filter state of the inventory view.
// WarehouseID nil means "all stock"; 0 is a legitimate warehouse id.
type InventoryFilter struct {
	WarehouseID  *int64
	CategoryRoot string
	CategorySub  string
	ViewMode     string
}

// Inventory view modes.
const (
	ViewByWarehouse = "by_warehouse"
	ViewByProduct   = "by_product"
)

// InventoryOverview is the inventory tab payload: filtered rows, the
// aggregates derived from them, and the category facets computed from the
// unfiltered snapshot.
type InventoryOverview struct {
	Warehouses    []Warehouse            `json:"warehouses"`
	Rows          []InventorySnapshotRow `json:"rows"`
	ByWarehouse   []WarehouseAggregate   `json:"by_warehouse"`
	ByProduct     []ProductAggregate     `json:"by_product,omitempty"`
	CategoryRoots []string               `json:"category_roots"`
	CategorySubs  []string               `json:"category_subs,omitempty"`
	SnapshotAt    *time.Time             `json:"snapshot_at,omitempty"`
}
