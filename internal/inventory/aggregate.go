// backend-go/internal/inventory/aggregate.go
package inventory

import (
	"fmt"
	"sort"
	"time"

	"github.com/kisaan/demand-dashboard/backend-go/internal/domain"
)

// AllWarehousesLabel is the synthetic warehouse name of the by-product
// (summed across warehouses) view.
const AllWarehousesLabel = "All warehouses"

// AggregateByWarehouse groups rows by warehouse, summing quantity and
// available quantity column-by-column and counting distinct products.
// Reserved is intentionally not derived here; consumers that need it
// subtract available from total themselves so the sums never drift from
// their source columns. Results are sorted by warehouse display name.
func AggregateByWarehouse(rows []domain.InventorySnapshotRow) []domain.WarehouseAggregate {
	byWh := make(map[int64]*domain.WarehouseAggregate)
	productsSeen := make(map[int64]map[int64]struct{})
	for _, r := range rows {
		agg, ok := byWh[r.WarehouseID]
		if !ok {
			name := r.WarehouseName
			if name == "" {
				name = fmt.Sprintf("Warehouse %d", r.WarehouseID)
			}
			agg = &domain.WarehouseAggregate{WarehouseID: r.WarehouseID, WarehouseName: name}
			byWh[r.WarehouseID] = agg
			productsSeen[r.WarehouseID] = make(map[int64]struct{})
		}
		agg.TotalQuantity += r.Quantity
		agg.TotalAvailable += r.AvailableQuantity
		if _, dup := productsSeen[r.WarehouseID][r.OdooProductID]; !dup {
			productsSeen[r.WarehouseID][r.OdooProductID] = struct{}{}
			agg.ProductCount++
		}
	}

	out := make([]domain.WarehouseAggregate, 0, len(byWh))
	for _, agg := range byWh {
		out = append(out, *agg)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].WarehouseName < out[j].WarehouseName })
	return out
}

// AggregateByProduct groups rows by product across all warehouses, summing
// quantity, reserved and available component-wise. Product metadata and
// the snapshot time come from the first row seen for the product. Results
// are sorted by product display name.
func AggregateByProduct(rows []domain.InventorySnapshotRow) []domain.ProductAggregate {
	byProduct := make(map[int64]*domain.ProductAggregate)
	for _, r := range rows {
		agg, ok := byProduct[r.OdooProductID]
		if !ok {
			agg = &domain.ProductAggregate{
				OdooProductID: r.OdooProductID,
				ProductName:   r.ProductName,
				DefaultCode:   r.DefaultCode,
				CategoryName:  r.CategoryName,
				WarehouseName: AllWarehousesLabel,
				SnapshotAt:    r.SnapshotAt,
			}
			byProduct[r.OdooProductID] = agg
		}
		agg.Quantity += r.Quantity
		agg.ReservedQuantity += r.ReservedQuantity
		agg.AvailableQuantity += r.AvailableQuantity
	}

	out := make([]domain.ProductAggregate, 0, len(byProduct))
	for _, agg := range byProduct {
		out = append(out, *agg)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ProductName < out[j].ProductName })
	return out
}

// LatestSnapshotAt returns the most recent snapshot time across rows, or
// nil for an empty set.
func LatestSnapshotAt(rows []domain.InventorySnapshotRow) *time.Time {
	var latest time.Time
	for _, r := range rows {
		if r.SnapshotAt.After(latest) {
			latest = r.SnapshotAt
		}
	}
	if latest.IsZero() {
		return nil
	}
	return &latest
}
