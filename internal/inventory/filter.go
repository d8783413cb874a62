// backend-go/internal/inventory/filter.go

// Package inventory holds the pure aggregation and filtering logic for the
// Odoo stock snapshot view. Functions accept whatever row set the caller
// hands them and stay agnostic to which filters were applied upstream.
package inventory

import (
	"sort"
	"strings"

	"github.com/kisaan/demand-dashboard/backend-go/internal/domain"
)

// ParseCategoryPath splits a slash-delimited category hierarchy such as
// "Raw Material / Card Boxes / Dividers" into its trimmed segments. Empty
// segments are dropped.
func ParseCategoryPath(categoryName string) []string {
	if categoryName == "" {
		return nil
	}
	parts := strings.Split(categoryName, "/")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

// CategoryRoots lists the distinct first path segments across rows, sorted.
func CategoryRoots(rows []domain.InventorySnapshotRow) []string {
	seen := make(map[string]struct{})
	for _, r := range rows {
		path := ParseCategoryPath(r.CategoryName)
		if len(path) > 0 {
			seen[path[0]] = struct{}{}
		}
	}
	return sortedKeys(seen)
}

// CategorySubs lists the distinct second path segments under the given
// root, sorted. Empty root yields nothing.
func CategorySubs(rows []domain.InventorySnapshotRow, root string) []string {
	if root == "" {
		return nil
	}
	seen := make(map[string]struct{})
	for _, r := range rows {
		path := ParseCategoryPath(r.CategoryName)
		if len(path) >= 2 && path[0] == root {
			seen[path[1]] = struct{}{}
		}
	}
	return sortedKeys(seen)
}

// FilterRows applies the warehouse and category-path filters. A nil
// warehouseID passes every warehouse (the "all stock" state; id 0 is a
// real warehouse). A root filter requires an exact match on segment 0; a
// sub filter additionally requires an exact match on segment 1, so rows
// with a shorter path are excluded.
func FilterRows(rows []domain.InventorySnapshotRow, warehouseID *int64, root, sub string) []domain.InventorySnapshotRow {
	out := make([]domain.InventorySnapshotRow, 0, len(rows))
	for _, r := range rows {
		if warehouseID != nil && r.WarehouseID != *warehouseID {
			continue
		}
		if root != "" {
			path := ParseCategoryPath(r.CategoryName)
			if len(path) == 0 || path[0] != root {
				continue
			}
			if sub != "" && (len(path) < 2 || path[1] != sub) {
				continue
			}
		}
		out = append(out, r)
	}
	return out
}

func sortedKeys(set map[string]struct{}) []string {
	out := make([]string, 0, len(set))
	for k := range set {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
