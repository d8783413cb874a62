// backend-go/internal/odoo/sync.go
package odoo

import (
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/kisaan/demand-dashboard/backend-go/internal/domain"
)

// FetchSnapshot pulls the current stock picture from Odoo: the active
// warehouses and a quantity row for every product x warehouse pair,
// including zero rows so the dashboard can show products that are out
// of stock everywhere.
func FetchSnapshot(client *Client) ([]domain.Warehouse, []domain.InventorySnapshotRow, error) {
	warehouses, stockLocations, err := fetchWarehouses(client)
	if err != nil {
		return nil, nil, err
	}

	products, err := fetchProducts(client)
	if err != nil {
		return nil, nil, err
	}

	categories, err := fetchCategoryNames(client)
	if err != nil {
		return nil, nil, err
	}

	snapshotAt := time.Now().UTC()
	rows := make([]domain.InventorySnapshotRow, 0, len(products)*len(warehouses))

	for _, wh := range warehouses {
		locationID, ok := stockLocations[wh.ID]
		if !ok {
			log.Warn().Int64("warehouse_id", wh.ID).Msg("odoo sync: warehouse has no stock location, skipping")
			continue
		}

		quants, err := fetchQuants(client, locationID)
		if err != nil {
			return nil, nil, fmt.Errorf("warehouse %d: %w", wh.ID, err)
		}

		for _, p := range products {
			q := quants[p.id]
			rows = append(rows, domain.InventorySnapshotRow{
				OdooProductID:     p.id,
				WarehouseID:       wh.ID,
				WarehouseName:     wh.Name,
				ProductName:       p.name,
				DefaultCode:       p.defaultCode,
				CategoryName:      categories[p.categoryID],
				Quantity:          q.quantity,
				ReservedQuantity:  q.reserved,
				AvailableQuantity: q.quantity - q.reserved,
				SnapshotAt:        snapshotAt,
			})
		}
	}

	return warehouses, rows, nil
}

type productInfo struct {
	id          int64
	name        string
	defaultCode string
	categoryID  int64
}

type quantTotals struct {
	quantity float64
	reserved float64
}

func fetchWarehouses(client *Client) ([]domain.Warehouse, map[int64]int64, error) {
	records, err := client.SearchRead("stock.warehouse",
		[]interface{}{[]interface{}{"active", "=", true}},
		[]string{"id", "name", "code", "lot_stock_id"},
		map[string]interface{}{"order": "name asc"},
	)
	if err != nil {
		return nil, nil, err
	}

	warehouses := make([]domain.Warehouse, 0, len(records))
	stockLocations := make(map[int64]int64, len(records))
	for _, rec := range records {
		id := asInt64(rec["id"])
		if id == 0 {
			continue
		}
		warehouses = append(warehouses, domain.Warehouse{
			ID:   id,
			Name: asString(rec["name"]),
			Code: asString(rec["code"]),
		})
		if locID, _ := asMany2One(rec["lot_stock_id"]); locID != 0 {
			stockLocations[id] = locID
		}
	}
	return warehouses, stockLocations, nil
}

func fetchProducts(client *Client) ([]productInfo, error) {
	records, err := client.SearchRead("product.product",
		[]interface{}{[]interface{}{"active", "=", true}},
		[]string{"id", "name", "default_code", "categ_id"},
		nil,
	)
	if err != nil {
		return nil, err
	}

	products := make([]productInfo, 0, len(records))
	for _, rec := range records {
		id := asInt64(rec["id"])
		if id == 0 {
			continue
		}
		categoryID, _ := asMany2One(rec["categ_id"])
		products = append(products, productInfo{
			id:          id,
			name:        asString(rec["name"]),
			defaultCode: asString(rec["default_code"]),
			categoryID:  categoryID,
		})
	}
	return products, nil
}

// fetchCategoryNames prefers complete_name ("All / Vegetables / Leafy")
// so category filters can match path segments.
func fetchCategoryNames(client *Client) (map[int64]string, error) {
	records, err := client.SearchRead("product.category",
		[]interface{}{},
		[]string{"id", "name", "complete_name"},
		nil,
	)
	if err != nil {
		return nil, err
	}

	names := make(map[int64]string, len(records))
	for _, rec := range records {
		id := asInt64(rec["id"])
		if id == 0 {
			continue
		}
		name := asString(rec["complete_name"])
		if name == "" {
			name = asString(rec["name"])
		}
		names[id] = name
	}
	return names, nil
}

func fetchQuants(client *Client, locationID int64) (map[int64]quantTotals, error) {
	records, err := client.SearchRead("stock.quant",
		[]interface{}{
			[]interface{}{"location_id", "child_of", locationID},
			[]interface{}{"quantity", "!=", 0},
		},
		[]string{"product_id", "quantity", "reserved_quantity"},
		nil,
	)
	if err != nil {
		return nil, err
	}

	totals := make(map[int64]quantTotals, len(records))
	for _, rec := range records {
		productID, _ := asMany2One(rec["product_id"])
		if productID == 0 {
			continue
		}
		t := totals[productID]
		t.quantity += asFloat64(rec["quantity"])
		t.reserved += asFloat64(rec["reserved_quantity"])
		totals[productID] = t
	}
	return totals, nil
}

// asMany2One unpacks Odoo's [id, display_name] tuples. Unset relations
// come over the wire as boolean false.
func asMany2One(v interface{}) (int64, string) {
	tuple, ok := v.([]interface{})
	if !ok || len(tuple) < 2 {
		return 0, ""
	}
	return asInt64(tuple[0]), asString(tuple[1])
}

func asInt64(v interface{}) int64 {
	switch n := v.(type) {
	case int64:
		return n
	case int:
		return int64(n)
	case float64:
		return int64(n)
	default:
		return 0
	}
}

func asFloat64(v interface{}) float64 {
	switch n := v.(type) {
	case float64:
		return n
	case int64:
		return float64(n)
	case int:
		return float64(n)
	default:
		return 0
	}
}

func asString(v interface{}) string {
	s, ok := v.(string)
	if !ok {
		return ""
	}
	return s
}
