// backend-go/internal/repository/inventory_repository.go
package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/kisaan/demand-dashboard/backend-go/internal/domain"
)

// InventoryRepository reads the Odoo warehouse catalog and the latest
// inventory snapshot. A nil warehouseID returns every warehouse's rows.
type InventoryRepository interface {
	GetWarehouses(ctx context.Context) ([]domain.Warehouse, error)
	GetInventorySnapshot(ctx context.Context, warehouseID *int64) ([]domain.InventorySnapshotRow, error)
}

type inventoryRepository struct {
	db *sqlx.DB
}

func NewInventoryRepository(db *sqlx.DB) InventoryRepository {
	return &inventoryRepository{db: db}
}

func (r *inventoryRepository) GetWarehouses(ctx context.Context) ([]domain.Warehouse, error) {
	query := `
        SELECT id, COALESCE(name, '') AS name, COALESCE(code, '') AS code, updated_at
        FROM analytics.odoo_warehouses
        ORDER BY name ASC
    `

	var warehouses []domain.Warehouse
	if err := r.db.SelectContext(ctx, &warehouses, query); err != nil {
		return nil, fmt.Errorf("error getting warehouses: %w", err)
	}
	return warehouses, nil
}

func (r *inventoryRepository) GetInventorySnapshot(ctx context.Context, warehouseID *int64) ([]domain.InventorySnapshotRow, error) {
	query := `
        SELECT
            odoo_product_id,
            warehouse_id,
            COALESCE(warehouse_name, '') AS warehouse_name,
            COALESCE(product_name, '') AS product_name,
            COALESCE(default_code, '') AS default_code,
            COALESCE(category_name, '') AS category_name,
            COALESCE(quantity, 0) AS quantity,
            COALESCE(reserved_quantity, 0) AS reserved_quantity,
            COALESCE(available_quantity, 0) AS available_quantity,
            snapshot_at
        FROM analytics.odoo_inventory_snapshot
    `

	var args []interface{}
	if warehouseID != nil {
		query += " WHERE warehouse_id = $1"
		args = append(args, *warehouseID)
	}
	query += " ORDER BY product_name ASC"

	var rows []domain.InventorySnapshotRow
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("error getting inventory snapshot: %w", err)
	}
	return rows, nil
}
