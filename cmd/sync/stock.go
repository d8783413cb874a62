package main

import (
	"context"
	"database/sql"
	"fmt"
	"log"

	"github.com/urfave/cli/v2"

	"github.com/kisaan/demand-dashboard/backend-go/internal/config"
	"github.com/kisaan/demand-dashboard/backend-go/internal/odoo"
)

func runStockSync(c *cli.Context) error {
	return syncStock(c.Context, c.String("db-url"), odooConfigFromFlags(c))
}

func odooConfigFromFlags(c *cli.Context) config.OdooConfig {
	return config.OdooConfig{
		URL:      c.String("odoo-url"),
		DB:       c.String("odoo-db"),
		Username: c.String("odoo-username"),
		Password: c.String("odoo-password"),
	}
}

func syncStock(ctx context.Context, dbURL string, odooCfg config.OdooConfig) error {
	client, err := odoo.Dial(odooCfg)
	if err != nil {
		return err
	}
	defer client.Close()

	log.Println("Fetching stock snapshot from Odoo...")
	warehouses, rows, err := odoo.FetchSnapshot(client)
	if err != nil {
		return fmt.Errorf("failed to fetch snapshot: %w", err)
	}
	log.Printf("Fetched %d warehouses and %d snapshot rows", len(warehouses), len(rows))

	db, err := sql.Open("pgx", dbURL)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer db.Close()

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	const warehouseQuery = `
        INSERT INTO analytics.odoo_warehouses (id, name, code, updated_at)
        VALUES ($1, $2, $3, NOW())
        ON CONFLICT (id) DO UPDATE SET
            name = EXCLUDED.name,
            code = EXCLUDED.code,
            updated_at = NOW()
    `
	for _, wh := range warehouses {
		if _, err := tx.ExecContext(ctx, warehouseQuery, wh.ID, wh.Name, wh.Code); err != nil {
			return fmt.Errorf("failed to upsert warehouse %d: %w", wh.ID, err)
		}
	}

	const snapshotQuery = `
        INSERT INTO analytics.odoo_inventory_snapshot (
            odoo_product_id, warehouse_id, warehouse_name, product_name,
            default_code, category_name, quantity, reserved_quantity,
            available_quantity, snapshot_at
        )
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
        ON CONFLICT (odoo_product_id, warehouse_id) DO UPDATE SET
            warehouse_name = EXCLUDED.warehouse_name,
            product_name = EXCLUDED.product_name,
            default_code = EXCLUDED.default_code,
            category_name = EXCLUDED.category_name,
            quantity = EXCLUDED.quantity,
            reserved_quantity = EXCLUDED.reserved_quantity,
            available_quantity = EXCLUDED.available_quantity,
            snapshot_at = EXCLUDED.snapshot_at
    `
	stmt, err := tx.PrepareContext(ctx, snapshotQuery)
	if err != nil {
		return fmt.Errorf("failed to prepare snapshot statement: %w", err)
	}
	defer stmt.Close()

	rowCount := 0
	for _, r := range rows {
		if _, err := stmt.ExecContext(ctx,
			r.OdooProductID,
			r.WarehouseID,
			r.WarehouseName,
			r.ProductName,
			r.DefaultCode,
			r.CategoryName,
			r.Quantity,
			r.ReservedQuantity,
			r.AvailableQuantity,
			r.SnapshotAt,
		); err != nil {
			return fmt.Errorf("failed to upsert snapshot row (product %d, warehouse %d): %w",
				r.OdooProductID, r.WarehouseID, err)
		}
		rowCount++
		if rowCount%5000 == 0 {
			log.Printf("Upserted %d snapshot rows...", rowCount)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	log.Printf("Stock sync completed (%d rows)", rowCount)
	return nil
}
