package main

import (
	"context"
	"database/sql"
	"encoding/csv"
	"fmt"
	"io"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/urfave/cli/v2"
)

// seedColumns is the expected CSV header of a daily demand seed file.
var seedColumns = []string{
	"product_id",
	"delivery_date",
	"actual_order_quantity",
	"planned_order_quantity",
	"delivered_order_quantity",
}

func runDemandSeed(c *cli.Context) error {
	return seedDemand(c.Context, c.String("db-url"), c.String("file"))
}

func seedDemand(ctx context.Context, dbURL, filePath string) error {
	log.Printf("Seeding daily demand summary from %s\n", filePath)

	file, err := os.Open(filePath)
	if err != nil {
		return fmt.Errorf("failed to open file %s: %w", filePath, err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	header, err := reader.Read()
	if err != nil {
		return fmt.Errorf("failed to read CSV header: %w", err)
	}

	indexes := make(map[string]int, len(seedColumns))
	for _, col := range seedColumns {
		idx := -1
		for i, h := range header {
			if strings.TrimSpace(h) == col {
				idx = i
				break
			}
		}
		if idx < 0 {
			return fmt.Errorf("column %q not found in header: %v", col, header)
		}
		indexes[col] = idx
	}

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

	const query = `
        INSERT INTO analytics.daily_demand_summary_product (
            product_id, delivery_date, actual_order_quantity,
            planned_order_quantity, delivered_order_quantity
        )
        VALUES ($1, $2::date, $3, $4, $5)
        ON CONFLICT (product_id, delivery_date) DO UPDATE SET
            actual_order_quantity = EXCLUDED.actual_order_quantity,
            planned_order_quantity = EXCLUDED.planned_order_quantity,
            delivered_order_quantity = EXCLUDED.delivered_order_quantity
    `
	stmt, err := tx.PrepareContext(ctx, query)
	if err != nil {
		return fmt.Errorf("failed to prepare demand statement: %w", err)
	}
	defer stmt.Close()

	rowCount := 0
	for {
		record, err := reader.Read()
		if err != nil {
			if err == io.EOF {
				break
			}
			return fmt.Errorf("failed to read CSV record: %w", err)
		}

		productID := strings.TrimSpace(record[indexes["product_id"]])
		deliveryDate := strings.TrimSpace(record[indexes["delivery_date"]])
		if productID == "" || deliveryDate == "" {
			continue
		}

		if _, err := stmt.ExecContext(ctx,
			productID,
			deliveryDate,
			parseQuantity(record[indexes["actual_order_quantity"]]),
			parseQuantity(record[indexes["planned_order_quantity"]]),
			parseQuantity(record[indexes["delivered_order_quantity"]]),
		); err != nil {
			return fmt.Errorf("failed to upsert demand row (%s, %s): %w", productID, deliveryDate, err)
		}

		rowCount++
		if rowCount%5000 == 0 {
			log.Printf("Seeded %d demand rows...", rowCount)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	log.Printf("Successfully seeded daily demand summary (%d records)\n", rowCount)
	return nil
}

// parseQuantity treats blanks and malformed numbers as 0, matching how the
// read path coerces missing quantities.
func parseQuantity(value string) float64 {
	value = strings.TrimSpace(value)
	if value == "" {
		return 0
	}
	cleaned := strings.ReplaceAll(value, ",", "")
	num, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return 0
	}
	return num
}
