// backend-go/internal/repository/demand_repository.go
package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/kisaan/demand-dashboard/backend-go/internal/domain"
)

// DemandRepository reads the demand history and forecast tables of the
// analytics schema. Date parameters are canonical YYYY-MM-DD strings and
// all ranges are inclusive. Forecast queries return every run's rows;
// latest-run reduction happens in the merge layer, not in SQL.
type DemandRepository interface {
	GetProducts(ctx context.Context) ([]domain.Product, error)
	GetHistory(ctx context.Context, productID, from, to string) ([]domain.ActualDemandRecord, error)
	GetPredictions(ctx context.Context, productID, from, to string) ([]domain.ForecastRecord, error)
	GetPredictionRunDates(ctx context.Context, productID string) ([]string, error)
	GetHistoryAllProducts(ctx context.Context, from, to string) ([]domain.ActualDemandRecord, error)
	GetPredictionsAllProducts(ctx context.Context, from, to string) ([]domain.ForecastRecord, error)
	RefreshDailyDemandSummary(ctx context.Context) error
}

type demandRepository struct {
	db *sqlx.DB
}

func NewDemandRepository(db *sqlx.DB) DemandRepository {
	return &demandRepository{db: db}
}

func (r *demandRepository) GetProducts(ctx context.Context) ([]domain.Product, error) {
	query := `
        SELECT
            product_id,
            MAX(COALESCE(product_short_name, '')) AS product_short_name
        FROM analytics.demand_predictions
        GROUP BY product_id
        ORDER BY product_id DESC
    `

	var products []domain.Product
	if err := r.db.SelectContext(ctx, &products, query); err != nil {
		return nil, fmt.Errorf("error getting products: %w", err)
	}
	return products, nil
}

func (r *demandRepository) GetHistory(ctx context.Context, productID, from, to string) ([]domain.ActualDemandRecord, error) {
	query := `
        SELECT
            product_id,
            to_char(delivery_date, 'YYYY-MM-DD') AS delivery_date,
            COALESCE(actual_order_quantity, 0) AS actual_order_quantity,
            COALESCE(planned_order_quantity, 0) AS planned_order_quantity,
            COALESCE(delivered_order_quantity, 0) AS delivered_order_quantity
        FROM analytics.daily_demand_summary_product
        WHERE product_id = $1
          AND delivery_date >= $2::date
          AND delivery_date <= $3::date
        ORDER BY delivery_date ASC
    `

	var rows []domain.ActualDemandRecord
	if err := r.db.SelectContext(ctx, &rows, query, productID, from, to); err != nil {
		return nil, fmt.Errorf("error getting demand history: %w", err)
	}
	return rows, nil
}

func (r *demandRepository) GetPredictions(ctx context.Context, productID, from, to string) ([]domain.ForecastRecord, error) {
	query := `
        SELECT
            product_id,
            to_char(forecasted_delivery_date, 'YYYY-MM-DD') AS forecasted_delivery_date,
            to_char(prediction_date, 'YYYY-MM-DD') AS prediction_date,
            COALESCE(forecast, 0) AS forecast,
            confidence,
            reasoning
        FROM analytics.demand_predictions
        WHERE product_id = $1
          AND forecasted_delivery_date >= $2::date
          AND forecasted_delivery_date <= $3::date
        ORDER BY forecasted_delivery_date ASC, prediction_date ASC
    `

	var rows []domain.ForecastRecord
	if err := r.db.SelectContext(ctx, &rows, query, productID, from, to); err != nil {
		return nil, fmt.Errorf("error getting predictions: %w", err)
	}
	return rows, nil
}

func (r *demandRepository) GetPredictionRunDates(ctx context.Context, productID string) ([]string, error) {
	query := `
        SELECT DISTINCT to_char(prediction_date, 'YYYY-MM-DD') AS prediction_date
        FROM analytics.demand_predictions
        WHERE product_id = $1
        ORDER BY prediction_date DESC
    `

	var runs []string
	if err := r.db.SelectContext(ctx, &runs, query, productID); err != nil {
		return nil, fmt.Errorf("error getting prediction run dates: %w", err)
	}
	return runs, nil
}

func (r *demandRepository) GetHistoryAllProducts(ctx context.Context, from, to string) ([]domain.ActualDemandRecord, error) {
	query := `
        SELECT
            product_id,
            to_char(delivery_date, 'YYYY-MM-DD') AS delivery_date,
            COALESCE(actual_order_quantity, 0) AS actual_order_quantity,
            COALESCE(planned_order_quantity, 0) AS planned_order_quantity,
            COALESCE(delivered_order_quantity, 0) AS delivered_order_quantity
        FROM analytics.daily_demand_summary_product
        WHERE delivery_date >= $1::date
          AND delivery_date <= $2::date
        ORDER BY delivery_date ASC
    `

	var rows []domain.ActualDemandRecord
	if err := r.db.SelectContext(ctx, &rows, query, from, to); err != nil {
		return nil, fmt.Errorf("error getting all-products history: %w", err)
	}
	return rows, nil
}

func (r *demandRepository) GetPredictionsAllProducts(ctx context.Context, from, to string) ([]domain.ForecastRecord, error) {
	query := `
        SELECT
            product_id,
            to_char(forecasted_delivery_date, 'YYYY-MM-DD') AS forecasted_delivery_date,
            to_char(prediction_date, 'YYYY-MM-DD') AS prediction_date,
            COALESCE(forecast, 0) AS forecast,
            confidence,
            reasoning
        FROM analytics.demand_predictions
        WHERE forecasted_delivery_date >= $1::date
          AND forecasted_delivery_date <= $2::date
    `

	var rows []domain.ForecastRecord
	if err := r.db.SelectContext(ctx, &rows, query, from, to); err != nil {
		return nil, fmt.Errorf("error getting all-products predictions: %w", err)
	}
	return rows, nil
}

func (r *demandRepository) RefreshDailyDemandSummary(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, `SELECT analytics.refresh_daily_demand_summary()`); err != nil {
		return fmt.Errorf("error refreshing daily demand summary: %w", err)
	}
	return nil
}
