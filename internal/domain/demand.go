// backend-go/internal/domain/demand.go
package domain

// Product is one entry of the product catalog, deduplicated by ProductID.
type Product struct {
	ProductID        string `json:"product_id" db:"product_id"`
	ProductShortName string `json:"product_short_name" db:"product_short_name"`
}

// ActualDemandRecord is one row of the daily demand summary: at most one
// record per (product_id, delivery_date). Dates are canonical YYYY-MM-DD
// strings; missing quantities are coerced to 0 at scan time.
type ActualDemandRecord struct {
	ProductID         string  `json:"product_id" db:"product_id"`
	DeliveryDate      string  `json:"delivery_date" db:"delivery_date"`
	ActualQuantity    float64 `json:"actual_order_quantity" db:"actual_order_quantity"`
	PlannedQuantity   float64 `json:"planned_order_quantity" db:"planned_order_quantity"`
	DeliveredQuantity float64 `json:"delivered_order_quantity" db:"delivered_order_quantity"`
}

// ForecastRecord is one forecast row. Several rows may target the same
// (product_id, forecasted_delivery_date), one per run date; the row with
// the maximum RunDate is the latest. Confidence and reasoning are advisory
// and stay nil when the source has none.
type ForecastRecord struct {
	ProductID              string   `json:"product_id" db:"product_id"`
	ForecastedDeliveryDate string   `json:"forecasted_delivery_date" db:"forecasted_delivery_date"`
	RunDate                string   `json:"prediction_date" db:"prediction_date"`
	Forecast               float64  `json:"forecast" db:"forecast"`
	Confidence             *float64 `json:"confidence,omitempty" db:"confidence"`
	Reasoning              *string  `json:"reasoning,omitempty" db:"reasoning"`
}

// RunForecast is one run's forecast for a single day, kept for overlay
// comparison in MergedDayEntry.ForecastsByRun.
type RunForecast struct {
	Value      float64  `json:"value"`
	Confidence *float64 `json:"confidence,omitempty"`
	Reasoning  *string  `json:"reasoning,omitempty"`
}

// MergedDayEntry is the reconciled view of a single day for one product.
// It exists only for the duration of a render; nothing persists it.
// Forecast is nil on days that have no forecast row at all, so consumers
// can tell "no forecast" from a forecast of zero.
type MergedDayEntry struct {
	Date           string                 `json:"date"`
	Actual         float64                `json:"actual"`
	Planned        float64                `json:"planned"`
	Delivered      float64                `json:"delivered"`
	Forecast       *float64               `json:"forecast"`
	Confidence     *float64               `json:"confidence,omitempty"`
	Reasoning      *string                `json:"reasoning,omitempty"`
	RunDateUsed    string                 `json:"run_date_used,omitempty"`
	ForecastsByRun map[string]RunForecast `json:"forecasts_by_run,omitempty"`
	IsTomorrow     bool                   `json:"is_tomorrow"`
}

// DemandSeries is the chart payload for one product: the merged day
// entries plus the run dates available for overlay and the selection
// that was applied.
type DemandSeries struct {
	ProductID     string           `json:"product_id"`
	Entries       []MergedDayEntry `json:"entries"`
	AvailableRuns []string         `json:"available_runs"`
	SelectedRuns  []string         `json:"selected_runs"`
}
