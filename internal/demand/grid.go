// backend-go/internal/demand/grid.go
package demand

import (
	"sort"
	"strconv"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/kisaan/demand-dashboard/backend-go/internal/dateutil"
	"github.com/kisaan/demand-dashboard/backend-go/internal/domain"
)

// NoDataCell is the display sentinel for a cell with neither an actual nor
// a forecast value. CSV export replaces it with the literal "no data" so
// the file stays self-describing.
const NoDataCell = "—"

const csvNoData = "no data"

// reasoningLimit caps tooltip reasoning text (in runes).
const reasoningLimit = 300

// Order controls product row ordering in the grid and its CSV export.
type Order string

const (
	OrderNone Order = ""
	OrderAsc  Order = "asc"
	OrderDesc Order = "desc"
)

// GridCell is one product×date cell. Actual and Forecast are nil when the
// respective source has no row for the date.
type GridCell struct {
	Actual   *float64 `json:"actual,omitempty"`
	Forecast *float64 `json:"forecast,omitempty"`
	Display  string   `json:"display"`
	Tooltip  string   `json:"tooltip,omitempty"`
}

// GridRow is one product's row across the date range.
type GridRow struct {
	ProductID        string              `json:"product_id"`
	ProductShortName string              `json:"product_short_name"`
	Cells            map[string]GridCell `json:"cells"`
}

// Grid is the all-products product×date matrix.
type Grid struct {
	Dates []string  `json:"dates"`
	Rows  []GridRow `json:"rows"`
}

// BuildGrid computes one display cell per product per date over the
// contiguous range [dateStart, dateStart+numDays-1]. numDays <= 0 yields
// zero date columns; an empty product list yields zero rows. Forecasts are
// reduced latest-run-wins per (product, date) before cells are built; run
// overlays are a single-product feature and do not apply here.
func BuildGrid(products []domain.Product, history []domain.ActualDemandRecord, forecasts []domain.ForecastRecord, dateStart string, numDays int, order Order) Grid {
	var dates []string
	for i := 0; i < numDays; i++ {
		dates = append(dates, dateutil.AddDays(dateStart, i))
	}

	grid := Grid{Dates: dates}
	if len(products) == 0 || len(dates) == 0 {
		return grid
	}

	actualByKey := make(map[string]float64)
	for _, r := range history {
		date := dateutil.DateKey(r.DeliveryDate)
		if date == "" {
			continue
		}
		actualByKey[dateutil.CompositeKey(r.ProductID, date)] = r.ActualQuantity
	}

	type cellForecast struct {
		value     float64
		runDate   string
		reasoning string
	}
	forecastByKey := make(map[string]cellForecast)
	for _, r := range forecasts {
		date := dateutil.DateKey(r.ForecastedDeliveryDate)
		if date == "" {
			continue
		}
		key := dateutil.CompositeKey(r.ProductID, date)
		run := dateutil.DateKey(r.RunDate)
		existing, ok := forecastByKey[key]
		if ok && run <= existing.runDate {
			continue
		}
		cf := cellForecast{value: r.Forecast, runDate: run}
		if r.Reasoning != nil {
			cf.reasoning = *r.Reasoning
		}
		forecastByKey[key] = cf
	}

	ordered := orderProducts(products, order)
	grid.Rows = make([]GridRow, 0, len(ordered))
	for _, p := range ordered {
		name := p.ProductShortName
		if name == "" {
			name = p.ProductID
		}
		row := GridRow{
			ProductID:        p.ProductID,
			ProductShortName: name,
			Cells:            make(map[string]GridCell, len(dates)),
		}
		for _, date := range dates {
			key := dateutil.CompositeKey(p.ProductID, date)
			cell := GridCell{Display: NoDataCell}
			if actual, ok := actualByKey[key]; ok {
				v := actual
				cell.Actual = &v
			}
			if fc, ok := forecastByKey[key]; ok {
				v := fc.value
				cell.Forecast = &v
			}
			cell.Display = cellDisplay(cell)
			cell.Tooltip = cellTooltip(cell, forecastByKey[key].reasoning)
			row.Cells[date] = cell
		}
		grid.Rows = append(grid.Rows, row)
	}
	return grid
}

func cellDisplay(c GridCell) string {
	switch {
	case c.Actual != nil && c.Forecast != nil:
		return formatQty(*c.Actual) + " / " + formatQty(*c.Forecast)
	case c.Actual != nil:
		return formatQty(*c.Actual)
	case c.Forecast != nil:
		return formatQty(*c.Forecast)
	default:
		return NoDataCell
	}
}

func cellTooltip(c GridCell, reasoning string) string {
	var tooltip string
	switch {
	case c.Actual != nil && c.Forecast != nil:
		tooltip = "Actual: " + formatQty(*c.Actual) + ", Forecast: " + formatQty(*c.Forecast)
	case c.Actual != nil:
		tooltip = "Actual: " + formatQty(*c.Actual)
	case c.Forecast != nil:
		tooltip = "Forecast: " + formatQty(*c.Forecast)
	}
	if reasoning != "" && (c.Actual != nil || c.Forecast != nil) {
		if tooltip != "" {
			tooltip += ". "
		}
		tooltip += "Prediction: " + truncateRunes(reasoning, reasoningLimit)
	}
	return tooltip
}

// orderProducts sorts by display name with a stable, case-insensitive,
// locale-aware comparison. OrderNone preserves catalog order.
func orderProducts(products []domain.Product, order Order) []domain.Product {
	out := make([]domain.Product, len(products))
	copy(out, products)
	if order != OrderAsc && order != OrderDesc {
		return out
	}
	c := collate.New(language.Und, collate.IgnoreCase)
	sort.SliceStable(out, func(i, j int) bool {
		cmp := c.CompareString(displayName(out[i]), displayName(out[j]))
		if order == OrderDesc {
			return cmp > 0
		}
		return cmp < 0
	})
	return out
}

func displayName(p domain.Product) string {
	if p.ProductShortName != "" {
		return p.ProductShortName
	}
	return p.ProductID
}

func formatQty(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func truncateRunes(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit]) + "…"
}

// CSV serializes the grid. The header row is
// "Product,product_id,<formatted date columns>"; every data-row field is
// quoted with embedded quotes doubled, and the no-data sentinel becomes
// the literal "no data". Returns "" when there is nothing to export.
func (g Grid) CSV() string {
	if len(g.Rows) == 0 || len(g.Dates) == 0 {
		return ""
	}
	header := make([]string, 0, len(g.Dates)+2)
	header = append(header, "Product", "product_id")
	for _, d := range g.Dates {
		header = append(header, dateutil.FormatWithWeekday(d))
	}

	lines := make([]string, 0, len(g.Rows)+1)
	lines = append(lines, strings.Join(header, ","))
	for _, row := range g.Rows {
		fields := make([]string, 0, len(g.Dates)+2)
		fields = append(fields, quoteCSV(row.ProductShortName), quoteCSV(row.ProductID))
		for _, d := range g.Dates {
			display := NoDataCell
			if cell, ok := row.Cells[d]; ok {
				display = cell.Display
			}
			if display == NoDataCell {
				display = csvNoData
			}
			fields = append(fields, quoteCSV(display))
		}
		lines = append(lines, strings.Join(fields, ","))
	}
	return strings.Join(lines, "\n")
}

// ExportFileName encodes the inclusive date range of the grid.
func (g Grid) ExportFileName() string {
	if len(g.Dates) == 0 {
		return "demand-all-products.csv"
	}
	return "demand-all-products-" + g.Dates[0] + "-" + g.Dates[len(g.Dates)-1] + ".csv"
}

func quoteCSV(field string) string {
	return `"` + strings.ReplaceAll(field, `"`, `""`) + `"`
}
