// backend-go/internal/demand/merge.go

// Package demand holds the pure time-series merging logic of the dashboard:
// the per-product reconciler, the run-selection rules, and the all-products
// grid builder. Every function is a plain transformation of its inputs; no
// package state survives a call.
package demand

import (
	"sort"

	"github.com/kisaan/demand-dashboard/backend-go/internal/dateutil"
	"github.com/kisaan/demand-dashboard/backend-go/internal/domain"
)

// MergeInput carries everything the reconciler needs for one render pass.
// ReferenceDate is the caller's wall-clock date (canonical YYYY-MM-DD); the
// merge itself never consults the clock, which keeps it deterministic.
type MergeInput struct {
	History       []domain.ActualDemandRecord
	Forecasts     []domain.ForecastRecord
	Selection     RunSelection
	ReferenceDate string
}

// MergeSeries reconciles actual-demand rows and forecast rows into one
// entry per date, sorted ascending.
//
// Merge order encodes precedence and must not change:
//  1. history rows seed the map, so every delivery date in the input
//     survives whether or not a forecast exists for it;
//  2. the latest forecast run per day fills the primary forecast fields
//     (max run date wins, first row wins on equal run dates);
//  3. explicitly selected runs overlay into ForecastsByRun, and the most
//     recent selected run overwrites the primary fields, outranking the
//     implicit latest-run pick.
//
// Rows whose dates do not normalize to a calendar day are dropped.
func MergeSeries(in MergeInput) []domain.MergedDayEntry {
	byDate := make(map[string]*domain.MergedDayEntry)

	for _, r := range in.History {
		date := dateutil.DateKey(r.DeliveryDate)
		if date == "" {
			continue
		}
		byDate[date] = &domain.MergedDayEntry{
			Date:      date,
			Actual:    r.ActualQuantity,
			Planned:   r.PlannedQuantity,
			Delivered: r.DeliveredQuantity,
		}
	}

	for date, r := range latestRunPerDay(in.Forecasts) {
		entry, ok := byDate[date]
		if !ok {
			entry = &domain.MergedDayEntry{Date: date}
			byDate[date] = entry
		}
		v := r.Forecast
		entry.Forecast = &v
		entry.Confidence = r.Confidence
		entry.Reasoning = r.Reasoning
		entry.RunDateUsed = dateutil.DateKey(r.RunDate)
	}

	if len(in.Selection) > 0 {
		overlaySelectedRuns(byDate, in.Forecasts, in.Selection)
	}

	tomorrow := dateutil.AddDays(in.ReferenceDate, 1)
	entries := make([]domain.MergedDayEntry, 0, len(byDate))
	for _, e := range byDate {
		e.IsTomorrow = e.Date == tomorrow
		entries = append(entries, *e)
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Date < entries[j].Date })
	return entries
}

// latestRunPerDay picks, for each forecasted delivery date, the row with
// the maximum run date. Ties keep the earlier input row.
func latestRunPerDay(rows []domain.ForecastRecord) map[string]domain.ForecastRecord {
	latest := make(map[string]domain.ForecastRecord)
	for _, r := range rows {
		date := dateutil.DateKey(r.ForecastedDeliveryDate)
		if date == "" {
			continue
		}
		existing, ok := latest[date]
		if !ok || dateutil.DateKey(r.RunDate) > dateutil.DateKey(existing.RunDate) {
			latest[date] = r
		}
	}
	return latest
}

// overlaySelectedRuns writes each selected run's rows into the per-day
// ForecastsByRun map. The first selected run (the most recent, by the
// RunSelection invariant) also replaces the primary forecast fields. A
// selected run with no row for some day leaves that day's primary value
// untouched; there is deliberately no fallback to a later non-selected run.
func overlaySelectedRuns(byDate map[string]*domain.MergedDayEntry, rows []domain.ForecastRecord, selection RunSelection) {
	byRun := make(map[string][]domain.ForecastRecord)
	for _, r := range rows {
		run := dateutil.DateKey(r.RunDate)
		if run == "" {
			continue
		}
		byRun[run] = append(byRun[run], r)
	}

	primaryRun := selection.Primary()
	for _, run := range selection {
		for _, r := range byRun[run] {
			date := dateutil.DateKey(r.ForecastedDeliveryDate)
			if date == "" {
				continue
			}
			entry, ok := byDate[date]
			if !ok {
				entry = &domain.MergedDayEntry{Date: date}
				byDate[date] = entry
			}
			if entry.ForecastsByRun == nil {
				entry.ForecastsByRun = make(map[string]domain.RunForecast)
			}
			entry.ForecastsByRun[run] = domain.RunForecast{
				Value:      r.Forecast,
				Confidence: r.Confidence,
				Reasoning:  r.Reasoning,
			}
			if run == primaryRun {
				v := r.Forecast
				entry.Forecast = &v
				entry.Confidence = r.Confidence
				entry.Reasoning = r.Reasoning
				entry.RunDateUsed = run
			}
		}
	}
}
