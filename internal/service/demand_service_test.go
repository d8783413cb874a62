package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/kisaan/demand-dashboard/backend-go/internal/cache"
	"github.com/kisaan/demand-dashboard/backend-go/internal/demand"
	"github.com/kisaan/demand-dashboard/backend-go/internal/domain"
)

type fakeDemandRepo struct {
	products   []domain.Product
	history    []domain.ActualDemandRecord
	forecasts  []domain.ForecastRecord
	runDates   []string
	refreshErr error
	refreshed  int
}

func (f *fakeDemandRepo) GetProducts(ctx context.Context) ([]domain.Product, error) {
	return f.products, nil
}

func (f *fakeDemandRepo) GetHistory(ctx context.Context, productID, from, to string) ([]domain.ActualDemandRecord, error) {
	return f.history, nil
}

func (f *fakeDemandRepo) GetPredictions(ctx context.Context, productID, from, to string) ([]domain.ForecastRecord, error) {
	return f.forecasts, nil
}

func (f *fakeDemandRepo) GetPredictionRunDates(ctx context.Context, productID string) ([]string, error) {
	return f.runDates, nil
}

func (f *fakeDemandRepo) GetHistoryAllProducts(ctx context.Context, from, to string) ([]domain.ActualDemandRecord, error) {
	return f.history, nil
}

func (f *fakeDemandRepo) GetPredictionsAllProducts(ctx context.Context, from, to string) ([]domain.ForecastRecord, error) {
	return f.forecasts, nil
}

func (f *fakeDemandRepo) RefreshDailyDemandSummary(ctx context.Context) error {
	f.refreshed++
	return f.refreshErr
}

type countingCache struct {
	invalidations int
}

func (c *countingCache) Get(ctx context.Context, key cache.SeriesKey) (*domain.DemandSeries, bool, error) {
	return nil, false, nil
}

func (c *countingCache) Set(ctx context.Context, key cache.SeriesKey, series *domain.DemandSeries) error {
	return nil
}

func (c *countingCache) InvalidateAll(ctx context.Context) error {
	c.invalidations++
	return nil
}

func TestGetSeriesDefaultsToLatestRun(t *testing.T) {
	repo := &fakeDemandRepo{
		history: []domain.ActualDemandRecord{
			{ProductID: "P1", DeliveryDate: "2024-01-10", ActualQuantity: 5},
		},
		forecasts: []domain.ForecastRecord{
			{ProductID: "P1", ForecastedDeliveryDate: "2024-01-10", RunDate: "2024-01-01", Forecast: 4},
			{ProductID: "P1", ForecastedDeliveryDate: "2024-01-10", RunDate: "2024-01-08", Forecast: 6},
		},
		runDates: []string{"2024-01-08", "2024-01-01"},
	}
	svc := NewDemandService(repo, nil, nil)

	series, err := svc.GetSeries(context.Background(), "P1", 30, 30, nil, "2024-01-09")
	if err != nil {
		t.Fatalf("GetSeries: %v", err)
	}

	if len(series.SelectedRuns) != 1 || series.SelectedRuns[0] != "2024-01-08" {
		t.Fatalf("selected runs = %v, want [2024-01-08]", series.SelectedRuns)
	}
	if len(series.AvailableRuns) != 2 {
		t.Fatalf("available runs = %v, want 2 entries", series.AvailableRuns)
	}
	if len(series.Entries) != 1 {
		t.Fatalf("entries = %d, want 1", len(series.Entries))
	}
	entry := series.Entries[0]
	if entry.Forecast == nil || *entry.Forecast != 6 {
		t.Fatalf("forecast = %v, want 6 from the latest run", entry.Forecast)
	}
	if !entry.IsTomorrow {
		t.Fatal("2024-01-10 should be flagged as tomorrow relative to 2024-01-09")
	}
}

func TestGetSeriesExplicitSelectionWins(t *testing.T) {
	repo := &fakeDemandRepo{
		forecasts: []domain.ForecastRecord{
			{ProductID: "P1", ForecastedDeliveryDate: "2024-01-10", RunDate: "2024-01-01", Forecast: 4},
			{ProductID: "P1", ForecastedDeliveryDate: "2024-01-10", RunDate: "2024-01-08", Forecast: 6},
		},
		runDates: []string{"2024-01-08", "2024-01-01"},
	}
	svc := NewDemandService(repo, nil, nil)

	series, err := svc.GetSeries(context.Background(), "P1", 30, 30, []string{"2024-01-01"}, "2024-01-09")
	if err != nil {
		t.Fatalf("GetSeries: %v", err)
	}

	entry := series.Entries[0]
	if entry.Forecast == nil || *entry.Forecast != 4 {
		t.Fatalf("forecast = %v, want 4 from the explicitly selected run", entry.Forecast)
	}
	if entry.RunDateUsed != "2024-01-01" {
		t.Fatalf("run date used = %q, want 2024-01-01", entry.RunDateUsed)
	}
}

func TestRefreshInvalidatesCache(t *testing.T) {
	repo := &fakeDemandRepo{}
	cacheImpl := &countingCache{}
	svc := NewDemandService(repo, cacheImpl, nil)

	if err := svc.Refresh(context.Background()); err != nil {
		t.Fatalf("Refresh: %v", err)
	}
	if repo.refreshed != 1 {
		t.Fatalf("refresh calls = %d, want 1", repo.refreshed)
	}
	if cacheImpl.invalidations != 1 {
		t.Fatalf("cache invalidations = %d, want 1", cacheImpl.invalidations)
	}
}

func TestRefreshFailureSkipsInvalidation(t *testing.T) {
	repo := &fakeDemandRepo{refreshErr: errors.New("boom")}
	cacheImpl := &countingCache{}
	svc := NewDemandService(repo, cacheImpl, nil)

	err := svc.Refresh(context.Background())
	if err == nil {
		t.Fatal("expected refresh error")
	}
	if !strings.Contains(err.Error(), "demand refresh failed") {
		t.Fatalf("err = %v, want refresh failure wrapping", err)
	}
	if cacheImpl.invalidations != 0 {
		t.Fatalf("cache invalidations = %d, want 0 after failed refresh", cacheImpl.invalidations)
	}
}

func TestGetGridDateRange(t *testing.T) {
	repo := &fakeDemandRepo{
		products: []domain.Product{{ProductID: "P1", ProductShortName: "Widget"}},
	}
	svc := NewDemandService(repo, nil, nil)

	grid, err := svc.GetGrid(context.Background(), "2024-01-30", "2024-02-02", demand.OrderNone)
	if err != nil {
		t.Fatalf("GetGrid: %v", err)
	}
	want := []string{"2024-01-30", "2024-01-31", "2024-02-01", "2024-02-02"}
	if len(grid.Dates) != len(want) {
		t.Fatalf("dates = %v, want %v", grid.Dates, want)
	}
	for i, d := range want {
		if grid.Dates[i] != d {
			t.Fatalf("dates[%d] = %q, want %q", i, grid.Dates[i], d)
		}
	}
}

func TestGetGridInvertedRangeIsEmpty(t *testing.T) {
	repo := &fakeDemandRepo{
		products: []domain.Product{{ProductID: "P1"}},
	}
	svc := NewDemandService(repo, nil, nil)

	grid, err := svc.GetGrid(context.Background(), "2024-02-02", "2024-01-30", demand.OrderNone)
	if err != nil {
		t.Fatalf("GetGrid: %v", err)
	}
	if len(grid.Dates) != 0 || len(grid.Rows) != 0 {
		t.Fatalf("grid = %+v, want empty for inverted range", grid)
	}
}

func TestExportGridPublishWithoutStorage(t *testing.T) {
	repo := &fakeDemandRepo{
		products: []domain.Product{{ProductID: "P1", ProductShortName: "Widget"}},
	}
	svc := NewDemandService(repo, nil, nil)

	_, _, err := svc.ExportGrid(context.Background(), "2024-01-01", "2024-01-02", demand.OrderNone, true)
	if err == nil {
		t.Fatal("expected error when publishing without configured storage")
	}

	filename, csvData, err := svc.ExportGrid(context.Background(), "2024-01-01", "2024-01-02", demand.OrderNone, false)
	if err != nil {
		t.Fatalf("ExportGrid: %v", err)
	}
	if filename != "demand-all-products-2024-01-01-2024-01-02.csv" {
		t.Fatalf("filename = %q", filename)
	}
	if !strings.HasPrefix(csvData, "Product,product_id,") {
		t.Fatalf("csv header = %q", strings.SplitN(csvData, "\n", 2)[0])
	}
}
