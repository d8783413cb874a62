package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"github.com/kisaan/demand-dashboard/backend-go/internal/cache"
	"github.com/kisaan/demand-dashboard/backend-go/internal/dateutil"
	"github.com/kisaan/demand-dashboard/backend-go/internal/demand"
	"github.com/kisaan/demand-dashboard/backend-go/internal/domain"
	"github.com/kisaan/demand-dashboard/backend-go/internal/repository"
	"github.com/kisaan/demand-dashboard/backend-go/internal/storage"
)

const defaultWindowDays = 30

type DemandService struct {
	repo    repository.DemandRepository
	cache   cache.SeriesCache
	storage storage.ObjectStorage
}

// NewDemandService wires the demand read path. cacheImpl may be nil
// (replaced by a noop); objectStorage may be nil, which disables export
// publishing but not export download.
func NewDemandService(repo repository.DemandRepository, cacheImpl cache.SeriesCache, objectStorage storage.ObjectStorage) *DemandService {
	if cacheImpl == nil {
		cacheImpl = cache.NewNoopSeriesCache()
	}
	return &DemandService{repo: repo, cache: cacheImpl, storage: objectStorage}
}

func (s *DemandService) GetProducts(ctx context.Context) ([]domain.Product, error) {
	return s.repo.GetProducts(ctx)
}

func (s *DemandService) GetRunDates(ctx context.Context, productID string) ([]string, error) {
	return s.repo.GetPredictionRunDates(ctx, productID)
}

// GetSeries builds the merged chart payload for one product over
// [referenceDate-daysBack, referenceDate+daysForward]. An empty runs slice
// means the caller made no explicit selection; the most recent available
// run is then selected automatically.
func (s *DemandService) GetSeries(ctx context.Context, productID string, daysBack, daysForward int, runs []string, referenceDate string) (*domain.DemandSeries, error) {
	if daysBack <= 0 {
		daysBack = defaultWindowDays
	}
	if daysForward <= 0 {
		daysForward = defaultWindowDays
	}
	from := dateutil.AddDays(referenceDate, -daysBack)
	to := dateutil.AddDays(referenceDate, daysForward)

	selection := demand.NormalizeSelection(runs)
	key := cache.SeriesKey{
		ProductID:     productID,
		From:          from,
		To:            to,
		ReferenceDate: referenceDate,
		SelectedRuns:  selection,
	}

	if series, ok, err := s.cache.Get(ctx, key); err == nil && ok {
		return series, nil
	} else if err != nil {
		log.Warn().Err(err).Str("product_id", productID).Msg("demand: cache get series failed")
	}

	var (
		history   []domain.ActualDemandRecord
		forecasts []domain.ForecastRecord
		runDates  []string
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		history, err = s.repo.GetHistory(gctx, productID, from, to)
		return err
	})
	g.Go(func() error {
		var err error
		forecasts, err = s.repo.GetPredictions(gctx, productID, from, to)
		return err
	})
	g.Go(func() error {
		var err error
		runDates, err = s.repo.GetPredictionRunDates(gctx, productID)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	if len(selection) == 0 {
		selection = demand.ResetSelection(runDates)
	}

	entries := demand.MergeSeries(demand.MergeInput{
		History:       history,
		Forecasts:     forecasts,
		Selection:     selection,
		ReferenceDate: referenceDate,
	})

	series := &domain.DemandSeries{
		ProductID:     productID,
		Entries:       entries,
		AvailableRuns: runDates,
		SelectedRuns:  []string(selection),
	}

	if err := s.cache.Set(ctx, key, series); err != nil {
		log.Warn().Err(err).Str("product_id", productID).Msg("demand: cache set series failed")
	}

	return series, nil
}

// Refresh re-materializes the daily demand summary and drops every cached
// series. A refresh failure is an action failure and is reported as such,
// unlike read failures which degrade to empty views.
func (s *DemandService) Refresh(ctx context.Context) error {
	if err := s.repo.RefreshDailyDemandSummary(ctx); err != nil {
		return fmt.Errorf("demand refresh failed: %w", err)
	}
	if err := s.cache.InvalidateAll(ctx); err != nil {
		log.Warn().Err(err).Msg("demand: cache invalidation after refresh failed")
	}
	return nil
}

// GetGrid builds the all-products matrix over the inclusive [from, to]
// range. An inverted or unparseable range yields an empty grid.
func (s *DemandService) GetGrid(ctx context.Context, from, to string, order demand.Order) (*demand.Grid, error) {
	numDays := dateutil.DaysBetween(from, to)

	var (
		products  []domain.Product
		history   []domain.ActualDemandRecord
		forecasts []domain.ForecastRecord
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		products, err = s.repo.GetProducts(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		history, err = s.repo.GetHistoryAllProducts(gctx, from, to)
		return err
	})
	g.Go(func() error {
		var err error
		forecasts, err = s.repo.GetPredictionsAllProducts(gctx, from, to)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	grid := demand.BuildGrid(products, history, forecasts, from, numDays, order)
	return &grid, nil
}

// ExportGrid serializes the grid to CSV. With publish set the file is also
// uploaded to the configured object storage under its own name.
func (s *DemandService) ExportGrid(ctx context.Context, from, to string, order demand.Order, publish bool) (string, string, error) {
	grid, err := s.GetGrid(ctx, from, to, order)
	if err != nil {
		return "", "", err
	}

	filename := grid.ExportFileName()
	csvData := grid.CSV()

	if publish {
		if s.storage == nil {
			return "", "", fmt.Errorf("export publishing is not configured")
		}
		if err := s.storage.UploadObject(ctx, filename, []byte(csvData), "text/csv"); err != nil {
			return "", "", err
		}
		log.Info().Str("object", filename).Msg("demand: export published")
	}

	return filename, csvData, nil
}
