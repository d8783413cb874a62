package service

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"github.com/kisaan/demand-dashboard/backend-go/internal/config"
	"github.com/kisaan/demand-dashboard/backend-go/internal/domain"
	"github.com/kisaan/demand-dashboard/backend-go/internal/inventory"
	"github.com/kisaan/demand-dashboard/backend-go/internal/repository"
)

type InventoryService struct {
	repo        repository.InventoryRepository
	webhookURL  string
	settleDelay time.Duration
	httpClient  *http.Client
}

func NewInventoryService(repo repository.InventoryRepository, cfg config.InventoryConfig) *InventoryService {
	timeout := time.Duration(cfg.SyncTimeoutSeconds) * time.Second
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &InventoryService{
		repo:        repo,
		webhookURL:  cfg.SyncWebhookURL,
		settleDelay: time.Duration(cfg.SyncSettleSeconds) * time.Second,
		httpClient:  &http.Client{Timeout: timeout},
	}
}

// GetOverview reads the full snapshot, derives the category facets from the
// unfiltered rows so the dropdowns stay complete, then filters and
// aggregates. The by-product rollup is only computed when that view is
// requested.
func (s *InventoryService) GetOverview(ctx context.Context, filter domain.InventoryFilter) (*domain.InventoryOverview, error) {
	var (
		warehouses []domain.Warehouse
		allRows    []domain.InventorySnapshotRow
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		warehouses, err = s.repo.GetWarehouses(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		allRows, err = s.repo.GetInventorySnapshot(gctx, nil)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	rows := inventory.FilterRows(allRows, filter.WarehouseID, filter.CategoryRoot, filter.CategorySub)

	overview := &domain.InventoryOverview{
		Warehouses:    warehouses,
		Rows:          rows,
		ByWarehouse:   inventory.AggregateByWarehouse(rows),
		CategoryRoots: inventory.CategoryRoots(allRows),
		CategorySubs:  inventory.CategorySubs(allRows, filter.CategoryRoot),
		SnapshotAt:    inventory.LatestSnapshotAt(allRows),
	}
	if filter.ViewMode == domain.ViewByProduct {
		overview.ByProduct = inventory.AggregateByProduct(rows)
	}
	return overview, nil
}

// Sync fires the out-of-band re-sync webhook, waits for the pipeline to
// settle, then re-reads the snapshot with the caller's filters intact.
// Without a configured webhook the trigger is skipped and the snapshot is
// simply re-read.
func (s *InventoryService) Sync(ctx context.Context, filter domain.InventoryFilter) (*domain.InventoryOverview, error) {
	if s.webhookURL == "" {
		log.Warn().Msg("inventory: sync webhook not configured, re-reading snapshot only")
		return s.GetOverview(ctx, filter)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.webhookURL, nil)
	if err != nil {
		return nil, fmt.Errorf("inventory sync request: %w", err)
	}

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("inventory sync webhook: %w", err)
	}
	resp.Body.Close()
	if resp.StatusCode >= http.StatusBadRequest {
		return nil, fmt.Errorf("inventory sync webhook returned %s", resp.Status)
	}

	log.Info().Str("webhook", s.webhookURL).Msg("inventory: sync triggered, waiting for pipeline to settle")
	if err := s.settle(ctx); err != nil {
		return nil, err
	}

	return s.GetOverview(ctx, filter)
}

func (s *InventoryService) settle(ctx context.Context) error {
	if s.settleDelay <= 0 {
		return nil
	}
	timer := time.NewTimer(s.settleDelay)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
