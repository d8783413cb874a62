package service

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/kisaan/demand-dashboard/backend-go/internal/config"
	"github.com/kisaan/demand-dashboard/backend-go/internal/domain"
)

type fakeInventoryRepo struct {
	warehouses []domain.Warehouse
	rows       []domain.InventorySnapshotRow
	snapshots  int
}

func (f *fakeInventoryRepo) GetWarehouses(ctx context.Context) ([]domain.Warehouse, error) {
	return f.warehouses, nil
}

func (f *fakeInventoryRepo) GetInventorySnapshot(ctx context.Context, warehouseID *int64) ([]domain.InventorySnapshotRow, error) {
	f.snapshots++
	return f.rows, nil
}

func sampleInventoryRepo() *fakeInventoryRepo {
	return &fakeInventoryRepo{
		warehouses: []domain.Warehouse{
			{ID: 1, Name: "Central"},
			{ID: 2, Name: "North"},
		},
		rows: []domain.InventorySnapshotRow{
			{OdooProductID: 10, WarehouseID: 1, WarehouseName: "Central", ProductName: "Dividers", CategoryName: "Raw Material / Card Boxes / Dividers", Quantity: 5, AvailableQuantity: 4},
			{OdooProductID: 10, WarehouseID: 2, WarehouseName: "North", ProductName: "Dividers", CategoryName: "Raw Material / Card Boxes / Dividers", Quantity: 2, AvailableQuantity: 2},
			{OdooProductID: 11, WarehouseID: 1, WarehouseName: "Central", ProductName: "Basil", CategoryName: "Produce / Herbs", Quantity: 9, AvailableQuantity: 7},
		},
	}
}

func TestGetOverviewFacetsStayUnfiltered(t *testing.T) {
	repo := sampleInventoryRepo()
	svc := NewInventoryService(repo, config.InventoryConfig{})

	overview, err := svc.GetOverview(context.Background(), domain.InventoryFilter{
		CategoryRoot: "Produce",
		ViewMode:     domain.ViewByWarehouse,
	})
	if err != nil {
		t.Fatalf("GetOverview: %v", err)
	}

	if len(overview.Rows) != 1 || overview.Rows[0].ProductName != "Basil" {
		t.Fatalf("rows = %+v, want only the Produce row", overview.Rows)
	}
	// Facets come from the full snapshot so switching categories stays possible.
	if len(overview.CategoryRoots) != 2 {
		t.Fatalf("category roots = %v, want both roots", overview.CategoryRoots)
	}
	if len(overview.ByWarehouse) != 1 || overview.ByWarehouse[0].TotalQuantity != 9 {
		t.Fatalf("by warehouse = %+v", overview.ByWarehouse)
	}
	if overview.ByProduct != nil {
		t.Fatal("by-product rollup should be absent in the by-warehouse view")
	}
}

func TestGetOverviewByProductView(t *testing.T) {
	repo := sampleInventoryRepo()
	svc := NewInventoryService(repo, config.InventoryConfig{})

	overview, err := svc.GetOverview(context.Background(), domain.InventoryFilter{ViewMode: domain.ViewByProduct})
	if err != nil {
		t.Fatalf("GetOverview: %v", err)
	}

	if len(overview.ByProduct) != 2 {
		t.Fatalf("by product = %+v, want 2 products", overview.ByProduct)
	}
	for _, agg := range overview.ByProduct {
		if agg.OdooProductID == 10 && agg.Quantity != 7 {
			t.Fatalf("product 10 quantity = %v, want 7 summed across warehouses", agg.Quantity)
		}
	}
}

func TestSyncWithoutWebhookRereadsOnly(t *testing.T) {
	repo := sampleInventoryRepo()
	svc := NewInventoryService(repo, config.InventoryConfig{})

	overview, err := svc.Sync(context.Background(), domain.InventoryFilter{})
	if err != nil {
		t.Fatalf("Sync: %v", err)
	}
	if repo.snapshots != 1 {
		t.Fatalf("snapshot reads = %d, want 1", repo.snapshots)
	}
	if len(overview.Rows) != 3 {
		t.Fatalf("rows = %d, want full snapshot", len(overview.Rows))
	}
}

func TestSyncTriggersWebhookThenRereads(t *testing.T) {
	var calls int
	webhook := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("webhook method = %s, want POST", r.Method)
		}
		calls++
		w.WriteHeader(http.StatusOK)
	}))
	defer webhook.Close()

	repo := sampleInventoryRepo()
	svc := NewInventoryService(repo, config.InventoryConfig{
		SyncWebhookURL:    webhook.URL,
		SyncSettleSeconds: 0,
	})

	overview, err := svc.Sync(context.Background(), domain.InventoryFilter{})
	if err != nil {
		t.Fatalf("Sync: %v", err)
	}
	if calls != 1 {
		t.Fatalf("webhook calls = %d, want 1", calls)
	}
	if repo.snapshots != 1 {
		t.Fatalf("snapshot reads = %d, want 1 after sync", repo.snapshots)
	}
	if len(overview.Rows) != 3 {
		t.Fatalf("rows = %d, want full snapshot", len(overview.Rows))
	}
}

func TestSyncSurfacesWebhookFailure(t *testing.T) {
	webhook := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer webhook.Close()

	svc := NewInventoryService(sampleInventoryRepo(), config.InventoryConfig{SyncWebhookURL: webhook.URL})

	_, err := svc.Sync(context.Background(), domain.InventoryFilter{})
	if err == nil || !strings.Contains(err.Error(), "502") {
		t.Fatalf("err = %v, want webhook status error", err)
	}
}
