package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/kisaan/demand-dashboard/backend-go/internal/domain"
	"github.com/kisaan/demand-dashboard/backend-go/internal/service"
)

type InventoryHandler struct {
	service *service.InventoryService
}

func NewInventoryHandler(service *service.InventoryService) *InventoryHandler {
	return &InventoryHandler{service: service}
}

// parseFilter reads the inventory query params. warehouse_id is optional;
// absence means all warehouses and id 0 is accepted as a real warehouse.
func (h *InventoryHandler) parseFilter(c *gin.Context) (domain.InventoryFilter, bool) {
	filter := domain.InventoryFilter{
		CategoryRoot: strings.TrimSpace(c.Query("category")),
		CategorySub:  strings.TrimSpace(c.Query("subcategory")),
		ViewMode:     domain.ViewByWarehouse,
	}

	if raw := strings.TrimSpace(c.Query("warehouse_id")); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "warehouse_id must be an integer"})
			return filter, false
		}
		filter.WarehouseID = &id
	}

	if view := strings.ToLower(strings.TrimSpace(c.Query("view"))); view == domain.ViewByProduct {
		filter.ViewMode = domain.ViewByProduct
	}

	return filter, true
}

func (h *InventoryHandler) GetWarehouses(c *gin.Context) {
	overview, err := h.service.GetOverview(c.Request.Context(), domain.InventoryFilter{})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch warehouses", "details": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"warehouses": overview.Warehouses})
}

func (h *InventoryHandler) GetStock(c *gin.Context) {
	filter, ok := h.parseFilter(c)
	if !ok {
		return
	}

	overview, err := h.service.GetOverview(c.Request.Context(), filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch inventory", "details": err.Error()})
		return
	}
	c.JSON(http.StatusOK, overview)
}

func (h *InventoryHandler) Sync(c *gin.Context) {
	filter, ok := h.parseFilter(c)
	if !ok {
		return
	}

	overview, err := h.service.Sync(c.Request.Context(), filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "inventory sync failed", "details": err.Error()})
		return
	}
	c.JSON(http.StatusOK, overview)
}
