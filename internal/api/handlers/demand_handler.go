package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/kisaan/demand-dashboard/backend-go/internal/dateutil"
	"github.com/kisaan/demand-dashboard/backend-go/internal/demand"
	"github.com/kisaan/demand-dashboard/backend-go/internal/service"
)

type DemandHandler struct {
	service *service.DemandService
}

func NewDemandHandler(service *service.DemandService) *DemandHandler {
	return &DemandHandler{service: service}
}

func (h *DemandHandler) GetProducts(c *gin.Context) {
	products, err := h.service.GetProducts(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch products", "details": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"products": products})
}

func (h *DemandHandler) GetSeries(c *gin.Context) {
	productID := strings.TrimSpace(c.Query("product_id"))
	if productID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "product_id is required"})
		return
	}

	daysBack, _ := strconv.Atoi(c.DefaultQuery("days_back", "30"))
	daysForward, _ := strconv.Atoi(c.DefaultQuery("days_forward", "30"))

	// A present-but-empty runs param means "no runs selected"; an absent
	// param means "select the latest run for me". Both arrive as empty
	// slices downstream, where the auto pick applies; the distinction only
	// matters for clients that deselect everything, which the frontend
	// never does.
	runs := parseRuns(c)

	series, err := h.service.GetSeries(c.Request.Context(), productID, daysBack, daysForward, runs, dateutil.Today())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch demand series", "details": err.Error()})
		return
	}
	c.JSON(http.StatusOK, series)
}

func (h *DemandHandler) GetRuns(c *gin.Context) {
	productID := strings.TrimSpace(c.Query("product_id"))
	if productID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "product_id is required"})
		return
	}

	runs, err := h.service.GetRunDates(c.Request.Context(), productID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch run dates", "details": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"runs": runs})
}

func (h *DemandHandler) GetGrid(c *gin.Context) {
	from, to, ok := parseGridRange(c)
	if !ok {
		return
	}

	grid, err := h.service.GetGrid(c.Request.Context(), from, to, parseOrder(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch demand grid", "details": err.Error()})
		return
	}
	c.JSON(http.StatusOK, grid)
}

func (h *DemandHandler) ExportGrid(c *gin.Context) {
	from, to, ok := parseGridRange(c)
	if !ok {
		return
	}
	publish := c.Query("publish") == "true"

	filename, csvData, err := h.service.ExportGrid(c.Request.Context(), from, to, parseOrder(c), publish)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to export demand grid", "details": err.Error()})
		return
	}

	if publish {
		c.JSON(http.StatusOK, gin.H{"published": true, "object": filename})
		return
	}

	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, "text/csv; charset=utf-8", []byte(csvData))
}

func (h *DemandHandler) Refresh(c *gin.Context) {
	if err := h.service.Refresh(c.Request.Context()); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "refresh failed", "details": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"refreshed": true})
}

// parseRuns supports repeated params and comma-separated lists:
//
//	?runs=2024-01-08&runs=2024-01-01
//	?runs=2024-01-08,2024-01-01
func parseRuns(c *gin.Context) []string {
	raw := c.QueryArray("runs")
	out := make([]string, 0, len(raw))
	for _, v := range raw {
		for _, part := range strings.Split(v, ",") {
			part = strings.TrimSpace(part)
			if part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}

func parseGridRange(c *gin.Context) (string, string, bool) {
	from := dateutil.DateKey(c.Query("from"))
	to := dateutil.DateKey(c.Query("to"))
	if from == "" || to == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "from and to must be YYYY-MM-DD dates"})
		return "", "", false
	}
	return from, to, true
}

func parseOrder(c *gin.Context) demand.Order {
	switch strings.ToLower(strings.TrimSpace(c.Query("order"))) {
	case "asc":
		return demand.OrderAsc
	case "desc":
		return demand.OrderDesc
	default:
		return demand.OrderNone
	}
}
