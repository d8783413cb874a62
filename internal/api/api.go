// internal/api/api.go
package api

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/kisaan/demand-dashboard/backend-go/internal/api/handlers"
	"github.com/kisaan/demand-dashboard/backend-go/internal/api/middleware"
	"github.com/kisaan/demand-dashboard/backend-go/internal/service"
)

type Services struct {
	DemandService    *service.DemandService
	InventoryService *service.InventoryService
}

func NewRouter(services *Services, allowedOrigins []string) *gin.Engine {
	router := gin.New()

	router.Use(middleware.Logger())
	router.Use(middleware.Recovery())
	defaultOrigins := []string{"http://localhost:3000", "http://127.0.0.1:3000"}
	corsConfig := cors.Config{
		AllowOrigins:     defaultOrigins,
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders:    []string{"Content-Length", "Content-Disposition"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	if len(allowedOrigins) > 0 {
		normalizedOrigins, allowAll := normalizeAllowedOrigins(allowedOrigins)
		if allowAll {
			corsConfig.AllowOrigins = nil
			corsConfig.AllowOriginFunc = func(origin string) bool { return true }
		} else if len(normalizedOrigins) > 0 {
			corsConfig.AllowOrigins = normalizedOrigins
		}
	}
	router.Use(cors.New(corsConfig))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	apiGroup := router.Group("/api/v1")

	if services != nil {
		if services.DemandService != nil {
			demandHandler := handlers.NewDemandHandler(services.DemandService)
			demandGroup := apiGroup.Group("/demand")
			{
				demandGroup.GET("/products", demandHandler.GetProducts)
				demandGroup.GET("/series", demandHandler.GetSeries)
				demandGroup.GET("/runs", demandHandler.GetRuns)
				demandGroup.GET("/grid", demandHandler.GetGrid)
				demandGroup.GET("/grid/export", demandHandler.ExportGrid)
				demandGroup.POST("/refresh", demandHandler.Refresh)
			}
		}

		if services.InventoryService != nil {
			inventoryHandler := handlers.NewInventoryHandler(services.InventoryService)
			inventoryGroup := apiGroup.Group("/inventory")
			{
				inventoryGroup.GET("/warehouses", inventoryHandler.GetWarehouses)
				inventoryGroup.GET("/stock", inventoryHandler.GetStock)
				inventoryGroup.POST("/sync", inventoryHandler.Sync)
			}
		}
	}

	return router
}

func normalizeAllowedOrigins(origins []string) ([]string, bool) {
	var (
		parsed   []string
		allowAll bool
	)
	for _, origin := range origins {
		parts := strings.Split(origin, ",")
		for _, part := range parts {
			trimmed := strings.TrimSpace(part)
			if trimmed == "" {
				continue
			}
			if trimmed == "*" {
				allowAll = true
				continue
			}
			parsed = append(parsed, trimmed)
		}
	}
	return parsed, allowAll
}
