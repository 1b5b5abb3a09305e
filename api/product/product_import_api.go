package product

import (
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"productimport.GO/api"
	"productimport.GO/config"
	"productimport.GO/core/logger"
	productService "productimport.GO/service/product"
	"productimport.GO/service/product/data"
)

func init() {
	api.RegisterModule(RegisterProductImportRoutes)
}

type importRequest struct {
	Products []productService.ProductInput `json:"products"`
	Options  map[string]interface{}        `json:"options"`
}

type importResponse struct {
	*productService.ImportResult
	Products          []productService.ProductResult `json:"products"`
	RequestDurationMs int64                          `json:"request_duration_ms"`
}

// RegisterProductImportRoutes adds POST /api/products/import. The body
// carries the products and optional import options, e.g.
// {"products":[{"sku":"hat","global":{"attributes":{"name":"Hat"}}}],"options":{"dry_run":true}}.
func RegisterProductImportRoutes(apiGroup *echo.Group, db *gorm.DB) {
	g := apiGroup.Group("/products")
	g.POST("/import", func(c echo.Context) error {
		start := time.Now()

		var body importRequest
		if err := c.Bind(&body); err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
		}
		if len(body.Products) == 0 {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "products array is required and must not be empty"})
		}

		base, err := config.LoadImportConfig()
		if err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
		}
		cfg, err := config.DecodeImportOptions(base, body.Options)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
		}
		cfg.RunID = uuid.NewString()

		var mu sync.Mutex
		var results []productService.ProductResult
		cfg.ResultCallbacks = append(cfg.ResultCallbacks, func(p *data.Product) {
			mu.Lock()
			defer mu.Unlock()
			results = append(results, productService.NewProductResult(cfg.RunID, p))
		})

		app := config.LoadAppConfig()
		importer, err := productService.NewImporter(db, cfg, logger.New(app.LogLevel, app.LogFormat))
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
		}
		products := make([]*data.Product, 0, len(body.Products))
		for _, in := range body.Products {
			products = append(products, in.ToProduct())
		}

		res, err := importer.Import(c.Request().Context(), products)
		duration := time.Since(start).Milliseconds()
		c.Response().Header().Set("X-Request-Duration-ms", strconv.FormatInt(duration, 10))
		if err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{
				"error":               err.Error(),
				"run_id":              cfg.RunID,
				"products":            results,
				"request_duration_ms": duration,
			})
		}
		return c.JSON(http.StatusOK, importResponse{ImportResult: res, Products: results, RequestDurationMs: duration})
	})
}
