package stock

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"productimport.GO/api"
	"productimport.GO/config"
	"productimport.GO/core/logger"
	productEntity "productimport.GO/model/entity/product"
	productService "productimport.GO/service/product"
	"productimport.GO/service/product/data"
)

func init() {
	api.RegisterModule(RegisterStockRoutes)
}

// StockItemInput is one row of a stock update.
type StockItemInput struct {
	SKU       string `json:"sku"`
	Qty       string `json:"qty"`
	IsInStock *bool  `json:"is_in_stock"`
}

// RegisterStockRoutes adds POST /api/stock/import, a quantity-only import of
// existing products. Unknown skus are skipped with a warning.
func RegisterStockRoutes(apiGroup *echo.Group, db *gorm.DB) {
	g := apiGroup.Group("/stock")

	g.POST("/import", func(c echo.Context) error {
		start := time.Now()

		var body struct {
			Items     []StockItemInput `json:"items"`
			BatchSize int              `json:"batch_size"`
		}
		if err := c.Bind(&body); err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
		}
		if len(body.Items) == 0 {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "items array is required and must not be empty"})
		}

		inputs, warnings, err := knownItems(db, body.Items)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
		}
		cfg, err := config.LoadImportConfig()
		if err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
		}
		if body.BatchSize > 0 {
			cfg.BatchSize = body.BatchSize
		}

		imported := 0
		if len(inputs) > 0 {
			app := config.LoadAppConfig()
			importer, err := productService.NewImporter(db, cfg, logger.New(app.LogLevel, app.LogFormat))
			if err != nil {
				return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
			}
			res, err := importer.Import(c.Request().Context(), inputs)
			if err != nil {
				duration := time.Since(start).Milliseconds()
				return c.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error(), "request_duration_ms": duration})
			}
			imported = res.Updated
			warnings = append(warnings, res.Warnings...)
		}

		duration := time.Since(start).Milliseconds()
		c.Response().Header().Set("X-Request-Duration-ms", strconv.FormatInt(duration, 10))
		return c.JSON(http.StatusOK, echo.Map{
			"imported":            imported,
			"skipped":             len(body.Items) - len(inputs),
			"warnings":            warnings,
			"request_duration_ms": duration,
		})
	})
}

// knownItems turns items of existing skus into stock-only products. The
// stored type is kept so the import does not change it.
func knownItems(db *gorm.DB, items []StockItemInput) ([]*data.Product, []string, error) {
	skus := make([]string, 0, len(items))
	for _, it := range items {
		skus = append(skus, strings.TrimSpace(it.SKU))
	}
	var rows []productEntity.Product
	if err := db.Select("entity_id", "sku", "type_id").Where("sku IN ?", skus).Find(&rows).Error; err != nil {
		return nil, nil, fmt.Errorf("lookup skus: %w", err)
	}
	types := make(map[string]string, len(rows))
	for _, r := range rows {
		types[r.SKU] = r.TypeID
	}
	var products []*data.Product
	var warnings []string
	for i, it := range items {
		sku := strings.TrimSpace(it.SKU)
		typeID, ok := types[sku]
		if !ok {
			warnings = append(warnings, fmt.Sprintf("item %d: unknown sku %q, skipping", i, sku))
			continue
		}
		in := productService.ProductInput{
			SKU:   sku,
			Type:  typeID,
			Stock: &productService.StockInput{Qty: it.Qty, IsInStock: it.IsInStock},
		}
		products = append(products, in.ToProduct())
	}
	return products, warnings, nil
}
