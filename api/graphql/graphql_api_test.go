package graphql

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	productService "productimport.GO/service/product"
	"productimport.GO/service/product/data"
	"productimport.GO/service/product/producttest"
)

func importHats(t *testing.T, db *gorm.DB) string {
	t.Helper()
	require.NoError(t, productService.MigrateImportLog(db))

	cfg := productService.DefaultImportConfig()
	cfg.MagentoVersion = "2.4"
	cfg.RunID = "run-1"
	cfg.ResultCallbacks = []productService.ResultCallback{productService.DBResultCallback(db, cfg.RunID, true)}
	logger := logrus.New()
	logger.SetLevel(logrus.PanicLevel)
	importer, err := productService.NewImporter(db, cfg, logger)
	require.NoError(t, err)

	hat := data.NewProduct("hat-1", data.TypeSimple)
	hat.AttributeSet = data.Unresolved[string, uint]("Default")
	hat.Global().SetAttribute("name", "Red Hat")
	inStock := true
	hat.Stock = &data.StockItem{Qty: "7", IsInStock: &inStock}
	hat.TierPrices = []*data.TierPrice{{Qty: "5", Value: "9.5", AllGroups: true}}
	broken := data.NewProduct("hat-2", data.TypeSimple)
	_, err = importer.Import(context.Background(), []*data.Product{hat, broken})
	require.NoError(t, err)
	return cfg.RunID
}

func query(t *testing.T, db *gorm.DB, store, q string, vars map[string]interface{}) map[string]interface{} {
	t.Helper()
	e := echo.New()
	RegisterGraphQLRoutes(e.Group("/api"), db)

	body, err := json.Marshal(map[string]interface{}{"query": q, "variables": vars})
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, "/api/graphql", strings.NewReader(string(body)))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	if store != "" {
		req.Header.Set("Store", store)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Data   map[string]interface{} `json:"data"`
		Errors []struct {
			Message string `json:"message"`
		} `json:"errors"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Empty(t, resp.Errors)
	return resp.Data
}

func TestGraphQL_ImportRun(t *testing.T) {
	db := producttest.NewCatalog(t)
	runID := importHats(t, db)

	q := `query($run: String!, $failed: Boolean) {
		importRun(runId: $run, failedOnly: $failed) { runId total failed entries { sku ok errors } }
	}`
	all := query(t, db, "", q, map[string]interface{}{"run": runID})["importRun"].(map[string]interface{})
	assert.Equal(t, runID, all["runId"])
	assert.EqualValues(t, 2, all["total"])
	assert.EqualValues(t, 1, all["failed"])
	assert.Len(t, all["entries"], 2)

	failed := query(t, db, "", q, map[string]interface{}{"run": runID, "failed": true})["importRun"].(map[string]interface{})
	entries := failed["entries"].([]interface{})
	require.Len(t, entries, 1)
	entry := entries[0].(map[string]interface{})
	assert.Equal(t, "hat-2", entry["sku"])
	assert.Contains(t, entry["errors"], "missing name")
}

func TestGraphQL_Product(t *testing.T) {
	db := producttest.NewCatalog(t)
	importHats(t, db)

	q := `query($sku: String!) {
		product(sku: $sku) {
			sku typeId quantity
			tierPrices { qty value allGroups }
			urlRewrites { requestPath storeId categoryId }
		}
	}`
	product := query(t, db, "2", q, map[string]interface{}{"sku": "hat-1"})["product"].(map[string]interface{})
	assert.Equal(t, "simple", product["typeId"])
	assert.EqualValues(t, 7, product["quantity"])
	prices := product["tierPrices"].([]interface{})
	require.Len(t, prices, 1)
	price := prices[0].(map[string]interface{})
	assert.EqualValues(t, 5, price["qty"])
	assert.EqualValues(t, 9.5, price["value"])
	assert.Equal(t, true, price["allGroups"])
	rewrites := product["urlRewrites"].([]interface{})
	require.Len(t, rewrites, 1)
	rw := rewrites[0].(map[string]interface{})
	assert.Equal(t, "red-hat.html", rw["requestPath"])
	assert.EqualValues(t, 2, rw["storeId"])
	assert.Nil(t, rw["categoryId"])

	all := query(t, db, "", q, map[string]interface{}{"sku": "hat-1"})["product"].(map[string]interface{})
	assert.Len(t, all["urlRewrites"], 2)

	missing := query(t, db, "", q, map[string]interface{}{"sku": "nope"})
	assert.Nil(t, missing["product"])
}
