package product

import (
	"context"
	"encoding/json"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	productEntity "productimport.GO/model/entity/product"
	"productimport.GO/service/product/data"
	"productimport.GO/service/product/producttest"
)

func assertHatValues(t *testing.T, db *gorm.DB, sku, name string, price float64) {
	t.Helper()
	id := producttest.ProductID(t, db, sku)
	require.NotZero(t, id)
	got, _ := producttest.Varchar(t, db, id, producttest.AttrName, producttest.StoreAdmin)
	assert.Equal(t, name, got)
	var dec productEntity.ProductDecimal
	require.NoError(t, db.Where("entity_id = ? AND attribute_id = ? AND store_id = ?", id, producttest.AttrPrice, producttest.StoreAdmin).First(&dec).Error)
	require.NotNil(t, dec.Value)
	assert.InDelta(t, price, *dec.Value, 0.0001)
	assert.EqualValues(t, 1, producttest.Count(t, db, &productEntity.ProductVarchar{},
		"entity_id = ? AND attribute_id = ? AND store_id = ?", id, producttest.AttrName, producttest.StoreAdmin))
}

func rawSQLImport(t *testing.T, db *gorm.DB) {
	cfg := testConfig()
	cfg.RawSQL = true

	in := hat("hat-1", "Hat")
	_, products := importInputs(t, db, cfg, in, hat("hat-2", "Cap"))
	for _, p := range products {
		require.True(t, p.OK(), p.Errors())
	}
	assertHatValues(t, db, "hat-1", "Hat", 19.99)

	// the second run takes the upsert branch
	in.Global.Attributes["name"] = str("Hat v2")
	in.Global.Attributes["price"] = str("24.50")
	_, products = importInputs(t, db, cfg, in)
	require.True(t, products[0].OK(), products[0].Errors())
	assertHatValues(t, db, "hat-1", "Hat v2", 24.5)
	assertHatValues(t, db, "hat-2", "Cap", 19.99)
}

func TestImport_RawSQL(t *testing.T) {
	rawSQLImport(t, producttest.NewCatalog(t))
}

func TestMySQL_RawSQLImport(t *testing.T) {
	rawSQLImport(t, producttest.NewMySQLCatalog(t))
}

func TestMySQL_ImportWithRewrites(t *testing.T) {
	db := producttest.NewMySQLCatalog(t)

	in := hat("hat-1", "Red Hat")
	in.Categories = []string{"Default Category/Men"}
	_, products := importInputs(t, db, testConfig(), in)
	require.True(t, products[0].OK(), products[0].Errors())
	id := products[0].ID
	assert.Contains(t, rewrites(t, db, id, producttest.StoreDefault), "men/red-hat.html")

	in.Global.Attributes["url_key"] = str("crimson-hat")
	_, products = importInputs(t, db, testConfig(), in)
	require.True(t, products[0].OK(), products[0].Errors())
	got := rewrites(t, db, id, producttest.StoreDefault)
	assert.Contains(t, got, "crimson-hat.html")
	require.Contains(t, got, "red-hat.html")
	assert.EqualValues(t, 301, got["red-hat.html"].RedirectType)
}

func TestRedisResultCallback(t *testing.T) {
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		t.Skip("REDIS_ADDR not set, skipping redis result test")
	}
	client := redis.NewClient(&redis.Options{Addr: addr, Password: os.Getenv("REDIS_PASS")})
	defer client.Close()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		t.Skipf("cannot reach redis at %s: %v", addr, err)
	}

	key := "productimport:test:" + uuid.NewString()
	defer client.Del(context.Background(), key)

	stored := data.NewProduct("hat-1", data.TypeSimple)
	stored.ID = 7
	failed := data.NewProduct("hat-2", data.TypeSimple)
	failed.LineNumber = 3
	failed.AddError("missing name")

	cb := RedisResultCallback(client, key, "run-9")
	cb(stored)
	cb(failed)

	items, err := client.LRange(ctx, key, 0, -1).Result()
	require.NoError(t, err)
	require.Len(t, items, 2)

	var first, second ProductResult
	require.NoError(t, json.Unmarshal([]byte(items[0]), &first))
	require.NoError(t, json.Unmarshal([]byte(items[1]), &second))
	assert.Equal(t, ProductResult{RunID: "run-9", SKU: "hat-1", ProductID: 7, OK: true}, first)
	assert.Equal(t, ProductResult{RunID: "run-9", SKU: "hat-2", Line: 3, Errors: []string{"missing name"}}, second)
}
