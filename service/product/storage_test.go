package product

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	inventoryEntity "productimport.GO/model/entity/inventory"
	productEntity "productimport.GO/model/entity/product"
	"productimport.GO/service/product/data"
	"productimport.GO/service/product/producttest"
)

func TestImport_SameSKUGlobalAndStoreViewRecords(t *testing.T) {
	db := producttest.NewCatalog(t)

	dutch := ProductInput{
		SKU: "hat-1",
		StoreViews: map[string]StoreViewInput{
			"nl": {Attributes: map[string]*string{"name": str("Hoed"), "url_key": str("hoed")}},
		},
	}
	global := hat("hat-1", "Hat")
	global.AttributeSet = "Bag"

	res, products := importInputs(t, db, testConfig(), dutch, global)
	for _, p := range products {
		require.True(t, p.OK(), p.Errors())
	}
	assert.Equal(t, 0, res.Failed)

	id := producttest.ProductID(t, db, "hat-1")
	require.NotZero(t, id)
	assert.Equal(t, id, products[0].ID)
	assert.Equal(t, id, products[1].ID)
	assert.EqualValues(t, 1, producttest.Count(t, db, &productEntity.Product{}, "sku = ?", "hat-1"))

	var row productEntity.Product
	require.NoError(t, db.First(&row, id).Error)
	assert.Equal(t, producttest.AttributeSetBag, row.AttributeSetID)

	urlKey, _ := producttest.Varchar(t, db, id, producttest.AttrURLKey, producttest.StoreAdmin)
	assert.Equal(t, "hat", urlKey)
	name, _ := producttest.Varchar(t, db, id, producttest.AttrName, producttest.StoreDutch)
	assert.Equal(t, "Hoed", name)

	assert.Contains(t, rewrites(t, db, id, producttest.StoreDutch), "hoed.html")
	assert.Contains(t, rewrites(t, db, id, producttest.StoreDefault), "hat.html")
}

func TestImport_StoreViewRecordAloneStillNeedsName(t *testing.T) {
	db := producttest.NewCatalog(t)
	dutch := ProductInput{
		SKU:        "hat-1",
		StoreViews: map[string]StoreViewInput{"nl": {Attributes: map[string]*string{"name": str("Hoed")}}},
	}
	res, products := importInputs(t, db, testConfig(), dutch, hat("cap-1", "Cap"))

	assert.Contains(t, products[0].Errors(), "missing name")
	assert.True(t, products[1].OK(), products[1].Errors())
	assert.Equal(t, 1, res.Failed)
	assert.Zero(t, producttest.ProductID(t, db, "hat-1"))
}

func TestImport_StockKeepsFieldsTheRecordLeavesOut(t *testing.T) {
	db := producttest.NewCatalog(t)
	in := hat("hat-1", "Hat")
	in.Stock = &StockInput{Qty: "12", IsInStock: flag(true), ManageStock: flag(false)}
	_, products := importInputs(t, db, testConfig(), in)
	require.True(t, products[0].OK(), products[0].Errors())
	id := products[0].ID

	load := func() (productEntity.StockItem, inventoryEntity.InventorySourceItem) {
		var item productEntity.StockItem
		require.NoError(t, db.Where("product_id = ?", id).First(&item).Error)
		var source inventoryEntity.InventorySourceItem
		require.NoError(t, db.Where("sku = ?", "hat-1").First(&source).Error)
		return item, source
	}

	// only the stock status
	_, products = importInputs(t, db, testConfig(), ProductInput{SKU: "hat-1", Stock: &StockInput{IsInStock: flag(false)}})
	require.True(t, products[0].OK(), products[0].Errors())
	item, source := load()
	assert.InDelta(t, 12.0, item.Qty, 0.0001)
	assert.EqualValues(t, 0, item.IsInStock)
	assert.EqualValues(t, 0, item.ManageStock)
	assert.InDelta(t, 12.0, source.Quantity, 0.0001)
	assert.EqualValues(t, 0, source.Status)

	// only the quantity
	_, products = importInputs(t, db, testConfig(), ProductInput{SKU: "hat-1", Stock: &StockInput{Qty: "3"}})
	require.True(t, products[0].OK(), products[0].Errors())
	item, source = load()
	assert.InDelta(t, 3.0, item.Qty, 0.0001)
	assert.EqualValues(t, 0, item.IsInStock)
	assert.EqualValues(t, 0, item.ManageStock)
	assert.InDelta(t, 3.0, source.Quantity, 0.0001)
	assert.EqualValues(t, 1, producttest.Count(t, db, &productEntity.StockItem{}, "product_id = ?", id))
}

func TestImport_BundleOptions(t *testing.T) {
	db := producttest.NewCatalog(t)

	box := hat("box", "Gift Box")
	box.Type = data.TypeBundle
	box.BundleOptions = []BundleOptionInput{{
		Title:    "Extras",
		Required: true,
		Selections: []BundleSelectionInput{
			{SKU: "scarf", Qty: "2", IsDefault: true},
			{SKU: "gloves"},
		},
	}}
	_, products := importInputs(t, db, testConfig(), hat("scarf", "Scarf"), hat("gloves", "Gloves"), box)
	for _, p := range products {
		require.True(t, p.OK(), p.Errors())
	}
	scarfID, glovesID, boxID := products[0].ID, products[1].ID, products[2].ID

	var options []productEntity.BundleOption
	require.NoError(t, db.Where("parent_id = ?", boxID).Find(&options).Error)
	require.Len(t, options, 1)
	assert.Equal(t, "select", options[0].Type)
	assert.EqualValues(t, 1, options[0].Required)

	var value productEntity.BundleOptionValue
	require.NoError(t, db.Where("option_id = ?", options[0].OptionID).First(&value).Error)
	assert.Equal(t, "Extras", value.Title)

	var selections []productEntity.BundleSelection
	require.NoError(t, db.Where("parent_product_id = ?", boxID).Order("position").Find(&selections).Error)
	require.Len(t, selections, 2)
	assert.Equal(t, scarfID, selections[0].ProductID)
	assert.InDelta(t, 2.0, selections[0].SelectionQty, 0.0001)
	assert.EqualValues(t, 1, selections[0].IsDefault)
	assert.Equal(t, glovesID, selections[1].ProductID)
	assert.InDelta(t, 1.0, selections[1].SelectionQty, 0.0001)
	assert.EqualValues(t, 2, producttest.Count(t, db, &productEntity.ProductRelation{}, "parent_id = ?", boxID))

	var row productEntity.Product
	require.NoError(t, db.First(&row, boxID).Error)
	assert.EqualValues(t, 1, row.HasOptions)

	// a bundle turned simple loses its options and selections
	cfg := testConfig()
	cfg.ProductTypeChange = TypeChangeAllowed
	_, products = importInputs(t, db, cfg, ProductInput{SKU: "box", Type: data.TypeSimple})
	require.True(t, products[0].OK(), products[0].Errors())
	assert.Zero(t, producttest.Count(t, db, &productEntity.BundleOption{}, "parent_id = ?", boxID))
	assert.Zero(t, producttest.Count(t, db, &productEntity.BundleOptionValue{}, "parent_product_id = ?", boxID))
	assert.Zero(t, producttest.Count(t, db, &productEntity.BundleSelection{}, "parent_product_id = ?", boxID))
	assert.Zero(t, producttest.Count(t, db, &productEntity.ProductRelation{}, "parent_id = ?", boxID))
}

func TestImport_BecomingVirtualClearsWeight(t *testing.T) {
	db := producttest.NewCatalog(t)
	in := hat("hat-1", "Hat")
	in.Global.Attributes["weight"] = str("1.5")
	_, products := importInputs(t, db, testConfig(), in)
	require.True(t, products[0].OK(), products[0].Errors())
	id := products[0].ID

	weight := func() *float64 {
		var row productEntity.ProductDecimal
		require.NoError(t, db.Where("entity_id = ? AND attribute_id = ? AND store_id = ?", id, producttest.AttrWeight, producttest.StoreAdmin).First(&row).Error)
		return row.Value
	}
	require.NotNil(t, weight())
	assert.InDelta(t, 1.5, *weight(), 0.0001)

	cfg := testConfig()
	cfg.ProductTypeChange = TypeChangeAllowed
	_, products = importInputs(t, db, cfg, ProductInput{SKU: "hat-1", Type: data.TypeVirtual})
	require.True(t, products[0].OK(), products[0].Errors())

	var row productEntity.Product
	require.NoError(t, db.First(&row, id).Error)
	assert.Equal(t, data.TypeVirtual, row.TypeID)
	assert.Nil(t, weight())
}
